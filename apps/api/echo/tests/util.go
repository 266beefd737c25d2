package tests

import (
	"bytes"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	. "github.com/edukeep/edukeep/apps/api/echo"
	"github.com/edukeep/edukeep/core/alert"
	"github.com/edukeep/edukeep/core/imports"
	"github.com/edukeep/edukeep/core/risk"
	emailsvc "github.com/edukeep/edukeep/services/email"
	inmemdb "github.com/edukeep/edukeep/storage/database/inmem"
)

var (
	recordRepo    imports.Repository
	alertRepo     alert.Repository
	thresholdRepo risk.ThresholdRepository
)

func setup(t *testing.T) Server {
	t.Helper()

	db, err := inmemdb.Open()
	if err != nil {
		t.Fatalf("setup() failed: %v", err)
	}
	recordRepo = inmemdb.NewRecordRepository(db)
	alertRepo = inmemdb.NewAlertRepository(db)
	thresholdRepo = inmemdb.NewThresholdRepository(db)

	mailSvc := emailsvc.NewConsoleServiceMock()
	importSvc := imports.NewService(recordRepo, alertRepo, thresholdRepo, mailSvc, nil)

	return NewServer(
		&Options{
			DisableReqLogs: true,
			ImportSvc:      importSvc,
			RecordRepo:     recordRepo,
			AlertRepo:      alertRepo,
			ThresholdRepo:  thresholdRepo,
		},
	)
}

func newAuthRequest(method, path, token string, data ...[]byte) (*http.Request, *httptest.ResponseRecorder) {
	var body bytes.Buffer
	if len(data) > 0 {
		body.Write(data[0])
	}
	req := httptest.NewRequest(method, path, &body)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	return req, rec
}

func newRequest(method, path string, data ...[]byte) (*http.Request, *httptest.ResponseRecorder) {
	return newAuthRequest(method, path, "", data...)
}

func newUploadRequest(t *testing.T, path, token, filename string, content []byte) (*http.Request, *httptest.ResponseRecorder) {
	t.Helper()
	var body bytes.Buffer
	w := multipart.NewWriter(&body)
	fw, err := w.CreateFormFile("file", filename)
	if err != nil {
		t.Fatalf("newUploadRequest() failed: %v", err)
	}
	if _, err = fw.Write(content); err != nil {
		t.Fatalf("newUploadRequest() failed: %v", err)
	}
	if err = w.Close(); err != nil {
		t.Fatalf("newUploadRequest() failed: %v", err)
	}

	req := httptest.NewRequest(http.MethodPost, path, &body)
	req.Header.Set("Content-Type", w.FormDataContentType())
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	return req, rec
}

func getToken(t *testing.T, email string, isAdmin bool) string {
	t.Helper()
	token, err := GenerateToken(GetClaims(email, email, isAdmin))
	if err != nil {
		t.Fatalf("getToken() failed: %v", err)
	}
	return token
}

func marchallObj(t *testing.T, obj interface{}) []byte {
	t.Helper()
	data, err := json.Marshal(obj)
	if err != nil {
		t.Fatalf("marchallObj() failed: %v", err)
	}
	return data
}
