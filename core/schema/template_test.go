package schema

import (
	"bytes"
	"encoding/csv"
	"strings"
	"testing"

	"github.com/xuri/excelize/v2"
)

func TestTemplateCSV(t *testing.T) {
	p, err := Get(ProductRetention, InstitutionSchool)
	if err != nil {
		t.Fatalf("Get() failed: %v", err)
	}

	buf, name, err := Template(p, "csv")
	if err != nil {
		t.Fatalf("Template() failed: %v", err)
	}
	if name != "retention_school_template.csv" {
		t.Errorf("filename = %q", name)
	}

	rec, err := csv.NewReader(bytes.NewReader(buf.Bytes())).Read()
	if err != nil {
		t.Fatalf("reading template csv: %v", err)
	}
	if len(rec) != len(p.Fields) {
		t.Fatalf("header has %d columns, want %d", len(rec), len(p.Fields))
	}
	if rec[0] != "Nome" || rec[1] != "Registro" {
		t.Errorf("header starts with %q, %q", rec[0], rec[1])
	}
	// display labels keep their accents; normalization happens on upload
	if !containsHeader(rec, "Frequência") {
		t.Errorf("header %v is missing Frequência", rec)
	}
}

func TestTemplateXLSX(t *testing.T) {
	p, err := Get(ProductRecruitment, InstitutionUniversity)
	if err != nil {
		t.Fatalf("Get() failed: %v", err)
	}

	buf, name, err := Template(p, "xlsx")
	if err != nil {
		t.Fatalf("Template() failed: %v", err)
	}
	if !strings.HasSuffix(name, ".xlsx") {
		t.Errorf("filename = %q", name)
	}

	f, err := excelize.OpenReader(bytes.NewReader(buf.Bytes()))
	if err != nil {
		t.Fatalf("opening template xlsx: %v", err)
	}
	defer func() { _ = f.Close() }()

	rows, err := f.GetRows(f.GetSheetList()[0])
	if err != nil {
		t.Fatalf("reading template xlsx: %v", err)
	}
	if len(rows) != 1 {
		t.Fatalf("template has %d rows, want just the header", len(rows))
	}
	if len(rows[0]) != len(p.Fields) {
		t.Errorf("header has %d columns, want %d", len(rows[0]), len(p.Fields))
	}
}

func TestTemplateUnsupportedFormat(t *testing.T) {
	p, _ := Get(ProductRetention, InstitutionSchool)
	if _, _, err := Template(p, "pdf"); err != ErrUnsupportedTemplateFormat {
		t.Errorf("Template() error = %v, want %v", err, ErrUnsupportedTemplateFormat)
	}
}

func containsHeader(hh []string, h string) bool {
	for _, v := range hh {
		if v == h {
			return true
		}
	}
	return false
}
