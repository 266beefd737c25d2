package imports

import (
	"database/sql/driver"
	"encoding/json"
	"strconv"
	"time"

	"github.com/pkg/errors"
	"github.com/volatiletech/null/v8"

	"github.com/edukeep/edukeep/core/risk"
	"github.com/edukeep/edukeep/core/schema"
)

var NowFunc = time.Now // mockable

// PeriodOf derives the monthly snapshot token (YYYY-MM) for a point in time.
// The period always comes from the wall clock at import time, never from the
// uploaded file.
func PeriodOf(t time.Time) string {
	return t.UTC().Format("2006-01")
}

type (
	// RawRow is one spreadsheet line keyed by normalized column header.
	// Ephemeral: rows are discarded once validated.
	RawRow struct {
		// Line is the 1-based spreadsheet line (the header is line 1, the
		// first data row line 2) so callers can point at the exact cell.
		Line  int
		Cells map[string]string
	}

	// RowError is a recoverable, row-level validation error. Errors
	// accumulate; a single offending row may contribute several.
	RowError struct {
		Row     int    `json:"row"`
		Column  string `json:"column"`
		Message string `json:"message"`
	}

	// Fields maps canonical field names to cleaned cell values. Numeric
	// values are normalized to dot-decimal strings.
	Fields map[string]string

	// Record is the canonical unit flowing through the pipeline and into
	// the record store.
	Record struct {
		ID        string     `json:"id" db:"id"`
		KeyValue  string     `json:"key_value" db:"key_value"`
		Period    string     `json:"period" db:"period"` // YYYY-MM
		Fields    Fields     `json:"fields" db:"fields"`
		RiskLevel risk.Level `json:"risk_level,omitempty" db:"risk_level"`
	}

	// Result is what one import returns to the caller. On a non-empty
	// Errors list nothing was written: Records is empty and the counts
	// are zero (all-or-nothing commit).
	Result struct {
		Records      []Record   `json:"records"`
		NewCount     int        `json:"new_count"`
		UpdatedCount int        `json:"updated_count"`
		AlertCount   int        `json:"alert_count"`
		Errors       []RowError `json:"errors,omitempty"`
	}
)

func (e RowError) Error() string { return e.Message }

// Float parses a field as a number. Missing or blank fields are null.
func (r Record) Float(name string) null.Float64 {
	s, ok := r.Fields[name]
	if !ok || s == "" {
		return null.Float64{}
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return null.Float64{}
	}
	return null.Float64From(v)
}

// DisplayName resolves a human-readable name for alert payloads.
func (r Record) DisplayName() string {
	if name := r.Fields[schema.FieldName]; name != "" {
		return name
	}
	return r.KeyValue
}

// Signals extracts the three risk dimensions of a retention record.
func (r Record) Signals() risk.Signals {
	return risk.Signals{
		Grade:      r.Float(schema.FieldGrade),
		Attendance: r.Float(schema.FieldAttendance),
		Behavior:   r.Float(schema.FieldBehavior),
	}
}

// Value implements driver.Valuer so Fields persists as JSON.
func (f Fields) Value() (driver.Value, error) {
	if f == nil {
		return "{}", nil
	}
	b, err := json.Marshal(f)
	if err != nil {
		return nil, errors.Wrap(err, "marshaling record fields")
	}
	return string(b), nil
}

// Scan implements sql.Scanner.
func (f *Fields) Scan(src interface{}) error {
	var b []byte
	switch v := src.(type) {
	case []byte:
		b = v
	case string:
		b = []byte(v)
	case nil:
		*f = Fields{}
		return nil
	default:
		return errors.Errorf("unsupported fields column type %T", src)
	}
	return errors.Wrap(json.Unmarshal(b, f), "unmarshaling record fields")
}
