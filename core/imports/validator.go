package imports

import (
	"fmt"
	"net/mail"
	"strconv"
	"strings"

	"github.com/pmezard/go-difflib/difflib"

	"github.com/edukeep/edukeep/core"
	"github.com/edukeep/edukeep/core/schema"
)

const headerMaxSim = .72 // difflib ratio above which a header counts as a typo of a known column

// Validate checks every row against the profile, in order, accumulating all
// violations of a row before moving on. Rows that break a required-field or
// key-field rule never make it into the returned records; they surface only
// through their errors. The caller must treat a non-empty error list as a
// rejection of the whole batch.
func Validate(rows []RawRow, profile schema.Profile) ([]Record, []RowError) {
	records := make([]Record, 0, len(rows))
	errs := make([]RowError, 0)

	suggestions := headerSuggestions(rows, profile)

	for _, row := range rows {
		rowErrs := validateRow(row, profile, suggestions)
		if len(rowErrs) > 0 {
			errs = append(errs, rowErrs...)
			continue
		}
		records = append(records, buildRecord(row, profile))
	}
	return records, errs
}

func validateRow(row RawRow, profile schema.Profile, suggestions map[string]string) []RowError {
	var errs []RowError
	add := func(column, msg string) {
		errs = append(errs, RowError{Row: row.Line, Column: column, Message: msg})
	}

	for _, f := range profile.Fields {
		val, present := row.Cells[f.Name]
		if val == "" {
			if f.Required {
				msg := "required field is missing"
				if !present {
					if sim, ok := suggestions[f.Name]; ok {
						msg = fmt.Sprintf("required field is missing; did you mean column %q?", sim)
					}
				}
				add(f.Name, msg)
			}
			continue
		}

		switch f.Kind {
		case schema.KindNumeric:
			v, err := parseDecimal(val)
			if err != nil {
				add(f.Name, fmt.Sprintf("%q is not a number", val))
			} else if v < f.Min || v > f.Max {
				add(f.Name, fmt.Sprintf("must be between %v and %v", f.Min, f.Max))
			}
		case schema.KindEnum:
			if !containsString(f.Enum, normalizeEnum(val)) {
				add(f.Name, fmt.Sprintf("must be one of: %s", strings.Join(f.Enum, ", ")))
			}
		case schema.KindText:
			switch f.Format {
			case schema.FormatEmail:
				if _, err := mail.ParseAddress(val); err != nil {
					add(f.Name, "invalid email address")
				}
			case schema.FormatCPF:
				if !validCPF(val) {
					add(f.Name, "invalid CPF: expected 11 digits")
				}
			}
		}
	}

	if key := profile.Key.KeyValue(func(name string) string { return row.Cells[name] }); key == "" {
		if len(profile.Key.Candidates) == 1 {
			// already reported above when the single key field is required
			if f, ok := profile.Field(profile.Key.Candidates[0]); !ok || !f.Required {
				add(profile.Key.Candidates[0], "key field is missing")
			}
		} else {
			add(profile.Key.Describe(), fmt.Sprintf("at least one of %s is required", profile.Key.Describe()))
		}
	}

	return errs
}

func buildRecord(row RawRow, profile schema.Profile) Record {
	fields := make(Fields, len(profile.Fields))
	for _, f := range profile.Fields {
		val := row.Cells[f.Name]
		if val == "" {
			continue
		}
		switch f.Kind {
		case schema.KindNumeric:
			v, _ := parseDecimal(val)
			fields[f.Name] = strconv.FormatFloat(v, 'f', -1, 64)
		case schema.KindEnum:
			fields[f.Name] = normalizeEnum(val)
		default:
			fields[f.Name] = val
		}
	}
	return Record{
		KeyValue: profile.Key.KeyValue(func(name string) string { return row.Cells[name] }),
		Fields:   fields,
	}
}

// headerSuggestions maps required field names absent from the upload's
// header set to the most similar unknown header, if any. Spreadsheets share
// one header row, so this is computed once per batch.
func headerSuggestions(rows []RawRow, profile schema.Profile) map[string]string {
	if len(rows) == 0 {
		return nil
	}

	known := make(map[string]bool, len(profile.Fields))
	for _, f := range profile.Fields {
		known[f.Name] = true
	}

	var unknown []string
	for h := range rows[0].Cells {
		if !known[h] {
			unknown = append(unknown, h)
		}
	}
	if len(unknown) == 0 {
		return nil
	}

	sugg := make(map[string]string)
	for _, f := range profile.Fields {
		if !f.Required {
			continue
		}
		if _, present := rows[0].Cells[f.Name]; present {
			continue
		}
		var best string
		var bestRatio float64
		for _, h := range unknown {
			ratio := difflib.NewMatcher(strings.Split(f.Name, ""), strings.Split(h, "")).QuickRatio()
			if ratio > bestRatio {
				best, bestRatio = h, ratio
			}
		}
		if bestRatio >= headerMaxSim {
			sugg[f.Name] = best
		}
	}
	return sugg
}

// parseDecimal accepts both dot and comma decimal separators; the latter is
// the convention in the spreadsheets institutions actually upload.
func parseDecimal(s string) (float64, error) {
	return strconv.ParseFloat(strings.Replace(strings.TrimSpace(s), ",", ".", 1), 64)
}

// normalizeEnum folds enum cells the same way headers are folded, so
// "Manhã" matches the declared "manha".
func normalizeEnum(s string) string {
	return core.NormalizeHeader(s)
}

func validCPF(s string) bool {
	var digits int
	for _, r := range s {
		switch {
		case r >= '0' && r <= '9':
			digits++
		case r == '.' || r == '-' || r == ' ':
		default:
			return false
		}
	}
	return digits == 11
}

func containsString(ss []string, s string) bool {
	for _, v := range ss {
		if v == s {
			return true
		}
	}
	return false
}
