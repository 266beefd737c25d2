package schema

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"

	"github.com/xuri/excelize/v2"
)

var ErrUnsupportedTemplateFormat = errors.New("template format must be csv or xlsx")

const templateSheet = "Sheet1"

// Template produces a blank spreadsheet pre-populated with the profile's
// header row. It is the canonical machine-readable description of the
// profile; institutions fill it in and upload it back.
func Template(p Profile, format string) (*bytes.Buffer, string, error) {
	name := fmt.Sprintf("%s_%s_template.%s", p.Product, p.Institution, format)
	switch format {
	case "csv":
		buf, err := csvTemplate(p)
		return buf, name, err
	case "xlsx":
		buf, err := xlsxTemplate(p)
		return buf, name, err
	}
	return nil, "", ErrUnsupportedTemplateFormat
}

func csvTemplate(p Profile) (*bytes.Buffer, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	if err := w.Write(p.Headers()); err != nil {
		return nil, err
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, err
	}
	return &buf, nil
}

func xlsxTemplate(p Profile) (*bytes.Buffer, error) {
	f := excelize.NewFile()

	headers := p.Headers()
	row := make([]interface{}, 0, len(headers))
	for _, h := range headers {
		row = append(row, h)
	}
	if err := f.SetSheetRow(templateSheet, "A1", &row); err != nil {
		return nil, err
	}

	// widen columns so headers are readable when opened
	last, err := excelize.ColumnNumberToName(len(headers))
	if err == nil {
		_ = f.SetColWidth(templateSheet, "A", last, 22)
	}

	return f.WriteToBuffer()
}
