package imports

import (
	"bytes"
	"encoding/csv"
	"io"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"
	"github.com/shakinm/xlsReader/xls"
	"github.com/xuri/excelize/v2"

	"github.com/edukeep/edukeep/core"
)

// Format is the declared file format of an upload.
type Format string

const (
	FormatCSV  Format = "csv"
	FormatXLSX Format = "xlsx"
	FormatXLS  Format = "xls"
)

var (
	// ErrUnsupportedFormat is fatal and batch-level: nothing is parsed and
	// no partial state is created.
	ErrUnsupportedFormat = errors.New("unsupported file format: expected csv, xlsx or xls")
	ErrEmptyFile         = errors.New("the file has no header row")
)

// ParseFormat derives the Format from a file name.
func ParseFormat(filename string) (Format, error) {
	switch strings.ToLower(strings.TrimPrefix(filepath.Ext(filename), ".")) {
	case "csv":
		return FormatCSV, nil
	case "xlsx":
		return FormatXLSX, nil
	case "xls":
		return FormatXLS, nil
	}
	return "", ErrUnsupportedFormat
}

// Parse converts an uploaded payload into an ordered RawRow sequence.
// The first line is the header; header names are matched case- and
// diacritics-insensitively. Blank rows are dropped silently but still
// advance the line counter, so RawRow.Line always matches the spreadsheet.
// Parse is pure: identical bytes and format always yield identical rows.
func Parse(data []byte, format Format) ([]RawRow, error) {
	var grid [][]string
	var err error

	switch format {
	case FormatCSV:
		grid, err = csvGrid(data)
	case FormatXLSX:
		grid, err = xlsxGrid(data)
	case FormatXLS:
		grid, err = xlsGrid(data)
	default:
		return nil, ErrUnsupportedFormat
	}
	if err != nil {
		return nil, err
	}
	return gridRows(grid)
}

func gridRows(grid [][]string) ([]RawRow, error) {
	if len(grid) == 0 || rowEmpty(grid[0]) {
		return nil, ErrEmptyFile
	}

	headers := make([]string, 0, len(grid[0]))
	for _, h := range grid[0] {
		headers = append(headers, core.NormalizeHeader(h))
	}

	rows := make([]RawRow, 0, len(grid)-1)
	for i, rec := range grid[1:] {
		if rowEmpty(rec) {
			continue
		}
		cells := make(map[string]string, len(headers))
		for j, h := range headers {
			if h == "" {
				continue
			}
			var v string
			if j < len(rec) {
				v = core.CleanString(rec[j])
			}
			cells[h] = v
		}
		rows = append(rows, RawRow{Line: i + 2, Cells: cells})
	}
	return rows, nil
}

func rowEmpty(rec []string) bool {
	for _, c := range rec {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}

func csvGrid(data []byte) ([][]string, error) {
	r := csv.NewReader(bytes.NewReader(data))
	r.FieldsPerRecord = -1 // ragged rows are a validation concern, not a parse error
	r.TrimLeadingSpace = true

	var grid [][]string
	for {
		rec, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, errors.Wrap(err, "reading csv")
		}
		grid = append(grid, rec)
	}
	return grid, nil
}

func xlsxGrid(data []byte) ([][]string, error) {
	f, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		return nil, errors.Wrap(err, "opening xlsx")
	}
	defer func() { _ = f.Close() }()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, ErrEmptyFile
	}
	grid, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, errors.Wrap(err, "reading xlsx rows")
	}
	return grid, nil
}

func xlsGrid(data []byte) ([][]string, error) {
	wb, err := xls.OpenReader(bytes.NewReader(data))
	if err != nil {
		return nil, errors.Wrap(err, "opening xls")
	}
	sheet, err := wb.GetSheet(0)
	if err != nil {
		return nil, errors.Wrap(err, "reading xls sheet")
	}

	var grid [][]string
	for i := 0; i <= sheet.GetNumberRows()-1; i++ {
		row, err := sheet.GetRow(i)
		if err != nil {
			return nil, errors.Wrapf(err, "reading xls row %d", i+1)
		}
		var rec []string
		for _, cell := range row.GetCols() {
			rec = append(rec, cell.GetString())
		}
		grid = append(grid, rec)
	}
	return grid, nil
}
