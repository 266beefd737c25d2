package imports

import (
	"testing"

	"github.com/xuri/excelize/v2"
)

func TestParseFormat(t *testing.T) {
	tests := []struct {
		filename string
		want     Format
		wantErr  error
	}{
		{filename: "alunos.csv", want: FormatCSV},
		{filename: "alunos.XLSX", want: FormatXLSX},
		{filename: "planilha antiga.xls", want: FormatXLS},
		{filename: "alunos.pdf", wantErr: ErrUnsupportedFormat},
		{filename: "alunos", wantErr: ErrUnsupportedFormat},
	}
	for _, tt := range tests {
		t.Run(tt.filename, func(t *testing.T) {
			got, err := ParseFormat(tt.filename)
			if err != tt.wantErr {
				t.Fatalf("ParseFormat() error = %v, wantErr %v", err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("ParseFormat() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestParseCSV(t *testing.T) {
	data := []byte("Nome,Registro,Frequência,NOTA\n" +
		"Ana Souza,R001,95,8.5\n" +
		"\n" + // blank line still advances the counter
		"Bruno Lima,R002,,\"6,0\"\n")

	rows, err := Parse(data, FormatCSV)
	if err != nil {
		t.Fatalf("Parse() failed: %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("Parse() returned %d rows, want 2", len(rows))
	}

	// headers are folded: diacritics stripped, lowercased
	first := rows[0]
	if first.Line != 2 {
		t.Errorf("first row Line = %d, want 2", first.Line)
	}
	if got := first.Cells["frequencia"]; got != "95" {
		t.Errorf("frequencia = %q, want %q", got, "95")
	}
	if got := first.Cells["nota"]; got != "8.5" {
		t.Errorf("nota = %q, want %q", got, "8.5")
	}

	// blank rows are skipped but line numbers keep matching the file
	second := rows[1]
	if second.Line != 4 {
		t.Errorf("second row Line = %d, want 4", second.Line)
	}
	if got := second.Cells["frequencia"]; got != "" {
		t.Errorf("missing cell = %q, want empty", got)
	}
	if got := second.Cells["nota"]; got != "6,0" {
		t.Errorf("nota = %q, want %q", got, "6,0")
	}
}

func TestParseCSVEmpty(t *testing.T) {
	if _, err := Parse(nil, FormatCSV); err != ErrEmptyFile {
		t.Errorf("Parse() error = %v, want %v", err, ErrEmptyFile)
	}
	if _, err := Parse([]byte(" , , \n"), FormatCSV); err != ErrEmptyFile {
		t.Errorf("Parse() error = %v, want %v", err, ErrEmptyFile)
	}
}

func TestParseXLSX(t *testing.T) {
	f := excelize.NewFile()
	rows := [][]interface{}{
		{"Nome", "Registro", "Nota"},
		{"Ana Souza", "R001", 8.5},
		{}, // blank
		{"Bruno Lima", "R002", 6},
	}
	for i, row := range rows {
		row := row
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			t.Fatalf("CoordinatesToCellName() failed: %v", err)
		}
		if err := f.SetSheetRow("Sheet1", cell, &row); err != nil {
			t.Fatalf("SetSheetRow() failed: %v", err)
		}
	}
	buf, err := f.WriteToBuffer()
	if err != nil {
		t.Fatalf("WriteToBuffer() failed: %v", err)
	}

	parsed, err := Parse(buf.Bytes(), FormatXLSX)
	if err != nil {
		t.Fatalf("Parse() failed: %v", err)
	}
	if len(parsed) != 2 {
		t.Fatalf("Parse() returned %d rows, want 2", len(parsed))
	}
	if got := parsed[0].Cells["nome"]; got != "Ana Souza" {
		t.Errorf("nome = %q, want %q", got, "Ana Souza")
	}
	if parsed[1].Line != 4 {
		t.Errorf("second row Line = %d, want 4", parsed[1].Line)
	}
	if got := parsed[1].Cells["registro"]; got != "R002" {
		t.Errorf("registro = %q, want %q", got, "R002")
	}
}

func TestParseDeterministic(t *testing.T) {
	data := []byte("Nome,Registro\nAna,R001\nBruno,R002\n")
	a, err := Parse(data, FormatCSV)
	if err != nil {
		t.Fatalf("Parse() failed: %v", err)
	}
	b, err := Parse(data, FormatCSV)
	if err != nil {
		t.Fatalf("Parse() failed: %v", err)
	}
	if len(a) != len(b) {
		t.Fatalf("row counts differ: %d vs %d", len(a), len(b))
	}
	for i := range a {
		if a[i].Line != b[i].Line {
			t.Errorf("row %d: Line %d vs %d", i, a[i].Line, b[i].Line)
		}
		for k, v := range a[i].Cells {
			if b[i].Cells[k] != v {
				t.Errorf("row %d: cell %q differs", i, k)
			}
		}
	}
}
