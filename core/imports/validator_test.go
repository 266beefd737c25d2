package imports

import (
	"strings"
	"testing"

	"github.com/edukeep/edukeep/core/schema"
)

func mustProfile(t *testing.T, product schema.ProductType, institution schema.InstitutionType) schema.Profile {
	t.Helper()
	p, err := schema.Get(product, institution)
	if err != nil {
		t.Fatalf("schema.Get() failed: %v", err)
	}
	return p
}

func parseCSV(t *testing.T, data string) []RawRow {
	t.Helper()
	rows, err := Parse([]byte(data), FormatCSV)
	if err != nil {
		t.Fatalf("Parse() failed: %v", err)
	}
	return rows
}

func TestValidateRetention(t *testing.T) {
	profile := mustProfile(t, schema.ProductRetention, schema.InstitutionSchool)

	t.Run("clean batch", func(t *testing.T) {
		rows := parseCSV(t, "Nome,Registro,Nota,Frequência,Comportamento,Turno\n"+
			"Ana Souza,R001,\"8,5\",95,4,Manhã\n"+
			"Bruno Lima,R002,6.0,80,3,tarde\n")

		records, errs := Validate(rows, profile)
		if len(errs) != 0 {
			t.Fatalf("Validate() errs = %v, want none", errs)
		}
		if len(records) != 2 {
			t.Fatalf("Validate() returned %d records, want 2", len(records))
		}

		// numbers normalize to dot-decimal, enums fold
		if got := records[0].Fields["nota"]; got != "8.5" {
			t.Errorf("nota = %q, want %q", got, "8.5")
		}
		if got := records[0].Fields["turno"]; got != "manha" {
			t.Errorf("turno = %q, want %q", got, "manha")
		}
		if records[0].KeyValue != "R001" {
			t.Errorf("KeyValue = %q, want %q", records[0].KeyValue, "R001")
		}
	})

	t.Run("errors accumulate per row", func(t *testing.T) {
		rows := parseCSV(t, "Nome,Registro,Nota,Frequência\n"+
			"Ana,R001,abc,120\n")

		_, errs := Validate(rows, profile)
		if len(errs) != 2 {
			t.Fatalf("Validate() errs = %v, want 2", errs)
		}
		for _, e := range errs {
			if e.Row != 2 {
				t.Errorf("error Row = %d, want 2", e.Row)
			}
		}
	})

	t.Run("missing registro drops only that row", func(t *testing.T) {
		rows := parseCSV(t, "Nome,Registro,Nota\n"+
			"Ana,R001,8\n"+
			"Bruno,,7\n"+
			"Caio,R003,9\n")

		records, errs := Validate(rows, profile)
		if len(records) != 2 {
			t.Errorf("Validate() returned %d records, want 2", len(records))
		}
		if len(errs) != 1 {
			t.Fatalf("Validate() errs = %v, want 1", errs)
		}
		if errs[0].Row != 3 || errs[0].Column != "registro" {
			t.Errorf("error = %+v, want row 3 column registro", errs[0])
		}
	})

	t.Run("header typo suggestion", func(t *testing.T) {
		rows := parseCSV(t, "Nome,Registroo,Nota\n"+
			"Ana,R001,8\n")

		_, errs := Validate(rows, profile)
		if len(errs) != 1 {
			t.Fatalf("Validate() errs = %v, want 1", errs)
		}
		if !strings.Contains(errs[0].Message, `did you mean column "registroo"`) {
			t.Errorf("message = %q, want a suggestion for registroo", errs[0].Message)
		}
	})

	t.Run("bad enum", func(t *testing.T) {
		rows := parseCSV(t, "Nome,Registro,Turno\n"+
			"Ana,R001,madrugada\n")

		_, errs := Validate(rows, profile)
		if len(errs) != 1 {
			t.Fatalf("Validate() errs = %v, want 1", errs)
		}
		if errs[0].Column != "turno" {
			t.Errorf("error column = %q, want turno", errs[0].Column)
		}
	})
}

func TestValidateRecruitment(t *testing.T) {
	profile := mustProfile(t, schema.ProductRecruitment, schema.InstitutionSchool)

	t.Run("either key candidate satisfies", func(t *testing.T) {
		rows := parseCSV(t, "Nome,Responsável,Responsável Email,Responsável CPF\n"+
			"Ana,Marta Souza,marta@example.com,\n"+
			"Bruno,Caio Lima,,123.456.789-09\n")

		records, errs := Validate(rows, profile)
		if len(errs) != 0 {
			t.Fatalf("Validate() errs = %v, want none", errs)
		}
		if records[0].KeyValue != "marta@example.com" {
			t.Errorf("KeyValue = %q, want the email", records[0].KeyValue)
		}
		if records[1].KeyValue != "123.456.789-09" {
			t.Errorf("KeyValue = %q, want the CPF", records[1].KeyValue)
		}
	})

	t.Run("no key candidate", func(t *testing.T) {
		rows := parseCSV(t, "Nome,Responsável,Responsável Email,Responsável CPF\n"+
			"Ana,Marta Souza,,\n")

		_, errs := Validate(rows, profile)
		if len(errs) != 1 {
			t.Fatalf("Validate() errs = %v, want 1", errs)
		}
		if !strings.Contains(errs[0].Message, "at least one of") {
			t.Errorf("message = %q, want a disjunction error", errs[0].Message)
		}
	})

	t.Run("bad email and cpf", func(t *testing.T) {
		rows := parseCSV(t, "Nome,Responsável,Responsável Email,Responsável CPF\n"+
			"Ana,Marta Souza,not-an-email,12345\n")

		_, errs := Validate(rows, profile)
		if len(errs) != 2 {
			t.Fatalf("Validate() errs = %v, want 2", errs)
		}
	})
}

func TestParseDecimal(t *testing.T) {
	tests := []struct {
		in      string
		want    float64
		wantErr bool
	}{
		{in: "8.5", want: 8.5},
		{in: "8,5", want: 8.5},
		{in: " 95 ", want: 95},
		{in: "abc", wantErr: true},
		{in: "8,5,0", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := parseDecimal(tt.in)
			if (err != nil) != tt.wantErr {
				t.Fatalf("parseDecimal() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err == nil && got != tt.want {
				t.Errorf("parseDecimal() = %v, want %v", got, tt.want)
			}
		})
	}
}
