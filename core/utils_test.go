package core

import "testing"

func TestNormalizeHeader(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{in: "Nome", want: "nome"},
		{in: "Frequência", want: "frequencia"},
		{in: " Responsável Email ", want: "responsavel_email"},
		{in: "responsavel_email", want: "responsavel_email"},
		{in: "Série  Interesse", want: "serie_interesse"},
		{in: "COMPORTAMENTO", want: "comportamento"},
		{in: "", want: ""},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			if got := NormalizeHeader(tt.in); got != tt.want {
				t.Errorf("NormalizeHeader(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestCleanString(t *testing.T) {
	if got := CleanString("  Ana Souza "); got != "Ana Souza" {
		t.Errorf("CleanString() = %q", got)
	}
	if got := CleanString("  ANA ", true); got != "ana" {
		t.Errorf("CleanString(lower) = %q", got)
	}
}
