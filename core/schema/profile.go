package schema

import (
	"errors"
	"fmt"
	"strings"
)

var ErrUnknownProfile = errors.New("no schema profile for this product and institution")

type (
	ProductType     string
	InstitutionType string
)

const (
	ProductRetention   ProductType = "retention"
	ProductRecruitment ProductType = "recruitment"

	InstitutionSchool     InstitutionType = "school"
	InstitutionUniversity InstitutionType = "university"
)

// Field kinds
type Kind int

const (
	KindText Kind = iota
	KindNumeric
	KindEnum
)

// Value formats for KindText fields that carry extra structure.
const (
	FormatEmail = "email"
	FormatCPF   = "cpf"
)

// Canonical field names (normalized header form). The template exporter and
// the row validator both derive from these, so the spreadsheet contract
// cannot drift between the two.
const (
	FieldName          = "nome"
	FieldRegistration  = "registro"
	FieldGradeYear     = "serie"
	FieldClass         = "turma"
	FieldShift         = "turno"
	FieldGrade         = "nota"
	FieldAttendance    = "frequencia"
	FieldBehavior      = "comportamento"
	FieldGuardian      = "responsavel"
	FieldGuardianEmail = "responsavel_email"
	FieldGuardianCPF   = "responsavel_cpf"
	FieldGuardianPhone = "responsavel_telefone"
	FieldEmail         = "email"
	FieldCPF           = "cpf"
	FieldPhone         = "telefone"
	FieldCourse        = "curso_interesse"
	FieldGradeInterest = "serie_interesse"
	FieldSource        = "origem"
)

var leadSources = []string{"indicacao", "site", "evento", "redes_sociais", "outro"}

type (
	// FieldSchema declares one logical spreadsheet column.
	FieldSchema struct {
		Name     string // canonical, normalized header
		Label    string // display header used in exported templates
		Required bool
		Kind     Kind
		Format   string   // optional, KindText only (FormatEmail, FormatCPF)
		Min, Max float64  // KindNumeric bounds, inclusive
		Enum     []string // KindEnum allowed values, normalized
	}

	// KeyPolicy names the field(s) identifying the same real-world entity
	// across imports. A single candidate is mandatory; with several
	// candidates at least one must be non-empty.
	KeyPolicy struct {
		Candidates []string
	}

	// Profile is the immutable field contract for one
	// (productType, institutionType) combination.
	Profile struct {
		Product     ProductType
		Institution InstitutionType
		Fields      []FieldSchema
		Key         KeyPolicy
	}
)

func (k KeyPolicy) Describe() string {
	return strings.Join(k.Candidates, " or ")
}

// KeyValue picks the key for a row: the first non-empty candidate in
// declaration order. Empty string means the policy is unsatisfied.
func (k KeyPolicy) KeyValue(get func(name string) string) string {
	for _, name := range k.Candidates {
		if v := strings.TrimSpace(get(name)); v != "" {
			return v
		}
	}
	return ""
}

func (p Profile) Field(name string) (FieldSchema, bool) {
	for _, f := range p.Fields {
		if f.Name == name {
			return f, true
		}
	}
	return FieldSchema{}, false
}

// Headers returns the template header row, in declaration order.
func (p Profile) Headers() []string {
	hh := make([]string, 0, len(p.Fields))
	for _, f := range p.Fields {
		hh = append(hh, f.Label)
	}
	return hh
}

// FieldNames returns the canonical names, in declaration order.
func (p Profile) FieldNames() []string {
	nn := make([]string, 0, len(p.Fields))
	for _, f := range p.Fields {
		nn = append(nn, f.Name)
	}
	return nn
}

func (p Profile) String() string {
	return fmt.Sprintf("%s/%s", p.Product, p.Institution)
}

type profileKey struct {
	product     ProductType
	institution InstitutionType
}

// The single source of truth for every spreadsheet contract.
// The original system kept independently drifting copies of these lists in
// the UI and the importer; here the validator and the template exporter
// both read this registry.
var registry = map[profileKey]Profile{
	{ProductRetention, InstitutionSchool}: {
		Product:     ProductRetention,
		Institution: InstitutionSchool,
		Fields: []FieldSchema{
			{Name: FieldName, Label: "Nome", Required: true, Kind: KindText},
			{Name: FieldRegistration, Label: "Registro", Required: true, Kind: KindText},
			{Name: FieldGradeYear, Label: "Série", Kind: KindText},
			{Name: FieldClass, Label: "Turma", Kind: KindText},
			{Name: FieldShift, Label: "Turno", Kind: KindEnum, Enum: []string{"manha", "tarde", "noite", "integral"}},
			{Name: FieldGrade, Label: "Nota", Kind: KindNumeric, Min: 0, Max: 10},
			{Name: FieldAttendance, Label: "Frequência", Kind: KindNumeric, Min: 0, Max: 100},
			{Name: FieldBehavior, Label: "Comportamento", Kind: KindNumeric, Min: 0, Max: 5},
			{Name: FieldGuardian, Label: "Responsável", Kind: KindText},
			{Name: FieldGuardianEmail, Label: "Responsável Email", Kind: KindText, Format: FormatEmail},
			{Name: FieldGuardianPhone, Label: "Responsável Telefone", Kind: KindText},
		},
		Key: KeyPolicy{Candidates: []string{FieldRegistration}},
	},
	{ProductRecruitment, InstitutionSchool}: {
		Product:     ProductRecruitment,
		Institution: InstitutionSchool,
		Fields: []FieldSchema{
			{Name: FieldName, Label: "Nome", Required: true, Kind: KindText},
			{Name: FieldGradeInterest, Label: "Série Interesse", Kind: KindText},
			{Name: FieldGuardian, Label: "Responsável", Required: true, Kind: KindText},
			{Name: FieldGuardianEmail, Label: "Responsável Email", Kind: KindText, Format: FormatEmail},
			{Name: FieldGuardianCPF, Label: "Responsável CPF", Kind: KindText, Format: FormatCPF},
			{Name: FieldGuardianPhone, Label: "Responsável Telefone", Kind: KindText},
			{Name: FieldSource, Label: "Origem", Kind: KindEnum, Enum: leadSources},
		},
		Key: KeyPolicy{Candidates: []string{FieldGuardianEmail, FieldGuardianCPF}},
	},
	{ProductRecruitment, InstitutionUniversity}: {
		Product:     ProductRecruitment,
		Institution: InstitutionUniversity,
		Fields: []FieldSchema{
			{Name: FieldName, Label: "Nome", Required: true, Kind: KindText},
			{Name: FieldEmail, Label: "Email", Kind: KindText, Format: FormatEmail},
			{Name: FieldCPF, Label: "CPF", Kind: KindText, Format: FormatCPF},
			{Name: FieldPhone, Label: "Telefone", Kind: KindText},
			{Name: FieldCourse, Label: "Curso Interesse", Kind: KindText},
			{Name: FieldSource, Label: "Origem", Kind: KindEnum, Enum: leadSources},
		},
		Key: KeyPolicy{Candidates: []string{FieldEmail, FieldCPF}},
	},
}

// Get returns the profile for a (product, institution) pair.
func Get(product ProductType, institution InstitutionType) (Profile, error) {
	p, ok := registry[profileKey{product, institution}]
	if !ok {
		return Profile{}, ErrUnknownProfile
	}
	return p, nil
}

// Profiles returns all registered profiles.
func Profiles() []Profile {
	pp := make([]Profile, 0, len(registry))
	for _, p := range registry {
		pp = append(pp, p)
	}
	return pp
}
