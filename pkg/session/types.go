package session

// Guardian holds the responsible adult's identification and contact data.
type Guardian struct {
	FullName string `json:"nomeCompleto"`
	CPF      string `json:"cpf"`
	RG       string `json:"rg"`
	Phone    string `json:"telefone"`
	Email    string `json:"email"`
}

// Address is the guardian's residential address. City and Region are filled
// exclusively by the postal lookup; the form renders them read-only.
type Address struct {
	Street       string `json:"logradouro"`
	Number       string `json:"numero"`
	Complement   string `json:"complemento"`
	Neighborhood string `json:"bairro"`
	City         string `json:"localidade"`
	Region       string `json:"uf"`
}

// TermKind identifies one of the three consent categories a guardian accepts
// per dependent. Values double as the backend term identifiers.
type TermKind string

const (
	TermLiability TermKind = "responsabilidade"
	TermImage     TermKind = "imagem"
	TermMedical   TermKind = "medica"
)

// TermKinds lists every consent category in display order.
func TermKinds() []TermKind {
	return []TermKind{TermLiability, TermImage, TermMedical}
}

// TermSet records which consent terms were accepted for one dependent.
type TermSet struct {
	Liability bool `json:"responsabilidade"`
	Image     bool `json:"imagem"`
	Medical   bool `json:"medica"`
}

// Accepted reports whether the given kind was accepted.
func (t TermSet) Accepted(kind TermKind) bool {
	switch kind {
	case TermLiability:
		return t.Liability
	case TermImage:
		return t.Image
	case TermMedical:
		return t.Medical
	default:
		return false
	}
}

// WithAccepted returns a copy with the given kind flipped on. Unknown kinds
// return the set unchanged.
func (t TermSet) WithAccepted(kind TermKind) TermSet {
	switch kind {
	case TermLiability:
		t.Liability = true
	case TermImage:
		t.Image = true
	case TermMedical:
		t.Medical = true
	}
	return t
}

// All reports whether every consent category was accepted. It is the
// per-dependent submission eligibility predicate.
func (t TermSet) All() bool {
	return t.Liability && t.Image && t.Medical
}

// SchoolShift enumerates the school attendance periods offered on the form.
type SchoolShift string

const (
	ShiftMorning   SchoolShift = "Manhã"
	ShiftAfternoon SchoolShift = "Tarde"
	ShiftEvening   SchoolShift = "Noite"
	ShiftFullTime  SchoolShift = "Integral"
)

// SchoolShifts lists the shifts in display order.
func SchoolShifts() []SchoolShift {
	return []SchoolShift{ShiftMorning, ShiftAfternoon, ShiftEvening, ShiftFullTime}
}

// SchoolGrade is one of the twelve grade levels the form accepts.
type SchoolGrade string

// SchoolGrades lists the grade levels grouped the way the form presents them:
// 1º–4º (básico 1º ciclo), 5º–6º (2º ciclo), 7º–9º (3º ciclo), 10º–12º
// (secundário).
func SchoolGrades() []SchoolGrade {
	grades := make([]SchoolGrade, 0, 12)
	for _, label := range []string{
		"1º ano", "2º ano", "3º ano", "4º ano",
		"5º ano", "6º ano",
		"7º ano", "8º ano", "9º ano",
		"10º ano", "11º ano", "12º ano",
	} {
		grades = append(grades, SchoolGrade(label))
	}
	return grades
}

// Photo is upload metadata for a dependent's picture. Bytes stay out of the
// session; the form keeps a reference to the selected file only.
type Photo struct {
	Filename    string `json:"filename"`
	ContentType string `json:"contentType"`
	Size        int64  `json:"size"`
}

// Dependent is one minor or ward being enrolled, with nested personal, school,
// medical and emergency data plus the per-dependent consent record.
type Dependent struct {
	FullName     string `json:"nomeCompleto"`
	CPF          string `json:"cpf"`
	BirthDate    string `json:"dataNascimento"`
	Relationship string `json:"parentesco"`
	Photo        *Photo `json:"foto"`

	SchoolName  string      `json:"escolaNome"`
	SchoolGrade SchoolGrade `json:"escolaSerie"`
	SchoolShift SchoolShift `json:"escolaPeriodo"`

	HealthPlan        string `json:"planoSaudeQual"`
	Allergies         string `json:"alergiasQuais"`
	Medications       string `json:"medicamentosQuais"`
	MedicalConditions string `json:"condicoesMedicas"`

	EmergencyName  string `json:"emergenciaNome"`
	EmergencyPhone string `json:"emergenciaTelefone"`

	SportsHistory []string `json:"historicoEsportivo"`

	Terms TermSet `json:"termos"`
}

// NewDependent returns a dependent with every field at its form default: empty
// strings, the morning shift preselected, no sports history and no accepted
// terms.
func NewDependent() Dependent {
	return Dependent{
		SchoolShift:   ShiftMorning,
		SportsHistory: []string{},
	}
}

// clone returns a deep copy so list updates never share slices or photo
// pointers with prior snapshots.
func (d Dependent) clone() Dependent {
	out := d
	out.SportsHistory = append([]string(nil), d.SportsHistory...)
	if d.Photo != nil {
		photo := *d.Photo
		out.Photo = &photo
	}
	return out
}
