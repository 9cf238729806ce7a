package backend

import "github.com/dojouemura/go-matricula/pkg/session"

// Payload is the enrollment submission body in the backend's snake_case
// schema.
type Payload struct {
	Guardian   GuardianPayload    `json:"responsavel"`
	Address    AddressPayload     `json:"endereco"`
	CEP        string             `json:"cep"`
	Dependents []DependentPayload `json:"dependentes"`
}

// GuardianPayload mirrors the responsavel object.
type GuardianPayload struct {
	CPF      string `json:"cpf"`
	RG       string `json:"rg"`
	FullName string `json:"nome_completo"`
	Phone    string `json:"telefone"`
	Email    string `json:"email"`
}

// AddressPayload mirrors the endereco object.
type AddressPayload struct {
	Street       string `json:"logradouro"`
	Number       string `json:"numero"`
	Complement   string `json:"complemento"`
	Neighborhood string `json:"bairro"`
	City         string `json:"localidade"`
	Region       string `json:"uf"`
}

// DependentPayload mirrors one entry of the dependentes array. Consent flags
// and the uploaded photo are not part of the wire contract; the backend keeps
// its own acceptance records.
type DependentPayload struct {
	FullName          string   `json:"nome_completo"`
	CPF               string   `json:"cpf"`
	BirthDate         string   `json:"data_nascimento"`
	Relationship      string   `json:"parentesco"`
	SchoolName        string   `json:"escola_nome"`
	SchoolGrade       string   `json:"escola_serie"`
	SchoolShift       string   `json:"escola_periodo"`
	HealthPlan        string   `json:"plano_saude_qual"`
	Allergies         string   `json:"alergias_quais"`
	Medications       string   `json:"medicamentos_quais"`
	MedicalConditions string   `json:"condicoes_medicas"`
	EmergencyName     string   `json:"contato_emergencia_nome"`
	EmergencyPhone    string   `json:"contato_emergencia_telefone"`
	SportsHistory     []string `json:"historico_esportivo"`
}

// BuildPayload reshapes a form session into the wire schema.
func BuildPayload(state session.State) Payload {
	p := Payload{
		Guardian: GuardianPayload{
			CPF:      state.Guardian.CPF,
			RG:       state.Guardian.RG,
			FullName: state.Guardian.FullName,
			Phone:    state.Guardian.Phone,
			Email:    state.Guardian.Email,
		},
		Address: AddressPayload{
			Street:       state.Address.Street,
			Number:       state.Address.Number,
			Complement:   state.Address.Complement,
			Neighborhood: state.Address.Neighborhood,
			City:         state.Address.City,
			Region:       state.Address.Region,
		},
		CEP:        state.CEP,
		Dependents: make([]DependentPayload, 0, len(state.Dependents)),
	}
	for _, dep := range state.Dependents {
		history := dep.SportsHistory
		if history == nil {
			history = []string{}
		}
		p.Dependents = append(p.Dependents, DependentPayload{
			FullName:          dep.FullName,
			CPF:               dep.CPF,
			BirthDate:         dep.BirthDate,
			Relationship:      dep.Relationship,
			SchoolName:        dep.SchoolName,
			SchoolGrade:       string(dep.SchoolGrade),
			SchoolShift:       string(dep.SchoolShift),
			HealthPlan:        dep.HealthPlan,
			Allergies:         dep.Allergies,
			Medications:       dep.Medications,
			MedicalConditions: dep.MedicalConditions,
			EmergencyName:     dep.EmergencyName,
			EmergencyPhone:    dep.EmergencyPhone,
			SportsHistory:     history,
		})
	}
	return p
}
