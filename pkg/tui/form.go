package tui

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/dojouemura/go-matricula/pkg/session"
	"github.com/dojouemura/go-matricula/pkg/validate"
	"github.com/dojouemura/go-matricula/pkg/workflow"
)

// Form walks a guardian through the whole enrollment: guardian data, address
// with postal autofill, the dependent list, consent terms and submission.
type Form struct {
	ctrl   *workflow.Controller
	driver PromptDriver
}

// NewForm wires a form to a controller and a prompt driver.
func NewForm(ctrl *workflow.Controller, driver PromptDriver) *Form {
	return &Form{ctrl: ctrl, driver: driver}
}

var termLabels = map[session.TermKind]string{
	session.TermLiability: "Termo de Responsabilidade",
	session.TermImage:     "Termo de Direito de Imagem",
	session.TermMedical:   "Termo de Condição Médica",
}

// Run drives the interactive session until the enrollment is submitted or the
// guardian leaves. The draft persists across runs either way.
func (f *Form) Run(ctx context.Context) error {
	if state := f.ctrl.Session(); state.Guardian.FullName != "" || len(state.Dependents) > 0 {
		f.driver.Info(ctx, "Rascunho anterior restaurado. Os campos preenchidos foram mantidos.")
	}

	if err := f.guardianSection(ctx); err != nil {
		return err
	}
	if err := f.addressSection(ctx); err != nil {
		return err
	}

	for {
		state := f.ctrl.Session()
		options := []string{"Adicionar dependente"}
		for i, dep := range state.Dependents {
			name := dep.FullName
			if name == "" {
				name = "(sem nome)"
			}
			options = append(options, fmt.Sprintf("Editar dependente %d: %s", i+1, name))
		}
		if len(state.Dependents) > 0 {
			options = append(options, "Remover dependente", "Revisar termos")
		}
		if f.ctrl.CanSubmit() {
			options = append(options, "Enviar inscrição")
		}
		options = append(options, "Salvar rascunho e sair")

		choice, err := f.driver.Select(ctx, SelectConfig{
			Message:  "Dependentes",
			Options:  options,
			PageSize: 10,
		})
		if err != nil {
			return err
		}

		switch label := options[choice]; label {
		case "Adicionar dependente":
			index := f.ctrl.AddDependent()
			if err := f.dependentSection(ctx, index); err != nil {
				return err
			}
		case "Remover dependente":
			if err := f.removeDependent(ctx); err != nil {
				return err
			}
		case "Revisar termos":
			if err := f.termsSection(ctx); err != nil {
				return err
			}
		case "Enviar inscrição":
			done, err := f.submit(ctx)
			if err != nil {
				return err
			}
			if done {
				return nil
			}
		case "Salvar rascunho e sair":
			f.driver.Info(ctx, "Rascunho salvo. A inscrição pode ser retomada a qualquer momento.")
			return nil
		default:
			// "Editar dependente N: ..."
			if err := f.dependentSection(ctx, choice-1); err != nil {
				return err
			}
		}
	}
}

func (f *Form) guardianSection(ctx context.Context) error {
	state := f.ctrl.Session()
	g := state.Guardian

	fields := []struct {
		message   string
		current   string
		validator func(string) error
		assign    func(*session.Guardian, string)
	}{
		{"Nome completo do responsável", g.FullName, required("nome"), func(g *session.Guardian, v string) { g.FullName = v }},
		{"CPF do responsável", g.CPF, cpfValidator, func(g *session.Guardian, v string) { g.CPF = validate.FormatCPF(v) }},
		{"RG", g.RG, required("RG"), func(g *session.Guardian, v string) { g.RG = v }},
		{"Telefone", g.Phone, phoneValidator, func(g *session.Guardian, v string) { g.Phone = validate.FormatPhone(v) }},
		{"E-mail", g.Email, emailValidator, func(g *session.Guardian, v string) { g.Email = v }},
	}
	for _, field := range fields {
		value, err := f.driver.Input(ctx, InputConfig{
			Message:   field.message,
			Default:   field.current,
			Validator: field.validator,
		})
		if err != nil {
			return err
		}
		assign := field.assign
		f.ctrl.UpdateGuardian(func(g session.Guardian) session.Guardian {
			assign(&g, value)
			return g
		})
	}
	return nil
}

func (f *Form) addressSection(ctx context.Context) error {
	state := f.ctrl.Session()

	cep, err := f.driver.Input(ctx, InputConfig{
		Message:   "CEP",
		Default:   state.CEP,
		Help:      "A cidade e o estado são preenchidos automaticamente.",
		Validator: cepValidator,
	})
	if err != nil {
		return err
	}
	f.ctrl.SetCEP(ctx, validate.FormatCEP(cep))
	f.ctrl.Wait()

	state = f.ctrl.Session()
	addr := state.Address
	fields := []struct {
		message   string
		current   string
		validator func(string) error
		assign    func(*session.Address, string)
	}{
		{"Logradouro (Rua, Av.)", addr.Street, required("logradouro"), func(a *session.Address, v string) { a.Street = v }},
		{"Número", addr.Number, required("número"), func(a *session.Address, v string) { a.Number = v }},
		{"Complemento (Apto, Bloco)", addr.Complement, nil, func(a *session.Address, v string) { a.Complement = v }},
		{"Bairro", addr.Neighborhood, required("bairro"), func(a *session.Address, v string) { a.Neighborhood = v }},
	}
	for _, field := range fields {
		value, err := f.driver.Input(ctx, InputConfig{
			Message:   field.message,
			Default:   field.current,
			Validator: field.validator,
		})
		if err != nil {
			return err
		}
		assign := field.assign
		f.ctrl.UpdateAddress(func(a session.Address) session.Address {
			assign(&a, value)
			return a
		})
	}

	state = f.ctrl.Session()
	if state.Address.City != "" {
		f.driver.Info(ctx, fmt.Sprintf("Cidade/UF: %s/%s", state.Address.City, state.Address.Region))
	}
	return nil
}

func (f *Form) dependentSection(ctx context.Context, index int) error {
	state := f.ctrl.Session()
	if index < 0 || index >= len(state.Dependents) {
		return fmt.Errorf("tui: dependente %d inexistente", index+1)
	}
	dep := state.Dependents[index]
	f.driver.Info(ctx, fmt.Sprintf("Dependente %d", index+1))

	type textField struct {
		message   string
		current   string
		validator func(string) error
		assign    func(*session.Dependent, string)
	}
	personal := []textField{
		{"Nome completo do dependente", dep.FullName, required("nome"), func(d *session.Dependent, v string) { d.FullName = v }},
		{"CPF do dependente (opcional)", dep.CPF, optional(cpfValidator), func(d *session.Dependent, v string) { d.CPF = validate.FormatCPF(v) }},
		{"Parentesco", dep.Relationship, required("parentesco"), func(d *session.Dependent, v string) { d.Relationship = v }},
		{"Data de nascimento (AAAA-MM-DD)", dep.BirthDate, birthDateValidator, func(d *session.Dependent, v string) { d.BirthDate = v }},
	}
	for _, field := range personal {
		if err := f.promptDependentField(ctx, index, field.message, field.current, field.validator, field.assign); err != nil {
			return err
		}
	}

	if age, ok := f.ctrl.DisplayAge(index); ok {
		f.driver.Info(ctx, fmt.Sprintf("Idade: %d anos", age))
	}

	if err := f.promptDependentField(ctx, index, "Nome da escola", dep.SchoolName, nil, func(d *session.Dependent, v string) { d.SchoolName = v }); err != nil {
		return err
	}

	grades := session.SchoolGrades()
	gradeOptions := make([]string, len(grades))
	gradeDefault := 0
	for i, grade := range grades {
		gradeOptions[i] = string(grade)
		if grade == dep.SchoolGrade {
			gradeDefault = i
		}
	}
	gradeChoice, err := f.driver.Select(ctx, SelectConfig{
		Message:      "Série",
		Options:      gradeOptions,
		DefaultIndex: gradeDefault,
		PageSize:     12,
	})
	if err != nil {
		return err
	}
	shifts := session.SchoolShifts()
	shiftOptions := make([]string, len(shifts))
	shiftDefault := 0
	for i, shift := range shifts {
		shiftOptions[i] = string(shift)
		if shift == dep.SchoolShift {
			shiftDefault = i
		}
	}
	shiftChoice, err := f.driver.Select(ctx, SelectConfig{
		Message:      "Período",
		Options:      shiftOptions,
		DefaultIndex: shiftDefault,
	})
	if err != nil {
		return err
	}
	if err := f.ctrl.UpdateDependent(index, func(d session.Dependent) session.Dependent {
		d.SchoolGrade = grades[gradeChoice]
		d.SchoolShift = shifts[shiftChoice]
		return d
	}); err != nil {
		return err
	}

	medical := []textField{
		{"Plano de saúde (se houver)", dep.HealthPlan, nil, func(d *session.Dependent, v string) { d.HealthPlan = v }},
		{"Alergias (se houver)", dep.Allergies, nil, func(d *session.Dependent, v string) { d.Allergies = v }},
		{"Medicamentos (se houver)", dep.Medications, nil, func(d *session.Dependent, v string) { d.Medications = v }},
		{"Nome do contato de emergência", dep.EmergencyName, required("contato de emergência"), func(d *session.Dependent, v string) { d.EmergencyName = v }},
		{"Telefone do contato de emergência", dep.EmergencyPhone, phoneValidator, func(d *session.Dependent, v string) { d.EmergencyPhone = validate.FormatPhone(v) }},
	}
	for _, field := range medical {
		if err := f.promptDependentField(ctx, index, field.message, field.current, field.validator, field.assign); err != nil {
			return err
		}
	}

	conditions, err := f.driver.TextArea(ctx, TextAreaConfig{
		Message: "Outras condições médicas",
		Default: dep.MedicalConditions,
	})
	if err != nil {
		return err
	}
	if err := f.ctrl.UpdateDependent(index, func(d session.Dependent) session.Dependent {
		d.MedicalConditions = conditions
		return d
	}); err != nil {
		return err
	}

	return f.sportsHistorySection(ctx, index)
}

func (f *Form) promptDependentField(ctx context.Context, index int, message, current string, validator func(string) error, assign func(*session.Dependent, string)) error {
	value, err := f.driver.Input(ctx, InputConfig{
		Message:   message,
		Default:   current,
		Validator: validator,
	})
	if err != nil {
		return err
	}
	return f.ctrl.UpdateDependent(index, func(d session.Dependent) session.Dependent {
		assign(&d, value)
		return d
	})
}

func (f *Form) sportsHistorySection(ctx context.Context, index int) error {
	for {
		more, err := f.driver.Confirm(ctx, ConfirmConfig{
			Message: "Adicionar uma modalidade ao histórico esportivo?",
		})
		if err != nil {
			return err
		}
		if !more {
			return nil
		}
		entry, err := f.driver.Input(ctx, InputConfig{
			Message:   "Modalidade e período (ex: Judô 2022-2024)",
			Validator: required("modalidade"),
		})
		if err != nil {
			return err
		}
		if err := f.ctrl.UpdateDependent(index, func(d session.Dependent) session.Dependent {
			d.SportsHistory = append(d.SportsHistory, entry)
			return d
		}); err != nil {
			return err
		}
	}
}

func (f *Form) removeDependent(ctx context.Context) error {
	state := f.ctrl.Session()
	options := make([]string, 0, len(state.Dependents)+1)
	for i, dep := range state.Dependents {
		name := dep.FullName
		if name == "" {
			name = "(sem nome)"
		}
		options = append(options, fmt.Sprintf("Dependente %d: %s", i+1, name))
	}
	options = append(options, "Cancelar")
	choice, err := f.driver.Select(ctx, SelectConfig{
		Message: "Remover qual dependente?",
		Options: options,
	})
	if err != nil {
		return err
	}
	if choice == len(options)-1 {
		return nil
	}
	return f.ctrl.RemoveDependent(choice)
}

func (f *Form) termsSection(ctx context.Context) error {
	state := f.ctrl.Session()
	for i, dep := range state.Dependents {
		for _, kind := range session.TermKinds() {
			if dep.Terms.Accepted(kind) {
				continue
			}
			if err := f.reviewTerm(ctx, i, kind); err != nil {
				return err
			}
		}
	}
	return nil
}

func (f *Form) reviewTerm(ctx context.Context, index int, kind session.TermKind) error {
	f.driver.Info(ctx, fmt.Sprintf("Dependente %d — %s", index+1, termLabels[kind]))
	if err := f.ctrl.OpenTerm(ctx, index, kind); err != nil {
		return err
	}
	modal := f.ctrl.Modal()
	f.driver.Info(ctx, modal.Title)
	f.driver.Info(ctx, modal.Body)

	accept, err := f.driver.Confirm(ctx, ConfirmConfig{
		Message: "Eu li e aceito o " + termLabels[kind] + ".",
	})
	if err != nil {
		return err
	}
	if accept {
		f.ctrl.AcceptTerm()
	} else {
		f.ctrl.CloseModal()
	}
	return nil
}

func (f *Form) submit(ctx context.Context) (bool, error) {
	state := f.ctrl.Session()
	confirm, err := f.driver.Confirm(ctx, ConfirmConfig{
		Message: fmt.Sprintf("Enviar inscrição com %s?", pluralDependents(len(state.Dependents))),
		Default: true,
	})
	if err != nil {
		return false, err
	}
	if !confirm {
		return false, nil
	}

	err = f.ctrl.Submit(ctx)
	feedback := f.ctrl.Feedback()
	if feedback.Message != "" {
		f.driver.Info(ctx, feedback.Message)
	}
	if err != nil {
		// Submission failure: everything stays filled in for retry.
		return false, nil
	}
	return true, nil
}

func pluralDependents(n int) string {
	if n == 1 {
		return "1 dependente"
	}
	return strconv.Itoa(n) + " dependentes"
}

func required(label string) func(string) error {
	return func(value string) error {
		if !validate.Required(value) {
			return fmt.Errorf("informe o campo %s", label)
		}
		return nil
	}
}

func optional(fn func(string) error) func(string) error {
	return func(value string) error {
		if value == "" {
			return nil
		}
		return fn(value)
	}
}

func cpfValidator(value string) error {
	if !validate.CPF(value) {
		return errors.New("CPF inválido")
	}
	return nil
}

func phoneValidator(value string) error {
	if !validate.Phone(value) {
		return errors.New("telefone inválido")
	}
	return nil
}

func emailValidator(value string) error {
	if !validate.Email(value) {
		return errors.New("e-mail inválido")
	}
	return nil
}

func cepValidator(value string) error {
	if !validate.CEP(value) {
		return errors.New("CEP deve ter 8 dígitos")
	}
	return nil
}

func birthDateValidator(value string) error {
	if !validate.BirthDate(value, time.Now()) {
		return errors.New("data de nascimento inválida (AAAA-MM-DD, idade entre 3 e 120 anos)")
	}
	return nil
}
