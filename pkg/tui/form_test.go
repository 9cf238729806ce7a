package tui

import (
	"context"
	"sync"
	"testing"

	"github.com/dojouemura/go-matricula/pkg/backend"
	"github.com/dojouemura/go-matricula/pkg/postal"
	"github.com/dojouemura/go-matricula/pkg/session"
	"github.com/dojouemura/go-matricula/pkg/workflow"
)

// scriptDriver replays queued answers. Select answers are matched by option
// label so the script stays readable as menu contents shift.
type scriptDriver struct {
	t         *testing.T
	inputs    []string
	selects   []string
	confirms  []bool
	textareas []string
	infos     []string
}

func (d *scriptDriver) Input(_ context.Context, cfg InputConfig) (string, error) {
	if len(d.inputs) == 0 {
		d.t.Fatalf("unexpected input prompt %q", cfg.Message)
	}
	value := d.inputs[0]
	d.inputs = d.inputs[1:]
	if cfg.Validator != nil {
		if err := cfg.Validator(value); err != nil {
			d.t.Fatalf("scripted answer %q rejected by %q: %v", value, cfg.Message, err)
		}
	}
	return value, nil
}

func (d *scriptDriver) Confirm(_ context.Context, cfg ConfirmConfig) (bool, error) {
	if len(d.confirms) == 0 {
		d.t.Fatalf("unexpected confirm prompt %q", cfg.Message)
	}
	value := d.confirms[0]
	d.confirms = d.confirms[1:]
	return value, nil
}

func (d *scriptDriver) Select(_ context.Context, cfg SelectConfig) (int, error) {
	if len(d.selects) == 0 {
		d.t.Fatalf("unexpected select prompt %q (options %v)", cfg.Message, cfg.Options)
	}
	want := d.selects[0]
	d.selects = d.selects[1:]
	for i, option := range cfg.Options {
		if option == want {
			return i, nil
		}
	}
	d.t.Fatalf("scripted choice %q not offered in %v", want, cfg.Options)
	return 0, nil
}

func (d *scriptDriver) TextArea(_ context.Context, cfg TextAreaConfig) (string, error) {
	if len(d.textareas) == 0 {
		d.t.Fatalf("unexpected textarea prompt %q", cfg.Message)
	}
	value := d.textareas[0]
	d.textareas = d.textareas[1:]
	return value, nil
}

func (d *scriptDriver) Info(_ context.Context, msg string) error {
	d.infos = append(d.infos, msg)
	return nil
}

type memStore struct {
	mu     sync.Mutex
	draft  session.Draft
	stored bool
}

func (s *memStore) Save(d session.Draft) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.draft, s.stored = d, true
	return nil
}

func (s *memStore) Load() (session.Draft, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.draft, s.stored, nil
}

func (s *memStore) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.draft, s.stored = session.Draft{}, false
	return nil
}

type fakeBackend struct {
	mu        sync.Mutex
	submitted []backend.Payload
}

func (b *fakeBackend) FetchTerm(_ context.Context, kind session.TermKind) (backend.Term, error) {
	return backend.Term{Title: "Termo (" + string(kind) + ")", Body: "Texto do termo."}, nil
}

func (b *fakeBackend) Submit(_ context.Context, p backend.Payload) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.submitted = append(b.submitted, p)
	return nil
}

type fakeResolver struct{}

func (fakeResolver) Resolve(_ context.Context, cep string) (postal.Result, error) {
	if cep == "78195000" {
		return postal.Result{City: "Chapada dos Guimarães", Region: "MT"}, nil
	}
	return postal.Result{}, postal.ErrNotFound
}

func TestFormFullEnrollment(t *testing.T) {
	b := &fakeBackend{}
	ctrl := workflow.New(
		workflow.WithStore(&memStore{}),
		workflow.WithBackend(b),
		workflow.WithPostal(fakeResolver{}),
	)

	driver := &scriptDriver{
		t: t,
		inputs: []string{
			// Guardian.
			"Maria Silva", "529.982.247-25", "123456-7", "65981111125", "maria@example.com",
			// Address.
			"78195000", "Rod. Emanuel Pinheiro", "S/N", "KM 60", "Centro",
			// Dependent.
			"João Silva", "", "Filho", "2015-03-10", "Escola Municipal",
			"Unimed", "Nenhuma", "Nenhum", "Maria Silva", "65981111125",
		},
		selects: []string{
			"Adicionar dependente",
			"5º ano",
			"Tarde",
			"Revisar termos",
			"Enviar inscrição",
		},
		confirms: []bool{
			false, // no sports history entries
			true, true, true, // accept the three terms
			true, // confirm submission
		},
		textareas: []string{"Asma leve"},
	}

	form := NewForm(ctrl, driver)
	if err := form.Run(context.Background()); err != nil {
		t.Fatalf("run: %v", err)
	}

	if len(b.submitted) != 1 {
		t.Fatalf("submitted %d payloads, want 1", len(b.submitted))
	}
	payload := b.submitted[0]
	if payload.Guardian.FullName != "Maria Silva" {
		t.Errorf("guardian = %q", payload.Guardian.FullName)
	}
	if payload.Guardian.CPF != "529.982.247-25" {
		t.Errorf("guardian cpf = %q", payload.Guardian.CPF)
	}
	if payload.Address.City != "Chapada dos Guimarães" || payload.Address.Region != "MT" {
		t.Errorf("address city/region not autofilled: %+v", payload.Address)
	}
	if len(payload.Dependents) != 1 {
		t.Fatalf("dependents = %d", len(payload.Dependents))
	}
	dep := payload.Dependents[0]
	if dep.FullName != "João Silva" || dep.SchoolGrade != "5º ano" || dep.SchoolShift != "Tarde" {
		t.Errorf("dependent = %+v", dep)
	}
	if dep.MedicalConditions != "Asma leve" {
		t.Errorf("medical conditions = %q", dep.MedicalConditions)
	}

	feedback := ctrl.Feedback()
	if feedback.Kind != workflow.FeedbackSuccess {
		t.Errorf("feedback = %+v", feedback)
	}
	if state := ctrl.Session(); len(state.Dependents) != 0 {
		t.Error("session not reset after successful submission")
	}
}

func TestFormDecliningTermKeepsSubmitDisabled(t *testing.T) {
	ctrl := workflow.New(
		workflow.WithStore(&memStore{}),
		workflow.WithBackend(&fakeBackend{}),
		workflow.WithPostal(fakeResolver{}),
	)

	driver := &scriptDriver{
		t: t,
		inputs: []string{
			"Maria Silva", "529.982.247-25", "123456-7", "65981111125", "maria@example.com",
			"78195000", "Rod. Emanuel Pinheiro", "S/N", "KM 60", "Centro",
			"João Silva", "", "Filho", "2015-03-10", "Escola Municipal",
			"Unimed", "Nenhuma", "Nenhum", "Maria Silva", "65981111125",
		},
		selects: []string{
			"Adicionar dependente",
			"5º ano",
			"Tarde",
			"Revisar termos",
			"Salvar rascunho e sair", // "Enviar inscrição" must not be offered
		},
		confirms: []bool{
			false,             // no sports history
			true, true, false, // decline the medical term
		},
		textareas: []string{""},
	}

	form := NewForm(ctrl, driver)
	if err := form.Run(context.Background()); err != nil {
		t.Fatalf("run: %v", err)
	}

	if ctrl.CanSubmit() {
		t.Error("form submittable with a declined term")
	}
	terms := ctrl.Session().Dependents[0].Terms
	want := session.TermSet{Liability: true, Image: true}
	if terms != want {
		t.Errorf("terms = %+v, want %+v", terms, want)
	}
}

func TestFormRestoredDraftAnnounced(t *testing.T) {
	store := &memStore{}
	seed := workflow.New(workflow.WithStore(store), workflow.WithBackend(&fakeBackend{}), workflow.WithPostal(fakeResolver{}))
	seed.UpdateGuardian(func(g session.Guardian) session.Guardian {
		g.FullName = "Maria Silva"
		return g
	})

	ctrl := workflow.New(workflow.WithStore(store), workflow.WithBackend(&fakeBackend{}), workflow.WithPostal(fakeResolver{}))
	driver := &scriptDriver{
		t: t,
		inputs: []string{
			"Maria Silva", "529.982.247-25", "123456-7", "65981111125", "maria@example.com",
			"78195000", "Rod. Emanuel Pinheiro", "S/N", "KM 60", "Centro",
		},
		selects: []string{"Salvar rascunho e sair"},
	}

	form := NewForm(ctrl, driver)
	if err := form.Run(context.Background()); err != nil {
		t.Fatalf("run: %v", err)
	}

	found := false
	for _, msg := range driver.infos {
		if msg == "Rascunho anterior restaurado. Os campos preenchidos foram mantidos." {
			found = true
		}
	}
	if !found {
		t.Errorf("restore notice missing from %v", driver.infos)
	}
}
