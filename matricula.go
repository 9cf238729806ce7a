// Package matricula is the enrollment workflow for the Dojô Uemura site: a
// guardian fills in their own data, an address resolved by postal code, and a
// list of dependents; per-dependent consent terms gate submission to the
// school's API. The root package re-exports the pieces most callers need; the
// pkg tree holds the concern-specific packages.
package matricula

import (
	"github.com/dojouemura/go-matricula/pkg/backend"
	"github.com/dojouemura/go-matricula/pkg/draft"
	"github.com/dojouemura/go-matricula/pkg/postal"
	"github.com/dojouemura/go-matricula/pkg/session"
	"github.com/dojouemura/go-matricula/pkg/workflow"
)

// Guardian is the responsible adult on the enrollment.
type Guardian = session.Guardian

// Address is the guardian's residential address.
type Address = session.Address

// Dependent is one enrollee under the guardian.
type Dependent = session.Dependent

// TermKind identifies a consent category.
type TermKind = session.TermKind

// Draft is the locally persisted form snapshot.
type Draft = session.Draft

// Feedback is the submission outcome message.
type Feedback = workflow.Feedback

// Controller drives one enrollment session.
type Controller = workflow.Controller

// Option configures the controller.
type Option = workflow.Option

// New builds an enrollment controller, restoring any saved draft. With no
// options it talks to the local development backend, the public ViaCEP
// service, and a JSON draft file in the user config directory.
func New(options ...Option) *Controller {
	return workflow.New(options...)
}

// NewBackendClient builds the enrollment API client.
func NewBackendClient(options ...backend.Option) *backend.Client {
	return backend.NewClient(options...)
}

// NewPostalClient builds the postal lookup client.
func NewPostalClient(options ...postal.Option) *postal.Client {
	return postal.NewClient(options...)
}

// NewFileStore builds the JSON-file draft store.
func NewFileStore(path string) *draft.FileStore {
	return draft.NewFileStore(path)
}
