// Package workflow drives the enrollment form session: edits flow into the
// session state, every change persists a draft, postal lookups fill the
// address, the consent modal gates submission per dependent, and an explicit
// submit ships the form to the backend. One Controller owns one session; all
// methods are safe for the UI goroutine plus the background lookups the
// controller itself launches.
package workflow

import (
	"context"
	"io"
	"log"
	"sync"
	"time"

	"github.com/dojouemura/go-matricula/pkg/backend"
	"github.com/dojouemura/go-matricula/pkg/draft"
	"github.com/dojouemura/go-matricula/pkg/postal"
	"github.com/dojouemura/go-matricula/pkg/session"
)

// Backend is the slice of the enrollment API the workflow needs.
type Backend interface {
	FetchTerm(ctx context.Context, kind session.TermKind) (backend.Term, error)
	Submit(ctx context.Context, p backend.Payload) error
}

// FeedbackKind classifies submission feedback.
type FeedbackKind string

const (
	FeedbackSuccess FeedbackKind = "success"
	FeedbackError   FeedbackKind = "error"
)

// Feedback is the persistent submission outcome message. It is cleared at the
// start of the next attempt, never auto-dismissed.
type Feedback struct {
	Message string
	Kind    FeedbackKind
}

// Controller owns the form session and coordinates drafts, lookups, consent
// terms and submission.
type Controller struct {
	mu    sync.Mutex
	state session.State

	store    draft.Store
	backend  Backend
	resolver postal.Resolver
	logger   *log.Logger
	now      func() time.Time

	modal    Modal
	modalGen uint64

	inFlight bool
	feedback Feedback

	lookupCEP string
	lookups   sync.WaitGroup
}

// Option configures the controller.
type Option func(*Controller)

// WithStore overrides the draft store.
func WithStore(store draft.Store) Option {
	return func(c *Controller) {
		if store != nil {
			c.store = store
		}
	}
}

// WithBackend overrides the enrollment API client.
func WithBackend(b Backend) Option {
	return func(c *Controller) {
		if b != nil {
			c.backend = b
		}
	}
}

// WithPostal overrides the postal code resolver.
func WithPostal(r postal.Resolver) Option {
	return func(c *Controller) {
		if r != nil {
			c.resolver = r
		}
	}
}

// WithLogger directs diagnostics (swallowed storage failures, discarded
// lookups) to the given logger.
func WithLogger(logger *log.Logger) Option {
	return func(c *Controller) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// WithClock overrides the time source used for age display.
func WithClock(now func() time.Time) Option {
	return func(c *Controller) {
		if now != nil {
			c.now = now
		}
	}
}

// New builds a controller and restores any previously saved draft. Storage
// failures during restore are logged and the session starts empty.
func New(options ...Option) *Controller {
	c := &Controller{
		store:    draft.NewFileStore(""),
		backend:  backend.NewClient(),
		resolver: postal.NewClient(),
		logger:   log.New(io.Discard, "", 0),
		now:      time.Now,
	}
	for _, opt := range options {
		opt(c)
	}

	if d, ok, err := c.store.Load(); err != nil {
		c.logger.Printf("workflow: draft restore failed: %v", err)
	} else if ok {
		c.state.RestoreDraft(d)
	}
	return c
}

// Session returns a deep copy of the current form state.
func (c *Controller) Session() session.State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state.Clone()
}

// Feedback returns the latest submission outcome.
func (c *Controller) Feedback() Feedback {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.feedback
}

// InFlight reports whether a submission is outstanding.
func (c *Controller) InFlight() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.inFlight
}

// CanSubmit reports whether the submit action should be enabled: at least one
// dependent, all consents accepted, no submission outstanding.
func (c *Controller) CanSubmit() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return !c.inFlight && c.state.Eligible()
}

// UpdateGuardian applies an edit to the guardian record and persists the
// draft.
func (c *Controller) UpdateGuardian(mutate func(session.Guardian) session.Guardian) {
	if mutate == nil {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.state.Guardian = mutate(c.state.Guardian)
	c.persistLocked()
}

// UpdateAddress applies an edit to the address. City and region are owned by
// the postal lookup; user edits to them are discarded.
func (c *Controller) UpdateAddress(mutate func(session.Address) session.Address) {
	if mutate == nil {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	next := mutate(c.state.Address)
	next.City = c.state.Address.City
	next.Region = c.state.Address.Region
	c.state.Address = next
	c.persistLocked()
}

// AddDependent appends an empty dependent and returns its index.
func (c *Controller) AddDependent() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	index := c.state.AddDependent()
	c.persistLocked()
	return index
}

// RemoveDependent removes the dependent at index.
func (c *Controller) RemoveDependent(index int) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if err := c.state.RemoveDependent(index); err != nil {
		return err
	}
	c.persistLocked()
	return nil
}

// UpdateDependent applies an edit to one dependent, leaving the rest of the
// list untouched.
func (c *Controller) UpdateDependent(index int, mutate func(session.Dependent) session.Dependent) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if err := c.state.UpdateDependent(index, mutate); err != nil {
		return err
	}
	c.persistLocked()
	return nil
}

// DisplayAge derives a dependent's age for display. ok is false when the
// birth date is absent or invalid.
func (c *Controller) DisplayAge(index int) (int, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state.DisplayAge(index, c.now())
}

// Wait blocks until background postal lookups settle. Call before shutdown
// and in tests that assert on lookup results.
func (c *Controller) Wait() {
	c.lookups.Wait()
}

// persistLocked rewrites the full draft snapshot. Writes are suppressed while
// a submission is outstanding; storage failures are logged and swallowed so
// the session keeps going in memory.
func (c *Controller) persistLocked() {
	if c.inFlight {
		return
	}
	if err := c.store.Save(c.state.Draft()); err != nil {
		c.logger.Printf("workflow: draft save failed: %v", err)
	}
}
