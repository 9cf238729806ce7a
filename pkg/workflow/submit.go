package workflow

import (
	"context"
	"errors"

	"github.com/dojouemura/go-matricula/pkg/backend"
)

// ErrSubmitInFlight is returned when a submission is already outstanding.
var ErrSubmitInFlight = errors.New("workflow: submission already in flight")

// ErrNotEligible is returned when the form has no dependents or a dependent
// is missing consent terms.
var ErrNotEligible = errors.New("workflow: form is not eligible for submission")

const (
	submitSuccessMessage = "Inscrição enviada com sucesso! O responsável receberá um e-mail de confirmação em breve."
	submitGenericError   = "Ocorreu um erro ao enviar a inscrição."
)

// Submit ships the enrollment to the backend. Preconditions mirror the
// disabled state of the submit button: at least one dependent, every
// dependent with all consents, no submission outstanding. On success the
// draft is cleared and the session resets to empty; on failure everything the
// guardian typed is preserved for retry and the feedback carries the server's
// detail message when one was supplied. Draft writes are suspended for the
// duration of the request.
func (c *Controller) Submit(ctx context.Context) error {
	c.mu.Lock()
	if c.inFlight {
		c.mu.Unlock()
		return ErrSubmitInFlight
	}
	if !c.state.Eligible() {
		c.mu.Unlock()
		return ErrNotEligible
	}
	c.feedback = Feedback{}
	c.inFlight = true
	payload := backend.BuildPayload(c.state.Clone())
	c.mu.Unlock()

	err := c.backend.Submit(ctx, payload)

	c.mu.Lock()
	defer c.mu.Unlock()
	c.inFlight = false

	if err != nil {
		message := submitGenericError
		var apiErr *backend.APIError
		if errors.As(err, &apiErr) && apiErr.Detail != "" {
			message = apiErr.Detail
		}
		c.feedback = Feedback{Message: "Erro: " + message, Kind: FeedbackError}
		c.logger.Printf("workflow: submit failed: %v", err)
		return err
	}

	c.feedback = Feedback{Message: submitSuccessMessage, Kind: FeedbackSuccess}
	if clearErr := c.store.Clear(); clearErr != nil {
		c.logger.Printf("workflow: draft clear failed: %v", clearErr)
	}
	c.state.Reset()
	c.lookupCEP = ""
	return nil
}
