package workflow

import (
	"context"
	"fmt"
	"html"
	"strings"
	"sync"

	"github.com/microcosm-cc/bluemonday"

	"github.com/dojouemura/go-matricula/pkg/session"
)

// Modal is the consent dialog state. It is transient: closing the modal
// resets it and nothing about it is persisted in drafts.
type Modal struct {
	Open           bool
	Loading        bool
	DependentIndex int
	Kind           session.TermKind
	Title          string
	Body           string
}

const (
	termLoadingTitle = "Carregando..."
	termLoadingBody  = "Buscando termo..."
	termErrorTitle   = "Erro ao Carregar"
	termErrorBody    = "Ocorreu um erro ao carregar o texto do termo. Por favor, tente novamente."
)

var (
	termPolicyOnce sync.Once
	termPolicy     *bluemonday.Policy
)

// sanitizeTermText strips any markup the backend may embed in term bodies so
// the text is safe to print on a terminal or plain page.
func sanitizeTermText(raw string) string {
	termPolicyOnce.Do(func() {
		termPolicy = bluemonday.StrictPolicy()
	})
	return strings.TrimSpace(html.UnescapeString(termPolicy.Sanitize(raw)))
}

// Modal returns the current consent dialog state.
func (c *Controller) Modal() Modal {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.modal
}

// OpenTerm opens the consent dialog for one (dependent, kind) pair and
// fetches the term text, suspending until the fetch settles. The dialog shows
// a loading placeholder meanwhile. If the user closes or redirects the dialog
// before the fetch lands, the late result is discarded. A fetch failure shows
// the fixed error text; the dialog stays open and the term stays unaccepted.
func (c *Controller) OpenTerm(ctx context.Context, index int, kind session.TermKind) error {
	c.mu.Lock()
	if index < 0 || index >= len(c.state.Dependents) {
		c.mu.Unlock()
		return fmt.Errorf("workflow: dependent index %d out of range", index)
	}
	c.modalGen++
	gen := c.modalGen
	c.modal = Modal{
		Open:           true,
		Loading:        true,
		DependentIndex: index,
		Kind:           kind,
		Title:          termLoadingTitle,
		Body:           termLoadingBody,
	}
	c.mu.Unlock()

	term, err := c.backend.FetchTerm(ctx, kind)

	c.mu.Lock()
	defer c.mu.Unlock()
	if c.modalGen != gen {
		// Modal was closed or reassigned while the fetch was outstanding.
		return nil
	}
	if err != nil {
		c.logger.Printf("workflow: term %q fetch failed: %v", kind, err)
		c.modal.Loading = false
		c.modal.Title = termErrorTitle
		c.modal.Body = termErrorBody
		return nil
	}
	c.modal.Loading = false
	c.modal.Title = sanitizeTermText(term.Title)
	c.modal.Body = sanitizeTermText(term.Body)
	return nil
}

// AcceptTerm records acceptance for the pair the modal is open on and closes
// the dialog. Exactly one flag on exactly one dependent changes. Accepting
// with no open modal is a no-op.
func (c *Controller) AcceptTerm() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.modal.Open {
		return
	}
	if err := c.state.AcceptTerm(c.modal.DependentIndex, c.modal.Kind); err != nil {
		c.logger.Printf("workflow: accept term: %v", err)
	} else {
		c.persistLocked()
	}
	c.closeModalLocked()
}

// CloseModal dismisses the consent dialog without touching any flag. It
// covers both explicit dismissal and backdrop clicks.
func (c *Controller) CloseModal() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.closeModalLocked()
}

func (c *Controller) closeModalLocked() {
	c.modalGen++
	c.modal = Modal{}
}
