// Package session models the enrollment form state: the guardian, their
// address and postal code, and the ordered dependent list. Mutation helpers
// are copy-on-write so callers holding an earlier snapshot never observe
// partial updates.
package session

import (
	"fmt"
	"time"

	"github.com/dojouemura/go-matricula/pkg/validate"
)

// State is the full in-memory form session. The zero value is a fresh, empty
// form.
type State struct {
	Guardian   Guardian
	Address    Address
	CEP        string
	Dependents []Dependent
}

// AddDependent appends a fresh dependent at the end of the list and returns
// its index. Display numbering ("Dependente N") is index+1.
func (s *State) AddDependent() int {
	s.Dependents = append(s.cloneDependents(), NewDependent())
	return len(s.Dependents) - 1
}

// RemoveDependent removes the dependent at index; later entries shift down.
func (s *State) RemoveDependent(index int) error {
	if index < 0 || index >= len(s.Dependents) {
		return fmt.Errorf("session: dependent index %d out of range", index)
	}
	next := make([]Dependent, 0, len(s.Dependents)-1)
	for i, dep := range s.Dependents {
		if i == index {
			continue
		}
		next = append(next, dep.clone())
	}
	s.Dependents = next
	return nil
}

// UpdateDependent replaces the dependent at index with the result of mutate
// applied to a deep copy. The rest of the list is preserved in order and the
// previous slice is never written through, so snapshots taken before the call
// stay valid.
func (s *State) UpdateDependent(index int, mutate func(Dependent) Dependent) error {
	if index < 0 || index >= len(s.Dependents) {
		return fmt.Errorf("session: dependent index %d out of range", index)
	}
	if mutate == nil {
		return fmt.Errorf("session: mutate function is required")
	}
	next := s.cloneDependents()
	next[index] = mutate(next[index].clone())
	s.Dependents = next
	return nil
}

// AcceptTerm flips one consent flag on one dependent, leaving every other
// dependent and term untouched.
func (s *State) AcceptTerm(index int, kind TermKind) error {
	return s.UpdateDependent(index, func(d Dependent) Dependent {
		d.Terms = d.Terms.WithAccepted(kind)
		return d
	})
}

// Eligible reports whether the form can be submitted: at least one dependent,
// each with all three consent terms accepted.
func (s *State) Eligible() bool {
	if len(s.Dependents) == 0 {
		return false
	}
	for _, dep := range s.Dependents {
		if !dep.Terms.All() {
			return false
		}
	}
	return true
}

// DisplayAge derives the dependent's age from its birth date at the given
// time. ok is false when the birth date is absent or invalid; the form shows
// a blank age field in that case.
func (s *State) DisplayAge(index int, now time.Time) (int, bool) {
	if index < 0 || index >= len(s.Dependents) {
		return 0, false
	}
	return validate.Age(s.Dependents[index].BirthDate, now)
}

// Reset returns the session to its initial empty values.
func (s *State) Reset() {
	*s = State{}
}

// Clone returns a deep copy of the session, safe to read while the original
// keeps changing.
func (s *State) Clone() State {
	return State{
		Guardian:   s.Guardian,
		Address:    s.Address,
		CEP:        s.CEP,
		Dependents: s.cloneDependents(),
	}
}

func (s *State) cloneDependents() []Dependent {
	out := make([]Dependent, len(s.Dependents))
	for i, dep := range s.Dependents {
		out[i] = dep.clone()
	}
	return out
}
