// Package draft persists the in-progress enrollment form so a guardian can
// close the session and pick up where they left off. Every store keeps exactly
// one draft under a fixed key; saves overwrite, loads of absent or corrupt
// data come back empty rather than failing the session.
package draft

import "github.com/dojouemura/go-matricula/pkg/session"

// Key is the fixed identifier the draft is stored under, shared by every
// backend so a store swap keeps the saved draft addressable.
const Key = "dojo-inscricao-draft"

// Store persists a single draft snapshot.
type Store interface {
	// Save overwrites the stored draft with the given snapshot.
	Save(d session.Draft) error
	// Load returns the stored draft. ok is false when nothing usable is
	// stored; corrupt payloads report ok=false with a nil error so the
	// session can continue from defaults.
	Load() (d session.Draft, ok bool, err error)
	// Clear removes the stored draft. Clearing an absent draft is a no-op.
	Clear() error
}
