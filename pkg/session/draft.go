package session

// Draft is the serializable projection of a session: everything the guardian
// typed, nothing transient (no modal state, no submission flags). Field names
// are fixed; a draft saved by an older build must keep loading.
type Draft struct {
	Guardian   Guardian    `json:"responsavel"`
	Address    Address     `json:"endereco"`
	CEP        string      `json:"cep"`
	Dependents []Dependent `json:"dependentes"`
}

// Draft captures the current session as a persistable snapshot. The snapshot
// owns its own dependent slice, so later edits never leak into it.
func (s *State) Draft() Draft {
	return Draft{
		Guardian:   s.Guardian,
		Address:    s.Address,
		CEP:        s.CEP,
		Dependents: s.cloneDependents(),
	}
}

// RestoreDraft replaces the session contents with a previously saved draft.
// Missing sections restore to their zero values.
func (s *State) RestoreDraft(d Draft) {
	s.Guardian = d.Guardian
	s.Address = d.Address
	s.CEP = d.CEP
	s.Dependents = make([]Dependent, len(d.Dependents))
	for i, dep := range d.Dependents {
		s.Dependents[i] = dep.clone()
	}
}
