package nfa

import (
	"fmt"

	"github.com/coregx/scnr/classes"
	"github.com/coregx/scnr/internal/conv"
)

// Builder constructs an NFA incrementally using a low-level API, mirroring
// the forward-patch style of a textbook Thompson construction: states are
// added before their targets are known, then Patch/PatchSplit fill in the
// forward references once the target is compiled.
type Builder struct {
	states []State
	start  StateID
}

// NewBuilder creates a new, empty NFA builder.
func NewBuilder() *Builder {
	return &Builder{states: make([]State, 0, 16), start: InvalidState}
}

// AddMatch adds an accepting state and returns its ID.
func (b *Builder) AddMatch() StateID {
	id := StateID(conv.IntToUint32(len(b.states)))
	b.states = append(b.states, State{id: id, kind: StateMatch})
	return id
}

// AddClass adds a state that transitions to next on any character accepted
// by the class cid.
func (b *Builder) AddClass(cid classes.ID, next StateID) StateID {
	id := StateID(conv.IntToUint32(len(b.states)))
	b.states = append(b.states, State{id: id, kind: StateClass, class: cid, next: next})
	return id
}

// AddSplit adds a state with epsilon transitions to left and right, used for
// alternation and for the loop/skip branches of quantifiers.
func (b *Builder) AddSplit(left, right StateID) StateID {
	id := StateID(conv.IntToUint32(len(b.states)))
	b.states = append(b.states, State{id: id, kind: StateSplit, left: left, right: right})
	return id
}

// AddEpsilon adds a state with a single epsilon transition to next.
func (b *Builder) AddEpsilon(next StateID) StateID {
	id := StateID(conv.IntToUint32(len(b.states)))
	b.states = append(b.states, State{id: id, kind: StateEpsilon, next: next})
	return id
}

// Patch rewrites the target of a StateClass or StateEpsilon state.
func (b *Builder) Patch(id, target StateID) error {
	if int(id) >= len(b.states) {
		return &BuildError{Message: "state ID out of bounds", StateID: id}
	}
	s := &b.states[id]
	switch s.kind {
	case StateClass, StateEpsilon:
		s.next = target
		return nil
	default:
		return &BuildError{Message: fmt.Sprintf("cannot patch state of kind %s", s.kind), StateID: id}
	}
}

// PatchSplit rewrites both targets of a StateSplit state.
func (b *Builder) PatchSplit(id, left, right StateID) error {
	if int(id) >= len(b.states) {
		return &BuildError{Message: "state ID out of bounds", StateID: id}
	}
	s := &b.states[id]
	if s.kind != StateSplit {
		return &BuildError{Message: fmt.Sprintf("expected Split state, got %s", s.kind), StateID: id}
	}
	s.left, s.right = left, right
	return nil
}

// SetStart records the NFA's start state.
func (b *Builder) SetStart(start StateID) { b.start = start }

// Len returns the number of states added so far.
func (b *Builder) Len() int { return len(b.states) }

// Validate checks that the start state and every transition target are in
// range. It does not check reachability or cycles; epsilon cycles are
// expected (e.g. `a*`) and are handled by visited-set tracking in the
// epsilon-closure computation, not forbidden here.
func (b *Builder) Validate() error {
	if b.start == InvalidState {
		return &BuildError{Message: "start state not set"}
	}
	if int(b.start) >= len(b.states) {
		return &BuildError{Message: "start state out of bounds", StateID: b.start}
	}
	for i, s := range b.states {
		id := StateID(i)
		switch s.kind {
		case StateClass, StateEpsilon:
			if s.next != InvalidState && int(s.next) >= len(b.states) {
				return &BuildError{Message: fmt.Sprintf("invalid next state %d", s.next), StateID: id}
			}
		case StateSplit:
			if s.left != InvalidState && int(s.left) >= len(b.states) {
				return &BuildError{Message: fmt.Sprintf("invalid left state %d", s.left), StateID: id}
			}
			if s.right != InvalidState && int(s.right) >= len(b.states) {
				return &BuildError{Message: fmt.Sprintf("invalid right state %d", s.right), StateID: id}
			}
		}
	}
	return nil
}

// Build finalizes the builder into an immutable NFA. The accept parameter
// names the state to record as the NFA's single accept state (it must have
// been created with AddMatch).
func (b *Builder) Build(accept StateID) (*NFA, error) {
	if err := b.Validate(); err != nil {
		return nil, err
	}
	if int(accept) >= len(b.states) || b.states[accept].kind != StateMatch {
		return nil, &BuildError{Message: "accept state is not a match state", StateID: accept}
	}
	return &NFA{states: b.states, start: b.start, accept: accept}, nil
}
