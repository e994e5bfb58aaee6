// Package selector holds the single-selection state machine over a catalog
// and applies the confirmed choice to the audio server.
package selector

import "github.com/treykane/paccu/internal/model"

// Outcome is where the selection loop stands.
type Outcome int

const (
	Pending Outcome = iota
	Confirmed
	Cancelled
)

func (o Outcome) String() string {
	switch o {
	case Pending:
		return "pending"
	case Confirmed:
		return "confirmed"
	case Cancelled:
		return "cancelled"
	default:
		return "unknown"
	}
}

// Command is one navigation input, already decoded from a key.
type Command int

const (
	None Command = iota
	MoveUp
	MoveDown
	Confirm
	Cancel
)

// State is the highlighted row and the outcome for one run.
type State struct {
	catalog     model.Catalog
	highlighted int
	hasIndex    bool
	outcome     Outcome
}

// New starts on the active target, or on the first row when none is
// active. An empty catalog starts out Cancelled.
func New(c model.Catalog) *State {
	s := &State{catalog: c}
	if len(c) == 0 {
		s.outcome = Cancelled
		return s
	}
	s.hasIndex = true
	if idx, ok := c.ActiveIndex(); ok {
		s.highlighted = idx
	}
	return s
}

// Apply performs cmd. Commands after a terminal outcome are ignored.
func (s *State) Apply(cmd Command) {
	if s.outcome != Pending {
		return
	}
	n := len(s.catalog)
	switch cmd {
	case MoveDown:
		if s.hasIndex {
			s.highlighted = (s.highlighted + 1) % n
		}
	case MoveUp:
		if s.hasIndex {
			if s.highlighted == 0 {
				s.highlighted = n - 1
			} else {
				s.highlighted--
			}
		}
	case Cancel:
		s.hasIndex = false
		s.highlighted = 0
		s.outcome = Cancelled
	case Confirm:
		if s.hasIndex {
			s.outcome = Confirmed
		}
	}
}

// Highlighted returns the highlighted row, if any.
func (s *State) Highlighted() (int, bool) { return s.highlighted, s.hasIndex }

func (s *State) Outcome() Outcome { return s.outcome }

// Done reports whether the loop has reached a terminal outcome.
func (s *State) Done() bool { return s.outcome != Pending }

func (s *State) Catalog() model.Catalog { return s.catalog }

// Selected returns the confirmed target.
func (s *State) Selected() (model.OutputTarget, bool) {
	if s.outcome != Confirmed || !s.hasIndex {
		return model.OutputTarget{}, false
	}
	return s.catalog[s.highlighted], true
}
