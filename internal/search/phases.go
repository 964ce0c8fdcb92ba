package search

import "fmt"

// Phase is where a search run currently stands
type Phase int

const (
	// PhaseInitialized - board scanned, nothing expanded yet
	PhaseInitialized Phase = iota

	// PhaseExpanding - popping frontier entries
	PhaseExpanding

	// PhaseSucceeded - a goal cell was popped
	PhaseSucceeded

	// PhaseExhausted - the frontier emptied without reaching the goal row
	PhaseExhausted
)

func (p Phase) String() string {
	switch p {
	case PhaseInitialized:
		return "Initialized"
	case PhaseExpanding:
		return "Expanding"
	case PhaseSucceeded:
		return "Succeeded"
	case PhaseExhausted:
		return "Exhausted"
	default:
		return fmt.Sprintf("Unknown(%d)", p)
	}
}

// IsTerminal returns true if the phase ends the search
func (p Phase) IsTerminal() bool {
	return p == PhaseSucceeded || p == PhaseExhausted
}

// AllowedTransitions returns the phases this phase can move to
func (p Phase) AllowedTransitions() []Phase {
	switch p {
	case PhaseInitialized:
		return []Phase{PhaseExpanding}
	case PhaseExpanding:
		return []Phase{PhaseSucceeded, PhaseExhausted}
	default:
		return []Phase{}
	}
}

// CanTransitionTo checks if a transition from this phase to target is allowed
func (p Phase) CanTransitionTo(target Phase) bool {
	for _, phase := range p.AllowedTransitions() {
		if phase == target {
			return true
		}
	}
	return false
}

// tracker records the current phase and refuses illegal transitions
type tracker struct {
	phase Phase
}

func (t *tracker) transitionTo(target Phase) error {
	if !t.phase.CanTransitionTo(target) {
		return fmt.Errorf("invalid search transition from %s to %s", t.phase, target)
	}
	t.phase = target
	return nil
}
