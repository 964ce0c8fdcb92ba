package core

import "strings"

// MoveKind distinguishes a plain step from a chain of jumps
type MoveKind int

const (
	MoveStep MoveKind = iota
	MoveJump
)

func (k MoveKind) String() string {
	if k == MoveJump {
		return "jump"
	}
	return "step"
}

// Move is an ordered, non-empty sequence of directions evaluated relative to
// an origin. A step applies one translation; a jump applies two translations
// per direction (hop-over, then landing).
type Move struct {
	Kind       MoveKind
	Directions []Direction
}

// Step creates a single plain-step move
func Step(d Direction) Move {
	return Move{Kind: MoveStep, Directions: []Direction{d}}
}

// Jump creates a jump chain over the given directions
func Jump(dirs ...Direction) Move {
	chain := make([]Direction, len(dirs))
	copy(chain, dirs)
	return Move{Kind: MoveJump, Directions: chain}
}

// Destination replays the move from origin and returns the final landing cell
func (m Move) Destination(origin Coordinate) Coordinate {
	pos := origin
	for _, d := range m.Directions {
		pos = pos.Translate(d)
		if m.Kind == MoveJump {
			pos = pos.Translate(d)
		}
	}
	return pos
}

// Key is a stable textual identity for the move, e.g. "jump:Down,Left"
func (m Move) Key() string {
	var sb strings.Builder
	sb.WriteString(m.Kind.String())
	sb.WriteByte(':')
	for i, d := range m.Directions {
		if i > 0 {
			sb.WriteByte(',')
		}
		sb.WriteString(d.String())
	}
	return sb.String()
}

// Equal compares kind and direction sequence
func (m Move) Equal(other Move) bool {
	if m.Kind != other.Kind || len(m.Directions) != len(other.Directions) {
		return false
	}
	for i := range m.Directions {
		if m.Directions[i] != other.Directions[i] {
			return false
		}
	}
	return true
}

// MoveAction is a committed move: where it starts and what it does
type MoveAction struct {
	Origin Coordinate
	Move   Move
}

func NewMoveAction(origin Coordinate, move Move) MoveAction {
	return MoveAction{Origin: origin, Move: move}
}

// Destination returns where the action leaves the red piece
func (a MoveAction) Destination() Coordinate {
	return a.Move.Destination(a.Origin)
}

// Validate replays the action against the board without mutating it
func (a MoveAction) Validate(b *Board) error {
	if len(a.Move.Directions) == 0 {
		return ErrEmptyMove
	}
	if !a.Origin.IsValid() {
		return ErrInvalidCoordinates
	}
	if _, ok := b.Get(a.Origin); !ok {
		return ErrOriginMissing
	}
	for _, d := range a.Move.Directions {
		if !isRedDirection(d) {
			return ErrIllegalDirection
		}
	}

	if a.Move.Kind == MoveStep {
		if len(a.Move.Directions) != 1 {
			return ErrInvalidStep
		}
		to := a.Origin.Translate(a.Move.Directions[0])
		if !to.IsValid() {
			return ErrInvalidCoordinates
		}
		if !b.Is(to, LilyPad) {
			return ErrNotLilyPad
		}
		return nil
	}

	pos := a.Origin
	landed := make(map[Coordinate]bool, len(a.Move.Directions))
	for _, d := range a.Move.Directions {
		over := pos.Translate(d)
		if !b.Is(over, Blue) {
			return ErrNotBlue
		}
		land := over.Translate(d)
		if !land.IsValid() {
			return ErrInvalidCoordinates
		}
		if !b.Is(land, LilyPad) {
			return ErrNotLilyPad
		}
		if landed[land] {
			return ErrRevisitedLanding
		}
		landed[land] = true
		pos = land
	}
	return nil
}

func isRedDirection(d Direction) bool {
	for _, rd := range RedDirections {
		if rd == d {
			return true
		}
	}
	return false
}
