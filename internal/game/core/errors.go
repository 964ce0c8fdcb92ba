package core

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrInvalidCoordinates = errors.New("invalid coordinates")
	ErrOriginMissing      = errors.New("origin is not on the board")
	ErrEmptyMove          = errors.New("move has no directions")
	ErrInvalidStep        = errors.New("a step moves in exactly one direction")
	ErrIllegalDirection   = errors.New("direction not allowed for the red piece")
	ErrNotLilyPad         = errors.New("target is not a lily pad")
	ErrNotBlue            = errors.New("jumped-over cell is not a blue piece")
	ErrRevisitedLanding   = errors.New("jump chain lands on the same cell twice")
)

// Search outcomes. Every failure to produce a solution wraps ErrNoSolution;
// ErrNoMover and ErrNoGoal are precondition failures, ErrUnreachable means the
// frontier ran dry.
var (
	ErrNoSolution  = errors.New("no solution")
	ErrNoMover     = errors.New("board has no red piece")
	ErrNoGoal      = errors.New("board has no lily pad on the goal row")
	ErrUnreachable = errors.New("goal row is unreachable")
)

// WrapActionError annotates err with where the action starts and what it does
func WrapActionError(action *MoveAction, err error) error {
	if err == nil {
		return nil
	}
	if action == nil {
		return fmt.Errorf("move action: %w", err)
	}
	dirs := make([]string, len(action.Move.Directions))
	for i, d := range action.Move.Directions {
		dirs[i] = d.String()
	}
	return fmt.Errorf("%s from %s [%s]: %w", action.Move.Kind, action.Origin, strings.Join(dirs, ","), err)
}
