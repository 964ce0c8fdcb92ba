package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMove_Destination(t *testing.T) {
	origin := Coordinate{2, 3}
	tests := []struct {
		name     string
		move     Move
		expected Coordinate
	}{
		{"StepDown", Step(Down), Coordinate{3, 3}},
		{"StepLeft", Step(Left), Coordinate{2, 2}},
		{"SingleJumpDown", Jump(Down), Coordinate{4, 3}},
		{"JumpChain", Jump(Down, DownRight, Left), Coordinate{6, 3}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.move.Destination(origin))
			assert.Equal(t, tt.expected, NewMoveAction(origin, tt.move).Destination())
		})
	}
}

func TestMove_KeyAndEqual(t *testing.T) {
	assert.Equal(t, "step:Down", Step(Down).Key())
	assert.Equal(t, "jump:Down,DownLeft", Jump(Down, DownLeft).Key())
	assert.True(t, Jump(Down, Left).Equal(Jump(Down, Left)))
	assert.False(t, Jump(Down).Equal(Step(Down)), "kind is part of identity")
	assert.False(t, Jump(Down).Equal(Jump(Down, Left)))
}

func TestJump_CopiesDirections(t *testing.T) {
	dirs := []Direction{Down, Left}
	m := Jump(dirs...)
	dirs[0] = Right
	assert.Equal(t, Down, m.Directions[0])
}

func TestMoveAction_Validate(t *testing.T) {
	board := NewBoardFromMap(map[Coordinate]CellState{
		{0, 2}: Red,
		{1, 2}: Blue,
		{2, 2}: LilyPad,
		{2, 3}: Blue,
		{2, 4}: LilyPad,
		{0, 3}: LilyPad,
		{1, 1}: Empty,
		{3, 2}: Blue,
	})

	tests := []struct {
		name   string
		action MoveAction
		err    error
	}{
		{"StepToLilyPad", NewMoveAction(Coordinate{0, 2}, Step(Right)), nil},
		{"StepToEmpty", NewMoveAction(Coordinate{0, 2}, Step(DownLeft)), ErrNotLilyPad},
		{"StepToBlue", NewMoveAction(Coordinate{0, 2}, Step(Down)), ErrNotLilyPad},
		{"OriginNotOnBoard", NewMoveAction(Coordinate{0, 0}, Step(Left)), ErrOriginMissing},
		{"StepUpward", NewMoveAction(Coordinate{2, 2}, Step(Up)), ErrIllegalDirection},
		{"StepWithTwoDirections", NewMoveAction(Coordinate{0, 2}, Move{Kind: MoveStep, Directions: []Direction{Right, Down}}), ErrInvalidStep},
		{"EmptyMove", NewMoveAction(Coordinate{0, 2}, Move{Kind: MoveJump}), ErrEmptyMove},
		{"InvalidOrigin", NewMoveAction(Coordinate{-1, 2}, Step(Down)), ErrInvalidCoordinates},
		{"SingleJump", NewMoveAction(Coordinate{0, 2}, Jump(Down)), nil},
		{"JumpChain", NewMoveAction(Coordinate{0, 2}, Jump(Down, Right)), nil},
		{"JumpOverLilyPad", NewMoveAction(Coordinate{0, 2}, Jump(Right)), ErrNotBlue},
		{"JumpLandsOnMissingCell", NewMoveAction(Coordinate{2, 2}, Jump(Down)), ErrNotLilyPad},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.action.Validate(board)
			if tt.err == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tt.err)
		})
	}
}

func TestMoveAction_ValidateRejectsRevisitedLanding(t *testing.T) {
	// A right-then-left loop lands back on (2,2).
	board := NewBoardFromMap(map[Coordinate]CellState{
		{0, 2}: Red,
		{1, 2}: Blue,
		{2, 2}: LilyPad,
		{2, 3}: Blue,
		{2, 4}: LilyPad,
	})
	action := NewMoveAction(Coordinate{0, 2}, Jump(Down, Right, Left))
	assert.ErrorIs(t, action.Validate(board), ErrRevisitedLanding)
}

func TestMoveAction_ValidateDoesNotMutate(t *testing.T) {
	board := NewBoardFromMap(map[Coordinate]CellState{
		{5, 0}: Red,
		{6, 0}: Blue,
		{7, 0}: LilyPad,
	})
	before := board.Clone()
	_ = NewMoveAction(Coordinate{5, 0}, Jump(Down)).Validate(board)
	assert.Equal(t, before, board)
}
