package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBoard_AbsentVersusEmpty(t *testing.T) {
	board := NewBoard()
	board.Set(Coordinate{0, 0}, Empty)

	state, ok := board.Get(Coordinate{0, 0})
	assert.True(t, ok, "explicitly empty cell should exist")
	assert.Equal(t, Empty, state)

	_, ok = board.Get(Coordinate{0, 1})
	assert.False(t, ok, "undefined cell should not exist")
	assert.False(t, board.Is(Coordinate{0, 1}, Empty))
}

func TestBoard_CellsWithState(t *testing.T) {
	board := NewBoardFromMap(map[Coordinate]CellState{
		{7, 3}: LilyPad,
		{7, 1}: LilyPad,
		{2, 2}: Red,
		{3, 2}: Blue,
	})

	assert.Equal(t, []Coordinate{{7, 1}, {7, 3}}, board.CellsWithState(LilyPad))
	assert.Equal(t, []Coordinate{{2, 2}}, board.CellsWithState(Red))
	assert.Nil(t, board.CellsWithState(Empty))
	assert.Equal(t, 4, board.Len())
}

func TestBoard_CloneIsIndependent(t *testing.T) {
	board := NewBoard()
	board.Set(Coordinate{1, 1}, LilyPad)

	clone := board.Clone()
	clone.Set(Coordinate{1, 1}, Blue)

	assert.True(t, board.Is(Coordinate{1, 1}, LilyPad))
	assert.True(t, clone.Is(Coordinate{1, 1}, Blue))
}

func TestCellState_Symbols(t *testing.T) {
	tests := []struct {
		state  CellState
		symbol string
		name   string
	}{
		{Empty, ".", "Empty"},
		{LilyPad, "*", "LilyPad"},
		{Red, "R", "Red"},
		{Blue, "B", "Blue"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.symbol, tt.state.Symbol())
			assert.Equal(t, tt.name, tt.state.String())
		})
	}
}
