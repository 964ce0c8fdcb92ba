package testutil

import (
	"github.com/mitchelldurbincs/FreckersSearch/internal/game/core"
)

// Cells is shorthand for building sparse boards in tests
type Cells map[core.Coordinate]core.CellState

// BoardFromCells builds a sparse board containing only the given cells
func BoardFromCells(cells Cells) *core.Board {
	return core.NewBoardFromMap(cells)
}

// FullBoard builds a dense 8x8 board of Empty cells with the given cells overlaid
func FullBoard(cells Cells) *core.Board {
	board := core.NewBoard()
	for i := 0; i < core.BoardSize*core.BoardSize; i++ {
		board.Set(core.FromIndex(i), core.Empty)
	}
	for c, s := range cells {
		board.Set(c, s)
	}
	return board
}

// TwoStepCorner: red at 5-0 with lily pads below it. Solved by two steps down.
func TwoStepCorner() *core.Board {
	return FullBoard(Cells{
		{R: 5, C: 0}: core.Red,
		{R: 6, C: 0}: core.LilyPad,
		{R: 7, C: 0}: core.LilyPad,
	})
}

// SingleJump: red at 5-0, blue at 6-0, lily pad at 7-0. Solved by one jump down.
func SingleJump() *core.Board {
	return FullBoard(Cells{
		{R: 5, C: 0}: core.Red,
		{R: 6, C: 0}: core.Blue,
		{R: 7, C: 0}: core.LilyPad,
	})
}

// Isolated: red with nothing to step or jump onto; a goal pad exists far away.
func Isolated() *core.Board {
	return FullBoard(Cells{
		{R: 0, C: 0}: core.Red,
		{R: 7, C: 7}: core.LilyPad,
	})
}

// MultiJump: a three-jump chain from the top reaches the goal row in one move,
// while the plain-step route needs seven moves.
func MultiJump() *core.Board {
	cells := Cells{
		{R: 1, C: 2}: core.Red,
		{R: 2, C: 2}: core.Blue,
		{R: 3, C: 2}: core.LilyPad,
		{R: 4, C: 3}: core.Blue,
		{R: 5, C: 4}: core.LilyPad,
		{R: 6, C: 4}: core.Blue,
		{R: 7, C: 4}: core.LilyPad,
	}
	for r := 2; r <= 7; r++ {
		cells[core.Coordinate{R: r, C: 0}] = core.LilyPad
	}
	cells[core.Coordinate{R: 1, C: 1}] = core.LilyPad
	cells[core.Coordinate{R: 1, C: 0}] = core.LilyPad
	return FullBoard(cells)
}

// SampleGame is an 8x8 board in the style of the canonical puzzle input:
// lily pads scattered over the board, a handful of blue pieces and one red.
func SampleGame() *core.Board {
	cells := Cells{}
	pads := []core.Coordinate{
		{R: 0, C: 0}, {R: 0, C: 7},
		{R: 1, C: 1}, {R: 1, C: 2}, {R: 1, C: 3}, {R: 1, C: 4}, {R: 1, C: 5}, {R: 1, C: 6},
		{R: 2, C: 2}, {R: 2, C: 6},
		{R: 3, C: 3}, {R: 3, C: 5},
		{R: 4, C: 2}, {R: 4, C: 4}, {R: 4, C: 6},
		{R: 5, C: 1}, {R: 5, C: 5}, {R: 5, C: 7},
		{R: 6, C: 0}, {R: 6, C: 2}, {R: 6, C: 6},
		{R: 7, C: 1}, {R: 7, C: 3}, {R: 7, C: 6},
	}
	for _, c := range pads {
		cells[c] = core.LilyPad
	}
	cells[core.Coordinate{R: 0, C: 5}] = core.Red
	cells[core.Coordinate{R: 1, C: 7}] = core.Blue
	cells[core.Coordinate{R: 2, C: 3}] = core.Blue
	cells[core.Coordinate{R: 2, C: 5}] = core.Blue
	cells[core.Coordinate{R: 3, C: 4}] = core.Blue
	cells[core.Coordinate{R: 4, C: 5}] = core.Blue
	cells[core.Coordinate{R: 5, C: 6}] = core.Blue
	return FullBoard(cells)
}

// DetourTrap: walking straight down column 0 takes six steps, but two steps
// right and a three-jump chain reach the goal row in three moves. The
// rows-remaining heuristic never looks at the sideways start, so it settles
// for six; an admissible heuristic finds three.
func DetourTrap() *core.Board {
	cells := Cells{
		{R: 1, C: 0}: core.Red,
		{R: 1, C: 1}: core.LilyPad,
		{R: 1, C: 2}: core.LilyPad,
		{R: 2, C: 2}: core.Blue,
		{R: 3, C: 2}: core.LilyPad,
		{R: 4, C: 2}: core.Blue,
		{R: 5, C: 2}: core.LilyPad,
		{R: 6, C: 2}: core.Blue,
		{R: 7, C: 2}: core.LilyPad,
	}
	for r := 2; r <= 7; r++ {
		cells[core.Coordinate{R: r, C: 0}] = core.LilyPad
	}
	return FullBoard(cells)
}
