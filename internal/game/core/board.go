package core

import (
	"fmt"
	"sort"
)

// CellState is the content of a single board cell.
type CellState int

const (
	Empty CellState = iota
	LilyPad
	Red
	Blue
)

func (s CellState) String() string {
	switch s {
	case Empty:
		return "Empty"
	case LilyPad:
		return "LilyPad"
	case Red:
		return "Red"
	case Blue:
		return "Blue"
	default:
		return fmt.Sprintf("CellState(%d)", int(s))
	}
}

// Symbol is the single-character form used by the board loader and renderer
func (s CellState) Symbol() string {
	switch s {
	case LilyPad:
		return "*"
	case Red:
		return "R"
	case Blue:
		return "B"
	default:
		return "."
	}
}

// Board is a sparse snapshot of the cells that have a defined state.
// A coordinate missing from the board is distinct from an Empty cell: it
// does not exist for jump purposes.
//
// Search and move generation only ever read a Board. Set is for loaders
// and fixtures building a snapshot.
type Board struct {
	cells map[Coordinate]CellState
}

func NewBoard() *Board {
	return &Board{cells: make(map[Coordinate]CellState)}
}

// NewBoardFromMap copies states into a new board
func NewBoardFromMap(states map[Coordinate]CellState) *Board {
	b := &Board{cells: make(map[Coordinate]CellState, len(states))}
	for c, s := range states {
		b.cells[c] = s
	}
	return b
}

// Set defines the state of a cell
func (b *Board) Set(c Coordinate, s CellState) {
	b.cells[c] = s
}

// Get returns the state at c and whether the cell exists at all
func (b *Board) Get(c Coordinate) (CellState, bool) {
	s, ok := b.cells[c]
	return s, ok
}

// Is reports whether the cell at c exists and holds state s
func (b *Board) Is(c Coordinate, s CellState) bool {
	got, ok := b.cells[c]
	return ok && got == s
}

func (b *Board) Len() int { return len(b.cells) }

// Coordinates returns every defined coordinate in row-major order
func (b *Board) Coordinates() []Coordinate {
	coords := make([]Coordinate, 0, len(b.cells))
	for c := range b.cells {
		coords = append(coords, c)
	}
	sort.Slice(coords, func(i, j int) bool { return coords[i].Less(coords[j]) })
	return coords
}

// CellsWithState returns the coordinates holding s in row-major order
func (b *Board) CellsWithState(s CellState) []Coordinate {
	var coords []Coordinate
	for _, c := range b.Coordinates() {
		if b.cells[c] == s {
			coords = append(coords, c)
		}
	}
	return coords
}

func (b *Board) Clone() *Board {
	return NewBoardFromMap(b.cells)
}
