package rules

import (
	"fmt"

	"github.com/mitchelldurbincs/FreckersSearch/internal/game/core"
)

// MoveGenerator enumerates the legal moves of the red piece
type MoveGenerator struct {
	directions []core.Direction
}

// NewMoveGenerator creates a move generator for the red piece
func NewMoveGenerator() *MoveGenerator {
	return &MoveGenerator{directions: core.RedDirections}
}

// GenerateMoves is a convenience wrapper around a default MoveGenerator
func GenerateMoves(board *core.Board, origin core.Coordinate) []core.Move {
	return NewMoveGenerator().GenerateMoves(board, origin)
}

// GenerateMoves returns every legal move from origin: plain steps first, in
// direction order, followed by every jump chain in depth-first order. Each
// prefix of a chain is its own move since the piece may stop after any jump.
//
// The board is only read. origin must exist on the board; anything else is a
// caller bug and panics.
func (g *MoveGenerator) GenerateMoves(board *core.Board, origin core.Coordinate) []core.Move {
	if _, ok := board.Get(origin); !ok {
		panic(fmt.Sprintf("rules: move origin %s is not on the board", origin))
	}

	var moves []core.Move

	for _, d := range g.directions {
		to := origin.Translate(d)
		if to.IsValid() && board.Is(to, core.LilyPad) {
			moves = append(moves, core.Step(d))
		}
	}

	w := jumpWalker{
		board:      board,
		directions: g.directions,
		onPath:     make(map[core.Coordinate]bool),
	}
	w.walk(origin)

	return append(moves, w.moves...)
}

// jumpWalker carries the state of one depth-first jump enumeration. onPath
// holds the landing cells of the current branch only and is unwound on
// backtrack, so sibling branches never see each other's exclusions.
type jumpWalker struct {
	board      *core.Board
	directions []core.Direction
	path       []core.Direction
	onPath     map[core.Coordinate]bool
	moves      []core.Move
}

func (w *jumpWalker) walk(from core.Coordinate) {
	for _, d := range w.directions {
		land, ok := w.landing(from, d)
		if !ok || w.onPath[land] {
			continue
		}

		w.path = append(w.path, d)
		w.onPath[land] = true
		w.moves = append(w.moves, core.Jump(w.path...))

		w.walk(land)

		w.onPath[land] = false
		w.path = w.path[:len(w.path)-1]
	}
}

// landing returns where a jump from `from` in direction d lands, if legal
func (w *jumpWalker) landing(from core.Coordinate, d core.Direction) (core.Coordinate, bool) {
	over := from.Translate(d)
	if !w.board.Is(over, core.Blue) {
		return core.Coordinate{}, false
	}
	land := over.Translate(d)
	if !land.IsValid() || !w.board.Is(land, core.LilyPad) {
		return core.Coordinate{}, false
	}
	return land, true
}
