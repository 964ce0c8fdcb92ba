package rules

import "github.com/mitchelldurbincs/FreckersSearch/internal/game/core"

// FindMover returns the red piece's coordinate. With more than one red cell
// the first in row-major order wins.
func FindMover(board *core.Board) (core.Coordinate, bool) {
	reds := board.CellsWithState(core.Red)
	if len(reds) == 0 {
		return core.Coordinate{}, false
	}
	return reds[0], true
}

// GoalSet returns the lily pads on the goal row
func GoalSet(board *core.Board) map[core.Coordinate]bool {
	goals := make(map[core.Coordinate]bool)
	for _, c := range board.CellsWithState(core.LilyPad) {
		if c.R == core.GoalRow {
			goals[c] = true
		}
	}
	return goals
}

// IsGoal reports whether c is a lily pad on the goal row
func IsGoal(board *core.Board, c core.Coordinate) bool {
	return c.R == core.GoalRow && board.Is(c, core.LilyPad)
}

// RowsRemaining is the number of rows between c and the goal row. A single
// jump chain can cover several rows in one move, so this can overestimate
// the number of moves left.
func RowsRemaining(c core.Coordinate) int {
	return core.GoalRow - c.R
}

// MinMovesRemaining is 0 on the goal row and 1 anywhere else. It is the
// tightest bound that holds for every board, since one jump chain can reach
// the goal row from any row.
func MinMovesRemaining(c core.Coordinate) int {
	if c.R == core.GoalRow {
		return 0
	}
	return 1
}

// ShortestMoveCount runs a breadth-first search from the red piece and
// returns the fewest moves needed to reach a goal lily pad, or -1 when the
// board has no red piece or no goal is reachable.
func ShortestMoveCount(board *core.Board) int {
	start, ok := FindMover(board)
	if !ok {
		return -1
	}
	gen := NewMoveGenerator()
	dist := map[core.Coordinate]int{start: 0}
	queue := []core.Coordinate{start}
	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		if IsGoal(board, cur) {
			return dist[cur]
		}
		for _, m := range gen.GenerateMoves(board, cur) {
			next := m.Destination(cur)
			if _, seen := dist[next]; seen {
				continue
			}
			dist[next] = dist[cur] + 1
			queue = append(queue, next)
		}
	}
	return -1
}
