package search

import (
	"github.com/mitchelldurbincs/FreckersSearch/internal/game/core"
)

// node is one frontier entry. parent links replace copying the whole action
// list into every entry.
type node struct {
	coord  core.Coordinate
	g      int
	f      int
	seq    int
	action core.MoveAction
	parent *node
}

// path rebuilds the actions that led to n, start first
func (n *node) path() []core.MoveAction {
	var actions []core.MoveAction
	for cur := n; cur.parent != nil; cur = cur.parent {
		actions = append(actions, cur.action)
	}
	for i, j := 0, len(actions)-1; i < j; i, j = i+1, j-1 {
		actions[i], actions[j] = actions[j], actions[i]
	}
	return actions
}

// frontier is a min-heap ordered by (f, g, seq). seq is the insertion
// counter, so equal-cost entries pop in the order they were pushed.
type frontier []*node

func (q frontier) Len() int { return len(q) }

func (q frontier) Less(i, j int) bool {
	if q[i].f != q[j].f {
		return q[i].f < q[j].f
	}
	if q[i].g != q[j].g {
		return q[i].g < q[j].g
	}
	return q[i].seq < q[j].seq
}

func (q frontier) Swap(i, j int) { q[i], q[j] = q[j], q[i] }

func (q *frontier) Push(x any) {
	*q = append(*q, x.(*node))
}

func (q *frontier) Pop() any {
	old := *q
	n := len(old)
	item := old[n-1]
	old[n-1] = nil
	*q = old[:n-1]
	return item
}
