package testutil

import (
	"math/rand"
	"testing"

	"github.com/rs/zerolog"

	"github.com/mitchelldurbincs/FreckersSearch/internal/game/core"
)

// NewTestRNG creates a deterministic random number generator for tests
func NewTestRNG(seed int64) *rand.Rand {
	return rand.New(rand.NewSource(seed))
}

// NopLogger returns a no-op logger for tests
func NopLogger() zerolog.Logger {
	return zerolog.Nop()
}

// AssertPanic asserts that the given function panics
func AssertPanic(t *testing.T, f func(), msgAndArgs ...interface{}) {
	t.Helper()
	defer func() {
		if r := recover(); r == nil {
			t.Errorf("Expected panic but none occurred: %v", msgAndArgs)
		}
	}()
	f()
}

// BFSShortest is a brute-force oracle: plain breadth-first search from start
// over the graph produced by neighbors, returning the fewest moves needed to
// reach any coordinate for which isGoal holds, or -1 if none is reachable.
func BFSShortest(start core.Coordinate, isGoal func(core.Coordinate) bool, neighbors func(core.Coordinate) []core.Coordinate) int {
	dist := map[core.Coordinate]int{start: 0}
	queue := []core.Coordinate{start}
	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		if isGoal(cur) {
			return dist[cur]
		}
		for _, n := range neighbors(cur) {
			if _, seen := dist[n]; seen {
				continue
			}
			dist[n] = dist[cur] + 1
			queue = append(queue, n)
		}
	}
	return -1
}
