package events

import (
	"time"

	"github.com/mitchelldurbincs/FreckersSearch/internal/game/core"
)

// Event type constants
const (
	TypeSearchStarted   = "search.started"
	TypeNodeExpanded    = "search.node_expanded"
	TypeSearchSucceeded = "search.succeeded"
	TypeSearchExhausted = "search.exhausted"
	TypeSearchAborted   = "search.aborted"
)

// SearchStartedEvent is published once the start and goal cells are located
type SearchStartedEvent struct {
	BaseEvent
	Start     core.Coordinate `json:"start"`
	GoalCount int             `json:"goal_count"`
}

func NewSearchStartedEvent(searchID string, start core.Coordinate, goalCount int) *SearchStartedEvent {
	return &SearchStartedEvent{
		BaseEvent: newBase(TypeSearchStarted, searchID),
		Start:     start,
		GoalCount: goalCount,
	}
}

// NodeExpandedEvent is published each time a frontier entry is expanded
type NodeExpandedEvent struct {
	BaseEvent
	Coordinate core.Coordinate `json:"coordinate"`
	G          int             `json:"g"`
	F          int             `json:"f"`
	MoveCount  int             `json:"move_count"`
}

func NewNodeExpandedEvent(searchID string, at core.Coordinate, g, f, moveCount int) *NodeExpandedEvent {
	return &NodeExpandedEvent{
		BaseEvent:  newBase(TypeNodeExpanded, searchID),
		Coordinate: at,
		G:          g,
		F:          f,
		MoveCount:  moveCount,
	}
}

// SearchSucceededEvent is published when a goal cell is popped
type SearchSucceededEvent struct {
	BaseEvent
	Goal     core.Coordinate `json:"goal"`
	Moves    int             `json:"moves"`
	Expanded int             `json:"expanded"`
	Duration time.Duration   `json:"duration"`
}

func NewSearchSucceededEvent(searchID string, goal core.Coordinate, moves, expanded int, duration time.Duration) *SearchSucceededEvent {
	return &SearchSucceededEvent{
		BaseEvent: newBase(TypeSearchSucceeded, searchID),
		Goal:      goal,
		Moves:     moves,
		Expanded:  expanded,
		Duration:  duration,
	}
}

// SearchExhaustedEvent is published when a search ends without a solution
type SearchExhaustedEvent struct {
	BaseEvent
	Reason   string        `json:"reason"`
	Expanded int           `json:"expanded"`
	Duration time.Duration `json:"duration"`
}

func NewSearchExhaustedEvent(searchID, reason string, expanded int, duration time.Duration) *SearchExhaustedEvent {
	return &SearchExhaustedEvent{
		BaseEvent: newBase(TypeSearchExhausted, searchID),
		Reason:    reason,
		Expanded:  expanded,
		Duration:  duration,
	}
}

// SearchAbortedEvent is published when a search is cut short before it could
// either find the goal or empty the frontier
type SearchAbortedEvent struct {
	BaseEvent
	Reason   string        `json:"reason"`
	Expanded int           `json:"expanded"`
	Duration time.Duration `json:"duration"`
}

func NewSearchAbortedEvent(searchID, reason string, expanded int, duration time.Duration) *SearchAbortedEvent {
	return &SearchAbortedEvent{
		BaseEvent: newBase(TypeSearchAborted, searchID),
		Reason:    reason,
		Expanded:  expanded,
		Duration:  duration,
	}
}
