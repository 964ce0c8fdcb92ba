package search

import (
	"container/heap"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/mitchelldurbincs/FreckersSearch/internal/game/core"
	"github.com/mitchelldurbincs/FreckersSearch/internal/game/events"
	"github.com/mitchelldurbincs/FreckersSearch/internal/game/rules"
)

// ErrExpansionLimit is returned when WithMaxExpansions cuts a search short.
// It is not a "no solution" outcome: the goal may still be reachable.
var ErrExpansionLimit = errors.New("search expansion limit reached")

// Result contains the outcome of a search
type Result struct {
	SearchID   string
	Start      core.Coordinate
	Goal       core.Coordinate
	Actions    []core.MoveAction
	Expanded   int
	Discovered int
	Phase      Phase
	Duration   time.Duration
}

// Found reports whether the search reached the goal row
func (r Result) Found() bool {
	return r.Phase == PhaseSucceeded
}

// Heuristic estimates the number of moves left from a coordinate
type Heuristic func(core.Coordinate) int

const (
	HeuristicRows       = "rows"
	HeuristicAdmissible = "admissible"
)

// HeuristicByName resolves a configured heuristic name
func HeuristicByName(name string) (Heuristic, error) {
	switch name {
	case "", HeuristicRows:
		return rules.RowsRemaining, nil
	case HeuristicAdmissible:
		return rules.MinMovesRemaining, nil
	default:
		return nil, fmt.Errorf("unknown heuristic %q", name)
	}
}

// Options defines parameters for the search.
type Options struct {
	Heuristic       Heuristic
	Logger          zerolog.Logger
	EventBus        *events.EventBus
	ReopenOnCheaper bool
	MaxExpansions   int
	SearchID        string
}

// Option is a function that modifies Options.
type Option func(*Options)

// WithLogger sets the logger used for expansion traces and outcomes
func WithLogger(logger zerolog.Logger) Option {
	return func(o *Options) { o.Logger = logger }
}

// WithHeuristic replaces the default rows-remaining heuristic.
//
// Rows remaining can overestimate when a jump chain covers several rows in
// one move, so it is not guaranteed optimal on every board.
// rules.MinMovesRemaining never overestimates.
func WithHeuristic(h Heuristic) Option {
	return func(o *Options) { o.Heuristic = h }
}

// WithEventBus publishes search lifecycle events on bus
func WithEventBus(bus *events.EventBus) Option {
	return func(o *Options) { o.EventBus = bus }
}

// WithReopenOnCheaper re-pushes a coordinate already discovered when a
// strictly shorter route to it turns up. Off by default: coordinates are
// committed the first time they are discovered.
func WithReopenOnCheaper(enabled bool) Option {
	return func(o *Options) { o.ReopenOnCheaper = enabled }
}

// WithMaxExpansions caps the number of expanded nodes; 0 means no cap
func WithMaxExpansions(n int) Option {
	return func(o *Options) { o.MaxExpansions = n }
}

// WithSearchID overrides the generated search ID
func WithSearchID(id string) Option {
	return func(o *Options) { o.SearchID = id }
}

// Searcher runs A* from the red piece to the goal row
type Searcher struct {
	opts      Options
	generator *rules.MoveGenerator
}

// NewSearcher creates a searcher with the given options applied
func NewSearcher(options ...Option) *Searcher {
	opts := Options{
		Heuristic: rules.RowsRemaining,
		Logger:    log.With().Str("component", "search").Logger(),
	}
	for _, option := range options {
		option(&opts)
	}
	return &Searcher{
		opts:      opts,
		generator: rules.NewMoveGenerator(),
	}
}

// Search is shorthand for NewSearcher(options...).Search(board)
func Search(board *core.Board, options ...Option) (Result, error) {
	return NewSearcher(options...).Search(board)
}

// Search finds the shortest sequence of moves that brings the red piece onto
// a lily pad in the goal row. Every move costs one.
//
// When no solution exists the error wraps core.ErrNoSolution together with
// core.ErrNoMover or core.ErrNoGoal (precondition failures) or
// core.ErrUnreachable (the frontier ran dry). The board is never modified.
func (s *Searcher) Search(board *core.Board) (Result, error) {
	started := time.Now()

	id := s.opts.SearchID
	if id == "" {
		id = uuid.NewString()
	}
	logger := s.opts.Logger.With().Str("search_id", id).Logger()
	res := Result{SearchID: id, Phase: PhaseInitialized}

	start, ok := rules.FindMover(board)
	if !ok {
		logger.Info().Msg("No red piece on the board")
		return res, fmt.Errorf("%w: %w", core.ErrNoSolution, core.ErrNoMover)
	}
	res.Start = start

	goals := rules.GoalSet(board)
	if len(goals) == 0 {
		logger.Info().Str("start", start.String()).Msg("No lily pad on the goal row")
		return res, fmt.Errorf("%w: %w", core.ErrNoSolution, core.ErrNoGoal)
	}

	phase := tracker{phase: PhaseInitialized}
	if err := phase.transitionTo(PhaseExpanding); err != nil {
		return res, err
	}
	res.Phase = phase.phase

	logger.Debug().
		Str("start", start.String()).
		Int("goal_count", len(goals)).
		Bool("reopen_on_cheaper", s.opts.ReopenOnCheaper).
		Msg("Search started")
	s.publish(events.NewSearchStartedEvent(id, start, len(goals)))

	open := &frontier{}
	heap.Init(open)
	seq := 0
	push := func(n *node) {
		n.seq = seq
		seq++
		heap.Push(open, n)
	}

	// A coordinate is committed as soon as it is discovered, not when it is
	// expanded. bestG doubles as the discovered set.
	bestG := map[core.Coordinate]int{start: 0}
	push(&node{coord: start, f: s.opts.Heuristic(start)})

	for open.Len() > 0 {
		cur := heap.Pop(open).(*node)
		if s.opts.ReopenOnCheaper && cur.g > bestG[cur.coord] {
			continue
		}

		if goals[cur.coord] {
			_ = phase.transitionTo(PhaseSucceeded)
			res.Phase = phase.phase
			res.Goal = cur.coord
			res.Actions = cur.path()
			res.Duration = time.Since(started)

			logger.Info().
				Str("start", start.String()).
				Str("goal", cur.coord.String()).
				Int("moves", len(res.Actions)).
				Int("expanded", res.Expanded).
				Dur("duration", res.Duration).
				Msg("Solution found")
			s.publish(events.NewSearchSucceededEvent(id, cur.coord, len(res.Actions), res.Expanded, res.Duration))
			return res, nil
		}

		if s.opts.MaxExpansions > 0 && res.Expanded >= s.opts.MaxExpansions {
			res.Duration = time.Since(started)
			logger.Warn().Int("max_expansions", s.opts.MaxExpansions).Msg("Expansion limit reached")
			s.publish(events.NewSearchAbortedEvent(id, ErrExpansionLimit.Error(), res.Expanded, res.Duration))
			return res, fmt.Errorf("after %d expansions: %w", res.Expanded, ErrExpansionLimit)
		}

		moves := s.generator.GenerateMoves(board, cur.coord)
		res.Expanded++

		logger.Debug().
			Str("coordinate", cur.coord.String()).
			Int("g", cur.g).
			Int("f", cur.f).
			Int("moves", len(moves)).
			Msg("Expanding")
		s.publish(events.NewNodeExpandedEvent(id, cur.coord, cur.g, cur.f, len(moves)))

		for _, m := range moves {
			dest := m.Destination(cur.coord)
			g := cur.g + 1
			if prev, seen := bestG[dest]; seen && (!s.opts.ReopenOnCheaper || g >= prev) {
				continue
			}
			bestG[dest] = g
			res.Discovered++
			push(&node{
				coord:  dest,
				g:      g,
				f:      g + s.opts.Heuristic(dest),
				action: core.NewMoveAction(cur.coord, m),
				parent: cur,
			})
		}
	}

	_ = phase.transitionTo(PhaseExhausted)
	res.Phase = phase.phase
	res.Duration = time.Since(started)

	logger.Info().
		Str("start", start.String()).
		Int("expanded", res.Expanded).
		Dur("duration", res.Duration).
		Msg("Goal row unreachable")
	s.publish(events.NewSearchExhaustedEvent(id, core.ErrUnreachable.Error(), res.Expanded, res.Duration))

	return res, fmt.Errorf("%w: %w", core.ErrNoSolution, core.ErrUnreachable)
}

func (s *Searcher) publish(e events.Event) {
	if s.opts.EventBus != nil {
		s.opts.EventBus.Publish(e)
	}
}
