package solverserver

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/structpb"

	"github.com/mitchelldurbincs/FreckersSearch/internal/game/boardio"
	"github.com/mitchelldurbincs/FreckersSearch/internal/game/core"
	"github.com/mitchelldurbincs/FreckersSearch/internal/game/events"
	"github.com/mitchelldurbincs/FreckersSearch/internal/game/rendering"
	"github.com/mitchelldurbincs/FreckersSearch/internal/search"
)

// Request and response field names
const (
	FieldBoard     = "board"
	FieldHeuristic = "heuristic"

	FieldFound    = "found"
	FieldSearchID = "search_id"
	FieldExpanded = "expanded"
	FieldMoves    = "moves"
	FieldActions  = "actions"
	FieldError    = "error"
	FieldCached   = "cached"
)

// Options configures the solver service
type Options struct {
	Heuristic       string
	ReopenOnCheaper bool
	MaxExpansions   int
	CacheSize       int
	CacheTTL        time.Duration
	EventBus        *events.EventBus
}

// Server implements SolverService
type Server struct {
	UnimplementedSolverServiceServer

	opts   Options
	cache  *ResultCache
	logger zerolog.Logger
}

// NewServer creates a solver service
func NewServer(opts Options) (*Server, error) {
	if _, err := search.HeuristicByName(opts.Heuristic); err != nil {
		return nil, err
	}
	return &Server{
		opts:   opts,
		cache:  NewResultCache(opts.CacheSize, opts.CacheTTL),
		logger: log.With().Str("component", "solver_service").Logger(),
	}, nil
}

// Solve parses the board text in the request, runs the search and reports the
// solution. A board without a solution is a successful call with found=false;
// only unreadable input and cut-short searches are RPC errors.
func (s *Server) Solve(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	if err := ctx.Err(); err != nil {
		return nil, status.FromContextError(err).Err()
	}

	fields := req.GetFields()
	boardValue, ok := fields[FieldBoard]
	if !ok {
		return nil, status.Errorf(codes.InvalidArgument, "missing %q field", FieldBoard)
	}
	text, ok := boardValue.GetKind().(*structpb.Value_StringValue)
	if !ok {
		return nil, status.Errorf(codes.InvalidArgument, "%q must be a string", FieldBoard)
	}

	heuristicName := s.opts.Heuristic
	if v, ok := fields[FieldHeuristic]; ok {
		heuristicName = v.GetStringValue()
	}
	heuristic, err := search.HeuristicByName(heuristicName)
	if err != nil {
		return nil, status.Errorf(codes.InvalidArgument, "%v", err)
	}

	board, err := boardio.ParseString(text.StringValue)
	if err != nil {
		return nil, status.Errorf(codes.InvalidArgument, "invalid board: %v", err)
	}

	key := fingerprint(heuristicName, board)
	if cached := s.cache.Check(key); cached != nil {
		cached.Fields[FieldCached] = structpb.NewBoolValue(true)
		s.logger.Debug().
			Str("search_id", cached.Fields[FieldSearchID].GetStringValue()).
			Msg("Serving cached solution")
		return cached, nil
	}

	searchOpts := []search.Option{
		search.WithHeuristic(heuristic),
		search.WithReopenOnCheaper(s.opts.ReopenOnCheaper),
		search.WithMaxExpansions(s.opts.MaxExpansions),
		search.WithSearchID(uuid.NewString()),
		search.WithLogger(s.logger),
	}
	if s.opts.EventBus != nil {
		searchOpts = append(searchOpts, search.WithEventBus(s.opts.EventBus))
	}

	res, err := search.Search(board, searchOpts...)
	if errors.Is(err, search.ErrExpansionLimit) {
		return nil, status.Errorf(codes.ResourceExhausted, "search %s: %v", res.SearchID, err)
	}

	resp, buildErr := BuildResponse(res, err)
	if buildErr != nil {
		return nil, status.Errorf(codes.Internal, "failed to build response: %v", buildErr)
	}
	s.cache.Store(key, resp)
	return resp, nil
}

func fingerprint(heuristic string, board *core.Board) string {
	if heuristic == "" {
		heuristic = search.HeuristicRows
	}
	return heuristic + "\n" + boardio.FormatCSV(board)
}

// BuildResponse renders a search result in the SolverService response shape
func BuildResponse(res search.Result, searchErr error) (*structpb.Struct, error) {
	moves := make([]interface{}, len(res.Actions))
	actions := make([]interface{}, len(res.Actions))
	for i, action := range res.Actions {
		moves[i] = rendering.FormatAction(action)

		dirs := make([]interface{}, len(action.Move.Directions))
		for j, d := range action.Move.Directions {
			dirs[j] = rendering.DirectionName(d)
		}
		actions[i] = map[string]interface{}{
			"origin":     action.Origin.String(),
			"kind":       action.Move.Kind.String(),
			"directions": dirs,
		}
	}

	errText := ""
	if searchErr != nil {
		errText = searchErr.Error()
	}

	return structpb.NewStruct(map[string]interface{}{
		FieldFound:    res.Found(),
		FieldSearchID: res.SearchID,
		FieldExpanded: res.Expanded,
		FieldMoves:    moves,
		FieldActions:  actions,
		FieldError:    errText,
		FieldCached:   false,
	})
}

// DecodeActions rebuilds the move actions carried in a Solve reply
func DecodeActions(resp *structpb.Struct) ([]core.MoveAction, error) {
	values := resp.GetFields()[FieldActions].GetListValue().GetValues()
	actions := make([]core.MoveAction, 0, len(values))
	for i, value := range values {
		fields := value.GetStructValue().GetFields()

		var origin core.Coordinate
		originText := fields["origin"].GetStringValue()
		if _, err := fmt.Sscanf(originText, "%d-%d", &origin.R, &origin.C); err != nil || !origin.IsValid() {
			return nil, fmt.Errorf("action %d: bad origin %q", i, originText)
		}

		var move core.Move
		switch kind := fields["kind"].GetStringValue(); kind {
		case core.MoveStep.String():
			move.Kind = core.MoveStep
		case core.MoveJump.String():
			move.Kind = core.MoveJump
		default:
			return nil, fmt.Errorf("action %d: unknown kind %q", i, kind)
		}

		for _, dv := range fields["directions"].GetListValue().GetValues() {
			d, err := core.ParseDirection(dv.GetStringValue())
			if err != nil {
				return nil, fmt.Errorf("action %d: %w", i, err)
			}
			move.Directions = append(move.Directions, d)
		}
		if len(move.Directions) == 0 || (move.Kind == core.MoveStep && len(move.Directions) != 1) {
			return nil, fmt.Errorf("action %d: %s with %d directions", i, move.Kind, len(move.Directions))
		}

		actions = append(actions, core.NewMoveAction(origin, move))
	}
	return actions, nil
}
