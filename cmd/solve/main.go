package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"math/rand"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/protobuf/encoding/protojson"
	"google.golang.org/protobuf/types/known/structpb"

	"github.com/mitchelldurbincs/FreckersSearch/internal/config"
	"github.com/mitchelldurbincs/FreckersSearch/internal/game/boardio"
	"github.com/mitchelldurbincs/FreckersSearch/internal/game/core"
	"github.com/mitchelldurbincs/FreckersSearch/internal/game/events"
	"github.com/mitchelldurbincs/FreckersSearch/internal/game/events/subscribers"
	"github.com/mitchelldurbincs/FreckersSearch/internal/game/mapgen"
	"github.com/mitchelldurbincs/FreckersSearch/internal/game/rendering"
	"github.com/mitchelldurbincs/FreckersSearch/internal/game/rules"
	"github.com/mitchelldurbincs/FreckersSearch/internal/grpc/solverserver"
	"github.com/mitchelldurbincs/FreckersSearch/internal/search"
)

const (
	exitSolved     = 0
	exitError      = 1
	exitNoSolution = 2
)

func main() {
	os.Exit(run())
}

func run() int {
	configPath := flag.String("config", "", "Path to config file")
	env := flag.String("env", "", "Environment overlay to merge (config.<env>.yaml)")
	input := flag.String("input", "-", "Board file to solve ('-' reads stdin)")
	randomSeed := flag.Int64("random", -1, "Solve a random board generated from this seed instead of reading one")
	heuristic := flag.String("heuristic", "", "Heuristic: rows or admissible (empty to use config default)")
	logLevel := flag.String("log-level", "", "Log level (debug, info, warn, error) (empty to use config default)")
	jsonOut := flag.Bool("json", false, "Print the result as JSON")
	verify := flag.Bool("verify", false, "Replay the solution and compare its length with a breadth-first search")
	serverAddr := flag.String("server", "", "Solve on a running solver server at host:port instead of locally")
	flag.Parse()

	if err := config.Init(*configPath); err != nil {
		log.Fatal().Err(err).Msg("Failed to initialize config")
	}
	if err := config.LoadEnvironmentConfig(*env); err != nil {
		log.Fatal().Err(err).Msg("Failed to load environment config")
	}
	if *heuristic != "" {
		if err := config.Set("search.heuristic", *heuristic); err != nil {
			log.Fatal().Err(err).Msg("Invalid -heuristic")
		}
	}
	cfg := config.Get()

	if *logLevel == "" {
		*logLevel = cfg.Logging.Level
	}
	setupLogging(*logLevel, cfg.Logging.Format)
	log.Debug().Str("config_file", config.ConfigFilePath()).Str("heuristic", cfg.Search.Heuristic).Msg("Config loaded")

	board, err := loadBoard(*input, *randomSeed, cfg.MapGen)
	if err != nil {
		log.Error().Err(err).Str("input", *input).Msg("Failed to load board")
		return exitError
	}

	if cfg.Render.ShowBoard && !*jsonOut {
		fmt.Print(rendering.RenderBoard(board, cfg.Render.ANSI))
		fmt.Println()
	}

	if *serverAddr != "" {
		return solveRemote(*serverAddr, board, cfg.Search.Heuristic, *jsonOut)
	}

	h, err := search.HeuristicByName(cfg.Search.Heuristic)
	if err != nil {
		log.Error().Err(err).Msg("Invalid heuristic")
		return exitError
	}

	opts := []search.Option{
		search.WithHeuristic(h),
		search.WithReopenOnCheaper(cfg.Search.ReopenOnCheaper),
		search.WithMaxExpansions(cfg.Search.MaxExpansions),
	}
	if cfg.Search.EmitEvents {
		bus := events.NewEventBus()
		bus.Subscribe(subscribers.NewLoggerSubscriber("cli_logger", log.Logger, zerolog.DebugLevel))
		opts = append(opts, search.WithEventBus(bus))
	}

	res, searchErr := search.Search(board, opts...)
	if searchErr != nil && !errors.Is(searchErr, core.ErrNoSolution) {
		log.Error().Err(searchErr).Msg("Search failed")
		return exitError
	}

	if *verify && res.Found() {
		if err := verifySolution(board, res); err != nil {
			log.Error().Err(err).Msg("Solution failed verification")
			return exitError
		}
		log.Info().Int("moves", len(res.Actions)).Msg("Solution verified")
	}

	if *jsonOut {
		resp, err := solverserver.BuildResponse(res, searchErr)
		if err != nil {
			log.Error().Err(err).Msg("Failed to build JSON result")
			return exitError
		}
		if err := printJSON(resp); err != nil {
			return exitError
		}
	} else {
		printSolution(board, res, cfg.Render.ShowBoard, cfg.Render.ANSI)
	}

	if !res.Found() {
		log.Info().Err(searchErr).Msg("No solution")
		return exitNoSolution
	}
	return exitSolved
}

func loadBoard(input string, seed int64, mc config.MapGenConfig) (*core.Board, error) {
	if seed >= 0 {
		gen := mapgen.NewGenerator(mapgen.MapConfig{
			LilyPadPercent: mc.LilyPadPercent,
			BlueCount:      mc.BlueCount,
			RedMaxRow:      mc.RedMaxRow,
			Sparse:         mc.Sparse,
		}, rand.New(rand.NewSource(seed)))
		return gen.GenerateMap(), nil
	}

	var r io.Reader = os.Stdin
	if input != "-" && input != "" {
		f, err := os.Open(input)
		if err != nil {
			return nil, err
		}
		defer f.Close()
		r = f
	}
	return boardio.ParseCSV(r)
}

func printSolution(board *core.Board, res search.Result, showBoard, ansi bool) {
	if !res.Found() {
		fmt.Println("NO SOLUTION")
		return
	}
	fmt.Println(rendering.FormatSolution(res.Actions))
	if showBoard {
		fmt.Println()
		fmt.Print(rendering.RenderPath(board, res.Actions, ansi))
	}
}

func printJSON(resp *structpb.Struct) error {
	data, err := protojson.MarshalOptions{Multiline: true, Indent: "  "}.Marshal(resp)
	if err != nil {
		log.Error().Err(err).Msg("Failed to encode JSON result")
		return err
	}
	fmt.Println(string(data))
	return nil
}

// verifySolution replays every action against the board and warns when a
// breadth-first search finds a shorter solution
func verifySolution(board *core.Board, res search.Result) error {
	pos := res.Start
	for i := range res.Actions {
		action := res.Actions[i]
		if action.Origin != pos {
			return core.WrapActionError(&action, fmt.Errorf("action %d starts at %s, piece is at %s", i, action.Origin, pos))
		}
		if err := action.Validate(board); err != nil {
			return core.WrapActionError(&action, err)
		}
		pos = action.Destination()
	}
	if pos != res.Goal || pos.R != core.GoalRow {
		return fmt.Errorf("solution ends at %s, not on the goal row", pos)
	}

	shortest := rules.ShortestMoveCount(board)
	if shortest >= 0 && shortest < len(res.Actions) {
		log.Warn().
			Int("moves", len(res.Actions)).
			Int("shortest", shortest).
			Msg("A shorter solution exists; try -heuristic admissible")
	}
	return nil
}

func solveRemote(addr string, board *core.Board, heuristic string, jsonOut bool) int {
	conn, err := grpc.NewClient(addr, grpc.WithTransportCredentials(insecure.NewCredentials()))
	if err != nil {
		log.Error().Err(err).Str("address", addr).Msg("Failed to connect to solver server")
		return exitError
	}
	defer conn.Close()

	req, err := structpb.NewStruct(map[string]interface{}{
		solverserver.FieldBoard:     boardio.FormatCSV(board),
		solverserver.FieldHeuristic: heuristic,
	})
	if err != nil {
		log.Error().Err(err).Msg("Failed to build request")
		return exitError
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	resp, err := solverserver.NewSolverServiceClient(conn).Solve(ctx, req)
	if err != nil {
		log.Error().Err(err).Str("address", addr).Msg("Remote solve failed")
		return exitError
	}

	found := resp.GetFields()[solverserver.FieldFound].GetBoolValue()
	if jsonOut {
		if err := printJSON(resp); err != nil {
			return exitError
		}
	} else if !found {
		fmt.Println("NO SOLUTION")
	} else {
		actions, err := solverserver.DecodeActions(resp)
		if err != nil {
			log.Error().Err(err).Str("address", addr).Msg("Malformed solve reply")
			return exitError
		}
		fmt.Println(rendering.FormatSolution(actions))
	}

	if !found {
		return exitNoSolution
	}
	return exitSolved
}

func setupLogging(level, format string) {
	logLevel, err := zerolog.ParseLevel(level)
	if err != nil || level == "" {
		logLevel = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(logLevel)

	// Results go to stdout, so logs always go to stderr
	if format == "json" || os.Getenv("APP_ENV") == "production" {
		log.Logger = zerolog.New(os.Stderr).With().Timestamp().Logger()
	} else {
		log.Logger = log.Output(zerolog.ConsoleWriter{
			Out:        os.Stderr,
			TimeFormat: time.RFC3339,
		})
	}
}
