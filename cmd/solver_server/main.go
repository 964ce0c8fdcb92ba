package main

import (
	"context"
	"flag"
	"fmt"
	"net"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/health"
	"google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/status"

	"github.com/mitchelldurbincs/FreckersSearch/internal/config"
	"github.com/mitchelldurbincs/FreckersSearch/internal/game/events"
	"github.com/mitchelldurbincs/FreckersSearch/internal/game/events/subscribers"
	"github.com/mitchelldurbincs/FreckersSearch/internal/grpc/solverserver"
	"github.com/mitchelldurbincs/FreckersSearch/internal/monitoring"
)

func main() {
	// Command line flags
	configPath := flag.String("config", "", "Path to config file")
	port := flag.Int("port", -1, "The server port (-1 to use config default)")
	host := flag.String("host", "", "The server host (empty to use config default)")
	logLevel := flag.String("log-level", "", "Log level (debug, info, warn, error) (empty to use config default)")
	maxExpansions := flag.Int("max-expansions", -1, "Expansion cap per search, 0 for none (-1 to use config default)")
	metricsInterval := flag.Duration("metrics-interval", time.Minute, "How often to log solver metrics")
	watch := flag.Bool("watch-config", false, "Reload the config file when it changes")
	flag.Parse()

	// Initialize configuration
	if err := config.Init(*configPath); err != nil {
		log.Fatal().Err(err).Msg("Failed to initialize config")
	}

	if *maxExpansions != -1 {
		if err := config.Set("search.max_expansions", *maxExpansions); err != nil {
			log.Fatal().Err(err).Msg("Invalid -max-expansions")
		}
	}
	cfg := config.Get()

	// Use config defaults if not overridden by flags
	if *port == -1 {
		*port = cfg.Server.GRPCServer.Port
	}
	if *host == "" {
		*host = cfg.Server.GRPCServer.Host
	}
	if *logLevel == "" {
		*logLevel = cfg.Server.GRPCServer.LogLevel
	}

	setupLogging(*logLevel)

	if *metricsInterval <= 0 {
		log.Fatal().Dur("metrics_interval", *metricsInterval).Msg("-metrics-interval must be positive")
	}

	if *watch {
		config.WatchConfig(func(e fsnotify.Event, err error) {
			if err != nil {
				log.Warn().Err(err).Str("file", e.Name).Msg("Ignoring invalid config change")
				return
			}
			// Only the log level is applied live; search settings are fixed at startup
			setupLogging(config.Get().Server.GRPCServer.LogLevel)
			log.Info().Str("file", e.Name).Msg("Config reloaded")
		})
	}

	log.Info().
		Int("port", *port).
		Str("host", *host).
		Str("heuristic", cfg.Search.Heuristic).
		Int("max_expansions", cfg.Search.MaxExpansions).
		Str("config_file", config.ConfigFilePath()).
		Int("cache_size", cfg.Server.GRPCServer.CacheSize).
		Msg("Starting gRPC solver server")

	// Event bus feeds the metrics monitor and, optionally, the event log
	bus := events.NewEventBus()
	monitor := monitoring.NewSolverMonitor(*metricsInterval)
	bus.Subscribe(monitor)
	if cfg.Search.EmitEvents {
		eventLogger := subscribers.NewLoggerSubscriber("search_event_logger", log.Logger, zerolog.DebugLevel)
		eventLogger.SetEventFilter([]string{
			events.TypeSearchStarted,
			events.TypeSearchSucceeded,
			events.TypeSearchExhausted,
			events.TypeSearchAborted,
		})
		bus.Subscribe(eventLogger)
	}
	log.Debug().Int("handlers", bus.Len()).Msg("Event bus ready")
	monitor.Start()
	defer monitor.Stop()

	solver, err := solverserver.NewServer(solverserver.Options{
		Heuristic:       cfg.Search.Heuristic,
		ReopenOnCheaper: cfg.Search.ReopenOnCheaper,
		MaxExpansions:   cfg.Search.MaxExpansions,
		CacheSize:       cfg.Server.GRPCServer.CacheSize,
		CacheTTL:        time.Duration(cfg.Server.GRPCServer.CacheTTLSeconds) * time.Second,
		EventBus:        bus,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to create solver service")
	}

	// Create listener
	lis, err := net.Listen("tcp", fmt.Sprintf("%s:%d", *host, *port))
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to listen")
	}

	grpcServer := grpc.NewServer(
		grpc.ChainUnaryInterceptor(
			loggingInterceptor,
			recoveryInterceptor,
		),
	)

	solverserver.RegisterSolverServiceServer(grpcServer, solver)

	// Register health service
	healthServer := health.NewServer()
	grpc_health_v1.RegisterHealthServer(grpcServer, healthServer)
	healthServer.SetServingStatus("", grpc_health_v1.HealthCheckResponse_SERVING)
	healthServer.SetServingStatus(solverserver.ServiceName, grpc_health_v1.HealthCheckResponse_SERVING)

	// Setup graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)

	go func() {
		sig := <-sigCh
		log.Info().Str("signal", sig.String()).Msg("Received shutdown signal")

		healthServer.SetServingStatus("", grpc_health_v1.HealthCheckResponse_NOT_SERVING)
		healthServer.SetServingStatus(solverserver.ServiceName, grpc_health_v1.HealthCheckResponse_NOT_SERVING)

		// Give ongoing requests time to complete
		time.Sleep(time.Duration(cfg.Server.GRPCServer.GracefulShutdownDelay) * time.Second)

		log.Info().Msg("Gracefully stopping gRPC server")
		grpcServer.GracefulStop()
		cancel()
	}()

	log.Info().Str("address", lis.Addr().String()).Msg("gRPC server listening")

	go func() {
		if err := grpcServer.Serve(lis); err != nil {
			log.Fatal().Err(err).Msg("Failed to serve")
		}
	}()

	// Wait for shutdown
	<-ctx.Done()

	m := monitor.GetMetrics()
	log.Info().
		Int("searches", m.Started).
		Int("succeeded", m.Succeeded).
		Int("exhausted", m.Exhausted).
		Int("aborted", m.Aborted).
		Msg("Server shutdown complete")
}

func setupLogging(level string) {
	logLevel, err := zerolog.ParseLevel(level)
	if err != nil || level == "" {
		logLevel = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(logLevel)

	if os.Getenv("APP_ENV") == "production" {
		// JSON output for production
		log.Logger = zerolog.New(os.Stdout).With().Timestamp().Logger()
	} else {
		// Pretty console output for development
		log.Logger = log.Output(zerolog.ConsoleWriter{
			Out:        os.Stdout,
			TimeFormat: time.RFC3339,
		})
	}
}

// loggingInterceptor logs all unary RPC calls
func loggingInterceptor(ctx context.Context, req interface{}, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (interface{}, error) {
	start := time.Now()

	resp, err := handler(ctx, req)

	code := codes.OK
	if err != nil {
		if st, ok := status.FromError(err); ok {
			code = st.Code()
		}
	}

	log.Info().
		Str("method", info.FullMethod).
		Str("code", code.String()).
		Dur("duration", time.Since(start)).
		Err(err).
		Msg("gRPC call")

	return resp, err
}

// recoveryInterceptor catches panics and returns proper gRPC errors
func recoveryInterceptor(ctx context.Context, req interface{}, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (resp interface{}, err error) {
	defer func() {
		if r := recover(); r != nil {
			log.Error().
				Str("method", info.FullMethod).
				Interface("panic", r).
				Msg("Recovered from panic in gRPC handler")
			err = status.Errorf(codes.Internal, "internal server error")
		}
	}()

	return handler(ctx, req)
}
