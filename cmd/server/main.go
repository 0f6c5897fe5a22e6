package main

import (
	"chat-feed/contract"
	pb "chat-feed/infrastructure/grpc/feedv1"
	grpcserver "chat-feed/infrastructure/grpc/server"
	"chat-feed/infrastructure/rest"
	"chat-feed/internal"
	"chat-feed/moderation"
	"chat-feed/observability"
	"chat-feed/repositories"
	"chat-feed/runtime"
	"chat-feed/runtime/workers"
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/Netflix/go-env"
	"github.com/joho/godotenv"
	"github.com/mama165/sdk-go/logs"
	"google.golang.org/grpc"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Fatal error: %v\n", err)
		os.Exit(1)
	}
}

// run initializes all components, manages the server lifecycle, and centralizes error reporting.
// Returning instead of exiting lets the deferred store shutdown run before the process ends.
func run() error {
	// 1. Configuration & Logger
	_ = godotenv.Load()
	var config internal.Config
	if _, err := env.UnmarshalFromEnviron(&config); err != nil {
		return fmt.Errorf("config error: %w", err)
	}
	if err := config.Validate(); err != nil {
		return fmt.Errorf("config error: %w", err)
	}
	log := logs.GetLoggerFromString(config.LogLevel)

	// 2. Storage backend
	backend, err := openBackend(config, log)
	if err != nil {
		return err
	}

	// 3. Store, with its monitoring and optional moderation
	monitoring := observability.NewMonitoringManager(log)
	opts := []runtime.StoreOption{runtime.WithMonitor(monitoring)}
	if config.CensoredWordsFile != "" {
		moderator, err := openModerator(config.CensoredWordsFile, log)
		if err != nil {
			_ = backend.Close()
			return err
		}
		opts = append(opts, runtime.WithTextFilter(moderator))
	}
	store := runtime.NewMessageStore(log, backend, runtime.NewRegistry(),
		config.MaxContentLength, config.BatchSize, config.PollInterval, opts...)
	defer func() {
		if err := store.Close(); err != nil {
			log.Error("Closing store failed", "error", err)
		}
	}()

	// 4. Context & Signals
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// 5. Transports, supervised
	grpcServer := grpc.NewServer()
	pb.RegisterFeedServer(grpcServer, grpcserver.NewFeedServer(log, store, config.HistorySize))

	stats := func() map[string]any {
		body := monitoring.AsMap()
		body["backend"] = config.Backend
		body["subscriptions"] = store.ActiveSubscriptions()
		return body
	}
	httpHandler := rest.NewServer(log, store, config.HistorySize, config.HeartbeatInterval, stats,
		rest.WithMaxContentLength(config.MaxContentLength))

	sup := workers.NewSupervisor(log, config.RestartInterval)
	sup.Add(
		workers.NewHTTPWorker(log, httpHandler, workers.TCPListener(config.HTTPAddress())),
		workers.NewGRPCWorker(log, grpcServer, workers.TCPListener(config.GRPCAddress())),
		workers.NewMonitoringWorker(log, monitoring, store.ActiveSubscriptions, config.MetricInterval),
	)
	if config.DebugPort != 0 {
		debugHandler := internal.NewDebugHandler(log, store, stats, store.Subscriptions)
		sup.Add(workers.NewHTTPWorker(log, debugHandler, workers.TCPListener(config.DebugAddress())))
		log.Info("Debug inspector enabled", "url", "http://"+config.DebugAddress()+"/inspect")
	}

	log.Info("Chat feed starting", "backend", config.Backend,
		"http", config.HTTPAddress(), "grpc", config.GRPCAddress())
	// Blocks until a signal cancels ctx and every worker returned.
	sup.Run(ctx)

	log.Info("Program stopped cleanly")
	return nil
}

func openModerator(path string, log *slog.Logger) (*moderation.Moderator, error) {
	words, err := moderation.LoadWords(path)
	if err != nil {
		return nil, err
	}
	moderator, err := moderation.NewModerator(words, moderation.DefaultMask, log)
	if err != nil {
		return nil, err
	}
	log.Info("Moderation enabled", "words", moderator.Words())
	return moderator, nil
}

func openBackend(config internal.Config, log *slog.Logger) (contract.ILogBackend, error) {
	switch config.Backend {
	case internal.BackendSQLite:
		backend, err := repositories.OpenSQLiteLog(config.SQLiteFilepath, log)
		if err != nil {
			return nil, fmt.Errorf("database opening failed: %w", err)
		}
		return backend, nil
	default:
		if config.BadgerFilepath == "" {
			log.Warn("BADGER_FILEPATH is empty, messages are kept in memory only")
		}
		return repositories.OpenBadgerLog(config.BadgerFilepath, log)
	}
}
