package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/Netflix/go-env"
	"github.com/blugelabs/bluge"
	"github.com/dgraph-io/badger/v4"
	"github.com/joho/godotenv"
	"github.com/mama165/sdk-go/logs"

	"chat-sync/auth"
	"chat-sync/internal"
	"chat-sync/reconcile"
	"chat-sync/repositories"
	"chat-sync/runtime/workers"
	"chat-sync/search"
	"chat-sync/sink"
	"chat-sync/transport"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Fatal error: %v\n", err)
		os.Exit(1)
	}
}

// run initializes all components, manages the client lifecycle, and
// centralizes error reporting, so deferred cleanup (badger, bluge) always
// executes before the process exits.
func run() error {
	// 1. Configuration & logger
	_ = godotenv.Load()
	var config internal.Config
	if _, err := env.UnmarshalFromEnviron(&config); err != nil {
		return fmt.Errorf("config error: %w", err)
	}
	log := logs.GetLoggerFromString(config.LogLevel)

	// 2. Session identity (read-only look at the server-issued token)
	if config.SessionToken != "" {
		claims, err := auth.ReadClaims(config.SessionToken)
		if err != nil {
			return fmt.Errorf("session token: %w", err)
		}
		log.Info("Session established", "user", claims.UserID)
		if claims.ExpiresWithin(config.ExpiryWarning) {
			log.Warn("Session token expires soon, reconnects will start failing")
		}
	}

	// 3. Local stores: history cache + search index
	db, err := badger.Open(badger.DefaultOptions(config.BadgerFilepath).
		WithLoggingLevel(badger.WARNING))
	if err != nil {
		return fmt.Errorf("history cache opening failed: %w", err)
	}
	defer func() {
		log.Info("Closing history cache...")
		_ = db.Close()
	}()

	blugeWriter, err := bluge.OpenWriter(bluge.DefaultConfig(config.BlugeFilepath))
	if err != nil {
		return fmt.Errorf("search index opening failed: %w", err)
	}
	defer func() {
		log.Info("Closing search index...")
		_ = blugeWriter.Close()
	}()

	// 4. Reconciler + sinks
	messageRepository := repositories.NewMessageRepository(db, log, config.LimitMessages)
	stats := sink.NewStatsSink()
	index := search.NewIndex(blugeWriter, log)
	engine := reconcile.NewEngine(log,
		sink.NewDiskSink(messageRepository, log),
		index,
		stats,
	)

	// 5. Context & signals
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// 6. Debug endpoint
	internal.StartDebugServer(config.DebugPort, engine, stats.Stats, index, log)

	// 7. Supervised workers: transport session + reporter
	client := transport.NewClient(config.ServerURL, config.SessionToken, engine, log,
		config.ReconnectDelay)
	reporter := workers.NewReporterWorker(engine, log, config.ReportInterval)

	sup := workers.NewSupervisor(log)
	sup.Add(client, reporter)

	log.Info("Starting chat sync client", "server", config.ServerURL)
	sup.Run(ctx)
	return nil
}
