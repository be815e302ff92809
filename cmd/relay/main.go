package main

import (
	"chat-relay/observability"
	"chat-relay/runtime"
	"chat-relay/runtime/workers"
	"chat-relay/transport"
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/Netflix/go-env"
	"github.com/joho/godotenv"
	"github.com/mama165/sdk-go/logs"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Fatal error: %v\n", err)
		os.Exit(1)
	}
}

// run initializes all components, manages the relay lifecycle, and
// centralizes error reporting so every defer executes before exit.
func run() error {
	// 1. Configuration & Logger
	_ = godotenv.Load()
	var config Config
	if _, err := env.UnmarshalFromEnviron(&config); err != nil {
		return fmt.Errorf("config error: %w", err)
	}
	if err := config.Validate(); err != nil {
		return fmt.Errorf("config error: %w", err)
	}
	log := logs.GetLoggerFromString(config.LogLevel)

	// 2. Transport (UDP socket). A failed bind is fatal: no partial start.
	udp, err := transport.Listen(config.Host, config.Port)
	if err != nil {
		return fmt.Errorf("could not start relay: %w", err)
	}
	defer func() {
		log.Info("Closing socket...")
		_ = udp.Close()
	}()

	// 3. Registry, router, stats
	stats := observability.NewRelayStats()
	registry := runtime.NewRegistry()
	router := runtime.NewRouter(log, registry, udp, stats, config.ClientTimeout)

	// 4. Context & Signals
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// 5. Supervised workers: receive loop, liveness sweeper, telemetry
	sup := workers.NewSupervisor(log, config.RestartInterval)
	sup.Add(
		workers.NewReceiverWorker(log, udp, router, config.ReceiveTimeout),
		workers.NewSweeperWorker(log, registry, router, stats, config.SweepInterval, config.ClientTimeout),
		workers.NewTelemetryWorker(log, registry, stats, config.StatsInterval, config.RosterDump),
	)

	log.Info("UDP chat relay started",
		"address", udp.LocalAddr().String(),
		"client_timeout", config.ClientTimeout,
		"sweep_interval", config.SweepInterval,
	)

	// 6. Block until signal; workers notice cancellation via their polls
	sup.Run(ctx)

	log.Info("Relay stopped cleanly")
	return nil
}
