package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/kasunkula/middys-assignment/internal/config"
	"github.com/kasunkula/middys-assignment/internal/core/aggregation"
	"github.com/kasunkula/middys-assignment/internal/core/storage/postgres"
	"github.com/kasunkula/middys-assignment/internal/journal"
	"github.com/kasunkula/middys-assignment/internal/metrics"
	"github.com/kasunkula/middys-assignment/internal/migrations"
	"github.com/kasunkula/middys-assignment/internal/orders"
	"github.com/kasunkula/middys-assignment/internal/server"
	"github.com/kasunkula/middys-assignment/internal/statistics"
	"golang.org/x/sync/errgroup"
)

func main() {
	configPath := flag.String("config", "", "Path to configuration file (optional)")
	flag.Parse()

	// 0. Initialize bootstrap logger
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stdout, nil)))

	// 1. Load Configuration
	cfg, err := config.Load(*configPath)
	if err != nil {
		slog.Error("Failed to load config", "error", err)
		os.Exit(1)
	}

	logger, err := cfg.Log.NewLogger(os.Stdout)
	if err != nil {
		slog.Error("Failed to configure logger", "error", err)
		os.Exit(1)
	}
	slog.SetDefault(logger)

	if dump, err := cfg.Dump(); err == nil {
		slog.Info("Loaded config", "config", dump)
	}

	// 2. Initialize Statistics Engine
	engine, err := aggregation.NewEngine(
		cfg.Statistics.WindowLengthMs,
		aggregation.ConcurrencyModel(cfg.Statistics.ConcurrencyModel),
	)
	if err != nil {
		slog.Error("Failed to initialize statistics engine", "error", err)
		os.Exit(1)
	}

	// 3. Initialize Audit Journal (optional)
	var (
		recorder orders.Recorder = journal.Nop{}
		writer   *journal.Writer
		checks   = map[string]server.HealthChecker{}
	)
	if cfg.Journal.Enabled {
		db, err := postgres.Open(cfg.Journal.DSN, cfg.Journal.MaxOpenConns, cfg.Journal.MaxIdleConns)
		if err != nil {
			slog.Error("Failed to initialize journal database", "error", err)
			os.Exit(1)
		}

		// 3.1. Run Database Migrations
		if err := migrations.RunMigrations(db, cfg.Journal.AutoMigrate); err != nil {
			db.Close()
			slog.Error("Failed to run database migrations", "error", err)
			os.Exit(1)
		}

		store, err := postgres.NewJournalAdapter(context.Background(), db)
		if err != nil {
			db.Close()
			slog.Error("Failed to initialize journal store", "error", err)
			os.Exit(1)
		}
		defer store.Close()

		writer = journal.NewWriter(store, journal.Options{
			BatchSize:     cfg.Journal.BatchSize,
			WorkerCount:   cfg.Journal.WorkerCount,
			BufferSize:    cfg.Journal.ChannelBufferSize,
			FlushInterval: cfg.Journal.FlushIntervalDuration(),
		})
		recorder = writer
		checks["journal"] = store
	} else {
		slog.Info("Audit journal disabled by config")
	}

	// 4. Initialize Services
	ordersSvc := orders.NewService(engine, recorder, cfg.Server.MaxBodySizeMB)
	statisticsSvc := statistics.NewService(engine, cfg.Statistics.PeriodMs)

	// 5. Initialize Server
	srv := server.New(fmtAddr(cfg.Server.Host, cfg.Server.Port), cfg.Server.Mode, metrics.NewRegistry(), checks)
	ordersSvc.RegisterRoutes(srv.Engine)
	statisticsSvc.RegisterRoutes(srv.Engine)

	// 6. Start Services
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Signal handler triggers the shutdown sequence below.
	go func() {
		quit := make(chan os.Signal, 1)
		signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
		<-quit
		slog.Info("Signal received, shutting down...")
		cancel()
	}()

	// The journal stops only after the HTTP server has drained.
	writerCtx, stopWriter := context.WithCancel(context.Background())
	defer stopWriter()

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		defer stopWriter()
		return srv.Run(gctx)
	})
	if writer != nil {
		g.Go(func() error {
			return writer.Start(writerCtx)
		})
	}

	if err := g.Wait(); err != nil {
		slog.Error("Service stopped with error", "error", err)
	}

	slog.Info("Shutdown complete")
}

func fmtAddr(host string, port int) string {
	return fmt.Sprintf("%s:%d", host, port)
}
