package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/leengari/labdb/internal/config"
	"github.com/leengari/labdb/internal/engine"
	"github.com/leengari/labdb/internal/logging"
	"github.com/leengari/labdb/internal/network"
	"github.com/leengari/labdb/internal/repl"
	"github.com/leengari/labdb/internal/storage"
)

func main() {
	cfg, err := config.Load(os.Args[1:])
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}

	logger, closeFn := logging.SetupLogger(cfg)
	defer closeFn()

	slog.SetDefault(logger)
	slog.Info("Starting labdb...", "data_dir", cfg.DataDir)

	fs, err := storage.OpenDataDir(cfg.DataDir)
	if err != nil {
		slog.Error("failed to open data directory", "error", err)
		closeFn()
		os.Exit(1)
	}

	tables, err := storage.LoadTables(fs)
	if err != nil {
		slog.Error("failed to load tables", "error", err)
		closeFn()
		os.Exit(1)
	}

	db := engine.New(engine.WithObserver(engine.NewLoggingObserver(logger)))
	for name, t := range tables {
		db.RegisterTable(name, t)
	}

	slog.Info("Application ready!", "tables", db.Tables())

	if !cfg.ServerMode {
		slog.Info("Starting REPL mode...")
		repl.Start(db, os.Stdin, os.Stdout)
		return
	}

	slog.Info("Starting Server mode...")
	srv := network.NewServer(db)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			slog.Error("server shutdown failed", "error", err)
		}
	}()

	if err := srv.Start(cfg.Port); err != nil {
		slog.Error("server failed", "error", err)
		closeFn()
		os.Exit(1)
	}
	slog.Info("Shutting down")
}
