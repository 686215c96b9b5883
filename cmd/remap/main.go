package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/pflag"

	"prisma-remap/internal/catalog"
	"prisma-remap/internal/config"
	"prisma-remap/internal/logging"
	"prisma-remap/internal/mapping"
	"prisma-remap/internal/naming"
	"prisma-remap/internal/rewrite"
	"prisma-remap/internal/schemafile"
)

var (
	// Version is set at build time via -ldflags "-X main.Version=...".
	Version = "dev"
	Commit  = "none"
)

func main() {
	if err := run(); err != nil {
		slog.Error("remap error", slog.String("error", err.Error()))
		os.Exit(1)
	}
}

func run() error {
	pflag.Bool("version", false, "Print version and exit")

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	if showVersion, _ := pflag.CommandLine.GetBool("version"); showVersion {
		fmt.Printf("prisma-remap %s (%s)\n", Version, Commit)
		return nil
	}

	validationResult := cfg.Validate()
	for _, warn := range validationResult.Warnings {
		slog.Warn("configuration warning",
			slog.String("field", warn.Field),
			slog.String("message", warn.Message),
			slog.String("hint", warn.Hint),
		)
	}
	if validationResult.HasErrors() {
		for _, err := range validationResult.Errors {
			slog.Error("configuration error",
				slog.String("field", err.Field),
				slog.String("message", err.Message),
				slog.String("hint", err.Hint),
			)
		}
		return fmt.Errorf("configuration validation failed")
	}

	logger := logging.NewLogger(logging.Config{
		Level:  cfg.Logging.Level,
		Format: cfg.Logging.Format,
	}).WithRunID()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	ctx = logging.WithLogger(ctx, logger)

	db, err := catalog.Open(ctx, &cfg.Database)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer func() {
		_ = db.Close()
	}()

	tables, err := catalog.ListTables(ctx, db, cfg.Database.Database)
	if err != nil {
		return err
	}
	columns, err := catalog.ListColumns(ctx, db, cfg.Database.Database)
	if err != nil {
		return err
	}

	namer := naming.New(cfg.Naming, logger.Logger)
	maps := mapping.Build(tables, columns, namer)
	logger.Info("catalog mappings built",
		slog.Int("tables", len(maps.Tables)),
		slog.Int("columns", len(maps.Columns)),
	)

	schema, err := schemafile.Read(cfg.Schema.Path)
	if err != nil {
		return err
	}

	out := rewrite.Transform(schema, maps, namer)

	if err := schemafile.WriteAtomic(cfg.Schema.OutputPath, out); err != nil {
		return err
	}
	logger.Info("schema rewritten",
		slog.String("source", cfg.Schema.Path),
		slog.String("output", cfg.Schema.OutputPath),
	)
	return nil
}
