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
	"prisma-remap/internal/commentsync"
	"prisma-remap/internal/config"
	"prisma-remap/internal/logging"
	"prisma-remap/internal/schemafile"
)

var (
	// Version is set at build time via -ldflags "-X main.Version=...".
	Version = "dev"
	Commit  = "none"
)

func main() {
	if err := run(); err != nil {
		slog.Error("commentsync error", slog.String("error", err.Error()))
		os.Exit(1)
	}
}

func run() error {
	pflag.Bool("version", false, "Print version and exit")
	mode := pflag.String("mode", "pull", "Sync direction: pull (database comments into schema) or script (schema comments into DDL script)")

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	if showVersion, _ := pflag.CommandLine.GetBool("version"); showVersion {
		fmt.Printf("prisma-remap commentsync %s (%s)\n", Version, Commit)
		return nil
	}

	if *mode != "pull" && *mode != "script" {
		return fmt.Errorf("unknown mode %q: use pull or script", *mode)
	}

	validationResult := cfg.Validate()
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

	schema, err := schemafile.Read(cfg.Schema.Path)
	if err != nil {
		return err
	}

	switch *mode {
	case "pull":
		out := commentsync.Pull(schema, tables, columns)
		if err := schemafile.WriteAtomic(cfg.Schema.OutputPath, out); err != nil {
			return err
		}
		logger.Info("database comments pulled into schema",
			slog.String("source", cfg.Schema.Path),
			slog.String("output", cfg.Schema.OutputPath),
		)
	case "script":
		script := commentsync.Script(schema, tables, columns)
		if script == "" {
			logger.Info("comments already in sync, no script generated")
			return nil
		}
		if err := schemafile.WriteAtomic(cfg.Schema.CommentScriptPath, script); err != nil {
			return err
		}
		logger.Info("comment DDL script generated",
			slog.String("output", cfg.Schema.CommentScriptPath),
		)
	}
	return nil
}
