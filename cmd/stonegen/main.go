// Package main generates a world headlessly and writes its artifacts.
package main

import (
	"fmt"
	"os"

	"github.com/dustin/go-humanize"
	"go.uber.org/zap"

	"github.com/Faultbox/stone/internal/config"
	"github.com/Faultbox/stone/internal/logger"
	"github.com/Faultbox/stone/internal/metrics"
	"github.com/Faultbox/stone/internal/world"
)

func main() {
	config.ParseFlags()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Config error: %v\n", err)
		os.Exit(1)
	}

	if err := logger.Init(cfg.Logging.Level, cfg.Logging.LogFile); err != nil {
		fmt.Fprintf(os.Stderr, "Logger error: %v\n", err)
		os.Exit(1)
	}

	if err := run(cfg); err != nil {
		logger.Error("generation failed", zap.Error(err))
		logger.Sync()
		os.Exit(1)
	}
	logger.Sync()
}

func run(cfg *config.Config) error {
	if cfg.Output.MeshFile == "" {
		cfg.Output.MeshFile = "world.stvb"
	}

	rec := metrics.New()
	w, err := world.Generate(cfg, rec)
	if err != nil {
		return err
	}
	if err := w.Export(cfg.Output); err != nil {
		return err
	}
	if cfg.Output.MetricsFile != "" {
		if err := rec.WriteFile(cfg.Output.MetricsFile); err != nil {
			return fmt.Errorf("writing metrics: %w", err)
		}
	}

	fmt.Printf("run %s: %d quads (%s), %d candidates, seed %d\n",
		w.RunID,
		w.Mesh.QuadCount(),
		humanize.IBytes(uint64(w.Mesh.SizeBytes())),
		w.Stats.Candidates,
		w.Seed,
	)
	return nil
}
