// Package main is the entry point for the Stone terrain viewer.
package main

import (
	"fmt"
	"os"

	"go.uber.org/zap"

	"github.com/Faultbox/stone/internal/config"
	"github.com/Faultbox/stone/internal/logger"
	"github.com/Faultbox/stone/internal/metrics"
	"github.com/Faultbox/stone/internal/viewer"
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
	defer logger.Sync()

	logger.Info("=== Stone ===")
	logger.Sugar.Debugf("Config: %+v", cfg)

	rec := metrics.New()
	w, err := world.Generate(cfg, rec)
	if err != nil {
		logger.Error("world generation failed", zap.Error(err))
		logger.Sync()
		os.Exit(1)
	}
	if err := w.Export(cfg.Output); err != nil {
		logger.Error("export failed", zap.Error(err))
	}
	if cfg.Output.MetricsFile != "" {
		if err := rec.WriteFile(cfg.Output.MetricsFile); err != nil {
			logger.Error("writing metrics failed", zap.Error(err))
		}
	}

	v, err := viewer.New(cfg.Render, cfg.Output.ScreenshotDir, w)
	if err != nil {
		logger.Error("failed to create viewer", zap.Error(err))
		logger.Sync()
		os.Exit(1)
	}
	defer v.Close()

	if err := v.Run(); err != nil {
		logger.Error("viewer error", zap.Error(err))
		os.Exit(1)
	}

	logger.Info("viewer closed normally")
}
