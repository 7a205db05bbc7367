package main

import (
	"fmt"
	"net/http"
	"os"

	"utmequiz/internal/app"
	"utmequiz/internal/catalog"

	"go.uber.org/zap"
)

func main() {
	cfg := app.LoadConfig()

	logger, err := app.NewLogger(cfg.AppEnv, cfg.LogLevel)
	if err != nil {
		fmt.Fprintf(os.Stderr, "logger error: %v\n", err)
		os.Exit(1)
	}
	defer func() { _ = logger.Sync() }()

	cat, err := catalog.Load(cfg.CatalogFile)
	if err != nil {
		logger.Error("catalog error", zap.Error(err))
		os.Exit(1)
	}

	r := app.NewRouter(cfg, cat, logger)

	logger.Info("quiz preview listening",
		zap.String("addr", cfg.HTTPAddr),
		zap.String("questt_dir", cfg.QuesttDir),
		zap.String("output_dir", cfg.OutputDir),
	)
	if err := http.ListenAndServe(cfg.HTTPAddr, r); err != nil {
		logger.Error("server stopped", zap.Error(err))
		os.Exit(1)
	}
}
