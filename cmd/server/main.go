// Command server runs the codeclass API: the simulated playground, the
// course catalogs, the learning records and the tutor chatbot.
//
// Configuration comes from the environment (and .env); run with -help to
// list the variables.
package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/sakif/codeclass/internal/catalog"
	"github.com/sakif/codeclass/internal/chat"
	"github.com/sakif/codeclass/internal/config"
	"github.com/sakif/codeclass/internal/server"
)

func main() {
	help := flag.Bool("help", false, "list configuration variables and exit")
	flag.Parse()
	if *help {
		fmt.Println(config.Usage())
		return
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	level, _ := cfg.SlogLevel() // validated by Load
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)

	if cfg.DBPath != ":memory:" {
		dbDir := filepath.Dir(cfg.DBPath)
		if err := os.MkdirAll(dbDir, 0o755); err != nil {
			logger.Error("failed to create database directory",
				slog.String("dir", dbDir),
				slog.String("error", err.Error()),
			)
			os.Exit(1)
		}
	}

	cat, err := catalog.Load()
	if err != nil {
		logger.Error("failed to load catalog", slog.String("error", err.Error()))
		os.Exit(1)
	}
	logger.Info("catalog loaded",
		slog.Int("courses", cat.Courses.Len()),
		slog.Int("curriculum", cat.Curriculum.Len()),
		slog.Int("resources", cat.Resources.Len()),
	)

	// Keep the interface nil, not a nil *GeminiClient, when chat is off.
	var completer chat.Completer
	if cfg.GeminiAPIKey != "" {
		completer = chat.NewGeminiClient(cfg.GeminiAPIKey, cfg.GeminiBaseURL, cfg.GeminiModel)
	}

	srv, err := server.New(cfg, server.Deps{
		Catalog:   cat,
		Completer: completer,
		Logger:    logger,
	})
	if err != nil {
		logger.Error("failed to create server", slog.String("error", err.Error()))
		os.Exit(1)
	}

	// Start blocks until SIGINT/SIGTERM.
	if err := srv.Start(); err != nil {
		logger.Error("server error", slog.String("error", err.Error()))
		os.Exit(1)
	}
}
