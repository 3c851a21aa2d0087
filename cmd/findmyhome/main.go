package main

import (
	"context"
	"fmt"
	"log"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/jask/findmyhome/internal/api"
	"github.com/jask/findmyhome/internal/config"
	"github.com/jask/findmyhome/internal/logging"
	"github.com/jask/findmyhome/internal/project"
	"github.com/jask/findmyhome/internal/session"
	"github.com/jask/findmyhome/internal/tui"
)

func main() {
	ctx := context.Background()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	logger, err := logging.New(cfg.Log.Path, cfg.Log.Level)
	if err != nil {
		// keep running without a log file; the TUI owns the terminal
		logger = zap.NewNop()
	}
	defer func() { _ = logger.Sync() }()

	sessDir, err := session.DefaultDir()
	if err != nil {
		log.Fatalf("session dir: %v", err)
	}
	store, err := session.Open(sessDir)
	if err != nil {
		log.Fatalf("open session: %v", err)
	}

	client := api.New(
		cfg.API.BaseURL,
		time.Duration(cfg.API.TimeoutSeconds)*time.Second,
		store,
		logger,
	)
	projector := project.Projector{
		Currency: cfg.UI.CurrencyLabel,
		AreaUnit: cfg.UI.AreaUnit,
	}

	logger.Info("starting", zap.String("base_url", cfg.API.BaseURL), zap.Bool("has_token", store.HasToken()))

	p := tea.NewProgram(tui.New(ctx, client, store, projector, logger), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		fmt.Printf("error: %v\n", err)
	}
}
