package main

import (
	"context"

	"github.com/metalagman/ideagpt/internal/app"
	"github.com/metalagman/ideagpt/internal/logging"
	"github.com/metalagman/ideagpt/internal/tui"
	"github.com/rs/zerolog/log"
)

func runUI(ctx context.Context) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	client, err := app.New(cfg)
	if err != nil {
		return err
	}

	log.Debug().Str("log_file", logFile).Msg("starting ui")
	closeLog, err := logging.InitFile(debug, logFile)
	if err != nil {
		return err
	}
	defer closeLog()

	return tui.Run(ctx, client, tui.WithMarkdown(cfg.RenderMarkdown))
}
