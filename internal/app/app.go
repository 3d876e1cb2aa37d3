// Package app wires the configured completion client.
package app

import (
	"fmt"
	"net/http"

	"github.com/metalagman/ideagpt/internal/completion"
	"github.com/metalagman/ideagpt/internal/config"
	"go.uber.org/fx"
	"go.uber.org/fx/fxevent"
)

// New builds the completion client described by cfg.
func New(cfg config.Config) (*completion.Client, error) {
	var client *completion.Client

	app := fx.New(
		fx.WithLogger(func() fxevent.Logger { return eventLogger{} }),
		fx.Supply(cfg),
		fx.Provide(
			newHTTPClient,
			newCompletionClient,
		),
		fx.Populate(&client),
	)
	if err := app.Err(); err != nil {
		return nil, fmt.Errorf("build app: %w", err)
	}
	return client, nil
}

// newHTTPClient creates the one HTTP client shared by every completion call.
func newHTTPClient(cfg config.Config) *http.Client {
	return &http.Client{Timeout: cfg.Timeout}
}

func newCompletionClient(cfg config.Config, httpClient *http.Client) (*completion.Client, error) {
	return completion.NewClient(cfg.Completion(), httpClient)
}
