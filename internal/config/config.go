// Package config provides configuration loading and validation for ideagpt.
package config

import (
	"strings"
	"time"

	"github.com/metalagman/ideagpt/internal/completion"
)

// Config is the root configuration.
type Config struct {
	APIKey         string        `json:"openai_api_key"  mapstructure:"openai_api_key"`
	Model          string        `json:"model"           mapstructure:"model"`
	MaxTokens      int           `json:"max_tokens"      mapstructure:"max_tokens"`
	Endpoint       string        `json:"endpoint"        mapstructure:"endpoint"`
	Timeout        time.Duration `json:"timeout"         mapstructure:"timeout"`
	RenderMarkdown bool          `json:"render_markdown" mapstructure:"render_markdown"`
}

// Completion returns the completion client settings.
func (c Config) Completion() completion.Config {
	return completion.Config{
		Endpoint:  c.Endpoint,
		APIKey:    c.APIKey,
		Model:     c.Model,
		MaxTokens: c.MaxTokens,
		Timeout:   c.Timeout,
	}
}

// Redacted returns a copy safe to print.
func (c Config) Redacted() Config {
	out := c
	switch key := strings.TrimSpace(c.APIKey); {
	case key == "":
	case len(key) <= 12:
		out.APIKey = "********"
	default:
		out.APIKey = key[:3] + "..." + key[len(key)-4:]
	}
	return out
}
