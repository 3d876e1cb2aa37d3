// Package completion sends prompts to a text-completion HTTP API.
package completion

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
)

// Client performs single, synchronous completion calls. It is safe for
// concurrent use and stays usable after a failed call.
type Client struct {
	cfg        Config
	httpClient *http.Client
}

// NewClient constructs a new completion client. A nil httpClient gets a
// dedicated client that is reused for every call.
func NewClient(cfg Config, httpClient *http.Client) (*Client, error) {
	endpoint := strings.TrimSpace(cfg.Endpoint)
	if endpoint == "" {
		endpoint = DefaultEndpoint
	}
	u, err := url.Parse(endpoint)
	if err != nil {
		return nil, fmt.Errorf("parse endpoint: %w", err)
	}
	if u.Scheme == "" || u.Host == "" {
		return nil, fmt.Errorf("endpoint %q must be an absolute url", endpoint)
	}

	model := strings.TrimSpace(cfg.Model)
	if model == "" {
		model = DefaultModel
	}

	maxTokens := cfg.MaxTokens
	if maxTokens <= 0 {
		maxTokens = DefaultMaxTokens
	}

	if cfg.Timeout < 0 {
		return nil, fmt.Errorf("timeout must not be negative")
	}
	if httpClient == nil {
		httpClient = &http.Client{Timeout: cfg.Timeout}
	}

	return &Client{
		cfg: Config{
			Endpoint:  endpoint,
			APIKey:    cfg.APIKey,
			Model:     model,
			MaxTokens: maxTokens,
			Timeout:   cfg.Timeout,
		},
		httpClient: httpClient,
	}, nil
}

// Config returns the effective client configuration.
func (c *Client) Config() Config {
	return c.cfg
}

// Complete posts prompt to the completion endpoint and returns the raw
// response body. The body is not parsed. Every failure is a *RequestError.
func (c *Client) Complete(ctx context.Context, prompt string) (string, error) {
	form := url.Values{}
	form.Set("model", c.cfg.Model)
	form.Set("prompt", prompt)
	form.Set("max_tokens", strconv.Itoa(c.cfg.MaxTokens))

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.cfg.Endpoint, strings.NewReader(form.Encode()))
	if err != nil {
		return "", c.requestError(err)
	}
	req.Header.Set("Authorization", "Bearer "+c.cfg.APIKey)
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	started := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		log.Debug().Err(err).Str("endpoint", c.cfg.Endpoint).Msg("completion request failed")
		return "", c.requestError(err)
	}
	defer func() { _ = resp.Body.Close() }()

	log.Debug().
		Str("endpoint", c.cfg.Endpoint).
		Int("status", resp.StatusCode).
		Int("prompt_len", len(prompt)).
		Dur("elapsed", time.Since(started)).
		Msg("completion response")

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		excerpt, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return "", &RequestError{
			Method:     req.Method,
			URL:        c.cfg.Endpoint,
			StatusCode: resp.StatusCode,
			Status:     resp.Status,
			Body:       strings.TrimSpace(string(excerpt)),
		}
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", c.requestError(fmt.Errorf("read response body: %w", err))
	}
	if len(body) == 0 {
		return "", c.requestError(errEmptyBody)
	}

	return string(body), nil
}

func (c *Client) requestError(err error) *RequestError {
	return &RequestError{
		Method: http.MethodPost,
		URL:    c.cfg.Endpoint,
		Err:    err,
	}
}
