package completion

import "time"

const (
	// DefaultEndpoint is the OpenAI legacy completions endpoint.
	DefaultEndpoint = "https://api.openai.com/v1/completions"
	// DefaultModel is the model identifier sent with every request.
	DefaultModel = "gpt-4"
	// DefaultMaxTokens caps the completion length.
	DefaultMaxTokens = 100
)

// Config is completion client configuration.
type Config struct {
	Endpoint  string
	APIKey    string
	Model     string
	MaxTokens int
	// Timeout bounds a whole request. Zero leaves the transport defaults in place.
	Timeout time.Duration
}
