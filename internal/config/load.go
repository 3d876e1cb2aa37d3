package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/go-viper/mapstructure/v2"
	"github.com/magiconair/properties"
	"github.com/metalagman/ideagpt/internal/completion"
	"github.com/spf13/viper"
)

// DefaultPath is the properties file read when no path is given.
const DefaultPath = "config.properties"

// EnvAPIKey is both the properties key and the environment variable holding the credential.
const EnvAPIKey = "OPENAI_API_KEY"

// Settings keys. Viper keys are case-insensitive.
const (
	KeyAPIKey         = "openai_api_key"
	KeyModel          = "model"
	KeyMaxTokens      = "max_tokens"
	KeyEndpoint       = "endpoint"
	KeyTimeout        = "timeout"
	KeyRenderMarkdown = "render_markdown"
)

// SetDefaults registers default values for every optional key.
func SetDefaults(v *viper.Viper) {
	v.SetDefault(KeyModel, completion.DefaultModel)
	v.SetDefault(KeyMaxTokens, completion.DefaultMaxTokens)
	v.SetDefault(KeyEndpoint, completion.DefaultEndpoint)
	v.SetDefault(KeyTimeout, time.Duration(0))
	v.SetDefault(KeyRenderMarkdown, false)
}

// Load reads the properties file at path into v, decodes and validates it.
// Flags bound to v take precedence over the file. The credential falls back
// to the OPENAI_API_KEY environment variable only when the file omits it.
// Every failure is a *StartupError.
func Load(v *viper.Viper, path string) (Config, error) {
	if strings.TrimSpace(path) == "" {
		path = DefaultPath
	}

	SetDefaults(v)
	settings, err := readProperties(path)
	if err != nil {
		return Config{}, &StartupError{Path: path, Err: err}
	}
	if err := v.MergeConfigMap(settings); err != nil {
		return Config{}, &StartupError{Path: path, Err: fmt.Errorf("merge config: %w", err)}
	}
	if !v.InConfig(KeyAPIKey) {
		v.SetDefault(KeyAPIKey, os.Getenv(EnvAPIKey))
	}

	var cfg Config
	hook := viper.DecodeHook(mapstructure.ComposeDecodeHookFunc(
		mapstructure.StringToTimeDurationHookFunc(),
		mapstructure.TextUnmarshallerHookFunc(),
	))
	if err := v.Unmarshal(&cfg, hook); err != nil {
		return Config{}, &StartupError{Path: path, Err: fmt.Errorf("parse config: %w", err)}
	}
	cfg.APIKey = strings.TrimSpace(cfg.APIKey)
	cfg.Model = strings.TrimSpace(cfg.Model)
	cfg.Endpoint = strings.TrimSpace(cfg.Endpoint)

	if err := Validate(cfg); err != nil {
		return Config{}, &StartupError{Path: path, Err: err}
	}
	return cfg, nil
}

// readProperties parses a Java-style properties file. Keys are lower-cased to
// match viper. ${...} references are left as literal text.
func readProperties(path string) (map[string]any, error) {
	loader := properties.Loader{
		Encoding:         properties.UTF8,
		DisableExpansion: true,
	}
	props, err := loader.LoadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	settings := make(map[string]any, props.Len())
	for _, key := range props.Keys() {
		value, _ := props.Get(key)
		settings[strings.ToLower(key)] = value
	}
	return settings, nil
}
