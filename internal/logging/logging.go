// Package logging provides application-wide logging configuration.
package logging

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// DefaultFile receives UI-time logs when debug is on and no path is given.
const DefaultFile = "ideagpt.log"

var debugEnabled bool

// Init initializes the global logger writing to stderr.
func Init(debug bool) {
	InitWriter(debug, os.Stderr)
}

// InitWriter initializes the global logger writing to out.
func InitWriter(debug bool, out io.Writer) {
	debugEnabled = debug
	level := zerolog.InfoLevel
	if debug {
		level = zerolog.DebugLevel
	}
	zerolog.SetGlobalLevel(level)
	log.Logger = zerolog.New(zerolog.ConsoleWriter{
		Out:        out,
		TimeFormat: time.RFC3339,
		NoColor:    out != os.Stderr,
	}).With().Timestamp().Logger()
}

// InitFile redirects logging to path while the terminal is owned by the UI.
// An empty path means DefaultFile in debug mode and discard otherwise.
// The returned func closes the file.
func InitFile(debug bool, path string) (func(), error) {
	if path == "" {
		if !debug {
			InitWriter(debug, io.Discard)
			return func() {}, nil
		}
		path = DefaultFile
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
	if err != nil {
		return func() {}, fmt.Errorf("open log file: %w", err)
	}
	InitWriter(debug, f)
	return func() { _ = f.Close() }, nil
}

// DebugEnabled reports whether debug logging is enabled.
func DebugEnabled() bool {
	return debugEnabled
}
