package config

import "fmt"

// StartupError is returned when configuration cannot be loaded. It is fatal:
// the process must not start without a valid configuration.
type StartupError struct {
	Path string
	Err  error
}

func (e *StartupError) Error() string {
	return fmt.Sprintf("load config %s: %v", e.Path, e.Err)
}

func (e *StartupError) Unwrap() error {
	return e.Err
}
