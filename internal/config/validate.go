package config

import (
	_ "embed"
	"fmt"
	"sort"
	"strings"

	"github.com/xeipuuv/gojsonschema"
)

//go:embed schema.json
var schemaJSON string

var schemaLoader = gojsonschema.NewStringLoader(schemaJSON)

// Validate checks a decoded config against the embedded JSON schema. Problems
// are reported per field and never include the values themselves.
func Validate(cfg Config) error {
	result, err := gojsonschema.Validate(schemaLoader, gojsonschema.NewGoLoader(cfg))
	if err != nil {
		return fmt.Errorf("validate config schema: %w", err)
	}
	if result.Valid() {
		return nil
	}

	problems := make([]string, 0, len(result.Errors()))
	for _, e := range result.Errors() {
		problems = append(problems, e.Field()+": "+e.Description())
	}
	sort.Strings(problems)

	return fmt.Errorf("invalid config: %s", strings.Join(problems, "; "))
}
