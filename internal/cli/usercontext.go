package cli

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/alexanderramin/wodforge/internal/wod"
)

// buildUserContext assembles the user context for one run. Precedence, low
// to high: the documented example pair (when asked for), the context file,
// then the --injury / --goal flags.
func buildUserContext(contextFile, injury string, goals []string, example bool) (wod.Mapping, error) {
	userCtx := wod.Mapping{}
	if example {
		userCtx = exampleUserContext()
	}

	if contextFile != "" {
		fromFile, err := loadContextFile(contextFile)
		if err != nil {
			return nil, err
		}
		for k, v := range fromFile {
			userCtx[k] = v
		}
	}

	if strings.TrimSpace(injury) != "" {
		userCtx["injury"] = strings.TrimSpace(injury)
	}
	if len(goals) > 0 {
		normalized := make([]any, 0, len(goals))
		for _, g := range goals {
			if g = strings.TrimSpace(g); g != "" {
				normalized = append(normalized, g)
			}
		}
		if len(normalized) > 0 {
			userCtx["goals"] = normalized
		}
	}

	return userCtx, nil
}

// loadContextFile decodes a YAML or JSON user-context file. YAML is a
// superset of JSON, so one decoder covers both. Unrecognized keys pass
// through untouched; the stages treat context as opaque.
func loadContextFile(path string) (wod.Mapping, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading context file: %w", err)
	}

	var raw map[string]any
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("parsing context file %s: %w", path, err)
	}

	normalized, _ := wod.NormalizeValue(raw).(wod.Mapping)
	if normalized == nil {
		normalized = wod.Mapping{}
	}
	return normalized, nil
}
