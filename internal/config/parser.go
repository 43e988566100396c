package config

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/tidwall/jsonc"
)

// knownKeys are the accepted top-level config sections.
var knownKeys = map[string]struct{}{
	"channels": {},
	"view":     {},
	"log":      {},
}

// Parse reads configuration content as JSONC over a base config. Unknown
// top-level keys produce warnings, not errors, so newer configs keep working
// against older binaries.
func Parse(content string, base Config) (Config, []Warning, error) {
	trimmed := strings.TrimSpace(content)
	if trimmed == "" {
		validatedWarnings, err := Validate(base)
		if err != nil {
			return Config{}, nil, err
		}
		return base, validatedWarnings, nil
	}

	plain := jsonc.ToJSON([]byte(content))

	var raw map[string]json.RawMessage
	if err := json.Unmarshal(plain, &raw); err != nil {
		return Config{}, nil, fmt.Errorf("config is not a JSONC object: %w", err)
	}

	warnings := make([]Warning, 0)
	for key := range raw {
		if _, ok := knownKeys[key]; !ok {
			warnings = append(warnings, Warning{Message: fmt.Sprintf("unknown config key %q ignored", key)})
		}
	}

	cfg := base
	if err := json.Unmarshal(plain, &cfg); err != nil {
		return Config{}, nil, fmt.Errorf("decode config: %w", err)
	}

	validatedWarnings, err := Validate(cfg)
	if err != nil {
		return Config{}, nil, err
	}

	return cfg, append(warnings, validatedWarnings...), nil
}
