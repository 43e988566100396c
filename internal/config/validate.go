package config

import (
	"fmt"
	"path/filepath"
	"strings"
)

// logLevels are the accepted log.level values.
var logLevels = map[string]struct{}{
	"debug": {},
	"info":  {},
	"warn":  {},
	"error": {},
}

// Validate enforces config invariants and returns non-fatal warnings.
func Validate(cfg Config) ([]Warning, error) {
	warnings := make([]Warning, 0)

	dir := strings.TrimSpace(cfg.Channels.Dir)
	if dir == "" {
		return nil, fmt.Errorf("channels.dir must not be empty")
	}
	if !filepath.IsAbs(dir) {
		warnings = append(warnings, Warning{
			Message: fmt.Sprintf("channels.dir %q is relative; clients must resolve the same directory", dir),
		})
	}

	backend := strings.ToLower(strings.TrimSpace(cfg.View.Backend))
	if backend == "" {
		return nil, fmt.Errorf("view.backend must not be empty")
	}
	if backend != ViewStdout && backend != ViewNone {
		return nil, fmt.Errorf("view.backend must be one of: %s, %s", ViewStdout, ViewNone)
	}

	level := strings.ToLower(strings.TrimSpace(cfg.Log.Level))
	if _, ok := logLevels[level]; !ok {
		return nil, fmt.Errorf("log.level must be one of: debug, info, warn, error")
	}

	return warnings, nil
}
