// internal/config/level.go
package config

import (
	"fmt"
	"log/slog"
	"strings"
)

// LevelCritical extends slog's levels for CRITICAL, one step above ERROR.
const LevelCritical = slog.LevelError + 4

// ParseLevel maps a configured level name onto an slog level.
func ParseLevel(name string) (slog.Level, error) {
	switch strings.ToUpper(strings.TrimSpace(name)) {
	case "DEBUG":
		return slog.LevelDebug, nil
	case "INFO":
		return slog.LevelInfo, nil
	case "WARNING", "WARN":
		return slog.LevelWarn, nil
	case "ERROR":
		return slog.LevelError, nil
	case "CRITICAL":
		return LevelCritical, nil
	default:
		return 0, fmt.Errorf("config: invalid log level %q (DEBUG, INFO, WARNING, ERROR, CRITICAL)", name)
	}
}
