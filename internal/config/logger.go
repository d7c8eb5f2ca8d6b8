package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/qdm12/log"
)

// ErrLogLevelUnknown is returned for log levels other than debug, info,
// warning and error.
var ErrLogLevelUnknown = errors.New("log level is unknown")

// ParseLogLevel parses a log level name case-insensitively.
func ParseLogLevel(s string) (level log.Level, err error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return log.LevelDebug, nil
	case "info":
		return log.LevelInfo, nil
	case "warning", "warn":
		return log.LevelWarn, nil
	case "error":
		return log.LevelError, nil
	default:
		return level, fmt.Errorf(
			"%w: %q is not valid and can be one of debug, info, warning or error",
			ErrLogLevelUnknown, s)
	}
}
