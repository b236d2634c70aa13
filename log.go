package zoom

import (
	"strings"

	"github.com/akeil/zoom/internal/logging"
)

// SetLogLevel sets the level for the package loggers;
// one of "debug", "info", "warning", "error". Anything else disables logging.
func SetLogLevel(level string) {
	var lvl logging.Level
	switch strings.ToLower(level) {
	case "debug":
		lvl = logging.LevelDebug
	case "info":
		lvl = logging.LevelInfo
	case "warning":
		lvl = logging.LevelWarning
	case "error":
		lvl = logging.LevelError
	default:
		lvl = logging.LevelNone
	}
	logging.SetLevel(lvl)
}
