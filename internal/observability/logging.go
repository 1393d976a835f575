package observability

import (
	"log/slog"
	"os"
)

// NewLogger builds the process-wide JSON logger and installs it as the slog
// default so package-level helpers pick it up.
func NewLogger(level string) *slog.Logger {
	l := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: ParseLogLevel(level)}))
	slog.SetDefault(l)
	return l
}

func ParseLogLevel(v string) slog.Level {
	switch v {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
