package app

import (
	"io"
	"os"

	"hos-trip-planner/internal/config"
	"hos-trip-planner/internal/logx"
)

// NewLogger builds the JSON process logger at the configured level.
func NewLogger(cfg *config.Config) logx.Logger {
	return newLogger(os.Stdout, cfg.LogLevel)
}

func newLogger(w io.Writer, level string) logx.Logger {
	return logx.NewJSON(w, level).With(logx.String("service", "hos-trip-planner"))
}
