// Package observability wires the process-wide logging layer.
package observability

import (
	"fmt"
	"log/slog"
	"os"
)

// Instrument installs the default slog handler for the given level and
// format ("text" or "json"). Logs go to stderr so command output on stdout
// stays machine-consumable.
func Instrument(level slog.Level, format string) error {
	opts := &slog.HandlerOptions{Level: level}

	var handler slog.Handler
	switch format {
	case "text":
		handler = slog.NewTextHandler(os.Stderr, opts)
	case "json":
		handler = slog.NewJSONHandler(os.Stderr, opts)
	default:
		return fmt.Errorf("unsupported log format: %s", format)
	}

	slog.SetDefault(slog.New(handler))
	return nil
}
