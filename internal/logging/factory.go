package logging

import (
	"fmt"
	"io"
)

// New returns a logger for the named backend ("slog" or "zap"). The slog
// backend writes JSON to w; zap writes to stderr.
func New(backend, level string, w io.Writer) (Logger, error) {
	switch backend {
	case "", "slog":
		return NewJSONSlogLogger(w, level), nil
	case "zap":
		return NewProductionZapLogger(level)
	default:
		return nil, fmt.Errorf("unknown log backend %q", backend)
	}
}
