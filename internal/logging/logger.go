package logging

import (
	"fmt"
	"io"
	"strings"

	"github.com/rs/zerolog"
)

// New builds a timestamped zerolog logger writing JSON lines to w at the
// given level ("debug", "info", "warn", ...). An empty level means info.
func New(level string, w io.Writer) (zerolog.Logger, error) {
	lvl := zerolog.InfoLevel
	if level != "" {
		parsed, err := zerolog.ParseLevel(strings.ToLower(level))
		if err != nil {
			return zerolog.Nop(), fmt.Errorf("logging: parse level %q: %w", level, err)
		}
		lvl = parsed
	}
	return zerolog.New(w).Level(lvl).With().Timestamp().Logger(), nil
}
