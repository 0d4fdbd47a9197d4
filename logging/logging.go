package logging

import (
	"fmt"
	"log/slog"
	"os"
)

// Setup installs the process-wide slog handler. With an empty logfile
// everything is discarded, which keeps debug output away from a
// terminal the module itself is drawing on.
func Setup(logfile string, level slog.Level) error {
	if logfile == "" {
		slog.SetDefault(slog.New(slog.DiscardHandler))
		return nil
	}

	f, err := os.OpenFile(logfile, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0700)
	if err != nil {
		return fmt.Errorf("couldn't open logfile %q: %v", logfile, err)
	}

	slog.SetDefault(slog.New(slog.NewTextHandler(f, &slog.HandlerOptions{Level: level})))
	return nil
}
