package cli

import (
	"io"
	"log/slog"

	"github.com/mcoot/puppybowl/internal/rosterapi"
)

// NewClient creates a roster API client from the CLI configuration.
// Verbose mode sends client warnings to errOut.
func NewClient(cfg *Config, errOut io.Writer) (*rosterapi.Client, error) {
	envelope, err := rosterapi.ParseEnvelope(cfg.Envelope)
	if err != nil {
		return nil, err
	}

	logOut := io.Discard
	if cfg.Verbose {
		logOut = errOut
	}
	logger := slog.New(slog.NewTextHandler(logOut, &slog.HandlerOptions{Level: slog.LevelDebug}))

	return rosterapi.NewClient(rosterapi.Config{
		BaseURL:  cfg.BaseURL(),
		Envelope: envelope,
		Timeout:  cfg.Timeout,
		Logger:   logger,
	}), nil
}
