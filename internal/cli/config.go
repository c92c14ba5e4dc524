package cli

import (
	"fmt"
	"os"
	"time"

	"github.com/mcoot/puppybowl/internal/rosterapi"
)

// Output formats
const (
	FormatText = "text"
	FormatJSON = "json"
)

// Config holds CLI configuration
type Config struct {
	// APIURL is the players collection endpoint; it wins over Cohort when set
	APIURL   string
	Cohort   string
	Envelope string
	Timeout  time.Duration
	Output   string
	Verbose  bool
}

// DefaultConfig returns a Config with defaults taken from the environment
func DefaultConfig() *Config {
	return &Config{
		APIURL:   os.Getenv("PUPPYBOWL_API"),
		Cohort:   getEnvOrDefault("PUPPYBOWL_COHORT", rosterapi.DefaultCohort),
		Envelope: getEnvOrDefault("PUPPYBOWL_ENVELOPE", string(rosterapi.EnvelopeAuto)),
		Timeout:  30 * time.Second,
		Output:   FormatText,
		Verbose:  false,
	}
}

// BaseURL resolves the players collection endpoint
func (c *Config) BaseURL() string {
	if c.APIURL != "" {
		return c.APIURL
	}
	return rosterapi.URLForCohort(c.Cohort)
}

// Validate checks flag values that cobra cannot
func (c *Config) Validate() error {
	if c.Output != FormatText && c.Output != FormatJSON {
		return fmt.Errorf("unknown output format %q (want text or json)", c.Output)
	}
	if _, err := rosterapi.ParseEnvelope(c.Envelope); err != nil {
		return err
	}
	if c.Timeout <= 0 {
		return fmt.Errorf("timeout must be positive")
	}
	return nil
}

func getEnvOrDefault(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultVal
}
