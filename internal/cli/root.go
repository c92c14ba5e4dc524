package cli

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/mcoot/puppybowl/internal/rosterapi"
)

// runtime carries the parsed configuration and the client built from it
type runtime struct {
	cfg    *Config
	client *rosterapi.Client
}

func (rt *runtime) output(cmd *cobra.Command) *Output {
	return NewOutput(rt.cfg.Output, cmd.OutOrStdout())
}

// NewRootCmd creates the root command
func NewRootCmd() *cobra.Command {
	rt := &runtime{cfg: DefaultConfig()}

	rootCmd := &cobra.Command{
		Use:   "puppybowl",
		Short: "CLI tool for the Puppy Bowl roster API",
		Long: `puppybowl manages a Puppy Bowl roster from the command line.

It talks directly to the remote roster API: list the roster as cards,
look up a single player, add new players and remove existing ones.`,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if err := rt.cfg.Validate(); err != nil {
				return err
			}

			client, err := NewClient(rt.cfg, cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			rt.client = client
			return nil
		},
		SilenceUsage: true,
	}

	// Global flags
	cfg := rt.cfg
	rootCmd.PersistentFlags().StringVar(&cfg.APIURL, "api", cfg.APIURL, "Players collection URL (env: PUPPYBOWL_API)")
	rootCmd.PersistentFlags().StringVar(&cfg.Cohort, "cohort", cfg.Cohort, "Cohort name, used when --api is not set (env: PUPPYBOWL_COHORT)")
	rootCmd.PersistentFlags().StringVar(&cfg.Envelope, "envelope", cfg.Envelope, "Response envelope: auto, nested, bare (env: PUPPYBOWL_ENVELOPE)")
	rootCmd.PersistentFlags().DurationVar(&cfg.Timeout, "timeout", cfg.Timeout, "Request timeout")
	rootCmd.PersistentFlags().StringVarP(&cfg.Output, "output", "o", cfg.Output, "Output format: text, json")
	rootCmd.PersistentFlags().BoolVarP(&cfg.Verbose, "verbose", "v", cfg.Verbose, "Verbose output")

	// Add subcommands
	rootCmd.AddCommand(newPlayersCmd(rt))
	rootCmd.AddCommand(newHealthCmd(rt))

	return rootCmd
}

// Execute runs the root command
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
