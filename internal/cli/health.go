package cli

import (
	"github.com/spf13/cobra"
)

func newHealthCmd(rt *runtime) *cobra.Command {
	return &cobra.Command{
		Use:   "health",
		Short: "Check that the roster API is reachable",
		RunE: func(cmd *cobra.Command, args []string) error {
			players, err := rt.client.ListPlayers(cmd.Context())
			if err != nil {
				return err
			}

			rt.output(cmd).Print(HealthResult{
				Status:  "ok",
				API:     rt.client.BaseURL(),
				Players: len(players),
			})
			return nil
		},
	}
}
