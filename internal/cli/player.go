package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mcoot/puppybowl/internal/cards"
	"github.com/mcoot/puppybowl/internal/model"
)

func newPlayersCmd(rt *runtime) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "players",
		Aliases: []string{"player"},
		Short:   "Roster commands",
	}

	cmd.AddCommand(newPlayersListCmd(rt))
	cmd.AddCommand(newPlayersGetCmd(rt))
	cmd.AddCommand(newPlayersAddCmd(rt))
	cmd.AddCommand(newPlayersRemoveCmd(rt))

	return cmd
}

func newPlayersListCmd(rt *runtime) *cobra.Command {
	var details bool

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List the roster as cards",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			players, err := rt.client.ListPlayers(cmd.Context())
			if err != nil {
				return err
			}

			revealed := make(map[model.PlayerID]bool, len(players))
			if details {
				for _, p := range players {
					revealed[p.ID] = true
				}
			}

			rt.output(cmd).Print(cards.Build(players, revealed))
			return nil
		},
	}

	cmd.Flags().BoolVar(&details, "details", false, "Show every field, including hidden ones")

	return cmd
}

func newPlayersGetCmd(rt *runtime) *cobra.Command {
	return &cobra.Command{
		Use:   "get <id>",
		Short: "Show a single player",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id := model.PlayerID(args[0])
			if id == "" {
				return model.ErrMissingID
			}

			player, err := rt.client.GetPlayer(cmd.Context(), id)
			if err != nil {
				return err
			}

			rt.output(cmd).Print(PlayerResultFromModel(player))
			return nil
		},
	}
}

func newPlayersAddCmd(rt *runtime) *cobra.Command {
	var np model.NewPlayer

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add a player to the roster",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			player, err := rt.client.CreatePlayer(cmd.Context(), np)
			if err != nil {
				return err
			}

			rt.output(cmd).Print(PlayerResultFromModel(player))
			return nil
		},
	}

	// Values are sent exactly as given
	cmd.Flags().StringVar(&np.ID, "id", "", "Player id (assigned by the API when empty)")
	cmd.Flags().StringVar(&np.Name, "name", "", "Player name (required)")
	cmd.Flags().StringVar(&np.Breed, "breed", "", "Breed")
	cmd.Flags().StringVar(&np.Status, "status", "", "Status, e.g. bench or field")
	cmd.Flags().StringVar(&np.ImageURL, "image-url", "", "Image URL")
	cmd.Flags().StringVar(&np.CreatedAt, "created-at", "", "Creation timestamp")
	cmd.Flags().StringVar(&np.TeamID, "team-id", "", "Team id")
	cmd.Flags().StringVar(&np.CohortID, "cohort-id", "", "Cohort id")
	_ = cmd.MarkFlagRequired("name")

	return cmd
}

func newPlayersRemoveCmd(rt *runtime) *cobra.Command {
	return &cobra.Command{
		Use:     "remove <id>",
		Aliases: []string{"rm"},
		Short:   "Remove a player from the roster",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id := model.PlayerID(args[0])
			if id == "" {
				return model.ErrMissingID
			}

			if _, err := rt.client.RemovePlayer(cmd.Context(), id); err != nil {
				return err
			}

			rt.output(cmd).PrintMessage(fmt.Sprintf("Removed player #%s from the roster", id))
			return nil
		},
	}
}
