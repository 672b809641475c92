package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"pokelearn/internal/validation"
)

// NewTutorialCommand creates the tutorial command.
func NewTutorialCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "tutorial <name>",
		Short: "Register the player's name and receive the starter Pokémon",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			app := rootOpts.app
			out := cmd.OutOrStdout()

			if app.Progression.Progress().TutorialCompleted {
				fmt.Fprintln(out, "Tutorial già completato.")
				return nil
			}
			name, err := validation.ValidateName(args[0])
			if err != nil {
				return err
			}

			if err := app.Progression.SetUserName(ctx, name); err != nil {
				return err
			}
			starter, err := app.Rewards.FetchByID(ctx, StarterPokemonID)
			if err != nil {
				return err
			}
			if err := app.Progression.CompleteTutorial(ctx, starter); err != nil {
				return err
			}

			fmt.Fprintf(out, "Benvenuto, %s! Il tuo primo Pokémon è %s.\n", name, starter.Name)
			return nil
		},
	}
}
