package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"pokelearn/internal/validation"
)

// NewProgressCommand creates the progress command group.
func NewProgressCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "progress",
		Short: "Show, rename or reset the player's progress",
	}

	cmd.AddCommand(newProgressShowCommand(rootOpts))
	cmd.AddCommand(newProgressNameCommand(rootOpts))
	cmd.AddCommand(newProgressResetCommand(rootOpts))

	return cmd
}

func newProgressShowCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Show points and achievements",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			progress := rootOpts.app.Progression.Progress()
			out := cmd.OutOrStdout()
			if rootOpts.Format == "json" {
				return writeJSON(out, progress)
			}

			name := progress.DisplayName()
			if name == "" {
				name = "(senza nome)"
			}
			fmt.Fprintf(out, "Giocatore:          %s\n", name)
			fmt.Fprintf(out, "Punti:              %d\n", progress.TotalPoints)
			fmt.Fprintf(out, "Sfide completate:   %d\n", progress.ChallengesCompleted)
			fmt.Fprintf(out, "Sfide fallite:      %d\n", progress.ChallengesFailed)
			fmt.Fprintf(out, "Pokémon raccolti:   %d\n", progress.PokemonCollected)
			fmt.Fprintf(out, "Tutorial:           %t\n", progress.TutorialCompleted)
			fmt.Fprintf(out, "Leggendario:        %t\n", progress.LegendariesUnlocked)
			if len(progress.CompletedChallengeSets) > 0 {
				fmt.Fprintf(out, "Percorsi completati: %s\n", strings.Join(progress.CompletedChallengeSets, ", "))
			}
			return nil
		},
	}
}

func newProgressNameCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "name <name>",
		Short: "Set the player's name",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			name, err := validation.ValidateName(args[0])
			if err != nil {
				return err
			}
			if err := rootOpts.app.Progression.SetUserName(cmd.Context(), name); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Ciao, %s!\n", name)
			return nil
		},
	}
}

func newProgressResetCommand(rootOpts *RootOptions) *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:   "reset",
		Short: "Erase progress and the collection (settings are kept)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !yes && !rootOpts.confirm(cmd, "WARNING: This will delete all progress and every collected Pokémon.") {
				fmt.Fprintln(cmd.OutOrStdout(), "Reset cancelled")
				return nil
			}
			if err := rootOpts.app.Progression.ResetProgress(cmd.Context()); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Progressi azzerati.")
			return nil
		},
	}

	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "skip the confirmation prompt")
	return cmd
}
