package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"pokelearn/internal/models"
	"pokelearn/internal/validation"
)

type setsOptions struct {
	all        bool
	grade      int
	difficulty string
}

// SetListing is one row of the sets command output
type SetListing struct {
	models.ChallengeSet
	Completed bool `json:"completed"`
	Unlocked  bool `json:"unlocked"`
}

// NewSetsCommand creates the sets command.
func NewSetsCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &setsOptions{}

	cmd := &cobra.Command{
		Use:   "sets",
		Short: "List challenge sets for the configured grade and difficulty",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSets(cmd, rootOpts, opts)
		},
	}

	cmd.Flags().BoolVar(&opts.all, "all", false, "list every set regardless of grade and difficulty")
	cmd.Flags().IntVar(&opts.grade, "grade", 0, "grade to list (defaults to settings)")
	cmd.Flags().StringVar(&opts.difficulty, "difficulty", "", "difficulty to list (defaults to settings)")

	return cmd
}

func runSets(cmd *cobra.Command, rootOpts *RootOptions, opts *setsOptions) error {
	ctx := cmd.Context()
	app := rootOpts.app
	settings := app.Progression.Settings()

	var sets []models.ChallengeSet
	if opts.all {
		sets = app.Content.FetchChallengeSets(ctx)
	} else {
		grade, difficulty := settings.Grade, settings.Difficulty
		var err error
		if opts.grade != 0 {
			if grade, err = validation.ValidateGrade(opts.grade); err != nil {
				return err
			}
		}
		if opts.difficulty != "" {
			if difficulty, err = validation.ValidateDifficulty(opts.difficulty); err != nil {
				return err
			}
		}
		sets = app.Content.ChallengeSetsByGradeAndDifficulty(ctx, grade, difficulty)
	}

	progress := app.Progression.Progress()
	listing := make([]SetListing, 0, len(sets))
	for _, set := range sets {
		listing = append(listing, SetListing{
			ChallengeSet: set,
			Completed:    progress.HasCompletedSet(set.ID),
			Unlocked:     app.Progression.IsSetUnlocked(set),
		})
	}

	out := cmd.OutOrStdout()
	if rootOpts.Format == "json" {
		return writeJSON(out, listing)
	}
	if len(listing) == 0 {
		fmt.Fprintln(out, "Nessun percorso disponibile.")
		return nil
	}
	for _, l := range listing {
		status := ""
		switch {
		case l.Completed:
			status = " [completato]"
		case !l.Unlocked:
			status = " [bloccato]"
		}
		fmt.Fprintf(out, "%s %-16s %-10s %-9s %2d sfide  %s%s\n",
			l.Icon, l.Name, l.Subject, l.Difficulty, l.Len(), l.ID, status)
	}
	return nil
}
