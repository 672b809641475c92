package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"pokelearn/internal/models"
	"pokelearn/internal/validation"
)

// NewSettingsCommand creates the settings command. Without flags it prints
// the current settings; each flag given updates one field.
func NewSettingsCommand(rootOpts *RootOptions) *cobra.Command {
	var (
		grade      int
		difficulty string
		sound      bool
		language   string
	)

	cmd := &cobra.Command{
		Use:   "settings",
		Short: "Show or change grade, difficulty, sound and language",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			var patch models.SettingsPatch
			flags := cmd.Flags()

			if flags.Changed("grade") {
				g, err := validation.ValidateGrade(grade)
				if err != nil {
					return err
				}
				patch.Grade = &g
			}
			if flags.Changed("difficulty") {
				d, err := validation.ValidateDifficulty(difficulty)
				if err != nil {
					return err
				}
				patch.Difficulty = &d
			}
			if flags.Changed("sound") {
				patch.SoundEnabled = &sound
			}
			if flags.Changed("language") {
				patch.Language = &language
			}

			svc := rootOpts.app.Progression
			if patch != (models.SettingsPatch{}) {
				if err := svc.UpdateSettings(cmd.Context(), patch); err != nil {
					return err
				}
			}

			settings := svc.Settings()
			out := cmd.OutOrStdout()
			if rootOpts.Format == "json" {
				return writeJSON(out, settings)
			}
			fmt.Fprintf(out, "Classe:     %d\n", settings.Grade)
			fmt.Fprintf(out, "Difficoltà: %s\n", settings.Difficulty)
			fmt.Fprintf(out, "Suoni:      %t\n", settings.SoundEnabled)
			fmt.Fprintf(out, "Lingua:     %s\n", settings.Language)
			return nil
		},
	}

	cmd.Flags().IntVar(&grade, "grade", 0, "school grade (1-5)")
	cmd.Flags().StringVar(&difficulty, "difficulty", "", "Facile|Medio|Difficile")
	cmd.Flags().BoolVar(&sound, "sound", true, "enable sound effects")
	cmd.Flags().StringVar(&language, "language", "", "interface language")

	return cmd
}
