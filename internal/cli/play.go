package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"pokelearn/internal/logger"
	"pokelearn/internal/models"
	"pokelearn/internal/validation"
)

type playOptions struct {
	subject    string
	difficulty string
}

// NewPlayCommand creates the play command.
func NewPlayCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &playOptions{}

	cmd := &cobra.Command{
		Use:   "play [set-id]",
		Short: "Play a challenge set, or a single random challenge",
		Long: `Play every challenge of a set in order. Correct answers earn points and a
reward creature that is added to the collection.

Without a set id a single random challenge is drawn for --subject.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			setID := ""
			if len(args) == 1 {
				setID = args[0]
			}
			return runPlay(cmd, rootOpts, opts, setID)
		},
	}

	cmd.Flags().StringVar(&opts.subject, "subject", "", "subject for a random challenge (Italiano|Matematica|Inglese)")
	cmd.Flags().StringVar(&opts.difficulty, "difficulty", "", "difficulty for a random challenge (defaults to settings)")

	return cmd
}

// playSession drives one interactive run
type playSession struct {
	cmd  *cobra.Command
	root *RootOptions
	app  *App
	log  *logger.Logger
	out  io.Writer
}

func runPlay(cmd *cobra.Command, rootOpts *RootOptions, opts *playOptions, setID string) error {
	ctx := cmd.Context()
	app := rootOpts.app
	s := &playSession{
		cmd:  cmd,
		root: rootOpts,
		app:  app,
		log:  app.Log.With("session", uuid.NewString()),
		out:  cmd.OutOrStdout(),
	}

	if err := s.start(ctx, setID, opts); err != nil {
		return err
	}
	defer app.Progression.ClearChallengeSet()

	for {
		done, err := s.playCurrent(ctx)
		if err != nil || done {
			return err
		}
		if setID == "" {
			return nil
		}

		advanced, err := app.Progression.AdvanceToNextChallenge(ctx)
		if err != nil {
			return err
		}
		if !advanced {
			break
		}
	}

	progress := app.Progression.Progress()
	if progress.HasCompletedSet(setID) {
		fmt.Fprintf(s.out, "\nPercorso completato! Punti totali: %d\n", progress.TotalPoints)
	}
	s.log.Info("play session finished", "set", setID, "points", progress.TotalPoints)
	return nil
}

func (s *playSession) start(ctx context.Context, setID string, opts *playOptions) error {
	svc := s.app.Progression

	if setID == "" {
		if opts.subject == "" {
			return errors.New("a set id or --subject is required")
		}
		subject, err := validation.ValidateSubject(opts.subject)
		if err != nil {
			return err
		}
		difficulty := svc.Settings().Difficulty
		if opts.difficulty != "" {
			if difficulty, err = validation.ValidateDifficulty(opts.difficulty); err != nil {
				return err
			}
		}
		if !svc.StartChallenge(ctx, subject, difficulty) {
			return fmt.Errorf("no challenges for %s (%s)", subject, difficulty)
		}
		s.log.Info("free play started", "subject", subject, "difficulty", difficulty)
		return nil
	}

	set, ok := s.app.Content.ChallengeSetByID(ctx, setID)
	if !ok {
		return fmt.Errorf("challenge set %s not found", setID)
	}
	if !svc.IsSetUnlocked(set) {
		return fmt.Errorf("challenge set %s is locked: complete %s first", set.Name, strings.Join(set.Prerequisites, ", "))
	}
	if !svc.StartChallengePath(ctx, set) {
		return fmt.Errorf("challenge set %s has no playable challenges", set.Name)
	}
	fmt.Fprintf(s.out, "%s %s (%s) - %d sfide\n", set.Icon, set.Name, set.Difficulty, set.Len())
	s.log.Info("play session started", "set", set.ID)
	return nil
}

// playCurrent runs the active challenge to completion. done reports that the
// input ended and the session should stop.
func (s *playSession) playCurrent(ctx context.Context) (done bool, err error) {
	svc := s.app.Progression
	challenge, ok := svc.CurrentChallenge()
	if !ok {
		return true, nil
	}
	printChallenge(s.out, challenge)

	for {
		attempt, _ := svc.CurrentAttempt()
		if attempt.Completed {
			break
		}

		fmt.Fprint(s.out, "> ")
		line, err := s.root.readLine(s.cmd)
		if errors.Is(err, io.EOF) {
			fmt.Fprintln(s.out, "\nA presto!")
			return true, nil
		}
		if err != nil {
			return true, err
		}

		correct, err := svc.SubmitAnswer(ctx, resolveOption(challenge, line))
		if err != nil {
			return true, err
		}
		attempt, _ = svc.CurrentAttempt()
		switch {
		case correct:
			fmt.Fprintf(s.out, "Corretto! +%d punti!\n", challenge.Points)
		case attempt.Completed:
			fmt.Fprintf(s.out, "Sfida fallita! La risposta era: %s\n", challenge.CorrectAnswer)
		default:
			fmt.Fprintf(s.out, "Sbagliato! Ti rimangono %d tentativi.\n", attempt.Remaining())
			if challenge.Hint != "" {
				fmt.Fprintf(s.out, "Suggerimento: %s\n", challenge.Hint)
			}
		}
	}

	if challenge.Explanation != "" {
		fmt.Fprintln(s.out, challenge.Explanation)
	}
	if attempt, _ := svc.CurrentAttempt(); attempt.Success {
		return false, s.reward(ctx)
	}
	return false, nil
}

// reward fetches a creature and adds it to the collection. Lookup failures
// are shown and may be retried; they never change state.
func (s *playSession) reward(ctx context.Context) error {
	svc := s.app.Progression
	legendary := svc.Progress().LegendariesUnlocked

	for {
		p, err := s.app.Rewards.FetchRandom(ctx, legendary)
		if err != nil {
			s.log.Warn("reward lookup failed", "error", err)
			fmt.Fprintf(s.out, "Errore nel recuperare il Pokémon: %v\nRiprovare? [s/N] ", err)
			answer, rerr := s.root.readLine(s.cmd)
			if rerr != nil || !strings.EqualFold(answer, "s") {
				return nil
			}
			continue
		}

		svc.ClaimPokemon(p)
		before := len(svc.Collection())
		if err := svc.SavePokemonToCollection(ctx, p); err != nil {
			return err
		}
		if len(svc.Collection()) == before {
			fmt.Fprintf(s.out, "Hai incontrato %s, ma è già nella tua collezione.\n", p.Name)
			return nil
		}
		label := ""
		if p.IsLegendary {
			label = " leggendario"
		}
		fmt.Fprintf(s.out, "Hai ottenuto un nuovo Pokémon%s: %s (#%d)!\n", label, p.Name, p.ID)
		return nil
	}
}

func printChallenge(w io.Writer, c models.Challenge) {
	fmt.Fprintf(w, "\n[%s - %d punti] %s\n", c.Subject, c.Points, c.Question)
	for i, opt := range c.Options {
		fmt.Fprintf(w, "  %d) %s\n", i+1, opt)
	}
	for _, m := range c.Media {
		fmt.Fprintf(w, "  (%s: %s)\n", m.Type, m.URL)
	}
}

// resolveOption maps a numeric choice onto the option text of a
// choice-based challenge. Input that already names an option wins.
func resolveOption(c models.Challenge, input string) string {
	if c.Type == models.ChallengeFillBlank || len(c.Options) == 0 {
		return input
	}
	for _, opt := range c.Options {
		if strings.EqualFold(strings.TrimSpace(opt), strings.TrimSpace(input)) {
			return input
		}
	}
	n, err := strconv.Atoi(strings.TrimSpace(input))
	if err != nil || n < 1 || n > len(c.Options) {
		return input
	}
	return c.Options[n-1]
}
