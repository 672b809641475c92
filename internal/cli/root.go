package cli

import (
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"slices"
	"strings"

	"github.com/spf13/cobra"
)

// Loader builds the App for one command invocation
type Loader func(ctx context.Context) (*App, error)

// RootOptions holds global flags and the per-invocation App
type RootOptions struct {
	Format string // "json" | "text"

	load  Loader
	app   *App
	input *bufio.Reader
}

// ValidFormats defines the allowed output formats.
var ValidFormats = []string{"text", "json"}

// NewRootCommand creates the root command for the pokelearn CLI.
func NewRootCommand(load Loader) (*cobra.Command, *RootOptions) {
	opts := &RootOptions{load: load}

	cmd := &cobra.Command{
		Use:           "pokelearn",
		Short:         "PokeLearn - impara e colleziona Pokémon",
		Long:          "A quiz game for primary school: answer challenges, earn points and collect creatures.",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if !slices.Contains(ValidFormats, opts.Format) {
				return fmt.Errorf("invalid format %q: must be one of %v", opts.Format, ValidFormats)
			}
			app, err := opts.load(cmd.Context())
			if err != nil {
				return err
			}
			opts.app = app
			app.Progression.Initialize(cmd.Context())
			return nil
		},
	}

	cmd.PersistentFlags().StringVar(&opts.Format, "format", "text", "output format (json|text)")

	cmd.AddCommand(NewPlayCommand(opts))
	cmd.AddCommand(NewSetsCommand(opts))
	cmd.AddCommand(NewCollectionCommand(opts))
	cmd.AddCommand(NewProgressCommand(opts))
	cmd.AddCommand(NewTutorialCommand(opts))
	cmd.AddCommand(NewSettingsCommand(opts))
	cmd.AddCommand(NewExportCommand(opts))
	cmd.AddCommand(NewImportCommand(opts))

	return cmd, opts
}

// Execute runs the CLI with the given arguments and streams and returns the
// process exit code. The App opened for the command is closed before returning.
func Execute(ctx context.Context, load Loader, args []string, in io.Reader, out, errOut io.Writer) int {
	cmd, opts := NewRootCommand(load)
	cmd.SetArgs(args)
	cmd.SetIn(in)
	cmd.SetOut(out)
	cmd.SetErr(errOut)

	err := cmd.ExecuteContext(ctx)
	if opts.app != nil {
		if cerr := opts.app.Close(); cerr != nil {
			opts.app.Log.Warn("failed to close storage", "error", cerr)
		}
	}
	if err != nil {
		fmt.Fprintf(errOut, "Errore: %v\n", err)
		return 1
	}
	return 0
}

// readLine returns the next trimmed input line. io.EOF is returned only when
// no more input is available.
func (o *RootOptions) readLine(cmd *cobra.Command) (string, error) {
	if o.input == nil {
		o.input = bufio.NewReader(cmd.InOrStdin())
	}
	line, err := o.input.ReadString('\n')
	if err != nil && !(errors.Is(err, io.EOF) && line != "") {
		return "", err
	}
	return strings.TrimSpace(line), nil
}

// confirm asks the user to type "yes" before a destructive action
func (o *RootOptions) confirm(cmd *cobra.Command, prompt string) bool {
	fmt.Fprintf(cmd.OutOrStdout(), "%s Type 'yes' to confirm: ", prompt)
	answer, err := o.readLine(cmd)
	fmt.Fprintln(cmd.OutOrStdout())
	return err == nil && answer == "yes"
}

// writeJSON prints v as indented JSON
func writeJSON(w io.Writer, v any) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(v)
}
