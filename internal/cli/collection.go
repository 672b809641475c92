package cli

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"
)

// NewCollectionCommand creates the collection command group.
func NewCollectionCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "collection",
		Short: "Show or edit the creature collection",
	}

	cmd.AddCommand(newCollectionListCommand(rootOpts))
	cmd.AddCommand(newCollectionRemoveCommand(rootOpts))

	return cmd
}

func newCollectionListCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List collected creatures",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			collection := rootOpts.app.Progression.Collection()
			out := cmd.OutOrStdout()
			if rootOpts.Format == "json" {
				return writeJSON(out, collection)
			}
			if len(collection) == 0 {
				fmt.Fprintln(out, "La tua collezione è vuota.")
				return nil
			}
			for _, p := range collection {
				legendary := ""
				if p.IsLegendary {
					legendary = " *leggendario*"
				}
				fmt.Fprintf(out, "#%-4d %-14s %-18s %s%s\n",
					p.ID, p.Name, strings.Join(p.Types, "/"),
					time.UnixMilli(p.SavedAt).Format("2006-01-02"), legendary)
			}
			fmt.Fprintf(out, "Totale: %d\n", len(collection))
			return nil
		},
	}
}

func newCollectionRemoveCommand(rootOpts *RootOptions) *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:   "remove <pokemon-id>",
		Short: "Release a creature from the collection",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("invalid pokemon id %q", args[0])
			}
			if !yes && !rootOpts.confirm(cmd, fmt.Sprintf("Release pokemon #%d?", id)) {
				fmt.Fprintln(cmd.OutOrStdout(), "Cancelled")
				return nil
			}
			if err := rootOpts.app.Progression.RemovePokemonFromCollection(cmd.Context(), id); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Pokémon #%d liberato.\n", id)
			return nil
		},
	}

	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "skip the confirmation prompt")
	return cmd
}
