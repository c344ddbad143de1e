package main

import (
	"github.com/ruminaider/rosterpick/internal/catalog"
	"github.com/spf13/cobra"
)

var pickCmd = &cobra.Command{
	Use:   "pick <variant>",
	Short: "Edit a selection in the transfer picker",
	Long: `Open the two-pane picker for a variant:

  favorites   favorite subcategory/task pairs
  users       permitted users (your own record is pinned first)
  resources   assigned resources

Keys: tab switch pane, space toggle, a select all, m move, d remove row,
x remove checked, / search, ctrl+l clear search, ctrl+s save, esc cancel.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		v, err := catalog.ParseVariant(args[0])
		if err != nil {
			return err
		}
		return runPick(cmd.Context(), cmd.OutOrStdout(), v)
	},
}
