package main

import (
	"context"
	"fmt"
	"io"

	"github.com/charmbracelet/huh"
	"github.com/ruminaider/rosterpick/internal/catalog"
	"github.com/ruminaider/rosterpick/internal/commands"
	"github.com/spf13/cobra"
)

var resetYes bool

var resetCmd = &cobra.Command{
	Use:   "reset <variant>",
	Short: "Clear a saved selection",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		v, err := catalog.ParseVariant(args[0])
		if err != nil {
			return err
		}
		return runReset(cmd.Context(), cmd.OutOrStdout(), v, resetYes)
	},
}

func init() {
	resetCmd.Flags().BoolVarP(&resetYes, "yes", "y", false, "skip the confirmation prompt")
}

// confirmReset asks before clearing. Replaced in tests.
var confirmReset = func(v catalog.Variant) (bool, error) {
	var ok bool
	err := huh.NewForm(
		huh.NewGroup(
			huh.NewConfirm().
				Title(fmt.Sprintf("Clear your saved %s?", v.Title())).
				Description("The previous selection stays in history.").
				Affirmative("Clear").
				Negative("Keep").
				Value(&ok),
		),
	).Run()
	return ok, err
}

func runReset(ctx context.Context, w io.Writer, v catalog.Variant, yes bool) error {
	if !yes {
		ok, err := confirmReset(v)
		if err != nil {
			return err
		}
		if !ok {
			fmt.Fprintln(w, "Aborted.")
			return nil
		}
	}

	st, err := openStore()
	if err != nil {
		return err
	}
	defer st.Close()

	if err := commands.ResetSelection(ctx, st, v, cfg.User.ID); err != nil {
		return err
	}
	fmt.Fprintf(w, "Cleared %s.\n", v.Title())
	return nil
}
