package main

import (
	"bufio"
	"context"
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/x/term"
	"github.com/ruminaider/rosterpick/cmd/rosterpick/tui"
	"github.com/ruminaider/rosterpick/internal/commands"
	"github.com/spf13/cobra"
)

func runMainMenu(cmd *cobra.Command, args []string) error {
	// TTY guard: fall back to help when stdin is not a terminal
	// (piping, CI, scripts, etc.)
	if !term.IsTerminal(os.Stdin.Fd()) {
		return cmd.Help()
	}
	ctx := cmd.Context()

	for {
		state, err := detectState(ctx)
		if err != nil {
			return err
		}

		model := tui.NewMenuModel(state)
		model.Version = version
		p := tea.NewProgram(model, tea.WithAltScreen())
		finalModel, err := p.Run()
		if err != nil {
			return err
		}

		menu := finalModel.(tui.MenuModel)
		if menu.Quitting {
			return nil
		}

		action := menu.Selected
		if action.ID == "" {
			return nil
		}

		err = dispatchAction(ctx, action)

		// For CLI actions, wait for user to press Enter before returning to menu
		if action.Type == tui.ActionCLI {
			if err != nil {
				fmt.Fprintf(os.Stderr, "\nError: %v\n", err)
			}
			fmt.Print("\nPress Enter to return to menu...")
			bufio.NewReader(os.Stdin).ReadBytes('\n')
		} else if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		}
	}
}

func detectState(ctx context.Context) (commands.MenuState, error) {
	st, err := openStore()
	if err != nil {
		return commands.MenuState{}, err
	}
	defer st.Close()
	return commands.DetectMenuState(ctx, st, cfg.User.ID), nil
}

func dispatchAction(ctx context.Context, action tui.MenuAction) error {
	if ctx == nil {
		ctx = context.Background()
	}
	switch action.ID {
	case tui.ActionPick:
		return runPick(ctx, os.Stdout, action.Variant)
	case tui.ActionShow:
		return runShow(ctx, os.Stdout, action.Variant, false, 0, "table")
	case tui.ActionReset:
		return runReset(ctx, os.Stdout, action.Variant, false)
	default:
		return fmt.Errorf("unknown action: %s", action.ID)
	}
}
