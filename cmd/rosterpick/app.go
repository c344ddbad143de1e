package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/x/term"
	"github.com/ruminaider/rosterpick/cmd/rosterpick/tui"
	"github.com/ruminaider/rosterpick/internal/catalog"
	"github.com/ruminaider/rosterpick/internal/commands"
	"github.com/ruminaider/rosterpick/internal/store"
	"github.com/ruminaider/rosterpick/internal/transfer"
)

var errNotInteractive = errors.New("an interactive terminal is required")

func openStore() (store.Store, error) {
	return store.Open(cfg.Store.Backend, cfg.Store.Path)
}

func catalogSource() catalog.Source {
	return catalog.FileSource{Path: cfg.Catalog.Path}
}

// runPick opens the transfer control for v, seeded with the saved
// selection, and persists the result on save.
func runPick(ctx context.Context, out io.Writer, v catalog.Variant) error {
	if !term.IsTerminal(os.Stdin.Fd()) {
		return errNotInteractive
	}
	matcher, err := transfer.MatcherFor(cfg.Match.Mode)
	if err != nil {
		return err
	}
	st, err := openStore()
	if err != nil {
		return err
	}
	defer st.Close()

	owner := cfg.User.ID
	initial, err := commands.InitialSelection(ctx, st, v, owner)
	if err != nil {
		return err
	}
	commit := func(ids []string) error {
		return commands.CommitSelection(ctx, st, v, owner, ids)
	}
	src := catalogSource()

	var saved []string
	switch v {
	case catalog.VariantFavorites:
		ctrl := transfer.New(catalog.TaskPredicate(matcher))
		saved, err = runTransfer(ctx, ctrl, v, initial, commit,
			func(ctx context.Context) ([]catalog.Task, error) {
				cat, err := src.Load(ctx)
				if err != nil {
					return nil, err
				}
				return cat.TaskPool(), nil
			}, "task", "subcategory")
	case catalog.VariantUsers:
		ctrl := transfer.New(catalog.UserPredicate(matcher))
		ctrl.SetPinned(catalog.Self(owner, cfg.User.Name))
		saved, err = runTransfer(ctx, ctrl, v, initial, commit,
			func(ctx context.Context) ([]catalog.User, error) {
				cat, err := src.Load(ctx)
				if err != nil {
					return nil, err
				}
				return cat.Users, nil
			}, "name", "email")
	case catalog.VariantResources:
		ctrl := transfer.New(catalog.ResourcePredicate(matcher))
		saved, err = runTransfer(ctx, ctrl, v, initial, commit,
			func(ctx context.Context) ([]catalog.Resource, error) {
				cat, err := src.Load(ctx)
				if err != nil {
					return nil, err
				}
				return cat.Resources, nil
			}, "name", "location")
	default:
		return fmt.Errorf("unknown variant %q", v)
	}
	if err != nil {
		return err
	}

	if saved == nil {
		fmt.Fprintln(out, "No changes saved.")
		return nil
	}
	fmt.Fprintf(out, "Saved %d %s.\n", len(saved), v)
	return nil
}

// runTransfer drives one session of ctrl in a Bubble Tea program. It
// returns the committed ids, or nil when the session was cancelled.
func runTransfer[T transfer.Item](
	ctx context.Context,
	ctrl *transfer.Controller[T],
	v catalog.Variant,
	initial []string,
	commit func([]string) error,
	load func(context.Context) ([]T, error),
	suggestFields ...string,
) ([]string, error) {
	var commitErr error
	ctrl.SetLogger(slog.Default().With("variant", v, "owner", cfg.User.ID))
	ctrl.OnCommit(func(ids []string) {
		commitErr = commit(ids)
	})

	model := tui.NewTransferModel(ctrl, tui.TransferOptions[T]{
		Title:         v.Title(),
		CategoryLabel: v.CategoryLabel(),
		Label:         func(it T) string { return it.Field(catalog.FieldLabel) },
		Load:          load,
		Initial:       initial,
		Suggest:       suggester[T](suggestFields...),
		Context:       ctx,
	})

	p := tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(ctx))
	final, err := p.Run()
	if err != nil {
		return nil, err
	}
	if commitErr != nil {
		return nil, commitErr
	}
	fm := final.(tui.TransferModel[T])
	if !fm.Committed() {
		return nil, nil
	}
	ids := fm.CommittedIDs()
	if ids == nil {
		ids = []string{}
	}
	return ids, nil
}

// suggester proposes the closest value of fields across the pool for a
// search that matched nothing.
func suggester[T transfer.Item](fields ...string) func(string, []T) (string, bool) {
	return func(query string, pool []T) (string, bool) {
		candidates := make([]string, 0, len(pool)*len(fields))
		for _, it := range pool {
			for _, f := range fields {
				if v := it.Field(f); v != "" {
					candidates = append(candidates, v)
				}
			}
		}
		return catalog.Suggest(query, candidates)
	}
}
