package commands

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/ruminaider/rosterpick/internal/catalog"
	"github.com/ruminaider/rosterpick/internal/store"
)

// InitialSelection returns the saved ids that seed a new session.
func InitialSelection(ctx context.Context, s store.Store, v catalog.Variant, owner string) ([]string, error) {
	ids, err := s.Load(ctx, v, owner)
	if err != nil {
		return nil, fmt.Errorf("loading %s selection: %w", v, err)
	}
	return ids, nil
}

// CommitSelection persists the ids handed over by a save.
func CommitSelection(ctx context.Context, s store.Store, v catalog.Variant, owner string, ids []string) error {
	if err := s.Save(ctx, v, owner, ids); err != nil {
		return fmt.Errorf("saving %s selection: %w", v, err)
	}
	slog.Info("selection committed", "variant", v, "owner", owner, "count", len(ids))
	return nil
}

// ResetSelection clears the saved selection. The reset is recorded in
// history as an empty commit.
func ResetSelection(ctx context.Context, s store.Store, v catalog.Variant, owner string) error {
	if err := s.Save(ctx, v, owner, []string{}); err != nil {
		return fmt.Errorf("resetting %s selection: %w", v, err)
	}
	slog.Info("selection reset", "variant", v, "owner", owner)
	return nil
}
