package commands

import (
	"context"

	"github.com/ruminaider/rosterpick/internal/catalog"
	"github.com/ruminaider/rosterpick/internal/store"
)

// MenuState holds the detected state used to build the TUI launcher.
type MenuState struct {
	Owner  string
	Counts map[catalog.Variant]int
	// Unavailable is set when the store could not be read.
	Unavailable bool
}

// DetectMenuState counts the saved selections of every variant for owner.
// It never errors; an unreadable store marks the state unavailable and
// leaves the counts at zero.
func DetectMenuState(ctx context.Context, s store.Store, owner string) MenuState {
	state := MenuState{
		Owner:  owner,
		Counts: make(map[catalog.Variant]int, len(catalog.AllVariants)),
	}
	for _, v := range catalog.AllVariants {
		ids, err := s.Load(ctx, v, owner)
		if err != nil {
			state.Unavailable = true
			continue
		}
		state.Counts[v] = len(ids)
	}
	return state
}
