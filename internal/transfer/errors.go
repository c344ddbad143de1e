package transfer

import "errors"

var (
	// ErrNotEligible is returned when toggling an id that cannot be checked
	// in the given pane: not visible, already chosen, or not chosen.
	ErrNotEligible = errors.New("item not eligible for this pane")

	// ErrLoading is returned by mutations while the pool is still loading.
	ErrLoading = errors.New("pool is still loading")

	// ErrNotOpen is returned by mutations outside an open session.
	ErrNotOpen = errors.New("no open session")

	// ErrStaleLoad is returned by Resolve for an aborted or superseded load.
	ErrStaleLoad = errors.New("stale pool load")

	// ErrNotChosen is returned by RemoveOne for an id not in the chosen set.
	ErrNotChosen = errors.New("item not chosen")
)
