package tui

// FocusZone identifies which component currently has keyboard focus.
type FocusZone int

const (
	FocusPool   FocusZone = iota
	FocusChosen           // chosen pane
	FocusSearch           // category/text fields
)

// String returns the display name for a focus zone.
func (f FocusZone) String() string {
	switch f {
	case FocusPool:
		return "pool"
	case FocusChosen:
		return "chosen"
	case FocusSearch:
		return "search"
	default:
		return "unknown"
	}
}

// --- Inter-component messages ---

// PoolLoadedMsg delivers the result of an asynchronous pool load. Gen is
// the load generation returned by the controller when the load started.
type PoolLoadedMsg[T any] struct {
	Gen   uint64
	Items []T
	Err   error
}

// OverlayCloseMsg is emitted when an overlay is dismissed.
type OverlayCloseMsg struct {
	Confirmed bool // true = OK, false = Cancel/Esc
}

// SelectionSummary carries counts for the status bar.
type SelectionSummary struct {
	Title         string
	PoolChecked   int
	PoolSize      int
	Chosen        int
	ChosenChecked int
	Dirty         bool
	Loading       bool
}
