package transfer

import (
	"log/slog"
	"slices"

	"github.com/google/uuid"
)

// State is the lifecycle state of a Controller session.
type State int

const (
	StateClosed    State = iota // never opened
	StateLoading                // waiting for the pool; transfer operations disabled
	StateIdle                   // editing in progress
	StateSaved                  // committed and reset
	StateCancelled              // discarded and reset
)

// String returns the display name for a state.
func (s State) String() string {
	switch s {
	case StateClosed:
		return "closed"
	case StateLoading:
		return "loading"
	case StateIdle:
		return "idle"
	case StateSaved:
		return "saved"
	case StateCancelled:
		return "cancelled"
	default:
		return "unknown"
	}
}

// Controller orchestrates filtering, both checked sets, and the chosen
// collection for one control instance. It is not safe for concurrent use;
// every call is expected to come from a single UI event loop.
type Controller[T Item] struct {
	pred      Predicate[T]
	pinned    T
	hasPinned bool
	commit    func(ids []string)
	logger    *slog.Logger

	state   State
	session string
	gen     uint64
	initial []string
	seeded  []string

	pool       []T
	visible    []T
	visibleIDs map[string]struct{}
	query      Query

	sel    *Selection
	chosen *Chosen[T]
}

// New creates a closed Controller that filters its pool with pred.
func New[T Item](pred Predicate[T]) *Controller[T] {
	c := &Controller[T]{
		pred:   pred,
		logger: slog.Default(),
		chosen: NewChosen[T](),
	}
	c.sel = NewSelection(c.eligible)
	return c
}

// SetPinned registers an item that is prepended to every visible pool and
// never filtered out, such as the acting user's own record.
func (c *Controller[T]) SetPinned(item T) {
	c.pinned = item
	c.hasPinned = true
}

// OnCommit registers the callback invoked exactly once per Save with the
// final ordered ids.
func (c *Controller[T]) OnCommit(fn func(ids []string)) {
	c.commit = fn
}

// SetLogger replaces the logger used for session events.
func (c *Controller[T]) SetLogger(logger *slog.Logger) {
	if logger != nil {
		c.logger = logger
	}
}

// --- Session lifecycle ---

// Open starts a session with an already available pool.
func (c *Controller[T]) Open(initialIDs []string, pool []T) {
	gen := c.Begin(initialIDs)
	_ = c.Resolve(gen, pool)
}

// Begin starts a session whose pool is still loading and returns the load
// generation to pass to Resolve. Any previous session state is discarded.
func (c *Controller[T]) Begin(initialIDs []string) uint64 {
	c.reset()
	c.gen++
	c.state = StateLoading
	c.session = uuid.NewString()
	c.initial = slices.Clone(initialIDs)
	c.log().Debug("session started", "initial", len(initialIDs))
	return c.gen
}

// Resolve supplies the pool for the load started by Begin. A nil pool is
// treated as empty and only the first item with a given id is kept. Loads that were aborted or superseded return
// ErrStaleLoad and change nothing.
func (c *Controller[T]) Resolve(gen uint64, pool []T) error {
	if c.state != StateLoading || gen != c.gen {
		return ErrStaleLoad
	}

	c.pool = make([]T, 0, len(pool))
	seen := make(map[string]struct{}, len(pool))
	for _, it := range pool {
		id := it.ItemID()
		if c.hasPinned && id == c.pinned.ItemID() {
			continue
		}
		if _, dup := seen[id]; dup {
			c.log().Warn("dropping duplicate pool item", "id", id)
			continue
		}
		seen[id] = struct{}{}
		c.pool = append(c.pool, it)
	}

	byID := make(map[string]T, len(c.pool)+1)
	if c.hasPinned {
		byID[c.pinned.ItemID()] = c.pinned
	}
	for _, it := range c.pool {
		byID[it.ItemID()] = it
	}
	seed := make([]T, 0, len(c.initial))
	for _, id := range c.initial {
		it, ok := byID[id]
		if !ok {
			c.log().Warn("dropping unknown initial selection", "id", id)
			continue
		}
		seed = append(seed, it)
	}
	c.chosen.AppendBatch(seed)
	c.seeded = c.chosen.IDs()

	c.state = StateIdle
	c.refilter()
	c.log().Debug("pool resolved", "pool", len(c.pool), "chosen", c.chosen.Len())
	return nil
}

// AbortLoad discards the in-flight pool load. The controller stays in the
// loading state until a new Begin/Resolve pair completes.
func (c *Controller[T]) AbortLoad() {
	if c.state == StateLoading {
		c.gen++
		c.log().Debug("pool load aborted")
	}
}

// --- Render-time queries ---

// State returns the current lifecycle state.
func (c *Controller[T]) State() State { return c.state }

// SessionID returns the id of the current or last session.
func (c *Controller[T]) SessionID() string { return c.session }

// Query returns the active search query.
func (c *Controller[T]) Query() Query { return c.query }

// VisiblePool returns the filtered pool, pinned item first.
func (c *Controller[T]) VisiblePool() []T {
	return append([]T{}, c.visible...)
}

// PoolSize returns the number of candidates in the session, pinned item
// included.
func (c *Controller[T]) PoolSize() int {
	if c.state != StateIdle {
		return 0
	}
	n := len(c.pool)
	if c.hasPinned {
		n++
	}
	return n
}

// Chosen returns the chosen items in order.
func (c *Controller[T]) Chosen() []T { return c.chosen.List() }

// ChosenIDs returns the chosen ids in order.
func (c *Controller[T]) ChosenIDs() []string { return c.chosen.IDs() }

// HeaderState returns the derived "select all" checkbox value for a pane.
func (c *Controller[T]) HeaderState(p Pane) bool {
	return c.sel.HeaderState(p, c.eligibleIDs(p))
}

// IsChecked reports whether id is checked in the pane.
func (c *Controller[T]) IsChecked(p Pane, id string) bool { return c.sel.Has(p, id) }

// CheckedCount returns how many ids are checked in the pane.
func (c *Controller[T]) CheckedCount(p Pane) int { return c.sel.Len(p) }

// IsDisabled reports whether a pool row is disabled because it is already
// chosen.
func (c *Controller[T]) IsDisabled(id string) bool { return c.chosen.Contains(id) }

// IsPinned reports whether id is the pinned item.
func (c *Controller[T]) IsPinned(id string) bool {
	return c.hasPinned && c.pinned.ItemID() == id
}

// Dirty reports whether the chosen ids differ from those seeded at open.
func (c *Controller[T]) Dirty() bool {
	return c.state == StateIdle && !slices.Equal(c.seeded, c.chosen.IDs())
}

// --- Mutations ---

// Search recomputes the visible pool. Checked pool ids that are still
// visible and not chosen stay checked; the rest are dropped.
func (c *Controller[T]) Search(q Query) error {
	if err := c.guard(); err != nil {
		return err
	}
	c.query = q
	c.refilter()
	c.sel.Retain(PanePool, func(id string) bool { return c.eligible(PanePool, id) })
	c.log().Debug("search", "text", q.Text, "category", q.Category, "visible", len(c.visible))
	return nil
}

// ClearSearch resets the query, shows the full pool, and unchecks the pool
// pane.
func (c *Controller[T]) ClearSearch() error {
	if err := c.guard(); err != nil {
		return err
	}
	c.query = Query{}
	c.refilter()
	c.sel.Clear(PanePool)
	return nil
}

// TogglePoolItem flips the checkbox of a visible, not-yet-chosen item.
func (c *Controller[T]) TogglePoolItem(id string) error {
	if err := c.guard(); err != nil {
		return err
	}
	return c.sel.Toggle(PanePool, id)
}

// ToggleChosenItem flips the checkbox of a chosen item.
func (c *Controller[T]) ToggleChosenItem(id string) error {
	if err := c.guard(); err != nil {
		return err
	}
	return c.sel.Toggle(PaneChosen, id)
}

// ToggleHeader flips the pane's "select all" checkbox. Turning the pool
// header on checks only visible items that are not already chosen.
func (c *Controller[T]) ToggleHeader(p Pane) error {
	if err := c.guard(); err != nil {
		return err
	}
	if c.HeaderState(p) {
		c.sel.Clear(p)
		return nil
	}
	c.sel.SetAll(p, c.eligibleIDs(p))
	return nil
}

// Move appends the checked pool items to the chosen collection in visible
// order, then unchecks the pool pane. It returns the ids appended.
func (c *Controller[T]) Move() ([]string, error) {
	if err := c.guard(); err != nil {
		return nil, err
	}
	batch := make([]T, 0, c.sel.Len(PanePool))
	for _, it := range c.visible {
		if c.sel.Has(PanePool, it.ItemID()) {
			batch = append(batch, it)
		}
	}
	added := c.chosen.AppendBatch(batch)
	c.sel.Clear(PanePool)
	c.log().Debug("moved", "count", len(added), "chosen", c.chosen.Len())
	return added, nil
}

// RemoveChecked removes every checked chosen item and clears the chosen
// pane's checked set. It returns the ids removed.
func (c *Controller[T]) RemoveChecked() ([]string, error) {
	if err := c.guard(); err != nil {
		return nil, err
	}
	removed := c.chosen.RemoveBatch(c.sel.IDs(PaneChosen))
	c.sel.Clear(PaneChosen)
	c.log().Debug("removed checked", "count", len(removed), "chosen", c.chosen.Len())
	return removed, nil
}

// RemoveOne removes a single chosen item, checked or not, and prunes it
// from the chosen pane's checked set.
func (c *Controller[T]) RemoveOne(id string) ([]string, error) {
	if err := c.guard(); err != nil {
		return nil, err
	}
	if !c.chosen.Contains(id) {
		return nil, ErrNotChosen
	}
	removed := c.chosen.RemoveOne(id)
	c.sel.Remove(PaneChosen, removed...)
	c.log().Debug("removed", "id", id, "chosen", c.chosen.Len())
	return removed, nil
}

// Save hands the ordered chosen ids to the commit callback, marks the
// session saved, and resets all session state. An empty selection is a
// valid save.
func (c *Controller[T]) Save() ([]string, error) {
	if err := c.guard(); err != nil {
		return nil, err
	}
	final := c.chosen.IDs()
	if c.commit != nil {
		c.commit(slices.Clone(final))
	}
	c.state = StateSaved
	c.log().Info("selection saved", "count", len(final))
	c.reset()
	return final, nil
}

// Cancel discards the session without committing. It is allowed while the
// pool is loading; any in-flight load becomes stale.
func (c *Controller[T]) Cancel() error {
	if c.state != StateIdle && c.state != StateLoading {
		return ErrNotOpen
	}
	c.gen++
	c.state = StateCancelled
	c.log().Debug("session cancelled")
	c.reset()
	return nil
}

// --- Internal helpers ---

func (c *Controller[T]) guard() error {
	switch c.state {
	case StateIdle:
		return nil
	case StateLoading:
		return ErrLoading
	default:
		return ErrNotOpen
	}
}

// eligible is the Selection's eligibility rule: pool ids must be visible
// and not chosen; chosen ids must be chosen.
func (c *Controller[T]) eligible(p Pane, id string) bool {
	if p == PaneChosen {
		return c.chosen.Contains(id)
	}
	if _, ok := c.visibleIDs[id]; !ok {
		return false
	}
	return !c.chosen.Contains(id)
}

func (c *Controller[T]) eligibleIDs(p Pane) []string {
	if p == PaneChosen {
		return c.chosen.IDs()
	}
	out := make([]string, 0, len(c.visible))
	for _, it := range c.visible {
		if !c.chosen.Contains(it.ItemID()) {
			out = append(out, it.ItemID())
		}
	}
	return out
}

func (c *Controller[T]) refilter() {
	filtered := Filter(c.pool, c.query, c.pred)
	visible := make([]T, 0, len(filtered)+1)
	if c.hasPinned {
		visible = append(visible, c.pinned)
	}
	c.visible = append(visible, filtered...)
	c.visibleIDs = make(map[string]struct{}, len(c.visible))
	for _, it := range c.visible {
		c.visibleIDs[it.ItemID()] = struct{}{}
	}
}

func (c *Controller[T]) reset() {
	c.query = Query{}
	c.sel.Clear(PanePool)
	c.sel.Clear(PaneChosen)
	c.chosen.Reset()
	c.pool = nil
	c.visible = nil
	c.visibleIDs = nil
	c.initial = nil
	c.seeded = nil
}

func (c *Controller[T]) log() *slog.Logger {
	return c.logger.With("session", c.session)
}
