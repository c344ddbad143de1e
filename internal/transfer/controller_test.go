package transfer

import (
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestController() *Controller[Record] {
	c := New(FieldPredicate[Record](Contains, "group", "name"))
	c.SetLogger(slog.New(slog.NewTextHandler(io.Discard, nil)))
	return c
}

// assertDisjoint checks that no checked pool id is also chosen.
func assertDisjoint(t *testing.T, c *Controller[Record]) {
	t.Helper()
	for _, it := range c.VisiblePool() {
		if c.IsChecked(PanePool, it.ID) {
			assert.False(t, c.IsDisabled(it.ID), "checked pool id %s is already chosen", it.ID)
		}
	}
}

func checkPool(t *testing.T, c *Controller[Record], idList ...string) {
	t.Helper()
	for _, id := range idList {
		require.NoError(t, c.TogglePoolItem(id))
	}
}

func TestController_ClosedRejectsMutations(t *testing.T) {
	c := newTestController()
	assert.Equal(t, StateClosed, c.State())
	assert.ErrorIs(t, c.Search(Query{}), ErrNotOpen)
	_, err := c.Move()
	assert.ErrorIs(t, err, ErrNotOpen)
	_, err = c.Save()
	assert.ErrorIs(t, err, ErrNotOpen)
	assert.ErrorIs(t, c.Cancel(), ErrNotOpen)
}

func TestController_OpenSeedsChosen(t *testing.T) {
	c := newTestController()
	c.Open([]string{"u3", "u1", "ghost"}, samplePool())

	assert.Equal(t, StateIdle, c.State())
	assert.NotEmpty(t, c.SessionID())
	assert.Equal(t, []string{"u3", "u1"}, c.ChosenIDs())
	assert.Len(t, c.VisiblePool(), 4)
	assert.True(t, c.IsDisabled("u1"))
	assert.False(t, c.IsDisabled("u2"))
	assert.False(t, c.Dirty())
}

func TestController_NilPoolIsEmpty(t *testing.T) {
	c := newTestController()
	c.Open(nil, nil)
	assert.Equal(t, StateIdle, c.State())
	assert.Empty(t, c.VisiblePool())
	assert.False(t, c.HeaderState(PanePool))

	final, err := c.Save()
	require.NoError(t, err)
	assert.Empty(t, final)
}

func TestController_TogglePoolRejectsChosenAndHidden(t *testing.T) {
	c := newTestController()
	c.Open([]string{"u1"}, samplePool())

	assert.ErrorIs(t, c.TogglePoolItem("u1"), ErrNotEligible)
	assert.ErrorIs(t, c.TogglePoolItem("nope"), ErrNotEligible)

	require.NoError(t, c.Search(Query{Category: "Staff"}))
	assert.ErrorIs(t, c.TogglePoolItem("u4"), ErrNotEligible)
	assert.False(t, c.IsChecked(PanePool, "u4"))
}

func TestController_ToggleChosenRequiresChosen(t *testing.T) {
	c := newTestController()
	c.Open([]string{"u1"}, samplePool())

	require.NoError(t, c.ToggleChosenItem("u1"))
	assert.True(t, c.IsChecked(PaneChosen, "u1"))
	assert.ErrorIs(t, c.ToggleChosenItem("u2"), ErrNotEligible)
}

func TestController_IdempotentAdd(t *testing.T) {
	c := newTestController()
	c.Open(nil, samplePool())

	checkPool(t, c, "u2")
	_, err := c.Move()
	require.NoError(t, err)

	// The moved item can no longer be checked, so a second move adds nothing.
	assert.ErrorIs(t, c.TogglePoolItem("u2"), ErrNotEligible)
	added, err := c.Move()
	require.NoError(t, err)
	assert.Empty(t, added)
	assert.Equal(t, []string{"u2"}, c.ChosenIDs())
}

func TestController_OrderPreservation(t *testing.T) {
	pool := recs("a", "b", "c", "d", "e")
	c := New[Record](nil)
	c.Open(nil, pool)

	checkPool(t, c, "c", "a", "b")
	added, err := c.Move()
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b", "c"}, added, "batch follows visible order")

	checkPool(t, c, "d", "e")
	_, err = c.Move()
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b", "c", "d", "e"}, c.ChosenIDs())

	_, err = c.RemoveOne("b")
	require.NoError(t, err)
	checkPool(t, c, "b")
	_, err = c.Move()
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "c", "d", "e", "b"}, c.ChosenIDs())
}

func TestController_DisjointnessThroughoutSession(t *testing.T) {
	c := newTestController()
	c.Open([]string{"u4"}, samplePool())
	assertDisjoint(t, c)

	require.NoError(t, c.ToggleHeader(PanePool))
	assertDisjoint(t, c)
	assert.False(t, c.IsChecked(PanePool, "u4"))
	assert.Equal(t, 3, c.CheckedCount(PanePool))

	_, err := c.Move()
	require.NoError(t, err)
	assertDisjoint(t, c)
	assert.Equal(t, 0, c.CheckedCount(PanePool))

	require.NoError(t, c.ToggleHeader(PaneChosen))
	_, err = c.RemoveChecked()
	require.NoError(t, err)
	assertDisjoint(t, c)

	checkPool(t, c, "u1")
	require.NoError(t, c.Search(Query{Text: "Alice"}))
	assertDisjoint(t, c)
}

func TestController_HeaderTriState(t *testing.T) {
	c := newTestController()
	c.Open([]string{"u1"}, samplePool()) // n=4, k=1

	assert.False(t, c.HeaderState(PanePool))
	checkPool(t, c, "u2", "u3", "u4")
	assert.True(t, c.HeaderState(PanePool))

	require.NoError(t, c.TogglePoolItem("u3"))
	assert.False(t, c.HeaderState(PanePool))
}

func TestController_ToggleHeaderPool(t *testing.T) {
	c := newTestController()
	c.Open([]string{"u2"}, samplePool())
	require.NoError(t, c.Search(Query{Category: "Staff"}))

	require.NoError(t, c.ToggleHeader(PanePool))
	assert.True(t, c.HeaderState(PanePool))
	assert.True(t, c.IsChecked(PanePool, "u3"))
	assert.False(t, c.IsChecked(PanePool, "u2"), "already chosen item must not be checked")
	assert.False(t, c.IsChecked(PanePool, "u1"), "hidden item must not be checked")

	require.NoError(t, c.ToggleHeader(PanePool))
	assert.False(t, c.HeaderState(PanePool))
	assert.Equal(t, 0, c.CheckedCount(PanePool))
}

func TestController_ToggleHeaderPoolWithNothingEligible(t *testing.T) {
	c := newTestController()
	c.Open([]string{"u1", "u2", "u3", "u4"}, samplePool())

	require.NoError(t, c.ToggleHeader(PanePool))
	assert.False(t, c.HeaderState(PanePool))
	assert.Equal(t, 0, c.CheckedCount(PanePool))
}

func TestController_ToggleHeaderChosen(t *testing.T) {
	c := newTestController()
	c.Open([]string{"u1", "u2"}, samplePool())

	require.NoError(t, c.ToggleChosenItem("u1"))
	assert.True(t, c.HeaderState(PaneChosen))

	// Header on means "something checked": toggling clears.
	require.NoError(t, c.ToggleHeader(PaneChosen))
	assert.Equal(t, 0, c.CheckedCount(PaneChosen))

	require.NoError(t, c.ToggleHeader(PaneChosen))
	assert.Equal(t, 2, c.CheckedCount(PaneChosen))
}

func TestController_SearchIntersectsCheckedPool(t *testing.T) {
	c := newTestController()
	c.Open(nil, samplePool())
	checkPool(t, c, "u1", "u2", "u3")

	require.NoError(t, c.Search(Query{Text: "Smith"}))
	assert.True(t, c.IsChecked(PanePool, "u1"))
	assert.True(t, c.IsChecked(PanePool, "u3"))
	assert.False(t, c.IsChecked(PanePool, "u2"), "no longer visible")

	// Widening the search does not bring u2 back.
	require.NoError(t, c.Search(Query{}))
	assert.False(t, c.IsChecked(PanePool, "u2"))
	assert.Equal(t, 2, c.CheckedCount(PanePool))
}

func TestController_SearchReapplication(t *testing.T) {
	c := newTestController()
	c.Open(nil, samplePool())

	require.NoError(t, c.Search(Query{Text: "Bob"}))
	assert.Len(t, c.VisiblePool(), 1)

	require.NoError(t, c.Search(Query{Text: "", Category: ""}))
	assert.Equal(t, []string{"u1", "u2", "u3", "u4"}, ids(c.VisiblePool()))
}

func TestController_ClearSearch(t *testing.T) {
	c := newTestController()
	c.Open(nil, samplePool())
	require.NoError(t, c.Search(Query{Text: "Smith"}))
	checkPool(t, c, "u1")

	require.NoError(t, c.ClearSearch())
	assert.Equal(t, Query{}, c.Query())
	assert.Len(t, c.VisiblePool(), 4)
	assert.Equal(t, 0, c.CheckedCount(PanePool))
}

func TestController_RemoveOnePrunesCheckedChosen(t *testing.T) {
	c := newTestController()
	c.Open([]string{"u1", "u2"}, samplePool())
	require.NoError(t, c.ToggleChosenItem("u1"))
	require.NoError(t, c.ToggleChosenItem("u2"))

	removed, err := c.RemoveOne("u1")
	require.NoError(t, err)
	assert.Equal(t, []string{"u1"}, removed)
	assert.False(t, c.IsChecked(PaneChosen, "u1"))
	assert.True(t, c.IsChecked(PaneChosen, "u2"))
	assert.False(t, c.IsDisabled("u1"))

	_, err = c.RemoveOne("u1")
	assert.ErrorIs(t, err, ErrNotChosen)
}

func TestController_BulkRemoval(t *testing.T) {
	pool := recs("u1", "u2", "u3")
	c := New[Record](nil)
	c.Open([]string{"u1", "u2", "u3"}, pool)

	require.NoError(t, c.ToggleHeader(PaneChosen))
	assert.Equal(t, 3, c.CheckedCount(PaneChosen))

	removed, err := c.RemoveChecked()
	require.NoError(t, err)
	assert.Equal(t, []string{"u1", "u2", "u3"}, removed)
	assert.Empty(t, c.ChosenIDs())
	assert.Equal(t, 0, c.CheckedCount(PaneChosen))
	assert.True(t, c.Dirty())
}

func TestController_SaveCommitsOnceAndResets(t *testing.T) {
	c := newTestController()
	var commits [][]string
	c.OnCommit(func(final []string) { commits = append(commits, final) })

	c.Open([]string{"u3"}, samplePool())
	checkPool(t, c, "u1")
	_, err := c.Move()
	require.NoError(t, err)
	require.NoError(t, c.Search(Query{Text: "Bob"}))

	final, err := c.Save()
	require.NoError(t, err)
	assert.Equal(t, []string{"u3", "u1"}, final)
	require.Len(t, commits, 1)
	assert.Equal(t, []string{"u3", "u1"}, commits[0])

	assert.Equal(t, StateSaved, c.State())
	assert.Empty(t, c.ChosenIDs())
	assert.Empty(t, c.VisiblePool())
	assert.Equal(t, Query{}, c.Query())

	_, err = c.Save()
	assert.ErrorIs(t, err, ErrNotOpen)
	assert.Len(t, commits, 1)
}

func TestController_SaveEmptySelectionIsValid(t *testing.T) {
	c := newTestController()
	var got []string
	called := false
	c.OnCommit(func(final []string) { called, got = true, final })

	c.Open([]string{"u1"}, samplePool())
	_, err := c.RemoveOne("u1")
	require.NoError(t, err)
	_, err = c.Save()
	require.NoError(t, err)
	assert.True(t, called)
	assert.Empty(t, got)
}

func TestController_CancelDiscards(t *testing.T) {
	c := newTestController()
	committed := false
	c.OnCommit(func([]string) { committed = true })

	initial := []string{"u1"}
	c.Open(initial, samplePool())
	checkPool(t, c, "u2", "u3")
	_, err := c.Move()
	require.NoError(t, err)
	require.True(t, c.Dirty())

	require.NoError(t, c.Cancel())
	assert.Equal(t, StateCancelled, c.State())
	assert.False(t, committed)
	assert.Empty(t, c.ChosenIDs())

	c.Open(initial, samplePool())
	assert.Equal(t, []string{"u1"}, c.ChosenIDs())
	assert.Equal(t, 0, c.CheckedCount(PanePool))
	assert.Equal(t, 0, c.CheckedCount(PaneChosen))
	assert.False(t, c.Dirty())
}

func TestController_LoadingDisablesOperations(t *testing.T) {
	c := newTestController()
	gen := c.Begin([]string{"u1"})
	assert.Equal(t, StateLoading, c.State())

	assert.ErrorIs(t, c.Search(Query{Text: "x"}), ErrLoading)
	assert.ErrorIs(t, c.TogglePoolItem("u2"), ErrLoading)
	_, err := c.Move()
	assert.ErrorIs(t, err, ErrLoading)
	assert.Empty(t, c.VisiblePool())

	require.NoError(t, c.Resolve(gen, samplePool()))
	assert.Equal(t, StateIdle, c.State())
	assert.Equal(t, []string{"u1"}, c.ChosenIDs())
}

func TestController_AbortLoadDiscardsResult(t *testing.T) {
	c := newTestController()
	gen := c.Begin(nil)
	c.AbortLoad()

	assert.ErrorIs(t, c.Resolve(gen, samplePool()), ErrStaleLoad)
	assert.Equal(t, StateLoading, c.State())
	assert.Empty(t, c.ChosenIDs())

	// A fresh load still works.
	gen = c.Begin(nil)
	require.NoError(t, c.Resolve(gen, samplePool()))
	assert.Len(t, c.VisiblePool(), 4)
}

func TestController_CancelWhileLoading(t *testing.T) {
	c := newTestController()
	gen := c.Begin(nil)
	require.NoError(t, c.Cancel())
	assert.ErrorIs(t, c.Resolve(gen, samplePool()), ErrStaleLoad)
	assert.Equal(t, StateCancelled, c.State())
}

func TestController_PinnedRecord(t *testing.T) {
	self := rec("me", "Current User", "Self")
	c := newTestController()
	c.SetPinned(self)

	pool := append(samplePool(), rec("me", "duplicate", "Staff"))
	c.Open(nil, pool)

	visible := c.VisiblePool()
	require.Len(t, visible, 5)
	assert.Equal(t, "me", visible[0].ID)
	assert.Equal(t, "Current User", visible[0].Field("name"))
	assert.True(t, c.IsPinned("me"))
	assert.Equal(t, 5, c.PoolSize())

	// Not filterable: survives any query.
	require.NoError(t, c.Search(Query{Text: "Bob"}))
	assert.Equal(t, []string{"me", "u2"}, ids(c.VisiblePool()))

	require.NoError(t, c.Search(Query{Text: "zzz"}))
	assert.Equal(t, []string{"me"}, ids(c.VisiblePool()))

	// Always checkable while not chosen.
	checkPool(t, c, "me")
	_, err := c.Move()
	require.NoError(t, err)
	assert.Equal(t, []string{"me"}, c.ChosenIDs())
	assert.ErrorIs(t, c.TogglePoolItem("me"), ErrNotEligible)
}

func TestController_PinnedSeededFromInitial(t *testing.T) {
	c := newTestController()
	c.SetPinned(rec("me", "Current User", "Self"))
	c.Open([]string{"me", "u2"}, samplePool())
	assert.Equal(t, []string{"me", "u2"}, c.ChosenIDs())
}

func TestController_IndependentInstances(t *testing.T) {
	a := newTestController()
	b := newTestController()
	a.Open(nil, samplePool())
	b.Open(nil, samplePool())

	checkPool(t, a, "u1")
	_, err := a.Move()
	require.NoError(t, err)

	assert.Equal(t, []string{"u1"}, a.ChosenIDs())
	assert.Empty(t, b.ChosenIDs())
	assert.NotEqual(t, a.SessionID(), b.SessionID())
}

func TestStateString(t *testing.T) {
	assert.Equal(t, "idle", StateIdle.String())
	assert.Equal(t, "saved", StateSaved.String())
	assert.Equal(t, "unknown", State(99).String())
	assert.Equal(t, "chosen", PaneChosen.String())
}

func TestController_DuplicatePoolIDsKeepFirst(t *testing.T) {
	c := newTestController()
	c.Open(nil, []Record{rec("a", "first", "G"), rec("a", "second", "G"), rec("b", "bee", "G")})

	assert.Equal(t, []string{"a", "b"}, ids(c.VisiblePool()))
	assert.Equal(t, "first", c.VisiblePool()[0].Field("name"))
	assert.Equal(t, 2, c.PoolSize())

	require.NoError(t, c.ToggleHeader(PanePool))
	assert.True(t, c.HeaderState(PanePool))
	assert.Equal(t, 2, c.CheckedCount(PanePool))

	added, err := c.Move()
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b"}, added)
}
