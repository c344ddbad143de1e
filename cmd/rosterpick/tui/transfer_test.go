package tui

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/ruminaider/rosterpick/internal/transfer"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordModel = TransferModel[transfer.Record]

func rec(id, name, group string) transfer.Record {
	return transfer.Record{ID: id, Fields: map[string]string{"name": name, "group": group}}
}

func testPool() []transfer.Record {
	return []transfer.Record{
		rec("u1", "Alice Smith", "Admin"),
		rec("u2", "Bob Jones", "Staff"),
		rec("u3", "Carol Smith", "Staff"),
		rec("u4", "Dave", "Guest"),
	}
}

func newTestModel(t *testing.T, initial []string, tweak ...func(*TransferOptions[transfer.Record])) (recordModel, *transfer.Controller[transfer.Record]) {
	t.Helper()
	ctrl := transfer.New[transfer.Record](transfer.FieldPredicate[transfer.Record](transfer.Contains, "group", "name"))
	ctrl.SetLogger(slog.New(slog.NewTextHandler(io.Discard, nil)))
	opts := TransferOptions[transfer.Record]{
		Title:   "Users",
		Label:   func(r transfer.Record) string { return r.Field("name") },
		Load:    func(context.Context) ([]transfer.Record, error) { return testPool(), nil },
		Initial: initial,
	}
	for _, fn := range tweak {
		fn(&opts)
	}
	return NewTransferModel(ctrl, opts), ctrl
}

// loaded runs the model's Init command and feeds the result back in.
func loaded(t *testing.T, m recordModel) recordModel {
	t.Helper()
	cmd := m.Init()
	require.NotNil(t, cmd)
	updated, _ := m.Update(cmd())
	return updated.(recordModel)
}

func typeKey(m tea.Model, k string) recordModel {
	return sendKey(m, k).(recordModel)
}

func special(m tea.Model, k tea.KeyType) recordModel {
	return sendSpecialKey(m, k).(recordModel)
}

func rowIDs(rows []PaneRow) []string {
	out := make([]string, 0, len(rows))
	for _, r := range rows {
		out = append(out, r.ID)
	}
	return out
}

func TestTransferModel_LoadingIgnoresTransferKeys(t *testing.T) {
	m, ctrl := newTestModel(t, nil)
	assert.Equal(t, transfer.StateLoading, ctrl.State())
	assert.Contains(t, m.View(), "Loading")

	m = typeKey(m, "a")
	m = typeKey(m, "m")
	assert.Equal(t, transfer.StateLoading, ctrl.State())

	m = loaded(t, m)
	assert.Equal(t, transfer.StateIdle, ctrl.State())
	assert.Equal(t, []string{"u1", "u2", "u3", "u4"}, rowIDs(m.pool.Rows()))
	assert.Empty(t, ctrl.ChosenIDs())
}

func TestTransferModel_InitialSelectionSeedsChosenPane(t *testing.T) {
	m, _ := newTestModel(t, []string{"u3", "gone", "u1"})
	m = loaded(t, m)

	assert.Equal(t, []string{"u3", "u1"}, rowIDs(m.chosen.Rows()))
	for _, r := range m.pool.Rows() {
		assert.Equal(t, r.ID == "u1" || r.ID == "u3", r.Disabled, r.ID)
	}
}

func TestTransferModel_ToggleAndMove(t *testing.T) {
	m, ctrl := newTestModel(t, nil)
	m = loaded(t, m)

	m = special(m, tea.KeyDown) // u1
	m = special(m, tea.KeyDown) // u2
	m = typeKey(m, " ")
	assert.True(t, ctrl.IsChecked(transfer.PanePool, "u2"))

	m = typeKey(m, "m")
	assert.Equal(t, []string{"u2"}, ctrl.ChosenIDs())
	assert.Equal(t, "added 1", m.Flash())
	assert.Zero(t, ctrl.CheckedCount(transfer.PanePool))

	// The row stays visible but disabled; checking it again is refused.
	m = typeKey(m, " ")
	assert.Equal(t, "already selected", m.Flash())
	assert.False(t, ctrl.IsChecked(transfer.PanePool, "u2"))
}

func TestTransferModel_HeaderSelectsAllThenMoves(t *testing.T) {
	m, ctrl := newTestModel(t, []string{"u4"})
	m = loaded(t, m)

	// Cursor starts on the header row.
	assert.True(t, m.pool.OnHeader())
	m = typeKey(m, " ")
	assert.True(t, ctrl.HeaderState(transfer.PanePool))
	assert.Equal(t, 3, ctrl.CheckedCount(transfer.PanePool))

	m = typeKey(m, ">")
	assert.Equal(t, []string{"u4", "u1", "u2", "u3"}, ctrl.ChosenIDs())
	assert.False(t, ctrl.HeaderState(transfer.PanePool))
	assert.True(t, m.pool.header.Checked == ctrl.HeaderState(transfer.PanePool))
}

func TestTransferModel_RemoveUnderCursorAndChecked(t *testing.T) {
	m, ctrl := newTestModel(t, []string{"u1", "u2", "u3"})
	m = loaded(t, m)

	m = special(m, tea.KeyTab)
	assert.Equal(t, FocusChosen, m.Focus())

	m = special(m, tea.KeyDown) // u1
	m = special(m, tea.KeyDown) // u2
	m = typeKey(m, "d")
	assert.Equal(t, []string{"u1", "u3"}, ctrl.ChosenIDs())
	assert.Equal(t, "removed 1", m.Flash())

	m = typeKey(m, "a")
	assert.True(t, ctrl.HeaderState(transfer.PaneChosen))
	m = typeKey(m, "x")
	assert.Empty(t, ctrl.ChosenIDs())
	assert.Equal(t, "removed 2", m.Flash())
}

func TestTransferModel_RemoveKeyIgnoredOnPoolPane(t *testing.T) {
	m, ctrl := newTestModel(t, []string{"u1"})
	m = loaded(t, m)
	m = special(m, tea.KeyDown)
	m = typeKey(m, "d")
	assert.Equal(t, []string{"u1"}, ctrl.ChosenIDs())
}

func TestTransferModel_Search(t *testing.T) {
	m, ctrl := newTestModel(t, nil)
	m = loaded(t, m)

	m = typeKey(m, "/")
	assert.Equal(t, FocusSearch, m.Focus())
	m = typeKey(m, "Smith")
	// Typing does not filter until enter.
	assert.Len(t, m.pool.Rows(), 4)

	m = special(m, tea.KeyEnter)
	assert.Equal(t, FocusPool, m.Focus())
	assert.Equal(t, transfer.Query{Text: "Smith"}, ctrl.Query())
	assert.Equal(t, []string{"u1", "u3"}, rowIDs(m.pool.Rows()))

	// Category field via tab.
	m = typeKey(m, "/")
	m = special(m, tea.KeyTab)
	m = typeKey(m, "Staff")
	m = special(m, tea.KeyEnter)
	assert.Equal(t, []string{"u3"}, rowIDs(m.pool.Rows()))

	m = special(m, tea.KeyCtrlL)
	assert.Equal(t, transfer.Query{}, ctrl.Query())
	assert.Len(t, m.pool.Rows(), 4)
	assert.Empty(t, m.text.Value())
}

func TestTransferModel_SearchEscRestoresFields(t *testing.T) {
	m, ctrl := newTestModel(t, nil)
	m = loaded(t, m)

	m = typeKey(m, "/")
	m = typeKey(m, "Bob")
	m = special(m, tea.KeyEsc)
	assert.Equal(t, FocusPool, m.Focus())
	assert.Empty(t, m.text.Value())
	assert.Equal(t, transfer.Query{}, ctrl.Query())
	assert.Equal(t, transfer.StateIdle, ctrl.State(), "esc in the search bar must not cancel")
}

func TestTransferModel_SearchSuggestion(t *testing.T) {
	m, _ := newTestModel(t, nil, func(o *TransferOptions[transfer.Record]) {
		o.Suggest = func(q string, pool []transfer.Record) (string, bool) {
			return "Smith", q == "Smiht" && len(pool) == 4
		}
	})
	m = loaded(t, m)

	m = typeKey(m, "/")
	m = typeKey(m, "Smiht")
	m = special(m, tea.KeyEnter)
	assert.Empty(t, m.pool.Rows())
	assert.Contains(t, m.Flash(), `did you mean "Smith"`)
}

func TestTransferModel_Save(t *testing.T) {
	var committed [][]string
	m, ctrl := newTestModel(t, []string{"u2"})
	ctrl.OnCommit(func(ids []string) { committed = append(committed, ids) })
	m = loaded(t, m)

	m = special(m, tea.KeyDown)
	m = typeKey(m, " ")
	m = typeKey(m, "m")

	updated, cmd := m.Update(tea.KeyMsg{Type: tea.KeyCtrlS})
	m = updated.(recordModel)
	require.NotNil(t, cmd)
	assert.True(t, m.Done())
	assert.True(t, m.Committed())
	assert.Equal(t, []string{"u2", "u1"}, m.CommittedIDs())
	assert.Equal(t, [][]string{{"u2", "u1"}}, committed)
	assert.Equal(t, transfer.StateSaved, ctrl.State())
	assert.Empty(t, m.View())
}

func TestTransferModel_CancelCleanSessionQuitsImmediately(t *testing.T) {
	m, ctrl := newTestModel(t, []string{"u1"})
	m = loaded(t, m)

	m = special(m, tea.KeyEsc)
	assert.True(t, m.Done())
	assert.False(t, m.Committed())
	assert.Equal(t, transfer.StateCancelled, ctrl.State())
}

func TestTransferModel_CancelDirtyAsksFirst(t *testing.T) {
	committed := false
	m, ctrl := newTestModel(t, nil)
	ctrl.OnCommit(func([]string) { committed = true })
	m = loaded(t, m)

	m = typeKey(m, "a")
	m = typeKey(m, "m")
	m = special(m, tea.KeyEsc)
	require.True(t, m.overlay.Active())
	assert.False(t, m.Done())

	// Keys go to the overlay while it is shown.
	m = typeKey(m, "m")
	assert.Len(t, ctrl.ChosenIDs(), 4)

	// "n" keeps editing.
	m = typeKey(m, "n")
	assert.False(t, m.overlay.Active())
	assert.Equal(t, transfer.StateIdle, ctrl.State())

	updated, _ := m.Update(OverlayCloseMsg{Confirmed: true})
	m = updated.(recordModel)
	assert.True(t, m.Done())
	assert.False(t, m.Committed())
	assert.False(t, committed)
	assert.Equal(t, transfer.StateCancelled, ctrl.State())
}

func TestTransferModel_CtrlCCancelsWhileLoading(t *testing.T) {
	m, ctrl := newTestModel(t, nil)
	m = special(m, tea.KeyCtrlC)
	assert.True(t, m.Done())
	assert.Equal(t, transfer.StateCancelled, ctrl.State())
}

func TestTransferModel_StaleLoadIgnored(t *testing.T) {
	m, ctrl := newTestModel(t, nil)
	updated, _ := m.Update(PoolLoadedMsg[transfer.Record]{Gen: 999, Items: testPool()})
	m = updated.(recordModel)
	assert.Equal(t, transfer.StateLoading, ctrl.State())
	assert.Empty(t, m.pool.Rows())
}

func TestTransferModel_LoadErrorAndRetry(t *testing.T) {
	fail := true
	m, ctrl := newTestModel(t, []string{"u1"}, func(o *TransferOptions[transfer.Record]) {
		o.Load = func(context.Context) ([]transfer.Record, error) {
			if fail {
				return nil, errors.New("backend unavailable")
			}
			return testPool(), nil
		}
	})
	m = loaded(t, m)
	assert.Equal(t, transfer.StateLoading, ctrl.State())
	assert.Contains(t, m.View(), "backend unavailable")

	fail = false
	updated, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("r")})
	m = updated.(recordModel)
	require.NotNil(t, cmd)
	updated, _ = m.Update(cmd())
	m = updated.(recordModel)

	assert.Equal(t, transfer.StateIdle, ctrl.State())
	assert.Equal(t, []string{"u1"}, ctrl.ChosenIDs())
	assert.NotContains(t, m.View(), "backend unavailable")
}

func TestTransferModel_PinnedRow(t *testing.T) {
	m, ctrl := newTestModel(t, nil)
	ctrl.SetPinned(rec("me", "Me (you)", "self"))
	// Restart so the pinned record takes part in the session.
	m = NewTransferModel(ctrl, m.opts)
	m = loaded(t, m)

	rows := m.pool.Rows()
	require.NotEmpty(t, rows)
	assert.Equal(t, "me", rows[0].ID)
	assert.Equal(t, "pinned", rows[0].Tag)

	m = typeKey(m, "/")
	m = typeKey(m, "zzz")
	m = special(m, tea.KeyEnter)
	assert.Equal(t, []string{"me"}, rowIDs(m.pool.Rows()))
}

func TestTransferModel_WindowResize(t *testing.T) {
	m, _ := newTestModel(t, nil)
	m = loaded(t, m)
	updated, _ := m.Update(tea.WindowSizeMsg{Width: 120, Height: 40})
	m = updated.(recordModel)
	assert.Equal(t, 120, m.width)
	assert.Equal(t, 40-chromeHeight, m.pool.height)
	assert.Contains(t, m.View(), "Alice Smith")
}
