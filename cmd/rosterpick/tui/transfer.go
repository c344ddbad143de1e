package tui

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/ruminaider/rosterpick/internal/transfer"
)

// Lines used by everything except the two pane bodies: title, search bar,
// blank, pane borders (2), flash line, status bar.
const chromeHeight = 7

// TransferOptions configures a TransferModel.
type TransferOptions[T transfer.Item] struct {
	Title         string
	CategoryLabel string
	// Label renders an item row. Defaults to the item id.
	Label func(T) string
	// Load fetches the candidate pool. It runs off the event loop.
	Load func(ctx context.Context) ([]T, error)
	// Initial is the previously saved selection.
	Initial []string
	// Suggest proposes a correction for a search that matched nothing,
	// given the loaded pool.
	Suggest func(query string, pool []T) (string, bool)
	Context context.Context
}

// TransferModel is the Bubble Tea host for a transfer.Controller: a pool
// pane, a chosen pane, a search bar and a status bar.
type TransferModel[T transfer.Item] struct {
	ctrl *transfer.Controller[T]
	opts TransferOptions[T]
	gen  uint64

	pool   Pane
	chosen Pane
	focus  FocusZone
	// returnFocus is the pane focused before entering the search bar.
	returnFocus FocusZone

	category    textinput.Model
	text        textinput.Model
	searchField int // 0 = category, 1 = text

	status  StatusBar
	overlay Overlay
	flash   string
	loadErr error
	loaded  []T

	width  int
	height int

	done         bool
	committed    bool
	committedIDs []string
}

// NewTransferModel starts a session on ctrl and returns the model that
// drives it. The pool load is issued by Init.
func NewTransferModel[T transfer.Item](ctrl *transfer.Controller[T], opts TransferOptions[T]) TransferModel[T] {
	if opts.Label == nil {
		opts.Label = func(it T) string { return it.ItemID() }
	}
	if opts.Context == nil {
		opts.Context = context.Background()
	}
	if opts.CategoryLabel == "" {
		opts.CategoryLabel = "Category"
	}

	category := textinput.New()
	category.Prompt = ""
	category.Placeholder = "any"
	category.CharLimit = 64
	category.Width = 16

	text := textinput.New()
	text.Prompt = ""
	text.Placeholder = "type to filter"
	text.CharLimit = 64
	text.Width = 24

	m := TransferModel[T]{
		ctrl:     ctrl,
		opts:     opts,
		pool:     NewPane("no matches"),
		chosen:   NewPane("nothing selected"),
		category: category,
		text:     text,
		status:   NewStatusBar(),
		width:    80,
		height:   24,
	}
	m.gen = ctrl.Begin(opts.Initial)
	m.layout()
	m.refresh()
	return m
}

// Init issues the pool load.
func (m TransferModel[T]) Init() tea.Cmd {
	return m.loadCmd(m.gen)
}

func (m TransferModel[T]) loadCmd(gen uint64) tea.Cmd {
	load := m.opts.Load
	ctx := m.opts.Context
	return func() tea.Msg {
		if load == nil {
			return PoolLoadedMsg[T]{Gen: gen}
		}
		items, err := load(ctx)
		return PoolLoadedMsg[T]{Gen: gen, Items: items, Err: err}
	}
}

// Committed reports whether the session ended with a save.
func (m TransferModel[T]) Committed() bool { return m.committed }

// CommittedIDs returns the ids handed to the commit callback.
func (m TransferModel[T]) CommittedIDs() []string { return m.committedIDs }

// Done reports whether the session ended, saved or cancelled.
func (m TransferModel[T]) Done() bool { return m.done }

// Focus returns the focused zone.
func (m TransferModel[T]) Focus() FocusZone { return m.focus }

// Flash returns the one-line feedback currently shown.
func (m TransferModel[T]) Flash() string { return m.flash }

func (m TransferModel[T]) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.layout()
		return m, nil

	case PoolLoadedMsg[T]:
		return m.handleLoaded(msg)

	case OverlayCloseMsg:
		if msg.Confirmed {
			return m.cancel()
		}
		return m, nil

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m.cancel()
		}
		if m.overlay.Active() {
			var cmd tea.Cmd
			m.overlay, cmd = m.overlay.Update(msg)
			return m, cmd
		}
		if m.focus == FocusSearch {
			return m.updateSearch(msg)
		}
		if m.ctrl.State() == transfer.StateLoading {
			return m.updateLoading(msg)
		}
		return m.updateIdle(msg)
	}
	return m, nil
}

func (m TransferModel[T]) handleLoaded(msg PoolLoadedMsg[T]) (tea.Model, tea.Cmd) {
	if msg.Gen != m.gen {
		return m, nil
	}
	if msg.Err != nil {
		m.loadErr = msg.Err
		m.ctrl.AbortLoad()
		m.flash = ""
		m.refresh()
		return m, nil
	}
	if err := m.ctrl.Resolve(msg.Gen, msg.Items); err != nil {
		return m, nil
	}
	m.loadErr = nil
	m.loaded = msg.Items
	m.refresh()
	return m, nil
}

func (m TransferModel[T]) updateLoading(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc", "q":
		return m.cancel()
	case "r":
		if m.loadErr != nil {
			m.loadErr = nil
			m.gen = m.ctrl.Begin(m.opts.Initial)
			m.refresh()
			return m, m.loadCmd(m.gen)
		}
	}
	return m, nil
}

func (m TransferModel[T]) updateIdle(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	m.flash = ""
	pane := m.focusedPane()

	switch msg.String() {
	case "tab", "shift+tab":
		if m.focus == FocusPool {
			m.setFocus(FocusChosen)
		} else {
			m.setFocus(FocusPool)
		}

	case "up", "k":
		m.paneFor(m.focus).MoveCursor(-1)
	case "down", "j":
		m.paneFor(m.focus).MoveCursor(+1)

	case " ", "enter":
		p := m.paneFor(m.focus)
		if p.OnHeader() {
			m.report(m.ctrl.ToggleHeader(pane))
			break
		}
		if id, ok := p.CursorID(); ok {
			var err error
			if pane == transfer.PanePool {
				err = m.ctrl.TogglePoolItem(id)
			} else {
				err = m.ctrl.ToggleChosenItem(id)
			}
			m.report(err)
		}

	case "a":
		m.report(m.ctrl.ToggleHeader(pane))

	case "m", ">":
		added, err := m.ctrl.Move()
		if m.report(err) {
			m.flash = fmt.Sprintf("added %d", len(added))
		}

	case "d", "<":
		if m.focus != FocusChosen {
			break
		}
		if id, ok := m.chosen.CursorID(); ok {
			removed, err := m.ctrl.RemoveOne(id)
			if m.report(err) {
				m.flash = fmt.Sprintf("removed %d", len(removed))
			}
		}

	case "x":
		removed, err := m.ctrl.RemoveChecked()
		if m.report(err) {
			m.flash = fmt.Sprintf("removed %d", len(removed))
		}

	case "/":
		m.enterSearch(1)

	case "ctrl+l":
		m.category.SetValue("")
		m.text.SetValue("")
		m.report(m.ctrl.ClearSearch())

	case "ctrl+s":
		return m.save()

	case "esc", "q":
		if m.ctrl.Dirty() {
			m.overlay = NewConfirmOverlay(
				"Discard changes?",
				"The selection differs from the saved one.",
				"Keep editing", "Discard",
			)
			return m, nil
		}
		return m.cancel()
	}

	m.refresh()
	return m, nil
}

func (m TransferModel[T]) updateSearch(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "tab", "shift+tab":
		m.focusSearchField(1 - m.searchField)
		return m, nil
	case "enter":
		m.applySearch()
		m.leaveSearch()
		m.refresh()
		return m, nil
	case "esc":
		q := m.ctrl.Query()
		m.category.SetValue(q.Category)
		m.text.SetValue(q.Text)
		m.leaveSearch()
		m.refresh()
		return m, nil
	case "ctrl+s":
		m.applySearch()
		m.leaveSearch()
		return m.save()
	}

	var cmd tea.Cmd
	if m.searchField == 0 {
		m.category, cmd = m.category.Update(msg)
	} else {
		m.text, cmd = m.text.Update(msg)
	}
	return m, cmd
}

func (m *TransferModel[T]) enterSearch(field int) {
	m.returnFocus = m.focus
	m.setFocus(FocusSearch)
	m.focusSearchField(field)
}

func (m *TransferModel[T]) leaveSearch() {
	m.category.Blur()
	m.text.Blur()
	m.setFocus(m.returnFocus)
}

func (m *TransferModel[T]) focusSearchField(field int) {
	m.searchField = field
	if field == 0 {
		m.text.Blur()
		m.category.Focus()
	} else {
		m.category.Blur()
		m.text.Focus()
	}
}

func (m *TransferModel[T]) applySearch() {
	q := transfer.Query{
		Category: strings.TrimSpace(m.category.Value()),
		Text:     strings.TrimSpace(m.text.Value()),
	}
	if !m.report(m.ctrl.Search(q)) {
		return
	}
	if q.Text == "" || m.opts.Suggest == nil || m.visibleUnpinned() > 0 {
		return
	}
	if s, ok := m.opts.Suggest(q.Text, m.loaded); ok {
		m.flash = fmt.Sprintf("no matches for %q, did you mean %q?", q.Text, s)
	}
}

func (m TransferModel[T]) save() (tea.Model, tea.Cmd) {
	ids, err := m.ctrl.Save()
	if !m.report(err) {
		m.refresh()
		return m, nil
	}
	m.done = true
	m.committed = true
	m.committedIDs = ids
	return m, tea.Quit
}

func (m TransferModel[T]) cancel() (tea.Model, tea.Cmd) {
	_ = m.ctrl.Cancel()
	m.done = true
	return m, tea.Quit
}

// report turns a controller error into flash text. It returns true when
// err is nil.
func (m *TransferModel[T]) report(err error) bool {
	switch {
	case err == nil:
		return true
	case errors.Is(err, transfer.ErrNotEligible):
		m.flash = "already selected"
	case errors.Is(err, transfer.ErrLoading):
		m.flash = "still loading"
	default:
		m.flash = err.Error()
	}
	return false
}

func (m *TransferModel[T]) setFocus(f FocusZone) {
	m.focus = f
	m.pool.SetFocused(f == FocusPool)
	m.chosen.SetFocused(f == FocusChosen)
}

func (m TransferModel[T]) focusedPane() transfer.Pane {
	if m.focus == FocusChosen {
		return transfer.PaneChosen
	}
	return transfer.PanePool
}

func (m *TransferModel[T]) paneFor(f FocusZone) *Pane {
	if f == FocusChosen {
		return &m.chosen
	}
	return &m.pool
}

func (m TransferModel[T]) visibleUnpinned() int {
	n := 0
	for _, it := range m.ctrl.VisiblePool() {
		if !m.ctrl.IsPinned(it.ItemID()) {
			n++
		}
	}
	return n
}

// refresh rebuilds both panes and the status bar from the controller.
func (m *TransferModel[T]) refresh() {
	loading := m.ctrl.State() == transfer.StateLoading

	visible := m.ctrl.VisiblePool()
	poolRows := make([]PaneRow, 0, len(visible))
	for _, it := range visible {
		id := it.ItemID()
		row := PaneRow{
			ID:       id,
			Display:  m.opts.Label(it),
			Checked:  m.ctrl.IsChecked(transfer.PanePool, id),
			Disabled: m.ctrl.IsDisabled(id),
		}
		if m.ctrl.IsPinned(id) {
			row.Tag = "pinned"
		}
		poolRows = append(poolRows, row)
	}
	m.pool.SetRows(PaneHeader{
		Title:   "Available",
		Checked: m.ctrl.HeaderState(transfer.PanePool),
		Count:   fmt.Sprintf("%d/%d", len(visible), m.ctrl.PoolSize()),
	}, poolRows)

	chosen := m.ctrl.Chosen()
	chosenRows := make([]PaneRow, 0, len(chosen))
	for _, it := range chosen {
		id := it.ItemID()
		chosenRows = append(chosenRows, PaneRow{
			ID:      id,
			Display: m.opts.Label(it),
			Checked: m.ctrl.IsChecked(transfer.PaneChosen, id),
		})
	}
	m.chosen.SetRows(PaneHeader{
		Title:   "Selected",
		Checked: m.ctrl.HeaderState(transfer.PaneChosen),
		Count:   fmt.Sprintf("%d", len(chosen)),
	}, chosenRows)

	if m.focus != FocusSearch {
		m.setFocus(m.focus)
	}

	m.status.Update(SelectionSummary{
		Title:         m.opts.Title,
		PoolChecked:   m.ctrl.CheckedCount(transfer.PanePool),
		PoolSize:      m.ctrl.PoolSize(),
		Chosen:        len(chosen),
		ChosenChecked: m.ctrl.CheckedCount(transfer.PaneChosen),
		Dirty:         m.ctrl.Dirty(),
		Loading:       loading,
	})
}

func (m *TransferModel[T]) layout() {
	paneWidth := max((m.width-4)/2, 20)
	paneHeight := max(m.height-chromeHeight, 3)
	for _, p := range []*Pane{&m.pool, &m.chosen} {
		p.SetWidth(paneWidth)
		p.SetHeight(paneHeight)
	}
	m.status.SetWidth(m.width)
}

func (m TransferModel[T]) View() string {
	if m.done {
		return ""
	}

	var b strings.Builder
	b.WriteString(TitleStyle.Render(m.opts.Title))
	b.WriteString("\n")
	b.WriteString(m.searchBar())
	b.WriteString("\n\n")

	var left, right string
	switch {
	case m.loadErr != nil:
		left = ErrorStyle.Render("load failed: "+m.loadErr.Error()) + "\n" + DimStyle.Render("r: retry  esc: cancel")
		right = ""
	case m.ctrl.State() == transfer.StateLoading:
		left = DimStyle.Render("Loading…")
		right = ""
	default:
		left = m.pool.View()
		right = m.chosen.View()
	}
	leftStyle, rightStyle := BlurredPaneStyle, BlurredPaneStyle
	if m.focus == FocusPool {
		leftStyle = FocusedPaneStyle
	} else if m.focus == FocusChosen {
		rightStyle = FocusedPaneStyle
	}
	paneWidth := max((m.width-4)/2, 20)
	paneHeight := max(m.height-chromeHeight, 3)
	b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top,
		leftStyle.Width(paneWidth).Height(paneHeight).Render(left),
		rightStyle.Width(paneWidth).Height(paneHeight).Render(right),
	))
	b.WriteString("\n")
	b.WriteString(FlashStyle.Render(m.flash))
	b.WriteString("\n")
	b.WriteString(m.status.View())

	frame := b.String()
	if m.overlay.Active() {
		return Composite(frame, m.overlay.View(), m.width, m.height)
	}
	return frame
}

func (m TransferModel[T]) searchBar() string {
	return SearchLabelStyle.Render(m.opts.CategoryLabel+": ") + m.category.View() +
		"  " + SearchLabelStyle.Render("Search: ") + m.text.View()
}
