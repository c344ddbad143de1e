package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// PaneRow is one item rendered in a pane.
type PaneRow struct {
	ID       string
	Display  string
	Checked  bool
	Disabled bool   // already chosen; shown but not checkable
	Tag      string // e.g. "pinned"
}

// PaneHeader is the "select all" row at the top of a pane.
type PaneHeader struct {
	Title   string
	Checked bool
	Count   string // e.g. "2/10"
}

// Pane is a scrolling checkbox list. Row 0 is the header; rows 1..n are
// items. It only renders and tracks the cursor; checked state comes from
// the controller on every refresh.
type Pane struct {
	header  PaneHeader
	rows    []PaneRow
	empty   string // shown when there are no rows
	cursor  int    // 0 = header
	height  int    // viewport height (number of visible lines)
	width   int
	offset  int // scroll offset for long lists
	focused bool
}

// NewPane creates an empty pane. empty is the placeholder shown with no rows.
func NewPane(empty string) Pane {
	return Pane{
		empty:  empty,
		height: 10,
	}
}

// SetRows replaces the rows. The cursor stays on the same id when it is
// still present, otherwise it is clamped to the list.
func (p *Pane) SetRows(header PaneHeader, rows []PaneRow) {
	current, onRow := p.CursorID()
	p.header = header
	p.rows = rows
	if onRow {
		for i, r := range rows {
			if r.ID == current {
				p.cursor = i + 1
				p.clampScroll()
				return
			}
		}
	}
	if p.cursor > len(p.rows) {
		p.cursor = len(p.rows)
	}
	p.clampScroll()
}

// SetHeight sets the viewport height.
func (p *Pane) SetHeight(h int) {
	p.height = h
	p.clampScroll()
}

// SetWidth sets the available width.
func (p *Pane) SetWidth(w int) {
	p.width = w
}

// SetFocused sets whether this pane currently has keyboard focus.
func (p *Pane) SetFocused(f bool) {
	p.focused = f
}

// Cursor returns the cursor index; 0 is the header row.
func (p Pane) Cursor() int { return p.cursor }

// OnHeader reports whether the cursor is on the header row.
func (p Pane) OnHeader() bool { return p.cursor == 0 }

// CursorID returns the id of the row under the cursor.
func (p Pane) CursorID() (string, bool) {
	if p.cursor < 1 || p.cursor > len(p.rows) {
		return "", false
	}
	return p.rows[p.cursor-1].ID, true
}

// Rows returns the rendered rows.
func (p Pane) Rows() []PaneRow { return p.rows }

// MoveCursor advances the cursor by dir, stopping at either end.
func (p *Pane) MoveCursor(dir int) {
	next := p.cursor + dir
	if next < 0 || next > len(p.rows) {
		return
	}
	p.cursor = next
	p.clampScroll()
}

// View renders the header and the visible rows.
func (p Pane) View() string {
	var b strings.Builder

	b.WriteString(p.renderHeader())
	b.WriteString("\n")

	if len(p.rows) == 0 {
		b.WriteString("  " + DimStyle.Render(p.empty))
		return p.frame(b.String())
	}

	// The header takes one line; scroll indicators take one each.
	visibleItems := p.height - 1
	hasAbove := p.offset > 0
	hasBelow := p.offset+visibleItems < len(p.rows)
	if hasAbove {
		visibleItems--
	}
	if hasBelow {
		visibleItems--
	}
	if visibleItems < 1 {
		visibleItems = 1
	}

	if hasAbove {
		b.WriteString(DimStyle.Render("  ↑ more") + "\n")
	}

	end := min(p.offset+visibleItems, len(p.rows))
	for i := p.offset; i < end; i++ {
		b.WriteString(p.renderRow(i+1, p.rows[i]) + "\n")
	}

	if end < len(p.rows) {
		b.WriteString(DimStyle.Render("  ↓ more") + "\n")
	}

	return p.frame(strings.TrimRight(b.String(), "\n"))
}

func (p Pane) frame(content string) string {
	style := ContentPaneStyle
	if p.width > 0 {
		style = style.Width(p.width)
	}
	return style.Render(content)
}

func (p Pane) renderHeader() string {
	cursor := "  "
	if p.focused && p.cursor == 0 {
		cursor = "> "
	}
	box := "[ ]"
	if p.header.Checked {
		box = "[x]"
	}
	line := fmt.Sprintf("%s %s", box, p.header.Title)
	if p.header.Count != "" {
		line += " (" + p.header.Count + ")"
	}
	if p.focused {
		return cursor + HeaderStyle.Render(line)
	}
	return cursor + DimStyle.Render(line)
}

func (p Pane) renderRow(index int, it PaneRow) string {
	cursor := "  "
	if p.focused && index == p.cursor {
		cursor = "> "
	}

	var checkbox string
	switch {
	case it.Disabled:
		checkbox = DimStyle.Render("[-]")
	case !p.focused && it.Checked:
		checkbox = DimStyle.Render("[x]")
	case !p.focused:
		checkbox = DimStyle.Render("[ ]")
	case it.Checked:
		checkbox = SelectedStyle.Render("[x]")
	default:
		checkbox = UnselectedStyle.Render("[ ]")
	}

	var display string
	switch {
	case it.Disabled || !p.focused:
		display = DimStyle.Render(it.Display)
	case index == p.cursor:
		display = lipgloss.NewStyle().Bold(true).Foreground(colorText).Render(it.Display)
	default:
		display = it.Display
	}

	tag := ""
	if it.Tag != "" {
		if p.focused {
			tag = "  " + PinnedTagStyle.Render(it.Tag)
		} else {
			tag = "  " + DimStyle.Render(it.Tag)
		}
	}

	return cursor + checkbox + " " + display + tag
}

// clampScroll keeps the cursor row inside the visible window. The header
// is always drawn, so only item rows scroll.
func (p *Pane) clampScroll() {
	if p.height <= 0 {
		return
	}
	effectiveHeight := p.height - 1
	if len(p.rows) > effectiveHeight {
		effectiveHeight -= 2
	}
	if effectiveHeight < 1 {
		effectiveHeight = 1
	}

	row := p.cursor - 1
	if row < 0 {
		row = 0
	}
	if row < p.offset {
		p.offset = row
	}
	if row >= p.offset+effectiveHeight {
		p.offset = row - effectiveHeight + 1
	}
	maxOffset := len(p.rows) - effectiveHeight
	if maxOffset < 0 {
		maxOffset = 0
	}
	if p.offset > maxOffset {
		p.offset = maxOffset
	}
}
