package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/ruminaider/rosterpick/internal/commands"
)

type menuKeys struct {
	Up, Down, First, Last key.Binding
	Open, Back, Quit      key.Binding
}

var launcherKeys = menuKeys{
	Up:    key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
	Down:  key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
	First: key.NewBinding(key.WithKeys("home", "g"), key.WithHelp("g", "first")),
	Last:  key.NewBinding(key.WithKeys("end", "G"), key.WithHelp("G", "last")),
	Open:  key.NewBinding(key.WithKeys("enter", "l", "right"), key.WithHelp("enter", "open")),
	Back:  key.NewBinding(key.WithKeys("esc", "h", "left"), key.WithHelp("esc", "back")),
	Quit:  key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
}

// MenuModel is the launcher: variants to edit, then show and reset
// submenus. Choosing a leaf sets Selected and quits.
type MenuModel struct {
	items []menuItem
	// path holds the index of each opened category, outermost first.
	path   []int
	cursor int
	state  commands.MenuState
	width  int

	Version  string
	Quitting bool
	Selected MenuAction
}

// NewMenuModel creates a launcher for the detected state.
func NewMenuModel(state commands.MenuState) MenuModel {
	return MenuModel{items: BuildMenuItems(state), state: state}
}

func (m MenuModel) Init() tea.Cmd { return nil }

// level returns the items shown at the current depth and the breadcrumb
// leading to them.
func (m MenuModel) level() ([]menuItem, []string) {
	items := m.items
	crumbs := make([]string, 0, len(m.path))
	for _, i := range m.path {
		crumbs = append(crumbs, items[i].label)
		items = items[i].children
	}
	return items, crumbs
}

func (m MenuModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
	case tea.KeyMsg:
		return m.handleKey(msg)
	}
	return m, nil
}

func (m MenuModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	items, _ := m.level()
	switch {
	case key.Matches(msg, launcherKeys.Quit):
		m.Quitting = true
		return m, tea.Quit
	case key.Matches(msg, launcherKeys.Up):
		m.cursor = max(m.cursor-1, 0)
	case key.Matches(msg, launcherKeys.Down):
		m.cursor = min(m.cursor+1, len(items)-1)
	case key.Matches(msg, launcherKeys.First):
		m.cursor = 0
	case key.Matches(msg, launcherKeys.Last):
		m.cursor = len(items) - 1
	case key.Matches(msg, launcherKeys.Open):
		if m.cursor >= len(items) {
			break
		}
		it := items[m.cursor]
		if !it.isCategory() {
			m.Selected = it.action
			return m, tea.Quit
		}
		m.path = append(m.path, m.cursor)
		m.cursor = 0
	case key.Matches(msg, launcherKeys.Back):
		if len(m.path) == 0 {
			if msg.String() != "esc" {
				break
			}
			m.Quitting = true
			return m, tea.Quit
		}
		m.cursor = m.path[len(m.path)-1]
		m.path = m.path[:len(m.path)-1]
	}
	return m, nil
}

func (m MenuModel) footer() string {
	bindings := []key.Binding{launcherKeys.Up, launcherKeys.Down, launcherKeys.Open}
	if len(m.path) > 0 {
		bindings = append(bindings, launcherKeys.Back)
	}
	bindings = append(bindings, launcherKeys.Quit)

	parts := make([]string, 0, len(bindings))
	for _, b := range bindings {
		h := b.Help()
		parts = append(parts, StatusBarKeyStyle.Render(h.Key)+" "+h.Desc)
	}
	return DimStyle.Render(strings.Join(parts, "  "))
}

func (m MenuModel) View() string {
	if m.Quitting {
		return ""
	}
	items, crumbs := m.level()

	var b strings.Builder
	b.WriteString(TitleStyle.Render("rosterpick"))
	switch {
	case len(crumbs) > 0:
		b.WriteString(DimStyle.Render(" › " + strings.Join(crumbs, " › ")))
	case m.Version != "":
		b.WriteString(DimStyle.Render(" v" + m.Version))
	}
	b.WriteString("\n")
	if m.state.Owner != "" {
		fmt.Fprintf(&b, "%s\n", DimStyle.Render("signed in as "+m.state.Owner))
	}
	if m.state.Unavailable {
		fmt.Fprintf(&b, "%s\n", ErrorStyle.Render("saved selections could not be read"))
	}
	b.WriteString("\n")

	labelWidth := 0
	for _, it := range items {
		labelWidth = max(labelWidth, lipgloss.Width(it.label))
	}
	for i, it := range items {
		marker, style := "  ", UnselectedStyle
		if i == m.cursor {
			marker, style = "▸ ", SelectedStyle
		}
		label := it.label + strings.Repeat(" ", labelWidth-lipgloss.Width(it.label))
		line := marker + style.Render(label)
		if it.isCategory() {
			line += DimStyle.Render("  …")
		} else if it.desc != "" {
			line += "  " + DimStyle.Render(it.desc)
		}
		b.WriteString(line + "\n")
	}
	b.WriteString("\n" + m.footer() + "\n")

	if m.width <= 0 {
		return b.String()
	}
	return FocusedPaneStyle.Padding(1, 2).Width(min(m.width-2, 56)).Render(b.String())
}
