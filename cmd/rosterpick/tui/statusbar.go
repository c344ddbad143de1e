package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/x/ansi"
)

// StatusBar renders the bottom row with selection counts and keyboard shortcuts.
type StatusBar struct {
	summary SelectionSummary
	width   int
}

// NewStatusBar creates a status bar with default values.
func NewStatusBar() StatusBar {
	return StatusBar{}
}

// SetWidth sets the available width for rendering.
func (s *StatusBar) SetWidth(w int) {
	s.width = w
}

// Update refreshes the status bar with a new selection summary.
func (s *StatusBar) Update(summary SelectionSummary) {
	s.summary = summary
}

// View renders the status bar.
func (s StatusBar) View() string {
	var leftPart string
	if s.summary.Loading {
		leftPart = fmt.Sprintf("%s · loading", s.summary.Title)
	} else {
		leftPart = fmt.Sprintf("%s · %d selected · %d/%d checked",
			s.summary.Title, s.summary.Chosen,
			s.summary.PoolChecked+s.summary.ChosenChecked, s.summary.PoolSize)
		if s.summary.Dirty {
			leftPart += " " + StatusBarDirtyStyle.Render("· unsaved")
		}
	}

	shortcuts := []string{
		StatusBarKeyStyle.Render("Ctrl+S") + ": save",
		StatusBarKeyStyle.Render("Tab") + ": pane",
		StatusBarKeyStyle.Render("/") + ": search",
		StatusBarKeyStyle.Render("Esc") + ": cancel",
	}
	rightPart := strings.Join(shortcuts, " · ")

	leftWidth := ansi.StringWidth(leftPart)
	rightWidth := ansi.StringWidth(rightPart)
	availableWidth := s.width - 2 // account for StatusBarStyle padding
	gap := availableWidth - leftWidth - rightWidth
	if gap < 1 {
		gap = 1
	}

	content := leftPart + strings.Repeat(" ", gap) + rightPart

	return StatusBarStyle.Width(s.width).Render(content)
}
