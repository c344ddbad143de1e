package tui

import "github.com/ruminaider/rosterpick/internal/catalog"

// ActionType distinguishes how a menu action is executed.
type ActionType int

const (
	ActionNone ActionType = iota // category (has children, no action)
	ActionCLI                    // exit menu, run CLI command, re-enter menu
	ActionTUI                    // exit menu, launch sub-TUI, re-enter menu
)

// Action ID constants. Every ID must have a case in the CLI dispatcher.
const (
	ActionPick  = "pick"
	ActionShow  = "show"
	ActionReset = "reset"
)

// AllActionIDs returns all known action ID constants. Used by tests to verify
// dispatch coverage.
func AllActionIDs() []string {
	return []string{ActionPick, ActionShow, ActionReset}
}

// MenuAction is the result of selecting a leaf menu item.
type MenuAction struct {
	ID      string // one of the Action* constants above
	Type    ActionType
	Variant catalog.Variant
}

// menuItem represents one entry in the menu tree.
type menuItem struct {
	label    string
	desc     string     // short description shown to the right
	children []menuItem // non-nil = category, nil = leaf action
	action   MenuAction // only for leaf items
}

// isCategory returns true if this item has children (is a submenu).
func (m menuItem) isCategory() bool {
	return len(m.children) > 0
}
