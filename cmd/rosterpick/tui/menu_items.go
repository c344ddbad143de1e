package tui

import (
	"fmt"

	"github.com/ruminaider/rosterpick/internal/catalog"
	"github.com/ruminaider/rosterpick/internal/commands"
)

// BuildMenuItems returns the launcher tree: one edit entry per variant,
// then show and reset submenus.
func BuildMenuItems(state commands.MenuState) []menuItem {
	items := make([]menuItem, 0, len(catalog.AllVariants)+2)
	for _, v := range catalog.AllVariants {
		items = append(items, menuItem{
			label:  v.Title(),
			desc:   savedDesc(state, v),
			action: MenuAction{ID: ActionPick, Type: ActionTUI, Variant: v},
		})
	}
	items = append(items,
		buildVariantCategory("Show saved", ActionShow, ActionCLI),
		buildVariantCategory("Reset", ActionReset, ActionCLI),
	)
	return items
}

func buildVariantCategory(label, id string, typ ActionType) menuItem {
	children := make([]menuItem, 0, len(catalog.AllVariants))
	for _, v := range catalog.AllVariants {
		children = append(children, menuItem{
			label:  v.Title(),
			action: MenuAction{ID: id, Type: typ, Variant: v},
		})
	}
	return menuItem{label: label, children: children}
}

func savedDesc(state commands.MenuState, v catalog.Variant) string {
	if state.Unavailable {
		return ""
	}
	n := state.Counts[v]
	if n == 0 {
		return "none saved"
	}
	return fmt.Sprintf("%d saved", n)
}
