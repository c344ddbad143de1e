package catalog

import (
	"fmt"
	"strings"
)

// Variant names one instantiation of the transfer control.
type Variant string

const (
	VariantFavorites Variant = "favorites" // favorite subcategory/task pairs
	VariantUsers     Variant = "users"     // permitted users
	VariantResources Variant = "resources" // assigned resources
)

// AllVariants lists every variant in display order.
var AllVariants = []Variant{VariantFavorites, VariantUsers, VariantResources}

// ParseVariant accepts a variant name or one of its aliases.
func ParseVariant(s string) (Variant, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "favorites", "favourites", "tasks", "favorite-tasks":
		return VariantFavorites, nil
	case "users", "permitted", "permitted-users":
		return VariantUsers, nil
	case "resources", "assigned", "assigned-resources":
		return VariantResources, nil
	default:
		return "", fmt.Errorf("unknown variant %q (want favorites, users or resources)", s)
	}
}

// Title returns the human-readable heading for a variant.
func (v Variant) Title() string {
	switch v {
	case VariantFavorites:
		return "Favorite tasks"
	case VariantUsers:
		return "Permitted users"
	case VariantResources:
		return "Assigned resources"
	default:
		return string(v)
	}
}

// CategoryLabel names the category search field for a variant.
func (v Variant) CategoryLabel() string {
	switch v {
	case VariantFavorites:
		return "Subcategory"
	case VariantUsers:
		return "Role"
	case VariantResources:
		return "Kind"
	default:
		return "Category"
	}
}
