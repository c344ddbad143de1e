package commands

import (
	"context"

	"github.com/ruminaider/rosterpick/internal/catalog"
	"github.com/ruminaider/rosterpick/internal/store"
)

// ShowRow is one saved id resolved against the catalog.
type ShowRow struct {
	Position int    `json:"position"`
	ID       string `json:"id"`
	Label    string `json:"label"`
	// Missing is set when the id no longer exists in the catalog.
	Missing bool `json:"missing,omitempty"`
}

// ShowRows resolves the saved selection to display rows in saved order.
// The owner's own id resolves through the pinned self record for the users
// variant.
func ShowRows(ctx context.Context, s store.Store, cat *catalog.Catalog, v catalog.Variant, owner, ownerName string) ([]ShowRow, error) {
	ids, err := InitialSelection(ctx, s, v, owner)
	if err != nil {
		return nil, err
	}
	labels := cat.Labels(v)
	if v == catalog.VariantUsers {
		self := catalog.Self(owner, ownerName)
		labels[self.ItemID()] = self.Field(catalog.FieldLabel)
	}

	rows := make([]ShowRow, 0, len(ids))
	for i, id := range ids {
		label, ok := labels[id]
		rows = append(rows, ShowRow{Position: i + 1, ID: id, Label: label, Missing: !ok})
	}
	return rows, nil
}
