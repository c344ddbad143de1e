package commands

import (
	"context"
	"testing"

	"github.com/ruminaider/rosterpick/internal/catalog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestShowRows(t *testing.T) {
	ctx := context.Background()
	s := newStore(t)
	cat := catalog.Default()
	require.NoError(t, s.Save(ctx, catalog.VariantUsers, "me", []string{"u-ken", "me", "u-gone"}))

	rows, err := ShowRows(ctx, s, cat, catalog.VariantUsers, "me", "Maria")
	require.NoError(t, err)
	require.Len(t, rows, 3)

	assert.Equal(t, ShowRow{Position: 1, ID: "u-ken", Label: cat.Labels(catalog.VariantUsers)["u-ken"]}, rows[0])
	assert.Equal(t, "Maria (you)", rows[1].Label)
	assert.False(t, rows[1].Missing)
	assert.True(t, rows[2].Missing)
	assert.Empty(t, rows[2].Label)
	assert.Equal(t, 3, rows[2].Position)
}

func TestShowRows_Favorites(t *testing.T) {
	ctx := context.Background()
	s := newStore(t)
	require.NoError(t, s.Save(ctx, catalog.VariantFavorites, "me", []string{"Planning/Review"}))

	rows, err := ShowRows(ctx, s, catalog.Default(), catalog.VariantFavorites, "me", "")
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "Planning / Review", rows[0].Label)
}

func TestShowRows_Empty(t *testing.T) {
	rows, err := ShowRows(context.Background(), newStore(t), catalog.Default(), catalog.VariantResources, "me", "")
	require.NoError(t, err)
	assert.Empty(t, rows)
}
