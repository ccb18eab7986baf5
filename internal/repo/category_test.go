package repo

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/Skotchmaster/product_catalog/internal/models"
	"github.com/Skotchmaster/product_catalog/internal/testutil"
)

func TestCategories(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	r := New(testutil.NewDB(t))

	added, err := r.EnsureCategories(ctx, []string{"Tools", "Icons"})
	require.NoError(t, err)
	assert.Equal(t, int64(2), added)

	added, err = r.EnsureCategories(ctx, []string{"Tools", "Fonts"})
	require.NoError(t, err)
	assert.Equal(t, int64(1), added)

	err = r.CreateCategory(ctx, &models.Category{Name: "Icons"})
	assert.ErrorIs(t, err, ErrDuplicate)

	cats, err := r.ListCategories(ctx)
	require.NoError(t, err)
	require.Len(t, cats, 3)
	assert.Equal(t, "Fonts", cats[0].Name)

	require.NoError(t, r.DeleteCategory(ctx, cats[0].ID))
	assert.ErrorIs(t, r.DeleteCategory(ctx, cats[0].ID), gorm.ErrRecordNotFound)
}
