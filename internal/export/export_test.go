package export

import (
	"bytes"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
	"gorm.io/datatypes"

	"github.com/Skotchmaster/product_catalog/internal/models"
)

func TestWriteProducts(t *testing.T) {
	t.Parallel()

	products := []models.Product{
		{
			ID:            1,
			Name:          "Icon Set",
			License:       "MIT",
			Category:      "Icons",
			Rating:        5,
			Price:         decimal.RequireFromString("19.99"),
			IsFeatured:    true,
			GalleryImages: datatypes.JSONSlice[string]{"https://x/1.png", "https://x/2.png"},
			CreatedAt:     time.Date(2024, 3, 1, 8, 30, 0, 0, time.UTC),
		},
		{ID: 2, Name: "Font", Category: "Fonts", Rating: 3},
	}

	var buf bytes.Buffer
	require.NoError(t, WriteProducts(&buf, products))

	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	t.Cleanup(func() { _ = f.Close() })

	rows, err := f.GetRows(ProductsSheet)
	require.NoError(t, err)
	require.Len(t, rows, 3)

	assert.Equal(t, "ID", rows[0][0])
	assert.Equal(t, "Icon Set", rows[1][1])
	assert.Equal(t, "19.99", rows[1][5])
	assert.Equal(t, "TRUE", rows[1][6])
	assert.Equal(t, "https://x/1.png\nhttps://x/2.png", rows[1][14])
	assert.Equal(t, "2024-03-01 08:30:00", rows[1][15])
	assert.Equal(t, "Font", rows[2][1])
}

func TestWriteProducts_Empty(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	require.NoError(t, WriteProducts(&buf, nil))

	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	t.Cleanup(func() { _ = f.Close() })

	rows, err := f.GetRows(ProductsSheet)
	require.NoError(t, err)
	require.Len(t, rows, 1)
}
