package db

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Skotchmaster/product_catalog/internal/models"
)

func TestOpen_EmptyDSN(t *testing.T) {
	t.Parallel()

	_, err := Open(context.Background(), DriverPgx, "")
	require.Error(t, err)
}

func TestOpen_UnknownDriver(t *testing.T) {
	t.Parallel()

	_, err := Open(context.Background(), "mysql", "user:pw@tcp(localhost)/shop")
	require.ErrorContains(t, err, "unknown DB_DRIVER")
}

func TestOpen_SQLiteFileAndMigrate(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "catalog.db")

	gdb, err := Open(ctx, DriverPgx, "sqlite://"+path)
	require.NoError(t, err)
	t.Cleanup(func() { _ = Close(gdb) })

	require.NoError(t, Migrate(ctx, gdb))
	require.NoError(t, Migrate(ctx, gdb), "migration must be idempotent")

	for _, table := range []string{"users", "products", "cart_items", "categories"} {
		assert.True(t, gdb.Migrator().HasTable(table), table)
	}

	u := models.User{Email: "a@x.com", PasswordHash: "h"}
	require.NoError(t, gdb.Create(&u).Error)
	assert.NotZero(t, u.ID)
}

func TestOpenSQLite_EnforcesForeignKeys(t *testing.T) {
	t.Parallel()

	gdb, err := OpenSQLite(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = Close(gdb) })
	require.NoError(t, Migrate(context.Background(), gdb))

	err = gdb.Create(&models.CartItem{UserID: 99, ProductID: 99, Quantity: 1}).Error
	require.Error(t, err)
}
