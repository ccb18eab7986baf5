package repo

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/Skotchmaster/product_catalog/internal/models"
	"github.com/Skotchmaster/product_catalog/internal/testutil"
)

func TestCreateUser_Duplicate(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	r := New(testutil.NewDB(t))

	require.NoError(t, r.CreateUser(ctx, &models.User{Email: "dup@example.com", PasswordHash: "h"}))
	err := r.CreateUser(ctx, &models.User{Email: "dup@example.com", PasswordHash: "h"})
	assert.ErrorIs(t, err, ErrDuplicate)
}

func TestGetUser(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	db := testutil.NewDB(t)
	r := New(db)
	u := testutil.CreateUser(t, db, "who@example.com", true)

	byEmail, err := r.GetUserByEmail(ctx, "who@example.com")
	require.NoError(t, err)
	assert.Equal(t, u.ID, byEmail.ID)

	byID, err := r.GetUserByID(ctx, u.ID)
	require.NoError(t, err)
	assert.True(t, byID.IsAdmin)

	_, err = r.GetUserByID(ctx, 9999)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestListUsers_NewestFirst(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	db := testutil.NewDB(t)
	r := New(db)
	testutil.CreateUser(t, db, "first@example.com", false)
	testutil.CreateUser(t, db, "second@example.com", false)

	users, err := r.ListUsers(ctx)
	require.NoError(t, err)
	require.Len(t, users, 2)
	assert.Equal(t, "second@example.com", users[0].Email)
}

func TestCounts(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	db := testutil.NewDB(t)
	r := New(db)

	pc, err := r.ProductCounts(ctx, time.Now().AddDate(0, 0, -30))
	require.NoError(t, err)
	assert.Zero(t, pc.Total)
	assert.Zero(t, pc.AvgRating)

	testutil.CreateUser(t, db, "admin@example.com", true)
	testutil.CreateUser(t, db, "user@example.com", false)
	old := testutil.CreateUser(t, db, "old@example.com", false)
	require.NoError(t, db.Model(&old).UpdateColumn("created_at", time.Now().UTC().AddDate(0, -3, 0)).Error)

	testutil.CreateProduct(t, db, "a", func(p *models.Product) { p.Rating = 4; p.IsFeatured = true })
	testutil.CreateProduct(t, db, "b", func(p *models.Product) { p.Rating = 5 })

	since := time.Now().AddDate(0, 0, -30)
	uc, err := r.UserCounts(ctx, since)
	require.NoError(t, err)
	assert.Equal(t, UserCounts{Total: 3, Admins: 1, Recent: 2}, uc)

	pc, err = r.ProductCounts(ctx, since)
	require.NoError(t, err)
	assert.Equal(t, int64(2), pc.Total)
	assert.Equal(t, int64(1), pc.Featured)
	assert.Equal(t, int64(2), pc.Recent)
	assert.InDelta(t, 4.5, pc.AvgRating, 0.001)
}
