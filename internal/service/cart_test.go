package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Skotchmaster/product_catalog/internal/apperr"
	"github.com/Skotchmaster/product_catalog/internal/events"
	"github.com/Skotchmaster/product_catalog/internal/repo"
	"github.com/Skotchmaster/product_catalog/internal/testutil"
	"github.com/Skotchmaster/product_catalog/internal/transport"
)

func newCartService(t *testing.T) (*CartService, *recordingPublisher, uint, uint, uint) {
	t.Helper()

	db := testutil.NewDB(t)
	owner := testutil.CreateUser(t, db, "owner@example.com", false)
	other := testutil.CreateUser(t, db, "other@example.com", false)
	p := testutil.CreateProduct(t, db, "thing")

	pub := &recordingPublisher{}
	return &CartService{Repo: repo.New(db), Events: pub}, pub, owner.ID, other.ID, p.ID
}

func TestCartService_AddTwiceMerges(t *testing.T) {
	t.Parallel()

	svc, pub, owner, _, productID := newCartService(t)
	ctx := context.Background()

	item, created, err := svc.Add(ctx, owner, transport.AddToCartRequest{ProductID: productID, Quantity: 2})
	require.NoError(t, err)
	assert.True(t, created)

	again, created, err := svc.Add(ctx, owner, transport.AddToCartRequest{ProductID: productID, Quantity: 3})
	require.NoError(t, err)
	assert.False(t, created)
	assert.Equal(t, item.ID, again.ID)
	assert.Equal(t, 5, again.Quantity)

	items, err := svc.Get(ctx, owner)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "thing", items[0].Product.Name)
	assert.Equal(t, []string{events.CartItemAdded, events.CartItemAdded}, pub.types())
}

func TestCartService_AddMissingProduct(t *testing.T) {
	t.Parallel()

	svc, _, owner, _, _ := newCartService(t)

	_, _, err := svc.Add(context.Background(), owner, transport.AddToCartRequest{ProductID: 999, Quantity: 1})
	require.ErrorIs(t, err, apperr.ErrNotFound)
	_, msg := apperr.Public(err)
	assert.Equal(t, "Product not found", msg)
}

func TestCartService_ForeignItem(t *testing.T) {
	t.Parallel()

	svc, _, owner, other, productID := newCartService(t)
	ctx := context.Background()

	item, _, err := svc.Add(ctx, owner, transport.AddToCartRequest{ProductID: productID, Quantity: 1})
	require.NoError(t, err)

	err = svc.Update(ctx, other, item.ID, 4)
	require.ErrorIs(t, err, apperr.ErrNotFound)
	_, msg := apperr.Public(err)
	assert.Equal(t, "Cart item not found", msg)

	require.ErrorIs(t, svc.Remove(ctx, other, item.ID), apperr.ErrNotFound)

	items, err := svc.Get(ctx, owner)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, 1, items[0].Quantity)
}

func TestCartService_UpdateRemoveClearSummary(t *testing.T) {
	t.Parallel()

	svc, pub, owner, _, productID := newCartService(t)
	ctx := context.Background()

	item, _, err := svc.Add(ctx, owner, transport.AddToCartRequest{ProductID: productID, Quantity: 1})
	require.NoError(t, err)

	require.ErrorIs(t, svc.Update(ctx, owner, item.ID, 0), apperr.ErrValidation)
	require.NoError(t, svc.Update(ctx, owner, item.ID, 3))

	sum, err := svc.Summary(ctx, owner)
	require.NoError(t, err)
	assert.Equal(t, int64(1), sum.TotalItems)
	assert.Equal(t, int64(3), sum.TotalQuantity)
	assert.Equal(t, "29.97", sum.TotalPrice.String())

	require.NoError(t, svc.Remove(ctx, owner, item.ID))
	require.NoError(t, svc.Clear(ctx, owner))

	sum, err = svc.Summary(ctx, owner)
	require.NoError(t, err)
	assert.Zero(t, sum.TotalItems)
	assert.True(t, sum.TotalPrice.IsZero())

	assert.Equal(t, []string{
		events.CartItemAdded, events.CartItemUpdated, events.CartItemRemoved, events.CartCleared,
	}, pub.types())
}
