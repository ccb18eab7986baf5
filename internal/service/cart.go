package service

import (
	"context"
	"fmt"

	"github.com/Skotchmaster/product_catalog/internal/apperr"
	"github.com/Skotchmaster/product_catalog/internal/events"
	"github.com/Skotchmaster/product_catalog/internal/models"
	"github.com/Skotchmaster/product_catalog/internal/repo"
	"github.com/Skotchmaster/product_catalog/internal/transport"
)

const msgCartItemNotFound = "Cart item not found"

type CartStore interface {
	GetProduct(ctx context.Context, id uint) (*models.Product, error)
	GetCart(ctx context.Context, userID uint) ([]models.CartItem, error)
	AddToCart(ctx context.Context, userID, productID uint, quantity int) (*models.CartItem, bool, error)
	UpdateCartItem(ctx context.Context, userID, itemID uint, quantity int) (*models.CartItem, error)
	RemoveCartItem(ctx context.Context, userID, itemID uint) error
	ClearCart(ctx context.Context, userID uint) (int64, error)
	CartSummary(ctx context.Context, userID uint) (transport.CartSummary, error)
}

var _ CartStore = (*repo.GormRepo)(nil)

type CartService struct {
	Repo   CartStore
	Events events.Publisher
}

type cartPayload struct {
	UserID     uint `json:"user_id"`
	CartItemID uint `json:"cart_item_id,omitempty"`
	ProductID  uint `json:"product_id,omitempty"`
	Quantity   int  `json:"quantity,omitempty"`
}

func (s *CartService) Get(ctx context.Context, userID uint) ([]transport.CartItemResponse, error) {
	items, err := s.Repo.GetCart(ctx, userID)
	if err != nil {
		return nil, storeError(ctx, "get_cart", err, "")
	}
	out := make([]transport.CartItemResponse, 0, len(items))
	for i := range items {
		out = append(out, transport.NewCartItemResponse(&items[i]))
	}
	return out, nil
}

// Add puts quantity units of the product into the cart. created is false when
// an existing row was incremented.
func (s *CartService) Add(ctx context.Context, userID uint, req transport.AddToCartRequest) (*models.CartItem, bool, error) {
	if req.Quantity < 1 {
		return nil, false, apperr.Validation(`"quantity" must be greater than or equal to 1`)
	}
	if _, err := s.Repo.GetProduct(ctx, req.ProductID); err != nil {
		return nil, false, storeError(ctx, "get_product", err, msgProductNotFound)
	}

	item, created, err := s.Repo.AddToCart(ctx, userID, req.ProductID, req.Quantity)
	if err != nil {
		return nil, false, storeError(ctx, "add_to_cart", err, "")
	}

	events.Emit(ctx, s.Events, events.TopicCart, fmt.Sprint(userID), events.CartItemAdded, cartPayload{
		UserID: userID, CartItemID: item.ID, ProductID: item.ProductID, Quantity: item.Quantity,
	})
	return item, created, nil
}

func (s *CartService) Update(ctx context.Context, userID, itemID uint, quantity int) error {
	if quantity < 1 {
		return apperr.Validation(`"quantity" must be greater than or equal to 1`)
	}
	item, err := s.Repo.UpdateCartItem(ctx, userID, itemID, quantity)
	if err != nil {
		return storeError(ctx, "update_cart_item", err, msgCartItemNotFound)
	}

	events.Emit(ctx, s.Events, events.TopicCart, fmt.Sprint(userID), events.CartItemUpdated, cartPayload{
		UserID: userID, CartItemID: item.ID, ProductID: item.ProductID, Quantity: item.Quantity,
	})
	return nil
}

func (s *CartService) Remove(ctx context.Context, userID, itemID uint) error {
	if err := s.Repo.RemoveCartItem(ctx, userID, itemID); err != nil {
		return storeError(ctx, "remove_cart_item", err, msgCartItemNotFound)
	}
	events.Emit(ctx, s.Events, events.TopicCart, fmt.Sprint(userID), events.CartItemRemoved, cartPayload{
		UserID: userID, CartItemID: itemID,
	})
	return nil
}

func (s *CartService) Clear(ctx context.Context, userID uint) error {
	if _, err := s.Repo.ClearCart(ctx, userID); err != nil {
		return storeError(ctx, "clear_cart", err, "")
	}
	events.Emit(ctx, s.Events, events.TopicCart, fmt.Sprint(userID), events.CartCleared, cartPayload{UserID: userID})
	return nil
}

func (s *CartService) Summary(ctx context.Context, userID uint) (transport.CartSummary, error) {
	sum, err := s.Repo.CartSummary(ctx, userID)
	if err != nil {
		return transport.CartSummary{}, storeError(ctx, "cart_summary", err, "")
	}
	return sum, nil
}
