package repo

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/Skotchmaster/product_catalog/internal/models"
	"github.com/Skotchmaster/product_catalog/internal/transport"
)

func (r *GormRepo) GetCart(ctx context.Context, userID uint) ([]models.CartItem, error) {
	items := make([]models.CartItem, 0)
	if err := r.DB.WithContext(ctx).
		Preload("Product").
		Where("user_id = ?", userID).
		Order("created_at DESC, id DESC").
		Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

// AddToCart increments the (user, product) row or inserts it. created reports
// whether a new row was written.
func (r *GormRepo) AddToCart(ctx context.Context, userID, productID uint, quantity int) (*models.CartItem, bool, error) {
	var item models.CartItem
	created := false

	err := r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&models.CartItem{}).
			Where("user_id = ? AND product_id = ?", userID, productID).
			Updates(map[string]any{"quantity": gorm.Expr("quantity + ?", quantity)})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected > 0 {
			return tx.Where("user_id = ? AND product_id = ?", userID, productID).First(&item).Error
		}

		row := models.CartItem{UserID: userID, ProductID: productID, Quantity: quantity}
		if err := tx.Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "user_id"}, {Name: "product_id"}},
			DoUpdates: clause.Assignments(map[string]any{
				"quantity":   gorm.Expr("cart_items.quantity + excluded.quantity"),
				"updated_at": gorm.Expr("excluded.updated_at"),
			}),
		}).Create(&row).Error; err != nil {
			return err
		}
		if err := tx.Where("user_id = ? AND product_id = ?", userID, productID).First(&item).Error; err != nil {
			return err
		}
		// a concurrent insert merged into ours
		created = item.Quantity == quantity
		return nil
	})
	if err != nil {
		return nil, false, err
	}
	return &item, created, nil
}

func (r *GormRepo) UpdateCartItem(ctx context.Context, userID, itemID uint, quantity int) (*models.CartItem, error) {
	var item models.CartItem
	err := r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&models.CartItem{}).
			Where("id = ? AND user_id = ?", itemID, userID).
			Update("quantity", quantity)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return tx.Where("id = ?", itemID).First(&item).Error
	})
	if err != nil {
		return nil, err
	}
	return &item, nil
}

func (r *GormRepo) RemoveCartItem(ctx context.Context, userID, itemID uint) error {
	res := r.DB.WithContext(ctx).Where("id = ? AND user_id = ?", itemID, userID).Delete(&models.CartItem{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *GormRepo) ClearCart(ctx context.Context, userID uint) (int64, error) {
	res := r.DB.WithContext(ctx).Where("user_id = ?", userID).Delete(&models.CartItem{})
	return res.RowsAffected, res.Error
}

func (r *GormRepo) CartSummary(ctx context.Context, userID uint) (transport.CartSummary, error) {
	var sum transport.CartSummary
	err := r.DB.WithContext(ctx).
		Table("cart_items AS ci").
		Select("COUNT(ci.id) AS total_items, " +
			"COALESCE(SUM(ci.quantity), 0) AS total_quantity, " +
			"COALESCE(SUM(ci.quantity * p.price), 0) AS total_price").
		Joins("JOIN products AS p ON p.id = ci.product_id").
		Where("ci.user_id = ?", userID).
		Scan(&sum).Error
	if err != nil {
		return transport.CartSummary{}, err
	}
	sum.TotalPrice = sum.TotalPrice.Round(2)
	return sum, nil
}
