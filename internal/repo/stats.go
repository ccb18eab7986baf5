package repo

import (
	"context"
	"time"

	"github.com/Skotchmaster/product_catalog/internal/models"
)

type UserCounts struct {
	Total  int64
	Admins int64
	Recent int64
}

type ProductCounts struct {
	Total     int64
	Featured  int64
	Recent    int64
	AvgRating float64
}

func (r *GormRepo) UserCounts(ctx context.Context, since time.Time) (UserCounts, error) {
	var c UserCounts
	db := r.DB.WithContext(ctx)

	if err := db.Model(&models.User{}).Count(&c.Total).Error; err != nil {
		return c, err
	}
	if err := db.Model(&models.User{}).Where("is_admin = ?", true).Count(&c.Admins).Error; err != nil {
		return c, err
	}
	if err := db.Model(&models.User{}).Where("created_at >= ?", since.UTC()).Count(&c.Recent).Error; err != nil {
		return c, err
	}
	return c, nil
}

func (r *GormRepo) ProductCounts(ctx context.Context, since time.Time) (ProductCounts, error) {
	var c ProductCounts
	db := r.DB.WithContext(ctx)

	if err := db.Model(&models.Product{}).Count(&c.Total).Error; err != nil {
		return c, err
	}
	if err := db.Model(&models.Product{}).Where("is_featured = ?", true).Count(&c.Featured).Error; err != nil {
		return c, err
	}
	if err := db.Model(&models.Product{}).Where("created_at >= ?", since.UTC()).Count(&c.Recent).Error; err != nil {
		return c, err
	}
	if err := db.Model(&models.Product{}).Select("COALESCE(AVG(rating), 0)").Scan(&c.AvgRating).Error; err != nil {
		return c, err
	}
	return c, nil
}
