package repo

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/Skotchmaster/product_catalog/internal/models"
)

func (r *GormRepo) ListCategories(ctx context.Context) ([]models.Category, error) {
	items := make([]models.Category, 0)
	if err := r.DB.WithContext(ctx).Order("name ASC").Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

func (r *GormRepo) CreateCategory(ctx context.Context, c *models.Category) error {
	return translate(r.DB.WithContext(ctx).Create(c).Error)
}

func (r *GormRepo) DeleteCategory(ctx context.Context, id uint) error {
	res := r.DB.WithContext(ctx).Delete(&models.Category{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// EnsureCategories inserts the missing names and reports how many were added.
func (r *GormRepo) EnsureCategories(ctx context.Context, names []string) (int64, error) {
	if len(names) == 0 {
		return 0, nil
	}
	rows := make([]models.Category, 0, len(names))
	for _, n := range names {
		rows = append(rows, models.Category{Name: n})
	}
	res := r.DB.WithContext(ctx).
		Clauses(clause.OnConflict{Columns: []clause.Column{{Name: "name"}}, DoNothing: true}).
		Create(&rows)
	return res.RowsAffected, res.Error
}
