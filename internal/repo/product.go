package repo

import (
	"context"
	"strings"

	"gorm.io/gorm"

	"github.com/Skotchmaster/product_catalog/internal/models"
	"github.com/Skotchmaster/product_catalog/internal/transport"
)

const productOrder = "is_featured DESC, created_at DESC, id DESC"

func applyProductFilter(q *gorm.DB, f transport.ProductFilter) *gorm.DB {
	if s := strings.TrimSpace(f.Search); s != "" {
		p := containsPattern(s)
		q = q.Where(
			`LOWER(name) LIKE ? ESCAPE '\' OR LOWER(description) LIKE ? ESCAPE '\' OR LOWER(category) LIKE ? ESCAPE '\'`,
			p, p, p,
		)
	}
	if f.License != "" {
		q = q.Where("license = ?", f.License)
	}
	if f.Category != "" {
		q = q.Where("category = ?", f.Category)
	}
	if f.Rating != nil {
		q = q.Where("rating = ?", *f.Rating)
	}
	if f.Featured != nil {
		q = q.Where("is_featured = ?", *f.Featured)
	}
	return q
}

// ListProducts returns the filtered page and the number of rows matching the filter.
func (r *GormRepo) ListProducts(ctx context.Context, f transport.ProductFilter) ([]models.Product, int64, error) {
	var total int64
	if err := applyProductFilter(r.DB.WithContext(ctx).Model(&models.Product{}), f).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	items := make([]models.Product, 0)
	q := applyProductFilter(r.DB.WithContext(ctx).Model(&models.Product{}), f).Order(productOrder)
	if f.Limit > 0 {
		q = q.Offset(f.Offset).Limit(f.Limit)
	}
	if err := q.Find(&items).Error; err != nil {
		return nil, 0, err
	}
	return items, total, nil
}

func (r *GormRepo) AllProducts(ctx context.Context) ([]models.Product, error) {
	items := make([]models.Product, 0)
	if err := r.DB.WithContext(ctx).Order("id ASC").Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

// ProductsByIDs returns the rows for ids in the order given, skipping ids that no longer exist.
func (r *GormRepo) ProductsByIDs(ctx context.Context, ids []uint) ([]models.Product, error) {
	items := make([]models.Product, 0, len(ids))
	if len(ids) == 0 {
		return items, nil
	}
	var rows []models.Product
	if err := r.DB.WithContext(ctx).Where("id IN ?", ids).Find(&rows).Error; err != nil {
		return nil, err
	}
	byID := make(map[uint]models.Product, len(rows))
	for _, p := range rows {
		byID[p.ID] = p
	}
	for _, id := range ids {
		if p, ok := byID[id]; ok {
			items = append(items, p)
		}
	}
	return items, nil
}

func (r *GormRepo) GetProduct(ctx context.Context, id uint) (*models.Product, error) {
	var product models.Product
	if err := r.DB.WithContext(ctx).Where("id = ?", id).First(&product).Error; err != nil {
		return nil, err
	}
	return &product, nil
}

func (r *GormRepo) ProductExistsByName(ctx context.Context, name string) (bool, error) {
	var n int64
	if err := r.DB.WithContext(ctx).Model(&models.Product{}).Where("name = ?", name).Count(&n).Error; err != nil {
		return false, err
	}
	return n > 0, nil
}

// IncrementDownloads bumps download_count and returns the updated row.
func (r *GormRepo) IncrementDownloads(ctx context.Context, id uint) (*models.Product, error) {
	var product models.Product
	err := r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&models.Product{}).
			Where("id = ?", id).
			UpdateColumn("download_count", gorm.Expr("download_count + ?", 1))
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return tx.Where("id = ?", id).First(&product).Error
	})
	if err != nil {
		return nil, err
	}
	return &product, nil
}

func (r *GormRepo) CreateProduct(ctx context.Context, prod *models.Product) (*models.Product, error) {
	if err := r.DB.WithContext(ctx).Create(prod).Error; err != nil {
		return nil, err
	}
	return prod, nil
}

// PatchProduct writes the given columns and returns the refreshed row.
func (r *GormRepo) PatchProduct(ctx context.Context, id uint, updates map[string]any) (*models.Product, error) {
	var product models.Product
	err := r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&models.Product{}).Where("id = ?", id).Updates(updates)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return tx.Where("id = ?", id).First(&product).Error
	})
	if err != nil {
		return nil, err
	}
	return &product, nil
}

// DeleteProduct removes the product and every cart row pointing at it.
func (r *GormRepo) DeleteProduct(ctx context.Context, id uint) error {
	return r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("product_id = ?", id).Delete(&models.CartItem{}).Error; err != nil {
			return err
		}
		res := tx.Delete(&models.Product{}, id)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return nil
	})
}
