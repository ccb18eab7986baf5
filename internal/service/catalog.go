package service

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"
	"gorm.io/datatypes"

	"github.com/Skotchmaster/product_catalog/internal/apperr"
	"github.com/Skotchmaster/product_catalog/internal/events"
	"github.com/Skotchmaster/product_catalog/internal/logging"
	"github.com/Skotchmaster/product_catalog/internal/models"
	"github.com/Skotchmaster/product_catalog/internal/repo"
	"github.com/Skotchmaster/product_catalog/internal/transport"
)

const (
	msgProductNotFound = "Product not found"
	msgNoFields        = "No valid fields to update"
)

type ProductStore interface {
	ListProducts(ctx context.Context, f transport.ProductFilter) ([]models.Product, int64, error)
	AllProducts(ctx context.Context) ([]models.Product, error)
	GetProduct(ctx context.Context, id uint) (*models.Product, error)
	ProductsByIDs(ctx context.Context, ids []uint) ([]models.Product, error)
	IncrementDownloads(ctx context.Context, id uint) (*models.Product, error)
	CreateProduct(ctx context.Context, prod *models.Product) (*models.Product, error)
	PatchProduct(ctx context.Context, id uint, updates map[string]any) (*models.Product, error)
	DeleteProduct(ctx context.Context, id uint) error
}

var _ ProductStore = (*repo.GormRepo)(nil)

// ProductIndex is the full-text index kept next to the database.
type ProductIndex interface {
	IndexProduct(ctx context.Context, p *models.Product) error
	DeleteProduct(ctx context.Context, id uint) error
	Search(ctx context.Context, query string, from, size int) (int64, []models.Product, error)
}

type CatalogService struct {
	Repo   ProductStore
	Index  ProductIndex
	Events events.Publisher
}

type productPayload struct {
	ProductID uint   `json:"product_id"`
	Name      string `json:"name,omitempty"`
	Category  string `json:"category,omitempty"`
}

func (s *CatalogService) List(ctx context.Context, f transport.ProductFilter) ([]models.Product, int64, error) {
	items, total, err := s.Repo.ListProducts(ctx, f)
	if err != nil {
		return nil, 0, storeError(ctx, "list_products", err, "")
	}
	return items, total, nil
}

// Get counts a download and returns the updated product.
func (s *CatalogService) Get(ctx context.Context, id uint) (*models.Product, error) {
	p, err := s.Repo.IncrementDownloads(ctx, id)
	if err != nil {
		return nil, storeError(ctx, "increment_downloads", err, msgProductNotFound)
	}
	return p, nil
}

func (s *CatalogService) Create(ctx context.Context, req transport.CreateProductRequest) (*models.Product, error) {
	prod := &models.Product{
		Name:             req.Name,
		License:          req.License,
		Description:      req.Description,
		Rating:           req.Rating,
		Category:         req.Category,
		MainImageURL:     req.MainImageURL,
		GalleryImages:    datatypes.JSONSlice[string](req.GalleryImages),
		Feature1:         req.Feature1,
		Feature2:         req.Feature2,
		Feature3:         req.Feature3,
		Feature4:         req.Feature4,
		Feature5:         req.Feature5,
		Requirements:     req.Requirements,
		Version:          req.Version,
		FileSize:         req.FileSize,
		IsFeatured:       req.IsFeatured,
		DemoURL:          req.DemoURL,
		DocumentationURL: req.DocumentationURL,
		SupportEmail:     req.SupportEmail,
		Tags:             req.Tags,
	}
	if req.Price != nil {
		prod.Price = decimal.NewFromFloat(*req.Price).Round(2)
	}

	created, err := s.Repo.CreateProduct(ctx, prod)
	if err != nil {
		return nil, storeError(ctx, "create_product", err, "")
	}

	s.afterWrite(ctx, events.ProductCreated, created)
	return created, nil
}

// productUpdates lists the columns present in req.
func productUpdates(req transport.PatchProductRequest) map[string]any {
	u := make(map[string]any)
	setString := func(col string, v *string) {
		if v != nil {
			u[col] = *v
		}
	}
	setString("name", req.Name)
	setString("license", req.License)
	setString("description", req.Description)
	setString("category", req.Category)
	setString("main_image_url", req.MainImageURL)
	setString("feature_1", req.Feature1)
	setString("feature_2", req.Feature2)
	setString("feature_3", req.Feature3)
	setString("feature_4", req.Feature4)
	setString("feature_5", req.Feature5)
	setString("requirements", req.Requirements)
	setString("version", req.Version)
	setString("file_size", req.FileSize)
	setString("demo_url", req.DemoURL)
	setString("documentation_url", req.DocumentationURL)
	setString("support_email", req.SupportEmail)
	setString("tags", req.Tags)

	if req.Rating != nil {
		u["rating"] = *req.Rating
	}
	if req.Price != nil {
		u["price"] = decimal.NewFromFloat(*req.Price).Round(2)
	}
	if req.IsFeatured != nil {
		u["is_featured"] = *req.IsFeatured
	}
	if req.GalleryImages != nil {
		imgs := datatypes.JSONSlice[string](*req.GalleryImages)
		if imgs == nil {
			imgs = datatypes.JSONSlice[string]{}
		}
		u["gallery_images"] = imgs
	}
	return u
}

func (s *CatalogService) Update(ctx context.Context, id uint, req transport.PatchProductRequest) (*models.Product, error) {
	updates := productUpdates(req)
	if len(updates) == 0 {
		if _, err := s.Repo.GetProduct(ctx, id); err != nil {
			return nil, storeError(ctx, "get_product", err, msgProductNotFound)
		}
		return nil, apperr.Validation(msgNoFields)
	}

	prod, err := s.Repo.PatchProduct(ctx, id, updates)
	if err != nil {
		return nil, storeError(ctx, "patch_product", err, msgProductNotFound)
	}

	s.afterWrite(ctx, events.ProductUpdated, prod)
	return prod, nil
}

func (s *CatalogService) Delete(ctx context.Context, id uint) error {
	if err := s.Repo.DeleteProduct(ctx, id); err != nil {
		return storeError(ctx, "delete_product", err, msgProductNotFound)
	}

	events.Emit(ctx, s.Events, events.TopicProducts, fmt.Sprint(id), events.ProductDeleted, productPayload{ProductID: id})
	if s.Index != nil {
		if err := s.Index.DeleteProduct(ctx, id); err != nil {
			logging.FromContext(ctx).Warn("index_delete_failed", "product_id", id, "error", err)
		}
	}
	return nil
}

// Search queries the full-text index and falls back to a substring match
// over the database when no index is configured or the index fails.
// Index hits are reloaded from the database so counters like
// download_count are current.
func (s *CatalogService) Search(ctx context.Context, q string, offset, limit int) (int64, []models.Product, error) {
	l := logging.FromContext(ctx).With("svc", "catalog.search")

	if s.Index != nil {
		total, hits, err := s.Index.Search(ctx, q, offset, limit)
		if err == nil {
			ids := make([]uint, len(hits))
			for i, h := range hits {
				ids[i] = h.ID
			}
			items, err := s.Repo.ProductsByIDs(ctx, ids)
			if err != nil {
				return 0, nil, storeError(ctx, "products_by_ids", err, "")
			}
			return total, items, nil
		}
		l.Warn("search_index_failed", "reason", "falling back to database", "error", err)
	}

	items, total, err := s.Repo.ListProducts(ctx, transport.ProductFilter{Search: q, Offset: offset, Limit: limit})
	if err != nil {
		return 0, nil, storeError(ctx, "search_products", err, "")
	}
	return total, items, nil
}

// Reindex pushes every stored product to the index.
func (s *CatalogService) Reindex(ctx context.Context) (int, error) {
	if s.Index == nil {
		return 0, nil
	}
	items, err := s.Repo.AllProducts(ctx)
	if err != nil {
		return 0, err
	}
	for i := range items {
		if err := s.Index.IndexProduct(ctx, &items[i]); err != nil {
			return i, err
		}
	}
	return len(items), nil
}

func (s *CatalogService) afterWrite(ctx context.Context, eventType string, p *models.Product) {
	events.Emit(ctx, s.Events, events.TopicProducts, fmt.Sprint(p.ID), eventType,
		productPayload{ProductID: p.ID, Name: p.Name, Category: p.Category})

	if s.Index != nil {
		if err := s.Index.IndexProduct(ctx, p); err != nil {
			logging.FromContext(ctx).Warn("index_write_failed", "product_id", p.ID, "error", err)
		}
	}
}
