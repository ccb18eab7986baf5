package service

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/Skotchmaster/product_catalog/internal/export"
	"github.com/Skotchmaster/product_catalog/internal/models"
	"github.com/Skotchmaster/product_catalog/internal/repo"
	"github.com/Skotchmaster/product_catalog/internal/transport"
)

const recentWindow = 30 * 24 * time.Hour

type AdminStore interface {
	ListUsers(ctx context.Context) ([]models.User, error)
	AllProducts(ctx context.Context) ([]models.Product, error)
	UserCounts(ctx context.Context, since time.Time) (repo.UserCounts, error)
	ProductCounts(ctx context.Context, since time.Time) (repo.ProductCounts, error)
}

var _ AdminStore = (*repo.GormRepo)(nil)

type AdminService struct {
	Repo AdminStore
	Now  func() time.Time
}

func (s *AdminService) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}

func (s *AdminService) Users(ctx context.Context) ([]transport.UserResponse, error) {
	users, err := s.Repo.ListUsers(ctx)
	if err != nil {
		return nil, storeError(ctx, "list_users", err, "")
	}
	out := make([]transport.UserResponse, 0, len(users))
	for i := range users {
		out = append(out, transport.NewUserResponse(&users[i]))
	}
	return out, nil
}

func (s *AdminService) Stats(ctx context.Context) (transport.AdminStats, error) {
	since := s.now().Add(-recentWindow)

	uc, err := s.Repo.UserCounts(ctx, since)
	if err != nil {
		return transport.AdminStats{}, storeError(ctx, "user_counts", err, "")
	}
	pc, err := s.Repo.ProductCounts(ctx, since)
	if err != nil {
		return transport.AdminStats{}, storeError(ctx, "product_counts", err, "")
	}

	return transport.AdminStats{
		Users: transport.UserStats{
			Total:   uc.Total,
			Admins:  uc.Admins,
			Regular: uc.Total - uc.Admins,
			Recent:  uc.Recent,
		},
		Products: transport.ProductStats{
			Total:     pc.Total,
			Featured:  pc.Featured,
			AvgRating: fmt.Sprintf("%.1f", pc.AvgRating),
			Recent:    pc.Recent,
		},
	}, nil
}

// ExportProducts writes all products to w as an XLSX workbook.
func (s *AdminService) ExportProducts(ctx context.Context, w io.Writer) error {
	products, err := s.Repo.AllProducts(ctx)
	if err != nil {
		return storeError(ctx, "all_products", err, "")
	}
	if err := export.WriteProducts(w, products); err != nil {
		return storeError(ctx, "export_products", err, "")
	}
	return nil
}
