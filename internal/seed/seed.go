// Package seed loads the sample catalog used in development.
package seed

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/shopspring/decimal"
	"gorm.io/datatypes"

	"github.com/Skotchmaster/product_catalog/internal/models"
)

type Store interface {
	ProductExistsByName(ctx context.Context, name string) (bool, error)
	CreateProduct(ctx context.Context, prod *models.Product) (*models.Product, error)
}

// Products returns fresh copies of the sample products.
func Products() []models.Product {
	return []models.Product{
		{
			Name:         "React UI Kit Pro",
			License:      "MIT",
			Description:  "A comprehensive React component library with modern design patterns, TypeScript support, and extensive customization options.",
			Rating:       5,
			Price:        decimal.RequireFromString("49.99"),
			Category:     "UI Kits",
			MainImageURL: "https://images.unsplash.com/photo-1633356122544-f134324a6cee?w=300&h=200&fit=crop",
			GalleryImages: datatypes.JSONSlice[string]{
				"https://images.unsplash.com/photo-1633356122544-f134324a6cee?w=400&h=300&fit=crop",
				"https://images.unsplash.com/photo-1555066931-4365d14bab8c?w=400&h=300&fit=crop",
			},
			Feature1:         "150+ Components",
			Feature2:         "TypeScript Support",
			Feature3:         "8 Themes",
			Feature4:         "Responsive Design",
			Feature5:         "Dark Mode",
			Requirements:     "React 18+, Node.js 16+",
			Version:          "2.1.0",
			FileSize:         "15.2 MB",
			DownloadCount:    1250,
			IsFeatured:       true,
			DemoURL:          "https://react-ui-kit-demo.example.com",
			DocumentationURL: "https://docs.react-ui-kit.example.com",
			SupportEmail:     "support@react-ui-kit.example.com",
			Tags:             "react, typescript, ui, components",
		},
		{
			Name:         "Vue Dashboard Template",
			License:      "Commercial",
			Description:  "Professional admin dashboard template built with Vue 3, featuring charts, tables, and responsive design.",
			Rating:       4,
			Price:        decimal.RequireFromString("79.99"),
			Category:     "Templates",
			MainImageURL: "https://images.unsplash.com/photo-1551288049-bebda4e38f71?w=300&h=200&fit=crop",
			GalleryImages: datatypes.JSONSlice[string]{
				"https://images.unsplash.com/photo-1551288049-bebda4e38f71?w=400&h=300&fit=crop",
				"https://images.unsplash.com/photo-1460925895917-afdab827c52f?w=400&h=300&fit=crop",
			},
			Feature1:         "25 Pages",
			Feature2:         "12 Chart Types",
			Feature3:         "Responsive Layout",
			Feature4:         "Dark Mode",
			Feature5:         "Real-time Data",
			Requirements:     "Vue 3+, Node.js 16+",
			Version:          "1.5.2",
			FileSize:         "8.7 MB",
			DownloadCount:    890,
			IsFeatured:       true,
			DemoURL:          "https://vue-dashboard-demo.example.com",
			DocumentationURL: "https://docs.vue-dashboard.example.com",
			SupportEmail:     "support@vue-dashboard.example.com",
			Tags:             "vue, dashboard, admin, charts",
		},
		{
			Name:         "Node.js API Starter",
			License:      "Apache 2.0",
			Description:  "Production-ready Node.js API boilerplate with authentication, database integration, and comprehensive testing.",
			Rating:       5,
			Price:        decimal.Zero,
			Category:     "Code Libraries",
			MainImageURL: "https://images.unsplash.com/photo-1627398242454-45a1465c2479?w=300&h=200&fit=crop",
			GalleryImages: datatypes.JSONSlice[string]{
				"https://images.unsplash.com/photo-1627398242454-45a1465c2479?w=400&h=300&fit=crop",
			},
			Feature1:         "JWT Authentication",
			Feature2:         "MongoDB Integration",
			Feature3:         "Jest Testing",
			Feature4:         "Swagger Documentation",
			Feature5:         "Docker Support",
			Requirements:     "Node.js 18+, MongoDB 5+",
			Version:          "3.0.1",
			FileSize:         "2.1 MB",
			DownloadCount:    2150,
			DemoURL:          "https://api-starter-demo.example.com",
			DocumentationURL: "https://docs.api-starter.example.com",
			SupportEmail:     "support@api-starter.example.com",
			Tags:             "nodejs, api, backend, authentication",
		},
		{
			Name:         "Mobile App Icons Pack",
			License:      "Creative Commons",
			Description:  "Collection of 500+ high-quality mobile app icons in multiple formats and sizes.",
			Rating:       4,
			Price:        decimal.RequireFromString("29.99"),
			Category:     "Icons",
			MainImageURL: "https://images.unsplash.com/photo-1512941937669-90a1b58e7e9c?w=300&h=200&fit=crop",
			GalleryImages: datatypes.JSONSlice[string]{
				"https://images.unsplash.com/photo-1512941937669-90a1b58e7e9c?w=400&h=300&fit=crop",
				"https://images.unsplash.com/photo-1611224923853-80b023f02d71?w=400&h=300&fit=crop",
			},
			Feature1:         "500+ Icons",
			Feature2:         "Multiple Formats",
			Feature3:         "Vector Graphics",
			Feature4:         "Retina Ready",
			Feature5:         "Easy Customization",
			Requirements:     "Any design software",
			Version:          "2.0.0",
			FileSize:         "45.8 MB",
			DownloadCount:    567,
			DemoURL:          "https://icons-demo.example.com",
			DocumentationURL: "https://docs.icons.example.com",
			SupportEmail:     "support@icons.example.com",
			Tags:             "icons, mobile, design, graphics",
		},
		{
			Name:         "E-commerce Shopify Theme",
			License:      "Commercial",
			Description:  "Modern and responsive Shopify theme designed for fashion and lifestyle brands.",
			Rating:       5,
			Price:        decimal.RequireFromString("159.99"),
			Category:     "Themes",
			MainImageURL: "https://images.unsplash.com/photo-1556742049-0cfed4f6a45d?w=300&h=200&fit=crop",
			GalleryImages: datatypes.JSONSlice[string]{
				"https://images.unsplash.com/photo-1556742049-0cfed4f6a45d?w=400&h=300&fit=crop",
				"https://images.unsplash.com/photo-1563013544-824ae1b704d3?w=400&h=300&fit=crop",
			},
			Feature1:         "Mobile Optimized",
			Feature2:         "SEO Friendly",
			Feature3:         "Fast Loading",
			Feature4:         "Multi-currency",
			Feature5:         "Social Integration",
			Requirements:     "Shopify Store",
			Version:          "1.8.0",
			FileSize:         "12.3 MB",
			DownloadCount:    423,
			IsFeatured:       true,
			DemoURL:          "https://shopify-theme-demo.example.com",
			DocumentationURL: "https://docs.shopify-theme.example.com",
			SupportEmail:     "support@shopify-theme.example.com",
			Tags:             "shopify, ecommerce, theme, fashion",
		},
	}
}

type Result struct {
	Inserted int
	Skipped  int
}

// Run inserts every sample product whose name is not taken yet. With dryRun
// set nothing is written and Inserted counts what would have been.
func Run(ctx context.Context, s Store, dryRun bool) (Result, error) {
	var res Result
	for _, p := range Products() {
		exists, err := s.ProductExistsByName(ctx, p.Name)
		if err != nil {
			return res, fmt.Errorf("check %q: %w", p.Name, err)
		}
		if exists {
			res.Skipped++
			slog.Debug("seed_skip", "product", p.Name)
			continue
		}
		if !dryRun {
			if _, err := s.CreateProduct(ctx, &p); err != nil {
				return res, fmt.Errorf("insert %q: %w", p.Name, err)
			}
		}
		res.Inserted++
	}
	return res, nil
}
