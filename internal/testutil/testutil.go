// Package testutil holds fixtures shared by package tests.
package testutil

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/Skotchmaster/product_catalog/internal/db"
	"github.com/Skotchmaster/product_catalog/internal/models"
)

// NewDB returns a migrated in-memory SQLite database closed at test cleanup.
func NewDB(t testing.TB, extra ...any) *gorm.DB {
	t.Helper()

	gdb, err := db.OpenSQLite(":memory:")
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	t.Cleanup(func() { _ = db.Close(gdb) })

	if err := db.Migrate(context.Background(), gdb, extra...); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return gdb
}

// Product returns a valid product; opts mutate it before insertion.
func Product(name string, opts ...func(*models.Product)) models.Product {
	p := models.Product{
		Name:          name,
		License:       "MIT",
		Description:   name + " description",
		Rating:        4,
		Price:         decimal.RequireFromString("9.99"),
		Category:      "Tools",
		GalleryImages: datatypes.JSONSlice[string]{},
	}
	for _, opt := range opts {
		opt(&p)
	}
	return p
}

func CreateProduct(t testing.TB, gdb *gorm.DB, name string, opts ...func(*models.Product)) models.Product {
	t.Helper()

	p := Product(name, opts...)
	if err := gdb.Create(&p).Error; err != nil {
		t.Fatalf("create product: %v", err)
	}
	return p
}

func CreateUser(t testing.TB, gdb *gorm.DB, email string, isAdmin bool) models.User {
	t.Helper()

	u := models.User{Email: email, PasswordHash: "not-a-real-hash", IsAdmin: isAdmin}
	if err := gdb.Create(&u).Error; err != nil {
		t.Fatalf("create user: %v", err)
	}
	return u
}
