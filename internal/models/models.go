package models

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

func init() {
	// prices are sent to clients as JSON numbers
	decimal.MarshalJSONWithoutQuotes = true
}

type User struct {
	ID           uint      `gorm:"primaryKey;autoIncrement"          json:"id"`
	Email        string    `gorm:"size:255;uniqueIndex;not null"     json:"email"`
	PasswordHash string    `gorm:"size:255;not null"                 json:"-"`
	IsAdmin      bool      `gorm:"not null;default:false"            json:"is_admin"`
	CreatedAt    time.Time `gorm:"index"                             json:"created_at"`
	UpdatedAt    time.Time `                                         json:"updated_at"`
}

type Product struct {
	ID               uint                        `gorm:"primaryKey;autoIncrement"                json:"id"`
	Name             string                      `gorm:"size:255;not null"                       json:"name"`
	License          string                      `gorm:"size:255;not null"                       json:"license"`
	Description      string                      `gorm:"type:text"                               json:"description"`
	Rating           int                         `gorm:"index;not null;check:rating >= 1 AND rating <= 5" json:"rating"`
	Price            decimal.Decimal             `gorm:"type:decimal(10,2);index;not null"      json:"price"`
	Category         string                      `gorm:"size:255;index;not null"                 json:"category"`
	MainImageURL     string                      `gorm:"type:text"                               json:"main_image_url"`
	GalleryImages    datatypes.JSONSlice[string] `                                               json:"gallery_images"`
	Feature1         string                      `gorm:"column:feature_1;size:255"               json:"feature_1"`
	Feature2         string                      `gorm:"column:feature_2;size:255"               json:"feature_2"`
	Feature3         string                      `gorm:"column:feature_3;size:255"               json:"feature_3"`
	Feature4         string                      `gorm:"column:feature_4;size:255"               json:"feature_4"`
	Feature5         string                      `gorm:"column:feature_5;size:255"               json:"feature_5"`
	Requirements     string                      `gorm:"type:text"                               json:"requirements"`
	Version          string                      `gorm:"size:50"                                 json:"version"`
	FileSize         string                      `gorm:"size:50"                                 json:"file_size"`
	DownloadCount    int                         `gorm:"not null;default:0"                      json:"download_count"`
	IsFeatured       bool                        `gorm:"index;not null;default:false"            json:"is_featured"`
	DemoURL          string                      `gorm:"size:500"                                json:"demo_url"`
	DocumentationURL string                      `gorm:"size:500"                                json:"documentation_url"`
	SupportEmail     string                      `gorm:"size:255"                                json:"support_email"`
	Tags             string                      `gorm:"size:500"                                json:"tags"`
	CreatedAt        time.Time                   `gorm:"index"                                   json:"created_at"`
	UpdatedAt        time.Time                   `                                               json:"updated_at"`
}

func (p *Product) BeforeSave(tx *gorm.DB) error {
	if p.GalleryImages == nil {
		p.GalleryImages = datatypes.JSONSlice[string]{}
	}
	return nil
}

// AfterFind keeps gallery_images an array in responses even when the column is NULL.
func (p *Product) AfterFind(tx *gorm.DB) error {
	if p.GalleryImages == nil {
		p.GalleryImages = datatypes.JSONSlice[string]{}
	}
	return nil
}

type CartItem struct {
	ID        uint      `gorm:"primaryKey;autoIncrement"                          json:"id"`
	UserID    uint      `gorm:"uniqueIndex:idx_user_product;not null"             json:"user_id"`
	ProductID uint      `gorm:"uniqueIndex:idx_user_product;not null"             json:"product_id"`
	Quantity  int       `gorm:"not null;default:1;check:quantity > 0"             json:"quantity"`
	CreatedAt time.Time `                                                         json:"created_at"`
	UpdatedAt time.Time `                                                         json:"updated_at"`

	User    *User    `gorm:"constraint:OnDelete:CASCADE" json:"-"`
	Product *Product `gorm:"constraint:OnDelete:CASCADE" json:"product,omitempty"`
}

func (CartItem) TableName() string {
	return "cart_items"
}

type Category struct {
	ID          uint      `gorm:"primaryKey;autoIncrement"       json:"id"`
	Name        string    `gorm:"size:255;uniqueIndex;not null"  json:"name"`
	Description string    `gorm:"type:text"                      json:"description"`
	CreatedAt   time.Time `                                      json:"created_at"`
	UpdatedAt   time.Time `                                      json:"updated_at"`
}

// All lists the tables owned by the catalog, in migration order.
func All() []any {
	return []any{&User{}, &Category{}, &Product{}, &CartItem{}}
}
