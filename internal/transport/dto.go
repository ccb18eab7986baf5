package transport

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/Skotchmaster/product_catalog/internal/models"
)

type CreateProductRequest struct {
	Name             string   `json:"name"              validate:"required,min=1,max=255"`
	License          string   `json:"license"           validate:"required,min=1,max=255"`
	Description      string   `json:"description"       validate:"required,min=1"`
	Rating           int      `json:"rating"            validate:"required,min=1,max=5"`
	Price            *float64 `json:"price"             validate:"required,gte=0"`
	Category         string   `json:"category"          validate:"required,min=1,max=255"`
	MainImageURL     string   `json:"main_image_url"    validate:"omitempty,url"`
	GalleryImages    []string `json:"gallery_images"    validate:"omitempty,dive,url"`
	Feature1         string   `json:"feature_1"         validate:"max=255"`
	Feature2         string   `json:"feature_2"         validate:"max=255"`
	Feature3         string   `json:"feature_3"         validate:"max=255"`
	Feature4         string   `json:"feature_4"         validate:"max=255"`
	Feature5         string   `json:"feature_5"         validate:"max=255"`
	Requirements     string   `json:"requirements"`
	Version          string   `json:"version"           validate:"max=50"`
	FileSize         string   `json:"file_size"         validate:"max=50"`
	IsFeatured       bool     `json:"is_featured"`
	DemoURL          string   `json:"demo_url"          validate:"omitempty,url,max=500"`
	DocumentationURL string   `json:"documentation_url" validate:"omitempty,url,max=500"`
	SupportEmail     string   `json:"support_email"     validate:"omitempty,email,max=255"`
	Tags             string   `json:"tags"              validate:"max=500"`
}

// PatchProductRequest holds only the fields present in the request body.
// Optional URL and email fields accept an empty string to clear them.
type PatchProductRequest struct {
	Name             *string   `json:"name"              validate:"omitempty,min=1,max=255"`
	License          *string   `json:"license"           validate:"omitempty,min=1,max=255"`
	Description      *string   `json:"description"       validate:"omitempty,min=1"`
	Rating           *int      `json:"rating"            validate:"omitempty,min=1,max=5"`
	Price            *float64  `json:"price"             validate:"omitempty,gte=0"`
	Category         *string   `json:"category"          validate:"omitempty,min=1,max=255"`
	MainImageURL     *string   `json:"main_image_url"    validate:"omitempty,url|len=0"`
	GalleryImages    *[]string `json:"gallery_images"    validate:"omitempty,dive,url"`
	Feature1         *string   `json:"feature_1"         validate:"omitempty,max=255"`
	Feature2         *string   `json:"feature_2"         validate:"omitempty,max=255"`
	Feature3         *string   `json:"feature_3"         validate:"omitempty,max=255"`
	Feature4         *string   `json:"feature_4"         validate:"omitempty,max=255"`
	Feature5         *string   `json:"feature_5"         validate:"omitempty,max=255"`
	Requirements     *string   `json:"requirements"`
	Version          *string   `json:"version"           validate:"omitempty,max=50"`
	FileSize         *string   `json:"file_size"         validate:"omitempty,max=50"`
	IsFeatured       *bool     `json:"is_featured"`
	DemoURL          *string   `json:"demo_url"          validate:"omitempty,max=500,url|len=0"`
	DocumentationURL *string   `json:"documentation_url" validate:"omitempty,max=500,url|len=0"`
	SupportEmail     *string   `json:"support_email"     validate:"omitempty,max=255,email|len=0"`
	Tags             *string   `json:"tags"              validate:"omitempty,max=500"`
}

type ProductFilter struct {
	Search   string
	License  string
	Category string
	Rating   *int
	Featured *bool
	Offset   int
	Limit    int
}

type RegisterRequest struct {
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
	IsAdmin  *bool  `json:"is_admin"`
}

type LoginRequest struct {
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required,min=1"`
}

type UserResponse struct {
	ID        uint      `json:"id"`
	Email     string    `json:"email"`
	IsAdmin   bool      `json:"is_admin"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func NewUserResponse(u *models.User) UserResponse {
	return UserResponse{
		ID:        u.ID,
		Email:     u.Email,
		IsAdmin:   u.IsAdmin,
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	}
}

type AuthResponse struct {
	User    UserResponse `json:"user"`
	Message string       `json:"message,omitempty"`
}

type MessageResponse struct {
	Message string `json:"message"`
}

type AddToCartRequest struct {
	ProductID uint `json:"product_id" validate:"required,gt=0"`
	Quantity  int  `json:"quantity"   validate:"required,min=1"`
}

type UpdateCartRequest struct {
	Quantity int `json:"quantity" validate:"required,min=1"`
}

type AddToCartResponse struct {
	Message    string `json:"message"`
	CartItemID uint   `json:"cartItemId,omitempty"`
	Quantity   int    `json:"quantity"`
}

type CartProduct struct {
	ID           uint            `json:"id"`
	Name         string          `json:"name"`
	Price        decimal.Decimal `json:"price"`
	MainImageURL string          `json:"main_image_url"`
	License      string          `json:"license"`
	Category     string          `json:"category"`
}

type CartItemResponse struct {
	ID        uint        `json:"id"`
	UserID    uint        `json:"user_id"`
	ProductID uint        `json:"product_id"`
	Quantity  int         `json:"quantity"`
	CreatedAt time.Time   `json:"created_at"`
	UpdatedAt time.Time   `json:"updated_at"`
	Product   CartProduct `json:"product"`
}

func NewCartItemResponse(item *models.CartItem) CartItemResponse {
	resp := CartItemResponse{
		ID:        item.ID,
		UserID:    item.UserID,
		ProductID: item.ProductID,
		Quantity:  item.Quantity,
		CreatedAt: item.CreatedAt,
		UpdatedAt: item.UpdatedAt,
		Product:   CartProduct{ID: item.ProductID},
	}
	if p := item.Product; p != nil {
		resp.Product = CartProduct{
			ID:           p.ID,
			Name:         p.Name,
			Price:        p.Price,
			MainImageURL: p.MainImageURL,
			License:      p.License,
			Category:     p.Category,
		}
	}
	return resp
}

type CartSummary struct {
	TotalItems    int64           `json:"total_items"`
	TotalQuantity int64           `json:"total_quantity"`
	TotalPrice    decimal.Decimal `json:"total_price"`
}

type UserStats struct {
	Total   int64 `json:"total"`
	Admins  int64 `json:"admins"`
	Regular int64 `json:"regular"`
	Recent  int64 `json:"recent"`
}

type ProductStats struct {
	Total     int64  `json:"total"`
	Featured  int64  `json:"featured"`
	AvgRating string `json:"avgRating"`
	Recent    int64  `json:"recent"`
}

type AdminStats struct {
	Users    UserStats    `json:"users"`
	Products ProductStats `json:"products"`
}

type CreateCategoryRequest struct {
	Name        string `json:"name"        validate:"required,min=1,max=255"`
	Description string `json:"description"`
}

type SearchResponse struct {
	Total    int64            `json:"total"`
	Products []models.Product `json:"products"`
}
