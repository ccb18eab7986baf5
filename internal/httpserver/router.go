package httpserver

import (
	"github.com/labstack/echo/v4"

	authmw "github.com/Skotchmaster/product_catalog/internal/middleware/auth"
)

type Deps struct {
	Products   *ProductHTTP
	Auth       *AuthHTTP
	Cart       *CartHTTP
	Admin      *AdminHTTP
	Categories *CategoryHTTP
	Health     *HealthHTTP

	AuthMW *authmw.Middleware
	// AuthLimiter throttles login and registration. Optional.
	AuthLimiter echo.MiddlewareFunc
}

func Register(e *echo.Echo, d *Deps) {
	e.GET("/health/live", d.Health.Live)
	e.GET("/health/ready", d.Health.Ready)

	api := e.Group("/api")
	api.GET("/health", d.Health.API)

	limited := []echo.MiddlewareFunc{}
	if d.AuthLimiter != nil {
		limited = append(limited, d.AuthLimiter)
	}
	auth := api.Group("/auth")
	auth.POST("/register", d.Auth.Register, limited...)
	auth.POST("/login", d.Auth.Login, limited...)
	auth.POST("/logout", d.Auth.Logout)
	auth.GET("/me", d.Auth.Me)

	products := api.Group("/products")
	products.GET("", d.Products.List)
	products.GET("/search", d.Products.Search)
	products.GET("/:id", d.Products.Get)
	products.POST("", d.Products.Create, d.AuthMW.RequireAdmin)
	products.PUT("/:id", d.Products.Update, d.AuthMW.RequireAdmin)
	products.DELETE("/:id", d.Products.Delete, d.AuthMW.RequireAdmin)

	cart := api.Group("/cart", d.AuthMW.RequireAuth)
	cart.GET("", d.Cart.Get)
	cart.GET("/summary", d.Cart.Summary)
	cart.POST("/add", d.Cart.Add)
	cart.PUT("/:id", d.Cart.Update)
	cart.DELETE("/:id", d.Cart.Remove)
	cart.DELETE("", d.Cart.Clear)

	admin := api.Group("/admin", d.AuthMW.RequireAdmin)
	admin.GET("/users", d.Admin.Users)
	admin.GET("/stats", d.Admin.Stats)
	admin.GET("/products/export", d.Admin.ExportProducts)

	categories := api.Group("/categories")
	categories.GET("", d.Categories.List)
	categories.POST("", d.Categories.Create, d.AuthMW.RequireAdmin)
	categories.DELETE("/:id", d.Categories.Delete, d.AuthMW.RequireAdmin)
}
