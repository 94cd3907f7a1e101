package api

import (
	"github.com/labstack/echo/v4"

	"wishlist-service/internal/auth"
)

// RegisterRoutes wires the HTTP surface. The credential middleware runs on
// every route and never blocks by itself; the per-route guards decide
// rejection.
func RegisterRoutes(e *echo.Echo, secret []byte, authH *AuthHandler, users *UserHandler, items *ItemHandler, wishlists *WishlistHandler) {
	e.Use(auth.Middleware(secret))

	e.POST("/auth/register", authH.Register)
	e.POST("/auth/login", authH.Login)

	i := e.Group("/items")
	i.GET("", items.List)
	i.POST("", items.Create, auth.RequireLoggedIn)
	// category routes must register before /:id
	i.GET("/categories", items.ListCategories)
	i.POST("/categories", items.CreateCategory, auth.RequireLoggedIn)
	i.GET("/categories/:category", items.ListByCategory)
	i.DELETE("/categories/:category", items.DeleteCategory, auth.RequireAdmin)
	i.GET("/:id", items.Get)
	i.PATCH("/:id", items.Update, auth.RequireAdmin)
	i.DELETE("/:id", items.Delete, auth.RequireAdmin)

	u := e.Group("/users")
	u.GET("", users.List, auth.RequireLoggedIn)
	u.GET("/:username", users.Get, auth.RequireLoggedIn)
	u.PATCH("/:username", users.Update, auth.RequireSelfOrAdmin)
	u.DELETE("/:username", users.Delete, auth.RequireSelfOrAdmin)
	u.GET("/:username/wishlists", users.ListWishlists, auth.RequireLoggedIn)
	u.POST("/:username/wishlists", users.CreateWishlist, auth.RequireSelfOrAdmin)
	u.GET("/:username/wishlists/:category", users.ListWishlistsByCategory, auth.RequireLoggedIn)
	u.GET("/:username/wishlists/:category/:title", users.GetWishlist, auth.RequireLoggedIn)
	u.PATCH("/:username/wishlists/:category/:title", users.UpdateWishlist, auth.RequireSelfOrAdmin)
	u.DELETE("/:username/wishlists/:category/:title", users.DeleteWishlist, auth.RequireSelfOrAdmin)
	u.POST("/:username/wishlists/:category/:title/:itemId", users.AddWishlistItem, auth.RequireSelfOrAdmin)
	u.DELETE("/:username/wishlists/:category/:title/:itemId", users.RemoveWishlistItem, auth.RequireSelfOrAdmin)

	w := e.Group("/wishlists")
	w.GET("", wishlists.List)
	w.GET("/categories", wishlists.ListCategories)
	w.POST("/categories", wishlists.CreateCategory, auth.RequireLoggedIn)
	w.GET("/categories/:category", wishlists.ListByCategory)
	w.DELETE("/categories/:category", wishlists.DeleteCategory, auth.RequireAdmin)
}
