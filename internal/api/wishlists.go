package api

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"wishlist-service/internal/apperr"
	"wishlist-service/internal/entity"
	"wishlist-service/internal/service"
)

type WishlistHandler struct {
	wishlists *service.WishlistService
}

func NewWishlistHandler(wishlists *service.WishlistService) *WishlistHandler {
	return &WishlistHandler{wishlists: wishlists}
}

func (h *WishlistHandler) List(c echo.Context) error {
	f := entity.WishlistFilter{}
	if err := c.Bind(&f); err != nil {
		return apperr.BadRequest("invalid query parameters")
	}

	wishlists, err := h.wishlists.List(c.Request().Context(), f)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, map[string]any{"wishlists": wishlists})
}

func (h *WishlistHandler) ListCategories(c echo.Context) error {
	categories, err := h.wishlists.ListCategories(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, map[string]any{"categories": categories})
}

func (h *WishlistHandler) CreateCategory(c echo.Context) error {
	req := entity.NewCategory{}
	if err := c.Bind(&req); err != nil {
		return apperr.BadRequest("invalid request payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	category, err := h.wishlists.CreateCategory(c.Request().Context(), req)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, map[string]any{"category": category})
}

func (h *WishlistHandler) ListByCategory(c echo.Context) error {
	wishlists, err := h.wishlists.ListWishlistsOfCategory(c.Request().Context(), c.Param("category"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, map[string]any{"wishlists": wishlists})
}

func (h *WishlistHandler) DeleteCategory(c echo.Context) error {
	category := c.Param("category")
	if _, err := h.wishlists.DeleteCategory(c.Request().Context(), category); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, map[string]string{"deleted": category})
}
