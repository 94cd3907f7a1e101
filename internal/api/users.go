package api

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"wishlist-service/internal/apperr"
	"wishlist-service/internal/entity"
	"wishlist-service/internal/service"
)

// UserHandler serves the /users surface, including the nested per-user
// wishlist routes.
type UserHandler struct {
	users     *service.UserService
	wishlists *service.WishlistService
}

func NewUserHandler(users *service.UserService, wishlists *service.WishlistService) *UserHandler {
	return &UserHandler{users: users, wishlists: wishlists}
}

func (h *UserHandler) List(c echo.Context) error {
	users, err := h.users.List(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, map[string]any{"users": users})
}

func (h *UserHandler) Get(c echo.Context) error {
	user, err := h.users.Get(c.Request().Context(), c.Param("username"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, map[string]any{"user": user})
}

func (h *UserHandler) Update(c echo.Context) error {
	upd := entity.UserUpdate{}
	if err := c.Bind(&upd); err != nil {
		return apperr.BadRequest("invalid request payload")
	}

	user, err := h.users.Update(c.Request().Context(), c.Param("username"), upd)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, map[string]any{"user": user})
}

func (h *UserHandler) Delete(c echo.Context) error {
	username := c.Param("username")
	if _, err := h.users.Delete(c.Request().Context(), username); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, map[string]string{"deleted": username})
}

func (h *UserHandler) ListWishlists(c echo.Context) error {
	wishlists, err := h.wishlists.ListByUser(c.Request().Context(), c.Param("username"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, map[string]any{"wishlists": wishlists})
}

func (h *UserHandler) CreateWishlist(c echo.Context) error {
	req := entity.NewWishlist{}
	if err := c.Bind(&req); err != nil {
		return apperr.BadRequest("invalid request payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	wishlist, err := h.wishlists.Create(c.Request().Context(), c.Param("username"), req)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, map[string]any{"wishlist": wishlist})
}

func (h *UserHandler) ListWishlistsByCategory(c echo.Context) error {
	wishlists, err := h.wishlists.ListByUserAndCategory(
		c.Request().Context(), c.Param("username"), c.Param("category"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, map[string]any{"wishlist": wishlists})
}

func (h *UserHandler) GetWishlist(c echo.Context) error {
	wishlist, err := h.wishlists.GetByTitle(
		c.Request().Context(), c.Param("username"), c.Param("category"), c.Param("title"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, map[string]any{"wishlist": wishlist})
}

func (h *UserHandler) UpdateWishlist(c echo.Context) error {
	upd := entity.WishlistUpdate{}
	if err := c.Bind(&upd); err != nil {
		return apperr.BadRequest("invalid request payload")
	}

	wishlist, err := h.wishlists.Update(
		c.Request().Context(), c.Param("username"), c.Param("category"), c.Param("title"), upd)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, map[string]any{"wishlist": wishlist})
}

func (h *UserHandler) DeleteWishlist(c echo.Context) error {
	username := c.Param("username")
	title := c.Param("title")
	_, err := h.wishlists.Delete(c.Request().Context(), username, c.Param("category"), title)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, map[string]string{
		"deleted": username + "'s wishlist " + title,
	})
}

func (h *UserHandler) AddWishlistItem(c echo.Context) error {
	itemID, err := strconv.Atoi(c.Param("itemId"))
	if err != nil {
		return apperr.BadRequest("invalid item id")
	}

	added, err := h.wishlists.AddItem(
		c.Request().Context(), c.Param("username"), c.Param("category"), c.Param("title"), itemID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, map[string]string{"addedItem": added})
}

func (h *UserHandler) RemoveWishlistItem(c echo.Context) error {
	itemID, err := strconv.Atoi(c.Param("itemId"))
	if err != nil {
		return apperr.BadRequest("invalid item id")
	}

	_, err = h.wishlists.RemoveItem(
		c.Request().Context(), c.Param("username"), c.Param("category"), c.Param("title"), itemID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, map[string]string{
		"deleted": c.Param("itemId") + " from the wishlist " + c.Param("title"),
	})
}
