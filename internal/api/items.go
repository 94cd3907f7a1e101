package api

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"wishlist-service/internal/apperr"
	"wishlist-service/internal/entity"
	"wishlist-service/internal/service"
)

type ItemHandler struct {
	items *service.ItemService
}

func NewItemHandler(items *service.ItemService) *ItemHandler {
	return &ItemHandler{items: items}
}

func (h *ItemHandler) List(c echo.Context) error {
	f := entity.ItemFilter{}
	if err := c.Bind(&f); err != nil {
		return apperr.BadRequest("invalid query parameters")
	}

	items, err := h.items.List(c.Request().Context(), f)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, map[string]any{"items": items})
}

func (h *ItemHandler) Get(c echo.Context) error {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return apperr.BadRequest("invalid item id")
	}

	item, err := h.items.Get(c.Request().Context(), id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, map[string]any{"item": item})
}

// Create inserts an item and responds with the fully denormalized row.
func (h *ItemHandler) Create(c echo.Context) error {
	req := entity.NewItem{}
	if err := c.Bind(&req); err != nil {
		return apperr.BadRequest("invalid request payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	item, err := h.items.Create(c.Request().Context(), req)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, map[string]any{"newItem": item})
}

func (h *ItemHandler) Update(c echo.Context) error {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return apperr.BadRequest("invalid item id")
	}

	upd := entity.ItemUpdate{}
	if err := c.Bind(&upd); err != nil {
		return apperr.BadRequest("invalid request payload")
	}

	item, err := h.items.Update(c.Request().Context(), id, upd)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, map[string]any{"newItem": item})
}

func (h *ItemHandler) Delete(c echo.Context) error {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return apperr.BadRequest("invalid item id")
	}

	if _, err := h.items.Delete(c.Request().Context(), id); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, map[string]string{"deleted": "item with id " + c.Param("id")})
}

func (h *ItemHandler) ListCategories(c echo.Context) error {
	categories, err := h.items.ListCategories(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, map[string]any{"categories": categories})
}

func (h *ItemHandler) CreateCategory(c echo.Context) error {
	req := entity.NewCategory{}
	if err := c.Bind(&req); err != nil {
		return apperr.BadRequest("invalid request payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	category, err := h.items.CreateCategory(c.Request().Context(), req)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, map[string]any{"category": category})
}

func (h *ItemHandler) ListByCategory(c echo.Context) error {
	items, err := h.items.ListItemsOfCategory(c.Request().Context(), c.Param("category"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, map[string]any{"items": items})
}

func (h *ItemHandler) DeleteCategory(c echo.Context) error {
	category := c.Param("category")
	if _, err := h.items.DeleteCategory(c.Request().Context(), category); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, map[string]string{"deleted": category})
}
