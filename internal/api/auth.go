package api

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"wishlist-service/internal/apperr"
	"wishlist-service/internal/auth"
	"wishlist-service/internal/entity"
	"wishlist-service/internal/service"
)

type AuthHandler struct {
	users  *service.UserService
	secret []byte
}

func NewAuthHandler(users *service.UserService, secret []byte) *AuthHandler {
	return &AuthHandler{users: users, secret: secret}
}

// Register creates a user and returns a fresh credential. Registration can
// never mint an admin.
func (h *AuthHandler) Register(c echo.Context) error {
	req := entity.RegisterRequest{}
	if err := c.Bind(&req); err != nil {
		return apperr.BadRequest("invalid request payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	user, err := h.users.Register(c.Request().Context(), req)
	if err != nil {
		return err
	}

	token, err := auth.GenerateToken(h.secret, user.Username, user.IsAdmin)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, map[string]string{"token": token})
}

// Login authenticates a username/password pair and returns a credential.
func (h *AuthHandler) Login(c echo.Context) error {
	req := entity.LoginRequest{}
	if err := c.Bind(&req); err != nil {
		return apperr.BadRequest("invalid request payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	user, err := h.users.Authenticate(c.Request().Context(), req.Username, req.Password)
	if err != nil {
		return err
	}

	token, err := auth.GenerateToken(h.secret, user.Username, user.IsAdmin)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, map[string]string{"token": token})
}
