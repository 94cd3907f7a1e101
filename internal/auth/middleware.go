package auth

import (
	echojwt "github.com/labstack/echo-jwt/v4"
	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"

	"wishlist-service/internal/apperr"
)

// contextKey is where the verified token lands on the echo context.
const contextKey = "user"

// Middleware decodes an optional bearer credential on every request. A valid
// token attaches the identity to the request context; a missing or invalid
// one lets the request proceed anonymously. It never rejects a request by
// itself — the guards below do that.
func Middleware(secret []byte) echo.MiddlewareFunc {
	return echojwt.WithConfig(echojwt.Config{
		SigningKey: secret,
		ContextKey: contextKey,
		NewClaimsFunc: func(c echo.Context) jwt.Claims {
			return new(Claims)
		},
		ContinueOnIgnoredError: true,
		ErrorHandler: func(c echo.Context, err error) error {
			// Swallow every verification failure and continue anonymous.
			return nil
		},
	})
}

// Identity returns the authenticated identity attached to the request, or
// false when the request is anonymous.
func Identity(c echo.Context) (*Claims, bool) {
	token, ok := c.Get(contextKey).(*jwt.Token)
	if !ok {
		return nil, false
	}
	claims, ok := token.Claims.(*Claims)
	if !ok {
		return nil, false
	}
	return claims, true
}

// RequireLoggedIn admits any authenticated identity.
func RequireLoggedIn(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		if _, ok := Identity(c); !ok {
			return apperr.Unauthorized("authentication required")
		}
		return next(c)
	}
}

// RequireAdmin admits only identities carrying the admin role.
func RequireAdmin(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		claims, ok := Identity(c)
		if !ok || !claims.IsAdmin {
			return apperr.Unauthorized("admin privileges required")
		}
		return next(c)
	}
}

// RequireSelfOrAdmin admits admins acting on anyone and non-admins acting
// on the username addressed by the route.
func RequireSelfOrAdmin(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		claims, ok := Identity(c)
		if !ok || (!claims.IsAdmin && claims.Username != c.Param("username")) {
			return apperr.Unauthorized("not authorized for this user")
		}
		return next(c)
	}
}
