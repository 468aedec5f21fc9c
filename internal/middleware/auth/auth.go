package auth

import (
	"net/http"

	"github.com/golang-jwt/jwt/v5"
	echojwt "github.com/labstack/echo-jwt/v4"
	"github.com/labstack/echo/v4"

	"github.com/Skotchmaster/shop_admin/internal/models"
	"github.com/Skotchmaster/shop_admin/pkg/logging"
	"github.com/Skotchmaster/shop_admin/pkg/tokens"
)

const contextKey = "user"

type Config struct {
	Secret []byte
	// Required rejects requests without a bearer token. When false a token
	// is still verified if present.
	Required bool
}

// Middlewares returns the JWT check followed by the admin role check.
func Middlewares(cfg Config) []echo.MiddlewareFunc {
	return []echo.MiddlewareFunc{jwtMiddleware(cfg), requireAdmin}
}

func jwtMiddleware(cfg Config) echo.MiddlewareFunc {
	return echojwt.WithConfig(echojwt.Config{
		SigningKey:    cfg.Secret,
		SigningMethod: "HS256",
		ContextKey:    contextKey,
		TokenLookup:   "header:Authorization:Bearer ",
		NewClaimsFunc: func(echo.Context) jwt.Claims { return new(tokens.AccessClaims) },
		Skipper: func(c echo.Context) bool {
			return !cfg.Required && c.Request().Header.Get(echo.HeaderAuthorization) == ""
		},
		ErrorHandler: func(c echo.Context, err error) error {
			logging.FromContext(c.Request().Context()).Warn("auth_error", "status", 401, "reason", "invalid or missing token", "error", err)
			return echo.NewHTTPError(http.StatusUnauthorized, "invalid or missing token")
		},
	})
}

func requireAdmin(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		claims := Claims(c)
		if claims == nil {
			return next(c)
		}
		if claims.Role != models.RoleAdmin {
			logging.FromContext(c.Request().Context()).Warn("auth_error", "status", 403, "reason", "not an admin", "sub", claims.Subject)
			return echo.NewHTTPError(http.StatusForbidden, "admin role required")
		}
		return next(c)
	}
}

// Claims returns the verified token claims, or nil when no token was sent.
func Claims(c echo.Context) *tokens.AccessClaims {
	tok, ok := c.Get(contextKey).(*jwt.Token)
	if !ok || tok == nil {
		return nil
	}
	claims, ok := tok.Claims.(*tokens.AccessClaims)
	if !ok {
		return nil
	}
	return claims
}

// Actor is the admin name recorded in audit rows.
func Actor(c echo.Context) string {
	if claims := Claims(c); claims != nil && claims.Name != "" {
		return claims.Name
	}
	return models.AnonymousActor
}
