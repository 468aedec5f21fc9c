package httpserver

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"golang.org/x/time/rate"

	"github.com/Skotchmaster/shop_admin/internal/middleware/auth"
	"github.com/Skotchmaster/shop_admin/internal/transport"
	loggingmw "github.com/Skotchmaster/shop_admin/pkg/middleware/logging"
)

type Deps struct {
	Users    *UsersHTTP
	Products *ProductsHTTP
	Orders   *OrdersHTTP
	Logs     *LogsHTTP
	Auth     *AuthHTTP

	JWTSecret    []byte
	AuthRequired bool
	// LoginRate is requests per second per client IP on /auth/login.
	// Zero disables the limiter.
	LoginRate float64
	Ready     func(ctx context.Context) error
}

// NewEcho builds the echo instance with the shared middleware chain.
func NewEcho(base *slog.Logger, allowOrigins []string) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Validator = transport.NewValidator()

	e.Pre(middleware.RemoveTrailingSlash())
	e.Use(
		middleware.Recover(),
		middleware.RequestIDWithConfig(middleware.RequestIDConfig{Generator: uuid.NewString}),
		loggingmw.RequestLogger(base),
	)
	if len(allowOrigins) > 0 {
		e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
			AllowOrigins: allowOrigins,
			AllowHeaders: []string{echo.HeaderAuthorization, echo.HeaderContentType, echo.HeaderXRequestID},
		}))
	}
	return e
}

func Register(e *echo.Echo, d *Deps) {
	e.GET("/health/live", func(c echo.Context) error { return c.NoContent(http.StatusOK) })
	e.GET("/health/ready", func(c echo.Context) error {
		if d.Ready != nil {
			if err := d.Ready(c.Request().Context()); err != nil {
				return echo.NewHTTPError(http.StatusServiceUnavailable, "database unavailable")
			}
		}
		return c.NoContent(http.StatusOK)
	})

	var loginMW []echo.MiddlewareFunc
	if d.LoginRate > 0 {
		loginMW = append(loginMW, loginLimiter(d.LoginRate))
	}
	e.POST("/auth/login", d.Auth.Login, loginMW...)

	authMW := auth.Middlewares(auth.Config{Secret: d.JWTSecret, Required: d.AuthRequired})

	users := e.Group("/users", authMW...)
	users.POST("", d.Users.CreateUser)
	users.GET("", d.Users.ListUsers)
	users.PUT("/:id", d.Users.UpdateUser)
	users.DELETE("/:id", d.Users.DeleteUser)

	products := e.Group("/products", authMW...)
	products.POST("", d.Products.CreateProduct)
	products.GET("", d.Products.ListProducts)
	products.GET("/search", d.Products.SearchProducts)
	products.PUT("/:id", d.Products.UpdateProduct)
	products.DELETE("/:id", d.Products.DeleteProduct)

	orders := e.Group("/orders", authMW...)
	orders.POST("", d.Orders.CreateOrder)
	orders.GET("", d.Orders.ListOrders)
	orders.GET("/user/:id", d.Orders.ListUserOrders)
	orders.PUT("/:id", d.Orders.UpdateOrder)
	orders.DELETE("/:id", d.Orders.DeleteOrder)

	e.GET("/admin-logs", d.Logs.ListLogs, authMW...)
}

func loginLimiter(perSecond float64) echo.MiddlewareFunc {
	burst := int(perSecond)
	if burst < 1 {
		burst = 1
	}
	return middleware.RateLimiterWithConfig(middleware.RateLimiterConfig{
		Skipper: middleware.DefaultSkipper,
		Store: middleware.NewRateLimiterMemoryStoreWithConfig(middleware.RateLimiterMemoryStoreConfig{
			Rate:      rate.Limit(perSecond),
			Burst:     burst,
			ExpiresIn: 3 * time.Minute,
		}),
		IdentifierExtractor: func(c echo.Context) (string, error) {
			return c.RealIP(), nil
		},
		ErrorHandler: func(c echo.Context, err error) error {
			return echo.NewHTTPError(http.StatusForbidden, "cannot identify client")
		},
		DenyHandler: func(c echo.Context, identifier string, err error) error {
			return echo.NewHTTPError(http.StatusTooManyRequests, "too many login attempts")
		},
	})
}
