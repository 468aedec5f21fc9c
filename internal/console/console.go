package console

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"github.com/Skotchmaster/shop_admin/internal/apiclient"
	"github.com/Skotchmaster/shop_admin/internal/middleware/csrf"
	loggingmw "github.com/Skotchmaster/shop_admin/pkg/middleware/logging"
)

const (
	sessionCookie = "shop_console_session"
	sessionKey    = "console_session"
)

type Config struct {
	API          *apiclient.Client
	Sessions     SessionStore
	SessionTTL   time.Duration
	CookieSecure bool
	Logger       *slog.Logger
}

type Console struct {
	api          *apiclient.Client
	sessions     SessionStore
	sessionTTL   time.Duration
	cookieSecure bool
}

// New builds the console HTTP handler.
func New(cfg Config) *echo.Echo {
	if cfg.SessionTTL == 0 {
		cfg.SessionTTL = 12 * time.Hour
	}
	if cfg.Sessions == nil {
		cfg.Sessions = NewMemoryStore()
	}
	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}

	h := &Console{
		api:          cfg.API,
		sessions:     cfg.Sessions,
		sessionTTL:   cfg.SessionTTL,
		cookieSecure: cfg.CookieSecure,
	}

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Renderer = newRenderer()

	e.Pre(middleware.RemoveTrailingSlash())
	e.Use(
		middleware.Recover(),
		middleware.RequestIDWithConfig(middleware.RequestIDConfig{Generator: uuid.NewString}),
		loggingmw.RequestLogger(cfg.Logger),
		csrf.Middleware(csrf.Config{Secure: cfg.CookieSecure, EnforceSameOrigin: true}),
	)

	e.GET("/health/live", func(c echo.Context) error { return c.NoContent(http.StatusOK) })
	e.GET("/login", h.LoginPage)
	e.POST("/login", h.Login)
	e.POST("/logout", h.Logout)

	app := e.Group("", h.requireSession)
	app.GET("/", h.Home)

	app.GET("/users", h.UsersPage)
	app.POST("/users", h.CreateUser)
	app.POST("/users/:id", h.UpdateUser)
	app.POST("/users/:id/delete", h.DeleteUser)

	app.GET("/products", h.ProductsPage)
	app.POST("/products", h.CreateProduct)
	app.POST("/products/:id", h.UpdateProduct)
	app.POST("/products/:id/delete", h.DeleteProduct)

	app.GET("/orders", h.OrdersPage)
	app.POST("/orders", h.CreateOrder)
	app.POST("/orders/:id", h.UpdateOrder)
	app.POST("/orders/:id/delete", h.DeleteOrder)

	app.GET("/logs", h.LogsPage)

	return e
}

func (h *Console) requireSession(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		s := h.currentSession(c)
		if s == nil {
			return c.Redirect(http.StatusSeeOther, "/login")
		}
		c.Set(sessionKey, s)
		return next(c)
	}
}

func (h *Console) currentSession(c echo.Context) *Session {
	ck, err := c.Cookie(sessionCookie)
	if err != nil || ck.Value == "" {
		return nil
	}
	s, err := h.sessions.Get(c.Request().Context(), ck.Value)
	if err != nil {
		return nil
	}
	return s
}

func sessionFrom(c echo.Context) *Session {
	s, _ := c.Get(sessionKey).(*Session)
	return s
}

func (h *Console) setSessionCookie(c echo.Context, id string, maxAge int) {
	c.SetCookie(&http.Cookie{
		Name:     sessionCookie,
		Value:    id,
		Path:     "/",
		HttpOnly: true,
		Secure:   h.cookieSecure,
		SameSite: http.SameSiteLaxMode,
		MaxAge:   maxAge,
	})
}

// flash stores a one-shot banner shown on the next page render.
func (h *Console) flash(ctx context.Context, s *Session, typ, msg string) {
	s.Flash = &Flash{Type: typ, Message: msg}
	_ = h.sessions.Save(ctx, s)
}

func (h *Console) popFlash(ctx context.Context, s *Session) *Flash {
	f := s.Flash
	if f != nil {
		s.Flash = nil
		_ = h.sessions.Save(ctx, s)
	}
	return f
}

func (h *Console) page(c echo.Context, s *Session, name, title, page string, data any) error {
	pd := PageData{
		Title:     title,
		Page:      page,
		CSRFToken: csrf.Token(c),
		Data:      data,
	}
	if s != nil {
		pd.AdminName = s.AdminName
		pd.Flash = h.popFlash(c.Request().Context(), s)
	}
	return c.Render(http.StatusOK, name, pd)
}
