package console

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/Skotchmaster/shop_admin/internal/apiclient"
	"github.com/Skotchmaster/shop_admin/internal/models"
	"github.com/Skotchmaster/shop_admin/pkg/logging"
)

type loginData struct {
	Email   string
	Error   bool
	Message string
}

func (h *Console) LoginPage(c echo.Context) error {
	if h.currentSession(c) != nil {
		return c.Redirect(http.StatusSeeOther, "/")
	}
	return h.page(c, nil, "login.html", "Admin Login", "login", loginData{})
}

// Login exchanges credentials for an API token kept server side.
func (h *Console) Login(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "console.login")

	email := strings.TrimSpace(c.FormValue("email"))
	password := c.FormValue("password")

	res, err := h.api.Login(ctx, email, password)
	if err != nil {
		data := loginData{Email: email, Error: true, Message: "Invalid email or password"}
		switch apiclient.StatusOf(err) {
		case http.StatusUnauthorized, http.StatusBadRequest:
		case http.StatusForbidden:
			data.Message = "This account is not an admin"
		case http.StatusTooManyRequests:
			data.Message = "Too many attempts, try again shortly"
		default:
			l.Error("login_error", "reason", "api unavailable", "error", err)
			data.Message = "Login is unavailable right now"
		}
		l.Warn("login_failed", "email", email, "error", err)
		return h.page(c, nil, "login.html", "Admin Login", "login", data)
	}

	exp := time.Now().Add(h.sessionTTL)
	if res.ExpiresAt.Before(exp) {
		exp = res.ExpiresAt
	}
	s := &Session{
		ID:        uuid.NewString(),
		Token:     res.AccessToken,
		AdminName: res.Name,
		ExpiresAt: exp,
		Flash:     &Flash{Type: "success", Message: "Welcome, " + res.Name},
	}
	if err := h.sessions.Save(ctx, s); err != nil {
		l.Error("login_error", "reason", "cannot save session", "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "cannot start session")
	}
	h.setSessionCookie(c, s.ID, int(time.Until(exp).Seconds()))

	l.Info("login_success", "admin", res.Name)
	return c.Redirect(http.StatusSeeOther, "/")
}

func (h *Console) Logout(c echo.Context) error {
	if s := h.currentSession(c); s != nil {
		_ = h.sessions.Delete(c.Request().Context(), s.ID)
	}
	h.setSessionCookie(c, "", -1)
	return c.Redirect(http.StatusSeeOther, "/login")
}

// apiFailure turns an API error into a flash banner, or ends the session when
// the token is no longer accepted.
func (h *Console) apiFailure(c echo.Context, s *Session, back string, err error) error {
	ctx := c.Request().Context()
	status := apiclient.StatusOf(err)
	if status == http.StatusUnauthorized || status == http.StatusForbidden {
		_ = h.sessions.Delete(ctx, s.ID)
		h.setSessionCookie(c, "", -1)
		return c.Redirect(http.StatusSeeOther, "/login")
	}

	msg := err.Error()
	var apiErr *apiclient.APIError
	if errors.As(err, &apiErr) {
		msg = apiErr.Message
	} else {
		logging.FromContext(ctx).Error("api_error", "error", err)
		msg = "The API is unavailable"
	}
	h.flash(ctx, s, "error", msg)
	return c.Redirect(http.StatusSeeOther, back)
}

type homeData struct {
	Users    int
	Products int
	Orders   int
	Admins   int
}

func (h *Console) Home(c echo.Context) error {
	s := sessionFrom(c)
	snap, err := h.load(c, s)
	if err != nil {
		return h.loadFailure(c, s, err)
	}
	data := homeData{Users: len(snap.Users), Products: len(snap.Products), Orders: len(snap.Orders)}
	for _, u := range snap.Users {
		if u.Role == models.RoleAdmin {
			data.Admins++
		}
	}
	return h.page(c, s, "home.html", "Home", "home", data)
}
