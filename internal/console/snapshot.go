package console

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/Skotchmaster/shop_admin/internal/apiclient"
	"github.com/Skotchmaster/shop_admin/internal/models"
)

// snapshot is the full data set fetched on every page render.
type snapshot struct {
	Users    []models.User
	Products []models.Product
	Orders   []models.Order
}

func (h *Console) load(c echo.Context, s *Session) (*snapshot, error) {
	ctx := c.Request().Context()
	users, err := h.api.ListUsers(ctx, s.Token)
	if err != nil {
		return nil, err
	}
	products, err := h.api.ListProducts(ctx, s.Token)
	if err != nil {
		return nil, err
	}
	orders, err := h.api.ListOrders(ctx, s.Token)
	if err != nil {
		return nil, err
	}
	return &snapshot{Users: users, Products: products, Orders: orders}, nil
}

// loadFailure renders an error page in place, since redirecting back to the
// same failing page would loop.
func (h *Console) loadFailure(c echo.Context, s *Session, err error) error {
	status := apiclient.StatusOf(err)
	if status == http.StatusUnauthorized || status == http.StatusForbidden {
		_ = h.sessions.Delete(c.Request().Context(), s.ID)
		h.setSessionCookie(c, "", -1)
		return c.Redirect(http.StatusSeeOther, "/login")
	}
	s.Flash = &Flash{Type: "error", Message: "Could not load data: " + err.Error()}
	return h.page(c, s, "home.html", "Home", "home", homeData{})
}

func (sn *snapshot) user(id uint) *models.User {
	for i := range sn.Users {
		if sn.Users[i].ID == id {
			return &sn.Users[i]
		}
	}
	return nil
}

func (sn *snapshot) product(id uint) *models.Product {
	for i := range sn.Products {
		if sn.Products[i].ID == id {
			return &sn.Products[i]
		}
	}
	return nil
}

func (sn *snapshot) order(id uint) *models.Order {
	for i := range sn.Orders {
		if sn.Orders[i].ID == id {
			return &sn.Orders[i]
		}
	}
	return nil
}

// userNames maps user ids to display names for tables and option labels.
func (sn *snapshot) userNames() map[uint]string {
	out := make(map[uint]string, len(sn.Users))
	for _, u := range sn.Users {
		out[u.ID] = u.Name
	}
	return out
}

// queryID reads an optional positive id from the query string.
func queryID(c echo.Context, name string) uint {
	n, err := strconv.ParseUint(c.QueryParam(name), 10, 64)
	if err != nil {
		return 0
	}
	return uint(n)
}

func pathID(c echo.Context) (uint, bool) {
	n, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || n == 0 {
		return 0, false
	}
	return uint(n), true
}

func formID(c echo.Context, name string) (uint, bool) {
	n, err := strconv.ParseUint(c.FormValue(name), 10, 64)
	if err != nil || n == 0 {
		return 0, false
	}
	return uint(n), true
}

func optional(v string) *string {
	if v == "" {
		return nil
	}
	return &v
}
