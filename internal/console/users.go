package console

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/Skotchmaster/shop_admin/internal/models"
	"github.com/Skotchmaster/shop_admin/internal/transport"
)

type usersData struct {
	Users         []models.User
	Roles         []string
	Selected      *models.User
	ConfirmDelete *models.User
}

// UsersPage lists users. ?edit=<id> opens the edit form and ?delete=<id> the
// delete confirmation; both select by id, never by label text.
func (h *Console) UsersPage(c echo.Context) error {
	s := sessionFrom(c)
	snap, err := h.load(c, s)
	if err != nil {
		return h.loadFailure(c, s, err)
	}
	data := usersData{
		Users:         snap.Users,
		Roles:         models.Roles,
		Selected:      snap.user(queryID(c, "edit")),
		ConfirmDelete: snap.user(queryID(c, "delete")),
	}
	return h.page(c, s, "users.html", "Users", "users", data)
}

func userForm(c echo.Context) (name, email, password string, phone, address *string, role string) {
	return strings.TrimSpace(c.FormValue("name")),
		strings.TrimSpace(c.FormValue("email")),
		c.FormValue("password"),
		optional(strings.TrimSpace(c.FormValue("phone_number"))),
		optional(strings.TrimSpace(c.FormValue("address"))),
		c.FormValue("role")
}

func (h *Console) CreateUser(c echo.Context) error {
	ctx := c.Request().Context()
	s := sessionFrom(c)

	name, email, password, phone, address, role := userForm(c)
	if name == "" || email == "" || password == "" {
		h.flash(ctx, s, "error", "Name, email and password are required")
		return c.Redirect(http.StatusSeeOther, "/users")
	}

	u, err := h.api.CreateUser(ctx, s.Token, transport.UserCreate{
		Name: name, Email: email, Password: password, PhoneNumber: phone, Address: address, Role: role,
	})
	if err != nil {
		return h.apiFailure(c, s, "/users", err)
	}
	h.flash(ctx, s, "success", fmt.Sprintf("User %q created (id %d)", u.Name, u.ID))
	return c.Redirect(http.StatusSeeOther, "/users")
}

func (h *Console) UpdateUser(c echo.Context) error {
	ctx := c.Request().Context()
	s := sessionFrom(c)

	id, ok := pathID(c)
	if !ok {
		h.flash(ctx, s, "error", "Invalid user id")
		return c.Redirect(http.StatusSeeOther, "/users")
	}
	name, email, password, phone, address, role := userForm(c)

	u, err := h.api.UpdateUser(ctx, s.Token, id, transport.UserUpdate{
		Name: name, Email: email, Password: password, PhoneNumber: phone, Address: address, Role: role,
	})
	if err != nil {
		return h.apiFailure(c, s, "/users", err)
	}
	h.flash(ctx, s, "success", fmt.Sprintf("User %q updated", u.Name))
	return c.Redirect(http.StatusSeeOther, "/users")
}

func (h *Console) DeleteUser(c echo.Context) error {
	return h.deleteEntity(c, "/users", "User", func(id uint) (bool, error) {
		return h.api.DeleteUser(c.Request().Context(), sessionFrom(c).Token, id)
	})
}

// deleteEntity runs del only once the confirmation form says yes.
func (h *Console) deleteEntity(c echo.Context, back, kind string, del func(id uint) (bool, error)) error {
	ctx := c.Request().Context()
	s := sessionFrom(c)

	id, ok := pathID(c)
	if !ok {
		h.flash(ctx, s, "error", "Invalid "+strings.ToLower(kind)+" id")
		return c.Redirect(http.StatusSeeOther, back)
	}
	if c.FormValue("confirm") != "yes" {
		h.flash(ctx, s, "info", "Delete cancelled")
		return c.Redirect(http.StatusSeeOther, back)
	}

	found, err := del(id)
	if err != nil {
		return h.apiFailure(c, s, back, err)
	}
	if !found {
		h.flash(ctx, s, "info", fmt.Sprintf("%s %d was already gone", kind, id))
	} else {
		h.flash(ctx, s, "success", fmt.Sprintf("%s %d deleted", kind, id))
	}
	return c.Redirect(http.StatusSeeOther, back)
}
