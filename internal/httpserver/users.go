package httpserver

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/Skotchmaster/shop_admin/internal/middleware/auth"
	"github.com/Skotchmaster/shop_admin/internal/service"
	"github.com/Skotchmaster/shop_admin/internal/transport"
	"github.com/Skotchmaster/shop_admin/pkg/logging"
)

type UsersHTTP struct {
	Svc *service.UserService
}

func (h *UsersHTTP) CreateUser(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "users.create")

	var req transport.UserCreate
	if err := bindValid(c, l, "create_user", &req); err != nil {
		return err
	}

	user, err := h.Svc.Create(ctx, auth.Actor(c), req)
	if err != nil {
		return fail(l, "create_user", err)
	}

	l.Info("create_user_success", "user_id", user.ID)
	return c.JSON(http.StatusCreated, user)
}

func (h *UsersHTTP) ListUsers(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "users.list")

	users, err := h.Svc.List(ctx)
	if err != nil {
		return fail(l, "list_users", err)
	}
	return c.JSON(http.StatusOK, users)
}

func (h *UsersHTTP) UpdateUser(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "users.update")

	id, err := parseID(c, l, "update_user")
	if err != nil {
		return err
	}
	var req transport.UserUpdate
	if err := bindValid(c, l, "update_user", &req); err != nil {
		return err
	}

	user, err := h.Svc.Update(ctx, auth.Actor(c), id, req)
	if err != nil {
		return fail(l, "update_user", err)
	}

	l.Info("update_user_success", "user_id", id)
	return c.JSON(http.StatusOK, user)
}

func (h *UsersHTTP) DeleteUser(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "users.delete")

	id, err := parseID(c, l, "delete_user")
	if err != nil {
		return err
	}

	found, err := h.Svc.Delete(ctx, auth.Actor(c), id)
	if err != nil {
		return fail(l, "delete_user", err)
	}

	l.Info("delete_user_success", "user_id", id, "found", found)
	return c.JSON(http.StatusOK, transport.DeleteResponse{Deleted: true, Found: found})
}
