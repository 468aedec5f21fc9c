package httpserver

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/Skotchmaster/shop_admin/internal/middleware/auth"
	"github.com/Skotchmaster/shop_admin/internal/service"
	"github.com/Skotchmaster/shop_admin/internal/transport"
	"github.com/Skotchmaster/shop_admin/pkg/logging"
)

type OrdersHTTP struct {
	Svc *service.OrderService
}

func (h *OrdersHTTP) CreateOrder(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "orders.create")

	var req transport.OrderCreate
	if err := bindValid(c, l, "create_order", &req); err != nil {
		return err
	}

	order, err := h.Svc.Create(ctx, auth.Actor(c), req)
	if err != nil {
		return fail(l, "create_order", err)
	}

	l.Info("create_order_success", "order_id", order.ID)
	return c.JSON(http.StatusCreated, order)
}

func (h *OrdersHTTP) ListOrders(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "orders.list")

	items, err := h.Svc.List(ctx)
	if err != nil {
		return fail(l, "list_orders", err)
	}
	return c.JSON(http.StatusOK, items)
}

func (h *OrdersHTTP) ListUserOrders(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "orders.list_by_user")

	userID, err := parseID(c, l, "list_user_orders")
	if err != nil {
		return err
	}

	items, err := h.Svc.ListByUser(ctx, userID)
	if err != nil {
		return fail(l, "list_user_orders", err)
	}
	return c.JSON(http.StatusOK, items)
}

func (h *OrdersHTTP) UpdateOrder(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "orders.update")

	id, err := parseID(c, l, "update_order")
	if err != nil {
		return err
	}
	var req transport.OrderCreate
	if err := bindValid(c, l, "update_order", &req); err != nil {
		return err
	}

	order, err := h.Svc.Update(ctx, auth.Actor(c), id, req)
	if err != nil {
		return fail(l, "update_order", err)
	}

	l.Info("update_order_success", "order_id", id)
	return c.JSON(http.StatusOK, order)
}

func (h *OrdersHTTP) DeleteOrder(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "orders.delete")

	id, err := parseID(c, l, "delete_order")
	if err != nil {
		return err
	}

	found, err := h.Svc.Delete(ctx, auth.Actor(c), id)
	if err != nil {
		return fail(l, "delete_order", err)
	}

	l.Info("delete_order_success", "order_id", id, "found", found)
	return c.JSON(http.StatusOK, transport.DeleteResponse{Deleted: true, Found: found})
}
