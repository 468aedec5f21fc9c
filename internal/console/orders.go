package console

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"

	"github.com/Skotchmaster/shop_admin/internal/models"
	"github.com/Skotchmaster/shop_admin/internal/transport"
)

type ordersData struct {
	Orders        []models.Order
	Users         []models.User
	UserNames     map[uint]string
	Statuses      []string
	FilterUser    uint
	Selected      *models.Order
	ConfirmDelete *models.Order
}

func (h *Console) OrdersPage(c echo.Context) error {
	s := sessionFrom(c)
	snap, err := h.load(c, s)
	if err != nil {
		return h.loadFailure(c, s, err)
	}

	data := ordersData{
		Orders:        snap.Orders,
		Users:         snap.Users,
		UserNames:     snap.userNames(),
		Statuses:      models.OrderStatuses,
		FilterUser:    queryID(c, "user"),
		Selected:      snap.order(queryID(c, "edit")),
		ConfirmDelete: snap.order(queryID(c, "delete")),
	}
	if data.FilterUser != 0 {
		mine, err := h.api.ListUserOrders(c.Request().Context(), s.Token, data.FilterUser)
		if err != nil {
			return h.loadFailure(c, s, err)
		}
		data.Orders = mine
	}
	return h.page(c, s, "orders.html", "Orders", "orders", data)
}

func orderForm(c echo.Context) (transport.OrderCreate, error) {
	var req transport.OrderCreate
	uid, ok := formID(c, "user_id")
	if !ok {
		return req, fmt.Errorf("choose a user")
	}
	req.UserID = uid

	amount, err := decimal.NewFromString(strings.TrimSpace(c.FormValue("total_amount")))
	if err != nil {
		return req, fmt.Errorf("total amount must be a number")
	}
	req.TotalAmount = &amount
	req.Status = c.FormValue("status")
	return req, nil
}

func (h *Console) CreateOrder(c echo.Context) error {
	ctx := c.Request().Context()
	s := sessionFrom(c)

	req, err := orderForm(c)
	if err != nil {
		h.flash(ctx, s, "error", err.Error())
		return c.Redirect(http.StatusSeeOther, "/orders")
	}

	o, err := h.api.CreateOrder(ctx, s.Token, req)
	if err != nil {
		return h.apiFailure(c, s, "/orders", err)
	}
	h.flash(ctx, s, "success", fmt.Sprintf("Order %d created", o.ID))
	return c.Redirect(http.StatusSeeOther, "/orders")
}

func (h *Console) UpdateOrder(c echo.Context) error {
	ctx := c.Request().Context()
	s := sessionFrom(c)

	id, ok := pathID(c)
	if !ok {
		h.flash(ctx, s, "error", "Invalid order id")
		return c.Redirect(http.StatusSeeOther, "/orders")
	}
	req, err := orderForm(c)
	if err != nil {
		h.flash(ctx, s, "error", err.Error())
		return c.Redirect(http.StatusSeeOther, fmt.Sprintf("/orders?edit=%d", id))
	}

	o, err := h.api.UpdateOrder(ctx, s.Token, id, req)
	if err != nil {
		return h.apiFailure(c, s, "/orders", err)
	}
	h.flash(ctx, s, "success", fmt.Sprintf("Order %d updated", o.ID))
	return c.Redirect(http.StatusSeeOther, "/orders")
}

func (h *Console) DeleteOrder(c echo.Context) error {
	return h.deleteEntity(c, "/orders", "Order", func(id uint) (bool, error) {
		return h.api.DeleteOrder(c.Request().Context(), sessionFrom(c).Token, id)
	})
}
