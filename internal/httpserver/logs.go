package httpserver

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/Skotchmaster/shop_admin/internal/service"
	"github.com/Skotchmaster/shop_admin/pkg/logging"
)

type LogsHTTP struct {
	Svc *service.LogService
}

func (h *LogsHTTP) ListLogs(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "admin_logs.list")

	items, err := h.Svc.List(ctx)
	if err != nil {
		return fail(l, "list_admin_logs", err)
	}
	return c.JSON(http.StatusOK, items)
}
