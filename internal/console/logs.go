package console

import (
	"github.com/labstack/echo/v4"

	"github.com/Skotchmaster/shop_admin/internal/models"
)

type logsData struct {
	Logs []models.AdminActivityLog
}

func (h *Console) LogsPage(c echo.Context) error {
	s := sessionFrom(c)
	if _, err := h.load(c, s); err != nil {
		return h.loadFailure(c, s, err)
	}
	logs, err := h.api.ListLogs(c.Request().Context(), s.Token)
	if err != nil {
		return h.loadFailure(c, s, err)
	}
	return h.page(c, s, "logs.html", "Activity Log", "logs", logsData{Logs: logs})
}
