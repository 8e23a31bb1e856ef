package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"reserva-admin/internal/repository"
)

// DashboardHandler answers the aggregate counters used by the admin UI's
// landing page.
type DashboardHandler struct {
	Repo *repository.DashboardRepo
}

func NewDashboardHandler(r *repository.DashboardRepo) *DashboardHandler {
	return &DashboardHandler{Repo: r}
}

// Stats: GET /dashboard
func (h *DashboardHandler) Stats(c echo.Context) error {
	stats, err := h.Repo.Stats(c.Request().Context())
	if err != nil {
		return writeErr(c, err)
	}
	return c.JSON(http.StatusOK, stats)
}
