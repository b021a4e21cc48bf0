package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/autopublish-api/internal/application/usecase"
)

// DashboardHandler maneja los endpoints del dashboard.
type DashboardHandler struct {
	uc   *usecase.DashboardUseCase
	errs *ErrorWriter
}

// NewDashboardHandler construye el handler.
func NewDashboardHandler(uc *usecase.DashboardUseCase, errs *ErrorWriter) *DashboardHandler {
	return &DashboardHandler{uc: uc, errs: errs}
}

// GetSummary devuelve los totales de las tarjetas del dashboard.
// GET /api/dashboard/summary
//
// Respuesta: DashboardSummaryResponse (total_sites, active_sites, total_articles,
// active_automations, token_balance).
func (h *DashboardHandler) GetSummary(c *fiber.Ctx) error {
	summary, err := h.uc.Summary(c.UserContext(), GetIdentity(c))
	if err != nil {
		return h.errs.Respond(c, err)
	}
	return c.JSON(summary)
}
