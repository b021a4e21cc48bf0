package http

import (
	"context"

	"github.com/gofiber/fiber/v2"
)

// userCounter lo implementan los repositorios de usuarios de postgres y sqlite.
type userCounter interface {
	Count(ctx context.Context) (int, error)
}

// HealthHandler expone el estado del servicio y de la base de datos.
type HealthHandler struct {
	service string
	users   userCounter
	errs    *ErrorWriter
}

// NewHealthHandler construye el handler.
func NewHealthHandler(service string, users userCounter, errs *ErrorWriter) *HealthHandler {
	return &HealthHandler{service: service, users: users, errs: errs}
}

// Health godoc
// @Summary      Estado del servicio
// @Tags         health
// @Produce      json
// @Success      200  {object}  map[string]string
// @Router       /health [get]
func (h *HealthHandler) Health(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"status": "ok", "service": h.service})
}

// Database godoc
// @Summary      Estado de la base de datos
// @Tags         health
// @Produce      json
// @Success      200  {object}  map[string]interface{}
// @Failure      500  {object}  dto.ErrorResponse
// @Router       /health/db [get]
func (h *HealthHandler) Database(c *fiber.Ctx) error {
	n, err := h.users.Count(c.UserContext())
	if err != nil {
		return h.errs.Respond(c, err)
	}
	return c.JSON(fiber.Map{"status": "ok", "database": "connected", "users": n})
}
