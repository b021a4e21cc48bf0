package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/autopublish-api/internal/application/dto"
	"github.com/jhoicas/autopublish-api/internal/domain"
	"github.com/jhoicas/autopublish-api/pkg/logger"
)

// ErrorWriter traduce errores de dominio a respuestas HTTP.
// Fuera de development los 500 no exponen el detalle interno.
type ErrorWriter struct {
	log *logger.Logger
	dev bool
}

// NewErrorWriter construye el traductor de errores.
func NewErrorWriter(log *logger.Logger, dev bool) *ErrorWriter {
	return &ErrorWriter{log: log, dev: dev}
}

// Respond escribe la respuesta de error correspondiente a err.
func (w *ErrorWriter) Respond(c *fiber.Ctx, err error) error {
	var verr *domain.ValidationError
	switch {
	case errors.As(err, &verr):
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: "validación fallida", Code: "VALIDATION", Details: verr.Issues})
	case errors.Is(err, domain.ErrUnauthorized):
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Error: "no autorizado", Code: "UNAUTHORIZED"})
	case errors.Is(err, domain.ErrNotFound):
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Error: "recurso no encontrado", Code: "NOT_FOUND"})
	case errors.Is(err, domain.ErrConflict):
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: domain.ErrConflict.Error(), Code: "CONFLICT"})
	case errors.Is(err, domain.ErrEmailAlreadyExists):
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: domain.ErrEmailAlreadyExists.Error(), Code: "EMAIL_EXISTS"})
	}

	w.log.Error().Err(err).
		Str("method", c.Method()).
		Str("path", c.Path()).
		Msg("error interno")
	resp := dto.ErrorResponse{Error: "error interno del servidor", Code: "INTERNAL"}
	if w.dev {
		resp.Details = err.Error()
	}
	return c.Status(fiber.StatusInternalServerError).JSON(resp)
}

func invalidBody(c *fiber.Ctx) error {
	return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: "cuerpo inválido", Code: "INVALID_BODY"})
}
