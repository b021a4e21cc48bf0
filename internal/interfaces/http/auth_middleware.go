package http

import (
	"context"
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/autopublish-api/internal/application/dto"
	"github.com/jhoicas/autopublish-api/internal/domain"
	"github.com/jhoicas/autopublish-api/internal/domain/entity"
)

// LocalIdentity clave de Locals con la identidad resuelta.
const LocalIdentity = "identity"

// identityResolver es lo que necesita el middleware; lo implementa *auth.AuthUseCase.
type identityResolver interface {
	ResolveIdentity(ctx context.Context, token string) (*entity.Identity, error)
}

// AuthMiddleware valida el Bearer Token y deja la identidad del usuario en c.Locals.
// Sin identidad válida la petición termina en 401.
func AuthMiddleware(resolver identityResolver, errs *ErrorWriter) fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := c.Get(fiber.HeaderAuthorization)
		if authHeader == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Error: "Authorization header requerido", Code: "MISSING_TOKEN"})
		}
		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Error: "formato: Bearer <token>", Code: "INVALID_TOKEN"})
		}
		tokenString := strings.TrimSpace(parts[1])
		if tokenString == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Error: "token vacío", Code: "MISSING_TOKEN"})
		}
		identity, err := resolver.ResolveIdentity(c.UserContext(), tokenString)
		if err != nil {
			if errors.Is(err, domain.ErrUnauthorized) {
				return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Error: "token inválido o expirado", Code: "INVALID_TOKEN"})
			}
			return errs.Respond(c, err)
		}
		c.Locals(LocalIdentity, identity)
		return c.Next()
	}
}

// GetIdentity devuelve la identidad del contexto (después del middleware de auth) o nil.
func GetIdentity(c *fiber.Ctx) *entity.Identity {
	id, _ := c.Locals(LocalIdentity).(*entity.Identity)
	return id
}

// GetUserID devuelve el id del usuario autenticado o "" si no hay identidad.
func GetUserID(c *fiber.Ctx) string {
	if id := GetIdentity(c); id != nil {
		return id.UserID
	}
	return ""
}
