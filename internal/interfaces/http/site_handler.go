package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/autopublish-api/internal/application/dto"
	"github.com/jhoicas/autopublish-api/internal/application/usecase"
)

// SiteHandler maneja las peticiones HTTP para sitios (protegido).
type SiteHandler struct {
	uc   *usecase.SiteUseCase
	errs *ErrorWriter
}

// NewSiteHandler construye el handler.
func NewSiteHandler(uc *usecase.SiteUseCase, errs *ErrorWriter) *SiteHandler {
	return &SiteHandler{uc: uc, errs: errs}
}

// List godoc
// @Summary      Listar sitios del usuario
// @Tags         sites
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.SiteListResponse
// @Failure      401  {object}  dto.ErrorResponse
// @Router       /api/sites [get]
func (h *SiteHandler) List(c *fiber.Ctx) error {
	out, err := h.uc.List(c.UserContext(), GetUserID(c))
	if err != nil {
		return h.errs.Respond(c, err)
	}
	return c.JSON(out)
}

// Create godoc
// @Summary      Crear sitio
// @Tags         sites
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateSiteRequest  true  "Datos del sitio"
// @Success      200   {object}  dto.SiteMutationResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      401   {object}  dto.ErrorResponse
// @Router       /api/sites [post]
func (h *SiteHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateSiteRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	out, err := h.uc.Create(c.UserContext(), GetUserID(c), in)
	if err != nil {
		return h.errs.Respond(c, err)
	}
	return c.JSON(dto.SiteMutationResponse{Message: "sitio creado correctamente", Site: *out})
}

// GetByID godoc
// @Summary      Obtener sitio por ID
// @Tags         sites
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID del sitio"
// @Success      200  {object}  dto.SiteEnvelope
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/sites/{id} [get]
func (h *SiteHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.uc.Get(c.UserContext(), GetUserID(c), c.Params("id"))
	if err != nil {
		return h.errs.Respond(c, err)
	}
	return c.JSON(dto.SiteEnvelope{Site: *out})
}

// Update godoc
// @Summary      Actualizar sitio (parcial)
// @Tags         sites
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string                 true  "ID del sitio"
// @Param        body  body  dto.UpdateSiteRequest  true  "Campos a modificar"
// @Success      200   {object}  dto.SiteMutationResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/sites/{id} [put]
func (h *SiteHandler) Update(c *fiber.Ctx) error {
	var in dto.UpdateSiteRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	out, err := h.uc.Update(c.UserContext(), GetUserID(c), c.Params("id"), in)
	if err != nil {
		return h.errs.Respond(c, err)
	}
	return c.JSON(dto.SiteMutationResponse{Message: "sitio actualizado correctamente", Site: *out})
}

// Delete godoc
// @Summary      Eliminar sitio
// @Tags         sites
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID del sitio"
// @Success      200  {object}  dto.MessageResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/sites/{id} [delete]
func (h *SiteHandler) Delete(c *fiber.Ctx) error {
	if err := h.uc.Delete(c.UserContext(), GetUserID(c), c.Params("id")); err != nil {
		return h.errs.Respond(c, err)
	}
	return c.JSON(dto.MessageResponse{Message: "sitio eliminado correctamente"})
}
