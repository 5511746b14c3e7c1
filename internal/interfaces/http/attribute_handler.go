package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/catalogo-api/internal/application/catalog"
	"github.com/jhoicas/catalogo-api/internal/application/dto"
)

// AttributeHandler maneja el esquema de atributos anidado bajo /categories/:id/attributes.
type AttributeHandler struct {
	uc *catalog.AttributeUseCase
}

// NewAttributeHandler construye el handler.
func NewAttributeHandler(uc *catalog.AttributeUseCase) *AttributeHandler {
	return &AttributeHandler{uc: uc}
}

// Create godoc
// @Summary      Declarar atributo en una categoría
// @Tags         attributes
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID de la categoría"
// @Param        body  body  dto.CreateAttributeRequest  true  "Definición del atributo"
// @Success      201   {object}  dto.AttributeResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/categories/{id}/attributes [post]
func (h *AttributeHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateAttributeRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	out, err := h.uc.Create(c.UserContext(), c.Params("id"), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// List godoc
// @Summary      Listar atributos de una categoría
// @Tags         attributes
// @Produce      json
// @Param        id   path  string  true  "ID de la categoría"
// @Success      200  {object}  dto.AttributeListResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/categories/{id}/attributes [get]
func (h *AttributeHandler) List(c *fiber.Ctx) error {
	out, err := h.uc.List(c.UserContext(), c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// GetByID godoc
// @Summary      Obtener atributo
// @Tags         attributes
// @Produce      json
// @Param        id      path  string  true  "ID de la categoría"
// @Param        attrId  path  string  true  "ID del atributo"
// @Success      200     {object}  dto.AttributeResponse
// @Failure      404     {object}  dto.ErrorResponse
// @Router       /api/categories/{id}/attributes/{attrId} [get]
func (h *AttributeHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.uc.GetByID(c.UserContext(), c.Params("id"), c.Params("attrId"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Update godoc
// @Summary      Actualizar atributo
// @Tags         attributes
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id      path  string  true  "ID de la categoría"
// @Param        attrId  path  string  true  "ID del atributo"
// @Param        body    body  dto.UpdateAttributeRequest  true  "Campos a actualizar"
// @Success      200     {object}  dto.AttributeResponse
// @Failure      400     {object}  dto.ErrorResponse
// @Failure      404     {object}  dto.ErrorResponse
// @Failure      409     {object}  dto.ErrorResponse
// @Router       /api/categories/{id}/attributes/{attrId} [put]
func (h *AttributeHandler) Update(c *fiber.Ctx) error {
	var in dto.UpdateAttributeRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	out, err := h.uc.Update(c.UserContext(), c.Params("id"), c.Params("attrId"), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Delete godoc
// @Summary      Eliminar atributo y sus valores
// @Tags         attributes
// @Security     Bearer
// @Param        id      path  string  true  "ID de la categoría"
// @Param        attrId  path  string  true  "ID del atributo"
// @Success      204
// @Failure      404     {object}  dto.ErrorResponse
// @Router       /api/categories/{id}/attributes/{attrId} [delete]
func (h *AttributeHandler) Delete(c *fiber.Ctx) error {
	if err := h.uc.Delete(c.UserContext(), c.Params("id"), c.Params("attrId")); err != nil {
		return writeError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
