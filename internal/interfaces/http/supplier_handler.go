package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/notas-pagar/internal/application/payables"
	"github.com/jhoicas/notas-pagar/internal/domain/entity"
)

// SupplierHandler maneja las peticiones HTTP de proveedores.
type SupplierHandler struct {
	repo *payables.InvoiceRepository
}

// NewSupplierHandler construye el handler.
func NewSupplierHandler(repo *payables.InvoiceRepository) *SupplierHandler {
	return &SupplierHandler{repo: repo}
}

// List lista los proveedores en orden de registro.
// @Summary  Listar proveedores
// @Tags     suppliers
// @Produce  json
// @Success  200  {array}  entity.Supplier
// @Router   /api/suppliers [get]
func (h *SupplierHandler) List(c *fiber.Ctx) error {
	return c.JSON(h.repo.Suppliers())
}

// Create registra un proveedor.
// @Summary  Crear proveedor
// @Tags     suppliers
// @Accept   json
// @Produce  json
// @Param    body  body      entity.Supplier  true  "Proveedor"
// @Success  201   {object}  entity.Supplier
// @Failure  400   {object}  dto.ErrorResponse
// @Failure  409   {object}  dto.ErrorResponse
// @Router   /api/suppliers [post]
func (h *SupplierHandler) Create(c *fiber.Ctx) error {
	var in entity.Supplier
	if err := c.BodyParser(&in); err != nil {
		return badBody(c, err)
	}
	s, err := h.repo.AddSupplier(c.Context(), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(s)
}

// GetByID obtiene un proveedor.
// @Summary  Obtener proveedor
// @Tags     suppliers
// @Produce  json
// @Param    id   path      string  true  "ID"
// @Success  200  {object}  entity.Supplier
// @Failure  404  {object}  dto.ErrorResponse
// @Router   /api/suppliers/{id} [get]
func (h *SupplierHandler) GetByID(c *fiber.Ctx) error {
	s := h.repo.Supplier(c.Params("id"))
	if s == nil {
		return notFound(c, "proveedor")
	}
	return c.JSON(s)
}

// Update aplica cambios parciales. Un id desconocido responde 204 sin cambios.
// @Summary  Actualizar proveedor
// @Tags     suppliers
// @Accept   json
// @Param    id    path  string                  true  "ID"
// @Param    body  body  payables.SupplierPatch  true  "Campos a cambiar"
// @Success  204
// @Failure  400  {object}  dto.ErrorResponse
// @Failure  409  {object}  dto.ErrorResponse
// @Router   /api/suppliers/{id} [patch]
func (h *SupplierHandler) Update(c *fiber.Ctx) error {
	var patch payables.SupplierPatch
	if err := c.BodyParser(&patch); err != nil {
		return badBody(c, err)
	}
	if err := h.repo.UpdateSupplier(c.Context(), c.Params("id"), patch); err != nil {
		return writeError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
