package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/notas-pagar/internal/application/payables"
	"github.com/jhoicas/notas-pagar/internal/domain/entity"
)

// InvoiceChildrenHandler pagos, ítems y anexos de una nota.
// POST sobre una nota inexistente responde 404; PUT y DELETE con ids desconocidos responden 204.
type InvoiceChildrenHandler struct {
	repo *payables.InvoiceRepository
}

// NewInvoiceChildrenHandler construye el handler.
func NewInvoiceChildrenHandler(repo *payables.InvoiceRepository) *InvoiceChildrenHandler {
	return &InvoiceChildrenHandler{repo: repo}
}

// ── Pagos ──

// AddPayment registra un pago.
// @Summary  Registrar pago
// @Tags     payments
// @Accept   json
// @Produce  json
// @Param    id    path      string                true  "ID de la nota"
// @Param    body  body      entity.PaymentRecord  true  "Pago (fecha vacía = hoy; forma vacía = la de la nota)"
// @Success  201   {object}  entity.PaymentRecord
// @Failure  400   {object}  dto.ErrorResponse
// @Failure  404   {object}  dto.ErrorResponse
// @Router   /api/invoices/{id}/payments [post]
func (h *InvoiceChildrenHandler) AddPayment(c *fiber.Ctx) error {
	var in entity.PaymentRecord
	if err := c.BodyParser(&in); err != nil {
		return badBody(c, err)
	}
	p, err := h.repo.AddPayment(c.Context(), c.Params("id"), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(p)
}

// EditPayment
// @Summary  Editar pago
// @Tags     payments
// @Accept   json
// @Param    id         path  string                 true  "ID de la nota"
// @Param    paymentId  path  string                 true  "ID del pago"
// @Param    body       body  payables.PaymentPatch  true  "Campos a cambiar"
// @Success  204
// @Router   /api/invoices/{id}/payments/{paymentId} [put]
func (h *InvoiceChildrenHandler) EditPayment(c *fiber.Ctx) error {
	var patch payables.PaymentPatch
	if err := c.BodyParser(&patch); err != nil {
		return badBody(c, err)
	}
	if err := h.repo.EditPayment(c.Context(), c.Params("id"), c.Params("paymentId"), patch); err != nil {
		return writeError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// DeletePayment
// @Summary  Eliminar pago
// @Tags     payments
// @Param    id         path  string  true  "ID de la nota"
// @Param    paymentId  path  string  true  "ID del pago"
// @Success  204
// @Router   /api/invoices/{id}/payments/{paymentId} [delete]
func (h *InvoiceChildrenHandler) DeletePayment(c *fiber.Ctx) error {
	if err := h.repo.DeletePayment(c.Context(), c.Params("id"), c.Params("paymentId")); err != nil {
		return writeError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// ── Ítems ──

// AddItem agrega una línea; sin cuerpo crea "Novo Item" con cantidad 1.
// @Summary  Agregar ítem
// @Tags     items
// @Accept   json
// @Produce  json
// @Param    id    path      string           true   "ID de la nota"
// @Param    body  body      entity.LineItem  false  "Ítem"
// @Success  201   {object}  entity.LineItem
// @Failure  404   {object}  dto.ErrorResponse
// @Router   /api/invoices/{id}/items [post]
func (h *InvoiceChildrenHandler) AddItem(c *fiber.Ctx) error {
	var in entity.LineItem
	if len(c.Body()) > 0 {
		if err := c.BodyParser(&in); err != nil {
			return badBody(c, err)
		}
	}
	it, err := h.repo.AddItem(c.Context(), c.Params("id"), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(it)
}

// EditItem recalcula el total de la línea.
// @Summary  Editar ítem
// @Tags     items
// @Accept   json
// @Param    id      path  string              true  "ID de la nota"
// @Param    itemId  path  string              true  "ID del ítem"
// @Param    body    body  payables.ItemPatch  true  "Campos a cambiar"
// @Success  204
// @Router   /api/invoices/{id}/items/{itemId} [put]
func (h *InvoiceChildrenHandler) EditItem(c *fiber.Ctx) error {
	var patch payables.ItemPatch
	if err := c.BodyParser(&patch); err != nil {
		return badBody(c, err)
	}
	if err := h.repo.EditItem(c.Context(), c.Params("id"), c.Params("itemId"), patch); err != nil {
		return writeError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// DeleteItem
// @Summary  Eliminar ítem
// @Tags     items
// @Param    id      path  string  true  "ID de la nota"
// @Param    itemId  path  string  true  "ID del ítem"
// @Success  204
// @Router   /api/invoices/{id}/items/{itemId} [delete]
func (h *InvoiceChildrenHandler) DeleteItem(c *fiber.Ctx) error {
	if err := h.repo.DeleteItem(c.Context(), c.Params("id"), c.Params("itemId")); err != nil {
		return writeError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// ── Anexos ──

// AddAttachment registra los metadatos de un anexo.
// @Summary  Agregar anexo
// @Tags     attachments
// @Accept   json
// @Produce  json
// @Param    id    path      string             true  "ID de la nota"
// @Param    body  body      entity.Attachment  true  "Anexo"
// @Success  201   {object}  entity.Attachment
// @Failure  404   {object}  dto.ErrorResponse
// @Router   /api/invoices/{id}/attachments [post]
func (h *InvoiceChildrenHandler) AddAttachment(c *fiber.Ctx) error {
	var in entity.Attachment
	if err := c.BodyParser(&in); err != nil {
		return badBody(c, err)
	}
	a, err := h.repo.AddAttachment(c.Context(), c.Params("id"), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(a)
}

// DeleteAttachment
// @Summary  Eliminar anexo
// @Tags     attachments
// @Param    id            path  string  true  "ID de la nota"
// @Param    attachmentId  path  string  true  "ID del anexo"
// @Success  204
// @Router   /api/invoices/{id}/attachments/{attachmentId} [delete]
func (h *InvoiceChildrenHandler) DeleteAttachment(c *fiber.Ctx) error {
	if err := h.repo.DeleteAttachment(c.Context(), c.Params("id"), c.Params("attachmentId")); err != nil {
		return writeError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
