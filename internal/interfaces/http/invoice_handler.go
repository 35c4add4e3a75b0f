package http

import (
	"fmt"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/notas-pagar/internal/application/dto"
	"github.com/jhoicas/notas-pagar/internal/application/payables"
	"github.com/jhoicas/notas-pagar/internal/domain"
	"github.com/jhoicas/notas-pagar/internal/domain/entity"
)

// InvoiceHandler maneja las peticiones HTTP de notas a pagar.
type InvoiceHandler struct {
	repo *payables.InvoiceRepository
}

// NewInvoiceHandler construye el handler.
func NewInvoiceHandler(repo *payables.InvoiceRepository) *InvoiceHandler {
	return &InvoiceHandler{repo: repo}
}

// List lista notas con filtros, orden y paginación.
// @Summary      Listar notas
// @Description  Filtros por proveedor, destino, estados, forma de pago, rangos de fecha y de valor, y búsqueda libre.
// @Tags         invoices
// @Produce      json
// @Param        supplierId       query  string  false  "Proveedor"
// @Param        destination      query  string  false  "Destinación (subcadena)"
// @Param        status           query  string  false  "Em aberto | Paga | Vencida"
// @Param        financialStatus  query  string  false  "Aguardando | Comprovante Pagto | Enviado"
// @Param        paymentMethod    query  string  false  "Forma de pago"
// @Param        issueFrom        query  string  false  "Emisión desde (YYYY-MM-DD)"
// @Param        issueTo          query  string  false  "Emisión hasta (YYYY-MM-DD)"
// @Param        dueFrom          query  string  false  "Vencimiento desde (YYYY-MM-DD)"
// @Param        dueTo            query  string  false  "Vencimiento hasta (YYYY-MM-DD)"
// @Param        minAmount        query  string  false  "Valor mínimo"
// @Param        maxAmount        query  string  false  "Valor máximo"
// @Param        q                query  string  false  "Búsqueda: número, proveedor, destinación"
// @Param        sort             query  string  false  "number | supplier | issueDate | dueDate | amount | status"
// @Param        order            query  string  false  "asc | desc"
// @Param        limit            query  int     false  "Default 50, máx. 500"
// @Param        offset           query  int     false  "Desplazamiento"
// @Success      200  {object}  dto.ListResponse[payables.InvoiceView]
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/invoices [get]
func (h *InvoiceHandler) List(c *fiber.Ctx) error {
	var q dto.InvoiceListQuery
	if err := c.QueryParser(&q); err != nil {
		return badBody(c, err)
	}
	filter, sort, err := parseListQuery(q)
	if err != nil {
		return writeError(c, err)
	}
	views := h.repo.List(filter, sort)

	page := q.Page()
	from, to := page.Slice(len(views))
	return c.JSON(dto.ListResponse[payables.InvoiceView]{
		Items: views[from:to],
		Page:  dto.PageResponse{Limit: page.Limit, Offset: page.Offset, Total: len(views)},
	})
}

// Create registra una nota manual.
// @Summary  Crear nota
// @Tags     invoices
// @Accept   json
// @Produce  json
// @Param    body  body      entity.Invoice  true  "Nota"
// @Success  201   {object}  entity.Invoice
// @Failure  400   {object}  dto.ErrorResponse
// @Router   /api/invoices [post]
func (h *InvoiceHandler) Create(c *fiber.Ctx) error {
	var in entity.Invoice
	if err := c.BodyParser(&in); err != nil {
		return badBody(c, err)
	}
	inv, err := h.repo.CreateInvoice(c.Context(), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(inv)
}

// GetByID obtiene el detalle de una nota (pagos, ítems y anexos).
// @Summary  Obtener nota
// @Tags     invoices
// @Produce  json
// @Param    id   path      string  true  "ID"
// @Success  200  {object}  entity.Invoice
// @Failure  404  {object}  dto.ErrorResponse
// @Router   /api/invoices/{id} [get]
func (h *InvoiceHandler) GetByID(c *fiber.Ctx) error {
	inv := h.repo.Invoice(c.Params("id"))
	if inv == nil {
		return notFound(c, "nota")
	}
	return c.JSON(inv)
}

// Update aplica cambios parciales; el estado de pago se recalcula. Id desconocido = 204.
// @Summary  Actualizar nota
// @Tags     invoices
// @Accept   json
// @Param    id    path  string                 true  "ID"
// @Param    body  body  payables.InvoicePatch  true  "Campos a cambiar"
// @Success  204
// @Failure  400  {object}  dto.ErrorResponse
// @Router   /api/invoices/{id} [patch]
func (h *InvoiceHandler) Update(c *fiber.Ctx) error {
	var patch payables.InvoicePatch
	if err := c.BodyParser(&patch); err != nil {
		return badBody(c, err)
	}
	if err := h.repo.UpdateInvoice(c.Context(), c.Params("id"), patch); err != nil {
		return writeError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// Delete elimina la nota. Id desconocido = 204.
// @Summary  Eliminar nota
// @Tags     invoices
// @Param    id  path  string  true  "ID"
// @Success  204
// @Router   /api/invoices/{id} [delete]
func (h *InvoiceHandler) Delete(c *fiber.Ctx) error {
	if err := h.repo.DeleteInvoice(c.Context(), c.Params("id")); err != nil {
		return writeError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// parseListQuery valida los parámetros del listado.
func parseListQuery(q dto.InvoiceListQuery) (payables.InvoiceFilter, payables.SortSpec, error) {
	f := payables.InvoiceFilter{
		SupplierID:  q.SupplierID,
		Destination: q.Destination,
		Search:      q.Search,
	}
	var err error
	if q.Status != "" {
		if f.Status, err = entity.ParsePaymentStatus(q.Status); err != nil {
			return f, payables.SortSpec{}, err
		}
	}
	if q.FinancialStatus != "" {
		if f.FinancialStatus, err = entity.ParseFinancialStatus(q.FinancialStatus); err != nil {
			return f, payables.SortSpec{}, err
		}
	}
	if q.PaymentMethod != "" {
		if f.PaymentMethod, err = entity.ParsePaymentMethod(q.PaymentMethod); err != nil {
			return f, payables.SortSpec{}, err
		}
	}
	for _, d := range []struct {
		raw string
		dst *entity.Date
	}{
		{q.IssueFrom, &f.IssueFrom}, {q.IssueTo, &f.IssueTo},
		{q.DueFrom, &f.DueFrom}, {q.DueTo, &f.DueTo},
	} {
		if *d.dst, err = parseQueryDate(d.raw); err != nil {
			return f, payables.SortSpec{}, err
		}
	}
	if f.MinAmount, err = parseQueryAmount(q.MinAmount); err != nil {
		return f, payables.SortSpec{}, err
	}
	if f.MaxAmount, err = parseQueryAmount(q.MaxAmount); err != nil {
		return f, payables.SortSpec{}, err
	}

	field, err := payables.ParseSortField(q.Sort)
	if err != nil {
		return f, payables.SortSpec{}, err
	}
	return f, payables.SortSpec{Field: field, Desc: strings.EqualFold(q.Order, "desc")}, nil
}

func parseQueryDate(s string) (entity.Date, error) {
	d, err := entity.ParseDate(s)
	if err != nil {
		return entity.Date{}, fmt.Errorf("%w: %v", domain.ErrInvalidInput, err)
	}
	return d, nil
}

func parseQueryAmount(s string) (*decimal.Decimal, error) {
	if strings.TrimSpace(s) == "" {
		return nil, nil
	}
	v, err := decimal.NewFromString(strings.TrimSpace(s))
	if err != nil {
		return nil, fmt.Errorf("%w: valor %q", domain.ErrInvalidInput, s)
	}
	return &v, nil
}
