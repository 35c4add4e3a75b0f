package http

import (
	"fmt"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/notas-pagar/internal/application/analytics"
	"github.com/jhoicas/notas-pagar/internal/application/dto"
	"github.com/jhoicas/notas-pagar/internal/domain"
	"github.com/jhoicas/notas-pagar/internal/domain/entity"
	"github.com/jhoicas/notas-pagar/internal/infrastructure/export"
)

// ReportHandler panel, reportes y exportaciones.
type ReportHandler struct {
	dashboard *analytics.DashboardUseCase
	report    *analytics.ReportUseCase
	exporter  *export.Exporter
	today     func() entity.Date
}

// NewReportHandler construye el handler. today fija la fecha de referencia de los cálculos.
func NewReportHandler(dashboard *analytics.DashboardUseCase, report *analytics.ReportUseCase, exporter *export.Exporter, today func() entity.Date) *ReportHandler {
	return &ReportHandler{dashboard: dashboard, report: report, exporter: exporter, today: today}
}

// Dashboard
// @Summary  Indicadores del panel
// @Tags     reports
// @Produce  json
// @Success  200  {object}  dto.DashboardDTO
// @Router   /api/dashboard [get]
func (h *ReportHandler) Dashboard(c *fiber.Ctx) error {
	return c.JSON(h.dashboard.Summary(h.today()))
}

// Report filas y totales filtrados por vencimiento, proveedor y estado.
// @Summary  Reporte de notas
// @Tags     reports
// @Produce  json
// @Param    dueFrom     query     string  false  "Vencimiento desde (YYYY-MM-DD)"
// @Param    dueTo       query     string  false  "Vencimiento hasta (YYYY-MM-DD)"
// @Param    supplierId  query     string  false  "Proveedor"
// @Param    status      query     string  false  "Em aberto | Paga | Vencida"
// @Success  200         {object}  dto.ReportDTO
// @Failure  400         {object}  dto.ErrorResponse
// @Router   /api/reports [get]
func (h *ReportHandler) Report(c *fiber.Ctx) error {
	r, err := h.build(c)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(r)
}

// Export descarga el reporte en csv, xlsx o pdf.
// @Summary  Exportar reporte
// @Tags     reports
// @Produce  octet-stream
// @Param    format      path      string  true   "csv | xlsx | pdf"
// @Param    dueFrom     query     string  false  "Vencimiento desde (YYYY-MM-DD)"
// @Param    dueTo       query     string  false  "Vencimiento hasta (YYYY-MM-DD)"
// @Param    supplierId  query     string  false  "Proveedor"
// @Param    status      query     string  false  "Em aberto | Paga | Vencida"
// @Success  200         {file}    binary
// @Failure  400         {object}  dto.ErrorResponse
// @Router   /api/reports/export.{format} [get]
func (h *ReportHandler) Export(c *fiber.Ctx) error {
	format, err := export.ParseFormat(c.Params("format"))
	if err != nil {
		return writeError(c, err)
	}
	r, err := h.build(c)
	if err != nil {
		return writeError(c, err)
	}
	f, err := h.exporter.Export(c.UserContext(), format, r)
	if err != nil {
		return writeError(c, err)
	}
	// Attachment deduce el tipo por extensión; se sobrescribe con el del exportador.
	c.Attachment(f.Name)
	c.Set(fiber.HeaderContentType, f.ContentType)
	return c.Send(f.Data)
}

func (h *ReportHandler) build(c *fiber.Ctx) (*dto.ReportDTO, error) {
	var q dto.ReportQuery
	if err := c.QueryParser(&q); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrInvalidInput, err)
	}
	filter, err := q.Filter()
	if err != nil {
		return nil, err
	}
	return h.report.Build(filter, h.today()), nil
}
