package dto

import (
	"fmt"

	"github.com/jhoicas/notas-pagar/internal/domain"
	"github.com/jhoicas/notas-pagar/internal/domain/entity"
)

// InvoiceListQuery parámetros de GET /api/invoices. Fechas "YYYY-MM-DD"; enums aceptan alias.
type InvoiceListQuery struct {
	Limit           int    `query:"limit"`
	Offset          int    `query:"offset"`
	SupplierID      string `query:"supplierId"`
	Destination     string `query:"destination"`
	Status          string `query:"status"`
	FinancialStatus string `query:"financialStatus"`
	PaymentMethod   string `query:"paymentMethod"`
	IssueFrom       string `query:"issueFrom"`
	IssueTo         string `query:"issueTo"`
	DueFrom         string `query:"dueFrom"`
	DueTo           string `query:"dueTo"`
	MinAmount       string `query:"minAmount"`
	MaxAmount       string `query:"maxAmount"`
	Search          string `query:"q"`
	Sort            string `query:"sort"`  // number, supplier, issueDate, dueDate, amount, status
	Order           string `query:"order"` // asc | desc
}

// Page paginación con valores por defecto aplicados.
func (q InvoiceListQuery) Page() PageRequest {
	p := PageRequest{Limit: q.Limit, Offset: q.Offset}
	p.DefaultPage()
	return p
}

// ListResponse página de resultados.
type ListResponse[T any] struct {
	Items []T          `json:"items"`
	Page  PageResponse `json:"page"`
}

// ReportQuery parámetros de GET /api/reports y de las exportaciones.
type ReportQuery struct {
	DueFrom    string `query:"dueFrom"`
	DueTo      string `query:"dueTo"`
	SupplierID string `query:"supplierId"`
	Status     string `query:"status"`
}

// Filter valida los parámetros y arma el filtro del reporte.
func (q ReportQuery) Filter() (ReportFilter, error) {
	f := ReportFilter{SupplierID: q.SupplierID}
	var err error
	if f.DueFrom, err = entity.ParseDate(q.DueFrom); err != nil {
		return f, fmt.Errorf("%w: %v", domain.ErrInvalidInput, err)
	}
	if f.DueTo, err = entity.ParseDate(q.DueTo); err != nil {
		return f, fmt.Errorf("%w: %v", domain.ErrInvalidInput, err)
	}
	if q.Status != "" {
		if f.Status, err = entity.ParsePaymentStatus(q.Status); err != nil {
			return f, err
		}
	}
	return f, nil
}

// HealthResponse respuesta de GET /health.
type HealthResponse struct {
	Status    string `json:"status"`
	Suppliers int    `json:"suppliers"`
	Invoices  int    `json:"invoices"`
}
