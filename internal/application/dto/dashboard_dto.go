package dto

import (
	"github.com/shopspring/decimal"

	"github.com/jhoicas/notas-pagar/internal/domain/entity"
)

// DashboardDTO respuesta de GET /api/dashboard.
// Los saldos usan el pagado efectivo (las parcelas futuras no cuentan).
type DashboardDTO struct {
	AsOf entity.Date `json:"asOf"`

	// Cantidad de notas por estado
	Total   int `json:"total"`
	Paid    int `json:"paid"`
	Open    int `json:"open"`
	Overdue int `json:"overdue"`

	TotalPaid    decimal.Decimal `json:"totalPaid"`    // pagado efectivo de todas las notas
	TotalToPay   decimal.Decimal `json:"totalToPay"`   // saldo de las notas no pagas
	TotalOverdue decimal.Decimal `json:"totalOverdue"` // saldo de las vencidas

	DueToday     int `json:"dueToday"`     // no pagas que vencen hoy
	DueNext7Days int `json:"dueNext7Days"` // no pagas que vencen en (hoy, hoy+7]

	// Evolución mensual del total emitido, por mes de emisión ascendente
	Monthly []MonthlyTotalDTO `json:"monthly"`
}

// MonthlyTotalDTO total emitido en un mes ("YYYY-MM").
type MonthlyTotalDTO struct {
	Month string          `json:"month"`
	Total decimal.Decimal `json:"total"`
	Count int             `json:"count"`
}

// ReportFilter filtros de GET /api/reports (rango por vencimiento, proveedor, estado).
type ReportFilter struct {
	DueFrom    entity.Date
	DueTo      entity.Date
	SupplierID string
	Status     entity.PaymentStatus
}

// ReportDTO filas del reporte y sus totales.
type ReportDTO struct {
	GeneratedAt entity.Date     `json:"generatedAt"`
	Rows        []ReportRowDTO  `json:"rows"`
	Total       decimal.Decimal `json:"total"`
	Paid        decimal.Decimal `json:"paid"`
	Open        decimal.Decimal `json:"open"`
}

// ReportRowDTO una nota en el reporte; PaidAmount es el pagado efectivo a GeneratedAt.
type ReportRowDTO struct {
	InvoiceID    string               `json:"invoiceId"`
	Number       string               `json:"invoiceNumber"`
	Series       string               `json:"series"`
	SupplierName string               `json:"supplierName"`
	IssueDate    entity.Date          `json:"issueDate"`
	DueDate      entity.Date          `json:"dueDate"`
	TotalAmount  decimal.Decimal      `json:"totalAmount"`
	PaidAmount   decimal.Decimal      `json:"paidAmount"`
	Balance      decimal.Decimal      `json:"balance"`
	Status       entity.PaymentStatus `json:"status"`
	Destination  string               `json:"destination"`
}
