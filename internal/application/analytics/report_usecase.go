package analytics

import (
	"github.com/shopspring/decimal"

	"github.com/jhoicas/notas-pagar/internal/application/dto"
	"github.com/jhoicas/notas-pagar/internal/domain/entity"
	"github.com/jhoicas/notas-pagar/internal/domain/finance"
)

// ReportUseCase arma el reporte filtrado que alimentan las exportaciones CSV, XLSX y PDF.
type ReportUseCase struct {
	source CollectionSource
}

// NewReportUseCase construye el caso de uso.
func NewReportUseCase(source CollectionSource) *ReportUseCase {
	return &ReportUseCase{source: source}
}

// Build filtra por vencimiento (inclusivo), proveedor y estado, en el orden de registro.
// Open = Total - Paid, con Paid como pagado efectivo a asOf.
func (uc *ReportUseCase) Build(filter dto.ReportFilter, asOf entity.Date) *dto.ReportDTO {
	c := uc.source.Snapshot()
	names := make(map[string]string, len(c.Suppliers))
	for i := range c.Suppliers {
		names[c.Suppliers[i].ID] = c.Suppliers[i].LegalName
	}

	out := &dto.ReportDTO{
		GeneratedAt: asOf,
		Rows:        []dto.ReportRowDTO{},
		Total:       decimal.Zero,
		Paid:        decimal.Zero,
	}
	for _, inv := range c.Invoices {
		status := finance.DeriveStatus(inv.TotalAmount, inv.DueDate, inv.Payments, asOf)
		if !filter.DueFrom.IsZero() && (inv.DueDate.IsZero() || inv.DueDate.Before(filter.DueFrom)) {
			continue
		}
		if !filter.DueTo.IsZero() && (inv.DueDate.IsZero() || inv.DueDate.After(filter.DueTo)) {
			continue
		}
		if filter.SupplierID != "" && inv.SupplierID != filter.SupplierID {
			continue
		}
		if filter.Status != "" && status != filter.Status {
			continue
		}

		paid := finance.EffectivePaid(inv.Payments, asOf)
		out.Rows = append(out.Rows, dto.ReportRowDTO{
			InvoiceID:    inv.ID,
			Number:       inv.Number,
			Series:       inv.Series,
			SupplierName: names[inv.SupplierID],
			IssueDate:    inv.IssueDate,
			DueDate:      inv.DueDate,
			TotalAmount:  inv.TotalAmount,
			PaidAmount:   paid,
			Balance:      inv.TotalAmount.Sub(paid),
			Status:       status,
			Destination:  inv.Destination,
		})
		out.Total = out.Total.Add(inv.TotalAmount)
		out.Paid = out.Paid.Add(paid)
	}
	out.Open = out.Total.Sub(out.Paid)
	return out
}
