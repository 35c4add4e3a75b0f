// Package analytics calcula el dashboard financiero y el reporte de notas a pagar.
// Trabaja sobre una copia de la colección y una fecha de referencia explícita.
package analytics

import (
	"sort"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/notas-pagar/internal/application/dto"
	"github.com/jhoicas/notas-pagar/internal/domain/entity"
	"github.com/jhoicas/notas-pagar/internal/domain/finance"
)

// dueSoonDays ventana de "próximos vencimientos" del dashboard.
const dueSoonDays = 7

// CollectionSource fuente de datos read-only (el repositorio de notas).
type CollectionSource interface {
	Snapshot() *entity.Collection
}

// DashboardUseCase genera el resumen financiero de las notas a pagar.
type DashboardUseCase struct {
	source CollectionSource
}

// NewDashboardUseCase construye el caso de uso.
func NewDashboardUseCase(source CollectionSource) *DashboardUseCase {
	return &DashboardUseCase{source: source}
}

// Summary calcula contadores, saldos y evolución mensual a la fecha asOf.
// El estado se deriva de nuevo a asOf, sin confiar en el guardado.
func (uc *DashboardUseCase) Summary(asOf entity.Date) *dto.DashboardDTO {
	c := uc.source.Snapshot()
	out := &dto.DashboardDTO{
		AsOf:         asOf,
		Total:        len(c.Invoices),
		TotalPaid:    decimal.Zero,
		TotalToPay:   decimal.Zero,
		TotalOverdue: decimal.Zero,
	}
	soon := asOf.AddDays(dueSoonDays)
	months := map[string]*dto.MonthlyTotalDTO{}

	for _, inv := range c.Invoices {
		paid := finance.EffectivePaid(inv.Payments, asOf)
		balance := inv.TotalAmount.Sub(paid)
		status := finance.DeriveStatus(inv.TotalAmount, inv.DueDate, inv.Payments, asOf)
		out.TotalPaid = out.TotalPaid.Add(paid)

		switch status {
		case entity.PaymentStatusPaid:
			out.Paid++
		case entity.PaymentStatusOverdue:
			out.Overdue++
			out.TotalOverdue = out.TotalOverdue.Add(balance)
			out.TotalToPay = out.TotalToPay.Add(balance)
		default:
			out.Open++
			out.TotalToPay = out.TotalToPay.Add(balance)
		}

		if status != entity.PaymentStatusPaid && !inv.DueDate.IsZero() {
			switch {
			case inv.DueDate.Equal(asOf):
				out.DueToday++
			case inv.DueDate.After(asOf) && !inv.DueDate.After(soon):
				out.DueNext7Days++
			}
		}

		if month := inv.IssueDate.Month(); month != "" {
			m, ok := months[month]
			if !ok {
				m = &dto.MonthlyTotalDTO{Month: month, Total: decimal.Zero}
				months[month] = m
			}
			m.Total = m.Total.Add(inv.TotalAmount)
			m.Count++
		}
	}

	out.Monthly = make([]dto.MonthlyTotalDTO, 0, len(months))
	for _, m := range months {
		out.Monthly = append(out.Monthly, *m)
	}
	sort.Slice(out.Monthly, func(i, j int) bool { return out.Monthly[i].Month < out.Monthly[j].Month })
	return out
}
