// Package finance deriva el estado de pago de una nota a partir de sus pagos.
// Es puro: la fecha de referencia ("hoy") siempre llega como parámetro.
package finance

import (
	"github.com/shopspring/decimal"

	"github.com/jhoicas/notas-pagar/internal/domain/entity"
)

// Tolerance redondeo monetario aceptado al comparar lo pagado con el total.
var Tolerance = decimal.New(1, -2) // 0.01

// Counts indica si el pago suma al total efectivamente pagado en asOf.
// Una parcela programada con fecha futura es un compromiso, no una liquidación.
func Counts(p entity.PaymentRecord, asOf entity.Date) bool {
	return !p.IsScheduled || !p.Date.After(asOf)
}

// EffectivePaid suma los pagos confirmados y las parcelas programadas ya vencidas en asOf.
func EffectivePaid(payments []entity.PaymentRecord, asOf entity.Date) decimal.Decimal {
	total := decimal.Zero
	for _, p := range payments {
		if Counts(p, asOf) {
			total = total.Add(p.Amount)
		}
	}
	return total
}

// Balance saldo pendiente: total - pagado efectivo (puede ser negativo si se pagó de más).
func Balance(total decimal.Decimal, payments []entity.PaymentRecord, asOf entity.Date) decimal.Decimal {
	return total.Sub(EffectivePaid(payments, asOf))
}

// DeriveStatus calcula el estado de pago:
//
//	pagado efectivo >= total - 0.01  -> Paga (aunque esté vencida)
//	vencimiento < asOf               -> Vencida
//	en otro caso                     -> Em aberto
//
// Una nota sin vencimiento nunca queda vencida.
func DeriveStatus(total decimal.Decimal, dueDate entity.Date, payments []entity.PaymentRecord, asOf entity.Date) entity.PaymentStatus {
	if EffectivePaid(payments, asOf).GreaterThanOrEqual(total.Sub(Tolerance)) {
		return entity.PaymentStatusPaid
	}
	if !dueDate.IsZero() && dueDate.Before(asOf) {
		return entity.PaymentStatusOverdue
	}
	return entity.PaymentStatusOpen
}

// Apply recalcula y guarda en inv el estado derivado. Devuelve true si cambió.
func Apply(inv *entity.Invoice, asOf entity.Date) bool {
	status := DeriveStatus(inv.TotalAmount, inv.DueDate, inv.Payments, asOf)
	if inv.Status == status {
		return false
	}
	inv.Status = status
	return true
}
