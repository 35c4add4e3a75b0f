package finance_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/notas-pagar/internal/domain/entity"
	"github.com/jhoicas/notas-pagar/internal/domain/finance"
)

func d(s string) entity.Date { return entity.MustParseDate(s) }

func money(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func confirmed(date, amount string) entity.PaymentRecord {
	return entity.PaymentRecord{Date: d(date), Amount: money(amount), Method: entity.PaymentMethodPix}
}

func scheduled(date, amount string) entity.PaymentRecord {
	return entity.PaymentRecord{Date: d(date), Amount: money(amount), Method: entity.PaymentMethodBoleto, IsScheduled: true}
}

// ── Escenarios de referencia ─────────────────────────────────────────────────

func TestDeriveStatus_PagoManualTotal(t *testing.T) {
	payments := []entity.PaymentRecord{confirmed("2024-05-10", "1000.00")}

	got := finance.DeriveStatus(money("1000.00"), d("2024-06-30"), payments, d("2024-06-01"))

	assert.Equal(t, entity.PaymentStatusPaid, got)
}

func TestDeriveStatus_SinPagosVencida(t *testing.T) {
	got := finance.DeriveStatus(money("500.00"), d("2024-01-01"), nil, d("2024-06-01"))

	assert.Equal(t, entity.PaymentStatusOverdue, got)
}

func TestDeriveStatus_ParcelaFuturaNoCuenta(t *testing.T) {
	payments := []entity.PaymentRecord{scheduled("2024-12-31", "500.00")}

	got := finance.DeriveStatus(money("500.00"), d("2024-01-01"), payments, d("2024-06-01"))

	assert.Equal(t, entity.PaymentStatusOverdue, got,
		"una parcela programada futura no liquida la nota aunque cubra el total")
}

// ── Reglas ───────────────────────────────────────────────────────────────────

func TestDeriveStatus_Tabla(t *testing.T) {
	tests := []struct {
		name     string
		total    string
		due      string
		payments []entity.PaymentRecord
		asOf     string
		want     entity.PaymentStatus
	}{
		{
			name:  "sin pagos y vencimiento futuro queda en aberto",
			total: "300", due: "2024-07-01", asOf: "2024-06-01",
			want: entity.PaymentStatusOpen,
		},
		{
			name:  "vence hoy no está vencida",
			total: "300", due: "2024-06-01", asOf: "2024-06-01",
			want: entity.PaymentStatusOpen,
		},
		{
			name:  "pagada aunque vencida resuelve a Paga",
			total: "300", due: "2024-01-01", asOf: "2024-06-01",
			payments: []entity.PaymentRecord{confirmed("2024-05-01", "300")},
			want:     entity.PaymentStatusPaid,
		},
		{
			name:  "diferencia de un centavo se tolera",
			total: "300.00", due: "2024-01-01", asOf: "2024-06-01",
			payments: []entity.PaymentRecord{confirmed("2024-05-01", "299.99")},
			want:     entity.PaymentStatusPaid,
		},
		{
			name:  "diferencia mayor a un centavo no se tolera",
			total: "300.00", due: "2024-01-01", asOf: "2024-06-01",
			payments: []entity.PaymentRecord{confirmed("2024-05-01", "299.98")},
			want:     entity.PaymentStatusOverdue,
		},
		{
			name:  "parcela programada con fecha igual a asOf cuenta",
			total: "300", due: "2024-06-01", asOf: "2024-06-01",
			payments: []entity.PaymentRecord{scheduled("2024-06-01", "300")},
			want:     entity.PaymentStatusPaid,
		},
		{
			name:  "parcelas mixtas: solo las vencidas suman",
			total: "500", due: "2024-02-01", asOf: "2024-02-15",
			payments: []entity.PaymentRecord{
				scheduled("2024-02-01", "300"),
				scheduled("2024-03-01", "200"),
			},
			want: entity.PaymentStatusOverdue,
		},
		{
			name:  "parcela futura más pago manual del resto",
			total: "500", due: "2024-02-01", asOf: "2024-02-15",
			payments: []entity.PaymentRecord{
				scheduled("2024-02-01", "300"),
				confirmed("2024-02-10", "200"),
				scheduled("2024-03-01", "200"),
			},
			want: entity.PaymentStatusPaid,
		},
		{
			name:  "sin vencimiento nunca queda vencida",
			total: "100", due: "", asOf: "2024-06-01",
			want: entity.PaymentStatusOpen,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := finance.DeriveStatus(money(tt.total), d(tt.due), tt.payments, d(tt.asOf))
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestDeriveStatus_Determinista(t *testing.T) {
	payments := []entity.PaymentRecord{
		scheduled("2024-02-01", "300"),
		scheduled("2024-03-01", "200"),
	}
	first := finance.DeriveStatus(money("500"), d("2024-02-01"), payments, d("2024-02-20"))
	second := finance.DeriveStatus(money("500"), d("2024-02-01"), payments, d("2024-02-20"))

	assert.Equal(t, first, second)
	assert.Len(t, payments, 2, "no debe modificar los pagos recibidos")
}

func TestEffectivePaid_ExcluyeProgramadasFuturas(t *testing.T) {
	payments := []entity.PaymentRecord{
		confirmed("2024-01-10", "100"),
		scheduled("2024-01-31", "50"),
		scheduled("2024-02-01", "75"),
	}

	got := finance.EffectivePaid(payments, d("2024-01-31"))

	assert.True(t, got.Equal(money("150")), "esperado 150, obtenido %s", got)
}

func TestBalance(t *testing.T) {
	payments := []entity.PaymentRecord{confirmed("2024-01-10", "120.50")}

	got := finance.Balance(money("200"), payments, d("2024-01-31"))

	assert.True(t, got.Equal(money("79.50")), "esperado 79.50, obtenido %s", got)
}

func TestApply_ActualizaEstadoCacheado(t *testing.T) {
	inv := &entity.Invoice{
		TotalAmount: money("500"),
		DueDate:     d("2024-01-01"),
		Status:      entity.PaymentStatusOpen,
	}

	changed := finance.Apply(inv, d("2024-06-01"))
	assert.True(t, changed)
	assert.Equal(t, entity.PaymentStatusOverdue, inv.Status)

	changed = finance.Apply(inv, d("2024-06-01"))
	assert.False(t, changed, "recalcular sin cambios en las entradas no cambia el estado")
}
