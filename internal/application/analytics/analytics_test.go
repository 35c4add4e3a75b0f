package analytics_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/notas-pagar/internal/application/analytics"
	"github.com/jhoicas/notas-pagar/internal/application/dto"
	"github.com/jhoicas/notas-pagar/internal/domain/entity"
)

type staticSource struct{ c *entity.Collection }

func (s staticSource) Snapshot() *entity.Collection { return s.c.Clone() }

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func d(s string) entity.Date { return entity.MustParseDate(s) }

var asOf = d("2024-06-01")

// fixture: una paga, una vencida con pago parcial, una que vence hoy,
// una que vence en 5 días con parcela futura y una sin vencimiento.
func fixture() staticSource {
	return staticSource{c: &entity.Collection{
		Suppliers: []entity.Supplier{
			{ID: "s1", LegalName: "Distribuidora Paulista Ltda"},
			{ID: "s2", LegalName: "Consultoria ME"},
		},
		Invoices: []entity.Invoice{
			{ID: "paga", SupplierID: "s1", Number: "1", IssueDate: d("2024-04-10"), DueDate: d("2024-05-10"), TotalAmount: dec("1000"),
				Payments: []entity.PaymentRecord{{Date: d("2024-05-09"), Amount: dec("1000")}}},
			{ID: "vencida", SupplierID: "s1", Number: "2", IssueDate: d("2024-04-20"), DueDate: d("2024-01-01"), TotalAmount: dec("500"),
				Payments: []entity.PaymentRecord{{Date: d("2024-02-01"), Amount: dec("100")}}},
			{ID: "hoy", SupplierID: "s2", Number: "3", IssueDate: d("2024-05-15"), DueDate: d("2024-06-01"), TotalAmount: dec("200")},
			{ID: "pronto", SupplierID: "s2", Number: "4", IssueDate: d("2024-05-20"), DueDate: d("2024-06-06"), TotalAmount: dec("300"),
				Payments: []entity.PaymentRecord{{Date: d("2024-06-06"), Amount: dec("300"), IsScheduled: true}}},
			{ID: "sin-vencimiento", SupplierID: "s2", Number: "5", TotalAmount: dec("50")},
		},
	}}
}

func TestDashboard_Summary(t *testing.T) {
	out := analytics.NewDashboardUseCase(fixture()).Summary(asOf)

	assert.Equal(t, 5, out.Total)
	assert.Equal(t, 1, out.Paid)
	assert.Equal(t, 1, out.Overdue)
	assert.Equal(t, 3, out.Open)

	assert.True(t, out.TotalPaid.Equal(dec("1100")), "la parcela futura no cuenta: %s", out.TotalPaid)
	assert.True(t, out.TotalOverdue.Equal(dec("400")), "saldo de la vencida: %s", out.TotalOverdue)
	assert.True(t, out.TotalToPay.Equal(dec("950")), "400 + 200 + 300 + 50: %s", out.TotalToPay)

	assert.Equal(t, 1, out.DueToday)
	assert.Equal(t, 1, out.DueNext7Days)
}

func TestDashboard_EvolucionMensual(t *testing.T) {
	out := analytics.NewDashboardUseCase(fixture()).Summary(asOf)

	require.Len(t, out.Monthly, 2, "la nota sin emisión no entra en la evolución")
	assert.Equal(t, "2024-04", out.Monthly[0].Month)
	assert.True(t, out.Monthly[0].Total.Equal(dec("1500")))
	assert.Equal(t, 2, out.Monthly[0].Count)
	assert.Equal(t, "2024-05", out.Monthly[1].Month)
	assert.True(t, out.Monthly[1].Total.Equal(dec("500")))
}

func TestDashboard_Vacio(t *testing.T) {
	out := analytics.NewDashboardUseCase(staticSource{c: &entity.Collection{}}).Summary(asOf)

	assert.Zero(t, out.Total)
	assert.True(t, out.TotalToPay.IsZero())
	assert.NotNil(t, out.Monthly)
}

func TestReport_Build(t *testing.T) {
	uc := analytics.NewReportUseCase(fixture())

	all := uc.Build(dto.ReportFilter{}, asOf)
	require.Len(t, all.Rows, 5)
	assert.True(t, all.Total.Equal(dec("2050")))
	assert.True(t, all.Paid.Equal(dec("1100")))
	assert.True(t, all.Open.Equal(dec("950")))
	assert.Equal(t, "Distribuidora Paulista Ltda", all.Rows[0].SupplierName)
	assert.Equal(t, entity.PaymentStatusOverdue, all.Rows[1].Status)
	assert.True(t, all.Rows[1].Balance.Equal(dec("400")))
}

func TestReport_Filtros(t *testing.T) {
	uc := analytics.NewReportUseCase(fixture())

	tests := []struct {
		name   string
		filter dto.ReportFilter
		want   []string
	}{
		{"proveedor", dto.ReportFilter{SupplierID: "s2"}, []string{"hoy", "pronto", "sin-vencimiento"}},
		{"estado", dto.ReportFilter{Status: entity.PaymentStatusPaid}, []string{"paga"}},
		{"rango de vencimiento", dto.ReportFilter{DueFrom: d("2024-05-01"), DueTo: d("2024-06-01")}, []string{"paga", "hoy"}},
		{"solo desde", dto.ReportFilter{DueFrom: d("2024-06-02")}, []string{"pronto"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rows := uc.Build(tt.filter, asOf).Rows
			ids := make([]string, 0, len(rows))
			for _, r := range rows {
				ids = append(ids, r.InvoiceID)
			}
			assert.Equal(t, tt.want, ids)
		})
	}
}
