// Package pdf genera el relatório de notas a pagar en PDF.
//
// Layout de la página A4 apaisada:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: título + fecha de generación + cantidad de notas    │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TABLA: Número | Fornecedor | Emissão | Vencimento | ...     │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TOTALES: Total / Pago / Em aberto                           │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"context"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/orientation"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"

	"github.com/jhoicas/notas-pagar/internal/application/dto"
	"github.com/jhoicas/notas-pagar/internal/domain/entity"
)

// ── Paleta de colores ─────────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 0, Green: 70, Blue: 127}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
	colorOverdue = &props.Color{Red: 190, Green: 30, Blue: 45}
	colorPaid    = &props.Color{Red: 16, Green: 130, Blue: 90}
)

// ── Generator ─────────────────────────────────────────────────────────────────

// MarotoReportGenerator implementa export.PDFRenderer usando Maroto v2.
type MarotoReportGenerator struct {
	title string
}

// NewMarotoReportGenerator construye el generador; title vacío usa "Relatório de Notas a Pagar".
func NewMarotoReportGenerator(title string) *MarotoReportGenerator {
	if title == "" {
		title = "Relatório de Notas a Pagar"
	}
	return &MarotoReportGenerator{title: title}
}

// GenerateReportPDF genera el PDF y devuelve sus bytes.
func (g *MarotoReportGenerator) GenerateReportPDF(_ context.Context, r *dto.ReportDTO) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithOrientation(orientation.Horizontal).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 8}).
		WithTitle(g.title, true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(headerRow(g.title, r))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))

	m.AddRows(tableHeaderRow())
	m.AddRows(tableRows(r.Rows)...)

	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
	m.AddRows(totalsRow(r))

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return doc.GetBytes(), nil
}

// ── Secciones ─────────────────────────────────────────────────────────────────

func headerRow(title string, r *dto.ReportDTO) core.Row {
	return row.New(16).Add(
		col.New(8).Add(
			text.New(title, props.Text{
				Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1,
			}),
			text.New("Contas a pagar a partir de NF-e / NFS-e", props.Text{
				Size: 8, Top: 9, Color: colorGray,
			}),
		),
		col.New(4).Add(
			text.New("Gerado em "+formatDate(r.GeneratedAt), props.Text{
				Size: 8, Align: align.Right, Top: 2, Color: colorGray,
			}),
			text.New(fmt.Sprintf("%d notas", len(r.Rows)), props.Text{
				Style: fontstyle.Bold, Size: 10, Align: align.Right, Top: 8,
			}),
		),
	)
}

func tableHeaderRow() core.Row {
	h := func(label string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: a,
			Color: colorPrimary, Top: 2, Left: 1, Right: 1,
		}))
	}
	return row.New(8).Add(
		h("Número", 1, align.Left),
		h("Fornecedor", 3, align.Left),
		h("Emissão", 1, align.Center),
		h("Vencimento", 1, align.Center),
		h("Valor total", 1, align.Right),
		h("Valor pago", 1, align.Right),
		h("Status", 1, align.Center),
		h("Destinação", 3, align.Left),
	)
}

// tableRows: una fila por nota; el estado se colorea.
func tableRows(rows []dto.ReportRowDTO) []core.Row {
	result := make([]core.Row, 0, len(rows))
	cell := func(s string, a align.Type) core.Component {
		return text.New(s, props.Text{Size: 7.5, Align: a, Top: 1, Left: 1, Right: 1})
	}
	for _, r := range rows {
		number := r.Number
		if r.Series != "" {
			number += "/" + r.Series
		}
		statusProps := props.Text{Size: 7.5, Align: align.Center, Top: 1, Style: fontstyle.Bold}
		switch r.Status {
		case entity.PaymentStatusOverdue:
			statusProps.Color = colorOverdue
		case entity.PaymentStatusPaid:
			statusProps.Color = colorPaid
		}
		result = append(result, row.New(6).Add(
			col.New(1).Add(cell(number, align.Left)),
			col.New(3).Add(cell(r.SupplierName, align.Left)),
			col.New(1).Add(cell(formatDate(r.IssueDate), align.Center)),
			col.New(1).Add(cell(formatDate(r.DueDate), align.Center)),
			col.New(1).Add(cell(formatMoney(r.TotalAmount), align.Right)),
			col.New(1).Add(cell(formatMoney(r.PaidAmount), align.Right)),
			col.New(1).Add(text.New(string(r.Status), statusProps)),
			col.New(3).Add(cell(r.Destination, align.Left)),
		))
	}
	return result
}

func totalsRow(r *dto.ReportDTO) core.Row {
	label := func(s string) core.Component {
		return text.New(s, props.Text{Style: fontstyle.Bold, Size: 9, Align: align.Right, Right: 2})
	}
	value := func(s string, top float64) core.Component {
		return text.New(s, props.Text{Size: 9, Align: align.Right, Right: 1, Top: top})
	}
	return row.New(20).Add(
		col.New(6),
		col.New(3).Add(
			label("Total:"),
			text.New("Pago:", props.Text{Style: fontstyle.Bold, Size: 9, Align: align.Right, Right: 2, Top: 6}),
			text.New("Em aberto:", props.Text{Style: fontstyle.Bold, Size: 10, Align: align.Right, Right: 2, Top: 12, Color: colorPrimary}),
		),
		col.New(3).Add(
			value(formatMoney(r.Total), 0),
			value(formatMoney(r.Paid), 6),
			text.New(formatMoney(r.Open), props.Text{Style: fontstyle.Bold, Size: 10, Align: align.Right, Right: 1, Top: 12, Color: colorPrimary}),
		),
	)
}

// ── helpers ───────────────────────────────────────────────────────────────────

// formatDate "02/01/2006" o "—" si la fecha está vacía.
func formatDate(d entity.Date) string {
	if d.IsZero() {
		return "—"
	}
	return d.Time().Format("02/01/2006")
}

// formatMoney formato BRL: "R$ 1.234,56".
func formatMoney(v decimal.Decimal) string {
	s := v.Abs().StringFixed(2)
	intPart, frac, _ := strings.Cut(s, ".")

	n := len(intPart)
	buf := make([]byte, 0, n+n/3)
	for i, c := range []byte(intPart) {
		if i > 0 && (n-i)%3 == 0 {
			buf = append(buf, '.')
		}
		buf = append(buf, c)
	}
	sign := ""
	if v.IsNegative() {
		sign = "-"
	}
	return sign + "R$ " + string(buf) + "," + frac
}
