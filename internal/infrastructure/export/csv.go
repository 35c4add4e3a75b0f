// Package export serializa el reporte de notas a CSV, XLSX y (vía pdf) PDF.
package export

import (
	"encoding/csv"
	"fmt"
	"io"

	"github.com/jhoicas/notas-pagar/internal/application/dto"
	"github.com/jhoicas/notas-pagar/internal/domain/entity"
)

// Columns cabecera común de CSV y XLSX.
var Columns = []string{
	"Numero", "Serie", "Fornecedor", "Emissao", "Vencimento",
	"ValorTotal", "ValorPago", "Status", "Destinacao",
}

// CSVDelimiter separador usado por planillas en configuración pt-BR.
const CSVDelimiter = ';'

// WriteCSV escribe cabecera y una línea por fila. Los valores van como decimal sin formato
// ("1234.5") y ValorPago es el pagado efectivo a la fecha del reporte.
func WriteCSV(w io.Writer, r *dto.ReportDTO) error {
	cw := csv.NewWriter(w)
	cw.Comma = CSVDelimiter
	if err := cw.Write(Columns); err != nil {
		return fmt.Errorf("export: csv: %w", err)
	}
	for _, row := range r.Rows {
		rec := []string{
			row.Number,
			row.Series,
			row.SupplierName,
			row.IssueDate.String(),
			row.DueDate.String(),
			row.TotalAmount.String(),
			row.PaidAmount.String(),
			string(row.Status),
			row.Destination,
		}
		if err := cw.Write(rec); err != nil {
			return fmt.Errorf("export: csv: %w", err)
		}
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		return fmt.Errorf("export: csv: %w", err)
	}
	return nil
}

// Filename nombre de descarga: relatorio_notas_<YYYY-MM-DD>.<ext>.
func Filename(d entity.Date, ext string) string {
	return fmt.Sprintf("relatorio_notas_%s.%s", d.String(), ext)
}
