package export

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"

	"github.com/jhoicas/notas-pagar/internal/application/dto"
)

// SheetName hoja única del libro exportado.
const SheetName = "Notas"

// WriteXLSX escribe un libro con la hoja "Notas": mismas columnas del CSV, montos como
// números y una fila final de totales.
func WriteXLSX(w io.Writer, r *dto.ReportDTO) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", SheetName); err != nil {
		return fmt.Errorf("export: xlsx: %w", err)
	}

	for i, header := range Columns {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		if err := f.SetCellValue(SheetName, cell, header); err != nil {
			return fmt.Errorf("export: xlsx: %w", err)
		}
	}

	for i, row := range r.Rows {
		line := i + 2
		values := []interface{}{
			row.Number,
			row.Series,
			row.SupplierName,
			row.IssueDate.String(),
			row.DueDate.String(),
			row.TotalAmount.InexactFloat64(),
			row.PaidAmount.InexactFloat64(),
			string(row.Status),
			row.Destination,
		}
		for col, v := range values {
			cell, _ := excelize.CoordinatesToCellName(col+1, line)
			if err := f.SetCellValue(SheetName, cell, v); err != nil {
				return fmt.Errorf("export: xlsx: %w", err)
			}
		}
	}

	totals := len(r.Rows) + 2
	f.SetCellValue(SheetName, fmt.Sprintf("E%d", totals), "Total")
	f.SetCellValue(SheetName, fmt.Sprintf("F%d", totals), r.Total.InexactFloat64())
	f.SetCellValue(SheetName, fmt.Sprintf("G%d", totals), r.Paid.InexactFloat64())

	if err := f.Write(w); err != nil {
		return fmt.Errorf("export: xlsx: %w", err)
	}
	return nil
}
