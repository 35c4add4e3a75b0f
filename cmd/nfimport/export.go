package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/jhoicas/notas-pagar/internal/application/analytics"
	"github.com/jhoicas/notas-pagar/internal/application/dto"
	"github.com/jhoicas/notas-pagar/internal/infrastructure/export"
	infrapdf "github.com/jhoicas/notas-pagar/internal/infrastructure/pdf"
)

func newExportCmd(s *session) *cobra.Command {
	var (
		format string
		outDir string
		q      dto.ReportQuery
	)
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Exporta el reporte de notas (csv, xlsx o pdf)",
		Example: `  nfimport export --format xlsx --out ./reportes
  nfimport export --format pdf --due-from 2024-02-01 --due-to 2024-02-29 --status "Em aberto"`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			f, err := export.ParseFormat(format)
			if err != nil {
				return err
			}
			filter, err := q.Filter()
			if err != nil {
				return err
			}
			report := analytics.NewReportUseCase(s.repo).Build(filter, s.repo.Today())

			exporter := export.NewExporter(infrapdf.NewMarotoReportGenerator("Relatório de Notas a Pagar"))
			file, err := exporter.Export(cmd.Context(), f, report)
			if err != nil {
				return err
			}
			if err := os.MkdirAll(outDir, 0o755); err != nil {
				return err
			}
			path := filepath.Join(outDir, file.Name)
			if err := os.WriteFile(path, file.Data, 0o644); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s (%d notas)\n", path, len(report.Rows))
			return nil
		},
	}
	cmd.Flags().StringVar(&format, "format", "csv", "csv | xlsx | pdf")
	cmd.Flags().StringVar(&outDir, "out", ".", "Directorio de salida")
	cmd.Flags().StringVar(&q.DueFrom, "due-from", "", "Vencimiento desde (YYYY-MM-DD)")
	cmd.Flags().StringVar(&q.DueTo, "due-to", "", "Vencimiento hasta (YYYY-MM-DD)")
	cmd.Flags().StringVar(&q.SupplierID, "supplier", "", "ID de proveedor")
	cmd.Flags().StringVar(&q.Status, "status", "", "Em aberto | Paga | Vencida")
	return cmd
}
