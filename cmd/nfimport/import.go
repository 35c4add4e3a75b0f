package main

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/jhoicas/notas-pagar/internal/application/payables"
	"github.com/jhoicas/notas-pagar/internal/infrastructure/nfe"
)

func newImportCmd(s *session) *cobra.Command {
	return &cobra.Command{
		Use:   "import <archivo|directorio>...",
		Short: "Importa XML de NF-e / NFS-e",
		Long: `Lee los archivos indicados; de los directorios toma los *.xml (recursivo).
Los duplicados (misma chave de acesso) se informan y no se vuelven a registrar.`,
		Example: `  nfimport import nota.xml
  nfimport import ./xmls --as-of 2024-02-10`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			files, err := collectXML(args)
			if err != nil {
				return err
			}
			if len(files) == 0 {
				return fmt.Errorf("no se encontraron archivos .xml")
			}
			importer := payables.NewImporter(nfe.NewParser(), s.repo, s.log)
			res := importer.Import(cmd.Context(), files)

			out := cmd.OutOrStdout()
			for _, f := range res.Files {
				line := fmt.Sprintf("%-9s %s", f.Outcome, f.Name)
				if f.InvoiceNumber != "" {
					line += " nota " + f.InvoiceNumber
				}
				if f.Reason != "" {
					line += ": " + f.Reason
				}
				fmt.Fprintln(out, line)
			}
			fmt.Fprintf(out, "importadas: %d  duplicadas: %d  con error: %d\n", res.Imported, res.Duplicates, res.Failed)
			if res.Failed > 0 {
				return fmt.Errorf("%d archivo(s) con error", res.Failed)
			}
			return nil
		},
	}
}

// collectXML expande directorios a sus *.xml; los archivos indicados se toman tal cual.
func collectXML(paths []string) ([]payables.ImportFile, error) {
	var out []payables.ImportFile
	for _, p := range paths {
		info, err := os.Stat(p)
		if err != nil {
			return nil, err
		}
		if !info.IsDir() {
			data, err := os.ReadFile(p)
			if err != nil {
				return nil, err
			}
			out = append(out, payables.ImportFile{Name: filepath.Base(p), Content: data})
			continue
		}
		err = filepath.WalkDir(p, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if d.IsDir() || !strings.EqualFold(filepath.Ext(path), ".xml") {
				return nil
			}
			data, err := os.ReadFile(path)
			if err != nil {
				return err
			}
			out = append(out, payables.ImportFile{Name: filepath.Base(path), Content: data})
			return nil
		})
		if err != nil {
			return nil, err
		}
	}
	return out, nil
}
