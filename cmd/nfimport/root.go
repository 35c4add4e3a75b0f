package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/jhoicas/notas-pagar/internal/application/payables"
	"github.com/jhoicas/notas-pagar/internal/domain/entity"
	"github.com/jhoicas/notas-pagar/internal/infrastructure/storage"
	"github.com/jhoicas/notas-pagar/pkg/config"
	"github.com/jhoicas/notas-pagar/pkg/logger"
)

var version = "1.0.0"

// session estado compartido por los subcomandos; se abre en PersistentPreRunE y se
// cierra en execute, también cuando el subcomando falla.
type session struct {
	cfg    *config.Config
	log    *logger.Logger
	repo   *payables.InvoiceRepository
	close  func()
	closed bool

	asOf string
}

func newRootCmd() (*cobra.Command, *session) {
	s := &session{close: func() {}}

	root := &cobra.Command{
		Use:   "nfimport",
		Short: "Importación y reportes de notas fiscales a pagar",
		Long: `nfimport trabaja sobre el mismo registro que la API (STORAGE_DRIVER, STORAGE_KEY, ...).

Importa XML de NF-e y NFS-e, exporta el reporte de notas y muestra los indicadores del panel.`,
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return s.open(cmd)
		},
	}
	root.PersistentFlags().StringVar(&s.asOf, "as-of", "", "Fecha de referencia YYYY-MM-DD (default: hoy)")

	root.AddCommand(newImportCmd(s), newExportCmd(s), newStatusCmd(s))
	return root, s
}

// shutdown libera el almacenamiento una sola vez.
func (s *session) shutdown() {
	if s.closed {
		return
	}
	s.closed = true
	s.close()
}

func (s *session) open(cmd *cobra.Command) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	s.cfg = cfg
	s.log = logger.New(logger.Config{Env: cfg.App.Env, Level: cfg.Log.Level, Output: cmd.ErrOrStderr()}).WithComponent("nfimport")

	var clock payables.Clock
	if s.asOf != "" {
		d, err := entity.ParseDate(s.asOf)
		if err != nil {
			return fmt.Errorf("--as-of: %w", err)
		}
		clock = payables.FixedClock(d.Time())
	} else {
		clock = time.Now
	}

	store, closeStore, err := storage.Open(cmd.Context(), cfg, s.log)
	if err != nil {
		return err
	}
	s.close = closeStore
	s.repo = payables.NewInvoiceRepository(store, clock, s.log)
	return s.repo.Open(cmd.Context())
}

// Execute ejecuta la CLI y devuelve el código de salida.
func Execute(args []string) int {
	root, s := newRootCmd()
	root.SetArgs(args)
	if err := execute(root, s); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		return 1
	}
	return 0
}

func execute(root *cobra.Command, s *session) error {
	defer s.shutdown()
	return root.Execute()
}
