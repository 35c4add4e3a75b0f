package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jhoicas/notas-pagar/internal/application/analytics"
)

func newStatusCmd(s *session) *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Recalcula estados a la fecha y muestra los indicadores",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			changed, err := s.repo.Refresh(cmd.Context())
			if err != nil {
				return err
			}
			d := analytics.NewDashboardUseCase(s.repo).Summary(s.repo.Today())

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "fecha:        %s\n", d.AsOf)
			fmt.Fprintf(out, "recalculadas: %d\n", changed)
			fmt.Fprintf(out, "notas:        %d (pagas %d, em aberto %d, vencidas %d)\n", d.Total, d.Paid, d.Open, d.Overdue)
			fmt.Fprintf(out, "pagado:       %s\n", d.TotalPaid.StringFixed(2))
			fmt.Fprintf(out, "a pagar:      %s\n", d.TotalToPay.StringFixed(2))
			fmt.Fprintf(out, "vencido:      %s\n", d.TotalOverdue.StringFixed(2))
			fmt.Fprintf(out, "vencen hoy:   %d, próximos 7 días: %d\n", d.DueToday, d.DueNext7Days)
			return nil
		},
	}
}
