package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vladislavdragonenkov/partners/internal/domain"
	"github.com/vladislavdragonenkov/partners/internal/health"
)

func newStatusCmd(e *env) *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Check store connectivity",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx, cancel := e.operationContext(cmd)
			defer cancel()

			rt, err := e.runtime(ctx)
			if err != nil {
				return err
			}
			report := rt.Health.Evaluate(ctx)

			if getOutputFormat(cmd) == outputJSON {
				if err := report.WriteJSON(cmd.OutOrStdout()); err != nil {
					return err
				}
			} else {
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "status: %s\n", report.Status)
				for _, c := range report.Checks {
					line := fmt.Sprintf("  %s: %s (%dms)", c.Name, c.Status, c.DurationMs)
					if c.Message != "" {
						line += " " + c.Message
					}
					_, _ = fmt.Fprintln(cmd.OutOrStdout(), line)
				}
			}

			if report.Status == health.StatusUnhealthy {
				return fmt.Errorf("%w: store is unavailable", domain.ErrConnection)
			}
			return nil
		},
	}
}
