package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vladislavdragonenkov/partners/internal/version"
)

func newVersionCmd(_ *env) *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the partnerctl version",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			info := version.Get()
			if getOutputFormat(cmd) == outputJSON {
				return printJSON(cmd.OutOrStdout(), info)
			}
			_, _ = fmt.Fprintln(cmd.OutOrStdout(), info.String())
			return nil
		},
	}
}
