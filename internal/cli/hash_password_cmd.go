package cli

import (
	"bufio"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/vladislavdragonenkov/partners/internal/domain"
	"github.com/vladislavdragonenkov/partners/internal/service/auth"
)

func newHashPasswordCmd(_ *env) *cobra.Command {
	var scheme string

	cmd := &cobra.Command{
		Use:   "hash-password [password]",
		Short: "Compute a password digest for provisioning a manager row",
		Long:  "Compute a password digest. Without an argument the password is read from the first line of stdin.",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			password := ""
			if len(args) == 1 {
				password = args[0]
			} else {
				line, err := bufio.NewReader(cmd.InOrStdin()).ReadString('\n')
				if err != nil && line == "" {
					return fmt.Errorf("%w: password is required", domain.ErrValidation)
				}
				password = line
			}
			password = strings.TrimSpace(password)
			if password == "" {
				return fmt.Errorf("%w: password is required", domain.ErrValidation)
			}

			hash, err := auth.HashPassword(scheme, password)
			if err != nil {
				return fmt.Errorf("%w: %w", domain.ErrValidation, err)
			}
			if getOutputFormat(cmd) == outputJSON {
				return printJSON(cmd.OutOrStdout(), map[string]string{"scheme": scheme, "hash": hash})
			}
			_, _ = fmt.Fprintln(cmd.OutOrStdout(), hash)
			return nil
		},
	}
	cmd.Flags().StringVar(&scheme, "scheme", "bcrypt", "Digest scheme (bcrypt, md5)")
	return cmd
}
