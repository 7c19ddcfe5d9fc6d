package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

// NewAuditCommand creates the audit command.
func NewAuditCommand(rootOpts *RootOptions) *cobra.Command {
	var count int

	cmd := &cobra.Command{
		Use:   "audit",
		Short: "Show the next SKUs in the cycle-count rotation",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runAudit(rootOpts, count, cmd)
		},
	}

	cmd.Flags().IntVar(&count, "count", 5, "number of SKUs to audit")

	return cmd
}

func runAudit(rootOpts *RootOptions, count int, cmd *cobra.Command) error {
	formatter := newFormatter(rootOpts, cmd)

	if count <= 0 {
		return NewExitError(ExitCommandError, fmt.Sprintf("--count must be positive, got %d", count))
	}

	d, store, err := openDesk(cmd.Context(), rootOpts)
	if err != nil {
		return err
	}
	defer store.Close()

	skus := d.AuditNext(count)

	if formatter.Format == "json" {
		return formatter.JSON(map[string]any{"skus": skus})
	}

	fmt.Fprintf(formatter.Writer, "CYCLE COUNT (%d SKUs)\n", len(skus))
	for _, sku := range skus {
		fmt.Fprintf(formatter.Writer, "  %s\n", sku)
	}
	return nil
}
