package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

// NewResolveCommand creates the resolve command.
func NewResolveCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "resolve <order-id>",
		Short: "Re-validate a blocked order",
		Long: `Pull a blocked order out of the registry and run it back through the
safety and stock checks. Passing orders return to the shipment queue;
failing orders stay blocked under the fresh reason.`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runResolve(rootOpts, args[0], cmd)
		},
	}
	return cmd
}

func runResolve(rootOpts *RootOptions, orderID string, cmd *cobra.Command) error {
	formatter := newFormatter(rootOpts, cmd)

	d, store, err := openDesk(cmd.Context(), rootOpts)
	if err != nil {
		return err
	}
	defer store.Close()

	out, err := d.ResolveBlocked(cmd.Context(), orderID)
	if err != nil {
		return fail(formatter, err)
	}

	if formatter.Format == "json" {
		return formatter.JSON(map[string]any{
			"order_id": out.Order.ID,
			"requeued": out.Requeued,
			"reason":   string(out.Reason),
		})
	}

	if out.Requeued {
		fmt.Fprintf(formatter.Writer, "Order %s requeued\n", out.Order.ID)
		return nil
	}
	fmt.Fprintf(formatter.Writer, "Order %s still blocked (%s)\n", out.Order.ID, out.Reason)
	return NewExitError(ExitFailure, fmt.Sprintf("order %s still blocked: %s", out.Order.ID, out.Reason))
}
