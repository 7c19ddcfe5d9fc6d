package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

// NewDispatchCommand creates the dispatch command.
func NewDispatchCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "dispatch <order-id>",
		Short: "Ship an order and decrement its stock",
		Long: `Ship an order: atomically verify stock, decrement it and mark the
order SHIPPED in the ledger, then drop it from the shipment queue.
An order without sufficient stock stays PENDING and the command fails.`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDispatch(rootOpts, args[0], cmd)
		},
	}
	return cmd
}

func runDispatch(rootOpts *RootOptions, orderID string, cmd *cobra.Command) error {
	formatter := newFormatter(rootOpts, cmd)

	d, store, err := openDesk(cmd.Context(), rootOpts)
	if err != nil {
		return err
	}
	defer store.Close()

	rec, err := d.Dispatch(cmd.Context(), orderID)
	if err != nil {
		return fail(formatter, err)
	}

	if formatter.Format == "json" {
		return formatter.JSON(map[string]any{
			"order_id": rec.ID,
			"sku":      rec.SKU,
			"quantity": rec.Quantity,
			"status":   string(rec.Status),
		})
	}

	fmt.Fprintf(formatter.Writer, "Order %s shipped (%d x %s)\n", rec.ID, rec.Quantity, rec.SKU)
	return nil
}
