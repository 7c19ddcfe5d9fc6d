package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/warefloor/pirs/internal/floor"
)

// NewIntakeCommand creates the intake command.
func NewIntakeCommand(rootOpts *RootOptions) *cobra.Command {
	var (
		orderID string
		sku     string
		qty     int
		tier    string
		lotID   string
	)

	cmd := &cobra.Command{
		Use:   "intake",
		Short: "Admit a new customer order",
		Long: `Admit a new customer order through the safety and stock checks.
The order lands on the shipment queue or, if it fails a check, in the
blocked registry. Either way it is recorded in the ledger.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			t, err := parseTier(tier)
			if err != nil {
				return NewExitError(ExitCommandError, err.Error())
			}
			o := floor.Order{
				ID:       orderID,
				SKU:      sku,
				Quantity: qty,
				Tier:     t,
				LotID:    lotID,
			}
			return runIntake(rootOpts, o, cmd)
		},
	}

	cmd.Flags().StringVar(&orderID, "id", "", "order id (generated when omitted)")
	cmd.Flags().StringVar(&sku, "sku", "", "product SKU (required)")
	cmd.Flags().IntVar(&qty, "qty", 1, "ordered quantity")
	cmd.Flags().StringVar(&tier, "tier", "standard", "customer tier (standard|vip|premium)")
	cmd.Flags().StringVar(&lotID, "lot", "", "inventory lot backing the order")
	_ = cmd.MarkFlagRequired("sku")

	return cmd
}

func parseTier(s string) (floor.Tier, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "standard":
		return floor.TierStandard, nil
	case "vip":
		return floor.TierVIP, nil
	case "premium":
		return floor.TierPremium, nil
	default:
		return 0, fmt.Errorf("unknown tier %q: must be standard, vip or premium", s)
	}
}

func runIntake(rootOpts *RootOptions, o floor.Order, cmd *cobra.Command) error {
	formatter := newFormatter(rootOpts, cmd)

	d, store, err := openDesk(cmd.Context(), rootOpts)
	if err != nil {
		return err
	}
	defer store.Close()

	res, err := d.Intake(cmd.Context(), o)
	if err != nil {
		return fail(formatter, err)
	}

	if formatter.Format == "json" {
		return formatter.JSON(map[string]any{
			"order_id": res.Order.ID,
			"queued":   res.Queued,
			"blocked":  res.Blocked,
			"reason":   string(res.Reason),
			"score":    res.Order.Score,
		})
	}

	// A blocked intake is still a recorded intake; exit zero either way.
	if res.Blocked {
		fmt.Fprintf(formatter.Writer, "Order %s BLOCKED (%s)\n", res.Order.ID, res.Reason)
		return nil
	}
	fmt.Fprintf(formatter.Writer, "Order %s queued with score %d (%s)\n",
		res.Order.ID, res.Order.Score, res.Order.Reason)
	return nil
}
