package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/warefloor/pirs/internal/ledger"
)

// NewSeedCommand creates the seed command.
func NewSeedCommand(rootOpts *RootOptions) *cobra.Command {
	opts := ledger.DefaultSeedOptions()

	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Populate the ledger with a demo catalog and order book",
		Long: `Populate the ledger with the demo product catalog, a sales history,
inventory lots and a randomized order book. Deterministic for a given --seed.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSeed(rootOpts, opts, cmd)
		},
	}

	cmd.Flags().IntVar(&opts.HistoryDays, "history-days", opts.HistoryDays, "days of sales history to generate")
	cmd.Flags().IntVar(&opts.MaxOrdersPerSKU, "max-orders", opts.MaxOrdersPerSKU, "maximum generated orders per SKU")
	cmd.Flags().Int64Var(&opts.Seed, "seed", opts.Seed, "random seed for the generated data")

	return cmd
}

func runSeed(rootOpts *RootOptions, opts ledger.SeedOptions, cmd *cobra.Command) error {
	formatter := newFormatter(rootOpts, cmd)

	store, err := openStore(rootOpts)
	if err != nil {
		return err
	}
	defer store.Close()

	if err := store.Seed(cmd.Context(), opts); err != nil {
		return fail(formatter, err)
	}

	if formatter.Format == "json" {
		return formatter.JSON(map[string]any{"seeded": true, "db": rootOpts.DBPath})
	}
	fmt.Fprintf(formatter.Writer, "Seeded ledger at %s\n", rootOpts.DBPath)
	return nil
}
