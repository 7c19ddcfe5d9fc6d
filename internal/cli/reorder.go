package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

// NewReorderCommand creates the reorder command.
func NewReorderCommand(rootOpts *RootOptions) *cobra.Command {
	var top int

	cmd := &cobra.Command{
		Use:   "reorder",
		Short: "Show the SKUs closest to stockout",
		Long: `Rank every cataloged SKU by forecast days to stockout and show the
most urgent candidates for reordering.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runReorder(rootOpts, top, cmd)
		},
	}

	cmd.Flags().IntVar(&top, "top", 5, "number of suggestions to show")

	return cmd
}

// reorderRow is the JSON shape of one reorder suggestion.
type reorderRow struct {
	SKU           string  `json:"sku"`
	Product       string  `json:"product"`
	Stock         int     `json:"stock"`
	DaysRemaining float64 `json:"days_remaining"`
}

func runReorder(rootOpts *RootOptions, top int, cmd *cobra.Command) error {
	formatter := newFormatter(rootOpts, cmd)

	if top <= 0 {
		return NewExitError(ExitCommandError, fmt.Sprintf("--top must be positive, got %d", top))
	}

	d, store, err := openDesk(cmd.Context(), rootOpts)
	if err != nil {
		return err
	}
	defer store.Close()

	suggestions, err := d.ReorderSuggestions(cmd.Context(), top)
	if err != nil {
		return fail(formatter, err)
	}

	rows := make([]reorderRow, 0, len(suggestions))
	for _, s := range suggestions {
		rows = append(rows, reorderRow{
			SKU:           s.SKU,
			Product:       s.Name,
			Stock:         s.Stock,
			DaysRemaining: s.DaysRemaining,
		})
	}

	if formatter.Format == "json" {
		return formatter.JSON(rows)
	}

	fmt.Fprintf(formatter.Writer, "REORDER SUGGESTIONS (top %d)\n", top)
	fmt.Fprintf(formatter.Writer, "  %-10s %-20s %6s %8s\n", "SKU", "PRODUCT", "STOCK", "DAYS")
	for _, row := range rows {
		fmt.Fprintf(formatter.Writer, "  %-10s %-20s %6d %8.1f\n",
			row.SKU, truncate(row.Product, 20), row.Stock, row.DaysRemaining)
	}
	return nil
}
