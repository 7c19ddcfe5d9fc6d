package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/warefloor/pirs/internal/desk"
)

// NewStabilityCommand creates the stability command.
func NewStabilityCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "stability",
		Short: "Classify every SKU by forecast days to stockout",
		Long: `Classify every cataloged SKU into critical, watch or stable bands by
its forecast days to stockout, most urgent first. SKUs with no sales in
the window report the no-burn sentinel and land in the stable band.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runStability(rootOpts, cmd)
		},
	}
	return cmd
}

// stabilityRow is the JSON shape of one stability report line.
type stabilityRow struct {
	SKU           string `json:"sku"`
	Product       string `json:"product"`
	Stock         int    `json:"stock"`
	DaysRemaining int    `json:"days_remaining"`
	Band          string `json:"band"`
}

type stabilityPayload struct {
	Entries []stabilityRow `json:"entries"`
	Summary desk.Summary   `json:"summary"`
}

func runStability(rootOpts *RootOptions, cmd *cobra.Command) error {
	formatter := newFormatter(rootOpts, cmd)

	d, store, err := openDesk(cmd.Context(), rootOpts)
	if err != nil {
		return err
	}
	defer store.Close()

	entries, err := d.StabilityReport(cmd.Context())
	if err != nil {
		return fail(formatter, err)
	}

	payload := stabilityPayload{
		Entries: make([]stabilityRow, 0, len(entries)),
		Summary: desk.SummarizeBands(entries),
	}
	for _, e := range entries {
		payload.Entries = append(payload.Entries, stabilityRow{
			SKU:           e.SKU,
			Product:       e.Product.Name,
			Stock:         e.Product.Stock,
			DaysRemaining: e.DaysRemaining,
			Band:          string(e.Band),
		})
	}

	if formatter.Format == "json" {
		return formatter.JSON(payload)
	}
	renderStability(formatter, payload)
	return nil
}

func renderStability(f *OutputFormatter, p stabilityPayload) {
	fmt.Fprintln(f.Writer, "STABILITY REPORT")
	fmt.Fprintf(f.Writer, "  %-10s %-20s %6s %6s %s\n", "SKU", "PRODUCT", "STOCK", "DAYS", "BAND")
	for _, row := range p.Entries {
		fmt.Fprintf(f.Writer, "  %-10s %-20s %6d %6d %s\n",
			row.SKU, truncate(row.Product, 20), row.Stock, row.DaysRemaining, row.Band)
	}
	fmt.Fprintln(f.Writer)
	fmt.Fprintf(f.Writer, "  %d SKUs: %d critical, %d watch, %d stable\n",
		p.Summary.TotalSKUs, p.Summary.Critical, p.Summary.Watch, p.Summary.Stable)
}
