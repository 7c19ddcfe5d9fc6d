package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/warefloor/pirs/internal/desk"
)

// NewDashboardCommand creates the dashboard command.
func NewDashboardCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "dashboard",
		Short: "Show the shipment dashboard",
		Long: `Show the prioritized shipment queue, the warehouse pick list and the
blocked orders. The queue is reconciled against the ledger first, so
orders shipped elsewhere disappear from the view.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDashboard(rootOpts, cmd)
		},
	}
	return cmd
}

// dashboardPayload is the JSON shape of the dashboard command.
type dashboardPayload struct {
	Queue      []queueRow   `json:"queue"`
	PickList   []pickRow    `json:"pick_list"`
	Blocked    []blockedRow `json:"blocked"`
	QueueCount int          `json:"queue_count"`
}

type queueRow struct {
	OrderID        string `json:"order_id"`
	SKU            string `json:"sku"`
	Product        string `json:"product"`
	Quantity       int    `json:"quantity"`
	Tier           string `json:"tier"`
	Score          int    `json:"score"`
	Reason         string `json:"reason"`
	CurrentStock   int    `json:"current_stock"`
	StockAvailable bool   `json:"stock_available"`
}

type pickRow struct {
	SKU      string `json:"sku"`
	Product  string `json:"product"`
	Quantity int    `json:"quantity"`
	Orders   int    `json:"orders"`
}

type blockedRow struct {
	OrderID string `json:"order_id"`
	SKU     string `json:"sku"`
	Reason  string `json:"reason"`
}

func runDashboard(rootOpts *RootOptions, cmd *cobra.Command) error {
	formatter := newFormatter(rootOpts, cmd)

	d, store, err := openDesk(cmd.Context(), rootOpts)
	if err != nil {
		return err
	}
	defer store.Close()

	dash := d.Dashboard(cmd.Context())
	payload := buildDashboardPayload(dash)

	if formatter.Format == "json" {
		return formatter.JSON(payload)
	}
	renderDashboard(formatter, payload)
	return nil
}

func buildDashboardPayload(dash desk.Dashboard) dashboardPayload {
	payload := dashboardPayload{
		Queue:      make([]queueRow, 0, len(dash.Queue)),
		PickList:   make([]pickRow, 0, len(dash.PickList)),
		Blocked:    make([]blockedRow, 0, len(dash.Blocked)),
		QueueCount: dash.QueueCount,
	}
	for _, line := range dash.Queue {
		payload.Queue = append(payload.Queue, queueRow{
			OrderID:        line.ID,
			SKU:            line.SKU,
			Product:        line.ProductName,
			Quantity:       line.Quantity,
			Tier:           line.Tier.String(),
			Score:          line.Score,
			Reason:         string(line.Reason),
			CurrentStock:   line.CurrentStock,
			StockAvailable: line.StockAvailable,
		})
	}
	for _, item := range dash.PickList {
		payload.PickList = append(payload.PickList, pickRow{
			SKU:      item.SKU,
			Product:  item.Name,
			Quantity: item.Quantity,
			Orders:   item.Orders,
		})
	}
	for _, entry := range dash.Blocked {
		payload.Blocked = append(payload.Blocked, blockedRow{
			OrderID: entry.Order.ID,
			SKU:     entry.Order.SKU,
			Reason:  string(entry.Reason),
		})
	}
	return payload
}

func renderDashboard(f *OutputFormatter, p dashboardPayload) {
	fmt.Fprintf(f.Writer, "SHIPMENT QUEUE (%d orders)\n", p.QueueCount)
	if len(p.Queue) == 0 {
		fmt.Fprintln(f.Writer, "  queue is empty")
	} else {
		fmt.Fprintf(f.Writer, "  %-14s %-10s %-20s %4s %-9s %6s %-14s %6s %s\n",
			"ORDER", "SKU", "PRODUCT", "QTY", "TIER", "SCORE", "REASON", "STOCK", "OK")
		for _, row := range p.Queue {
			ok := "yes"
			if !row.StockAvailable {
				ok = "NO"
			}
			fmt.Fprintf(f.Writer, "  %-14s %-10s %-20s %4d %-9s %6d %-14s %6d %s\n",
				row.OrderID, row.SKU, truncate(row.Product, 20), row.Quantity,
				row.Tier, row.Score, row.Reason, row.CurrentStock, ok)
		}
	}

	fmt.Fprintln(f.Writer)
	fmt.Fprintln(f.Writer, "PICK LIST")
	if len(p.PickList) == 0 {
		fmt.Fprintln(f.Writer, "  nothing to pick")
	} else {
		fmt.Fprintf(f.Writer, "  %-10s %-20s %4s %6s\n", "SKU", "PRODUCT", "QTY", "ORDERS")
		for _, row := range p.PickList {
			fmt.Fprintf(f.Writer, "  %-10s %-20s %4d %6d\n",
				row.SKU, truncate(row.Product, 20), row.Quantity, row.Orders)
		}
	}

	fmt.Fprintln(f.Writer)
	fmt.Fprintf(f.Writer, "BLOCKED ORDERS (%d)\n", len(p.Blocked))
	for _, row := range p.Blocked {
		fmt.Fprintf(f.Writer, "  %-14s %-10s %s\n", row.OrderID, row.SKU, row.Reason)
	}
}

// truncate shortens long names so table columns stay aligned.
func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "…"
}
