package cli

import (
	"fmt"

	"go-pos-terminal/internal/model"
	"go-pos-terminal/internal/shell"

	"github.com/spf13/cobra"
)

var reportCmd = &cobra.Command{
	Use:   "report <summary|products|daily|monthly|inventory>",
	Short: "Print a sales or inventory report",
	Long: `Print a report without starting the terminal.

--from and --to take YYYY-MM-DD (YYYY-MM for monthly); both ends are
included. Leave them out to report on all sales.`,
	Args:      cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
	ValidArgs: []string{"summary", "products", "daily", "monthly", "inventory"},
	RunE:      runReport,
}

var reportFrom, reportTo string

func init() {
	reportCmd.Flags().StringVar(&reportFrom, "from", "", "first day (or month) to include")
	reportCmd.Flags().StringVar(&reportTo, "to", "", "last day (or month) to include")
	rootCmd.AddCommand(reportCmd)
}

func runReport(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	kind := args[0]

	parse := model.ParseDateRange
	if kind == "monthly" {
		parse = model.ParseMonthRange
	}
	rng, err := parse(reportFrom, reportTo)
	if err != nil {
		return fmt.Errorf("%w: use YYYY-MM-DD, or YYYY-MM for monthly", err)
	}

	a, err := newApp(ctx)
	if err != nil {
		return err
	}
	defer a.close()

	out := cmd.OutOrStdout()
	reports := a.svc.Reports
	if kind != "inventory" {
		fmt.Fprintln(out, rng.Label())
	}

	switch kind {
	case "summary":
		s, err := reports.Summary(ctx, rng)
		if err != nil {
			return err
		}
		shell.WriteSummary(out, s)
	case "products":
		rows, err := reports.ProductSales(ctx, rng)
		if err != nil {
			return err
		}
		shell.WriteProductSales(out, rows)
	case "daily":
		rows, err := reports.DailySales(ctx, rng)
		if err != nil {
			return err
		}
		shell.WriteDailySales(out, rows)
	case "monthly":
		rows, err := reports.MonthlySales(ctx, rng)
		if err != nil {
			return err
		}
		shell.WriteMonthlySales(out, rows)
	case "inventory":
		st, err := reports.InventoryStatus(ctx)
		if err != nil {
			return err
		}
		shell.WriteInventoryStatus(out, st, reports.LowStockThreshold())
	}
	return nil
}
