package shell

import (
	"context"

	"go-pos-terminal/internal/model"
)

func (s *Shell) reportMenu(ctx context.Context) error {
	return s.menu(ctx, "REPORTS", []menuItem{
		{"Sales Summary", s.salesSummary},
		{"Product Sales", s.productSales},
		{"Daily Sales", s.dailySales},
		{"Monthly Sales", s.monthlySales},
		{"Inventory Status", s.inventoryStatus},
		{label: "Back to Main Menu"},
	}, "", nil)
}

// report asks for a day range and renders it, printing the range label
// above the output
func (s *Shell) report(ctx context.Context, title string, render func(context.Context, model.DateRange) error) error {
	s.clear()
	s.header(title)

	rng, ok, err := s.promptDayRange("\nEnter start date (YYYY-MM-DD, leave empty for all): ")
	if err != nil {
		return err
	}
	if ok {
		s.printf("\n%s\n", rng.Label())
		if err := render(ctx, rng); err != nil {
			s.printf("Error generating report: %v\n", err)
		}
	}
	return s.pause()
}

func (s *Shell) salesSummary(ctx context.Context) error {
	return s.report(ctx, "SALES SUMMARY", func(ctx context.Context, rng model.DateRange) error {
		summary, err := s.svc.Reports.Summary(ctx, rng)
		if err != nil {
			return err
		}
		WriteSummary(s.out, summary)
		return nil
	})
}

func (s *Shell) productSales(ctx context.Context) error {
	return s.report(ctx, "PRODUCT SALES", func(ctx context.Context, rng model.DateRange) error {
		rows, err := s.svc.Reports.ProductSales(ctx, rng)
		if err != nil {
			return err
		}
		WriteProductSales(s.out, rows)
		return nil
	})
}

func (s *Shell) dailySales(ctx context.Context) error {
	return s.report(ctx, "DAILY SALES", func(ctx context.Context, rng model.DateRange) error {
		rows, err := s.svc.Reports.DailySales(ctx, rng)
		if err != nil {
			return err
		}
		WriteDailySales(s.out, rows)
		return nil
	})
}

func (s *Shell) monthlySales(ctx context.Context) error {
	s.clear()
	s.header("MONTHLY SALES")

	from, err := s.prompt("\nEnter start date (YYYY-MM, leave empty for all): ")
	if err != nil {
		return err
	}
	to, err := s.prompt("Enter end date (YYYY-MM, leave empty for current month): ")
	if err != nil {
		return err
	}
	rng, err := model.ParseMonthRange(from, to)
	if err != nil {
		s.println("Invalid date format. Please use YYYY-MM.")
		return s.pause()
	}

	rows, err := s.svc.Reports.MonthlySales(ctx, rng)
	if err != nil {
		s.printf("Error generating report: %v\n", err)
		return s.pause()
	}
	WriteMonthlySales(s.out, rows)
	return s.pause()
}

func (s *Shell) inventoryStatus(ctx context.Context) error {
	s.clear()
	s.header("INVENTORY STATUS")

	st, err := s.svc.Reports.InventoryStatus(ctx)
	if err != nil {
		s.printf("Error generating report: %v\n", err)
		return s.pause()
	}
	WriteInventoryStatus(s.out, st, s.svc.Reports.LowStockThreshold())
	return s.pause()
}
