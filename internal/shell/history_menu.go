package shell

import (
	"context"
	"errors"
	"strconv"

	"go-pos-terminal/internal/middleware"
	"go-pos-terminal/internal/model"
	"go-pos-terminal/internal/service"
)

func (s *Shell) saleHistoryMenu(ctx context.Context) error {
	return s.menu(ctx, "SALE HISTORY", []menuItem{
		{"View All Sales", s.viewAllSales},
		{"View Sales by Date Range", s.viewSalesByRange},
		{"View Sale Details", s.viewSaleDetails},
		{"Delete Sale", middleware.RequirePrivilege(model.PrivSaleDelete, s.deleteSale)},
		{"Delete All Sales", middleware.RequirePrivilege(model.PrivSaleDelete, s.deleteAllSales)},
		{label: "Back to Main Menu"},
	}, "", nil)
}

func (s *Shell) listSales(ctx context.Context, rng model.DateRange, empty string) error {
	sales, err := s.svc.Sales.ListSales(ctx, rng)
	if err != nil {
		return err
	}
	if len(sales) == 0 {
		s.println(empty)
		return nil
	}
	WriteSales(s.out, sales)
	return nil
}

func (s *Shell) viewAllSales(ctx context.Context) error {
	s.clear()
	s.header("ALL SALES")
	if err := s.listSales(ctx, model.DateRange{}, "\nNo sales found."); err != nil {
		return err
	}
	return s.pause()
}

// promptDayRange asks for an optional YYYY-MM-DD range. ok is false when
// the input could not be parsed; the user has been told.
func (s *Shell) promptDayRange(startLabel string) (rng model.DateRange, ok bool, err error) {
	from, err := s.prompt(startLabel)
	if err != nil {
		return rng, false, err
	}
	to, err := s.prompt("Enter end date (YYYY-MM-DD, leave empty for today): ")
	if err != nil {
		return rng, false, err
	}
	rng, perr := model.ParseDateRange(from, to)
	if perr != nil {
		s.println("Invalid date format. Please use YYYY-MM-DD.")
		return rng, false, nil
	}
	return rng, true, nil
}

func (s *Shell) viewSalesByRange(ctx context.Context) error {
	s.clear()
	s.header("SALES BY DATE RANGE")

	rng, ok, err := s.promptDayRange("Enter start date (YYYY-MM-DD, leave empty for all): ")
	if err != nil {
		return err
	}
	if ok {
		s.clear()
		if rng.IsZero() {
			s.header("ALL SALES")
		} else {
			s.header("SALES " + rng.Label())
		}
		if err := s.listSales(ctx, rng, "\nNo sales found for the selected date range."); err != nil {
			return err
		}
	}
	return s.pause()
}

func (s *Shell) viewSaleDetails(ctx context.Context) error {
	if err := s.listSales(ctx, model.DateRange{}, "\nNo sales found."); err != nil {
		return err
	}

	id, err := s.promptInt("\nEnter sale ID to view details (0 to cancel): ")
	if errors.Is(err, errInvalidNumber) {
		s.println("Invalid sale ID.")
		return s.pause()
	}
	if err != nil || id == 0 {
		return err
	}

	detail, err := s.svc.Sales.GetSaleDetail(ctx, uint(id))
	if errors.Is(err, service.ErrNotFound) {
		s.println("Sale not found.")
		return s.pause()
	}
	if err != nil {
		return err
	}

	s.clear()
	s.header("SALE DETAILS - ID " + strconv.Itoa(id))
	WriteSaleDetail(s.out, detail)
	return s.pause()
}

func (s *Shell) deleteSale(ctx context.Context) error {
	if err := s.listSales(ctx, model.DateRange{}, "\nNo sales found."); err != nil {
		return err
	}

	id, err := s.promptInt("\nEnter sale ID to delete (0 to cancel): ")
	if errors.Is(err, errInvalidNumber) {
		s.println("Invalid sale ID.")
		return s.pause()
	}
	if err != nil || id == 0 {
		return err
	}

	if _, err := s.svc.Sales.GetSaleDetail(ctx, uint(id)); errors.Is(err, service.ErrNotFound) {
		s.println("Sale not found.")
		return s.pause()
	} else if err != nil {
		return err
	}

	ok, err := s.confirm("Are you sure you want to delete this sale? This cannot be undone. (y/n): ")
	if err != nil {
		return err
	}
	if !ok {
		s.println("Deletion canceled.")
		return s.pause()
	}
	if err := s.svc.Sales.DeleteSale(ctx, uint(id)); err != nil {
		return err
	}
	s.println("Sale deleted successfully!")
	return s.pause()
}

func (s *Shell) deleteAllSales(ctx context.Context) error {
	s.clear()
	s.header("DELETE ALL SALES")

	ok, err := s.confirm("\nWARNING: This will delete ALL sales records and cannot be undone!\nAre you absolutely sure? (y/n): ")
	if err != nil {
		return err
	}
	if !ok {
		s.println("Operation canceled.")
		return s.pause()
	}
	if _, err := s.svc.Sales.DeleteAllSales(ctx); err != nil {
		return err
	}
	s.println("All sales records have been deleted.")
	return s.pause()
}
