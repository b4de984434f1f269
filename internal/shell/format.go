package shell

import (
	"fmt"
	"io"
	"strings"

	"go-pos-terminal/internal/model"
	"go-pos-terminal/internal/repository"

	"github.com/shopspring/decimal"
)

const dateTimeLayout = "2006-01-02 15:04:05"

func money(d decimal.Decimal) string {
	return d.StringFixed(2)
}

func rule(n int) string {
	return strings.Repeat("=", n)
}

func WriteProducts(w io.Writer, products []model.Product) {
	if len(products) == 0 {
		fmt.Fprintln(w, "\nNo products found.")
		return
	}
	fmt.Fprintln(w, "\nID  Barcode       Name                 Price     Stock")
	fmt.Fprintln(w, rule(54))
	for _, p := range products {
		fmt.Fprintf(w, "%-3d %-12s %-20s %8s %8d\n", p.ID, p.BarcodeOrNA(), p.Name, money(p.Price), p.Stock)
	}
}

func WriteCustomers(w io.Writer, customers []model.Customer) {
	if len(customers) == 0 {
		fmt.Fprintln(w, "\nNo customers found.")
		return
	}
	fmt.Fprintln(w, "\nID  Name                 Phone          Email")
	fmt.Fprintln(w, rule(52))
	for _, c := range customers {
		fmt.Fprintf(w, "%-3d %-20s %-14s %s\n", c.ID, c.Name, model.Display(c.Phone), model.Display(c.Email))
	}
}

func WriteUsers(w io.Writer, users []model.User) {
	if len(users) == 0 {
		fmt.Fprintln(w, "\nNo users found.")
		return
	}
	fmt.Fprintln(w, "\nID  Username       Full Name          Role")
	fmt.Fprintln(w, rule(44))
	for _, u := range users {
		fmt.Fprintf(w, "%-3d %-14s %-18s %s\n", u.ID, u.Username, u.FullName, u.Role)
	}
}

func WriteSales(w io.Writer, sales []repository.SaleRecord) {
	fmt.Fprintln(w, "\nID  Date                Customer            Cashier          Total")
	fmt.Fprintln(w, rule(67))
	for _, s := range sales {
		fmt.Fprintf(w, "%-3d %-19s %-18s %-16s %8s\n",
			s.ID, s.SaleDate.Format(dateTimeLayout), model.Display(s.Customer), model.Display(s.Cashier), money(s.TotalAmount))
	}
}

func WriteSaleDetail(w io.Writer, d *repository.SaleDetail) {
	fmt.Fprintf(w, "\nDate: %s\n", d.SaleDate.Format(dateTimeLayout))
	fmt.Fprintf(w, "Cashier: %s\n", model.Display(d.Cashier))
	fmt.Fprintf(w, "Customer: %s\n", model.Display(d.Customer))
	fmt.Fprintf(w, "Payment Method: %s\n", capitalize(string(d.PaymentMethod)))
	fmt.Fprintln(w, "\nItems:")
	fmt.Fprintln(w, "Product Name          Price     Qty     Subtotal")
	fmt.Fprintln(w, rule(48))
	for _, l := range d.Lines {
		fmt.Fprintf(w, "%-20s %8s %8d %10s\n", l.ProductName, money(l.Price), l.Quantity, money(l.Subtotal()))
	}
	fmt.Fprintln(w, rule(48))
	fmt.Fprintf(w, "Total: %42s\n", money(d.TotalAmount))
	fmt.Fprintf(w, "Amount Paid: %36s\n", money(d.AmountPaid))
	fmt.Fprintf(w, "Change Given: %35s\n", money(d.ChangeGiven))
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + strings.ToLower(s[1:])
}

func WriteSummary(w io.Writer, s *repository.SalesSummary) {
	fmt.Fprintln(w, "\nSummary:")
	fmt.Fprintln(w, rule(33))
	fmt.Fprintf(w, "Total Sales:      %10d\n", s.TotalSales)
	fmt.Fprintf(w, "Total Revenue:    %10s\n", money(s.TotalRevenue))
	fmt.Fprintf(w, "Average Sale:     %10s\n", money(s.AvgSale))
	fmt.Fprintf(w, "Smallest Sale:    %10s\n", money(s.MinSale))
	fmt.Fprintf(w, "Largest Sale:     %10s\n", money(s.MaxSale))
}

func WriteProductSales(w io.Writer, rows []repository.ProductSales) {
	fmt.Fprintln(w, "\nProduct Sales:")
	fmt.Fprintln(w, "ID  Product Name          Qty Sold    Revenue")
	fmt.Fprintln(w, rule(46))
	for _, r := range rows {
		fmt.Fprintf(w, "%-3d %-20s %8d %12s\n", r.ProductID, r.Name, r.TotalQuantity, money(r.TotalRevenue))
	}
}

func WriteDailySales(w io.Writer, rows []repository.PeriodSales) {
	fmt.Fprintln(w, "\nDaily Sales:")
	fmt.Fprintln(w, "Date         Sales    Revenue")
	fmt.Fprintln(w, rule(31))
	for _, r := range rows {
		fmt.Fprintf(w, "%-10s %6d %12s\n", r.Period, r.TotalSales, money(r.TotalRevenue))
	}
}

func WriteMonthlySales(w io.Writer, rows []repository.PeriodSales) {
	fmt.Fprintln(w, "\nMonthly Sales:")
	fmt.Fprintln(w, "Month     Sales    Revenue")
	fmt.Fprintln(w, rule(31))
	for _, r := range rows {
		fmt.Fprintf(w, "%-7s %6d %12s\n", r.Period, r.TotalSales, money(r.TotalRevenue))
	}
}

func WriteInventoryStatus(w io.Writer, st *repository.InventoryStatus, threshold int) {
	fmt.Fprintln(w, "\nInventory:")
	fmt.Fprintln(w, rule(33))
	fmt.Fprintf(w, "Total Products:   %10d\n", st.TotalProducts)
	fmt.Fprintf(w, "Units in Stock:   %10d\n", st.TotalUnits)
	fmt.Fprintf(w, "%-18s%10d\n", fmt.Sprintf("Low Stock (<%d):", threshold), st.LowStockCount)
	fmt.Fprintf(w, "Stock Value:      %10s\n", money(st.TotalValuation))
}
