package repository

import (
	"context"
	"fmt"
	"strings"

	"go-pos-terminal/internal/model"

	"github.com/jmoiron/sqlx"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type ReportRepository interface {
	Summary(ctx context.Context, rng model.DateRange) (*SalesSummary, error)
	ProductSales(ctx context.Context, rng model.DateRange) ([]ProductSales, error)
	DailySales(ctx context.Context, rng model.DateRange) ([]PeriodSales, error)
	MonthlySales(ctx context.Context, rng model.DateRange) ([]PeriodSales, error)
	InventoryStatus(ctx context.Context, lowStockThreshold int) (*InventoryStatus, error)
}

type SalesSummary struct {
	TotalSales   int64           `db:"total_sales" json:"total_sales"`
	TotalRevenue decimal.Decimal `db:"total_revenue" json:"total_revenue"`
	AvgSale      decimal.Decimal `db:"avg_sale" json:"avg_sale"`
	MinSale      decimal.Decimal `db:"min_sale" json:"min_sale"`
	MaxSale      decimal.Decimal `db:"max_sale" json:"max_sale"`
}

type ProductSales struct {
	ProductID     uint            `db:"product_id" json:"product_id"`
	Name          string          `db:"name" json:"name"`
	TotalQuantity int64           `db:"total_quantity" json:"total_quantity"`
	TotalRevenue  decimal.Decimal `db:"total_revenue" json:"total_revenue"`
}

// PeriodSales is one row of the daily (YYYY-MM-DD) or monthly (YYYY-MM) report
type PeriodSales struct {
	Period       string          `db:"period" json:"period"`
	TotalSales   int64           `db:"total_sales" json:"total_sales"`
	TotalRevenue decimal.Decimal `db:"total_revenue" json:"total_revenue"`
}

// InventoryStatus untuk overview stok
type InventoryStatus struct {
	TotalProducts  int64           `db:"total_products" json:"total_products"`
	TotalUnits     int64           `db:"total_units" json:"total_units"`
	LowStockCount  int64           `db:"low_stock_count" json:"low_stock_count"`
	TotalValuation decimal.Decimal `db:"total_valuation" json:"total_valuation"`
}

type dialect struct {
	day   func(col string) string
	month func(col string) string
}

var dialects = map[string]dialect{
	"sqlite": {
		day:   func(col string) string { return "substr(" + col + ", 1, 10)" },
		month: func(col string) string { return "substr(" + col + ", 1, 7)" },
	},
	"postgres": {
		day:   func(col string) string { return "to_char(" + col + ", 'YYYY-MM-DD')" },
		month: func(col string) string { return "to_char(" + col + ", 'YYYY-MM')" },
	},
	"mysql": {
		day:   func(col string) string { return "DATE_FORMAT(" + col + ", '%Y-%m-%d')" },
		month: func(col string) string { return "DATE_FORMAT(" + col + ", '%Y-%m')" },
	},
}

type reportRepo struct {
	db      *sqlx.DB
	dialect dialect
}

// NewReportRepo shares gorm's connection pool with sqlx for the aggregate queries
func NewReportRepo(db *gorm.DB) (ReportRepository, error) {
	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	name := db.Dialector.Name()
	d, ok := dialects[name]
	if !ok {
		return nil, fmt.Errorf("reports not supported for dialect %q", name)
	}
	driverName := name
	if name == "sqlite" {
		driverName = "sqlite3"
	}
	return &reportRepo{db: sqlx.NewDb(sqlDB, driverName), dialect: d}, nil
}

// rangeWhere renders rng as a parameterized WHERE clause on column
func rangeWhere(column string, rng model.DateRange) (string, []interface{}) {
	var conds []string
	var args []interface{}
	if rng.From != nil {
		conds = append(conds, column+" >= ?")
		args = append(args, *rng.From)
	}
	if rng.To != nil {
		conds = append(conds, column+" < ?")
		args = append(args, *rng.To)
	}
	if len(conds) == 0 {
		return "", nil
	}
	return " WHERE " + strings.Join(conds, " AND "), args
}

func (r *reportRepo) Summary(ctx context.Context, rng model.DateRange) (*SalesSummary, error) {
	where, args := rangeWhere("sale_date", rng)
	query := `
		SELECT
			COUNT(*) AS total_sales,
			COALESCE(SUM(total_amount), 0) AS total_revenue,
			COALESCE(AVG(total_amount), 0) AS avg_sale,
			COALESCE(MIN(total_amount), 0) AS min_sale,
			COALESCE(MAX(total_amount), 0) AS max_sale
		FROM sales` + where

	var summary SalesSummary
	if err := r.db.GetContext(ctx, &summary, r.db.Rebind(query), args...); err != nil {
		return nil, err
	}
	return &summary, nil
}

func (r *reportRepo) ProductSales(ctx context.Context, rng model.DateRange) ([]ProductSales, error) {
	where, args := rangeWhere("s.sale_date", rng)
	query := `
		SELECT
			si.product_id AS product_id,
			COALESCE(p.name, '` + DeletedProductName + `') AS name,
			SUM(si.quantity) AS total_quantity,
			SUM(si.quantity * si.price) AS total_revenue
		FROM sale_items si
		JOIN sales s ON si.sale_id = s.id
		LEFT JOIN products p ON si.product_id = p.id` + where + `
		GROUP BY si.product_id, p.name
		ORDER BY total_revenue DESC, si.product_id ASC`

	rows := []ProductSales{}
	if err := r.db.SelectContext(ctx, &rows, r.db.Rebind(query), args...); err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *reportRepo) DailySales(ctx context.Context, rng model.DateRange) ([]PeriodSales, error) {
	return r.periodSales(ctx, r.dialect.day("sale_date"), rng)
}

func (r *reportRepo) MonthlySales(ctx context.Context, rng model.DateRange) ([]PeriodSales, error) {
	return r.periodSales(ctx, r.dialect.month("sale_date"), rng)
}

func (r *reportRepo) periodSales(ctx context.Context, period string, rng model.DateRange) ([]PeriodSales, error) {
	where, args := rangeWhere("sale_date", rng)
	query := `
		SELECT
			` + period + ` AS period,
			COUNT(*) AS total_sales,
			COALESCE(SUM(total_amount), 0) AS total_revenue
		FROM sales` + where + `
		GROUP BY ` + period + `
		ORDER BY period DESC`

	rows := []PeriodSales{}
	if err := r.db.SelectContext(ctx, &rows, r.db.Rebind(query), args...); err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *reportRepo) InventoryStatus(ctx context.Context, lowStockThreshold int) (*InventoryStatus, error) {
	query := `
		SELECT
			COUNT(*) AS total_products,
			COALESCE(SUM(stock), 0) AS total_units,
			COALESCE(SUM(CASE WHEN stock < ? THEN 1 ELSE 0 END), 0) AS low_stock_count,
			COALESCE(SUM(stock * price), 0) AS total_valuation
		FROM products`

	var status InventoryStatus
	if err := r.db.GetContext(ctx, &status, r.db.Rebind(query), lowStockThreshold); err != nil {
		return nil, err
	}
	return &status, nil
}
