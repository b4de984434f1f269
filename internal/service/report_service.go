package service

import (
	"context"

	"go-pos-terminal/internal/model"
	"go-pos-terminal/internal/repository"
)

type ReportService interface {
	Summary(ctx context.Context, rng model.DateRange) (*repository.SalesSummary, error)
	ProductSales(ctx context.Context, rng model.DateRange) ([]repository.ProductSales, error)
	DailySales(ctx context.Context, rng model.DateRange) ([]repository.PeriodSales, error)
	MonthlySales(ctx context.Context, rng model.DateRange) ([]repository.PeriodSales, error)
	InventoryStatus(ctx context.Context) (*repository.InventoryStatus, error)
	LowStockThreshold() int
}

type reportService struct {
	reportRepo        repository.ReportRepository
	lowStockThreshold int
}

func NewReportService(reportRepo repository.ReportRepository, lowStockThreshold int) ReportService {
	return &reportService{reportRepo: reportRepo, lowStockThreshold: lowStockThreshold}
}

func (s *reportService) Summary(ctx context.Context, rng model.DateRange) (*repository.SalesSummary, error) {
	return s.reportRepo.Summary(ctx, rng)
}

func (s *reportService) ProductSales(ctx context.Context, rng model.DateRange) ([]repository.ProductSales, error) {
	return s.reportRepo.ProductSales(ctx, rng)
}

func (s *reportService) DailySales(ctx context.Context, rng model.DateRange) ([]repository.PeriodSales, error) {
	return s.reportRepo.DailySales(ctx, rng)
}

func (s *reportService) MonthlySales(ctx context.Context, rng model.DateRange) ([]repository.PeriodSales, error) {
	return s.reportRepo.MonthlySales(ctx, rng)
}

// InventoryStatus counts products below the configured low-stock threshold
func (s *reportService) InventoryStatus(ctx context.Context) (*repository.InventoryStatus, error) {
	return s.reportRepo.InventoryStatus(ctx, s.lowStockThreshold)
}

func (s *reportService) LowStockThreshold() int {
	return s.lowStockThreshold
}
