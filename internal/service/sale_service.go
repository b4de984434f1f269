package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go-pos-terminal/internal/model"
	"go-pos-terminal/internal/repository"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type SaleService interface {
	AddByBarcode(ctx context.Context, cart *Cart, barcode string) (*CartLine, error)
	AddByID(ctx context.Context, cart *Cart, productID uint, qty int) (*CartLine, error)
	Finalize(ctx context.Context, cart *Cart, req FinalizeRequest) (*SaleReceipt, error)
	DeleteSale(ctx context.Context, id uint) error
	DeleteAllSales(ctx context.Context) (int64, error)
	ListSales(ctx context.Context, rng model.DateRange) ([]repository.SaleRecord, error)
	GetSaleDetail(ctx context.Context, id uint) (*repository.SaleDetail, error)
}

type FinalizeRequest struct {
	Cashier    *Session
	AmountPaid decimal.Decimal
	Method     model.PaymentMethod
}

// SaleReceipt is what the terminal prints after a successful commit
type SaleReceipt struct {
	SaleID     uint
	SaleDate   time.Time
	Total      decimal.Decimal
	Paid       decimal.Decimal
	Change     decimal.Decimal
	Method     model.PaymentMethod
	CustomerID *uint
	// CustomerFallback is set when the selected customer no longer existed
	// and the sale was recorded without one
	CustomerFallback bool
	Lines            []CartLine
}

type SaleOptions struct {
	// StrictStock rejects a sale that would drive any product's stock below zero
	StrictStock bool
}

type saleService struct {
	productRepo  repository.ProductRepository
	customerRepo repository.CustomerRepository
	saleRepo     repository.SaleRepository
	db           *gorm.DB
	opts         SaleOptions
	log          *zap.Logger
}

func NewSaleService(
	pRepo repository.ProductRepository,
	cRepo repository.CustomerRepository,
	sRepo repository.SaleRepository,
	db *gorm.DB,
	opts SaleOptions,
	log *zap.Logger,
) SaleService {
	return &saleService{
		productRepo:  pRepo,
		customerRepo: cRepo,
		saleRepo:     sRepo,
		db:           db,
		opts:         opts,
		log:          log.Named("sale"),
	}
}

// ValidatePayment returns the change due, or why the payment can't be accepted
func ValidatePayment(total, paid decimal.Decimal) (decimal.Decimal, error) {
	if total.IsNegative() || paid.IsNegative() {
		return decimal.Zero, ErrInvalidAmount
	}
	if paid.LessThan(total) {
		return decimal.Zero, ErrInsufficientPayment
	}
	return paid.Sub(total), nil
}

// AddByBarcode is the scan path: one unit per call, no stock check
func (s *saleService) AddByBarcode(ctx context.Context, cart *Cart, barcode string) (*CartLine, error) {
	product, err := s.productRepo.FindByBarcode(ctx, barcode)
	if err != nil {
		return nil, translate(err, "product")
	}
	if err := cart.Add(product.ID, product.Name, product.Price, 1); err != nil {
		return nil, err
	}
	return lineFor(cart, product.ID), nil
}

// AddByID checks qty plus what the cart already holds against current stock
func (s *saleService) AddByID(ctx context.Context, cart *Cart, productID uint, qty int) (*CartLine, error) {
	if qty <= 0 {
		return nil, ErrInvalidQuantity
	}
	product, err := s.productRepo.FindByID(ctx, productID)
	if err != nil {
		return nil, translate(err, "product")
	}
	if cart.QuantityOf(product.ID)+qty > product.Stock {
		return nil, fmt.Errorf("%w: %s (available: %d)", ErrInsufficientStock, product.Name, product.Stock)
	}
	if err := cart.Add(product.ID, product.Name, product.Price, qty); err != nil {
		return nil, err
	}
	return lineFor(cart, product.ID), nil
}

func lineFor(cart *Cart, productID uint) *CartLine {
	for _, l := range cart.Lines() {
		if l.ProductID == productID {
			return &l
		}
	}
	return nil
}

func (s *saleService) Finalize(ctx context.Context, cart *Cart, req FinalizeRequest) (*SaleReceipt, error) {
	if cart.IsEmpty() {
		return nil, ErrEmptyCart
	}
	if req.Cashier == nil {
		return nil, fmt.Errorf("%w: no cashier session", ErrInvalidCredentials)
	}

	total := cart.Total()
	change, err := ValidatePayment(total, req.AmountPaid)
	if err != nil {
		return nil, err
	}

	sel := cart.Customer()
	if sel.Mode == CustomerNew {
		if sel.New == nil {
			return nil, fmt.Errorf("%w: new customer details missing", ErrValidation)
		}
		NormalizeCustomer(sel.New)
		if err := validate(sel.New); err != nil {
			return nil, err
		}
	}

	lines := cart.Lines()
	receipt := &SaleReceipt{
		Total:  total,
		Paid:   req.AmountPaid,
		Change: change,
		Method: model.ParsePaymentMethod(string(req.Method)),
		Lines:  lines,
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		customerID, fallback, err := s.resolveCustomer(tx, sel)
		if err != nil {
			return err
		}
		receipt.CustomerID = customerID
		receipt.CustomerFallback = fallback

		sale := &model.Sale{
			CustomerID:    customerID,
			UserID:        req.Cashier.UserID,
			TotalAmount:   total,
			AmountPaid:    req.AmountPaid,
			ChangeGiven:   change,
			PaymentMethod: receipt.Method,
			SaleDate:      time.Now(),
		}
		for _, l := range lines {
			// price comes from the cart snapshot, not the current catalog
			sale.Items = append(sale.Items, model.SaleItem{
				ProductID: l.ProductID,
				Quantity:  l.Quantity,
				Price:     l.Price,
			})
		}
		if err := s.saleRepo.Create(tx, sale); err != nil {
			return err
		}

		for _, l := range lines {
			err := s.productRepo.AdjustStock(tx, l.ProductID, -l.Quantity, s.opts.StrictStock)
			switch {
			case err == nil:
			case errors.Is(err, repository.ErrStockTooLow):
				return fmt.Errorf("%w: %s", ErrInsufficientStock, l.Name)
			case errors.Is(err, gorm.ErrRecordNotFound):
				return fmt.Errorf("product %q %w", l.Name, ErrNotFound)
			default:
				return err
			}
		}

		receipt.SaleID = sale.ID
		receipt.SaleDate = sale.SaleDate
		return nil
	})
	if err != nil {
		s.log.Warn("sale rolled back", zap.Error(err), zap.String("session_id", req.Cashier.ID.String()))
		return nil, err
	}

	cart.Clear()
	s.log.Info("sale committed",
		zap.Uint("sale_id", receipt.SaleID),
		zap.String("total", receipt.Total.StringFixed(2)),
		zap.String("method", string(receipt.Method)),
		zap.Int("lines", len(lines)),
		zap.String("session_id", req.Cashier.ID.String()),
	)
	return receipt, nil
}

func (s *saleService) resolveCustomer(tx *gorm.DB, sel CustomerSelection) (*uint, bool, error) {
	switch sel.Mode {
	case CustomerNew:
		c := *sel.New
		if err := s.customerRepo.CreateInTx(tx, &c); err != nil {
			return nil, false, translate(err, "customer")
		}
		return &c.ID, false, nil
	case CustomerExisting:
		c, err := s.customerRepo.FindByIDInTx(tx, sel.ID)
		if errors.Is(err, gorm.ErrRecordNotFound) {
			s.log.Warn("selected customer not found, recording sale without customer", zap.Uint("customer_id", sel.ID))
			return nil, true, nil
		}
		if err != nil {
			return nil, false, err
		}
		return &c.ID, false, nil
	default:
		return nil, false, nil
	}
}

// DeleteSale restocks every line, then removes the lines and the header
func (s *saleService) DeleteSale(ctx context.Context, id uint) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		sale, err := s.saleRepo.FindByIDInTx(tx, id)
		if err != nil {
			return translate(err, "sale")
		}

		for _, item := range sale.Items {
			if err := s.restock(tx, item.ProductID, item.Quantity); err != nil {
				return err
			}
		}

		if err := s.saleRepo.Delete(tx, id); err != nil {
			return translate(err, "sale")
		}
		s.log.Info("sale deleted", zap.Uint("sale_id", id), zap.Int("lines", len(sale.Items)))
		return nil
	})
}

// DeleteAllSales restocks by the aggregate quantity per product and empties the ledger
func (s *saleService) DeleteAllSales(ctx context.Context) (int64, error) {
	var deleted int64
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		sums, err := s.saleRepo.SumQuantitiesByProduct(tx)
		if err != nil {
			return err
		}
		for _, pq := range sums {
			if err := s.restock(tx, pq.ProductID, pq.Quantity); err != nil {
				return err
			}
		}

		deleted, err = s.saleRepo.DeleteAll(tx)
		return err
	})
	if err != nil {
		return 0, err
	}
	s.log.Info("all sales deleted", zap.Int64("count", deleted))
	return deleted, nil
}

func (s *saleService) restock(tx *gorm.DB, productID uint, qty int) error {
	err := s.productRepo.AdjustStock(tx, productID, qty, false)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		s.log.Warn("restock skipped, product was deleted", zap.Uint("product_id", productID), zap.Int("quantity", qty))
		return nil
	}
	return err
}

func (s *saleService) ListSales(ctx context.Context, rng model.DateRange) ([]repository.SaleRecord, error) {
	return s.saleRepo.List(ctx, rng)
}

func (s *saleService) GetSaleDetail(ctx context.Context, id uint) (*repository.SaleDetail, error) {
	detail, err := s.saleRepo.FindDetail(ctx, id)
	if err != nil {
		return nil, translate(err, "sale")
	}
	return detail, nil
}
