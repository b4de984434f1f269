package repository

import (
	"context"
	"time"

	"go-pos-terminal/internal/model"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// DeletedProductName stands in for lines whose product no longer exists
const DeletedProductName = "(deleted product)"

type SaleRepository interface {
	Create(tx *gorm.DB, sale *model.Sale) error
	FindByID(ctx context.Context, id uint) (*model.Sale, error)
	FindByIDInTx(tx *gorm.DB, id uint) (*model.Sale, error)
	Delete(tx *gorm.DB, id uint) error
	DeleteAll(tx *gorm.DB) (int64, error)
	SumQuantitiesByProduct(tx *gorm.DB) ([]ProductQuantity, error)
	List(ctx context.Context, rng model.DateRange) ([]SaleRecord, error)
	FindDetail(ctx context.Context, id uint) (*SaleDetail, error)
}

// SaleRecord is a sale header joined with the cashier and customer names
type SaleRecord struct {
	ID            uint                `json:"id"`
	SaleDate      time.Time           `json:"sale_date"`
	Customer      *string             `json:"customer"`
	Cashier       *string             `json:"cashier"`
	TotalAmount   decimal.Decimal     `json:"total_amount"`
	AmountPaid    decimal.Decimal     `json:"amount_paid"`
	ChangeGiven   decimal.Decimal     `json:"change_given"`
	PaymentMethod model.PaymentMethod `json:"payment_method"`
}

// SaleLine is a committed line with its product name resolved
type SaleLine struct {
	ProductID   uint            `json:"product_id"`
	ProductName string          `json:"product_name"`
	Quantity    int             `json:"quantity"`
	Price       decimal.Decimal `json:"price"`
}

func (l SaleLine) Subtotal() decimal.Decimal {
	return l.Price.Mul(decimal.NewFromInt(int64(l.Quantity)))
}

type SaleDetail struct {
	SaleRecord
	Lines []SaleLine `json:"lines"`
}

// ProductQuantity is the total sold per product across sale lines
type ProductQuantity struct {
	ProductID uint
	Quantity  int
}

type saleRepo struct {
	db *gorm.DB
}

func NewSaleRepo(db *gorm.DB) SaleRepository {
	return &saleRepo{db}
}

// Create inserts the header and its Items in tx
func (r *saleRepo) Create(tx *gorm.DB, sale *model.Sale) error {
	return tx.Create(sale).Error
}

func (r *saleRepo) FindByID(ctx context.Context, id uint) (*model.Sale, error) {
	return r.FindByIDInTx(r.db.WithContext(ctx), id)
}

func (r *saleRepo) FindByIDInTx(tx *gorm.DB, id uint) (*model.Sale, error) {
	var sale model.Sale
	if err := tx.Preload("Items").First(&sale, id).Error; err != nil {
		return nil, err
	}
	return &sale, nil
}

// Delete removes the lines first, then the header
func (r *saleRepo) Delete(tx *gorm.DB, id uint) error {
	if err := tx.Where("sale_id = ?", id).Delete(&model.SaleItem{}).Error; err != nil {
		return err
	}
	res := tx.Delete(&model.Sale{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// DeleteAll empties the ledger and returns how many sales were removed
func (r *saleRepo) DeleteAll(tx *gorm.DB) (int64, error) {
	if err := tx.Where("1 = 1").Delete(&model.SaleItem{}).Error; err != nil {
		return 0, err
	}
	res := tx.Where("1 = 1").Delete(&model.Sale{})
	return res.RowsAffected, res.Error
}

func (r *saleRepo) SumQuantitiesByProduct(tx *gorm.DB) ([]ProductQuantity, error) {
	var rows []ProductQuantity
	err := tx.Model(&model.SaleItem{}).
		Select("product_id, SUM(quantity) AS quantity").
		Group("product_id").
		Order("product_id ASC").
		Scan(&rows).Error
	return rows, err
}

func (r *saleRepo) records(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).
		Table("sales AS s").
		Select(`s.id, s.sale_date, s.total_amount, s.amount_paid, s.change_given, s.payment_method,
			u.full_name AS cashier, c.name AS customer`).
		Joins("LEFT JOIN users u ON s.user_id = u.id").
		Joins("LEFT JOIN customers c ON s.customer_id = c.id")
}

// List returns sales newest first, optionally bounded by rng
func (r *saleRepo) List(ctx context.Context, rng model.DateRange) ([]SaleRecord, error) {
	var rows []SaleRecord
	q := WithDateRange(r.records(ctx), "s.sale_date", rng)
	err := q.Order("s.sale_date DESC, s.id DESC").Scan(&rows).Error
	return rows, err
}

func (r *saleRepo) FindDetail(ctx context.Context, id uint) (*SaleDetail, error) {
	var detail SaleDetail
	res := r.records(ctx).Where("s.id = ?", id).Limit(1).Scan(&detail.SaleRecord)
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		return nil, gorm.ErrRecordNotFound
	}

	err := r.db.WithContext(ctx).
		Table("sale_items AS si").
		Select("si.product_id, COALESCE(p.name, ?) AS product_name, si.quantity, si.price", DeletedProductName).
		Joins("LEFT JOIN products p ON si.product_id = p.id").
		Where("si.sale_id = ?", id).
		Order("si.id ASC").
		Scan(&detail.Lines).Error
	if err != nil {
		return nil, err
	}
	return &detail, nil
}

// WithDateRange bounds column by rng: From inclusive, To exclusive
func WithDateRange(q *gorm.DB, column string, rng model.DateRange) *gorm.DB {
	if rng.From != nil {
		q = q.Where(column+" >= ?", *rng.From)
	}
	if rng.To != nil {
		q = q.Where(column+" < ?", *rng.To)
	}
	return q
}
