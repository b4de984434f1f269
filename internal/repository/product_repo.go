package repository

import (
	"context"
	"errors"

	"go-pos-terminal/internal/model"

	"gorm.io/gorm"
)

// ErrStockTooLow is returned by AdjustStock when a strict decrement would go below zero
var ErrStockTooLow = errors.New("stock too low")

type ProductRepository interface {
	Create(ctx context.Context, product *model.Product) error
	FindAll(ctx context.Context) ([]model.Product, error)
	FindByID(ctx context.Context, id uint) (*model.Product, error)
	FindByBarcode(ctx context.Context, barcode string) (*model.Product, error)
	Update(ctx context.Context, id uint, fields map[string]interface{}) error
	Delete(ctx context.Context, id uint) error
	AdjustStock(tx *gorm.DB, id uint, delta int, strict bool) error
	SeedDefaults(ctx context.Context) (int, error)
}

type productRepo struct {
	db *gorm.DB
}

func NewProductRepo(db *gorm.DB) ProductRepository {
	return &productRepo{db}
}

func (r *productRepo) Create(ctx context.Context, product *model.Product) error {
	return r.db.WithContext(ctx).Create(product).Error
}

func (r *productRepo) FindAll(ctx context.Context) ([]model.Product, error) {
	var products []model.Product
	err := r.db.WithContext(ctx).Order("name ASC").Find(&products).Error
	return products, err
}

func (r *productRepo) FindByID(ctx context.Context, id uint) (*model.Product, error) {
	var product model.Product
	if err := r.db.WithContext(ctx).First(&product, id).Error; err != nil {
		return nil, err
	}
	return &product, nil
}

// FindByBarcode is an exact, case-sensitive match
func (r *productRepo) FindByBarcode(ctx context.Context, barcode string) (*model.Product, error) {
	var product model.Product
	if err := r.db.WithContext(ctx).Where("barcode = ?", barcode).First(&product).Error; err != nil {
		return nil, err
	}
	return &product, nil
}

func (r *productRepo) Update(ctx context.Context, id uint, fields map[string]interface{}) error {
	return r.db.WithContext(ctx).Model(&model.Product{}).Where("id = ?", id).Updates(fields).Error
}

func (r *productRepo) Delete(ctx context.Context, id uint) error {
	res := r.db.WithContext(ctx).Delete(&model.Product{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// AdjustStock adds delta to a product's stock inside tx.
// With strict set, a decrement that would leave stock negative matches no row
// and ErrStockTooLow is returned instead.
func (r *productRepo) AdjustStock(tx *gorm.DB, id uint, delta int, strict bool) error {
	q := tx.Model(&model.Product{}).Where("id = ?", id)
	if strict && delta < 0 {
		q = q.Where("stock >= ?", -delta)
	}
	res := q.Update("stock", gorm.Expr("stock + ?", delta))
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected > 0 {
		return nil
	}

	var count int64
	if err := tx.Model(&model.Product{}).Where("id = ?", id).Count(&count).Error; err != nil {
		return err
	}
	if count == 0 {
		return gorm.ErrRecordNotFound
	}
	return ErrStockTooLow
}

// SeedDefaults inserts the sample catalog, skipping barcodes already present
func (r *productRepo) SeedDefaults(ctx context.Context) (int, error) {
	created := 0
	for _, p := range model.DefaultProducts {
		var existing model.Product
		err := r.db.WithContext(ctx).Where("barcode = ?", *p.Barcode).First(&existing).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			product := p
			if err := r.db.WithContext(ctx).Create(&product).Error; err != nil {
				return created, err
			}
			created++
		} else if err != nil {
			return created, err
		}
	}
	return created, nil
}
