package repository

import (
	"context"
	"errors"

	"go-pos-terminal/internal/model"

	"gorm.io/gorm"
)

type CustomerRepository interface {
	Create(ctx context.Context, customer *model.Customer) error
	CreateInTx(tx *gorm.DB, customer *model.Customer) error
	FindAll(ctx context.Context) ([]model.Customer, error)
	FindByID(ctx context.Context, id uint) (*model.Customer, error)
	FindByIDInTx(tx *gorm.DB, id uint) (*model.Customer, error)
	Update(ctx context.Context, id uint, fields map[string]interface{}) error
	Delete(ctx context.Context, id uint) error
	CountSales(ctx context.Context, id uint) (int64, error)
	SeedDefaults(ctx context.Context) (int, error)
}

type customerRepo struct {
	db *gorm.DB
}

func NewCustomerRepo(db *gorm.DB) CustomerRepository {
	return &customerRepo{db}
}

func (r *customerRepo) Create(ctx context.Context, customer *model.Customer) error {
	return r.CreateInTx(r.db.WithContext(ctx), customer)
}

// CreateInTx lets a sale register its new customer in the same commit
func (r *customerRepo) CreateInTx(tx *gorm.DB, customer *model.Customer) error {
	return tx.Create(customer).Error
}

func (r *customerRepo) FindAll(ctx context.Context) ([]model.Customer, error) {
	var customers []model.Customer
	err := r.db.WithContext(ctx).Order("name ASC").Find(&customers).Error
	return customers, err
}

func (r *customerRepo) FindByID(ctx context.Context, id uint) (*model.Customer, error) {
	return r.FindByIDInTx(r.db.WithContext(ctx), id)
}

func (r *customerRepo) FindByIDInTx(tx *gorm.DB, id uint) (*model.Customer, error) {
	var customer model.Customer
	if err := tx.First(&customer, id).Error; err != nil {
		return nil, err
	}
	return &customer, nil
}

func (r *customerRepo) Update(ctx context.Context, id uint, fields map[string]interface{}) error {
	return r.db.WithContext(ctx).Model(&model.Customer{}).Where("id = ?", id).Updates(fields).Error
}

func (r *customerRepo) Delete(ctx context.Context, id uint) error {
	res := r.db.WithContext(ctx).Delete(&model.Customer{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// CountSales returns how many sales reference the customer
func (r *customerRepo) CountSales(ctx context.Context, id uint) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.Sale{}).Where("customer_id = ?", id).Count(&count).Error
	return count, err
}

// SeedDefaults inserts the sample customers, skipping names already present
func (r *customerRepo) SeedDefaults(ctx context.Context) (int, error) {
	created := 0
	for _, c := range model.DefaultCustomers {
		var existing model.Customer
		err := r.db.WithContext(ctx).Where("name = ?", c.Name).First(&existing).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			customer := c
			if err := r.db.WithContext(ctx).Create(&customer).Error; err != nil {
				return created, err
			}
			created++
		} else if err != nil {
			return created, err
		}
	}
	return created, nil
}
