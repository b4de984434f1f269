package repository

import (
	"go-pos-terminal/internal/model"

	"gorm.io/gorm"
)

// Migrate creates or updates every table the terminal uses
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&model.User{},
		&model.Customer{},
		&model.Product{},
		&model.Sale{},
		&model.SaleItem{},
	)
}
