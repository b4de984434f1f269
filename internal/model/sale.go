package model

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

type PaymentMethod string

const (
	PaymentCash PaymentMethod = "cash"
	PaymentCard PaymentMethod = "card"
)

// ParsePaymentMethod normalizes user input; anything other than card is cash
func ParsePaymentMethod(s string) PaymentMethod {
	if strings.ToLower(strings.TrimSpace(s)) == string(PaymentCard) {
		return PaymentCard
	}
	return PaymentCash
}

// Sale is the committed header of a transaction
type Sale struct {
	ID            uint            `gorm:"primaryKey" json:"id"`
	CustomerID    *uint           `gorm:"index" json:"customer_id,omitempty"`
	UserID        uint            `gorm:"not null;index" json:"user_id"`
	TotalAmount   decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"total_amount"`
	AmountPaid    decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"amount_paid"`
	ChangeGiven   decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"change_given"`
	PaymentMethod PaymentMethod   `gorm:"type:varchar(10);not null" json:"payment_method"`
	SaleDate      time.Time       `gorm:"not null;index" json:"sale_date"`

	// Relasi
	Items []SaleItem `gorm:"foreignKey:SaleID;constraint:OnDelete:CASCADE" json:"items,omitempty"`
}

// SaleItem keeps the unit price at the time of sale, independent of later price changes
type SaleItem struct {
	ID        uint            `gorm:"primaryKey" json:"id"`
	SaleID    uint            `gorm:"not null;index" json:"sale_id"`
	ProductID uint            `gorm:"not null;index" json:"product_id"`
	Quantity  int             `gorm:"not null" json:"quantity"`
	Price     decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"price"`
}

// Subtotal is price × quantity for the line
func (i SaleItem) Subtotal() decimal.Decimal {
	return i.Price.Mul(decimal.NewFromInt(int64(i.Quantity)))
}
