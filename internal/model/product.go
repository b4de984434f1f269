package model

import "github.com/shopspring/decimal"

type Product struct {
	BaseModel
	Barcode *string         `gorm:"type:varchar(64);uniqueIndex" json:"barcode,omitempty"`
	Name    string          `gorm:"type:varchar(255);not null" json:"name" validate:"required"`
	Price   decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"price" validate:"dgt0"`
	Stock   int             `gorm:"not null;default:0" json:"stock" validate:"gte=0"`
}

// BarcodeOrNA returns the barcode for display, "N/A" when the product has none
func (p *Product) BarcodeOrNA() string {
	if p.Barcode == nil || *p.Barcode == "" {
		return "N/A"
	}
	return *p.Barcode
}

// DefaultProducts is the sample catalog loaded by `pos init --sample`
var DefaultProducts = []Product{
	{Barcode: strPtr("123456789"), Name: "Premium Coffee", Price: decimal.RequireFromString("4.99"), Stock: 100},
	{Barcode: strPtr("987654321"), Name: "Organic Tea", Price: decimal.RequireFromString("3.49"), Stock: 75},
	{Barcode: strPtr("456123789"), Name: "Chocolate Bar", Price: decimal.RequireFromString("1.99"), Stock: 200},
	{Barcode: strPtr("789123456"), Name: "Bottled Water", Price: decimal.RequireFromString("0.99"), Stock: 150},
	{Barcode: strPtr("321654987"), Name: "Energy Drink", Price: decimal.RequireFromString("2.49"), Stock: 50},
}

func strPtr(s string) *string {
	return &s
}
