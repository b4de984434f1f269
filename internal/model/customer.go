package model

// Customer is an optional party on a sale
type Customer struct {
	BaseModel
	Name    string  `gorm:"type:varchar(255);not null" json:"name" validate:"required"`
	Phone   *string `gorm:"type:varchar(30)" json:"phone,omitempty"`
	Email   *string `gorm:"type:varchar(255)" json:"email,omitempty" validate:"omitempty,email"`
	Address *string `gorm:"type:text" json:"address,omitempty"`
}

// DefaultCustomers is loaded together with DefaultProducts
var DefaultCustomers = []Customer{
	{Name: "John Smith", Phone: strPtr("555-123-4567"), Email: strPtr("john@example.com"), Address: strPtr("123 Main St")},
	{Name: "Sarah Johnson", Phone: strPtr("555-987-6543"), Email: strPtr("sarah@example.com"), Address: strPtr("456 Oak Ave")},
	{Name: "Mike Williams", Phone: strPtr("555-456-7890"), Email: strPtr("mike@example.com"), Address: strPtr("789 Pine Rd")},
}

// Display returns the value of an optional column, "N/A" when unset
func Display(s *string) string {
	if s == nil || *s == "" {
		return "N/A"
	}
	return *s
}
