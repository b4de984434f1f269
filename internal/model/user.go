package model

import (
	"crypto/subtle"
	"time"
)

// User represents an operator of the terminal.
// Passwords are kept as entered; the store is local to one machine.
type User struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Username  string    `gorm:"type:varchar(50);uniqueIndex;not null" json:"username" validate:"required,max=50"`
	Password  string    `gorm:"type:varchar(255);not null" json:"-" validate:"required"`
	FullName  string    `gorm:"type:varchar(255);not null" json:"full_name" validate:"required"`
	Role      string    `gorm:"type:varchar(20);not null;default:cashier" json:"role" validate:"oneof=admin cashier"`
	CreatedAt time.Time `json:"created_at"`
}

// CheckPassword verifies the provided password against the stored one
func (u *User) CheckPassword(password string) bool {
	return subtle.ConstantTimeCompare([]byte(u.Password), []byte(password)) == 1
}

// HasPrivilege checks if the user's role grants a specific privilege
func (u *User) HasPrivilege(code string) bool {
	for _, p := range RolePrivileges[u.Role] {
		if p == code {
			return true
		}
	}
	return false
}

// IsAdmin reports whether the user holds the admin role
func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}

// DefaultAdmin is created on first start when the users table is empty
var DefaultAdmin = User{
	Username: "admin",
	Password: "admin123",
	FullName: "System Administrator",
	Role:     RoleAdmin,
}
