package model

import "strings"

// Role codes as constants
const (
	RoleAdmin   = "admin"
	RoleCashier = "cashier"
)

// NormalizeRole lower-cases a role and falls back to cashier for anything unknown
func NormalizeRole(role string) string {
	switch strings.ToLower(strings.TrimSpace(role)) {
	case RoleAdmin:
		return RoleAdmin
	default:
		return RoleCashier
	}
}

// IsValidRole reports whether role is one of the known role codes
func IsValidRole(role string) bool {
	r := strings.ToLower(strings.TrimSpace(role))
	return r == RoleAdmin || r == RoleCashier
}
