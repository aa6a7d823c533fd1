package domain

import (
	"errors"
	"time"
)

// Role identifies which side of the marketplace an account belongs to.
type Role string

const (
	RoleVendor   Role = "vendor"
	RoleSupplier Role = "supplier"
	// RoleAdmin is the administrative identity used for verification
	// decisions. Admins are configured, never stored in the account store.
	RoleAdmin Role = "admin"
)

// ParseRole normalizes a client-supplied role string to a marketplace Role.
func ParseRole(s string) (Role, error) {
	switch Role(s) {
	case RoleVendor:
		return RoleVendor, nil
	case RoleSupplier:
		return RoleSupplier, nil
	default:
		return "", ErrInvalidRole
	}
}

var ErrValidation = errors.New("missing required fields")
var ErrAccountNotFound = errors.New("account not found")
var ErrAccountExists = errors.New("account already exists")
var ErrInvalidRole = errors.New("invalid account role")
var ErrInvalidCredentials = errors.New("invalid credentials")
var ErrAccountNotVerified = errors.New("account not verified")
var ErrForbidden = errors.New("access forbidden")

// Account is a vendor or supplier record. Both roles share the same shape
// and live in separate collections; ShopStatus is meaningful for suppliers
// only and stays false on vendor records.
type Account struct {
	ID           string    `json:"id"`
	Role         Role      `json:"role"`
	FullName     string    `json:"full_name"`
	Email        string    `json:"email"`
	Phone        string    `json:"phone"`
	PasswordHash string    `json:"-"`
	GovernmentID string    `json:"government_id"`
	TaxID        string    `json:"tax_id"`
	ShopName     string    `json:"shop_name"`
	ShopLocation string    `json:"shop_location"`
	Verified     bool      `json:"verified"`
	ShopStatus   bool      `json:"shop_status"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}
