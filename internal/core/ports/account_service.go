package ports

import (
	"context"

	"github.com/freshlink/marketplace-api/internal/core/domain"
)

// CredentialVerifier abstracts password hashing so the comparison scheme is
// pluggable rather than baked into the service.
type CredentialVerifier interface {
	Hash(password string) (string, error)
	// Verify returns domain.ErrInvalidCredentials when the password does not
	// match the stored hash.
	Verify(hash, password string) error
}

// RegisterInput carries all data needed to create an unverified account.
type RegisterInput struct {
	Role         string
	FullName     string
	Email        string
	Phone        string
	Password     string
	GovernmentID string
	TaxID        string
	ShopName     string
	ShopLocation string
}

// LoginInput identifies an account by email or phone within a role.
type LoginInput struct {
	Role       string
	Identifier string
	Password   string
}

// AuthService implements registration and credential checks for marketplace
// accounts, plus the configured administrator login.
type AuthService interface {
	Register(ctx context.Context, input RegisterInput) (*domain.Account, error)
	// Login returns a signed token and the account. Unverified accounts are
	// refused with domain.ErrAccountNotVerified.
	Login(ctx context.Context, input LoginInput) (string, *domain.Account, error)
	LoginAdmin(ctx context.Context, email, password string) (string, error)
	SetShopStatus(ctx context.Context, phone string, open bool) error
}

// PendingAccounts groups unverified accounts by role for the admin listing.
type PendingAccounts struct {
	Vendors   []*domain.Account
	Suppliers []*domain.Account
}

// VerificationService moves accounts between the unverified and
// verified/deleted states.
type VerificationService interface {
	ListPending(ctx context.Context) (*PendingAccounts, error)
	// Approve is idempotent: approving an already-verified account succeeds.
	Approve(ctx context.Context, role, id string) error
	// Reject permanently deletes the account. Irreversible.
	Reject(ctx context.Context, role, id string) error
}
