package ports

import (
	"context"

	"github.com/freshlink/marketplace-api/internal/core/domain"
)

// AccountRepository defines persistence operations for vendor and supplier
// accounts. The role selects which collection a call operates on; passing a
// role other than vendor or supplier yields domain.ErrInvalidRole.
type AccountRepository interface {
	Create(ctx context.Context, account *domain.Account) (*domain.Account, error)
	// FindByIdentifier resolves an account by email or phone. Login matches
	// either field.
	FindByIdentifier(ctx context.Context, role domain.Role, identifier string) (*domain.Account, error)
	FindByID(ctx context.Context, role domain.Role, id string) (*domain.Account, error)
	// FindUnverified returns accounts of the given role whose verified flag
	// is not true, in insertion order.
	FindUnverified(ctx context.Context, role domain.Role) ([]*domain.Account, error)
	// MarkVerified sets verified=true. Returns domain.ErrAccountNotFound
	// when no account matches; re-verifying is a no-op success.
	MarkVerified(ctx context.Context, role domain.Role, id string) error
	// Delete removes the account record permanently. No tombstone is kept and
	// nothing the account references is cascaded.
	Delete(ctx context.Context, role domain.Role, id string) error
	// SetShopStatus toggles a supplier's open/closed flag by phone.
	SetShopStatus(ctx context.Context, phone string, open bool) error
}
