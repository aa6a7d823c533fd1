package service

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/freshlink/marketplace-api/internal/core/domain"
	"github.com/freshlink/marketplace-api/internal/core/ports"
)

// VerificationService orchestrates the unverified→verified and
// unverified→deleted transitions over the account store.
type VerificationService struct {
	repo ports.AccountRepository
	log  zerolog.Logger
}

func NewVerificationService(repo ports.AccountRepository, log zerolog.Logger) *VerificationService {
	return &VerificationService{repo: repo, log: log}
}

// ListPending returns all accounts of both roles whose verified flag is not
// true, in insertion order. No pagination.
func (s *VerificationService) ListPending(ctx context.Context) (*ports.PendingAccounts, error) {
	vendors, err := s.repo.FindUnverified(ctx, domain.RoleVendor)
	if err != nil {
		return nil, err
	}
	suppliers, err := s.repo.FindUnverified(ctx, domain.RoleSupplier)
	if err != nil {
		return nil, err
	}
	return &ports.PendingAccounts{Vendors: vendors, Suppliers: suppliers}, nil
}

// Approve sets verified=true on the identified account. Idempotent: approving
// an already-verified account is a no-op success. An unknown role surfaces
// domain.ErrInvalidRole rather than silently doing nothing.
func (s *VerificationService) Approve(ctx context.Context, role, id string) error {
	r, err := domain.ParseRole(role)
	if err != nil {
		return err
	}
	if err := s.repo.MarkVerified(ctx, r, id); err != nil {
		return err
	}
	s.log.Info().Str("role", role).Str("id", id).Msg("account approved")
	return nil
}

// Reject permanently deletes the account record. Irreversible: no tombstone
// and no cascade. Menu items, cart entries, and grievances referencing the
// account are left dangling.
func (s *VerificationService) Reject(ctx context.Context, role, id string) error {
	r, err := domain.ParseRole(role)
	if err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, r, id); err != nil {
		return err
	}
	s.log.Info().Str("role", role).Str("id", id).Msg("account rejected and removed")
	return nil
}
