package ports

import (
	"context"

	"github.com/freshlink/marketplace-api/internal/core/domain"
)

// CatalogRepository persists menu items and the vendor cart log. Both are
// plain record stores: items reference their supplier weakly (phone, tax ID)
// and cart entries are append-only.
type CatalogRepository interface {
	InsertMenuItem(ctx context.Context, item *domain.MenuItem) (*domain.MenuItem, error)
	ListMenuByPhone(ctx context.Context, phone string) ([]*domain.MenuItem, error)
	ListMenuByTaxID(ctx context.Context, taxID string) ([]*domain.MenuItem, error)
	FindMenuItem(ctx context.Context, id string) (*domain.MenuItem, error)
	InsertCartEntry(ctx context.Context, entry *domain.CartEntry) (*domain.CartEntry, error)
	ListCartByVendorPhone(ctx context.Context, phone string) ([]*domain.CartEntry, error)
}
