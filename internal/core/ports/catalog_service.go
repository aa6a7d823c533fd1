package ports

import (
	"context"

	"github.com/freshlink/marketplace-api/internal/core/domain"
)

// AddMenuItemInput carries a supplier's new stock listing.
type AddMenuItemInput struct {
	SupplierPhone string
	ShopName      string
	TaxID         string
	ItemName      string
	Cost          float64
	Stock         int
}

// AddCartEntryInput appends one line to a vendor's cart log.
type AddCartEntryInput struct {
	ItemID         string
	Quantity       int
	VendorPhone    string
	VendorName     string
	VendorLocation string
}

// CatalogService covers menu listings and the vendor cart. Adding a cart
// entry does not decrement the referenced item's stock.
type CatalogService interface {
	AddMenuItem(ctx context.Context, input AddMenuItemInput) (*domain.MenuItem, error)
	MenuBySupplier(ctx context.Context, phone string) ([]*domain.MenuItem, error)
	MenuByTaxID(ctx context.Context, taxID string) ([]*domain.MenuItem, error)
	AddCartEntry(ctx context.Context, input AddCartEntryInput) (*domain.CartEntry, error)
	CartLog(ctx context.Context, vendorPhone string) ([]*domain.CartEntry, error)
}
