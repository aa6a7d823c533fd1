package service

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/freshlink/marketplace-api/internal/core/domain"
	"github.com/freshlink/marketplace-api/internal/core/ports"
)

type catalogService struct {
	repo ports.CatalogRepository
	log  zerolog.Logger
}

// NewCatalogService returns a CatalogService implementation.
func NewCatalogService(repo ports.CatalogRepository, log zerolog.Logger) ports.CatalogService {
	return &catalogService{repo: repo, log: log}
}

func (s *catalogService) AddMenuItem(ctx context.Context, in ports.AddMenuItemInput) (*domain.MenuItem, error) {
	if in.SupplierPhone == "" || in.ItemName == "" || in.TaxID == "" {
		return nil, fmt.Errorf("%w: supplier_phone, tax_id and item_name are required", domain.ErrValidation)
	}

	item := &domain.MenuItem{
		SupplierPhone: in.SupplierPhone,
		ShopName:      in.ShopName,
		TaxID:         in.TaxID,
		ItemName:      in.ItemName,
		Cost:          in.Cost,
		Stock:         in.Stock,
		CreatedAt:     time.Now().UTC(),
	}
	return s.repo.InsertMenuItem(ctx, item)
}

func (s *catalogService) MenuBySupplier(ctx context.Context, phone string) ([]*domain.MenuItem, error) {
	return s.repo.ListMenuByPhone(ctx, phone)
}

func (s *catalogService) MenuByTaxID(ctx context.Context, taxID string) ([]*domain.MenuItem, error) {
	return s.repo.ListMenuByTaxID(ctx, taxID)
}

// AddCartEntry appends one line to the vendor's cart log. The referenced menu
// item is looked up to snapshot its name and supplier fields; the lookup is a
// weak reference, and stock is never decremented here.
func (s *catalogService) AddCartEntry(ctx context.Context, in ports.AddCartEntryInput) (*domain.CartEntry, error) {
	if in.ItemID == "" || in.VendorPhone == "" {
		return nil, fmt.Errorf("%w: item_id and vendor_phone are required", domain.ErrValidation)
	}
	if in.Quantity <= 0 {
		return nil, fmt.Errorf("%w: quantity must be positive", domain.ErrValidation)
	}

	item, err := s.repo.FindMenuItem(ctx, in.ItemID)
	if err != nil {
		return nil, err
	}

	entry := &domain.CartEntry{
		ItemID:         item.ID,
		ItemName:       item.ItemName,
		Quantity:       in.Quantity,
		SupplierPhone:  item.SupplierPhone,
		ShopName:       item.ShopName,
		VendorPhone:    in.VendorPhone,
		VendorName:     in.VendorName,
		VendorLocation: in.VendorLocation,
		AddedAt:        time.Now().UTC(),
	}

	created, err := s.repo.InsertCartEntry(ctx, entry)
	if err != nil {
		return nil, err
	}

	s.log.Info().Str("item_id", item.ID).Str("vendor_phone", in.VendorPhone).Int("quantity", in.Quantity).Msg("cart entry added")
	return created, nil
}

func (s *catalogService) CartLog(ctx context.Context, vendorPhone string) ([]*domain.CartEntry, error) {
	return s.repo.ListCartByVendorPhone(ctx, vendorPhone)
}
