package service

import (
	"context"
	"errors"
	"strconv"
	"testing"

	"github.com/rs/zerolog"

	"github.com/freshlink/marketplace-api/internal/core/domain"
	"github.com/freshlink/marketplace-api/internal/core/ports"
)

type stubCatalogRepo struct {
	items   []*domain.MenuItem
	entries []*domain.CartEntry
}

func (r *stubCatalogRepo) InsertMenuItem(_ context.Context, item *domain.MenuItem) (*domain.MenuItem, error) {
	stored := *item
	stored.ID = "item_" + strconv.Itoa(len(r.items)+1)
	r.items = append(r.items, &stored)
	return &stored, nil
}

func (r *stubCatalogRepo) ListMenuByPhone(_ context.Context, phone string) ([]*domain.MenuItem, error) {
	matched := []*domain.MenuItem{}
	for _, item := range r.items {
		if item.SupplierPhone == phone {
			matched = append(matched, item)
		}
	}
	return matched, nil
}

func (r *stubCatalogRepo) ListMenuByTaxID(_ context.Context, taxID string) ([]*domain.MenuItem, error) {
	matched := []*domain.MenuItem{}
	for _, item := range r.items {
		if item.TaxID == taxID {
			matched = append(matched, item)
		}
	}
	return matched, nil
}

func (r *stubCatalogRepo) FindMenuItem(_ context.Context, id string) (*domain.MenuItem, error) {
	for _, item := range r.items {
		if item.ID == id {
			return item, nil
		}
	}
	return nil, domain.ErrMenuItemNotFound
}

func (r *stubCatalogRepo) InsertCartEntry(_ context.Context, entry *domain.CartEntry) (*domain.CartEntry, error) {
	stored := *entry
	stored.ID = "cart_" + strconv.Itoa(len(r.entries)+1)
	r.entries = append(r.entries, &stored)
	return &stored, nil
}

func (r *stubCatalogRepo) ListCartByVendorPhone(_ context.Context, phone string) ([]*domain.CartEntry, error) {
	matched := []*domain.CartEntry{}
	for _, entry := range r.entries {
		if entry.VendorPhone == phone {
			matched = append(matched, entry)
		}
	}
	return matched, nil
}

func seedMenuItem(t *testing.T, svc ports.CatalogService, phone, taxID, name string) *domain.MenuItem {
	t.Helper()
	item, err := svc.AddMenuItem(context.Background(), ports.AddMenuItemInput{
		SupplierPhone: phone,
		ShopName:      "Green Farms Stall",
		TaxID:         taxID,
		ItemName:      name,
		Cost:          12.50,
		Stock:         40,
	})
	if err != nil {
		t.Fatalf("seed menu item: %v", err)
	}
	return item
}

func TestCatalogService_AddMenuItem(t *testing.T) {
	svc := NewCatalogService(&stubCatalogRepo{}, zerolog.Nop())

	item := seedMenuItem(t, svc, "5551001", "TAX-77", "tomatoes 1kg")
	if item.ID == "" {
		t.Fatalf("expected assigned id")
	}
	if item.CreatedAt.IsZero() {
		t.Fatalf("expected created_at to be set")
	}

	cases := []struct {
		name string
		in   ports.AddMenuItemInput
	}{
		{"missing phone", ports.AddMenuItemInput{TaxID: "TAX-77", ItemName: "x"}},
		{"missing tax id", ports.AddMenuItemInput{SupplierPhone: "5551001", ItemName: "x"}},
		{"missing item name", ports.AddMenuItemInput{SupplierPhone: "5551001", TaxID: "TAX-77"}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := svc.AddMenuItem(context.Background(), tc.in); !errors.Is(err, domain.ErrValidation) {
				t.Fatalf("expected ErrValidation, got %v", err)
			}
		})
	}
}

func TestCatalogService_MenuLookups(t *testing.T) {
	svc := NewCatalogService(&stubCatalogRepo{}, zerolog.Nop())

	seedMenuItem(t, svc, "5551001", "TAX-77", "tomatoes 1kg")
	seedMenuItem(t, svc, "5551001", "TAX-77", "onions 1kg")
	seedMenuItem(t, svc, "5559999", "TAX-12", "basil bunch")

	byPhone, err := svc.MenuBySupplier(context.Background(), "5551001")
	if err != nil {
		t.Fatalf("MenuBySupplier returned error: %v", err)
	}
	if len(byPhone) != 2 {
		t.Fatalf("expected 2 items by phone, got %d", len(byPhone))
	}

	byTax, err := svc.MenuByTaxID(context.Background(), "TAX-12")
	if err != nil {
		t.Fatalf("MenuByTaxID returned error: %v", err)
	}
	if len(byTax) != 1 || byTax[0].ItemName != "basil bunch" {
		t.Fatalf("unexpected tax id lookup result: %+v", byTax)
	}

	if empty, _ := svc.MenuBySupplier(context.Background(), "0000000"); len(empty) != 0 {
		t.Fatalf("expected empty result for unknown phone")
	}
}

func TestCatalogService_AddCartEntry_SnapshotsItem(t *testing.T) {
	repo := &stubCatalogRepo{}
	svc := NewCatalogService(repo, zerolog.Nop())

	item := seedMenuItem(t, svc, "5551001", "TAX-77", "tomatoes 1kg")

	entry, err := svc.AddCartEntry(context.Background(), ports.AddCartEntryInput{
		ItemID:         item.ID,
		Quantity:       3,
		VendorPhone:    "5552002",
		VendorName:     "Corner Deli",
		VendorLocation: "Market Street 12",
	})
	if err != nil {
		t.Fatalf("AddCartEntry returned error: %v", err)
	}
	if entry.ItemName != "tomatoes 1kg" || entry.SupplierPhone != "5551001" || entry.ShopName != "Green Farms Stall" {
		t.Fatalf("cart entry did not snapshot menu item fields: %+v", entry)
	}

	// Stock on the referenced item is untouched.
	stored, err := svc.MenuBySupplier(context.Background(), "5551001")
	if err != nil {
		t.Fatalf("MenuBySupplier returned error: %v", err)
	}
	if stored[0].Stock != 40 {
		t.Fatalf("expected stock unchanged, got %d", stored[0].Stock)
	}
}

func TestCatalogService_AddCartEntry_Validation(t *testing.T) {
	svc := NewCatalogService(&stubCatalogRepo{}, zerolog.Nop())

	cases := []struct {
		name string
		in   ports.AddCartEntryInput
		want error
	}{
		{"missing item id", ports.AddCartEntryInput{VendorPhone: "5552002", Quantity: 1}, domain.ErrValidation},
		{"missing vendor phone", ports.AddCartEntryInput{ItemID: "item_1", Quantity: 1}, domain.ErrValidation},
		{"zero quantity", ports.AddCartEntryInput{ItemID: "item_1", VendorPhone: "5552002"}, domain.ErrValidation},
		{"unknown item", ports.AddCartEntryInput{ItemID: "missing", VendorPhone: "5552002", Quantity: 1}, domain.ErrMenuItemNotFound},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := svc.AddCartEntry(context.Background(), tc.in); !errors.Is(err, tc.want) {
				t.Fatalf("expected %v, got %v", tc.want, err)
			}
		})
	}
}

func TestCatalogService_CartLog(t *testing.T) {
	svc := NewCatalogService(&stubCatalogRepo{}, zerolog.Nop())

	item := seedMenuItem(t, svc, "5551001", "TAX-77", "tomatoes 1kg")
	for _, phone := range []string{"5552002", "5552002", "5553003"} {
		if _, err := svc.AddCartEntry(context.Background(), ports.AddCartEntryInput{
			ItemID:      item.ID,
			Quantity:    1,
			VendorPhone: phone,
		}); err != nil {
			t.Fatalf("seed cart entry: %v", err)
		}
	}

	log, err := svc.CartLog(context.Background(), "5552002")
	if err != nil {
		t.Fatalf("CartLog returned error: %v", err)
	}
	if len(log) != 2 {
		t.Fatalf("expected 2 entries for vendor, got %d", len(log))
	}
}
