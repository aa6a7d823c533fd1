package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/freshlink/marketplace-api/internal/core/domain"
	"github.com/freshlink/marketplace-api/internal/core/ports"
)

type stubCatalogService struct {
	addMenuItemFn    func(ctx context.Context, in ports.AddMenuItemInput) (*domain.MenuItem, error)
	menuBySupplierFn func(ctx context.Context, phone string) ([]*domain.MenuItem, error)
	menuByTaxIDFn    func(ctx context.Context, taxID string) ([]*domain.MenuItem, error)
	addCartEntryFn   func(ctx context.Context, in ports.AddCartEntryInput) (*domain.CartEntry, error)
	cartLogFn        func(ctx context.Context, vendorPhone string) ([]*domain.CartEntry, error)
}

func (s *stubCatalogService) AddMenuItem(ctx context.Context, in ports.AddMenuItemInput) (*domain.MenuItem, error) {
	return s.addMenuItemFn(ctx, in)
}

func (s *stubCatalogService) MenuBySupplier(ctx context.Context, phone string) ([]*domain.MenuItem, error) {
	return s.menuBySupplierFn(ctx, phone)
}

func (s *stubCatalogService) MenuByTaxID(ctx context.Context, taxID string) ([]*domain.MenuItem, error) {
	return s.menuByTaxIDFn(ctx, taxID)
}

func (s *stubCatalogService) AddCartEntry(ctx context.Context, in ports.AddCartEntryInput) (*domain.CartEntry, error) {
	return s.addCartEntryFn(ctx, in)
}

func (s *stubCatalogService) CartLog(ctx context.Context, vendorPhone string) ([]*domain.CartEntry, error) {
	return s.cartLogFn(ctx, vendorPhone)
}

func TestCatalogHandler_AddMenuItem_Success(t *testing.T) {
	stub := &stubCatalogService{
		addMenuItemFn: func(ctx context.Context, in ports.AddMenuItemInput) (*domain.MenuItem, error) {
			if in.SupplierPhone != "5551001" || in.ItemName != "tomatoes 1kg" {
				t.Fatalf("unexpected input: %+v", in)
			}
			return &domain.MenuItem{ID: "item_1", SupplierPhone: in.SupplierPhone, ItemName: in.ItemName, Cost: in.Cost}, nil
		},
	}
	handler := NewCatalogHandler(stub)

	body := `{"supplierPhone":"5551001","taxId":"TAX-77","itemName":"tomatoes 1kg","cost":12.5,"stock":40}`
	c, rec := newTestContext(http.MethodPost, "/menu", body)

	if err := handler.AddMenuItem(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", rec.Code)
	}

	var resp map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if resp["item_name"] != "tomatoes 1kg" {
		t.Fatalf("unexpected payload: %+v", resp)
	}
}

func TestCatalogHandler_AddMenuItem_Validation(t *testing.T) {
	handler := NewCatalogHandler(&stubCatalogService{
		addMenuItemFn: func(ctx context.Context, in ports.AddMenuItemInput) (*domain.MenuItem, error) {
			t.Fatalf("should not be called")
			return nil, nil
		},
	})

	cases := []struct {
		name string
		body string
	}{
		{"missing item name", `{"supplierPhone":"5551001","taxId":"TAX-77","cost":1}`},
		{"zero cost", `{"supplierPhone":"5551001","taxId":"TAX-77","itemName":"x","cost":0}`},
		{"negative stock", `{"supplierPhone":"5551001","taxId":"TAX-77","itemName":"x","cost":1,"stock":-1}`},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			c, _ := newTestContext(http.MethodPost, "/menu", tc.body)
			err := handler.AddMenuItem(c)
			var he *echo.HTTPError
			if !errors.As(err, &he) || he.Code != http.StatusBadRequest {
				t.Fatalf("expected 400 HTTPError, got %v", err)
			}
		})
	}
}

func TestCatalogHandler_MenuLookups(t *testing.T) {
	stub := &stubCatalogService{
		menuBySupplierFn: func(ctx context.Context, phone string) ([]*domain.MenuItem, error) {
			if phone != "5551001" {
				t.Fatalf("expected path param forwarded, got %q", phone)
			}
			return []*domain.MenuItem{{ID: "item_1"}}, nil
		},
		menuByTaxIDFn: func(ctx context.Context, taxID string) ([]*domain.MenuItem, error) {
			if taxID != "TAX-77" {
				t.Fatalf("expected path param forwarded, got %q", taxID)
			}
			return []*domain.MenuItem{{ID: "item_1"}, {ID: "item_2"}}, nil
		},
	}
	handler := NewCatalogHandler(stub)

	c, rec := newTestContext(http.MethodGet, "/menu/supplier/5551001", "")
	c.SetParamNames("phone")
	c.SetParamValues("5551001")
	if err := handler.MenuBySupplier(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	c, rec = newTestContext(http.MethodGet, "/menu/tax/TAX-77", "")
	c.SetParamNames("taxId")
	c.SetParamValues("TAX-77")
	if err := handler.MenuByTaxID(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}

func TestCatalogHandler_AddCartEntry_Success(t *testing.T) {
	stub := &stubCatalogService{
		addCartEntryFn: func(ctx context.Context, in ports.AddCartEntryInput) (*domain.CartEntry, error) {
			if in.ItemID != "item_1" || in.Quantity != 3 {
				t.Fatalf("unexpected input: %+v", in)
			}
			return &domain.CartEntry{ID: "cart_1", ItemID: in.ItemID, Quantity: in.Quantity}, nil
		},
	}
	handler := NewCatalogHandler(stub)

	body := `{"itemId":"item_1","quantity":3,"vendorPhone":"5552002"}`
	c, rec := newTestContext(http.MethodPost, "/cart", body)

	if err := handler.AddCartEntry(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", rec.Code)
	}
}

func TestCatalogHandler_AddCartEntry_UnknownItemPassesThrough(t *testing.T) {
	stub := &stubCatalogService{
		addCartEntryFn: func(ctx context.Context, in ports.AddCartEntryInput) (*domain.CartEntry, error) {
			return nil, domain.ErrMenuItemNotFound
		},
	}
	handler := NewCatalogHandler(stub)

	body := `{"itemId":"ghost","quantity":1,"vendorPhone":"5552002"}`
	c, _ := newTestContext(http.MethodPost, "/cart", body)

	if err := handler.AddCartEntry(c); !errors.Is(err, domain.ErrMenuItemNotFound) {
		t.Fatalf("expected ErrMenuItemNotFound, got %v", err)
	}
}

func TestCatalogHandler_CartLog(t *testing.T) {
	stub := &stubCatalogService{
		cartLogFn: func(ctx context.Context, vendorPhone string) ([]*domain.CartEntry, error) {
			if vendorPhone != "5552002" {
				t.Fatalf("expected path param forwarded, got %q", vendorPhone)
			}
			return []*domain.CartEntry{{ID: "cart_1"}}, nil
		},
	}
	handler := NewCatalogHandler(stub)

	c, rec := newTestContext(http.MethodGet, "/cart/5552002", "")
	c.SetParamNames("vendorPhone")
	c.SetParamValues("5552002")

	if err := handler.CartLog(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}
