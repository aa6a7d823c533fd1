package domain

import (
	"errors"
	"time"
)

var ErrMenuItemNotFound = errors.New("menu item not found")

// MenuItem is a supplier's stock listing. References to the owning supplier
// are weak (phone and tax ID), so a rejected supplier leaves items dangling
// rather than cascading a delete.
type MenuItem struct {
	ID            string    `json:"id"`
	SupplierPhone string    `json:"supplier_phone"`
	ShopName      string    `json:"shop_name"`
	TaxID         string    `json:"tax_id"`
	ItemName      string    `json:"item_name"`
	Cost          float64   `json:"cost"`
	Stock         int       `json:"stock"`
	CreatedAt     time.Time `json:"created_at"`
}

// CartEntry is one line of a vendor's append-only cart log. Entries are never
// updated or removed and adding one does not decrement the item's stock.
type CartEntry struct {
	ID             string    `json:"id"`
	ItemID         string    `json:"item_id"`
	ItemName       string    `json:"item_name"`
	Quantity       int       `json:"quantity"`
	SupplierPhone  string    `json:"supplier_phone"`
	ShopName       string    `json:"shop_name"`
	VendorPhone    string    `json:"vendor_phone"`
	VendorName     string    `json:"vendor_name"`
	VendorLocation string    `json:"vendor_location"`
	AddedAt        time.Time `json:"added_at"`
}
