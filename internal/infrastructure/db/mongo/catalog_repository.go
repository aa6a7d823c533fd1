package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/freshlink/marketplace-api/internal/core/domain"
)

const (
	collectionMenuItems   = "menu_items"
	collectionCartEntries = "cart_entries"
)

// CatalogRepository stores menu items and the append-only vendor cart log.
// Supplier references on both are weak: a rejected supplier leaves records
// dangling and lookups still return them.
type CatalogRepository struct {
	menu *mongo.Collection
	cart *mongo.Collection
}

func NewCatalogRepository(db *mongo.Database) *CatalogRepository {
	return &CatalogRepository{
		menu: db.Collection(collectionMenuItems),
		cart: db.Collection(collectionCartEntries),
	}
}

type menuItemDoc struct {
	ID            primitive.ObjectID `bson:"_id,omitempty"`
	SupplierPhone string             `bson:"supplier_phone"`
	ShopName      string             `bson:"shop_name"`
	TaxID         string             `bson:"tax_id"`
	ItemName      string             `bson:"item_name"`
	Cost          float64            `bson:"cost"`
	Stock         int                `bson:"stock"`
	CreatedAt     time.Time          `bson:"created_at"`
}

type cartEntryDoc struct {
	ID             primitive.ObjectID `bson:"_id,omitempty"`
	ItemID         string             `bson:"item_id"`
	ItemName       string             `bson:"item_name"`
	Quantity       int                `bson:"quantity"`
	SupplierPhone  string             `bson:"supplier_phone"`
	ShopName       string             `bson:"shop_name"`
	VendorPhone    string             `bson:"vendor_phone"`
	VendorName     string             `bson:"vendor_name"`
	VendorLocation string             `bson:"vendor_location"`
	AddedAt        time.Time          `bson:"added_at"`
}

func (r *CatalogRepository) InsertMenuItem(ctx context.Context, item *domain.MenuItem) (*domain.MenuItem, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	doc := menuItemDoc{
		SupplierPhone: item.SupplierPhone,
		ShopName:      item.ShopName,
		TaxID:         item.TaxID,
		ItemName:      item.ItemName,
		Cost:          item.Cost,
		Stock:         item.Stock,
		CreatedAt:     item.CreatedAt,
	}
	res, err := r.menu.InsertOne(ctx, doc)
	if err != nil {
		return nil, fmt.Errorf("insert menu item: %w", err)
	}

	created := *item
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		created.ID = oid.Hex()
	}
	return &created, nil
}

func (r *CatalogRepository) ListMenuByPhone(ctx context.Context, phone string) ([]*domain.MenuItem, error) {
	return r.listMenu(ctx, bson.M{"supplier_phone": phone})
}

func (r *CatalogRepository) ListMenuByTaxID(ctx context.Context, taxID string) ([]*domain.MenuItem, error) {
	return r.listMenu(ctx, bson.M{"tax_id": taxID})
}

func (r *CatalogRepository) listMenu(ctx context.Context, filter bson.M) ([]*domain.MenuItem, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	cursor, err := r.menu.Find(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("list menu items: %w", err)
	}
	defer cursor.Close(ctx)

	items := []*domain.MenuItem{}
	for cursor.Next(ctx) {
		var doc menuItemDoc
		if err := cursor.Decode(&doc); err != nil {
			return nil, fmt.Errorf("decode menu item: %w", err)
		}
		items = append(items, docToMenuItem(doc))
	}
	if err := cursor.Err(); err != nil {
		return nil, fmt.Errorf("iterate menu items: %w", err)
	}
	return items, nil
}

func (r *CatalogRepository) FindMenuItem(ctx context.Context, id string) (*domain.MenuItem, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrMenuItemNotFound
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var doc menuItemDoc
	if err := r.menu.FindOne(ctx, bson.M{"_id": oid}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrMenuItemNotFound
		}
		return nil, fmt.Errorf("find menu item: %w", err)
	}
	return docToMenuItem(doc), nil
}

func (r *CatalogRepository) InsertCartEntry(ctx context.Context, entry *domain.CartEntry) (*domain.CartEntry, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	doc := cartEntryDoc{
		ItemID:         entry.ItemID,
		ItemName:       entry.ItemName,
		Quantity:       entry.Quantity,
		SupplierPhone:  entry.SupplierPhone,
		ShopName:       entry.ShopName,
		VendorPhone:    entry.VendorPhone,
		VendorName:     entry.VendorName,
		VendorLocation: entry.VendorLocation,
		AddedAt:        entry.AddedAt,
	}
	res, err := r.cart.InsertOne(ctx, doc)
	if err != nil {
		return nil, fmt.Errorf("insert cart entry: %w", err)
	}

	created := *entry
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		created.ID = oid.Hex()
	}
	return &created, nil
}

func (r *CatalogRepository) ListCartByVendorPhone(ctx context.Context, phone string) ([]*domain.CartEntry, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	cursor, err := r.cart.Find(ctx, bson.M{"vendor_phone": phone})
	if err != nil {
		return nil, fmt.Errorf("list cart entries: %w", err)
	}
	defer cursor.Close(ctx)

	entries := []*domain.CartEntry{}
	for cursor.Next(ctx) {
		var doc cartEntryDoc
		if err := cursor.Decode(&doc); err != nil {
			return nil, fmt.Errorf("decode cart entry: %w", err)
		}
		entries = append(entries, docToCartEntry(doc))
	}
	if err := cursor.Err(); err != nil {
		return nil, fmt.Errorf("iterate cart entries: %w", err)
	}
	return entries, nil
}

// EnsureIndexes creates the lookup indexes for menu and cart queries.
func (r *CatalogRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	menuIndexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "supplier_phone", Value: 1}}},
		{Keys: bson.D{{Key: "tax_id", Value: 1}}},
	}
	if _, err := r.menu.Indexes().CreateMany(ctx, menuIndexes); err != nil {
		return fmt.Errorf("create menu indexes: %w", err)
	}

	cartIndexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "vendor_phone", Value: 1}}},
	}
	if _, err := r.cart.Indexes().CreateMany(ctx, cartIndexes); err != nil {
		return fmt.Errorf("create cart indexes: %w", err)
	}
	return nil
}

func docToMenuItem(doc menuItemDoc) *domain.MenuItem {
	return &domain.MenuItem{
		ID:            doc.ID.Hex(),
		SupplierPhone: doc.SupplierPhone,
		ShopName:      doc.ShopName,
		TaxID:         doc.TaxID,
		ItemName:      doc.ItemName,
		Cost:          doc.Cost,
		Stock:         doc.Stock,
		CreatedAt:     doc.CreatedAt.UTC(),
	}
}

func docToCartEntry(doc cartEntryDoc) *domain.CartEntry {
	return &domain.CartEntry{
		ID:             doc.ID.Hex(),
		ItemID:         doc.ItemID,
		ItemName:       doc.ItemName,
		Quantity:       doc.Quantity,
		SupplierPhone:  doc.SupplierPhone,
		ShopName:       doc.ShopName,
		VendorPhone:    doc.VendorPhone,
		VendorName:     doc.VendorName,
		VendorLocation: doc.VendorLocation,
		AddedAt:        doc.AddedAt.UTC(),
	}
}
