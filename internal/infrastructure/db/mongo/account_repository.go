package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/freshlink/marketplace-api/internal/core/domain"
)

const (
	collectionVendors   = "vendors"
	collectionSuppliers = "suppliers"
)

// AccountRepository stores vendor and supplier accounts in two collections of
// identical shape.
type AccountRepository struct {
	vendors   *mongo.Collection
	suppliers *mongo.Collection
}

func NewAccountRepository(db *mongo.Database) *AccountRepository {
	return &AccountRepository{
		vendors:   db.Collection(collectionVendors),
		suppliers: db.Collection(collectionSuppliers),
	}
}

type accountDoc struct {
	ID           primitive.ObjectID `bson:"_id,omitempty"`
	FullName     string             `bson:"full_name"`
	Email        string             `bson:"email"`
	Phone        string             `bson:"phone"`
	PasswordHash string             `bson:"password_hash"`
	GovernmentID string             `bson:"government_id"`
	TaxID        string             `bson:"tax_id"`
	ShopName     string             `bson:"shop_name"`
	ShopLocation string             `bson:"shop_location"`
	Verified     bool               `bson:"verified"`
	ShopStatus   bool               `bson:"shop_status"`
	CreatedAt    int64              `bson:"created_at"`
	UpdatedAt    int64              `bson:"updated_at"`
}

func (r *AccountRepository) collection(role domain.Role) (*mongo.Collection, error) {
	switch role {
	case domain.RoleVendor:
		return r.vendors, nil
	case domain.RoleSupplier:
		return r.suppliers, nil
	default:
		return nil, domain.ErrInvalidRole
	}
}

func (r *AccountRepository) Create(ctx context.Context, account *domain.Account) (*domain.Account, error) {
	col, err := r.collection(account.Role)
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	doc := accountDoc{
		FullName:     account.FullName,
		Email:        account.Email,
		Phone:        account.Phone,
		PasswordHash: account.PasswordHash,
		GovernmentID: account.GovernmentID,
		TaxID:        account.TaxID,
		ShopName:     account.ShopName,
		ShopLocation: account.ShopLocation,
		Verified:     account.Verified,
		ShopStatus:   account.ShopStatus,
		CreatedAt:    account.CreatedAt.Unix(),
		UpdatedAt:    account.UpdatedAt.Unix(),
	}

	res, err := col.InsertOne(ctx, doc)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, domain.ErrAccountExists
		}
		return nil, fmt.Errorf("insert %s account: %w", account.Role, err)
	}

	created := *account
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		created.ID = oid.Hex()
	}
	return &created, nil
}

func (r *AccountRepository) FindByIdentifier(ctx context.Context, role domain.Role, identifier string) (*domain.Account, error) {
	col, err := r.collection(role)
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	filter := bson.M{"$or": []bson.M{{"email": identifier}, {"phone": identifier}}}
	var doc accountDoc
	if err := col.FindOne(ctx, filter).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrAccountNotFound
		}
		return nil, fmt.Errorf("find %s account: %w", role, err)
	}
	return docToAccount(role, doc), nil
}

func (r *AccountRepository) FindByID(ctx context.Context, role domain.Role, id string) (*domain.Account, error) {
	col, err := r.collection(role)
	if err != nil {
		return nil, err
	}
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrAccountNotFound
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var doc accountDoc
	if err := col.FindOne(ctx, bson.M{"_id": oid}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrAccountNotFound
		}
		return nil, fmt.Errorf("find %s account: %w", role, err)
	}
	return docToAccount(role, doc), nil
}

// FindUnverified returns pending accounts in natural insertion order.
func (r *AccountRepository) FindUnverified(ctx context.Context, role domain.Role) ([]*domain.Account, error) {
	col, err := r.collection(role)
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	cursor, err := col.Find(ctx, bson.M{"verified": bson.M{"$ne": true}})
	if err != nil {
		return nil, fmt.Errorf("find unverified %ss: %w", role, err)
	}
	defer cursor.Close(ctx)

	accounts := []*domain.Account{}
	for cursor.Next(ctx) {
		var doc accountDoc
		if err := cursor.Decode(&doc); err != nil {
			return nil, fmt.Errorf("decode %s account: %w", role, err)
		}
		accounts = append(accounts, docToAccount(role, doc))
	}
	if err := cursor.Err(); err != nil {
		return nil, fmt.Errorf("iterate unverified %ss: %w", role, err)
	}
	return accounts, nil
}

func (r *AccountRepository) MarkVerified(ctx context.Context, role domain.Role, id string) error {
	col, err := r.collection(role)
	if err != nil {
		return err
	}
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return domain.ErrAccountNotFound
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	update := bson.M{"$set": bson.M{"verified": true, "updated_at": time.Now().UTC().Unix()}}
	res, err := col.UpdateByID(ctx, oid, update)
	if err != nil {
		return fmt.Errorf("mark %s verified: %w", role, err)
	}
	if res.MatchedCount == 0 {
		return domain.ErrAccountNotFound
	}
	return nil
}

func (r *AccountRepository) Delete(ctx context.Context, role domain.Role, id string) error {
	col, err := r.collection(role)
	if err != nil {
		return err
	}
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return domain.ErrAccountNotFound
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := col.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return fmt.Errorf("delete %s account: %w", role, err)
	}
	if res.DeletedCount == 0 {
		return domain.ErrAccountNotFound
	}
	return nil
}

// SetShopStatus toggles the open/closed flag on a supplier record by phone.
func (r *AccountRepository) SetShopStatus(ctx context.Context, phone string, open bool) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	update := bson.M{"$set": bson.M{"shop_status": open, "updated_at": time.Now().UTC().Unix()}}
	res, err := r.suppliers.UpdateOne(ctx, bson.M{"phone": phone}, update)
	if err != nil {
		return fmt.Errorf("set shop status: %w", err)
	}
	if res.MatchedCount == 0 {
		return domain.ErrAccountNotFound
	}
	return nil
}

// EnsureIndexes creates the unique email and phone indexes on both account
// collections. Duplicate registrations are rejected at write time.
func (r *AccountRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	indexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "email", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "phone", Value: 1}}, Options: options.Index().SetUnique(true)},
	}

	for _, col := range []*mongo.Collection{r.vendors, r.suppliers} {
		if _, err := col.Indexes().CreateMany(ctx, indexes); err != nil {
			return fmt.Errorf("create indexes on %s: %w", col.Name(), err)
		}
	}
	return nil
}

func docToAccount(role domain.Role, doc accountDoc) *domain.Account {
	return &domain.Account{
		ID:           doc.ID.Hex(),
		Role:         role,
		FullName:     doc.FullName,
		Email:        doc.Email,
		Phone:        doc.Phone,
		PasswordHash: doc.PasswordHash,
		GovernmentID: doc.GovernmentID,
		TaxID:        doc.TaxID,
		ShopName:     doc.ShopName,
		ShopLocation: doc.ShopLocation,
		Verified:     doc.Verified,
		ShopStatus:   doc.ShopStatus,
		CreatedAt:    unixToTime(doc.CreatedAt),
		UpdatedAt:    unixToTime(doc.UpdatedAt),
	}
}

func unixToTime(ts int64) time.Time {
	if ts == 0 {
		return time.Time{}
	}
	return time.Unix(ts, 0).UTC()
}
