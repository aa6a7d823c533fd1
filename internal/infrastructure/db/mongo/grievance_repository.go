package mongo

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/freshlink/marketplace-api/internal/core/domain"
	"github.com/freshlink/marketplace-api/internal/core/ports"
)

const collectionGrievances = "grievances"

// GrievanceRepository persists dispute records with their inline attachments.
type GrievanceRepository struct {
	col *mongo.Collection
}

func NewGrievanceRepository(db *mongo.Database) *GrievanceRepository {
	return &GrievanceRepository{col: db.Collection(collectionGrievances)}
}

type grievanceDoc struct {
	ID             primitive.ObjectID  `bson:"_id,omitempty"`
	SupplierName   string              `bson:"supplier_name"`
	ShopName       string              `bson:"shop_name"`
	VendorName     string              `bson:"vendor_name"`
	VendorLocation string              `bson:"vendor_location"`
	IssueDate      time.Time           `bson:"issue_date"`
	IssueType      string              `bson:"issue_type"`
	Details        string              `bson:"details"`
	PostedBy       string              `bson:"posted_by"`
	Attachments    []domain.Attachment `bson:"attachments"`
	CreatedAt      time.Time           `bson:"created_at"`
}

// Insert writes the grievance and its attachments as one document. The write
// is a single InsertOne, so no partial entry is ever observable.
func (r *GrievanceRepository) Insert(ctx context.Context, g *domain.Grievance) (*domain.Grievance, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	doc := grievanceDoc{
		SupplierName:   g.SupplierName,
		ShopName:       g.ShopName,
		VendorName:     g.VendorName,
		VendorLocation: g.VendorLocation,
		IssueDate:      g.IssueDate,
		IssueType:      g.IssueType,
		Details:        g.Details,
		PostedBy:       string(g.PostedBy),
		Attachments:    g.Attachments,
		CreatedAt:      g.CreatedAt,
	}

	res, err := r.col.InsertOne(ctx, doc)
	if err != nil {
		return nil, fmt.Errorf("insert grievance: %w", err)
	}

	created := *g
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		created.ID = oid.Hex()
	}
	return &created, nil
}

// List returns grievances sorted by issue date descending. A PostedBy filter
// is matched case-insensitively; ties keep natural insertion order.
func (r *GrievanceRepository) List(ctx context.Context, filter ports.GrievanceFilter) ([]*domain.Grievance, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	query := bson.M{}
	if filter.PostedBy != "" {
		query["posted_by"] = primitive.Regex{
			Pattern: "^" + regexp.QuoteMeta(filter.PostedBy) + "$",
			Options: "i",
		}
	}

	opts := options.Find().SetSort(bson.D{{Key: "issue_date", Value: -1}})
	cursor, err := r.col.Find(ctx, query, opts)
	if err != nil {
		return nil, fmt.Errorf("list grievances: %w", err)
	}
	defer cursor.Close(ctx)

	grievances := []*domain.Grievance{}
	for cursor.Next(ctx) {
		var doc grievanceDoc
		if err := cursor.Decode(&doc); err != nil {
			return nil, fmt.Errorf("decode grievance: %w", err)
		}
		grievances = append(grievances, docToGrievance(doc))
	}
	if err := cursor.Err(); err != nil {
		return nil, fmt.Errorf("iterate grievances: %w", err)
	}
	return grievances, nil
}

func (r *GrievanceRepository) FindByID(ctx context.Context, id string) (*domain.Grievance, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrGrievanceNotFound
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var doc grievanceDoc
	if err := r.col.FindOne(ctx, bson.M{"_id": oid}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrGrievanceNotFound
		}
		return nil, fmt.Errorf("find grievance: %w", err)
	}
	return docToGrievance(doc), nil
}

// EnsureIndexes creates the indexes backing the filtered, time-ordered listing.
func (r *GrievanceRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	indexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "issue_date", Value: -1}}},
		{Keys: bson.D{{Key: "posted_by", Value: 1}}},
	}
	_, err := r.col.Indexes().CreateMany(ctx, indexes)
	return err
}

func docToGrievance(doc grievanceDoc) *domain.Grievance {
	return &domain.Grievance{
		ID:             doc.ID.Hex(),
		SupplierName:   doc.SupplierName,
		ShopName:       doc.ShopName,
		VendorName:     doc.VendorName,
		VendorLocation: doc.VendorLocation,
		IssueDate:      doc.IssueDate.UTC(),
		IssueType:      doc.IssueType,
		Details:        doc.Details,
		PostedBy:       domain.Role(doc.PostedBy),
		Attachments:    doc.Attachments,
		CreatedAt:      doc.CreatedAt.UTC(),
	}
}
