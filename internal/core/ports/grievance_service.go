package ports

import (
	"context"
	"time"

	"github.com/freshlink/marketplace-api/internal/core/domain"
)

// SubmitGrievanceInput is the DTO passed from the transport layer to the
// grievance service. Attachments arrive already encoded by the upload codec.
type SubmitGrievanceInput struct {
	SupplierName   string
	ShopName       string
	VendorName     string
	VendorLocation string
	IssueDate      time.Time
	IssueType      string
	Details        string
	// PostedBy is the filer's self-declared role. The declared value is
	// trusted as-is; there is no cross-check against a login identity.
	PostedBy    string
	Attachments []domain.Attachment
}

// GrievanceService accepts dispute submissions and serves filtered,
// time-ordered retrieval.
type GrievanceService interface {
	Submit(ctx context.Context, input SubmitGrievanceInput) (*domain.Grievance, error)
	// List returns grievances newest issue date first. postedBy may be empty,
	// "all", or a role value matched case-insensitively.
	List(ctx context.Context, postedBy string) ([]*domain.Grievance, error)
	Get(ctx context.Context, id string) (*domain.Grievance, error)
	// Attachment decodes the stored base64 content of one attachment back to
	// its original bytes for download.
	Attachment(ctx context.Context, id string, index int) (*domain.Attachment, []byte, error)
}
