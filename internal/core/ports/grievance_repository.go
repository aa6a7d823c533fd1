package ports

import (
	"context"

	"github.com/freshlink/marketplace-api/internal/core/domain"
)

// GrievanceFilter constrains a ledger listing. An empty or "all" PostedBy
// means no constraint; any other value is matched case-insensitively.
type GrievanceFilter struct {
	PostedBy string
}

// GrievanceRepository persists dispute records. Entries are write-once:
// there is no update or delete operation.
type GrievanceRepository interface {
	// Insert writes the grievance and its attachments as a single document;
	// no partial write is observable.
	Insert(ctx context.Context, g *domain.Grievance) (*domain.Grievance, error)
	// List returns matching grievances sorted by issue date descending.
	List(ctx context.Context, filter GrievanceFilter) ([]*domain.Grievance, error)
	FindByID(ctx context.Context, id string) (*domain.Grievance, error)
}
