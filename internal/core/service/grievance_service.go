package service

import (
	"context"
	"encoding/base64"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/freshlink/marketplace-api/internal/core/domain"
	"github.com/freshlink/marketplace-api/internal/core/ports"
)

// DuplicateGuard abstracts the best-effort resubmission check (Redis).
// Guard failures never block a submission.
type DuplicateGuard interface {
	IsDuplicate(ctx context.Context, postedBy, filer, issueType string, issueDate time.Time) (bool, error)
	Mark(ctx context.Context, postedBy, filer, issueType string, issueDate time.Time) error
}

type grievanceService struct {
	repo  ports.GrievanceRepository
	guard DuplicateGuard
	log   zerolog.Logger
}

// NewGrievanceService returns a GrievanceService implementation.
func NewGrievanceService(repo ports.GrievanceRepository, guard DuplicateGuard, log zerolog.Logger) ports.GrievanceService {
	return &grievanceService{repo: repo, guard: guard, log: log}
}

// Submit validates and persists a dispute record together with its encoded
// attachments as a single ledger entry.
func (s *grievanceService) Submit(ctx context.Context, in ports.SubmitGrievanceInput) (*domain.Grievance, error) {
	postedBy, err := domain.ParseRole(strings.ToLower(strings.TrimSpace(in.PostedBy)))
	if err != nil {
		return nil, fmt.Errorf("%w: posted_by must be vendor or supplier", domain.ErrValidation)
	}
	if in.IssueType == "" {
		return nil, fmt.Errorf("%w: issue_type is required", domain.ErrValidation)
	}
	if in.IssueDate.IsZero() {
		return nil, fmt.Errorf("%w: issue_date is required", domain.ErrValidation)
	}

	filer := in.VendorName
	if postedBy == domain.RoleSupplier {
		filer = in.SupplierName
	}

	// Best-effort resubmission check. On guard failure the submission
	// proceeds; the ledger itself stays append-only either way.
	isDup, err := s.guard.IsDuplicate(ctx, string(postedBy), filer, in.IssueType, in.IssueDate)
	if err != nil {
		s.log.Warn().Err(err).Str("filer", filer).Msg("duplicate check failed, accepting submission")
	} else if isDup {
		return nil, domain.ErrDuplicateGrievance
	}

	g := &domain.Grievance{
		SupplierName:   in.SupplierName,
		ShopName:       in.ShopName,
		VendorName:     in.VendorName,
		VendorLocation: in.VendorLocation,
		IssueDate:      in.IssueDate.UTC(),
		IssueType:      in.IssueType,
		Details:        in.Details,
		PostedBy:       postedBy,
		Attachments:    in.Attachments,
		CreatedAt:      time.Now().UTC(),
	}

	created, err := s.repo.Insert(ctx, g)
	if err != nil {
		s.log.Error().Err(err).Str("posted_by", string(postedBy)).Msg("failed to insert grievance")
		return nil, err
	}

	if markErr := s.guard.Mark(ctx, string(postedBy), filer, in.IssueType, in.IssueDate); markErr != nil {
		s.log.Warn().Err(markErr).Str("filer", filer).Msg("failed to set duplicate guard key")
	}

	s.log.Info().
		Str("id", created.ID).
		Str("posted_by", string(postedBy)).
		Str("issue_type", created.IssueType).
		Int("attachments", len(created.Attachments)).
		Msg("grievance filed")

	return created, nil
}

// List returns grievances newest issue date first. postedBy of "", "all" (any
// case) means no constraint; anything else is matched case-insensitively.
func (s *grievanceService) List(ctx context.Context, postedBy string) ([]*domain.Grievance, error) {
	filter := ports.GrievanceFilter{}
	if v := strings.TrimSpace(postedBy); v != "" && !strings.EqualFold(v, "all") {
		filter.PostedBy = v
	}
	return s.repo.List(ctx, filter)
}

func (s *grievanceService) Get(ctx context.Context, id string) (*domain.Grievance, error) {
	return s.repo.FindByID(ctx, id)
}

// Attachment decodes one stored attachment back to its original bytes.
func (s *grievanceService) Attachment(ctx context.Context, id string, index int) (*domain.Attachment, []byte, error) {
	g, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, nil, err
	}
	if index < 0 || index >= len(g.Attachments) {
		return nil, nil, domain.ErrAttachmentNotFound
	}
	att := g.Attachments[index]
	data, err := base64.StdEncoding.DecodeString(att.Content)
	if err != nil {
		return nil, nil, fmt.Errorf("decode attachment %d of grievance %s: %w", index, id, err)
	}
	return &att, data, nil
}
