package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const guardTTL = time.Hour

// GrievanceGuard provides a best-effort duplicate-submission check backed by
// Redis. Key format: grievance:<posted_by>:<filer>:<issue_type>:<unix_date>
type GrievanceGuard struct {
	client *redis.Client
}

// NewGrievanceGuard creates a GrievanceGuard wrapping the given Redis client.
func NewGrievanceGuard(client *redis.Client) *GrievanceGuard {
	return &GrievanceGuard{client: client}
}

// IsDuplicate reports whether an identical grievance was filed within the TTL.
func (g *GrievanceGuard) IsDuplicate(ctx context.Context, postedBy, filer, issueType string, issueDate time.Time) (bool, error) {
	n, err := g.client.Exists(ctx, g.key(postedBy, filer, issueType, issueDate)).Result()
	if err != nil {
		return false, fmt.Errorf("grievance guard check: %w", err)
	}
	return n > 0, nil
}

// Mark records a filed grievance (expires after guardTTL).
func (g *GrievanceGuard) Mark(ctx context.Context, postedBy, filer, issueType string, issueDate time.Time) error {
	return g.client.Set(ctx, g.key(postedBy, filer, issueType, issueDate), "1", guardTTL).Err()
}

func (g *GrievanceGuard) key(postedBy, filer, issueType string, issueDate time.Time) string {
	return fmt.Sprintf("grievance:%s:%s:%s:%d", postedBy, filer, issueType, issueDate.Unix())
}
