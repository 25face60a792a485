package repository

import (
	"context"

	"github.com/bestchance/orderdesk/internal/domain/model"
)

// SubmissionRepository records order submission attempts.
type SubmissionRepository interface {
	Record(ctx context.Context, submission model.Submission) error
	ListByProject(ctx context.Context, projectID string, limit int) ([]model.Submission, error)
	Summary(ctx context.Context, projectID string) (model.SubmissionSummary, error)
}

// HealthChecker reports whether a backing store is reachable.
type HealthChecker interface {
	HealthCheck(ctx context.Context) error
}
