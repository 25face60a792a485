package memory

import (
	"context"
	"slices"
	"sync"

	"github.com/bestchance/orderdesk/internal/domain/model"
	"github.com/bestchance/orderdesk/internal/domain/repository"
)

var (
	_ repository.SubmissionRepository = (*Ledger)(nil)
	_ repository.HealthChecker        = (*Ledger)(nil)
)

// Ledger records submission attempts in memory when no database is configured.
type Ledger struct {
	mu      sync.RWMutex
	entries []model.Submission
}

func NewLedger() *Ledger {
	return &Ledger{}
}

func (l *Ledger) Record(_ context.Context, submission model.Submission) error {
	submission.Payload = slices.Clone(submission.Payload)

	l.mu.Lock()
	defer l.mu.Unlock()
	l.entries = append(l.entries, submission)
	return nil
}

// ListByProject returns the newest attempts first, at most limit of them when limit is positive.
func (l *Ledger) ListByProject(_ context.Context, projectID string, limit int) ([]model.Submission, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()

	result := make([]model.Submission, 0)
	for i := len(l.entries) - 1; i >= 0; i-- {
		entry := l.entries[i]
		if entry.ProjectID != projectID {
			continue
		}
		entry.Payload = slices.Clone(entry.Payload)
		result = append(result, entry)
		if limit > 0 && len(result) == limit {
			break
		}
	}
	return result, nil
}

func (l *Ledger) Summary(_ context.Context, projectID string) (model.SubmissionSummary, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()

	summary := model.SubmissionSummary{ProjectID: projectID}
	for _, entry := range l.entries {
		if entry.ProjectID != projectID {
			continue
		}
		summary.Attempts++
		if entry.Succeeded {
			summary.Successes++
		}
		if entry.SubmittedAt.After(summary.LastSubmittedAt) {
			summary.LastSubmittedAt = entry.SubmittedAt
		}
	}
	return summary, nil
}

// HealthCheck always succeeds for the in-memory ledger.
func (l *Ledger) HealthCheck(context.Context) error {
	return nil
}
