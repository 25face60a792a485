package test

import (
	"context"
	"sync"

	"github.com/bestchance/orderdesk/internal/domain/model"
)

// SubmissionRepositoryStub keeps recorded submissions in a slice.
type SubmissionRepositoryStub struct {
	mu         sync.Mutex
	Records    []model.Submission
	RecordErr  error
	ListErr    error
	SummaryErr error
}

func (s *SubmissionRepositoryStub) Record(_ context.Context, sub model.Submission) error {
	if s.RecordErr != nil {
		return s.RecordErr
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Records = append(s.Records, sub)
	return nil
}

// ListByProject returns matching records in insertion order.
func (s *SubmissionRepositoryStub) ListByProject(_ context.Context, projectID string, limit int) ([]model.Submission, error) {
	if s.ListErr != nil {
		return nil, s.ListErr
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]model.Submission, 0)
	for _, r := range s.Records {
		if r.ProjectID == projectID {
			out = append(out, r)
		}
		if limit > 0 && len(out) == limit {
			break
		}
	}
	return out, nil
}

func (s *SubmissionRepositoryStub) Summary(_ context.Context, projectID string) (model.SubmissionSummary, error) {
	if s.SummaryErr != nil {
		return model.SubmissionSummary{}, s.SummaryErr
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	summary := model.SubmissionSummary{ProjectID: projectID}
	for _, r := range s.Records {
		if r.ProjectID != projectID {
			continue
		}
		summary.Attempts++
		if r.Succeeded {
			summary.Successes++
		}
	}
	return summary, nil
}

// HealthCheckerStub returns Err from HealthCheck.
type HealthCheckerStub struct {
	Err error
}

func (h HealthCheckerStub) HealthCheck(context.Context) error {
	return h.Err
}
