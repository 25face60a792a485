package memory

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	domainErrors "github.com/bestchance/orderdesk/internal/domain/errors"
	"github.com/bestchance/orderdesk/internal/domain/repository"
	"github.com/bestchance/orderdesk/internal/wizard"
)

var _ repository.DraftRepository = (*DraftStore)(nil)

type draftEntry struct {
	owner     string
	draft     *wizard.OrderDraft
	touchedAt time.Time
}

// DraftStore keeps wizard drafts in process memory. Drafts are copied on the way in and out.
type DraftStore struct {
	mu      sync.Mutex
	entries map[string]draftEntry
	now     func() time.Time
}

// NewDraftStore creates an empty store. A nil clock falls back to time.Now.
func NewDraftStore(now func() time.Time) *DraftStore {
	if now == nil {
		now = time.Now
	}
	return &DraftStore{entries: make(map[string]draftEntry), now: now}
}

func (s *DraftStore) Create(_ context.Context, owner string, draft *wizard.OrderDraft) (string, error) {
	id := uuid.NewString()

	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries[id] = draftEntry{owner: owner, draft: draft.Clone(), touchedAt: s.now()}
	return id, nil
}

// Get returns a copy of the draft. Drafts of other owners are reported as missing.
func (s *DraftStore) Get(_ context.Context, owner, id string) (*wizard.OrderDraft, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	entry, ok := s.entries[id]
	if !ok || entry.owner != owner {
		return nil, domainErrors.ErrDraftNotFound
	}
	entry.touchedAt = s.now()
	s.entries[id] = entry
	return entry.draft.Clone(), nil
}

func (s *DraftStore) Save(_ context.Context, owner, id string, draft *wizard.OrderDraft) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	entry, ok := s.entries[id]
	if !ok || entry.owner != owner {
		return domainErrors.ErrDraftNotFound
	}
	entry.draft = draft.Clone()
	entry.touchedAt = s.now()
	s.entries[id] = entry
	return nil
}

func (s *DraftStore) Delete(_ context.Context, owner, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	entry, ok := s.entries[id]
	if !ok || entry.owner != owner {
		return domainErrors.ErrDraftNotFound
	}
	delete(s.entries, id)
	return nil
}

// EvictIdle drops drafts untouched since olderThan and reports how many were removed.
func (s *DraftStore) EvictIdle(_ context.Context, olderThan time.Time) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	evicted := 0
	for id, entry := range s.entries {
		if entry.touchedAt.Before(olderThan) {
			delete(s.entries, id)
			evicted++
		}
	}
	return evicted
}

func (s *DraftStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.entries)
}
