package repository

import (
	"context"
	"time"

	"github.com/bestchance/orderdesk/internal/wizard"
)

// DraftRepository keeps in-flight wizard drafts owned by a user.
type DraftRepository interface {
	Create(ctx context.Context, owner string, draft *wizard.OrderDraft) (string, error)
	Get(ctx context.Context, owner, id string) (*wizard.OrderDraft, error)
	Save(ctx context.Context, owner, id string, draft *wizard.OrderDraft) error
	Delete(ctx context.Context, owner, id string) error
	EvictIdle(ctx context.Context, olderThan time.Time) int
	Len() int
}
