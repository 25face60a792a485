package memory

import (
	"go.uber.org/fx"

	"github.com/bestchance/orderdesk/internal/domain/repository"
)

// Module wires the in-memory draft store.
var Module = fx.Options(
	fx.Provide(func() *DraftStore { return NewDraftStore(nil) }),
	fx.Provide(func(s *DraftStore) repository.DraftRepository { return s }),
)
