package usecase

import (
	"context"
	"sync"
)

// draftLocks serializes work on a single draft. Slots are dropped once nobody holds or
// waits on them.
type draftLocks struct {
	mu    sync.Mutex
	slots map[string]*draftSlot
}

type draftSlot struct {
	token chan struct{}
	refs  int
}

func newDraftLocks() *draftLocks {
	return &draftLocks{slots: make(map[string]*draftSlot)}
}

// acquire blocks until the caller owns draft id or ctx is done. The returned func
// releases ownership and must be called exactly once.
func (l *draftLocks) acquire(ctx context.Context, id string) (func(), error) {
	l.mu.Lock()
	slot, ok := l.slots[id]
	if !ok {
		slot = &draftSlot{token: make(chan struct{}, 1)}
		l.slots[id] = slot
	}
	slot.refs++
	l.mu.Unlock()

	select {
	case slot.token <- struct{}{}:
		return func() {
			<-slot.token
			l.leave(id, slot)
		}, nil
	case <-ctx.Done():
		l.leave(id, slot)
		return nil, ctx.Err()
	}
}

func (l *draftLocks) leave(id string, slot *draftSlot) {
	l.mu.Lock()
	defer l.mu.Unlock()
	slot.refs--
	if slot.refs == 0 {
		delete(l.slots, id)
	}
}

func (l *draftLocks) len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.slots)
}
