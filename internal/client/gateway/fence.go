package gateway

import (
	"context"
	"errors"
	"sync"
)

// ErrSuperseded is the cancellation cause of a scope replaced by a newer
// Begin for the same key.
var ErrSuperseded = errors.New("superseded by a newer request")

type fenceEntry struct {
	id     uint64
	cancel context.CancelCauseFunc
}

// Fence keeps at most one live scope per key. Starting a new scope cancels
// the previous one, so a slow earlier call can never deliver its result
// after a later one for the same operation.
type Fence struct {
	mu     sync.Mutex
	seq    uint64
	scopes map[string]fenceEntry
}

func NewFence() *Fence {
	return &Fence{scopes: make(map[string]fenceEntry)}
}

// Begin opens a scope for key derived from ctx. The returned release must be
// called once the operation is done.
func (f *Fence) Begin(ctx context.Context, key string) (context.Context, func()) {
	scoped, release, _ := f.begin(ctx, key, true)
	return scoped, release
}

// TryBegin is Begin that yields to a scope already open for key: it then
// returns ok == false and opens nothing.
func (f *Fence) TryBegin(ctx context.Context, key string) (context.Context, func(), bool) {
	return f.begin(ctx, key, false)
}

func (f *Fence) begin(ctx context.Context, key string, replace bool) (context.Context, func(), bool) {
	f.mu.Lock()
	prev, busy := f.scopes[key]
	if busy && !replace {
		f.mu.Unlock()
		return ctx, func() {}, false
	}

	scoped, cancel := context.WithCancelCause(ctx)
	if busy {
		prev.cancel(ErrSuperseded)
	}
	f.seq++
	id := f.seq
	f.scopes[key] = fenceEntry{id: id, cancel: cancel}
	f.mu.Unlock()

	release := func() {
		f.mu.Lock()
		if cur, ok := f.scopes[key]; ok && cur.id == id {
			delete(f.scopes, key)
		}
		f.mu.Unlock()
		cancel(context.Canceled)
	}
	return scoped, release, true
}

// Active reports the number of open scopes.
func (f *Fence) Active() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.scopes)
}

// CancelAll cancels every open scope.
func (f *Fence) CancelAll() {
	f.mu.Lock()
	defer f.mu.Unlock()
	for key, e := range f.scopes {
		e.cancel(context.Canceled)
		delete(f.scopes, key)
	}
}
