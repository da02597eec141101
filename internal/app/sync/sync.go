// Package sync keeps local ordered copies of server-side collection queries.
//
// A Synchronizer mirrors one ordered query. It supports the two modes the
// admin console uses:
//
//   - push mode: Run establishes a live watch on the collection and re-fetches
//     the query whenever the server reports a change (hero slides, admissions,
//     contact messages).
//   - pull mode: Refresh performs a one-shot fetch; callers re-fetch
//     explicitly after a mutation completes (notices, gallery, faculty,
//     pride students).
//
// On every fetch the local sequence is replaced wholesale with the server's
// result set in server order. Records are never diffed or patched
// individually; the server copy always wins.
package sync

import (
	"context"
	"errors"
	stdsync "sync"

	"go.uber.org/zap"
)

// ErrClosed is returned by operations on a closed Synchronizer.
var ErrClosed = errors.New("sync: synchronizer closed")

// Source supplies the ordered result set of one collection query and a
// change signal for it.
type Source[T any] interface {
	// Fetch returns the query's current result set in server order.
	Fetch(ctx context.Context) ([]T, error)

	// Watch returns a channel that receives a value whenever the underlying
	// collection changes. The channel is closed when ctx is cancelled or the
	// server-side stream fails; transparent retry is the store client's
	// concern, not this package's.
	Watch(ctx context.Context) (<-chan struct{}, error)
}

// Synchronizer maintains an in-memory ordered snapshot of a Source and
// notifies subscribers when it changes.
type Synchronizer[T any] struct {
	source Source[T]
	logger *zap.Logger

	mu       stdsync.RWMutex
	snapshot []T
	subs     map[int]chan []T
	nextSub  int
	closed   bool
}

// New creates a Synchronizer over the given source. The snapshot is empty
// until the first Refresh or Run fetch completes.
func New[T any](source Source[T], logger *zap.Logger) *Synchronizer[T] {
	return &Synchronizer[T]{
		source: source,
		logger: logger,
		subs:   make(map[int]chan []T),
	}
}

// Refresh performs a one-shot fetch and replaces the local snapshot with the
// result. This is the pull-mode entry point and is also used internally by
// Run after every change signal.
func (s *Synchronizer[T]) Refresh(ctx context.Context) error {
	s.mu.RLock()
	closed := s.closed
	s.mu.RUnlock()
	if closed {
		return ErrClosed
	}

	records, err := s.source.Fetch(ctx)
	if err != nil {
		return err
	}
	s.replace(records)
	return nil
}

// Run establishes a live watch and keeps the snapshot current until ctx is
// cancelled, the watch ends, or the Synchronizer is closed. It performs an
// initial fetch before watching so subscribers see a snapshot promptly.
//
// Run returns nil on ctx cancellation or Close, and the transport error when
// the watch cannot be established or a refresh fails.
func (s *Synchronizer[T]) Run(ctx context.Context) error {
	changes, err := s.source.Watch(ctx)
	if err != nil {
		return err
	}

	if err := s.Refresh(ctx); err != nil {
		if errors.Is(err, ErrClosed) {
			return nil
		}
		return err
	}

	for {
		select {
		case <-ctx.Done():
			return nil
		case _, ok := <-changes:
			if !ok {
				// Stream ended; the next snapshot must come from a new Run.
				return nil
			}
			if err := s.Refresh(ctx); err != nil {
				if errors.Is(err, ErrClosed) || ctx.Err() != nil {
					return nil
				}
				s.logger.Warn("refresh after change signal failed", zap.Error(err))
				return err
			}
		}
	}
}

// Snapshot returns a copy of the current ordered snapshot.
func (s *Synchronizer[T]) Snapshot() []T {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]T, len(s.snapshot))
	copy(out, s.snapshot)
	return out
}

// Subscribe registers for snapshot updates. Each notification carries the
// full new snapshot. The returned cancel function is idempotent and safe to
// call from teardown paths; the channel is closed on cancel or Close.
//
// Delivery is conflated: a slow subscriber observes the latest snapshot, not
// every intermediate one.
func (s *Synchronizer[T]) Subscribe() (<-chan []T, func()) {
	s.mu.Lock()
	defer s.mu.Unlock()

	ch := make(chan []T, 1)
	if s.closed {
		close(ch)
		return ch, func() {}
	}

	id := s.nextSub
	s.nextSub++
	s.subs[id] = ch

	var once stdsync.Once
	cancel := func() {
		once.Do(func() {
			s.mu.Lock()
			defer s.mu.Unlock()
			if sub, ok := s.subs[id]; ok {
				delete(s.subs, id)
				close(sub)
			}
		})
	}
	return ch, cancel
}

// Close releases all subscriptions. It is idempotent; subsequent Refresh and
// Run calls return ErrClosed.
func (s *Synchronizer[T]) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return
	}
	s.closed = true
	for id, ch := range s.subs {
		delete(s.subs, id)
		close(ch)
	}
}

// replace swaps in the new snapshot and notifies subscribers.
func (s *Synchronizer[T]) replace(records []T) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return
	}

	s.snapshot = records

	for _, ch := range s.subs {
		notification := make([]T, len(records))
		copy(notification, records)
		// Conflate: drop the stale pending snapshot if the subscriber
		// has not consumed it yet.
		select {
		case ch <- notification:
		default:
			select {
			case <-ch:
			default:
			}
			ch <- notification
		}
	}
}
