// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package workers

import (
	"context"
	"sync"
	"time"

	"github.com/MKhiriev/go-garage/internal/logger"
)

// SaveFunc writes one snapshot to durable storage.
type SaveFunc[T any] func(ctx context.Context, snapshot T) error

// PersistQueue serialises writes of whole-collection snapshots.
//
// Enqueue never blocks on I/O. Snapshots queued while a write is running are
// coalesced: only the newest one is written next, since it supersedes the
// others. Writes happen one at a time, in enqueue order.
type PersistQueue[T any] struct {
	name    string
	save    SaveFunc[T]
	timeout time.Duration
	logger  *logger.Logger
	onError func(error)

	// writeMu serialises calls to save.
	writeMu sync.Mutex

	mu         sync.Mutex
	pending    T
	hasPending bool
	enqueued   uint64
	persisted  uint64
	// failed is set by a failed write and cleared only by a successful one.
	failed bool
	// flushErr is the first write error since the last Flush returned.
	flushErr error
	progress   chan struct{}
	running    bool
	cancel     context.CancelFunc

	wake chan struct{}
	wg   sync.WaitGroup
}

// NewPersistQueue creates an idle queue; call Run to start its writer
// goroutine. timeout bounds each write; zero means no bound.
func NewPersistQueue[T any](name string, save SaveFunc[T], timeout time.Duration, logger *logger.Logger) *PersistQueue[T] {
	return &PersistQueue[T]{
		name:     name,
		save:     save,
		timeout:  timeout,
		logger:   logger,
		progress: make(chan struct{}),
		wake:     make(chan struct{}, 1),
	}
}

// OnError registers fn to be called after every failed write. Must be called
// before Run.
func (q *PersistQueue[T]) OnError(fn func(error)) {
	q.onError = fn
}

// Enqueue schedules snapshot to be written, replacing any snapshot that has
// not been picked up yet.
func (q *PersistQueue[T]) Enqueue(snapshot T) {
	q.mu.Lock()
	q.pending = snapshot
	q.hasPending = true
	q.enqueued++
	q.mu.Unlock()

	select {
	case q.wake <- struct{}{}:
	default:
	}
}

// Pending reports whether an enqueued snapshot is not yet written.
func (q *PersistQueue[T]) Pending() bool {
	q.mu.Lock()
	defer q.mu.Unlock()
	return q.persisted < q.enqueued
}

// Unsaved reports whether storage may be behind the newest snapshot: a write
// is pending, or the latest write failed and no later write succeeded.
func (q *PersistQueue[T]) Unsaved() bool {
	q.mu.Lock()
	defer q.mu.Unlock()
	return q.failed || q.persisted < q.enqueued
}

// Run starts the writer goroutine. Calling Run on a running queue is a no-op.
func (q *PersistQueue[T]) Run() {
	q.mu.Lock()
	defer q.mu.Unlock()
	if q.running {
		return
	}

	ctx, cancel := context.WithCancel(context.Background())
	q.cancel = cancel
	q.running = true
	q.wg.Add(1)

	go func() {
		defer q.wg.Done()
		for {
			select {
			case <-ctx.Done():
				q.drain()
				return
			case <-q.wake:
				q.drain()
			}
		}
	}()
}

// Stop writes whatever is still pending and stops the writer goroutine.
func (q *PersistQueue[T]) Stop() {
	q.mu.Lock()
	cancel := q.cancel
	q.cancel = nil
	q.running = false
	q.mu.Unlock()

	if cancel != nil {
		cancel()
	}
	q.wg.Wait()
}

// Flush blocks until every snapshot enqueued before the call has been
// written or has failed, and returns the first write error seen since the
// previous Flush returned.
// On a stopped queue the pending snapshot is written on the caller's
// goroutine.
func (q *PersistQueue[T]) Flush(ctx context.Context) error {
	q.mu.Lock()
	target := q.enqueued
	running := q.running
	q.mu.Unlock()

	if !running {
		q.drain()
	}

	for {
		q.mu.Lock()
		if q.persisted >= target {
			err := q.flushErr
			q.flushErr = nil
			q.mu.Unlock()
			return err
		}
		progress := q.progress
		q.mu.Unlock()

		select {
		case <-progress:
		case <-ctx.Done():
			return ctx.Err()
		}
	}
}

func (q *PersistQueue[T]) drain() {
	q.writeMu.Lock()
	defer q.writeMu.Unlock()

	for {
		q.mu.Lock()
		if !q.hasPending {
			q.mu.Unlock()
			return
		}
		snapshot, version := q.pending, q.enqueued
		var zero T
		q.pending, q.hasPending = zero, false
		q.mu.Unlock()

		err := q.write(snapshot)

		q.mu.Lock()
		q.persisted = version
		q.failed = err != nil
		if err != nil && q.flushErr == nil {
			q.flushErr = err
		}
		close(q.progress)
		q.progress = make(chan struct{})
		q.mu.Unlock()

		if err != nil && q.onError != nil {
			q.onError(err)
		}
	}
}

func (q *PersistQueue[T]) write(snapshot T) error {
	ctx := q.logger.WithContext(context.Background())
	if q.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, q.timeout)
		defer cancel()
	}

	if err := q.save(ctx, snapshot); err != nil {
		q.logger.Err(err).
			Str("func", "PersistQueue.write").
			Str("queue", q.name).
			Msg("failed to persist snapshot")
		return err
	}

	q.logger.Debug().
		Str("func", "PersistQueue.write").
		Str("queue", q.name).
		Msg("snapshot persisted")
	return nil
}
