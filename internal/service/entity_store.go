package service

import (
	"context"
	"fmt"
	"slices"
	"sync"
	"time"

	"github.com/MKhiriev/go-garage/internal/logger"
	"github.com/MKhiriev/go-garage/internal/utils"
	"github.com/MKhiriev/go-garage/internal/workers"
	"github.com/MKhiriev/go-garage/models"
)

// StoreState is the lifecycle stage of an entity store.
type StoreState int32

const (
	StateUninitialized StoreState = iota
	StateLoading
	StateReady
)

func (s StoreState) String() string {
	switch s {
	case StateUninitialized:
		return "uninitialized"
	case StateLoading:
		return "loading"
	case StateReady:
		return "ready"
	default:
		return fmt.Sprintf("StoreState(%d)", int32(s))
	}
}

// checkFunc validates a candidate entity before it replaces old. For adds
// old is the zero value.
type checkFunc[T any] func(ctx context.Context, old, candidate T) error

// entityStore keeps one collection in memory and mirrors every change to
// the device storage in the background.
//
// Mutations are applied under mu and their snapshot is enqueued before mu is
// released, so the persist queue always sees snapshots in mutation order.
type entityStore[T models.Entity[T]] struct {
	name   string
	key    string
	coll   Collection[T]
	ids    utils.IDGenerator
	check  checkFunc[T]
	queue  *workers.PersistQueue[[]T]
	logger *logger.Logger

	mu        sync.Mutex
	items     []T
	state     StoreState
	mutations uint64
}

func newEntityStore[T models.Entity[T]](
	name, key string,
	coll Collection[T],
	ids utils.IDGenerator,
	check checkFunc[T],
	persistTimeout time.Duration,
	log *logger.Logger,
) *entityStore[T] {
	s := &entityStore[T]{
		name:   name,
		key:    key,
		coll:   coll,
		ids:    ids,
		check:  check,
		logger: log,
		items:  []T{},
	}
	s.queue = workers.NewPersistQueue(name, func(ctx context.Context, snapshot []T) error {
		return coll.Save(ctx, key, snapshot)
	}, persistTimeout, log)

	return s
}

// Run starts the background writer.
func (s *entityStore[T]) Run() {
	s.queue.Run()
}

// Stop writes what is still pending and stops the background writer.
func (s *entityStore[T]) Stop() {
	s.queue.Stop()
}

// OnPersistError registers fn to receive every background write failure.
// Must be called before Run.
func (s *entityStore[T]) OnPersistError(fn func(error)) {
	s.queue.OnError(fn)
}

// State returns the current lifecycle stage.
func (s *entityStore[T]) State() StoreState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Load replaces the in-memory collection with the persisted one. If the
// collection changed after the read started, or storage has not caught up
// with memory (a write is pending or the latest one failed), memory is kept.
func (s *entityStore[T]) Load(ctx context.Context) error {
	s.mu.Lock()
	started := s.mutations
	prev := s.state
	if s.state == StateUninitialized {
		s.state = StateLoading
	}
	s.mu.Unlock()

	items, err := s.coll.Load(ctx, s.key)
	if err != nil {
		s.logger.Err(err).
			Str("func", "entityStore.Load").
			Str("store", s.name).
			Msg("failed to load collection")

		s.mu.Lock()
		if s.state == StateLoading {
			s.state = prev
		}
		s.mu.Unlock()
		return fmt.Errorf("load %s: %w", s.name, err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.mutations != started || s.queue.Unsaved() {
		s.logger.Warn().
			Str("func", "entityStore.Load").
			Str("store", s.name).
			Msg("in-memory collection is newer than storage, load superseded")
		s.state = StateReady
		return nil
	}

	s.items = items
	s.state = StateReady
	s.logger.Debug().
		Str("func", "entityStore.Load").
		Str("store", s.name).
		Int("items", len(items)).
		Msg("collection loaded")
	return nil
}

// Add assigns a fresh identifier to draft, appends it and schedules a
// write. Any identifier already set on draft is replaced.
func (s *entityStore[T]) Add(ctx context.Context, draft T) (T, error) {
	var zero T
	if err := s.check(ctx, zero, draft); err != nil {
		return zero, err
	}

	entity := draft.WithID(models.ID(s.ids.Generate()))

	s.mu.Lock()
	defer s.mu.Unlock()

	s.items = append(s.items, entity)
	s.commit()

	return entity, nil
}

// update applies mutate to the entity with id. Nothing changes if the
// entity is missing, mutate fails, or the result does not pass the check.
func (s *entityStore[T]) update(ctx context.Context, id models.ID, mutate func(T) T) (T, error) {
	var zero T

	s.mu.Lock()
	defer s.mu.Unlock()

	idx := s.indexOf(id)
	if idx < 0 {
		return zero, fmt.Errorf("%w: %s %q", ErrNotFound, s.name, id)
	}

	old := s.items[idx]
	updated := mutate(old).WithID(id)
	if err := s.check(ctx, old, updated); err != nil {
		return zero, err
	}

	s.items = slices.Clone(s.items)
	s.items[idx] = updated
	s.commit()

	return updated, nil
}

// Remove drops the entity with id. Removing a missing entity does nothing.
func (s *entityStore[T]) Remove(_ context.Context, id models.ID) error {
	s.removeWhere(func(item T) bool { return item.EntityID() == id })
	return nil
}

func (s *entityStore[T]) removeWhere(match func(T) bool) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	kept := make([]T, 0, len(s.items))
	for _, item := range s.items {
		if !match(item) {
			kept = append(kept, item)
		}
	}

	removed := len(s.items) - len(kept)
	if removed == 0 {
		return 0
	}

	s.items = kept
	s.commit()
	return removed
}

// GetAll returns a copy of the collection in insertion order.
func (s *entityStore[T]) GetAll() []T {
	s.mu.Lock()
	defer s.mu.Unlock()
	return slices.Clone(s.items)
}

// GetByID reports the entity with id, if present.
func (s *entityStore[T]) GetByID(id models.ID) (T, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if idx := s.indexOf(id); idx >= 0 {
		return s.items[idx], true
	}
	var zero T
	return zero, false
}

// Flush waits until every change made so far is written and returns the
// first write error since the previous Flush.
func (s *entityStore[T]) Flush(ctx context.Context) error {
	if err := s.queue.Flush(ctx); err != nil {
		return fmt.Errorf("flush %s: %w", s.name, err)
	}
	return nil
}

func (s *entityStore[T]) indexOf(id models.ID) int {
	return slices.IndexFunc(s.items, func(item T) bool { return item.EntityID() == id })
}

// commit records a mutation and hands the snapshot to the writer. Callers
// hold mu.
func (s *entityStore[T]) commit() {
	s.mutations++
	// s.items is replaced, never written in place, once shared
	s.queue.Enqueue(s.items)
}
