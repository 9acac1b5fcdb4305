// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/MKhiriev/go-garage/internal/adapter"
	"github.com/MKhiriev/go-garage/internal/logger"
	"github.com/MKhiriev/go-garage/models"
	"golang.org/x/sync/singleflight"
)

const (
	carsQueryPrefix = "cars:"
	carQueryPrefix  = "car:"
)

type cachedQuery struct {
	value     any
	fetchedAt time.Time
}

// RemoteGarage is the [GarageService] backed by the garage server.
//
// Reads go through a small query cache: identical concurrent queries share
// one request, and a cached answer is reused until it is older than
// staleAfter or a mutation invalidates it. A shared request is not tied to
// any one caller: a caller that gives up leaves it running for the others.
// Mutations are sent once and never retried.
type RemoteGarage struct {
	adapter      adapter.GarageAdapter
	staleAfter   time.Duration
	fetchTimeout time.Duration
	logger       *logger.Logger
	now          func() time.Time

	group singleflight.Group

	mu       sync.Mutex
	queries  map[string]cachedQuery
	inflight map[string]int
	// generation grows on every invalidation; answers fetched in an older
	// generation are not cached.
	generation uint64
}

// NewRemoteGarage wraps garageAdapter. A zero staleAfter disables caching
// but keeps request sharing. fetchTimeout bounds a shared request; zero
// leaves it to the adapter.
func NewRemoteGarage(garageAdapter adapter.GarageAdapter, staleAfter, fetchTimeout time.Duration, logger *logger.Logger) *RemoteGarage {
	return &RemoteGarage{
		adapter:      garageAdapter,
		staleAfter:   staleAfter,
		fetchTimeout: fetchTimeout,
		logger:       logger,
		now:          time.Now,
		queries:      make(map[string]cachedQuery),
		inflight:     make(map[string]int),
	}
}

func (g *RemoteGarage) ListCars(ctx context.Context, pageIndex, pageSize int) (models.Page[models.Car], error) {
	key := fmt.Sprintf("%s%d:%d", carsQueryPrefix, pageIndex, pageSize)
	return query(ctx, g, key, func(ctx context.Context) (models.Page[models.Car], error) {
		return g.adapter.ListCars(ctx, pageIndex, pageSize)
	})
}

func (g *RemoteGarage) CarWithActions(ctx context.Context, id models.ID) (models.CarWithActions, error) {
	return query(ctx, g, carQueryPrefix+id.String(), func(ctx context.Context) (models.CarWithActions, error) {
		return g.adapter.GetCar(ctx, id)
	})
}

func (g *RemoteGarage) AddCar(ctx context.Context, car models.Car) (models.Car, error) {
	created, err := g.adapter.CreateCar(ctx, car)
	if err != nil {
		return models.Car{}, g.fail("RemoteGarage.AddCar", err)
	}

	g.invalidate(carsQueryPrefix)
	return created, nil
}

func (g *RemoteGarage) UploadCarImage(ctx context.Context, id models.ID, image models.Image) (models.Car, error) {
	updated, err := g.adapter.UploadCarImage(ctx, id, image)
	if err != nil {
		return models.Car{}, g.fail("RemoteGarage.UploadCarImage", err)
	}

	g.invalidate(carsQueryPrefix, carQueryPrefix+id.String())
	return updated, nil
}

func (g *RemoteGarage) RemoveCar(_ context.Context, _ models.ID) error {
	return fmt.Errorf("%w: remove car", ErrUnsupported)
}

func (g *RemoteGarage) AddAction(ctx context.Context, carID models.ID, action models.Action) (models.Action, error) {
	created, err := g.adapter.CreateAction(ctx, carID, action)
	if err != nil {
		err = g.fail("RemoteGarage.AddAction", err)
		if isNotFound(err) {
			return models.Action{}, fmt.Errorf("%w: %w", ErrCarNotFound, err)
		}
		return models.Action{}, err
	}

	g.invalidate(carQueryPrefix + carID.String())
	return created, nil
}

func (g *RemoteGarage) UpdateAction(ctx context.Context, id models.ID, patch models.ActionPatch) (models.Action, error) {
	updated, err := g.adapter.UpdateAction(ctx, id, patch)
	if err != nil {
		return models.Action{}, g.fail("RemoteGarage.UpdateAction", err)
	}

	// the action may have moved to another car
	g.invalidate(carQueryPrefix)
	return updated, nil
}

func (g *RemoteGarage) RemoveAction(ctx context.Context, id models.ID) error {
	if err := g.adapter.DeleteAction(ctx, id); err != nil {
		return g.fail("RemoteGarage.RemoveAction", err)
	}

	g.invalidate(carQueryPrefix)
	return nil
}

func (g *RemoteGarage) GetAction(ctx context.Context, id models.ID) (models.Action, error) {
	action, err := g.adapter.GetAction(ctx, id)
	if err != nil {
		return models.Action{}, g.fail("RemoteGarage.GetAction", err)
	}
	return action, nil
}

// invalidate drops cached answers whose key starts with one of prefixes.
// Requests of those keys still in flight are forgotten, so later callers
// start a fresh one instead of joining a request that predates the change.
func (g *RemoteGarage) invalidate(prefixes ...string) {
	g.mu.Lock()
	defer g.mu.Unlock()

	g.generation++
	for key := range g.queries {
		if hasAnyPrefix(key, prefixes) {
			delete(g.queries, key)
		}
	}
	for key := range g.inflight {
		if hasAnyPrefix(key, prefixes) {
			g.group.Forget(key)
		}
	}
}

func hasAnyPrefix(key string, prefixes []string) bool {
	for _, prefix := range prefixes {
		if strings.HasPrefix(key, prefix) {
			return true
		}
	}
	return false
}

// begin marks key as in flight and returns the current generation.
func (g *RemoteGarage) begin(key string) uint64 {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.inflight[key]++
	return g.generation
}

func (g *RemoteGarage) end(key string) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.inflight[key]--; g.inflight[key] <= 0 {
		delete(g.inflight, key)
	}
}

func (g *RemoteGarage) cached(key string) (any, bool) {
	if g.staleAfter <= 0 {
		return nil, false
	}

	g.mu.Lock()
	defer g.mu.Unlock()

	entry, ok := g.queries[key]
	if !ok || g.now().Sub(entry.fetchedAt) > g.staleAfter {
		return nil, false
	}
	return entry.value, true
}

func (g *RemoteGarage) store(key string, value any, generation uint64) {
	if g.staleAfter <= 0 {
		return
	}

	g.mu.Lock()
	defer g.mu.Unlock()
	if generation != g.generation {
		return
	}
	g.queries[key] = cachedQuery{value: value, fetchedAt: g.now()}
}

func (g *RemoteGarage) fail(fn string, err error) error {
	mapped := mapAdapterError(err)
	g.logger.Err(mapped).Str("func", fn).Msg("garage server request failed")
	return mapped
}

// query answers key from the cache or runs fetch, sharing one in-flight
// request between concurrent callers of the same key. The request keeps the
// values of the caller that started it but not its cancellation; every
// caller stops waiting when its own ctx is done.
func query[T any](ctx context.Context, g *RemoteGarage, key string, fetch func(context.Context) (T, error)) (T, error) {
	if value, ok := g.cached(key); ok {
		return value.(T), nil
	}

	ch := g.group.DoChan(key, func() (any, error) {
		generation := g.begin(key)
		defer g.end(key)

		fetchCtx := context.WithoutCancel(ctx)
		if g.fetchTimeout > 0 {
			var cancel context.CancelFunc
			fetchCtx, cancel = context.WithTimeout(fetchCtx, g.fetchTimeout)
			defer cancel()
		}

		value, err := fetch(fetchCtx)
		if err != nil {
			return nil, err
		}
		g.store(key, value, generation)
		return value, nil
	})

	var zero T
	select {
	case res := <-ch:
		if res.Err != nil {
			return zero, g.fail("RemoteGarage.query", res.Err)
		}
		return res.Val.(T), nil
	case <-ctx.Done():
		return zero, g.fail("RemoteGarage.query", ctx.Err())
	}
}

func isNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}
