package service

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"sync"
	"time"

	"github.com/MKhiriev/go-garage/internal/adapter"
	"github.com/MKhiriev/go-garage/internal/logger"
	"github.com/MKhiriev/go-garage/models"
)

// PageFetcher loads page index (1-based) of size items.
type PageFetcher[T any] func(ctx context.Context, index, size int) (models.Page[T], error)

// PagerState is what a pager shows at one moment. Page is the last page
// that loaded successfully and stays set while a newer one is loading.
type PagerState[T any] struct {
	Page           models.Page[T]
	Loading        bool
	Err            error
	RequestedIndex int
}

// HasPage reports whether a page has been loaded at least once.
func (s PagerState[T]) HasPage() bool {
	return s.Page.PageIndex > 0
}

// Pager navigates a paged collection one page at a time.
//
// The displayed page is kept while the next one loads. Only the latest
// request may replace it: starting a request cancels the one in flight, and
// a response that arrives after a newer request was issued is discarded with
// ErrPageSuperseded.
type Pager[T any] struct {
	fetch   PageFetcher[T]
	size    int
	timeout time.Duration
	logger  *logger.Logger

	mu        sync.Mutex
	page      models.Page[T]
	loading   bool
	err       error
	seq       uint64
	requested int
	cancel    context.CancelFunc
}

// NewPager creates a pager over fetch. timeout bounds every fetch; zero
// leaves it to ctx.
func NewPager[T any](fetch PageFetcher[T], size int, timeout time.Duration, logger *logger.Logger) *Pager[T] {
	return &Pager[T]{
		fetch:   fetch,
		size:    size,
		timeout: timeout,
		logger:  logger,
	}
}

// Load fetches page index and makes it the displayed page.
func (p *Pager[T]) Load(ctx context.Context, index int) (models.Page[T], error) {
	if index < 1 {
		index = 1
	}

	p.mu.Lock()
	p.seq++
	seq := p.seq
	if p.cancel != nil {
		p.cancel()
	}
	reqCtx, cancel := context.WithCancel(ctx)
	p.cancel = cancel
	p.loading = true
	p.err = nil
	p.requested = index
	p.mu.Unlock()

	page, err := p.fetchPage(reqCtx, index)

	p.mu.Lock()
	defer p.mu.Unlock()

	if seq != p.seq {
		cancel()
		return models.Page[T]{}, fmt.Errorf("%w: page %d", ErrPageSuperseded, index)
	}

	p.loading = false
	p.cancel = nil
	cancel()

	if err != nil {
		p.err = err
		p.logger.Err(err).
			Str("func", "Pager.Load").
			Int("page", index).
			Msg("failed to load page")
		return models.Page[T]{}, err
	}

	p.page = page
	return page, nil
}

// Next loads the page after the latest requested one. It refuses to go past
// the last page known from the displayed page.
func (p *Pager[T]) Next(ctx context.Context) (models.Page[T], error) {
	p.mu.Lock()
	current := p.current()
	total := p.page.TotalPages
	p.mu.Unlock()

	if current >= total {
		return models.Page[T]{}, ErrNoNextPage
	}
	return p.Load(ctx, current+1)
}

// Previous loads the page before the latest requested one.
func (p *Pager[T]) Previous(ctx context.Context) (models.Page[T], error) {
	p.mu.Lock()
	current := p.current()
	p.mu.Unlock()

	if current <= 1 {
		return models.Page[T]{}, ErrNoPreviousPage
	}
	return p.Load(ctx, current-1)
}

// Refresh reloads the latest requested page, or the first one.
func (p *Pager[T]) Refresh(ctx context.Context) (models.Page[T], error) {
	p.mu.Lock()
	current := max(p.current(), 1)
	p.mu.Unlock()

	return p.Load(ctx, current)
}

// Snapshot returns the current state.
func (p *Pager[T]) Snapshot() PagerState[T] {
	p.mu.Lock()
	defer p.mu.Unlock()

	return PagerState[T]{
		Page:           p.page,
		Loading:        p.loading,
		Err:            p.err,
		RequestedIndex: p.requested,
	}
}

// current is the page navigation is relative to. Callers hold mu.
func (p *Pager[T]) current() int {
	if p.loading {
		return p.requested
	}
	return p.page.PageIndex
}

func (p *Pager[T]) fetchPage(ctx context.Context, index int) (models.Page[T], error) {
	if p.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, p.timeout)
		defer cancel()
	}

	page, err := p.fetch(ctx, index, p.size)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) && !errors.Is(err, adapter.ErrNetwork) {
			err = fmt.Errorf("%w: %w", adapter.ErrNetwork, err)
		}
		return models.Page[T]{}, err
	}
	return page, nil
}

// InfiniteLoader accumulates pages one after another, the way a scrolling
// list does.
type InfiniteLoader[T any] struct {
	fetch   PageFetcher[T]
	size    int
	timeout time.Duration
	logger  *logger.Logger

	mu         sync.Mutex
	items      []T
	next       int
	done       bool
	loading    bool
	generation uint64
}

// NewInfiniteLoader creates a loader positioned before the first page.
func NewInfiniteLoader[T any](fetch PageFetcher[T], size int, timeout time.Duration, logger *logger.Logger) *InfiniteLoader[T] {
	return &InfiniteLoader[T]{
		fetch:   fetch,
		size:    size,
		timeout: timeout,
		logger:  logger,
		next:    1,
	}
}

// FetchNext loads the next page and returns its items. Only one fetch runs
// at a time; a concurrent call gets ErrFetchInProgress.
func (l *InfiniteLoader[T]) FetchNext(ctx context.Context) ([]T, error) {
	l.mu.Lock()
	if l.done {
		l.mu.Unlock()
		return nil, ErrNoNextPage
	}
	if l.loading {
		l.mu.Unlock()
		return nil, ErrFetchInProgress
	}
	l.loading = true
	index, generation := l.next, l.generation
	l.mu.Unlock()

	if l.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, l.timeout)
		defer cancel()
	}
	page, err := l.fetch(ctx, index, l.size)

	l.mu.Lock()
	defer l.mu.Unlock()

	if generation != l.generation {
		return nil, fmt.Errorf("%w: page %d", ErrPageSuperseded, index)
	}
	l.loading = false

	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) && !errors.Is(err, adapter.ErrNetwork) {
			err = fmt.Errorf("%w: %w", adapter.ErrNetwork, err)
		}
		l.logger.Err(err).
			Str("func", "InfiniteLoader.FetchNext").
			Int("page", index).
			Msg("failed to load page")
		return nil, err
	}

	l.items = append(l.items, page.Items...)
	l.next = index + 1
	l.done = !page.HasNext()
	return slices.Clone(page.Items), nil
}

// HasNext reports whether another page may exist.
func (l *InfiniteLoader[T]) HasNext() bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return !l.done
}

// Items returns everything loaded so far, in page order.
func (l *InfiniteLoader[T]) Items() []T {
	l.mu.Lock()
	defer l.mu.Unlock()
	return slices.Clone(l.items)
}

// Reset forgets the loaded pages. A fetch still in flight is discarded.
func (l *InfiniteLoader[T]) Reset() {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.items = nil
	l.next = 1
	l.done = false
	l.loading = false
	l.generation++
}
