// Package listing keeps the loaded collection of one entity, filters it
// locally and serializes the mutations issued from the list view.
package listing

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/barbox/barbox-admin/internal/observability"
	"github.com/barbox/barbox-admin/internal/resource"
	"github.com/barbox/barbox-admin/internal/shared"
)

var (
	// ErrMutationPending rejects a mutation while another one on the same
	// list has not finished.
	ErrMutationPending = errors.New("listing: another change is still in progress")
	// ErrAbandoned is returned to callers whose load outlived the view.
	ErrAbandoned = errors.New("listing: view abandoned")
	// ErrRefreshFailed marks a change that was accepted by the backend but
	// whose follow-up reload failed.
	ErrRefreshFailed = errors.New("listing: reload after change failed")
)

// State is the load state of a list.
type State int

const (
	StateIdle State = iota
	StateLoading
	StateReady
	StateFailed
)

func (s State) String() string {
	switch s {
	case StateLoading:
		return "loading"
	case StateReady:
		return "ready"
	case StateFailed:
		return "failed"
	default:
		return "idle"
	}
}

// Gateway is the subset of resource.Gateway the controller drives.
type Gateway[T any] interface {
	Schema() resource.Schema[T]
	List(ctx context.Context, params map[string]string) ([]T, error)
	Create(ctx context.Context, fields any) (T, error)
	Update(ctx context.Context, id resource.ID, fields any) (T, error)
	SetStatus(ctx context.Context, id resource.ID, value any, with map[string]any) (T, error)
	Delete(ctx context.Context, id resource.ID, body any) error
	Action(ctx context.Context, method string, id resource.ID, action string, body any) (T, error)
}

// Options carries optional collaborators.
type Options struct {
	Logger   *slog.Logger
	Notifier shared.Notifier
	Metrics  *observability.Metrics
	// Params are sent with every list request.
	Params map[string]string
	// Registry shares loads and the change marker with other controllers
	// of the same entity. Nil gives the controller its own.
	Registry *Registry
}

// Controller owns the snapshot of one entity's list view.
type Controller[T any] struct {
	gateway  Gateway[T]
	schema   resource.Schema[T]
	filters  []Filter[T]
	params   map[string]string
	logger   *slog.Logger
	notifier shared.Notifier
	metrics  *observability.Metrics

	registry *Registry
	key      string

	mu         sync.Mutex
	snapshot   []T
	state      State
	err        error
	generation uint64
	loadSeq    uint64
	appliedSeq uint64
	life       context.Context
	cancel     context.CancelFunc
}

// NewController constructs a list controller for the gateway's entity.
func NewController[T any](gateway Gateway[T], filters []Filter[T], opts Options) *Controller[T] {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	notifier := opts.Notifier
	if notifier == nil {
		notifier = shared.LogNotifier{Logger: logger}
	}
	registry := opts.Registry
	if registry == nil {
		registry = NewRegistry()
	}
	schema := gateway.Schema()
	life, cancel := context.WithCancel(context.Background())
	return &Controller[T]{
		gateway:  gateway,
		schema:   schema,
		filters:  filters,
		params:   opts.Params,
		registry: registry,
		key:      loadKey(schema.Entity, opts.Params),
		logger:   logger.With(slog.String("entity", schema.Entity)),
		notifier: notifier,
		metrics:  opts.Metrics,
		life:     life,
		cancel:   cancel,
	}
}

// Schema returns the entity schema.
func (c *Controller[T]) Schema() resource.Schema[T] {
	return c.schema
}

// Filters returns the entity's filter set.
func (c *Controller[T]) Filters() []Filter[T] {
	return c.filters
}

// Load fetches the collection. Concurrent loads share one request. On
// failure the previous snapshot is kept and the error is recorded.
func (c *Controller[T]) Load(ctx context.Context) error {
	return c.load(ctx, false)
}

func (c *Controller[T]) load(ctx context.Context, fresh bool) error {
	c.mu.Lock()
	c.loadSeq++
	seq, gen, life := c.loadSeq, c.generation, c.life
	c.state = StateLoading
	c.mu.Unlock()

	if fresh {
		c.registry.loads.Forget(c.key)
	}
	ch := c.registry.loads.DoChan(c.key, func() (any, error) {
		return c.gateway.List(life, c.params)
	})
	// The result is applied even when the caller stops waiting.
	done := make(chan error, 1)
	go func() {
		res := <-ch
		records, ok := res.Val.([]T)
		err := res.Err
		if err == nil && !ok && res.Val != nil {
			err = fmt.Errorf("shared load returned %T", res.Val)
		}
		done <- c.apply(seq, gen, records, err)
	}()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case err := <-done:
		if err != nil {
			return fmt.Errorf("load %s: %w", c.schema.Entity, err)
		}
		return nil
	}
}

func (c *Controller[T]) apply(seq, gen uint64, records []T, err error) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if gen != c.generation {
		c.logger.Debug("discarding load for abandoned view")
		return ErrAbandoned
	}
	if seq < c.appliedSeq {
		c.logger.Debug("discarding stale load", slog.Uint64("seq", seq), slog.Uint64("applied", c.appliedSeq))
		return err
	}
	c.appliedSeq = seq
	if err != nil {
		c.state = StateFailed
		c.err = err
		c.logger.Warn("list load failed", slog.Any("error", err))
		return err
	}
	if records == nil {
		records = []T{}
	}
	c.snapshot = records
	c.state = StateReady
	c.err = nil
	return nil
}

// State reports the load state.
func (c *Controller[T]) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// Err returns the last load failure, or nil.
func (c *Controller[T]) Err() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.err
}

// Pending reports whether a mutation on the entity is in flight.
func (c *Controller[T]) Pending() bool {
	return c.registry.Pending(c.schema.Entity)
}

// Snapshot returns a copy of the last loaded collection.
func (c *Controller[T]) Snapshot() []T {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]T(nil), c.snapshot...)
}

// ApplyFilters returns the snapshot records matching criteria.
func (c *Controller[T]) ApplyFilters(criteria Criteria) []T {
	return Apply(c.Snapshot(), c.filters, criteria)
}

// Find returns the snapshot record with the given identifier.
func (c *Controller[T]) Find(id resource.ID) (T, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, rec := range c.snapshot {
		if c.schema.IDOf(rec).Equal(id) {
			return rec, true
		}
	}
	var zero T
	return zero, false
}

// Abandon discards the view: in-flight loads are cancelled and their results
// ignored, and the snapshot is cleared. The controller can be loaded again.
func (c *Controller[T]) Abandon() {
	c.mu.Lock()
	c.generation++
	c.cancel()
	c.life, c.cancel = context.WithCancel(context.Background())
	c.snapshot = nil
	c.state = StateIdle
	c.err = nil
	c.mu.Unlock()
	c.registry.loads.Forget(c.key)
}
