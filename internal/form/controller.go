// Package form holds the draft of a create or edit form and submits it
// through the entity's list controller.
package form

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"

	"github.com/barbox/barbox-admin/internal/listing"
	"github.com/barbox/barbox-admin/internal/resource"
	"github.com/barbox/barbox-admin/internal/shared"
)

// ErrSubmitInFlight rejects a submit while the previous one is running.
var ErrSubmitInFlight = errors.New("form: submit already in progress")

// Mutator sends a change and refreshes the list it belongs to.
type Mutator interface {
	Mutate(ctx context.Context, m listing.Mutation) error
}

// Options carries optional collaborators.
type Options struct {
	Logger   *slog.Logger
	Notifier shared.Notifier
}

// Controller owns one form's draft. An unbound draft creates a record; a
// draft bound to an identifier updates it.
type Controller[T any] struct {
	schema   resource.Schema[T]
	list     Mutator
	validate *validator.Validate
	logger   *slog.Logger
	notifier shared.Notifier

	mu         sync.Mutex
	draft      T
	id         resource.ID
	submitting bool
}

// NewController constructs a form controller with a blank draft.
func NewController[T any](schema resource.Schema[T], list Mutator, opts Options) *Controller[T] {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	notifier := opts.Notifier
	if notifier == nil {
		notifier = shared.LogNotifier{Logger: logger}
	}
	return &Controller[T]{
		schema:   schema,
		list:     list,
		validate: newValidator(),
		logger:   logger.With(slog.String("entity", schema.Entity)),
		notifier: notifier,
		draft:    schema.Blank(),
	}
}

// StartCreate resets the draft to the entity defaults and unbinds it.
func (c *Controller[T]) StartCreate() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.draft = c.schema.Blank()
	c.id = resource.ID{}
}

// StartEdit copies rec into the draft and binds its identifier.
func (c *Controller[T]) StartEdit(rec T) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.draft = rec
	c.id = c.schema.IDOf(rec)
}

// Edit applies fn to the draft.
func (c *Controller[T]) Edit(fn func(*T)) {
	c.mu.Lock()
	defer c.mu.Unlock()
	fn(&c.draft)
}

// Draft returns a copy of the current draft.
func (c *Controller[T]) Draft() T {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.draft
}

// Editing reports whether the draft is bound to an existing record.
func (c *Controller[T]) Editing() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return !c.id.IsZero()
}

// BoundID returns the identifier of the record being edited.
func (c *Controller[T]) BoundID() resource.ID {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.id
}

// Submitting reports whether a submit is running.
func (c *Controller[T]) Submitting() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.submitting
}

// Validate runs the presence checks on the normalized draft.
func (c *Controller[T]) Validate() error {
	draft := c.Draft()
	c.normalize(&draft)
	verr, err := check(c.validate, draft)
	if err != nil {
		return err
	}
	if verr != nil {
		return verr
	}
	return nil
}

// Submit normalizes and validates the draft, then creates or updates the
// record. On success the form returns to a blank create draft; on failure
// the draft is kept for correction.
func (c *Controller[T]) Submit(ctx context.Context) error {
	c.mu.Lock()
	if c.submitting {
		c.mu.Unlock()
		return ErrSubmitInFlight
	}
	c.submitting = true
	c.normalize(&c.draft)
	draft, id := c.draft, c.id
	c.mu.Unlock()
	defer func() {
		c.mu.Lock()
		c.submitting = false
		c.mu.Unlock()
	}()

	verr, err := check(c.validate, draft)
	if err != nil {
		return err
	}
	if verr != nil {
		c.notifier.Notify(shared.Notice{Kind: shared.NoticeError, Entity: c.schema.Entity, Message: verr.UserMessage()})
		return verr
	}

	m := listing.Mutation{Intent: listing.IntentCreate, Fields: draft}
	if !id.IsZero() {
		payload, err := c.updatePayload(draft)
		if err != nil {
			return err
		}
		m = listing.Mutation{Intent: listing.IntentUpdate, ID: id, Fields: payload}
	}

	err = c.list.Mutate(ctx, m)
	if err != nil && !errors.Is(err, listing.ErrRefreshFailed) {
		c.logger.Debug("submit failed, keeping draft", slog.Any("error", err))
		return err
	}
	c.StartCreate()
	return err
}

func (c *Controller[T]) normalize(draft *T) {
	if c.schema.Normalize != nil {
		c.schema.Normalize(draft)
	}
}

// updatePayload drops blank sensitive fields so an edit never overwrites
// them with an empty value.
func (c *Controller[T]) updatePayload(draft T) (any, error) {
	if len(c.schema.Sensitive) == 0 {
		return draft, nil
	}
	raw, err := json.Marshal(draft)
	if err != nil {
		return nil, fmt.Errorf("form: encode draft: %w", err)
	}
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()
	fields := map[string]any{}
	if err := dec.Decode(&fields); err != nil {
		return nil, fmt.Errorf("form: encode draft: %w", err)
	}
	for _, name := range c.schema.Sensitive {
		value, ok := fields[name]
		if !ok {
			continue
		}
		if s, isString := value.(string); value == nil || (isString && strings.TrimSpace(s) == "") {
			delete(fields, name)
		}
	}
	return fields, nil
}
