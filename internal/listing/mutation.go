package listing

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/barbox/barbox-admin/internal/resource"
	"github.com/barbox/barbox-admin/internal/shared"
)

// Intent names the kind of change a mutation makes.
type Intent int

const (
	IntentCreate Intent = iota + 1
	IntentUpdate
	IntentSetStatus
	IntentDelete
	IntentAction
)

func (i Intent) String() string {
	switch i {
	case IntentCreate:
		return "create"
	case IntentUpdate:
		return "update"
	case IntentSetStatus:
		return "set_status"
	case IntentDelete:
		return "delete"
	case IntentAction:
		return "action"
	default:
		return "unknown"
	}
}

// Mutation describes one change issued from a list.
type Mutation struct {
	Intent Intent
	ID     resource.ID
	// Fields is the payload of create and update, or the optional body of
	// delete and action.
	Fields any
	// Status is the target value of IntentSetStatus, and With the fields
	// sent along with it.
	Status any
	With   map[string]any
	// Method and Action address a domain action, e.g. PUT .../aprobar.
	Method string
	Action string
	// Success overrides the default confirmation text.
	Success string
}

func (m Mutation) successText() string {
	if m.Success != "" {
		return m.Success
	}
	switch m.Intent {
	case IntentCreate:
		return "Registro creado exitosamente"
	case IntentUpdate:
		return "Registro actualizado exitosamente"
	case IntentSetStatus:
		return "Estado actualizado exitosamente"
	case IntentDelete:
		return "Registro eliminado exitosamente"
	default:
		return "Operación realizada exitosamente"
	}
}

// Mutate sends one change and, on success, reloads the list. Only one
// mutation runs at a time per entity; a second one is rejected with
// ErrMutationPending without touching the backend. Every outcome produces a
// notice, except a 401 which is handled by the login redirect.
func (c *Controller[T]) Mutate(ctx context.Context, m Mutation) error {
	if !c.registry.acquire(c.schema.Entity) {
		c.metrics.ObserveMutation(c.schema.Entity, m.Intent.String(), "rejected")
		c.logger.Info("mutation rejected while another is pending", slog.String("intent", m.Intent.String()))
		return ErrMutationPending
	}
	defer c.registry.release(c.schema.Entity)

	if err := c.execute(ctx, m); err != nil {
		c.metrics.ObserveMutation(c.schema.Entity, m.Intent.String(), "error")
		c.fail(err)
		return fmt.Errorf("%s %s: %w", c.schema.Entity, m.Intent, err)
	}
	c.metrics.ObserveMutation(c.schema.Entity, m.Intent.String(), "ok")
	c.notifier.Notify(shared.Notice{Kind: shared.NoticeSuccess, Entity: c.schema.Entity, Message: m.successText()})

	// Refresh before the pending mark is cleared.
	if err := c.load(ctx, true); err != nil {
		if !errors.Is(err, ErrAbandoned) {
			c.fail(err)
		}
		return fmt.Errorf("%w: after %s: %w", ErrRefreshFailed, m.Intent, err)
	}
	return nil
}

func (c *Controller[T]) execute(ctx context.Context, m Mutation) error {
	var err error
	switch m.Intent {
	case IntentCreate:
		_, err = c.gateway.Create(ctx, m.Fields)
	case IntentUpdate:
		_, err = c.gateway.Update(ctx, m.ID, m.Fields)
	case IntentSetStatus:
		_, err = c.gateway.SetStatus(ctx, m.ID, m.Status, m.With)
	case IntentDelete:
		err = c.gateway.Delete(ctx, m.ID, m.Fields)
	case IntentAction:
		method := m.Method
		if method == "" {
			method = http.MethodPut
		}
		_, err = c.gateway.Action(ctx, method, m.ID, m.Action, m.Fields)
	default:
		err = fmt.Errorf("unknown intent %d", m.Intent)
	}
	return err
}

func (c *Controller[T]) fail(err error) {
	msg := shared.UserMessage(err)
	if msg == "" {
		return
	}
	c.logger.Warn("mutation failed", slog.Any("error", err))
	c.notifier.Notify(shared.Notice{Kind: shared.NoticeError, Entity: c.schema.Entity, Message: msg})
}

// DeletePrompt is the confirmation text for removing a record.
const DeletePrompt = "¿Está seguro de eliminar este registro?"

// TogglePrompt is the confirmation text for flipping rec's status.
func (c *Controller[T]) TogglePrompt(rec T) (string, error) {
	status := c.schema.Status
	if status == nil {
		return "", fmt.Errorf("%s: %w", c.schema.Entity, resource.ErrNoStatus)
	}
	return fmt.Sprintf("¿Está seguro de cambiar el estado a %s?", status.Label(status.Next(rec))), nil
}

// ToggleStatus asks for confirmation and flips rec's status. It reports
// whether the change was confirmed.
func (c *Controller[T]) ToggleStatus(ctx context.Context, rec T, confirm shared.Confirmer) (bool, error) {
	prompt, err := c.TogglePrompt(rec)
	if err != nil {
		return false, err
	}
	next := c.schema.Status.Next(rec)
	return c.ConfirmAction(ctx, confirm, prompt, Mutation{
		Intent: IntentSetStatus,
		ID:     c.schema.IDOf(rec),
		Status: next,
		With:   c.schema.Status.Companions(rec),
	})
}

// ConfirmDelete asks for confirmation and removes rec.
func (c *Controller[T]) ConfirmDelete(ctx context.Context, rec T, confirm shared.Confirmer) (bool, error) {
	prompt := c.schema.DeletePrompt
	if prompt == "" {
		prompt = DeletePrompt
	}
	return c.ConfirmAction(ctx, confirm, prompt, Mutation{Intent: IntentDelete, ID: c.schema.IDOf(rec)})
}

// ConfirmAction runs m only when the user approves prompt. A declined
// prompt issues no request.
func (c *Controller[T]) ConfirmAction(ctx context.Context, confirm shared.Confirmer, prompt string, m Mutation) (bool, error) {
	if confirm == nil {
		confirm = shared.AlwaysConfirm
	}
	ok, err := confirm.Confirm(ctx, prompt)
	if err != nil {
		return false, fmt.Errorf("confirm: %w", err)
	}
	if !ok {
		c.logger.Debug("change declined", slog.String("intent", m.Intent.String()))
		return false, nil
	}
	return true, c.Mutate(ctx, m)
}
