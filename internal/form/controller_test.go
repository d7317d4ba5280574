package form

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/barbox/barbox-admin/internal/listing"
	"github.com/barbox/barbox-admin/internal/resource"
	"github.com/barbox/barbox-admin/internal/shared"
)

type account struct {
	ID       int64  `json:"id_usuario,omitempty"`
	Name     string `json:"nombre" validate:"required"`
	City     string `json:"id_ciudad" validate:"required"`
	Password string `json:"password"`
	Status   string `json:"estado"`
}

var accountSchema = resource.Schema[account]{
	Entity:    "usuarios",
	Path:      "usuarios",
	IDKind:    resource.NumericKind,
	IDOf:      func(a account) resource.ID { return resource.NumericID(a.ID) },
	New:       func() account { return account{Status: "ACT"} },
	Normalize: func(a *account) { a.City = strings.ToUpper(strings.TrimSpace(a.City)) },
	Sensitive: []string{"password"},
}

type recordingMutator struct {
	mu      sync.Mutex
	calls   []listing.Mutation
	err     error
	gate    chan struct{}
	started chan struct{}
}

func (m *recordingMutator) Mutate(ctx context.Context, mut listing.Mutation) error {
	m.mu.Lock()
	m.calls = append(m.calls, mut)
	gate, err := m.gate, m.err
	m.mu.Unlock()
	if gate != nil {
		m.started <- struct{}{}
		<-gate
	}
	return err
}

func (m *recordingMutator) mutations() []listing.Mutation {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]listing.Mutation(nil), m.calls...)
}

func TestSubmitCreateNormalizesDraft(t *testing.T) {
	mut := &recordingMutator{}
	ctrl := NewController(accountSchema, mut, Options{})
	require.Equal(t, "ACT", ctrl.Draft().Status)
	require.False(t, ctrl.Editing())

	ctrl.Edit(func(a *account) {
		a.Name = "Ana"
		a.City = " lim "
		a.Password = "secreto"
	})
	require.NoError(t, ctrl.Submit(context.Background()))

	calls := mut.mutations()
	require.Len(t, calls, 1)
	require.Equal(t, listing.IntentCreate, calls[0].Intent)
	created := calls[0].Fields.(account)
	assert.Equal(t, "LIM", created.City)
	assert.Equal(t, "secreto", created.Password)

	// Form resets to a fresh create draft.
	assert.Equal(t, account{Status: "ACT"}, ctrl.Draft())
}

func TestSubmitValidationNamesField(t *testing.T) {
	mut := &recordingMutator{}
	notices := &shared.NoticeQueue{}
	ctrl := NewController(accountSchema, mut, Options{Notifier: notices})
	ctrl.Edit(func(a *account) { a.Name = "Ana" })

	err := ctrl.Submit(context.Background())
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	require.Equal(t, "id_ciudad", verr.Field)
	require.ErrorIs(t, err, shared.ErrValidation)
	require.Empty(t, mut.mutations())

	n := notices.Pop()
	require.NotNil(t, n)
	require.Equal(t, shared.NoticeError, n.Kind)
	require.Equal(t, "El campo id_ciudad es obligatorio", n.Message)

	// Draft kept for correction.
	require.Equal(t, "Ana", ctrl.Draft().Name)
}

func TestValidateChecksNormalizedDraft(t *testing.T) {
	ctrl := NewController(accountSchema, &recordingMutator{}, Options{})
	ctrl.Edit(func(a *account) {
		a.Name = "Ana"
		a.City = "   "
	})
	require.ErrorIs(t, ctrl.Validate(), shared.ErrValidation)
	ctrl.Edit(func(a *account) { a.City = "cus" })
	require.NoError(t, ctrl.Validate())
}

func TestSubmitUpdateOmitsBlankPassword(t *testing.T) {
	mut := &recordingMutator{}
	ctrl := NewController(accountSchema, mut, Options{})
	ctrl.StartEdit(account{ID: 7, Name: "Ana", City: "LIM", Status: "ACT"})
	require.True(t, ctrl.Editing())
	require.Equal(t, resource.NumericID(7), ctrl.BoundID())

	require.NoError(t, ctrl.Submit(context.Background()))

	calls := mut.mutations()
	require.Len(t, calls, 1)
	require.Equal(t, listing.IntentUpdate, calls[0].Intent)
	require.Equal(t, resource.NumericID(7), calls[0].ID)
	fields := calls[0].Fields.(map[string]any)
	assert.NotContains(t, fields, "password")
	assert.Equal(t, "Ana", fields["nombre"])
	assert.False(t, ctrl.Editing())
}

func TestSubmitUpdateKeepsNewPassword(t *testing.T) {
	mut := &recordingMutator{}
	ctrl := NewController(accountSchema, mut, Options{})
	ctrl.StartEdit(account{ID: 7, Name: "Ana", City: "LIM", Password: "nueva"})
	require.NoError(t, ctrl.Submit(context.Background()))

	fields := mut.mutations()[0].Fields.(map[string]any)
	assert.Equal(t, "nueva", fields["password"])
}

func TestRapidSubmitsSendOneRequest(t *testing.T) {
	mut := &recordingMutator{gate: make(chan struct{}), started: make(chan struct{}, 1)}
	ctrl := NewController(accountSchema, mut, Options{})
	ctrl.Edit(func(a *account) {
		a.Name = "Ana"
		a.City = "LIM"
	})

	errs := make(chan error, 1)
	go func() { errs <- ctrl.Submit(context.Background()) }()
	select {
	case <-mut.started:
	case <-time.After(2 * time.Second):
		t.Fatal("submit did not reach the list")
	}
	require.True(t, ctrl.Submitting())
	require.ErrorIs(t, ctrl.Submit(context.Background()), ErrSubmitInFlight)

	close(mut.gate)
	require.NoError(t, <-errs)
	require.Len(t, mut.mutations(), 1)
	require.False(t, ctrl.Submitting())
}

func TestSubmitFailureKeepsDraft(t *testing.T) {
	mut := &recordingMutator{err: errors.New("El nombre ya existe")}
	ctrl := NewController(accountSchema, mut, Options{})
	ctrl.StartEdit(account{ID: 3, Name: "Ana", City: "LIM"})

	require.Error(t, ctrl.Submit(context.Background()))
	require.True(t, ctrl.Editing())
	require.Equal(t, "Ana", ctrl.Draft().Name)
}

func TestSubmitResetsWhenOnlyRefreshFailed(t *testing.T) {
	mut := &recordingMutator{err: listing.ErrRefreshFailed}
	ctrl := NewController(accountSchema, mut, Options{})
	ctrl.StartEdit(account{ID: 3, Name: "Ana", City: "LIM"})

	require.ErrorIs(t, ctrl.Submit(context.Background()), listing.ErrRefreshFailed)
	require.False(t, ctrl.Editing())
}

func TestStartCreateClearsBinding(t *testing.T) {
	ctrl := NewController(accountSchema, &recordingMutator{}, Options{})
	ctrl.StartEdit(account{ID: 9, Name: "Luis"})
	ctrl.StartCreate()
	require.False(t, ctrl.Editing())
	require.Equal(t, account{Status: "ACT"}, ctrl.Draft())
}
