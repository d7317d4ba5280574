package auth_test

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/barbox/barbox-admin/internal/auth"
	"github.com/barbox/barbox-admin/internal/platform/apiclient"
	"github.com/barbox/barbox-admin/internal/shared"
	"github.com/barbox/barbox-admin/internal/testing/fakeapi"
	_ "github.com/barbox/barbox-admin/testing"
)

func newService(t *testing.T, srv *fakeapi.Server, tokens apiclient.TokenStore, redirected *int) *auth.Service {
	t.Helper()
	client := apiclient.New(apiclient.Config{BaseURL: srv.URL, Timeout: 2 * time.Second}, tokens, apiclient.Options{
		OnUnauthorized: func() { *redirected++ },
	})
	return auth.NewService(client, tokens, nil)
}

func TestLoginStoresToken(t *testing.T) {
	srv := fakeapi.New(t)
	tokens := auth.NewMemoryStore()
	require.NoError(t, tokens.SetToken(context.Background(), "stale"))
	var redirected int
	svc := newService(t, srv, tokens, &redirected)

	session, err := svc.Login(context.Background(), auth.Credentials{Username: " admin ", Password: "secret"})
	require.NoError(t, err)
	require.Equal(t, srv.Token(), session.Token)
	require.Equal(t, "admin", session.Username)

	stored, _ := tokens.Token(context.Background())
	require.Equal(t, srv.Token(), stored)

	calls := srv.CallsTo(http.MethodPost, "/auth/login")
	require.Len(t, calls, 1)
	require.Empty(t, calls[0].Header.Get("Authorization"))
	require.Equal(t, "admin", calls[0].JSON()["usuario"])

	ok, err := svc.Authenticated(context.Background())
	require.NoError(t, err)
	require.True(t, ok)
}

func TestLoginRejectedIsNotSessionExpiry(t *testing.T) {
	srv := fakeapi.New(t)
	tokens := auth.NewMemoryStore()
	var redirected int
	svc := newService(t, srv, tokens, &redirected)

	_, err := svc.Login(context.Background(), auth.Credentials{Username: "admin", Password: "wrong"})
	require.Error(t, err)
	require.NotErrorIs(t, err, shared.ErrUnauthorized)
	require.Equal(t, "Credenciales inválidas", shared.UserMessage(err))
	require.Zero(t, redirected)

	ok, _ := svc.Authenticated(context.Background())
	require.False(t, ok)
}

func TestLoginRequiresBothFields(t *testing.T) {
	srv := fakeapi.New(t)
	var redirected int
	svc := newService(t, srv, auth.NewMemoryStore(), &redirected)

	_, err := svc.Login(context.Background(), auth.Credentials{Username: "  ", Password: "secret"})
	require.ErrorIs(t, err, shared.ErrValidation)
	require.Empty(t, srv.Calls())
}

func TestLoginReadsEmployeeProfile(t *testing.T) {
	srv := fakeapi.New(t)
	srv.Respond(http.MethodPost, "/auth/login", http.StatusOK, map[string]any{
		"token":   "abc",
		"usuario": map[string]any{"id_empleado": 3, "nombre1": "María"},
	})
	tokens := auth.NewMemoryStore()
	var redirected int
	svc := newService(t, srv, tokens, &redirected)

	session, err := svc.Login(context.Background(), auth.Credentials{Username: "mperez", Password: "x"})
	require.NoError(t, err)
	require.Equal(t, "María", session.Username)
	require.Equal(t, "abc", session.Token)
}

func TestLoginWithoutTokenFails(t *testing.T) {
	srv := fakeapi.New(t)
	srv.Respond(http.MethodPost, "/auth/login", http.StatusOK, map[string]any{"message": "ok"})
	var redirected int
	svc := newService(t, srv, auth.NewMemoryStore(), &redirected)

	_, err := svc.Login(context.Background(), auth.Credentials{Username: "admin", Password: "secret"})
	require.ErrorIs(t, err, auth.ErrNoToken)
}

func TestLogoutClearsToken(t *testing.T) {
	srv := fakeapi.New(t)
	tokens := auth.NewMemoryStore()
	require.NoError(t, tokens.SetToken(context.Background(), "abc"))
	var redirected int
	svc := newService(t, srv, tokens, &redirected)

	require.NoError(t, svc.Logout(context.Background()))
	ok, err := svc.Authenticated(context.Background())
	require.NoError(t, err)
	require.False(t, ok)
}
