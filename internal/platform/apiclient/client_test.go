package apiclient

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/require"

	"github.com/barbox/barbox-admin/internal/observability"
	"github.com/barbox/barbox-admin/internal/shared"
)

type memTokens struct {
	mu      sync.Mutex
	token   string
	cleared int
}

func (m *memTokens) Token(context.Context) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.token, nil
}

func (m *memTokens) SetToken(_ context.Context, token string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.token = token
	return nil
}

func (m *memTokens) Clear(context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.token = ""
	m.cleared++
	return nil
}

func newTestClient(t *testing.T, h http.HandlerFunc, tokens TokenStore, opts Options) *Client {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)
	return New(Config{BaseURL: srv.URL + "/api/v1", Timeout: 2 * time.Second}, tokens, opts)
}

func TestDoSendsBearerAndRequestID(t *testing.T) {
	var got *http.Request
	var body string
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		got = r.Clone(context.Background())
		raw, _ := io.ReadAll(r.Body)
		body = string(raw)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"ok":true}`))
	}, &memTokens{token: "abc"}, Options{})

	resp, err := client.Do(context.Background(), Request{
		Method: http.MethodPost,
		Path:   "/productos",
		Body:   map[string]string{"descripcion": "Ron"},
	})
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.Status)
	require.JSONEq(t, `{"ok":true}`, string(resp.Body))

	require.Equal(t, "/api/v1/productos", got.URL.Path)
	require.Equal(t, "Bearer abc", got.Header.Get("Authorization"))
	require.Equal(t, "application/json", got.Header.Get("Content-Type"))
	_, err = uuid.Parse(got.Header.Get("X-Request-ID"))
	require.NoError(t, err)
	require.JSONEq(t, `{"descripcion":"Ron"}`, body)
}

func TestDoOmitsBearerWithoutTokenAndForAnonymous(t *testing.T) {
	var headers []string
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		headers = append(headers, r.Header.Get("Authorization"))
		_, _ = w.Write([]byte(`{}`))
	}, &memTokens{}, Options{})

	_, err := client.Do(context.Background(), Request{Path: "/roles"})
	require.NoError(t, err)

	require.NoError(t, client.Tokens().SetToken(context.Background(), "abc"))
	_, err = client.Do(context.Background(), Request{Method: http.MethodPost, Path: "/auth/login", Anonymous: true})
	require.NoError(t, err)

	require.Equal(t, []string{"", ""}, headers)
}

func TestDoDropsBlankQueryParams(t *testing.T) {
	var query string
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		query = r.URL.RawQuery
		_, _ = w.Write([]byte(`[]`))
	}, nil, Options{})

	_, err := client.Do(context.Background(), Request{Path: "/productos/buscar", Query: map[string]string{"q": "ron", "categoria": " "}})
	require.NoError(t, err)
	require.Equal(t, "q=ron", query)
}

func TestDoRefusesPlaceholderPaths(t *testing.T) {
	calls := 0
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		calls++
	}, nil, Options{})

	for _, path := range []string{"/productos/NaN", "/clientes/undefined", "/compras/null/aprobar"} {
		_, err := client.Do(context.Background(), Request{Path: path})
		require.ErrorIs(t, err, ErrInvalidPath, path)
	}
	require.Zero(t, calls)

	_, err := client.Do(context.Background(), Request{Path: "/productos/NaNo"})
	require.NoError(t, err)
	require.Equal(t, 1, calls)
}

func TestDoUnauthorizedClearsTokenAndNotifies(t *testing.T) {
	tokens := &memTokens{token: "stale"}
	redirected := 0
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}, tokens, Options{OnUnauthorized: func() { redirected++ }})

	_, err := client.Do(context.Background(), Request{Path: "/clientes"})
	require.ErrorIs(t, err, shared.ErrUnauthorized)
	require.Empty(t, shared.UserMessage(err))
	require.Equal(t, 1, tokens.cleared)
	require.Equal(t, 1, redirected)

	token, _ := tokens.Token(context.Background())
	require.Empty(t, token)
}

func TestDoAnonymousUnauthorizedIsServerError(t *testing.T) {
	tokens := &memTokens{token: "keep"}
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"message":"Credenciales inválidas"}`))
	}, tokens, Options{OnUnauthorized: func() { t.Fatal("login must not redirect") }})

	_, err := client.Do(context.Background(), Request{Method: http.MethodPost, Path: "/auth/login", Anonymous: true})
	require.False(t, errors.Is(err, shared.ErrUnauthorized))
	require.Equal(t, http.StatusUnauthorized, StatusCode(err))
	require.Equal(t, "Credenciales inválidas", shared.UserMessage(err))
	require.Zero(t, tokens.cleared)
}

func TestDoServerErrorPrefersStructuredMessage(t *testing.T) {
	cases := map[string]string{
		`{"message":"Código duplicado"}`: "Código duplicado",
		`{"error":"RUC inválido"}`:       "RUC inválido",
		`<html>oops</html>`:              "El servidor respondió con estado 400",
	}
	for body, want := range cases {
		client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusBadRequest)
			_, _ = w.Write([]byte(body))
		}, nil, Options{})

		_, err := client.Do(context.Background(), Request{Method: http.MethodPut, Path: "/ciudades/UIO"})
		var apiErr *Error
		require.ErrorAs(t, err, &apiErr)
		require.Equal(t, KindServer, apiErr.Kind)
		require.Equal(t, want, shared.UserMessage(err))
	}
}

func TestDoTransportFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	base := srv.URL
	srv.Close()

	metrics := observability.NewMetrics()
	client := New(Config{BaseURL: base, Timeout: time.Second}, nil, Options{Metrics: metrics})
	_, err := client.Do(context.Background(), Request{Path: "/productos"})
	require.True(t, IsTransport(err))
	require.Equal(t, "No se pudo conectar con el servidor", shared.UserMessage(err))
	count, err := testutil.GatherAndCount(metrics.Gatherer(), "barbox_api_requests_total")
	require.NoError(t, err)
	require.Equal(t, 1, count)
}

func TestResourceLabel(t *testing.T) {
	require.Equal(t, "productos", resourceLabel("/productos/P1/estado"))
	require.Equal(t, "bodega/recepciones", resourceLabel("/bodega/recepciones/4"))
	require.Equal(t, "root", resourceLabel("/"))
}
