package app

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/require"

	"github.com/barbox/barbox-admin/internal/auth"
	"github.com/barbox/barbox-admin/internal/listing"
	"github.com/barbox/barbox-admin/internal/masterdata/brands"
	"github.com/barbox/barbox-admin/internal/resource"
	"github.com/barbox/barbox-admin/internal/shared"
	"github.com/barbox/barbox-admin/internal/testing/fakeapi"
)

func testConfig(url string) *Config {
	return &Config{
		AppEnv:            "test",
		APIURL:            url,
		APITimeout:        2 * time.Second,
		TokenStore:        TokenStoreMemory,
		TokenTTL:          time.Hour,
		AnalyticsCacheTTL: time.Minute,
	}
}

func TestConsoleSessionExpiryReturnsToLogin(t *testing.T) {
	srv := fakeapi.New(t)
	srv.Seed("marcas", "id_marca", fakeapi.Record{"id_marca": 1, "nombre": "Zacapa", "estado": "ACT"})
	ctx := context.Background()

	console, err := NewConsole(ctx, testConfig(srv.URL), nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = console.Close() })

	require.NoError(t, console.Start(ctx))
	require.Equal(t, ViewLogin, console.Navigator.Current())

	_, err = console.Login(ctx, auth.Credentials{Username: "admin", Password: "secret"})
	require.NoError(t, err)
	require.Equal(t, ViewDashboard, console.Navigator.Current())

	list := listing.NewController[brands.Brand](resource.NewGateway(console.Client, brands.Schema), nil, console.ListOptions())
	require.NoError(t, list.Load(ctx))
	require.Len(t, list.Snapshot(), 1)

	srv.ExpireSession(true)
	err = list.Mutate(ctx, listing.Mutation{Intent: listing.IntentDelete, ID: resource.NumericID(1)})
	require.ErrorIs(t, err, shared.ErrUnauthorized)
	require.Equal(t, ViewLogin, console.Navigator.Current())
	require.Empty(t, console.Notices.Drain())

	ok, err := console.Auth.Authenticated(ctx)
	require.NoError(t, err)
	require.False(t, ok)
	require.Len(t, srv.CallsTo(http.MethodDelete, "/marcas/1"), 1)
}

func TestConsoleLoginFailureQueuesNotice(t *testing.T) {
	srv := fakeapi.New(t)
	ctx := context.Background()
	console, err := NewConsole(ctx, testConfig(srv.URL), nil)
	require.NoError(t, err)

	_, err = console.Login(ctx, auth.Credentials{Username: "admin", Password: "nope"})
	require.Error(t, err)
	notices := console.Notices.Drain()
	require.Len(t, notices, 1)
	require.Equal(t, "Credenciales inválidas", notices[0].Message)
	require.Equal(t, ViewLogin, console.Navigator.Current())
}

func TestConsoleRedisStoreSharesLogin(t *testing.T) {
	mr := miniredis.RunT(t)
	srv := fakeapi.New(t)
	ctx := context.Background()
	cfg := testConfig(srv.URL)
	cfg.TokenStore = TokenStoreRedis
	cfg.RedisAddr = mr.Addr()

	first, err := NewConsole(ctx, cfg, nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = first.Close() })
	_, err = first.Login(ctx, auth.Credentials{Username: "admin", Password: "secret"})
	require.NoError(t, err)

	second, err := NewConsole(ctx, cfg, nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = second.Close() })
	require.NoError(t, second.Start(ctx))
	require.Equal(t, ViewDashboard, second.Navigator.Current())

	require.NoError(t, second.Logout(ctx))
	ok, err := first.Auth.Authenticated(ctx)
	require.NoError(t, err)
	require.False(t, ok)
}

func TestConsoleRedisUnavailable(t *testing.T) {
	cfg := testConfig("http://127.0.0.1:1")
	cfg.TokenStore = TokenStoreRedis
	cfg.RedisAddr = "127.0.0.1:1"
	_, err := NewConsole(context.Background(), cfg, nil)
	require.Error(t, err)
}
