package app

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/redis/go-redis/v9"

	"github.com/barbox/barbox-admin/internal/analytics"
	"github.com/barbox/barbox-admin/internal/auth"
	"github.com/barbox/barbox-admin/internal/form"
	"github.com/barbox/barbox-admin/internal/listing"
	"github.com/barbox/barbox-admin/internal/observability"
	"github.com/barbox/barbox-admin/internal/platform/apiclient"
	"github.com/barbox/barbox-admin/internal/platform/cache"
	"github.com/barbox/barbox-admin/internal/shared"
)

// Console groups the long-lived collaborators of one operator session.
type Console struct {
	Config    *Config
	Logger    *slog.Logger
	Metrics   *observability.Metrics
	Tokens    apiclient.TokenStore
	Client    *apiclient.Client
	Auth      *auth.Service
	Notices   *shared.NoticeQueue
	Navigator *Navigator
	Analytics *analytics.Service
	Lists     *listing.Registry

	redis *redis.Client
}

// NewConsole wires the transport, the token store and the shared services
// from cfg.
func NewConsole(ctx context.Context, cfg *Config, logger *slog.Logger) (*Console, error) {
	if logger == nil {
		logger = NewLogger(cfg)
	}
	c := &Console{
		Config:    cfg,
		Logger:    logger,
		Metrics:   observability.NewMetrics(),
		Notices:   &shared.NoticeQueue{},
		Lists:     listing.NewRegistry(),
		Navigator: NewNavigator(logger),
	}

	switch cfg.TokenStore {
	case TokenStoreMemory:
		c.Tokens = auth.NewMemoryStore()
	case TokenStoreRedis:
		client, err := cache.New(ctx, cache.Options{Addr: cfg.RedisAddr, Password: cfg.RedisPass, DB: cfg.RedisDB})
		if err != nil {
			return nil, fmt.Errorf("app: token store: %w", err)
		}
		c.redis = client
		c.Tokens = shared.NewSessionStore(client, cfg.AppEnv, cfg.TokenTTL)
	default:
		c.Tokens = auth.NewFileStore(cfg.TokenFile)
	}

	c.Client = apiclient.New(apiclient.Config{
		BaseURL: cfg.APIURL,
		Timeout: cfg.APITimeout,
	}, c.Tokens, apiclient.Options{
		Logger:         logger,
		Metrics:        c.Metrics,
		OnUnauthorized: c.Navigator.ToLogin,
	})
	c.Auth = auth.NewService(c.Client, c.Tokens, logger)

	var dashCache *analytics.Cache
	if c.redis != nil {
		dashCache = analytics.NewCache(c.redis, cfg.AnalyticsCacheTTL)
	}
	c.Analytics = analytics.NewService(analytics.APISource{Client: c.Client}, dashCache)
	return c, nil
}

// Notifier fans notices out to the queue and the log.
func (c *Console) Notifier() shared.Notifier {
	return shared.Fanout{c.Notices, shared.LogNotifier{Logger: c.Logger}}
}

// ListOptions returns the options every list controller is built with.
func (c *Console) ListOptions() listing.Options {
	return listing.Options{Logger: c.Logger, Notifier: c.Notifier(), Metrics: c.Metrics, Registry: c.Lists}
}

// FormOptions returns the options every form controller is built with.
func (c *Console) FormOptions() form.Options {
	return form.Options{Logger: c.Logger, Notifier: c.Notifier()}
}

// Start moves to the dashboard when a token is already stored.
func (c *Console) Start(ctx context.Context) error {
	ok, err := c.Auth.Authenticated(ctx)
	if err != nil {
		return err
	}
	if ok {
		c.Navigator.Go(ViewDashboard)
	}
	return nil
}

// Login authenticates and opens the dashboard.
func (c *Console) Login(ctx context.Context, creds auth.Credentials) (*auth.Session, error) {
	session, err := c.Auth.Login(ctx, creds)
	if err != nil {
		c.Notifier().Notify(shared.Notice{Kind: shared.NoticeError, Entity: "auth", Message: shared.UserMessage(err)})
		return nil, err
	}
	c.Navigator.Go(ViewDashboard)
	return session, nil
}

// Logout clears the token and returns to the login view.
func (c *Console) Logout(ctx context.Context) error {
	if err := c.Auth.Logout(ctx); err != nil {
		return err
	}
	c.Navigator.ToLogin()
	return nil
}

// Close releases the Redis connection, if any.
func (c *Console) Close() error {
	if c.redis == nil {
		return nil
	}
	return c.redis.Close()
}
