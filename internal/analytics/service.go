package analytics

import (
	"context"
	"fmt"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/barbox/barbox-admin/internal/masterdata/products"
	"github.com/barbox/barbox-admin/internal/procurement"
	"github.com/barbox/barbox-admin/internal/resource"
	"github.com/barbox/barbox-admin/internal/sales/customers"
	"github.com/barbox/barbox-admin/internal/sales/invoices"
)

// Source supplies the collections the dashboard aggregates.
type Source interface {
	Products(ctx context.Context) ([]products.Product, error)
	Customers(ctx context.Context) ([]customers.Customer, error)
	Invoices(ctx context.Context) ([]invoices.Invoice, error)
	Purchases(ctx context.Context) ([]procurement.Purchase, error)
}

// APISource reads the collections from the backend list endpoints.
type APISource struct {
	Client resource.Doer
}

func (s APISource) Products(ctx context.Context) ([]products.Product, error) {
	return resource.GetList[products.Product](ctx, s.Client, products.Schema.Path, nil)
}

func (s APISource) Customers(ctx context.Context) ([]customers.Customer, error) {
	return resource.GetList[customers.Customer](ctx, s.Client, customers.Schema.Path, nil)
}

func (s APISource) Invoices(ctx context.Context) ([]invoices.Invoice, error) {
	return resource.GetList[invoices.Invoice](ctx, s.Client, invoices.Schema.Path, nil)
}

func (s APISource) Purchases(ctx context.Context) ([]procurement.Purchase, error) {
	return resource.GetList[procurement.Purchase](ctx, s.Client, procurement.PurchaseSchema.Path, nil)
}

// Service computes the dashboard, optionally through the Redis cache.
type Service struct {
	source Source
	cache  *Cache
	now    func() time.Time
}

// NewService wires a Source with a Cache helper. cache may be nil.
func NewService(source Source, cache *Cache) *Service {
	return &Service{source: source, cache: cache, now: time.Now}
}

// Dashboard loads the four collections in parallel and aggregates them.
// Any failed load fails the whole dashboard.
func (s *Service) Dashboard(ctx context.Context) (Dashboard, error) {
	key, err := s.cache.BuildKey(ctx, "barbox", "analytics", "dashboard")
	if err != nil {
		return Dashboard{}, err
	}
	var out Dashboard
	err = s.cache.FetchJSON(ctx, key, &out, func(ctx context.Context) (any, error) {
		return s.load(ctx)
	})
	if err != nil {
		return Dashboard{}, fmt.Errorf("analytics: dashboard: %w", err)
	}
	return out, nil
}

// Invalidate drops cached dashboards after a change.
func (s *Service) Invalidate(ctx context.Context) error {
	return s.cache.Bump(ctx)
}

func (s *Service) load(ctx context.Context) (Dashboard, error) {
	var (
		prods     []products.Product
		custs     []customers.Customer
		invs      []invoices.Invoice
		purchases []procurement.Purchase
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		prods, err = s.source.Products(gctx)
		return err
	})
	g.Go(func() (err error) {
		custs, err = s.source.Customers(gctx)
		return err
	})
	g.Go(func() (err error) {
		invs, err = s.source.Invoices(gctx)
		return err
	})
	g.Go(func() (err error) {
		purchases, err = s.source.Purchases(gctx)
		return err
	})
	if err := g.Wait(); err != nil {
		return Dashboard{}, err
	}
	return Summarize(prods, custs, invs, purchases, s.now()), nil
}
