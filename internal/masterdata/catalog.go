// Package masterdata loads the reference catalogs other screens join
// against for display names.
package masterdata

import (
	"context"
	"fmt"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/barbox/barbox-admin/internal/listing"
	"github.com/barbox/barbox-admin/internal/masterdata/brands"
	"github.com/barbox/barbox-admin/internal/masterdata/categories"
	"github.com/barbox/barbox-admin/internal/masterdata/cities"
	"github.com/barbox/barbox-admin/internal/masterdata/suppliers"
	"github.com/barbox/barbox-admin/internal/masterdata/taxes"
	"github.com/barbox/barbox-admin/internal/masterdata/units"
	"github.com/barbox/barbox-admin/internal/resource"
)

// Ref names one reference catalog.
type Ref string

const (
	RefCategories Ref = "categorias"
	RefBrands     Ref = "marcas"
	RefCities     Ref = "ciudades"
	RefSuppliers  Ref = "proveedores"
	RefTaxes      Ref = "iva"
	RefUnits      Ref = "unidades-medida"
)

// Catalog holds the lookups that were requested from LoadCatalog. Lookups
// that were not requested are empty and resolve every key to "N/A".
type Catalog struct {
	Categories listing.Lookup[int64]
	Brands     listing.Lookup[int64]
	Cities     listing.Lookup[string]
	Suppliers  listing.Lookup[int64]
	Taxes      listing.Lookup[int64]
	Units      listing.Lookup[int64]
}

// LoadCatalog fetches the requested catalogs in parallel. Any failed load
// fails the whole call.
func LoadCatalog(ctx context.Context, client resource.Doer, refs ...Ref) (Catalog, error) {
	var (
		mu  sync.Mutex
		out Catalog
	)
	g, gctx := errgroup.WithContext(ctx)
	seen := map[Ref]bool{}
	for _, ref := range refs {
		if seen[ref] {
			continue
		}
		seen[ref] = true
		ref := ref
		g.Go(func() error {
			return loadRef(gctx, client, ref, func(apply func(*Catalog)) {
				mu.Lock()
				defer mu.Unlock()
				apply(&out)
			})
		})
	}
	if err := g.Wait(); err != nil {
		return Catalog{}, fmt.Errorf("masterdata: catalog: %w", err)
	}
	return out, nil
}

func loadRef(ctx context.Context, client resource.Doer, ref Ref, set func(func(*Catalog))) error {
	switch ref {
	case RefCategories:
		rows, err := resource.GetList[categories.Category](ctx, client, categories.Schema.Path, nil)
		if err != nil {
			return err
		}
		set(func(c *Catalog) { c.Categories = categories.Lookup(rows) })
	case RefBrands:
		rows, err := resource.GetList[brands.Brand](ctx, client, brands.Schema.Path, nil)
		if err != nil {
			return err
		}
		set(func(c *Catalog) { c.Brands = brands.Lookup(rows) })
	case RefCities:
		rows, err := resource.GetList[cities.City](ctx, client, cities.Schema.Path, nil)
		if err != nil {
			return err
		}
		set(func(c *Catalog) { c.Cities = cities.Lookup(rows) })
	case RefSuppliers:
		rows, err := resource.GetList[suppliers.Supplier](ctx, client, suppliers.Schema.Path, nil)
		if err != nil {
			return err
		}
		set(func(c *Catalog) { c.Suppliers = suppliers.Lookup(rows) })
	case RefTaxes:
		rows, err := resource.GetList[taxes.Tax](ctx, client, taxes.Schema.Path, nil)
		if err != nil {
			return err
		}
		set(func(c *Catalog) { c.Taxes = taxes.Lookup(rows) })
	case RefUnits:
		rows, err := units.List(ctx, client)
		if err != nil {
			return err
		}
		set(func(c *Catalog) { c.Units = units.Lookup(rows) })
	default:
		return fmt.Errorf("unknown catalog %q", ref)
	}
	return nil
}
