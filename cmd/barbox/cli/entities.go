package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"text/tabwriter"

	"github.com/barbox/barbox-admin/internal/analytics/export"
	"github.com/barbox/barbox-admin/internal/form"
	"github.com/barbox/barbox-admin/internal/listing"
	"github.com/barbox/barbox-admin/internal/masterdata"
	"github.com/barbox/barbox-admin/internal/masterdata/brands"
	"github.com/barbox/barbox-admin/internal/masterdata/categories"
	"github.com/barbox/barbox-admin/internal/masterdata/cities"
	"github.com/barbox/barbox-admin/internal/masterdata/paymentmethods"
	"github.com/barbox/barbox-admin/internal/masterdata/products"
	"github.com/barbox/barbox-admin/internal/masterdata/suppliers"
	"github.com/barbox/barbox-admin/internal/masterdata/taxes"
	"github.com/barbox/barbox-admin/internal/procurement"
	"github.com/barbox/barbox-admin/internal/resource"
	"github.com/barbox/barbox-admin/internal/roles"
	"github.com/barbox/barbox-admin/internal/sales/customers"
	"github.com/barbox/barbox-admin/internal/sales/invoices"
	"github.com/barbox/barbox-admin/internal/sales/promotions"
	"github.com/barbox/barbox-admin/internal/shared"
	"github.com/barbox/barbox-admin/internal/users"
)

// entity is the type-erased view of one binding used by the commands.
type entity interface {
	list(ctx context.Context, e *env, crit criteria, jsonOut bool) error
	search(ctx context.Context, e *env, params criteria) error
	show(ctx context.Context, e *env, rawID string) error
	export(ctx context.Context, e *env, format string) (string, error)
	create(ctx context.Context, e *env, data []byte) error
	update(ctx context.Context, e *env, rawID string, data []byte) error
	toggle(ctx context.Context, e *env, rawID string, yes bool) error
	remove(ctx context.Context, e *env, rawID string, yes bool) error
}

type layout[T any] struct {
	filters []listing.Filter[T]
	columns []export.Column[T]
}

type binding[T any] struct {
	schema resource.Schema[T]
	layout func(ctx context.Context, e *env) (layout[T], error)
}

var entities = map[string]entity{
	products.Entity: binding[products.Product]{
		schema: products.Schema,
		layout: func(ctx context.Context, e *env) (layout[products.Product], error) {
			cat, err := masterdata.LoadCatalog(ctx, e.console.Client, masterdata.RefCategories, masterdata.RefBrands)
			if err != nil {
				return layout[products.Product]{}, err
			}
			return layout[products.Product]{products.Filters(), products.Columns(cat.Categories, cat.Brands)}, nil
		},
	},
	categories.Entity: binding[categories.Category]{
		schema: categories.Schema,
		layout: static(categories.Filters(), categories.Columns()),
	},
	brands.Entity: binding[brands.Brand]{
		schema: brands.Schema,
		layout: func(ctx context.Context, e *env) (layout[brands.Brand], error) {
			cat, err := masterdata.LoadCatalog(ctx, e.console.Client, masterdata.RefCategories)
			if err != nil {
				return layout[brands.Brand]{}, err
			}
			return layout[brands.Brand]{brands.Filters(), brands.Columns(cat.Categories)}, nil
		},
	},
	taxes.Entity: binding[taxes.Tax]{
		schema: taxes.Schema,
		layout: static(taxes.Filters(), taxes.Columns()),
	},
	cities.Entity: binding[cities.City]{
		schema: cities.Schema,
		layout: static(cities.Filters(), cities.Columns()),
	},
	paymentmethods.Entity: binding[paymentmethods.Method]{
		schema: paymentmethods.Schema,
		layout: static(paymentmethods.Filters(), paymentmethods.Columns()),
	},
	suppliers.Entity: binding[suppliers.Supplier]{
		schema: suppliers.Schema,
		layout: func(ctx context.Context, e *env) (layout[suppliers.Supplier], error) {
			cat, err := masterdata.LoadCatalog(ctx, e.console.Client, masterdata.RefCities)
			if err != nil {
				return layout[suppliers.Supplier]{}, err
			}
			return layout[suppliers.Supplier]{suppliers.Filters(), suppliers.Columns(cat.Cities)}, nil
		},
	},
	customers.Entity: binding[customers.Customer]{
		schema: customers.Schema,
		layout: func(ctx context.Context, e *env) (layout[customers.Customer], error) {
			cat, err := masterdata.LoadCatalog(ctx, e.console.Client, masterdata.RefCities)
			if err != nil {
				return layout[customers.Customer]{}, err
			}
			return layout[customers.Customer]{customers.Filters(), customers.Columns(cat.Cities)}, nil
		},
	},
	invoices.Entity: binding[invoices.Invoice]{
		schema: invoices.Schema,
		layout: func(ctx context.Context, e *env) (layout[invoices.Invoice], error) {
			rows, err := resource.GetList[customers.Customer](ctx, e.console.Client, customers.Schema.Path, nil)
			if err != nil {
				return layout[invoices.Invoice]{}, err
			}
			return layout[invoices.Invoice]{invoices.Filters(), invoices.Columns(customers.Lookup(rows))}, nil
		},
	},
	promotions.Entity: binding[promotions.Promotion]{
		schema: promotions.Schema,
		layout: func(_ context.Context, e *env) (layout[promotions.Promotion], error) {
			return layout[promotions.Promotion]{promotions.Filters(e.opts.Now), promotions.Columns()}, nil
		},
	},
	procurement.PurchaseEntity: binding[procurement.Purchase]{
		schema: procurement.PurchaseSchema,
		layout: func(ctx context.Context, e *env) (layout[procurement.Purchase], error) {
			cat, err := masterdata.LoadCatalog(ctx, e.console.Client, masterdata.RefSuppliers)
			if err != nil {
				return layout[procurement.Purchase]{}, err
			}
			return layout[procurement.Purchase]{procurement.PurchaseFilters(cat.Suppliers), procurement.PurchaseColumns(cat.Suppliers)}, nil
		},
	},
	procurement.ReceiptEntity: binding[procurement.Receipt]{
		schema: procurement.ReceiptSchema,
		layout: static(procurement.ReceiptFilters(), procurement.ReceiptColumns()),
	},
	users.Entity: binding[users.Employee]{
		schema: users.Schema,
		layout: func(ctx context.Context, e *env) (layout[users.Employee], error) {
			rows, err := roles.List(ctx, e.console.Client)
			if err != nil {
				return layout[users.Employee]{}, err
			}
			return layout[users.Employee]{users.Filters(), users.Columns(roles.Lookup(rows))}, nil
		},
	},
}

func static[T any](filters []listing.Filter[T], columns []export.Column[T]) func(context.Context, *env) (layout[T], error) {
	return func(context.Context, *env) (layout[T], error) {
		return layout[T]{filters: filters, columns: columns}, nil
	}
}

func entityNames() []string {
	names := make([]string, 0, len(entities))
	for name := range entities {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func lookupEntity(name string) (entity, error) {
	ent, ok := entities[name]
	if !ok {
		return nil, fmt.Errorf("unknown entity %q (one of: %s): %w", name, strings.Join(entityNames(), ", "), shared.ErrValidation)
	}
	return ent, nil
}

func (b binding[T]) gateway(e *env) *resource.Gateway[T] {
	return resource.NewGateway(e.console.Client, b.schema)
}

// open loads the list controller and the entity layout.
func (b binding[T]) open(ctx context.Context, e *env) (*listing.Controller[T], layout[T], error) {
	lay, err := b.layout(ctx, e)
	if err != nil {
		return nil, layout[T]{}, err
	}
	ctrl := listing.NewController[T](b.gateway(e), lay.filters, e.console.ListOptions())
	if err := ctrl.Load(ctx); err != nil {
		return nil, layout[T]{}, err
	}
	return ctrl, lay, nil
}

// record finds rawID in the loaded snapshot.
func (b binding[T]) record(ctrl *listing.Controller[T], rawID string) (T, error) {
	var zero T
	id, err := resource.ParseID(b.schema.IDKind, rawID)
	if err != nil {
		return zero, err
	}
	rec, ok := ctrl.Find(id)
	if !ok {
		return zero, fmt.Errorf("%s %s: %w", b.schema.Label, id, shared.ErrNotFound)
	}
	return rec, nil
}

func (b binding[T]) list(ctx context.Context, e *env, crit criteria, jsonOut bool) error {
	ctrl, lay, err := b.open(ctx, e)
	if err != nil {
		return err
	}
	rows := ctrl.ApplyFilters(listing.Criteria(crit))
	if jsonOut {
		return writeJSON(e.opts.Stdout, rows)
	}
	return writeTable(e.opts.Stdout, lay.columns, rows)
}

func (b binding[T]) search(ctx context.Context, e *env, params criteria) error {
	rows, err := b.gateway(e).Search(ctx, params)
	if err != nil {
		return err
	}
	lay, err := b.layout(ctx, e)
	if err != nil {
		return err
	}
	return writeTable(e.opts.Stdout, lay.columns, rows)
}

func (b binding[T]) show(ctx context.Context, e *env, rawID string) error {
	id, err := resource.ParseID(b.schema.IDKind, rawID)
	if err != nil {
		return err
	}
	rec, err := b.gateway(e).Get(ctx, id)
	if err != nil {
		return err
	}
	return writeJSON(e.opts.Stdout, rec)
}

// export writes the full snapshot. Filters never narrow an export.
func (b binding[T]) export(ctx context.Context, e *env, format string) (string, error) {
	if format != "csv" && format != "xlsx" {
		return "", fmt.Errorf("export: formato %q no soportado (csv o xlsx): %w", format, shared.ErrValidation)
	}
	ctrl, lay, err := b.open(ctx, e)
	if err != nil {
		return "", err
	}
	rows := ctrl.Snapshot()
	dir := e.console.Config.ExportDir
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("export: %w", err)
	}
	path := filepath.Join(dir, export.FileName(b.schema.Entity, e.opts.Now(), format))
	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("export: %w", err)
	}
	if format == "xlsx" {
		err = export.WriteXLSX(f, b.schema.Label, lay.columns, rows)
	} else {
		err = export.WriteCSV(f, lay.columns, rows)
	}
	if cerr := f.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		return "", fmt.Errorf("export: %w", err)
	}
	return path, nil
}

func (b binding[T]) create(ctx context.Context, e *env, data []byte) error {
	ctrl, _, err := b.open(ctx, e)
	if err != nil {
		return err
	}
	f := form.NewController(b.schema, ctrl, e.console.FormOptions())
	f.StartCreate()
	if err := fill(f, data); err != nil {
		return err
	}
	return f.Submit(ctx)
}

func (b binding[T]) update(ctx context.Context, e *env, rawID string, data []byte) error {
	ctrl, _, err := b.open(ctx, e)
	if err != nil {
		return err
	}
	rec, err := b.record(ctrl, rawID)
	if err != nil {
		return err
	}
	f := form.NewController(b.schema, ctrl, e.console.FormOptions())
	f.StartEdit(rec)
	if err := fill(f, data); err != nil {
		return err
	}
	return f.Submit(ctx)
}

func (b binding[T]) toggle(ctx context.Context, e *env, rawID string, yes bool) error {
	ctrl, _, err := b.open(ctx, e)
	if err != nil {
		return err
	}
	rec, err := b.record(ctrl, rawID)
	if err != nil {
		return err
	}
	_, err = ctrl.ToggleStatus(ctx, rec, e.confirmer(yes))
	return err
}

func (b binding[T]) remove(ctx context.Context, e *env, rawID string, yes bool) error {
	ctrl, _, err := b.open(ctx, e)
	if err != nil {
		return err
	}
	rec, err := b.record(ctrl, rawID)
	if err != nil {
		return err
	}
	_, err = ctrl.ConfirmDelete(ctx, rec, e.confirmer(yes))
	return err
}

// fill overlays the JSON document data on the form draft.
func fill[T any](f *form.Controller[T], data []byte) error {
	var decodeErr error
	f.Edit(func(draft *T) {
		decodeErr = json.Unmarshal(data, draft)
	})
	if decodeErr != nil {
		return fmt.Errorf("datos JSON inválidos: %v: %w", decodeErr, shared.ErrValidation)
	}
	return nil
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func writeTable[T any](w io.Writer, columns []export.Column[T], rows []T) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	headers := make([]string, len(columns))
	for i, col := range columns {
		headers[i] = col.Header
	}
	fmt.Fprintln(tw, strings.Join(headers, "\t"))
	for _, rec := range rows {
		cells := make([]string, len(columns))
		for i, col := range columns {
			if col.Value != nil {
				cells[i] = strings.ReplaceAll(col.Value(rec), "\t", " ")
			}
		}
		fmt.Fprintln(tw, strings.Join(cells, "\t"))
	}
	if err := tw.Flush(); err != nil {
		return err
	}
	fmt.Fprintf(w, "%d registro(s)\n", len(rows))
	return nil
}
