package taxes

import (
	"context"
	"strconv"

	"github.com/barbox/barbox-admin/internal/analytics/export"
	"github.com/barbox/barbox-admin/internal/listing"
	"github.com/barbox/barbox-admin/internal/masterdata/shared"
	"github.com/barbox/barbox-admin/internal/resource"
)

const Entity = "iva"

var Schema = resource.Schema[Tax]{
	Entity: Entity,
	Path:   "iva",
	Label:  "IVA",
	IDKind: resource.NumericKind,
	IDOf:   func(t Tax) resource.ID { return resource.NumericID(t.ID) },
	New:    func() Tax { return Tax{Status: shared.StatusActive} },
	Status: shared.Estado(resource.StatusViaUpdate, func(t Tax) string { return t.Status }),
}

func Filters() []listing.Filter[Tax] {
	return []listing.Filter[Tax]{
		listing.Search("search",
			func(t Tax) string { return t.Rate.String() },
			func(t Tax) string { return t.Description },
		),
		listing.Equals("estado", func(t Tax) string { return t.Status }),
	}
}

func Columns() []export.Column[Tax] {
	return []export.Column[Tax]{
		export.Text("ID", func(t Tax) string { return strconv.FormatInt(t.ID, 10) }),
		export.Number("Porcentaje", func(t Tax) float64 { return t.Rate.Float64() }),
		{Header: "Descripción", Value: func(t Tax) string { return t.Description }, Width: 30},
		export.Text("Fecha Inicio", func(t Tax) string { return t.StartDate }),
		export.Text("Estado", func(t Tax) string { return shared.StatusLabel(t.Status) }),
	}
}

// Current fetches the rate in force from GET /iva/vigente.
func Current(ctx context.Context, client resource.Doer) (Tax, error) {
	return resource.GetOne[Tax](ctx, client, "iva/vigente")
}

// Lookup indexes tax rates by id, rendered as a percentage.
func Lookup(records []Tax) listing.Lookup[int64] {
	return listing.NewLookup(records, func(t Tax) int64 { return t.ID }, func(t Tax) string { return t.Rate.String() + "%" })
}
