package brands

import (
	"strconv"

	"github.com/barbox/barbox-admin/internal/analytics/export"
	"github.com/barbox/barbox-admin/internal/listing"
	"github.com/barbox/barbox-admin/internal/masterdata/shared"
	"github.com/barbox/barbox-admin/internal/resource"
)

const Entity = "marcas"

// Schema describes brands. Like products, the status goes through
// PUT /marcas/{id}/estado.
var Schema = resource.Schema[Brand]{
	Entity: Entity,
	Path:   "marcas",
	Label:  "Marca",
	IDKind: resource.NumericKind,
	IDOf:   func(b Brand) resource.ID { return resource.NumericID(b.ID) },
	New:    func() Brand { return Brand{Status: shared.StatusActive} },
	Status: shared.Estado(resource.StatusViaAction, func(b Brand) string { return b.Status }),
}

func Filters() []listing.Filter[Brand] {
	return []listing.Filter[Brand]{
		listing.Search("search", func(b Brand) string { return b.Name }),
		listing.Equals("categoria", func(b Brand) string { return shared.FormatID(b.CategoryID) }),
		listing.Equals("estado", func(b Brand) string { return b.Status }),
	}
}

func Columns(categories listing.Lookup[int64]) []export.Column[Brand] {
	return []export.Column[Brand]{
		export.Text("ID", func(b Brand) string { return strconv.FormatInt(b.ID, 10) }),
		{Header: "Nombre", Value: func(b Brand) string { return b.Name }, Width: 25},
		{Header: "Categoría", Value: func(b Brand) string { return categories.Name(b.CategoryID) }, Width: 20},
		export.Text("País de Origen", func(b Brand) string { return b.CountryOrigin }),
		export.Text("Estado", func(b Brand) string { return shared.StatusLabel(b.Status) }),
	}
}

// Lookup indexes brands by id for display joins.
func Lookup(records []Brand) listing.Lookup[int64] {
	return listing.NewLookup(records, func(b Brand) int64 { return b.ID }, func(b Brand) string { return b.Name })
}
