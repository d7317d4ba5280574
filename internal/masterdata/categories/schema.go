package categories

import (
	"strconv"

	"github.com/barbox/barbox-admin/internal/analytics/export"
	"github.com/barbox/barbox-admin/internal/listing"
	"github.com/barbox/barbox-admin/internal/masterdata/shared"
	"github.com/barbox/barbox-admin/internal/resource"
)

const Entity = "categorias"

var Schema = resource.Schema[Category]{
	Entity: Entity,
	Path:   "categorias",
	Label:  "Categoría",
	IDKind: resource.NumericKind,
	IDOf:   func(c Category) resource.ID { return resource.NumericID(c.ID) },
	New:    func() Category { return Category{Active: true} },
	Status: shared.Activo(func(c Category) bool { return c.Active }),
}

func Filters() []listing.Filter[Category] {
	return []listing.Filter[Category]{
		listing.Search("search",
			func(c Category) string { return c.Name },
			func(c Category) string { return c.Description },
		),
		listing.Flag("activo", func(c Category) bool { return c.Active }),
	}
}

func Columns() []export.Column[Category] {
	return []export.Column[Category]{
		export.Text("ID", func(c Category) string { return strconv.FormatInt(c.ID, 10) }),
		{Header: "Nombre", Value: func(c Category) string { return c.Name }, Width: 25},
		{Header: "Descripción", Value: func(c Category) string { return c.Description }, Width: 40},
		export.Text("Estado", func(c Category) string {
			if c.Active {
				return "Activo"
			}
			return "Inactivo"
		}),
	}
}

// Lookup indexes categories by id for display joins.
func Lookup(records []Category) listing.Lookup[int64] {
	return listing.NewLookup(records, func(c Category) int64 { return c.ID }, func(c Category) string { return c.Name })
}
