package cities

import (
	"strings"

	"github.com/barbox/barbox-admin/internal/analytics/export"
	"github.com/barbox/barbox-admin/internal/listing"
	"github.com/barbox/barbox-admin/internal/resource"
)

const Entity = "ciudades"

// Schema describes cities. They have no status and are removed with DELETE.
var Schema = resource.Schema[City]{
	Entity:    Entity,
	Path:      "ciudades",
	Label:     "Ciudad",
	IDKind:    resource.CodeKind,
	IDOf:      func(c City) resource.ID { return resource.CodeID(c.ID) },
	Normalize: Normalize,

	DeletePrompt: "¿Está seguro de eliminar esta ciudad? Solo se puede eliminar si no tiene clientes o proveedores asociados.",
}

// Normalize upper-cases and trims the city code.
func Normalize(c *City) {
	c.ID = strings.ToUpper(strings.TrimSpace(c.ID))
	c.Description = strings.TrimSpace(c.Description)
}

func Filters() []listing.Filter[City] {
	return []listing.Filter[City]{
		listing.Search("search",
			func(c City) string { return c.ID },
			func(c City) string { return c.Description },
		),
	}
}

func Columns() []export.Column[City] {
	return []export.Column[City]{
		export.Text("Código", func(c City) string { return c.ID }),
		{Header: "Descripción", Value: func(c City) string { return c.Description }, Width: 30},
	}
}

// Lookup indexes cities by code.
func Lookup(records []City) listing.Lookup[string] {
	return listing.NewLookup(records, func(c City) string { return c.ID }, func(c City) string { return c.Description })
}
