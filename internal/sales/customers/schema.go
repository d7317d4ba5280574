package customers

import (
	"strconv"

	"github.com/barbox/barbox-admin/internal/analytics/export"
	"github.com/barbox/barbox-admin/internal/listing"
	"github.com/barbox/barbox-admin/internal/resource"
)

const (
	Entity = "clientes"
	// DefaultCity is preselected on new customers.
	DefaultCity = "GYE"
)

// Schema describes customers. They have no status and are removed with
// DELETE.
var Schema = resource.Schema[Customer]{
	Entity:       Entity,
	Path:         "clientes",
	Label:        "Cliente",
	IDKind:       resource.NumericKind,
	IDOf:         func(c Customer) resource.ID { return resource.NumericID(c.ID) },
	New:          func() Customer { return Customer{CityID: DefaultCity} },
	Searchable:   true,
	DeletePrompt: "¿Está seguro de eliminar este cliente?",
}

func Filters() []listing.Filter[Customer] {
	return []listing.Filter[Customer]{
		listing.Search("search",
			func(c Customer) string { return c.FirstName },
			func(c Customer) string { return c.LastName },
			func(c Customer) string { return c.TaxID },
			func(c Customer) string { return c.Email },
		),
		listing.Equals("ciudad", func(c Customer) string { return c.CityID }),
	}
}

func Columns(cities listing.Lookup[string]) []export.Column[Customer] {
	return []export.Column[Customer]{
		export.Text("ID", func(c Customer) string { return strconv.FormatInt(c.ID, 10) }),
		export.Text("RUC/Cédula", func(c Customer) string { return c.TaxID }),
		{Header: "Nombre", Value: Customer.FullName, Width: 35},
		export.Text("Email", func(c Customer) string { return c.Email }),
		export.Text("Teléfono", func(c Customer) string { return c.Phone }),
		export.Text("Dirección", func(c Customer) string { return c.Address }),
		export.Text("Ciudad", func(c Customer) string { return cities.Name(c.CityID) }),
	}
}

// Lookup indexes customers by id for display joins.
func Lookup(records []Customer) listing.Lookup[int64] {
	return listing.NewLookup(records, func(c Customer) int64 { return c.ID }, Customer.FullName)
}
