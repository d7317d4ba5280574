package suppliers

import (
	"strconv"

	"github.com/barbox/barbox-admin/internal/analytics/export"
	"github.com/barbox/barbox-admin/internal/listing"
	"github.com/barbox/barbox-admin/internal/masterdata/shared"
	"github.com/barbox/barbox-admin/internal/resource"
)

const Entity = "proveedores"

var Schema = resource.Schema[Supplier]{
	Entity: Entity,
	Path:   "proveedores",
	Label:  "Proveedor",
	IDKind: resource.NumericKind,
	IDOf:   func(s Supplier) resource.ID { return resource.NumericID(s.ID) },
	New:    func() Supplier { return Supplier{Status: shared.StatusActive} },
	Status: supplierStatus(),
}

// The supplier update endpoint expects the contact fields with every write.
func supplierStatus() *resource.Status[Supplier] {
	status := shared.Estado(resource.StatusViaUpdate, func(s Supplier) string { return s.Status })
	status.With = func(s Supplier) map[string]any {
		return map[string]any{
			"nombre":          s.Name,
			"nombre_contacto": s.ContactName,
			"telefono":        s.Phone,
			"email":           s.Email,
			"direccion":       s.Address,
		}
	}
	return status
}

func Filters() []listing.Filter[Supplier] {
	return []listing.Filter[Supplier]{
		listing.Search("search",
			func(s Supplier) string { return s.Name },
			func(s Supplier) string { return s.RUC },
			func(s Supplier) string { return s.Email },
			func(s Supplier) string { return s.Phone },
		),
		listing.Equals("ciudad", func(s Supplier) string { return s.CityID }),
		listing.Equals("estado", func(s Supplier) string { return s.Status }),
	}
}

func Columns(cities listing.Lookup[string]) []export.Column[Supplier] {
	return []export.Column[Supplier]{
		export.Text("ID", func(s Supplier) string { return strconv.FormatInt(s.ID, 10) }),
		{Header: "Nombre", Value: func(s Supplier) string { return s.Name }, Width: 30},
		export.Text("RUC", func(s Supplier) string { return s.RUC }),
		export.Text("Email", func(s Supplier) string { return s.Email }),
		export.Text("Teléfono", func(s Supplier) string { return s.Phone }),
		export.Text("Ciudad", func(s Supplier) string { return cities.Name(s.CityID) }),
		export.Text("Contacto", func(s Supplier) string { return s.ContactName }),
		export.Text("Estado", func(s Supplier) string { return shared.StatusLabel(s.Status) }),
	}
}

// Lookup indexes suppliers by id for display joins.
func Lookup(records []Supplier) listing.Lookup[int64] {
	return listing.NewLookup(records, func(s Supplier) int64 { return s.ID }, func(s Supplier) string { return s.Name })
}
