package users

import (
	"strconv"

	"github.com/barbox/barbox-admin/internal/analytics/export"
	"github.com/barbox/barbox-admin/internal/listing"
	"github.com/barbox/barbox-admin/internal/masterdata/shared"
	"github.com/barbox/barbox-admin/internal/resource"
)

const Entity = "empleados"

var Schema = resource.Schema[Employee]{
	Entity:     Entity,
	Path:       "empleados",
	Label:      "Empleado",
	IDKind:     resource.NumericKind,
	IDOf:       func(e Employee) resource.ID { return resource.NumericID(e.ID) },
	New:        func() Employee { return Employee{Status: shared.StatusActive} },
	Sensitive:  []string{"password"},
	Searchable: true,
	Status:     shared.Estado(resource.StatusViaUpdate, func(e Employee) string { return e.Status }),
}

func Filters() []listing.Filter[Employee] {
	return []listing.Filter[Employee]{
		listing.Search("search",
			Employee.FullName,
			func(e Employee) string { return e.NationalID },
			func(e Employee) string { return string(e.Username) },
		),
		listing.Equals("rol", func(e Employee) string { return shared.FormatID(e.RoleID) }),
		listing.Equals("estado", func(e Employee) string { return e.Status }),
	}
}

// Columns never includes the password.
func Columns(roles listing.Lookup[int64]) []export.Column[Employee] {
	return []export.Column[Employee]{
		export.Text("ID", func(e Employee) string { return strconv.FormatInt(e.ID, 10) }),
		export.Text("Cédula", func(e Employee) string { return e.NationalID }),
		{Header: "Nombre", Value: Employee.FullName, Width: 35},
		export.Text("Teléfono", func(e Employee) string { return e.Phone }),
		export.Text("Rol", func(e Employee) string { return roles.Name(e.RoleID) }),
		export.Text("Usuario", func(e Employee) string { return string(e.Username) }),
		export.Text("Estado", func(e Employee) string { return shared.StatusLabel(e.Status) }),
	}
}
