package paymentmethods

import (
	"context"
	"strconv"

	"github.com/barbox/barbox-admin/internal/analytics/export"
	"github.com/barbox/barbox-admin/internal/listing"
	"github.com/barbox/barbox-admin/internal/masterdata/shared"
	"github.com/barbox/barbox-admin/internal/resource"
)

const Entity = "metodos-pago"

var Schema = resource.Schema[Method]{
	Entity:     Entity,
	Path:       "metodos-pago",
	Label:      "Método de pago",
	IDKind:     resource.NumericKind,
	IDOf:       func(m Method) resource.ID { return resource.NumericID(m.ID) },
	New:        func() Method { return Method{AvailablePOS: true, Status: shared.StatusActive} },
	Searchable: true,
	Status:     shared.Estado(resource.StatusViaUpdate, func(m Method) string { return m.Status }),
}

func Filters() []listing.Filter[Method] {
	return []listing.Filter[Method]{
		listing.Search("search",
			func(m Method) string { return m.Code },
			func(m Method) string { return m.Name },
		),
		listing.Flag("disponible_pos", func(m Method) bool { return m.AvailablePOS }),
		listing.Flag("disponible_web", func(m Method) bool { return m.AvailableWeb }),
		listing.Equals("estado", func(m Method) string { return m.Status }),
	}
}

func Columns() []export.Column[Method] {
	return []export.Column[Method]{
		export.Text("ID", func(m Method) string { return strconv.FormatInt(m.ID, 10) }),
		export.Text("Código", func(m Method) string { return m.Code }),
		{Header: "Nombre", Value: func(m Method) string { return m.Name }, Width: 25},
		export.Text("POS", func(m Method) string { return shared.YesNo(m.AvailablePOS) }),
		export.Text("Web", func(m Method) string { return shared.YesNo(m.AvailableWeb) }),
		export.Text("Requiere Referencia", func(m Method) string { return shared.YesNo(m.RequiresReference) }),
		export.Text("Estado", func(m Method) string { return shared.StatusLabel(m.Status) }),
	}
}

// AvailableWeb fetches GET /metodos-pago/disponibles-web.
func AvailableWeb(ctx context.Context, client resource.Doer) ([]Method, error) {
	return resource.GetList[Method](ctx, client, "metodos-pago/disponibles-web", nil)
}
