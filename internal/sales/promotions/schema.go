package promotions

import (
	"strconv"
	"time"

	"github.com/barbox/barbox-admin/internal/analytics/export"
	"github.com/barbox/barbox-admin/internal/listing"
	"github.com/barbox/barbox-admin/internal/masterdata/shared"
	"github.com/barbox/barbox-admin/internal/resource"
)

const Entity = "promociones"

// Schema describes promotions. They are removed with DELETE.
var Schema = resource.Schema[Promotion]{
	Entity:       Entity,
	Path:         "promociones",
	Label:        "Promoción",
	IDKind:       resource.NumericKind,
	IDOf:         func(p Promotion) resource.ID { return resource.NumericID(p.ID) },
	New:          func() Promotion { return Promotion{Status: shared.StatusActive} },
	DeletePrompt: "¿Está seguro de eliminar esta promoción permanentemente?",
}

// ActiveOn reports whether day falls within the promotion's dates.
func (p Promotion) ActiveOn(day time.Time) bool {
	start, okStart := listing.ParseDay(p.StartDate)
	end, okEnd := listing.ParseDay(p.EndDate)
	if !okStart || !okEnd {
		return false
	}
	y, m, d := day.Date()
	today := time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
	return !today.Before(start) && !today.After(end)
}

// Filters returns the promotion filters; now supplies "today" for vigentes.
func Filters(now func() time.Time) []listing.Filter[Promotion] {
	if now == nil {
		now = time.Now
	}
	return []listing.Filter[Promotion]{
		listing.Search("search", func(p Promotion) string { return p.Description }),
		listing.Equals("estado", func(p Promotion) string { return p.Status }),
		listing.When("vigentes", func(p Promotion) bool { return p.ActiveOn(now()) }),
		listing.DateFrom("fecha_inicio", func(p Promotion) string { return p.StartDate }),
		listing.DateUntil("fecha_fin", func(p Promotion) string { return p.EndDate }),
	}
}

func Columns() []export.Column[Promotion] {
	return []export.Column[Promotion]{
		export.Text("ID", func(p Promotion) string { return strconv.FormatInt(p.ID, 10) }),
		{Header: "Descripción", Value: func(p Promotion) string { return p.Description }, Width: 40},
		export.Number("Descuento %", func(p Promotion) float64 { return p.Discount.Float64() }),
		export.Text("Fecha Inicio", func(p Promotion) string { return p.StartDate }),
		export.Text("Fecha Fin", func(p Promotion) string { return p.EndDate }),
		export.Text("Estado", func(p Promotion) string { return shared.StatusLabel(p.Status) }),
	}
}
