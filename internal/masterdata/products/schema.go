package products

import (
	"github.com/barbox/barbox-admin/internal/analytics/export"
	"github.com/barbox/barbox-admin/internal/listing"
	"github.com/barbox/barbox-admin/internal/masterdata/shared"
	"github.com/barbox/barbox-admin/internal/resource"
)

// Entity is the stable key of the product list.
const Entity = "productos"

// Schema describes products to the generic controllers. The status is
// written through PUT /productos/{id}/estado.
var Schema = resource.Schema[Product]{
	Entity:     Entity,
	Path:       "productos",
	Label:      "Producto",
	IDKind:     resource.CodeKind,
	IDOf:       func(p Product) resource.ID { return resource.CodeID(p.ID) },
	New:        func() Product { return Product{Status: shared.StatusActive} },
	Searchable: true,
	Status:     shared.Estado(resource.StatusViaAction, func(p Product) string { return p.Status }),
}

// Filters returns the product list filters.
func Filters() []listing.Filter[Product] {
	return []listing.Filter[Product]{
		listing.Search("search",
			func(p Product) string { return p.Description },
			func(p Product) string { return p.ID },
		),
		listing.Equals("categoria", func(p Product) string { return shared.FormatID(p.CategoryID) }),
		listing.Equals("marca", func(p Product) string { return shared.FormatID(p.BrandID) }),
		listing.Equals("estado", func(p Product) string { return p.Status }),
		listing.When("stock_bajo", Product.LowStock),
		listing.NumberRange("precio_min", "precio_max", func(p Product) float64 { return p.SalePrice.Float64() }),
	}
}

// Columns returns the export layout. Category and brand names come from the
// given lookups.
func Columns(categories, brands listing.Lookup[int64]) []export.Column[Product] {
	return []export.Column[Product]{
		{Header: "Código", Value: func(p Product) string { return p.ID }, Width: 12},
		{Header: "Descripción", Value: func(p Product) string { return p.Description }, Width: 40},
		{Header: "Categoría", Value: func(p Product) string { return categories.Name(p.CategoryID) }, Width: 20},
		{Header: "Marca", Value: func(p Product) string { return brands.Name(p.BrandID) }, Width: 20},
		export.Number("Precio Compra", func(p Product) float64 { return p.PurchasePrice.Float64() }),
		export.Number("Precio Venta", func(p Product) float64 { return p.SalePrice.Float64() }),
		export.Number("Stock", func(p Product) float64 { return p.Stock.Float64() }),
		export.Number("Stock Mínimo", func(p Product) float64 { return p.MinStock.Float64() }),
		export.Text("Estado", func(p Product) string { return shared.StatusLabel(p.Status) }),
	}
}
