package products

import (
	"github.com/barbox/barbox-admin/internal/resource"
)

// Product is a catalog item identified by a code such as "P000016".
type Product struct {
	ID            string          `json:"id_producto,omitempty"`
	Description   string          `json:"descripcion" validate:"required"`
	PurchasePrice resource.Number `json:"precio_compra"`
	SalePrice     resource.Number `json:"precio_venta" validate:"required"`
	Stock         resource.Number `json:"stock_actual"`
	MinStock      resource.Number `json:"stock_minimo"`
	CategoryID    int64           `json:"id_categoria,omitempty"`
	BrandID       int64           `json:"id_marca,omitempty"`
	TaxID         int64           `json:"id_iva,omitempty"`
	Volume        resource.Number `json:"volumen,omitempty"`
	AlcoholVol    resource.Number `json:"alcohol_vol,omitempty"`
	Origin        string          `json:"origen,omitempty"`
	TastingNotes  string          `json:"notas_cata,omitempty"`
	ImageURL      string          `json:"imagen_url,omitempty"`
	Status        string          `json:"estado"`
}

// LowStock reports whether the stock is at or under the minimum.
func (p Product) LowStock() bool {
	return p.Stock <= p.MinStock
}
