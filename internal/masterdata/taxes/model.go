package taxes

import "github.com/barbox/barbox-admin/internal/resource"

// Tax is a VAT rate with the date it takes effect.
type Tax struct {
	ID          int64           `json:"id_iva,omitempty"`
	Rate        resource.Number `json:"porcentaje" validate:"required"`
	Description string          `json:"descripcion,omitempty"`
	StartDate   string          `json:"fecha_inicio,omitempty"`
	Status      string          `json:"estado"`
}
