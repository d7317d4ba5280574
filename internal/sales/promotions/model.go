package promotions

import "github.com/barbox/barbox-admin/internal/resource"

// Promotion is a percentage discount valid between two dates.
type Promotion struct {
	ID          int64           `json:"id_promocion,omitempty"`
	Description string          `json:"descripcion" validate:"required"`
	Discount    resource.Number `json:"descuento" validate:"required"`
	StartDate   string          `json:"fecha_inicio" validate:"required"`
	EndDate     string          `json:"fecha_fin" validate:"required"`
	Status      string          `json:"estado"`
}
