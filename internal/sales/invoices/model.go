package invoices

import "github.com/barbox/barbox-admin/internal/resource"

// Invoice states.
const (
	StatusIssued    = "EMI"
	StatusPaid      = "PAG"
	StatusCancelled = "ANU"
)

// Invoice is a sales invoice. Invoices are issued by the point of sale and
// only read or annulled from the console.
type Invoice struct {
	ID         int64           `json:"id_factura,omitempty"`
	Number     string          `json:"numero_factura,omitempty"`
	CustomerID int64           `json:"id_cliente,omitempty"`
	IssuedAt   string          `json:"fecha_emision,omitempty"`
	Subtotal   resource.Number `json:"subtotal"`
	Tax        resource.Number `json:"iva"`
	Discount   resource.Number `json:"descuento"`
	Total      resource.Number `json:"total"`
	Type       string          `json:"tipo_factura,omitempty"`
	Status     string          `json:"estado"`
}

// StatusLabel renders an invoice state in words.
func StatusLabel(code string) string {
	switch code {
	case StatusIssued:
		return "Emitida"
	case StatusPaid:
		return "Pagada"
	case StatusCancelled:
		return "Anulada"
	default:
		return code
	}
}
