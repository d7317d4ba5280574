package procurement

import (
	"errors"

	"github.com/barbox/barbox-admin/internal/resource"
)

var (
	// ErrNotPending is returned when approving a purchase that is no longer
	// pending.
	ErrNotPending = errors.New("procurement: purchase is not pending")
	// ErrLineIndex is returned for an out-of-range line.
	ErrLineIndex = errors.New("procurement: line index out of range")
)

// Purchase order states.
const (
	PurchasePending   = "PEN"
	PurchaseApproved  = "APR"
	PurchaseCancelled = "ANU"
)

// Goods receipt states.
const (
	ReceiptReceived  = "REC"
	ReceiptCancelled = "ANU"
)

// Line is one product row of a purchase order.
type Line struct {
	ProductID string          `json:"id_producto"`
	Quantity  resource.Number `json:"cantidad"`
	Price     resource.Number `json:"precio_compra"`
}

// Purchase is a purchase order sent to a supplier.
type Purchase struct {
	ID         int64           `json:"id_compra,omitempty"`
	SupplierID int64           `json:"id_proveedor" validate:"required"`
	OrderedAt  string          `json:"fecha_pedido,omitempty"`
	Notes      string          `json:"observaciones,omitempty"`
	Total      resource.Number `json:"total,omitempty"`
	Status     string          `json:"estado,omitempty"`
	Lines      []Line          `json:"detalles,omitempty" validate:"min=1"`
}

// Receipt records goods received against a purchase order.
type Receipt struct {
	ID         int64  `json:"id_recepcion,omitempty"`
	PurchaseID int64  `json:"id_compra" validate:"required"`
	ReceivedAt string `json:"fecha_recepcion,omitempty"`
	Notes      string `json:"notas,omitempty"`
	Status     string `json:"estado,omitempty"`
}

// PurchaseStatusLabel renders a purchase state in words.
func PurchaseStatusLabel(code string) string {
	switch code {
	case PurchasePending:
		return "Pendiente"
	case PurchaseApproved:
		return "Aprobada"
	case PurchaseCancelled:
		return "Anulada"
	default:
		return code
	}
}

// ReceiptStatusLabel renders a receipt state in words.
func ReceiptStatusLabel(code string) string {
	switch code {
	case ReceiptReceived:
		return "Recibida"
	case ReceiptCancelled:
		return "Anulada"
	default:
		return code
	}
}
