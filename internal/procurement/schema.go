package procurement

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/barbox/barbox-admin/internal/analytics/export"
	"github.com/barbox/barbox-admin/internal/listing"
	"github.com/barbox/barbox-admin/internal/resource"
)

const (
	PurchaseEntity = "compras"
	ReceiptEntity  = "recepciones"
)

func today() string {
	return time.Now().Format("2006-01-02")
}

// PurchaseSchema describes purchase orders. Rows without a product are
// dropped before submission.
var PurchaseSchema = resource.Schema[Purchase]{
	Entity: PurchaseEntity,
	Path:   "compras",
	Label:  "Compra",
	IDKind: resource.NumericKind,
	IDOf:   func(p Purchase) resource.ID { return resource.NumericID(p.ID) },
	New: func() Purchase {
		return Purchase{OrderedAt: today(), Lines: []Line{blankLine()}}
	},
	Normalize: func(p *Purchase) {
		p.Lines = SubmittableLines(p.Lines)
		p.Notes = strings.TrimSpace(p.Notes)
	},
	DeletePrompt: "¿Está seguro de eliminar esta compra?",
}

// ReceiptSchema describes goods receipts under bodega/recepciones.
var ReceiptSchema = resource.Schema[Receipt]{
	Entity: ReceiptEntity,
	Path:   "bodega/recepciones",
	Label:  "Recepción",
	IDKind: resource.NumericKind,
	IDOf:   func(r Receipt) resource.ID { return resource.NumericID(r.ID) },
	New:    func() Receipt { return Receipt{ReceivedAt: today()} },
}

// PurchaseFilters returns the purchase filters. The search also matches the
// supplier name through suppliers.
func PurchaseFilters(suppliers listing.Lookup[int64]) []listing.Filter[Purchase] {
	return []listing.Filter[Purchase]{
		listing.Search("search",
			func(p Purchase) string { return strconv.FormatInt(p.ID, 10) },
			func(p Purchase) string { return suppliers.Name(p.SupplierID) },
		),
		listing.Equals("proveedor", func(p Purchase) string { return strconv.FormatInt(p.SupplierID, 10) }),
		listing.Equals("estado", func(p Purchase) string { return p.Status }),
		listing.DateRange("fecha_inicio", "fecha_fin", func(p Purchase) string { return p.OrderedAt }),
	}
}

// ReceiptFilters returns the receipt filters.
func ReceiptFilters() []listing.Filter[Receipt] {
	return []listing.Filter[Receipt]{
		listing.Search("search",
			func(r Receipt) string { return strconv.FormatInt(r.ID, 10) },
			func(r Receipt) string { return strconv.FormatInt(r.PurchaseID, 10) },
			func(r Receipt) string { return r.Notes },
		),
		listing.Equals("compra", func(r Receipt) string { return strconv.FormatInt(r.PurchaseID, 10) }),
		listing.Equals("estado", func(r Receipt) string { return r.Status }),
		listing.DateRange("fecha_desde", "fecha_hasta", func(r Receipt) string { return r.ReceivedAt }),
	}
}

func PurchaseColumns(suppliers listing.Lookup[int64]) []export.Column[Purchase] {
	return []export.Column[Purchase]{
		export.Text("ID", func(p Purchase) string { return strconv.FormatInt(p.ID, 10) }),
		{Header: "Proveedor", Value: func(p Purchase) string { return suppliers.Name(p.SupplierID) }, Width: 30},
		export.Text("Fecha", func(p Purchase) string { return p.OrderedAt }),
		export.Number("Total", func(p Purchase) float64 { return p.Total.Float64() }),
		export.Text("Estado", func(p Purchase) string { return PurchaseStatusLabel(p.Status) }),
	}
}

func ReceiptColumns() []export.Column[Receipt] {
	return []export.Column[Receipt]{
		export.Text("ID", func(r Receipt) string { return strconv.FormatInt(r.ID, 10) }),
		export.Text("Compra", func(r Receipt) string { return strconv.FormatInt(r.PurchaseID, 10) }),
		export.Text("Fecha", func(r Receipt) string { return r.ReceivedAt }),
		{Header: "Notas", Value: func(r Receipt) string { return r.Notes }, Width: 40},
		export.Text("Estado", func(r Receipt) string { return ReceiptStatusLabel(r.Status) }),
	}
}

// ApprovePrompt is the confirmation shown before approving p.
func ApprovePrompt(p Purchase) string {
	return fmt.Sprintf("¿Aprobar la compra #%d?", p.ID)
}

// Approve builds the PUT /compras/{id}/aprobar mutation. Only pending
// purchases can be approved.
func Approve(p Purchase) (listing.Mutation, error) {
	if p.Status != "" && p.Status != PurchasePending {
		return listing.Mutation{}, fmt.Errorf("compra #%d (%s): %w", p.ID, PurchaseStatusLabel(p.Status), ErrNotPending)
	}
	return listing.Mutation{
		Intent:  listing.IntentAction,
		ID:      PurchaseSchema.IDOf(p),
		Method:  http.MethodPut,
		Action:  "aprobar",
		Success: "Compra aprobada exitosamente",
	}, nil
}

// AnnulReceiptPrompt is the confirmation shown before annulling r.
func AnnulReceiptPrompt(r Receipt) string {
	return fmt.Sprintf("¿Está seguro de anular la recepción #%d? Esto restará el stock.", r.ID)
}

// AnnulReceipt builds the DELETE /bodega/recepciones/{id} mutation. The
// reason is optional and sent as the request body.
func AnnulReceipt(r Receipt, reason string) listing.Mutation {
	m := listing.Mutation{
		Intent:  listing.IntentDelete,
		ID:      ReceiptSchema.IDOf(r),
		Success: "Recepción anulada. Stock restado.",
	}
	if reason = strings.TrimSpace(reason); reason != "" {
		m.Fields = map[string]string{"motivo": reason}
	}
	return m
}
