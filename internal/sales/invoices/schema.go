package invoices

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/barbox/barbox-admin/internal/analytics/export"
	"github.com/barbox/barbox-admin/internal/listing"
	"github.com/barbox/barbox-admin/internal/resource"
	"github.com/barbox/barbox-admin/internal/shared"
)

const Entity = "facturas"

var Schema = resource.Schema[Invoice]{
	Entity: Entity,
	Path:   "facturas",
	Label:  "Factura",
	IDKind: resource.NumericKind,
	IDOf:   func(i Invoice) resource.ID { return resource.NumericID(i.ID) },
}

func Filters() []listing.Filter[Invoice] {
	return []listing.Filter[Invoice]{
		listing.Search("search",
			func(i Invoice) string { return strconv.FormatInt(i.ID, 10) },
			func(i Invoice) string { return i.Number },
		),
		listing.Equals("cliente", func(i Invoice) string { return strconv.FormatInt(i.CustomerID, 10) }),
		listing.Equals("estado", func(i Invoice) string { return i.Status }),
		listing.DateRange("fecha_inicio", "fecha_fin", func(i Invoice) string { return i.IssuedAt }),
		listing.NumberRange("monto_min", "monto_max", func(i Invoice) float64 { return i.Total.Float64() }),
	}
}

func Columns(customers listing.Lookup[int64]) []export.Column[Invoice] {
	return []export.Column[Invoice]{
		export.Text("ID", func(i Invoice) string { return strconv.FormatInt(i.ID, 10) }),
		export.Text("Número", func(i Invoice) string { return i.Number }),
		{Header: "Cliente", Value: func(i Invoice) string { return customers.Name(i.CustomerID) }, Width: 30},
		export.Text("Fecha", func(i Invoice) string { return dateOnly(i.IssuedAt) }),
		export.Number("Subtotal", func(i Invoice) float64 { return i.Subtotal.Float64() }),
		export.Number("IVA", func(i Invoice) float64 { return i.Tax.Float64() }),
		export.Number("Descuento", func(i Invoice) float64 { return i.Discount.Float64() }),
		export.Number("Total", func(i Invoice) float64 { return i.Total.Float64() }),
		export.Text("Estado", func(i Invoice) string { return StatusLabel(i.Status) }),
	}
}

// AnnulPrompt is the confirmation shown before annulling inv.
func AnnulPrompt(inv Invoice) string {
	return fmt.Sprintf("¿Está seguro de anular la factura #%d? Esta acción devolverá el stock.", inv.ID)
}

// Annul builds the POST /facturas/{id}/anular mutation. A reason is
// mandatory.
func Annul(inv Invoice, reason string) (listing.Mutation, error) {
	reason = strings.TrimSpace(reason)
	if reason == "" {
		return listing.Mutation{}, fmt.Errorf("motivo de anulación: %w", shared.ErrValidation)
	}
	return listing.Mutation{
		Intent:  listing.IntentAction,
		ID:      Schema.IDOf(inv),
		Method:  http.MethodPost,
		Action:  "anular",
		Fields:  map[string]string{"motivo": reason},
		Success: "Factura anulada exitosamente",
	}, nil
}

// ForCustomer fetches GET /clientes/{id}/facturas.
func ForCustomer(ctx context.Context, client resource.Doer, customer resource.ID) ([]Invoice, error) {
	if err := customer.Validate(resource.NumericKind); err != nil {
		return nil, fmt.Errorf("facturas del cliente: %w", err)
	}
	return resource.GetList[Invoice](ctx, client, "clientes/"+customer.String()+"/facturas", nil)
}

func dateOnly(raw string) string {
	if day, ok := listing.ParseDay(raw); ok {
		return day.Format("2006-01-02")
	}
	return raw
}
