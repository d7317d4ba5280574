package analytics

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/barbox/barbox-admin/internal/masterdata/products"
	"github.com/barbox/barbox-admin/internal/procurement"
	"github.com/barbox/barbox-admin/internal/sales/customers"
	"github.com/barbox/barbox-admin/internal/sales/invoices"
)

// LowStockItem is a product at or under its minimum stock.
type LowStockItem struct {
	ID          string          `json:"id_producto"`
	Description string          `json:"descripcion"`
	Stock       decimal.Decimal `json:"stock_actual"`
	MinStock    decimal.Decimal `json:"stock_minimo"`
}

// Dashboard contains the indicators shown on the landing view.
type Dashboard struct {
	TotalSales       decimal.Decimal `json:"total_sales"`
	IssuedInvoices   int             `json:"issued_invoices"`
	Products         int             `json:"products"`
	LowStock         []LowStockItem  `json:"low_stock"`
	InventoryValue   decimal.Decimal `json:"inventory_value"`
	Customers        int             `json:"customers"`
	Purchases        int             `json:"purchases"`
	PendingPurchases int             `json:"pending_purchases"`
	GeneratedAt      time.Time       `json:"generated_at"`
}

// Summarize aggregates the four collections. Sales only count issued
// invoices; inventory value is Σ purchase price × stock.
func Summarize(prods []products.Product, custs []customers.Customer, invs []invoices.Invoice, purchases []procurement.Purchase, now time.Time) Dashboard {
	d := Dashboard{
		TotalSales:     decimal.Zero,
		InventoryValue: decimal.Zero,
		LowStock:       []LowStockItem{},
		Products:       len(prods),
		Customers:      len(custs),
		Purchases:      len(purchases),
		GeneratedAt:    now.UTC(),
	}
	for _, inv := range invs {
		if inv.Status != invoices.StatusIssued {
			continue
		}
		d.IssuedInvoices++
		d.TotalSales = d.TotalSales.Add(inv.Total.Decimal())
	}
	for _, p := range prods {
		d.InventoryValue = d.InventoryValue.Add(p.PurchasePrice.Decimal().Mul(p.Stock.Decimal()))
		if p.LowStock() {
			d.LowStock = append(d.LowStock, LowStockItem{
				ID:          p.ID,
				Description: p.Description,
				Stock:       p.Stock.Decimal(),
				MinStock:    p.MinStock.Decimal(),
			})
		}
	}
	d.TotalSales = d.TotalSales.Round(2)
	d.InventoryValue = d.InventoryValue.Round(2)
	for _, po := range purchases {
		if po.Status == procurement.PurchasePending {
			d.PendingPurchases++
		}
	}
	return d
}
