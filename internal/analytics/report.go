package analytics

import (
	"fmt"
	"io"
	"strconv"
	"text/tabwriter"

	"github.com/barbox/barbox-admin/internal/analytics/export"
)

type metric struct {
	Name  string
	Value string
}

var metricColumns = []export.Column[metric]{
	export.Text("Indicador", func(m metric) string { return m.Name }),
	export.Text("Valor", func(m metric) string { return m.Value }),
}

func (d Dashboard) metrics() []metric {
	return []metric{
		{"Total Ventas", d.TotalSales.StringFixed(2)},
		{"Facturas Emitidas", strconv.Itoa(d.IssuedInvoices)},
		{"Productos", strconv.Itoa(d.Products)},
		{"Productos con Stock Bajo", strconv.Itoa(len(d.LowStock))},
		{"Valor Inventario", d.InventoryValue.StringFixed(2)},
		{"Clientes", strconv.Itoa(d.Customers)},
		{"Compras", strconv.Itoa(d.Purchases)},
		{"Compras Pendientes", strconv.Itoa(d.PendingPurchases)},
	}
}

// WriteCSV serialises the dashboard indicators.
func (d Dashboard) WriteCSV(w io.Writer) error {
	return export.WriteCSV(w, metricColumns, d.metrics())
}

// WriteXLSX serialises the dashboard indicators into a workbook.
func (d Dashboard) WriteXLSX(w io.Writer) error {
	return export.WriteXLSX(w, "Dashboard", metricColumns, d.metrics())
}

// WriteText prints the indicators and the low-stock products as aligned
// columns.
func (d Dashboard) WriteText(w io.Writer) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	for _, m := range d.metrics() {
		fmt.Fprintf(tw, "%s\t%s\n", m.Name, m.Value)
	}
	if len(d.LowStock) > 0 {
		fmt.Fprintln(tw, "\nStock bajo\t")
		for _, item := range d.LowStock {
			fmt.Fprintf(tw, "  %s %s\t%s / %s\n", item.ID, item.Description, item.Stock.String(), item.MinStock.String())
		}
	}
	return tw.Flush()
}
