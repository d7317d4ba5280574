package products_test

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/barbox/barbox-admin/internal/auth"
	"github.com/barbox/barbox-admin/internal/listing"
	"github.com/barbox/barbox-admin/internal/masterdata/products"
	"github.com/barbox/barbox-admin/internal/platform/apiclient"
	"github.com/barbox/barbox-admin/internal/resource"
	"github.com/barbox/barbox-admin/internal/testing/fakeapi"
)

func newController(t *testing.T, srv *fakeapi.Server) *listing.Controller[products.Product] {
	t.Helper()
	tokens := auth.NewMemoryStore()
	require.NoError(t, tokens.SetToken(context.Background(), srv.Token()))
	client := apiclient.New(apiclient.Config{BaseURL: srv.URL, Timeout: 2 * time.Second}, tokens, apiclient.Options{})
	return listing.NewController[products.Product](resource.NewGateway(client, products.Schema), products.Filters(), listing.Options{})
}

func TestToggleProductUsesEstadoRoute(t *testing.T) {
	srv := fakeapi.New(t)
	srv.UseEnvelope(true)
	srv.Seed("productos", "id_producto", fakeapi.Record{
		"id_producto": "P000016", "descripcion": "Ron Añejo", "precio_venta": "18.90", "estado": "ACT",
	})
	ctrl := newController(t, srv)
	ctx := context.Background()
	require.NoError(t, ctrl.Load(ctx))

	rec, ok := ctrl.Find(resource.CodeID("P000016"))
	require.True(t, ok)
	require.Equal(t, resource.Number(18.90), rec.SalePrice)

	done, err := ctrl.ToggleStatus(ctx, rec, nil)
	require.NoError(t, err)
	require.True(t, done)

	calls := srv.CallsTo(http.MethodPut, "/productos/P000016/estado")
	require.Len(t, calls, 1)
	require.Equal(t, fakeapi.Record{"estado": "INA"}, calls[0].JSON())

	rec, _ = ctrl.Find(resource.CodeID("P000016"))
	require.Equal(t, "INA", rec.Status)
}

func TestProductFilters(t *testing.T) {
	prods := []products.Product{
		{ID: "P000001", Description: "Whisky Escocés", SalePrice: 45, Stock: 2, MinStock: 5, BrandID: 3, Status: "ACT"},
		{ID: "P000002", Description: "Cerveza Artesanal", SalePrice: 3.5, Stock: 120, MinStock: 24, BrandID: 4, Status: "ACT"},
		{ID: "P000003", Description: "Vino Tinto", SalePrice: 12, Stock: 10, MinStock: 10, BrandID: 3, Status: "INA"},
	}

	got := listing.Apply(prods, products.Filters(), listing.Criteria{"stock_bajo": "true"})
	require.Len(t, got, 2)

	got = listing.Apply(prods, products.Filters(), listing.Criteria{"marca": "3", "precio_min": "20"})
	require.Equal(t, []products.Product{prods[0]}, got)

	got = listing.Apply(prods, products.Filters(), listing.Criteria{"search": "ESCOC"})
	require.Equal(t, "P000001", got[0].ID)
}

func TestProductIDRejectsPlaceholder(t *testing.T) {
	srv := fakeapi.New(t)
	ctrl := newController(t, srv)

	_, err := ctrl.ToggleStatus(context.Background(), products.Product{ID: "undefined", Status: "ACT"}, nil)
	require.ErrorIs(t, err, resource.ErrInvalidID)
	require.Empty(t, srv.CallsTo(http.MethodPut, "/productos/undefined/estado"))
}
