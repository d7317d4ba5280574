package units

import (
	"context"

	"github.com/barbox/barbox-admin/internal/listing"
	"github.com/barbox/barbox-admin/internal/resource"
)

// List fetches GET /unidades-medida.
func List(ctx context.Context, client resource.Doer) ([]Unit, error) {
	return resource.GetList[Unit](ctx, client, "unidades-medida", nil)
}

// Lookup indexes units by id.
func Lookup(records []Unit) listing.Lookup[int64] {
	return listing.NewLookup(records, func(u Unit) int64 { return u.ID }, func(u Unit) string { return u.Name })
}
