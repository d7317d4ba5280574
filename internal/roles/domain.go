package roles

import (
	"context"

	"github.com/barbox/barbox-admin/internal/listing"
	"github.com/barbox/barbox-admin/internal/resource"
)

// Role is an access profile assigned to employees. The console only reads
// the catalog.
type Role struct {
	ID          int64  `json:"id_rol"`
	Name        string `json:"nombre"`
	Description string `json:"descripcion,omitempty"`
}

// List fetches GET /roles.
func List(ctx context.Context, client resource.Doer) ([]Role, error) {
	return resource.GetList[Role](ctx, client, "roles", nil)
}

// Lookup indexes roles by id for display joins.
func Lookup(records []Role) listing.Lookup[int64] {
	return listing.NewLookup(records, func(r Role) int64 { return r.ID }, func(r Role) string { return r.Name })
}
