package users

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/barbox/barbox-admin/internal/form"
	"github.com/barbox/barbox-admin/internal/listing"
	"github.com/barbox/barbox-admin/internal/platform/apiclient"
	"github.com/barbox/barbox-admin/internal/resource"
)

type cannedDoer struct {
	body string
}

func (d cannedDoer) Do(context.Context, apiclient.Request) (*apiclient.Response, error) {
	return &apiclient.Response{Status: 200, Body: []byte(d.body)}, nil
}

func TestListDecodesNestedUserAccount(t *testing.T) {
	gw := resource.NewGateway(cannedDoer{body: `{"data":[
		{"id_empleado":3,"nombre1":"Ana","apellido1":"Paz","usuario":{"id_usuario":9,"usuario":"apaz"}},
		{"id_empleado":4,"nombre1":"Luis","apellido1":"Mora","usuario":"lmora"},
		{"id_empleado":5,"nombre1":"Eva","apellido1":"Ruiz","usuario":null}
	]}`}, Schema)

	rows, err := gw.List(context.Background(), nil)
	require.NoError(t, err)
	require.Len(t, rows, 3)
	require.Equal(t, Username("apaz"), rows[0].Username)
	require.Equal(t, Username("lmora"), rows[1].Username)
	require.Empty(t, rows[2].Username)

	hits := listing.Apply(rows, Filters(), listing.Criteria{"search": "APAZ"})
	require.Len(t, hits, 1)
	require.Equal(t, int64(3), hits[0].ID)
}

type captureMutator struct {
	last listing.Mutation
}

func (c *captureMutator) Mutate(_ context.Context, m listing.Mutation) error {
	c.last = m
	return nil
}

func TestNewEmployeeNeedsCredentials(t *testing.T) {
	mut := &captureMutator{}
	f := form.NewController(Schema, mut, form.Options{})
	f.Edit(func(e *Employee) {
		e.NationalID = "1712345678"
		e.FirstName = "Ana"
		e.LastName = "Paz"
		e.RoleID = 2
	})
	require.Error(t, f.Submit(context.Background()))

	f.Edit(func(e *Employee) {
		e.Username = "apaz"
		e.Password = "clave"
	})
	require.NoError(t, f.Submit(context.Background()))
	require.Equal(t, listing.IntentCreate, mut.last.Intent)
}

func TestEditEmployeeKeepsStoredPassword(t *testing.T) {
	mut := &captureMutator{}
	f := form.NewController(Schema, mut, form.Options{})
	f.StartEdit(Employee{ID: 5, NationalID: "1712345678", FirstName: "Ana", LastName: "Paz", RoleID: 2, Username: "apaz"})
	require.NoError(t, f.Submit(context.Background()))

	fields, ok := mut.last.Fields.(map[string]any)
	require.True(t, ok)
	require.NotContains(t, fields, "password")
	require.Equal(t, "apaz", fields["usuario"])
}

func TestUsernameWrittenAsPlainString(t *testing.T) {
	raw, err := json.Marshal(Employee{ID: 3, Username: "apaz"})
	require.NoError(t, err)
	require.Contains(t, string(raw), `"usuario":"apaz"`)
}

func TestColumnsOmitPassword(t *testing.T) {
	for _, col := range Columns(listing.Lookup[int64]{}) {
		require.NotEqual(t, "Password", col.Header)
		require.NotEqual(t, "Contraseña", col.Header)
	}
	require.Equal(t, "Ana María Paz", Employee{FirstName: "Ana", MiddleName: " María ", LastName: "Paz"}.FullName())
}
