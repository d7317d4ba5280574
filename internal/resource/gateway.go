package resource

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/barbox/barbox-admin/internal/platform/apiclient"
)

// ErrNoStatus is returned by SetStatus for entities without a status field.
var ErrNoStatus = errors.New("entity has no status field")

// Doer executes one backend call.
type Doer interface {
	Do(ctx context.Context, req apiclient.Request) (*apiclient.Response, error)
}

// Gateway maps each operation on one entity to exactly one REST call.
type Gateway[T any] struct {
	client Doer
	schema Schema[T]
}

// NewGateway constructs a gateway for schema.
func NewGateway[T any](client Doer, schema Schema[T]) *Gateway[T] {
	return &Gateway[T]{client: client, schema: schema}
}

// Schema returns the entity schema.
func (g *Gateway[T]) Schema() Schema[T] {
	return g.schema
}

// List fetches the collection.
func (g *Gateway[T]) List(ctx context.Context, params map[string]string) ([]T, error) {
	return GetList[T](ctx, g.client, g.schema.Path, params)
}

// Search queries GET /{resource}/buscar.
func (g *Gateway[T]) Search(ctx context.Context, params map[string]string) ([]T, error) {
	if !g.schema.Searchable {
		return nil, fmt.Errorf("%s: search not supported", g.schema.Entity)
	}
	return GetList[T](ctx, g.client, g.schema.Path+"/buscar", params)
}

// Get fetches one record.
func (g *Gateway[T]) Get(ctx context.Context, id ID) (T, error) {
	path, err := g.path(id)
	if err != nil {
		var zero T
		return zero, err
	}
	return g.one(ctx, http.MethodGet, path, nil)
}

// Create posts a new record.
func (g *Gateway[T]) Create(ctx context.Context, fields any) (T, error) {
	return g.one(ctx, http.MethodPost, "/"+g.schema.Path, fields)
}

// Update replaces a record's fields.
func (g *Gateway[T]) Update(ctx context.Context, id ID, fields any) (T, error) {
	path, err := g.path(id)
	if err != nil {
		var zero T
		return zero, err
	}
	return g.one(ctx, http.MethodPut, path, fields)
}

// SetStatus writes the status field through the route the schema declares.
// with holds companion fields; the status field always takes value.
func (g *Gateway[T]) SetStatus(ctx context.Context, id ID, value any, with map[string]any) (T, error) {
	var zero T
	status := g.schema.Status
	if status == nil {
		return zero, fmt.Errorf("%s: %w", g.schema.Entity, ErrNoStatus)
	}
	path, err := g.path(id)
	if err != nil {
		return zero, err
	}
	if status.Route == StatusViaAction {
		path += "/estado"
	}
	body := make(map[string]any, len(with)+1)
	for k, v := range with {
		body[k] = v
	}
	body[status.Field] = value
	return g.one(ctx, http.MethodPut, path, body)
}

// Delete removes a record. body is optional.
func (g *Gateway[T]) Delete(ctx context.Context, id ID, body any) error {
	path, err := g.path(id)
	if err != nil {
		return err
	}
	_, err = g.client.Do(ctx, apiclient.Request{Method: http.MethodDelete, Path: path, Body: body, Resource: g.schema.Path})
	return err
}

// Action calls a domain action such as aprobar or anular.
func (g *Gateway[T]) Action(ctx context.Context, method string, id ID, action string, body any) (T, error) {
	path, err := g.path(id)
	if err != nil {
		var zero T
		return zero, err
	}
	return g.one(ctx, method, path+"/"+action, body)
}

func (g *Gateway[T]) path(id ID) (string, error) {
	if err := id.Validate(g.schema.IDKind); err != nil {
		return "", fmt.Errorf("%s: %w", g.schema.Entity, err)
	}
	return "/" + g.schema.Path + "/" + url.PathEscape(id.String()), nil
}

func (g *Gateway[T]) one(ctx context.Context, method, path string, body any) (T, error) {
	var zero T
	resp, err := g.client.Do(ctx, apiclient.Request{Method: method, Path: path, Body: body, Resource: g.schema.Path})
	if err != nil {
		return zero, err
	}
	return decodeOne[T](resp.Body)
}

// GetList fetches any list endpoint and unwraps the response envelope.
func GetList[R any](ctx context.Context, client Doer, path string, params map[string]string) ([]R, error) {
	resp, err := client.Do(ctx, apiclient.Request{
		Method:   http.MethodGet,
		Path:     "/" + strings.TrimPrefix(path, "/"),
		Query:    params,
		Resource: strings.TrimPrefix(path, "/"),
	})
	if err != nil {
		return nil, err
	}
	return decodeList[R](resp.Body)
}

// GetOne fetches any single-record endpoint and unwraps the response envelope.
func GetOne[R any](ctx context.Context, client Doer, path string) (R, error) {
	resp, err := client.Do(ctx, apiclient.Request{
		Method:   http.MethodGet,
		Path:     "/" + strings.TrimPrefix(path, "/"),
		Resource: strings.TrimPrefix(path, "/"),
	})
	if err != nil {
		var zero R
		return zero, err
	}
	return decodeOne[R](resp.Body)
}

// Decode unwraps a single-record response body.
func Decode[R any](body []byte) (R, error) {
	return decodeOne[R](body)
}

type envelope struct {
	Data json.RawMessage `json:"data"`
}

// unwrap returns the payload of a {"data": ...} envelope, or body itself.
func unwrap(body []byte) []byte {
	trimmed := bytes.TrimSpace(body)
	if len(trimmed) == 0 || trimmed[0] != '{' {
		return trimmed
	}
	var env envelope
	if err := json.Unmarshal(trimmed, &env); err != nil {
		return trimmed
	}
	data := bytes.TrimSpace(env.Data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		return trimmed
	}
	return data
}

// decodeList accepts a bare array or an enveloped array. Any other
// well-formed payload is an empty list.
func decodeList[R any](body []byte) ([]R, error) {
	payload := unwrap(body)
	if len(payload) == 0 || payload[0] != '[' {
		return []R{}, nil
	}
	var out []R
	if err := json.Unmarshal(payload, &out); err != nil {
		return nil, fmt.Errorf("decode list: %w", err)
	}
	if out == nil {
		out = []R{}
	}
	return out, nil
}

func decodeOne[R any](body []byte) (R, error) {
	var out R
	payload := unwrap(body)
	if len(payload) == 0 || payload[0] != '{' {
		return out, nil
	}
	if err := json.Unmarshal(payload, &out); err != nil {
		return out, fmt.Errorf("decode record: %w", err)
	}
	return out, nil
}
