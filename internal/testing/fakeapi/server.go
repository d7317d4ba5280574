// Package fakeapi is an in-memory stand-in for the BARBOX REST backend used
// by package tests.
package fakeapi

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strconv"
	"sync"
	"testing"

	"github.com/go-chi/chi/v5"

	"github.com/barbox/barbox-admin/internal/platform/httpx"
)

// Record is one stored JSON object.
type Record map[string]any

// Call is one request received by the server.
type Call struct {
	Method string
	Path   string
	Query  string
	Header http.Header
	Body   []byte
}

// JSON decodes the request body into a generic map.
func (c Call) JSON() Record {
	out := Record{}
	_ = json.Unmarshal(c.Body, &out)
	return out
}

type collection struct {
	idField string
	order   []string
	rows    map[string]Record
	nextID  int64
}

// Server serves /{resource} CRUD endpoints over in-memory collections.
type Server struct {
	*httptest.Server

	mu          sync.Mutex
	collections map[string]*collection
	calls       []Call
	canned      map[string]canned
	token       string
	envelope    bool
	expired     bool
	hold        chan struct{}
}

type canned struct {
	status int
	body   any
}

// actionStatus is the status an action route leaves the record in.
var actionStatus = map[string]string{
	"aprobar": "APR",
	"anular":  "ANU",
}

// New starts a server that is closed when the test ends.
func New(t testing.TB) *Server {
	t.Helper()
	s := &Server{
		collections: map[string]*collection{},
		canned:      map[string]canned{},
		token:       "test-token",
	}
	s.Server = httptest.NewServer(s.routes())
	t.Cleanup(s.Close)
	return s
}

func (s *Server) routes() http.Handler {
	r := chi.NewRouter()
	r.Use(s.record)
	r.Use(s.cannedResponses)
	r.Post("/auth/login", s.login)
	r.Group(func(r chi.Router) {
		r.Use(s.authenticate)
		r.Route("/bodega/{resource}", s.resourceRoutes("bodega/"))
		r.Route("/{resource}", s.resourceRoutes(""))
	})
	return r
}

func (s *Server) resourceRoutes(prefix string) func(chi.Router) {
	return func(r chi.Router) {
		r.Get("/", s.list(prefix))
		r.Get("/buscar", s.list(prefix))
		r.Post("/", s.create(prefix))
		r.Get("/{id}", s.get(prefix))
		r.Put("/{id}", s.update(prefix))
		r.Delete("/{id}", s.remove(prefix))
		r.Put("/{id}/{action}", s.action(prefix))
		r.Patch("/{id}/{action}", s.action(prefix))
		r.Post("/{id}/{action}", s.action(prefix))
	}
}

// Token returns the token issued by /auth/login and required on other calls.
func (s *Server) Token() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.token
}

// UseEnvelope wraps every answer in {"data": ...}.
func (s *Server) UseEnvelope(on bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.envelope = on
}

// ExpireSession makes every authenticated route answer 401.
func (s *Server) ExpireSession(on bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.expired = on
}

// Hold blocks collection reads until release is called.
func (s *Server) Hold() (release func()) {
	ch := make(chan struct{})
	s.mu.Lock()
	s.hold = ch
	s.mu.Unlock()
	var once sync.Once
	return func() {
		once.Do(func() {
			s.mu.Lock()
			s.hold = nil
			s.mu.Unlock()
			close(ch)
		})
	}
}

// Respond answers method+path with a fixed status and body, ahead of the
// generic routes.
func (s *Server) Respond(method, path string, status int, body any) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.canned[method+" "+path] = canned{status: status, body: body}
}

// Seed registers a collection keyed by idField and stores records in order.
func (s *Server) Seed(resource, idField string, records ...Record) {
	s.mu.Lock()
	defer s.mu.Unlock()
	col := s.collection(resource)
	col.idField = idField
	for _, rec := range records {
		col.put(rec)
	}
}

// Get returns a copy of the stored record.
func (s *Server) Get(resource, id string) (Record, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	col, ok := s.collections[resource]
	if !ok {
		return nil, false
	}
	rec, ok := col.rows[id]
	if !ok {
		return nil, false
	}
	return clone(rec), true
}

// Len returns the number of records stored for resource.
func (s *Server) Len(resource string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	if col, ok := s.collections[resource]; ok {
		return len(col.order)
	}
	return 0
}

// Calls returns the received requests in order.
func (s *Server) Calls() []Call {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]Call(nil), s.calls...)
}

// CallsTo returns the requests matching method and path.
func (s *Server) CallsTo(method, path string) []Call {
	var out []Call
	for _, c := range s.Calls() {
		if c.Method == method && c.Path == path {
			out = append(out, c)
		}
	}
	return out
}

func (s *Server) record(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		r.Body = io.NopCloser(bytes.NewReader(body))
		s.mu.Lock()
		s.calls = append(s.calls, Call{
			Method: r.Method,
			Path:   r.URL.Path,
			Query:  r.URL.RawQuery,
			Header: r.Header.Clone(),
			Body:   body,
		})
		s.mu.Unlock()
		next.ServeHTTP(w, r)
	})
}

func (s *Server) cannedResponses(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		s.mu.Lock()
		c, ok := s.canned[r.Method+" "+r.URL.Path]
		s.mu.Unlock()
		if ok {
			s.write(w, c.status, c.body)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (s *Server) authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		s.mu.Lock()
		expired, token := s.expired, s.token
		s.mu.Unlock()
		if expired || r.Header.Get("Authorization") != "Bearer "+token {
			httpx.RespondError(w, httpx.ErrUnauthorized)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (s *Server) login(w http.ResponseWriter, r *http.Request) {
	var creds struct {
		Usuario  string `json:"usuario"`
		Password string `json:"password"`
	}
	if err := httpx.DecodeJSON(r, &creds); err != nil || creds.Usuario == "" || creds.Password == "" {
		httpx.Message(w, http.StatusBadRequest, "Usuario y contraseña requeridos")
		return
	}
	if creds.Password != "secret" {
		httpx.Message(w, http.StatusUnauthorized, "Credenciales inválidas")
		return
	}
	s.write(w, http.StatusOK, map[string]any{"token": s.Token(), "usuario": creds.Usuario})
}

func (s *Server) list(prefix string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		s.mu.Lock()
		hold := s.hold
		s.mu.Unlock()
		if hold != nil {
			<-hold
		}
		name := prefix + chi.URLParam(r, "resource")
		s.mu.Lock()
		col := s.collection(name)
		out := make([]Record, 0, len(col.order))
		for _, id := range col.order {
			out = append(out, clone(col.rows[id]))
		}
		s.mu.Unlock()
		s.write(w, http.StatusOK, out)
	}
}

func (s *Server) get(prefix string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		rec, ok := s.Get(prefix+chi.URLParam(r, "resource"), chi.URLParam(r, "id"))
		if !ok {
			httpx.RespondError(w, httpx.ErrNotFound)
			return
		}
		s.write(w, http.StatusOK, rec)
	}
}

func (s *Server) create(prefix string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		rec := Record{}
		if err := httpx.DecodeJSON(r, &rec); err != nil {
			httpx.RespondError(w, httpx.ErrBadRequest)
			return
		}
		s.mu.Lock()
		col := s.collection(prefix + chi.URLParam(r, "resource"))
		if _, dup := col.rows[col.key(rec)]; dup && col.key(rec) != "" {
			s.mu.Unlock()
			httpx.RespondError(w, httpx.ErrDuplicate)
			return
		}
		stored := col.put(rec)
		s.mu.Unlock()
		s.write(w, http.StatusCreated, stored)
	}
}

func (s *Server) update(prefix string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		patch := Record{}
		if err := httpx.DecodeJSON(r, &patch); err != nil {
			httpx.RespondError(w, httpx.ErrBadRequest)
			return
		}
		s.merge(w, prefix+chi.URLParam(r, "resource"), chi.URLParam(r, "id"), patch)
	}
}

func (s *Server) action(prefix string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		patch := Record{}
		_ = httpx.DecodeJSON(r, &patch)
		if status, ok := actionStatus[chi.URLParam(r, "action")]; ok {
			patch["estado"] = status
		}
		s.merge(w, prefix+chi.URLParam(r, "resource"), chi.URLParam(r, "id"), patch)
	}
}

func (s *Server) remove(prefix string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		name, id := prefix+chi.URLParam(r, "resource"), chi.URLParam(r, "id")
		s.mu.Lock()
		col := s.collection(name)
		_, ok := col.rows[id]
		if ok {
			col.drop(id)
		}
		s.mu.Unlock()
		if !ok {
			httpx.RespondError(w, httpx.ErrNotFound)
			return
		}
		s.write(w, http.StatusOK, map[string]string{"message": "Eliminado"})
	}
}

func (s *Server) merge(w http.ResponseWriter, name, id string, patch Record) {
	s.mu.Lock()
	col := s.collection(name)
	rec, ok := col.rows[id]
	if ok {
		key := rec[col.idField]
		for k, v := range patch {
			rec[k] = v
		}
		rec[col.idField] = key
	}
	out := clone(rec)
	s.mu.Unlock()
	if !ok {
		httpx.RespondError(w, httpx.ErrNotFound)
		return
	}
	s.write(w, http.StatusOK, out)
}

// collection must be called with s.mu held.
func (s *Server) collection(name string) *collection {
	col, ok := s.collections[name]
	if !ok {
		col = &collection{idField: "id", rows: map[string]Record{}}
		s.collections[name] = col
	}
	return col
}

func (s *Server) write(w http.ResponseWriter, status int, body any) {
	s.mu.Lock()
	envelope := s.envelope
	s.mu.Unlock()
	if envelope && status < 300 {
		body = map[string]any{"data": body}
	}
	httpx.JSON(w, status, body)
}

func (c *collection) key(rec Record) string {
	switch v := rec[c.idField].(type) {
	case nil:
		return ""
	case string:
		return v
	case float64:
		return strconv.FormatInt(int64(v), 10)
	default:
		return fmt.Sprint(v)
	}
}

func (c *collection) put(rec Record) Record {
	rec = clone(rec)
	id := c.key(rec)
	if id == "" || id == "0" {
		c.nextID++
		for c.rows[strconv.FormatInt(c.nextID, 10)] != nil {
			c.nextID++
		}
		rec[c.idField] = c.nextID
		id = strconv.FormatInt(c.nextID, 10)
	} else if n, err := strconv.ParseInt(id, 10, 64); err == nil && n > c.nextID {
		c.nextID = n
	}
	if _, exists := c.rows[id]; !exists {
		c.order = append(c.order, id)
	}
	c.rows[id] = rec
	return clone(rec)
}

func (c *collection) drop(id string) {
	delete(c.rows, id)
	for i, v := range c.order {
		if v == id {
			c.order = append(c.order[:i], c.order[i+1:]...)
			break
		}
	}
}

func clone(rec Record) Record {
	if rec == nil {
		return nil
	}
	out := make(Record, len(rec))
	for k, v := range rec {
		out[k] = v
	}
	return out
}
