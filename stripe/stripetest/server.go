// Package stripetest provides an in-process fake of the Stripe REST API
// for tests. Each path serves a scripted sequence of responses; the last
// one repeats once the script is exhausted.
package stripetest

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
)

// Response is one scripted reply.
type Response struct {
	Status int
	Body   string
}

// OK returns a 200 response with a JSON body.
func OK(body string) Response { return Response{Status: http.StatusOK, Body: body} }

// Status returns an error response with a Stripe-shaped error body.
func Status(code int) Response {
	return Response{Status: code, Body: `{"error":{"type":"api_error","message":"` + http.StatusText(code) + `"}}`}
}

// Server is a fake Stripe API.
type Server struct {
	*httptest.Server

	mu      sync.Mutex
	scripts map[string][]Response
	hits    map[string]int
	auth    []string
	methods []string
}

// NewServer starts a fake API. Call Close when done.
func NewServer() *Server {
	s := &Server{
		scripts: make(map[string][]Response),
		hits:    make(map[string]int),
	}
	s.Server = httptest.NewServer(http.HandlerFunc(s.handle))
	return s
}

// Handle scripts the responses for an object path such as "balance".
func (s *Server) Handle(object string, responses ...Response) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.scripts["/"+strings.TrimLeft(object, "/")] = responses
}

// BaseURL is the value to pass as the wrapper's base_url option.
func (s *Server) BaseURL() string { return s.URL }

// Hits returns how many requests reached object.
func (s *Server) Hits(object string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.hits["/"+strings.TrimLeft(object, "/")]
}

// Total returns the number of requests received on any path.
func (s *Server) Total() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	n := 0
	for _, c := range s.hits {
		n += c
	}
	return n
}

// Authorizations returns the Authorization header of every request, in
// arrival order.
func (s *Server) Authorizations() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.auth...)
}

// Methods returns the method of every request, in arrival order.
func (s *Server) Methods() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.methods...)
}

func (s *Server) handle(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	n := s.hits[r.URL.Path]
	s.hits[r.URL.Path] = n + 1
	s.auth = append(s.auth, r.Header.Get("Authorization"))
	s.methods = append(s.methods, r.Method)
	script := s.scripts[r.URL.Path]
	s.mu.Unlock()

	resp := Status(http.StatusNotFound)
	if len(script) > 0 {
		resp = script[min(n, len(script)-1)]
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(resp.Status)
	_, _ = w.Write([]byte(resp.Body))
}

// Canned bodies.
const (
	BalanceBody = `{
  "object": "balance",
  "available": [
    {"amount": 2000, "currency": "usd", "source_types": {"card": 2000}},
    {"amount": 150, "currency": "eur", "source_types": {"card": 150}}
  ],
  "livemode": false,
  "pending": [{"amount": 0, "currency": "usd"}]
}`

	CustomersBody = `{
  "object": "list",
  "url": "/v1/customers",
  "has_more": false,
  "data": [
    {"id": "cus_A", "object": "customer", "email": "a@example.com"},
    {"id": "cus_B", "object": "customer", "email": "b@example.com"},
    {"id": "cus_C", "object": "customer", "email": "c@example.com"}
  ]
}`
)
