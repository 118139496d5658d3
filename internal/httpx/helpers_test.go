package httpx

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	kafkago "github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/require"

	"github.com/starboy1402/garments-tracker-api/internal/analytics"
	"github.com/starboy1402/garments-tracker-api/internal/auth"
	"github.com/starboy1402/garments-tracker-api/internal/orders"
	"github.com/starboy1402/garments-tracker-api/internal/products"
	"github.com/starboy1402/garments-tracker-api/internal/users"
)

// Stub stores with function fields; unset methods fail loudly so a test
// only has to wire what it expects to be called.

type stubUsers struct {
	upsert     func(ctx context.Context, in users.RegisterInput) (users.User, bool, error)
	getByEmail func(ctx context.Context, email string) (users.User, error)
	list       func(ctx context.Context) ([]users.User, error)
	setStatus  func(ctx context.Context, id string, status users.Status, reason string) (users.User, error)
}

func (s *stubUsers) Upsert(ctx context.Context, in users.RegisterInput) (users.User, bool, error) {
	return s.upsert(ctx, in)
}
func (s *stubUsers) GetByEmail(ctx context.Context, email string) (users.User, error) {
	return s.getByEmail(ctx, email)
}
func (s *stubUsers) List(ctx context.Context) ([]users.User, error) { return s.list(ctx) }
func (s *stubUsers) SetStatus(ctx context.Context, id string, status users.Status, reason string) (users.User, error) {
	return s.setStatus(ctx, id, status, reason)
}

type stubOrders struct {
	create         func(ctx context.Context, in orders.CreateInput) (orders.Order, error)
	get            func(ctx context.Context, id string) (orders.Order, error)
	listAll        func(ctx context.Context) ([]orders.Order, error)
	listByBuyer    func(ctx context.Context, email string) ([]orders.Order, error)
	listPending    func(ctx context.Context) ([]orders.Order, error)
	listApproved   func(ctx context.Context) ([]orders.Order, error)
	decide         func(ctx context.Context, id string, decision orders.Status, reason string) (orders.Order, error)
	cancel         func(ctx context.Context, id, buyerEmail string) (orders.Order, error)
	appendTracking func(ctx context.Context, orderID string, in orders.TrackingInput) (orders.TrackingResult, error)
}

func (s *stubOrders) Create(ctx context.Context, in orders.CreateInput) (orders.Order, error) {
	return s.create(ctx, in)
}
func (s *stubOrders) Get(ctx context.Context, id string) (orders.Order, error) {
	return s.get(ctx, id)
}
func (s *stubOrders) ListAll(ctx context.Context) ([]orders.Order, error) { return s.listAll(ctx) }
func (s *stubOrders) ListByBuyer(ctx context.Context, email string) ([]orders.Order, error) {
	return s.listByBuyer(ctx, email)
}
func (s *stubOrders) ListPending(ctx context.Context) ([]orders.Order, error) {
	return s.listPending(ctx)
}
func (s *stubOrders) ListApproved(ctx context.Context) ([]orders.Order, error) {
	return s.listApproved(ctx)
}
func (s *stubOrders) Decide(ctx context.Context, id string, decision orders.Status, reason string) (orders.Order, error) {
	return s.decide(ctx, id, decision, reason)
}
func (s *stubOrders) Cancel(ctx context.Context, id, buyerEmail string) (orders.Order, error) {
	return s.cancel(ctx, id, buyerEmail)
}
func (s *stubOrders) AppendTracking(ctx context.Context, orderID string, in orders.TrackingInput) (orders.TrackingResult, error) {
	return s.appendTracking(ctx, orderID, in)
}

type stubProducts struct {
	list          func(ctx context.Context) ([]products.Product, error)
	listHome      func(ctx context.Context) ([]products.Product, error)
	listByCreator func(ctx context.Context, userID string) ([]products.Product, error)
	get           func(ctx context.Context, id string) (products.Product, error)
	create        func(ctx context.Context, in products.Input, createdBy string) (products.Product, error)
	update        func(ctx context.Context, id string, in products.Input) (products.Product, error)
	del           func(ctx context.Context, id string) error
	toggleHome    func(ctx context.Context, id string) (bool, error)
}

func (s *stubProducts) List(ctx context.Context) ([]products.Product, error) { return s.list(ctx) }
func (s *stubProducts) ListHome(ctx context.Context) ([]products.Product, error) {
	return s.listHome(ctx)
}
func (s *stubProducts) ListByCreator(ctx context.Context, userID string) ([]products.Product, error) {
	return s.listByCreator(ctx, userID)
}
func (s *stubProducts) Get(ctx context.Context, id string) (products.Product, error) {
	return s.get(ctx, id)
}
func (s *stubProducts) Create(ctx context.Context, in products.Input, createdBy string) (products.Product, error) {
	return s.create(ctx, in, createdBy)
}
func (s *stubProducts) Update(ctx context.Context, id string, in products.Input) (products.Product, error) {
	return s.update(ctx, id, in)
}
func (s *stubProducts) Delete(ctx context.Context, id string) error { return s.del(ctx, id) }
func (s *stubProducts) ToggleHome(ctx context.Context, id string) (bool, error) {
	return s.toggleHome(ctx, id)
}

type stubAnalytics struct {
	summary func(ctx context.Context, periodDays int) (analytics.Summary, error)
}

func (s *stubAnalytics) Summary(ctx context.Context, periodDays int) (analytics.Summary, error) {
	return s.summary(ctx, periodDays)
}

type publishedEvent struct {
	key   []byte
	value []byte
}

type stubPublisher struct{ events []publishedEvent }

func (p *stubPublisher) Publish(key, value []byte, headers ...kafkago.Header) {
	p.events = append(p.events, publishedEvent{key: key, value: value})
}

func (p *stubPublisher) envelopes(t *testing.T) []orders.Envelope {
	t.Helper()
	out := make([]orders.Envelope, 0, len(p.events))
	for _, e := range p.events {
		var env orders.Envelope
		require.NoError(t, json.Unmarshal(e.value, &env))
		out = append(out, env)
	}
	return out
}

// fixedUsers serves GetByEmail from a map, the shape most tests need.
func fixedUsers(byEmail map[string]users.User) *stubUsers {
	return &stubUsers{
		getByEmail: func(_ context.Context, email string) (users.User, error) {
			u, ok := byEmail[email]
			if !ok {
				return users.User{}, users.ErrNotFound
			}
			return u, nil
		},
	}
}

type testEnv struct {
	api    *API
	router *chi.Mux
	pub    *stubPublisher
}

func newTestEnv(t *testing.T, us UserStore, os OrderStore, ps ProductStore, as AnalyticsStore) *testEnv {
	t.Helper()
	pub := &stubPublisher{}
	api := &API{
		Sessions: &auth.Sessions{
			Secret:     []byte("test-secret"),
			TTL:        time.Hour,
			CookieName: "token",
		},
		Users:     us,
		Products:  ps,
		Orders:    os,
		Analytics: as,
		Producer:  pub,
		Service:   "garments-api-test",
	}
	router := NewRouter()
	api.Register(router)
	return &testEnv{api: api, router: router, pub: pub}
}

// do executes a request; email != "" attaches a valid session cookie.
func (e *testEnv) do(t *testing.T, method, path, email string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var rd *bytes.Reader
	if body != nil {
		b, err := json.Marshal(body)
		require.NoError(t, err)
		rd = bytes.NewReader(b)
	} else {
		rd = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, rd)
	if email != "" {
		tok, err := e.api.Sessions.Sign(email, time.Now())
		require.NoError(t, err)
		req.AddCookie(&http.Cookie{Name: "token", Value: tok})
	}
	rec := httptest.NewRecorder()
	e.router.ServeHTTP(rec, req)
	return rec
}

func newRawRequest(method, path string) (*http.Request, *httptest.ResponseRecorder) {
	return httptest.NewRequest(method, path, nil), httptest.NewRecorder()
}

func decodeBody[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &v))
	return v
}
