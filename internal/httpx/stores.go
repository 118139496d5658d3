package httpx

import (
	"context"

	kafkago "github.com/segmentio/kafka-go"

	"github.com/starboy1402/garments-tracker-api/internal/analytics"
	"github.com/starboy1402/garments-tracker-api/internal/orders"
	"github.com/starboy1402/garments-tracker-api/internal/products"
	"github.com/starboy1402/garments-tracker-api/internal/users"
)

// Store interfaces mirror the pgx repos; tests swap in stubs.

type UserStore interface {
	Upsert(ctx context.Context, in users.RegisterInput) (users.User, bool, error)
	GetByEmail(ctx context.Context, email string) (users.User, error)
	List(ctx context.Context) ([]users.User, error)
	SetStatus(ctx context.Context, id string, status users.Status, reason string) (users.User, error)
}

type ProductStore interface {
	List(ctx context.Context) ([]products.Product, error)
	ListHome(ctx context.Context) ([]products.Product, error)
	ListByCreator(ctx context.Context, userID string) ([]products.Product, error)
	Get(ctx context.Context, id string) (products.Product, error)
	Create(ctx context.Context, in products.Input, createdBy string) (products.Product, error)
	Update(ctx context.Context, id string, in products.Input) (products.Product, error)
	Delete(ctx context.Context, id string) error
	ToggleHome(ctx context.Context, id string) (bool, error)
}

type OrderStore interface {
	Create(ctx context.Context, in orders.CreateInput) (orders.Order, error)
	Get(ctx context.Context, id string) (orders.Order, error)
	ListAll(ctx context.Context) ([]orders.Order, error)
	ListByBuyer(ctx context.Context, email string) ([]orders.Order, error)
	ListPending(ctx context.Context) ([]orders.Order, error)
	ListApproved(ctx context.Context) ([]orders.Order, error)
	Decide(ctx context.Context, id string, decision orders.Status, reason string) (orders.Order, error)
	Cancel(ctx context.Context, id, buyerEmail string) (orders.Order, error)
	AppendTracking(ctx context.Context, orderID string, in orders.TrackingInput) (orders.TrackingResult, error)
}

type AnalyticsStore interface {
	Summary(ctx context.Context, periodDays int) (analytics.Summary, error)
}

// EventPublisher is satisfied by the buffered kafka producer.
type EventPublisher interface {
	Publish(key, value []byte, headers ...kafkago.Header)
}
