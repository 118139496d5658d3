package orders

import (
	"encoding/json"
	"time"
)

const (
	EventOrderPlaced        = "OrderPlaced"
	EventOrderApproved      = "OrderApproved"
	EventOrderRejected      = "OrderRejected"
	EventOrderCancelled     = "OrderCancelled"
	EventOrderTrackingAdded = "OrderTrackingAdded"
)

type Envelope struct {
	EventID       string          `json:"event_id"`
	EventType     string          `json:"event_type"`
	EventVersion  int             `json:"event_version"`
	OccurredAt    time.Time       `json:"occurred_at"`
	Producer      string          `json:"producer"`
	TraceID       string          `json:"trace_id,omitempty"`
	CorrelationID string          `json:"correlation_id,omitempty"` // order_id
	Payload       json.RawMessage `json:"payload"`
}

type OrderPlacedPayload struct {
	OrderID         string `json:"order_id"`
	ProductID       string `json:"product_id"`
	ProductName     string `json:"product_name"`
	BuyerEmail      string `json:"buyer_email"`
	Quantity        int    `json:"quantity"`
	OrderPriceCents int64  `json:"order_price_cents"`
}

type OrderApprovedPayload struct {
	OrderID    string    `json:"order_id"`
	BuyerEmail string    `json:"buyer_email"`
	ApprovedAt time.Time `json:"approved_at"`
}

type OrderRejectedPayload struct {
	OrderID    string `json:"order_id"`
	BuyerEmail string `json:"buyer_email"`
	Reason     string `json:"reason"`
}

type OrderCancelledPayload struct {
	OrderID    string `json:"order_id"`
	BuyerEmail string `json:"buyer_email"`
}

type OrderTrackingAddedPayload struct {
	OrderID     string `json:"order_id"`
	BuyerEmail  string `json:"buyer_email"`
	Stage       string `json:"stage"` // tracking label
	Location    string `json:"location,omitempty"`
	Note        string `json:"note,omitempty"`
	OrderStatus Status `json:"order_status"` // status the label mirrored onto
}
