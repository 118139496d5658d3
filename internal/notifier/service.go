// Package notifier consumes order lifecycle events: it keeps the Redis
// status cache warm and emits the notification that would reach the buyer
// or production floor. Stock is deliberately never touched here; quantity
// validation happens once, at order creation.
package notifier

import (
	"context"
	"encoding/json"
	"fmt"
	"log"

	"github.com/redis/go-redis/v9"
	kafkago "github.com/segmentio/kafka-go"

	kafkax "github.com/starboy1402/garments-tracker-api/internal/kafka"
	"github.com/starboy1402/garments-tracker-api/internal/orders"
	"github.com/starboy1402/garments-tracker-api/internal/redisx"
)

type Service struct {
	Redis       *redis.Client
	ServiceName string
}

type cachedStatus struct {
	Status orders.Status `json:"status"`
	Stage  string        `json:"stage,omitempty"`
}

// HandleOrderEvent is installed as the consumer handler.
func (s *Service) HandleOrderEvent(ctx context.Context, m kafkago.Message) error {
	var env orders.Envelope
	if err := json.Unmarshal(m.Value, &env); err != nil {
		return err
	}

	// dedup by event_id; redeliveries are expected with manual commits
	dkey := fmt.Sprintf(redisx.KeyDedup, "notifier", env.EventID)
	if exists, _ := redisx.Exists(ctx, s.Redis, dkey); exists {
		return nil
	}
	_ = s.Redis.Set(ctx, dkey, "1", redisx.TTLDedup).Err()

	switch env.EventType {
	case orders.EventOrderPlaced:
		p, err := kafkax.UnwrapPayload[orders.OrderPlacedPayload](env.Payload)
		if err != nil {
			return err
		}
		s.cache(ctx, p.OrderID, cachedStatus{Status: orders.StatusPending})
		log.Printf("notify managers: new order %s for %q (%d units) from %s",
			p.OrderID, p.ProductName, p.Quantity, p.BuyerEmail)

	case orders.EventOrderApproved:
		p, err := kafkax.UnwrapPayload[orders.OrderApprovedPayload](env.Payload)
		if err != nil {
			return err
		}
		s.cache(ctx, p.OrderID, cachedStatus{Status: orders.StatusApproved, Stage: orders.DefaultStage})
		log.Printf("notify %s: order %s approved", p.BuyerEmail, p.OrderID)

	case orders.EventOrderRejected:
		p, err := kafkax.UnwrapPayload[orders.OrderRejectedPayload](env.Payload)
		if err != nil {
			return err
		}
		s.cache(ctx, p.OrderID, cachedStatus{Status: orders.StatusRejected})
		log.Printf("notify %s: order %s rejected: %s", p.BuyerEmail, p.OrderID, p.Reason)

	case orders.EventOrderCancelled:
		p, err := kafkax.UnwrapPayload[orders.OrderCancelledPayload](env.Payload)
		if err != nil {
			return err
		}
		s.cache(ctx, p.OrderID, cachedStatus{Status: orders.StatusCancelled})
		log.Printf("notify managers: order %s cancelled by %s", p.OrderID, p.BuyerEmail)

	case orders.EventOrderTrackingAdded:
		p, err := kafkax.UnwrapPayload[orders.OrderTrackingAddedPayload](env.Payload)
		if err != nil {
			return err
		}
		s.cache(ctx, p.OrderID, cachedStatus{Status: p.OrderStatus, Stage: p.Stage})
		log.Printf("notify %s: order %s is now %q", p.BuyerEmail, p.OrderID, p.Stage)
	}
	return nil
}

func (s *Service) cache(ctx context.Context, orderID string, v cachedStatus) {
	key := fmt.Sprintf(redisx.KeyOrderStatus, orderID)
	if err := s.Redis.Set(ctx, key, kafkax.MustMarshal(v), redisx.TTLStatusCache).Err(); err != nil {
		log.Printf("status cache: %v", err)
	}
}
