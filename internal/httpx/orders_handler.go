package httpx

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	kafkago "github.com/segmentio/kafka-go"

	"github.com/starboy1402/garments-tracker-api/internal/access"
	kafkax "github.com/starboy1402/garments-tracker-api/internal/kafka"
	"github.com/starboy1402/garments-tracker-api/internal/orders"
	"github.com/starboy1402/garments-tracker-api/internal/redisx"
	"github.com/starboy1402/garments-tracker-api/internal/users"
)

// createOrder places an order for the authenticated buyer. The approval gate
// is checked here rather than in route middleware so the buyer gets the
// explanatory message (pending vs suspended) before any write happens.
func (a *API) createOrder(w http.ResponseWriter, r *http.Request) {
	u, _ := UserFromContext(r.Context())
	if !access.Can(u.Role, u.Status, access.PlaceOrder) {
		switch u.Status {
		case users.StatusSuspended:
			msg := "your account is suspended and cannot place orders"
			if u.SuspendedReason != "" {
				msg += ": " + u.SuspendedReason
			}
			writeMessage(w, http.StatusForbidden, msg)
		case users.StatusPending:
			writeMessage(w, http.StatusForbidden, "your account is pending approval")
		default:
			writeMessage(w, http.StatusForbidden, "forbidden")
		}
		return
	}

	var in orders.CreateInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		writeMessage(w, http.StatusBadRequest, "invalid json")
		return
	}
	in.BuyerEmail = u.Email // never trusted from the body
	if errs := in.Validate(); errs != nil {
		writeValidation(w, errs)
		return
	}

	o, err := a.Orders.Create(r.Context(), in)
	switch {
	case errors.Is(err, orders.ErrProductNotFound):
		writeMessage(w, http.StatusNotFound, "product not found")
		return
	case errors.Is(err, orders.ErrBelowMinimum), errors.Is(err, orders.ErrAboveAvailable):
		writeMessage(w, http.StatusBadRequest, err.Error())
		return
	case err != nil:
		writeMessage(w, http.StatusInternalServerError, "failed to place order")
		return
	}

	a.cacheOrderStatus(r, o)
	a.publishOrderEvent(r, orders.EventOrderPlaced, o.ID, orders.OrderPlacedPayload{
		OrderID:         o.ID,
		ProductID:       o.ProductID,
		ProductName:     o.ProductName,
		BuyerEmail:      o.BuyerEmail,
		Quantity:        o.Quantity,
		OrderPriceCents: o.OrderPriceCents,
	})
	writeJSON(w, http.StatusCreated, o)
}

// getOrder serves the buyer's tracking page and the staff detail view.
// Buyers only ever see their own orders; anything else reads as not found.
func (a *API) getOrder(w http.ResponseWriter, r *http.Request) {
	o, err := a.Orders.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		if errors.Is(err, orders.ErrNotFound) {
			writeMessage(w, http.StatusNotFound, "order not found")
			return
		}
		writeMessage(w, http.StatusInternalServerError, "failed to fetch order")
		return
	}
	u, _ := UserFromContext(r.Context())
	if u.Role == users.RoleBuyer && o.BuyerEmail != u.Email {
		writeMessage(w, http.StatusNotFound, "order not found")
		return
	}
	writeJSON(w, http.StatusOK, orderView(o))
}

func (a *API) listAllOrders(w http.ResponseWriter, r *http.Request) {
	a.writeOrderList(w, r, a.Orders.ListAll)
}

func (a *API) listBuyerOrders(w http.ResponseWriter, r *http.Request) {
	u, _ := UserFromContext(r.Context())
	list, err := a.Orders.ListByBuyer(r.Context(), u.Email)
	if err != nil {
		writeMessage(w, http.StatusInternalServerError, "failed to fetch orders")
		return
	}
	writeJSON(w, http.StatusOK, orderViews(list))
}

func (a *API) listPendingOrders(w http.ResponseWriter, r *http.Request) {
	a.writeOrderList(w, r, a.Orders.ListPending)
}

func (a *API) listApprovedOrders(w http.ResponseWriter, r *http.Request) {
	a.writeOrderList(w, r, a.Orders.ListApproved)
}

type decisionReq struct {
	Status          orders.Status `json:"status"`
	RejectionReason string        `json:"rejectionReason"`
}

// decideOrder approves or rejects a pending order.
func (a *API) decideOrder(w http.ResponseWriter, r *http.Request) {
	var req decisionReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeMessage(w, http.StatusBadRequest, "invalid json")
		return
	}

	id := chi.URLParam(r, "id")
	o, err := a.Orders.Decide(r.Context(), id, req.Status, req.RejectionReason)
	switch {
	case errors.Is(err, orders.ErrNotFound):
		writeMessage(w, http.StatusNotFound, "order not found")
		return
	case errors.Is(err, orders.ErrBadDecision), errors.Is(err, orders.ErrReasonTooShort):
		writeMessage(w, http.StatusBadRequest, err.Error())
		return
	case errors.Is(err, orders.ErrNotPending):
		writeMessage(w, http.StatusConflict, "only pending orders can be approved or rejected")
		return
	case err != nil:
		writeMessage(w, http.StatusInternalServerError, "failed to update order")
		return
	}

	a.cacheOrderStatus(r, o)
	if o.Status == orders.StatusApproved {
		a.publishOrderEvent(r, orders.EventOrderApproved, o.ID, orders.OrderApprovedPayload{
			OrderID:    o.ID,
			BuyerEmail: o.BuyerEmail,
			ApprovedAt: *o.ApprovedAt,
		})
	} else {
		a.publishOrderEvent(r, orders.EventOrderRejected, o.ID, orders.OrderRejectedPayload{
			OrderID:    o.ID,
			BuyerEmail: o.BuyerEmail,
			Reason:     o.RejectionReason,
		})
	}
	writeJSON(w, http.StatusOK, orderView(o))
}

// cancelOrder is buyer-initiated and only valid while the order is pending.
func (a *API) cancelOrder(w http.ResponseWriter, r *http.Request) {
	u, _ := UserFromContext(r.Context())
	o, err := a.Orders.Cancel(r.Context(), chi.URLParam(r, "id"), u.Email)
	switch {
	case errors.Is(err, orders.ErrNotFound), errors.Is(err, orders.ErrNotOwner):
		writeMessage(w, http.StatusNotFound, "order not found")
		return
	case errors.Is(err, orders.ErrNotPending):
		writeMessage(w, http.StatusConflict, "only pending orders can be cancelled")
		return
	case err != nil:
		writeMessage(w, http.StatusInternalServerError, "failed to cancel order")
		return
	}

	a.cacheOrderStatus(r, o)
	a.publishOrderEvent(r, orders.EventOrderCancelled, o.ID, orders.OrderCancelledPayload{
		OrderID:    o.ID,
		BuyerEmail: o.BuyerEmail,
	})
	writeJSON(w, http.StatusOK, orderView(o))
}

// addTracking appends one production-status record to an approved order.
func (a *API) addTracking(w http.ResponseWriter, r *http.Request) {
	var in orders.TrackingInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		writeMessage(w, http.StatusBadRequest, "invalid json")
		return
	}
	if in.Status == "" {
		writeMessage(w, http.StatusBadRequest, "tracking status is required")
		return
	}

	id := chi.URLParam(r, "id")
	res, err := a.Orders.AppendTracking(r.Context(), id, in)
	switch {
	case errors.Is(err, orders.ErrNotFound):
		writeMessage(w, http.StatusNotFound, "order not found")
		return
	case errors.Is(err, orders.ErrNotApproved):
		writeMessage(w, http.StatusConflict, "tracking can only be added to approved orders")
		return
	case err != nil:
		writeMessage(w, http.StatusInternalServerError, "failed to add tracking update")
		return
	}

	a.cacheOrderStatus(r, orders.Order{
		ID:       id,
		Status:   res.Status,
		Tracking: []orders.TrackingEntry{res.Entry},
	})
	a.publishOrderEvent(r, orders.EventOrderTrackingAdded, id, orders.OrderTrackingAddedPayload{
		OrderID:     id,
		BuyerEmail:  res.BuyerEmail,
		Stage:       res.Entry.Status,
		Location:    res.Entry.Location,
		Note:        res.Entry.Note,
		OrderStatus: res.Status,
	})
	writeJSON(w, http.StatusCreated, map[string]any{
		"tracking": res.Entry,
		"status":   res.Status,
	})
}

// orderView decorates an order with the derived production stage the client
// displays.
type orderJSON struct {
	orders.Order
	CurrentStage string `json:"currentStage"`
}

func orderView(o orders.Order) orderJSON {
	if o.Tracking == nil {
		o.Tracking = []orders.TrackingEntry{}
	}
	return orderJSON{Order: o, CurrentStage: o.CurrentStage()}
}

func orderViews(list []orders.Order) []orderJSON {
	out := make([]orderJSON, 0, len(list))
	for _, o := range list {
		out = append(out, orderView(o))
	}
	return out
}

func (a *API) writeOrderList(w http.ResponseWriter, r *http.Request, fetch func(ctx context.Context) ([]orders.Order, error)) {
	list, err := fetch(r.Context())
	if err != nil {
		writeMessage(w, http.StatusInternalServerError, "failed to fetch orders")
		return
	}
	writeJSON(w, http.StatusOK, orderViews(list))
}

func (a *API) cacheOrderStatus(r *http.Request, o orders.Order) {
	if a.Redis == nil {
		return
	}
	key := fmt.Sprintf(redisx.KeyOrderStatus, o.ID)
	body := kafkax.MustMarshal(map[string]string{
		"status": string(o.Status),
		"stage":  o.CurrentStage(),
	})
	_ = a.Redis.Set(r.Context(), key, body, redisx.TTLStatusCache).Err()
}

func (a *API) publishOrderEvent(r *http.Request, eventType, orderID string, payload any) {
	if a.Producer == nil {
		return
	}
	ev := orders.Envelope{
		EventID:       uuid.NewString(),
		EventType:     eventType,
		EventVersion:  1,
		OccurredAt:    time.Now().UTC(),
		Producer:      a.Service,
		TraceID:       r.Header.Get("X-Request-Id"),
		CorrelationID: orderID,
		Payload:       kafkax.MustMarshal(payload),
	}
	a.Producer.Publish(orders.PartitionKey(orderID), kafkax.MustMarshal(ev),
		kafkago.Header{Key: "x-event-type", Value: []byte(eventType)},
		kafkago.Header{Key: "x-event-version", Value: []byte("1")},
	)
}
