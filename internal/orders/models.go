package orders

import (
	"errors"
	"time"
)

var (
	ErrNotFound        = errors.New("order not found")
	ErrNotPending      = errors.New("order is no longer pending")
	ErrNotOwner        = errors.New("order belongs to another buyer")
	ErrNotApproved     = errors.New("order has not been approved for production")
	ErrBelowMinimum    = errors.New("quantity is below the minimum order quantity")
	ErrAboveAvailable  = errors.New("quantity exceeds the available quantity")
	ErrReasonTooShort  = errors.New("rejection reason must be at least 10 characters")
	ErrBadDecision     = errors.New("decision must be approved or rejected")
	ErrProductNotFound = errors.New("product not found")
)

// MinReasonLen applies to rejection reasons.
const MinReasonLen = 10

type TrackingEntry struct {
	Seq       int       `json:"-"`
	Status    string    `json:"status"`
	Location  string    `json:"location,omitempty"`
	Note      string    `json:"note,omitempty"`
	Timestamp time.Time `json:"timestamp"`
}

type Order struct {
	ID              string          `json:"_id"`
	ProductID       string          `json:"productId"`
	ProductName     string          `json:"productName"`
	BuyerEmail      string          `json:"buyerEmail"`
	FirstName       string          `json:"firstName"`
	LastName        string          `json:"lastName"`
	ContactNumber   string          `json:"contactNumber"`
	DeliveryAddress string          `json:"deliveryAddress"`
	AdditionalNotes string          `json:"additionalNotes,omitempty"`
	Quantity        int             `json:"quantity"`
	OrderPriceCents int64           `json:"orderPriceCents"`
	PaymentMethod   string          `json:"paymentMethod"`
	Status          Status          `json:"status"`
	RejectionReason string          `json:"rejectionReason,omitempty"`
	Tracking        []TrackingEntry `json:"tracking"`
	CreatedAt       time.Time       `json:"createdAt"`
	ApprovedAt      *time.Time      `json:"approvedAt,omitempty"`
}

// CurrentStage is the production stage shown to the buyer: the latest
// tracking label, or the default before production has logged anything.
func (o Order) CurrentStage() string {
	if n := len(o.Tracking); n > 0 {
		return o.Tracking[n-1].Status
	}
	return DefaultStage
}

type CreateInput struct {
	ProductID       string `json:"productId"`
	BuyerEmail      string `json:"email"`
	FirstName       string `json:"firstName"`
	LastName        string `json:"lastName"`
	ContactNumber   string `json:"contactNumber"`
	DeliveryAddress string `json:"deliveryAddress"`
	AdditionalNotes string `json:"additionalNotes"`
	Quantity        int    `json:"quantity"`
	PaymentMethod   string `json:"paymentMethod"`
}

// Validate covers the form-level fields; quantity bounds are checked against
// the product inside the creation transaction.
func (in CreateInput) Validate() map[string]string {
	errs := map[string]string{}
	if in.ProductID == "" {
		errs["productId"] = "product is required"
	}
	if in.FirstName == "" {
		errs["firstName"] = "first name is required"
	}
	if in.LastName == "" {
		errs["lastName"] = "last name is required"
	}
	if in.ContactNumber == "" {
		errs["contactNumber"] = "contact number is required"
	}
	if in.DeliveryAddress == "" {
		errs["deliveryAddress"] = "delivery address is required"
	}
	if in.Quantity <= 0 {
		errs["quantity"] = "quantity must be positive"
	}
	if in.PaymentMethod == "" {
		errs["paymentMethod"] = "payment method is required"
	}
	if len(errs) == 0 {
		return nil
	}
	return errs
}

type TrackingInput struct {
	Status   string `json:"status"`
	Location string `json:"location"`
	Note     string `json:"note"`
}

// TrackingResult reports the appended entry plus the order fields the caller
// needs to cache and publish without a second read.
type TrackingResult struct {
	Entry      TrackingEntry
	Status     Status
	BuyerEmail string
}

// NextTrackingEntry numbers and stamps the next record of the append-only
// log. Seq strictly increases and the server owns the timestamp.
func NextTrackingEntry(lastSeq int, in TrackingInput, now time.Time) TrackingEntry {
	return TrackingEntry{
		Seq:       lastSeq + 1,
		Status:    in.Status,
		Location:  in.Location,
		Note:      in.Note,
		Timestamp: now.UTC(),
	}
}

// ValidateQuantity enforces the product's order bounds at creation time.
func ValidateQuantity(quantity, minimum, available int) error {
	if quantity < minimum {
		return ErrBelowMinimum
	}
	if quantity > available {
		return ErrAboveAvailable
	}
	return nil
}

// PriceFor computes the frozen order price.
func PriceFor(quantity int, priceCents int64) int64 {
	return priceCents * int64(quantity)
}

// ValidateDecision checks a manager decision before it touches the order.
func ValidateDecision(decision Status, reason string) error {
	switch decision {
	case StatusApproved:
		return nil
	case StatusRejected:
		if len(reason) < MinReasonLen {
			return ErrReasonTooShort
		}
		return nil
	default:
		return ErrBadDecision
	}
}
