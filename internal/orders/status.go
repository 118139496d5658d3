package orders

type Status string

const (
	StatusPending      Status = "pending"
	StatusApproved     Status = "approved"
	StatusRejected     Status = "rejected"
	StatusCancelled    Status = "cancelled"
	StatusInProduction Status = "in-production"
	StatusShipped      Status = "shipped"
	StatusDelivered    Status = "delivered"
)

var validNext = map[Status]map[Status]bool{
	StatusPending:      {StatusApproved: true, StatusRejected: true, StatusCancelled: true},
	StatusApproved:     {StatusInProduction: true, StatusShipped: true, StatusDelivered: true},
	StatusInProduction: {StatusShipped: true, StatusDelivered: true},
	StatusShipped:      {StatusDelivered: true},
	StatusRejected:     {},
	StatusCancelled:    {},
	StatusDelivered:    {},
}

func CanTransition(from, to Status) bool {
	return validNext[from][to]
}

// TrackingLabels is the display vocabulary offered to managers. The tracking
// field itself is free text; anything outside this list is still accepted.
var TrackingLabels = []string{
	"Cutting Started", "Cutting Completed", "Sewing Started", "Sewing Completed",
	"Finishing", "Quality Check", "Packing", "Packed", "Shipped",
	"Out for Delivery", "Delivered",
}

// StageStatus maps a tracking label onto the order status it implies.
// Unknown labels mean production is underway.
func StageStatus(label string) Status {
	switch label {
	case "Shipped", "Out for Delivery":
		return StatusShipped
	case "Delivered":
		return StatusDelivered
	default:
		return StatusInProduction
	}
}

// MirrorStatus moves the order status forward when a tracking label implies
// a later lifecycle state. The status never moves backwards.
func MirrorStatus(cur Status, label string) Status {
	if next := StageStatus(label); CanTransition(cur, next) {
		return next
	}
	return cur
}

// DefaultStage is shown for an approved order with no tracking entries yet.
const DefaultStage = "Awaiting Production"
