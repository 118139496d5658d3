package redisx

import "time"

const (
	// Cache current order status: order:status:{order_id} -> {"status":"...","stage":"..."}
	KeyOrderStatus = "order:status:%s"

	// Cache the featured-products listing served on the public home page.
	KeyHomeProducts = "cache:products:home"

	// Dedup event processing: dedup:{consumer}:{event_id}
	KeyDedup = "dedup:%s:%s"
)

var (
	TTLStatusCache  = 5 * time.Minute
	TTLHomeProducts = 5 * time.Minute
	TTLDedup        = 48 * time.Hour
)
