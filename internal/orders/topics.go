package orders

// All lifecycle events share one topic; the envelope's event_type tells them
// apart. Partition key = order_id so events for one order stay ordered.
const TopicOrderEvents = "order.events"

func PartitionKey(orderID string) []byte { return []byte(orderID) }
