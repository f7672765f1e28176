// Package events defines the integration events exchanged between the sales
// and delivery services and their JSON wire format.
//
// Event is a closed set: OrderCreated, OrderShipped and OrderDelivered. Both
// transports carry the same flat JSON object, discriminated by event_type:
//
//	{"event_type":"OrderShipped","order_id":"...","delivery_id":"...",
//	 "status":"Shipped","tracking_number":"TRACK-...","shipped_at":"...",
//	 "timestamp":"..."}
//
// Decode rejects unknown event types with ErrUnknownEventType and anything that
// does not form a complete event with ErrMalformedEvent. Consumers treat both
// as poison.
package events
