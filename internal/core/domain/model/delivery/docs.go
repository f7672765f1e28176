// Package delivery provides the fulfillment-side Delivery aggregate.
//
// A Delivery is created once per order (correlated by order_id) when the
// OrderCreated event is first observed, then moves Processing -> Shipped ->
// Delivered through the Ship and Deliver use cases. Delivered is terminal.
package delivery
