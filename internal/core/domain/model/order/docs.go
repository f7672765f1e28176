// Package order provides the sales-side Order aggregate and its status state machine.
//
// The package includes:
//   - Order: the aggregate root owning identity, product, quantity and lifecycle
//   - Status: the state machine Pending -> Shipped -> Delivered
//
// Key business rules:
//   - Orders require a user, a product and a quantity of at least one
//   - Status only moves forward; Delivered is terminal and no self-transition is valid
//   - shipped_at and tracking_number exist iff the order was shipped, delivered_at iff delivered
//   - Status updates consumed from the delivery service are idempotent: a target that
//     was already reached is reported as unchanged, not as an error
package order
