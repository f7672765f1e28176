// Package kernel provides the domain primitives shared by the order and
// delivery models.
//
// The package includes:
//   - UUID: identifier value object; the zero value is invalid
//   - TrackingNumber: a shipment identifier of the form TRACK-<millis>-<9 upper alnum>
//   - Quantity: a positive unit count
package kernel
