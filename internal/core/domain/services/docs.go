// Package services provides domain services that don't naturally belong to a
// single aggregate root.
//
// The package includes:
//   - TrackingNumberGenerator: issues TRACK-<unix millis>-<9 uppercase alphanumerics>
//     identifiers when a delivery ships
package services
