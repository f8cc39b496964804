// Package delivery holds the Delivery aggregate and its lifecycle.
//
// The package includes:
//   - Delivery: the aggregate root tracking sender, carrier and status
//   - Details: the validated package and route description supplied by the sender
//   - Status: the state machine requested -> accepted -> picked -> delivered
//   - PackageSize: small, medium or large
//
// Key business rules:
//   - A delivery is created in the requested status without a carrier
//   - The carrier is set exactly once, on acceptance, together with the status
//   - A carrier is present if and only if the status is not requested
//   - Status never moves backwards or skips a stage; delivered is terminal
package delivery
