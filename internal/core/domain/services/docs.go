// Package services provides domain services whose rules span more than one
// aggregate or depend on the acting user.
//
// The package includes:
//   - Lifecycle: decides whether an actor may move a delivery to a target status
//   - AcceptancePolicy: the table of roles allowed to accept deliveries
//   - ReviewPolicy: decides whether a reviewer may review a counterpart on a delivery
package services
