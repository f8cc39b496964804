// Package kernel provides the shared value objects of the carrierlink domain.
//
// The package includes:
//   - UUID: identifier of deliveries and reviews, generated by the caller
//   - UserID: opaque positive integer identity of a user, assigned by the store
//   - Place: a named pickup or drop location
//
// All types are immutable values; their zero values are invalid and fail
// Validate, so an uninitialized identifier can never reach persistence.
package kernel
