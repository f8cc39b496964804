package user

import "carrierlink/internal/core/domain/model/kernel"

// PublicProfile is the subset of a user that is safe to show to anyone.
type PublicProfile struct {
	ID          kernel.UserID
	Handle      string
	Name        string
	Rating      *int
	ReviewCount int
	Role        Role
}
