package http

import (
	"time"

	"carrierlink/internal/core/application/usecases/queries"
	"carrierlink/internal/core/domain/model/delivery"
	"carrierlink/internal/core/domain/model/review"
	"carrierlink/internal/core/domain/model/user"
)

type RegisterRequest struct {
	Handle   string `json:"handle" validate:"required"`
	Password string `json:"password" validate:"required"`
	Name     string `json:"name" validate:"required"`
	Role     string `json:"role" validate:"required"`
}

type LoginRequest struct {
	Handle   string `json:"handle" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type LoginResponse struct {
	Token     string          `json:"token"`
	ExpiresAt time.Time       `json:"expiresAt"`
	User      ProfileResponse `json:"user"`
}

// CreateDeliveryRequest leaves field rules to the domain so that one
// response lists every failing field.
type CreateDeliveryRequest struct {
	PickupLocation      string `json:"pickupLocation"`
	DropLocation        string `json:"dropLocation"`
	PackageSize         string `json:"packageSize"`
	PackageWeight       int    `json:"packageWeight"`
	Description         string `json:"description"`
	SpecialInstructions string `json:"specialInstructions"`
	PreferredDate       string `json:"preferredDate"`
	TimeWindow          string `json:"timeWindow"`
	DeliveryFee         int64  `json:"deliveryFee"`
}

func (r CreateDeliveryRequest) toInput() delivery.DetailsInput {
	return delivery.DetailsInput{
		PickupLocation:      r.PickupLocation,
		DropLocation:        r.DropLocation,
		PackageSize:         r.PackageSize,
		PackageWeightGrams:  r.PackageWeight,
		Description:         r.Description,
		SpecialInstructions: r.SpecialInstructions,
		PreferredDate:       r.PreferredDate,
		TimeWindow:          r.TimeWindow,
		DeliveryFee:         r.DeliveryFee,
	}
}

type TransitionStatusRequest struct {
	Status string `json:"status" validate:"required"`
}

type SubmitReviewRequest struct {
	RevieweeID *int64 `json:"revieweeId" validate:"required"`
	Rating     *int   `json:"rating" validate:"required"`
	Comment    string `json:"comment"`
}

type ProfileResponse struct {
	ID          int64  `json:"id"`
	Handle      string `json:"handle"`
	Name        string `json:"name"`
	Rating      *int   `json:"rating"`
	ReviewCount int    `json:"reviewCount"`
	Role        string `json:"role"`
}

func toProfile(p user.PublicProfile) ProfileResponse {
	return ProfileResponse{
		ID:          p.ID.Int64(),
		Handle:      p.Handle,
		Name:        p.Name,
		Rating:      p.Rating,
		ReviewCount: p.ReviewCount,
		Role:        p.Role.String(),
	}
}

func toProfilePtr(p *user.PublicProfile) *ProfileResponse {
	if p == nil {
		return nil
	}
	out := toProfile(*p)
	return &out
}

type DeliveryResponse struct {
	ID                  string           `json:"id"`
	SenderID            int64            `json:"senderId"`
	CarrierID           *int64           `json:"carrierId"`
	PickupLocation      string           `json:"pickupLocation"`
	DropLocation        string           `json:"dropLocation"`
	PackageSize         string           `json:"packageSize"`
	PackageWeight       int              `json:"packageWeight"`
	Description         string           `json:"description"`
	SpecialInstructions string           `json:"specialInstructions"`
	PreferredDate       string           `json:"preferredDate"`
	TimeWindow          string           `json:"timeWindow"`
	DeliveryFee         int64            `json:"deliveryFee"`
	Status              string           `json:"status"`
	CreatedAt           time.Time        `json:"createdAt"`
	Sender              *ProfileResponse `json:"sender,omitempty"`
	Carrier             *ProfileResponse `json:"carrier,omitempty"`
}

func toDelivery(d *delivery.Delivery) DeliveryResponse {
	details := d.Details()
	resp := DeliveryResponse{
		ID:                  d.ID().String(),
		SenderID:            d.SenderID().Int64(),
		PickupLocation:      details.Pickup().Name(),
		DropLocation:        details.Drop().Name(),
		PackageSize:         details.Size().String(),
		PackageWeight:       details.WeightGrams(),
		Description:         details.Description(),
		SpecialInstructions: details.SpecialInstructions(),
		PreferredDate:       details.PreferredDate(),
		TimeWindow:          details.TimeWindow(),
		DeliveryFee:         details.Fee(),
		Status:              d.Status().String(),
		CreatedAt:           d.CreatedAt(),
	}
	if c := d.CarrierID(); c != nil {
		id := c.Int64()
		resp.CarrierID = &id
	}
	return resp
}

func toDeliveryView(v queries.DeliveryView) DeliveryResponse {
	resp := toDelivery(v.Delivery)
	resp.Sender = toProfilePtr(v.Sender)
	resp.Carrier = toProfilePtr(v.Carrier)
	return resp
}

// PartyDeliveryResponse always carries counterpart, null while there is none.
type PartyDeliveryResponse struct {
	DeliveryResponse
	Counterpart *ProfileResponse `json:"counterpart"`
}

type ReviewResponse struct {
	ID         string            `json:"id"`
	DeliveryID string            `json:"deliveryId"`
	ReviewerID int64             `json:"reviewerId"`
	RevieweeID int64             `json:"revieweeId"`
	Rating     int               `json:"rating"`
	Comment    string            `json:"comment"`
	CreatedAt  time.Time         `json:"createdAt"`
	Reviewer   *ReviewerResponse `json:"reviewer,omitempty"`
}

type ReviewerResponse struct {
	Handle string `json:"handle"`
	Name   string `json:"name"`
}

func toReview(r *review.Review) ReviewResponse {
	return ReviewResponse{
		ID:         r.ID().String(),
		DeliveryID: r.DeliveryID().String(),
		ReviewerID: r.ReviewerID().Int64(),
		RevieweeID: r.RevieweeID().Int64(),
		Rating:     r.Rating(),
		Comment:    r.Comment(),
		CreatedAt:  r.CreatedAt(),
	}
}

type SubmitReviewResponse struct {
	Review   ReviewResponse  `json:"review"`
	Reviewee ProfileResponse `json:"reviewee"`
}

type DeliveryStatsResponse struct {
	ByStatus map[string]int `json:"byStatus"`
	Total    int            `json:"total"`
}
