// Package deliveryrepo maps delivery aggregates to the deliveries table.
package deliveryrepo

import (
	"time"

	"carrierlink/internal/core/domain/model/delivery"
	"carrierlink/internal/core/domain/model/kernel"

	"github.com/google/uuid"
)

// DeliveryDTO is one row of the deliveries table. The columns used by the
// public board filters and the party listings are indexed.
type DeliveryDTO struct {
	ID                  uuid.UUID `gorm:"type:uuid;primaryKey"`
	SenderID            int64     `gorm:"not null;index"`
	CarrierID           *int64    `gorm:"index"`
	PickupLocation      string    `gorm:"size:120;not null;index"`
	DropLocation        string    `gorm:"size:120;not null;index"`
	PackageSize         int       `gorm:"not null"`
	PackageWeight       int       `gorm:"not null"`
	Description         string    `gorm:"size:1000"`
	SpecialInstructions string    `gorm:"size:1000"`
	PreferredDate       string    `gorm:"size:64;not null"`
	TimeWindow          string    `gorm:"size:64;not null"`
	DeliveryFee         int64     `gorm:"not null"`
	Status              int       `gorm:"not null;index"`
	CreatedAt           time.Time `gorm:"not null;index"`
}

func (DeliveryDTO) TableName() string {
	return "deliveries"
}

func fromDomain(agg *delivery.Delivery) DeliveryDTO {
	var carrierID *int64
	if c := agg.CarrierID(); c != nil {
		id := c.Int64()
		carrierID = &id
	}

	details := agg.Details()
	return DeliveryDTO{
		ID:                  agg.ID().Bytes(),
		SenderID:            agg.SenderID().Int64(),
		CarrierID:           carrierID,
		PickupLocation:      details.Pickup().Name(),
		DropLocation:        details.Drop().Name(),
		PackageSize:         int(details.Size()),
		PackageWeight:       details.WeightGrams(),
		Description:         details.Description(),
		SpecialInstructions: details.SpecialInstructions(),
		PreferredDate:       details.PreferredDate(),
		TimeWindow:          details.TimeWindow(),
		DeliveryFee:         details.Fee(),
		Status:              int(agg.Status()),
		CreatedAt:           agg.CreatedAt().UTC(),
	}
}

func toDomain(dto DeliveryDTO) (*delivery.Delivery, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	sender, err := kernel.NewUserID(dto.SenderID)
	if err != nil {
		return nil, err
	}

	var carrier *kernel.UserID
	if dto.CarrierID != nil {
		c, carrierErr := kernel.NewUserID(*dto.CarrierID)
		if carrierErr != nil {
			return nil, carrierErr
		}
		carrier = &c
	}

	details, err := delivery.NewDetails(delivery.DetailsInput{
		PickupLocation:      dto.PickupLocation,
		DropLocation:        dto.DropLocation,
		PackageSize:         delivery.PackageSize(dto.PackageSize).String(),
		PackageWeightGrams:  dto.PackageWeight,
		Description:         dto.Description,
		SpecialInstructions: dto.SpecialInstructions,
		PreferredDate:       dto.PreferredDate,
		TimeWindow:          dto.TimeWindow,
		DeliveryFee:         dto.DeliveryFee,
	})
	if err != nil {
		return nil, err
	}

	return delivery.RestoreDelivery(id, sender, carrier, details, delivery.Status(dto.Status), dto.CreatedAt)
}
