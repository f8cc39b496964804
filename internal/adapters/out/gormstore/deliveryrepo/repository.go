package deliveryrepo

import (
	"context"
	"errors"
	"fmt"

	"carrierlink/internal/core/domain/model/delivery"
	"carrierlink/internal/core/domain/model/kernel"
	"carrierlink/internal/core/ports"
	"carrierlink/internal/pkg/errs"

	"gorm.io/gorm"
)

// GormDeliveryRepository implements ports.DeliveryRepository using GORM.
type GormDeliveryRepository struct {
	db *gorm.DB
}

func NewGormDeliveryRepository(db *gorm.DB) *GormDeliveryRepository {
	return &GormDeliveryRepository{db: db}
}

// Add saves a new delivery to the database.
func (r *GormDeliveryRepository) Add(ctx context.Context, aggregate *delivery.Delivery) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return errs.NewConflictErrorWithCause("delivery", "id already exists", err)
		}
		return fmt.Errorf("insert delivery: %w", err)
	}
	return nil
}

// Get retrieves a delivery by ID.
func (r *GormDeliveryRepository) Get(ctx context.Context, id kernel.UUID) (*delivery.Delivery, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto DeliveryDTO
	if err := r.db.WithContext(ctx).First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("delivery", id.String())
		}
		return nil, err
	}

	return toDomain(dto)
}

// UpdateStatus is a conditional update on the previously observed status.
// Zero affected rows means another request moved the delivery first.
func (r *GormDeliveryRepository) UpdateStatus(
	ctx context.Context,
	aggregate *delivery.Delivery,
	expected delivery.Status,
) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	result := r.db.WithContext(ctx).
		Model(&DeliveryDTO{}).
		Where("id = ? AND status = ?", dto.ID, int(expected)).
		Updates(map[string]any{
			"status":     dto.Status,
			"carrier_id": dto.CarrierID,
		})
	if result.Error != nil {
		return fmt.Errorf("update delivery status: %w", result.Error)
	}

	if result.RowsAffected == 0 {
		return ports.ErrStatusChanged
	}
	return nil
}

// List retrieves deliveries matching every set filter field, newest first.
func (r *GormDeliveryRepository) List(ctx context.Context, filter ports.DeliveryFilter) ([]*delivery.Delivery, error) {
	q := r.db.WithContext(ctx).Model(&DeliveryDTO{})
	if filter.Status != nil {
		q = q.Where("status = ?", int(*filter.Status))
	}
	if filter.PickupLocation != nil {
		q = q.Where("pickup_location = ?", *filter.PickupLocation)
	}
	if filter.DropLocation != nil {
		q = q.Where("drop_location = ?", *filter.DropLocation)
	}
	if filter.PackageSize != nil {
		q = q.Where("package_size = ?", int(*filter.PackageSize))
	}
	if filter.SenderID != nil {
		q = q.Where("sender_id = ?", filter.SenderID.Int64())
	}
	if filter.CarrierID != nil {
		q = q.Where("carrier_id = ?", filter.CarrierID.Int64())
	}

	var dtos []DeliveryDTO
	if err := q.Order("created_at DESC").Order("id DESC").Find(&dtos).Error; err != nil {
		return nil, err
	}

	deliveries := make([]*delivery.Delivery, 0, len(dtos))
	for _, dto := range dtos {
		d, err := toDomain(dto)
		if err != nil {
			return nil, err
		}
		deliveries = append(deliveries, d)
	}
	return deliveries, nil
}

// CountByStatus groups deliveries by status.
func (r *GormDeliveryRepository) CountByStatus(ctx context.Context) (map[delivery.Status]int, error) {
	var rows []struct {
		Status int
		Total  int
	}
	err := r.db.WithContext(ctx).
		Model(&DeliveryDTO{}).
		Select("status, COUNT(*) AS total").
		Group("status").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	counts := make(map[delivery.Status]int, len(rows))
	for _, row := range rows {
		counts[delivery.Status(row.Status)] = row.Total
	}
	return counts, nil
}
