package memory

import (
	"context"
	"sort"

	"carrierlink/internal/core/domain/model/delivery"
	"carrierlink/internal/core/domain/model/kernel"
	"carrierlink/internal/core/ports"
	"carrierlink/internal/pkg/errs"
)

type DeliveryRepository struct {
	session session
}

func (r *DeliveryRepository) Add(ctx context.Context, aggregate *delivery.Delivery) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := aggregate.Validate(); err != nil {
		return err
	}

	rec := deliveryFromDomain(aggregate)
	return r.session.update(func(d *data) error {
		if _, ok := d.deliveries[rec.ID]; ok {
			return errs.NewConflictError("delivery", "id already exists")
		}
		d.deliveries[rec.ID] = rec
		return nil
	})
}

func (r *DeliveryRepository) Get(ctx context.Context, id kernel.UUID) (*delivery.Delivery, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var rec deliveryRecord
	err := r.session.view(func(d *data) error {
		var ok bool
		rec, ok = d.deliveries[id.Bytes()]
		if !ok {
			return errs.NewObjectNotFoundError("delivery", id.String())
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return deliveryToDomain(rec)
}

func (r *DeliveryRepository) UpdateStatus(ctx context.Context, aggregate *delivery.Delivery, expected delivery.Status) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := aggregate.Validate(); err != nil {
		return err
	}

	next := deliveryFromDomain(aggregate)
	return r.session.update(func(d *data) error {
		stored, ok := d.deliveries[next.ID]
		if !ok || stored.Status != expected {
			return ports.ErrStatusChanged
		}
		stored.Status = next.Status
		stored.CarrierID = next.CarrierID
		d.deliveries[next.ID] = stored
		return nil
	})
}

func (r *DeliveryRepository) List(ctx context.Context, filter ports.DeliveryFilter) ([]*delivery.Delivery, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var recs []deliveryRecord
	err := r.session.view(func(d *data) error {
		for _, rec := range d.deliveries {
			if matches(rec, filter) {
				recs = append(recs, rec)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	sort.Slice(recs, func(i, j int) bool {
		if recs[i].CreatedAt.Equal(recs[j].CreatedAt) {
			return recs[i].ID.String() > recs[j].ID.String()
		}
		return recs[i].CreatedAt.After(recs[j].CreatedAt)
	})

	out := make([]*delivery.Delivery, 0, len(recs))
	for _, rec := range recs {
		agg, err := deliveryToDomain(rec)
		if err != nil {
			return nil, err
		}
		out = append(out, agg)
	}
	return out, nil
}

func (r *DeliveryRepository) CountByStatus(ctx context.Context) (map[delivery.Status]int, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	counts := make(map[delivery.Status]int)
	err := r.session.view(func(d *data) error {
		for _, rec := range d.deliveries {
			counts[rec.Status]++
		}
		return nil
	})
	return counts, err
}

func matches(rec deliveryRecord, f ports.DeliveryFilter) bool {
	switch {
	case f.Status != nil && rec.Status != *f.Status:
		return false
	case f.PickupLocation != nil && rec.Details.Pickup().Name() != *f.PickupLocation:
		return false
	case f.DropLocation != nil && rec.Details.Drop().Name() != *f.DropLocation:
		return false
	case f.PackageSize != nil && rec.Details.Size() != *f.PackageSize:
		return false
	case f.SenderID != nil && rec.SenderID != f.SenderID.Int64():
		return false
	case f.CarrierID != nil && (rec.CarrierID == nil || *rec.CarrierID != f.CarrierID.Int64()):
		return false
	}
	return true
}

func deliveryFromDomain(agg *delivery.Delivery) deliveryRecord {
	rec := deliveryRecord{
		ID:        agg.ID().Bytes(),
		SenderID:  agg.SenderID().Int64(),
		Details:   agg.Details(),
		Status:    agg.Status(),
		CreatedAt: agg.CreatedAt(),
	}
	if c := agg.CarrierID(); c != nil {
		id := c.Int64()
		rec.CarrierID = &id
	}
	return rec
}

func deliveryToDomain(rec deliveryRecord) (*delivery.Delivery, error) {
	id, err := kernel.UUIDFromBytes(rec.ID[:])
	if err != nil {
		return nil, err
	}
	sender, err := kernel.NewUserID(rec.SenderID)
	if err != nil {
		return nil, err
	}
	var carrier *kernel.UserID
	if rec.CarrierID != nil {
		c, err := kernel.NewUserID(*rec.CarrierID)
		if err != nil {
			return nil, err
		}
		carrier = &c
	}
	return delivery.RestoreDelivery(id, sender, carrier, rec.Details, rec.Status, rec.CreatedAt)
}
