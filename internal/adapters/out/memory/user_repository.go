package memory

import (
	"context"

	"carrierlink/internal/core/domain/model/kernel"
	"carrierlink/internal/core/domain/model/user"
	"carrierlink/internal/pkg/errs"
)

type UserRepository struct {
	session session
}

func (r *UserRepository) Add(ctx context.Context, aggregate *user.User) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := aggregate.Validate(); err != nil {
		return err
	}

	var assigned int64
	err := r.session.update(func(d *data) error {
		if _, taken := d.handles[aggregate.Handle()]; taken {
			return errs.NewConflictError("user", "handle is already taken")
		}
		d.lastUserID++
		assigned = d.lastUserID

		rec := userFromDomain(aggregate)
		rec.ID = assigned
		d.users[assigned] = rec
		d.handles[rec.Handle] = assigned
		return nil
	})
	if err != nil {
		return err
	}
	return aggregate.AssignID(kernel.MustNewUserID(assigned))
}

func (r *UserRepository) Get(ctx context.Context, id kernel.UserID) (*user.User, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var rec userRecord
	err := r.session.view(func(d *data) error {
		var ok bool
		rec, ok = d.users[id.Int64()]
		if !ok {
			return errs.NewObjectNotFoundError("user", id.String())
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return userToDomain(rec)
}

func (r *UserRepository) GetByHandle(ctx context.Context, handle string) (*user.User, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var rec userRecord
	err := r.session.view(func(d *data) error {
		id, ok := d.handles[handle]
		if !ok {
			return errs.NewObjectNotFoundError("user", handle)
		}
		rec = d.users[id]
		return nil
	})
	if err != nil {
		return nil, err
	}
	return userToDomain(rec)
}

func (r *UserRepository) GetMany(ctx context.Context, ids []kernel.UserID) (map[kernel.UserID]*user.User, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var recs []userRecord
	err := r.session.view(func(d *data) error {
		for _, id := range ids {
			if rec, ok := d.users[id.Int64()]; ok {
				recs = append(recs, rec)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	out := make(map[kernel.UserID]*user.User, len(recs))
	for _, rec := range recs {
		u, err := userToDomain(rec)
		if err != nil {
			return nil, err
		}
		out[u.ID()] = u
	}
	return out, nil
}

// GetForUpdate is Get: a unit of work already holds the store's only write lock.
func (r *UserRepository) GetForUpdate(ctx context.Context, id kernel.UserID) (*user.User, error) {
	return r.Get(ctx, id)
}

func (r *UserRepository) UpdateRating(ctx context.Context, aggregate *user.User) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := aggregate.Validate(); err != nil {
		return err
	}

	id := aggregate.ID()
	return r.session.update(func(d *data) error {
		rec, ok := d.users[id.Int64()]
		if !ok {
			return errs.NewObjectNotFoundError("user", id.String())
		}
		rec.Rating = aggregate.Rating()
		rec.TotalReviews = aggregate.TotalReviews()
		d.users[rec.ID] = rec
		return nil
	})
}

func userFromDomain(u *user.User) userRecord {
	return userRecord{
		ID:           u.ID().Int64(),
		Handle:       u.Handle(),
		SecretHash:   u.SecretHash(),
		Name:         u.Name(),
		Role:         int(u.Role()),
		Rating:       u.Rating(),
		TotalReviews: u.TotalReviews(),
		CreatedAt:    u.CreatedAt(),
	}
}

func userToDomain(rec userRecord) (*user.User, error) {
	id, err := kernel.NewUserID(rec.ID)
	if err != nil {
		return nil, err
	}
	return user.RestoreUser(id, rec.Handle, rec.SecretHash, rec.Name, user.Role(rec.Role), rec.Rating, rec.TotalReviews, rec.CreatedAt)
}
