package userrepo

import (
	"context"
	"errors"
	"fmt"

	"carrierlink/internal/core/domain/model/kernel"
	"carrierlink/internal/core/domain/model/user"
	"carrierlink/internal/pkg/errs"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormUserRepository implements ports.UserRepository using GORM.
type GormUserRepository struct {
	db *gorm.DB
}

func NewGormUserRepository(db *gorm.DB) *GormUserRepository {
	return &GormUserRepository{db: db}
}

// Add inserts the user and assigns the generated id to the aggregate.
func (r *GormUserRepository) Add(ctx context.Context, aggregate *user.User) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	var taken int64
	if err := r.db.WithContext(ctx).Model(&UserDTO{}).Where("handle = ?", aggregate.Handle()).Count(&taken).Error; err != nil {
		return err
	}
	if taken > 0 {
		return errs.NewConflictError("user", "handle is already taken")
	}

	dto := fromDomain(aggregate)
	dto.ID = 0
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return errs.NewConflictErrorWithCause("user", "handle is already taken", err)
		}
		return fmt.Errorf("insert user: %w", err)
	}

	id, err := kernel.NewUserID(dto.ID)
	if err != nil {
		return err
	}
	return aggregate.AssignID(id)
}

func (r *GormUserRepository) Get(ctx context.Context, id kernel.UserID) (*user.User, error) {
	return r.first(r.db.WithContext(ctx), id)
}

func (r *GormUserRepository) GetByHandle(ctx context.Context, handle string) (*user.User, error) {
	var dto UserDTO
	if err := r.db.WithContext(ctx).First(&dto, "handle = ?", handle).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("user", handle)
		}
		return nil, err
	}
	return toDomain(dto)
}

// GetMany loads users by id in one query. Missing ids are skipped.
func (r *GormUserRepository) GetMany(ctx context.Context, ids []kernel.UserID) (map[kernel.UserID]*user.User, error) {
	out := make(map[kernel.UserID]*user.User, len(ids))
	if len(ids) == 0 {
		return out, nil
	}

	raw := make([]int64, 0, len(ids))
	for _, id := range ids {
		raw = append(raw, id.Int64())
	}

	var dtos []UserDTO
	if err := r.db.WithContext(ctx).Where("id IN ?", raw).Find(&dtos).Error; err != nil {
		return nil, err
	}

	for _, dto := range dtos {
		u, err := toDomain(dto)
		if err != nil {
			return nil, err
		}
		out[u.ID()] = u
	}
	return out, nil
}

// GetForUpdate takes a row lock on PostgreSQL. SQLite has no row locks; its
// single writer serializes rating updates instead.
func (r *GormUserRepository) GetForUpdate(ctx context.Context, id kernel.UserID) (*user.User, error) {
	db := r.db.WithContext(ctx)
	if db.Dialector.Name() == "postgres" {
		db = db.Clauses(clause.Locking{Strength: "UPDATE"})
	}
	return r.first(db, id)
}

// UpdateRating writes only the rating columns.
func (r *GormUserRepository) UpdateRating(ctx context.Context, aggregate *user.User) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	result := r.db.WithContext(ctx).
		Model(&UserDTO{}).
		Where("id = ?", aggregate.ID().Int64()).
		Updates(map[string]any{
			"rating":        aggregate.Rating(),
			"total_reviews": aggregate.TotalReviews(),
		})
	if result.Error != nil {
		return fmt.Errorf("update user rating: %w", result.Error)
	}

	if result.RowsAffected == 0 {
		return errs.NewObjectNotFoundError("user", aggregate.ID().String())
	}
	return nil
}

func (r *GormUserRepository) first(db *gorm.DB, id kernel.UserID) (*user.User, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto UserDTO
	if err := db.First(&dto, "id = ?", id.Int64()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("user", id.String())
		}
		return nil, err
	}
	return toDomain(dto)
}
