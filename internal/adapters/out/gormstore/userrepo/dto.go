// Package userrepo maps user aggregates to the users table.
package userrepo

import (
	"time"

	"carrierlink/internal/core/domain/model/kernel"
	"carrierlink/internal/core/domain/model/user"
)

// UserDTO is one row of the users table. ID is assigned by the database.
type UserDTO struct {
	ID           int64     `gorm:"primaryKey;autoIncrement"`
	Handle       string    `gorm:"size:32;not null;uniqueIndex"`
	SecretHash   string    `gorm:"not null"`
	Name         string    `gorm:"size:80;not null"`
	Role         int       `gorm:"not null"`
	Rating       *int
	TotalReviews int       `gorm:"not null;default:0"`
	CreatedAt    time.Time `gorm:"not null"`
}

func (UserDTO) TableName() string {
	return "users"
}

func fromDomain(u *user.User) UserDTO {
	return UserDTO{
		ID:           u.ID().Int64(),
		Handle:       u.Handle(),
		SecretHash:   u.SecretHash(),
		Name:         u.Name(),
		Role:         int(u.Role()),
		Rating:       u.Rating(),
		TotalReviews: u.TotalReviews(),
		CreatedAt:    u.CreatedAt().UTC(),
	}
}

func toDomain(dto UserDTO) (*user.User, error) {
	id, err := kernel.NewUserID(dto.ID)
	if err != nil {
		return nil, err
	}
	return user.RestoreUser(
		id,
		dto.Handle,
		dto.SecretHash,
		dto.Name,
		user.Role(dto.Role),
		dto.Rating,
		dto.TotalReviews,
		dto.CreatedAt,
	)
}
