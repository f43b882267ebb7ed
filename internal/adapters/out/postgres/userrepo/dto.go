// Package userrepo persists the slice of a user profile the order core needs: identity,
// role, verification status and balance.
package userrepo

import (
	"errands/internal/core/domain/model/kernel"
	"errands/internal/core/domain/model/user"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type UserDTO struct {
	ID           uuid.UUID       `gorm:"type:uuid;primaryKey"`
	Username     string          `gorm:"size:64;uniqueIndex;not null"`
	Address      string          `gorm:"size:255"`
	Role         string          `gorm:"size:16;not null;default:user"`
	Verification int             `gorm:"not null;default:0"`
	Balance      decimal.Decimal `gorm:"type:decimal(20,2);not null;default:0"`
}

func (UserDTO) TableName() string {
	return "users"
}

func fromDomain(aggregate *user.User) UserDTO {
	return UserDTO{
		ID:           aggregate.ID().Bytes(),
		Username:     aggregate.Username(),
		Address:      aggregate.Address(),
		Role:         string(aggregate.Role()),
		Verification: int(aggregate.Verification()),
		Balance:      aggregate.Balance().Decimal(),
	}
}

func toDomain(dto UserDTO) (*user.User, error) {
	return user.RestoreUser(
		kernel.UUIDFrom(dto.ID),
		dto.Username,
		dto.Address,
		user.Role(dto.Role),
		user.VerificationStatus(dto.Verification),
		kernel.NewMoney(dto.Balance),
	)
}
