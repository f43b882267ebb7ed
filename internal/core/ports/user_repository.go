package ports

import (
	"context"

	"errands/internal/core/domain/model/kernel"
	"errands/internal/core/domain/model/user"
)

type UserRepository interface {
	Add(ctx context.Context, aggregate *user.User) error
	Get(ctx context.Context, id kernel.UUID) (*user.User, error)

	// GetForUpdate loads the user and holds a row lock until the transaction ends.
	// Balance read-modify-write must go through it.
	GetForUpdate(ctx context.Context, id kernel.UUID) (*user.User, error)

	// UpdateBalance writes only the balance column.
	UpdateBalance(ctx context.Context, aggregate *user.User) error
}
