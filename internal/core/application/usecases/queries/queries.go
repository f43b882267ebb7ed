// Package queries holds the read side: order views, dispute status, notifications and
// balance history. Handlers read straight from the database with raw SQL and never load
// aggregates, so nothing here can change state.
package queries

import (
	"context"
	"database/sql"
	"errors"

	"errands/internal/core/domain/model/kernel"
	"errands/internal/core/domain/model/user"
	"errands/internal/pkg/errs"

	"gorm.io/gorm"
)

const (
	DefaultPageSize = 20
	MaxPageSize     = 100
)

// Page is a 1-based page of a listing.
type Page struct {
	Number int
	Size   int
}

// NewPage applies defaults to zero values and rejects the rest of the out-of-range input.
func NewPage(number, size int) (Page, error) {
	if number == 0 {
		number = 1
	}
	if size == 0 {
		size = DefaultPageSize
	}
	if number < 1 {
		return Page{}, errs.NewValueIsOutOfRangeError("page", number, 1, "unbounded")
	}
	if size < 1 || size > MaxPageSize {
		return Page{}, errs.NewValueIsOutOfRangeError("size", size, 1, MaxPageSize)
	}
	return Page{Number: number, Size: size}, nil
}

func (p Page) Offset() int { return (p.Number - 1) * p.Size }

// validate rejects a Page that did not come from NewPage.
func (p Page) validate() error {
	if p.Number < 1 || p.Size < 1 {
		return errs.NewValueIsRequiredError("page")
	}
	return nil
}

func ensureAdmin(ctx context.Context, db *gorm.DB, userID kernel.UUID, action string) error {
	var role string
	err := db.WithContext(ctx).Raw(`SELECT role FROM users WHERE id = ?`, userID.Bytes()).Row().Scan(&role)
	if errors.Is(err, sql.ErrNoRows) {
		return errs.NewObjectNotFoundErrorWithCause("user", userID, err)
	}
	if err != nil {
		return err
	}
	if user.Role(role) != user.RoleAdmin {
		return errs.NewForbiddenError(action, "admin role required")
	}
	return nil
}
