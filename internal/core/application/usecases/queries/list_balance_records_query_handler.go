package queries

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"errands/internal/core/domain/model/kernel"
	"errands/internal/core/domain/model/ledger"
	"errands/internal/pkg/errs"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// ListBalanceRecordsQueryHandler pages through a user's ledger.
type ListBalanceRecordsQueryHandler struct {
	db *gorm.DB
}

func NewListBalanceRecordsQueryHandler(db *gorm.DB) ListBalanceRecordsQueryHandler {
	return ListBalanceRecordsQueryHandler{db: db}
}

type balanceRecordRow struct {
	ID            uuid.UUID
	Type          int
	Amount        decimal.Decimal
	BalanceBefore decimal.Decimal
	BalanceAfter  decimal.Decimal
	OrderID       *uuid.UUID
	Remark        string
	CreatedAt     time.Time
}

// Handle returns the current balance and one page of records, most recent first.
func (h ListBalanceRecordsQueryHandler) Handle(ctx context.Context, query ListBalanceRecordsQuery) (BalanceHistoryView, error) {
	if err := query.Validate(); err != nil {
		return BalanceHistoryView{}, err
	}

	db := h.db.WithContext(ctx)
	userID := query.UserID().Bytes()

	var balance decimal.Decimal
	err := db.Raw(`SELECT balance FROM users WHERE id = ?`, userID).Row().Scan(&balance)
	if errors.Is(err, sql.ErrNoRows) {
		return BalanceHistoryView{}, errs.NewObjectNotFoundErrorWithCause("user", query.UserID(), err)
	}
	if err != nil {
		return BalanceHistoryView{}, err
	}

	var rows []balanceRecordRow
	err = db.Raw(`
		SELECT
			id,
			type,
			amount,
			balance_before,
			balance_after,
			order_id,
			remark,
			created_at
		FROM balance_records
		WHERE user_id = ?
		ORDER BY seq DESC
		LIMIT ? OFFSET ?
	`, userID, query.Page().Size, query.Page().Offset()).Scan(&rows).Error
	if err != nil {
		return BalanceHistoryView{}, err
	}

	records := make([]BalanceRecordView, 0, len(rows))
	for _, row := range rows {
		view := BalanceRecordView{
			ID:            kernel.UUIDFrom(row.ID),
			Type:          ledger.RecordType(row.Type),
			Amount:        kernel.NewMoney(row.Amount),
			BalanceBefore: kernel.NewMoney(row.BalanceBefore),
			BalanceAfter:  kernel.NewMoney(row.BalanceAfter),
			Remark:        row.Remark,
			CreatedAt:     row.CreatedAt.UTC(),
		}
		if row.OrderID != nil {
			id := kernel.UUIDFrom(*row.OrderID)
			view.OrderID = &id
		}
		records = append(records, view)
	}

	return BalanceHistoryView{Balance: kernel.NewMoney(balance), Records: records}, nil
}
