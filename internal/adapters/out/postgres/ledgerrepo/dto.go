// Package ledgerrepo stores balance records. The table is append-only: the repository has
// no update or delete path.
package ledgerrepo

import (
	"time"

	"errands/internal/core/domain/model/kernel"
	"errands/internal/core/domain/model/ledger"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type BalanceRecordDTO struct {
	ID            uuid.UUID       `gorm:"type:uuid;primaryKey"`
	UserID        uuid.UUID       `gorm:"type:uuid;index:idx_balance_records_user_created,priority:1;not null"`
	Amount        decimal.Decimal `gorm:"type:decimal(20,2);not null"`
	BalanceBefore decimal.Decimal `gorm:"type:decimal(20,2);not null"`
	BalanceAfter  decimal.Decimal `gorm:"type:decimal(20,2);not null"`
	Type          int             `gorm:"not null"`
	OrderID       *uuid.UUID      `gorm:"type:uuid;index"`
	Remark        string          `gorm:"size:255"`
	CreatedAt     time.Time       `gorm:"autoCreateTime:false;index:idx_balance_records_user_created,priority:2"`
	Seq           int64           `gorm:"autoIncrement;uniqueIndex;not null"`
}

func (BalanceRecordDTO) TableName() string {
	return "balance_records"
}

func fromDomain(r *ledger.Record) BalanceRecordDTO {
	var orderID *uuid.UUID
	if id := r.OrderID(); id != nil {
		raw := id.Bytes()
		orderID = &raw
	}

	return BalanceRecordDTO{
		ID:            r.ID().Bytes(),
		UserID:        r.UserID().Bytes(),
		Amount:        r.Amount().Decimal(),
		BalanceBefore: r.BalanceBefore().Decimal(),
		BalanceAfter:  r.BalanceAfter().Decimal(),
		Type:          int(r.Type()),
		OrderID:       orderID,
		Remark:        r.Remark(),
		CreatedAt:     r.CreatedAt(),
	}
}

func toDomain(dto BalanceRecordDTO) (*ledger.Record, error) {
	var orderID *kernel.UUID
	if dto.OrderID != nil {
		id := kernel.UUIDFrom(*dto.OrderID)
		orderID = &id
	}

	return ledger.NewRecord(
		kernel.UUIDFrom(dto.ID),
		kernel.UUIDFrom(dto.UserID),
		ledger.RecordType(dto.Type),
		kernel.NewMoney(dto.Amount),
		kernel.NewMoney(dto.BalanceBefore),
		kernel.NewMoney(dto.BalanceAfter),
		orderID,
		dto.Remark,
		dto.CreatedAt.UTC(),
	)
}
