package ledgerrepo

import (
	"context"

	"errands/internal/core/domain/model/kernel"
	"errands/internal/core/domain/model/ledger"

	"gorm.io/gorm"
)

// GormBalanceRecordRepository implements ports.BalanceRecordRepository using GORM.
// Records of one user are ordered by insertion sequence, which under the per-user row lock
// is also the order in which balances changed.
type GormBalanceRecordRepository struct {
	db *gorm.DB
}

func NewGormBalanceRecordRepository(db *gorm.DB) *GormBalanceRecordRepository {
	return &GormBalanceRecordRepository{db: db}
}

func (r *GormBalanceRecordRepository) Add(ctx context.Context, record *ledger.Record) error {
	dto := fromDomain(record)
	return r.db.WithContext(ctx).Omit("seq").Create(&dto).Error
}

func (r *GormBalanceRecordRepository) ListByUser(ctx context.Context, userID kernel.UUID) ([]*ledger.Record, error) {
	if err := userID.Validate(); err != nil {
		return nil, err
	}
	return r.list(ctx, "user_id = ?", userID.Bytes())
}

func (r *GormBalanceRecordRepository) ListByOrder(ctx context.Context, orderID kernel.UUID) ([]*ledger.Record, error) {
	if err := orderID.Validate(); err != nil {
		return nil, err
	}
	return r.list(ctx, "order_id = ?", orderID.Bytes())
}

func (r *GormBalanceRecordRepository) list(ctx context.Context, cond string, arg any) ([]*ledger.Record, error) {
	var dtos []BalanceRecordDTO
	if err := r.db.WithContext(ctx).Where(cond, arg).Order("seq").Find(&dtos).Error; err != nil {
		return nil, err
	}

	records := make([]*ledger.Record, 0, len(dtos))
	for _, dto := range dtos {
		record, err := toDomain(dto)
		if err != nil {
			return nil, err
		}
		records = append(records, record)
	}

	return records, nil
}
