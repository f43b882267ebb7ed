package postgres

import (
	"errands/internal/adapters/out/postgres/ledgerrepo"
	"errands/internal/adapters/out/postgres/notificationrepo"
	"errands/internal/adapters/out/postgres/orderrepo"
	"errands/internal/adapters/out/postgres/userrepo"

	"gorm.io/gorm"
)

// Migrate creates or updates the tables the order core owns.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&userrepo.UserDTO{},
		&orderrepo.OrderDTO{},
		&ledgerrepo.BalanceRecordDTO{},
		&notificationrepo.NotificationDTO{},
	)
}

// Tables lists the owned tables, children last. Integration tests truncate them between cases.
var Tables = []string{"notifications", "balance_records", "orders", "users"}
