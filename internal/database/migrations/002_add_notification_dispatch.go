package migrations

import (
	"github.com/ksred/barter-api/internal/types"
	"gorm.io/gorm"
)

func AddNotificationDispatch(db *gorm.DB) error {
	// Adds the dispatched flag alongside the base notification schema
	return db.AutoMigrate(&types.Notification{})
}
