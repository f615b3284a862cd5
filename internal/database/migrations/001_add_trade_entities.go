package migrations

import (
	"github.com/ksred/barter-api/internal/types"
	"gorm.io/gorm"
)

func AddTradeEntities(db *gorm.DB) error {
	if err := db.AutoMigrate(&types.Listing{}); err != nil {
		return err
	}

	if err := db.AutoMigrate(&types.CounterOffer{}); err != nil {
		return err
	}

	return nil
}
