package catalog

import (
	"errors"

	"github.com/ksred/barter-api/internal/types"
	"gorm.io/gorm"
)

type Database struct {
	db *gorm.DB
}

func NewDatabase(db *gorm.DB) *Database {
	return &Database{db: db}
}

func (d *Database) CreateItem(item *types.Item) error {
	return d.db.Create(item).Error
}

func (d *Database) GetItem(itemID uint) (*types.Item, error) {
	var item types.Item
	if err := d.db.First(&item, itemID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &item, nil
}

func (d *Database) GetItemsByOwner(ownerID uint) ([]types.Item, error) {
	var items []types.Item
	if err := d.db.Where("owner_id = ?", ownerID).Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}
