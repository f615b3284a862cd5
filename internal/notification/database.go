package notification

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

func (d *Database) CreateNotification(notification *types.Notification) error {
	return d.db.Create(notification).Error
}

func (d *Database) GetNotification(id uint) (*types.Notification, error) {
	var notification types.Notification
	if err := d.db.First(&notification, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &notification, nil
}

func (d *Database) GetByRecipient(recipientID uint) ([]types.Notification, error) {
	var notifications []types.Notification
	if err := d.db.Where("recipient_id = ?", recipientID).Find(&notifications).Error; err != nil {
		return nil, err
	}
	return notifications, nil
}

func (d *Database) GetUnreadByRecipient(recipientID uint) ([]types.Notification, error) {
	var notifications []types.Notification
	if err := d.db.Where("recipient_id = ? AND read = ?", recipientID, false).Find(&notifications).Error; err != nil {
		return nil, err
	}
	return notifications, nil
}

func (d *Database) GetUndispatched() ([]types.Notification, error) {
	var notifications []types.Notification
	if err := d.db.Where("dispatched = ?", false).Find(&notifications).Error; err != nil {
		return nil, err
	}
	return notifications, nil
}

func (d *Database) UpdateNotification(notification *types.Notification) error {
	return d.db.Save(notification).Error
}
