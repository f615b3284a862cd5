package trade

import (
	"errors"
	"time"

	"github.com/ksred/barter-api/internal/types"
	"gorm.io/gorm"
)

// Database is the gorm-backed implementation of ListingStore. Status-guarded
// transitions are enforced with conditional writes (see AcceptWithListing),
// not by relying on SQLite's writer serialization: the engine's status reads
// happen outside any transaction.
type Database struct {
	db *gorm.DB
}

func NewDatabase(db *gorm.DB) *Database {
	return &Database{db: db}
}

func (d *Database) Save(listing *types.Listing) error {
	return d.db.Create(listing).Error
}

func (d *Database) FindByID(id uint) (*types.Listing, error) {
	var listing types.Listing
	if err := d.db.First(&listing, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &listing, nil
}

func (d *Database) FindByStatus(status string) ([]types.Listing, error) {
	var listings []types.Listing
	if err := d.db.Where("status = ?", status).Find(&listings).Error; err != nil {
		return nil, err
	}
	return listings, nil
}

func (d *Database) FindByOwner(ownerID uint) ([]types.Listing, error) {
	var listings []types.Listing
	if err := d.db.Where("owner_id = ?", ownerID).Find(&listings).Error; err != nil {
		return nil, err
	}
	return listings, nil
}

func (d *Database) FindByOwnerAndStatus(ownerID uint, status string) ([]types.Listing, error) {
	var listings []types.Listing
	if err := d.db.Where("owner_id = ? AND status = ?", ownerID, status).Find(&listings).Error; err != nil {
		return nil, err
	}
	return listings, nil
}

func (d *Database) Update(listing *types.Listing) error {
	return d.db.Save(listing).Error
}

// OfferDatabase is the gorm-backed implementation of OfferStore. It shares
// the connection with Database so AcceptWithListing can span both tables.
type OfferDatabase struct {
	db *gorm.DB
}

func NewOfferDatabase(db *gorm.DB) *OfferDatabase {
	return &OfferDatabase{db: db}
}

func (d *OfferDatabase) Save(offer *types.CounterOffer) error {
	return d.db.Create(offer).Error
}

func (d *OfferDatabase) FindByID(id uint) (*types.CounterOffer, error) {
	var offer types.CounterOffer
	if err := d.db.First(&offer, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &offer, nil
}

func (d *OfferDatabase) FindByListing(listingID uint) ([]types.CounterOffer, error) {
	var offers []types.CounterOffer
	if err := d.db.Where("listing_id = ?", listingID).Find(&offers).Error; err != nil {
		return nil, err
	}
	return offers, nil
}

func (d *OfferDatabase) FindByProposer(proposerID uint) ([]types.CounterOffer, error) {
	var offers []types.CounterOffer
	if err := d.db.Where("proposer_id = ?", proposerID).Find(&offers).Error; err != nil {
		return nil, err
	}
	return offers, nil
}

func (d *OfferDatabase) Update(offer *types.CounterOffer) error {
	return d.db.Save(offer).Error
}

// AcceptWithListing writes the accepted offer and the completed listing in a
// single transaction so the compound transition applies both or neither. The
// listing write is conditional on it still being OPEN inside the transaction:
// the caller's status check ran against a snapshot, and a second accepter
// racing on the same listing must fail here rather than commit a second
// completion.
func (d *OfferDatabase) AcceptWithListing(offer *types.CounterOffer, listing *types.Listing) error {
	tx := d.db.Begin()
	if err := tx.Error; err != nil {
		return err
	}
	defer func() {
		if r := recover(); r != nil {
			tx.Rollback()
		}
	}()

	now := time.Now()

	res := tx.Model(&types.Listing{}).
		Where("id = ? AND status = ?", listing.ID, types.ListingStatusOpen).
		Updates(map[string]interface{}{"status": types.ListingStatusCompleted, "updated_at": now})
	if res.Error != nil {
		tx.Rollback()
		return res.Error
	}
	if res.RowsAffected == 0 {
		// Lost the race: report the status the listing actually holds now
		status := listing.Status
		var current types.Listing
		if err := tx.First(&current, listing.ID).Error; err == nil {
			status = current.Status
		}
		tx.Rollback()
		return &StateConflictError{Entity: "listing", ID: listing.ID, Status: status}
	}

	offer.Status = types.OfferStatusAccepted
	offer.UpdatedAt = now
	if err := tx.Save(offer).Error; err != nil {
		tx.Rollback()
		return err
	}

	if err := tx.Commit().Error; err != nil {
		return err
	}

	listing.Status = types.ListingStatusCompleted
	listing.UpdatedAt = now
	return nil
}
