package types

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"
)

// Listing statuses
const (
	ListingStatusOpen      = "OPEN"
	ListingStatusCompleted = "COMPLETED"
	ListingStatusCancelled = "CANCELLED"
)

// Counter-offer statuses
const (
	OfferStatusPending  = "PENDING"
	OfferStatusAccepted = "ACCEPTED"
	OfferStatusRejected = "REJECTED"
)

// Counter-offer payload variants
const (
	PayloadSimple = "SIMPLE"
	PayloadBonus  = "BONUS"
)

// ItemRefs is an ordered sequence of catalog item ids. It is persisted as a
// JSON array in a text column so insertion order survives the round trip.
type ItemRefs []uint

// Value implements driver.Valuer for gorm.
func (r ItemRefs) Value() (driver.Value, error) {
	if r == nil {
		r = ItemRefs{}
	}
	data, err := json.Marshal(r)
	if err != nil {
		return nil, err
	}
	return string(data), nil
}

// Scan implements sql.Scanner for gorm.
func (r *ItemRefs) Scan(value interface{}) error {
	if value == nil {
		*r = ItemRefs{}
		return nil
	}
	switch v := value.(type) {
	case string:
		return json.Unmarshal([]byte(v), r)
	case []byte:
		return json.Unmarshal(v, r)
	default:
		return fmt.Errorf("unsupported column type %T for item refs", value)
	}
}

// Contains reports whether the sequence holds the given item id.
func (r ItemRefs) Contains(itemID uint) bool {
	for _, id := range r {
		if id == itemID {
			return true
		}
	}
	return false
}

// Listing is a posted trade offer: the items a participant gives up and the
// items they want in return. The id is assigned by the store on first save.
type Listing struct {
	ID        uint      `gorm:"primarykey" json:"id"`
	OwnerID   uint      `gorm:"index" json:"owner_id"`
	Offered   ItemRefs  `gorm:"type:text" json:"offered"`
	Wanted    ItemRefs  `gorm:"type:text" json:"wanted"`
	Status    string    `gorm:"index" json:"status"` // OPEN, COMPLETED, CANCELLED
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// CounterOffer is a proposal submitted against an open listing. The payload
// is a tagged variant: SIMPLE carries only offered items, BONUS adds a
// supplementary non-item term (description plus quantity).
type CounterOffer struct {
	ID            uint      `gorm:"primarykey" json:"id"`
	ListingID     uint      `gorm:"index" json:"listing_id"`
	ProposerID    uint      `gorm:"index" json:"proposer_id"`
	PayloadType   string    `json:"payload_type"` // SIMPLE or BONUS
	Offered       ItemRefs  `gorm:"type:text" json:"offered"`
	BonusItem     string    `json:"bonus_item,omitempty"`
	BonusQuantity int       `json:"bonus_quantity,omitempty"`
	Status        string    `gorm:"index" json:"status"` // PENDING, ACCEPTED, REJECTED
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// Describe returns a short human-readable summary of the offer payload.
func (o *CounterOffer) Describe() string {
	if o.PayloadType == PayloadBonus {
		return fmt.Sprintf("%d item(s) + %dx %s", len(o.Offered), o.BonusQuantity, o.BonusItem)
	}
	return fmt.Sprintf("%d item(s)", len(o.Offered))
}

// Item is a catalog entry that can appear in listings and offers.
// Rarity runs 1 (common) to 5 (legendary).
type Item struct {
	ID        uint      `gorm:"primarykey" json:"id"`
	Name      string    `json:"name"`
	Kind      string    `json:"kind"`
	ImageURL  string    `json:"image_url,omitempty"`
	Rarity    int       `json:"rarity"`
	OwnerID   uint      `gorm:"index" json:"owner_id"`
	CreatedAt time.Time `json:"created_at"`
}

// Notification is an event record destined for a participant. The engine
// only creates these; marking them read and delivering them to external
// channels happens elsewhere.
type Notification struct {
	ID          uint      `gorm:"primarykey" json:"id"`
	RecipientID uint      `gorm:"index" json:"recipient_id"`
	Category    string    `json:"category"`
	Message     string    `json:"message"`
	Read        bool      `json:"read"`
	Dispatched  bool      `json:"-"`
	CreatedAt   time.Time `json:"created_at"`
}
