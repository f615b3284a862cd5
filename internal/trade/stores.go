package trade

import (
	"github.com/ksred/barter-api/internal/types"
)

// ListingStore is the persistence collaborator for listings. Save assigns the
// id on first persistence; lookups return (nil, nil) when nothing matches.
// Implementations must serialize writes per entity key so that concurrent
// resolutions over the same listing cannot both observe it open.
type ListingStore interface {
	Save(listing *types.Listing) error
	FindByID(id uint) (*types.Listing, error)
	FindByStatus(status string) ([]types.Listing, error)
	FindByOwner(ownerID uint) ([]types.Listing, error)
	FindByOwnerAndStatus(ownerID uint, status string) ([]types.Listing, error)
	Update(listing *types.Listing) error
}

// OfferStore is the persistence collaborator for counter-offers.
// AcceptWithListing applies the compound accept transition, writing the
// accepted offer and the completed listing atomically: both or neither.
type OfferStore interface {
	Save(offer *types.CounterOffer) error
	FindByID(id uint) (*types.CounterOffer, error)
	FindByListing(listingID uint) ([]types.CounterOffer, error)
	FindByProposer(proposerID uint) ([]types.CounterOffer, error)
	Update(offer *types.CounterOffer) error
	AcceptWithListing(offer *types.CounterOffer, listing *types.Listing) error
}

// NotificationSink accepts notification records emitted on state
// transitions. The engine waits only for the sink's persistence
// acknowledgement, never for external delivery.
type NotificationSink interface {
	Deliver(recipientID uint, category, message string) (*types.Notification, error)
}

// ItemCatalog is the read-only source of item identity and rarity used by
// validation strategies.
type ItemCatalog interface {
	LookupItem(itemID uint) (*types.Item, error)
}
