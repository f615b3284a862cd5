package trade

import (
	"errors"
	"fmt"
	"time"

	"github.com/ksred/barter-api/internal/types"
	"github.com/rs/zerolog/log"
)

// Notification categories emitted on state transitions.
const (
	NotifyOfferReceived        = "OfferReceived"
	NotifyOfferAccepted        = "OfferAccepted"
	NotifyOfferRejected        = "OfferRejected"
	NotifyListingStatusChanged = "ListingStatusChanged"
)

// Service is the trade engine. It owns the listing and counter-offer state
// machines, applies the validation strategy supplied per call, and emits
// notification records at the end of each transition. It holds no mutable
// state of its own; every read is a fresh store lookup.
type Service struct {
	listings ListingStore
	offers   OfferStore
	notifier NotificationSink
	catalog  ItemCatalog
}

// NewService creates a trade engine over the given collaborators.
func NewService(listings ListingStore, offers OfferStore, notifier NotificationSink, catalog ItemCatalog) *Service {
	return &Service{
		listings: listings,
		offers:   offers,
		notifier: notifier,
		catalog:  catalog,
	}
}

// StrategyFor resolves a strategy name from the capability surface. An empty
// name selects the standard strategy.
func (s *Service) StrategyFor(name string) (Strategy, error) {
	switch name {
	case "", StrategyStandard:
		return NewStandardStrategy(), nil
	case StrategyHighValue:
		return NewHighValueStrategy(s.catalog), nil
	default:
		return nil, &ValidationError{Reason: fmt.Sprintf("unknown validation strategy %q", name)}
	}
}

// CreateListing validates the listing under the given strategy and persists
// it with status OPEN. A nil strategy means standard validation. On
// validation failure nothing is persisted and no notification is emitted;
// creation itself never notifies either.
func (s *Service) CreateListing(ownerID uint, offered, wanted types.ItemRefs, strategy Strategy) (*types.Listing, error) {
	if strategy == nil {
		strategy = NewStandardStrategy()
	}

	logger := log.With().
		Uint("owner_id", ownerID).
		Str("strategy", strategy.Name()).
		Str("service", "trade").
		Logger()

	now := time.Now()
	listing := &types.Listing{
		OwnerID:   ownerID,
		Offered:   offered,
		Wanted:    wanted,
		Status:    types.ListingStatusOpen,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if ok, reason := strategy.Evaluate(listing); !ok {
		logger.Debug().Str("reason", reason).Msg("listing rejected by validation strategy")
		return nil, &ValidationError{Reason: reason}
	}

	if err := s.listings.Save(listing); err != nil {
		logger.Error().Err(err).Msg("failed to save listing")
		return nil, fmt.Errorf("failed to save listing: %w", err)
	}

	logger.Info().Uint("listing_id", listing.ID).Msg("listing created")
	return listing, nil
}

// GetListing retrieves a listing by id.
func (s *Service) GetListing(id uint) (*types.Listing, error) {
	listing, err := s.listings.FindByID(id)
	if err != nil {
		return nil, err
	}
	if listing == nil {
		return nil, ErrListingNotFound
	}
	return listing, nil
}

// OpenListings returns the marketplace view: all listings still open, in the
// store's insertion order.
func (s *Service) OpenListings() ([]types.Listing, error) {
	return s.listings.FindByStatus(types.ListingStatusOpen)
}

// ListingsByOwner returns every listing posted by the given participant.
func (s *Service) ListingsByOwner(ownerID uint) ([]types.Listing, error) {
	return s.listings.FindByOwner(ownerID)
}

// CompletedListingsByOwner returns the participant's completed trades.
func (s *Service) CompletedListingsByOwner(ownerID uint) ([]types.Listing, error) {
	return s.listings.FindByOwnerAndStatus(ownerID, types.ListingStatusCompleted)
}

// SetListingStatus is the only path by which a listing's status changes.
// Listings are immutable once terminal, and the only admissible transitions
// are OPEN -> COMPLETED and OPEN -> CANCELLED. After persisting it emits a
// ListingStatusChanged notification to the owner.
func (s *Service) SetListingStatus(id uint, newStatus string) (*types.Listing, error) {
	if newStatus != types.ListingStatusCompleted && newStatus != types.ListingStatusCancelled {
		return nil, &ValidationError{Reason: fmt.Sprintf("invalid listing status %q", newStatus)}
	}

	listing, err := s.GetListing(id)
	if err != nil {
		return nil, err
	}
	if listing.Status != types.ListingStatusOpen {
		return nil, &StateConflictError{Entity: "listing", ID: listing.ID, Status: listing.Status}
	}

	listing.Status = newStatus
	listing.UpdatedAt = time.Now()
	if err := s.listings.Update(listing); err != nil {
		return nil, fmt.Errorf("failed to update listing %d: %w", id, err)
	}

	log.Info().
		Uint("listing_id", listing.ID).
		Str("status", listing.Status).
		Str("service", "trade").
		Msg("listing status changed")

	s.notifyListingStatus(listing)
	return listing, nil
}

// SubmitOffer validates the payload and persists a pending counter-offer
// against the target listing, then notifies the listing owner.
func (s *Service) SubmitOffer(listingID, proposerID uint, payload OfferPayload) (*types.CounterOffer, error) {
	logger := log.With().
		Uint("listing_id", listingID).
		Uint("proposer_id", proposerID).
		Str("service", "trade").
		Logger()

	listing, err := s.GetListing(listingID)
	if err != nil {
		return nil, err
	}

	if proposerID == listing.OwnerID {
		logger.Debug().Msg("proposer owns the target listing")
		return nil, &ValidationError{Reason: "cannot submit an offer against your own listing"}
	}
	if verr := payload.validate(); verr != nil {
		logger.Debug().Str("reason", verr.Reason).Msg("offer payload rejected")
		return nil, verr
	}

	now := time.Now()
	offer := &types.CounterOffer{
		ListingID:     listingID,
		ProposerID:    proposerID,
		PayloadType:   payload.Type,
		Offered:       payload.Offered,
		BonusItem:     payload.BonusItem,
		BonusQuantity: payload.BonusQuantity,
		Status:        types.OfferStatusPending,
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	if err := s.offers.Save(offer); err != nil {
		logger.Error().Err(err).Msg("failed to save counter-offer")
		return nil, fmt.Errorf("failed to save counter-offer: %w", err)
	}

	logger.Info().Uint("offer_id", offer.ID).Str("payload", offer.Describe()).Msg("counter-offer submitted")

	s.deliver(listing.OwnerID, NotifyOfferReceived,
		fmt.Sprintf("You received a new offer for listing #%d", listingID))
	return offer, nil
}

// OffersForListing returns every counter-offer submitted against a listing.
func (s *Service) OffersForListing(listingID uint) ([]types.CounterOffer, error) {
	return s.offers.FindByListing(listingID)
}

// OffersByProposer returns every counter-offer a participant has submitted.
func (s *Service) OffersByProposer(proposerID uint) ([]types.CounterOffer, error) {
	return s.offers.FindByProposer(proposerID)
}

// ResolveOffer terminates a pending counter-offer. Accepting completes the
// target listing in the same store transaction and notifies both the owner
// (ListingStatusChanged) and the proposer (OfferAccepted); rejecting leaves
// the listing untouched and notifies the proposer only. Resolving an
// already-terminal offer fails with a state conflict and never re-fires
// notifications. A resolvable offer whose listing is missing is a data
// integrity failure: the call aborts with no writes.
func (s *Service) ResolveOffer(offerID uint, accept bool) (*types.CounterOffer, error) {
	logger := log.With().
		Uint("offer_id", offerID).
		Bool("accept", accept).
		Str("service", "trade").
		Logger()

	offer, err := s.offers.FindByID(offerID)
	if err != nil {
		return nil, err
	}
	if offer == nil {
		return nil, ErrOfferNotFound
	}
	if offer.Status != types.OfferStatusPending {
		return nil, &StateConflictError{Entity: "counter-offer", ID: offer.ID, Status: offer.Status}
	}

	listing, err := s.listings.FindByID(offer.ListingID)
	if err != nil {
		return nil, err
	}
	if listing == nil {
		logger.Error().Uint("listing_id", offer.ListingID).Msg("counter-offer references a missing listing")
		return nil, &DataIntegrityError{OfferID: offer.ID, ListingID: offer.ListingID}
	}

	if !accept {
		offer.Status = types.OfferStatusRejected
		offer.UpdatedAt = time.Now()
		if err := s.offers.Update(offer); err != nil {
			logger.Error().Err(err).Msg("failed to update counter-offer")
			return nil, fmt.Errorf("failed to update counter-offer %d: %w", offerID, err)
		}
		logger.Info().Msg("counter-offer rejected")
		s.deliver(offer.ProposerID, NotifyOfferRejected,
			fmt.Sprintf("Your offer #%d was rejected.", offer.ID))
		return offer, nil
	}

	if listing.Status != types.ListingStatusOpen {
		return nil, &StateConflictError{Entity: "listing", ID: listing.ID, Status: listing.Status}
	}

	if err := s.offers.AcceptWithListing(offer, listing); err != nil {
		// A concurrent accepter may have completed the listing after our
		// snapshot read; the store's conditional write catches that and the
		// conflict passes through untouched
		var conflict *StateConflictError
		if errors.As(err, &conflict) {
			logger.Info().Str("listing_status", conflict.Status).Msg("accept lost to a concurrent transition")
			return nil, err
		}
		logger.Error().Err(err).Msg("failed to apply accept transition")
		return nil, fmt.Errorf("failed to accept counter-offer %d: %w", offerID, err)
	}

	logger.Info().Uint("listing_id", listing.ID).Msg("counter-offer accepted, listing completed")

	s.notifyListingStatus(listing)
	s.deliver(offer.ProposerID, NotifyOfferAccepted,
		fmt.Sprintf("Your offer #%d was accepted!", offer.ID))
	return offer, nil
}

// notifyListingStatus tells the listing owner about a status change. Shared
// by SetListingStatus and the accept path so both fire the same event.
func (s *Service) notifyListingStatus(listing *types.Listing) {
	s.deliver(listing.OwnerID, NotifyListingStatusChanged,
		fmt.Sprintf("Your listing #%d is now %s", listing.ID, listing.Status))
}

// deliver hands a record to the notification sink. The transition the record
// describes has already been persisted, so a sink failure is logged rather
// than unwinding the operation.
func (s *Service) deliver(recipientID uint, category, message string) {
	if _, err := s.notifier.Deliver(recipientID, category, message); err != nil {
		log.Error().
			Err(err).
			Uint("recipient_id", recipientID).
			Str("category", category).
			Str("service", "trade").
			Msg("failed to deliver notification")
	}
}

// OfferPayload is the tagged input variant for counter-offer submission.
type OfferPayload struct {
	Type          string         `json:"payload_type"`
	Offered       types.ItemRefs `json:"offered"`
	BonusItem     string         `json:"bonus_item"`
	BonusQuantity int            `json:"bonus_quantity"`
}

func (p OfferPayload) validate() *ValidationError {
	switch p.Type {
	case types.PayloadSimple:
		if len(p.Offered) == 0 {
			return &ValidationError{Reason: "offer must contribute at least one item"}
		}
	case types.PayloadBonus:
		if len(p.Offered) == 0 {
			return &ValidationError{Reason: "offer must contribute at least one item"}
		}
		if p.BonusItem == "" {
			return &ValidationError{Reason: "bonus offer requires a description"}
		}
		if p.BonusQuantity <= 0 {
			return &ValidationError{Reason: "bonus offer requires a positive quantity"}
		}
	default:
		return &ValidationError{Reason: fmt.Sprintf("unknown payload type %q", p.Type)}
	}
	return nil
}
