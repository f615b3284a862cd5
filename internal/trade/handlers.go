package trade

import (
	"errors"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/ksred/barter-api/internal/auth"
	"github.com/ksred/barter-api/internal/types"
	"github.com/ksred/barter-api/pkg/response"
)

// GinHandlers contains HTTP handlers for the trade endpoints. They are a
// thin orchestration facade: identity comes from the JWT claims, everything
// else is delegated to the engine.
type GinHandlers struct {
	service *Service
}

// NewGinHandlers creates a new set of HTTP handlers for trade endpoints.
func NewGinHandlers(service *Service) *GinHandlers {
	return &GinHandlers{
		service: service,
	}
}

type createListingRequest struct {
	Offered    types.ItemRefs `json:"offered" binding:"required"`
	Wanted     types.ItemRefs `json:"wanted" binding:"required"`
	Validation string         `json:"validation"`
}

type setListingStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

type resolveOfferRequest struct {
	Accept *bool `json:"accept" binding:"required"`
}

// CreateListingHandler handles POST requests to post a new listing.
// The validation field selects the strategy for this call only.
func (h *GinHandlers) CreateListingHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		ownerID, ok := participantID(c)
		if !ok {
			return
		}

		var req createListingRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			response.BadRequest(c, err.Error())
			return
		}

		strategy, err := h.service.StrategyFor(req.Validation)
		if err != nil {
			handleTradeError(c, err)
			return
		}

		listing, err := h.service.CreateListing(ownerID, req.Offered, req.Wanted, strategy)
		if err != nil {
			handleTradeError(c, err)
			return
		}
		response.Success(c, listing)
	}
}

// OpenListingsHandler handles GET requests for the marketplace view.
func (h *GinHandlers) OpenListingsHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		listings, err := h.service.OpenListings()
		if err != nil {
			handleTradeError(c, err)
			return
		}
		response.Success(c, listings)
	}
}

// GetListingHandler handles GET requests for a single listing.
// URL parameter: listing_id
func (h *GinHandlers) GetListingHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := uintParam(c, "listing_id")
		if !ok {
			return
		}
		listing, err := h.service.GetListing(id)
		if err != nil {
			handleTradeError(c, err)
			return
		}
		response.Success(c, listing)
	}
}

// MyListingsHandler handles GET requests for the caller's own listings.
func (h *GinHandlers) MyListingsHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		ownerID, ok := participantID(c)
		if !ok {
			return
		}
		listings, err := h.service.ListingsByOwner(ownerID)
		if err != nil {
			handleTradeError(c, err)
			return
		}
		response.Success(c, listings)
	}
}

// CompletedListingsHandler handles GET requests for the caller's completed
// trades.
func (h *GinHandlers) CompletedListingsHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		ownerID, ok := participantID(c)
		if !ok {
			return
		}
		listings, err := h.service.CompletedListingsByOwner(ownerID)
		if err != nil {
			handleTradeError(c, err)
			return
		}
		response.Success(c, listings)
	}
}

// SetListingStatusHandler handles PUT requests to change a listing's status,
// the owner-initiated cancellation path.
// URL parameter: listing_id
func (h *GinHandlers) SetListingStatusHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := uintParam(c, "listing_id")
		if !ok {
			return
		}
		var req setListingStatusRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			response.BadRequest(c, err.Error())
			return
		}
		listing, err := h.service.SetListingStatus(id, req.Status)
		if err != nil {
			handleTradeError(c, err)
			return
		}
		response.Success(c, listing)
	}
}

// SubmitOfferHandler handles POST requests to submit a counter-offer
// against a listing.
// URL parameter: listing_id
func (h *GinHandlers) SubmitOfferHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		proposerID, ok := participantID(c)
		if !ok {
			return
		}
		listingID, ok := uintParam(c, "listing_id")
		if !ok {
			return
		}

		var payload OfferPayload
		if err := c.ShouldBindJSON(&payload); err != nil {
			response.BadRequest(c, err.Error())
			return
		}

		offer, err := h.service.SubmitOffer(listingID, proposerID, payload)
		if err != nil {
			handleTradeError(c, err)
			return
		}
		response.Success(c, offer)
	}
}

// ListingOffersHandler handles GET requests for the counter-offers a
// listing has received.
// URL parameter: listing_id
func (h *GinHandlers) ListingOffersHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		listingID, ok := uintParam(c, "listing_id")
		if !ok {
			return
		}
		offers, err := h.service.OffersForListing(listingID)
		if err != nil {
			handleTradeError(c, err)
			return
		}
		response.Success(c, offers)
	}
}

// MyOffersHandler handles GET requests for the caller's submitted offers.
func (h *GinHandlers) MyOffersHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		proposerID, ok := participantID(c)
		if !ok {
			return
		}
		offers, err := h.service.OffersByProposer(proposerID)
		if err != nil {
			handleTradeError(c, err)
			return
		}
		response.Success(c, offers)
	}
}

// ResolveOfferHandler handles PUT requests to accept or reject a
// counter-offer.
// URL parameter: offer_id
func (h *GinHandlers) ResolveOfferHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		offerID, ok := uintParam(c, "offer_id")
		if !ok {
			return
		}
		var req resolveOfferRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			response.BadRequest(c, err.Error())
			return
		}
		offer, err := h.service.ResolveOffer(offerID, *req.Accept)
		if err != nil {
			handleTradeError(c, err)
			return
		}
		response.Success(c, offer)
	}
}

// handleTradeError maps the engine's error taxonomy onto the response
// envelope. Data integrity failures get a distinct code so callers alarm
// instead of retrying.
func handleTradeError(c *gin.Context, err error) {
	var verr *ValidationError
	var serr *StateConflictError
	var derr *DataIntegrityError

	switch {
	case errors.As(err, &verr):
		response.ValidationFailed(c, verr.Reason)
	case errors.Is(err, ErrListingNotFound), errors.Is(err, ErrOfferNotFound):
		response.NotFound(c, err.Error())
	case errors.As(err, &serr):
		response.StateConflict(c, serr.Error())
	case errors.As(err, &derr):
		response.DataIntegrity(c, derr.Error())
	default:
		response.InternalError(c, "An unexpected error occurred")
	}
}

func participantID(c *gin.Context) (uint, bool) {
	claims, exists := c.Get("claims")
	if !exists {
		response.Unauthorized(c, "Missing authentication claims")
		return 0, false
	}
	id := auth.GetParticipantID(claims)
	if id == 0 {
		response.Unauthorized(c, "Invalid participant ID in token")
		return 0, false
	}
	return id, true
}

func uintParam(c *gin.Context, name string) (uint, bool) {
	raw := c.Param(name)
	id, err := strconv.ParseUint(raw, 10, 32)
	if err != nil {
		response.BadRequest(c, name+" must be a positive integer")
		return 0, false
	}
	return uint(id), true
}
