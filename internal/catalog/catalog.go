package catalog

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/ksred/barter-api/internal/auth"
	"github.com/ksred/barter-api/internal/types"
	"github.com/ksred/barter-api/pkg/response"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

// Rarity bounds on the catalog scale (1 = common, 5 = legendary).
const (
	MinRarity = 1
	MaxRarity = 5
)

var ErrItemNotFound = errors.New("item not found")

// Service is the item catalog: the read-only source of item identity and
// rarity the validation strategies consume.
type Service struct {
	db *Database
}

// NewService creates a new catalog service with the given database connection
func NewService(gormDB *gorm.DB) *Service {
	return &Service{
		db: NewDatabase(gormDB),
	}
}

// RegisterItem adds an item to the catalog.
func (s *Service) RegisterItem(item *types.Item) (*types.Item, error) {
	if item.Name == "" {
		return nil, errors.New("item name is required")
	}
	if item.Rarity < MinRarity || item.Rarity > MaxRarity {
		return nil, fmt.Errorf("item rarity must be between %d and %d", MinRarity, MaxRarity)
	}

	item.CreatedAt = time.Now()
	if err := s.db.CreateItem(item); err != nil {
		return nil, fmt.Errorf("failed to save item: %w", err)
	}

	log.Info().
		Uint("item_id", item.ID).
		Str("name", item.Name).
		Int("rarity", item.Rarity).
		Str("service", "catalog").
		Msg("item registered")
	return item, nil
}

// LookupItem returns the item with the given id, or (nil, nil) when the
// catalog has no such item. Satisfies the trade engine's catalog contract.
func (s *Service) LookupItem(itemID uint) (*types.Item, error) {
	return s.db.GetItem(itemID)
}

// ItemsByOwner lists a participant's items.
func (s *Service) ItemsByOwner(ownerID uint) ([]types.Item, error) {
	return s.db.GetItemsByOwner(ownerID)
}

// GinHandlers contains HTTP handlers for catalog endpoints
type GinHandlers struct {
	service *Service
}

// NewGinHandlers creates a new set of HTTP handlers for catalog endpoints
func NewGinHandlers(service *Service) *GinHandlers {
	return &GinHandlers{
		service: service,
	}
}

type registerItemRequest struct {
	Name     string `json:"name" binding:"required"`
	Kind     string `json:"kind"`
	ImageURL string `json:"image_url"`
	Rarity   int    `json:"rarity" binding:"required"`
}

// RegisterItemHandler handles POST requests to add catalog items.
// The authenticated participant becomes the item owner.
func (h *GinHandlers) RegisterItemHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		claims, exists := c.Get("claims")
		if !exists {
			response.Unauthorized(c, "Missing authentication claims")
			return
		}
		ownerID := auth.GetParticipantID(claims)
		if ownerID == 0 {
			response.Unauthorized(c, "Invalid participant ID in token")
			return
		}

		var req registerItemRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			response.BadRequest(c, err.Error())
			return
		}

		item, err := h.service.RegisterItem(&types.Item{
			Name:     req.Name,
			Kind:     req.Kind,
			ImageURL: req.ImageURL,
			Rarity:   req.Rarity,
			OwnerID:  ownerID,
		})
		if err != nil {
			response.BadRequest(c, err.Error())
			return
		}
		response.Success(c, item)
	}
}

// MyItemsHandler handles GET requests for the caller's own items.
func (h *GinHandlers) MyItemsHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		claims, exists := c.Get("claims")
		if !exists {
			response.Unauthorized(c, "Missing authentication claims")
			return
		}
		ownerID := auth.GetParticipantID(claims)
		if ownerID == 0 {
			response.Unauthorized(c, "Invalid participant ID in token")
			return
		}

		items, err := h.service.ItemsByOwner(ownerID)
		if err != nil {
			response.InternalError(c, "An unexpected error occurred")
			return
		}
		response.Success(c, items)
	}
}

// GetItemHandler handles GET requests for a single catalog item.
// URL parameter: item_id
func (h *GinHandlers) GetItemHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := strconv.ParseUint(c.Param("item_id"), 10, 32)
		if err != nil {
			response.BadRequest(c, "item_id must be a positive integer")
			return
		}

		item, err := h.service.LookupItem(uint(id))
		if err != nil {
			response.InternalError(c, "An unexpected error occurred")
			return
		}
		if item == nil {
			response.NotFound(c, ErrItemNotFound.Error())
			return
		}
		response.Success(c, item)
	}
}
