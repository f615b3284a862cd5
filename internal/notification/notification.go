package notification

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

var ErrNotificationNotFound = errors.New("notification not found")

// Service is the notification sink. The trade engine hands it records on
// state transitions; it persists them and leaves external delivery to the
// dispatcher. It never originates notifications itself.
type Service struct {
	db *Database
}

// NewService creates a new notification service with the given database connection
func NewService(gormDB *gorm.DB) *Service {
	return &Service{
		db: NewDatabase(gormDB),
	}
}

// Deliver persists a notification record and returns it. The record starts
// unread and undispatched; the caller only waits for this persistence
// acknowledgement, not for any external channel.
func (s *Service) Deliver(recipientID uint, category, message string) (*types.Notification, error) {
	notification := &types.Notification{
		RecipientID: recipientID,
		Category:    category,
		Message:     message,
		CreatedAt:   time.Now(),
	}

	if err := s.db.CreateNotification(notification); err != nil {
		return nil, fmt.Errorf("failed to save notification: %w", err)
	}

	log.Debug().
		Uint("notification_id", notification.ID).
		Uint("recipient_id", recipientID).
		Str("category", category).
		Str("service", "notification").
		Msg("notification recorded")
	return notification, nil
}

// ByRecipient lists a participant's notifications, optionally only the
// unread ones.
func (s *Service) ByRecipient(recipientID uint, unreadOnly bool) ([]types.Notification, error) {
	if unreadOnly {
		return s.db.GetUnreadByRecipient(recipientID)
	}
	return s.db.GetByRecipient(recipientID)
}

// MarkRead flags a notification as read and returns the updated record.
func (s *Service) MarkRead(id uint) (*types.Notification, error) {
	notification, err := s.db.GetNotification(id)
	if err != nil {
		return nil, err
	}
	if notification == nil {
		return nil, ErrNotificationNotFound
	}
	if notification.Read {
		return notification, nil
	}

	notification.Read = true
	if err := s.db.UpdateNotification(notification); err != nil {
		return nil, fmt.Errorf("failed to update notification %d: %w", id, err)
	}
	return notification, nil
}

// GinHandlers contains HTTP handlers for notification endpoints
type GinHandlers struct {
	service *Service
}

// NewGinHandlers creates a new set of HTTP handlers for notification endpoints
func NewGinHandlers(service *Service) *GinHandlers {
	return &GinHandlers{
		service: service,
	}
}

// ListHandler handles GET requests for the caller's notifications.
// Query parameter: unread=true to filter to unread records.
func (h *GinHandlers) ListHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		claims, exists := c.Get("claims")
		if !exists {
			response.Unauthorized(c, "Missing authentication claims")
			return
		}
		recipientID := auth.GetParticipantID(claims)
		if recipientID == 0 {
			response.Unauthorized(c, "Invalid participant ID in token")
			return
		}

		unreadOnly := c.Query("unread") == "true"
		notifications, err := h.service.ByRecipient(recipientID, unreadOnly)
		if err != nil {
			response.InternalError(c, "An unexpected error occurred")
			return
		}
		response.Success(c, notifications)
	}
}

// MarkReadHandler handles PUT requests to mark a notification read.
// URL parameter: notification_id
func (h *GinHandlers) MarkReadHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := strconv.ParseUint(c.Param("notification_id"), 10, 32)
		if err != nil {
			response.BadRequest(c, "notification_id must be a positive integer")
			return
		}

		notification, err := h.service.MarkRead(uint(id))
		if errors.Is(err, ErrNotificationNotFound) {
			response.NotFound(c, err.Error())
			return
		}
		response.Handle(c, notification, err)
	}
}
