package notification

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/ksred/barter-api/internal/types"
	"github.com/rs/zerolog/log"
)

// Channel represents a mock external delivery channel. Real integrations
// (websocket push, email provider) would slot in behind the same shape.
type Channel struct {
	ID          string
	Name        string
	MinLatency  int // in milliseconds
	MaxLatency  int
	SuccessRate float64 // 0-1, probability of successful delivery
}

var mockChannels = []*Channel{
	{
		ID:          "PUSH",
		Name:        "Push Gateway",
		MinLatency:  5,
		MaxLatency:  30,
		SuccessRate: 0.98,
	},
	{
		ID:          "EMAIL",
		Name:        "Email Relay",
		MinLatency:  20,
		MaxLatency:  120,
		SuccessRate: 0.95,
	},
}

// channelFor picks the delivery channel for a notification category. Trade
// events go to the push gateway; everything else falls back to email.
func channelFor(category string) *Channel {
	switch category {
	case "OfferReceived", "OfferAccepted", "OfferRejected", "ListingStatusChanged":
		return mockChannels[0]
	default:
		return mockChannels[1]
	}
}

// Send simulates delivering a notification over this channel.
func (ch *Channel) Send(notification *types.Notification) error {
	logger := log.With().
		Str("channel_id", ch.ID).
		Uint("notification_id", notification.ID).
		Uint("recipient_id", notification.RecipientID).
		Str("category", notification.Category).
		Logger()

	// Simulate random latency
	latency := rand.Intn(ch.MaxLatency-ch.MinLatency+1) + ch.MinLatency
	time.Sleep(time.Duration(latency) * time.Millisecond)

	if rand.Float64() > ch.SuccessRate {
		logger.Warn().
			Float64("success_rate", ch.SuccessRate).
			Msg("delivery failed, will retry on next dispatch cycle")
		return fmt.Errorf("delivery failed on channel %s", ch.ID)
	}

	logger.Debug().Int("latency_ms", latency).Msg("notification delivered")
	return nil
}
