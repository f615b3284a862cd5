package notification

import (
	"context"
	"time"

	"github.com/rs/zerolog/log"
)

// Dispatcher pushes recorded notifications out to external channels in the
// background. The trade engine never waits on it: records are the contract,
// delivery is best-effort and retried on the next cycle.
type Dispatcher struct {
	db            *Database
	dispatchDelay time.Duration // Time between dispatch attempts
}

func NewDispatcher(db *Database, dispatchDelay time.Duration) *Dispatcher {
	return &Dispatcher{
		db:            db,
		dispatchDelay: dispatchDelay,
	}
}

// Start begins the dispatch loop
func (d *Dispatcher) Start(ctx context.Context) {
	logger := log.With().Str("component", "notification_dispatcher").Logger()
	logger.Info().Msg("starting notification dispatcher")

	ticker := time.NewTicker(d.dispatchDelay)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			logger.Info().Msg("shutting down notification dispatcher")
			return
		case <-ticker.C:
			if err := d.dispatchPending(); err != nil {
				logger.Error().Err(err).Msg("failed to dispatch pending notifications")
			}
		}
	}
}

func (d *Dispatcher) dispatchPending() error {
	logger := log.With().Str("component", "notification_dispatcher").Logger()

	notifications, err := d.db.GetUndispatched()
	if err != nil {
		return err
	}

	if len(notifications) > 0 {
		logger.Info().Int("pending_count", len(notifications)).Msg("dispatching pending notifications")
	}

	for i := range notifications {
		notification := &notifications[i]

		channel := channelFor(notification.Category)
		if err := channel.Send(notification); err != nil {
			// Left undispatched; picked up again next cycle
			continue
		}

		notification.Dispatched = true
		if err := d.db.UpdateNotification(notification); err != nil {
			logger.Error().
				Err(err).
				Uint("notification_id", notification.ID).
				Msg("failed to mark notification dispatched")
			continue
		}
	}

	return nil
}
