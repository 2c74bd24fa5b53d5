// Package notifier delivers ban and unban notices to users over email
// and SMS. Delivery runs in the background so moderation operations
// never wait on an outside provider; failures are logged and dropped.
package notifier

import (
	"context"
	"time"

	"github.com/bugboard/bugboard/internal/database/types"
	"github.com/bugboard/bugboard/internal/setup/config"
	"github.com/sourcegraph/conc/pool"
	"go.uber.org/zap"
)

const deliveryTimeout = 30 * time.Second

// Dispatcher fans ban/unban notices out to the configured channels.
// It implements service.Notifier.
type Dispatcher struct {
	email  *EmailSender
	sms    *SMSSender
	pool   *pool.Pool
	logger *zap.Logger
}

// NewDispatcher builds a dispatcher with whichever channels the
// configuration enables. With no channels enabled every notification
// is a silent no-op, which keeps moderation usable in development.
func NewDispatcher(cfg *config.Config, logger *zap.Logger) (*Dispatcher, error) {
	d := &Dispatcher{
		pool:   pool.New().WithMaxGoroutines(4),
		logger: logger.Named("notifier"),
	}

	if cfg.Email.Enabled {
		email, err := NewEmailSender(&cfg.Email)
		if err != nil {
			return nil, err
		}

		d.email = email
	}

	if cfg.SMS.Enabled {
		d.sms = NewSMSSender(&cfg.SMS)
	}

	return d, nil
}

// NotifyBan tells the user they have been banned and why.
func (d *Dispatcher) NotifyBan(user *types.User, reason string) {
	d.dispatch(user, "You have been banned", "Reason: "+reason, "BANNED: "+reason)
}

// NotifyUnban tells the user their ban has been lifted.
func (d *Dispatcher) NotifyUnban(user *types.User) {
	d.dispatch(user, "You have been un-banned", "You may now log in again.", "Your ban has been lifted.")
}

// dispatch queues delivery on every enabled channel the user can
// receive. The user row is captured by value fields only, so callers
// may mutate the original after the call returns.
func (d *Dispatcher) dispatch(user *types.User, subject, body, smsBody string) {
	email := user.Email
	phone := user.Phone
	userID := user.ID

	if d.email != nil && email != "" {
		d.pool.Go(func() {
			ctx, cancel := context.WithTimeout(context.Background(), deliveryTimeout)
			defer cancel()

			if err := d.email.Send(ctx, email, subject, body); err != nil {
				d.logger.Error("Failed to send notification email",
					zap.Int64("userID", userID),
					zap.Error(err))

				return
			}

			d.logger.Info("Notification email sent", zap.Int64("userID", userID))
		})
	}

	if d.sms != nil && phone != "" {
		d.pool.Go(func() {
			if err := d.sms.Send(phone, smsBody); err != nil {
				d.logger.Error("Failed to send notification SMS",
					zap.Int64("userID", userID),
					zap.Error(err))

				return
			}

			d.logger.Info("Notification SMS sent", zap.Int64("userID", userID))
		})
	}
}

// Close waits for queued deliveries to finish.
func (d *Dispatcher) Close() {
	d.pool.Wait()
}
