package notify

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/apex-fest/backend/internal/models"
	"github.com/apex-fest/backend/pkg/queue"
)

const enqueueTimeout = 5 * time.Second

// Dispatcher hands a freshly inserted registration to the sheet webhook
// without blocking the intake response. Preferred path is the durable
// Redis queue (delivered by cmd/worker, retried, dead-lettered); when no
// queue is configured or the enqueue fails, it falls back to a detached
// best-effort send. Delivery failure never surfaces to the registrant.
type Dispatcher struct {
	queue  *queue.Queue
	client *Client
	logger *zap.Logger
}

// NewDispatcher creates a dispatcher. queue may be nil.
func NewDispatcher(q *queue.Queue, client *Client, logger *zap.Logger) *Dispatcher {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Dispatcher{queue: q, client: client, logger: logger}
}

// Dispatch never blocks on webhook delivery and never returns an error.
func (d *Dispatcher) Dispatch(reg models.Registration) {
	if d.queue != nil {
		ctx, cancel := context.WithTimeout(context.Background(), enqueueTimeout)
		err := d.queue.EnqueueSheetNotify(ctx, queue.SheetNotifyPayload{Registration: reg})
		cancel()
		if err == nil {
			return
		}
		d.logger.Warn("enqueue sheet notify failed, falling back to direct send",
			zap.Error(err), zap.String("registration_id", reg.RegistrationID))
	}

	if d.client == nil || !d.client.Configured() {
		d.logger.Warn("webhook not configured, registration not forwarded",
			zap.String("registration_id", reg.RegistrationID))
		return
	}

	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), DefaultTimeout)
		defer cancel()
		if err := d.client.Send(ctx, reg); err != nil {
			d.logger.Error("webhook send failed",
				zap.Error(err), zap.String("registration_id", reg.RegistrationID))
		}
	}()
}
