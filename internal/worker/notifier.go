// Package worker delivers queued sheet webhook jobs and tails the
// registrations change stream for inserts that bypassed the queue.
package worker

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/apex-fest/backend/internal/notify"
	"github.com/apex-fest/backend/pkg/queue"
)

// NotifyProcessor consumes sheet notification jobs and delivers them to
// the webhook with retry and dead-lettering.
type NotifyProcessor struct {
	client *notify.Client
	queue  *queue.Queue
	logger *zap.Logger
}

// NewNotifyProcessor creates a notification processor.
func NewNotifyProcessor(client *notify.Client, q *queue.Queue, logger *zap.Logger) *NotifyProcessor {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &NotifyProcessor{client: client, queue: q, logger: logger}
}

// Process executes one sheet notification job.
func (p *NotifyProcessor) Process(ctx context.Context, job *queue.Job) error {
	if job.Type != queue.JobTypeSheetNotify {
		return fmt.Errorf("unknown job type: %s", job.Type)
	}
	var payload queue.SheetNotifyPayload
	if err := json.Unmarshal(job.Payload, &payload); err != nil {
		return fmt.Errorf("unmarshal payload: %w", err)
	}

	sendCtx, cancel := context.WithTimeout(ctx, notify.DefaultTimeout)
	defer cancel()
	if err := p.client.Send(sendCtx, payload.Registration); err != nil {
		return fmt.Errorf("send webhook: %w", err)
	}
	return nil
}

// Run starts the worker loop: dequeue, process, retry on error.
func (p *NotifyProcessor) Run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			p.logger.Info("notify worker stopping")
			return
		default:
		}

		job, err := p.queue.Dequeue(ctx)
		if err != nil {
			if ctx.Err() != nil {
				p.logger.Info("notify worker stopping")
				return
			}
			p.logger.Warn("dequeue error", zap.Error(err))
			time.Sleep(queue.RetryBackoff)
			continue
		}
		if job == nil {
			continue
		}

		p.logger.Debug("processing job", zap.String("job_id", job.ID), zap.String("type", string(job.Type)))
		if err := p.Process(ctx, job); err != nil {
			p.logger.Error("job failed", zap.String("job_id", job.ID), zap.Error(err))
			if reErr := p.queue.Retry(ctx, job); reErr != nil {
				p.logger.Error("retry enqueue failed", zap.Error(reErr))
			}
			time.Sleep(queue.RetryBackoff)
			continue
		}
	}
}
