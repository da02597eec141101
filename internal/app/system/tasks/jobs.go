// internal/app/system/tasks/jobs.go
package tasks

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"

	"github.com/ydpps/schoolcms/internal/app/store/outbox"
	"github.com/ydpps/schoolcms/internal/app/system/mailer"
	"github.com/ydpps/schoolcms/internal/app/system/timeouts"
)

// Sender delivers a single email. *mailer.Mailer satisfies it.
type Sender interface {
	Send(email mailer.Email) error
}

// OutboxQueue is the outbox surface the dispatcher needs. *outbox.Store
// satisfies it.
type OutboxQueue interface {
	Pending(ctx context.Context, limit int64) ([]outbox.Notification, error)
	MarkSent(ctx context.Context, id primitive.ObjectID) error
	MarkFailed(ctx context.Context, id primitive.ObjectID, sendErr error) error
}

// outboxBatchSize bounds how many notifications one dispatch pass sends.
const outboxBatchSize = 25

// OutboxDispatchJob creates a job that delivers pending outbox notifications.
// A failed send is recorded on the notification and retried on the next pass;
// it never affects the moderation decision that enqueued it.
func OutboxDispatchJob(queue OutboxQueue, sender Sender, logger *zap.Logger) Job {
	return Job{
		Name:     "outbox-dispatch",
		Interval: 30 * time.Second,
		Run: func(ctx context.Context) error {
			ctx, cancel := context.WithTimeout(ctx, timeouts.Batch())
			defer cancel()

			pending, err := queue.Pending(ctx, outboxBatchSize)
			if err != nil {
				return err
			}
			for _, n := range pending {
				if ctx.Err() != nil {
					return ctx.Err()
				}
				err := sender.Send(mailer.Email{
					To:       n.To,
					Subject:  n.Subject,
					TextBody: n.TextBody,
					HTMLBody: n.HTMLBody,
				})
				if err != nil {
					logger.Warn("notification send failed, will retry",
						zap.String("id", n.ID.Hex()),
						zap.String("to", n.To),
						zap.Int("attempts", n.Attempts+1),
						zap.Error(err))
					if markErr := queue.MarkFailed(ctx, n.ID, err); markErr != nil {
						return markErr
					}
					continue
				}
				if err := queue.MarkSent(ctx, n.ID); err != nil {
					return err
				}
				logger.Info("notification delivered",
					zap.String("id", n.ID.Hex()),
					zap.String("subject", n.Subject))
			}
			return nil
		},
	}
}

// OutboxCleanupJob creates a job that removes sent notifications older than
// the retention window.
func OutboxCleanupJob(store *outbox.Store, logger *zap.Logger) Job {
	const retention = 30 * 24 * time.Hour
	return Job{
		Name:     "outbox-cleanup",
		Interval: 6 * time.Hour,
		Run: func(ctx context.Context) error {
			ctx, cancel := context.WithTimeout(ctx, timeouts.Batch())
			defer cancel()

			deleted, err := store.DeleteSentBefore(ctx, time.Now().Add(-retention))
			if err != nil {
				return err
			}
			if deleted > 0 {
				logger.Info("cleaned up delivered notifications",
					zap.Int64("deleted", deleted))
			}
			return nil
		},
	}
}
