package events

import (
	"context"
	"fmt"
	"time"
)

type Relay struct {
	outbox    Outbox
	publisher Publisher
	txManager TxManager
	batchSize int
	now       func() time.Time
}

// Result - итог одного прохода relay.
type Result struct {
	Published     int
	Failed        int
	Pending       int64
	FailureReason string
}

func New(outbox Outbox, publisher Publisher, txManager TxManager, batchSize int) *Relay {
	return &Relay{
		outbox:    outbox,
		publisher: publisher,
		txManager: txManager,
		batchSize: batchSize,
		now:       time.Now,
	}
}

// Relay публикует одну пачку событий из outbox.
// На первой ошибке публикации проход останавливается, чтобы события одной доставки
// не обгоняли друг друга. Доставка событий at-least-once.
func (r *Relay) Relay(ctx context.Context) (Result, error) {
	var result Result

	err := r.txManager.Do(ctx, func(ctx context.Context) error {
		result = Result{}

		messages, err := r.outbox.FetchPending(ctx, r.batchSize)
		if err != nil {
			return fmt.Errorf("fetch pending outbox messages: %w", err)
		}

		published := make([]int64, 0, len(messages))
		for _, message := range messages {
			eventType := message.Event.Type.String()

			if err := r.publisher.Publish(ctx, message.Event); err != nil {
				OutboxFailedTotal.WithLabelValues(eventType).Inc()
				result.Failed++
				result.FailureReason = err.Error()

				if err := r.outbox.MarkFailed(ctx, message.ID, err.Error()); err != nil {
					return fmt.Errorf("mark outbox message %d failed: %w", message.ID, err)
				}
				break
			}

			OutboxPublishedTotal.WithLabelValues(eventType).Inc()
			published = append(published, message.ID)
		}

		if err := r.outbox.MarkPublished(ctx, published, r.now().UTC()); err != nil {
			return fmt.Errorf("mark outbox messages published: %w", err)
		}
		result.Published = len(published)
		return nil
	})
	if err != nil {
		return Result{}, err
	}

	pending, err := r.outbox.CountPending(ctx)
	if err != nil {
		return result, fmt.Errorf("count pending outbox messages: %w", err)
	}
	OutboxPending.Set(float64(pending))
	result.Pending = pending

	return result, nil
}
