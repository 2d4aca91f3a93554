package memory

import (
	"context"
	"fmt"
	"slices"
	"time"

	"deliveryhub/internal/entities"
)

type Outbox struct {
	store *Store
	now   func() time.Time
}

func NewOutbox(store *Store) *Outbox {
	return &Outbox{
		store: store,
		now:   time.Now,
	}
}

func (o *Outbox) Record(ctx context.Context, event entities.DeliveryEvent) error {
	defer o.store.lock(ctx)()
	o.store.mu.Lock()
	defer o.store.mu.Unlock()

	for _, m := range o.store.outbox {
		if m.Event.ID == event.ID {
			return fmt.Errorf("outbox event %s already recorded", event.ID)
		}
	}

	o.store.nextID++
	o.store.outbox = append(o.store.outbox, entities.OutboxMessage{
		ID:        o.store.nextID,
		Event:     event,
		CreatedAt: o.now().UTC(),
	})
	return nil
}

func (o *Outbox) FetchPending(ctx context.Context, limit int) ([]entities.OutboxMessage, error) {
	defer o.store.lock(ctx)()
	o.store.mu.RLock()
	defer o.store.mu.RUnlock()

	messages := make([]entities.OutboxMessage, 0, limit)
	for _, m := range o.store.outbox {
		if len(messages) == limit {
			break
		}
		if m.PublishedAt == nil {
			messages = append(messages, m)
		}
	}
	return messages, nil
}

func (o *Outbox) MarkPublished(ctx context.Context, ids []int64, publishedAt time.Time) error {
	defer o.store.lock(ctx)()
	o.store.mu.Lock()
	defer o.store.mu.Unlock()

	for i := range o.store.outbox {
		if slices.Contains(ids, o.store.outbox[i].ID) {
			at := publishedAt
			o.store.outbox[i].PublishedAt = &at
			o.store.outbox[i].LastError = nil
		}
	}
	return nil
}

func (o *Outbox) MarkFailed(ctx context.Context, id int64, reason string) error {
	defer o.store.lock(ctx)()
	o.store.mu.Lock()
	defer o.store.mu.Unlock()

	for i := range o.store.outbox {
		if o.store.outbox[i].ID == id {
			o.store.outbox[i].Attempts++
			o.store.outbox[i].LastError = &reason
		}
	}
	return nil
}

func (o *Outbox) CountPending(ctx context.Context) (int64, error) {
	defer o.store.lock(ctx)()
	o.store.mu.RLock()
	defer o.store.mu.RUnlock()

	var count int64
	for _, m := range o.store.outbox {
		if m.PublishedAt == nil {
			count++
		}
	}
	return count, nil
}
