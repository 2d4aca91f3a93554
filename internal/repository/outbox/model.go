package outbox

import "time"

type MessageDB struct {
	ID          int64
	EventID     string
	DeliveryID  string
	EventType   string
	ActorID     string
	Status      string
	OccurredAt  time.Time
	CreatedAt   time.Time
	Attempts    int
	PublishedAt *time.Time
	LastError   *string
}
