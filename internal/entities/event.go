package entities

import "time"

type DeliveryEventType string

const (
	EventDeliveryCreated       DeliveryEventType = "delivery.created"
	EventDeliveryAccepted      DeliveryEventType = "delivery.accepted"
	EventDeliveryStatusChanged DeliveryEventType = "delivery.status_changed"
	EventDeliveryCancelled     DeliveryEventType = "delivery.cancelled"
)

func (t DeliveryEventType) String() string {
	return string(t)
}

// DeliveryEvent - факт изменения доставки, сохраняется в outbox вместе с самим изменением.
type DeliveryEvent struct {
	ID         string
	DeliveryID string
	Type       DeliveryEventType
	ActorID    string
	Status     DeliveryStatus
	OccurredAt time.Time
}

// OutboxMessage - событие из outbox, ожидающее публикации.
type OutboxMessage struct {
	ID          int64
	Event       DeliveryEvent
	Attempts    int
	CreatedAt   time.Time
	PublishedAt *time.Time
	LastError   *string
}
