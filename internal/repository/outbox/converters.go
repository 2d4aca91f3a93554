package outbox

import "deliveryhub/internal/entities"

func ToDomain(m *MessageDB) *entities.OutboxMessage {
	if m == nil {
		return nil
	}

	return &entities.OutboxMessage{
		ID: m.ID,
		Event: entities.DeliveryEvent{
			ID:         m.EventID,
			DeliveryID: m.DeliveryID,
			Type:       entities.DeliveryEventType(m.EventType),
			ActorID:    m.ActorID,
			Status:     entities.DeliveryStatus(m.Status),
			OccurredAt: m.OccurredAt,
		},
		Attempts:    m.Attempts,
		CreatedAt:   m.CreatedAt,
		PublishedAt: m.PublishedAt,
		LastError:   m.LastError,
	}
}
