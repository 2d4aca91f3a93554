// Package normalize приводит хранимые записи доставок к каноничному виду.
package normalize

import (
	"bytes"
	"encoding/json"
	"strings"
	"time"

	"deliveryhub/internal/entities"
)

const legacyPathPrefix = "/users/"

// Record - запись доставки в том виде, в котором она лежит в хранилище.
// Owner содержит сырое JSON значение ссылки на владельца.
type Record struct {
	ID             string
	Owner          json.RawMessage
	RecipientName  string
	RecipientPhone string
	Pickup         entities.Location
	Dropoff        entities.Location
	PackageName    string
	PackageNote    *string
	PackageSize    string
	Status         string
	TransporterID  *string
	AcceptedAt     *time.Time
	CreatedAt      *time.Time
	UpdatedAt      *time.Time
}

type legacyRef struct {
	Path *string `json:"path"`
}

// ParseOwnerJSON разбирает сырое значение ссылки на владельца.
// Ошибочных значений нет: все, что не распознано, считается каноничным идентификатором.
func ParseOwnerJSON(raw json.RawMessage) entities.OwnerRef {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		return entities.BareOwner("")
	}

	var s string
	if err := json.Unmarshal(trimmed, &s); err == nil {
		if strings.HasPrefix(s, legacyPathPrefix) {
			return entities.OwnerRef{Kind: entities.OwnerLegacyPath, Value: s}
		}
		return entities.BareOwner(s)
	}

	var ref legacyRef
	if err := json.Unmarshal(trimmed, &ref); err == nil && ref.Path != nil {
		return entities.OwnerRef{Kind: entities.OwnerLegacyRef, Value: *ref.Path}
	}

	return entities.BareOwner(string(trimmed))
}

// OwnerJSON кодирует ссылку обратно в ту форму, в которой она хранится.
func OwnerJSON(ref entities.OwnerRef) json.RawMessage {
	var (
		raw []byte
		err error
	)
	switch ref.Kind {
	case entities.OwnerLegacyRef:
		path := ref.Value
		raw, err = json.Marshal(legacyRef{Path: &path})
	default:
		raw, err = json.Marshal(ref.Value)
	}
	if err != nil {
		// json.Marshal строки и структуры из строки не падает
		panic(err)
	}
	return raw
}

// ToDelivery возвращает каноничную доставку. Отсутствующие временные метки становятся нулевым временем.
func ToDelivery(rec Record) entities.Delivery {
	delivery := entities.Delivery{
		ID:             rec.ID,
		OwnerUserID:    ParseOwnerJSON(rec.Owner).UserID(),
		RecipientName:  rec.RecipientName,
		RecipientPhone: rec.RecipientPhone,
		Pickup:         rec.Pickup,
		Dropoff:        rec.Dropoff,
		PackageName:    rec.PackageName,
		PackageSize:    rec.PackageSize,
		Status:         entities.DeliveryStatus(rec.Status),
		TransporterID:  rec.TransporterID,
		AcceptedAt:     rec.AcceptedAt,
	}
	if rec.PackageNote != nil {
		delivery.PackageNote = *rec.PackageNote
	}
	if rec.CreatedAt != nil {
		delivery.CreatedAt = *rec.CreatedAt
	}
	if rec.UpdatedAt != nil {
		delivery.UpdatedAt = *rec.UpdatedAt
	}
	return delivery
}

// FromDelivery строит запись для сохранения. Владелец всегда пишется в каноничной форме.
func FromDelivery(d entities.Delivery) Record {
	note := d.PackageNote
	rec := Record{
		ID:             d.ID,
		Owner:          OwnerJSON(entities.BareOwner(d.OwnerUserID)),
		RecipientName:  d.RecipientName,
		RecipientPhone: d.RecipientPhone,
		Pickup:         d.Pickup,
		Dropoff:        d.Dropoff,
		PackageName:    d.PackageName,
		PackageNote:    &note,
		PackageSize:    d.PackageSize,
		Status:         d.Status.String(),
		TransporterID:  d.TransporterID,
		AcceptedAt:     d.AcceptedAt,
	}
	if !d.CreatedAt.IsZero() {
		createdAt := d.CreatedAt
		rec.CreatedAt = &createdAt
	}
	if !d.UpdatedAt.IsZero() {
		updatedAt := d.UpdatedAt
		rec.UpdatedAt = &updatedAt
	}
	return rec
}
