package memory

import (
	"context"
	"fmt"
	"sort"

	"deliveryhub/internal/entities"
	"deliveryhub/internal/repository/normalize"
	"deliveryhub/internal/service/delivery"
)

type Deliveries struct {
	store *Store
}

func NewDeliveries(store *Store) *Deliveries {
	return &Deliveries{
		store: store,
	}
}

func (d *Deliveries) Create(ctx context.Context, deliveryEntity entities.Delivery) (*entities.Delivery, error) {
	defer d.store.lock(ctx)()
	d.store.mu.Lock()
	defer d.store.mu.Unlock()

	if _, ok := d.store.deliveries[deliveryEntity.ID]; ok {
		return nil, fmt.Errorf("delivery %s already exists", deliveryEntity.ID)
	}

	rec := normalize.FromDelivery(deliveryEntity)
	d.store.deliveries[rec.ID] = cloneRecord(rec)
	return toDomain(rec), nil
}

func (d *Deliveries) GetByID(ctx context.Context, id string) (*entities.Delivery, error) {
	defer d.store.lock(ctx)()
	d.store.mu.RLock()
	defer d.store.mu.RUnlock()

	rec, ok := d.store.deliveries[id]
	if !ok {
		return nil, delivery.ErrDeliveryNotFound
	}
	return toDomain(rec), nil
}

// GetByIDForUpdate совпадает с GetByID: транзакции хранилища сериализованы через txMu,
// поэтому прочитанная внутри Do запись не меняется до конца транзакции.
func (d *Deliveries) GetByIDForUpdate(ctx context.Context, id string) (*entities.Delivery, error) {
	return d.GetByID(ctx, id)
}

// ListByOwner сравнивает разобранные ссылки, а не байты JSON: лишние поля объекта-ссылки не мешают.
func (d *Deliveries) ListByOwner(ctx context.Context, owner entities.OwnerRef) ([]entities.Delivery, error) {
	return d.list(ctx, func(rec normalize.Record) bool {
		return normalize.ParseOwnerJSON(rec.Owner).Matches(owner)
	}), nil
}

func (d *Deliveries) ListByStatus(ctx context.Context, status entities.DeliveryStatus) ([]entities.Delivery, error) {
	return d.list(ctx, func(rec normalize.Record) bool {
		return rec.Status == status.String()
	}), nil
}

func (d *Deliveries) Accept(ctx context.Context, claim entities.Claim) (*entities.Delivery, error) {
	defer d.store.lock(ctx)()
	d.store.mu.Lock()
	defer d.store.mu.Unlock()

	rec, ok := d.store.deliveries[claim.ID]
	if !ok || rec.Status != entities.DeliveryPending.String() || rec.TransporterID != nil {
		return nil, delivery.ErrConditionNotMet
	}

	transporterID := claim.TransporterID
	acceptedAt := claim.AcceptedAt
	rec.TransporterID = &transporterID
	rec.AcceptedAt = &acceptedAt
	rec.UpdatedAt = &acceptedAt

	d.store.deliveries[rec.ID] = rec
	return toDomain(rec), nil
}

func (d *Deliveries) UpdateStatus(ctx context.Context, update entities.StatusUpdate) (*entities.Delivery, error) {
	defer d.store.lock(ctx)()
	d.store.mu.Lock()
	defer d.store.mu.Unlock()

	rec, ok := d.store.deliveries[update.ID]
	if !ok || (update.Expected != "" && rec.Status != update.Expected.String()) {
		return nil, delivery.ErrConditionNotMet
	}

	updatedAt := update.UpdatedAt
	rec.Status = update.Status.String()
	rec.UpdatedAt = &updatedAt

	d.store.deliveries[rec.ID] = rec
	return toDomain(rec), nil
}

func (d *Deliveries) CountByStatus(ctx context.Context) (map[entities.DeliveryStatus]int64, error) {
	defer d.store.lock(ctx)()
	d.store.mu.RLock()
	defer d.store.mu.RUnlock()

	counts := make(map[entities.DeliveryStatus]int64)
	for _, rec := range d.store.deliveries {
		counts[entities.DeliveryStatus(rec.Status)]++
	}
	return counts, nil
}

func (d *Deliveries) list(ctx context.Context, match func(rec normalize.Record) bool) []entities.Delivery {
	unlock := d.store.lock(ctx)
	d.store.mu.RLock()
	records := make([]normalize.Record, 0)
	for _, rec := range d.store.deliveries {
		if match(rec) {
			records = append(records, rec)
		}
	}
	d.store.mu.RUnlock()
	unlock()

	// порядок как в PostgreSQL: created_at DESC NULLS LAST, id ASC
	sort.Slice(records, func(i, j int) bool {
		a, b := records[i].CreatedAt, records[j].CreatedAt
		switch {
		case a == nil && b == nil:
			return records[i].ID < records[j].ID
		case a == nil || b == nil:
			return b == nil
		case !a.Equal(*b):
			return a.After(*b)
		default:
			return records[i].ID < records[j].ID
		}
	})

	deliveries := make([]entities.Delivery, 0, len(records))
	for _, rec := range records {
		deliveries = append(deliveries, *toDomain(rec))
	}
	return deliveries
}

func toDomain(rec normalize.Record) *entities.Delivery {
	d := normalize.ToDelivery(cloneRecord(rec))
	return &d
}
