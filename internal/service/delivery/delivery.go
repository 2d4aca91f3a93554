package delivery

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"deliveryhub/internal/entities"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
)

type Delivery struct {
	repository Repository
	events     EventRecorder
	txManager  TxManager
	policy     TransitionPolicy
}

func New(
	repository Repository,
	events EventRecorder,
	txManager TxManager,
	policy TransitionPolicy,
) *Delivery {
	return &Delivery{
		repository: repository,
		events:     events,
		txManager:  txManager,
		policy:     policy,
	}
}

func (d *Delivery) Create(ctx context.Context, callerID string, deliveryCreate entities.DeliveryCreate) (*entities.Delivery, error) {
	in, err := normalizeCreate(deliveryCreate)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	newDelivery := entities.Delivery{
		ID:             uuid.NewString(),
		OwnerUserID:    callerID,
		RecipientName:  in.RecipientName,
		RecipientPhone: in.RecipientPhone,
		Pickup:         *in.Pickup,
		Dropoff:        *in.Dropoff,
		PackageName:    in.PackageName,
		PackageSize:    in.PackageSize,
		Status:         entities.DeliveryPending,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	if in.PackageNote != nil {
		newDelivery.PackageNote = *in.PackageNote
	}

	var created *entities.Delivery
	err = d.txManager.Do(ctx, func(ctx context.Context) error {
		created, err = d.repository.Create(ctx, newDelivery)
		if err != nil {
			return fmt.Errorf("create delivery: %w", err)
		}

		return d.record(ctx, created, entities.EventDeliveryCreated, callerID, now)
	})
	if err != nil {
		return nil, err
	}
	return created, nil
}

// ListHistory возвращает доставки пользователя во всех кодировках ссылки на владельца.
// Каноничная кодировка опрашивается первой и выигрывает при дублях.
func (d *Delivery) ListHistory(ctx context.Context, callerID string) ([]entities.Delivery, error) {
	encodings := entities.OwnerEncodings(callerID)
	results := make([][]entities.Delivery, len(encodings))

	group, groupCtx := errgroup.WithContext(ctx)
	for i, owner := range encodings {
		group.Go(func() error {
			deliveries, err := d.repository.ListByOwner(groupCtx, owner)
			if err != nil {
				return fmt.Errorf("list deliveries by %s owner: %w", owner.Kind, err)
			}
			results[i] = deliveries
			return nil
		})
	}
	if err := group.Wait(); err != nil {
		return nil, err
	}

	seen := make(map[string]struct{})
	history := make([]entities.Delivery, 0)
	for _, deliveries := range results {
		for _, delivery := range deliveries {
			if _, ok := seen[delivery.ID]; ok {
				continue
			}
			seen[delivery.ID] = struct{}{}
			history = append(history, delivery)
		}
	}

	sortNewestFirst(history)
	return history, nil
}

func (d *Delivery) GetByID(ctx context.Context, callerID, id string) (*entities.Delivery, error) {
	if !isValidID(id) {
		return nil, ErrDeliveryNotFound
	}

	delivery, err := d.repository.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get delivery: %w", err)
	}

	if !delivery.IsOwner(callerID) && !delivery.IsTransporter(callerID) {
		return nil, ErrForbidden
	}
	return delivery, nil
}

func (d *Delivery) UpdateStatus(ctx context.Context, callerID, id string, status entities.DeliveryStatus) (*entities.Delivery, error) {
	if !status.IsValid() {
		return nil, fmt.Errorf("%w: %q", ErrInvalidStatus, status)
	}
	if !isValidID(id) {
		return nil, ErrDeliveryNotFound
	}

	return d.changeStatus(ctx, callerID, id, status, entities.EventDeliveryStatusChanged, func(current *entities.Delivery) error {
		if !current.IsOwner(callerID) {
			return ErrForbidden
		}
		if !d.policy.Allows(current.Status, status) {
			return fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, current.Status, status)
		}
		return nil
	})
}

func (d *Delivery) Cancel(ctx context.Context, callerID, id string) (*entities.Delivery, error) {
	if !isValidID(id) {
		return nil, ErrDeliveryNotFound
	}

	return d.changeStatus(ctx, callerID, id, entities.DeliveryCancelled, entities.EventDeliveryCancelled, func(current *entities.Delivery) error {
		if !current.IsOwner(callerID) {
			return ErrForbidden
		}
		if !d.policy.AllowsCancel(current.Status) {
			return fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, current.Status, entities.DeliveryCancelled)
		}
		return nil
	})
}

func (d *Delivery) ListAvailable(ctx context.Context) ([]entities.Delivery, error) {
	pending, err := d.repository.ListByStatus(ctx, entities.DeliveryPending)
	if err != nil {
		return nil, fmt.Errorf("list pending deliveries: %w", err)
	}

	available := make([]entities.Delivery, 0, len(pending))
	for _, delivery := range pending {
		if delivery.IsAvailable() {
			available = append(available, delivery)
		}
	}

	sortNewestFirst(available)
	return available, nil
}

// Accept захватывает доставку одним условным обновлением. Статус не меняется,
// доставка перестает быть доступной за счет назначенного перевозчика.
func (d *Delivery) Accept(ctx context.Context, callerID, id string) (*entities.Delivery, error) {
	if !isValidID(id) {
		return nil, ErrDeliveryNotFound
	}

	now := time.Now().UTC()
	claim := entities.Claim{
		ID:            id,
		TransporterID: callerID,
		AcceptedAt:    now,
	}

	var accepted *entities.Delivery
	err := d.txManager.Do(ctx, func(ctx context.Context) error {
		var err error
		accepted, err = d.repository.Accept(ctx, claim)
		if err != nil {
			return err
		}

		return d.record(ctx, accepted, entities.EventDeliveryAccepted, callerID, now)
	})
	if err != nil {
		if errors.Is(err, ErrConditionNotMet) {
			return nil, d.classifyRejectedClaim(ctx, id)
		}
		return nil, fmt.Errorf("accept delivery: %w", err)
	}
	return accepted, nil
}

func (d *Delivery) UpdateStatusByTransporter(ctx context.Context, callerID, id string, status entities.DeliveryStatus) (*entities.Delivery, error) {
	if !status.IsTransporterStatus() {
		return nil, fmt.Errorf("%w: %q", ErrInvalidTransporterStatus, status)
	}
	if !isValidID(id) {
		return nil, ErrDeliveryNotFound
	}

	return d.changeStatus(ctx, callerID, id, status, entities.EventDeliveryStatusChanged, func(current *entities.Delivery) error {
		if !current.IsTransporter(callerID) {
			return ErrNotAssignedTransporter
		}
		if !d.policy.Allows(current.Status, status) {
			return fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, current.Status, status)
		}
		return nil
	})
}

func (d *Delivery) StatusCounts(ctx context.Context) (map[entities.DeliveryStatus]int64, error) {
	counts, err := d.repository.CountByStatus(ctx)
	if err != nil {
		return nil, fmt.Errorf("count deliveries by status: %w", err)
	}

	for _, status := range entities.DeliveryStatuses {
		if _, ok := counts[status]; !ok {
			counts[status] = 0
		}
	}
	return counts, nil
}

// changeStatus читает доставку под блокировкой, проверяет права через check и пишет новый статус.
// Строгая политика зависит от текущего статуса, поэтому запись дополнительно условна на него.
func (d *Delivery) changeStatus(
	ctx context.Context,
	callerID string,
	id string,
	status entities.DeliveryStatus,
	eventType entities.DeliveryEventType,
	check func(current *entities.Delivery) error,
) (*entities.Delivery, error) {
	var updated *entities.Delivery
	err := d.txManager.Do(ctx, func(ctx context.Context) error {
		current, err := d.repository.GetByIDForUpdate(ctx, id)
		if err != nil {
			return fmt.Errorf("get delivery: %w", err)
		}

		if err := check(current); err != nil {
			return err
		}

		now := time.Now().UTC()
		update := entities.StatusUpdate{
			ID:        id,
			Status:    status,
			UpdatedAt: now,
		}
		if d.policy.DependsOnCurrentStatus() {
			update.Expected = current.Status
		}

		updated, err = d.repository.UpdateStatus(ctx, update)
		if err != nil {
			if errors.Is(err, ErrConditionNotMet) {
				return ErrConcurrentUpdate
			}
			return fmt.Errorf("update delivery status: %w", err)
		}

		return d.record(ctx, updated, eventType, callerID, now)
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

func (d *Delivery) classifyRejectedClaim(ctx context.Context, id string) error {
	current, err := d.repository.GetByID(ctx, id)
	if err != nil {
		return fmt.Errorf("get delivery: %w", err)
	}

	switch {
	case current.Status != entities.DeliveryPending:
		return ErrNoLongerAvailable
	case current.TransporterID != nil:
		return ErrAlreadyAccepted
	default:
		return ErrConcurrentUpdate
	}
}

func (d *Delivery) record(
	ctx context.Context,
	delivery *entities.Delivery,
	eventType entities.DeliveryEventType,
	actorID string,
	occurredAt time.Time,
) error {
	err := d.events.Record(ctx, entities.DeliveryEvent{
		ID:         uuid.NewString(),
		DeliveryID: delivery.ID,
		Type:       eventType,
		ActorID:    actorID,
		Status:     delivery.Status,
		OccurredAt: occurredAt,
	})
	if err != nil {
		return fmt.Errorf("record %s event: %w", eventType, err)
	}
	return nil
}

// sortNewestFirst сортирует по убыванию CreatedAt, записи без времени создания в конце.
func sortNewestFirst(deliveries []entities.Delivery) {
	sort.SliceStable(deliveries, func(i, j int) bool {
		a, b := deliveries[i].CreatedAt, deliveries[j].CreatedAt
		if a.IsZero() != b.IsZero() {
			return !a.IsZero()
		}
		return a.After(b)
	})
}
