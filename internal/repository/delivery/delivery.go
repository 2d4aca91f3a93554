package delivery

import (
	"context"
	"errors"
	"fmt"

	"deliveryhub/internal/entities"
	"deliveryhub/internal/repository"
	"deliveryhub/internal/repository/normalize"
	"deliveryhub/internal/service/delivery"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
)

var qb sq.StatementBuilderType = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

var columns = []string{
	"id",
	"owner_ref",
	"recipient_name",
	"recipient_phone",
	"pickup_address",
	"pickup_latitude",
	"pickup_longitude",
	"dropoff_address",
	"dropoff_latitude",
	"dropoff_longitude",
	"package_name",
	"package_note",
	"package_size",
	"status",
	"transporter_id",
	"accepted_at",
	"created_at",
	"updated_at",
}

const returningColumns = `
	RETURNING id, owner_ref, recipient_name, recipient_phone,
		pickup_address, pickup_latitude, pickup_longitude,
		dropoff_address, dropoff_latitude, dropoff_longitude,
		package_name, package_note, package_size, status,
		transporter_id, accepted_at, created_at, updated_at`

type Repository struct {
	querier Querier
}

func New(querier Querier) *Repository {
	return &Repository{
		querier: querier,
	}
}

func (r *Repository) Create(ctx context.Context, deliveryEntity entities.Delivery) (*entities.Delivery, error) {
	deliveryDB := FromDomain(&deliveryEntity)

	query, args, err := qb.
		Insert("deliveries").
		Columns(columns...).
		Values(
			deliveryDB.ID,
			deliveryDB.OwnerRef,
			deliveryDB.RecipientName,
			deliveryDB.RecipientPhone,
			deliveryDB.PickupAddress,
			deliveryDB.PickupLatitude,
			deliveryDB.PickupLongitude,
			deliveryDB.DropoffAddress,
			deliveryDB.DropoffLatitude,
			deliveryDB.DropoffLongitude,
			deliveryDB.PackageName,
			deliveryDB.PackageNote,
			deliveryDB.PackageSize,
			deliveryDB.Status,
			deliveryDB.TransporterID,
			deliveryDB.AcceptedAt,
			deliveryDB.CreatedAt,
			deliveryDB.UpdatedAt,
		).
		Suffix(returningColumns).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build delivery insert query: %w", err)
	}

	created, err := scanDelivery(r.querier.QueryRow(ctx, query, args...))
	if err != nil {
		if repository.IsUniqueViolation(err) {
			return nil, fmt.Errorf("delivery %s already exists: %w", deliveryEntity.ID, err)
		}
		return nil, fmt.Errorf("unexpected delivery repository create error: %w", err)
	}

	return ToDomain(created), nil
}

func (r *Repository) GetByID(ctx context.Context, id string) (*entities.Delivery, error) {
	return r.get(ctx, qb.
		Select(columns...).
		From("deliveries").
		Where(sq.Eq{"id": id}))
}

// GetByIDForUpdate блокирует строку до конца транзакции из контекста.
// Вне транзакции блокировка снимается сразу после чтения.
func (r *Repository) GetByIDForUpdate(ctx context.Context, id string) (*entities.Delivery, error) {
	return r.get(ctx, qb.
		Select(columns...).
		From("deliveries").
		Where(sq.Eq{"id": id}).
		Suffix("FOR UPDATE"))
}

func (r *Repository) get(ctx context.Context, builder sq.SelectBuilder) (*entities.Delivery, error) {
	query, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build delivery select query: %w", err)
	}

	deliveryDB, err := scanDelivery(r.querier.QueryRow(ctx, query, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, delivery.ErrDeliveryNotFound
		}
		return nil, fmt.Errorf("unexpected delivery repository get error: %w", err)
	}

	return ToDomain(deliveryDB), nil
}

// ListByOwner ищет строковые кодировки по точному совпадению JSONB значения,
// объект-ссылку по полю path без ведущих "/", остальные поля объекта не учитываются.
func (r *Repository) ListByOwner(ctx context.Context, owner entities.OwnerRef) ([]entities.Delivery, error) {
	builder := qb.
		Select(columns...).
		From("deliveries").
		Where(ownerCondition(owner)).
		OrderBy("created_at DESC NULLS LAST", "id ASC")

	return r.list(ctx, builder)
}

func ownerCondition(owner entities.OwnerRef) sq.Sqlizer {
	if owner.Kind == entities.OwnerLegacyRef {
		return sq.And{
			sq.Expr("jsonb_typeof(owner_ref) = 'object'"),
			sq.Expr("ltrim(owner_ref->>'path', '/') = ?", owner.RefPath()),
		}
	}
	return sq.Expr("owner_ref = ?::jsonb", normalize.OwnerJSON(owner))
}

func (r *Repository) ListByStatus(ctx context.Context, status entities.DeliveryStatus) ([]entities.Delivery, error) {
	builder := qb.
		Select(columns...).
		From("deliveries").
		Where(sq.Eq{"status": status.String()}).
		OrderBy("created_at DESC NULLS LAST", "id ASC")

	return r.list(ctx, builder)
}

// Accept назначает перевозчика одним условным UPDATE.
// Если доставка не pending или уже занята, строк не будет и вернется ErrConditionNotMet.
func (r *Repository) Accept(ctx context.Context, claim entities.Claim) (*entities.Delivery, error) {
	query := `
		UPDATE deliveries
		SET transporter_id = $2,
			accepted_at = $3,
			updated_at = $3
		WHERE id = $1
		  AND status = 'pending'
		  AND transporter_id IS NULL
	` + returningColumns

	deliveryDB, err := scanDelivery(r.querier.QueryRow(ctx, query, claim.ID, claim.TransporterID, claim.AcceptedAt))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, delivery.ErrConditionNotMet
		}
		return nil, fmt.Errorf("unexpected delivery repository accept error: %w", err)
	}

	return ToDomain(deliveryDB), nil
}

func (r *Repository) UpdateStatus(ctx context.Context, update entities.StatusUpdate) (*entities.Delivery, error) {
	where := sq.Eq{"id": update.ID}
	if update.Expected != "" {
		where["status"] = update.Expected.String()
	}

	query, args, err := qb.
		Update("deliveries").
		Set("status", update.Status.String()).
		Set("updated_at", update.UpdatedAt).
		Where(where).
		Suffix(returningColumns).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build delivery status update query: %w", err)
	}

	deliveryDB, err := scanDelivery(r.querier.QueryRow(ctx, query, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, delivery.ErrConditionNotMet
		}
		return nil, fmt.Errorf("unexpected delivery repository update status error: %w", err)
	}

	return ToDomain(deliveryDB), nil
}

func (r *Repository) CountByStatus(ctx context.Context) (map[entities.DeliveryStatus]int64, error) {
	query, args, err := qb.
		Select("status", "COUNT(*)").
		From("deliveries").
		GroupBy("status").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build delivery count query: %w", err)
	}

	rows, err := r.querier.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("unexpected delivery repository count error: %w", err)
	}
	defer rows.Close()

	counts := make(map[entities.DeliveryStatus]int64)
	for rows.Next() {
		var row StatusCountDB
		if err := rows.Scan(&row.Status, &row.Count); err != nil {
			return nil, fmt.Errorf("scan delivery count row: %w", err)
		}
		counts[entities.DeliveryStatus(row.Status)] = row.Count
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("delivery count rows: %w", err)
	}

	return counts, nil
}

func (r *Repository) list(ctx context.Context, builder sq.SelectBuilder) ([]entities.Delivery, error) {
	query, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build delivery list query: %w", err)
	}

	rows, err := r.querier.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("unexpected delivery repository list error: %w", err)
	}
	defer rows.Close()

	deliveries := make([]entities.Delivery, 0)
	for rows.Next() {
		deliveryDB, err := scanDelivery(rows)
		if err != nil {
			return nil, fmt.Errorf("scan delivery row: %w", err)
		}
		deliveries = append(deliveries, *ToDomain(deliveryDB))
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("delivery list rows: %w", err)
	}

	return deliveries, nil
}

func scanDelivery(row pgx.Row) (*DeliveryDB, error) {
	var d DeliveryDB
	err := row.Scan(
		&d.ID,
		&d.OwnerRef,
		&d.RecipientName,
		&d.RecipientPhone,
		&d.PickupAddress,
		&d.PickupLatitude,
		&d.PickupLongitude,
		&d.DropoffAddress,
		&d.DropoffLatitude,
		&d.DropoffLongitude,
		&d.PackageName,
		&d.PackageNote,
		&d.PackageSize,
		&d.Status,
		&d.TransporterID,
		&d.AcceptedAt,
		&d.CreatedAt,
		&d.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &d, nil
}
