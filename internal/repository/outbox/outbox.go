package outbox

import (
	"context"
	"fmt"
	"time"

	"deliveryhub/internal/entities"
	"deliveryhub/internal/repository"

	sq "github.com/Masterminds/squirrel"
)

var qb sq.StatementBuilderType = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

var columns = []string{
	"id",
	"event_id",
	"delivery_id",
	"event_type",
	"actor_id",
	"status",
	"occurred_at",
	"created_at",
	"attempts",
	"published_at",
	"last_error",
}

type Repository struct {
	querier Querier
}

func New(querier Querier) *Repository {
	return &Repository{
		querier: querier,
	}
}

// Record пишет событие в outbox. Вызывается внутри транзакции изменения доставки.
func (r *Repository) Record(ctx context.Context, event entities.DeliveryEvent) error {
	query, args, err := qb.
		Insert("delivery_outbox").
		Columns("event_id", "delivery_id", "event_type", "actor_id", "status", "occurred_at").
		Values(
			event.ID,
			event.DeliveryID,
			event.Type.String(),
			event.ActorID,
			event.Status.String(),
			event.OccurredAt,
		).
		ToSql()
	if err != nil {
		return fmt.Errorf("build outbox insert query: %w", err)
	}

	_, err = r.querier.Exec(ctx, query, args...)
	if err != nil {
		if repository.IsUniqueViolation(err) {
			return fmt.Errorf("outbox event %s already recorded: %w", event.ID, err)
		}
		return fmt.Errorf("unexpected outbox repository record error: %w", err)
	}

	return nil
}

// FetchPending блокирует до limit неопубликованных сообщений в порядке записи.
// Строки, занятые другим экземпляром relay, пропускаются.
func (r *Repository) FetchPending(ctx context.Context, limit int) ([]entities.OutboxMessage, error) {
	query, args, err := qb.
		Select(columns...).
		From("delivery_outbox").
		Where(sq.Eq{"published_at": nil}).
		OrderBy("id ASC").
		Limit(uint64(limit)).
		Suffix("FOR UPDATE SKIP LOCKED").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build outbox fetch query: %w", err)
	}

	rows, err := r.querier.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("unexpected outbox repository fetch error: %w", err)
	}
	defer rows.Close()

	messages := make([]entities.OutboxMessage, 0, limit)
	for rows.Next() {
		var m MessageDB
		err := rows.Scan(
			&m.ID,
			&m.EventID,
			&m.DeliveryID,
			&m.EventType,
			&m.ActorID,
			&m.Status,
			&m.OccurredAt,
			&m.CreatedAt,
			&m.Attempts,
			&m.PublishedAt,
			&m.LastError,
		)
		if err != nil {
			return nil, fmt.Errorf("scan outbox row: %w", err)
		}
		messages = append(messages, *ToDomain(&m))
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("outbox rows: %w", err)
	}

	return messages, nil
}

func (r *Repository) MarkPublished(ctx context.Context, ids []int64, publishedAt time.Time) error {
	if len(ids) == 0 {
		return nil
	}

	query, args, err := qb.
		Update("delivery_outbox").
		Set("published_at", publishedAt).
		Set("last_error", nil).
		Where(sq.Eq{"id": ids}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build outbox publish query: %w", err)
	}

	_, err = r.querier.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("unexpected outbox repository mark published error: %w", err)
	}
	return nil
}

func (r *Repository) MarkFailed(ctx context.Context, id int64, reason string) error {
	query, args, err := qb.
		Update("delivery_outbox").
		Set("attempts", sq.Expr("attempts + 1")).
		Set("last_error", reason).
		Where(sq.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build outbox fail query: %w", err)
	}

	_, err = r.querier.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("unexpected outbox repository mark failed error: %w", err)
	}
	return nil
}

func (r *Repository) CountPending(ctx context.Context) (int64, error) {
	query, args, err := qb.
		Select("COUNT(*)").
		From("delivery_outbox").
		Where(sq.Eq{"published_at": nil}).
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("build outbox count query: %w", err)
	}

	var count int64
	if err := r.querier.QueryRow(ctx, query, args...).Scan(&count); err != nil {
		return 0, fmt.Errorf("unexpected outbox repository count error: %w", err)
	}
	return count, nil
}
