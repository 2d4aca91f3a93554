// Package memory хранит доставки и outbox в памяти процесса.
// Используется для локального запуска (STORE_DRIVER=memory) и e2e тестов.
package memory

import (
	"context"
	"slices"
	"sync"

	"deliveryhub/internal/entities"
	"deliveryhub/internal/repository/normalize"
)

type txKey struct{}

type Store struct {
	mu         sync.RWMutex
	deliveries map[string]normalize.Record
	outbox     []entities.OutboxMessage
	nextID     int64

	// txMu сериализует транзакции, частичные изменения откатываются из снимка.
	// Вызовы вне транзакции тоже берут txMu и не видят незафиксированных изменений.
	txMu sync.Mutex
}

func New() *Store {
	return &Store{
		deliveries: make(map[string]normalize.Record),
	}
}

// Seed кладет записи как есть, без приведения ссылки на владельца.
func (s *Store) Seed(records ...normalize.Record) {
	s.txMu.Lock()
	defer s.txMu.Unlock()
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, rec := range records {
		s.deliveries[rec.ID] = cloneRecord(rec)
	}
}

// Do выполняет fn в транзакции. Вложенный вызов выполняется в уже открытой транзакции.
func (s *Store) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	if inTx(ctx) {
		return fn(ctx)
	}

	s.txMu.Lock()
	defer s.txMu.Unlock()

	snapshot := s.snapshot()
	if err := fn(context.WithValue(ctx, txKey{}, true)); err != nil {
		s.restore(snapshot)
		return err
	}
	return nil
}

// lock берет txMu для вызова вне транзакции. Внутри Do блокировка уже удерживается.
func (s *Store) lock(ctx context.Context) func() {
	if inTx(ctx) {
		return func() {}
	}
	s.txMu.Lock()
	return s.txMu.Unlock
}

func inTx(ctx context.Context) bool {
	_, ok := ctx.Value(txKey{}).(bool)
	return ok
}

// Ping всегда успешен, хранилище живет в памяти процесса.
func (s *Store) Ping(context.Context) error {
	return nil
}

type state struct {
	deliveries map[string]normalize.Record
	outbox     []entities.OutboxMessage
	nextID     int64
}

func (s *Store) snapshot() state {
	s.mu.RLock()
	defer s.mu.RUnlock()

	deliveries := make(map[string]normalize.Record, len(s.deliveries))
	for id, rec := range s.deliveries {
		deliveries[id] = rec
	}
	return state{
		deliveries: deliveries,
		outbox:     slices.Clone(s.outbox),
		nextID:     s.nextID,
	}
}

func (s *Store) restore(st state) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.deliveries = st.deliveries
	s.outbox = st.outbox
	s.nextID = st.nextID
}

func cloneRecord(rec normalize.Record) normalize.Record {
	rec.Owner = slices.Clone(rec.Owner)
	rec.PackageNote = clonePtr(rec.PackageNote)
	rec.TransporterID = clonePtr(rec.TransporterID)
	rec.AcceptedAt = clonePtr(rec.AcceptedAt)
	rec.CreatedAt = clonePtr(rec.CreatedAt)
	rec.UpdatedAt = clonePtr(rec.UpdatedAt)
	return rec
}

func clonePtr[T any](p *T) *T {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}
