package token_bucket

import (
	"sync"
	"time"
)

type Limiter interface {
	Allow() bool
}

// Clock нужен, чтобы тесты управляли временем пополнения.
type Clock func() time.Time

// TokenBucket хранит дробное число токенов, поэтому медленное пополнение
// (меньше токена между вызовами) не теряется.
type TokenBucket struct {
	capacity   float64
	tokens     float64
	refillRate float64
	lastRefill time.Time
	now        Clock
	mu         sync.Mutex
}

func NewTokenBucket(capacity int, refillRate float64) *TokenBucket {
	return NewTokenBucketWithClock(capacity, refillRate, time.Now)
}

func NewTokenBucketWithClock(capacity int, refillRate float64, now Clock) *TokenBucket {
	return &TokenBucket{
		capacity:   float64(capacity),
		tokens:     float64(capacity),
		refillRate: refillRate,
		lastRefill: now(),
		now:        now,
	}
}

func (t *TokenBucket) Allow() bool {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.refill()

	if t.tokens >= 1 {
		t.tokens--
		return true
	}
	return false
}

// Full - корзина полностью восстановилась, ее можно выбросить без потери состояния.
func (t *TokenBucket) Full() bool {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.refill()
	return t.tokens >= t.capacity
}

func (t *TokenBucket) refill() {
	now := t.now()
	elapsed := now.Sub(t.lastRefill).Seconds()
	if elapsed <= 0 {
		return
	}

	t.tokens += elapsed * t.refillRate
	if t.tokens > t.capacity {
		t.tokens = t.capacity
	}
	t.lastRefill = now
}

// Keyed держит отдельную корзину на каждый ключ (пользователь или адрес клиента).
// Восстановившиеся корзины удаляются при Sweep.
type Keyed struct {
	capacity   int
	refillRate float64
	now        Clock

	mu      sync.Mutex
	buckets map[string]*TokenBucket
}

func NewKeyed(capacity int, refillRate float64) *Keyed {
	return NewKeyedWithClock(capacity, refillRate, time.Now)
}

func NewKeyedWithClock(capacity int, refillRate float64, now Clock) *Keyed {
	return &Keyed{
		capacity:   capacity,
		refillRate: refillRate,
		now:        now,
		buckets:    make(map[string]*TokenBucket),
	}
}

func (k *Keyed) Allow(key string) bool {
	k.mu.Lock()
	bucket, ok := k.buckets[key]
	if !ok {
		bucket = NewTokenBucketWithClock(k.capacity, k.refillRate, k.now)
		k.buckets[key] = bucket
	}
	k.mu.Unlock()

	return bucket.Allow()
}

// Sweep удаляет полные корзины и возвращает их количество.
func (k *Keyed) Sweep() int {
	k.mu.Lock()
	defer k.mu.Unlock()

	removed := 0
	for key, bucket := range k.buckets {
		if bucket.Full() {
			delete(k.buckets, key)
			removed++
		}
	}
	return removed
}

func (k *Keyed) Len() int {
	k.mu.Lock()
	defer k.mu.Unlock()

	return len(k.buckets)
}
