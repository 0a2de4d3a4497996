package repository

import (
	"context"
	"fmt"
	"strconv"
	"sync"
	"time"
)

// Fetcher загружает сущности пачкой по ID
type Fetcher[T any] func(ctx context.Context, ids []int64) ([]*T, error)

type memoEntry[T any] struct {
	value     *T
	expiresAt time.Time
}

// EntityRepository ищет сущности по ID: сначала в памяти процесса, затем в
// общем кэше, и только недостающие ID запрашивает у API одним вызовом
type EntityRepository[T any] struct {
	entity string
	fetch  Fetcher[T]
	idOf   func(*T) int64
	cache  Cache
	ttl    time.Duration
	clock  TimeProvider
	log    Logger

	mu   sync.RWMutex
	memo map[int64]memoEntry[T]
}

// NewEntityRepository создает репозиторий сущности. cache может быть nil.
func NewEntityRepository[T any](entity string, fetch Fetcher[T], idOf func(*T) int64, cache Cache, ttl time.Duration, clock TimeProvider, log Logger) *EntityRepository[T] {
	return &EntityRepository[T]{
		entity: entity,
		fetch:  fetch,
		idOf:   idOf,
		cache:  cache,
		ttl:    ttl,
		clock:  clock,
		log:    log,
		memo:   make(map[int64]memoEntry[T]),
	}
}

// FindByID возвращает сущность по ID
func (r *EntityRepository[T]) FindByID(ctx context.Context, id int64) (*T, error) {
	found, err := r.FindAll(ctx, []int64{id})
	if err != nil {
		return nil, err
	}
	if len(found) == 0 {
		return nil, fmt.Errorf("%w: %s %d", ErrNotFound, r.entity, id)
	}
	return found[0], nil
}

// FindAll возвращает найденные сущности в порядке ids; неизвестные ID пропускаются
func (r *EntityRepository[T]) FindAll(ctx context.Context, ids []int64) ([]*T, error) {
	found := make(map[int64]*T, len(ids))
	missing := make([]int64, 0)

	now := r.clock.Now()
	r.mu.RLock()
	for _, id := range ids {
		if e, ok := r.memo[id]; ok && now.Before(e.expiresAt) {
			found[id] = e.value
		}
	}
	r.mu.RUnlock()

	for _, id := range ids {
		if _, ok := found[id]; ok || containsID(missing, id) {
			continue
		}
		if v, ok := r.fromCache(ctx, id); ok {
			found[id] = v
			r.remember(v)
			continue
		}
		missing = append(missing, id)
	}

	if len(missing) > 0 {
		fetched, err := r.fetch(ctx, missing)
		if err != nil {
			return nil, fmt.Errorf("%w: %ss %v: %v", ErrFetch, r.entity, missing, err)
		}
		for _, v := range fetched {
			found[r.idOf(v)] = v
			r.remember(v)
			r.toCache(ctx, v)
		}
	}

	result := make([]*T, 0, len(ids))
	seen := make(map[int64]struct{}, len(ids))
	for _, id := range ids {
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}
		if v, ok := found[id]; ok {
			result = append(result, v)
		}
	}
	return result, nil
}

// Forget удаляет сущность из памяти процесса
func (r *EntityRepository[T]) Forget(id int64) {
	r.mu.Lock()
	delete(r.memo, id)
	r.mu.Unlock()
}

func (r *EntityRepository[T]) remember(v *T) {
	r.mu.Lock()
	r.memo[r.idOf(v)] = memoEntry[T]{value: v, expiresAt: r.clock.Now().Add(r.ttl)}
	r.mu.Unlock()
}

func (r *EntityRepository[T]) cacheKey(id int64) string {
	return r.entity + ":" + strconv.FormatInt(id, 10)
}

func (r *EntityRepository[T]) fromCache(ctx context.Context, id int64) (*T, bool) {
	if r.cache == nil {
		return nil, false
	}

	v := new(T)
	if err := r.cache.Get(ctx, r.cacheKey(id), v); err != nil {
		return nil, false
	}
	return v, true
}

func (r *EntityRepository[T]) toCache(ctx context.Context, v *T) {
	if r.cache == nil {
		return
	}
	if err := r.cache.Set(ctx, r.cacheKey(r.idOf(v)), v, r.ttl); err != nil {
		r.log.Error("Failed to cache %s %d: %v", r.entity, r.idOf(v), err)
	}
}

func containsID(ids []int64, id int64) bool {
	for _, v := range ids {
		if v == id {
			return true
		}
	}
	return false
}
