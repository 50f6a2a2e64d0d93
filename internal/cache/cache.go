package cache

import (
	"sync"
	"time"
)

const DefaultTTL = 5 * time.Minute

type entry[T any] struct {
	value     T
	expiresAt time.Time
}

// Cache — TTL-кэш ответов для read-путей API. Протухшие записи
// вычищаются лениво, при обращении; фонового свипера нет.
// Создаётся явно и передаётся зависимостью, никаких глобальных синглтонов.
type Cache[T any] struct {
	mu      sync.Mutex
	entries map[string]entry[T]
	now     func() time.Time
}

func New[T any]() *Cache[T] {
	return &Cache[T]{
		entries: make(map[string]entry[T]),
		now:     time.Now,
	}
}

// NewWithClock нужен тестам: часы подменяются, sleep не нужен.
func NewWithClock[T any](now func() time.Time) *Cache[T] {
	c := New[T]()
	c.now = now
	return c
}

func (c *Cache[T]) Get(key string) (T, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	e, ok := c.entries[key]
	if !ok {
		var zero T
		return zero, false
	}
	if c.now().After(e.expiresAt) {
		delete(c.entries, key)
		var zero T
		return zero, false
	}
	return e.value, true
}

// Set кладёт значение; ttl <= 0 означает DefaultTTL.
func (c *Cache[T]) Set(key string, value T, ttl time.Duration) {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[key] = entry[T]{value: value, expiresAt: c.now().Add(ttl)}
}

func (c *Cache[T]) Has(key string) bool {
	_, ok := c.Get(key)
	return ok
}

// Clear — глобальная инвалидация: любая мутация записи сбрасывает весь кэш,
// а не отдельный ключ. Дёшево и не оставляет протухших списков.
func (c *Cache[T]) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries = make(map[string]entry[T])
}
