// Package companyname кэш отображаемого имени салона
package companyname

import (
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"
)

const displayNameKey = "display_name"

// Cache хранит одно значение с TTL
// Обновление настроек салона обязано вызвать Invalidate
type Cache struct {
	lru *expirable.LRU[string, string]
}

// New создает кэш; ttl <= 0 означает хранение до Invalidate
func New(ttl time.Duration) *Cache {
	if ttl < 0 {
		ttl = 0
	}
	return &Cache{lru: expirable.NewLRU[string, string](1, nil, ttl)}
}

// Get возвращает закэшированное имя
func (c *Cache) Get() (string, bool) {
	return c.lru.Get(displayNameKey)
}

// Set сохраняет имя
func (c *Cache) Set(name string) {
	c.lru.Add(displayNameKey, name)
}

// Invalidate сбрасывает значение
func (c *Cache) Invalidate() {
	c.lru.Purge()
}
