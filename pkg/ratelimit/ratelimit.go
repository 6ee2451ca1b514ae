// Package ratelimit общий лимитер исходящих запросов к хранилищам
package ratelimit

import (
	"context"
	"errors"
	"sync"

	"golang.org/x/time/rate"
)

// ErrRateLimited возвращается, когда лимит запросов исчерпан
var ErrRateLimited = errors.New("ratelimit: rate limit exceeded")

// Limiter token bucket, разделяемый всеми клиентами хранилища
// Передается явно через конструкторы, глобального состояния нет
type Limiter struct {
	mu    sync.Mutex
	limit rate.Limit
	burst int
	lim   *rate.Limiter
}

// New создает лимитер на perSecond запросов в секунду с запасом burst
// perSecond <= 0 означает отсутствие ограничений
func New(perSecond float64, burst int) *Limiter {
	limit := rate.Limit(perSecond)
	if perSecond <= 0 {
		limit = rate.Inf
	}
	if burst <= 0 {
		burst = 1
	}
	return &Limiter{
		limit: limit,
		burst: burst,
		lim:   rate.NewLimiter(limit, burst),
	}
}

// Unlimited лимитер без ограничений
func Unlimited() *Limiter {
	return New(0, 1)
}

// Allow забирает один токен, false если токенов нет
func (l *Limiter) Allow() bool {
	return l.current().Allow()
}

// Wait ждет токен или отмену контекста
func (l *Limiter) Wait(ctx context.Context) error {
	if err := l.current().Wait(ctx); err != nil {
		return errors.Join(ErrRateLimited, err)
	}
	return nil
}

// Reset восстанавливает полный запас токенов
func (l *Limiter) Reset() {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.lim = rate.NewLimiter(l.limit, l.burst)
}

func (l *Limiter) current() *rate.Limiter {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.lim
}
