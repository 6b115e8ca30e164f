// Package clock абстрагирует текущее время, чтобы сроки жизни токенов
// и записей отзыва можно было проверять детерминированно.
package clock

import (
	"sync"
	"time"
)

// Clock отдаёт текущее время.
type Clock interface {
	Now() time.Time
}

// System — реальные часы (UTC).
type System struct{}

func (System) Now() time.Time { return time.Now().UTC() }

// Manual — управляемые часы для тестов. Безопасны для конкурентного использования.
type Manual struct {
	mu  sync.RWMutex
	now time.Time
}

// NewManual создаёт часы, стоящие на моменте t.
func NewManual(t time.Time) *Manual {
	return &Manual{now: t.UTC()}
}

func (m *Manual) Now() time.Time {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.now
}

// Set переставляет часы на момент t.
func (m *Manual) Set(t time.Time) {
	m.mu.Lock()
	m.now = t.UTC()
	m.mu.Unlock()
}

// Advance сдвигает часы на d.
func (m *Manual) Advance(d time.Duration) {
	m.mu.Lock()
	m.now = m.now.Add(d)
	m.mu.Unlock()
}
