// Package revocation хранит идентификаторы (jti) отозванных токенов до
// их естественного истечения.
//
// Особенности:
//   - запись живёт ровно до exp токена: после этого токен и так отклоняется
//     кодеком, поэтому запись мертва и подлежит удалению;
//   - мёртвые записи удаляются лениво в IsRevoked и пачкой в Sweep;
//   - карта разбита на шарды с собственным RWMutex, поэтому операции над
//     разными jti не сериализуются одним глобальным локом.
//
// Хранилище живёт в памяти процесса и сбрасывается при рестарте.
package revocation

import (
	"sync"
	"time"

	"github.com/cespare/xxhash/v2"

	"github.com/pribylovaa/pokedex-api/internal/clock"
)

// DefaultShards — число шардов по умолчанию.
const DefaultShards = 32

type shard struct {
	mu      sync.RWMutex
	records map[string]time.Time // jti -> exp
}

// Store — конкурентное множество отозванных jti с TTL.
type Store struct {
	shards []*shard
	mask   uint64
	clock  clock.Clock
}

// New создаёт хранилище. Число шардов округляется вверх до степени двойки;
// shards <= 0 означает DefaultShards.
func New(clk clock.Clock, shards int) *Store {
	if clk == nil {
		clk = clock.System{}
	}

	if shards <= 0 {
		shards = DefaultShards
	}

	n := 1
	for n < shards {
		n <<= 1
	}

	s := &Store{
		shards: make([]*shard, n),
		mask:   uint64(n - 1),
		clock:  clk,
	}
	for i := range s.shards {
		s.shards[i] = &shard{records: make(map[string]time.Time)}
	}

	return s
}

func (s *Store) shardFor(jti string) *shard {
	return s.shards[xxhash.Sum64String(jti)&s.mask]
}

// Add помечает jti отозванным до exp. Возвращает true, если запись создана.
//
// No-op, если exp уже наступил, или если для jti уже есть живая запись
// (побеждает первая запись: exp токена неизменен). Мёртвая запись
// считается отсутствующей и перезаписывается.
func (s *Store) Add(jti string, exp time.Time) bool {
	if jti == "" {
		return false
	}

	now := s.clock.Now()
	if !now.Before(exp) {
		return false
	}

	sh := s.shardFor(jti)
	sh.mu.Lock()
	defer sh.mu.Unlock()

	if cur, ok := sh.records[jti]; ok && now.Before(cur) {
		return false
	}

	sh.records[jti] = exp
	return true
}

// IsRevoked сообщает, есть ли живая запись для jti.
// Найденная мёртвая запись удаляется как побочный эффект.
func (s *Store) IsRevoked(jti string) bool {
	sh := s.shardFor(jti)
	now := s.clock.Now()

	sh.mu.RLock()
	exp, ok := sh.records[jti]
	sh.mu.RUnlock()

	if !ok {
		return false
	}

	if now.Before(exp) {
		return true
	}

	sh.mu.Lock()
	// Между RUnlock и Lock запись могла быть заменена живой.
	if cur, ok := sh.records[jti]; ok && !now.Before(cur) {
		delete(sh.records, jti)
	}
	sh.mu.Unlock()

	return false
}

// Sweep удаляет все мёртвые записи и возвращает их число.
// Шарды обходятся по одному, остальные в это время доступны.
func (s *Store) Sweep() int {
	now := s.clock.Now()
	removed := 0

	for _, sh := range s.shards {
		sh.mu.Lock()
		for jti, exp := range sh.records {
			if !now.Before(exp) {
				delete(sh.records, jti)
				removed++
			}
		}
		sh.mu.Unlock()
	}

	return removed
}

// Len возвращает число физически хранимых записей (включая ещё не удалённые мёртвые).
func (s *Store) Len() int {
	total := 0
	for _, sh := range s.shards {
		sh.mu.RLock()
		total += len(sh.records)
		sh.mu.RUnlock()
	}

	return total
}
