// Package guard rejects a second attendance mark from the same client while
// the first one for the same contestant is still being written.
package guard

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/lojf/festival/internal/config"
)

type Guard interface {
	// Acquire reports false when key is already held.
	Acquire(ctx context.Context, key string) (bool, error)
	Release(ctx context.Context, key string) error
}

// Key scopes a hold to one client and one (event, dNo) pair.
func Key(clientID, eventName, dNo string) string {
	return strings.Join([]string{"inflight", clientID, eventName, dNo}, ":")
}

// New picks Redis when an address is configured, memory otherwise.
func New(cfg *config.Config, log zerolog.Logger) Guard {
	if cfg.RedisAddr != "" {
		log.Info().Str("addr", cfg.RedisAddr).Msg("in-flight guard: redis")
		return NewRedis(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB, cfg.InFlightTTL)
	}
	log.Info().Msg("in-flight guard: memory")
	return NewMemory(cfg.InFlightTTL)
}

// Memory is a process-local Guard. Holds expire after ttl so a crashed
// request cannot block a contestant forever.
type Memory struct {
	mu   sync.Mutex
	ttl  time.Duration
	held map[string]time.Time
	now  func() time.Time
}

func NewMemory(ttl time.Duration) *Memory {
	return &Memory{ttl: ttl, held: map[string]time.Time{}, now: time.Now}
}

func (m *Memory) Acquire(_ context.Context, key string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	now := m.now()
	if exp, ok := m.held[key]; ok && now.Before(exp) {
		return false, nil
	}
	m.held[key] = now.Add(m.ttl)
	return true, nil
}

func (m *Memory) Release(_ context.Context, key string) error {
	m.mu.Lock()
	delete(m.held, key)
	m.mu.Unlock()
	return nil
}
