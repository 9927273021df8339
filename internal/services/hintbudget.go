package services

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/pushp314/derive-duel-backend/internal/database"
	apperrors "github.com/pushp314/derive-duel-backend/pkg/errors"
	"github.com/pushp314/derive-duel-backend/pkg/logger"
)

const (
	DefaultMaxHints = 3
	HintWindow      = 24 * time.Hour
)

type hintCounter struct {
	used    int
	resetAt time.Time
}

// HintBudget caps hints per (proof, user) inside HintWindow. Counters live
// in Redis when it is connected and in process memory otherwise.
type HintBudget struct {
	cache *database.Cache
	max   int
	now   func() time.Time

	mu        sync.Mutex
	local     map[string]*hintCounter
	lastSweep time.Time
}

const sweepInterval = time.Minute

func NewHintBudget(cache *database.Cache, max int) *HintBudget {
	if max <= 0 {
		max = DefaultMaxHints
	}
	return &HintBudget{
		cache: cache,
		max:   max,
		now:   time.Now,
		local: make(map[string]*hintCounter),
	}
}

func (b *HintBudget) Max() int {
	return b.max
}

// Use spends one hint and returns how many have been used, or
// ErrHintLimit once the budget is gone
func (b *HintBudget) Use(ctx context.Context, proofID, userName string) (int, error) {
	key := hintKey(proofID, userName)

	used, err := b.incr(ctx, key)
	if err != nil {
		return 0, err
	}
	if used > b.max {
		return b.max, apperrors.ErrHintLimit
	}
	return used, nil
}

// Used reports the hints spent so far without spending one
func (b *HintBudget) Used(ctx context.Context, proofID, userName string) int {
	key := hintKey(proofID, userName)

	if b.cache.Enabled() {
		n, err := b.cache.Count(ctx, key)
		if err == nil {
			return min(int(n), b.max)
		}
		logger.Warn().Err(err).Str("key", key).Msg("Hint counter read failed, using local count")
	}

	b.mu.Lock()
	defer b.mu.Unlock()
	c, ok := b.local[key]
	if !ok || !b.now().Before(c.resetAt) {
		return 0
	}
	return min(c.used, b.max)
}

func (b *HintBudget) incr(ctx context.Context, key string) (int, error) {
	if b.cache.Enabled() {
		n, err := b.cache.Incr(ctx, key, HintWindow)
		if err == nil {
			return int(n), nil
		}
		logger.Warn().Err(err).Str("key", key).Msg("Hint counter update failed, using local count")
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	now := b.now()
	b.sweep(now)
	c, ok := b.local[key]
	if !ok || !now.Before(c.resetAt) {
		c = &hintCounter{resetAt: now.Add(HintWindow)}
		b.local[key] = c
	}
	// stop counting past the cap so the map value stays bounded
	if c.used <= b.max {
		c.used++
	}
	return c.used, nil
}

// sweep drops expired counters at most once per sweepInterval. Callers hold mu.
func (b *HintBudget) sweep(now time.Time) {
	if now.Sub(b.lastSweep) < sweepInterval {
		return
	}
	b.lastSweep = now
	for key, c := range b.local {
		if !now.Before(c.resetAt) {
			delete(b.local, key)
		}
	}
}

func hintKey(proofID, userName string) string {
	return fmt.Sprintf("hints:%s:%s", proofID, strings.ToLower(strings.TrimSpace(userName)))
}
