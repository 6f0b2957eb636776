// Package cache stores classification results keyed by normalized input so
// repeated utterances skip the LLM round trip entirely. Two backends share one
// interface: an in-process map for single-instance deployments and Redis for
// shared state.
package cache

import (
	"context"
	"crypto/md5"
	"encoding/hex"
	"strings"
	"sync"
	"time"

	"github.com/stevehamwu/BeverageIntentRecognition/internal/models"
)

const keyPrefix = "intent:"

// Cache is the result store the orchestrator reads before calling the LLM.
// Get reports a miss, never a stale entry; Put replaces any existing entry
// for the key.
type Cache interface {
	Get(ctx context.Context, key string) (*models.IntentResult, bool, error)
	Put(ctx context.Context, key string, result *models.IntentResult, ttl time.Duration) error
	Clear(ctx context.Context) error
}

// Key derives the cache key from the utterance and its conversational
// context. Case and interior whitespace runs are normalized first, so
// "来杯咖啡" and " 来杯咖啡 " share an entry. Absent context and empty
// context hash identically.
func Key(text, context string) string {
	normalized := strings.Join(strings.Fields(strings.ToLower(text)), " ")
	sum := md5.Sum([]byte(normalized + ":" + context))
	return keyPrefix + hex.EncodeToString(sum[:])
}

// memoryEntry pairs a stored result with its expiry deadline.
type memoryEntry struct {
	result    *models.IntentResult
	expiresAt time.Time
}

// MemoryCache is a process-local Cache with lazy expiry: entries past their
// TTL are dropped when read, not by a background sweeper.
type MemoryCache struct {
	mu      sync.RWMutex
	entries map[string]memoryEntry
	now     func() time.Time
}

func NewMemory() *MemoryCache {
	return &MemoryCache{
		entries: make(map[string]memoryEntry),
		now:     time.Now,
	}
}

func (c *MemoryCache) Get(_ context.Context, key string) (*models.IntentResult, bool, error) {
	c.mu.RLock()
	entry, ok := c.entries[key]
	c.mu.RUnlock()
	if !ok {
		return nil, false, nil
	}

	if c.now().After(entry.expiresAt) {
		c.mu.Lock()
		// Re-check under the write lock: a concurrent Put may have
		// refreshed the entry.
		if current, still := c.entries[key]; still && c.now().After(current.expiresAt) {
			delete(c.entries, key)
		}
		c.mu.Unlock()
		return nil, false, nil
	}

	// Clone so callers cannot mutate the stored copy.
	return entry.result.Clone(), true, nil
}

func (c *MemoryCache) Put(_ context.Context, key string, result *models.IntentResult, ttl time.Duration) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[key] = memoryEntry{
		result:    result.Clone(),
		expiresAt: c.now().Add(ttl),
	}
	return nil
}

func (c *MemoryCache) Clear(_ context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries = make(map[string]memoryEntry)
	return nil
}
