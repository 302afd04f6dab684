// Package cache implements the proxy's concurrent, name-keyed response
// cache: a map from a question name's raw wire bytes to the last message
// seen for it, decayed over time by a periodic aging pass.
package cache

import (
	"log/slog"
	"sync"

	"github.com/blazskufca/dnsproxy/internal/wire"
)

// Cache maps a question name's wire bytes to the most recently cached
// message for it. The key is the name alone - per the wire format's own
// "the cache key is the stored name's byte sequence" rule - so a second
// query for the same name under a different record type reuses the same
// entry; that is an accepted limitation of the name-only key, not a bug.
type Cache struct {
	mu      sync.RWMutex
	entries map[string]wire.Message
	logger  *slog.Logger
}

// New creates an empty Cache. A nil logger disables logging.
func New(logger *slog.Logger) *Cache {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Cache{
		entries: make(map[string]wire.Message),
		logger:  logger,
	}
}

func key(name []byte) string {
	return string(name)
}

// Add inserts or replaces the cached message for name. A prior entry, if
// any, is discarded.
func (c *Cache) Add(name []byte, msg wire.Message) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[key(name)] = msg.Clone()
	c.logger.Debug("cache add", slog.String("name", wire.Stringify(name)))
}

// Get returns a deep copy of the cached message for name and true, or a zero
// Message and false if absent. A copy is returned rather than a reference so
// that a concurrent Age pass can never hand a caller a record it is in the
// middle of trimming or deleting.
func (c *Cache) Get(name []byte) (wire.Message, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	msg, ok := c.entries[key(name)]
	if !ok {
		return wire.Message{}, false
	}
	return msg.Clone(), true
}

// Age subtracts delta seconds from the TTL of every record in every cached
// message's answer and authority sections (the additional section is left
// alone - spec ambiguity resolved conservatively, see DESIGN.md). A record
// whose TTL would underflow is dropped instead. After trimming, any message
// whose answer and authority sections have both become empty is evicted
// entirely.
func (c *Cache) Age(delta uint32) {
	c.mu.Lock()
	defer c.mu.Unlock()

	evicted := 0
	for k, msg := range c.entries {
		msg.Answers = ageRecords(msg.Answers, delta)
		msg.Authority = ageRecords(msg.Authority, delta)

		if len(msg.Answers) == 0 && len(msg.Authority) == 0 {
			delete(c.entries, k)
			evicted++
			continue
		}
		c.entries[k] = msg
	}

	c.logger.Debug("cache age pass complete", slog.Int("evicted", evicted), slog.Int("remaining", len(c.entries)))
}

func ageRecords(records []wire.Record, delta uint32) []wire.Record {
	if len(records) == 0 {
		return records
	}
	kept := records[:0]
	for _, r := range records {
		if r.TTL <= delta {
			continue
		}
		r.TTL -= delta
		kept = append(kept, r)
	}
	return kept
}

// Len reports the number of entries currently cached, for diagnostics and tests.
func (c *Cache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}
