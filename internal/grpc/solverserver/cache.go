package solverserver

import (
	"sync"
	"time"

	"google.golang.org/protobuf/proto"
	"google.golang.org/protobuf/types/known/structpb"
)

// cacheEntry stores a solve response with the time it was computed
type cacheEntry struct {
	response  *structpb.Struct
	createdAt time.Time
}

// ResultCache remembers solve responses by board fingerprint so that repeated
// requests for the same board skip the search. Entries expire after ttl; when
// the cache is full, expired entries are dropped first and then the oldest.
type ResultCache struct {
	entries map[string]*cacheEntry
	maxSize int
	ttl     time.Duration
	now     func() time.Time
	mu      sync.RWMutex
}

// NewResultCache creates a cache holding at most maxSize responses.
// maxSize 0 disables caching.
func NewResultCache(maxSize int, ttl time.Duration) *ResultCache {
	return &ResultCache{
		entries: make(map[string]*cacheEntry),
		maxSize: maxSize,
		ttl:     ttl,
		now:     time.Now,
	}
}

// Check returns a copy of the cached response for key, or nil
func (rc *ResultCache) Check(key string) *structpb.Struct {
	if rc.maxSize == 0 {
		return nil
	}

	rc.mu.RLock()
	defer rc.mu.RUnlock()

	entry, exists := rc.entries[key]
	if !exists || rc.expired(entry) {
		return nil
	}
	return proto.Clone(entry.response).(*structpb.Struct)
}

// Store caches a copy of resp under key
func (rc *ResultCache) Store(key string, resp *structpb.Struct) {
	if rc.maxSize == 0 {
		return
	}

	rc.mu.Lock()
	defer rc.mu.Unlock()

	rc.entries[key] = &cacheEntry{
		response:  proto.Clone(resp).(*structpb.Struct),
		createdAt: rc.now(),
	}

	if len(rc.entries) > rc.maxSize {
		rc.cleanupLocked()
	}
}

// Len returns the number of entries, expired or not
func (rc *ResultCache) Len() int {
	rc.mu.RLock()
	defer rc.mu.RUnlock()
	return len(rc.entries)
}

func (rc *ResultCache) expired(entry *cacheEntry) bool {
	return rc.ttl > 0 && rc.now().Sub(entry.createdAt) > rc.ttl
}

// cleanupLocked drops expired entries, then the oldest until the cache fits.
// Must be called with mu held
func (rc *ResultCache) cleanupLocked() {
	for key, entry := range rc.entries {
		if rc.expired(entry) {
			delete(rc.entries, key)
		}
	}

	for len(rc.entries) > rc.maxSize {
		var oldestKey string
		var oldest time.Time
		for key, entry := range rc.entries {
			if oldestKey == "" || entry.createdAt.Before(oldest) {
				oldestKey = key
				oldest = entry.createdAt
			}
		}
		delete(rc.entries, oldestKey)
	}
}
