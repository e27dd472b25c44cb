package cache

import (
	"encoding/json"
	"fmt"
	"hash/fnv"
	"strings"
	"sync"
	"time"
)

// Store is a read-through cache for expensive queries. Invalidate accepts
// exact keys and prefix patterns; a pattern ending in '*' matches every key
// with that prefix.
type Store interface {
	Get(key string) ([]byte, bool)
	Set(key string, value []byte, ttl time.Duration)
	Invalidate(patterns ...string)
}

type entry struct {
	value     []byte
	expiresAt time.Time
}

// Memory is an in-process Store backed by a map. Entries are dropped
// lazily on read and eagerly on invalidation.
type Memory struct {
	mu      sync.RWMutex
	entries map[string]entry
}

// NewMemory creates an empty in-memory cache
func NewMemory() *Memory {
	return &Memory{entries: make(map[string]entry)}
}

func (m *Memory) Get(key string) ([]byte, bool) {
	m.mu.RLock()
	e, ok := m.entries[key]
	m.mu.RUnlock()
	if !ok {
		return nil, false
	}
	if time.Now().After(e.expiresAt) {
		m.mu.Lock()
		delete(m.entries, key)
		m.mu.Unlock()
		return nil, false
	}
	return e.value, true
}

func (m *Memory) Set(key string, value []byte, ttl time.Duration) {
	if ttl <= 0 {
		return
	}
	m.mu.Lock()
	m.entries[key] = entry{value: value, expiresAt: time.Now().Add(ttl)}
	m.mu.Unlock()
}

func (m *Memory) Invalidate(patterns ...string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, pattern := range patterns {
		if prefix, ok := strings.CutSuffix(pattern, "*"); ok {
			for key := range m.entries {
				if strings.HasPrefix(key, prefix) {
					delete(m.entries, key)
				}
			}
			continue
		}
		delete(m.entries, pattern)
	}
}

// Len returns the number of live entries, counting expired ones that have
// not been read yet.
func (m *Memory) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.entries)
}

// Key helpers. Keys are namespaced so related entries can be invalidated
// together with a prefix pattern.

// PlaceKey is the cache key for a single place looked up by id or slug
func PlaceKey(idOrSlug string) string {
	return "place:" + idOrSlug
}

// PlacesPattern matches every place listing for a city
func PlacesPattern(city string) string {
	return "places:" + strings.ToLower(city) + ":*"
}

// ReviewsKey is the cache key for one page of a place's review listing
func ReviewsKey(placeID string, page, perPage int) string {
	return fmt.Sprintf("reviews:%s:%d:%d", placeID, page, perPage)
}

// ReviewsPattern matches every review listing for a place
func ReviewsPattern(placeID string) string {
	return "reviews:" + placeID + ":*"
}

// SearchPattern matches every cached search result
const SearchPattern = "search:*"

// SearchKey derives a stable cache key from the full set of search
// parameters.
func SearchKey(params interface{}) string {
	raw, err := json.Marshal(params)
	if err != nil {
		return "search:invalid"
	}
	h := fnv.New64a()
	h.Write(raw)
	return fmt.Sprintf("search:%x", h.Sum64())
}
