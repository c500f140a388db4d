package cache

import (
	"crypto/sha256"
	"encoding/hex"

	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/suykerbuyk/voice-vault/internal/summary"
)

// DefaultMaxEntries bounds the result cache when config gives no size.
const DefaultMaxEntries = 128

// Store is a bounded LRU of processing results keyed by engine plus input
// text. Safe for concurrent use.
type Store struct {
	lru *lru.Cache[string, *summary.Result]
}

// New creates a Store holding at most maxEntries results. Non-positive sizes
// fall back to DefaultMaxEntries.
func New(maxEntries int) (*Store, error) {
	if maxEntries <= 0 {
		maxEntries = DefaultMaxEntries
	}
	inner, err := lru.New[string, *summary.Result](maxEntries)
	if err != nil {
		return nil, err
	}
	return &Store{lru: inner}, nil
}

// Key derives the cache key for a given engine and input text. The same text
// sent to a different engine must not collide.
func Key(engineName, text string) string {
	h := sha256.New()
	h.Write([]byte(engineName))
	h.Write([]byte{0})
	h.Write([]byte(text))
	return hex.EncodeToString(h.Sum(nil))
}

// Get returns the cached result for key, if present.
func (s *Store) Get(key string) (*summary.Result, bool) {
	return s.lru.Get(key)
}

// Add stores a result, evicting the least recently used entry when full.
func (s *Store) Add(key string, result *summary.Result) {
	s.lru.Add(key, result)
}

// Len reports the current number of cached results.
func (s *Store) Len() int {
	return s.lru.Len()
}
