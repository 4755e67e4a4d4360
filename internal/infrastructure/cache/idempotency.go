package cache

import (
	"errors"
	"time"

	goCache "github.com/patrickmn/go-cache"
)

// DefaultIdempotencyTTL is how long a completed response can be replayed.
const DefaultIdempotencyTTL = 24 * time.Hour

var (
	// ErrKeyInFlight means another request holding the same key has not finished.
	ErrKeyInFlight = errors.New("idempotency key is already being processed")
	// ErrKeyMismatch means the key was first used with a different request body.
	ErrKeyMismatch = errors.New("idempotency key was used with a different request")
)

// StoredResponse is a completed response kept for replay.
type StoredResponse struct {
	StatusCode  int
	ContentType string
	Location    string
	Body        []byte
}

type idempotencyEntry struct {
	requestHash string
	response    *StoredResponse
}

// IdempotencyStore remembers responses of mutating requests by client key.
type IdempotencyStore struct {
	cache *goCache.Cache
}

// NewIdempotencyStore creates a store whose keys live for ttl.
// A non-positive ttl selects DefaultIdempotencyTTL.
func NewIdempotencyStore(ttl time.Duration) *IdempotencyStore {
	if ttl <= 0 {
		ttl = DefaultIdempotencyTTL
	}
	return &IdempotencyStore{cache: goCache.New(ttl, DefaultCleanupInterval)}
}

// Acquire claims key for a request with the given body hash.
// It returns the stored response when the same request already completed,
// nil when the caller now owns the key.
func (s *IdempotencyStore) Acquire(key, requestHash string) (*StoredResponse, error) {
	if err := s.cache.Add(key, &idempotencyEntry{requestHash: requestHash}, goCache.DefaultExpiration); err == nil {
		return nil, nil
	}

	v, ok := s.cache.Get(key)
	if !ok {
		// expired between Add and Get; claim it again
		return s.Acquire(key, requestHash)
	}
	entry := v.(*idempotencyEntry)
	if entry.requestHash != requestHash {
		return nil, ErrKeyMismatch
	}
	if entry.response == nil {
		return nil, ErrKeyInFlight
	}
	return entry.response, nil
}

// Complete stores the response for an acquired key.
func (s *IdempotencyStore) Complete(key, requestHash string, resp StoredResponse) {
	s.cache.Set(key, &idempotencyEntry{requestHash: requestHash, response: &resp}, goCache.DefaultExpiration)
}

// Release forgets an acquired key so the client may retry it.
func (s *IdempotencyStore) Release(key string) {
	s.cache.Delete(key)
}
