package auth

import (
	"context"
	"encoding/json"
	"time"

	"anya/internal/cache"
	"anya/internal/model"
)

const sessionKeyPrefix = "session:"

// SessionStoreInterface defines the cache-side session lookup operations.
type SessionStoreInterface interface {
	Put(ctx context.Context, token string, user *model.User, session *model.Session, ttl time.Duration) error
	Get(ctx context.Context, token string) (*model.User, *model.Session, error)
	Delete(ctx context.Context, token string) error
}

// sessionEntry is the cached payload for one session token.
type sessionEntry struct {
	User    model.User    `json:"user"`
	Session model.Session `json:"session"`
}

// SessionStore caches resolved sessions in Redis so hot session checks skip
// the database. A disabled cache degrades to constant misses.
type SessionStore struct {
	cache *cache.Client
}

// Ensure SessionStore implements SessionStoreInterface
var _ SessionStoreInterface = (*SessionStore)(nil)

// NewSessionStore creates a new session store.
func NewSessionStore(cache *cache.Client) *SessionStore {
	return &SessionStore{cache: cache}
}

// Put stores a resolved session under its token with TTL.
func (s *SessionStore) Put(ctx context.Context, token string, user *model.User, session *model.Session, ttl time.Duration) error {
	payload, err := json.Marshal(sessionEntry{User: *user, Session: *session})
	if err != nil {
		return err
	}
	return s.cache.Set(ctx, sessionKeyPrefix+token, payload, ttl)
}

// Get returns the cached user and session for token, or nils on a miss.
func (s *SessionStore) Get(ctx context.Context, token string) (*model.User, *model.Session, error) {
	data, err := s.cache.Get(ctx, sessionKeyPrefix+token)
	if err != nil || data == nil {
		return nil, nil, nil
	}
	var entry sessionEntry
	if err := json.Unmarshal(data, &entry); err != nil {
		// treat a corrupt entry as a miss
		return nil, nil, nil
	}
	return &entry.User, &entry.Session, nil
}

// Delete evicts a session token, e.g. on logout.
func (s *SessionStore) Delete(ctx context.Context, token string) error {
	return s.cache.Delete(ctx, sessionKeyPrefix+token)
}
