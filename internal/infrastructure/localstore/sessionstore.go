package localstore

import (
	"context"
	"encoding/json"
	"time"

	"go.uber.org/zap"

	"github.com/teleshop/client/internal/domain/courier"
)

// SessionStore persists the courier login session under KeyCourierSession.
// An expired or unparseable session is discarded and reads as logged out;
// no error ever reaches the caller.
type SessionStore struct {
	store  Store
	logger *zap.Logger
}

// NewSessionStore creates a session store on top of a blob store.
func NewSessionStore(store Store, logger *zap.Logger) *SessionStore {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &SessionStore{store: store, logger: logger.Named("sessionstore")}
}

// Load returns the persisted session when it is still valid at now.
// Expired or corrupt state is cleared and reported as logged out.
func (s *SessionStore) Load(ctx context.Context, now time.Time) (courier.Session, bool) {
	data, ok, err := s.store.Get(ctx, KeyCourierSession)
	if err != nil {
		s.logger.Warn("Failed to read persisted session", zap.Error(err))
		return courier.Session{}, false
	}
	if !ok {
		return courier.Session{}, false
	}

	var session courier.Session
	if err := json.Unmarshal(data, &session); err != nil {
		s.logger.Warn("Persisted session is corrupt, discarding", zap.Error(err))
		s.Clear(ctx)
		return courier.Session{}, false
	}

	if !session.Valid(now) {
		s.logger.Info("Persisted session expired, discarding",
			zap.Time("expires_at", session.ExpiresAt))
		s.Clear(ctx)
		return courier.Session{}, false
	}
	return session, true
}

// Save persists the session; failures are logged, never surfaced.
func (s *SessionStore) Save(ctx context.Context, session courier.Session) {
	data, err := json.Marshal(session)
	if err != nil {
		s.logger.Warn("Failed to serialize session", zap.Error(err))
		return
	}
	if err := s.store.Put(ctx, KeyCourierSession, data); err != nil {
		s.logger.Warn("Failed to persist session", zap.Error(err))
	}
}

// Clear removes any persisted session.
func (s *SessionStore) Clear(ctx context.Context) {
	if err := s.store.Delete(ctx, KeyCourierSession); err != nil {
		s.logger.Warn("Failed to clear persisted session", zap.Error(err))
	}
}
