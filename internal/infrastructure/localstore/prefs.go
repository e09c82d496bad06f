package localstore

import (
	"context"

	"go.uber.org/zap"
)

// PrefsStore persists small UI preferences, currently the theme name.
type PrefsStore struct {
	store  Store
	logger *zap.Logger
}

// NewPrefsStore creates a preferences store on top of a blob store.
func NewPrefsStore(store Store, logger *zap.Logger) *PrefsStore {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &PrefsStore{store: store, logger: logger.Named("prefs")}
}

// Theme returns the persisted theme name, or fallback when unset.
func (s *PrefsStore) Theme(ctx context.Context, fallback string) string {
	data, ok, err := s.store.Get(ctx, KeyTheme)
	if err != nil || !ok || len(data) == 0 {
		return fallback
	}
	return string(data)
}

// SaveTheme persists the theme name; failures are logged, never surfaced.
func (s *PrefsStore) SaveTheme(ctx context.Context, theme string) {
	if err := s.store.Put(ctx, KeyTheme, []byte(theme)); err != nil {
		s.logger.Warn("Failed to persist theme preference", zap.Error(err))
	}
}
