package host

import (
	"sync"

	"go.uber.org/zap"
)

// Stub is a Host for environments without an embedding shell: standalone
// browser tabs, development runs, and tests. Calls are recorded so tests can
// assert on host interactions.
type Stub struct {
	mu          sync.Mutex
	logger      *zap.Logger
	user        *User
	backOnClick func()

	// Recorded state, exported for assertions.
	Expanded          bool
	HeaderColor       string
	BackgroundColor   string
	ClosingConfirm    bool
	BackButtonVisible bool
}

// NewStub creates a stub host without an identity.
func NewStub(logger *zap.Logger) *Stub {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Stub{logger: logger.Named("host")}
}

// WithUser sets the identity the stub reports.
func (s *Stub) WithUser(user User) *Stub {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.user = &user
	return s
}

// Expand implements Host.
func (s *Stub) Expand() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Expanded = true
}

// SetHeaderColor implements Host.
func (s *Stub) SetHeaderColor(color string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.HeaderColor = color
}

// SetBackgroundColor implements Host.
func (s *Stub) SetBackgroundColor(color string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.BackgroundColor = color
}

// EnableClosingConfirmation implements Host.
func (s *Stub) EnableClosingConfirmation() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.ClosingConfirm = true
}

// ShowBackButton implements Host.
func (s *Stub) ShowBackButton(onClick func()) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.BackButtonVisible = true
	s.backOnClick = onClick
}

// HideBackButton implements Host.
func (s *Stub) HideBackButton() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.BackButtonVisible = false
	s.backOnClick = nil
}

// Identity implements Host.
func (s *Stub) Identity() (User, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.user == nil {
		return User{}, false
	}
	return *s.user, true
}

// PressBack simulates a host back-button click in tests.
func (s *Stub) PressBack() {
	s.mu.Lock()
	onClick := s.backOnClick
	s.mu.Unlock()
	if onClick != nil {
		onClick()
	}
}

// Ensure Stub implements Host
var _ Host = (*Stub)(nil)
