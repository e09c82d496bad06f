// Package host abstracts the embedding chat-platform shell (the Telegram
// Mini App bridge). Capabilities are feature-detected: controllers call the
// interface unconditionally and a host that lacks a capability implements it
// as a no-op.
package host

// User is the identity the host exposes for the current viewer.
type User struct {
	ID   int64
	Name string
}

// Host is the integration surface of the embedding application.
type Host interface {
	// Expand requests fullscreen layout.
	Expand()
	// SetHeaderColor sets the host chrome header color.
	SetHeaderColor(color string)
	// SetBackgroundColor sets the host background color.
	SetBackgroundColor(color string)
	// EnableClosingConfirmation asks the host to confirm before closing.
	EnableClosingConfirmation()
	// ShowBackButton shows the host back button and routes its clicks to
	// onClick. The handler must be idempotent; the host may fire it while
	// no overlay is open.
	ShowBackButton(onClick func())
	// HideBackButton hides the host back button.
	HideBackButton()
	// Identity returns the host-provided user, when one exists.
	Identity() (User, bool)
}
