package domain

import "context"

// StreamWorker defines the interface for the order-book feed connector.
// Connect opens one logical connection; there is no implicit reconnect,
// reconnection is an explicit action by the caller.
type StreamWorker interface {
	Connect(ctx context.Context, url string) error
	Disconnect()
	IsConnected() bool
}

// PreferencesRepository defines how last-used input selections are persisted.
type PreferencesRepository interface {
	SavePreferences(in InputState) error
	LoadPreferences() (InputState, error)
}
