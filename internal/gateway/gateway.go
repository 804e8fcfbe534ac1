// Package gateway connects the dispatcher to the places people talk to it.
package gateway

import "context"

// Messenger defines the interface for communication gateways (console, Telegram)
type Messenger interface {
	// Start runs the message loop until ctx is cancelled or the gateway stops
	Start(ctx context.Context) error
	// Send sends a message to a specific chat
	Send(chatID string, text string) error
	// Stop gracefully shuts down the gateway
	Stop() error
}
