// Package bot bridges the photo-ingestion pipeline to chat platforms
// (Discord, Slack).
package bot

import (
	"context"
	"time"
)

// Adapter is the interface that platform-specific implementations must
// satisfy. Each adapter handles connection management, message
// sending/receiving and attachment download for a single chat platform.
type Adapter interface {
	// Connect establishes a connection to the chat platform.
	Connect(ctx context.Context) error

	// Listen returns a channel of inbound messages from the platform.
	// The channel is closed when the context is cancelled or the adapter
	// is closed. Listen must only be called after Connect.
	Listen(ctx context.Context) (<-chan InboundMessage, error)

	// Send delivers an outbound message to the platform.
	Send(ctx context.Context, msg OutboundMessage) error

	// Download fetches the bytes of a message attachment, applying
	// whatever authentication the platform requires.
	Download(ctx context.Context, att Attachment) ([]byte, error)

	// Close gracefully shuts down the adapter connection.
	Close() error
}

// InboundMessage represents a message received from the chat platform.
type InboundMessage struct {
	Platform    string // e.g. "discord", "slack"
	ChannelID   string // platform-specific channel identifier
	UserID      string // platform-specific user identifier
	UserName    string // human-readable username
	Text        string // raw message text
	Attachments []Attachment
	Timestamp   time.Time // when the message was sent
}

// Attachment is an image (or other file) attached to an inbound message.
type Attachment struct {
	URL      string
	Filename string
}

// OutboundMessage represents a message to be sent to the chat platform.
type OutboundMessage struct {
	ChannelID string // target channel
	Text      string
}

// Notifier adapts an Adapter to the pipeline's best-effort notification
// contract: the target is the channel to reply in.
type Notifier struct {
	Adapter Adapter
}

// Notify sends text to the target channel.
func (n Notifier) Notify(ctx context.Context, target, text string) error {
	return n.Adapter.Send(ctx, OutboundMessage{ChannelID: target, Text: text})
}
