// Package mail holds the outbound notification transport and the template
// renderer the use cases depend on. The core only sees the Transport and
// Renderer interfaces; SES is one implementation.
package mail

import "context"

// Recipient is a single addressee.
type Recipient struct {
	Email string
	Name  string
}

// Message is a fully rendered notification ready for delivery.
type Message struct {
	Recipients []Recipient
	Subject    string
	HTMLBody   string
	TextBody   string
}

// Transport delivers messages. Send reports delivery failure as an error;
// SendSafe never fails, it only reports whether delivery succeeded.
type Transport interface {
	Send(ctx context.Context, msg Message) error
	SendSafe(ctx context.Context, msg Message) bool
}
