package domain

import "time"

// Comment is an append-only remark attached to a ticket. Comments are never
// updated or deleted, so there is no UpdatedAt.
type Comment struct {
	ID        string
	TicketID  string
	AuthorID  string
	Content   string
	CreatedAt time.Time
}
