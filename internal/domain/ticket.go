package domain

import "time"

// TicketStatus enumerates lifecycle states for maintenance tickets.
type TicketStatus string

const (
	TicketStatusNew        TicketStatus = "NEW"
	TicketStatusInProgress TicketStatus = "IN_PROGRESS"
	TicketStatusResolved   TicketStatus = "RESOLVED"
	TicketStatusClosed     TicketStatus = "CLOSED"
)

// ValidTicketStatus reports whether s is a member of the status enum.
func ValidTicketStatus(s TicketStatus) bool {
	switch s {
	case TicketStatusNew, TicketStatusInProgress, TicketStatusResolved, TicketStatusClosed:
		return true
	}
	return false
}

// Ticket is the aggregate for maintenance requests. Once Archived is set the
// ticket is terminal: no field may change through the update path.
type Ticket struct {
	ID          string
	Title       string
	Description string
	Status      TicketStatus
	CreatedBy   string
	AssignedTo  *string
	Archived    bool
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
