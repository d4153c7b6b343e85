package usecase

import (
	"context"

	"github.com/coproptech/maintenance-service/internal/domain"
	"github.com/coproptech/maintenance-service/internal/repository"
	"github.com/coproptech/maintenance-service/internal/validation"
)

// ArchiveTicket transitions a ticket into its terminal state. Archiving is a
// quiet administrative action: no notification fires, re-archiving an already
// archived ticket succeeds and returns the same ticket.
type ArchiveTicket struct {
	tickets repository.TicketRepository
}

// NewArchiveTicket constructs the use case.
func NewArchiveTicket(tickets repository.TicketRepository) *ArchiveTicket {
	return &ArchiveTicket{tickets: tickets}
}

// Execute returns (nil, nil) when the ticket does not exist.
func (uc *ArchiveTicket) Execute(ctx context.Context, id string) (*domain.Ticket, error) {
	ticketID, err := validation.ID("id", id)
	if err != nil {
		return nil, nil
	}
	return uc.tickets.Archive(ctx, ticketID)
}
