package usecase

import (
	"context"

	"github.com/coproptech/maintenance-service/internal/domain"
	"github.com/coproptech/maintenance-service/internal/repository"
	"github.com/coproptech/maintenance-service/internal/validation"
)

// The read side is pass-through: absence is a value (nil), never an error,
// and a malformed identifier reads the same as a missing one.

// GetTickets lists every ticket.
type GetTickets struct {
	tickets repository.TicketRepository
}

// NewGetTickets constructs the use case.
func NewGetTickets(tickets repository.TicketRepository) *GetTickets {
	return &GetTickets{tickets: tickets}
}

func (uc *GetTickets) Execute(ctx context.Context) ([]domain.Ticket, error) {
	return uc.tickets.FindAll(ctx)
}

// GetTicketByID fetches one ticket.
type GetTicketByID struct {
	tickets repository.TicketRepository
}

// NewGetTicketByID constructs the use case.
func NewGetTicketByID(tickets repository.TicketRepository) *GetTicketByID {
	return &GetTicketByID{tickets: tickets}
}

func (uc *GetTicketByID) Execute(ctx context.Context, id string) (*domain.Ticket, error) {
	ticketID, err := validation.ID("id", id)
	if err != nil {
		return nil, nil
	}
	return uc.tickets.FindByID(ctx, ticketID)
}

// GetComments lists the comments of a ticket in creation order.
type GetComments struct {
	comments repository.CommentRepository
}

// NewGetComments constructs the use case.
func NewGetComments(comments repository.CommentRepository) *GetComments {
	return &GetComments{comments: comments}
}

func (uc *GetComments) Execute(ctx context.Context, ticketID string) ([]domain.Comment, error) {
	id, err := validation.ID("ticket_id", ticketID)
	if err != nil {
		return nil, nil
	}
	return uc.comments.FindByTicketID(ctx, id)
}
