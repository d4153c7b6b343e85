package usecase

import (
	"context"

	"github.com/coproptech/maintenance-service/internal/domain"
	"github.com/coproptech/maintenance-service/internal/repository"
	"github.com/coproptech/maintenance-service/internal/validation"
	"github.com/coproptech/maintenance-service/pkg/util"
)

// CreateTicketInput describes ticket creation payload. Any caller-supplied
// status is deliberately absent: new tickets always start at NEW.
type CreateTicketInput struct {
	Title       string
	Description string
	CreatedBy   string
}

// CreateTicket validates input, persists a new ticket and notifies all
// members best-effort.
type CreateTicket struct {
	tickets  repository.TicketRepository
	users    repository.UserRepository
	notifier *Notifier
}

// NewCreateTicket constructs the use case.
func NewCreateTicket(tickets repository.TicketRepository, users repository.UserRepository, notifier *Notifier) *CreateTicket {
	return &CreateTicket{tickets: tickets, users: users, notifier: notifier}
}

// Execute runs the operation. The returned ticket carries repository-assigned
// id and timestamps.
func (uc *CreateTicket) Execute(ctx context.Context, input CreateTicketInput) (*domain.Ticket, error) {
	title, err := validation.TicketTitle(input.Title)
	if err != nil {
		return nil, err
	}
	description, err := validation.TicketDescription(input.Description)
	if err != nil {
		return nil, err
	}

	createdBy, err := validation.ID("created_by", input.CreatedBy)
	if err != nil {
		return nil, util.NewReferenceValidation("created_by", "utilisateur invalide")
	}
	creator, err := uc.users.FindByID(ctx, createdBy)
	if err != nil {
		return nil, err
	}
	if creator == nil {
		return nil, util.NewReferenceValidation("created_by", "utilisateur invalide")
	}

	ticket := &domain.Ticket{
		Title:       title,
		Description: description,
		Status:      domain.TicketStatusNew,
		CreatedBy:   creator.ID,
	}
	if err := uc.tickets.Create(ctx, ticket); err != nil {
		return nil, err
	}

	uc.notifier.TicketCreated(ctx, ticket)
	return ticket, nil
}
