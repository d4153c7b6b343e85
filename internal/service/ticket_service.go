// Package service exposes one facade per aggregate, grouping the use cases
// behind a single object for the HTTP adapters to call.
package service

import (
	"context"

	"github.com/coproptech/maintenance-service/internal/domain"
	"github.com/coproptech/maintenance-service/internal/repository"
	"github.com/coproptech/maintenance-service/internal/usecase"
)

// TicketService groups the ticket use cases.
type TicketService struct {
	create  *usecase.CreateTicket
	list    *usecase.GetTickets
	get     *usecase.GetTicketByID
	update  *usecase.UpdateTicket
	archive *usecase.ArchiveTicket
}

// TicketDependencies bundles the ports the ticket use cases need.
type TicketDependencies struct {
	TicketRepo repository.TicketRepository
	UserRepo   repository.UserRepository
	Notifier   *usecase.Notifier
}

// NewTicketService constructs the facade.
func NewTicketService(deps TicketDependencies) *TicketService {
	return &TicketService{
		create:  usecase.NewCreateTicket(deps.TicketRepo, deps.UserRepo, deps.Notifier),
		list:    usecase.NewGetTickets(deps.TicketRepo),
		get:     usecase.NewGetTicketByID(deps.TicketRepo),
		update:  usecase.NewUpdateTicket(deps.TicketRepo, deps.Notifier),
		archive: usecase.NewArchiveTicket(deps.TicketRepo),
	}
}

func (s *TicketService) CreateTicket(ctx context.Context, input usecase.CreateTicketInput) (*domain.Ticket, error) {
	return s.create.Execute(ctx, input)
}

func (s *TicketService) GetTickets(ctx context.Context) ([]domain.Ticket, error) {
	return s.list.Execute(ctx)
}

func (s *TicketService) GetTicketByID(ctx context.Context, id string) (*domain.Ticket, error) {
	return s.get.Execute(ctx, id)
}

func (s *TicketService) UpdateTicket(ctx context.Context, id string, input usecase.UpdateTicketInput) (*domain.Ticket, error) {
	return s.update.Execute(ctx, id, input)
}

func (s *TicketService) ArchiveTicket(ctx context.Context, id string) (*domain.Ticket, error) {
	return s.archive.Execute(ctx, id)
}
