package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/coproptech/maintenance-service/internal/api/dto"
	"github.com/coproptech/maintenance-service/internal/auth"
	"github.com/coproptech/maintenance-service/internal/domain"
	"github.com/coproptech/maintenance-service/internal/service"
	"github.com/coproptech/maintenance-service/internal/usecase"
	"github.com/coproptech/maintenance-service/pkg/util"
)

// TicketsHandler binds the ticket use cases to HTTP.
type TicketsHandler struct {
	service *service.TicketService
}

// NewTicketsHandler constructs the handler.
func NewTicketsHandler(ticketService *service.TicketService) *TicketsHandler {
	return &TicketsHandler{service: ticketService}
}

// CreateTicket POST /tickets.
func (h *TicketsHandler) CreateTicket(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return util.NewUnauthorized("user required")
	}
	var req dto.CreateTicketRequest
	if err := c.BodyParser(&req); err != nil {
		return util.NewFieldValidation("body", "corps de requête invalide")
	}

	ticket, err := h.service.CreateTicket(c.UserContext(), usecase.CreateTicketInput{
		Title:       req.Title,
		Description: req.Description,
		CreatedBy:   principal.User.ID,
	})
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"data": dto.NewTicketResponse(ticket)})
}

// ListTickets GET /tickets.
func (h *TicketsHandler) ListTickets(c *fiber.Ctx) error {
	tickets, err := h.service.GetTickets(c.UserContext())
	if err != nil {
		return err
	}
	items := make([]dto.TicketResponse, 0, len(tickets))
	for i := range tickets {
		items = append(items, dto.NewTicketResponse(&tickets[i]))
	}
	return c.JSON(fiber.Map{"data": items})
}

// GetTicket GET /tickets/:id.
func (h *TicketsHandler) GetTicket(c *fiber.Ctx) error {
	ticket, err := h.service.GetTicketByID(c.UserContext(), c.Params("id"))
	if err != nil {
		return err
	}
	if ticket == nil {
		return util.NewNotFound("ticket")
	}
	return c.JSON(fiber.Map{"data": dto.NewTicketResponse(ticket)})
}

// UpdateTicket PATCH /tickets/:id.
func (h *TicketsHandler) UpdateTicket(c *fiber.Ctx) error {
	var req dto.UpdateTicketRequest
	if err := c.BodyParser(&req); err != nil {
		return util.NewFieldValidation("body", "corps de requête invalide")
	}

	input := usecase.UpdateTicketInput{}
	if req.Title != nil {
		input.Title = usecase.SetField(*req.Title)
	}
	if req.Description != nil {
		input.Description = usecase.SetField(*req.Description)
	}
	if req.Status != nil {
		input.Status = usecase.SetField(domain.TicketStatus(*req.Status))
	}
	if req.AssignedTo != nil {
		input.AssignedTo = usecase.SetField(*req.AssignedTo)
	}

	ticket, err := h.service.UpdateTicket(c.UserContext(), c.Params("id"), input)
	if err != nil {
		return err
	}
	if ticket == nil {
		return util.NewNotFound("ticket")
	}
	return c.JSON(fiber.Map{"data": dto.NewTicketResponse(ticket)})
}

// ArchiveTicket POST /tickets/:id/archive.
func (h *TicketsHandler) ArchiveTicket(c *fiber.Ctx) error {
	ticket, err := h.service.ArchiveTicket(c.UserContext(), c.Params("id"))
	if err != nil {
		return err
	}
	if ticket == nil {
		return util.NewNotFound("ticket")
	}
	return c.JSON(fiber.Map{"data": dto.NewTicketResponse(ticket)})
}
