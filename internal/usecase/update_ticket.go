package usecase

import (
	"context"
	"strings"

	"github.com/coproptech/maintenance-service/internal/domain"
	"github.com/coproptech/maintenance-service/internal/repository"
	"github.com/coproptech/maintenance-service/internal/validation"
	"github.com/coproptech/maintenance-service/pkg/util"
)

// UpdateTicketInput is the tagged partial update for a ticket. Unset fields
// stay untouched; only AssignedTo supports an explicit clear (unassignment).
type UpdateTicketInput struct {
	Title       Field[string]
	Description Field[string]
	Status      Field[domain.TicketStatus]
	AssignedTo  Field[string]
}

// Empty reports a patch touching no field.
func (in UpdateTicketInput) Empty() bool {
	return in.Title.Unset() && in.Description.Unset() && in.Status.Unset() && in.AssignedTo.Unset()
}

// UpdateTicket validates a partial update, refuses mutation of archived
// tickets and applies the patch through the repository's conditional write.
type UpdateTicket struct {
	tickets  repository.TicketRepository
	notifier *Notifier
}

// NewUpdateTicket constructs the use case.
func NewUpdateTicket(tickets repository.TicketRepository, notifier *Notifier) *UpdateTicket {
	return &UpdateTicket{tickets: tickets, notifier: notifier}
}

// Execute returns (nil, nil) when the ticket does not exist. An archived
// ticket fails with ArchivedStateError for every non-empty patch, including
// no-op patches.
func (uc *UpdateTicket) Execute(ctx context.Context, id string, input UpdateTicketInput) (*domain.Ticket, error) {
	if input.Empty() {
		return nil, util.NewFieldValidation("patch", "au moins un champ doit être renseigné")
	}

	patch, err := buildPatch(input)
	if err != nil {
		return nil, err
	}

	ticketID, err := validation.ID("id", id)
	if err != nil {
		return nil, nil
	}

	existing, err := uc.tickets.FindByID(ctx, ticketID)
	if err != nil {
		return nil, err
	}
	if existing == nil {
		return nil, nil
	}
	if existing.Archived {
		return nil, util.NewArchivedState(existing.ID)
	}

	updated, err := uc.tickets.Update(ctx, ticketID, patch)
	if err != nil {
		return nil, err
	}
	if updated == nil {
		// The row existed un-archived a moment ago and the conditional write
		// missed it, so it was archived concurrently.
		return nil, util.NewArchivedState(existing.ID)
	}

	if updated.Status != existing.Status {
		uc.notifier.TicketStatusChanged(ctx, updated, existing.Status)
	}
	if assigneeChanged(existing.AssignedTo, updated.AssignedTo) {
		uc.notifier.TicketAssigned(ctx, updated)
	}
	return updated, nil
}

// buildPatch validates each supplied field independently and lowers the
// tagged input onto the repository patch. A cleared or whitespace-only
// assignee becomes an unassignment, never an empty string.
func buildPatch(input UpdateTicketInput) (repository.TicketPatch, error) {
	var patch repository.TicketPatch

	if !input.Title.Unset() {
		title, err := validation.TicketTitle(input.Title.Value())
		if err != nil {
			return repository.TicketPatch{}, err
		}
		patch.Title = &title
	}
	if !input.Description.Unset() {
		description, err := validation.TicketDescription(input.Description.Value())
		if err != nil {
			return repository.TicketPatch{}, err
		}
		patch.Description = &description
	}
	if !input.Status.Unset() {
		status, err := validation.TicketStatus(input.Status.Value())
		if err != nil {
			return repository.TicketPatch{}, err
		}
		patch.Status = &status
	}
	if input.AssignedTo.Clear() {
		patch.ClearAssignee = true
	} else if input.AssignedTo.Set() {
		assignee := strings.TrimSpace(input.AssignedTo.Value())
		if assignee == "" {
			patch.ClearAssignee = true
		} else {
			patch.AssignedTo = &assignee
		}
	}
	return patch, nil
}

func assigneeChanged(before, after *string) bool {
	if after == nil {
		return false
	}
	return before == nil || *before != *after
}
