// Package usecase holds the orchestration core: one executable type per
// business operation, composed from the repository, mail and logging ports.
package usecase

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/coproptech/maintenance-service/internal/domain"
	"github.com/coproptech/maintenance-service/internal/mail"
	"github.com/coproptech/maintenance-service/internal/observability"
	"github.com/coproptech/maintenance-service/internal/repository"
)

// NotificationOutcome captures how a notification phase ended. It feeds
// logging and metrics only, never control flow.
type NotificationOutcome string

const (
	NotificationSent    NotificationOutcome = "sent"
	NotificationSkipped NotificationOutcome = "skipped"
	NotificationFailed  NotificationOutcome = "failed"
)

// Notifier performs the best-effort notification phase of the use cases.
// Every method is awaited by its caller but never returns an error: failures
// of the user listing, the renderer or the transport are logged and reported
// through the outcome value.
type Notifier struct {
	users     repository.UserRepository
	tickets   repository.TicketRepository
	renderer  mail.Renderer
	transport mail.Transport
	logger    *zap.Logger
	metrics   *observability.Metrics
}

// NewNotifier constructs the notifier. Metrics may be nil.
func NewNotifier(users repository.UserRepository, tickets repository.TicketRepository, renderer mail.Renderer, transport mail.Transport, logger *zap.Logger, metrics *observability.Metrics) *Notifier {
	return &Notifier{
		users:     users,
		tickets:   tickets,
		renderer:  renderer,
		transport: transport,
		logger:    logger,
		metrics:   metrics,
	}
}

// TicketCreated notifies every known member of a new ticket.
func (n *Notifier) TicketCreated(ctx context.Context, ticket *domain.Ticket) NotificationOutcome {
	return n.run("ticket_created", ticket.ID, func() (NotificationOutcome, error) {
		return n.broadcast(ctx, func() (mail.RenderedMessage, error) {
			return n.renderer.TicketCreated(ticket)
		})
	})
}

// TicketStatusChanged notifies every known member of a status transition.
func (n *Notifier) TicketStatusChanged(ctx context.Context, ticket *domain.Ticket, oldStatus domain.TicketStatus) NotificationOutcome {
	return n.run("ticket_status_changed", ticket.ID, func() (NotificationOutcome, error) {
		return n.broadcast(ctx, func() (mail.RenderedMessage, error) {
			return n.renderer.TicketStatusChanged(ticket, oldStatus)
		})
	})
}

// TicketAssigned notifies only the new assignee. An assignee id that no
// longer resolves skips silently.
func (n *Notifier) TicketAssigned(ctx context.Context, ticket *domain.Ticket) NotificationOutcome {
	return n.run("ticket_assigned", ticket.ID, func() (NotificationOutcome, error) {
		if ticket.AssignedTo == nil {
			return NotificationSkipped, nil
		}
		assignee, err := n.users.FindByID(ctx, *ticket.AssignedTo)
		if err != nil {
			return NotificationFailed, err
		}
		if assignee == nil {
			return NotificationSkipped, nil
		}
		rendered, err := n.renderer.TicketAssigned(ticket, assignee)
		if err != nil {
			return NotificationFailed, err
		}
		return n.deliver(ctx, rendered, []mail.Recipient{{Email: assignee.Email, Name: assignee.FullName()}}), nil
	})
}

// CommentAdded notifies every known member of a new comment. A parent ticket
// that cannot be found skips silently.
func (n *Notifier) CommentAdded(ctx context.Context, comment *domain.Comment) NotificationOutcome {
	return n.run("comment_added", comment.TicketID, func() (NotificationOutcome, error) {
		ticket, err := n.tickets.FindByID(ctx, comment.TicketID)
		if err != nil {
			return NotificationFailed, err
		}
		if ticket == nil {
			return NotificationSkipped, nil
		}
		return n.broadcast(ctx, func() (mail.RenderedMessage, error) {
			return n.renderer.CommentAdded(ticket, comment)
		})
	})
}

// run fences a notification phase: panics and errors are logged and collapsed
// into a failed outcome so they can never abort the primary operation.
func (n *Notifier) run(event, ticketID string, fn func() (NotificationOutcome, error)) NotificationOutcome {
	outcome, err := func() (outcome NotificationOutcome, err error) {
		defer func() {
			if r := recover(); r != nil {
				outcome = NotificationFailed
				err = fmt.Errorf("panic: %v", r)
			}
		}()
		return fn()
	}()
	if err != nil {
		outcome = NotificationFailed
		n.logger.Error("notification failed",
			zap.String("event", event),
			zap.String("ticket_id", ticketID),
			zap.Error(err))
	} else if outcome == NotificationFailed {
		n.logger.Error("notification delivery failed",
			zap.String("event", event),
			zap.String("ticket_id", ticketID))
	}
	n.metrics.RecordNotification(event, string(outcome))
	return outcome
}

func (n *Notifier) broadcast(ctx context.Context, render func() (mail.RenderedMessage, error)) (NotificationOutcome, error) {
	users, err := n.users.FindAll(ctx)
	if err != nil {
		return NotificationFailed, err
	}
	if len(users) == 0 {
		return NotificationSkipped, nil
	}
	rendered, err := render()
	if err != nil {
		return NotificationFailed, err
	}
	recipients := make([]mail.Recipient, 0, len(users))
	for i := range users {
		recipients = append(recipients, mail.Recipient{Email: users[i].Email, Name: users[i].FullName()})
	}
	return n.deliver(ctx, rendered, recipients), nil
}

func (n *Notifier) deliver(ctx context.Context, rendered mail.RenderedMessage, recipients []mail.Recipient) NotificationOutcome {
	msg := mail.Message{
		Recipients: recipients,
		Subject:    rendered.Subject,
		HTMLBody:   rendered.HTMLBody,
		TextBody:   rendered.TextBody,
	}
	if !n.transport.SendSafe(ctx, msg) {
		return NotificationFailed
	}
	return NotificationSent
}
