package usecase

import (
	"context"

	"github.com/coproptech/maintenance-service/internal/domain"
	"github.com/coproptech/maintenance-service/internal/repository"
	"github.com/coproptech/maintenance-service/internal/validation"
	"github.com/coproptech/maintenance-service/pkg/util"
)

// AddCommentInput describes comment creation payload.
type AddCommentInput struct {
	TicketID string
	Content  string
	AuthorID string
}

// AddComment appends a comment to a ticket and notifies members best-effort.
type AddComment struct {
	comments repository.CommentRepository
	users    repository.UserRepository
	notifier *Notifier
}

// NewAddComment constructs the use case.
func NewAddComment(comments repository.CommentRepository, users repository.UserRepository, notifier *Notifier) *AddComment {
	return &AddComment{comments: comments, users: users, notifier: notifier}
}

// Execute validates the ticket reference syntactically before any repository
// round trip, then content bounds, then author existence. Once the comment is
// persisted it is always returned; the notification phase cannot fail it.
func (uc *AddComment) Execute(ctx context.Context, input AddCommentInput) (*domain.Comment, error) {
	ticketID, err := validation.ID("ticket_id", input.TicketID)
	if err != nil {
		return nil, err
	}
	content, err := validation.CommentContent(input.Content)
	if err != nil {
		return nil, err
	}

	authorID, err := validation.ID("author_id", input.AuthorID)
	if err != nil {
		return nil, util.NewReferenceValidation("author_id", "utilisateur invalide")
	}
	author, err := uc.users.FindByID(ctx, authorID)
	if err != nil {
		return nil, err
	}
	if author == nil {
		return nil, util.NewReferenceValidation("author_id", "utilisateur invalide")
	}

	comment := &domain.Comment{
		TicketID: ticketID,
		AuthorID: author.ID,
		Content:  content,
	}
	if err := uc.comments.Create(ctx, comment); err != nil {
		return nil, err
	}

	uc.notifier.CommentAdded(ctx, comment)
	return comment, nil
}
