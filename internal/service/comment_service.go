package service

import (
	"context"

	"github.com/coproptech/maintenance-service/internal/domain"
	"github.com/coproptech/maintenance-service/internal/repository"
	"github.com/coproptech/maintenance-service/internal/usecase"
)

// CommentService groups the comment use cases.
type CommentService struct {
	add  *usecase.AddComment
	list *usecase.GetComments
}

// CommentDependencies bundles the ports the comment use cases need.
type CommentDependencies struct {
	CommentRepo repository.CommentRepository
	UserRepo    repository.UserRepository
	Notifier    *usecase.Notifier
}

// NewCommentService constructs the facade.
func NewCommentService(deps CommentDependencies) *CommentService {
	return &CommentService{
		add:  usecase.NewAddComment(deps.CommentRepo, deps.UserRepo, deps.Notifier),
		list: usecase.NewGetComments(deps.CommentRepo),
	}
}

func (s *CommentService) AddComment(ctx context.Context, input usecase.AddCommentInput) (*domain.Comment, error) {
	return s.add.Execute(ctx, input)
}

func (s *CommentService) GetComments(ctx context.Context, ticketID string) ([]domain.Comment, error) {
	return s.list.Execute(ctx, ticketID)
}
