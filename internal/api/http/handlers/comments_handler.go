package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/coproptech/maintenance-service/internal/api/dto"
	"github.com/coproptech/maintenance-service/internal/auth"
	"github.com/coproptech/maintenance-service/internal/service"
	"github.com/coproptech/maintenance-service/internal/usecase"
	"github.com/coproptech/maintenance-service/pkg/util"
)

// CommentsHandler binds the comment use cases to HTTP.
type CommentsHandler struct {
	service *service.CommentService
}

// NewCommentsHandler constructs the handler.
func NewCommentsHandler(commentService *service.CommentService) *CommentsHandler {
	return &CommentsHandler{service: commentService}
}

// AddComment POST /tickets/:id/comments.
func (h *CommentsHandler) AddComment(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return util.NewUnauthorized("user required")
	}
	var req dto.CreateCommentRequest
	if err := c.BodyParser(&req); err != nil {
		return util.NewFieldValidation("body", "corps de requête invalide")
	}

	comment, err := h.service.AddComment(c.UserContext(), usecase.AddCommentInput{
		TicketID: c.Params("id"),
		Content:  req.Content,
		AuthorID: principal.User.ID,
	})
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"data": dto.NewCommentResponse(comment)})
}

// ListComments GET /tickets/:id/comments.
func (h *CommentsHandler) ListComments(c *fiber.Ctx) error {
	comments, err := h.service.GetComments(c.UserContext(), c.Params("id"))
	if err != nil {
		return err
	}
	items := make([]dto.CommentResponse, 0, len(comments))
	for i := range comments {
		items = append(items, dto.NewCommentResponse(&comments[i]))
	}
	return c.JSON(fiber.Map{"data": items})
}
