package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/coproptech/maintenance-service/internal/api/dto"
	"github.com/coproptech/maintenance-service/internal/auth"
	"github.com/coproptech/maintenance-service/internal/service"
	"github.com/coproptech/maintenance-service/pkg/util"
)

// UsersHandler binds account and directory endpoints to HTTP.
type UsersHandler struct {
	authService *service.AuthService
	userService *service.UserService
}

// NewUsersHandler constructs the handler.
func NewUsersHandler(authService *service.AuthService, userService *service.UserService) *UsersHandler {
	return &UsersHandler{authService: authService, userService: userService}
}

// Register POST /auth/register.
func (h *UsersHandler) Register(c *fiber.Ctx) error {
	var req dto.RegisterRequest
	if err := c.BodyParser(&req); err != nil {
		return util.NewFieldValidation("body", "corps de requête invalide")
	}
	if req.Email == "" || req.Password == "" {
		return util.NewFieldValidation("email", "email et mot de passe obligatoires")
	}
	user, token, exp, err := h.authService.Register(c.UserContext(), req.FirstName, req.LastName, req.Email, req.Password)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"data": dto.AuthResponse{
		User:      dto.NewPublicUser(user),
		Token:     token,
		ExpiresAt: exp,
	}})
}

// Login POST /auth/login.
func (h *UsersHandler) Login(c *fiber.Ctx) error {
	var req dto.LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return util.NewFieldValidation("body", "corps de requête invalide")
	}
	user, token, exp, err := h.authService.Login(c.UserContext(), req.Email, req.Password)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.AuthResponse{
		User:      dto.NewPublicUser(user),
		Token:     token,
		ExpiresAt: exp,
	}})
}

// ChangePassword POST /auth/password/change.
func (h *UsersHandler) ChangePassword(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return util.NewUnauthorized("user required")
	}
	var req dto.ChangePasswordRequest
	if err := c.BodyParser(&req); err != nil {
		return util.NewFieldValidation("body", "corps de requête invalide")
	}
	if err := h.authService.ChangePassword(c.UserContext(), principal.User.ID, req.CurrentPassword, req.NewPassword); err != nil {
		return err
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// RequestPasswordReset POST /auth/password/reset/request.
func (h *UsersHandler) RequestPasswordReset(c *fiber.Ctx) error {
	var req dto.ResetRequestRequest
	if err := c.BodyParser(&req); err != nil {
		return util.NewFieldValidation("body", "corps de requête invalide")
	}
	if err := h.authService.RequestPasswordReset(c.UserContext(), req.Email); err != nil {
		return err
	}
	return c.SendStatus(fiber.StatusAccepted)
}

// ConfirmPasswordReset POST /auth/password/reset/confirm.
func (h *UsersHandler) ConfirmPasswordReset(c *fiber.Ctx) error {
	var req dto.ResetConfirmRequest
	if err := c.BodyParser(&req); err != nil {
		return util.NewFieldValidation("body", "corps de requête invalide")
	}
	if err := h.authService.ConfirmPasswordReset(c.UserContext(), req.Token, req.NewPassword); err != nil {
		return err
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// ListUsers GET /users — public projections only.
func (h *UsersHandler) ListUsers(c *fiber.Ctx) error {
	users, err := h.userService.ListUsers(c.UserContext())
	if err != nil {
		return err
	}
	items := make([]dto.PublicUser, 0, len(users))
	for i := range users {
		items = append(items, dto.NewPublicUser(&users[i]))
	}
	return c.JSON(fiber.Map{"data": items})
}
