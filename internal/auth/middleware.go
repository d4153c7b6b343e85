package auth

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/coproptech/maintenance-service/internal/domain"
	"github.com/coproptech/maintenance-service/internal/repository"
	"github.com/coproptech/maintenance-service/pkg/util"
)

const principalKey = "auth_principal"

// Principal is the authenticated caller attached to the request context.
type Principal struct {
	User *domain.User
}

// AuthMiddleware resolves the bearer token into a Principal.
type AuthMiddleware struct {
	tokens *TokenManager
	users  repository.UserRepository
}

// NewAuthMiddleware constructs the middleware.
func NewAuthMiddleware(tokens *TokenManager, users repository.UserRepository) *AuthMiddleware {
	return &AuthMiddleware{tokens: tokens, users: users}
}

// Handle validates the Authorization header and loads the user.
func (m *AuthMiddleware) Handle(c *fiber.Ctx) error {
	header := c.Get(fiber.HeaderAuthorization)
	if !strings.HasPrefix(header, "Bearer ") {
		return util.NewUnauthorized("missing bearer token")
	}
	claims, err := m.tokens.ParseToken(strings.TrimPrefix(header, "Bearer "))
	if err != nil {
		return util.NewUnauthorized("invalid token")
	}
	user, err := m.users.FindByID(c.UserContext(), claims.UserID)
	if err != nil {
		return err
	}
	if user == nil {
		return util.NewUnauthorized("unknown user")
	}
	c.Locals(principalKey, &Principal{User: user})
	return c.Next()
}

// PrincipalFromContext returns the Principal stored by Handle.
func PrincipalFromContext(c *fiber.Ctx) (*Principal, bool) {
	principal, ok := c.Locals(principalKey).(*Principal)
	return principal, ok && principal != nil
}
