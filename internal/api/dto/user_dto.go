package dto

import (
	"time"

	"github.com/coproptech/maintenance-service/internal/domain"
)

// RegisterRequest payload.
type RegisterRequest struct {
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Email     string `json:"email"`
	Password  string `json:"password"`
}

// LoginRequest payload.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// ChangePasswordRequest payload.
type ChangePasswordRequest struct {
	CurrentPassword string `json:"current_password"`
	NewPassword     string `json:"new_password"`
}

// ResetRequestRequest payload.
type ResetRequestRequest struct {
	Email string `json:"email"`
}

// ResetConfirmRequest payload.
type ResetConfirmRequest struct {
	Token       string `json:"token"`
	NewPassword string `json:"new_password"`
}

// PublicUser is the projection that crosses the trust boundary: no email, no
// password hash.
type PublicUser struct {
	ID        string `json:"id"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
}

// NewPublicUser maps a domain user onto its public projection.
func NewPublicUser(user *domain.User) PublicUser {
	return PublicUser{
		ID:        user.ID,
		FirstName: user.FirstName,
		LastName:  user.LastName,
	}
}

// AuthResponse carries the issued token alongside the public profile.
type AuthResponse struct {
	User      PublicUser `json:"user"`
	Token     string     `json:"token"`
	ExpiresAt time.Time  `json:"expires_at"`
}
