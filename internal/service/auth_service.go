package service

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/coproptech/maintenance-service/internal/auth"
	"github.com/coproptech/maintenance-service/internal/config"
	"github.com/coproptech/maintenance-service/internal/domain"
	"github.com/coproptech/maintenance-service/internal/mail"
	"github.com/coproptech/maintenance-service/internal/repository"
	"github.com/coproptech/maintenance-service/pkg/util"
)

// AuthService coordinates registration, login and password reset flows.
type AuthService struct {
	users      repository.UserRepository
	resets     repository.PasswordResetRepository
	tokenMgr   *auth.TokenManager
	transport  mail.Transport
	renderer   mail.Renderer
	logger     *zap.Logger
	iterations int
	resetTTL   time.Duration
}

// AuthDependencies encapsulates collaborator requirements for auth flows.
type AuthDependencies struct {
	UserRepo          repository.UserRepository
	PasswordResetRepo repository.PasswordResetRepository
	Transport         mail.Transport
	Renderer          mail.Renderer
	Logger            *zap.Logger
}

// NewAuthService builds the service.
func NewAuthService(cfg config.AuthConfig, deps AuthDependencies) *AuthService {
	return &AuthService{
		users:      deps.UserRepo,
		resets:     deps.PasswordResetRepo,
		tokenMgr:   auth.NewTokenManager(cfg.JWTSecret, cfg.AccessTokenTTLMinutes),
		transport:  deps.Transport,
		renderer:   deps.Renderer,
		logger:     deps.Logger,
		iterations: cfg.PBKDF2Iterations,
		resetTTL:   time.Duration(cfg.PasswordResetTTLMinutes) * time.Minute,
	}
}

// TokenManager exposes the manager for the auth middleware.
func (s *AuthService) TokenManager() *auth.TokenManager {
	return s.tokenMgr
}

// Register creates a new member account.
func (s *AuthService) Register(ctx context.Context, firstName, lastName, email, password string) (*domain.User, string, time.Time, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	existing, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		return nil, "", time.Time{}, err
	}
	if existing != nil {
		return nil, "", time.Time{}, util.NewConflict("email déjà enregistré", nil)
	}

	hash, err := auth.HashPassword(password, s.iterations)
	if err != nil {
		return nil, "", time.Time{}, err
	}

	user := &domain.User{
		FirstName:    strings.TrimSpace(firstName),
		LastName:     strings.TrimSpace(lastName),
		Email:        email,
		PasswordHash: hash,
	}
	if err := s.users.Create(ctx, user); err != nil {
		return nil, "", time.Time{}, err
	}

	token, exp, err := s.tokenMgr.GenerateToken(user.ID)
	if err != nil {
		return nil, "", time.Time{}, err
	}
	return user, token, exp, nil
}

// Login authenticates a member.
func (s *AuthService) Login(ctx context.Context, email, password string) (*domain.User, string, time.Time, error) {
	user, err := s.users.FindByEmail(ctx, strings.ToLower(strings.TrimSpace(email)))
	if err != nil {
		return nil, "", time.Time{}, err
	}
	if user == nil {
		return nil, "", time.Time{}, util.NewUnauthorized("identifiants invalides")
	}
	if err := auth.ComparePassword(user.PasswordHash, password); err != nil {
		return nil, "", time.Time{}, util.NewUnauthorized("identifiants invalides")
	}
	token, exp, err := s.tokenMgr.GenerateToken(user.ID)
	if err != nil {
		return nil, "", time.Time{}, err
	}
	return user, token, exp, nil
}

// ChangePassword rotates the caller's password after verifying the current
// one.
func (s *AuthService) ChangePassword(ctx context.Context, userID, current, next string) error {
	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return err
	}
	if user == nil {
		return util.NewUnauthorized("utilisateur inconnu")
	}
	if err := auth.ComparePassword(user.PasswordHash, current); err != nil {
		return util.NewUnauthorized("identifiants invalides")
	}
	hash, err := auth.HashPassword(next, s.iterations)
	if err != nil {
		return err
	}
	return s.users.UpdatePassword(ctx, user.ID, hash)
}

// RequestPasswordReset issues a reset token and mails it to the member. An
// unknown email succeeds without side effect so the endpoint does not leak
// account existence.
func (s *AuthService) RequestPasswordReset(ctx context.Context, email string) error {
	user, err := s.users.FindByEmail(ctx, strings.ToLower(strings.TrimSpace(email)))
	if err != nil {
		return err
	}
	if user == nil {
		return nil
	}

	token := &repository.PasswordResetToken{
		UserID:    user.ID,
		Token:     uuid.NewString(),
		ExpiresAt: time.Now().Add(s.resetTTL),
	}
	if err := s.resets.Create(ctx, token); err != nil {
		return err
	}

	rendered, err := s.renderer.PasswordReset(user, token.Token)
	if err != nil {
		s.logger.Error("password reset mail render failed", zap.String("user_id", user.ID), zap.Error(err))
		return nil
	}
	msg := mail.Message{
		Recipients: []mail.Recipient{{Email: user.Email, Name: user.FullName()}},
		Subject:    rendered.Subject,
		HTMLBody:   rendered.HTMLBody,
		TextBody:   rendered.TextBody,
	}
	if !s.transport.SendSafe(ctx, msg) {
		s.logger.Error("password reset mail delivery failed", zap.String("user_id", user.ID))
	}
	return nil
}

// ConfirmPasswordReset consumes a reset token and sets the new password.
func (s *AuthService) ConfirmPasswordReset(ctx context.Context, tokenStr, newPassword string) error {
	token, err := s.resets.FindByToken(ctx, tokenStr)
	if err != nil {
		return err
	}
	if token == nil || token.UsedAt != nil || time.Now().After(token.ExpiresAt) {
		return util.NewFieldValidation("token", "code de réinitialisation invalide ou expiré")
	}

	hash, err := auth.HashPassword(newPassword, s.iterations)
	if err != nil {
		return err
	}
	if err := s.users.UpdatePassword(ctx, token.UserID, hash); err != nil {
		return err
	}
	return s.resets.MarkUsed(ctx, token.ID)
}
