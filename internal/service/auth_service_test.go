package service

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/coproptech/maintenance-service/internal/auth"
	"github.com/coproptech/maintenance-service/internal/config"
	"github.com/coproptech/maintenance-service/internal/domain"
	"github.com/coproptech/maintenance-service/internal/mail"
	"github.com/coproptech/maintenance-service/internal/repository"
	"github.com/coproptech/maintenance-service/pkg/util"
)

type memoryUserRepo struct {
	users map[string]*domain.User
}

func newMemoryUserRepo() *memoryUserRepo {
	return &memoryUserRepo{users: map[string]*domain.User{}}
}

func (r *memoryUserRepo) FindAll(ctx context.Context) ([]domain.User, error) {
	result := make([]domain.User, 0, len(r.users))
	for _, u := range r.users {
		result = append(result, *u)
	}
	return result, nil
}

func (r *memoryUserRepo) FindByID(ctx context.Context, id string) (*domain.User, error) {
	user, ok := r.users[id]
	if !ok {
		return nil, nil
	}
	copied := *user
	return &copied, nil
}

func (r *memoryUserRepo) FindByEmail(ctx context.Context, email string) (*domain.User, error) {
	for _, u := range r.users {
		if u.Email == email {
			copied := *u
			return &copied, nil
		}
	}
	return nil, nil
}

func (r *memoryUserRepo) Create(ctx context.Context, user *domain.User) error {
	user.ID = uuid.NewString()
	copied := *user
	r.users[user.ID] = &copied
	return nil
}

func (r *memoryUserRepo) UpdatePassword(ctx context.Context, id, passwordHash string) error {
	if user, ok := r.users[id]; ok {
		user.PasswordHash = passwordHash
	}
	return nil
}

type memoryResetRepo struct {
	tokens map[string]*repository.PasswordResetToken
}

func newMemoryResetRepo() *memoryResetRepo {
	return &memoryResetRepo{tokens: map[string]*repository.PasswordResetToken{}}
}

func (r *memoryResetRepo) Create(ctx context.Context, token *repository.PasswordResetToken) error {
	token.ID = uuid.NewString()
	token.CreatedAt = time.Now()
	copied := *token
	r.tokens[token.Token] = &copied
	return nil
}

func (r *memoryResetRepo) FindByToken(ctx context.Context, tokenStr string) (*repository.PasswordResetToken, error) {
	token, ok := r.tokens[tokenStr]
	if !ok {
		return nil, nil
	}
	copied := *token
	return &copied, nil
}

func (r *memoryResetRepo) MarkUsed(ctx context.Context, id string) error {
	now := time.Now()
	for _, token := range r.tokens {
		if token.ID == id {
			token.UsedAt = &now
		}
	}
	return nil
}

type recordingTransport struct {
	messages []mail.Message
}

func (t *recordingTransport) Send(ctx context.Context, msg mail.Message) error {
	t.messages = append(t.messages, msg)
	return nil
}

func (t *recordingTransport) SendSafe(ctx context.Context, msg mail.Message) bool {
	t.messages = append(t.messages, msg)
	return true
}

type authFixture struct {
	svc       *AuthService
	users     *memoryUserRepo
	resets    *memoryResetRepo
	transport *recordingTransport
}

func newAuthFixture() *authFixture {
	f := &authFixture{
		users:     newMemoryUserRepo(),
		resets:    newMemoryResetRepo(),
		transport: &recordingTransport{},
	}
	cfg := config.AuthConfig{
		JWTSecret:               "test-secret",
		AccessTokenTTLMinutes:   15,
		PasswordResetTTLMinutes: 30,
		PBKDF2Iterations:        1000,
	}
	f.svc = NewAuthService(cfg, AuthDependencies{
		UserRepo:          f.users,
		PasswordResetRepo: f.resets,
		Transport:         f.transport,
		Renderer:          mail.NewLiquidRenderer(),
		Logger:            zap.NewNop(),
	})
	return f
}

func TestAuthServiceRegister(t *testing.T) {
	ctx := context.Background()

	t.Run("creates the account and issues a token", func(t *testing.T) {
		f := newAuthFixture()
		user, token, exp, err := f.svc.Register(ctx, "Marie", "Durand", " Marie@Example.com ", "s3cret")
		require.NoError(t, err)
		require.NotNil(t, user)
		assert.Equal(t, "marie@example.com", user.Email)
		assert.NotEmpty(t, token)
		assert.True(t, exp.After(time.Now()))
		assert.NoError(t, auth.ComparePassword(user.PasswordHash, "s3cret"))
	})

	t.Run("duplicate email is a conflict", func(t *testing.T) {
		f := newAuthFixture()
		_, _, _, err := f.svc.Register(ctx, "Marie", "Durand", "marie@example.com", "s3cret")
		require.NoError(t, err)

		_, _, _, err = f.svc.Register(ctx, "Paul", "Martin", "MARIE@example.com", "autre")
		var de *util.DomainError
		require.ErrorAs(t, err, &de)
		assert.Equal(t, "CONFLICT", de.Code)
	})
}

func TestAuthServiceLogin(t *testing.T) {
	ctx := context.Background()
	f := newAuthFixture()
	_, _, _, err := f.svc.Register(ctx, "Marie", "Durand", "marie@example.com", "s3cret")
	require.NoError(t, err)

	t.Run("valid credentials", func(t *testing.T) {
		user, token, _, err := f.svc.Login(ctx, "marie@example.com", "s3cret")
		require.NoError(t, err)
		assert.Equal(t, "Marie Durand", user.FullName())

		claims, err := f.svc.TokenManager().ParseToken(token)
		require.NoError(t, err)
		assert.Equal(t, user.ID, claims.UserID)
	})

	t.Run("unknown email and wrong password fail identically", func(t *testing.T) {
		_, _, _, errUnknown := f.svc.Login(ctx, "nobody@example.com", "s3cret")
		_, _, _, errWrong := f.svc.Login(ctx, "marie@example.com", "wrong")

		for _, err := range []error{errUnknown, errWrong} {
			var de *util.DomainError
			require.ErrorAs(t, err, &de)
			assert.Equal(t, "UNAUTHORIZED", de.Code)
			assert.Equal(t, "identifiants invalides", de.Message)
		}
	})
}

func TestAuthServiceChangePassword(t *testing.T) {
	ctx := context.Background()
	f := newAuthFixture()
	user, _, _, err := f.svc.Register(ctx, "Marie", "Durand", "marie@example.com", "s3cret")
	require.NoError(t, err)

	t.Run("rejects a wrong current password", func(t *testing.T) {
		err := f.svc.ChangePassword(ctx, user.ID, "wrong", "next")
		var de *util.DomainError
		require.ErrorAs(t, err, &de)
		assert.Equal(t, "UNAUTHORIZED", de.Code)
	})

	t.Run("rotates the hash", func(t *testing.T) {
		require.NoError(t, f.svc.ChangePassword(ctx, user.ID, "s3cret", "n3xt"))

		_, _, _, err := f.svc.Login(ctx, "marie@example.com", "n3xt")
		assert.NoError(t, err)
		_, _, _, err = f.svc.Login(ctx, "marie@example.com", "s3cret")
		assert.Error(t, err)
	})
}

func TestAuthServicePasswordReset(t *testing.T) {
	ctx := context.Background()

	t.Run("unknown email succeeds silently", func(t *testing.T) {
		f := newAuthFixture()
		require.NoError(t, f.svc.RequestPasswordReset(ctx, "nobody@example.com"))
		assert.Empty(t, f.transport.messages)
		assert.Empty(t, f.resets.tokens)
	})

	t.Run("full reset flow", func(t *testing.T) {
		f := newAuthFixture()
		_, _, _, err := f.svc.Register(ctx, "Marie", "Durand", "marie@example.com", "s3cret")
		require.NoError(t, err)

		require.NoError(t, f.svc.RequestPasswordReset(ctx, "marie@example.com"))
		require.Len(t, f.transport.messages, 1)
		require.Len(t, f.resets.tokens, 1)

		var tokenStr string
		for key := range f.resets.tokens {
			tokenStr = key
		}
		assert.Contains(t, f.transport.messages[0].TextBody, tokenStr)

		require.NoError(t, f.svc.ConfirmPasswordReset(ctx, tokenStr, "n3xt"))
		_, _, _, err = f.svc.Login(ctx, "marie@example.com", "n3xt")
		assert.NoError(t, err)

		err = f.svc.ConfirmPasswordReset(ctx, tokenStr, "again")
		var fieldErr *util.FieldValidationError
		require.ErrorAs(t, err, &fieldErr)
		assert.Equal(t, "token", fieldErr.Field)
	})

	t.Run("expired token is rejected", func(t *testing.T) {
		f := newAuthFixture()
		user, _, _, err := f.svc.Register(ctx, "Marie", "Durand", "marie@example.com", "s3cret")
		require.NoError(t, err)

		stale := &repository.PasswordResetToken{
			UserID:    user.ID,
			Token:     uuid.NewString(),
			ExpiresAt: time.Now().Add(-time.Minute),
		}
		require.NoError(t, f.resets.Create(ctx, stale))

		err = f.svc.ConfirmPasswordReset(ctx, stale.Token, "n3xt")
		var fieldErr *util.FieldValidationError
		require.ErrorAs(t, err, &fieldErr)
		assert.Equal(t, "token", fieldErr.Field)
	})

	t.Run("unknown token is rejected", func(t *testing.T) {
		f := newAuthFixture()
		err := f.svc.ConfirmPasswordReset(ctx, "no-such-token", "n3xt")
		var fieldErr *util.FieldValidationError
		require.ErrorAs(t, err, &fieldErr)
	})
}
