package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/peoplehub/hr-service/internal/auth"
	"github.com/peoplehub/hr-service/internal/config"
	"github.com/peoplehub/hr-service/internal/domain"
	"github.com/peoplehub/hr-service/internal/events"
	"github.com/peoplehub/hr-service/internal/repository"
	apperrors "github.com/peoplehub/hr-service/pkg/util"
)

// RecoveryMessage is returned by RecoverPassword whether or not the identifier
// matches an account, so callers cannot enumerate registered usernames.
const RecoveryMessage = "if the account is registered, a recovery link has been sent"

// AuthService coordinates registration, login and password flows against the
// credential store.
type AuthService struct {
	users       repository.UserRepository
	recovery    repository.RecoveryTokenRepository
	tokens      *auth.TokenManager
	dispatcher  events.Dispatcher
	bcryptCost  int
	recoveryTTL time.Duration
}

// AuthDependencies encapsulates collaborator requirements for the auth service.
type AuthDependencies struct {
	UserRepo     repository.UserRepository
	RecoveryRepo repository.RecoveryTokenRepository
	Dispatcher   events.Dispatcher
}

// NewAuthService builds the service.
func NewAuthService(cfg config.AuthConfig, deps AuthDependencies) *AuthService {
	return &AuthService{
		users:       deps.UserRepo,
		recovery:    deps.RecoveryRepo,
		tokens:      auth.NewTokenManager(cfg),
		dispatcher:  deps.Dispatcher,
		bcryptCost:  cfg.BcryptCost,
		recoveryTTL: cfg.RecoveryTokenTTL(),
	}
}

// Register creates a new account with an active status and zero access count.
// The returned user carries the stored hash internally; handlers expose public
// fields only.
func (s *AuthService) Register(ctx context.Context, username, password, displayName string, role domain.Role) (*domain.User, error) {
	if username == "" || password == "" || displayName == "" || role == "" {
		return nil, apperrors.NewValidationError("username, password, display name and role are required", nil)
	}
	if !role.Valid() {
		return nil, apperrors.NewValidationError("role must be admin or standard", map[string]any{"role": role})
	}

	if _, err := s.users.GetByUsername(ctx, username); err == nil {
		return nil, apperrors.NewConflict("user already exists", nil)
	} else if !errors.Is(err, pgx.ErrNoRows) {
		return nil, err
	}

	hash, err := auth.HashPassword(password, s.bcryptCost)
	if err != nil {
		return nil, err
	}

	user := &domain.User{
		Username:     username,
		DisplayName:  displayName,
		PasswordHash: hash,
		Role:         role,
		Status:       domain.UserStatusActive,
		AccessCount:  0,
	}
	if err := s.users.Create(ctx, user); err != nil {
		return nil, err
	}

	s.publish(ctx, events.Event{
		Type:     events.EventUserRegistered,
		Username: user.Username,
		Payload:  events.UserRegisteredPayload{DisplayName: user.DisplayName, Role: string(user.Role)},
	})
	return user, nil
}

// Login authenticates a user and issues a bearer token. Unknown usernames and
// wrong passwords are indistinguishable to the caller; account status is
// checked before the password so a blocked account never reveals whether the
// password was right.
func (s *AuthService) Login(ctx context.Context, username, password string) (*domain.User, string, time.Time, error) {
	if username == "" || password == "" {
		return nil, "", time.Time{}, apperrors.NewValidationError("username and password are required", nil)
	}

	user, err := s.users.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, "", time.Time{}, apperrors.NewInvalidCredentials()
		}
		return nil, "", time.Time{}, err
	}

	switch user.Status {
	case domain.UserStatusBlocked:
		return nil, "", time.Time{}, apperrors.NewForbidden("account blocked, contact an administrator")
	case domain.UserStatusInactive:
		return nil, "", time.Time{}, apperrors.NewForbidden("account inactive, contact an administrator")
	}

	if !auth.VerifyPassword(user.PasswordHash, password) {
		return nil, "", time.Time{}, apperrors.NewInvalidCredentials()
	}

	if err := s.users.IncrementAccessCount(ctx, username); err != nil {
		return nil, "", time.Time{}, err
	}
	user.AccessCount++

	token, expiresAt, err := s.tokens.Generate(domain.Identity{Username: user.Username, Role: user.Role})
	if err != nil {
		return nil, "", time.Time{}, err
	}
	return user, token, expiresAt, nil
}

// ChangePassword verifies the current password before persisting the new hash.
// Previously issued tokens stay valid for their remaining TTL.
func (s *AuthService) ChangePassword(ctx context.Context, username, currentPassword, newPassword string) error {
	if username == "" {
		return apperrors.NewUnauthenticated("authentication required")
	}
	if currentPassword == "" || newPassword == "" {
		return apperrors.NewValidationError("current and new password are required", nil)
	}

	user, err := s.users.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperrors.NewNotFound("user", nil)
		}
		return err
	}

	if !auth.VerifyPassword(user.PasswordHash, currentPassword) {
		return apperrors.NewInvalidCredentials()
	}

	hash, err := auth.HashPassword(newPassword, s.bcryptCost)
	if err != nil {
		return err
	}
	if err := s.users.UpdatePasswordHash(ctx, username, hash); err != nil {
		return err
	}

	s.publish(ctx, events.Event{Type: events.EventPasswordChanged, Username: username})
	return nil
}

// RecoverPassword handles a recovery request for an opaque account identifier.
// The response message is identical whether or not the account exists; when it
// does, a recovery token is persisted and handed to the notification side
// channel.
func (s *AuthService) RecoverPassword(ctx context.Context, identifier string) (string, error) {
	if identifier == "" {
		return "", apperrors.NewValidationError("account identifier is required", nil)
	}

	user, err := s.users.GetByUsername(ctx, identifier)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return RecoveryMessage, nil
		}
		return "", err
	}

	token := &repository.RecoveryToken{
		Username:  user.Username,
		Token:     uuid.NewString(),
		ExpiresAt: time.Now().Add(s.recoveryTTL),
	}
	if s.recovery != nil {
		if err := s.recovery.Create(ctx, token); err != nil {
			return "", err
		}
	}

	s.publish(ctx, events.Event{
		Type:     events.EventPasswordRecoveryRequested,
		Username: user.Username,
		Payload: events.PasswordRecoveryRequestedPayload{
			DisplayName: user.DisplayName,
			Token:       token.Token,
			ExpiresAt:   token.ExpiresAt,
		},
	})
	return RecoveryMessage, nil
}

// TokenManager exposes the underlying token manager for middleware usage.
func (s *AuthService) TokenManager() *auth.TokenManager {
	return s.tokens
}

func (s *AuthService) publish(ctx context.Context, event events.Event) {
	if s.dispatcher == nil {
		return
	}
	event.ID = uuid.NewString()
	event.Timestamp = time.Now()
	_ = s.dispatcher.Publish(ctx, event)
}
