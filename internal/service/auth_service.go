package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/waseet/event-social/internal/model"
	"github.com/waseet/event-social/internal/queue"
	"github.com/waseet/event-social/internal/repository"
	"github.com/waseet/event-social/internal/utils"
)

// UserRepository is the storage surface for users.
type UserRepository interface {
	Create(ctx context.Context, u *model.User) error
	FindByEmail(ctx context.Context, email string) (*model.User, error)
	FindByID(ctx context.Context, id string) (*model.User, error)
	Update(ctx context.Context, u *model.User) error
}

// TokenCache stores refresh-token hashes keyed by user id. The cached
// entry is the sole source of truth for refresh-token validity.
type TokenCache interface {
	Set(ctx context.Context, key, value string, ttl time.Duration) error
	Get(ctx context.Context, key string) (string, bool, error)
	Del(ctx context.Context, key string) error
}

// AuthService implements registration, login and the refresh-token
// rotation flow.
type AuthService struct {
	users      UserRepository
	cache      TokenCache
	notify     NotificationPublisher
	tokens     utils.TokenConfig
	bcryptCost int
	logger     zerolog.Logger
}

func NewAuthService(users UserRepository, cache TokenCache, notify NotificationPublisher, tokens utils.TokenConfig, bcryptCost int, logger zerolog.Logger) *AuthService {
	return &AuthService{
		users:      users,
		cache:      cache,
		notify:     notify,
		tokens:     tokens,
		bcryptCost: bcryptCost,
		logger:     logger,
	}
}

// RegisterInput is the validated input for Register.
type RegisterInput struct {
	Email    string
	FullName string
	Password string
}

// Register creates a user account and emits a welcome-email notification.
// A publish failure does not undo the registration.
func (s *AuthService) Register(ctx context.Context, in RegisterInput) (*model.User, error) {
	if _, err := s.users.FindByEmail(ctx, in.Email); err == nil {
		return nil, ErrEmailExists
	} else if !errors.Is(err, repository.ErrNotFound) {
		return nil, fmt.Errorf("lookup email: %w", err)
	}

	hash, err := utils.HashPassword(in.Password, s.bcryptCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}
	user := &model.User{
		ID:       uuid.NewString(),
		Email:    in.Email,
		FullName: in.FullName,
		Password: hash,
	}
	if err := s.users.Create(ctx, user); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, ErrEmailExists
		}
		return nil, fmt.Errorf("create user: %w", err)
	}

	if err := s.notify.Publish(ctx, queue.SendWelcomeEmail, queue.WelcomeEmailEvent{
		ToEmail: user.Email,
		Name:    user.FullName,
	}); err != nil {
		s.logger.Warn().Err(err).Str("user_id", user.ID).Msg("welcome notification not delivered")
	}
	return user, nil
}

// Login validates credentials and issues a token pair. The SHA-256 hash of
// the refresh token is cached under refresh-<userId> with the configured
// day-count TTL.
func (s *AuthService) Login(ctx context.Context, email, password string) (*model.User, utils.TokenPair, error) {
	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, utils.TokenPair{}, ErrInvalidCredentials
		}
		return nil, utils.TokenPair{}, fmt.Errorf("lookup email: %w", err)
	}
	if !utils.VerifyPassword(user.Password, password) {
		return nil, utils.TokenPair{}, ErrInvalidCredentials
	}

	pair, err := s.issueAndStore(ctx, user)
	if err != nil {
		return nil, utils.TokenPair{}, err
	}
	return user, pair, nil
}

// RefreshTokens rotates a refresh token. The presented token must hash to
// the cached entry for the user; on success the old entry is deleted and a
// fresh pair is issued and stored, making each refresh token single-use.
// Replaying a consumed token fails because its entry is gone.
func (s *AuthService) RefreshTokens(ctx context.Context, userID, refreshToken string) (utils.TokenPair, error) {
	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return utils.TokenPair{}, ErrInvalidRefreshToken
		}
		return utils.TokenPair{}, fmt.Errorf("lookup user: %w", err)
	}

	key := refreshKey(user.ID)
	cachedHash, ok, err := s.cache.Get(ctx, key)
	if err != nil {
		return utils.TokenPair{}, fmt.Errorf("read refresh cache: %w", err)
	}
	if !ok || utils.HashRefreshRaw(refreshToken) != cachedHash {
		return utils.TokenPair{}, ErrInvalidRefreshToken
	}

	if err := s.cache.Del(ctx, key); err != nil {
		return utils.TokenPair{}, fmt.Errorf("delete refresh cache: %w", err)
	}
	return s.issueAndStore(ctx, user)
}

func (s *AuthService) issueAndStore(ctx context.Context, user *model.User) (utils.TokenPair, error) {
	pair, err := utils.NewTokenPair(user.ID, user.Email, s.tokens)
	if err != nil {
		return utils.TokenPair{}, fmt.Errorf("issue tokens: %w", err)
	}
	if err := s.cache.Set(ctx, refreshKey(user.ID), utils.HashRefreshRaw(pair.RefreshToken), s.tokens.RefreshTTL); err != nil {
		return utils.TokenPair{}, fmt.Errorf("store refresh token: %w", err)
	}
	return pair, nil
}

func refreshKey(userID string) string { return "refresh-" + userID }
