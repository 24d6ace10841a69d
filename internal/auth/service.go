package auth

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/libroshare/backend/internal/models"
)

// TokenTTL is how long an issued session token stays valid.
const TokenTTL = 24 * time.Hour

var (
	ErrEmailTaken         = errors.New("email already exists")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrTokenInvalid       = errors.New("invalid token")
	ErrUserNotFound       = errors.New("user not found")
)

// UserStore defines the interface for user persistence. Lookups return
// (nil, nil) when no document matches; a non-nil error means the store
// itself failed.
type UserStore interface {
	CreateUser(ctx context.Context, user *models.User) error
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)
	GetUserByID(ctx context.Context, id string) (*models.User, error)
	UpdateUser(ctx context.Context, id string, user *models.User) error
	DeleteUser(ctx context.Context, id string) error
}

// ProfileCache caches sanitized public profiles. Implementations must
// treat a miss as (nil, nil).
type ProfileCache interface {
	Get(ctx context.Context, id string) (*models.Profile, error)
	Set(ctx context.Context, id string, p *models.Profile) error
	Invalidate(ctx context.Context, id string) error
}

// Service orchestrates registration, login, and token-gated account
// operations. It holds no per-request state; the signing key and
// hashing parameters are fixed at construction.
type Service struct {
	users  UserStore
	hasher PasswordHasher
	tokens *TokenCodec
	cache  ProfileCache // optional, public profile reads only
	log    zerolog.Logger
}

func NewService(users UserStore, hasher PasswordHasher, tokens *TokenCodec, cache ProfileCache, log zerolog.Logger) *Service {
	return &Service{users: users, hasher: hasher, tokens: tokens, cache: cache, log: log}
}

// Register creates a new account. The email must not be in use.
func (s *Service) Register(ctx context.Context, email, username, password string) error {
	existing, err := s.users.GetUserByEmail(ctx, email)
	if err != nil {
		return fmt.Errorf("lookup email: %w", err)
	}
	if existing != nil {
		return ErrEmailTaken
	}

	hashed, err := s.hasher.Hash(password)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}

	user := &models.User{
		Username:   username,
		Email:      email,
		Password:   hashed,
		Bookshelf:  []string{},
		Publishies: []string{},
	}
	if err := s.users.CreateUser(ctx, user); err != nil {
		if errors.Is(err, ErrEmailTaken) {
			return ErrEmailTaken
		}
		return fmt.Errorf("create user: %w", err)
	}

	s.log.Info().Str("email", email).Msg("user registered")
	return nil
}

// Login verifies credentials and issues a session token. An unknown
// email and a wrong password fail identically.
func (s *Service) Login(ctx context.Context, email, password string) (string, error) {
	user, err := s.users.GetUserByEmail(ctx, email)
	if err != nil {
		return "", fmt.Errorf("lookup email: %w", err)
	}
	if user == nil || !s.hasher.Verify(password, user.Password) {
		return "", ErrInvalidCredentials
	}

	token, err := s.tokens.Issue(user.ID.Hex())
	if err != nil {
		return "", fmt.Errorf("issue token: %w", err)
	}
	return token, nil
}

// Authenticate verifies a bearer token and returns the user id it
// asserts. Malformed tokens and bad signatures collapse into
// ErrTokenInvalid; expiry stays distinct for user messaging.
func (s *Service) Authenticate(token string) (string, error) {
	subject, err := s.tokens.Verify(token)
	if err != nil {
		if errors.Is(err, ErrTokenExpired) {
			return "", ErrTokenExpired
		}
		return "", ErrTokenInvalid
	}
	return subject, nil
}

// Profile returns the authenticated user's own sanitized profile.
func (s *Service) Profile(ctx context.Context, token string) (*models.Profile, error) {
	userID, err := s.Authenticate(token)
	if err != nil {
		return nil, err
	}

	user, err := s.users.GetUserByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("lookup user: %w", err)
	}
	if user == nil {
		return nil, ErrUserNotFound
	}
	return user.Sanitized(), nil
}

// PublicProfile returns any user's sanitized profile by id, no token
// required. Served from the cache when one is configured.
func (s *Service) PublicProfile(ctx context.Context, id string) (*models.Profile, error) {
	if s.cache != nil {
		if p, err := s.cache.Get(ctx, id); err == nil && p != nil {
			return p, nil
		}
	}

	user, err := s.users.GetUserByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("lookup user: %w", err)
	}
	if user == nil {
		return nil, ErrUserNotFound
	}

	profile := user.Sanitized()
	if s.cache != nil {
		if err := s.cache.Set(ctx, id, profile); err != nil {
			s.log.Warn().Err(err).Msg("profile cache set failed")
		}
	}
	return profile, nil
}

// UpdateProfile applies the non-nil fields of patch to the
// authenticated user's document. The full document is read, merged,
// and written back; concurrent updates are last-writer-wins.
func (s *Service) UpdateProfile(ctx context.Context, token string, patch models.UserPatch) error {
	userID, err := s.Authenticate(token)
	if err != nil {
		return err
	}

	user, err := s.users.GetUserByID(ctx, userID)
	if err != nil {
		return fmt.Errorf("lookup user: %w", err)
	}
	if user == nil {
		return ErrUserNotFound
	}

	if patch.Username != nil {
		user.Username = *patch.Username
	}
	if patch.Password != nil {
		hashed, err := s.hasher.Hash(*patch.Password)
		if err != nil {
			return fmt.Errorf("hash password: %w", err)
		}
		user.Password = hashed
	}
	if patch.Bookshelf != nil {
		user.Bookshelf = *patch.Bookshelf
	}
	if patch.Publishies != nil {
		user.Publishies = *patch.Publishies
	}

	if err := s.users.UpdateUser(ctx, userID, user); err != nil {
		return fmt.Errorf("update user: %w", err)
	}
	s.invalidate(ctx, userID)
	return nil
}

// DeleteAccount removes the authenticated user's document.
func (s *Service) DeleteAccount(ctx context.Context, token string) error {
	userID, err := s.Authenticate(token)
	if err != nil {
		return err
	}

	user, err := s.users.GetUserByID(ctx, userID)
	if err != nil {
		return fmt.Errorf("lookup user: %w", err)
	}
	if user == nil {
		return ErrUserNotFound
	}

	if err := s.users.DeleteUser(ctx, userID); err != nil {
		return fmt.Errorf("delete user: %w", err)
	}
	s.invalidate(ctx, userID)
	s.log.Info().Str("user_id", userID).Msg("account deleted")
	return nil
}

func (s *Service) invalidate(ctx context.Context, id string) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Invalidate(ctx, id); err != nil {
		s.log.Warn().Err(err).Msg("profile cache invalidate failed")
	}
}
