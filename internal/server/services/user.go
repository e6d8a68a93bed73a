// Package services implements the business layer between transport handlers
// and repositories. Services return sentinel errors from internal/common and
// never leak transport or driver types.
package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/proplusapp/proplus/internal/common"
	"github.com/proplusapp/proplus/internal/server/auth"
	"github.com/proplusapp/proplus/internal/server/config"
	"github.com/proplusapp/proplus/internal/server/ids"
	"github.com/proplusapp/proplus/internal/server/models"
	"github.com/proplusapp/proplus/internal/server/repositories/users"
)

// UserService handles registration, login and session resolution.
type UserService struct {
	repo                  users.Repository
	jwtSecret             []byte
	tokenValidityDuration time.Duration
}

// NewUserService constructs the service with an injected credential store.
func NewUserService(repo users.Repository, cfg *config.Config) *UserService {
	return &UserService{
		repo:                  repo,
		jwtSecret:             []byte(cfg.SecretKey),
		tokenValidityDuration: cfg.TokenValidityDuration,
	}
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func validEmail(email string) bool {
	at := strings.Index(email, "@")
	return at > 0 && at < len(email)-1 && !strings.ContainsAny(email, " \t")
}

// maxPasswordBytes is the bcrypt input limit. Longer passwords are rejected
// as ordinary input validation rather than surfacing as a hashing failure.
const maxPasswordBytes = 72

// Register creates a new identity. A taken email yields common.ErrConflict,
// whether detected by the pre-insert check or by the store's unique index.
func (s *UserService) Register(ctx context.Context, email, password string) (*models.User, error) {
	email = normalizeEmail(email)
	if !validEmail(email) || password == "" {
		return nil, fmt.Errorf("%w: email and password required", common.ErrValidation)
	}
	if len(password) > maxPasswordBytes {
		return nil, fmt.Errorf("%w: password longer than %d bytes", common.ErrValidation, maxPasswordBytes)
	}

	if _, err := s.repo.GetByEmail(ctx, email); err == nil {
		return nil, common.ErrConflict
	} else if !errors.Is(err, common.ErrNotFound) {
		return nil, storeErr(err)
	}

	hash, err := auth.HashPassword(password)
	if err != nil {
		return nil, fmt.Errorf("hash error: %w", err)
	}

	id, err := ids.New()
	if err != nil {
		return nil, err
	}

	user, err := s.repo.Create(ctx, &models.User{ID: id, Email: email, PasswordHash: hash})
	if err != nil {
		if errors.Is(err, common.ErrConflict) {
			return nil, common.ErrConflict
		}
		return nil, storeErr(err)
	}

	return user, nil
}

// Login verifies the credentials and issues an access token. An unknown email
// and a wrong password are indistinguishable to the caller.
func (s *UserService) Login(ctx context.Context, email, password string) (string, error) {
	email = normalizeEmail(email)

	user, err := s.repo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return "", common.ErrUnauthorized
		}
		return "", storeErr(err)
	}

	if !auth.VerifyPassword(password, user.PasswordHash) {
		return "", common.ErrUnauthorized
	}

	token, err := auth.GenerateToken(user.ID.String(), s.jwtSecret, s.tokenValidityDuration)
	if err != nil {
		return "", fmt.Errorf("token error: %w", err)
	}

	return token, nil
}

// Resolve turns a presented token into a verified Identity. It is called on
// every authenticated request and performs no writes.
//
// Errors: common.ErrUnauthorized for a missing, expired or malformed token,
// common.ErrNotFound when the subject no longer resolves to a user,
// common.ErrStoreUnavailable when the store cannot be reached.
func (s *UserService) Resolve(ctx context.Context, token string) (*models.Identity, error) {
	if token == "" {
		return nil, common.ErrUnauthorized
	}

	subject, err := auth.GetUserIDFromToken(token, s.jwtSecret)
	if err != nil {
		return nil, common.ErrUnauthorized
	}

	id, err := ids.Parse(subject)
	if err != nil {
		return nil, common.ErrUnauthorized
	}

	user, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return nil, common.ErrNotFound
		}
		return nil, storeErr(err)
	}

	return &models.Identity{ID: user.ID, Email: user.Email}, nil
}

// Delete removes an identity by email. Administrative use only, never
// reachable from the HTTP surface.
func (s *UserService) Delete(ctx context.Context, email string) error {
	err := s.repo.DeleteByEmail(ctx, normalizeEmail(email))
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return common.ErrNotFound
		}
		return storeErr(err)
	}
	return nil
}

// storeErr maps an unexpected repository failure onto the store-unavailable
// taxonomy kind. Transient store failures are never retried here.
func storeErr(err error) error {
	return fmt.Errorf("%w: %v", common.ErrStoreUnavailable, err)
}
