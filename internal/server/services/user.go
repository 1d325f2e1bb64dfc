// Package services contains server-side business logic. This file implements
// UserService, which handles signup, signin, token verification against the
// revocation blacklist, and logout.
package services

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/dmitrijs2005/flowspace/internal/common"
	"github.com/dmitrijs2005/flowspace/internal/server/auth"
	"github.com/dmitrijs2005/flowspace/internal/server/config"
	"github.com/dmitrijs2005/flowspace/internal/server/models"
	"github.com/dmitrijs2005/flowspace/internal/server/repositories/repomanager"
)

// AuthResult bundles the created/authenticated user with a freshly minted
// access token.
type AuthResult struct {
	User        *models.User
	AccessToken string
}

// UserService provides authentication-related operations:
// - SignUp: create users and mint a first token
// - SignIn: verify credentials and mint tokens
// - Identify: resolve a presented token back to its user
// - Logout: blacklist a presented token
type UserService struct {
	db                          *sql.DB
	repomanager                 repomanager.RepositoryManager
	jwtSecret                   []byte
	accessTokenValidityDuration time.Duration
	requireUsername             bool
}

// NewUserService constructs a UserService using repositories and server config.
func NewUserService(db *sql.DB, m repomanager.RepositoryManager, cfg *config.Config) *UserService {
	return &UserService{
		db:                          db,
		repomanager:                 m,
		jwtSecret:                   []byte(cfg.SecretKey),
		accessTokenValidityDuration: cfg.AccessTokenValidityDuration,
		requireUsername:             cfg.RequireUsername,
	}
}

// SignUp registers a new account and returns it with an access token whose
// subject is the account's email. Duplicate email or username yields
// ErrorConflict.
func (s *UserService) SignUp(ctx context.Context, username, email, password string) (*AuthResult, error) {
	if email == "" || password == "" {
		return nil, common.ErrorValidation
	}
	if s.requireUsername && username == "" {
		return nil, common.ErrorValidation
	}

	repo := s.repomanager.Users(s.db)

	if _, err := repo.GetByEmail(ctx, email); err == nil {
		return nil, common.ErrorConflict
	} else if !errors.Is(err, common.ErrorNotFound) {
		return nil, common.ErrorInternal
	}

	if username != "" {
		if _, err := repo.GetByUsername(ctx, username); err == nil {
			return nil, common.ErrorConflict
		} else if !errors.Is(err, common.ErrorNotFound) {
			return nil, common.ErrorInternal
		}
	}

	digest, err := auth.HashPassword(password)
	if err != nil {
		return nil, common.ErrorInternal
	}

	user, err := repo.Create(ctx, &models.User{Username: username, Email: email, HashedPassword: digest})
	if err != nil {
		// the unique constraint may still fire for a concurrent signup
		if errors.Is(err, common.ErrorConflict) {
			return nil, common.ErrorConflict
		}
		return nil, common.ErrorInternal
	}

	token, err := s.generateAccessToken(user.Email)
	if err != nil {
		return nil, common.ErrorInternal
	}

	return &AuthResult{User: user, AccessToken: token}, nil
}

// SignIn verifies email+password and returns a token. Unknown email and
// wrong password are indistinguishable (ErrorInvalidCredentials).
func (s *UserService) SignIn(ctx context.Context, email, password string) (*AuthResult, error) {
	repo := s.repomanager.Users(s.db)

	user, err := repo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, common.ErrorInvalidCredentials
		}
		return nil, common.ErrorInternal
	}

	if !auth.CheckPassword(password, user.HashedPassword) {
		return nil, common.ErrorInvalidCredentials
	}

	token, err := s.generateAccessToken(user.Email)
	if err != nil {
		return nil, common.ErrorInternal
	}

	return &AuthResult{User: user, AccessToken: token}, nil
}

// VerifyToken checks signature and expiry first, then consults the
// revocation blacklist; a syntactically invalid token never reaches the
// store. Returns the token's subject (the account's email).
func (s *UserService) VerifyToken(ctx context.Context, token string) (string, error) {
	subject, err := auth.GetSubjectFromToken(token, s.jwtSecret)
	if err != nil {
		return "", err
	}

	revoked, err := s.repomanager.RevokedTokens(s.db).IsRevoked(ctx, token)
	if err != nil {
		return "", common.ErrorInternal
	}
	if revoked {
		return "", common.ErrTokenRevoked
	}

	return subject, nil
}

// Identify resolves a presented token to its user. A valid token whose
// subject no longer exists yields ErrorNotFound.
func (s *UserService) Identify(ctx context.Context, token string) (*models.User, error) {
	subject, err := s.VerifyToken(ctx, token)
	if err != nil {
		return nil, err
	}

	user, err := s.repomanager.Users(s.db).GetByEmail(ctx, subject)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, common.ErrorNotFound
		}
		return nil, common.ErrorInternal
	}

	return user, nil
}

// Logout verifies the presented token exactly like Identify and then
// blacklists it for the configured token TTL. A failed blacklist write
// yields ErrorLogoutFailed.
func (s *UserService) Logout(ctx context.Context, token string) error {
	if _, err := s.VerifyToken(ctx, token); err != nil {
		return err
	}

	if err := s.repomanager.RevokedTokens(s.db).Create(ctx, token, s.accessTokenValidityDuration); err != nil {
		return common.ErrorLogoutFailed
	}

	return nil
}

func (s *UserService) generateAccessToken(subject string) (string, error) {
	return auth.GenerateToken(subject, s.jwtSecret, s.accessTokenValidityDuration)
}
