package service

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/nkarpov/bloghub/internal/hash"
	"github.com/nkarpov/bloghub/internal/logging"
	"github.com/nkarpov/bloghub/internal/models"
	"github.com/nkarpov/bloghub/internal/repo"
	"github.com/nkarpov/bloghub/internal/tokens"
)

var (
	ErrEmailTaken         = errors.New("email already registered, please use another email")
	ErrUsernameTaken      = errors.New("username not available, choose another username")
	ErrInvalidCredentials = errors.New("invalid username or password")
	ErrUnauthorized       = errors.New("unauthorized")
)

// AuthService drives the session lifecycle: register, login, logout
// and refresh. Tokens are short-lived JWTs; the refresh token is also
// mirrored server-side so it can be revoked and rotated.
type AuthService struct {
	Users  *repo.UserRepo
	Tokens *repo.TokenRepo
	Codec  *tokens.Codec
}

// Session is an authenticated user plus their freshly issued pair.
type Session struct {
	User         *models.User
	AccessToken  string
	RefreshToken string
}

func (s *AuthService) Register(ctx context.Context, name, username, email, password string) (*Session, error) {
	l := logging.FromContext(ctx).With("svc", "auth.register")

	taken, err := s.Users.EmailTaken(email)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, ErrEmailTaken
	}
	taken, err = s.Users.UsernameTaken(username)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, ErrUsernameTaken
	}

	pwHash, err := hash.HashPassword(password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user := models.User{Name: name, Username: username, Email: email, PasswordHash: pwHash}
	if err := s.Users.Create(&user); err != nil {
		// the existence checks and the insert are separate calls; a
		// concurrent registration can slip between them and trip the
		// unique index instead
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, s.duplicateConflict(email)
		}
		return nil, err
	}

	session, err := s.issuePair(&user)
	if err != nil {
		return nil, err
	}
	// Best effort: the user exists either way, they just cannot refresh
	// until the next login.
	if err := s.Tokens.Put(user.ID, session.RefreshToken); err != nil {
		l.Warn("refresh token not persisted", "user_id", user.ID, "error", err)
	}
	return session, nil
}

// duplicateConflict decides which uniqueness constraint fired when a
// lost insert race surfaces as a duplicate-key error.
func (s *AuthService) duplicateConflict(email string) error {
	if taken, err := s.Users.EmailTaken(email); err == nil && taken {
		return ErrEmailTaken
	}
	return ErrUsernameTaken
}

func (s *AuthService) Login(ctx context.Context, username, password string) (*Session, error) {
	user, err := s.Users.ByUsername(username)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}
	if !hash.CheckPassword(user.PasswordHash, password) {
		return nil, ErrInvalidCredentials
	}

	session, err := s.issuePair(user)
	if err != nil {
		return nil, err
	}
	// Replaces any prior token, ending the previous session's refresh
	// validity.
	if err := s.Tokens.Put(user.ID, session.RefreshToken); err != nil {
		return nil, err
	}
	return session, nil
}

// Logout deletes the stored refresh token. An unknown token is not an
// error: logging out twice is fine.
func (s *AuthService) Logout(ctx context.Context, refreshToken string) error {
	return s.Tokens.DeleteByToken(refreshToken)
}

// Refresh rotates the pair. The presented token must both verify
// cryptographically and match the stored record, so a logged-out or
// superseded token fails even while its signature is still valid.
func (s *AuthService) Refresh(ctx context.Context, refreshToken string) (*Session, error) {
	userID, err := s.Codec.VerifyRefreshToken(refreshToken)
	if err != nil {
		return nil, ErrUnauthorized
	}
	if _, err := s.Tokens.FindByUserAndToken(userID, refreshToken); err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, ErrUnauthorized
		}
		return nil, err
	}

	user, err := s.Users.ByID(userID)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, ErrUnauthorized
		}
		return nil, err
	}

	session, err := s.issuePair(user)
	if err != nil {
		return nil, err
	}
	if err := s.Tokens.Put(user.ID, session.RefreshToken); err != nil {
		return nil, err
	}
	return session, nil
}

func (s *AuthService) issuePair(user *models.User) (*Session, error) {
	access, err := s.Codec.SignAccessToken(user.ID)
	if err != nil {
		return nil, fmt.Errorf("sign access token: %w", err)
	}
	refresh, err := s.Codec.SignRefreshToken(user.ID)
	if err != nil {
		return nil, fmt.Errorf("sign refresh token: %w", err)
	}
	return &Session{User: user, AccessToken: access, RefreshToken: refresh}, nil
}
