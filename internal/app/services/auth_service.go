package services

import (
	"fmt"
	"time"

	"github.com/oguzk/eduportal/internal/app/models"
	"github.com/oguzk/eduportal/internal/app/repositories"
	"github.com/oguzk/eduportal/internal/pkg/apperrors"
	"github.com/oguzk/eduportal/internal/pkg/auth"
	"github.com/oguzk/eduportal/internal/pkg/logger"
	"github.com/oguzk/eduportal/internal/pkg/validation"
)

// sessionCollection is the store document holding the resumable session.
const sessionCollection = "session"

type sessionRecord struct {
	Token string `json:"token"`
}

// AuthService handles login, password management and the resumable
// console session.
type AuthService struct {
	repos    *repositories.Repositories
	sessions *auth.SessionService
	store    repositories.Store
}

// NewAuthService creates the auth service.
func NewAuthService(repos *repositories.Repositories, sessions *auth.SessionService, store repositories.Store) *AuthService {
	return &AuthService{repos: repos, sessions: sessions, store: store}
}

// Login authenticates a username/password pair and records the login time.
func (s *AuthService) Login(username, password string) (models.Account, error) {
	account, err := s.repos.Users.GetByUsername(username)
	if err != nil {
		return nil, apperrors.ErrInvalidCredentials
	}
	if !auth.CheckPassword(account.Base().PasswordHash, password) {
		return nil, apperrors.ErrInvalidCredentials
	}

	account.Base().Touch(time.Now())
	if err := s.repos.Persist(); err != nil {
		// Login time is bookkeeping only; the session proceeds.
		logger.Warn().Err(err).Str("username", username).Msg("Failed to persist login time")
	}
	logger.Info().Str("username", username).Str("role", string(account.RoleType())).Msg("User logged in")
	return account, nil
}

// Logout persists any pending state and drops the saved session.
func (s *AuthService) Logout(account models.Account) error {
	s.ClearSession()
	if err := s.repos.Persist(); err != nil {
		return fmt.Errorf("%w: %v", apperrors.ErrPersistenceFailure, err)
	}
	logger.Info().Str("username", account.Base().Username).Msg("User logged out")
	return nil
}

// ChangePassword verifies the current password and replaces the hash.
func (s *AuthService) ChangePassword(account models.Account, oldPassword, newPassword string) error {
	if !auth.CheckPassword(account.Base().PasswordHash, oldPassword) {
		return apperrors.ErrInvalidCredentials
	}
	if !validation.IsValidPassword(newPassword) {
		return fmt.Errorf("%w: password must be at least %d characters",
			apperrors.ErrInvalidPassword, validation.PasswordMinLength)
	}

	hash, err := auth.HashPassword(newPassword)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}
	account.Base().PasswordHash = hash
	if err := s.repos.Persist(); err != nil {
		return fmt.Errorf("%w: %v", apperrors.ErrPersistenceFailure, err)
	}
	return nil
}

// SetCredentials replaces username and password without verification, for
// the forced reset on an account's first login.
func (s *AuthService) SetCredentials(account models.Account, newUsername, newPassword string) error {
	if !validation.IsValidPassword(newPassword) {
		return fmt.Errorf("%w: password must be at least %d characters",
			apperrors.ErrInvalidPassword, validation.PasswordMinLength)
	}

	base := account.Base()
	if newUsername != base.Username {
		if _, err := s.repos.Users.GetByUsername(newUsername); err == nil {
			return fmt.Errorf("%w: %s", apperrors.ErrUsernameTaken, newUsername)
		}
		if !s.repos.Users.Delete(base.Username) {
			return fmt.Errorf("%w: %s", apperrors.ErrUserNotFound, base.Username)
		}
		base.Username = newUsername
		if err := s.repos.Users.Add(account); err != nil {
			return err
		}
	}

	hash, err := auth.HashPassword(newPassword)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}
	base.PasswordHash = hash
	base.FirstLogin = false

	if err := s.repos.Persist(); err != nil {
		return fmt.Errorf("%w: %v", apperrors.ErrPersistenceFailure, err)
	}
	logger.Info().Str("username", newUsername).Msg("Credentials updated on first login")
	return nil
}

// SaveSession issues a session token for the account and writes it to the
// data directory so the next run can resume without a password prompt.
func (s *AuthService) SaveSession(account models.Account) error {
	base := account.Base()
	token, err := s.sessions.IssueToken(base.Username, base.UserID, string(account.RoleType()))
	if err != nil {
		return err
	}
	return s.store.Save(sessionCollection, sessionRecord{Token: token})
}

// Resume validates a previously saved session token and resolves its
// account. A missing, expired or orphaned session yields ErrSessionInvalid.
func (s *AuthService) Resume() (models.Account, error) {
	var record sessionRecord
	if err := s.store.Load(sessionCollection, &record); err != nil || record.Token == "" {
		return nil, apperrors.ErrSessionInvalid
	}

	claims, err := s.sessions.ValidateToken(record.Token)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", apperrors.ErrSessionInvalid, err)
	}

	account, err := s.repos.Users.GetByUsername(claims.Username)
	if err != nil {
		return nil, fmt.Errorf("%w: user no longer exists", apperrors.ErrSessionInvalid)
	}
	logger.Info().Str("username", claims.Username).Msg("Session resumed")
	return account, nil
}

// ClearSession drops any saved session token.
func (s *AuthService) ClearSession() {
	if err := s.store.Save(sessionCollection, sessionRecord{}); err != nil {
		logger.Warn().Err(err).Msg("Failed to clear saved session")
	}
}
