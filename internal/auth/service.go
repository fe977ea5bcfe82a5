package auth

import (
	"errors"
	"log/slog"
	"time"

	"github.com/arifwid/blog-management/internal"
)

type ServiceAPI interface {
	Login(dto LoginDTO) (string, error)
	UserByID(id int64) (*User, error)
	PermissionKeys(userID int64) ([]string, error)
}

// Service performs login and user/key resolution for the gate and the
// menu endpoint.
type Service struct {
	repo   RepositoryAPI
	codec  *TokenCodec
	logger *slog.Logger
}

func NewService(repo RepositoryAPI, codec *TokenCodec, logger *slog.Logger) *Service {
	return &Service{
		repo:   repo,
		codec:  codec,
		logger: logger,
	}
}

// Login verifies the credentials and issues a signed token. Digests are
// compared, never plaintext. A frozen account fails even with the right
// password.
func (s *Service) Login(dto LoginDTO) (string, error) {
	if err := dto.Validate(); err != nil {
		return "", err
	}

	user, err := s.repo.GetByUsername(dto.Username)
	if err != nil {
		if errors.Is(err, internal.ErrRecordNotFound) {
			return "", internal.ErrBadCredentials
		}
		s.logger.Error("failed to load user for login", "username", dto.Username, "error", err)
		return "", internal.NewInternalError("load user", err)
	}
	if user.Password != Digest(dto.Password) {
		return "", internal.ErrBadCredentials
	}
	if !user.IsActive {
		return "", internal.ErrUserFrozen
	}

	token, err := s.codec.Issue(user.ID, user.Username)
	if err != nil {
		return "", internal.NewInternalError("issue token", err)
	}

	if err := s.repo.UpdateLastLogin(user.ID, time.Now()); err != nil {
		// Login still succeeds; the stamp is best effort.
		s.logger.Warn("failed to update last login", "user_id", user.ID, "error", err)
	}
	return token, nil
}

func (s *Service) UserByID(id int64) (*User, error) {
	return s.repo.GetByID(id)
}

func (s *Service) PermissionKeys(userID int64) ([]string, error) {
	return s.repo.PermissionKeys(userID)
}
