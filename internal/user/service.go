package user

import (
	"log/slog"

	"github.com/arifwid/blog-management/internal"
	"github.com/arifwid/blog-management/internal/auth"
)

type RepositoryAPI interface {
	Create(username, passwordDigest string) error
	ExistsByUsername(username string) (bool, error)
	GetByUsername(username string) (*User, error)
	GetByID(id int64) (*User, error)
	UpdatePassword(username, passwordDigest string) error
	UpdateActive(id int64, active bool) error
	Delete(id int64) error
	List() ([]*User, error)
	SearchByName(fuzzyName string) ([]SearchEntry, error)
}

type Service struct {
	repo   RepositoryAPI
	logger *slog.Logger
}

func NewService(repo RepositoryAPI, logger *slog.Logger) *Service {
	return &Service{repo: repo, logger: logger}
}

// Register creates a new account. Usernames are unique; the password is
// stored as its digest.
func (s *Service) Register(username, password string) error {
	exists, err := s.repo.ExistsByUsername(username)
	if err != nil {
		return err
	}
	if exists {
		return internal.ErrDuplicateName.WithMessage("username already exists")
	}
	return s.repo.Create(username, auth.Digest(password))
}

func (s *Service) ChangePassword(username, password string) error {
	if _, err := s.repo.GetByUsername(username); err != nil {
		return err
	}
	return s.repo.UpdatePassword(username, auth.Digest(password))
}

// SetValidity activates or freezes an account.
func (s *Service) SetValidity(id int64, active bool) error {
	user, err := s.repo.GetByID(id)
	if err != nil {
		return err
	}
	if user.IsActive == active {
		return nil
	}
	return s.repo.UpdateActive(id, active)
}

func (s *Service) Delete(id int64) error {
	if _, err := s.repo.GetByID(id); err != nil {
		return err
	}
	return s.repo.Delete(id)
}

func (s *Service) List() ([]ListEntry, error) {
	users, err := s.repo.List()
	if err != nil {
		return nil, err
	}
	entries := make([]ListEntry, 0, len(users))
	for _, u := range users {
		entries = append(entries, u.ToListEntry())
	}
	return entries, nil
}

func (s *Service) Search(fuzzyName string) ([]SearchEntry, error) {
	return s.repo.SearchByName(fuzzyName)
}
