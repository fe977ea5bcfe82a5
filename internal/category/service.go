package category

import (
	"errors"
	"log/slog"

	"github.com/arifwid/blog-management/internal"
	"github.com/arifwid/blog-management/internal/article"
)

type RepositoryAPI interface {
	Create(name string) error
	Rename(id int64, name string) error
	Delete(id int64) error
	GetByID(id int64) (*Category, error)
	ExistsByName(name string, excludeID int64) (bool, error)
	List() ([]Category, error)
}

type Service struct {
	repo   RepositoryAPI
	logger *slog.Logger
}

func NewService(repo RepositoryAPI, logger *slog.Logger) *Service {
	return &Service{repo: repo, logger: logger}
}

func (s *Service) Create(name string) error {
	exists, err := s.repo.ExistsByName(name, 0)
	if err != nil {
		return err
	}
	if exists {
		return internal.ErrDuplicateName.WithMessage("category name already exists")
	}
	return s.repo.Create(name)
}

func (s *Service) Rename(id int64, name string) error {
	if _, err := s.repo.GetByID(id); err != nil {
		return err
	}
	exists, err := s.repo.ExistsByName(name, id)
	if err != nil {
		return err
	}
	if exists {
		return internal.ErrDuplicateName.WithMessage("category name already exists")
	}
	return s.repo.Rename(id, name)
}

// Delete removes the category. Articles referencing it fall back to
// uncategorized through the nullable foreign key.
func (s *Service) Delete(id int64) error {
	if _, err := s.repo.GetByID(id); err != nil {
		return err
	}
	return s.repo.Delete(id)
}

// List returns all categories with the synthetic uncategorized entry
// prepended.
func (s *Service) List() ([]Category, error) {
	categories, err := s.repo.List()
	if err != nil {
		return nil, err
	}
	return append([]Category{{ID: 0, Name: article.Uncategorized}}, categories...), nil
}

// NameByID and Exists let the article module resolve its category
// references without importing this package's repository.
func (s *Service) NameByID(id int64) (string, error) {
	c, err := s.repo.GetByID(id)
	if err != nil {
		return "", err
	}
	return c.Name, nil
}

func (s *Service) Exists(id int64) (bool, error) {
	_, err := s.repo.GetByID(id)
	if errors.Is(err, internal.ErrRecordNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}
