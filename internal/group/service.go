package group

import (
	"log/slog"

	"github.com/arifwid/blog-management/internal"
)

type RepositoryAPI interface {
	Create(name string) error
	Rename(id int64, name string) error
	Delete(id int64) error
	GetByID(id int64) (*Group, error)
	ExistsByName(name string, excludeID int64) (bool, error)
	List() ([]Group, error)

	Members(groupID int64) ([]Member, error)
	RemoveMembers(groupID int64, userIDs []int64) error
	AddMembers(groupID int64, userIDs []int64) error

	PermissionKeys(groupID int64) ([]string, error)
	// ReplacePermissionKeys applies the add/remove delta atomically.
	ReplacePermissionKeys(groupID int64, add, remove []string) error
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
		return internal.ErrDuplicateName.WithMessage("group name already exists")
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
		return internal.ErrDuplicateName.WithMessage("group name already exists")
	}
	return s.repo.Rename(id, name)
}

func (s *Service) Delete(id int64) error {
	if _, err := s.repo.GetByID(id); err != nil {
		return err
	}
	return s.repo.Delete(id)
}

func (s *Service) List() ([]Group, error) {
	return s.repo.List()
}

func (s *Service) Members(groupID int64) ([]Member, error) {
	if _, err := s.repo.GetByID(groupID); err != nil {
		return nil, err
	}
	return s.repo.Members(groupID)
}

// EditMembers removes every current member absent from oldMembers, then
// adds newMembers. The split mirrors what the admin UI sends: the picker's
// remaining selection plus the freshly added ids.
func (s *Service) EditMembers(groupID int64, oldMembers, newMembers []int64) error {
	if _, err := s.repo.GetByID(groupID); err != nil {
		return err
	}

	current, err := s.repo.Members(groupID)
	if err != nil {
		return err
	}

	keep := make(map[int64]struct{}, len(oldMembers))
	for _, id := range oldMembers {
		keep[id] = struct{}{}
	}

	var remove []int64
	for _, m := range current {
		if _, ok := keep[m.ID]; !ok {
			remove = append(remove, m.ID)
		}
	}

	if len(remove) > 0 {
		if err := s.repo.RemoveMembers(groupID, remove); err != nil {
			return err
		}
	}
	if len(newMembers) > 0 {
		if err := s.repo.AddMembers(groupID, newMembers); err != nil {
			return err
		}
	}
	return nil
}

func (s *Service) PermissionKeys(groupID int64) ([]string, error) {
	if _, err := s.repo.GetByID(groupID); err != nil {
		return nil, err
	}
	return s.repo.PermissionKeys(groupID)
}

// EditPermissionKeys reconciles the group's stored key set with the
// checked set from the permission tree: keys to add and keys to delete
// are computed by set difference and applied in one transaction, so two
// concurrent edits can't interleave half-applied deltas.
func (s *Service) EditPermissionKeys(groupID int64, checkedKeys []string) error {
	if _, err := s.repo.GetByID(groupID); err != nil {
		return err
	}

	oldKeys, err := s.repo.PermissionKeys(groupID)
	if err != nil {
		return err
	}

	oldSet := make(map[string]struct{}, len(oldKeys))
	for _, k := range oldKeys {
		oldSet[k] = struct{}{}
	}
	newSet := make(map[string]struct{}, len(checkedKeys))
	for _, k := range checkedKeys {
		newSet[k] = struct{}{}
	}

	var add, remove []string
	for k := range newSet {
		if _, ok := oldSet[k]; !ok {
			add = append(add, k)
		}
	}
	for k := range oldSet {
		if _, ok := newSet[k]; !ok {
			remove = append(remove, k)
		}
	}

	if len(add) == 0 && len(remove) == 0 {
		return nil
	}

	s.logger.Info("editing group permissions",
		"group_id", groupID,
		"add", len(add),
		"remove", len(remove))
	return s.repo.ReplacePermissionKeys(groupID, add, remove)
}
