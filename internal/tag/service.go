package tag

import "log/slog"

type Tag struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

type RepositoryAPI interface {
	CreateAll(names []string) ([]Tag, error)
	GetByName(name string) (*Tag, error)
	GetByNames(names []string) ([]Tag, error)
	GetByIDs(ids []int64) ([]Tag, error)
	List() ([]Tag, error)
}

type Service struct {
	repo   RepositoryAPI
	logger *slog.Logger
}

func NewService(repo RepositoryAPI, logger *slog.Logger) *Service {
	return &Service{repo: repo, logger: logger}
}

// ResolveNames maps tag names to ids, creating any tags that do not exist
// yet. The result preserves the input order with duplicates dropped.
func (s *Service) ResolveNames(names []string) ([]int64, error) {
	unique := make([]string, 0, len(names))
	seen := make(map[string]struct{}, len(names))
	for _, name := range names {
		if name == "" {
			continue
		}
		if _, ok := seen[name]; ok {
			continue
		}
		seen[name] = struct{}{}
		unique = append(unique, name)
	}
	if len(unique) == 0 {
		return []int64{}, nil
	}

	existing, err := s.repo.GetByNames(unique)
	if err != nil {
		return nil, err
	}
	byName := make(map[string]int64, len(existing))
	for _, t := range existing {
		byName[t.Name] = t.ID
	}

	var missing []string
	for _, name := range unique {
		if _, ok := byName[name]; !ok {
			missing = append(missing, name)
		}
	}
	if len(missing) > 0 {
		created, err := s.repo.CreateAll(missing)
		if err != nil {
			return nil, err
		}
		for _, t := range created {
			byName[t.Name] = t.ID
		}
	}

	ids := make([]int64, 0, len(unique))
	for _, name := range unique {
		ids = append(ids, byName[name])
	}
	return ids, nil
}

// Names resolves tag ids back to names. Ids of deleted tags are skipped.
func (s *Service) Names(ids []int64) ([]string, error) {
	if len(ids) == 0 {
		return []string{}, nil
	}
	tags, err := s.repo.GetByIDs(ids)
	if err != nil {
		return nil, err
	}
	byID := make(map[int64]string, len(tags))
	for _, t := range tags {
		byID[t.ID] = t.Name
	}
	names := make([]string, 0, len(ids))
	for _, id := range ids {
		if name, ok := byID[id]; ok {
			names = append(names, name)
		}
	}
	return names, nil
}

func (s *Service) IDByName(name string) (int64, error) {
	t, err := s.repo.GetByName(name)
	if err != nil {
		return 0, err
	}
	return t.ID, nil
}

// NameMap returns all tags keyed by id.
func (s *Service) NameMap() (map[int64]string, error) {
	tags, err := s.repo.List()
	if err != nil {
		return nil, err
	}
	m := make(map[int64]string, len(tags))
	for _, t := range tags {
		m[t.ID] = t.Name
	}
	return m, nil
}
