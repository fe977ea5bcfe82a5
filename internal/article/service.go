package article

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"time"

	"github.com/arifwid/blog-management/internal"
	articleDatamodel "github.com/arifwid/blog-management/internal/core/datamodel/article"
)

// Uncategorized is the display name of the synthetic zero category.
const Uncategorized = "uncategorized"

const timeLayout = "2006-01-02 15:04:05"

// Row is one article joined with its category name for listing.
type Row struct {
	ID           int64
	Title        string
	Excerpt      string
	CategoryName *string
	Tags         articleDatamodel.TagIDs
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

type RepositoryAPI interface {
	GetByID(id int64) (*articleDatamodel.Article, error)
	Create(a *articleDatamodel.Article) error
	Update(a *articleDatamodel.Article) error
	Delete(id int64) error
	// List applies category and month filters in the query, ordered by
	// update time descending. Tag filters are applied by the service.
	List(f Filters) ([]Row, error)
	CountByCategory() ([]ArchiveEntry, error)
	AllTagLists() ([]articleDatamodel.TagIDs, error)
}

// TagResolverAPI is what the article service needs from the tag module.
type TagResolverAPI interface {
	// ResolveNames maps tag names to ids, creating missing tags in bulk.
	ResolveNames(names []string) ([]int64, error)
	Names(ids []int64) ([]string, error)
	IDByName(name string) (int64, error)
	NameMap() (map[int64]string, error)
}

// CategoryResolverAPI is what the article service needs from categories.
type CategoryResolverAPI interface {
	NameByID(id int64) (string, error)
	Exists(id int64) (bool, error)
}

type Service struct {
	repo       RepositoryAPI
	tags       TagResolverAPI
	categories CategoryResolverAPI
	visits     VisitCounter
	logger     *slog.Logger
}

func NewService(repo RepositoryAPI, tags TagResolverAPI, categories CategoryResolverAPI, visits VisitCounter, logger *slog.Logger) *Service {
	return &Service{
		repo:       repo,
		tags:       tags,
		categories: categories,
		visits:     visits,
		logger:     logger,
	}
}

// Get returns one article. A front-end read also bumps and reports the
// visit count.
func (s *Service) Get(ctx context.Context, id int64, front bool) (*Detail, error) {
	a, err := s.repo.GetByID(id)
	if err != nil {
		return nil, err
	}

	tagNames, err := s.tags.Names([]int64(a.Tags))
	if err != nil {
		return nil, err
	}
	if tagNames == nil {
		tagNames = []string{}
	}

	detail := &Detail{
		Title:        a.Title,
		Body:         a.Body,
		CategoryName: Uncategorized,
		Tags:         tagNames,
	}
	if a.CategoryID != nil {
		name, err := s.categories.NameByID(*a.CategoryID)
		if err == nil {
			detail.CategoryID = *a.CategoryID
			detail.CategoryName = name
		}
	}

	if front {
		visit, err := s.visits.Incr(ctx, id)
		if err != nil {
			s.logger.Warn("failed to bump visit count", "article_id", id, "error", err)
		} else {
			detail.Visit = &visit
		}
	}
	return detail, nil
}

// Create stores a new article and returns its id so the author can keep
// editing. A missing or unknown category leaves the article uncategorized.
func (s *Service) Create(dto CreateDTO) (int64, error) {
	if dto.Title == "" {
		return 0, internal.NewRequiredFieldError("title")
	}
	if dto.Body == "" {
		return 0, internal.NewRequiredFieldError("body")
	}

	categoryID, err := s.resolveCategory(dto.CategoryID)
	if err != nil {
		return 0, err
	}
	tagIDs, err := s.tags.ResolveNames(dto.Tags)
	if err != nil {
		return 0, err
	}

	a := &articleDatamodel.Article{
		Title:      dto.Title,
		Body:       dto.Body,
		Excerpt:    Excerpt(dto.Body),
		CategoryID: categoryID,
		Tags:       articleDatamodel.TagIDs(tagIDs),
	}
	if err := s.repo.Create(a); err != nil {
		return 0, err
	}
	return a.ID, nil
}

func (s *Service) Update(dto UpdateDTO) error {
	if dto.ID == 0 {
		return internal.NewRequiredFieldError("id")
	}
	if dto.Title == "" {
		return internal.NewRequiredFieldError("title")
	}
	if dto.Body == "" {
		return internal.NewRequiredFieldError("body")
	}

	a, err := s.repo.GetByID(dto.ID)
	if err != nil {
		return err
	}

	categoryID, err := s.resolveCategory(dto.CategoryID)
	if err != nil {
		return err
	}
	tagIDs, err := s.tags.ResolveNames(dto.Tags)
	if err != nil {
		return err
	}

	a.Title = dto.Title
	a.Body = dto.Body
	a.Excerpt = Excerpt(dto.Body)
	a.CategoryID = categoryID
	a.Tags = articleDatamodel.TagIDs(tagIDs)
	return s.repo.Update(a)
}

// Delete removes the article and drops its visit counter.
func (s *Service) Delete(ctx context.Context, id int64) error {
	if _, err := s.repo.GetByID(id); err != nil {
		return err
	}
	if err := s.repo.Delete(id); err != nil {
		return err
	}
	if err := s.visits.Forget(ctx, id); err != nil {
		s.logger.Warn("failed to clear visit count", "article_id", id, "error", err)
	}
	return nil
}

// List returns filtered articles newest-first with visit counts attached.
// filtersJSON is the raw filters query parameter; empty means no filters.
func (s *Service) List(ctx context.Context, filtersJSON string) (*ListResult, error) {
	var filters Filters
	if filtersJSON != "" {
		if err := json.Unmarshal([]byte(filtersJSON), &filters); err != nil {
			return nil, internal.NewValidationError("filters must be valid JSON")
		}
	}

	if filters.Month != "" {
		if _, err := time.Parse("2006-01", filters.Month); err != nil {
			return &ListResult{Lists: []ListEntry{}}, nil
		}
	}

	tagFilter, err := s.tagFilterIDs(filters)
	if err != nil {
		return nil, err
	}

	rows, err := s.repo.List(filters)
	if err != nil {
		return nil, err
	}
	rows = filterByTags(rows, tagFilter)

	ids := make([]int64, len(rows))
	for i, row := range rows {
		ids[i] = row.ID
	}
	visits, err := s.visits.Counts(ctx, ids)
	if err != nil {
		s.logger.Warn("failed to read visit counts", "error", err)
		visits = make([]int64, len(rows))
	}

	entries := make([]ListEntry, 0, len(rows))
	for i, row := range rows {
		categoryName := Uncategorized
		if row.CategoryName != nil {
			categoryName = *row.CategoryName
		}
		tags := []int64(row.Tags)
		if tags == nil {
			tags = []int64{}
		}
		entries = append(entries, ListEntry{
			ID:           row.ID,
			Title:        row.Title,
			Excerpt:      row.Excerpt,
			CategoryName: categoryName,
			Tags:         tags,
			CreatedAt:    row.CreatedAt.Truncate(time.Second).Format(timeLayout),
			UpdatedAt:    row.UpdatedAt.Truncate(time.Second).Format(timeLayout),
			Visit:        visits[i],
		})
	}
	return &ListResult{Lists: entries}, nil
}

// ArchiveByCategory counts articles per category name.
func (s *Service) ArchiveByCategory() ([]ArchiveEntry, error) {
	return s.repo.CountByCategory()
}

// ArchiveByTag counts how many articles use each tag, as
// [[name, count], ...] pairs for the front-end tag cloud.
func (s *Service) ArchiveByTag() ([][]any, error) {
	tagLists, err := s.repo.AllTagLists()
	if err != nil {
		return nil, err
	}

	usage := make(map[int64]int64)
	for _, tags := range tagLists {
		for _, id := range tags {
			usage[id]++
		}
	}

	names, err := s.tags.NameMap()
	if err != nil {
		return nil, err
	}

	pairs := make([][]any, 0, len(usage))
	for id, count := range usage {
		if name, ok := names[id]; ok {
			pairs = append(pairs, []any{name, count})
		}
	}
	return pairs, nil
}

// resolveCategory maps a requested category id to a nullable reference:
// zero or unknown ids mean uncategorized.
func (s *Service) resolveCategory(categoryID int64) (*int64, error) {
	if categoryID == 0 {
		return nil, nil
	}
	exists, err := s.categories.Exists(categoryID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, nil
	}
	return &categoryID, nil
}

// tagFilterIDs merges the id filter with the resolved name filter.
func (s *Service) tagFilterIDs(filters Filters) ([]int64, error) {
	ids := filters.TagIDs
	if filters.TagName != "" {
		id, err := s.tags.IDByName(filters.TagName)
		if errors.Is(err, internal.ErrRecordNotFound) {
			// Unknown tag names match nothing.
			return []int64{-1}, nil
		}
		if err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, nil
}

// filterByTags keeps rows using at least one of the wanted tags.
func filterByTags(rows []Row, tagIDs []int64) []Row {
	if len(tagIDs) == 0 {
		return rows
	}
	wanted := make(map[int64]struct{}, len(tagIDs))
	for _, id := range tagIDs {
		wanted[id] = struct{}{}
	}

	filtered := rows[:0]
	for _, row := range rows {
		for _, id := range row.Tags {
			if _, ok := wanted[id]; ok {
				filtered = append(filtered, row)
				break
			}
		}
	}
	return filtered
}
