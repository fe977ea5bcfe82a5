package mood

import (
	"log/slog"
	"time"

	"github.com/arifwid/blog-management/internal"
	moodDatamodel "github.com/arifwid/blog-management/internal/core/datamodel/mood"
)

const timeLayout = "2006-01-02 15:04:05"

type RepositoryAPI interface {
	Create(content string) error
	GetByID(id int64) (*moodDatamodel.Mood, error)
	SetVisibility(id int64, visible bool) error
	SoftDelete(id int64) error
	// List returns undeleted moods newest-first. visibleOnly narrows to
	// the ones the front end may show.
	List(visibleOnly bool) ([]moodDatamodel.Mood, error)
}

type Service struct {
	repo   RepositoryAPI
	logger *slog.Logger
}

func NewService(repo RepositoryAPI, logger *slog.Logger) *Service {
	return &Service{repo: repo, logger: logger}
}

func (s *Service) Create(content string) error {
	if content == "" {
		return internal.NewRequiredFieldError("content")
	}
	if len([]rune(content)) > MaxContentLength {
		return internal.ErrContentTooLong
	}
	return s.repo.Create(content)
}

func (s *Service) SetVisibility(id int64, visible bool) error {
	if _, err := s.repo.GetByID(id); err != nil {
		return err
	}
	return s.repo.SetVisibility(id, visible)
}

// Delete marks the mood deleted. The row stays so the record can be
// recovered by hand if needed.
func (s *Service) Delete(id int64) error {
	if _, err := s.repo.GetByID(id); err != nil {
		return err
	}
	return s.repo.SoftDelete(id)
}

func (s *Service) List(visibleOnly bool) ([]Mood, error) {
	records, err := s.repo.List(visibleOnly)
	if err != nil {
		return nil, err
	}
	moods := make([]Mood, 0, len(records))
	for _, record := range records {
		moods = append(moods, Mood{
			ID:        record.ID,
			Content:   record.Content,
			IsVisible: record.IsVisible,
			CreatedAt: record.CreatedAt.Truncate(time.Second).Format(timeLayout),
		})
	}
	return moods, nil
}
