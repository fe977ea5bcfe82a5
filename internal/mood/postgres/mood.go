package postgres

import (
	"errors"

	"gorm.io/gorm"

	"github.com/arifwid/blog-management/internal"
	moodDatamodel "github.com/arifwid/blog-management/internal/core/datamodel/mood"
	"github.com/arifwid/blog-management/internal/mood"
)

type MoodRepository struct {
	db *gorm.DB
}

func NewMoodRepository(db *gorm.DB) mood.RepositoryAPI {
	return &MoodRepository{db: db}
}

func (r *MoodRepository) Create(content string) error {
	return r.db.Create(&moodDatamodel.Mood{Content: content, IsVisible: true}).Error
}

func (r *MoodRepository) GetByID(id int64) (*moodDatamodel.Mood, error) {
	var record moodDatamodel.Mood
	if err := r.db.
		Where("id = ? AND is_deleted = ?", id, false).
		First(&record).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, internal.ErrRecordNotFound
		}
		return nil, err
	}
	return &record, nil
}

func (r *MoodRepository) SetVisibility(id int64, visible bool) error {
	return r.db.Model(&moodDatamodel.Mood{}).
		Where("id = ?", id).
		Update("is_visible", visible).Error
}

func (r *MoodRepository) SoftDelete(id int64) error {
	return r.db.Model(&moodDatamodel.Mood{}).
		Where("id = ?", id).
		Update("is_deleted", true).Error
}

func (r *MoodRepository) List(visibleOnly bool) ([]moodDatamodel.Mood, error) {
	query := r.db.
		Where("is_deleted = ?", false).
		Order("create_time DESC")
	if visibleOnly {
		query = query.Where("is_visible = ?", true)
	}
	var records []moodDatamodel.Mood
	err := query.Find(&records).Error
	return records, err
}
