package postgres

import (
	"errors"

	"gorm.io/gorm"

	"github.com/arifwid/blog-management/internal"
	tagDatamodel "github.com/arifwid/blog-management/internal/core/datamodel/tag"
	"github.com/arifwid/blog-management/internal/tag"
)

type TagRepository struct {
	db *gorm.DB
}

func NewTagRepository(db *gorm.DB) tag.RepositoryAPI {
	return &TagRepository{db: db}
}

func (r *TagRepository) CreateAll(names []string) ([]tag.Tag, error) {
	records := make([]tagDatamodel.Tag, 0, len(names))
	for _, name := range names {
		records = append(records, tagDatamodel.Tag{Name: name})
	}
	if err := r.db.Create(&records).Error; err != nil {
		return nil, err
	}
	return toDomain(records), nil
}

func (r *TagRepository) GetByName(name string) (*tag.Tag, error) {
	var record tagDatamodel.Tag
	if err := r.db.Where("name = ?", name).First(&record).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, internal.ErrRecordNotFound
		}
		return nil, err
	}
	return &tag.Tag{ID: record.ID, Name: record.Name}, nil
}

func (r *TagRepository) GetByNames(names []string) ([]tag.Tag, error) {
	var records []tagDatamodel.Tag
	if err := r.db.Where("name IN ?", names).Find(&records).Error; err != nil {
		return nil, err
	}
	return toDomain(records), nil
}

func (r *TagRepository) GetByIDs(ids []int64) ([]tag.Tag, error) {
	var records []tagDatamodel.Tag
	if err := r.db.Where("id IN ?", ids).Find(&records).Error; err != nil {
		return nil, err
	}
	return toDomain(records), nil
}

func (r *TagRepository) List() ([]tag.Tag, error) {
	var records []tagDatamodel.Tag
	if err := r.db.Order("id ASC").Find(&records).Error; err != nil {
		return nil, err
	}
	return toDomain(records), nil
}

func toDomain(records []tagDatamodel.Tag) []tag.Tag {
	tags := make([]tag.Tag, 0, len(records))
	for _, record := range records {
		tags = append(tags, tag.Tag{ID: record.ID, Name: record.Name})
	}
	return tags
}
