package postgres

import (
	"errors"

	"gorm.io/gorm"

	"github.com/arifwid/blog-management/internal"
	"github.com/arifwid/blog-management/internal/category"
	articleDatamodel "github.com/arifwid/blog-management/internal/core/datamodel/article"
	categoryDatamodel "github.com/arifwid/blog-management/internal/core/datamodel/category"
)

type CategoryRepository struct {
	db *gorm.DB
}

func NewCategoryRepository(db *gorm.DB) category.RepositoryAPI {
	return &CategoryRepository{db: db}
}

func (r *CategoryRepository) Create(name string) error {
	return r.db.Create(&categoryDatamodel.Category{Name: name}).Error
}

func (r *CategoryRepository) Rename(id int64, name string) error {
	return r.db.Model(&categoryDatamodel.Category{}).
		Where("id = ?", id).
		Update("name", name).Error
}

// Delete removes the category and nulls out article references so the
// articles become uncategorized instead of dangling.
func (r *CategoryRepository) Delete(id int64) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&articleDatamodel.Article{}).
			Where("category_id = ?", id).
			Update("category_id", nil).Error; err != nil {
			return err
		}
		return tx.Delete(&categoryDatamodel.Category{}, id).Error
	})
}

func (r *CategoryRepository) GetByID(id int64) (*category.Category, error) {
	var record categoryDatamodel.Category
	if err := r.db.Where("id = ?", id).First(&record).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, internal.ErrRecordNotFound
		}
		return nil, err
	}
	return &category.Category{ID: record.ID, Name: record.Name}, nil
}

func (r *CategoryRepository) ExistsByName(name string, excludeID int64) (bool, error) {
	query := r.db.Model(&categoryDatamodel.Category{}).Where("name = ?", name)
	if excludeID != 0 {
		query = query.Where("id <> ?", excludeID)
	}
	var count int64
	err := query.Count(&count).Error
	return count > 0, err
}

func (r *CategoryRepository) List() ([]category.Category, error) {
	var categories []category.Category
	err := r.db.Model(&categoryDatamodel.Category{}).
		Select("id", "name").
		Order("id ASC").
		Scan(&categories).Error
	return categories, err
}
