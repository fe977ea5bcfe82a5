package postgres

import (
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/arifwid/blog-management/internal"
	"github.com/arifwid/blog-management/internal/article"
	articleDatamodel "github.com/arifwid/blog-management/internal/core/datamodel/article"
	categoryDatamodel "github.com/arifwid/blog-management/internal/core/datamodel/category"
)

type ArticleRepository struct {
	db *gorm.DB
}

func NewArticleRepository(db *gorm.DB) article.RepositoryAPI {
	return &ArticleRepository{db: db}
}

func (r *ArticleRepository) GetByID(id int64) (*articleDatamodel.Article, error) {
	var record articleDatamodel.Article
	if err := r.db.Where("id = ?", id).First(&record).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, internal.ErrRecordNotFound
		}
		return nil, err
	}
	return &record, nil
}

func (r *ArticleRepository) Create(a *articleDatamodel.Article) error {
	return r.db.Create(a).Error
}

func (r *ArticleRepository) Update(a *articleDatamodel.Article) error {
	return r.db.Model(a).
		Select("title", "body", "excerpt", "category_id", "tags").
		Updates(map[string]any{
			"title":       a.Title,
			"body":        a.Body,
			"excerpt":     a.Excerpt,
			"category_id": a.CategoryID,
			"tags":        a.Tags,
		}).Error
}

func (r *ArticleRepository) Delete(id int64) error {
	return r.db.Delete(&articleDatamodel.Article{}, id).Error
}

func (r *ArticleRepository) List(f article.Filters) ([]article.Row, error) {
	query := r.db.Model(&articleDatamodel.Article{}).
		Select("articles.id", "articles.title", "articles.excerpt",
			"articles.tags", "articles.create_time AS created_at",
			"articles.update_time AS updated_at",
			"categories.name AS category_name").
		Joins("LEFT JOIN categories ON categories.id = articles.category_id").
		Order("articles.update_time DESC")

	if len(f.CategoryIDs) > 0 {
		// Category id 0 stands for the synthetic uncategorized bucket.
		ids := make([]int64, 0, len(f.CategoryIDs))
		uncategorized := false
		for _, id := range f.CategoryIDs {
			if id == 0 {
				uncategorized = true
			} else {
				ids = append(ids, id)
			}
		}
		switch {
		case uncategorized && len(ids) > 0:
			query = query.Where("articles.category_id IN ? OR articles.category_id IS NULL", ids)
		case uncategorized:
			query = query.Where("articles.category_id IS NULL")
		default:
			query = query.Where("articles.category_id IN ?", ids)
		}
	}
	if f.CategoryName != "" {
		if f.CategoryName == article.Uncategorized {
			query = query.Where("articles.category_id IS NULL")
		} else {
			query = query.Where("categories.name = ?", f.CategoryName)
		}
	}
	if f.Month != "" {
		start, err := time.Parse("2006-01", f.Month)
		if err == nil {
			query = query.Where("articles.create_time >= ? AND articles.create_time < ?",
				start, start.AddDate(0, 1, 0))
		}
	}

	var rows []article.Row
	err := query.Scan(&rows).Error
	return rows, err
}

func (r *ArticleRepository) CountByCategory() ([]article.ArchiveEntry, error) {
	var entries []article.ArchiveEntry
	err := r.db.Model(&categoryDatamodel.Category{}).
		Select("categories.name AS name", "COUNT(articles.id) AS count").
		Joins("JOIN articles ON articles.category_id = categories.id").
		Group("categories.id").
		Scan(&entries).Error
	if err != nil {
		return nil, err
	}

	var uncategorized int64
	if err := r.db.Model(&articleDatamodel.Article{}).
		Where("category_id IS NULL").
		Count(&uncategorized).Error; err != nil {
		return nil, err
	}
	if uncategorized > 0 {
		entries = append(entries, article.ArchiveEntry{
			Name:  article.Uncategorized,
			Count: uncategorized,
		})
	}
	return entries, nil
}

func (r *ArticleRepository) AllTagLists() ([]articleDatamodel.TagIDs, error) {
	var rows []articleDatamodel.Article
	if err := r.db.Select("tags").Find(&rows).Error; err != nil {
		return nil, err
	}
	lists := make([]articleDatamodel.TagIDs, 0, len(rows))
	for _, row := range rows {
		lists = append(lists, row.Tags)
	}
	return lists, nil
}
