package postgres

import (
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/arifwid/blog-management/internal"
	"github.com/arifwid/blog-management/internal/auth"
	userDatamodel "github.com/arifwid/blog-management/internal/core/datamodel/user"
)

type Repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

func (r *Repository) GetByUsername(username string) (*auth.User, error) {
	var record userDatamodel.User
	if err := r.db.Where("username = ?", username).First(&record).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, internal.ErrRecordNotFound
		}
		return nil, err
	}
	return toDomain(&record), nil
}

func (r *Repository) GetByID(id int64) (*auth.User, error) {
	var record userDatamodel.User
	if err := r.db.Where("id = ?", id).First(&record).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, internal.ErrRecordNotFound
		}
		return nil, err
	}
	return toDomain(&record), nil
}

// PermissionKeys returns the union of permission names across all groups
// the user belongs to. Computed fresh on every call.
func (r *Repository) PermissionKeys(userID int64) ([]string, error) {
	rows, err := r.db.
		Model(&userDatamodel.Permission{}).
		Distinct("permissions.name").
		Joins("JOIN user_groups ON user_groups.group_id = permissions.group_id").
		Where("user_groups.user_id = ?", userID).
		Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var keys []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, err
		}
		keys = append(keys, name)
	}
	return keys, rows.Err()
}

func (r *Repository) UpdateLastLogin(userID int64, at time.Time) error {
	return r.db.
		Model(&userDatamodel.User{}).
		Where("id = ?", userID).
		Update("last_login", at).Error
}

func toDomain(record *userDatamodel.User) *auth.User {
	return &auth.User{
		ID:        record.ID,
		Username:  record.Username,
		Password:  record.Password,
		IsActive:  record.IsActive,
		IsAdmin:   record.IsAdmin,
		LastLogin: record.LastLogin,
		CreatedAt: record.CreatedAt,
	}
}
