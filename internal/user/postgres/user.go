package postgres

import (
	"errors"

	"gorm.io/gorm"

	"github.com/arifwid/blog-management/internal"
	userDatamodel "github.com/arifwid/blog-management/internal/core/datamodel/user"
	"github.com/arifwid/blog-management/internal/user"
)

type UserRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) user.RepositoryAPI {
	return &UserRepository{db: db}
}

func (r *UserRepository) Create(username, passwordDigest string) error {
	return r.db.Create(&userDatamodel.User{
		Username: username,
		Password: passwordDigest,
		IsActive: true,
	}).Error
}

func (r *UserRepository) ExistsByUsername(username string) (bool, error) {
	var count int64
	err := r.db.Model(&userDatamodel.User{}).Where("username = ?", username).Count(&count).Error
	return count > 0, err
}

func (r *UserRepository) GetByUsername(username string) (*user.User, error) {
	var record userDatamodel.User
	if err := r.db.Where("username = ?", username).First(&record).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, internal.ErrRecordNotFound
		}
		return nil, err
	}
	return toDomain(&record), nil
}

func (r *UserRepository) GetByID(id int64) (*user.User, error) {
	var record userDatamodel.User
	if err := r.db.Where("id = ?", id).First(&record).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, internal.ErrRecordNotFound
		}
		return nil, err
	}
	return toDomain(&record), nil
}

func (r *UserRepository) UpdatePassword(username, passwordDigest string) error {
	return r.db.Model(&userDatamodel.User{}).
		Where("username = ?", username).
		Update("password", passwordDigest).Error
}

func (r *UserRepository) UpdateActive(id int64, active bool) error {
	return r.db.Model(&userDatamodel.User{}).
		Where("id = ?", id).
		Update("is_active", active).Error
}

// Delete removes the account and its group memberships. Nothing else
// cascades.
func (r *UserRepository) Delete(id int64) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("user_id = ?", id).Delete(&userDatamodel.UserGroup{}).Error; err != nil {
			return err
		}
		return tx.Delete(&userDatamodel.User{}, id).Error
	})
}

func (r *UserRepository) List() ([]*user.User, error) {
	var records []userDatamodel.User
	if err := r.db.Order("id ASC").Find(&records).Error; err != nil {
		return nil, err
	}
	users := make([]*user.User, 0, len(records))
	for i := range records {
		users = append(users, toDomain(&records[i]))
	}
	return users, nil
}

func (r *UserRepository) SearchByName(fuzzyName string) ([]user.SearchEntry, error) {
	var entries []user.SearchEntry
	err := r.db.Model(&userDatamodel.User{}).
		Select("id", "username").
		Where("username LIKE ?", "%"+fuzzyName+"%").
		Scan(&entries).Error
	return entries, err
}

func toDomain(record *userDatamodel.User) *user.User {
	return &user.User{
		ID:        record.ID,
		Username:  record.Username,
		IsActive:  record.IsActive,
		LastLogin: record.LastLogin,
		CreatedAt: record.CreatedAt,
	}
}
