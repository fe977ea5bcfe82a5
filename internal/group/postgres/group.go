package postgres

import (
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/arifwid/blog-management/internal"
	userDatamodel "github.com/arifwid/blog-management/internal/core/datamodel/user"
	"github.com/arifwid/blog-management/internal/group"
)

type GroupRepository struct {
	db *gorm.DB
}

func NewGroupRepository(db *gorm.DB) group.RepositoryAPI {
	return &GroupRepository{db: db}
}

func (r *GroupRepository) Create(name string) error {
	return r.db.Create(&userDatamodel.Group{Name: name}).Error
}

func (r *GroupRepository) Rename(id int64, name string) error {
	return r.db.Model(&userDatamodel.Group{}).
		Where("id = ?", id).
		Update("name", name).Error
}

// Delete removes the group, orphan-cleans its permission rows and
// detaches its members.
func (r *GroupRepository) Delete(id int64) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("group_id = ?", id).Delete(&userDatamodel.Permission{}).Error; err != nil {
			return err
		}
		if err := tx.Where("group_id = ?", id).Delete(&userDatamodel.UserGroup{}).Error; err != nil {
			return err
		}
		return tx.Delete(&userDatamodel.Group{}, id).Error
	})
}

func (r *GroupRepository) GetByID(id int64) (*group.Group, error) {
	var record userDatamodel.Group
	if err := r.db.Where("id = ?", id).First(&record).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, internal.ErrRecordNotFound
		}
		return nil, err
	}
	return &group.Group{ID: record.ID, Name: record.Name}, nil
}

func (r *GroupRepository) ExistsByName(name string, excludeID int64) (bool, error) {
	query := r.db.Model(&userDatamodel.Group{}).Where("name = ?", name)
	if excludeID != 0 {
		query = query.Where("id <> ?", excludeID)
	}
	var count int64
	err := query.Count(&count).Error
	return count > 0, err
}

func (r *GroupRepository) List() ([]group.Group, error) {
	var groups []group.Group
	err := r.db.Model(&userDatamodel.Group{}).
		Select("id", "name").
		Order("id ASC").
		Scan(&groups).Error
	return groups, err
}

func (r *GroupRepository) Members(groupID int64) ([]group.Member, error) {
	var members []group.Member
	err := r.db.Model(&userDatamodel.User{}).
		Select("users.id", "users.username").
		Joins("JOIN user_groups ON user_groups.user_id = users.id").
		Where("user_groups.group_id = ?", groupID).
		Scan(&members).Error
	return members, err
}

func (r *GroupRepository) RemoveMembers(groupID int64, userIDs []int64) error {
	return r.db.
		Where("group_id = ? AND user_id IN ?", groupID, userIDs).
		Delete(&userDatamodel.UserGroup{}).Error
}

func (r *GroupRepository) AddMembers(groupID int64, userIDs []int64) error {
	links := make([]userDatamodel.UserGroup, 0, len(userIDs))
	for _, uid := range userIDs {
		links = append(links, userDatamodel.UserGroup{UserID: uid, GroupID: groupID})
	}
	// Re-adding an existing member is a no-op, the link is unique.
	return r.db.Clauses(clause.OnConflict{DoNothing: true}).Create(&links).Error
}

func (r *GroupRepository) PermissionKeys(groupID int64) ([]string, error) {
	var keys []string
	err := r.db.Model(&userDatamodel.Permission{}).
		Where("group_id = ?", groupID).
		Pluck("name", &keys).Error
	return keys, err
}

// ReplacePermissionKeys applies the computed delta inside one transaction
// so concurrent edits to the same group serialize instead of losing rows.
func (r *GroupRepository) ReplacePermissionKeys(groupID int64, add, remove []string) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if len(remove) > 0 {
			if err := tx.
				Where("group_id = ? AND name IN ?", groupID, remove).
				Delete(&userDatamodel.Permission{}).Error; err != nil {
				return err
			}
		}
		if len(add) > 0 {
			rows := make([]userDatamodel.Permission, 0, len(add))
			for _, key := range add {
				rows = append(rows, userDatamodel.Permission{GroupID: groupID, Name: key})
			}
			if err := tx.Create(&rows).Error; err != nil {
				return err
			}
		}
		return nil
	})
}
