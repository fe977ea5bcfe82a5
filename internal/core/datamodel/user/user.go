package user

import "time"

type User struct {
	ID        int64     `gorm:"primaryKey"`
	Username  string    `gorm:"column:username;uniqueIndex;not null"`
	Password  string    `gorm:"column:password;not null"`
	IsActive  bool      `gorm:"column:is_active;default:true"`
	IsAdmin   bool      `gorm:"column:is_admin;default:false"`
	LastLogin time.Time `gorm:"column:last_login"`
	CreatedAt time.Time `gorm:"column:create_time;autoCreateTime"`
}

func (User) TableName() string { return "users" }

type Group struct {
	ID   int64  `gorm:"primaryKey"`
	Name string `gorm:"column:name;uniqueIndex;not null"`
}

func (Group) TableName() string { return "groups" }

// UserGroup links users to groups.
type UserGroup struct {
	ID      int64 `gorm:"primaryKey"`
	UserID  int64 `gorm:"column:user_id;uniqueIndex:idx_user_groups_user_group;not null"`
	GroupID int64 `gorm:"column:group_id;uniqueIndex:idx_user_groups_user_group;not null"`
}

func (UserGroup) TableName() string { return "user_groups" }

// Permission is one operation key granted to a group. Names are opaque
// strings matched against the authority configuration's key values.
type Permission struct {
	ID      int64  `gorm:"primaryKey"`
	GroupID int64  `gorm:"column:group_id;index;not null"`
	Name    string `gorm:"column:name;not null"`
}

func (Permission) TableName() string { return "permissions" }
