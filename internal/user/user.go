package user

import "time"

type User struct {
	ID        int64     `json:"id"`
	Username  string    `json:"username"`
	IsActive  bool      `json:"is_active"`
	LastLogin time.Time `json:"-"`
	CreatedAt time.Time `json:"-"`
}

// ListEntry is the admin list row, with second-precision timestamps
// rendered as strings.
type ListEntry struct {
	ID        int64  `json:"id"`
	Username  string `json:"username"`
	IsActive  bool   `json:"is_active"`
	LastLogin string `json:"last_login"`
	CreatedAt string `json:"create_time"`
}

const timeLayout = "2006-01-02 15:04:05"

func (u *User) ToListEntry() ListEntry {
	return ListEntry{
		ID:        u.ID,
		Username:  u.Username,
		IsActive:  u.IsActive,
		LastLogin: u.LastLogin.Truncate(time.Second).Format(timeLayout),
		CreatedAt: u.CreatedAt.Truncate(time.Second).Format(timeLayout),
	}
}

// SearchEntry is the slim shape used by the group-member picker.
type SearchEntry struct {
	ID       int64  `json:"id"`
	Username string `json:"username"`
}
