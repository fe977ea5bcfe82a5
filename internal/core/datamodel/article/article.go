package article

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"
)

// TagIDs is the JSON-encoded list of tag ids stored on the article row.
type TagIDs []int64

func (t TagIDs) Value() (driver.Value, error) {
	if t == nil {
		t = TagIDs{}
	}
	return json.Marshal(t)
}

func (t *TagIDs) Scan(value interface{}) error {
	switch v := value.(type) {
	case []byte:
		return json.Unmarshal(v, t)
	case string:
		return json.Unmarshal([]byte(v), t)
	case nil:
		*t = TagIDs{}
		return nil
	default:
		return fmt.Errorf("unsupported tags column type %T", value)
	}
}

type Article struct {
	ID         int64     `gorm:"primaryKey"`
	Title      string    `gorm:"column:title;not null"`
	Body       string    `gorm:"column:body;not null"`
	Excerpt    string    `gorm:"column:excerpt"`
	CategoryID *int64    `gorm:"column:category_id"`
	Tags       TagIDs    `gorm:"column:tags;type:jsonb"`
	CreatedAt  time.Time `gorm:"column:create_time;autoCreateTime"`
	UpdatedAt  time.Time `gorm:"column:update_time;autoUpdateTime"`
}

func (Article) TableName() string { return "articles" }
