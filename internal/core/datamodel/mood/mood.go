package mood

import "time"

type Mood struct {
	ID        int64     `gorm:"primaryKey"`
	Content   string    `gorm:"column:content;not null"`
	IsVisible bool      `gorm:"column:is_visible;default:true"`
	IsDeleted bool      `gorm:"column:is_deleted;default:false"`
	CreatedAt time.Time `gorm:"column:create_time;autoCreateTime"`
}

func (Mood) TableName() string { return "moods" }
