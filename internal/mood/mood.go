package mood

// MaxContentLength caps a mood entry in runes.
const MaxContentLength = 120

type Mood struct {
	ID        int64  `json:"id"`
	Content   string `json:"content"`
	IsVisible bool   `json:"is_visible"`
	CreatedAt string `json:"create_time"`
}
