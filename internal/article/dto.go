package article

// Detail is the single-article response shape. Visit is only populated
// for front-end reads.
type Detail struct {
	Title        string   `json:"title"`
	Body         string   `json:"body"`
	CategoryID   int64    `json:"category_id"`
	CategoryName string   `json:"category_name"`
	Tags         []string `json:"tags"`
	Visit        *int64   `json:"visit,omitempty"`
}

// ListEntry is one row of the article list.
type ListEntry struct {
	ID           int64   `json:"id"`
	Title        string  `json:"title"`
	Excerpt      string  `json:"excerpt"`
	CategoryName string  `json:"category_name"`
	Tags         []int64 `json:"tags"`
	CreatedAt    string  `json:"create_time"`
	UpdatedAt    string  `json:"update_time"`
	Visit        int64   `json:"visit"`
}

type ListResult struct {
	Lists []ListEntry `json:"lists"`
}

// Filters narrows the article list. Back-office filters use ids (0 means
// uncategorized); front filters use names and an optional YYYY-MM month.
type Filters struct {
	CategoryIDs  []int64 `json:"category_ids"`
	TagIDs       []int64 `json:"tag_ids"`
	CategoryName string  `json:"category_name"`
	TagName      string  `json:"tag_name"`
	Month        string  `json:"month"`
}

type CreateDTO struct {
	Title      string   `json:"title"`
	Body       string   `json:"body"`
	CategoryID int64    `json:"category_id"`
	Tags       []string `json:"tags"`
}

type UpdateDTO struct {
	ID         int64    `json:"id"`
	Title      string   `json:"title"`
	Body       string   `json:"body"`
	CategoryID int64    `json:"category_id"`
	Tags       []string `json:"tags"`
}

// ArchiveEntry is one category bucket of the archive.
type ArchiveEntry struct {
	Name  string `json:"name"`
	Count int64  `json:"count"`
}
