package category

// Category is one article category. The id 0 entry named "uncategorized"
// is synthetic and never stored.
type Category struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}
