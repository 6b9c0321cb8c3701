package blogs

import "time"

type Blog struct {
	ID         string
	Title      string
	Content    string
	Category   string
	AuthorID   string
	AuthorName string
	ImageURL   string
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// ListFilter narrows a listing. Empty fields match everything. Author is
// a case-insensitive substring of the author's display name.
type ListFilter struct {
	Category string
	Author   string
}

// Categories a blog post may belong to.
var Categories = []string{"Career", "Finance", "Travel", "Technology", "Health", "Other"}

func ValidCategory(c string) bool {
	for _, cat := range Categories {
		if cat == c {
			return true
		}
	}
	return false
}
