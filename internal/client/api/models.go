package api

import "time"

// UserProfile is the identity the backend reports for a token. Beyond
// display the client treats it as opaque.
type UserProfile struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

// Equal compares profiles by value.
func (u UserProfile) Equal(other UserProfile) bool {
	return u.ID == other.ID && u.Name == other.Name && u.Email == other.Email
}

// BlogSummary is the read-only projection the listing views render.
type BlogSummary struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Content   string    `json:"content"`
	Category  string    `json:"category"`
	Author    string    `json:"author"`
	ImageURL  string    `json:"imageUrl,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
}

// BlogDraft is the payload for creating or updating a post.
type BlogDraft struct {
	Title    string `json:"title"`
	Content  string `json:"content"`
	Category string `json:"category"`
	ImageURL string `json:"imageUrl,omitempty"`
}

// ListFilter narrows a blog listing. Empty fields mean "no filter".
type ListFilter struct {
	Category string
	Author   string
}
