package domain

import "time"

// Blog represents a single blog listing tracked by the service.
type Blog struct {
	ID        string
	Title     string
	Author    string
	URL       string
	Likes     int
	OwnerID   string
	CreatedAt time.Time
	UpdatedAt time.Time
	Owner     *Owner
}

// Owner carries the public identity of the user that created a blog.
type Owner struct {
	ID       string
	Username string
	Name     string
}

// BlogPatch describes a partial update. A nil field is left unchanged,
// so "not supplied" and "set to the zero value" stay distinguishable.
type BlogPatch struct {
	Title  *string
	Author *string
	URL    *string
	Likes  *int
}

// IsEmpty reports whether the patch carries no fields at all.
func (p BlogPatch) IsEmpty() bool {
	return p.Title == nil && p.Author == nil && p.URL == nil && p.Likes == nil
}

// BlogStats aggregates the stored blog list.
type BlogStats struct {
	Blogs      int
	TotalLikes int
	Favorite   *Blog
	TopAuthor  *AuthorCount
}

// AuthorCount pairs an author with the number of blogs they wrote.
type AuthorCount struct {
	Author string
	Blogs  int
}
