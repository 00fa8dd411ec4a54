package model

import "time"

// Post represents a published post in the database. AuthorID is set once
// at creation, from the verified identity of the caller, and is never
// reassigned.
type Post struct {
	ID         string
	Title      string
	Summary    string
	Content    string
	Cover      string // storage reference for the cover image, empty if none
	AuthorID   string
	AuthorName string // joined from users at query time, public username only
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// PostRequest carries the client-editable fields of a post. It
// deliberately has no author field: authorship comes only from the
// caller's verified token identity.
type PostRequest struct {
	Title   string
	Summary string
	Content string
}

// PostResponse represents a post in API responses.
type PostResponse struct {
	ID        string     `json:"id"`
	Title     string     `json:"title"`
	Summary   string     `json:"summary"`
	Content   string     `json:"content"`
	Cover     string     `json:"cover,omitempty"`
	Author    PostAuthor `json:"author"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
}

// PostAuthor exposes only the author's public fields.
type PostAuthor struct {
	ID       string `json:"id"`
	Username string `json:"username"`
}
