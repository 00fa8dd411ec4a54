package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/inkpost/inkpost-go/internal/model"
)

var ErrPostNotFound = errors.New("post not found")

// PostRepository handles post persistence operations.
type PostRepository struct {
	db *sql.DB
}

// NewPostRepository creates a new PostRepository.
func NewPostRepository(db *sql.DB) *PostRepository {
	return &PostRepository{db: db}
}

const postColumns = `p.id, p.title, p.summary, p.content, p.cover, p.author_id,
		u.username, p.created_at, p.updated_at`

// Create inserts a new post.
func (r *PostRepository) Create(ctx context.Context, post *model.Post) error {
	query := `INSERT INTO posts (id, title, summary, content, cover, author_id) VALUES (?, ?, ?, ?, ?, ?)`

	_, err := r.db.ExecContext(ctx, query,
		post.ID, post.Title, post.Summary, post.Content, post.Cover, post.AuthorID,
	)
	return err
}

// GetByID retrieves a post by ID, joined with the author's public username.
func (r *PostRepository) GetByID(ctx context.Context, id string) (*model.Post, error) {
	query := `SELECT ` + postColumns + `
		FROM posts p JOIN users u ON u.id = p.author_id
		WHERE p.id = ?`

	post := &model.Post{}
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&post.ID, &post.Title, &post.Summary, &post.Content, &post.Cover,
		&post.AuthorID, &post.AuthorName, &post.CreatedAt, &post.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrPostNotFound
		}
		return nil, err
	}

	return post, nil
}

// Update replaces the editable fields of a post. Concurrent authorized
// updates to the same post are last-write-wins; author_id is never touched.
func (r *PostRepository) Update(ctx context.Context, post *model.Post) error {
	query := `UPDATE posts SET title = ?, summary = ?, content = ?, cover = ? WHERE id = ?`

	result, err := r.db.ExecContext(ctx, query,
		post.Title, post.Summary, post.Content, post.Cover, post.ID,
	)
	if err != nil {
		return err
	}

	// RowsAffected is zero both for a missing row and for a no-op write,
	// so existence is checked by the read that precedes the update.
	_, err = result.RowsAffected()
	return err
}

// ListRecent retrieves the most recently created posts, newest first,
// bounded to limit.
func (r *PostRepository) ListRecent(ctx context.Context, limit int) ([]model.Post, error) {
	query := `SELECT ` + postColumns + `
		FROM posts p JOIN users u ON u.id = p.author_id
		ORDER BY p.created_at DESC LIMIT ?`

	rows, err := r.db.QueryContext(ctx, query, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var posts []model.Post
	for rows.Next() {
		var p model.Post
		if err := rows.Scan(
			&p.ID, &p.Title, &p.Summary, &p.Content, &p.Cover,
			&p.AuthorID, &p.AuthorName, &p.CreatedAt, &p.UpdatedAt,
		); err != nil {
			return nil, err
		}
		posts = append(posts, p)
	}

	return posts, rows.Err()
}
