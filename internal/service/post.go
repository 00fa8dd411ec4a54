package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/inkpost/inkpost-go/internal/auth"
	"github.com/inkpost/inkpost-go/internal/metrics"
	"github.com/inkpost/inkpost-go/internal/model"
	"github.com/inkpost/inkpost-go/internal/repository"
)

var (
	// ErrNotAuthorized covers both an anonymous caller and a wrong
	// owner. The two are indistinguishable on purpose, so a probe
	// cannot confirm who owns a post.
	ErrNotAuthorized = errors.New("not authorized")
	ErrPostNotFound  = errors.New("post not found")
)

// FeedLimit is the fixed public feed window.
const FeedLimit = 20

// PostStore is the persistence surface the post service needs.
type PostStore interface {
	Create(ctx context.Context, post *model.Post) error
	GetByID(ctx context.Context, id string) (*model.Post, error)
	Update(ctx context.Context, post *model.Post) error
	ListRecent(ctx context.Context, limit int) ([]model.Post, error)
}

// PostService orchestrates post creation and mutation, gating every
// write on the authorization guard.
type PostService struct {
	posts PostStore
	guard *auth.Guard
}

// NewPostService creates a new PostService.
func NewPostService(posts PostStore, guard *auth.Guard) *PostService {
	return &PostService{posts: posts, guard: guard}
}

// Create persists a new post authored by the caller. The author is
// taken exclusively from the verified identity; there is no way for the
// request to supply one.
func (s *PostService) Create(ctx context.Context, ident auth.Identity, req model.PostRequest, coverRef string) (model.PostResponse, error) {
	if ident.IsAnonymous() {
		return model.PostResponse{}, ErrNotAuthorized
	}

	now := time.Now().UTC()
	post := &model.Post{
		ID:         uuid.NewString(),
		Title:      req.Title,
		Summary:    req.Summary,
		Content:    req.Content,
		Cover:      coverRef,
		AuthorID:   ident.UserID,
		AuthorName: ident.Username,
		CreatedAt:  now,
		UpdatedAt:  now,
	}

	if err := s.posts.Create(ctx, post); err != nil {
		return model.PostResponse{}, err
	}
	metrics.PostsCreated.Inc()

	return postToResponse(post), nil
}

// Update replaces the editable fields of a post. The ownership check
// happens strictly before any write: a denied caller mutates nothing.
// Title, summary and content are replaced unconditionally; the cover is
// replaced only when a new upload reference was supplied.
func (s *PostService) Update(ctx context.Context, ident auth.Identity, postID string, req model.PostRequest, newCoverRef string) (model.PostResponse, error) {
	existing, err := s.posts.GetByID(ctx, postID)
	if err != nil {
		if errors.Is(err, repository.ErrPostNotFound) {
			return model.PostResponse{}, ErrPostNotFound
		}
		return model.PostResponse{}, err
	}

	if !s.guard.AuthorizeMutation(ident, existing.AuthorID) {
		return model.PostResponse{}, ErrNotAuthorized
	}

	updated := *existing
	updated.Title = req.Title
	updated.Summary = req.Summary
	updated.Content = req.Content
	if newCoverRef != "" {
		updated.Cover = newCoverRef
	}
	updated.UpdatedAt = time.Now().UTC()

	if err := s.posts.Update(ctx, &updated); err != nil {
		return model.PostResponse{}, err
	}
	metrics.PostsUpdated.Inc()

	return postToResponse(&updated), nil
}

// Get retrieves a single post. Public, no authorization gate.
func (s *PostService) Get(ctx context.Context, id string) (model.PostResponse, error) {
	post, err := s.posts.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrPostNotFound) {
			return model.PostResponse{}, ErrPostNotFound
		}
		return model.PostResponse{}, err
	}

	return postToResponse(post), nil
}

// ListRecent retrieves the newest posts, most recent first, bounded to
// limit. Public, no authorization gate.
func (s *PostService) ListRecent(ctx context.Context, limit int) ([]model.PostResponse, error) {
	if limit <= 0 || limit > FeedLimit {
		limit = FeedLimit
	}

	posts, err := s.posts.ListRecent(ctx, limit)
	if err != nil {
		return nil, err
	}

	result := make([]model.PostResponse, len(posts))
	for i := range posts {
		result[i] = postToResponse(&posts[i])
	}
	return result, nil
}

func postToResponse(p *model.Post) model.PostResponse {
	return model.PostResponse{
		ID:      p.ID,
		Title:   p.Title,
		Summary: p.Summary,
		Content: p.Content,
		Cover:   p.Cover,
		Author: model.PostAuthor{
			ID:       p.AuthorID,
			Username: p.AuthorName,
		},
		CreatedAt: p.CreatedAt,
		UpdatedAt: p.UpdatedAt,
	}
}
