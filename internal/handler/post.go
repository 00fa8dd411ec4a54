package handler

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/inkpost/inkpost-go/internal/metrics"
	"github.com/inkpost/inkpost-go/internal/middleware"
	"github.com/inkpost/inkpost-go/internal/model"
	"github.com/inkpost/inkpost-go/internal/service"
	"github.com/inkpost/inkpost-go/internal/storage"
)

const maxUploadBytes = 10 << 20 // 10MB

// PostHandler handles HTTP requests for post operations.
type PostHandler struct {
	service *service.PostService
	uploads *storage.DiskStore
}

// NewPostHandler creates a new PostHandler.
func NewPostHandler(svc *service.PostService, uploads *storage.DiskStore) *PostHandler {
	return &PostHandler{service: svc, uploads: uploads}
}

// HandleCreate handles POST /post/newpost requests: multipart form with
// title/summary/content fields and an optional "file" cover attachment.
// Any author field the client sends is never read; authorship comes
// from the token identity alone.
func (h *PostHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	ident := middleware.IdentityFromContext(r.Context())
	if ident.IsAnonymous() {
		writeJSON(w, http.StatusUnauthorized, errorResponse("not authorized"))
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, maxUploadBytes)
	if err := r.ParseMultipartForm(4 << 20); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse("invalid multipart form"))
		return
	}

	// The cover must be fully stored before any post row is written:
	// a post never references an unfinished upload.
	coverRef, err := h.saveCover(r)
	if err != nil {
		slog.Error("cover upload failed", "error", err)
		writeJSON(w, http.StatusInternalServerError, errorResponse("internal server error"))
		return
	}

	req := model.PostRequest{
		Title:   r.FormValue("title"),
		Summary: r.FormValue("summary"),
		Content: r.FormValue("content"),
	}

	resp, err := h.service.Create(r.Context(), ident, req, coverRef)
	if err != nil {
		if errors.Is(err, service.ErrNotAuthorized) {
			writeJSON(w, http.StatusUnauthorized, errorResponse("not authorized"))
			return
		}
		slog.Error("create post failed", "error", err)
		writeJSON(w, http.StatusInternalServerError, errorResponse("internal server error"))
		return
	}

	writeJSON(w, http.StatusCreated, resp)
}

// HandleUpdate handles PUT /post/update requests: multipart form with
// id/title/summary/content fields and an optional "file" attachment
// replacing the cover. A caller who does not own the post gets the same
// generic denial as one who is not logged in.
func (h *PostHandler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	ident := middleware.IdentityFromContext(r.Context())

	r.Body = http.MaxBytesReader(w, r.Body, maxUploadBytes)
	if err := r.ParseMultipartForm(4 << 20); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse("invalid multipart form"))
		return
	}

	postID := r.FormValue("id")
	if postID == "" || len(postID) > 36 {
		writeJSON(w, http.StatusBadRequest, errorResponse("invalid post id"))
		return
	}

	coverRef, err := h.saveCover(r)
	if err != nil {
		slog.Error("cover upload failed", "error", err)
		writeJSON(w, http.StatusInternalServerError, errorResponse("internal server error"))
		return
	}

	req := model.PostRequest{
		Title:   r.FormValue("title"),
		Summary: r.FormValue("summary"),
		Content: r.FormValue("content"),
	}

	resp, err := h.service.Update(r.Context(), ident, postID, req, coverRef)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrPostNotFound):
			writeJSON(w, http.StatusNotFound, errorResponse(err.Error()))
		case errors.Is(err, service.ErrNotAuthorized):
			writeJSON(w, http.StatusUnauthorized, errorResponse("not authorized"))
		default:
			slog.Error("update post failed", "error", err)
			writeJSON(w, http.StatusInternalServerError, errorResponse("internal server error"))
		}
		return
	}

	writeJSON(w, http.StatusOK, resp)
}

// HandleGet handles GET /post/{id} requests. Public.
func (h *PostHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" || len(id) > 36 {
		writeJSON(w, http.StatusBadRequest, errorResponse("invalid post id"))
		return
	}

	resp, err := h.service.Get(r.Context(), id)
	if err != nil {
		if errors.Is(err, service.ErrPostNotFound) {
			writeJSON(w, http.StatusNotFound, errorResponse(err.Error()))
			return
		}
		slog.Error("get post failed", "error", err)
		writeJSON(w, http.StatusInternalServerError, errorResponse("internal server error"))
		return
	}

	writeJSON(w, http.StatusOK, resp)
}

// HandleList handles GET /allposts requests: the newest posts first,
// capped at the fixed feed window. Public.
func (h *PostHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	posts, err := h.service.ListRecent(r.Context(), service.FeedLimit)
	if err != nil {
		slog.Error("list posts failed", "error", err)
		writeJSON(w, http.StatusInternalServerError, errorResponse("internal server error"))
		return
	}

	if posts == nil {
		posts = []model.PostResponse{}
	}
	writeJSON(w, http.StatusOK, posts)
}

// saveCover stores the optional "file" attachment and returns its
// storage reference, or "" when no file was attached.
func (h *PostHandler) saveCover(r *http.Request) (string, error) {
	file, header, err := r.FormFile("file")
	if errors.Is(err, http.ErrMissingFile) {
		return "", nil
	}
	if err != nil {
		return "", err
	}
	defer file.Close()

	ref, err := h.uploads.Save(file, header.Filename)
	if err != nil {
		return "", err
	}
	metrics.UploadsStored.Inc()

	return ref, nil
}
