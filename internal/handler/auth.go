package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/inkpost/inkpost-go/internal/middleware"
	"github.com/inkpost/inkpost-go/internal/model"
	"github.com/inkpost/inkpost-go/internal/service"
)

// AuthHandler handles HTTP requests for registration, login, profile
// and logout.
type AuthHandler struct {
	service *service.AuthService
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(svc *service.AuthService) *AuthHandler {
	return &AuthHandler{service: svc}
}

// HandleRegister handles POST /user/register requests.
func (h *AuthHandler) HandleRegister(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, 1<<20) // 1MB

	var req model.RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		if err.Error() == "http: request body too large" {
			writeJSON(w, http.StatusRequestEntityTooLarge, errorResponse("request body too large"))
			return
		}
		writeJSON(w, http.StatusBadRequest, errorResponse("invalid request body"))
		return
	}

	resp, err := h.service.Register(r.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrUsernameRequired), errors.Is(err, service.ErrPasswordRequired):
			writeJSON(w, http.StatusBadRequest, errorResponse(err.Error()))
		case errors.Is(err, service.ErrUsernameTaken):
			writeJSON(w, http.StatusConflict, errorResponse(err.Error()))
		default:
			slog.Error("register failed", "error", err)
			writeJSON(w, http.StatusInternalServerError, errorResponse("internal server error"))
		}
		return
	}

	setTokenCookie(w, resp.Token)
	writeJSON(w, http.StatusCreated, resp)
}

// HandleLogin handles POST /user/login requests. Wrong credentials
// surface as one generic client error.
func (h *AuthHandler) HandleLogin(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, 1<<20) // 1MB

	var req model.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse("invalid request body"))
		return
	}

	resp, err := h.service.Login(r.Context(), req)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			writeJSON(w, http.StatusBadRequest, errorResponse(err.Error()))
			return
		}
		slog.Error("login failed", "error", err)
		writeJSON(w, http.StatusInternalServerError, errorResponse("internal server error"))
		return
	}

	setTokenCookie(w, resp.Token)
	writeJSON(w, http.StatusOK, resp)
}

// HandleProfile handles GET /user/profile requests. An anonymous caller
// gets a falsy body, not an error.
func (h *AuthHandler) HandleProfile(w http.ResponseWriter, r *http.Request) {
	ident := middleware.IdentityFromContext(r.Context())
	if ident.IsAnonymous() {
		writeJSON(w, http.StatusOK, false)
		return
	}

	writeJSON(w, http.StatusOK, model.ProfileResponse{
		ID:       ident.UserID,
		Username: ident.Username,
	})
}

// HandleLogout handles POST /user/logout requests. Logout only clears
// the client-held cookie; the server keeps no session state, so an
// already-issued token stays valid until its natural expiry.
func (h *AuthHandler) HandleLogout(w http.ResponseWriter, r *http.Request) {
	clearTokenCookie(w)
	writeJSON(w, http.StatusOK, "ok")
}

func setTokenCookie(w http.ResponseWriter, token string) {
	http.SetCookie(w, &http.Cookie{
		Name:     middleware.TokenCookie,
		Value:    token,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}

func clearTokenCookie(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     middleware.TokenCookie,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}
