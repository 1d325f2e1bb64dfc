package http

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/dmitrijs2005/flowspace/internal/common"
	"github.com/dmitrijs2005/flowspace/internal/logging"
	"github.com/dmitrijs2005/flowspace/internal/server/models"
	"github.com/dmitrijs2005/flowspace/internal/server/services"
)

// UserService is the auth surface the handlers need. Implemented by
// services.UserService.
type UserService interface {
	SignUp(ctx context.Context, username, email, password string) (*services.AuthResult, error)
	SignIn(ctx context.Context, email, password string) (*services.AuthResult, error)
	Identify(ctx context.Context, token string) (*models.User, error)
	Logout(ctx context.Context, token string) error
}

type AuthHandler struct {
	users  UserService
	logger logging.Logger
}

func NewAuthHandler(users UserService, logger logging.Logger) *AuthHandler {
	return &AuthHandler{users: users, logger: logger.With("module", "auth_handler")}
}

type signUpRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type signInRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type userSummary struct {
	ID       string  `json:"id"`
	Username *string `json:"username"`
	Email    string  `json:"email"`
}

type tokenResponse struct {
	AccessToken string      `json:"access_token"`
	TokenType   string      `json:"token_type"`
	User        userSummary `json:"user"`
}

func summarize(u *models.User) userSummary {
	s := userSummary{ID: u.ID, Email: u.Email}
	if u.Username != "" {
		name := u.Username
		s.Username = &name
	}
	return s
}

func (h *AuthHandler) SignUp(w http.ResponseWriter, r *http.Request) {
	var req signUpRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, common.ErrorValidation)
		return
	}

	res, err := h.users.SignUp(r.Context(), req.Username, req.Email, req.Password)
	if err != nil {
		h.logger.Warn(r.Context(), "signup rejected", "error", err)
		writeError(w, err)
		return
	}

	h.logger.Info(r.Context(), "user registered", "email", res.User.Email)
	writeJSON(w, http.StatusOK, tokenResponse{
		AccessToken: res.AccessToken,
		TokenType:   "bearer",
		User:        summarize(res.User),
	})
}

func (h *AuthHandler) SignIn(w http.ResponseWriter, r *http.Request) {
	var req signInRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, common.ErrorValidation)
		return
	}

	res, err := h.users.SignIn(r.Context(), req.Email, req.Password)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, tokenResponse{
		AccessToken: res.AccessToken,
		TokenType:   "bearer",
		User:        summarize(res.User),
	})
}

// Me returns the authenticated user's summary.
func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	user := userFromContext(r.Context())
	writeJSON(w, http.StatusOK, summarize(user))
}

// Logout blacklists the presented token.
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	token := tokenFromContext(r.Context())

	if err := h.users.Logout(r.Context(), token); err != nil {
		h.logger.Error(r.Context(), "logout failed", "error", err)
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
