package http

import (
	"context"
	"io"
	"net/http"
	"strings"

	"github.com/dmitrijs2005/flowspace/internal/common"
	"github.com/dmitrijs2005/flowspace/internal/imagex"
	"github.com/dmitrijs2005/flowspace/internal/logging"
	"github.com/dmitrijs2005/flowspace/internal/server/models"
)

// ProfileService is the profile-picture surface the handlers need.
// Implemented by services.ProfileService.
type ProfileService interface {
	UploadProfilePicture(ctx context.Context, user *models.User, content []byte, filename string) (string, error)
	GetProfilePicture(ctx context.Context, userID string) (string, error)
	DeleteProfilePicture(ctx context.Context, userID string) error
}

type ProfileHandler struct {
	profiles ProfileService
	logger   logging.Logger
}

func NewProfileHandler(profiles ProfileService, logger logging.Logger) *ProfileHandler {
	return &ProfileHandler{profiles: profiles, logger: logger.With("module", "profile_handler")}
}

type profilePictureResponse struct {
	Message           string  `json:"message,omitempty"`
	ProfilePictureURL *string `json:"profile_picture_url"`
	Username          *string `json:"username"`
	Email             string  `json:"email"`
	Status            string  `json:"status"`
}

func pictureResponse(user *models.User, url, message string) profilePictureResponse {
	resp := profilePictureResponse{
		Message: message,
		Email:   user.Email,
		Status:  "success",
	}
	if url != "" {
		resp.ProfilePictureURL = &url
	}
	if user.Username != "" {
		name := user.Username
		resp.Username = &name
	}
	return resp
}

// Upload serves both POST (initial upload) and PUT (replacement); the flow
// is identical.
func (h *ProfileHandler) Upload(w http.ResponseWriter, r *http.Request) {
	user := userFromContext(r.Context())

	// one extra byte so an oversized body is detected rather than truncated
	if err := r.ParseMultipartForm(imagex.MaxFileSize + 1); err != nil {
		writeError(w, common.ErrorValidation)
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		writeError(w, common.ErrorValidation)
		return
	}
	defer file.Close()

	if ct := header.Header.Get("Content-Type"); !strings.HasPrefix(ct, "image/") {
		writeError(w, common.ErrorValidation)
		return
	}

	content, err := io.ReadAll(io.LimitReader(file, imagex.MaxFileSize+1))
	if err != nil {
		writeError(w, common.ErrorInternal)
		return
	}

	url, err := h.profiles.UploadProfilePicture(r.Context(), user, content, header.Filename)
	if err != nil {
		h.logger.Warn(r.Context(), "profile picture upload failed", "user_id", user.ID, "error", err)
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, pictureResponse(user, url, "Profile picture uploaded successfully"))
}

func (h *ProfileHandler) Get(w http.ResponseWriter, r *http.Request) {
	user := userFromContext(r.Context())

	url, err := h.profiles.GetProfilePicture(r.Context(), user.ID)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, pictureResponse(user, url, ""))
}

func (h *ProfileHandler) Delete(w http.ResponseWriter, r *http.Request) {
	user := userFromContext(r.Context())

	if err := h.profiles.DeleteProfilePicture(r.Context(), user.ID); err != nil {
		h.logger.Warn(r.Context(), "profile picture delete failed", "user_id", user.ID, "error", err)
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, pictureResponse(user, "", "Profile picture deleted successfully"))
}
