package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/flowspace/internal/common"
	"github.com/dmitrijs2005/flowspace/internal/imagex"
	"github.com/dmitrijs2005/flowspace/internal/logging"
	"github.com/dmitrijs2005/flowspace/internal/server/models"
	"github.com/dmitrijs2005/flowspace/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/flowspace/internal/server/storage"
	"github.com/google/uuid"
)

// ObjectStore is the object-storage surface ProfileService needs.
// Implemented by storage.S3Store.
type ObjectStore interface {
	Put(ctx context.Context, key string, content []byte, contentType string) (string, error)
	Delete(ctx context.Context, key string) error
}

const (
	thumbnailMaxWidth  = 400
	thumbnailMaxHeight = 400
)

// ProfileService manages profile pictures: validation, resizing, object
// storage, and the user's stored URL.
type ProfileService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
	store       ObjectStore
	logger      logging.Logger
}

func NewProfileService(db *sql.DB, m repomanager.RepositoryManager, store ObjectStore, logger logging.Logger) *ProfileService {
	return &ProfileService{
		db:          db,
		repomanager: m,
		store:       store,
		logger:      logger.With("module", "profile_service"),
	}
}

// UploadProfilePicture validates and resizes the upload, stores it under a
// fresh key, persists the public URL, and removes the previous object. If
// persisting the URL fails, the just-uploaded object is removed again.
func (s *ProfileService) UploadProfilePicture(ctx context.Context, user *models.User, content []byte, filename string) (string, error) {
	if err := imagex.Validate(content, filename); err != nil {
		return "", fmt.Errorf("%w: %v", common.ErrorValidation, err)
	}

	resized, err := imagex.Thumbnail(content, thumbnailMaxWidth, thumbnailMaxHeight)
	if err != nil {
		return "", fmt.Errorf("%w: %v", common.ErrorValidation, err)
	}

	ext := imagex.Ext(filename)
	key := fmt.Sprintf("%s_%s%s", user.ID, uuid.New(), ext)
	contentType := "image/" + ext[1:]

	url, err := s.store.Put(ctx, key, resized, contentType)
	if err != nil {
		s.logger.Error(ctx, "object upload failed", "key", key, "error", err)
		return "", common.ErrorInternal
	}

	oldURL := user.ProfilePictureURL

	if err := s.repomanager.Users(s.db).UpdateProfilePictureURL(ctx, user.ID, url); err != nil {
		if delErr := s.store.Delete(ctx, key); delErr != nil {
			s.logger.Warn(ctx, "orphaned object left behind", "key", key, "error", delErr)
		}
		return "", common.ErrorInternal
	}

	if oldURL != "" {
		if err := s.store.Delete(ctx, storage.KeyFromURL(oldURL)); err != nil {
			// the new picture is already live; the stale object is the
			// sweep-less kind of garbage we only log
			s.logger.Warn(ctx, "failed to delete previous picture", "url", oldURL, "error", err)
		}
	}

	return url, nil
}

// GetProfilePicture returns the user's current picture URL ("" when unset).
func (s *ProfileService) GetProfilePicture(ctx context.Context, userID string) (string, error) {
	user, err := s.repomanager.Users(s.db).GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return "", common.ErrorNotFound
		}
		return "", common.ErrorInternal
	}
	return user.ProfilePictureURL, nil
}

// DeleteProfilePicture removes the stored object and clears the user's URL.
// ErrorNotFound when the user has no picture.
func (s *ProfileService) DeleteProfilePicture(ctx context.Context, userID string) error {
	user, err := s.repomanager.Users(s.db).GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return common.ErrorNotFound
		}
		return common.ErrorInternal
	}

	if user.ProfilePictureURL == "" {
		return common.ErrorNotFound
	}

	if err := s.store.Delete(ctx, storage.KeyFromURL(user.ProfilePictureURL)); err != nil {
		s.logger.Error(ctx, "object delete failed", "url", user.ProfilePictureURL, "error", err)
		return common.ErrorInternal
	}

	if err := s.repomanager.Users(s.db).UpdateProfilePictureURL(ctx, userID, ""); err != nil {
		return common.ErrorInternal
	}

	return nil
}
