package users

import (
	"context"

	"github.com/dmitrijs2005/flowspace/internal/server/models"
)

type Repository interface {
	Create(ctx context.Context, user *models.User) (*models.User, error)
	GetByID(ctx context.Context, id string) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	GetByUsername(ctx context.Context, username string) (*models.User, error)
	UpdateProfilePictureURL(ctx context.Context, id string, url string) error
	Delete(ctx context.Context, id string) error
}
