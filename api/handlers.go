package api

import (
	"context"
	"io"

	"github.com/google/uuid"
	"github.com/rmedina-dev/inkwell-backend/auth"
	"github.com/rmedina-dev/inkwell-backend/database"
	"github.com/rmedina-dev/inkwell-backend/models"
)

// blogStore is the slice of database.BlogRepo the handlers consume.
type blogStore interface {
	FindAll(filter database.BlogFilter) ([]*models.Blog, error)
	FindByID(id uuid.UUID) (*models.Blog, error)
	FindByUserID(userID uuid.UUID) ([]*models.Blog, error)
	Add(blog *models.Blog) error
	UpdateOwned(blog *models.Blog, ownerID uuid.UUID) (bool, error)
	DeleteOwned(id, ownerID uuid.UUID) (bool, error)
}

// userStore is the slice of database.UserRepo the handlers consume.
type userStore interface {
	Add(user *models.User) error
	FindByID(id uuid.UUID) (*models.User, error)
	FindByEmail(email string) (*models.User, error)
}

// imageUploader stores an uploaded image and returns its public URL.
type imageUploader interface {
	Upload(ctx context.Context, key, contentType string, body io.Reader) (string, error)
}

// initializeHandlers creates all handlers organized in a routeHandlers struct
func initializeHandlers(db database.Database, tokens *auth.TokenIssuer, uploader imageUploader, siteURL string) *routeHandlers {
	return &routeHandlers{
		authHandler:    newAuthHandler(db.UserRepo(), tokens),
		blogHandler:    newBlogHandler(db.BlogRepo(), db.UserRepo()),
		sitemapHandler: newSitemapHandler(db.BlogRepo(), siteURL),
		uploadHandler:  newUploadHandler(uploader),
	}
}
