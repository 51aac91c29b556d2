package database

import (
	"errors"

	"github.com/google/uuid"
	"github.com/rmedina-dev/inkwell-backend/models"
	"gorm.io/gorm"
)

// BlogFilter narrows FindAll results. Category is an exact match; Author is
// a case-insensitive substring match against the denormalized author name.
type BlogFilter struct {
	Category string
	Author   string
}

type BlogRepo struct {
	db *gorm.DB
}

func NewBlogRepo(db *gorm.DB) *BlogRepo {
	return &BlogRepo{db}
}

// FindAll returns matching blogs ordered by creation time descending.
func (r *BlogRepo) FindAll(filter BlogFilter) ([]*models.Blog, error) {
	q := r.db.Order("created_at DESC")
	if filter.Category != "" {
		q = q.Where("category = ?", filter.Category)
	}
	if filter.Author != "" {
		q = q.Where("author ILIKE ?", "%"+filter.Author+"%")
	}

	var blogs []*models.Blog
	err := q.Find(&blogs).Error
	return blogs, err
}

// FindByID returns the blog with the given id, or nil when no such blog
// exists.
func (r *BlogRepo) FindByID(id uuid.UUID) (*models.Blog, error) {
	var blog models.Blog
	err := r.db.First(&blog, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &blog, nil
}

// FindByUserID returns every blog owned by userID, newest first.
func (r *BlogRepo) FindByUserID(userID uuid.UUID) ([]*models.Blog, error) {
	var blogs []*models.Blog
	err := r.db.Where("user_id = ?", userID).Order("created_at DESC").Find(&blogs).Error
	return blogs, err
}

// Add inserts a new blog.
func (r *BlogRepo) Add(blog *models.Blog) error {
	if blog.ID == uuid.Nil {
		blog.ID = uuid.New()
	}
	return r.db.Create(blog).Error
}

// UpdateOwned writes the mutable blog fields in a single conditional UPDATE
// guarded by both id and owner, so the ownership check and the write cannot
// race. Returns false when no row matched.
func (r *BlogRepo) UpdateOwned(blog *models.Blog, ownerID uuid.UUID) (bool, error) {
	res := r.db.Model(&models.Blog{}).
		Where("id = ? AND user_id = ?", blog.ID, ownerID).
		Updates(map[string]interface{}{
			"title":      blog.Title,
			"category":   blog.Category,
			"content":    blog.Content,
			"image":      blog.Image,
			"updated_at": blog.UpdatedAt,
		})
	return res.RowsAffected > 0, res.Error
}

// DeleteOwned hard-deletes the blog, guarded by both id and owner. Returns
// false when no row matched.
func (r *BlogRepo) DeleteOwned(id, ownerID uuid.UUID) (bool, error) {
	res := r.db.Where("id = ? AND user_id = ?", id, ownerID).Delete(&models.Blog{})
	return res.RowsAffected > 0, res.Error
}
