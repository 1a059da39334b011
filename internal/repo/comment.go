package repo

import (
	"fmt"

	"gorm.io/gorm"

	"github.com/nkarpov/bloghub/internal/models"
)

type CommentRepo struct {
	DB *gorm.DB
}

func (r *CommentRepo) Create(comment *models.Comment) error {
	if err := r.DB.Create(comment).Error; err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}

func (r *CommentRepo) ByBlog(blogID uint) ([]models.Comment, error) {
	var comments []models.Comment
	if err := r.DB.Preload("Author").Where("blog_id = ?", blogID).Find(&comments).Error; err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return comments, nil
}
