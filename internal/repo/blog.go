package repo

import (
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/nkarpov/bloghub/internal/models"
)

type BlogRepo struct {
	DB *gorm.DB
}

func (r *BlogRepo) Create(blog *models.Blog) error {
	if err := r.DB.Create(blog).Error; err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}

func (r *BlogRepo) All() ([]models.Blog, error) {
	var blogs []models.Blog
	if err := r.DB.Find(&blogs).Error; err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return blogs, nil
}

// ByID loads the blog together with its author for the details view.
func (r *BlogRepo) ByID(id uint) (*models.Blog, error) {
	var blog models.Blog
	if err := r.DB.Preload("Author").First(&blog, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return &blog, nil
}

func (r *BlogRepo) Update(id uint, updates map[string]any) error {
	if err := r.DB.Model(&models.Blog{}).Where("id = ?", id).Updates(updates).Error; err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}

// Delete removes the blog and every comment attached to it.
func (r *BlogRepo) Delete(id uint) error {
	return r.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Delete(&models.Blog{}, id).Error; err != nil {
			return fmt.Errorf("db error: %w", err)
		}
		if err := tx.Where("blog_id = ?", id).Delete(&models.Comment{}).Error; err != nil {
			return fmt.Errorf("db error: %w", err)
		}
		return nil
	})
}
