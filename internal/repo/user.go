package repo

import (
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/nkarpov/bloghub/internal/models"
)

var ErrNotFound = errors.New("record not found")

type UserRepo struct {
	DB *gorm.DB
}

func (r *UserRepo) Create(user *models.User) error {
	if err := r.DB.Create(user).Error; err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}

func (r *UserRepo) ByID(id uint) (*models.User, error) {
	var user models.User
	if err := r.DB.First(&user, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return &user, nil
}

func (r *UserRepo) ByUsername(username string) (*models.User, error) {
	var user models.User
	if err := r.DB.Where("username = ?", username).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return &user, nil
}

func (r *UserRepo) EmailTaken(email string) (bool, error) {
	return r.exists("email = ?", email)
}

func (r *UserRepo) UsernameTaken(username string) (bool, error) {
	return r.exists("username = ?", username)
}

func (r *UserRepo) exists(query string, arg any) (bool, error) {
	var count int64
	if err := r.DB.Model(&models.User{}).Where(query, arg).Count(&count).Error; err != nil {
		return false, fmt.Errorf("db error: %w", err)
	}
	return count > 0, nil
}
