package repo

import (
	"errors"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/nkarpov/bloghub/internal/models"
)

// TokenRepo stores the single currently valid refresh token per user.
type TokenRepo struct {
	DB *gorm.DB
}

// Put upserts by user id: one row per user, token replaced in place.
// The unique index on user_id makes this safe under concurrent calls.
func (r *TokenRepo) Put(userID uint, token string) error {
	record := models.RefreshToken{UserID: userID, Token: token}
	err := r.DB.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"token", "updated_at"}),
	}).Create(&record).Error
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}

func (r *TokenRepo) FindByUserAndToken(userID uint, token string) (*models.RefreshToken, error) {
	var record models.RefreshToken
	err := r.DB.Where("user_id = ? AND token = ?", userID, token).First(&record).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return &record, nil
}

// DeleteByToken is a no-op when the token is already gone.
func (r *TokenRepo) DeleteByToken(token string) error {
	if err := r.DB.Where("token = ?", token).Delete(&models.RefreshToken{}).Error; err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}
