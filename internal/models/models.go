package models

import (
	"time"
)

type User struct {
	ID           uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	Name         string    `gorm:"not null"                 json:"name"`
	Username     string    `gorm:"uniqueIndex;not null"     json:"username"`
	Email        string    `gorm:"uniqueIndex;not null"     json:"email"`
	PasswordHash string    `gorm:"not null"                 json:"-"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// RefreshToken mirrors the currently valid refresh token of a user.
// user_id is unique: one active token per user, replaced on every
// login and refresh.
type RefreshToken struct {
	ID        uint      `gorm:"primaryKey"           json:"id"`
	UserID    uint      `gorm:"uniqueIndex;not null" json:"user_id"`
	Token     string    `gorm:"not null"             json:"token"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type Blog struct {
	ID        uint      `gorm:"primaryKey"     json:"id"`
	Title     string    `gorm:"not null"       json:"title"`
	Content   string    `gorm:"not null"       json:"content"`
	PhotoPath string    `gorm:"not null"       json:"photo_path"`
	AuthorID  uint      `gorm:"index;not null" json:"author_id"`
	Author    User      `json:"-"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type Comment struct {
	ID        uint      `gorm:"primaryKey"     json:"id"`
	Content   string    `gorm:"not null"       json:"content"`
	BlogID    uint      `gorm:"index;not null" json:"blog_id"`
	AuthorID  uint      `gorm:"index;not null" json:"author_id"`
	Author    User      `json:"-"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
