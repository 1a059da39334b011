package transport

import (
	"time"

	"github.com/nkarpov/bloghub/internal/models"
)

// UserDTO is the public projection of a user. The password hash never
// leaves the service.
type UserDTO struct {
	ID       uint   `json:"id"`
	Name     string `json:"name"`
	Username string `json:"username"`
	Email    string `json:"email"`
}

func NewUserDTO(u *models.User) *UserDTO {
	return &UserDTO{ID: u.ID, Name: u.Name, Username: u.Username, Email: u.Email}
}

type BlogDTO struct {
	ID      uint   `json:"id"`
	Author  uint   `json:"author"`
	Title   string `json:"title"`
	Content string `json:"content"`
	Photo   string `json:"photo"`
}

func NewBlogDTO(b *models.Blog) *BlogDTO {
	return &BlogDTO{ID: b.ID, Author: b.AuthorID, Title: b.Title, Content: b.Content, Photo: b.PhotoPath}
}

// BlogDetailsDTO is the single-blog view with the author resolved.
type BlogDetailsDTO struct {
	ID         uint      `json:"id"`
	Title      string    `json:"title"`
	Content    string    `json:"content"`
	Photo      string    `json:"photo"`
	CreatedAt  time.Time `json:"created_at"`
	AuthorName string    `json:"author_name"`
	AuthorID   uint      `json:"author_id"`
}

func NewBlogDetailsDTO(b *models.Blog) *BlogDetailsDTO {
	return &BlogDetailsDTO{
		ID:         b.ID,
		Title:      b.Title,
		Content:    b.Content,
		Photo:      b.PhotoPath,
		CreatedAt:  b.CreatedAt,
		AuthorName: b.Author.Username,
		AuthorID:   b.AuthorID,
	}
}

type CommentDTO struct {
	ID         uint      `json:"id"`
	Content    string    `json:"content"`
	CreatedAt  time.Time `json:"created_at"`
	AuthorName string    `json:"author_name"`
}

func NewCommentDTO(c *models.Comment) *CommentDTO {
	return &CommentDTO{ID: c.ID, Content: c.Content, CreatedAt: c.CreatedAt, AuthorName: c.Author.Username}
}

type AuthResponse struct {
	User *UserDTO `json:"user"`
	Auth bool     `json:"auth"`
}
