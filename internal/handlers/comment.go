package handlers

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/nkarpov/bloghub/internal/events"
	"github.com/nkarpov/bloghub/internal/logging"
	"github.com/nkarpov/bloghub/internal/models"
	"github.com/nkarpov/bloghub/internal/repo"
	"github.com/nkarpov/bloghub/internal/transport"
)

type CommentHandler struct {
	Comments *repo.CommentRepo
	Producer *events.Producer
}

func (h *CommentHandler) Create(c echo.Context) error {
	var req struct {
		Content string `json:"content"`
		Blog    uint   `json:"blog"`
	}
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if req.Content == "" || req.Blog == 0 {
		return echo.NewHTTPError(http.StatusBadRequest, "content and blog are required")
	}

	authorID, _ := c.Get("userID").(uint)

	comment := models.Comment{Content: req.Content, BlogID: req.Blog, AuthorID: authorID}
	if err := h.Comments.Create(&comment); err != nil {
		return err
	}

	ctx := c.Request().Context()
	payload := map[string]any{"type": "comment_created", "comment_id": comment.ID, "blog_id": req.Blog, "author_id": authorID}
	if err := h.Producer.PublishEvent(ctx, strconv.FormatUint(uint64(req.Blog), 10), payload); err != nil {
		logging.FromContext(ctx).Warn("event not published", "type", "comment_created", "error", err)
	}

	return c.JSON(http.StatusOK, echo.Map{"message": "comment created successfully"})
}

// GetByBlog lists the comments of one blog, author names resolved.
func (h *CommentHandler) GetByBlog(c echo.Context) error {
	blogID, err := parseID(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid blog id")
	}

	comments, err := h.Comments.ByBlog(blogID)
	if err != nil {
		return err
	}

	dtos := make([]*transport.CommentDTO, 0, len(comments))
	for i := range comments {
		dtos = append(dtos, transport.NewCommentDTO(&comments[i]))
	}
	return c.JSON(http.StatusOK, echo.Map{
		"totalComments": len(dtos),
		"data":          dtos,
	})
}
