package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/elastic/go-elasticsearch/v9"
	"github.com/labstack/echo/v4"

	"github.com/nkarpov/bloghub/internal/events"
	"github.com/nkarpov/bloghub/internal/logging"
	"github.com/nkarpov/bloghub/internal/models"
	"github.com/nkarpov/bloghub/internal/repo"
	"github.com/nkarpov/bloghub/internal/search"
	"github.com/nkarpov/bloghub/internal/storage"
	"github.com/nkarpov/bloghub/internal/transport"
)

type BlogHandler struct {
	Blogs    *repo.BlogRepo
	Images   *storage.ImageStore
	ES       *elasticsearch.Client
	Index    string
	Producer *events.Producer
}

func (h *BlogHandler) Create(c echo.Context) error {
	var req struct {
		Title   string `json:"title"`
		Content string `json:"content"`
		Photo   string `json:"photo"`
	}
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if req.Title == "" || req.Content == "" || req.Photo == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "title, content and photo are required")
	}

	authorID, _ := c.Get("userID").(uint)

	photoURL, err := h.Images.Save(req.Photo, authorID)
	if err != nil {
		return err
	}

	blog := models.Blog{
		Title:     req.Title,
		Content:   req.Content,
		PhotoPath: photoURL,
		AuthorID:  authorID,
	}
	if err := h.Blogs.Create(&blog); err != nil {
		return err
	}

	h.index(c, &blog)
	h.publish(c, "blog_created", blog.ID, authorID)

	return c.JSON(http.StatusCreated, echo.Map{"blog": transport.NewBlogDTO(&blog)})
}

func (h *BlogHandler) GetAll(c echo.Context) error {
	blogs, err := h.Blogs.All()
	if err != nil {
		return err
	}

	dtos := make([]*transport.BlogDTO, 0, len(blogs))
	for i := range blogs {
		dtos = append(dtos, transport.NewBlogDTO(&blogs[i]))
	}
	return c.JSON(http.StatusOK, echo.Map{
		"totalBlogs": len(dtos),
		"blogs":      dtos,
	})
}

func (h *BlogHandler) GetByID(c echo.Context) error {
	id, err := parseID(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid blog id")
	}

	blog, err := h.Blogs.ByID(id)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "blog not found")
		}
		return err
	}
	return c.JSON(http.StatusOK, echo.Map{"blog": transport.NewBlogDetailsDTO(blog)})
}

func (h *BlogHandler) Update(c echo.Context) error {
	var req struct {
		BlogID  uint   `json:"blogId"`
		Title   string `json:"title"`
		Content string `json:"content"`
		Photo   string `json:"photo"`
	}
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if req.BlogID == 0 {
		return echo.NewHTTPError(http.StatusBadRequest, "blogId is required")
	}

	blog, err := h.Blogs.ByID(req.BlogID)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "blog not found")
		}
		return err
	}

	updates := map[string]any{}
	if req.Title != "" {
		updates["title"] = req.Title
		blog.Title = req.Title
	}
	if req.Content != "" {
		updates["content"] = req.Content
		blog.Content = req.Content
	}
	if req.Photo != "" {
		if err := h.Images.Delete(blog.PhotoPath); err != nil {
			return err
		}
		photoURL, err := h.Images.Save(req.Photo, blog.AuthorID)
		if err != nil {
			return err
		}
		updates["photo_path"] = photoURL
	}

	if len(updates) > 0 {
		if err := h.Blogs.Update(req.BlogID, updates); err != nil {
			return err
		}
	}

	h.index(c, blog)
	h.publish(c, "blog_updated", blog.ID, blog.AuthorID)

	return c.JSON(http.StatusOK, echo.Map{"message": "blog updated successfully"})
}

func (h *BlogHandler) Delete(c echo.Context) error {
	id, err := parseID(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid blog id")
	}

	if err := h.Blogs.Delete(id); err != nil {
		return err
	}

	if h.ES != nil {
		ctx := c.Request().Context()
		if err := search.DeleteBlog(ctx, h.ES, h.Index, id); err != nil {
			logging.FromContext(ctx).Warn("blog not removed from index", "blog_id", id, "error", err)
		}
	}
	h.publish(c, "blog_deleted", id, 0)

	return c.JSON(http.StatusOK, echo.Map{"message": "blog deleted successfully"})
}

func (h *BlogHandler) index(c echo.Context, blog *models.Blog) {
	if h.ES == nil {
		return
	}
	ctx := c.Request().Context()
	if err := search.IndexBlog(ctx, h.ES, h.Index, blog); err != nil {
		logging.FromContext(ctx).Warn("blog not indexed", "blog_id", blog.ID, "error", err)
	}
}

func (h *BlogHandler) publish(c echo.Context, event string, blogID, authorID uint) {
	ctx := c.Request().Context()
	payload := map[string]any{"type": event, "blog_id": blogID, "author_id": authorID}
	if err := h.Producer.PublishEvent(ctx, strconv.FormatUint(uint64(blogID), 10), payload); err != nil {
		logging.FromContext(ctx).Warn("event not published", "type", event, "error", err)
	}
}

func parseID(raw string) (uint, error) {
	id, err := strconv.ParseUint(raw, 10, 64)
	if err != nil || id == 0 {
		return 0, errors.New("invalid id")
	}
	return uint(id), nil
}
