package httpserver

import (
	"github.com/labstack/echo/v4"

	"github.com/nkarpov/bloghub/internal/handlers"
	authmw "github.com/nkarpov/bloghub/internal/middleware/auth"
)

type Deps struct {
	AuthHandler    *handlers.AuthHandler
	BlogHandler    *handlers.BlogHandler
	CommentHandler *handlers.CommentHandler
	SearchHandler  *handlers.SearchHandler
	Gate           *authmw.Gate
}

func Register(e *echo.Echo, d *Deps) {
	e.GET("/health/live", func(c echo.Context) error { return c.NoContent(200) })
	e.GET("/health/ready", func(c echo.Context) error { return c.NoContent(200) })

	e.Static("/public/images", "public/images")

	e.POST("/register", d.AuthHandler.Register)
	e.POST("/login", d.AuthHandler.Login)
	e.POST("/logout", d.AuthHandler.Logout, d.Gate.RequireLogin)
	e.GET("/refresh", d.AuthHandler.Refresh)

	blog := e.Group("/blog", d.Gate.RequireLogin)
	blog.POST("", d.BlogHandler.Create)
	blog.GET("/all", d.BlogHandler.GetAll)
	blog.GET("/search", d.SearchHandler.Search)
	blog.GET("/:id", d.BlogHandler.GetByID)
	blog.PUT("", d.BlogHandler.Update)
	blog.DELETE("/:id", d.BlogHandler.Delete)

	comment := e.Group("/comment", d.Gate.RequireLogin)
	comment.POST("", d.CommentHandler.Create)
	comment.GET("/:id", d.CommentHandler.GetByBlog)
}
