package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"github.com/nkarpov/bloghub/internal/config"
	"github.com/nkarpov/bloghub/internal/es"
	"github.com/nkarpov/bloghub/internal/events"
	"github.com/nkarpov/bloghub/internal/handlers"
	"github.com/nkarpov/bloghub/internal/httperr"
	"github.com/nkarpov/bloghub/internal/httpserver"
	"github.com/nkarpov/bloghub/internal/logging"
	authmw "github.com/nkarpov/bloghub/internal/middleware/auth"
	loggingmw "github.com/nkarpov/bloghub/internal/middleware/logging"
	"github.com/nkarpov/bloghub/internal/repo"
	"github.com/nkarpov/bloghub/internal/service"
	"github.com/nkarpov/bloghub/internal/storage"
	"github.com/nkarpov/bloghub/internal/tokens"
)

const blogIndex = "blog"

func main() {
	configuration, err := config.LoadConfig()
	if err != nil {
		log.Fatal(err)
	}

	logger := logging.New(configuration.LOG_LEVEL)

	db, err := config.InitDB(configuration)
	if err != nil {
		log.Fatalf("database init: %v", err)
	}

	var prod *events.Producer
	if configuration.KAFKA_ADDRESS != "" {
		prod = events.NewProducer([]string{configuration.KAFKA_ADDRESS}, "blog_events")
	}

	codec := tokens.NewCodec(
		[]byte(configuration.ACCESS_TOKEN_SECRET),
		[]byte(configuration.REFRESH_TOKEN_SECRET),
	)

	users := &repo.UserRepo{DB: db}
	tokenRepo := &repo.TokenRepo{DB: db}
	blogs := &repo.BlogRepo{DB: db}
	comments := &repo.CommentRepo{DB: db}

	images := &storage.ImageStore{Dir: "public/images", BaseURL: configuration.BACKEND_SERVER_PATH}

	e := echo.New()
	e.HideBanner = true
	e.HTTPErrorHandler = httperr.Handler
	e.Pre(middleware.RemoveTrailingSlash())
	e.Use(middleware.Recover(), middleware.RequestID(), loggingmw.RequestLogger(logger))

	deps := httpserver.Deps{
		AuthHandler: &handlers.AuthHandler{
			Auth:     &service.AuthService{Users: users, Tokens: tokenRepo, Codec: codec},
			Producer: prod,
		},
		BlogHandler:    &handlers.BlogHandler{Blogs: blogs, Images: images, Index: blogIndex, Producer: prod},
		CommentHandler: &handlers.CommentHandler{Comments: comments, Producer: prod},
		SearchHandler:  &handlers.SearchHandler{Index: blogIndex},
		Gate:           &authmw.Gate{Codec: codec, Users: users},
	}

	if configuration.ES_URL != "" {
		client, err := es.NewClient(configuration)
		if err != nil {
			log.Fatalf("elasticsearch init: %v", err)
		}
		deps.BlogHandler.ES = client
		deps.SearchHandler.ES = client
	}

	httpserver.Register(e, &deps)

	srv := &http.Server{
		Addr:         ":" + configuration.PORT,
		Handler:      e,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Info("listening", "port", configuration.PORT)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("http server error", "error", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("server shutdown error", "error", err)
	}

	if sqlDB, err := db.DB(); err == nil {
		if err := sqlDB.Close(); err != nil {
			logger.Error("db close error", "error", err)
		}
	}

	if err := prod.Close(); err != nil {
		logger.Error("kafka close error", "error", err)
	}

	logger.Info("shutdown complete")
}
