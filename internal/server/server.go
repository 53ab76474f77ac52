package server

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/emilythestrangee/blogicum/backend/internal/auth"
	"github.com/emilythestrangee/blogicum/backend/internal/blog"
	"github.com/emilythestrangee/blogicum/backend/internal/config"
	"github.com/emilythestrangee/blogicum/backend/internal/database"
	"github.com/emilythestrangee/blogicum/backend/internal/handlers"
	"github.com/emilythestrangee/blogicum/backend/internal/logging"
	"github.com/emilythestrangee/blogicum/backend/internal/metrics"
	"github.com/emilythestrangee/blogicum/backend/internal/store"
)

type Server struct {
	cfg     *config.Config
	db      database.Service
	tokens  *auth.Tokens
	handler *handlers.Handler
	metrics *metrics.Metrics
	logger  *slog.Logger
}

// New wires the repositories, policy service and handlers together.
func New(cfg *config.Config, db database.Service, logger *slog.Logger, opts ...blog.Option) *Server {
	repos := store.New(db.GetDB())
	svc := blog.NewService(repos, cfg.PostsPerPage, append([]blog.Option{blog.WithLogger(logger)}, opts...)...)
	tokens := auth.NewTokens(cfg.JWTSecret, cfg.SessionTTL)

	return &Server{
		cfg:     cfg,
		db:      db,
		tokens:  tokens,
		handler: handlers.NewHandler(svc, repos.Users, tokens, logger),
		metrics: metrics.New(),
		logger:  logger,
	}
}

// HTTPServer creates the configured http.Server
func (s *Server) HTTPServer() *http.Server {
	return &http.Server{
		Addr:         "0.0.0.0:" + s.cfg.Port,
		Handler:      s.RegisterRoutes(),
		IdleTimeout:  time.Minute,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
	}
}

// RegisterRoutes sets up all application routes
func (s *Server) RegisterRoutes() *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(logging.Middleware(s.logger))
	r.Use(s.metrics.Middleware())

	// CORS configuration
	r.Use(cors.New(cors.Config{
		AllowOrigins:     s.cfg.CORSOrigins,
		AllowMethods:     []string{"GET", "POST", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Accept", "Authorization", "Content-Type", "X-Requested-With"},
		ExposeHeaders:    []string{"Content-Length", logging.RequestIDHeader},
		AllowCredentials: !allowsAny(s.cfg.CORSOrigins),
		MaxAge:           12 * time.Hour,
	}))

	r.Use(auth.Middleware(s.tokens))

	r.GET("/health", func(c *gin.Context) {
		stats := s.db.Health(c.Request.Context())
		status := http.StatusOK
		if stats["status"] != "up" {
			status = http.StatusServiceUnavailable
		}
		c.JSON(status, stats)
	})
	r.GET("/metrics", gin.WrapH(s.metrics.Handler()))

	h := s.handler

	// Public reads
	r.GET("/", h.Post.Index)
	r.GET("/category/:slug/", h.Category.CategoryPosts)
	r.GET("/profile/:username/", h.User.GetUserProfile)
	r.GET("/posts/:id/", h.Post.GetPost)

	pages := r.Group("/pages")
	{
		pages.GET("/about/", h.Pages.Page("about"))
		pages.GET("/rules/", h.Pages.Page("rules"))
	}

	// Auth routes
	authRoutes := r.Group("/auth")
	{
		authRoutes.GET("/registration/", h.Auth.RegisterForm)
		authRoutes.POST("/registration/", h.Auth.Register)
		authRoutes.GET("/login/", h.Auth.LoginForm)
		authRoutes.POST("/login/", h.Auth.Login)
		authRoutes.POST("/logout/", h.Auth.Logout)
	}

	// Protected routes (authentication required)
	protected := r.Group("")
	protected.Use(auth.RequireLogin())
	{
		protected.GET("/auth/me/", h.Auth.Me)
		protected.GET("/edit_profile/", h.User.EditProfileForm)
		protected.POST("/edit_profile/", h.User.UpdateUserProfile)

		protected.GET("/posts/create/", h.Post.NewPostForm)
		protected.POST("/posts/create/", h.Post.CreatePost)
		protected.GET("/posts/:id/edit/", h.Post.EditPostForm)
		protected.POST("/posts/:id/edit/", h.Post.UpdatePost)
		protected.GET("/posts/:id/delete/", h.Post.DeletePostForm)
		protected.POST("/posts/:id/delete/", h.Post.DeletePost)
		protected.DELETE("/posts/:id/delete/", h.Post.DeletePost)

		protected.GET("/posts/:id/comment/", h.Comment.CommentForm)
		protected.POST("/posts/:id/comment/", h.Comment.CreateComment)
		protected.GET("/posts/:id/edit_comment/:comment_id/", h.Comment.EditCommentForm)
		protected.POST("/posts/:id/edit_comment/:comment_id/", h.Comment.UpdateComment)
		protected.GET("/posts/:id/delete_comment/:comment_id/", h.Comment.DeleteCommentForm)
		protected.POST("/posts/:id/delete_comment/:comment_id/", h.Comment.DeleteComment)
		protected.DELETE("/posts/:id/delete_comment/:comment_id/", h.Comment.DeleteComment)
	}

	return r
}

func allowsAny(origins []string) bool {
	for _, o := range origins {
		if o == "*" {
			return true
		}
	}
	return false
}
