package http

import (
	"fmt"
	"time"

	"github.com/gin-gonic/gin"

	appsvc "gopher-blog/internal/app"
	"gopher-blog/internal/bootstrap"
	"gopher-blog/internal/feed"
	"gopher-blog/internal/repository"
	"gopher-blog/internal/session"
	"gopher-blog/internal/transport/http/handler"
	"gopher-blog/internal/transport/http/middleware"
	"gopher-blog/internal/transport/http/view"
)

func NewRouter(app *bootstrap.App) (*gin.Engine, error) {
	cfg := app.Config
	gin.SetMode(cfg.App.GinMode)
	router := gin.New()

	renderer, err := view.NewRenderer()
	if err != nil {
		return nil, fmt.Errorf("load templates failed: %w", err)
	}
	router.HTMLRender = renderer

	userRepo := repository.NewUserRepository(app.DB)
	postRepo := repository.NewPostRepository(app.DB)
	sessions := session.NewManager(
		app.Sessions,
		cfg.Auth.SecretKey,
		time.Duration(cfg.Auth.SessionExpireMinute)*time.Minute,
		app.Log,
	)
	gate := appsvc.NewAdminGate(cfg.Auth.AdminUserID)
	authService := appsvc.NewAuthService(userRepo, sessions, app.Log)
	postService := appsvc.NewPostService(postRepo, userRepo, app.PostCache, gate, cfg.Blog.EditAuthorPolicy, app.Log)
	contactService := appsvc.NewContactService(app.Contacts, app.Log)

	cookie := middleware.SessionCookie{Name: cfg.Auth.CookieName, Secure: cfg.Auth.CookieSecure}
	pages := handler.NewPresenter(gate, cfg.Blog.Title, cfg.Auth.CookieSecure, app.Log)
	authHandler := handler.NewAuthHandler(authService, cookie, pages)
	postHandler := handler.NewPostHandler(postService, feed.Channel{
		Title:       cfg.Blog.Title,
		SiteURL:     cfg.Blog.SiteURL,
		Description: cfg.Blog.Title,
	}, pages)
	siteHandler := handler.NewSiteHandler(contactService, pages)
	healthHandler := handler.NewHealthHandler(app)

	router.Use(
		gin.Recovery(),
		middleware.Identity(authService, cookie),
		middleware.RequestLogger(app.Log),
	)
	if cfg.App.StaticDir != "" {
		router.Static("/static", cfg.App.StaticDir)
	}
	router.NoRoute(pages.NotFound)
	router.GET("/healthz", healthHandler.Check)

	router.GET("/register", authHandler.RegisterForm)
	router.POST("/register", authHandler.Register)
	router.GET("/login", authHandler.LoginForm)
	router.POST("/login", authHandler.Login)
	router.GET("/logout", authHandler.Logout)

	router.GET("/", postHandler.Index)
	router.GET("/post/:id", postHandler.Show)
	router.GET("/new-post", postHandler.NewForm)
	router.POST("/new-post", postHandler.Create)
	router.GET("/edit-post/:id", postHandler.EditForm)
	router.POST("/edit-post/:id", postHandler.Update)
	router.GET("/delete/:id", postHandler.Delete)
	router.GET("/rss.xml", postHandler.Feed)

	router.GET("/about", siteHandler.About)
	router.GET("/contact", siteHandler.ContactForm)
	router.POST("/contact", siteHandler.Contact)

	return router, nil
}
