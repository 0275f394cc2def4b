package main

import (
	"fmt"
	"log"
	"net/http"
	"net/url"

	_ "anya/docs" // swagger docs

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"anya/internal/ai"
	"anya/internal/auth"
	"anya/internal/cache"
	"anya/internal/config"
	"anya/internal/db"
	"anya/internal/handler"
	"anya/internal/mail"
	"anya/internal/model"
	"anya/internal/repository"
	"anya/internal/router"
	"anya/internal/service"
)

// @title Anya API
// @version 1.0
// @description Backend-for-frontend with email/password and Discord authentication, user CRUD and a chat completion wrapper.
// @host localhost:3000
// @BasePath /api
// @schemes http
func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	e := echo.New()
	e.Use(middleware.RequestID())

	gormDB, err := db.NewPostgres(cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("database init: %v", err)
	}

	// Run migrations for all models, parents before children
	if err := gormDB.AutoMigrate(
		&model.User{},
		&model.Account{},
		&model.Session{},
		&model.Verification{},
		&model.APIKey{},
		&model.HelloWorld{},
	); err != nil {
		log.Fatalf("auto-migrate: %v", err)
	}

	cacheClient := cache.New(cfg.RedisAddr, cfg.RedisPass, cfg.RedisDB)

	// Initialize repositories
	userRepo := repository.NewUserRepository(gormDB)
	accountRepo := repository.NewAccountRepository(gormDB)
	sessionRepo := repository.NewSessionRepository(gormDB)
	verificationRepo := repository.NewVerificationRepository(gormDB)
	apiKeyRepo := repository.NewAPIKeyRepository(gormDB)

	// Initialize auth components
	sessionStore := auth.NewSessionStore(cacheClient)
	stateSigner := auth.NewStateSigner(cfg.DiscordClientSecret)
	discord := auth.NewDiscordProvider(cfg.DiscordClientID, cfg.DiscordClientSecret, cfg.DiscordRedirectURI)
	mailer := mail.NewResend(cfg.ResendAPIKey)

	// Initialize services
	authService := service.NewAuthService(
		userRepo, accountRepo, sessionRepo, verificationRepo, apiKeyRepo,
		sessionStore, stateSigner, discord, mailer, apiOrigin(cfg.DiscordRedirectURI),
	)
	userService := service.NewUserService(userRepo, cacheClient)
	aiClient := ai.NewClient(cfg.OpenAIAPIKey)

	// Initialize handlers
	authHandler := handler.NewAuthHandler(authService, cfg.UIHomeURL)
	userHandler := handler.NewUserHandler(userService)
	chatHandler := handler.NewChatHandler(aiClient)

	// Register routes
	router.Register(e, cfg, authService, authHandler, userHandler, chatHandler)

	log.Printf("Starting Anya API on http://localhost:%d", cfg.Port)
	log.Printf("Web UI available at: %s", cfg.UIHomeURL)

	addr := fmt.Sprintf(":%d", cfg.Port)
	if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
		log.Fatalf("server start: %v", err)
	}
}

// apiOrigin derives the API's public origin from the configured OAuth
// redirect URI, which points back at this server.
func apiOrigin(redirectURI string) string {
	u, err := url.Parse(redirectURI)
	if err != nil {
		return redirectURI
	}
	return u.Scheme + "://" + u.Host
}
