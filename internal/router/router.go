package router

import (
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	echoSwagger "github.com/swaggo/echo-swagger"

	"anya/internal/config"
	"anya/internal/handler"
	"anya/internal/service"
)

// Register wires routes and middleware.
func Register(
	e *echo.Echo,
	cfg *config.Config,
	authService service.AuthService,
	authHandler *handler.AuthHandler,
	userHandler *handler.UserHandler,
	chatHandler *handler.ChatHandler,
) {
	e.Use(middleware.Logger())
	e.Use(middleware.Recover())
	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins:     []string{"*"},
		AllowHeaders:     []string{echo.HeaderContentType, echo.HeaderAuthorization},
		AllowMethods:     []string{http.MethodPost, http.MethodGet, http.MethodOptions},
		ExposeHeaders:    []string{echo.HeaderContentLength},
		AllowCredentials: true,
	}))
	e.Use(SessionResolver(authService))

	// Add validator
	e.Validator = &CustomValidator{validator: validator.New()}

	e.GET("/health", func(c echo.Context) error {
		return c.String(http.StatusOK, "OK")
	})
	e.GET("/", func(c echo.Context) error {
		return c.Redirect(http.StatusFound, cfg.UIHomeURL)
	})

	e.GET("/swagger/*", echoSwagger.WrapHandler)

	// OAuth callback completion lives outside /api by provider configuration.
	e.GET("/auth/callback", authHandler.Callback)

	api := e.Group("/api")

	api.POST("/signup", authHandler.Signup)
	api.POST("/login", authHandler.Login)
	api.GET("/me", userHandler.Me)
	api.POST("/chat", chatHandler.Chat)

	api.GET("/user", userHandler.List)
	api.POST("/user", userHandler.Create)
	api.GET("/user/:id", userHandler.Get)
	api.PUT("/user/:id", userHandler.Update)

	// Delegated auth surface
	authGroup := api.Group("/auth")
	authGroup.POST("/sign-up/email", authHandler.Signup)
	authGroup.POST("/sign-in/email", authHandler.Login)
	authGroup.POST("/sign-out", authHandler.SignOut)
	authGroup.GET("/get-session", authHandler.GetSession)
	authGroup.GET("/sign-in/discord", authHandler.SignInDiscord)
	authGroup.POST("/link-social", authHandler.LinkSocial)
	authGroup.GET("/verify-email", authHandler.VerifyEmail)
}

// CustomValidator wraps validator for Echo.
type CustomValidator struct {
	validator *validator.Validate
}

// Validate implements echo.Validator interface.
func (cv *CustomValidator) Validate(i interface{}) error {
	return cv.validator.Struct(i)
}
