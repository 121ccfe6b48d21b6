package http

import (
	"log/slog"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/ed9408/minerva-api/internal/config"
	"github.com/ed9408/minerva-api/internal/http/handlers"
	"github.com/ed9408/minerva-api/internal/http/middleware"
	"github.com/ed9408/minerva-api/internal/services"
)

type Dependencies struct {
	Config      *config.Config
	Logger      *slog.Logger
	Users       middleware.UserResolver
	Tokens      *services.TokenManager
	AuthService handlers.AuthService
	UserService handlers.UserService
	TaskService handlers.TaskService
	RateLimiter *middleware.RateLimiter
}

func NewRouter(deps Dependencies) *gin.Engine {
	router := gin.New()
	router.Use(middleware.RequestID())
	router.Use(middleware.Logger(deps.Logger))
	router.Use(gin.Recovery())
	router.Use(cors.New(corsConfig(deps.Config)))

	authHandler := handlers.NewAuthHandler(deps.AuthService)
	userHandler := handlers.NewUserHandler(deps.UserService)
	meHandler := handlers.NewMeHandler(deps.UserService)
	taskHandler := handlers.NewTaskHandler(deps.TaskService)

	authn := middleware.Authenticate(deps.Tokens, deps.Users)

	router.GET("/", handlers.Root)
	router.GET("/healthz", handlers.Health)

	api := router.Group("/api/v1")

	authGroup := api.Group("/auth")
	authGroup.Use(deps.RateLimiter.Middleware())
	authGroup.POST("/login", authHandler.Login)

	// Registration is the only public user route.
	api.POST("/users", userHandler.Register)

	me := api.Group("/users/me", authn)
	{
		me.GET("", meHandler.Get)
		me.PUT("", meHandler.Update)
		me.DELETE("", meHandler.Delete)

		me.POST("/tasks", taskHandler.Create)
		me.GET("/tasks", taskHandler.List)
		me.GET("/tasks/:id", taskHandler.Get)
		me.PUT("/tasks/:id", taskHandler.Update)
		me.DELETE("/tasks/:id", taskHandler.Delete)
	}

	admin := api.Group("/users", authn, middleware.RequireAdmin())
	{
		admin.GET("", userHandler.List)
		admin.GET("/:id", userHandler.Get)
		admin.PUT("/:id", userHandler.Update)
		admin.DELETE("/:id", userHandler.Delete)
	}

	return router
}

func corsConfig(cfg *config.Config) cors.Config {
	corsCfg := cors.DefaultConfig()
	if len(cfg.AllowedOrigins) > 0 {
		corsCfg.AllowOrigins = cfg.AllowedOrigins
		corsCfg.AllowCredentials = true
	} else {
		corsCfg.AllowAllOrigins = true
	}
	if len(cfg.AllowedMethods) > 0 {
		corsCfg.AllowMethods = cfg.AllowedMethods
	}
	corsCfg.AllowHeaders = []string{"Origin", "Content-Type", "Authorization", middleware.RequestIDHeader}
	corsCfg.MaxAge = 12 * time.Hour
	return corsCfg
}
