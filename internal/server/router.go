package server

import (
	"log/slog"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gamerate/backend/internal/config"
	"gamerate/backend/internal/handler"
	"gamerate/backend/internal/hub"
	"gamerate/backend/internal/metrics"
	"gamerate/backend/internal/middleware"
	"gamerate/backend/internal/service"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	// Swagger imports
	_ "gamerate/backend/docs" // registers the OpenAPI document with swag

	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// Deps are the collaborators the router hands to its handlers.
type Deps struct {
	Config  *config.Config
	Service *service.GameService
	Hub     *hub.Hub
	Metrics *metrics.Recorder
	Logger  *slog.Logger
}

// NewRouter builds the gin engine with every route and middleware.
func NewRouter(d Deps) *gin.Engine {
	router := gin.New()
	router.Use(
		gin.Recovery(),
		middleware.RequestID(),
		middleware.RequestLogger(d.Logger),
		middleware.Metrics(d.Metrics),
		cors.New(corsConfig(d.Config)),
	)

	// Swagger route
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// Health check endpoint
	router.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"message": "pong",
		})
	})

	router.GET("/metrics", gin.WrapH(d.Metrics.Handler()))

	games := handler.NewGameHandler(d.Service, d.Hub)

	api := router.Group("/api")
	{
		gameRoutes := api.Group("/games")
		{
			gameRoutes.GET("", games.GetGames)
			gameRoutes.POST("", games.CreateGame)
			gameRoutes.GET("/:id", games.GetGameByID)
			gameRoutes.POST("/:id/rate", games.RateGame)
			gameRoutes.GET("/:id/events", games.StreamGameEvents)
		}

		// Authentication is out of scope, so destructive routes are opt-in.
		if d.Config.EnableAdminRoutes {
			adminRoutes := api.Group("/admin")
			adminRoutes.DELETE("/games/:id", games.DeleteGame)
		}
	}

	router.NoRoute(frontend(d.Config.StaticDir))
	return router
}

func corsConfig(cfg *config.Config) cors.Config {
	c := cors.Config{
		AllowMethods: []string{
			http.MethodGet, http.MethodOptions, http.MethodPatch,
			http.MethodDelete, http.MethodPost, http.MethodPut,
		},
		AllowHeaders: []string{
			"X-CSRF-Token", "X-Requested-With", "Accept", "Accept-Version",
			"Content-Length", "Content-MD5", "Content-Type", "Date",
			"X-Api-Version", middleware.RequestIDHeader,
		},
		ExposeHeaders: []string{middleware.RequestIDHeader},
		MaxAge:        12 * time.Hour,
	}

	origins := cfg.AllowedOrigins()
	if len(origins) == 1 && origins[0] == "*" {
		c.AllowAllOrigins = true
	} else {
		c.AllowOrigins = origins
		c.AllowCredentials = true
	}
	return c
}

// frontend serves files from dir and falls back to index.html so client-side
// routes resolve. API paths and non-GET requests get a JSON 404.
func frontend(dir string) gin.HandlerFunc {
	return func(c *gin.Context) {
		method := c.Request.Method
		path := c.Request.URL.Path
		if dir == "" || strings.HasPrefix(path, "/api/") || (method != http.MethodGet && method != http.MethodHead) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Resource not found"})
			return
		}

		file := filepath.Join(dir, filepath.Clean("/"+path))
		if info, err := os.Stat(file); err == nil && !info.IsDir() {
			c.File(file)
			return
		}
		c.File(filepath.Join(dir, "index.html"))
	}
}
