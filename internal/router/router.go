package router

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/heimweh17/GatorGrades/internal/config"
	"github.com/heimweh17/GatorGrades/internal/handler"
	"github.com/heimweh17/GatorGrades/internal/middleware"
	"github.com/heimweh17/GatorGrades/internal/response"
)

// Handlers groups all handler instances for route setup.
type Handlers struct {
	Course *handler.CourseHandler
	Upload *handler.UploadHandler
}

// SetupRouter configures the Gin engine with all middlewares and routes.
func SetupRouter(handlers *Handlers, cfg *config.Config) *gin.Engine {
	gin.SetMode(cfg.GinMode)
	router := gin.Default()

	// ─── CORS ──────────────────────────────────────────────────────────
	// If AllowedOrigins is set in config, restrict to that list;
	// otherwise allow all (*) so dev works without extra config.
	corsConfig := cors.DefaultConfig()
	if len(cfg.AllowedOrigins) > 0 {
		corsConfig.AllowOrigins = cfg.AllowedOrigins
	} else {
		corsConfig.AllowAllOrigins = true
	}
	corsConfig.AllowMethods = []string{"GET", "POST", "OPTIONS"}
	corsConfig.AllowHeaders = []string{"Origin", "Content-Type", "X-Request-ID"}
	corsConfig.ExposeHeaders = []string{"X-Request-ID"}
	corsConfig.MaxAge = 12 * time.Hour
	router.Use(cors.New(corsConfig))

	// Apply request ID and latency metrics middleware globally.
	router.Use(response.RequestIDMiddleware())
	router.Use(middleware.Metrics())

	// Prometheus exposition.
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	uploadLimiter := middleware.NewRateLimiter(cfg.UploadRatePerMin, time.Minute)

	api := router.Group("/api")
	{
		api.GET("/health", func(c *gin.Context) {
			c.JSON(http.StatusOK, gin.H{"status": "ok"})
		})

		api.GET("/courses", handlers.Course.List)
		api.GET("/courses/:id/summary", handlers.Course.Summary)
		api.GET("/courses/:id/distribution", handlers.Course.Distribution)
		api.GET("/courses/:id/trends", handlers.Course.Trends)

		api.POST("/upload", uploadLimiter.Middleware(), handlers.Upload.Upload)
	}

	return router
}
