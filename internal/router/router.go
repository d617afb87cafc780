package router

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/tcfprep/backend/internal/config"
	"github.com/tcfprep/backend/internal/handler"
	"github.com/tcfprep/backend/internal/middleware"
	"github.com/tcfprep/backend/internal/response"
	"github.com/tcfprep/backend/internal/service"
)

// Handlers groups all handler instances for route setup.
type Handlers struct {
	Catalog  *handler.CatalogHandler
	Practice *handler.PracticeHandler
	Test     *handler.TestHandler
	History  *handler.HistoryHandler
	WS       *handler.WSHandler
}

// SetupRouter configures all Gin route groups with appropriate middlewares.
func SetupRouter(
	authService *service.AuthService,
	handlers *Handlers,
	cfg *config.Config,
) *gin.Engine {
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
	corsConfig.AllowMethods = []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"}
	corsConfig.AllowHeaders = []string{"Origin", "Content-Type", "Authorization", "X-Request-ID"}
	corsConfig.ExposeHeaders = []string{"X-Request-ID"}
	corsConfig.MaxAge = 12 * time.Hour
	router.Use(cors.New(corsConfig))

	// Apply request ID middleware globally so every response includes metadata.
	router.Use(response.RequestIDMiddleware())

	// Health check.
	router.GET("/health", func(c *gin.Context) {
		response.Success(c, http.StatusOK, gin.H{"status": "ok"})
	})

	// ─── 1. Catalog Group (JWT) ────────────────────────────────────────
	catalogAPI := router.Group("/api/v1/catalog")
	catalogAPI.Use(middleware.RequireUserJWT(authService))
	{
		catalogAPI.GET("/:skill", middleware.RequireSkill(), handlers.Catalog.GetCatalog)
	}

	// ─── 2. Practice Group (JWT + Skill) ───────────────────────────────
	practiceAPI := router.Group("/api/v1/practice/:skill")
	practiceAPI.Use(
		middleware.RequireUserJWT(authService),
		middleware.RequireSkill(),
	)
	{
		practiceAPI.PUT("/filter", handlers.Practice.SetFilter)
		practiceAPI.GET("/current", handlers.Practice.GetCurrent)
		practiceAPI.POST("/navigate", handlers.Practice.Navigate)
		practiceAPI.POST("/answer", handlers.Practice.SubmitAnswer)
	}

	// ─── 3. Test Group (JWT + Skill) ───────────────────────────────────
	testAPI := router.Group("/api/v1/test/:skill")
	testAPI.Use(
		middleware.RequireUserJWT(authService),
		middleware.RequireSkill(),
	)
	{
		testAPI.POST("/start", handlers.Test.Start)
		testAPI.POST("/confirm", handlers.Test.Confirm)
		testAPI.GET("/state", handlers.Test.GetState)
		testAPI.POST("/answer", handlers.Test.SubmitAnswer)
		testAPI.POST("/jump", handlers.Test.Jump)
		testAPI.POST("/finish", handlers.Test.Finish)
		testAPI.DELETE("", handlers.Test.Abandon)
	}

	// ─── 4. History Group (JWT + Skill) ────────────────────────────────
	historyAPI := router.Group("/api/v1/history")
	historyAPI.Use(middleware.RequireUserJWT(authService))
	{
		historyAPI.GET("/:skill", middleware.RequireSkill(), handlers.History.ListHistory)
	}

	// ─── 5. WebSocket Group (WS Auth) ──────────────────────────────────
	ws := router.Group("/ws/v1")
	ws.Use(middleware.RequireUserWSAuth(authService))
	{
		ws.GET("/test/:skill/stream", middleware.RequireSkill(), handlers.WS.SessionStream)
	}

	return router
}
