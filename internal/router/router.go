package router

import (
	"net/http"
	"time"

	"github.com/collegeconnect/suggester-backend/internal/config"
	"github.com/collegeconnect/suggester-backend/internal/handler"
	"github.com/collegeconnect/suggester-backend/internal/middleware"
	"github.com/collegeconnect/suggester-backend/internal/model"
	"github.com/collegeconnect/suggester-backend/internal/response"
	"github.com/collegeconnect/suggester-backend/internal/service"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// Handlers groups all handler instances for route setup.
type Handlers struct {
	Auth         *handler.AuthHandler
	Suggestion   *handler.SuggestionHandler
	Catalog      *handler.CatalogHandler
	Import       *handler.ImportHandler
	ImportStream *handler.ImportStreamHandler
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
	corsConfig.AllowMethods = []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"}
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

	// Rate limiter for auth routes (30 requests per minute per IP).
	authLimiter := middleware.NewRateLimiter(30, time.Minute)

	// ─── 1. Auth Group (Public, Rate Limited) ──────────────────────────
	auth := router.Group("/api/v1/auth")
	auth.Use(authLimiter.Middleware())
	{
		auth.POST("/login", handlers.Auth.Login)

		// Authenticated profile routes
		auth.GET("/me", middleware.RequireJWT(authService), handlers.Auth.Me)
		auth.POST("/logout", middleware.RequireJWT(authService), handlers.Auth.Logout)
	}

	// ─── 2. Counsellor Group (JWT + Session + RBAC) ────────────────────
	api := router.Group("/api/v1")
	api.Use(
		middleware.RequireJWT(authService),
		middleware.CheckActiveSession(authService),
		middleware.RequirePermission(model.PermissionCollegesRead),
	)
	{
		api.POST("/suggestions", handlers.Suggestion.Suggest)
		api.GET("/statistics", handlers.Suggestion.Statistics)

		api.GET("/colleges/:college_id/cutoffs", handlers.Suggestion.CollegeCutoffs)

		// Reference data changes only on import; let clients cache it briefly.
		catalogTTL := middleware.CacheControl(300)
		api.GET("/colleges", catalogTTL, handlers.Catalog.ListColleges)
		api.GET("/colleges/:college_id", catalogTTL, handlers.Catalog.GetCollege)
		api.GET("/regions", catalogTTL, handlers.Catalog.ListRegions)
		api.GET("/courses", catalogTTL, handlers.Catalog.ListCourses)
	}

	// ─── 3. Admin Group (JWT + RBAC) ───────────────────────────────────
	adminAPI := router.Group("/api/v1/admin")
	adminAPI.Use(
		middleware.RequireJWT(authService),
		middleware.CheckActiveSession(authService),
	)
	{
		adminAPI.POST("/import/cutoffs",
			middleware.RequirePermission(model.PermissionCutoffsImport),
			handlers.Import.ImportCutoffs,
		)
		adminAPI.POST("/snapshot/refresh",
			middleware.RequirePermission(model.PermissionCutoffsImport),
			handlers.Import.RefreshSnapshot,
		)
	}

	// ─── 4. WebSocket Group (WS Auth) ──────────────────────────────────
	ws := router.Group("/ws/v1")
	ws.Use(middleware.RequireWSAuth(authService))
	{
		ws.GET("/admin/import/stream", handlers.ImportStream.ImportProgressStream)
	}

	return router
}
