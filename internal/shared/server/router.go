package server

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"humanizer-backend/internal/account"
	googleauth "humanizer-backend/internal/auth"
	"humanizer-backend/internal/credits"
	"humanizer-backend/internal/humanize"
	"humanizer-backend/internal/projects"
	"humanizer-backend/internal/services/health"
	"humanizer-backend/internal/shared/config"
	"humanizer-backend/internal/shared/metrics"
	"humanizer-backend/internal/shared/server/middleware"
	"humanizer-backend/internal/shared/server/respond"
	"humanizer-backend/internal/users"
)

// RouterDeps carries the handlers the router wires up. Nil handlers are
// skipped so tests can mount a subset.
type RouterDeps struct {
	Config          config.Config
	HumanizeHandler *humanize.Handler
	CreditsHandler  *credits.Handler
	ProjectsHandler *projects.Handler
	UsersHandler    *users.Handler
	AccountHandler  *account.Handler
	GoogleAuth      *googleauth.GoogleService
	Health          *health.Service
}

// NewRouter constructs the Gin engine with middleware and routes registered.
func NewRouter(deps RouterDeps) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	r := gin.New()

	r.Use(
		middleware.RequestID(),
		middleware.Logging(),
		middleware.Recovery(),
		middleware.CORS(deps.Config.CORSAllowOrigin),
	)

	healthSvc := deps.Health
	if healthSvc == nil {
		healthSvc = health.NewService()
	}
	r.GET("/healthz", func(c *gin.Context) {
		respond.JSON(c, http.StatusOK, healthSvc.Status())
	})
	r.GET("/metrics", metrics.Handler())

	api := r.Group("/api/v1")
	api.Use(middleware.Auth(deps.Config.Env))

	api.GET("/health", func(c *gin.Context) {
		respond.JSON(c, http.StatusOK, healthSvc.Status())
	})

	if deps.GoogleAuth != nil {
		deps.GoogleAuth.RegisterRoutes(api)
	}
	registerMeRoutes(api)
	if deps.UsersHandler != nil {
		deps.UsersHandler.RegisterRoutes(api)
	}
	if deps.CreditsHandler != nil {
		deps.CreditsHandler.RegisterRoutes(api)
	}
	if deps.ProjectsHandler != nil {
		deps.ProjectsHandler.RegisterRoutes(api)
	}
	if deps.AccountHandler != nil {
		deps.AccountHandler.RegisterRoutes(api)
	}
	if deps.HumanizeHandler != nil {
		// Humanization holds a connection open through the polling loop,
		// so it gets its own tighter bucket.
		humanizeGroup := api.Group("")
		humanizeGroup.Use(middleware.RateLimit(middleware.RateLimitConfig{
			Rules: map[string]middleware.RateLimitRule{
				"HUMANIZE": {Rate: deps.Config.HumanizeRate, Burst: deps.Config.HumanizeRateBurst},
			},
			DefaultGroup: "HUMANIZE",
		}))
		deps.HumanizeHandler.RegisterRoutes(humanizeGroup)
	}

	return r
}

// Addr normalizes the listen address.
func Addr(port string) string {
	if port == "" {
		return ":8080"
	}
	if port[0] == ':' {
		return port
	}
	return ":" + port
}
