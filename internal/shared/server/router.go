package server

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"hiring-backend/internal/candidates"
	"hiring-backend/internal/exams"
	"hiring-backend/internal/feedback"
	"hiring-backend/internal/interviews"
	"hiring-backend/internal/jobs"
	"hiring-backend/internal/shared/config"
	"hiring-backend/internal/shared/metrics"
	"hiring-backend/internal/shared/server/middleware"
	"hiring-backend/internal/shared/server/respond"
)

// RouterDeps carries the handlers the router mounts.
type RouterDeps struct {
	Config            config.Config
	JobsHandler       *jobs.Handler
	CandidatesHandler *candidates.Handler
	ProposalsHandler  *interviews.Handler
	FeedbackHandler   *feedback.Handler
	ExamsHandler      *exams.Handler
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
		middleware.RateLimit(middleware.RateLimitConfig{
			GroupFor: examTakeGroup,
			Rules: map[string]middleware.RateLimitRule{
				// Token-addressed exam endpoints; throttle per client IP.
				"EXAM_TAKE": {Rate: 1, Burst: 10},
			},
		}),
	)

	r.GET("/metrics", metrics.Handler())

	api := r.Group("/api/v1")
	api.GET("/health", func(c *gin.Context) {
		respond.JSON(c, http.StatusOK, gin.H{"ok": true, "env": deps.Config.Env})
	})

	deps.JobsHandler.RegisterRoutes(api)
	deps.CandidatesHandler.RegisterRoutes(api)
	deps.ProposalsHandler.RegisterRoutes(api)
	deps.FeedbackHandler.RegisterRoutes(api)
	deps.ExamsHandler.RegisterRoutes(api)

	return r
}

func examTakeGroup(c *gin.Context) string {
	switch c.FullPath() {
	case "/api/v1/exams/take/:token":
		return "EXAM_TAKE"
	}
	return ""
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
