package router

import (
	"net/http"
	"time"

	"wellness-go/internal/config"
	"wellness-go/internal/handlers"
	"wellness-go/internal/models"
	"wellness-go/internal/services"

	ratelimit "github.com/JGLTechnologies/gin-rate-limit"
	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
	"github.com/unrolled/secure"
	"go.uber.org/zap"
)

func keyFunc(c *gin.Context) string {
	return c.ClientIP()
}

func errorHandler(c *gin.Context, info ratelimit.Info) {
	c.String(http.StatusTooManyRequests, "Too many requests. Try again later.")
}

// Setup builds the gin engine: middleware stack plus the dashboard API.
func Setup(log *zap.Logger, manager *services.Manager, catalog *models.MoodCatalog) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(RequestLogger(log))

	store := cookie.NewStore([]byte(config.Conf.Server.SessionSecret))
	store.Options(sessions.Options{
		Path:     "/",
		HttpOnly: true,
		Secure:   false, // Set to true in production
		SameSite: http.SameSiteLaxMode,
		MaxAge:   86400 * 7,
	})
	router.Use(sessions.Sessions("wellness_session", store))
	router.Use(UserLoaderMiddleware())

	secureMiddleware := secure.New(secure.Options{
		FrameDeny:          true,
		ContentTypeNosniff: true,
		BrowserXssFilter:   true,
	})
	router.Use(func(c *gin.Context) {
		if err := secureMiddleware.Process(c.Writer, c.Request); err != nil {
			c.Abort()
			return
		}
		c.Next()
	})

	// Writes that hit the upstream service get a per-IP limiter.
	writeLimiter := ratelimit.RateLimiter(ratelimit.InMemoryStore(&ratelimit.InMemoryOptions{
		Rate:  time.Second,
		Limit: 5,
	}), &ratelimit.Options{ErrorHandler: errorHandler, KeyFunc: keyFunc})

	authHandler := handlers.NewAuthHandler(log)
	dashboardHandler := handlers.NewDashboardHandler(log, manager)
	goalsHandler := handlers.NewGoalsHandler(log, manager)
	moodHandler := handlers.NewMoodHandler(log, manager, catalog)
	notificationsHandler := handlers.NewNotificationsHandler(log, manager)
	assistantHandler := handlers.NewAssistantHandler(log, manager)
	chartsHandler := handlers.NewChartsHandler(log, manager)

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	api := router.Group("/api")
	{
		api.POST("/session", authHandler.Attach)
		api.DELETE("/session", authHandler.Detach)

		authed := api.Group("")
		authed.Use(AuthRequired())
		{
			authed.GET("/dashboard", dashboardHandler.Show)
			authed.POST("/assessments", writeLimiter, dashboardHandler.SubmitAssessment)

			authed.POST("/goals", writeLimiter, goalsHandler.Create)
			authed.POST("/goals/:id/complete", writeLimiter, goalsHandler.Complete)

			authed.GET("/mood/catalog", moodHandler.Catalog)
			authed.GET("/mood", moodHandler.Status)
			authed.POST("/mood/select", writeLimiter, moodHandler.Select)
			authed.POST("/mood/activity/start", moodHandler.StartActivity)
			authed.POST("/mood/activity/cancel", moodHandler.CancelActivity)
			authed.POST("/mood/reset", moodHandler.Reset)

			authed.POST("/notifications/dismiss", notificationsHandler.Dismiss)
			authed.POST("/assistant/chat", writeLimiter, assistantHandler.Chat)

			authed.GET("/charts/trend", chartsHandler.Trend)
			authed.GET("/charts/sleep-stress", chartsHandler.SleepStress)
		}
	}

	return router
}
