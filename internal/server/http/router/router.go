package router

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"

	"github.com/bestchance/orderdesk/internal/domain/repository"
	"github.com/bestchance/orderdesk/internal/metrics"
	"github.com/bestchance/orderdesk/internal/pkg/auth"
	"github.com/bestchance/orderdesk/internal/server/http/handlers"
	"github.com/bestchance/orderdesk/internal/server/http/middleware"
)

const healthTimeout = 2 * time.Second

// Setup configures gin router with handlers and middleware. A nil m disables /metrics.
func Setup(facade handlers.OrderDeskFacade, sessions auth.SessionStore, health repository.HealthChecker, m *metrics.Metrics, logger *slog.Logger) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	engine := gin.New()

	engine.Use(gin.Recovery())
	engine.Use(middleware.RequestLogger(logger))
	engine.Use(middleware.DecompressRequest())
	engine.Use(gzip.Gzip(gzip.DefaultCompression, gzip.WithExcludedPaths([]string{"/metrics"})))

	engine.GET("/healthz", healthz(health))
	if m != nil {
		engine.GET("/metrics", gin.WrapH(m.Handler()))
	}

	authHandler := handlers.NewAuthHandler(facade, sessions, logger)
	catalogHandler := handlers.NewCatalogHandler(facade)
	projectHandler := handlers.NewProjectHandler(facade)
	reportHandler := handlers.NewReportHandler(facade)
	draftHandler := handlers.NewDraftHandler(facade)

	api := engine.Group("/api")
	api.POST("/login", authHandler.Login)

	secured := api.Group("")
	secured.Use(middleware.SessionRequired(sessions))
	secured.POST("/logout", authHandler.Logout)
	secured.GET("/session", authHandler.Session)

	secured.GET("/catalog/materials", catalogHandler.Materials)
	secured.GET("/catalog/fleets", catalogHandler.Fleets)
	secured.GET("/projects", catalogHandler.Projects)
	secured.GET("/reports/monthly", reportHandler.Monthly)

	projects := secured.Group("/projects/:projectID")
	projects.GET("/expenses", projectHandler.Expenses)
	projects.GET("/expenses/export", projectHandler.Export)
	projects.PUT("/expenses/:expenseID", projectHandler.UpdateExpense)
	projects.POST("/operational-fees", projectHandler.AddFee)
	projects.GET("/submissions", projectHandler.Submissions)
	projects.POST("/drafts", draftHandler.Start)

	drafts := secured.Group("/drafts/:draftID")
	drafts.GET("", draftHandler.Get)
	drafts.PATCH("", draftHandler.Update)
	drafts.DELETE("", draftHandler.Discard)
	drafts.POST("/materials/toggle", draftHandler.ToggleMaterial)
	drafts.PUT("/materials/quantity", draftHandler.SetQuantity)
	drafts.POST("/fleet/toggle", draftHandler.ToggleFleet)
	drafts.PUT("/fleet/price", draftHandler.SetFleetPrice)
	drafts.POST("/next", draftHandler.Next)
	drafts.POST("/back", draftHandler.Back)
	drafts.POST("/validate", draftHandler.Validate)
	drafts.POST("/submit", draftHandler.Submit)

	return engine
}

func healthz(health repository.HealthChecker) gin.HandlerFunc {
	return func(c *gin.Context) {
		if health != nil {
			ctx, cancel := context.WithTimeout(c.Request.Context(), healthTimeout)
			defer cancel()
			if err := health.HealthCheck(ctx); err != nil {
				c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable"})
				return
			}
		}
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	}
}
