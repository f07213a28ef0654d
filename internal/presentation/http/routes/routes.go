package routes

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sangkips/xylem-api/internal/config"
	domainRepo "github.com/sangkips/xylem-api/internal/domain/repository"
	"github.com/sangkips/xylem-api/internal/presentation/http/handler"
	"github.com/sangkips/xylem-api/internal/presentation/http/middleware"
	"github.com/sangkips/xylem-api/pkg/metrics"
	"github.com/sangkips/xylem-api/pkg/utils"
)

// Handlers holds all the HTTP handlers used for route registration.
type Handlers struct {
	Auth         *handler.AuthHandler
	Fabricator   *handler.FabricatorHandler
	MarketingRep *handler.MarketingRepHandler
	Distributor  *handler.DistributorHandler
	Report       *handler.ReportHandler
	Task         *handler.TaskHandler
	Dashboard    *handler.DashboardHandler
	Districts    *handler.DistrictsHandler
	Upload       *handler.UploadHandler
}

// Deps holds shared dependencies needed by the routes.
type Deps struct {
	JWTManager      *utils.JWTManager
	Cfg             *config.Config
	IdempotencyRepo domainRepo.IdempotencyRepository
	RepResolver     middleware.RepResolver
	Metrics         *metrics.Metrics
	RateLimiter     *middleware.RateLimiter
}

// Setup creates the Gin router and registers all routes.
func Setup(h *Handlers, deps *Deps) *gin.Engine {
	router := gin.New()

	router.Use(gin.Recovery())
	router.Use(middleware.LoggerMiddleware())
	if deps.Metrics != nil {
		router.Use(middleware.MetricsMiddleware(deps.Metrics))
	}
	router.Use(middleware.CORSMiddleware(&deps.Cfg.CORS))

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "ok",
			"service": deps.Cfg.App.Name,
		})
	})
	if deps.Metrics != nil {
		router.GET("/metrics", gin.WrapH(deps.Metrics.Handler()))
	}

	// the limiter runs after auth so signed in clients are keyed by user
	var limit gin.HandlerFunc = func(c *gin.Context) { c.Next() }
	if deps.RateLimiter != nil {
		limit = deps.RateLimiter.Middleware()
	}
	auth := middleware.AuthMiddleware(deps.JWTManager)

	v1 := router.Group("/api/v1")
	registerPublicRoutes(v1.Group("", limit), h)

	account := v1.Group("/auth", auth, limit)
	account.GET("/profile", h.Auth.Profile)
	account.PUT("/password", h.Auth.ChangePassword)

	admin := v1.Group("/administrator", auth, limit, middleware.RequireAdmin())
	registerAdminRoutes(admin, h)

	rep := v1.Group("/marketing-rep", auth, limit, middleware.RequireMarketingRep(deps.RepResolver))
	registerRepRoutes(rep, h, deps)

	return router
}

func registerPublicRoutes(v1 *gin.RouterGroup, h *Handlers) {
	auth := v1.Group("/auth")
	{
		auth.POST("/login", h.Auth.Login)
		auth.POST("/refresh", h.Auth.RefreshToken)
	}

	v1.POST("/fabricator/", h.Fabricator.Register)
	v1.GET("/fabricator/", h.Fabricator.Options)
	v1.GET("/districts/", h.Districts.Get)
	v1.POST("/upload-file/", h.Upload.Upload)
}

func registerAdminRoutes(admin *gin.RouterGroup, h *Handlers) {
	fabricator := admin.Group("/fabricator")
	{
		fabricator.GET("/", h.Fabricator.Get)
		fabricator.PATCH("/", h.Fabricator.Patch)
		fabricator.DELETE("/", h.Fabricator.Delete)
	}

	rep := admin.Group("/marketing-representative")
	{
		rep.GET("/", h.MarketingRep.Get)
		rep.POST("/", h.MarketingRep.Post)
		rep.PUT("/", h.MarketingRep.Put)
		rep.DELETE("/", h.MarketingRep.Delete)
	}

	distributor := admin.Group("/distributor")
	{
		distributor.GET("/", h.Distributor.Get)
		distributor.POST("/", h.Distributor.Create)
		distributor.PUT("/", h.Distributor.Update)
		distributor.DELETE("/", h.Distributor.Delete)
	}

	task := admin.Group("/task")
	{
		task.GET("/", h.Task.List)
		task.POST("/", h.Task.Create)
		task.DELETE("/", h.Task.Delete)
	}

	admin.GET("/report/", h.Report.List)
	admin.GET("/dashboard/", h.Dashboard.Admin)
}

func registerRepRoutes(rep *gin.RouterGroup, h *Handlers, deps *Deps) {
	report := rep.Group("/report")
	{
		report.GET("/", h.Report.RepList)
		report.POST("/", middleware.Idempotency(middleware.IdempotencyConfig{Repo: deps.IdempotencyRepo}), h.Report.Submit)
	}

	task := rep.Group("/task")
	{
		task.GET("/", h.Task.RepList)
		task.PATCH("/", h.Task.RepUpdateStatus)
	}

	rep.GET("/activity/", h.Task.Activities)
	rep.GET("/dashboard/", h.Dashboard.Rep)
}
