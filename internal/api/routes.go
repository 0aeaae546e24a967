package api

import (
	"html/template"
	"net/http"

	"github.com/dancosta154/leadership-profile/internal/api/handlers"
	"github.com/dancosta154/leadership-profile/internal/api/middleware"
	"github.com/dancosta154/leadership-profile/internal/config"
	"github.com/dancosta154/leadership-profile/internal/services"
	"github.com/dancosta154/leadership-profile/pkg/metrics"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type Router struct {
	engine         *gin.Engine
	logger         *zap.Logger
	metrics        *metrics.Collector
	pageHandler    *handlers.PageHandler
	docHandler     *handlers.DocumentHandler
	adminHandler   *handlers.AdminHandler
	authMiddleware *middleware.AuthMiddleware
	reqMiddleware  *middleware.RequestMiddleware
}

func NewRouter(
	logger *zap.Logger,
	collector *metrics.Collector,
	catalog *services.CatalogService,
	sessions *services.SessionService,
	cfg *config.Configuration,
) *Router {
	gin.SetMode(gin.ReleaseMode)
	engine := gin.New()
	engine.MaxMultipartMemory = cfg.Upload.MaxBytes

	reqMiddleware := middleware.NewRequestMiddleware(logger)
	authMiddleware := middleware.NewAuthMiddleware(sessions)

	engine.Use(reqMiddleware.ProcessRequest())
	engine.Use(reqMiddleware.RecoverPanic())
	engine.Use(reqMiddleware.LoginAttemptMiddleware())

	tmpl := template.Must(template.New("").ParseGlob("templates/**/*.html"))
	engine.SetHTMLTemplate(tmpl)

	engine.Static("/static", "./static")

	return &Router{
		engine:         engine,
		logger:         logger,
		metrics:        collector,
		pageHandler:    handlers.NewPageHandler(),
		docHandler:     handlers.NewDocumentHandler(catalog, logger, collector),
		adminHandler:   handlers.NewAdminHandler(catalog, sessions, logger, cfg.Security.CookieMaxAge, cfg.Upload.MaxBytes),
		authMiddleware: authMiddleware,
		reqMiddleware:  reqMiddleware,
	}
}

func (r *Router) SetupRoutes() {
	r.engine.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "up", "name": "leadership-profile"})
	})

	r.engine.GET("/metrics", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"counters":  r.metrics.GetCounters(),
			"latencies": r.metrics.GetLatencies(),
			"sizes":     r.metrics.GetSizes(),
		})
	})

	r.engine.GET("/", r.pageHandler.Home)
	r.engine.GET("/work-with-me", r.pageHandler.WorkWithMe)
	r.engine.GET("/insights", r.pageHandler.Insights)

	r.engine.GET("/documents", r.docHandler.ListDocuments)
	r.engine.GET("/view/:id", r.docHandler.ViewDocument)
	r.engine.GET("/serve/:id", r.docHandler.ServeDocument)
	r.engine.GET("/download/:id", r.docHandler.DownloadDocument)

	r.engine.GET("/admin/login", r.adminHandler.ShowLoginPage)
	r.engine.POST("/admin/login", r.adminHandler.Login)

	authorized := r.engine.Group("/admin")
	authorized.Use(r.authMiddleware.RequireAdmin())
	{
		authorized.GET("/logout", r.adminHandler.Logout)
		authorized.GET("/dashboard", r.adminHandler.ShowDashboard)
		authorized.POST("/upload", r.adminHandler.UploadDocument)
		authorized.POST("/edit/:id", r.adminHandler.EditDocument)
		authorized.POST("/delete/:id", r.adminHandler.DeleteDocument)
	}
}

func (r *Router) GetEngine() *gin.Engine {
	return r.engine
}
