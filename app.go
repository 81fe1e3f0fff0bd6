package main

import (
	"net/http"

	"bitbucket.org/mmdatafocus/firesafety_backend/config"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// App holds the handler dependencies. The database handle is passed in
// explicitly so tests can run the router against their own database.
type App struct {
	db        *gorm.DB
	logger    *logrus.Logger
	uploadDir string
}

func NewApp(db *gorm.DB, uploadDir string) *App {
	return &App{
		db:        db,
		logger:    config.GetLogger(),
		uploadDir: uploadDir,
	}
}

func (app *App) Router() *gin.Engine {
	r := gin.New()
	r.MaxMultipartMemory = 50 << 20 // 50 MB

	r.Use(correlationMiddleware())
	r.Use(cors.New(corsConfig()))
	r.Use(customErrorLogger(app.logger))
	r.Use(gin.Recovery())

	r.GET("/healthz", func(c *gin.Context) { c.Status(http.StatusNoContent) })

	api := r.Group("/api")

	api.GET("/stations", app.getStations)
	api.GET("/stations/:id", app.getStation)
	api.PUT("/stations/:id", app.updateStation)

	api.GET("/tenants", app.getTenants)
	api.GET("/tenants/:id", app.getTenant)
	api.PUT("/tenants/:id", app.updateTenant)

	api.GET("/defects", app.getDefects)
	api.POST("/defects", app.createDefect)
	api.PUT("/defects/:id", app.updateDefect)

	api.GET("/documents", app.getDocuments)
	api.POST("/documents/upload", app.uploadDocument)
	api.GET("/documents/:id/download", app.downloadDocument)
	api.DELETE("/documents/:id", app.deleteDocument)
	api.GET("/document-categories", app.getDocumentCategories)

	api.GET("/notes", app.getNotes)
	api.POST("/notes", app.createNote)
	api.DELETE("/notes/:id", app.deleteNote)

	api.GET("/communications", app.getCommunications)
	api.POST("/communications", app.createCommunication)
	api.PUT("/communications/:id", app.updateCommunication)

	api.GET("/activities", app.getActivities)
	api.GET("/timeline", app.getTimeline)

	api.GET("/dashboard", app.getDashboard)
	api.GET("/analytics", app.getAnalytics)
	api.GET("/reports/monthly", app.getMonthlyReport)
	api.GET("/afss", app.getAfssSchedule)
	api.GET("/fire-safety-schedule", app.getFireSafetySchedule)
	api.PUT("/fire-safety-schedule/:id", app.updateFireSafetySchedule)

	api.GET("/filters", app.getFilterOptions)
	api.GET("/search", app.globalSearch)
	api.GET("/export/tenants", app.exportTenantsCsv)

	r.NoRoute(customNotFoundHandler)
	return r
}
