package main

import (
	"bitbucket.org/mmdatafocus/firesafety_backend/config"
	"bitbucket.org/mmdatafocus/firesafety_backend/models/reports"
	"github.com/gin-gonic/gin"
)

func (app *App) exportTenantsCsv(c *gin.Context) {
	c.Header("Content-Type", "text/csv")
	c.Header("Content-Disposition", `attachment; filename=tenants_export.csv`)

	if err := reports.WriteTenantsCsv(c.Request.Context(), app.db, c.Writer); err != nil {
		// Headers may already be out; log instead of rewriting the response.
		config.LogError(app.logger, "exports", "exportTenantsCsv", "write csv", nil, err)
	}
}
