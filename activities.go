package main

import (
	"net/http"

	"bitbucket.org/mmdatafocus/firesafety_backend/models"
	"github.com/gin-gonic/gin"
)

func (app *App) getActivities(c *gin.Context) {
	ctx := c.Request.Context()
	limit := intQuery(c, "limit")
	if limit <= 0 {
		limit = 50
	}

	var (
		activities []*models.Activity
		err        error
	)
	switch {
	case intQuery(c, "station_id") > 0:
		activities, err = models.GetStationActivities(ctx, app.db, intQuery(c, "station_id"), limit)
	case intQuery(c, "tenant_id") > 0:
		activities, err = models.GetTenantActivities(ctx, app.db, intQuery(c, "tenant_id"), limit)
	default:
		activities, err = models.GetActivities(ctx, app.db, limit)
	}
	if err != nil {
		app.respondError(c, "Activity", err)
		return
	}
	c.JSON(http.StatusOK, activities)
}

func (app *App) getTimeline(c *gin.Context) {
	stationId := intQuery(c, "station_id")
	tenantId := intQuery(c, "tenant_id")
	if stationId <= 0 && tenantId <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "station_id or tenant_id required"})
		return
	}
	events, err := models.GetTimeline(c.Request.Context(), app.db, stationId, tenantId)
	if err != nil {
		app.respondError(c, "Timeline", err)
		return
	}
	c.JSON(http.StatusOK, events)
}
