package main

import (
	"net/http"
	"strings"

	"bitbucket.org/mmdatafocus/firesafety_backend/config"
	"bitbucket.org/mmdatafocus/firesafety_backend/models"
	"github.com/gin-gonic/gin"
)

type searchResults struct {
	Stations []models.StationView `json:"stations"`
	Tenants  []models.TenantView  `json:"tenants"`
	Defects  []models.DefectView  `json:"defects"`
}

// globalSearch fans one query across stations, tenants and defects. Queries
// shorter than two characters return empty result sets rather than matching
// half the database.
func (app *App) globalSearch(c *gin.Context) {
	results := searchResults{
		Stations: []models.StationView{},
		Tenants:  []models.TenantView{},
		Defects:  []models.DefectView{},
	}

	query := strings.TrimSpace(c.Query("q"))
	if len(query) < 2 {
		c.JSON(http.StatusOK, results)
		return
	}
	ctx := c.Request.Context()

	stations, err := models.SearchStations(ctx, app.db, query, config.SearchLimit)
	if err != nil {
		app.respondError(c, "Search", err)
		return
	}
	for _, s := range stations {
		tenantCount, err := models.CountStationTenants(ctx, app.db, s.ID)
		if err != nil {
			app.respondError(c, "Search", err)
			return
		}
		results.Stations = append(results.Stations, models.NewStationView(s, tenantCount))
	}

	tenants, err := models.SearchTenants(ctx, app.db, query, config.SearchLimit)
	if err != nil {
		app.respondError(c, "Search", err)
		return
	}
	results.Tenants = models.NewTenantViews(tenants)

	defects, err := models.SearchDefects(ctx, app.db, query, config.SearchLimit)
	if err != nil {
		app.respondError(c, "Search", err)
		return
	}
	results.Defects = models.NewDefectViews(defects)

	c.JSON(http.StatusOK, results)
}
