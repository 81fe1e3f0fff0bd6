package main

import (
	"net/http"
	"strings"

	"bitbucket.org/mmdatafocus/firesafety_backend/models"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// stationListItem is a station view plus the tenant rollup and document
// count. The rollup fields are spelled out rather than embedding
// StationRollup, which would collide with the view's tenant_count.
type stationListItem struct {
	models.StationView
	CriticalCount  int     `json:"critical_count"`
	HighCount      int     `json:"high_count"`
	OpenDefects    int     `json:"open_defects"`
	MajorDefects   int     `json:"major_defects"`
	FscReceived    int     `json:"fsc_received"`
	FscOutstanding int     `json:"fsc_outstanding"`
	ActiveTenants  int     `json:"active_tenants"`
	ComplianceRate float64 `json:"compliance_rate"`
	DocCount       int64   `json:"doc_count"`
}

func (app *App) stationListItem(c *gin.Context, station *models.Station) (stationListItem, error) {
	ctx := c.Request.Context()
	tenants, err := models.GetStationTenants(ctx, app.db, station.ID)
	if err != nil {
		return stationListItem{}, err
	}
	docCount, err := models.CountDocuments(ctx, app.db, models.DocumentFilter{StationId: station.ID})
	if err != nil {
		return stationListItem{}, err
	}
	rollup := models.RollupTenants(tenants)
	return stationListItem{
		StationView:    models.NewStationView(station, rollup.TenantCount),
		CriticalCount:  rollup.CriticalCount,
		HighCount:      rollup.HighCount,
		OpenDefects:    rollup.OpenDefects,
		MajorDefects:   rollup.MajorDefects,
		FscReceived:    rollup.FscReceived,
		FscOutstanding: rollup.FscOutstanding,
		ActiveTenants:  rollup.ActiveTenants,
		ComplianceRate: rollup.ComplianceRate,
		DocCount:       docCount,
	}, nil
}

func (app *App) getStations(c *gin.Context) {
	filter := models.StationFilter{
		Search:  strings.TrimSpace(c.Query("search")),
		Region:  c.Query("region"),
		HasAfss: c.Query("has_afss"),
		HasFss:  c.Query("has_fss"),
	}
	stations, err := models.GetStations(c.Request.Context(), app.db, filter)
	if err != nil {
		app.respondError(c, "Station", err)
		return
	}

	items := make([]stationListItem, 0, len(stations))
	for _, s := range stations {
		item, err := app.stationListItem(c, s)
		if err != nil {
			app.respondError(c, "Station", err)
			return
		}
		items = append(items, item)
	}
	c.JSON(http.StatusOK, items)
}

type stationDetail struct {
	stationListItem
	Tenants             []models.TenantView           `json:"tenants"`
	Defects             []models.DefectView           `json:"defects"`
	Notes               []*models.Note                `json:"notes"`
	Documents           []*models.Document            `json:"documents"`
	DocumentsByCategory map[string][]*models.Document `json:"documents_by_category"`
	Activities          []*models.Activity            `json:"activities"`
}

func (app *App) getStation(c *gin.Context) {
	id, ok := intParam(c, "id")
	if !ok {
		return
	}
	ctx := c.Request.Context()

	station, err := models.GetStation(ctx, app.db, id)
	if err != nil {
		app.respondError(c, "Station", err)
		return
	}
	item, err := app.stationListItem(c, station)
	if err != nil {
		app.respondError(c, "Station", err)
		return
	}

	tenants, err := models.GetStationTenants(ctx, app.db, id)
	if err != nil {
		app.respondError(c, "Station", err)
		return
	}
	for _, t := range tenants {
		t.Station = station
	}
	defects, err := models.GetDefects(ctx, app.db, models.DefectFilter{StationId: id})
	if err != nil {
		app.respondError(c, "Station", err)
		return
	}
	notes, err := models.GetNotes(ctx, app.db, id, 0)
	if err != nil {
		app.respondError(c, "Station", err)
		return
	}
	documents, err := models.GetDocuments(ctx, app.db, models.DocumentFilter{StationId: id})
	if err != nil {
		app.respondError(c, "Station", err)
		return
	}
	activities, err := models.GetStationActivities(ctx, app.db, id, 20)
	if err != nil {
		app.respondError(c, "Station", err)
		return
	}

	c.JSON(http.StatusOK, stationDetail{
		stationListItem:     item,
		Tenants:             models.NewTenantViews(tenants),
		Defects:             models.NewDefectViews(defects),
		Notes:               notes,
		Documents:           documents,
		DocumentsByCategory: models.GroupDocumentsByCategory(documents),
		Activities:          activities,
	})
}

func (app *App) updateStation(c *gin.Context) {
	id, ok := intParam(c, "id")
	if !ok {
		return
	}
	var input models.UpdateStationInput
	if err := c.ShouldBindJSON(&input); err != nil {
		app.bindError(c, err)
		return
	}
	ctx := c.Request.Context()

	var station *models.Station
	err := app.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var err error
		station, err = models.UpdateStation(ctx, tx, id, &input)
		if err != nil {
			return err
		}
		return models.LogActivity(ctx, tx, "updated",
			"Station "+station.Name+" updated",
			&station.ID, nil, "station", station.ID)
	})
	if err != nil {
		app.respondError(c, "Station", err)
		return
	}

	tenantCount, err := models.CountStationTenants(ctx, app.db, station.ID)
	if err != nil {
		app.respondError(c, "Station", err)
		return
	}
	c.JSON(http.StatusOK, models.NewStationView(station, tenantCount))
}
