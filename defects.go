package main

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"bitbucket.org/mmdatafocus/firesafety_backend/models"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type defectListItem struct {
	models.DefectView
	DocCount int64 `json:"doc_count"`
}

func (app *App) getDefects(c *gin.Context) {
	filter := models.DefectFilter{
		Search:    strings.TrimSpace(c.Query("search")),
		Risk:      c.Query("risk"),
		Progress:  c.Query("progress"),
		StationId: intQuery(c, "station_id"),
		TenantId:  intQuery(c, "tenant_id"),
	}
	ctx := c.Request.Context()

	defects, err := models.GetDefects(ctx, app.db, filter)
	if err != nil {
		app.respondError(c, "Defect", err)
		return
	}
	items := make([]defectListItem, 0, len(defects))
	for _, d := range defects {
		docCount, err := models.CountDocuments(ctx, app.db, models.DocumentFilter{DefectId: d.ID})
		if err != nil {
			app.respondError(c, "Defect", err)
			return
		}
		items = append(items, defectListItem{
			DefectView: models.NewDefectView(d),
			DocCount:   docCount,
		})
	}
	c.JSON(http.StatusOK, items)
}

func (app *App) createDefect(c *gin.Context) {
	var input models.NewDefect
	if err := c.ShouldBindJSON(&input); err != nil {
		app.bindError(c, err)
		return
	}
	ctx := c.Request.Context()

	var defect *models.Defect
	err := app.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var err error
		defect, err = models.CreateDefect(ctx, tx, &input)
		if err != nil {
			return err
		}
		return models.LogActivity(ctx, tx, "created",
			"Defect created for "+defect.SiteName,
			defect.StationId, defect.TenantId, "defect", defect.ID)
	})
	if err != nil {
		if errors.Is(err, models.ErrTenantStationMismatch) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		app.respondError(c, "Tenant", err)
		return
	}

	// Re-read to pick up the station and tenant names for the response.
	created, err := models.GetDefect(ctx, app.db, defect.ID)
	if err != nil {
		app.respondError(c, "Defect", err)
		return
	}
	c.JSON(http.StatusCreated, models.NewDefectView(created))
}

func (app *App) updateDefect(c *gin.Context) {
	id, ok := intParam(c, "id")
	if !ok {
		return
	}
	var input models.UpdateDefectInput
	if err := c.ShouldBindJSON(&input); err != nil {
		app.bindError(c, err)
		return
	}
	ctx := c.Request.Context()

	var defect *models.Defect
	err := app.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var err error
		defect, err = models.UpdateDefect(ctx, tx, id, &input)
		if err != nil {
			return err
		}
		return models.LogActivity(ctx, tx, "updated",
			fmt.Sprintf("Defect %d updated for %s", defect.ID, defect.SiteName),
			defect.StationId, defect.TenantId, "defect", defect.ID)
	})
	if err != nil {
		app.respondError(c, "Defect", err)
		return
	}
	c.JSON(http.StatusOK, models.NewDefectView(defect))
}
