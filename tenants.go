package main

import (
	"errors"
	"net/http"
	"strings"

	"bitbucket.org/mmdatafocus/firesafety_backend/models"
	"bitbucket.org/mmdatafocus/firesafety_backend/utils"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

func (app *App) getTenants(c *gin.Context) {
	filter := models.TenantFilter{
		Search:          strings.TrimSpace(c.Query("search")),
		Priority:        c.Query("priority"),
		FscStatus:       c.Query("fsc_status"),
		Region:          c.Query("region"),
		StationId:       intQuery(c, "station_id"),
		PropertyManager: c.Query("property_manager"),
		LeaseStatus:     c.Query("lease_status"),
		Industry:        c.Query("industry"),
		HasFss:          c.Query("has_fss"),
		Limit:           intQuery(c, "limit"),
		Offset:          intQuery(c, "offset"),
	}

	tenants, total, err := models.GetTenants(c.Request.Context(), app.db, filter)
	if err != nil {
		app.respondError(c, "Tenant", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"total":   total,
		"tenants": models.NewTenantViews(tenants),
	})
}

// tenantDefect decorates a defect with its attached documents for the tenant
// detail view.
type tenantDefect struct {
	models.DefectView
	Documents []*models.Document `json:"documents"`
}

type tenantDetail struct {
	models.TenantView
	Defects             []tenantDefect                `json:"defects"`
	Notes               []*models.Note                `json:"notes"`
	Documents           []*models.Document            `json:"documents"`
	DocumentsByCategory map[string][]*models.Document `json:"documents_by_category"`
	Communications      []*models.Communication       `json:"communications"`
	Activities          []*models.Activity            `json:"activities"`
}

func (app *App) getTenant(c *gin.Context) {
	id, ok := intParam(c, "id")
	if !ok {
		return
	}
	ctx := c.Request.Context()

	tenant, err := models.GetTenant(ctx, app.db, id)
	if err != nil {
		app.respondError(c, "Tenant", err)
		return
	}

	// The tenant's own defects plus the station-wide ones that were never
	// linked to a specific tenant.
	defects, err := models.GetDefects(ctx, app.db, models.DefectFilter{TenantId: id})
	if err != nil {
		app.respondError(c, "Tenant", err)
		return
	}
	stationLevel, err := models.GetStationLevelDefects(ctx, app.db, tenant.StationId)
	if err != nil {
		app.respondError(c, "Tenant", err)
		return
	}
	defects = append(defects, stationLevel...)

	defectItems := make([]tenantDefect, 0, len(defects))
	for _, d := range defects {
		docs, err := models.GetDocuments(ctx, app.db, models.DocumentFilter{DefectId: d.ID})
		if err != nil {
			app.respondError(c, "Tenant", err)
			return
		}
		defectItems = append(defectItems, tenantDefect{
			DefectView: models.NewDefectView(d),
			Documents:  docs,
		})
	}

	notes, err := models.GetNotes(ctx, app.db, 0, id)
	if err != nil {
		app.respondError(c, "Tenant", err)
		return
	}
	documents, err := models.GetDocuments(ctx, app.db, models.DocumentFilter{TenantId: id})
	if err != nil {
		app.respondError(c, "Tenant", err)
		return
	}
	comms, err := models.GetCommunications(ctx, app.db, id)
	if err != nil {
		app.respondError(c, "Tenant", err)
		return
	}
	activities, err := models.GetTenantActivities(ctx, app.db, id, 20)
	if err != nil {
		app.respondError(c, "Tenant", err)
		return
	}

	c.JSON(http.StatusOK, tenantDetail{
		TenantView:          models.NewTenantView(tenant),
		Defects:             defectItems,
		Notes:               notes,
		Documents:           documents,
		DocumentsByCategory: models.GroupDocumentsByCategory(documents),
		Communications:      comms,
		Activities:          activities,
	})
}

func (app *App) updateTenant(c *gin.Context) {
	id, ok := intParam(c, "id")
	if !ok {
		return
	}
	var input models.UpdateTenantInput
	if err := c.ShouldBindJSON(&input); err != nil {
		app.bindError(c, err)
		return
	}
	ctx := c.Request.Context()

	var tenant *models.Tenant
	err := app.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var changes []string
		var err error
		tenant, changes, err = models.UpdateTenant(ctx, tx, id, &input)
		if err != nil {
			return err
		}
		if len(changes) == 0 {
			return nil
		}
		if len(changes) > 3 {
			changes = changes[:3]
		}
		return models.LogActivity(ctx, tx, "updated",
			"Tenant "+tenant.TenantName+": "+strings.Join(changes, "; "),
			&tenant.StationId, &tenant.ID, "tenant", tenant.ID)
	})
	if err != nil {
		if errors.Is(err, utils.ErrorRecordNotFound) {
			app.respondError(c, "Tenant", err)
			return
		}
		// Phone validation failures land here.
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, models.NewTenantView(tenant))
}
