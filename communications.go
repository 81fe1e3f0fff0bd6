package main

import (
	"net/http"

	"bitbucket.org/mmdatafocus/firesafety_backend/models"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

func (app *App) getCommunications(c *gin.Context) {
	comms, err := models.GetCommunications(c.Request.Context(), app.db, intQuery(c, "tenant_id"))
	if err != nil {
		app.respondError(c, "Communication", err)
		return
	}
	c.JSON(http.StatusOK, comms)
}

func (app *App) createCommunication(c *gin.Context) {
	var input models.NewCommunication
	if err := c.ShouldBindJSON(&input); err != nil {
		app.bindError(c, err)
		return
	}
	ctx := c.Request.Context()

	var comm *models.Communication
	err := app.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var err error
		comm, err = models.CreateCommunication(ctx, tx, &input)
		if err != nil {
			return err
		}
		subject := comm.CommType
		if comm.Subject != nil && *comm.Subject != "" {
			subject = *comm.Subject
		}
		var stationId *int
		if comm.TenantId != nil {
			if tenant, err := models.GetTenant(ctx, tx, *comm.TenantId); err == nil {
				stationId = &tenant.StationId
			}
		}
		return models.LogActivity(ctx, tx, "communication",
			"Communication logged: "+subject,
			stationId, comm.TenantId, "communication", comm.ID)
	})
	if err != nil {
		app.respondError(c, "Communication", err)
		return
	}
	c.JSON(http.StatusCreated, comm)
}

func (app *App) updateCommunication(c *gin.Context) {
	id, ok := intParam(c, "id")
	if !ok {
		return
	}
	var input models.UpdateCommunicationInput
	if err := c.ShouldBindJSON(&input); err != nil {
		app.bindError(c, err)
		return
	}
	comm, err := models.UpdateCommunication(c.Request.Context(), app.db, id, &input)
	if err != nil {
		app.respondError(c, "Communication", err)
		return
	}
	c.JSON(http.StatusOK, comm)
}
