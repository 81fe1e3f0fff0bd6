package main

import (
	"net/http"

	"bitbucket.org/mmdatafocus/firesafety_backend/models"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

func (app *App) getNotes(c *gin.Context) {
	notes, err := models.GetNotes(c.Request.Context(), app.db,
		intQuery(c, "station_id"), intQuery(c, "tenant_id"))
	if err != nil {
		app.respondError(c, "Note", err)
		return
	}
	c.JSON(http.StatusOK, notes)
}

func (app *App) createNote(c *gin.Context) {
	var input models.NewNote
	if err := c.ShouldBindJSON(&input); err != nil {
		app.bindError(c, err)
		return
	}
	ctx := c.Request.Context()

	var note *models.Note
	err := app.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var err error
		note, err = models.CreateNote(ctx, tx, &input)
		if err != nil {
			return err
		}
		return models.LogActivity(ctx, tx, "note",
			"Note added: "+truncate(note.Content, 50),
			note.StationId, note.TenantId, "note", note.ID)
	})
	if err != nil {
		app.respondError(c, "Note", err)
		return
	}
	c.JSON(http.StatusCreated, note)
}

func (app *App) deleteNote(c *gin.Context) {
	id, ok := intParam(c, "id")
	if !ok {
		return
	}
	if err := models.DeleteNote(c.Request.Context(), app.db, id); err != nil {
		app.respondError(c, "Note", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}
