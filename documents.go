package main

import (
	"net/http"
	"os"
	"path/filepath"

	"bitbucket.org/mmdatafocus/firesafety_backend/models"
	"bitbucket.org/mmdatafocus/firesafety_backend/utils"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// maxUploadBytes caps document uploads; gin's MaxMultipartMemory only bounds
// in-memory buffering, so the size check happens here.
const maxUploadBytes = 50 << 20

func (app *App) getDocuments(c *gin.Context) {
	filter := models.DocumentFilter{
		StationId: intQuery(c, "station_id"),
		TenantId:  intQuery(c, "tenant_id"),
		DefectId:  intQuery(c, "defect_id"),
		Category:  c.Query("category"),
	}
	docs, err := models.GetDocuments(c.Request.Context(), app.db, filter)
	if err != nil {
		app.respondError(c, "Document", err)
		return
	}
	c.JSON(http.StatusOK, docs)
}

func (app *App) uploadDocument(c *gin.Context) {
	file, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "no file provided"})
		return
	}
	if file.Filename == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "no file selected"})
		return
	}
	if file.Size > maxUploadBytes {
		c.JSON(http.StatusRequestEntityTooLarge, gin.H{"error": "file exceeds the 50MB limit"})
		return
	}

	stored := utils.GenerateStoredFilename(file.Filename)
	path := filepath.Join(app.uploadDir, stored)
	if err := c.SaveUploadedFile(file, path); err != nil {
		app.respondError(c, "Document", err)
		return
	}

	doc := &models.Document{
		StationId:        formIntPtr(c, "station_id"),
		TenantId:         formIntPtr(c, "tenant_id"),
		DefectId:         formIntPtr(c, "defect_id"),
		Filename:         stored,
		OriginalFilename: filepath.Base(file.Filename),
		FilePath:         path,
		FileSize:         &file.Size,
		MimeType:         strPtrOrNil(file.Header.Get("Content-Type")),
		Category:         c.DefaultPostForm("category", "General"),
		Description:      strPtrOrNil(c.PostForm("description")),
	}
	ctx := c.Request.Context()
	err = app.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := models.CreateDocument(ctx, tx, doc); err != nil {
			return err
		}
		return models.LogActivity(ctx, tx, "uploaded",
			"Document uploaded: "+doc.OriginalFilename+" ("+doc.Category+")",
			doc.StationId, doc.TenantId, "document", doc.ID)
	})
	if err != nil {
		_ = os.Remove(path)
		app.respondError(c, "Document", err)
		return
	}
	c.JSON(http.StatusCreated, doc)
}

func (app *App) downloadDocument(c *gin.Context) {
	id, ok := intParam(c, "id")
	if !ok {
		return
	}
	doc, err := models.GetDocument(c.Request.Context(), app.db, id)
	if err != nil {
		app.respondError(c, "Document", err)
		return
	}
	if _, err := os.Stat(doc.FilePath); err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "file not found on disk"})
		return
	}
	c.FileAttachment(doc.FilePath, doc.OriginalFilename)
}

func (app *App) deleteDocument(c *gin.Context) {
	id, ok := intParam(c, "id")
	if !ok {
		return
	}
	doc, err := models.DeleteDocument(c.Request.Context(), app.db, id)
	if err != nil {
		app.respondError(c, "Document", err)
		return
	}
	if err := os.Remove(doc.FilePath); err != nil && !os.IsNotExist(err) {
		app.logger.Warn("failed to remove stored file " + doc.FilePath + ": " + err.Error())
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

func (app *App) getDocumentCategories(c *gin.Context) {
	c.JSON(http.StatusOK, models.DocumentCategories)
}
