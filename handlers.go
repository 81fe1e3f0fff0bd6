package main

import (
	"errors"
	"net/http"
	"strconv"

	"bitbucket.org/mmdatafocus/firesafety_backend/config"
	"bitbucket.org/mmdatafocus/firesafety_backend/utils"
	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
)

// respondError maps a model-layer error onto an HTTP response. Not-found
// errors become 404 with the entity name; anything else is logged and hidden
// behind a generic 500.
func (app *App) respondError(c *gin.Context, entity string, err error) {
	if errors.Is(err, utils.ErrorRecordNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": entity + " not found"})
		return
	}
	config.LogError(app.logger, "handlers", c.Request.Method+" "+c.FullPath(), entity, nil, err)
	c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
}

func (app *App) bindError(c *gin.Context, err error) {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		c.JSON(http.StatusBadRequest, gin.H{"error": utils.ProcessValidationErrors(err)})
		return
	}
	c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
}

// intParam parses a positive integer path parameter, writing a 400 itself
// when the value is unusable.
func intParam(c *gin.Context, name string) (int, bool) {
	id, err := strconv.Atoi(c.Param(name))
	if err != nil || id <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid " + name})
		return 0, false
	}
	return id, true
}

func intQuery(c *gin.Context, name string) int {
	n, _ := strconv.Atoi(c.Query(name))
	return n
}

// formIntPtr reads an optional integer form field, nil when absent or
// unparseable.
func formIntPtr(c *gin.Context, name string) *int {
	v := c.PostForm(name)
	if v == "" {
		return nil
	}
	n, err := strconv.Atoi(v)
	if err != nil || n <= 0 {
		return nil
	}
	return &n
}

func strPtrOrNil(v string) *string {
	if v == "" {
		return nil
	}
	return &v
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
