package main

import (
	"net/http"
	"time"

	"bitbucket.org/mmdatafocus/firesafety_backend/models"
	"bitbucket.org/mmdatafocus/firesafety_backend/models/reports"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

func (app *App) getDashboard(c *gin.Context) {
	dashboard, err := reports.GetDashboard(c.Request.Context(), app.db)
	if err != nil {
		app.respondError(c, "Dashboard", err)
		return
	}
	c.JSON(http.StatusOK, dashboard)
}

func (app *App) getAnalytics(c *gin.Context) {
	analytics, err := reports.GetAnalytics(c.Request.Context(), app.db)
	if err != nil {
		app.respondError(c, "Analytics", err)
		return
	}
	c.JSON(http.StatusOK, analytics)
}

func (app *App) getMonthlyReport(c *gin.Context) {
	now := time.Now()
	month := intQuery(c, "month")
	if month < 1 || month > 12 {
		month = int(now.Month())
	}
	year := intQuery(c, "year")
	if year <= 0 {
		year = now.Year()
	}

	report, err := reports.GetMonthlyReport(c.Request.Context(), app.db, month, year)
	if err != nil {
		app.respondError(c, "Report", err)
		return
	}
	c.JSON(http.StatusOK, report)
}

func (app *App) getAfssSchedule(c *gin.Context) {
	month := intQuery(c, "month")
	if month < 0 || month > 12 {
		month = 0
	}
	rows, err := reports.GetAfssSchedule(c.Request.Context(), app.db, month)
	if err != nil {
		app.respondError(c, "Schedule", err)
		return
	}
	c.JSON(http.StatusOK, rows)
}

func (app *App) getFireSafetySchedule(c *gin.Context) {
	rows, err := reports.GetFireSafetySchedule(c.Request.Context(), app.db)
	if err != nil {
		app.respondError(c, "Schedule", err)
		return
	}
	c.JSON(http.StatusOK, rows)
}

type fireSafetyScheduleInput struct {
	HasFireSafetySchedule   *bool   `json:"has_fire_safety_schedule"`
	FireSafetyScheduleNotes *string `json:"fire_safety_schedule_notes"`
}

// updateFireSafetySchedule flips the FSS flag and notes on a station and
// records the change in the activity log.
func (app *App) updateFireSafetySchedule(c *gin.Context) {
	id, ok := intParam(c, "id")
	if !ok {
		return
	}
	var input fireSafetyScheduleInput
	if err := c.ShouldBindJSON(&input); err != nil {
		app.bindError(c, err)
		return
	}
	ctx := c.Request.Context()

	err := app.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		station, err := models.UpdateStation(ctx, tx, id, &models.UpdateStationInput{
			HasFireSafetySchedule:   input.HasFireSafetySchedule,
			FireSafetyScheduleNotes: input.FireSafetyScheduleNotes,
		})
		if err != nil {
			return err
		}
		description := "Fire Safety Schedule updated for " + station.Name
		if input.HasFireSafetySchedule != nil {
			if *input.HasFireSafetySchedule {
				description = "Fire Safety Schedule enabled for " + station.Name
			} else {
				description = "Fire Safety Schedule disabled for " + station.Name
			}
		}
		return models.LogActivity(ctx, tx, "updated", description,
			&station.ID, nil, "station", station.ID)
	})
	if err != nil {
		app.respondError(c, "Station", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

func (app *App) getFilterOptions(c *gin.Context) {
	opts, err := reports.GetFilterOptions(c.Request.Context(), app.db)
	if err != nil {
		app.respondError(c, "Filters", err)
		return
	}
	c.JSON(http.StatusOK, opts)
}
