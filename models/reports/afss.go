package reports

import (
	"context"

	"bitbucket.org/mmdatafocus/firesafety_backend/models"
	"gorm.io/gorm"
)

// AfssScheduleRow is one station on the AFSS inspection schedule with its
// active-tenant certification tallies. Status summarizes the station:
// Compliant when nothing is outstanding, Pending while certificates trickle
// in, Outstanding when none have arrived.
type AfssScheduleRow struct {
	StationId             int     `json:"station_id"`
	StationName           string  `json:"station_name"`
	Code                  *string `json:"code"`
	AfssDueMonth          *int    `json:"afss_due_month"`
	AfssDueMonthName      string  `json:"afss_due_month_name"`
	TenantFscDueMonth     *int    `json:"tenant_fsc_due_month"`
	TenantFscDueMonthName string  `json:"tenant_fsc_due_month_name"`
	InspectionMonth       *int    `json:"inspection_month"`
	InspectionMonthName   string  `json:"inspection_month_name"`
	LeaseTypeCategory     *string `json:"lease_type_category"`
	AfssLikely            *string `json:"afss_likely"`
	HasFss                *bool   `json:"has_fss"`
	TotalTenants          int     `json:"total_tenants"`
	FscReceived           int     `json:"fsc_received"`
	FscOutstanding        int     `json:"fsc_outstanding"`
	Status                string  `json:"status"`
}

// GetAfssSchedule lists stations on the AFSS schedule, optionally one month
// only, ordered by due month then name.
func GetAfssSchedule(ctx context.Context, db *gorm.DB, month int) ([]AfssScheduleRow, error) {
	dbCtx := db.WithContext(ctx).Model(&models.Station{}).Where("afss_due_month IS NOT NULL")
	if month > 0 {
		dbCtx = dbCtx.Where("afss_due_month = ?", month)
	}

	var stations []*models.Station
	if err := dbCtx.Order("afss_due_month, name").Find(&stations).Error; err != nil {
		return nil, err
	}

	rows := []AfssScheduleRow{}
	for _, s := range stations {
		tenants, err := models.GetStationTenants(ctx, db, s.ID)
		if err != nil {
			return nil, err
		}
		active, received := 0, 0
		for _, t := range tenants {
			if !models.IsActiveLease(t.LeaseStatus) {
				continue
			}
			active++
			if models.IsFscResolved(t.FscStatus) {
				received++
			}
		}
		outstanding := active - received

		status := "Outstanding"
		switch {
		case outstanding == 0 && active > 0:
			status = "Compliant"
		case received > 0:
			status = "Pending"
		}

		rows = append(rows, AfssScheduleRow{
			StationId:             s.ID,
			StationName:           s.Name,
			Code:                  s.Code,
			AfssDueMonth:          s.AfssDueMonth,
			AfssDueMonthName:      models.MonthName(s.AfssDueMonth),
			TenantFscDueMonth:     s.TenantFscDueMonth,
			TenantFscDueMonthName: models.MonthName(s.TenantFscDueMonth),
			InspectionMonth:       s.InspectionMonth,
			InspectionMonthName:   models.MonthName(s.InspectionMonth),
			LeaseTypeCategory:     s.LeaseTypeCategory,
			AfssLikely:            s.AfssLikely,
			HasFss:                s.HasFireSafetySchedule,
			TotalTenants:          active,
			FscReceived:           received,
			FscOutstanding:        outstanding,
			Status:                status,
		})
	}
	return rows, nil
}
