package reports

import (
	"context"

	"bitbucket.org/mmdatafocus/firesafety_backend/models"
	"gorm.io/gorm"
)

// FssStationRow is one station in the fire-safety-schedule coverage view,
// with a brief line per tenant.
type FssStationRow struct {
	StationId     int             `json:"station_id"`
	StationName   string          `json:"station_name"`
	Code          *string         `json:"code"`
	Region        *string         `json:"region"`
	HasFss        *bool           `json:"has_fss"`
	FssNotes      *string         `json:"fss_notes"`
	TotalTenants  int             `json:"total_tenants"`
	FssTenants    int             `json:"fss_tenants"`
	NonFssTenants int             `json:"non_fss_tenants"`
	Tenants       []FssTenantBrief `json:"tenants"`
}

type FssTenantBrief struct {
	Id          int              `json:"id"`
	TenantName  string           `json:"tenant_name"`
	HasFss      *bool            `json:"has_fss"`
	FssNotes    *string          `json:"fss_notes"`
	LeaseStatus *string          `json:"lease_status"`
	FscStatus   models.FscStatus `json:"fsc_status"`
}

func GetFireSafetySchedule(ctx context.Context, db *gorm.DB) ([]FssStationRow, error) {
	var stations []*models.Station
	if err := db.WithContext(ctx).Order("name").Find(&stations).Error; err != nil {
		return nil, err
	}

	rows := []FssStationRow{}
	for _, s := range stations {
		tenants, err := models.GetStationTenants(ctx, db, s.ID)
		if err != nil {
			return nil, err
		}
		fssCount := 0
		briefs := make([]FssTenantBrief, 0, len(tenants))
		for _, t := range tenants {
			if t.HasFireSafetySchedule != nil && *t.HasFireSafetySchedule {
				fssCount++
			}
			briefs = append(briefs, FssTenantBrief{
				Id:          t.ID,
				TenantName:  t.TenantName,
				HasFss:      t.HasFireSafetySchedule,
				FssNotes:    t.FireSafetyScheduleNotes,
				LeaseStatus: t.LeaseStatus,
				FscStatus:   t.FscStatus,
			})
		}
		rows = append(rows, FssStationRow{
			StationId:     s.ID,
			StationName:   s.Name,
			Code:          s.Code,
			Region:        s.Region,
			HasFss:        s.HasFireSafetySchedule,
			FssNotes:      s.FireSafetyScheduleNotes,
			TotalTenants:  len(tenants),
			FssTenants:    fssCount,
			NonFssTenants: len(tenants) - fssCount,
			Tenants:       briefs,
		})
	}
	return rows, nil
}
