package reports

import (
	"context"
	"encoding/csv"
	"io"
	"strconv"

	"bitbucket.org/mmdatafocus/firesafety_backend/models"
	"gorm.io/gorm"
)

var tenantExportHeader = []string{
	"Station", "Tenant Name", "Trading Name", "File Number", "Lease ID",
	"Region", "Industry", "Lease Status", "Property Manager",
	"Priority", "FSC Status", "AFSS Month", "Open Defects", "Major Defects",
	"Contact Name", "Contact Phone", "Contact Email",
	"Has FSS", "Fire Safety Schedule Notes", "Data Source",
}

// WriteTenantsCsv streams the full tenant list as CSV, ordered by station
// then tenant name. The column set is a stable export contract.
func WriteTenantsCsv(ctx context.Context, db *gorm.DB, w io.Writer) error {
	var tenants []*models.Tenant
	err := db.WithContext(ctx).Model(&models.Tenant{}).
		Joins("JOIN stations ON stations.id = tenants.station_id").
		Order("stations.name, tenants.tenant_name").
		Preload("Station").
		Find(&tenants).Error
	if err != nil {
		return err
	}

	writer := csv.NewWriter(w)
	if err := writer.Write(tenantExportHeader); err != nil {
		return err
	}

	str := func(v *string) string {
		if v == nil {
			return ""
		}
		return *v
	}

	for _, t := range tenants {
		stationName := ""
		if t.Station != nil {
			stationName = t.Station.Name
		}
		hasFss := "No"
		if t.HasFireSafetySchedule != nil && *t.HasFireSafetySchedule {
			hasFss = "Yes"
		}
		record := []string{
			stationName, t.TenantName, str(t.TradingName), str(t.FileNumber), str(t.LeaseId),
			str(t.Region), str(t.StandardIndustryClass), str(t.LeaseStatus), str(t.PropertyManager),
			string(t.Priority), string(t.FscStatus), models.MonthName(t.AfssMonth),
			strconv.Itoa(t.OpenDefects), strconv.Itoa(t.MajorDefects),
			str(t.ContactName), str(t.ContactPhone), str(t.ContactEmail),
			hasFss, str(t.FireSafetyScheduleNotes), str(t.DataSource),
		}
		if err := writer.Write(record); err != nil {
			return err
		}
	}
	writer.Flush()
	return writer.Error()
}
