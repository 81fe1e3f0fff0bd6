package reports

import (
	"context"

	"bitbucket.org/mmdatafocus/firesafety_backend/models"
	"gorm.io/gorm"
)

// Dashboard is the landing-page aggregate: portfolio counts, priority and
// certification distributions, defect totals, the AFSS month histogram and
// the top priority-action tenants.
type Dashboard struct {
	TotalStations int64 `json:"total_stations"`
	TotalTenants  int64 `json:"total_tenants"`
	AfssStations  int64 `json:"afss_stations"`
	FssStations   int64 `json:"fss_stations"`
	FssTenants    int64 `json:"fss_tenants"`

	Critical int64 `json:"critical"`
	High     int64 `json:"high"`
	Medium   int64 `json:"medium"`
	Low      int64 `json:"low"`

	FscReceived    int64   `json:"fsc_received"`
	FscCompliant   int64   `json:"fsc_compliant"`
	FscPending     int64   `json:"fsc_pending"`
	FscOutstanding int64   `json:"fsc_outstanding"`
	FscNa          int64   `json:"fsc_na"`
	FscPct         float64 `json:"fsc_pct"`

	TotalDefects     int64 `json:"total_defects"`
	OpenDefects      int64 `json:"open_defects"`
	MajorDefects     int64 `json:"major_defects"`
	MinorDefects     int64 `json:"minor_defects"`
	CompletedDefects int64 `json:"completed_defects"`

	AfssByMonth      map[string]int64    `json:"afss_by_month"`
	PriorityActions  []models.TenantView `json:"priority_actions"`
	RecentActivities []*models.Activity  `json:"recent_activities"`
	ComplianceRate   float64             `json:"compliance_rate"`
	ActiveTenants    int64               `json:"active_tenants"`

	PriorityDistribution map[string]int64 `json:"priority_distribution"`
	FscDistribution      map[string]int64 `json:"fsc_distribution"`
}

func GetDashboard(ctx context.Context, db *gorm.DB) (*Dashboard, error) {
	dbCtx := db.WithContext(ctx)
	d := &Dashboard{}
	var err error

	if d.TotalStations, err = countRows(dbCtx.Model(&models.Station{})); err != nil {
		return nil, err
	}
	if d.TotalTenants, err = countRows(dbCtx.Model(&models.Tenant{})); err != nil {
		return nil, err
	}
	if d.AfssStations, err = countRows(dbCtx.Model(&models.Station{}).Where("afss_due_month IS NOT NULL")); err != nil {
		return nil, err
	}
	if d.FssStations, err = countRows(dbCtx.Model(&models.Station{}).Where("has_fire_safety_schedule = ?", true)); err != nil {
		return nil, err
	}
	if d.FssTenants, err = countRows(dbCtx.Model(&models.Tenant{}).Where("has_fire_safety_schedule = ?", true)); err != nil {
		return nil, err
	}

	priorityCounts := map[models.Priority]*int64{
		models.PriorityCritical: &d.Critical,
		models.PriorityHigh:     &d.High,
		models.PriorityMedium:   &d.Medium,
		models.PriorityLow:      &d.Low,
	}
	for priority, dst := range priorityCounts {
		if *dst, err = countRows(dbCtx.Model(&models.Tenant{}).Where("priority = ?", priority)); err != nil {
			return nil, err
		}
	}

	fscCounts := map[models.FscStatus]*int64{
		models.FscStatusReceived:      &d.FscReceived,
		models.FscStatusCompliant:     &d.FscCompliant,
		models.FscStatusPending:       &d.FscPending,
		models.FscStatusOutstanding:   &d.FscOutstanding,
		models.FscStatusNotApplicable: &d.FscNa,
	}
	for status, dst := range fscCounts {
		if *dst, err = countRows(dbCtx.Model(&models.Tenant{}).Where("fsc_status = ?", status)); err != nil {
			return nil, err
		}
	}

	if d.TotalDefects, err = countRows(dbCtx.Model(&models.Defect{})); err != nil {
		return nil, err
	}
	if d.OpenDefects, err = countRows(dbCtx.Model(&models.Defect{}).
		Where("progress IN ?", models.OpenDefectProgress)); err != nil {
		return nil, err
	}
	if d.MajorDefects, err = countRows(dbCtx.Model(&models.Defect{}).
		Where("risk IN ? AND progress IN ?", models.MajorDefectRisks, models.OpenDefectProgress)); err != nil {
		return nil, err
	}
	if d.MinorDefects, err = countRows(dbCtx.Model(&models.Defect{}).
		Where("risk = ? AND progress IN ?", models.DefectRiskMinor, models.OpenDefectProgress)); err != nil {
		return nil, err
	}
	if d.CompletedDefects, err = countRows(dbCtx.Model(&models.Defect{}).
		Where("progress = ?", models.DefectProgressCompleted)); err != nil {
		return nil, err
	}

	if d.AfssByMonth, err = afssMonthHistogram(dbCtx); err != nil {
		return nil, err
	}

	var priorityTenants []*models.Tenant
	err = dbCtx.Model(&models.Tenant{}).
		Where("priority IN ?", []models.Priority{models.PriorityCritical, models.PriorityHigh}).
		Order("major_defects DESC, open_defects DESC").
		Limit(20).Preload("Station").
		Find(&priorityTenants).Error
	if err != nil {
		return nil, err
	}
	d.PriorityActions = models.NewTenantViews(priorityTenants)

	if d.RecentActivities, err = models.GetActivities(ctx, db, 10); err != nil {
		return nil, err
	}

	if d.ActiveTenants, err = countRows(dbCtx.Model(&models.Tenant{}).
		Where("lease_status IN ?", models.ActiveLeaseStatuses)); err != nil {
		return nil, err
	}
	d.ComplianceRate = models.Rate(int(d.FscReceived+d.FscCompliant), int(d.ActiveTenants))
	totalForFsc := d.FscReceived + d.FscCompliant + d.FscPending + d.FscOutstanding
	d.FscPct = models.Rate(int(d.FscReceived+d.FscCompliant), int(totalForFsc))

	d.PriorityDistribution = map[string]int64{
		"Critical": d.Critical, "High": d.High,
		"Medium": d.Medium, "Low": d.Low,
	}
	d.FscDistribution = map[string]int64{
		"Received": d.FscReceived, "Compliant": d.FscCompliant,
		"Pending": d.FscPending, "Outstanding": d.FscOutstanding,
		"Not Applicable": d.FscNa,
	}
	return d, nil
}

// afssMonthHistogram counts stations per AFSS due month, keyed by month name
// with all twelve months present.
func afssMonthHistogram(dbCtx *gorm.DB) (map[string]int64, error) {
	var buckets []struct {
		Month int
		Total int64
	}
	err := dbCtx.Model(&models.Station{}).
		Select("afss_due_month AS month, COUNT(*) AS total").
		Where("afss_due_month IS NOT NULL").
		Group("afss_due_month").
		Scan(&buckets).Error
	if err != nil {
		return nil, err
	}

	hist := make(map[string]int64, 12)
	for m := 1; m <= 12; m++ {
		hist[models.MonthNames[m]] = 0
	}
	for _, b := range buckets {
		if name, ok := models.MonthNames[b.Month]; ok {
			hist[name] = b.Total
		}
	}
	return hist, nil
}
