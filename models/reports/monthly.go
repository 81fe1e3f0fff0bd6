package reports

import (
	"context"
	"sort"

	"bitbucket.org/mmdatafocus/firesafety_backend/models"
	"gorm.io/gorm"
)

// MonthlyReport is the client-facing compliance report for one month.
type MonthlyReport struct {
	ReportMonth     int    `json:"report_month"`
	ReportMonthName string `json:"report_month_name"`
	ReportYear      int    `json:"report_year"`

	TotalStations int64 `json:"total_stations"`
	TotalTenants  int64 `json:"total_tenants"`
	ActiveTenants int64 `json:"active_tenants"`

	ComplianceRate float64 `json:"compliance_rate"`
	FscPct         float64 `json:"fsc_pct"`
	FscReceived    int64   `json:"fsc_received"`
	FscCompliant   int64   `json:"fsc_compliant"`
	FscPending     int64   `json:"fsc_pending"`
	FscOutstanding int64   `json:"fsc_outstanding"`
	FscNa          int64   `json:"fsc_na"`

	FssStations int64 `json:"fss_stations"`
	FssTenants  int64 `json:"fss_tenants"`

	AfssDueThisMonth     []AfssDueStation     `json:"afss_due_this_month"`
	PriorityDistribution map[string]int64     `json:"priority_distribution"`
	OpenDefects          int64                `json:"open_defects"`
	MajorOpenDefects     int64                `json:"major_open_defects"`
	CompletedDefects     int64                `json:"completed_defects"`
	TotalDefects         int64                `json:"total_defects"`
	RegionCompliance     []RegionCompliance   `json:"region_compliance"`
	AfssMonthly          map[string]AfssMonth `json:"afss_monthly"`
}

// AfssDueStation is one station whose AFSS falls due in the report month.
type AfssDueStation struct {
	StationId      int     `json:"station_id"`
	StationName    string  `json:"station_name"`
	Code           *string `json:"code"`
	TotalTenants   int     `json:"total_tenants"`
	FscReceived    int     `json:"fsc_received"`
	FscOutstanding int     `json:"fsc_outstanding"`
	ComplianceRate float64 `json:"compliance_rate"`
}

type RegionCompliance struct {
	Region         string  `json:"region"`
	ActiveTenants  int64   `json:"active_tenants"`
	Compliant      int64   `json:"compliant"`
	ComplianceRate float64 `json:"compliance_rate"`
}

// AfssMonth is the per-month slice of the year-long AFSS overview.
type AfssMonth struct {
	Stations  int64   `json:"stations"`
	Tenants   int64   `json:"tenants"`
	Compliant int64   `json:"compliant"`
	Rate      float64 `json:"rate"`
}

func GetMonthlyReport(ctx context.Context, db *gorm.DB, month, year int) (*MonthlyReport, error) {
	dbCtx := db.WithContext(ctx)
	r := &MonthlyReport{
		ReportMonth:     month,
		ReportMonthName: models.MonthNames[month],
		ReportYear:      year,
	}
	var err error

	if r.TotalStations, err = countRows(dbCtx.Model(&models.Station{})); err != nil {
		return nil, err
	}
	if r.TotalTenants, err = countRows(dbCtx.Model(&models.Tenant{})); err != nil {
		return nil, err
	}
	if r.ActiveTenants, err = countRows(dbCtx.Model(&models.Tenant{}).
		Where("lease_status IN ?", models.ActiveLeaseStatuses)); err != nil {
		return nil, err
	}

	fscCounts := map[models.FscStatus]*int64{
		models.FscStatusReceived:      &r.FscReceived,
		models.FscStatusCompliant:     &r.FscCompliant,
		models.FscStatusPending:       &r.FscPending,
		models.FscStatusOutstanding:   &r.FscOutstanding,
		models.FscStatusNotApplicable: &r.FscNa,
	}
	for status, dst := range fscCounts {
		if *dst, err = countRows(dbCtx.Model(&models.Tenant{}).Where("fsc_status = ?", status)); err != nil {
			return nil, err
		}
	}
	r.ComplianceRate = models.Rate(int(r.FscReceived+r.FscCompliant), int(r.ActiveTenants))
	totalForFsc := r.FscReceived + r.FscCompliant + r.FscPending + r.FscOutstanding
	r.FscPct = models.Rate(int(r.FscReceived+r.FscCompliant), int(totalForFsc))

	if r.FssStations, err = countRows(dbCtx.Model(&models.Station{}).
		Where("has_fire_safety_schedule = ?", true)); err != nil {
		return nil, err
	}
	if r.FssTenants, err = countRows(dbCtx.Model(&models.Tenant{}).
		Where("has_fire_safety_schedule = ?", true)); err != nil {
		return nil, err
	}

	if r.AfssDueThisMonth, err = afssDueStations(ctx, db, month); err != nil {
		return nil, err
	}

	r.PriorityDistribution = map[string]int64{}
	for _, p := range []models.Priority{models.PriorityCritical, models.PriorityHigh, models.PriorityMedium, models.PriorityLow} {
		n, err := countRows(dbCtx.Model(&models.Tenant{}).Where("priority = ?", p))
		if err != nil {
			return nil, err
		}
		r.PriorityDistribution[string(p)] = n
	}

	if r.OpenDefects, err = countRows(dbCtx.Model(&models.Defect{}).
		Where("progress IN ?", models.OpenDefectProgress)); err != nil {
		return nil, err
	}
	if r.MajorOpenDefects, err = countRows(dbCtx.Model(&models.Defect{}).
		Where("risk = ? AND progress IN ?", models.DefectRiskMajor, models.OpenDefectProgress)); err != nil {
		return nil, err
	}
	if r.CompletedDefects, err = countRows(dbCtx.Model(&models.Defect{}).
		Where("progress = ?", models.DefectProgressCompleted)); err != nil {
		return nil, err
	}
	if r.TotalDefects, err = countRows(dbCtx.Model(&models.Defect{})); err != nil {
		return nil, err
	}

	if r.RegionCompliance, err = regionCompliance(dbCtx); err != nil {
		return nil, err
	}
	if r.AfssMonthly, err = afssMonthlyOverview(dbCtx); err != nil {
		return nil, err
	}
	return r, nil
}

func afssDueStations(ctx context.Context, db *gorm.DB, month int) ([]AfssDueStation, error) {
	var stations []*models.Station
	err := db.WithContext(ctx).Where("afss_due_month = ?", month).Find(&stations).Error
	if err != nil {
		return nil, err
	}

	rows := []AfssDueStation{}
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
		rows = append(rows, AfssDueStation{
			StationId:      s.ID,
			StationName:    s.Name,
			Code:           s.Code,
			TotalTenants:   active,
			FscReceived:    received,
			FscOutstanding: active - received,
			ComplianceRate: models.Rate(received, active),
		})
	}
	return rows, nil
}

// regionCompliance tallies active and compliant tenants per region, sorted by
// compliance rate descending.
func regionCompliance(dbCtx *gorm.DB) ([]RegionCompliance, error) {
	var regions []string
	err := dbCtx.Model(&models.Tenant{}).Distinct("region").
		Where("region IS NOT NULL").Pluck("region", &regions).Error
	if err != nil {
		return nil, err
	}

	rows := []RegionCompliance{}
	for _, region := range regions {
		active, err := countRows(dbCtx.Model(&models.Tenant{}).
			Where("region = ? AND lease_status IN ?", region, models.ActiveLeaseStatuses))
		if err != nil {
			return nil, err
		}
		compliant, err := countRows(dbCtx.Model(&models.Tenant{}).
			Where("region = ? AND fsc_status IN ?", region, models.FscResolvedStatuses))
		if err != nil {
			return nil, err
		}
		rows = append(rows, RegionCompliance{
			Region:         region,
			ActiveTenants:  active,
			Compliant:      compliant,
			ComplianceRate: models.Rate(int(compliant), int(active)),
		})
	}
	sort.SliceStable(rows, func(i, j int) bool {
		return rows[i].ComplianceRate > rows[j].ComplianceRate
	})
	return rows, nil
}

func afssMonthlyOverview(dbCtx *gorm.DB) (map[string]AfssMonth, error) {
	overview := make(map[string]AfssMonth, 12)
	for m := 1; m <= 12; m++ {
		stations, err := countRows(dbCtx.Model(&models.Station{}).Where("afss_due_month = ?", m))
		if err != nil {
			return nil, err
		}
		activeQ := dbCtx.Model(&models.Tenant{}).
			Joins("JOIN stations ON stations.id = tenants.station_id").
			Where("stations.afss_due_month = ?", m).
			Where("tenants.lease_status IN ?", models.ActiveLeaseStatuses)
		tenants, err := countRows(activeQ)
		if err != nil {
			return nil, err
		}
		compliant, err := countRows(dbCtx.Model(&models.Tenant{}).
			Joins("JOIN stations ON stations.id = tenants.station_id").
			Where("stations.afss_due_month = ?", m).
			Where("tenants.lease_status IN ?", models.ActiveLeaseStatuses).
			Where("tenants.fsc_status IN ?", models.FscResolvedStatuses))
		if err != nil {
			return nil, err
		}
		overview[models.MonthNames[m]] = AfssMonth{
			Stations:  stations,
			Tenants:   tenants,
			Compliant: compliant,
			Rate:      models.Rate(int(compliant), int(tenants)),
		}
	}
	return overview, nil
}
