package reports

import (
	"bytes"
	"context"
	"encoding/csv"
	"testing"

	"bitbucket.org/mmdatafocus/firesafety_backend/models"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	if err := models.MigrateSchema(db); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return db
}

func strp(s string) *string { return &s }

func intp(i int) *int { return &i }

func boolp(b bool) *bool { return &b }

func seedStation(t *testing.T, db *gorm.DB, station *models.Station) *models.Station {
	t.Helper()
	if err := db.Create(station).Error; err != nil {
		t.Fatalf("seed station: %v", err)
	}
	return station
}

func seedTenant(t *testing.T, db *gorm.DB, tenant *models.Tenant) *models.Tenant {
	t.Helper()
	if err := db.Create(tenant).Error; err != nil {
		t.Fatalf("seed tenant: %v", err)
	}
	return tenant
}

func TestDashboardEmptyDatabase(t *testing.T) {
	db := newTestDB(t)

	d, err := GetDashboard(context.Background(), db)
	if err != nil {
		t.Fatalf("GetDashboard: %v", err)
	}
	// Rates must clamp the denominator, never divide by zero.
	if d.ComplianceRate != 0 {
		t.Errorf("compliance_rate = %v, want 0", d.ComplianceRate)
	}
	if d.FscPct != 0 {
		t.Errorf("fsc_pct = %v, want 0", d.FscPct)
	}
	if len(d.AfssByMonth) != 12 {
		t.Errorf("afss_by_month has %d entries, want 12", len(d.AfssByMonth))
	}
	if d.PriorityDistribution["Critical"] != 0 {
		t.Errorf("priority distribution not zeroed: %v", d.PriorityDistribution)
	}
}

func TestDashboardComplianceRate(t *testing.T) {
	db := newTestDB(t)
	station := seedStation(t, db, &models.Station{Name: "Town Hall", State: "NSW", AfssDueMonth: intp(3)})

	seedTenant(t, db, &models.Tenant{
		StationId: station.ID, TenantName: "Cafe",
		LeaseStatus: strp("Current"), FscStatus: models.FscStatusReceived,
	})
	seedTenant(t, db, &models.Tenant{
		StationId: station.ID, TenantName: "Florist",
		LeaseStatus: strp("Current"), FscStatus: models.FscStatusPending,
	})
	seedTenant(t, db, &models.Tenant{
		StationId: station.ID, TenantName: "Old Shop",
		LeaseStatus: strp("Expired"), FscStatus: models.FscStatusOutstanding,
	})

	d, err := GetDashboard(context.Background(), db)
	if err != nil {
		t.Fatalf("GetDashboard: %v", err)
	}
	if d.ActiveTenants != 2 {
		t.Fatalf("active_tenants = %d, want 2", d.ActiveTenants)
	}
	// 1 received of 2 active.
	if d.ComplianceRate != 50.0 {
		t.Errorf("compliance_rate = %v, want 50.0", d.ComplianceRate)
	}
	if d.AfssByMonth["March"] != 1 {
		t.Errorf("afss_by_month[March] = %d, want 1", d.AfssByMonth["March"])
	}
	if d.AfssStations != 1 {
		t.Errorf("afss_stations = %d, want 1", d.AfssStations)
	}
}

func TestAfssScheduleStatus(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()

	compliant := seedStation(t, db, &models.Station{Name: "Alpha", State: "NSW", AfssDueMonth: intp(2)})
	pending := seedStation(t, db, &models.Station{Name: "Beta", State: "NSW", AfssDueMonth: intp(2)})
	outstanding := seedStation(t, db, &models.Station{Name: "Gamma", State: "NSW", AfssDueMonth: intp(5)})
	seedStation(t, db, &models.Station{Name: "Off Schedule", State: "NSW"})

	seedTenant(t, db, &models.Tenant{StationId: compliant.ID, TenantName: "A1",
		LeaseStatus: strp("Current"), FscStatus: models.FscStatusCompliant})
	seedTenant(t, db, &models.Tenant{StationId: pending.ID, TenantName: "B1",
		LeaseStatus: strp("Current"), FscStatus: models.FscStatusReceived})
	seedTenant(t, db, &models.Tenant{StationId: pending.ID, TenantName: "B2",
		LeaseStatus: strp("Holdover"), FscStatus: models.FscStatusPending})
	seedTenant(t, db, &models.Tenant{StationId: outstanding.ID, TenantName: "G1",
		LeaseStatus: strp("Leased"), FscStatus: models.FscStatusOutstanding})

	rows, err := GetAfssSchedule(ctx, db, 0)
	if err != nil {
		t.Fatalf("GetAfssSchedule: %v", err)
	}
	if len(rows) != 3 {
		t.Fatalf("schedule has %d rows, want 3 (stations without a due month excluded)", len(rows))
	}

	byName := map[string]AfssScheduleRow{}
	for _, r := range rows {
		byName[r.StationName] = r
	}
	if got := byName["Alpha"].Status; got != "Compliant" {
		t.Errorf("Alpha status = %s, want Compliant", got)
	}
	if got := byName["Beta"].Status; got != "Pending" {
		t.Errorf("Beta status = %s, want Pending", got)
	}
	if got := byName["Gamma"].Status; got != "Outstanding" {
		t.Errorf("Gamma status = %s, want Outstanding", got)
	}

	// Month filter narrows to that month only.
	feb, err := GetAfssSchedule(ctx, db, 2)
	if err != nil {
		t.Fatalf("GetAfssSchedule(month=2): %v", err)
	}
	if len(feb) != 2 {
		t.Fatalf("february schedule has %d rows, want 2", len(feb))
	}
}

func TestMonthlyReportZeroDenominators(t *testing.T) {
	db := newTestDB(t)

	r, err := GetMonthlyReport(context.Background(), db, 6, 2026)
	if err != nil {
		t.Fatalf("GetMonthlyReport: %v", err)
	}
	if r.ReportMonthName != "June" {
		t.Errorf("report_month_name = %q, want June", r.ReportMonthName)
	}
	if r.ComplianceRate != 0 || r.FscPct != 0 {
		t.Errorf("rates on empty db = %v / %v, want 0 / 0", r.ComplianceRate, r.FscPct)
	}
	if len(r.AfssMonthly) != 12 {
		t.Errorf("afss_monthly has %d entries, want 12", len(r.AfssMonthly))
	}
	for name, m := range r.AfssMonthly {
		if m.Rate != 0 {
			t.Errorf("afss_monthly[%s].rate = %v, want 0", name, m.Rate)
		}
	}
}

func TestAnalyticsDistributions(t *testing.T) {
	db := newTestDB(t)
	station := seedStation(t, db, &models.Station{Name: "Town Hall", State: "NSW"})

	seedTenant(t, db, &models.Tenant{StationId: station.ID, TenantName: "Cafe",
		Region: strp("Metro"), LeaseStatus: strp("Current"), FscStatus: models.FscStatusPending})
	seedTenant(t, db, &models.Tenant{StationId: station.ID, TenantName: "Florist",
		Region: strp("Metro"), FscStatus: models.FscStatusReceived})

	defects := []models.Defect{
		{StationId: &station.ID, SiteName: "Town Hall", Category: strp("Egress"),
			Risk: strp("Major"), Progress: strp("Outstanding")},
		{StationId: &station.ID, SiteName: "Town Hall", Category: strp("Egress"),
			Risk: strp("Minor"), Progress: strp("Completed")},
		{StationId: &station.ID, SiteName: "Town Hall", Category: strp("Signage"),
			Risk: strp("Minor"), Progress: strp("In Progress")},
	}
	for i := range defects {
		if err := db.Create(&defects[i]).Error; err != nil {
			t.Fatalf("seed defect: %v", err)
		}
	}

	a, err := GetAnalytics(context.Background(), db)
	if err != nil {
		t.Fatalf("GetAnalytics: %v", err)
	}
	if a.DefectsByCategory["Egress"] != 2 || a.DefectsByCategory["Signage"] != 1 {
		t.Errorf("defects_by_category = %v", a.DefectsByCategory)
	}
	// Only open defects count toward the per-station chart.
	if a.DefectsByStation["Town Hall"] != 2 {
		t.Errorf("defects_by_station = %v, want Town Hall: 2", a.DefectsByStation)
	}
	if a.RegionDistribution["Metro"] != 2 {
		t.Errorf("region_distribution = %v", a.RegionDistribution)
	}
	if a.FscDistribution["Pending"] != 1 || a.FscDistribution["Received"] != 1 {
		t.Errorf("fsc_distribution = %v", a.FscDistribution)
	}
}

func TestWriteTenantsCsv(t *testing.T) {
	db := newTestDB(t)
	station := seedStation(t, db, &models.Station{Name: "Town Hall", State: "NSW"})
	seedTenant(t, db, &models.Tenant{
		StationId: station.ID, TenantName: "Cafe",
		Priority: models.PriorityHigh, FscStatus: models.FscStatusPending,
		AfssMonth: intp(3), OpenDefects: 2, MajorDefects: 1,
		HasFireSafetySchedule: boolp(true), DataSource: strp("TAM"),
	})

	var buf bytes.Buffer
	if err := WriteTenantsCsv(context.Background(), db, &buf); err != nil {
		t.Fatalf("WriteTenantsCsv: %v", err)
	}

	records, err := csv.NewReader(&buf).ReadAll()
	if err != nil {
		t.Fatalf("parse csv: %v", err)
	}
	if len(records) != 2 {
		t.Fatalf("csv has %d rows, want header + 1", len(records))
	}
	if len(records[0]) != 20 {
		t.Fatalf("header has %d columns, want 20", len(records[0]))
	}
	row := records[1]
	if row[0] != "Town Hall" || row[1] != "Cafe" {
		t.Errorf("row identity = %q/%q", row[0], row[1])
	}
	if row[11] != "March" {
		t.Errorf("AFSS Month = %q, want March", row[11])
	}
	if row[12] != "2" || row[13] != "1" {
		t.Errorf("defect counts = %q/%q, want 2/1", row[12], row[13])
	}
	if row[17] != "Yes" {
		t.Errorf("Has FSS = %q, want Yes", row[17])
	}
	if row[19] != "TAM" {
		t.Errorf("Data Source = %q, want TAM", row[19])
	}
}
