package importer

import (
	"context"
	"sort"
	"testing"

	"bitbucket.org/mmdatafocus/firesafety_backend/config"
	"bitbucket.org/mmdatafocus/firesafety_backend/models"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newTestImporter(t *testing.T, stationNames ...string) *Importer {
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

	imp := &Importer{
		db:         db,
		log:        config.GetLogger(),
		registry:   NewRegistry(),
		stationIds: map[string]int{},
	}
	for _, name := range stationNames {
		key := ResolveKey(name)
		imp.registry.Ensure(key, name)
		station := models.Station{Name: name, State: "NSW"}
		if err := db.Create(&station).Error; err != nil {
			t.Fatalf("create station %s: %v", name, err)
		}
		imp.stationIds[key] = station.ID
	}
	for key := range imp.stationIds {
		imp.sortedKeys = append(imp.sortedKeys, key)
	}
	sort.Strings(imp.sortedKeys)
	return imp
}

func TestImportDefectsLinking(t *testing.T) {
	imp := newTestImporter(t, "Town Hall", "Wynyard", "Central")
	ctx := context.Background()

	records := []defectRecord{
		{SiteName: strp("Town Hall Station"), Risk: strp("Major"), Progress: strp("Outstanding")},
		{SiteName: strp("Central - 4412"), Risk: strp("Minor"), Progress: strp("Completed")},
		{SiteName: strp("Wynyard Concourse"), Risk: strp("Medium"), Progress: strp("In Progress")},
		{SiteName: strp("Totally Unknown Place"), Risk: strp("Minor")},
		{SiteName: strp("Test"), Risk: strp("Minor")},
		{SiteName: nil},
	}

	count, err := imp.importDefects(ctx, records)
	if err != nil {
		t.Fatalf("importDefects: %v", err)
	}
	if count != 5 {
		t.Fatalf("imported %d defects, want 5", count)
	}

	wantStation := map[string]string{
		"Town Hall Station":    "town hall",
		"Central - 4412":       "central",
		"Wynyard Concourse":    "wynyard",
		"Totally Unknown Place": "",
		"Test":                 "",
	}
	var defects []models.Defect
	if err := imp.db.Find(&defects).Error; err != nil {
		t.Fatalf("load defects: %v", err)
	}
	for _, d := range defects {
		wantKey := wantStation[d.SiteName]
		if wantKey == "" {
			if d.StationId != nil {
				t.Errorf("defect %q linked to station %d, want null", d.SiteName, *d.StationId)
			}
			continue
		}
		wantId := imp.stationIds[wantKey]
		if d.StationId == nil || *d.StationId != wantId {
			t.Errorf("defect %q station = %v, want %d (%s)", d.SiteName, d.StationId, wantId, wantKey)
		}
	}
}

func TestImportDefectsFallbackDeterministic(t *testing.T) {
	// Both station keys are substrings of the defect key; the sorted
	// fallback must always pick the lexicographically first.
	imp := newTestImporter(t, "Quay West", "Quay")
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		records := []defectRecord{{SiteName: strp("Quay West Retail Wing")}}
		if _, err := imp.importDefects(ctx, records); err != nil {
			t.Fatalf("importDefects: %v", err)
		}
	}

	var defects []models.Defect
	if err := imp.db.Find(&defects).Error; err != nil {
		t.Fatalf("load defects: %v", err)
	}
	wantId := imp.stationIds["quay"]
	for _, d := range defects {
		if d.StationId == nil || *d.StationId != wantId {
			t.Errorf("fallback picked station %v, want %d", d.StationId, wantId)
		}
	}
}

func TestImportEnmTenantsLeaseDedup(t *testing.T) {
	imp := newTestImporter(t, "Town Hall")
	ctx := context.Background()

	lid := "121738"
	existing := models.Tenant{
		StationId:  imp.stationIds["town hall"],
		TenantName: "Existing Cafe",
		LeaseId:    &lid,
	}
	if err := imp.db.Create(&existing).Error; err != nil {
		t.Fatalf("seed tenant: %v", err)
	}

	rows := []Row{
		{"Lease ID": "121738.0", "Zone": "Town Hall", "Tenant Name": "Existing Cafe Duplicate"},
		{"Lease ID": "99001", "Zone": "Town Hall", "Tenant Name": "New Kiosk"},
		{"Lease ID": "99002", "Zone": "Unknown Station", "Tenant Name": "Orphan"},
		{"Lease ID": "99003", "Zone": "Town Hall", "Tenant Name": ""},
	}
	count, err := imp.importEnmTenants(ctx, rows)
	if err != nil {
		t.Fatalf("importEnmTenants: %v", err)
	}
	if count != 1 {
		t.Fatalf("imported %d tenants, want 1", count)
	}

	var total int64
	if err := imp.db.Model(&models.Tenant{}).Count(&total).Error; err != nil {
		t.Fatalf("count: %v", err)
	}
	if total != 2 {
		t.Fatalf("tenant rows = %d, want 2", total)
	}

	var created models.Tenant
	if err := imp.db.Where("tenant_name = ?", "New Kiosk").First(&created).Error; err != nil {
		t.Fatalf("created tenant missing: %v", err)
	}
	if created.DataSource == nil || *created.DataSource != "ENM" {
		t.Errorf("data source = %v, want ENM", created.DataSource)
	}
}

func TestRecomputePriorities(t *testing.T) {
	imp := newTestImporter(t, "Town Hall", "Central")
	ctx := context.Background()
	townHall := imp.stationIds["town hall"]
	central := imp.stationIds["central"]

	compliant := models.FscStatusCompliant
	tenants := []models.Tenant{
		{StationId: townHall, TenantName: "Cafe", FscStatus: compliant},
		{StationId: townHall, TenantName: "Florist", FscStatus: models.FscStatusOutstanding},
		{StationId: central, TenantName: "Newsagent", FscStatus: compliant},
	}
	for i := range tenants {
		if err := imp.db.Create(&tenants[i]).Error; err != nil {
			t.Fatalf("seed tenant: %v", err)
		}
	}

	defects := []models.Defect{
		{StationId: &townHall, SiteName: "Town Hall", Risk: strp("Major"), Progress: strp("Outstanding")},
		{StationId: &townHall, SiteName: "Town Hall", Risk: strp("Minor"), Progress: strp("In Progress")},
		{StationId: &townHall, SiteName: "Town Hall", Risk: strp("Major"), Progress: strp("Completed")},
	}
	for i := range defects {
		if err := imp.db.Create(&defects[i]).Error; err != nil {
			t.Fatalf("seed defect: %v", err)
		}
	}

	if err := imp.recomputePriorities(ctx); err != nil {
		t.Fatalf("recomputePriorities: %v", err)
	}

	var cafe models.Tenant
	if err := imp.db.Where("tenant_name = ?", "Cafe").First(&cafe).Error; err != nil {
		t.Fatal(err)
	}
	// Completed defects never count as open.
	if cafe.OpenDefects != 2 || cafe.MajorDefects != 1 {
		t.Fatalf("cafe counts = %d open / %d major, want 2/1", cafe.OpenDefects, cafe.MajorDefects)
	}
	if cafe.Priority != models.PriorityCritical {
		t.Errorf("cafe priority = %s, want Critical", cafe.Priority)
	}

	var newsagent models.Tenant
	if err := imp.db.Where("tenant_name = ?", "Newsagent").First(&newsagent).Error; err != nil {
		t.Fatal(err)
	}
	if newsagent.OpenDefects != 0 || newsagent.MajorDefects != 0 {
		t.Fatalf("newsagent counts = %d/%d, want 0/0", newsagent.OpenDefects, newsagent.MajorDefects)
	}
	if newsagent.Priority != models.PriorityLow {
		t.Errorf("newsagent priority = %s, want Low", newsagent.Priority)
	}
}
