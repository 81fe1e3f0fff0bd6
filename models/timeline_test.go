package models

import (
	"context"
	"testing"

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
	if err := MigrateSchema(db); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return db
}

func TestTimelineCommunicationIcon(t *testing.T) {
	db := newTestDB(t)

	station := Station{Name: "Town Hall", State: "NSW"}
	if err := db.Create(&station).Error; err != nil {
		t.Fatalf("seed station: %v", err)
	}
	tenant := Tenant{StationId: station.ID, TenantName: "Cafe"}
	if err := db.Create(&tenant).Error; err != nil {
		t.Fatalf("seed tenant: %v", err)
	}

	subject := "FSC follow-up"
	comms := []Communication{
		{TenantId: &tenant.ID, CommType: "Phone", Subject: &subject},
		{TenantId: &tenant.ID, CommType: "Email"},
		{TenantId: &tenant.ID, CommType: ""},
	}
	for i := range comms {
		if err := db.Create(&comms[i]).Error; err != nil {
			t.Fatalf("seed communication: %v", err)
		}
	}

	events, err := GetTimeline(context.Background(), db, 0, tenant.ID)
	if err != nil {
		t.Fatalf("GetTimeline: %v", err)
	}

	// Icons derive from the communication type, lowercased, with "message"
	// as the fallback for untyped entries.
	icons := map[string]int{}
	for _, e := range events {
		if e.Type == "communication" {
			icons[e.Icon]++
		}
	}
	if icons["phone"] != 1 || icons["email"] != 1 || icons["message"] != 1 {
		t.Errorf("communication icons = %v, want one each of phone, email, message", icons)
	}
}
