package models

import (
	"context"
	"time"

	"gorm.io/gorm"
)

// Activity rows are append-only: every mutating operation writes one as a
// side effect, and nothing ever updates or deletes them.
type Activity struct {
	ID        int  `gorm:"primary_key" json:"id"`
	StationId *int `json:"station_id"`
	TenantId  *int `json:"tenant_id"`

	Action      string  `gorm:"size:50;not null" json:"action"`
	Description *string `gorm:"type:text" json:"description"`
	EntityType  *string `gorm:"size:50" json:"entity_type"`
	EntityId    *int    `json:"entity_id"`
	User        *string `gorm:"size:100" json:"user"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`

	Station *Station `json:"-"`
	Tenant  *Tenant  `json:"-"`
}

func LogActivity(ctx context.Context, db *gorm.DB, action, description string,
	stationId, tenantId *int, entityType string, entityId int) error {

	activity := Activity{
		StationId:   stationId,
		TenantId:    tenantId,
		Action:      action,
		Description: &description,
		EntityType:  &entityType,
		EntityId:    &entityId,
	}
	return db.WithContext(ctx).Create(&activity).Error
}

func GetActivities(ctx context.Context, db *gorm.DB, limit int) ([]*Activity, error) {
	if limit <= 0 {
		limit = 50
	}
	var activities []*Activity
	if err := db.WithContext(ctx).Order("created_at DESC").Limit(limit).Find(&activities).Error; err != nil {
		return nil, err
	}
	return activities, nil
}

func GetStationActivities(ctx context.Context, db *gorm.DB, stationId, limit int) ([]*Activity, error) {
	var activities []*Activity
	dbCtx := db.WithContext(ctx).Where("station_id = ?", stationId).Order("created_at DESC")
	if limit > 0 {
		dbCtx = dbCtx.Limit(limit)
	}
	if err := dbCtx.Find(&activities).Error; err != nil {
		return nil, err
	}
	return activities, nil
}

func GetTenantActivities(ctx context.Context, db *gorm.DB, tenantId, limit int) ([]*Activity, error) {
	var activities []*Activity
	dbCtx := db.WithContext(ctx).Where("tenant_id = ?", tenantId).Order("created_at DESC")
	if limit > 0 {
		dbCtx = dbCtx.Limit(limit)
	}
	if err := dbCtx.Find(&activities).Error; err != nil {
		return nil, err
	}
	return activities, nil
}
