package models

import (
	"context"

	"gorm.io/gorm"
)

// Global search queries. Each returns at most limit rows; matching is a plain
// substring match per column.

func SearchStations(ctx context.Context, db *gorm.DB, query string, limit int) ([]*Station, error) {
	pattern := "%" + query + "%"
	var stations []*Station
	err := db.WithContext(ctx).
		Where("name LIKE ? OR code LIKE ?", pattern, pattern).
		Limit(limit).Find(&stations).Error
	if err != nil {
		return nil, err
	}
	return stations, nil
}

func SearchTenants(ctx context.Context, db *gorm.DB, query string, limit int) ([]*Tenant, error) {
	pattern := "%" + query + "%"
	var tenants []*Tenant
	err := db.WithContext(ctx).
		Where(`tenant_name LIKE ? OR trading_name LIKE ? OR file_number LIKE ?
		 OR lease_id LIKE ? OR contact_name LIKE ?`,
			pattern, pattern, pattern, pattern, pattern).
		Limit(limit).Preload("Station").Find(&tenants).Error
	if err != nil {
		return nil, err
	}
	return tenants, nil
}

func SearchDefects(ctx context.Context, db *gorm.DB, query string, limit int) ([]*Defect, error) {
	pattern := "%" + query + "%"
	var defects []*Defect
	err := db.WithContext(ctx).
		Where("site_name LIKE ? OR category LIKE ?", pattern, pattern).
		Limit(limit).Preload("Station").Preload("Tenant").Find(&defects).Error
	if err != nil {
		return nil, err
	}
	return defects, nil
}

// CountStationTenants backs the tenant_count field on station payloads.
func CountStationTenants(ctx context.Context, db *gorm.DB, stationId int) (int, error) {
	var n int64
	err := db.WithContext(ctx).Model(&Tenant{}).Where("station_id = ?", stationId).Count(&n).Error
	return int(n), err
}
