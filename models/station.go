package models

import (
	"context"
	"time"

	"bitbucket.org/mmdatafocus/firesafety_backend/utils"
	"gorm.io/gorm"
)

type Station struct {
	ID             int     `gorm:"primary_key" json:"id"`
	Name           string  `gorm:"size:200;not null;index" json:"name"`
	Code           *string `gorm:"size:10" json:"code"`
	Region         *string `gorm:"size:50" json:"region"`
	BuildingName   *string `gorm:"size:200" json:"building_name"`
	MriBldId       *string `gorm:"size:50" json:"mri_bld_id"`
	Address        *string `gorm:"size:300" json:"address"`
	City           *string `gorm:"size:100" json:"city"`
	State          string  `gorm:"size:10;default:NSW" json:"state"`
	Council        *string `gorm:"size:100" json:"council"`
	IcomplyContact *string `gorm:"size:200" json:"icomply_contact"`

	// AFSS schedule
	AfssDueMonth      *int    `json:"afss_due_month"`
	TenantFscDueMonth *int    `json:"tenant_fsc_due_month"`
	InspectionMonth   *int    `json:"inspection_month"`
	AfssLikely        *string `gorm:"size:10" json:"afss_likely"`
	LeaseTypeCategory *string `gorm:"size:20" json:"lease_type_category"`

	// Fire safety schedule
	HasFireSafetySchedule   *bool   `gorm:"default:false" json:"has_fire_safety_schedule"`
	FireSafetyScheduleNotes *string `gorm:"type:text" json:"fire_safety_schedule_notes"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`

	Tenants    []Tenant   `gorm:"constraint:OnDelete:CASCADE" json:"-"`
	Defects    []Defect   `gorm:"constraint:OnDelete:CASCADE" json:"-"`
	Notes      []Note     `gorm:"constraint:OnDelete:CASCADE" json:"-"`
	Documents  []Document `gorm:"constraint:OnDelete:CASCADE" json:"-"`
	Activities []Activity `gorm:"constraint:OnDelete:CASCADE" json:"-"`
}

// UpdateStationInput lists the mutable station fields. Absent fields are left
// untouched; the mapping below is the whole update surface.
type UpdateStationInput struct {
	HasFireSafetySchedule   *bool   `json:"has_fire_safety_schedule"`
	FireSafetyScheduleNotes *string `json:"fire_safety_schedule_notes"`
	IcomplyContact          *string `json:"icomply_contact"`
	Address                 *string `json:"address"`
	Council                 *string `json:"council"`
}

type StationFilter struct {
	Search string
	Region string
	HasAfss string
	HasFss  string
}

func GetStation(ctx context.Context, db *gorm.DB, id int) (*Station, error) {
	var station Station
	if err := db.WithContext(ctx).First(&station, id).Error; err != nil {
		return nil, utils.ErrorRecordNotFound
	}
	return &station, nil
}

func GetStations(ctx context.Context, db *gorm.DB, filter StationFilter) ([]*Station, error) {
	var results []*Station

	dbCtx := db.WithContext(ctx).Model(&Station{})
	if filter.Search != "" {
		pattern := "%" + filter.Search + "%"
		dbCtx = dbCtx.Where(
			"name LIKE ? OR code LIKE ? OR council LIKE ? OR building_name LIKE ?",
			pattern, pattern, pattern, pattern,
		)
	}
	if filter.Region != "" {
		dbCtx = dbCtx.Where("region = ?", filter.Region)
	}
	if filter.HasAfss == "true" {
		dbCtx = dbCtx.Where("afss_due_month IS NOT NULL")
	}
	if filter.HasFss == "true" {
		dbCtx = dbCtx.Where("has_fire_safety_schedule = ?", true)
	} else if filter.HasFss == "false" {
		dbCtx = dbCtx.Where("has_fire_safety_schedule = ? OR has_fire_safety_schedule IS NULL", false)
	}

	if err := dbCtx.Order("name").Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func UpdateStation(ctx context.Context, db *gorm.DB, id int, input *UpdateStationInput) (*Station, error) {
	var station Station
	if err := db.WithContext(ctx).First(&station, id).Error; err != nil {
		return nil, utils.ErrorRecordNotFound
	}

	updates := map[string]interface{}{}
	if input.HasFireSafetySchedule != nil {
		updates["HasFireSafetySchedule"] = *input.HasFireSafetySchedule
	}
	if input.FireSafetyScheduleNotes != nil {
		updates["FireSafetyScheduleNotes"] = *input.FireSafetyScheduleNotes
	}
	if input.IcomplyContact != nil {
		updates["IcomplyContact"] = *input.IcomplyContact
	}
	if input.Address != nil {
		updates["Address"] = *input.Address
	}
	if input.Council != nil {
		updates["Council"] = *input.Council
	}

	if len(updates) > 0 {
		if err := db.WithContext(ctx).Model(&station).Updates(updates).Error; err != nil {
			return nil, err
		}
	}
	return &station, nil
}

// StationRollup carries the per-station tenant aggregates shown on list and
// detail views. Defect counts are the station-wide numbers denormalized onto
// tenants at import time.
type StationRollup struct {
	TenantCount    int     `json:"tenant_count"`
	CriticalCount  int     `json:"critical_count"`
	HighCount      int     `json:"high_count"`
	OpenDefects    int     `json:"open_defects"`
	MajorDefects   int     `json:"major_defects"`
	FscReceived    int     `json:"fsc_received"`
	FscOutstanding int     `json:"fsc_outstanding"`
	ActiveTenants  int     `json:"active_tenants"`
	ComplianceRate float64 `json:"compliance_rate"`
}

func RollupTenants(tenants []*Tenant) StationRollup {
	r := StationRollup{TenantCount: len(tenants)}
	for _, t := range tenants {
		if t.Priority == PriorityCritical {
			r.CriticalCount++
		}
		if t.Priority == PriorityHigh {
			r.HighCount++
		}
		r.OpenDefects += t.OpenDefects
		r.MajorDefects += t.MajorDefects
		if IsActiveLease(t.LeaseStatus) {
			r.ActiveTenants++
			if IsFscResolved(t.FscStatus) {
				r.FscReceived++
			}
			if IsFscOutstanding(t.FscStatus) {
				r.FscOutstanding++
			}
		}
	}
	r.ComplianceRate = Rate(r.FscReceived, r.ActiveTenants)
	return r
}

func GetStationTenants(ctx context.Context, db *gorm.DB, stationId int) ([]*Tenant, error) {
	var tenants []*Tenant
	if err := db.WithContext(ctx).Where("station_id = ?", stationId).Find(&tenants).Error; err != nil {
		return nil, err
	}
	return tenants, nil
}
