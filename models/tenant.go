package models

import (
	"context"
	"fmt"
	"time"

	"bitbucket.org/mmdatafocus/firesafety_backend/utils"
	"gorm.io/gorm"
)

type Tenant struct {
	ID        int `gorm:"primary_key" json:"id"`
	StationId int `gorm:"not null;index" json:"station_id"`

	// Core identification
	TenantName         string  `gorm:"size:300;not null;index" json:"tenant_name"`
	TradingName        *string `gorm:"size:300" json:"trading_name"`
	FileNumber         *string `gorm:"size:50;index" json:"file_number"`
	PreviousFileNumber *string `gorm:"size:50" json:"previous_file_number"`
	LeaseId            *string `gorm:"size:50;index" json:"lease_id"`
	AgreementNumber    *string `gorm:"size:50" json:"agreement_number"`
	SuitId             *string `gorm:"size:20" json:"suit_id"`
	SuiteType          *string `gorm:"size:50" json:"suite_type"`

	// Location
	Region              *string `gorm:"size:50" json:"region"`
	Zone                *string `gorm:"size:200" json:"zone"`
	PremisesDescription *string `gorm:"type:text" json:"premises_description"`
	LotsDpNumbers       *string `gorm:"size:200" json:"lots_dp_numbers"`

	// Classification
	StandardIndustryClass *string `gorm:"size:100" json:"standard_industry_class"`
	LeaseStatus           *string `gorm:"size:100" json:"lease_status"`
	LeaseType             *string `gorm:"size:20" json:"lease_type"`

	// Lease details
	LeaseStart  *string `gorm:"size:50" json:"lease_start"`
	LeaseExpiry *string `gorm:"size:50" json:"lease_expiry"`
	LeaseTerms  *string `gorm:"size:50" json:"lease_terms"`
	LeaseNote   *string `gorm:"type:text" json:"lease_note"`
	Heritage    *string `gorm:"size:50" json:"heritage"`

	// Financial
	AreaM2             *float64 `json:"area_m2"`
	RentPsmPa          *float64 `json:"rent_psm_pa"`
	BaseRentPa         *float64 `json:"base_rent_pa"`
	TotalPassingRentPa *float64 `json:"total_passing_rent_pa"`
	RentIncomeCode     *string  `gorm:"size:100" json:"rent_income_code"`

	// Contact information
	ContactName     *string `gorm:"size:200" json:"contact_name"`
	ContactPhone    *string `gorm:"size:50" json:"contact_phone"`
	ContactPhone2   *string `gorm:"size:50" json:"contact_phone2"`
	ContactMobile   *string `gorm:"size:50" json:"contact_mobile"`
	ContactEmail    *string `gorm:"size:200" json:"contact_email"`
	BillingEmail    *string `gorm:"size:200" json:"billing_email"`
	Abn             *string `gorm:"size:20" json:"abn"`
	BillingName     *string `gorm:"size:200" json:"billing_name"`
	BillingAddress  *string `gorm:"size:300" json:"billing_address"`
	BillingCity     *string `gorm:"size:100" json:"billing_city"`
	BillingState    *string `gorm:"size:10" json:"billing_state"`
	BillingPostcode *string `gorm:"size:10" json:"billing_postcode"`
	PropertyManager *string `gorm:"size:100" json:"property_manager"`

	// Fire safety compliance
	Priority         Priority  `gorm:"size:20;default:Medium" json:"priority"`
	FscStatus        FscStatus `gorm:"size:50;default:Pending" json:"fsc_status"`
	FscRequestedDate *string   `gorm:"size:50" json:"fsc_requested_date"`
	FscReceivedDate  *string   `gorm:"size:50" json:"fsc_received_date"`
	AfssMonth        *int      `json:"afss_month"`
	FscDueMonth      *int      `json:"fsc_due_month"`

	// Fire safety schedule
	HasFireSafetySchedule   *bool   `gorm:"default:false" json:"has_fire_safety_schedule"`
	FireSafetyScheduleNotes *string `gorm:"type:text" json:"fire_safety_schedule_notes"`

	// Fire safety measures
	FireDetection         *string `gorm:"size:50" json:"fire_detection"`
	FireSprinklers        *string `gorm:"size:50" json:"fire_sprinklers"`
	FireHydrants          *string `gorm:"size:50" json:"fire_hydrants"`
	FireExtinguishers     *string `gorm:"size:50" json:"fire_extinguishers"`
	ExitLighting          *string `gorm:"size:50" json:"exit_lighting"`
	EmergencyLighting     *string `gorm:"size:50" json:"emergency_lighting"`
	EvacuationDiagrams    *string `gorm:"size:50" json:"evacuation_diagrams"`
	EmergencyPathway      *string `gorm:"size:50" json:"emergency_pathway"`
	FireDoors             *string `gorm:"size:50" json:"fire_doors"`
	FireWalls             *string `gorm:"size:50" json:"fire_walls"`
	MechanicalVentilation *string `gorm:"size:50" json:"mechanical_ventilation"`

	// Observations
	FireEquipmentServiceDate *string `gorm:"size:50" json:"fire_equipment_service_date"`
	FireEquipmentServiceDue  *string `gorm:"size:50" json:"fire_equipment_service_due"`
	PossibleAfssIssues       *string `gorm:"type:text" json:"possible_afss_issues"`
	CommentsToSiteStaff      *string `gorm:"type:text" json:"comments_to_site_staff"`
	LastInspectionDate       *string `gorm:"size:50" json:"last_inspection_date"`

	// Station-level defect counts denormalized onto the tenant at import time
	OpenDefects  int `gorm:"default:0" json:"open_defects"`
	MajorDefects int `gorm:"default:0" json:"major_defects"`

	DataSource *string `gorm:"size:20" json:"data_source"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`

	Station        *Station        `json:"-"`
	Defects        []Defect        `gorm:"constraint:OnDelete:CASCADE" json:"-"`
	Notes          []Note          `gorm:"constraint:OnDelete:CASCADE" json:"-"`
	Documents      []Document      `gorm:"constraint:OnDelete:CASCADE" json:"-"`
	Communications []Communication `gorm:"constraint:OnDelete:CASCADE" json:"-"`
	Activities     []Activity      `gorm:"constraint:OnDelete:CASCADE" json:"-"`
}

// UpdateTenantInput is the whitelist of tenant fields mutable through the API.
// Anything not listed here cannot be changed after import.
type UpdateTenantInput struct {
	Priority         *string `json:"priority" binding:"omitempty,oneof=Critical High Medium Low"`
	FscStatus        *string `json:"fsc_status" binding:"omitempty,oneof=Pending Requested Received Compliant Outstanding 'Not Applicable'"`
	FscRequestedDate *string `json:"fsc_requested_date"`
	FscReceivedDate  *string `json:"fsc_received_date"`

	HasFireSafetySchedule   *bool   `json:"has_fire_safety_schedule"`
	FireSafetyScheduleNotes *string `json:"fire_safety_schedule_notes"`

	FireDetection         *string `json:"fire_detection"`
	FireSprinklers        *string `json:"fire_sprinklers"`
	FireHydrants          *string `json:"fire_hydrants"`
	FireExtinguishers     *string `json:"fire_extinguishers"`
	ExitLighting          *string `json:"exit_lighting"`
	EmergencyLighting     *string `json:"emergency_lighting"`
	EvacuationDiagrams    *string `json:"evacuation_diagrams"`
	EmergencyPathway      *string `json:"emergency_pathway"`
	FireDoors             *string `json:"fire_doors"`
	FireWalls             *string `json:"fire_walls"`
	MechanicalVentilation *string `json:"mechanical_ventilation"`

	FireEquipmentServiceDate *string `json:"fire_equipment_service_date"`
	FireEquipmentServiceDue  *string `json:"fire_equipment_service_due"`
	PossibleAfssIssues       *string `json:"possible_afss_issues"`
	CommentsToSiteStaff      *string `json:"comments_to_site_staff"`
	LastInspectionDate       *string `json:"last_inspection_date"`

	ContactName   *string `json:"contact_name"`
	ContactPhone  *string `json:"contact_phone"`
	ContactPhone2 *string `json:"contact_phone2"`
	ContactMobile *string `json:"contact_mobile"`
	ContactEmail  *string `json:"contact_email" binding:"omitempty,email"`
	BillingEmail  *string `json:"billing_email" binding:"omitempty,email"`
}

type TenantFilter struct {
	Search          string
	Priority        string
	FscStatus       string
	Region          string
	StationId       int
	PropertyManager string
	LeaseStatus     string
	Industry        string
	HasFss          string
	Limit           int
	Offset          int
}

func GetTenant(ctx context.Context, db *gorm.DB, id int) (*Tenant, error) {
	var tenant Tenant
	if err := db.WithContext(ctx).Preload("Station").First(&tenant, id).Error; err != nil {
		return nil, utils.ErrorRecordNotFound
	}
	return &tenant, nil
}

// GetTenants returns a page of tenants plus the unpaginated total. Rows are
// ordered by station name then tenant name, matching the export ordering.
func GetTenants(ctx context.Context, db *gorm.DB, filter TenantFilter) ([]*Tenant, int64, error) {
	dbCtx := db.WithContext(ctx).Model(&Tenant{}).
		Joins("JOIN stations ON stations.id = tenants.station_id")

	if filter.Search != "" {
		pattern := "%" + filter.Search + "%"
		dbCtx = dbCtx.Where(
			`tenants.tenant_name LIKE ? OR tenants.trading_name LIKE ? OR tenants.file_number LIKE ?
			 OR tenants.lease_id LIKE ? OR stations.name LIKE ? OR tenants.contact_name LIKE ?
			 OR tenants.contact_email LIKE ?`,
			pattern, pattern, pattern, pattern, pattern, pattern, pattern,
		)
	}
	if filter.Priority != "" {
		dbCtx = dbCtx.Where("tenants.priority = ?", filter.Priority)
	}
	if filter.FscStatus != "" {
		if filter.FscStatus == string(FscStatusOutstanding) {
			dbCtx = dbCtx.Where("tenants.fsc_status IN ?", FscOutstandingStatuses)
		} else {
			dbCtx = dbCtx.Where("tenants.fsc_status = ?", filter.FscStatus)
		}
	}
	if filter.Region != "" {
		dbCtx = dbCtx.Where("tenants.region = ?", filter.Region)
	}
	if filter.StationId > 0 {
		dbCtx = dbCtx.Where("tenants.station_id = ?", filter.StationId)
	}
	if filter.PropertyManager != "" {
		dbCtx = dbCtx.Where("tenants.property_manager = ?", filter.PropertyManager)
	}
	if filter.LeaseStatus != "" {
		dbCtx = dbCtx.Where("tenants.lease_status = ?", filter.LeaseStatus)
	}
	if filter.Industry != "" {
		dbCtx = dbCtx.Where("tenants.standard_industry_class = ?", filter.Industry)
	}
	if filter.HasFss == "true" {
		dbCtx = dbCtx.Where("tenants.has_fire_safety_schedule = ?", true)
	} else if filter.HasFss == "false" {
		dbCtx = dbCtx.Where("tenants.has_fire_safety_schedule = ? OR tenants.has_fire_safety_schedule IS NULL", false)
	}

	var total int64
	if err := dbCtx.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	dbCtx = dbCtx.Order("stations.name, tenants.tenant_name").Preload("Station")
	if filter.Limit > 0 {
		dbCtx = dbCtx.Offset(filter.Offset).Limit(filter.Limit)
	}

	var tenants []*Tenant
	if err := dbCtx.Find(&tenants).Error; err != nil {
		return nil, 0, err
	}
	return tenants, total, nil
}

// UpdateTenant applies the whitelisted fields and returns the updated row plus
// human-readable change strings ("field: old -> new") for the activity log.
func UpdateTenant(ctx context.Context, db *gorm.DB, id int, input *UpdateTenantInput) (*Tenant, []string, error) {
	var tenant Tenant
	if err := db.WithContext(ctx).Preload("Station").First(&tenant, id).Error; err != nil {
		return nil, nil, utils.ErrorRecordNotFound
	}

	if err := validateTenantPhones(input); err != nil {
		return nil, nil, err
	}

	updates := map[string]interface{}{}
	var changes []string

	applyStr := func(name, jsonName string, old *string, val *string) {
		if val == nil {
			return
		}
		oldStr := ""
		if old != nil {
			oldStr = *old
		}
		if oldStr != *val {
			changes = append(changes, fmt.Sprintf("%s: %s -> %s", jsonName, oldStr, *val))
		}
		updates[name] = *val
	}

	if input.Priority != nil {
		if string(tenant.Priority) != *input.Priority {
			changes = append(changes, fmt.Sprintf("priority: %s -> %s", tenant.Priority, *input.Priority))
		}
		updates["Priority"] = *input.Priority
	}
	if input.FscStatus != nil {
		if string(tenant.FscStatus) != *input.FscStatus {
			changes = append(changes, fmt.Sprintf("fsc_status: %s -> %s", tenant.FscStatus, *input.FscStatus))
		}
		updates["FscStatus"] = *input.FscStatus
	}
	if input.HasFireSafetySchedule != nil {
		old := tenant.HasFireSafetySchedule != nil && *tenant.HasFireSafetySchedule
		if old != *input.HasFireSafetySchedule {
			changes = append(changes, fmt.Sprintf("has_fire_safety_schedule: %t -> %t", old, *input.HasFireSafetySchedule))
		}
		updates["HasFireSafetySchedule"] = *input.HasFireSafetySchedule
	}

	applyStr("FscRequestedDate", "fsc_requested_date", tenant.FscRequestedDate, input.FscRequestedDate)
	applyStr("FscReceivedDate", "fsc_received_date", tenant.FscReceivedDate, input.FscReceivedDate)
	applyStr("FireSafetyScheduleNotes", "fire_safety_schedule_notes", tenant.FireSafetyScheduleNotes, input.FireSafetyScheduleNotes)
	applyStr("FireDetection", "fire_detection", tenant.FireDetection, input.FireDetection)
	applyStr("FireSprinklers", "fire_sprinklers", tenant.FireSprinklers, input.FireSprinklers)
	applyStr("FireHydrants", "fire_hydrants", tenant.FireHydrants, input.FireHydrants)
	applyStr("FireExtinguishers", "fire_extinguishers", tenant.FireExtinguishers, input.FireExtinguishers)
	applyStr("ExitLighting", "exit_lighting", tenant.ExitLighting, input.ExitLighting)
	applyStr("EmergencyLighting", "emergency_lighting", tenant.EmergencyLighting, input.EmergencyLighting)
	applyStr("EvacuationDiagrams", "evacuation_diagrams", tenant.EvacuationDiagrams, input.EvacuationDiagrams)
	applyStr("EmergencyPathway", "emergency_pathway", tenant.EmergencyPathway, input.EmergencyPathway)
	applyStr("FireDoors", "fire_doors", tenant.FireDoors, input.FireDoors)
	applyStr("FireWalls", "fire_walls", tenant.FireWalls, input.FireWalls)
	applyStr("MechanicalVentilation", "mechanical_ventilation", tenant.MechanicalVentilation, input.MechanicalVentilation)
	applyStr("FireEquipmentServiceDate", "fire_equipment_service_date", tenant.FireEquipmentServiceDate, input.FireEquipmentServiceDate)
	applyStr("FireEquipmentServiceDue", "fire_equipment_service_due", tenant.FireEquipmentServiceDue, input.FireEquipmentServiceDue)
	applyStr("PossibleAfssIssues", "possible_afss_issues", tenant.PossibleAfssIssues, input.PossibleAfssIssues)
	applyStr("CommentsToSiteStaff", "comments_to_site_staff", tenant.CommentsToSiteStaff, input.CommentsToSiteStaff)
	applyStr("LastInspectionDate", "last_inspection_date", tenant.LastInspectionDate, input.LastInspectionDate)
	applyStr("ContactName", "contact_name", tenant.ContactName, input.ContactName)
	applyStr("ContactPhone", "contact_phone", tenant.ContactPhone, input.ContactPhone)
	applyStr("ContactPhone2", "contact_phone2", tenant.ContactPhone2, input.ContactPhone2)
	applyStr("ContactMobile", "contact_mobile", tenant.ContactMobile, input.ContactMobile)
	applyStr("ContactEmail", "contact_email", tenant.ContactEmail, input.ContactEmail)
	applyStr("BillingEmail", "billing_email", tenant.BillingEmail, input.BillingEmail)

	if len(updates) > 0 {
		if err := db.WithContext(ctx).Model(&tenant).Updates(updates).Error; err != nil {
			return nil, nil, err
		}
	}
	return &tenant, changes, nil
}

func validateTenantPhones(input *UpdateTenantInput) error {
	for _, phone := range []*string{input.ContactPhone, input.ContactPhone2, input.ContactMobile} {
		if phone == nil || *phone == "" {
			continue
		}
		if err := utils.ValidatePhoneNumber(*phone, utils.CountryCode); err != nil {
			return fmt.Errorf("invalid phone number %q: %w", *phone, err)
		}
	}
	return nil
}
