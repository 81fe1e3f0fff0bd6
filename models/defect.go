package models

import (
	"context"
	"errors"
	"time"

	"bitbucket.org/mmdatafocus/firesafety_backend/utils"
	"gorm.io/gorm"
)

var ErrTenantStationMismatch = errors.New("tenant does not belong to the given station")

type Defect struct {
	ID        int  `gorm:"primary_key" json:"id"`
	StationId *int `gorm:"index" json:"station_id"`
	TenantId  *int `gorm:"index" json:"tenant_id"`

	SiteName    string  `gorm:"size:200;not null" json:"site_name"`
	Category    *string `gorm:"size:200" json:"category"`
	Risk        *string `gorm:"size:20" json:"risk"`
	Progress    *string `gorm:"size:50" json:"progress"`
	Description *string `gorm:"type:text" json:"description"`

	AuditType     *string `gorm:"size:50" json:"audit_type"`
	AuditDate     *string `gorm:"size:50" json:"audit_date"`
	FinancialYear *string `gorm:"size:20" json:"financial_year"`
	Year          *int    `json:"year"`
	Quarter       *int    `json:"quarter"`
	Month         *int    `json:"month"`

	AssignedTo      *string `gorm:"size:200" json:"assigned_to"`
	DueDate         *string `gorm:"size:50" json:"due_date"`
	ResolutionNotes *string `gorm:"type:text" json:"resolution_notes"`
	ResolvedDate    *string `gorm:"size:50" json:"resolved_date"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`

	Station   *Station   `json:"-"`
	Tenant    *Tenant    `json:"-"`
	Documents []Document `gorm:"constraint:OnDelete:CASCADE" json:"-"`
}

type NewDefect struct {
	StationId   *int    `json:"station_id"`
	TenantId    *int    `json:"tenant_id"`
	SiteName    string  `json:"site_name" binding:"required"`
	Category    *string `json:"category"`
	Risk        *string `json:"risk" binding:"omitempty,oneof=Major Medium Minor"`
	Progress    *string `json:"progress" binding:"omitempty,oneof=Outstanding 'In Progress' Completed"`
	Description *string `json:"description"`
	AuditType   *string `json:"audit_type"`
	AuditDate   *string `json:"audit_date"`
	AssignedTo  *string `json:"assigned_to"`
	DueDate     *string `json:"due_date"`
}

type UpdateDefectInput struct {
	Risk            *string `json:"risk" binding:"omitempty,oneof=Major Medium Minor"`
	Progress        *string `json:"progress" binding:"omitempty,oneof=Outstanding 'In Progress' Completed"`
	Description     *string `json:"description"`
	Category        *string `json:"category"`
	AssignedTo      *string `json:"assigned_to"`
	DueDate         *string `json:"due_date"`
	ResolutionNotes *string `json:"resolution_notes"`
	ResolvedDate    *string `json:"resolved_date"`
}

type DefectFilter struct {
	Search    string
	Risk      string
	Progress  string
	StationId int
	TenantId  int
}

func strOrDefault(v *string, def string) string {
	if v == nil || *v == "" {
		return def
	}
	return *v
}

// CreateDefect persists a manually raised defect. A tenant-linked defect must
// belong to a tenant of the linked station.
func CreateDefect(ctx context.Context, db *gorm.DB, input *NewDefect) (*Defect, error) {
	if input.TenantId != nil && input.StationId != nil {
		var tenant Tenant
		if err := db.WithContext(ctx).First(&tenant, *input.TenantId).Error; err != nil {
			return nil, utils.ErrorRecordNotFound
		}
		if tenant.StationId != *input.StationId {
			return nil, ErrTenantStationMismatch
		}
	}

	risk := strOrDefault(input.Risk, string(DefectRiskMinor))
	progress := strOrDefault(input.Progress, string(DefectProgressOutstanding))
	defect := Defect{
		StationId:   input.StationId,
		TenantId:    input.TenantId,
		SiteName:    input.SiteName,
		Category:    input.Category,
		Risk:        &risk,
		Progress:    &progress,
		Description: input.Description,
		AuditType:   input.AuditType,
		AuditDate:   input.AuditDate,
		AssignedTo:  input.AssignedTo,
		DueDate:     input.DueDate,
	}
	if err := db.WithContext(ctx).Create(&defect).Error; err != nil {
		return nil, err
	}
	return &defect, nil
}

func GetDefect(ctx context.Context, db *gorm.DB, id int) (*Defect, error) {
	var defect Defect
	if err := db.WithContext(ctx).Preload("Station").Preload("Tenant").First(&defect, id).Error; err != nil {
		return nil, utils.ErrorRecordNotFound
	}
	return &defect, nil
}

func GetDefects(ctx context.Context, db *gorm.DB, filter DefectFilter) ([]*Defect, error) {
	dbCtx := db.WithContext(ctx).Model(&Defect{})
	if filter.Search != "" {
		pattern := "%" + filter.Search + "%"
		dbCtx = dbCtx.Where("site_name LIKE ? OR category LIKE ? OR description LIKE ?",
			pattern, pattern, pattern)
	}
	if filter.Risk != "" {
		dbCtx = dbCtx.Where("risk = ?", filter.Risk)
	}
	if filter.Progress != "" {
		dbCtx = dbCtx.Where("progress = ?", filter.Progress)
	}
	if filter.StationId > 0 {
		dbCtx = dbCtx.Where("station_id = ?", filter.StationId)
	}
	if filter.TenantId > 0 {
		dbCtx = dbCtx.Where("tenant_id = ?", filter.TenantId)
	}

	var defects []*Defect
	if err := dbCtx.Order("audit_date DESC").Preload("Station").Preload("Tenant").Find(&defects).Error; err != nil {
		return nil, err
	}
	return defects, nil
}

func UpdateDefect(ctx context.Context, db *gorm.DB, id int, input *UpdateDefectInput) (*Defect, error) {
	var defect Defect
	if err := db.WithContext(ctx).Preload("Station").Preload("Tenant").First(&defect, id).Error; err != nil {
		return nil, utils.ErrorRecordNotFound
	}

	updates := map[string]interface{}{}
	fields := []struct {
		column string
		value  *string
	}{
		{"Risk", input.Risk},
		{"Progress", input.Progress},
		{"Description", input.Description},
		{"Category", input.Category},
		{"AssignedTo", input.AssignedTo},
		{"DueDate", input.DueDate},
		{"ResolutionNotes", input.ResolutionNotes},
		{"ResolvedDate", input.ResolvedDate},
	}
	for _, f := range fields {
		if f.value != nil {
			updates[f.column] = *f.value
		}
	}

	if len(updates) > 0 {
		if err := db.WithContext(ctx).Model(&defect).Updates(updates).Error; err != nil {
			return nil, err
		}
	}
	return &defect, nil
}

// Station-level defects carry no tenant link; tenant detail views merge them
// with the tenant's own defects.
func GetStationLevelDefects(ctx context.Context, db *gorm.DB, stationId int) ([]*Defect, error) {
	var defects []*Defect
	if err := db.WithContext(ctx).
		Where("station_id = ? AND tenant_id IS NULL", stationId).
		Find(&defects).Error; err != nil {
		return nil, err
	}
	return defects, nil
}
