package models

import (
	"context"
	"time"

	"bitbucket.org/mmdatafocus/firesafety_backend/utils"
	"gorm.io/gorm"
)

type Note struct {
	ID        int  `gorm:"primary_key" json:"id"`
	StationId *int `gorm:"index" json:"station_id"`
	TenantId  *int `gorm:"index" json:"tenant_id"`

	NoteType  string  `gorm:"size:50;default:general" json:"note_type"`
	Content   string  `gorm:"type:text;not null" json:"content"`
	CreatedBy *string `gorm:"size:100" json:"created_by"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"-"`

	Station *Station `json:"-"`
	Tenant  *Tenant  `json:"-"`
}

type NewNote struct {
	StationId *int    `json:"station_id"`
	TenantId  *int    `json:"tenant_id"`
	NoteType  *string `json:"note_type"`
	Content   string  `json:"content" binding:"required"`
	CreatedBy *string `json:"created_by"`
}

func CreateNote(ctx context.Context, db *gorm.DB, input *NewNote) (*Note, error) {
	note := Note{
		StationId: input.StationId,
		TenantId:  input.TenantId,
		NoteType:  strOrDefault(input.NoteType, "general"),
		Content:   input.Content,
		CreatedBy: input.CreatedBy,
	}
	if err := db.WithContext(ctx).Create(&note).Error; err != nil {
		return nil, err
	}
	return &note, nil
}

func GetNotes(ctx context.Context, db *gorm.DB, stationId, tenantId int) ([]*Note, error) {
	dbCtx := db.WithContext(ctx).Model(&Note{})
	if stationId > 0 {
		dbCtx = dbCtx.Where("station_id = ?", stationId)
	}
	if tenantId > 0 {
		dbCtx = dbCtx.Where("tenant_id = ?", tenantId)
	}
	var notes []*Note
	if err := dbCtx.Order("created_at DESC").Find(&notes).Error; err != nil {
		return nil, err
	}
	return notes, nil
}

func DeleteNote(ctx context.Context, db *gorm.DB, id int) error {
	var note Note
	if err := db.WithContext(ctx).First(&note, id).Error; err != nil {
		return utils.ErrorRecordNotFound
	}
	return db.WithContext(ctx).Delete(&note).Error
}
