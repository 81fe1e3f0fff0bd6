package models

import (
	"context"
	"time"

	"bitbucket.org/mmdatafocus/firesafety_backend/utils"
	"gorm.io/gorm"
)

type Document struct {
	ID        int  `gorm:"primary_key" json:"id"`
	StationId *int `gorm:"index" json:"station_id"`
	TenantId  *int `gorm:"index" json:"tenant_id"`
	DefectId  *int `gorm:"index" json:"defect_id"`

	Filename         string  `gorm:"size:300;not null" json:"filename"`
	OriginalFilename string  `gorm:"size:300;not null" json:"original_filename"`
	FilePath         string  `gorm:"size:500;not null" json:"-"`
	FileSize         *int64  `json:"file_size"`
	MimeType         *string `gorm:"size:100" json:"mime_type"`

	Category    string  `gorm:"size:50;not null" json:"category"`
	Description *string `gorm:"type:text" json:"description"`

	UploadedAt time.Time `gorm:"autoCreateTime" json:"uploaded_at"`

	Station *Station `json:"-"`
	Tenant  *Tenant  `json:"-"`
	Defect  *Defect  `json:"-"`
}

type DocumentFilter struct {
	StationId int
	TenantId  int
	DefectId  int
	Category  string
}

func CreateDocument(ctx context.Context, db *gorm.DB, doc *Document) error {
	return db.WithContext(ctx).Create(doc).Error
}

func GetDocument(ctx context.Context, db *gorm.DB, id int) (*Document, error) {
	var doc Document
	if err := db.WithContext(ctx).First(&doc, id).Error; err != nil {
		return nil, utils.ErrorRecordNotFound
	}
	return &doc, nil
}

func GetDocuments(ctx context.Context, db *gorm.DB, filter DocumentFilter) ([]*Document, error) {
	dbCtx := db.WithContext(ctx).Model(&Document{})
	if filter.StationId > 0 {
		dbCtx = dbCtx.Where("station_id = ?", filter.StationId)
	}
	if filter.TenantId > 0 {
		dbCtx = dbCtx.Where("tenant_id = ?", filter.TenantId)
	}
	if filter.DefectId > 0 {
		dbCtx = dbCtx.Where("defect_id = ?", filter.DefectId)
	}
	if filter.Category != "" {
		dbCtx = dbCtx.Where("category = ?", filter.Category)
	}
	var docs []*Document
	if err := dbCtx.Order("uploaded_at DESC").Find(&docs).Error; err != nil {
		return nil, err
	}
	return docs, nil
}

// DeleteDocument removes the row; the caller owns removal of the stored file.
func DeleteDocument(ctx context.Context, db *gorm.DB, id int) (*Document, error) {
	var doc Document
	if err := db.WithContext(ctx).First(&doc, id).Error; err != nil {
		return nil, utils.ErrorRecordNotFound
	}
	if err := db.WithContext(ctx).Delete(&doc).Error; err != nil {
		return nil, err
	}
	return &doc, nil
}

func CountDocuments(ctx context.Context, db *gorm.DB, filter DocumentFilter) (int64, error) {
	dbCtx := db.WithContext(ctx).Model(&Document{})
	if filter.StationId > 0 {
		dbCtx = dbCtx.Where("station_id = ?", filter.StationId)
	}
	if filter.DefectId > 0 {
		dbCtx = dbCtx.Where("defect_id = ?", filter.DefectId)
	}
	var count int64
	err := dbCtx.Count(&count).Error
	return count, err
}

// GroupDocumentsByCategory buckets documents for the detail views, defaulting
// an unset category to General.
func GroupDocumentsByCategory(docs []*Document) map[string][]*Document {
	groups := map[string][]*Document{}
	for _, doc := range docs {
		cat := doc.Category
		if cat == "" {
			cat = "General"
		}
		groups[cat] = append(groups[cat], doc)
	}
	return groups
}
