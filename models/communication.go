package models

import (
	"context"
	"time"

	"bitbucket.org/mmdatafocus/firesafety_backend/utils"
	"gorm.io/gorm"
)

type Communication struct {
	ID       int  `gorm:"primary_key" json:"id"`
	TenantId *int `gorm:"index" json:"tenant_id"`

	CommType          string  `gorm:"size:50;not null" json:"comm_type"`
	Subject           *string `gorm:"size:300" json:"subject"`
	Content           *string `gorm:"type:text" json:"content"`
	ContactPerson     *string `gorm:"size:200" json:"contact_person"`
	Direction         *string `gorm:"size:20" json:"direction"`
	Status            string  `gorm:"size:50;default:Sent" json:"status"`
	FollowupRequired  bool    `gorm:"default:false" json:"followup_required"`
	FollowupDate      *string `gorm:"size:50" json:"followup_date"`
	FollowupCompleted bool    `gorm:"default:false" json:"followup_completed"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"-"`

	Tenant *Tenant `json:"-"`
}

type NewCommunication struct {
	TenantId         *int    `json:"tenant_id"`
	CommType         string  `json:"comm_type" binding:"required"`
	Subject          *string `json:"subject"`
	Content          *string `json:"content"`
	ContactPerson    *string `json:"contact_person"`
	Direction        *string `json:"direction" binding:"omitempty,oneof=Inbound Outbound"`
	Status           *string `json:"status"`
	FollowupRequired *bool   `json:"followup_required"`
	FollowupDate     *string `json:"followup_date"`
}

type UpdateCommunicationInput struct {
	Status            *string `json:"status"`
	FollowupCompleted *bool   `json:"followup_completed"`
	Content           *string `json:"content"`
}

func CreateCommunication(ctx context.Context, db *gorm.DB, input *NewCommunication) (*Communication, error) {
	direction := strOrDefault(input.Direction, "Outbound")
	comm := Communication{
		TenantId:      input.TenantId,
		CommType:      input.CommType,
		Subject:       input.Subject,
		Content:       input.Content,
		ContactPerson: input.ContactPerson,
		Direction:     &direction,
		Status:        strOrDefault(input.Status, "Sent"),
		FollowupDate:  input.FollowupDate,
	}
	if input.FollowupRequired != nil {
		comm.FollowupRequired = *input.FollowupRequired
	}
	if err := db.WithContext(ctx).Create(&comm).Error; err != nil {
		return nil, err
	}
	return &comm, nil
}

func GetCommunications(ctx context.Context, db *gorm.DB, tenantId int) ([]*Communication, error) {
	dbCtx := db.WithContext(ctx).Model(&Communication{})
	if tenantId > 0 {
		dbCtx = dbCtx.Where("tenant_id = ?", tenantId)
	}
	var comms []*Communication
	if err := dbCtx.Order("created_at DESC").Find(&comms).Error; err != nil {
		return nil, err
	}
	return comms, nil
}

func UpdateCommunication(ctx context.Context, db *gorm.DB, id int, input *UpdateCommunicationInput) (*Communication, error) {
	var comm Communication
	if err := db.WithContext(ctx).First(&comm, id).Error; err != nil {
		return nil, utils.ErrorRecordNotFound
	}

	updates := map[string]interface{}{}
	if input.Status != nil {
		updates["Status"] = *input.Status
	}
	if input.FollowupCompleted != nil {
		updates["FollowupCompleted"] = *input.FollowupCompleted
	}
	if input.Content != nil {
		updates["Content"] = *input.Content
	}

	if len(updates) > 0 {
		if err := db.WithContext(ctx).Model(&comm).Updates(updates).Error; err != nil {
			return nil, err
		}
	}
	return &comm, nil
}
