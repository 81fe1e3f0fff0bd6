package models

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"gorm.io/gorm"
)

// TimelineEvent is one entry in the merged activity/note/communication/defect
// feed. Dates are ISO strings so a defect can fall back to its audit date.
type TimelineEvent struct {
	Type        string  `json:"type"`
	Icon        string  `json:"icon"`
	Title       string  `json:"title"`
	Description string  `json:"description"`
	Date        string  `json:"date"`
	User        *string `json:"user,omitempty"`
	Direction   *string `json:"direction,omitempty"`
	Status      *string `json:"status,omitempty"`
	Risk        *string `json:"risk,omitempty"`
	Progress    *string `json:"progress,omitempty"`
	DefectId    int     `json:"defect_id,omitempty"`
}

func isoDate(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.UTC().Format(time.RFC3339)
}

// GetTimeline merges events for a station or tenant into one reverse
// chronological feed. Filtering by tenant also includes station-level
// (tenant-less) events for that tenant's station.
func GetTimeline(ctx context.Context, db *gorm.DB, stationId, tenantId int) ([]TimelineEvent, error) {
	events := []TimelineEvent{}

	actualStationId := stationId
	if tenantId > 0 && stationId == 0 {
		var tenant Tenant
		if err := db.WithContext(ctx).First(&tenant, tenantId).Error; err == nil {
			actualStationId = tenant.StationId
		}
	}

	scoped := func(q *gorm.DB) *gorm.DB {
		if tenantId > 0 {
			return q.Where("tenant_id = ? OR (station_id = ? AND tenant_id IS NULL)", tenantId, actualStationId)
		}
		if stationId > 0 {
			return q.Where("station_id = ?", stationId)
		}
		return q
	}

	var activities []*Activity
	if err := scoped(db.WithContext(ctx).Model(&Activity{})).Find(&activities).Error; err != nil {
		return nil, err
	}
	for _, a := range activities {
		desc := ""
		if a.Description != nil {
			desc = *a.Description
		}
		title := a.Action
		if title == "" {
			title = "Activity"
		}
		events = append(events, TimelineEvent{
			Type: "activity", Icon: "activity",
			Title: title, Description: desc,
			Date: isoDate(a.CreatedAt), User: a.User,
		})
	}

	var notes []*Note
	if err := scoped(db.WithContext(ctx).Model(&Note{})).Find(&notes).Error; err != nil {
		return nil, err
	}
	for _, n := range notes {
		title := "Note added"
		if n.CreatedBy != nil && *n.CreatedBy != "" {
			title += " by " + *n.CreatedBy
		}
		events = append(events, TimelineEvent{
			Type: "note", Icon: "note",
			Title: title, Description: n.Content,
			Date: isoDate(n.CreatedAt), User: n.CreatedBy,
		})
	}

	if tenantId > 0 {
		var comms []*Communication
		if err := db.WithContext(ctx).Where("tenant_id = ?", tenantId).Find(&comms).Error; err != nil {
			return nil, err
		}
		for _, c := range comms {
			title := c.CommType
			if c.Subject != nil && *c.Subject != "" {
				title = *c.Subject
			}
			if title == "" {
				title = "Communication"
			}
			content := ""
			if c.Content != nil {
				content = *c.Content
			}
			status := c.Status
			icon := "message"
			if c.CommType != "" {
				icon = strings.ToLower(c.CommType)
			}
			events = append(events, TimelineEvent{
				Type: "communication", Icon: icon,
				Title: title, Description: content,
				Date: isoDate(c.CreatedAt), User: c.ContactPerson,
				Direction: c.Direction, Status: &status,
			})
		}
	}

	var defects []*Defect
	if err := scoped(db.WithContext(ctx).Model(&Defect{})).Find(&defects).Error; err != nil {
		return nil, err
	}
	for _, d := range defects {
		title := fmt.Sprintf("Defect: %s (%s risk)",
			strOrDefault(d.Category, "Unknown"), strOrDefault(d.Risk, "Unknown"))
		desc := fmt.Sprintf("%s - %s", d.SiteName, strOrDefault(d.Progress, "Outstanding"))
		if d.Description != nil && *d.Description != "" {
			desc += ". " + *d.Description
		}
		date := isoDate(d.CreatedAt)
		if date == "" && d.AuditDate != nil {
			date = *d.AuditDate
		}
		events = append(events, TimelineEvent{
			Type: "defect", Icon: "defect",
			Title: title, Description: desc,
			Date: date, Risk: d.Risk, Progress: d.Progress, DefectId: d.ID,
		})
	}

	sort.SliceStable(events, func(i, j int) bool {
		return events[i].Date > events[j].Date
	})
	return events, nil
}
