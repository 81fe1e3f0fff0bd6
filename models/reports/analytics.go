package reports

import (
	"context"

	"bitbucket.org/mmdatafocus/firesafety_backend/models"
	"gorm.io/gorm"
)

// Analytics is the chart-feed endpoint payload: distributions over defects
// and tenants, keyed by the grouped value.
type Analytics struct {
	DefectsByCategory  map[string]int64 `json:"defects_by_category"`
	DefectsByStation   map[string]int64 `json:"defects_by_station"`
	DefectsByRisk      map[string]int64 `json:"defects_by_risk"`
	DefectsByProgress  map[string]int64 `json:"defects_by_progress"`
	DefectsByFy        map[string]int64 `json:"defects_by_fy"`
	FscDistribution    map[string]int64 `json:"fsc_distribution"`
	LeaseDistribution  map[string]int64 `json:"lease_distribution"`
	PmDistribution     map[string]int64 `json:"pm_distribution"`
	RegionDistribution map[string]int64 `json:"region_distribution"`
	AfssMonthly        map[string]int64 `json:"afss_monthly"`
}

func GetAnalytics(ctx context.Context, db *gorm.DB) (*Analytics, error) {
	dbCtx := db.WithContext(ctx)
	a := &Analytics{}
	var err error

	if a.DefectsByCategory, err = groupCount(dbCtx.Model(&models.Defect{}), "category", false); err != nil {
		return nil, err
	}
	if a.DefectsByStation, err = openDefectsBySite(dbCtx); err != nil {
		return nil, err
	}
	if a.DefectsByRisk, err = groupCount(dbCtx.Model(&models.Defect{}), "risk", false); err != nil {
		return nil, err
	}
	if a.DefectsByProgress, err = groupCount(dbCtx.Model(&models.Defect{}), "progress", false); err != nil {
		return nil, err
	}
	if a.DefectsByFy, err = groupCount(dbCtx.Model(&models.Defect{}), "financial_year", false); err != nil {
		return nil, err
	}
	if a.FscDistribution, err = groupCount(dbCtx.Model(&models.Tenant{}), "fsc_status", true); err != nil {
		return nil, err
	}
	if a.LeaseDistribution, err = groupCount(dbCtx.Model(&models.Tenant{}), "lease_status", false); err != nil {
		return nil, err
	}
	if a.PmDistribution, err = groupCount(dbCtx.Model(&models.Tenant{}), "property_manager", false); err != nil {
		return nil, err
	}
	if a.RegionDistribution, err = groupCount(dbCtx.Model(&models.Tenant{}), "region", false); err != nil {
		return nil, err
	}
	if a.AfssMonthly, err = afssMonthHistogram(dbCtx); err != nil {
		return nil, err
	}
	return a, nil
}

// openDefectsBySite counts open defects per site, top twenty sites.
func openDefectsBySite(dbCtx *gorm.DB) (map[string]int64, error) {
	var buckets []bucket
	err := dbCtx.Model(&models.Defect{}).
		Select("site_name AS label, COUNT(*) AS total").
		Where("progress IN ?", models.OpenDefectProgress).
		Group("site_name").
		Order("COUNT(*) DESC").
		Limit(20).
		Scan(&buckets).Error
	if err != nil {
		return nil, err
	}
	out := make(map[string]int64, len(buckets))
	for _, b := range buckets {
		out[b.Label] = b.Total
	}
	return out, nil
}
