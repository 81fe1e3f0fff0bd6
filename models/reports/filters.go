package reports

import (
	"context"
	"sort"

	"bitbucket.org/mmdatafocus/firesafety_backend/models"
	"gorm.io/gorm"
)

// FilterOptions feeds the list-view filter dropdowns with the distinct values
// currently in the data.
type FilterOptions struct {
	Regions            []string `json:"regions"`
	PropertyManagers   []string `json:"property_managers"`
	LeaseStatuses      []string `json:"lease_statuses"`
	Industries         []string `json:"industries"`
	Councils           []string `json:"councils"`
	DocumentCategories []string `json:"document_categories"`
}

func GetFilterOptions(ctx context.Context, db *gorm.DB) (*FilterOptions, error) {
	dbCtx := db.WithContext(ctx)

	distinct := func(model interface{}, column string) ([]string, error) {
		var values []string
		err := dbCtx.Model(model).Distinct(column).
			Where(column + " IS NOT NULL").Pluck(column, &values).Error
		if err != nil {
			return nil, err
		}
		sort.Strings(values)
		return values, nil
	}

	opts := &FilterOptions{DocumentCategories: models.DocumentCategories}
	var err error
	if opts.Regions, err = distinct(&models.Tenant{}, "region"); err != nil {
		return nil, err
	}
	if opts.PropertyManagers, err = distinct(&models.Tenant{}, "property_manager"); err != nil {
		return nil, err
	}
	if opts.LeaseStatuses, err = distinct(&models.Tenant{}, "lease_status"); err != nil {
		return nil, err
	}
	if opts.Industries, err = distinct(&models.Tenant{}, "standard_industry_class"); err != nil {
		return nil, err
	}
	if opts.Councils, err = distinct(&models.Station{}, "council"); err != nil {
		return nil, err
	}
	return opts, nil
}
