package importer

import (
	"context"
	"sort"

	"bitbucket.org/mmdatafocus/firesafety_backend/config"
	"bitbucket.org/mmdatafocus/firesafety_backend/models"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// Importer runs the whole spreadsheet-to-database pipeline. It is a one-shot,
// single-writer batch: every run drops and recreates the schema, so a failed
// run leaves no partial state worth recovering.
type Importer struct {
	db  *gorm.DB
	cfg Config
	log *logrus.Logger

	registry   *Registry
	stationIds map[string]int
	sortedKeys []string
}

// Summary is what a completed run reports.
type Summary struct {
	Stations     int64
	Tenants      int64
	Defects      int64
	AfssStations int64
}

func New(db *gorm.DB, cfg Config) *Importer {
	return &Importer{
		db:  db,
		cfg: cfg,
		log: config.GetLogger(),
	}
}

// Run executes the pipeline: reset schema, build the station registry from
// all sources in fixed order, materialize stations, link tenants and defects,
// then recompute priorities.
func (imp *Importer) Run(ctx context.Context) (*Summary, error) {
	imp.log.Info("resetting schema")
	if err := models.DropSchema(imp.db); err != nil {
		return nil, err
	}
	if err := models.MigrateSchema(imp.db); err != nil {
		return nil, err
	}

	afssRows, err := imp.loadAfssSchedule()
	if err != nil {
		return nil, err
	}
	imp.log.WithField("rows", len(afssRows)).Info("loaded AFSS schedule")

	tamRows, err := readSheet(imp.cfg.path(imp.cfg.TamFile), tamSheet)
	if err != nil {
		return nil, err
	}
	imp.log.WithField("rows", len(tamRows)).Info("loaded TAM tenancy schedule")

	enmRows, err := readSheet(imp.cfg.path(imp.cfg.EnmFile), enmSheet)
	if err != nil {
		return nil, err
	}
	imp.log.WithField("rows", len(enmRows)).Info("loaded ENM tenancy schedule")

	icomplyRows, err := imp.loadIcomplySites()
	if err != nil {
		return nil, err
	}
	imp.log.WithField("sites", len(icomplyRows)).Info("loaded ICOMPLY site list")

	defectRecords, err := imp.loadDefects()
	if err != nil {
		return nil, err
	}
	imp.log.WithField("rows", len(defectRecords)).Info("loaded defect registers")

	imp.buildRegistry(afssRows, tamRows, enmRows, icomplyRows, defectRecords)
	imp.log.WithField("stations", imp.registry.Len()).Info("built station registry")

	if err := imp.createStations(ctx); err != nil {
		return nil, err
	}

	contacts := buildContactLookup(enmRows)
	imp.log.WithField("contacts", len(contacts)).Info("built ENM contact lookup")

	tamCount, err := imp.importTamTenants(ctx, tamRows, contacts)
	if err != nil {
		return nil, err
	}
	imp.log.WithField("tenants", tamCount).Info("imported TAM tenants")

	enmCount, err := imp.importEnmTenants(ctx, enmRows)
	if err != nil {
		return nil, err
	}
	imp.log.WithField("tenants", enmCount).Info("imported ENM-only tenants")

	obsCount, err := imp.applyObservations(ctx)
	if err != nil {
		return nil, err
	}
	imp.log.WithField("tenants", obsCount).Info("applied fire safety observations")

	defectCount, err := imp.importDefects(ctx, defectRecords)
	if err != nil {
		return nil, err
	}
	imp.log.WithField("defects", defectCount).Info("imported defects")

	if err := imp.recomputePriorities(ctx); err != nil {
		return nil, err
	}

	summary, err := imp.summarize(ctx)
	if err != nil {
		return nil, err
	}
	imp.log.WithFields(logrus.Fields{
		"stations":      summary.Stations,
		"tenants":       summary.Tenants,
		"defects":       summary.Defects,
		"afss_stations": summary.AfssStations,
	}).Info("import complete")
	return summary, nil
}

// buildRegistry feeds the sources into the registry in fixed order. Source
// order plus first-write-wins per field decides every station attribute.
func (imp *Importer) buildRegistry(afssRows, tamRows, enmRows []Row, icomplySites []icomplySite, defects []defectRecord) {
	reg := NewRegistry()

	for _, row := range afssRows {
		name := Clean(row["Station"])
		if name == nil {
			continue
		}
		key := ResolveKey(*name)
		if key == "" {
			continue
		}
		rec := reg.Ensure(key, *name)
		setString(&rec.Code, Clean(row["Code"]))
		setInt(&rec.TenantFscDueMonth, CleanMonth(row["Tenant_FSC_Due_Month"]))
		setInt(&rec.AfssDueMonth, CleanMonth(row["AFSS_Due_Month"]))
		setInt(&rec.InspectionMonth, CleanMonth(row["Inspection_Month"]))
		setString(&rec.LeaseTypeCategory, Clean(row["Lease_Type"]))
		setString(&rec.AfssLikely, Clean(row["AFSS_Likely"]))
	}

	for _, row := range tamRows {
		zone := Clean(row["Zone"])
		if zone == nil {
			continue
		}
		key := ResolveKey(*zone)
		if key == "" {
			continue
		}
		rec := reg.Ensure(key, *zone)
		setString(&rec.Region, Clean(row["Region"]))
		setString(&rec.BuildingName, Clean(row["Building Name"]))
		setString(&rec.MriBldId, Clean(row["MRI Bld ID"]))
		setString(&rec.Council, Clean(row["Council"]))
	}

	for _, row := range enmRows {
		zone := Clean(row["Zone"])
		if zone == nil {
			continue
		}
		key := ResolveKey(*zone)
		if key == "" {
			continue
		}
		rec := reg.Ensure(key, *zone)
		setString(&rec.Region, Clean(row["Region"]))
		setString(&rec.BuildingName, Clean(row["Building Name"]))
	}

	for _, site := range icomplySites {
		key := ResolveKey(site.Name)
		if key == "" {
			continue
		}
		rec := reg.Ensure(key, site.Name)
		setString(&rec.IcomplyContact, Clean(site.Contact))
		setString(&rec.Address, Clean(site.Address))
		setString(&rec.City, Clean(site.City))
	}

	for _, d := range defects {
		if d.SiteName == nil {
			continue
		}
		base := CleanSiteName(*d.SiteName)
		key := ResolveKey(base)
		if key == "" {
			continue
		}
		reg.Ensure(key, base)
	}

	imp.registry = reg
}

// createStations materializes the registry, one Station row per key in
// first-seen order, and records the key-to-id map the linkers use.
func (imp *Importer) createStations(ctx context.Context) error {
	imp.stationIds = make(map[string]int, imp.registry.Len())

	for _, key := range imp.registry.Keys() {
		rec := imp.registry.Get(key)
		hasFss := rec.AfssLikely != nil && *rec.AfssLikely == "Yes"
		station := models.Station{
			Name:                  rec.Name,
			Code:                  rec.Code,
			Region:                rec.Region,
			BuildingName:          rec.BuildingName,
			MriBldId:              rec.MriBldId,
			Address:               rec.Address,
			City:                  rec.City,
			State:                 "NSW",
			Council:               rec.Council,
			IcomplyContact:        rec.IcomplyContact,
			AfssDueMonth:          rec.AfssDueMonth,
			TenantFscDueMonth:     rec.TenantFscDueMonth,
			InspectionMonth:       rec.InspectionMonth,
			AfssLikely:            rec.AfssLikely,
			LeaseTypeCategory:     rec.LeaseTypeCategory,
			HasFireSafetySchedule: &hasFss,
		}
		if err := imp.db.WithContext(ctx).Create(&station).Error; err != nil {
			return err
		}
		imp.stationIds[key] = station.ID
	}

	imp.sortedKeys = make([]string, 0, len(imp.stationIds))
	for key := range imp.stationIds {
		imp.sortedKeys = append(imp.sortedKeys, key)
	}
	sort.Strings(imp.sortedKeys)

	imp.log.WithField("stations", len(imp.stationIds)).Info("created station records")
	return nil
}

// recomputePriorities copies station-wide open/major defect counts onto every
// tenant of the station, then derives each tenant's priority.
func (imp *Importer) recomputePriorities(ctx context.Context) error {
	var stations []models.Station
	if err := imp.db.WithContext(ctx).Find(&stations).Error; err != nil {
		return err
	}

	for _, station := range stations {
		var defects []models.Defect
		if err := imp.db.WithContext(ctx).Where("station_id = ?", station.ID).Find(&defects).Error; err != nil {
			return err
		}
		open, major := 0, 0
		for _, d := range defects {
			if models.IsOpenDefect(d.Progress) {
				open++
				if models.IsMajorRisk(d.Risk) {
					major++
				}
			}
		}

		var tenants []models.Tenant
		if err := imp.db.WithContext(ctx).Where("station_id = ?", station.ID).Find(&tenants).Error; err != nil {
			return err
		}
		for i := range tenants {
			priority := CalculatePriority(tenants[i].FscStatus, open, major)
			err := imp.db.WithContext(ctx).Model(&tenants[i]).Updates(map[string]interface{}{
				"OpenDefects":  open,
				"MajorDefects": major,
				"Priority":     priority,
			}).Error
			if err != nil {
				return err
			}
		}
	}
	return nil
}

func (imp *Importer) summarize(ctx context.Context) (*Summary, error) {
	var s Summary
	dbCtx := imp.db.WithContext(ctx)
	if err := dbCtx.Model(&models.Station{}).Count(&s.Stations).Error; err != nil {
		return nil, err
	}
	if err := dbCtx.Model(&models.Tenant{}).Count(&s.Tenants).Error; err != nil {
		return nil, err
	}
	if err := dbCtx.Model(&models.Defect{}).Count(&s.Defects).Error; err != nil {
		return nil, err
	}
	if err := dbCtx.Model(&models.Station{}).Where("afss_due_month IS NOT NULL").Count(&s.AfssStations).Error; err != nil {
		return nil, err
	}
	return &s, nil
}

// loadAfssSchedule reads the AFSS master inspection list. The workbook's
// header row is decorative, so columns are named positionally; repeated
// header rows inside the data are skipped.
func (imp *Importer) loadAfssSchedule() ([]Row, error) {
	columns := []string{"Station", "Code", "Tenant_FSC_Due_Month", "AFSS_Due_Month",
		"Inspection_Month", "Lease_Type", "AFSS_Likely", "Notes"}
	rows, err := readSheetAs(imp.cfg.path(imp.cfg.AfssFile), "", columns)
	if err != nil {
		return nil, err
	}
	out := rows[:0]
	for _, row := range rows {
		if row["Station"] == "Station" {
			continue
		}
		out = append(out, row)
	}
	return out, nil
}

// icomplySite is one deduplicated ICOMPLY entry. Site names in the list carry
// lease-id and " Station" suffixes; Name is the stripped base name, Entries
// the raw variants that collapsed into it.
type icomplySite struct {
	Name    string
	City    string
	Address string
	Contact string
	Entries []string
}

// loadIcomplySites reads the ICOMPLY list and groups rows by base site name,
// keeping the first row's attributes per site.
func (imp *Importer) loadIcomplySites() ([]icomplySite, error) {
	columns := []string{"Site Name", "City", "Site Type", "Address", "Contact"}
	rows, err := readSheetAs(imp.cfg.path(imp.cfg.IcomplyFile), "", columns)
	if err != nil {
		return nil, err
	}

	index := map[string]int{}
	var sites []icomplySite
	for _, row := range rows {
		name := Clean(row["Site Name"])
		if name == nil {
			continue
		}
		base := CleanSiteName(*name)
		if base == "" {
			continue
		}
		if i, ok := index[base]; ok {
			sites[i].Entries = append(sites[i].Entries, *name)
			continue
		}
		index[base] = len(sites)
		sites = append(sites, icomplySite{
			Name:    base,
			City:    row["City"],
			Address: row["Address"],
			Contact: row["Contact"],
			Entries: []string{*name},
		})
	}
	return sites, nil
}
