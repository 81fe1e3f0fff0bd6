package importer

import (
	"context"
	"strings"

	"bitbucket.org/mmdatafocus/firesafety_backend/models"
)

// contactInfo is the contact slice of an ENM row, joined onto TAM tenants by
// lease id.
type contactInfo struct {
	ContactName     *string
	ContactPhone    *string
	ContactPhone2   *string
	ContactMobile   *string
	ContactEmail    *string
	BillingEmail    *string
	Abn             *string
	TradingName     *string
	BillingName     *string
	BillingAddress  *string
	BillingCity     *string
	BillingState    *string
	BillingPostcode *string
}

func buildContactLookup(enmRows []Row) map[string]contactInfo {
	contacts := map[string]contactInfo{}
	for _, row := range enmRows {
		lid := CleanID(row["Lease ID"])
		if lid == nil {
			continue
		}
		contacts[*lid] = contactInfo{
			ContactName:     Clean(row["contname"]),
			ContactPhone:    Clean(row["phoneno1"]),
			ContactPhone2:   Clean(row["phoneno2"]),
			ContactMobile:   Clean(row["regoffmobile"]),
			ContactEmail:    Clean(row["jll_email"]),
			BillingEmail:    Clean(row["emailbill"]),
			Abn:             Clean(row["ABN"]),
			TradingName:     Clean(row["trading_name"]),
			BillingName:     Clean(row["billing_name"]),
			BillingAddress:  Clean(row["address"]),
			BillingCity:     Clean(row["city"]),
			BillingState:    Clean(row["state"]),
			BillingPostcode: Clean(row["zipcode"]),
		}
	}
	return contacts
}

// importTamTenants creates one tenant per usable TAM row. A row is usable
// when its zone resolves to a known station and it names a tenant. ENM
// contact details join in by cleaned lease id.
func (imp *Importer) importTamTenants(ctx context.Context, tamRows []Row, contacts map[string]contactInfo) (int, error) {
	count := 0
	for _, row := range tamRows {
		zone := Clean(row["Zone"])
		if zone == nil {
			continue
		}
		key := ResolveKey(*zone)
		stationId, ok := imp.stationIds[key]
		if !ok {
			continue
		}
		tenantName := Clean(row["Tenant Name"])
		if tenantName == nil {
			continue
		}

		lid := CleanID(row["Lease ID"])
		var contact contactInfo
		if lid != nil {
			contact = contacts[*lid]
		}

		rec := imp.registry.Get(key)

		tradingName := Clean(row["Trading Name"])
		if tradingName == nil {
			tradingName = contact.TradingName
		}

		source := "TAM"
		tenant := models.Tenant{
			StationId:             stationId,
			TenantName:            *tenantName,
			TradingName:           tradingName,
			FileNumber:            Clean(row["File Number"]),
			LeaseId:               lid,
			AgreementNumber:       Clean(row["Agreement Number"]),
			Region:                Clean(row["Region"]),
			Zone:                  zone,
			PremisesDescription:   Clean(row["Premises Description"]),
			LotsDpNumbers:         Clean(row["Lots and DP numbers"]),
			StandardIndustryClass: Clean(row["Standard Industry Class"]),
			LeaseStatus:           Clean(row["Lease Status"]),
			LeaseType:             Clean(row["Lease Type"]),
			LeaseStart:            Clean(row["Lease Start"]),
			LeaseExpiry:           Clean(row["Lease Expiry"]),
			LeaseTerms:            Clean(row["Lease Terms"]),
			LeaseNote:             Clean(row["Lease Note"]),
			Heritage:              Clean(row["Heritage"]),
			RentPsmPa:             CleanFloat(row["$/psm pa"]),
			BaseRentPa:            CleanFloat(row["Base Rent per annum"]),
			TotalPassingRentPa:    CleanFloat(row["TOTAL PASSING RENT, p.a."]),
			RentIncomeCode:        Clean(row["Base Rent Income Code Description"]),
			PropertyManager:       Clean(row["Property Manager"]),
			ContactName:           contact.ContactName,
			ContactPhone:          contact.ContactPhone,
			ContactPhone2:         contact.ContactPhone2,
			ContactMobile:         contact.ContactMobile,
			ContactEmail:          contact.ContactEmail,
			BillingEmail:          contact.BillingEmail,
			Abn:                   contact.Abn,
			BillingName:           contact.BillingName,
			BillingAddress:        contact.BillingAddress,
			BillingCity:           contact.BillingCity,
			BillingState:          contact.BillingState,
			BillingPostcode:       contact.BillingPostcode,
			AfssMonth:             rec.AfssDueMonth,
			FscDueMonth:           rec.TenantFscDueMonth,
			FscStatus:             models.FscStatusPending,
			DataSource:            &source,
		}
		if err := imp.db.WithContext(ctx).Create(&tenant).Error; err != nil {
			return count, err
		}
		count++
	}
	return count, nil
}

// importEnmTenants creates tenants for ENM rows whose lease id is not already
// present, so the same lease never yields two rows.
func (imp *Importer) importEnmTenants(ctx context.Context, enmRows []Row) (int, error) {
	var existing []string
	err := imp.db.WithContext(ctx).Model(&models.Tenant{}).
		Where("lease_id IS NOT NULL").Pluck("lease_id", &existing).Error
	if err != nil {
		return 0, err
	}
	existingIds := make(map[string]bool, len(existing))
	for _, id := range existing {
		existingIds[id] = true
	}

	count := 0
	for _, row := range enmRows {
		lid := CleanID(row["Lease ID"])
		if lid != nil && existingIds[*lid] {
			continue
		}

		zone := Clean(row["Zone"])
		if zone == nil {
			continue
		}
		key := ResolveKey(*zone)
		stationId, ok := imp.stationIds[key]
		if !ok {
			continue
		}
		tenantName := Clean(row["Tenant Name"])
		if tenantName == nil {
			continue
		}

		rec := imp.registry.Get(key)

		source := "ENM"
		tenant := models.Tenant{
			StationId:             stationId,
			TenantName:            *tenantName,
			TradingName:           Clean(row["trading_name"]),
			FileNumber:            Clean(row["File Number"]),
			LeaseId:               lid,
			Region:                Clean(row["Region"]),
			Zone:                  zone,
			PremisesDescription:   Clean(row["Premises Description"]),
			StandardIndustryClass: Clean(row["Standard Industry Class"]),
			LeaseStatus:           Clean(row["Lease Status"]),
			PropertyManager:       Clean(row["Property Manager"]),
			ContactName:           Clean(row["contname"]),
			ContactPhone:          Clean(row["phoneno1"]),
			ContactPhone2:         Clean(row["phoneno2"]),
			ContactMobile:         Clean(row["regoffmobile"]),
			ContactEmail:          Clean(row["jll_email"]),
			BillingEmail:          Clean(row["emailbill"]),
			Abn:                   Clean(row["ABN"]),
			BillingName:           Clean(row["billing_name"]),
			AfssMonth:             rec.AfssDueMonth,
			FscDueMonth:           rec.TenantFscDueMonth,
			FscStatus:             models.FscStatusPending,
			DataSource:            &source,
		}
		if err := imp.db.WithContext(ctx).Create(&tenant).Error; err != nil {
			return count, err
		}
		if lid != nil {
			existingIds[*lid] = true
		}
		count++
	}
	return count, nil
}

// observationFields maps observation workbook columns to tenant model fields.
var observationFields = []struct {
	Column string
	Field  string
}{
	{"Fire Detection", "FireDetection"},
	{"Fire Sprinklers", "FireSprinklers"},
	{"Fire Hydrants", "FireHydrants"},
	{"Fire Extinguishers", "FireExtinguishers"},
	{"Exit Lighting", "ExitLighting"},
	{"Emergency Lighting", "EmergencyLighting"},
	{"Evacuation Diagrams", "EvacuationDiagrams"},
	{"Emergency Pathway", "EmergencyPathway"},
	{"Fire Doors", "FireDoors"},
	{"Fire Walls", "FireWalls"},
	{"Mechanical Ventilation", "MechanicalVentilation"},
	{"Possible AFSS Issues", "PossibleAfssIssues"},
	{"Comments to Site Staff", "CommentsToSiteStaff"},
}

// applyObservations enriches tenants with the Circular Quay fire safety
// observation records. Each record updates at most one tenant: matched by
// lease id when possible, otherwise by name substring among that station's
// tenants only.
func (imp *Importer) applyObservations(ctx context.Context) (int, error) {
	rows, err := readSheet(imp.cfg.path(imp.cfg.ObservationsFile), "")
	if err != nil {
		return 0, err
	}

	scopeStationId := imp.stationIds[ResolveKey("Circular Quay")]
	var candidates []models.Tenant
	if scopeStationId > 0 {
		err := imp.db.WithContext(ctx).Where("station_id = ?", scopeStationId).
			Order("tenant_name").Find(&candidates).Error
		if err != nil {
			return 0, err
		}
	}

	count := 0
	for _, row := range rows {
		var tenant models.Tenant
		found := false

		if lid := CleanID(row["Lease ID"]); lid != nil {
			if err := imp.db.WithContext(ctx).Where("lease_id = ?", *lid).First(&tenant).Error; err == nil {
				found = true
			}
		}
		if !found {
			name := Clean(row["Tenant Name"])
			if name == nil {
				continue
			}
			needle := strings.ToLower(*name)
			for _, c := range candidates {
				haystack := strings.ToLower(c.TenantName)
				if strings.Contains(haystack, needle) || strings.Contains(needle, haystack) {
					tenant = c
					found = true
					break
				}
			}
		}
		if !found {
			continue
		}

		updates := map[string]interface{}{}
		for _, f := range observationFields {
			if v := Clean(row[f.Column]); v != nil {
				updates[f.Field] = *v
			}
		}
		if v := CleanDate(row["Fire Equipment Service Date"]); v != nil {
			updates["FireEquipmentServiceDate"] = *v
		}
		if v := CleanDate(row["Fire Equipment Service Due"]); v != nil {
			updates["FireEquipmentServiceDue"] = *v
		}
		if v := CleanDate(row["Last Inspection Date"]); v != nil {
			updates["LastInspectionDate"] = *v
		}
		if len(updates) == 0 {
			continue
		}
		if err := imp.db.WithContext(ctx).Model(&tenant).Updates(updates).Error; err != nil {
			return count, err
		}
		count++
	}
	return count, nil
}
