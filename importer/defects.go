package importer

import (
	"context"
	"errors"
	"io/fs"
	"strings"

	"bitbucket.org/mmdatafocus/firesafety_backend/models"
)

// defectRecord is one row from either defect register, normalized. The newer
// register has no audit-type, quarter or month columns and decorates site
// names with lease-id suffixes.
type defectRecord struct {
	SiteName      *string
	AuditType     *string
	AuditDate     *string
	FinancialYear *string
	Year          *int
	Quarter       *int
	Month         *int
	Risk          *string
	Progress      *string
	Category      *string
}

// loadDefects reads both registers. Either file may be absent; a missing
// register is skipped, not an error.
func (imp *Importer) loadDefects() ([]defectRecord, error) {
	var records []defectRecord

	rows, err := readSheet(imp.cfg.path(imp.cfg.DefectsFile), "Sheet1")
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, err
	}
	for _, row := range rows {
		records = append(records, defectRecord{
			SiteName:      Clean(row["Site Name"]),
			AuditType:     Clean(row["Audit Type"]),
			AuditDate:     CleanDate(row["Audit Date"]),
			FinancialYear: Clean(row["Financial Year"]),
			Year:          CleanInt(row["Year"]),
			Quarter:       CleanInt(row["Quarter"]),
			Month:         CleanInt(row["Month"]),
			Risk:          Clean(row["Risk"]),
			Progress:      Clean(row["Progress"]),
			Category:      Clean(row["Category"]),
		})
	}

	rows, err = readSheet(imp.cfg.path(imp.cfg.DefectsNewFile), "Sheet1")
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, err
	}
	for _, row := range rows {
		site := Clean(row["Site Name"])
		if site != nil {
			stripped := strings.TrimSpace(leaseSuffixRe.ReplaceAllString(*site, ""))
			site = &stripped
		}
		records = append(records, defectRecord{
			SiteName:      site,
			AuditDate:     CleanDate(row["Audit Date"]),
			FinancialYear: Clean(row["Financial Year"]),
			Year:          CleanInt(row["Year"]),
			Risk:          Clean(row["Risk"]),
			Progress:      Clean(row["Progress"]),
			Category:      Clean(row["Category"]),
		})
	}

	return records, nil
}

// importDefects persists the defect records, linking each to a station by
// resolved site name: exact key first, then bidirectional substring over the
// sorted key list so the fallback picks the same station on every run.
// Unmatched defects keep a null station rather than being dropped.
func (imp *Importer) importDefects(ctx context.Context, records []defectRecord) (int, error) {
	count := 0
	for _, d := range records {
		if d.SiteName == nil {
			continue
		}

		var stationId *int
		key := ResolveKey(CleanSiteName(*d.SiteName))
		if key != "" {
			if id, ok := imp.stationIds[key]; ok {
				stationId = &id
			} else {
				for _, sk := range imp.sortedKeys {
					if strings.Contains(key, sk) || strings.Contains(sk, key) {
						id := imp.stationIds[sk]
						stationId = &id
						break
					}
				}
			}
		}

		defect := models.Defect{
			StationId:     stationId,
			SiteName:      *d.SiteName,
			Category:      d.Category,
			Risk:          d.Risk,
			Progress:      d.Progress,
			AuditType:     d.AuditType,
			AuditDate:     d.AuditDate,
			FinancialYear: d.FinancialYear,
			Year:          d.Year,
			Quarter:       d.Quarter,
			Month:         d.Month,
		}
		if err := imp.db.WithContext(ctx).Create(&defect).Error; err != nil {
			return count, err
		}
		count++
	}
	return count, nil
}
