package importer

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/xuri/excelize/v2"
)

// Config names the source workbooks. Every import run reads all of them;
// the two defect registers are optional and skipped when absent.
type Config struct {
	Dir string

	AfssFile         string
	TamFile          string
	EnmFile          string
	IcomplyFile      string
	ObservationsFile string
	DefectsFile      string
	DefectsNewFile   string
}

// Sheet names inside the tenancy workbooks. The trailing space in the ENM
// sheet name is in the source file.
const (
	tamSheet = "Amended Sheet"
	enmSheet = "EAX Mth Reportv2 "
)

func DefaultConfig(dir string) Config {
	return Config{
		Dir:              dir,
		AfssFile:         "Master_AFSS_Inspection_List.xlsx",
		TamFile:          "TAM_Tenancy_Schedule.xlsx",
		EnmFile:          "ENM_Tenancy_Schedule.xlsx",
		IcomplyFile:      "ICOMPLY_Sites.xlsx",
		ObservationsFile: "Circular_Quay_Fire_Safety_Observations.xlsx",
		DefectsFile:      "Defects_Register.xlsx",
		DefectsNewFile:   "Defects_Register_New.xlsx",
	}
}

// ConfigFromEnv reads IMPORT_DIR (default ./data) and per-file overrides.
func ConfigFromEnv() Config {
	dir := os.Getenv("IMPORT_DIR")
	if dir == "" {
		dir = "./data"
	}
	cfg := DefaultConfig(dir)
	override := func(dst *string, key string) {
		if v := os.Getenv(key); v != "" {
			*dst = v
		}
	}
	override(&cfg.AfssFile, "IMPORT_AFSS_FILE")
	override(&cfg.TamFile, "IMPORT_TAM_FILE")
	override(&cfg.EnmFile, "IMPORT_ENM_FILE")
	override(&cfg.IcomplyFile, "IMPORT_ICOMPLY_FILE")
	override(&cfg.ObservationsFile, "IMPORT_OBSERVATIONS_FILE")
	override(&cfg.DefectsFile, "IMPORT_DEFECTS_FILE")
	override(&cfg.DefectsNewFile, "IMPORT_DEFECTS_NEW_FILE")
	return cfg
}

func (c Config) path(name string) string {
	return filepath.Join(c.Dir, name)
}

// Row is one spreadsheet row keyed by header. Missing cells read as "".
type Row map[string]string

// readSheet reads a whole sheet into rows keyed by the first row's headers.
// An empty sheet name means the first sheet in the workbook.
func readSheet(path, sheet string) ([]Row, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	if sheet == "" {
		sheet = f.GetSheetName(0)
	}
	raw, err := f.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("read %s!%s: %w", path, sheet, err)
	}
	if len(raw) == 0 {
		return nil, nil
	}

	header := raw[0]
	rows := make([]Row, 0, len(raw)-1)
	for _, cells := range raw[1:] {
		row := Row{}
		empty := true
		for i, h := range header {
			val := ""
			if i < len(cells) {
				val = cells[i]
			}
			if val != "" {
				empty = false
			}
			row[h] = val
		}
		if !empty {
			rows = append(rows, row)
		}
	}
	return rows, nil
}

// readSheetAs reads a sheet whose header row is unusable (merged or styled
// cells) using a caller-supplied column list instead. The first row is still
// skipped as the header.
func readSheetAs(path, sheet string, columns []string) ([]Row, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	if sheet == "" {
		sheet = f.GetSheetName(0)
	}
	raw, err := f.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("read %s!%s: %w", path, sheet, err)
	}
	if len(raw) == 0 {
		return nil, nil
	}

	rows := make([]Row, 0, len(raw)-1)
	for _, cells := range raw[1:] {
		row := Row{}
		empty := true
		for i, col := range columns {
			val := ""
			if i < len(cells) {
				val = cells[i]
			}
			if val != "" {
				empty = false
			}
			row[col] = val
		}
		if !empty {
			rows = append(rows, row)
		}
	}
	return rows, nil
}
