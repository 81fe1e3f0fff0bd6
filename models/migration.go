package models

import "gorm.io/gorm"

func allModels() []interface{} {
	return []interface{}{
		&Station{},
		&Tenant{},
		&Defect{},
		&Document{},
		&Note{},
		&Communication{},
		&Activity{},
	}
}

func MigrateSchema(db *gorm.DB) error {
	return db.AutoMigrate(allModels()...)
}

// DropSchema tears the schema down; the importer calls this before every run
// so imports are idempotent at whole-run granularity.
func DropSchema(db *gorm.DB) error {
	models := allModels()
	// Drop children before parents so foreign keys do not block the drop.
	for i := len(models) - 1; i >= 0; i-- {
		if db.Migrator().HasTable(models[i]) {
			if err := db.Migrator().DropTable(models[i]); err != nil {
				return err
			}
		}
	}
	return nil
}
