package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"bitbucket.org/mmdatafocus/firesafety_backend/config"
	"bitbucket.org/mmdatafocus/firesafety_backend/importer"
	"github.com/sirupsen/logrus"
)

// One-shot loader: drops and rebuilds the schema, then imports the source
// spreadsheets. Run it whenever fresh exports arrive.
func main() {
	logger := config.GetLogger()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	db := config.ConnectDatabaseWithRetry()
	sqlDB, _ := db.DB()
	defer func() {
		if sqlDB != nil {
			_ = sqlDB.Close()
		}
	}()

	summary, err := importer.New(db, importer.ConfigFromEnv()).Run(ctx)
	if err != nil {
		logger.WithFields(logrus.Fields{"field": "import"}).Fatal(err.Error())
	}

	logger.WithFields(logrus.Fields{
		"stations":      summary.Stations,
		"tenants":       summary.Tenants,
		"defects":       summary.Defects,
		"afss_stations": summary.AfssStations,
	}).Info("import complete")
}
