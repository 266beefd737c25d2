package main

import (
	"log"
	"os"

	echoapi "github.com/edukeep/edukeep/apps/api/echo"
	"github.com/edukeep/edukeep/core"
	"github.com/edukeep/edukeep/core/alert"
	"github.com/edukeep/edukeep/core/imports"
	"github.com/edukeep/edukeep/core/risk"
	emailsvc "github.com/edukeep/edukeep/services/email"
	logsvc "github.com/edukeep/edukeep/services/logger"
	"github.com/edukeep/edukeep/storage/database"
	inmemdb "github.com/edukeep/edukeep/storage/database/inmem"
	sqlxrepos "github.com/edukeep/edukeep/storage/database/sqlx"
)

func main() {
	std := log.New(os.Stdout, "API : ", log.LstdFlags|log.Lshortfile)

	var logger core.Logger
	if core.Conf.GetString("rollbarToken") != "" {
		logger = logsvc.NewRollbarLogger(std)
	} else {
		logger = logsvc.NewConsoleLogger(std)
	}

	var (
		recordRepo    imports.Repository
		alertRepo     alert.Repository
		thresholdRepo risk.ThresholdRepository
	)
	if core.Conf.GetString("databaseUrl") != "" {
		db, err := database.Open()
		errAndDie(err)
		defer db.Close()
		errAndDie(database.Migrate(db.DB))

		recordRepo = sqlxrepos.NewRecordRepository(db)
		alertRepo = sqlxrepos.NewAlertRepository(db)
		thresholdRepo = sqlxrepos.NewThresholdRepository(db)
	} else {
		// no database configured; state lives for the process lifetime only
		logger.Warn("databaseUrl not set, using the in-memory store")
		db, err := inmemdb.Open()
		errAndDie(err)

		recordRepo = inmemdb.NewRecordRepository(db)
		alertRepo = inmemdb.NewAlertRepository(db)
		thresholdRepo = inmemdb.NewThresholdRepository(db)
	}

	var mailSvc core.EmailService
	if core.Conf.GetBool("debug") {
		mailSvc = emailsvc.NewConsoleService()
	} else {
		mailSvc = emailsvc.NewSendgridService(logger)
	}

	importSvc := imports.NewService(recordRepo, alertRepo, thresholdRepo, mailSvc, logger)

	app := echoapi.NewServer(
		&echoapi.Options{
			Address:       core.Conf.GetString("serverAddress"),
			ImportSvc:     importSvc,
			RecordRepo:    recordRepo,
			AlertRepo:     alertRepo,
			ThresholdRepo: thresholdRepo,
			Logger:        logger,
		},
	)
	app.Start()
}

func errAndDie(err error) {
	if err != nil {
		log.Fatal(err)
	}
}
