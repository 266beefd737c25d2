package main

import (
	"log"
	"os"

	"github.com/edukeep/edukeep/core"
	"github.com/edukeep/edukeep/core/alert"
	"github.com/edukeep/edukeep/core/imports"
	"github.com/edukeep/edukeep/core/risk"
	emailsvc "github.com/edukeep/edukeep/services/email"
	logsvc "github.com/edukeep/edukeep/services/logger"
	"github.com/edukeep/edukeep/storage/database"
	inmemdb "github.com/edukeep/edukeep/storage/database/inmem"
	sqlxrepos "github.com/edukeep/edukeep/storage/database/sqlx"
	"github.com/jmoiron/sqlx"
)

var logger *log.Logger

func main() {
	defer os.Exit(0)

	logger = log.New(os.Stdout, "ADMIN : ", log.LstdFlags|log.Lmicroseconds|log.Lshortfile)

	var (
		db            *sqlx.DB
		recordRepo    imports.Repository
		alertRepo     alert.Repository
		thresholdRepo risk.ThresholdRepository
	)
	if core.Conf.GetString("databaseUrl") != "" {
		var err error
		db, err = database.Open()
		errAndDie(err)
		defer db.Close()

		recordRepo = sqlxrepos.NewRecordRepository(db)
		alertRepo = sqlxrepos.NewAlertRepository(db)
		thresholdRepo = sqlxrepos.NewThresholdRepository(db)
	} else {
		memdb, err := inmemdb.Open()
		errAndDie(err)

		recordRepo = inmemdb.NewRecordRepository(memdb)
		alertRepo = inmemdb.NewAlertRepository(memdb)
		thresholdRepo = inmemdb.NewThresholdRepository(memdb)
	}

	importSvc := imports.NewService(
		recordRepo,
		alertRepo,
		thresholdRepo,
		emailsvc.NewConsoleService(),
		logsvc.NewConsoleLogger(logger),
	)

	cli := commandLine{
		db:        db,
		importSvc: importSvc,
	}
	if err := cli.run(os.Args); err != nil {
		if err != errHelp {
			logger.Printf("\nerror: %s\n", err)
		}
		os.Exit(1)
	}
}

func errAndDie(err error) {
	if err != nil {
		logger.Fatal(err)
	}
}
