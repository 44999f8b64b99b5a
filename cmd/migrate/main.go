package main

import (
	"database/sql"
	"time"

	_ "github.com/joho/godotenv/autoload"
	"github.com/phillipc0/PP-CGA-BE-Public/internal/config"
	"github.com/phillipc0/PP-CGA-BE-Public/pkg/db"
	"github.com/sirupsen/logrus"
)

func main() {
	if driver := config.Instance().Store.Driver; driver != config.StorePostgres {
		// sqlite applies its embedded migrations on open
		logrus.WithField("driver", driver).Info("nothing to migrate")
		return
	}

	waitForDB()
	db.Migrate()
}

func waitForDB() {
	timeout := time.NewTimer(time.Second * 10)
	for {
		select {
		case <-timeout.C:
			logrus.Fatal("could not connect to database")
		default:
			dbh := func() *sql.DB {
				defer func() { _ = recover() }()
				return db.Instance()
			}()

			if dbh != nil {
				return
			}

			time.Sleep(time.Millisecond * 500)
		}
	}
}
