package main

import (
	"flag"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/gorilla/handlers"
	_ "github.com/joho/godotenv/autoload"
	"github.com/phillipc0/PP-CGA-BE-Public/internal/config"
	"github.com/phillipc0/PP-CGA-BE-Public/internal/jwt"
	"github.com/phillipc0/PP-CGA-BE-Public/internal/mux"
	"github.com/phillipc0/PP-CGA-BE-Public/internal/rng"
	"github.com/phillipc0/PP-CGA-BE-Public/pkg/db"
	"github.com/phillipc0/PP-CGA-BE-Public/pkg/lock"
	"github.com/phillipc0/PP-CGA-BE-Public/pkg/playable"
	"github.com/phillipc0/PP-CGA-BE-Public/pkg/playable/luegen"
	"github.com/phillipc0/PP-CGA-BE-Public/pkg/playable/maumau"
	"github.com/phillipc0/PP-CGA-BE-Public/pkg/room"
	"github.com/phillipc0/PP-CGA-BE-Public/pkg/store"
	"github.com/rs/cors"
	"github.com/sirupsen/logrus"
)

const readTimeout = time.Second * 5
const writeTimeout = time.Second * 10

// Version is the server version
var Version = "v0.0.0-dev"

var addr = flag.String("addr", "", "the listen address, overrides the config")

func main() {
	flag.Parse()
	setupLogger()

	// fail fast
	jwt.LoadSecret()

	cfg := config.Instance()
	st := newStore(cfg)
	engine := playable.NewEngine(rng.Crypto{}, maumau.New(), luegen.New())
	pitBoss := room.NewPitBoss(engine, st, newLocker(cfg), room.Options{
		WatchdogInterval: cfg.Watchdog.Interval,
		TurnTimeout:      cfg.Watchdog.TurnTimeout,
		ActionTimeout:    room.DefaultOptions().ActionTimeout,
	})
	pitBoss.StartShift()

	c := cors.New(cors.Options{
		AllowedHeaders: []string{"Origin", "Accept", "Content-Type", "X-Requested-With", "Authorization"},
		AllowedMethods: []string{http.MethodGet, http.MethodPost},
	})

	listenAddr := cfg.Addr
	if *addr != "" {
		listenAddr = *addr
	}

	srv := &http.Server{
		Addr:         listenAddr,
		Handler:      loggingHandler(c.Handler(mux.NewMux(Version, pitBoss, st))),
		ReadTimeout:  readTimeout,
		WriteTimeout: writeTimeout,
	}

	logrus.WithField("addr", srv.Addr).Info("listening")
	logrus.Fatal(srv.ListenAndServe())
}

func newStore(cfg config.Config) store.Store {
	switch cfg.Store.Driver {
	case config.StoreMemory:
		logrus.Warn("using the in-memory store, sessions are lost on restart")
		return store.NewMemory()
	case config.StoreSQLite:
		return store.NewSQL(db.Instance(), store.SQLite)
	case config.StorePostgres:
		// run the db migrations
		db.Migrate()
		return store.NewSQL(db.Instance(), store.Postgres)
	}

	logrus.WithField("driver", cfg.Store.Driver).Fatal("unknown store driver")
	return nil
}

func newLocker(cfg config.Config) lock.Locker {
	switch cfg.Lock.Driver {
	case config.LockLocal:
		return lock.NewKeyedMutex()
	case config.LockRedis:
		client, err := lock.Connect(cfg.Redis.Addr, cfg.Redis.DB)
		if err != nil {
			logrus.WithError(err).Fatal("could not connect to redis")
		}

		return lock.NewRedis(client, cfg.Lock.TTL, cfg.Lock.RetryDelay)
	}

	logrus.WithField("driver", cfg.Lock.Driver).Fatal("unknown lock driver")
	return nil
}

func loggingHandler(next http.Handler) http.Handler {
	if config.Instance().Log.DisableAccessLogs {
		return next
	}

	return handlers.CombinedLoggingHandler(os.Stdout, next)
}

func setupLogger() {
	if lvl := config.Instance().Log.Level; lvl != "" {
		level, err := logrus.ParseLevel(lvl)
		if err != nil {
			logrus.WithError(err).Fatal("could not parse level")
		}

		logrus.SetLevel(level)
	}

	if strings.ToLower(os.Getenv("LOG_FORMAT")) == "json" {
		logrus.SetFormatter(&logrus.JSONFormatter{})
	}
}
