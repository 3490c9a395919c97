package main

import (
	"flag"
	"net/http"
	"os"
	"strings"
	"texasholdem-server/internal/config"
	"texasholdem-server/internal/jwt"
	"texasholdem-server/internal/mux"
	"texasholdem-server/pkg/db"
	"texasholdem-server/pkg/poker/texasholdem"
	"texasholdem-server/pkg/room"
	"texasholdem-server/pkg/store"
	"time"

	"github.com/gorilla/handlers"
	"github.com/rs/cors"
	"github.com/sirupsen/logrus"
)

const readTimeout = time.Second * 5
const writeTimeout = time.Second * 10

// Version is the server version
var Version = "v0.0.0-dev"

var addr = flag.String("addr", ":5000", "the listen address")

func main() {
	flag.Parse()
	setupLogger()

	cfg := config.Instance()

	// fail fast
	if err := jwt.LoadKeys(); err != nil {
		logrus.WithError(err).Fatal("could not load jwt keys")
	}

	s := newStore(cfg)

	roomOpts := room.DefaultOptions()
	roomOpts.TurnTimeout = time.Duration(cfg.Table.TurnTimeout) * time.Second

	pitBoss := room.NewPitBoss(s, roomOpts)
	pitBoss.StartShift()

	tableOpts := texasholdem.DefaultOptions()
	tableOpts.SmallBlind = cfg.Table.SmallBlind
	tableOpts.BigBlind = cfg.Table.BigBlind
	tableOpts.EnforceMinRaise = cfg.Table.EnforceMinRaise

	c := cors.New(cors.Options{
		AllowedOrigins: cfg.CORSAllowedOrigins,
		AllowedHeaders: []string{"Origin", "Accept", "Content-Type", "X-Requested-With", "Authorization"},
		AllowedMethods: []string{http.MethodGet, http.MethodPost},
	})

	srv := &http.Server{
		Addr:         *addr,
		Handler:      loggingHandler(c.Handler(mux.NewMux(Version, pitBoss, s, tableOpts))),
		ReadTimeout:  readTimeout,
		WriteTimeout: writeTimeout,
	}

	logrus.WithFields(logrus.Fields{
		"addr":        srv.Addr,
		"store":       cfg.Store,
		"turnTimeout": roomOpts.TurnTimeout,
	}).Info("listening")
	logrus.Fatal(srv.ListenAndServe())
}

func newStore(cfg config.Config) store.Store {
	switch cfg.Store {
	case config.StoreMemory:
		logrus.Warn("tables are kept in memory and will be lost on restart")
		return store.NewMemoryStore()
	case config.StorePostgres:
		dbh := db.Instance()
		if err := db.Migrate(dbh, cfg.MigrationsPath); err != nil {
			logrus.WithError(err).Fatal("could not run migrations")
		}

		return store.NewPostgresStore(dbh)
	}

	logrus.WithField("store", cfg.Store).Fatal("unknown store")
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
