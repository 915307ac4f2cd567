package app

import (
	"net/http"
	"time"

	"github.com/finbook/finbook/internal/config"
	"github.com/finbook/finbook/internal/database"
	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"
)

// Application wires configuration, database, router, and server lifecycle.
type Application struct {
	cfg          config.Application
	router       *mux.Router
	srv          *http.Server
	stopReminder func()
}

// NewApplication constructs the full HTTP application, ready to Run().
func NewApplication() (*Application, error) {
	cfg, err := config.Load("./config/application.yaml")
	if err != nil {
		return nil, err
	}

	db, err := database.Open(cfg.Database)
	if err != nil {
		return nil, err
	}
	if err := database.Migrate(cfg.Database); err != nil {
		return nil, err
	}

	r := mux.NewRouter()

	deps := BuildDependencies(db, cfg)

	SetupMiddleware(r, deps)
	RegisterRoutes(r, deps)

	var stopReminder func()
	if cfg.Reminder.Enabled {
		stopReminder, err = deps.ReminderScanner.Schedule(cfg.Reminder.Schedule)
		if err != nil {
			return nil, err
		}
		log.Infof("Bill reminder scan scheduled: %s", cfg.Reminder.Schedule)
	}

	srv := &http.Server{
		Handler:      r,
		Addr:         cfg.Addr,
		WriteTimeout: 15 * time.Second,
		ReadTimeout:  15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	return &Application{cfg: cfg, router: r, srv: srv, stopReminder: stopReminder}, nil
}

// Run starts the HTTP server and blocks.
func (a *Application) Run() error {
	log.Infof("Starting server on %s", a.srv.Addr)
	if a.stopReminder != nil {
		defer a.stopReminder()
	}
	return a.srv.ListenAndServe()
}
