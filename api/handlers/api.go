package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/linesmerrill/rsvp-api/api"
	"github.com/linesmerrill/rsvp-api/config"
	"github.com/linesmerrill/rsvp-api/databases"
	"github.com/linesmerrill/rsvp-api/models"
	"github.com/linesmerrill/rsvp-api/notify"
	"github.com/linesmerrill/rsvp-api/public"
)

// ConnectTimeout bounds the initial database connection and ping
const ConnectTimeout = 10 * time.Second

var errMissingGateSecret = errors.New("GATE_SECRET is not configured")

// App stores the router and db connection, so it can be reused
type App struct {
	Router   *mux.Router
	Config   config.Config
	Notifier *notify.Notifier
	InviteDB databases.InviteDatabase
	client   databases.ClientHelper
	dbHelper databases.DatabaseHelper
}

// New creates a new mux router and all the routes
func (a *App) New() *mux.Router {
	r := mux.NewRouter()
	r.Use(api.MetricsMiddleware)

	inv := Invite{
		DB:             a.InviteDB,
		Notifier:       a.Notifier,
		SuccessMessage: a.Config.SuccessMessage,
	}
	cred := Credential{Secret: a.Config.GateSecret}

	// healthchex
	r.HandleFunc("/health", healthCheckHandler).Methods("GET")
	r.Handle("/metrics", promhttp.Handler()).Methods("GET")

	r.HandleFunc("/api/verify-credential", cred.VerifyCredentialHandler).Methods("POST")
	r.HandleFunc("/submit", inv.SubmitInviteHandler).Methods("POST")

	// landing and thank-you pages hosted at "/"
	r.PathPrefix("/").Handler(http.FileServer(http.FS(public.Files))).Methods("GET", "HEAD")
	return r
}

// Handler wraps the router with the cross-cutting middleware
func (a *App) Handler() http.Handler {
	var h http.Handler = a.Router
	h = api.TimeoutMiddleware(a.Config.Timeout)(h)
	h = api.CORS(a.Config.FrontendURL)(h)
	h = api.RequestLogger(h)
	return h
}

// Initialize is invoked by main to connect with the database and create a router
func (a *App) Initialize(ctx context.Context) error {

	client, err := databases.NewClient(&a.Config)
	if err != nil {
		zap.S().With(err).Error("failed to create new client")
		return err
	}
	return a.initialize(ctx, client)
}

// initialize connects client and wires the invite store, notifier and router
func (a *App) initialize(ctx context.Context, client databases.ClientHelper) error {
	connectCtx, cancel := context.WithTimeout(ctx, ConnectTimeout)
	defer cancel()
	if err := client.Connect(connectCtx); err != nil {
		zap.S().With(err).Error("failed to connect to database")
		return err
	}
	if err := client.Ping(connectCtx); err != nil {
		zap.S().With(err).Error("failed to ping database")
		_ = client.Disconnect(ctx)
		return err
	}
	zap.S().Info("rsvp-api has connected to the database")

	a.client = client
	a.dbHelper = databases.NewDatabase(&a.Config, client)
	a.InviteDB = databases.NewInviteDatabase(a.dbHelper)

	if a.Config.GateSecret == "" {
		zap.S().Warnw("GATE_SECRET is not set, credential checks will fail with 500")
	}
	if a.Notifier == nil {
		a.Notifier = notify.New(a.Config.Mail)
	}

	// initialize api router
	a.initializeRoutes()
	return nil
}

// Close waits for pending notifications and disconnects from the database
func (a *App) Close(ctx context.Context) error {
	a.Notifier.Wait()
	if a.client == nil {
		return nil
	}
	return a.client.Disconnect(ctx)
}

func (a *App) initializeRoutes() {
	a.Router = a.New()
}

func healthCheckHandler(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, models.HealthCheckResponse{
		Alive: true,
	})
}

func writeJSON(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		zap.S().Errorw("failed to encode response", "error", err)
	}
}
