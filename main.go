package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/linesmerrill/rsvp-api/api/handlers"
	"github.com/linesmerrill/rsvp-api/api/scheduler"
	"github.com/linesmerrill/rsvp-api/config"
)

// ShutdownTimeout bounds draining in-flight requests and notifications
const ShutdownTimeout = 20 * time.Second

func main() {
	conf, err := config.New()
	if err != nil {
		log.Fatalf("FATAL ERROR: %v", err)
	}
	defer zap.S().Sync()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	a := handlers.App{Config: *conf}
	if err := a.Initialize(ctx); err != nil { //initialize database and router
		zap.S().Fatalw("failed to initialize rsvp-api", "error", err)
	}

	digest := scheduler.NewScheduler(conf.DigestSchedule, a.InviteDB, a.Notifier)
	started, err := digest.Start()
	if err != nil {
		zap.S().Errorw("failed to start invite digest", "error", err)
	}

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%v", conf.Port),
		Handler:           a.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		zap.S().Infow("rsvp-api is up and running",
			"port", conf.Port,
			"allowedOrigin", conf.FrontendURL,
		)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			zap.S().Fatalw("server stopped", "error", err)
		}
	}()

	<-ctx.Done()
	zap.S().Info("shutting down rsvp-api")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), ShutdownTimeout)
	defer cancel()

	if started {
		digest.Stop()
	}
	if err := srv.Shutdown(shutdownCtx); err != nil {
		zap.S().Errorw("failed to shut down http server", "error", err)
	}
	if err := a.Close(shutdownCtx); err != nil {
		zap.S().Errorw("failed to disconnect from database", "error", err)
	}
}
