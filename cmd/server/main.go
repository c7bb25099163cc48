// cmd/server/main.go
package main

import (
	"context"
	"database/sql"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
	"github.com/sirupsen/logrus"

	"github.com/galliconnect/server/internal/adapters/httpapi"
	"github.com/galliconnect/server/internal/adapters/mailer"
	"github.com/galliconnect/server/internal/adapters/redisfeed"
	"github.com/galliconnect/server/internal/adapters/repository"
	"github.com/galliconnect/server/internal/application"
	"github.com/galliconnect/server/internal/config"
	"github.com/galliconnect/server/internal/ports"
	"github.com/galliconnect/server/pkg/auth"
)

func main() {
	log := logrus.New()
	log.SetFormatter(&logrus.JSONFormatter{})

	if err := godotenv.Load(); err != nil {
		log.Info("no .env file, reading environment directly")
	}
	cfg, err := config.Load()
	if err != nil {
		log.WithError(err).Fatal("load config")
	}
	auth.SetSecret(cfg.JWTSecret)

	store, cleanup, err := buildStore(cfg, log)
	if err != nil {
		log.WithError(err).Fatal("init store")
	}
	defer cleanup()

	var mail ports.Mailer
	if cfg.MailConfigured() {
		mail = mailer.NewEmailJS(cfg.EmailJSServiceID, cfg.EmailJSTemplateID, cfg.EmailJSPublicKey)
	} else {
		mail = mailer.NewDev(log)
	}

	authSvc := application.NewAuthService(store, mail, log)
	customerSvc := application.NewCustomerService(store, log)
	retailerSvc := application.NewRetailerService(store, log)
	adminSvc := application.NewAdminService(store, log)

	srv := httpapi.NewServer(authSvc, customerSvc, retailerSvc, adminSvc, log)
	httpServer := &http.Server{
		Addr:    cfg.HTTPAddr,
		Handler: srv.Engine(),
	}

	go func() {
		log.WithField("addr", cfg.HTTPAddr).Info("http server listening")
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.WithError(err).Fatal("server error")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := httpServer.Shutdown(ctx); err != nil {
		log.WithError(err).Warn("shutdown error")
	}
}

// buildStore selects the persistence backend once at startup: hosted
// Postgres with the Redis change feed when a real DSN is configured,
// otherwise the local JSON store.
func buildStore(cfg *config.Config, log *logrus.Logger) (ports.Store, func(), error) {
	if !cfg.HostedMode() {
		log.WithField("dir", cfg.DataDir).Info("local fallback mode")
		store, err := repository.NewLocalStore(cfg.DataDir)
		return store, func() {}, err
	}

	db, err := sql.Open("postgres", cfg.DatabaseURL)
	if err != nil {
		return nil, nil, err
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, nil, err
	}
	if err := repository.InitSchema(db); err != nil {
		db.Close()
		return nil, nil, err
	}

	feed := redisfeed.New(cfg.RedisAddr, cfg.RedisUsername, cfg.RedisPassword, cfg.RedisDB)
	if err := feed.Ping(context.Background()); err != nil {
		db.Close()
		return nil, nil, err
	}

	log.Info("hosted mode, postgres connected")
	return repository.NewPostgresStore(db, feed, log), func() { db.Close() }, nil
}
