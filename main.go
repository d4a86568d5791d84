package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/spyne-social/api-go/config"
	"github.com/spyne-social/api-go/repository"
	"github.com/spyne-social/api-go/routes"
	"github.com/spyne-social/api-go/storage"
	"github.com/spyne-social/api-go/utils"
	"github.com/spyne-social/api-go/utils/log"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Log.WithError(err).Fatal("failed to load configuration")
	}
	log.InitLogger(cfg.Env)

	// Initialize database
	db, err := config.InitDB(cfg.Database)
	if err != nil {
		log.Log.WithError(err).Fatal("failed to initialize database")
	}

	var images storage.ImageStore
	if cfg.Storage.Enabled() {
		images = storage.NewS3ImageStore(cfg.Storage)
	} else {
		log.Log.Warn("S3_BUCKET not set, discussion image uploads are disabled")
	}

	router := routes.SetupRouter(routes.Dependencies{
		Config: cfg,
		Repos:  repository.New(db),
		Tokens: utils.NewTokenIssuer(cfg.Auth.JWTSecret, cfg.Auth.AccessTokenTTL, cfg.Auth.RefreshTokenTTL),
		Images: images,
	})

	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: router,
	}

	go func() {
		log.Log.Infof("starting server on port %s", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Log.WithError(err).Fatal("server stopped unexpectedly")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Log.Info("shutting down server")
	ctx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Log.WithError(err).Error("server forced to shut down")
	}

	if sqlDB, err := db.DB(); err == nil {
		sqlDB.Close()
	}
}
