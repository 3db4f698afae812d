package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"cafe-api/auth"
	"cafe-api/config"
	"cafe-api/controller"
	"cafe-api/database"
	"cafe-api/repository"
	"cafe-api/route"

	"github.com/gin-gonic/gin"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	if cfg.GinMode == gin.ReleaseMode {
		gin.SetMode(gin.ReleaseMode)
	} else {
		log.Println("Running in debug mode")
	}

	db, err := database.Open(database.Options{
		Driver:   cfg.DBDriver,
		DSN:      cfg.DSN,
		LogLevel: cfg.DBLogLevel,
	})
	if err != nil {
		log.Fatalf("Failed to open database: %v", err)
	}

	authz, err := auth.NewAuthorizer(auth.Options{
		APIKey:    cfg.APIKey,
		JWTSecret: cfg.JWTSecret,
		TokenTTL:  cfg.TokenTTL,
		Legacy:    cfg.LegacyStatusCodes,
	})
	if err != nil {
		log.Fatalf("Failed to set up authorization: %v", err)
	}
	if !authz.TokensEnabled() {
		log.Println("JWT_SECRET not set, bearer tokens disabled")
	}

	cafes := controller.NewCafeController(repository.NewCafeRepository(db), cfg.LegacyStatusCodes)
	router := route.NewRouter(route.Options{AllowedOrigins: cfg.AllowedOrigins}, cafes, authz)
	log.Println("Routes configured successfully")

	srv := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		log.Printf("Starting server on %s", srv.Addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		log.Println("Shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			log.Printf("Shutdown: %v", err)
		}
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("Failed to start server: %v", err)
		}
	}

	if sqlDB, err := db.DB(); err == nil {
		sqlDB.Close()
	}
}
