package main

import (
	"context"
	"database/sql"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"pet-care-portal/internal/adapters/auth/supabase"
	"pet-care-portal/internal/adapters/calendar/google"
	s3store "pet-care-portal/internal/adapters/objectstore/s3"
	pg "pet-care-portal/internal/adapters/storage/postgres"
	"pet-care-portal/internal/config"
	"pet-care-portal/internal/domain/calendar"
	"pet-care-portal/internal/middleware"
	"pet-care-portal/internal/platform/logger"
	"pet-care-portal/internal/ports/auth"
	"pet-care-portal/internal/ports/storage"
	"pet-care-portal/internal/router"
)

// @title Pet Care Portal API
// @version 1.0
// @description Portal de clientes y panel admin de la consulta (animales, consultas, facturas, documentos y agendas).
// @BasePath /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	cfg := config.LoadConfig()

	log := logger.New(logger.Options{
		Level:  logger.ParseLevel(cfg.LogLevel),
		Format: logger.ParseFormat(cfg.LogFormat),
		App:    cfg.AppName,
	})
	defer func() { _ = log.Sync() }()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	opts := router.Options{
		Admins: middleware.NewAdminList(cfg.Admins()...),
		Logger: log,
	}

	if cfg.DSN != "" {
		db, err := pg.Open(cfg.DSN)
		if err != nil {
			log.Error("database unavailable", map[string]any{"error": err})
			os.Exit(1)
		}
		defer func(db *sql.DB) { _ = db.Close() }(db)
		opts.DB = db
	} else {
		log.Warn("DB_DSN empty, using in-memory storage", nil)
	}

	opts.AuthVerifier = authVerifier(cfg, log)
	opts.ObjectStore = objectStore(ctx, cfg, log)

	if agendas := cfg.Agendas(); len(agendas) > 0 {
		source, err := google.New(ctx, google.Config{
			APIKey:          cfg.GoogleAPIKey,
			CredentialsFile: cfg.GoogleCredentialsFile,
		})
		if err != nil {
			log.Error("google calendar disabled", map[string]any{"error": err})
		} else {
			calendars := make([]calendar.Calendar, 0, len(agendas))
			for _, a := range agendas {
				calendars = append(calendars, calendar.Calendar{ID: a.ID, Name: a.Name})
			}
			svc := calendar.NewService(source, calendars, cfg.CalendarWorkers)
			defer svc.Close()
			opts.Calendar = svc
		}
	}

	srv := &http.Server{
		Addr:         cfg.Host,
		Handler:      router.NewRouter(opts),
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 60 * time.Second,
	}

	go func() {
		log.Info("starting server", map[string]any{"addr": cfg.Host, "admins": len(opts.Admins)})
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("server error", map[string]any{"error": err})
			stop()
		}
	}()

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("shutdown", map[string]any{"error": err})
	}
	log.Info("server stopped", nil)
}

// authVerifier devuelve nil (modo dev, header X-Debug-User-ID) si no hay auth hosteado.
func authVerifier(cfg config.Config, log logger.Logger) auth.AuthVerifier {
	if cfg.SupabaseURL == "" || cfg.SupabaseAnonKey == "" {
		log.Warn("auth not configured, dev mode enabled", nil)
		return nil
	}
	client, err := supabase.NewClient(supabase.Config{URL: cfg.SupabaseURL, AnonKey: cfg.SupabaseAnonKey})
	if err != nil {
		log.Error("auth client", map[string]any{"error": err})
		os.Exit(1)
	}
	return supabase.NewVerifier(client)
}

// objectStore devuelve nil (store en memoria) si no hay endpoint.
func objectStore(ctx context.Context, cfg config.Config, log logger.Logger) storage.ObjectStore {
	if cfg.StorageEndpoint == "" {
		log.Warn("STORAGE_ENDPOINT empty, using in-memory object store", nil)
		return nil
	}
	store, err := s3store.New(ctx, s3store.Config{
		Endpoint:        cfg.StorageEndpoint,
		Region:          cfg.StorageRegion,
		Bucket:          cfg.StorageBucket,
		AccessKeyID:     cfg.StorageAccessKeyID,
		SecretAccessKey: cfg.StorageSecretAccessKey,
	})
	if err != nil {
		log.Error("object store", map[string]any{"error": err})
		os.Exit(1)
	}
	return store
}
