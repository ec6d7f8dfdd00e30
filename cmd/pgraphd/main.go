// Command pgraphd serves a PostgreSQL database's schema graph over a
// read-only HTTP API. The graph is built once at startup; snapshots can be
// uploaded to object storage on demand.
package main

import (
	"context"
	"flag"
	"net/http"
	"os"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/pgraph-io/pgraph"
	"github.com/pgraph-io/pgraph/internal/logger"
	"github.com/pgraph-io/pgraph/internal/snapstore"
	snapminio "github.com/pgraph-io/pgraph/internal/snapstore/minio"
)

func main() {
	configPath := flag.String("config", "pgraphd.yaml", "path to the YAML config file")
	flag.Parse()

	cfg, err := LoadConfig(*configPath)
	if err != nil {
		logger.New(nil).Error().Err(err).Msg("failed to load config")
		os.Exit(1)
	}

	log := logger.New(&logger.Config{Level: cfg.Log.Level, Format: cfg.Log.Format})

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	db, err := buildGraph(ctx, cfg, log)
	cancel()
	if err != nil {
		log.Error().Err(err).Msg("failed to build schema graph")
		os.Exit(1)
	}
	log.Info().Str("db", db.Name).Int("schemas", db.Schemas.Len()).Msg("schema graph ready")

	var store snapstore.Store
	if cfg.Snapshots != nil {
		store, err = snapminio.New(&snapstore.Config{
			Endpoint:  cfg.Snapshots.Endpoint,
			AccessKey: cfg.Snapshots.AccessKey,
			SecretKey: cfg.Snapshots.SecretKey,
			UseSSL:    cfg.Snapshots.UseSSL,
			Bucket:    cfg.Snapshots.Bucket,
		})
		if err != nil {
			log.Error().Err(err).Msg("failed to configure snapshot store")
			os.Exit(1)
		}
	}

	srv := &server{db: db, store: store, snapshotPrefix: snapshotPrefix(cfg), log: log}

	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(requestLogger(log))

	r.Get("/db", srv.handleDb)
	r.Get("/schemas", srv.handleSchemas)
	r.Get("/schemas/{schema}", srv.handleSchema)
	r.Get("/schemas/{schema}/tables/{table}", srv.handleTable)
	r.Get("/lookup", srv.handleLookup)
	r.Post("/snapshots", srv.handleSnapshot)

	log.Info().Str("listen", cfg.HTTP.Listen).Msg("starting http server")
	if err := http.ListenAndServe(cfg.HTTP.Listen, r); err != nil {
		log.Error().Err(err).Msg("http server stopped")
		os.Exit(1)
	}
}

func buildGraph(ctx context.Context, cfg *Config, log *logger.Logger) (*pgraph.Db, error) {
	opts := &pgraph.Options{
		Name:                 cfg.Graph.Name,
		IncludeSchemas:       cfg.Graph.IncludeSchemas,
		ExcludeSchemas:       cfg.Graph.ExcludeSchemas,
		IncludeSystemSchemas: cfg.Graph.IncludeSystemSchemas,
		RelationNaming:       cfg.Graph.RelationNaming,
		Logger:               log,
	}
	if cfg.Database.ConnectionString != "" {
		return pgraph.FromConnectionString(ctx, cfg.Database.ConnectionString, opts)
	}
	return pgraph.FromConfig(ctx, &pgraph.ConnectionConfig{
		Host:     cfg.Database.Host,
		Port:     cfg.Database.Port,
		User:     cfg.Database.User,
		Password: cfg.Database.Password,
		Database: cfg.Database.Database,
		SSLMode:  cfg.Database.SSLMode,
	}, opts)
}

func snapshotPrefix(cfg *Config) string {
	if cfg.Snapshots == nil {
		return ""
	}
	return cfg.Snapshots.Prefix
}

func requestLogger(log *logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			next.ServeHTTP(w, r)
			log.Info().
				Str("method", r.Method).
				Str("path", r.URL.Path).
				Dur("elapsed", time.Since(start)).
				Msg("request")
		})
	}
}
