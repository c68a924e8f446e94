package bootstrap

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/gin-gonic/gin"

	"curriculum-backend/internal/curriculum"
	"curriculum-backend/internal/recommend"
	"curriculum-backend/internal/shared/config"
	"curriculum-backend/internal/shared/server"
	"curriculum-backend/internal/shared/storage/db"
	"curriculum-backend/internal/shared/telemetry"
)

// App holds shared dependencies.
type App struct {
	Config           config.Config
	Router           *gin.Engine
	DB               *sql.DB
	Catalog          curriculum.Catalog
	RecommendService *recommend.Service
	RecommendHandler *recommend.Handler
}

// Options tweaks Build for tests and alternate runtimes.
type Options struct {
	// Source overrides the catalog source chosen from Config.
	Source curriculum.Source
	// DBOptions sets the pool used when the catalog lives in Postgres.
	DBOptions db.Options
	// Singleton reuses one *sql.DB per process (serverless runtimes).
	Singleton bool
}

// Build loads the catalog and wires the router.
func Build(ctx context.Context, cfg config.Config, opts Options) (*App, error) {
	app := &App{Config: cfg}

	source := opts.Source
	if source == nil {
		var err error
		source, err = app.sourceFor(ctx, cfg, opts)
		if err != nil {
			return nil, err
		}
	}

	catalog, err := source.Load(ctx)
	if err != nil {
		app.Close()
		return nil, fmt.Errorf("load catalog: %w", err)
	}
	app.Catalog = catalog
	telemetry.Info("catalog.loaded", map[string]any{
		"source": catalog.Source(),
		"tiers":  len(catalog.Tiers()),
		"topics": catalog.TopicCount(),
	})

	app.RecommendService = recommend.NewService(catalog)
	app.RecommendHandler = recommend.NewHandler(app.RecommendService)
	app.Router = server.NewRouter(cfg, app.RecommendHandler)
	return app, nil
}

func (a *App) sourceFor(ctx context.Context, cfg config.Config, opts Options) (curriculum.Source, error) {
	switch cfg.CatalogSource {
	case config.CatalogFile:
		if cfg.CatalogFile == "" {
			return nil, fmt.Errorf("CATALOG_FILE is required when CATALOG_SOURCE=file")
		}
		return curriculum.FileSource{Path: cfg.CatalogFile}, nil
	case config.CatalogPostgres:
		dbOpts := opts.DBOptions
		if dbOpts == (db.Options{}) {
			dbOpts = db.OptionsFromEnv(db.DefaultOptions(db.ProfileServer))
		}
		var (
			conn *sql.DB
			err  error
		)
		if opts.Singleton {
			conn, err = db.GetSingleton(ctx, cfg.DatabaseURL, dbOpts)
		} else {
			conn, err = db.Connect(ctx, cfg.DatabaseURL, dbOpts)
		}
		if err != nil {
			return nil, fmt.Errorf("connect catalog database: %w", err)
		}
		if err := db.RunMigrations(ctx, conn); err != nil {
			if !opts.Singleton {
				conn.Close()
			}
			return nil, fmt.Errorf("run migrations: %w", err)
		}
		if !opts.Singleton {
			a.DB = conn
		}
		return &curriculum.PGSource{DB: conn}, nil
	default:
		return curriculum.BuiltinSource{}, nil
	}
}

// Close releases the database pool, if Build opened one.
func (a *App) Close() {
	if a != nil && a.DB != nil {
		_ = a.DB.Close()
		a.DB = nil
	}
}
