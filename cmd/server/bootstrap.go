package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/multierr"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/charlesng35/catcatalog/internal/api"
	"github.com/charlesng35/catcatalog/internal/app"
	"github.com/charlesng35/catcatalog/internal/catapi"
	"github.com/charlesng35/catcatalog/internal/database"
	"github.com/charlesng35/catcatalog/internal/services"
	"github.com/charlesng35/catcatalog/pkg/logger"
)

// runtimeStack bundles long-lived services used by the HTTP server.
type runtimeStack struct {
	DB     *gorm.DB
	Cats   *services.CatService
	Router *gin.Engine
	Server *http.Server
}

// bootstrapRuntime opens the database, migrates the schema, runs the
// start-up import and builds the HTTP router. Any failure releases what was
// already opened.
func bootstrapRuntime(ctx context.Context, cfg *app.Config, log *zap.Logger) (*runtimeStack, error) {
	if cfg == nil {
		return nil, errors.New("config is nil")
	}
	if log == nil {
		log = logger.WithModule("bootstrap")
	}

	stack := &runtimeStack{}
	var err error
	success := false

	defer func() {
		if !success {
			if shutdownErr := stack.Shutdown(context.Background()); shutdownErr != nil {
				log.Warn("release partially initialised runtime", zap.Error(shutdownErr))
			}
		}
	}()

	// enable gin debug mod
	if debug, _ := os.LookupEnv("GIN_DEBUG"); debug != "true" {
		gin.SetMode(gin.ReleaseMode)
	}

	stack.DB, err = initialiseDatabase(cfg)
	if err != nil {
		return nil, err
	}

	names := services.NewFakerNameGenerator(0)

	stack.Cats, err = services.NewCatService(stack.DB, names)
	if err != nil {
		return nil, fmt.Errorf("initialise cat service: %w", err)
	}

	if cfg.Seed.Enabled {
		if err := runSeed(ctx, cfg, stack.Cats, names, log); err != nil {
			return nil, err
		}
	} else {
		log.Info("start-up import disabled")
	}

	stack.Router, err = api.NewRouter(stack.DB, stack.Cats, cfg)
	if err != nil {
		return nil, fmt.Errorf("build api router: %w", err)
	}

	stack.Server = &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.Server.Port),
		Handler: stack.Router,
	}

	success = true
	return stack, nil
}

func runSeed(ctx context.Context, cfg *app.Config, cats *services.CatService, names services.NameGenerator, log *zap.Logger) error {
	client, err := catapi.NewClient(cfg.CatAPI.ClientConfig())
	if err != nil {
		return fmt.Errorf("initialise cat api client: %w", err)
	}

	seeder, err := services.NewSeedService(cats, client, names, cfg.Seed.SeedOptions())
	if err != nil {
		return fmt.Errorf("initialise seed service: %w", err)
	}

	result, err := seeder.Seed(ctx)
	if err != nil {
		return fmt.Errorf("seed database: %w", err)
	}

	log.Info("start-up import finished",
		zap.Int("fetched", result.Fetched),
		zap.Int("imported", result.Imported),
		zap.Int("skipped", result.Skipped),
		zap.Bool("already_populated", result.AlreadyPopulated),
	)
	return nil
}

// Shutdown stops the HTTP server and releases the database pool.
func (s *runtimeStack) Shutdown(ctx context.Context) error {
	if s == nil {
		return nil
	}

	var err error
	if s.Server != nil {
		if shutdownErr := s.Server.Shutdown(ctx); shutdownErr != nil && !errors.Is(shutdownErr, http.ErrServerClosed) {
			err = multierr.Append(err, fmt.Errorf("graceful shutdown: %w", shutdownErr))
		}
	}

	if s.DB != nil {
		if closeErr := database.Close(s.DB); closeErr != nil {
			err = multierr.Append(err, fmt.Errorf("close database: %w", closeErr))
		}
		s.DB = nil
	}

	return err
}

func initialiseDatabase(cfg *app.Config) (*gorm.DB, error) {
	dbCfg := convertDatabaseConfig(cfg)
	db, err := database.Open(dbCfg)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	if err := database.AutoMigrate(db); err != nil {
		_ = database.Close(db)
		return nil, fmt.Errorf("auto-migrate database: %w", err)
	}

	log := logger.WithModule("database")
	log.Info("database connected", zap.String("driver", dbCfg.Driver))

	return db, nil
}

func convertDatabaseConfig(cfg *app.Config) database.Config {
	dbCfg := database.Config{
		Driver: strings.ToLower(strings.TrimSpace(cfg.Database.Driver)),
		Path:   strings.TrimSpace(cfg.Database.Path),
		DSN:    strings.TrimSpace(cfg.Database.DSN),
	}

	var auth app.DBAuthConfig
	switch dbCfg.Driver {
	case "", "sqlite":
		dbCfg.Driver = "sqlite"
		return dbCfg
	case "postgres", "postgresql":
		dbCfg.Driver = "postgres"
		auth = cfg.Database.Postgres
	case "mysql":
		auth = cfg.Database.MySQL
	default:
		// Leave driver as-is to surface unsupported driver error during open.
		return dbCfg
	}

	dbCfg.Host = strings.TrimSpace(auth.Host)
	dbCfg.Port = auth.Port
	dbCfg.Name = strings.TrimSpace(auth.Database)
	dbCfg.User = strings.TrimSpace(auth.Username)
	dbCfg.Password = auth.Password
	return dbCfg
}
