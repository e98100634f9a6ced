package api

import (
	"fmt"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/charlesng35/catcatalog/internal/app"
	"github.com/charlesng35/catcatalog/internal/handlers"
	"github.com/charlesng35/catcatalog/internal/middleware"
	"github.com/charlesng35/catcatalog/internal/services"
)

// NewRouter builds the Gin engine, wires middleware and registers the cat
// catalogue routes at the root and under /api.
func NewRouter(db *gorm.DB, cats *services.CatService, cfg *app.Config) (*gin.Engine, error) {
	if db == nil {
		return nil, fmt.Errorf("database handle must be provided")
	}
	if cats == nil {
		return nil, fmt.Errorf("cat service must be provided")
	}
	if cfg == nil {
		return nil, fmt.Errorf("config must be provided")
	}

	r := gin.New()

	// Global middleware
	r.Use(middleware.Recovery())
	r.Use(middleware.Logger())
	r.Use(middleware.Metrics())
	r.Use(middleware.SecurityHeaders())
	r.Use(middleware.CORS())

	registerHealthRoutes(r, db, cfg)
	registerMetricsRoutes(r, cfg)

	catHandler, err := handlers.NewCatHandler(cats)
	if err != nil {
		return nil, err
	}

	registerCatRoutes(r, catHandler)
	registerCatRoutes(r.Group("/api"), catHandler)

	r.NoRoute(middleware.NotFoundHandler)

	return r, nil
}
