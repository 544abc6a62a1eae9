package api

import (
	"fmt"

	"aeroportal/flightops/internal/common"
	"aeroportal/flightops/internal/config"
	"aeroportal/flightops/internal/db/repositories"
	"aeroportal/flightops/internal/metrics"
	"aeroportal/flightops/internal/services"

	"github.com/jmoiron/sqlx"
	"gorm.io/gorm"
)

type Repositories struct {
	Aerodromes  *repositories.AerodromeRepository
	Aircraft    *repositories.AircraftRepository
	Logbooks    *repositories.LogbookRepository
	Expirations *repositories.ExpirationRepository
}

type Services struct {
	Cache           common.CacheInterface
	Aerodromes      *services.AerodromeDirectoryService
	AerodromeLoader *services.AerodromeLoaderService
	FlightTime      *services.FlightTimeService
	Planning        *services.FlightPlanningService
	Logbook         *services.LogbookService
	Expirations     *services.ExpirationService
	CrewReports     *services.CrewReportService
	Exports         *services.ReportExportService
	// Nil when JWT_SECRET is empty.
	Tokens *common.TokenSigner
}

type Dependencies struct {
	Repo     *Repositories
	Services *Services
	Metrics  *metrics.MetricsRegistry
	SQL      *sqlx.DB
}

// InitDependencies wires repositories and services over the given connections.
func InitDependencies(
	cfg *config.Config,
	gdb *gorm.DB,
	sqlDB *sqlx.DB,
	cache common.CacheInterface,
	metricsReg *metrics.MetricsRegistry,
) (*Dependencies, error) {
	if gdb == nil || sqlDB == nil {
		return nil, fmt.Errorf("database handles are required")
	}

	repos := &Repositories{
		Aerodromes:  repositories.NewAerodromeRepository(gdb),
		Aircraft:    repositories.NewAircraftRepository(gdb),
		Logbooks:    repositories.NewLogbookRepository(gdb),
		Expirations: repositories.NewExpirationRepository(sqlDB),
	}

	directory := services.NewAerodromeDirectoryService(repos.Aerodromes, cache, metricsReg)
	flightTime := services.NewFlightTimeService(directory, nil, metricsReg)
	logbook := services.NewLogbookService(gdb, repos.Aircraft, repos.Logbooks, flightTime, metricsReg, cfg.MaxUpdateAttempts)
	crewReports := services.NewCrewReportService(repos.Aircraft, logbook)

	svcs := &Services{
		Cache:           cache,
		Aerodromes:      directory,
		AerodromeLoader: services.NewAerodromeLoaderService(repos.Aerodromes, directory, metricsReg, cfg.AerodromesSourceURL),
		FlightTime:      flightTime,
		Planning:        services.NewFlightPlanningService(directory, repos.Aircraft, nil, cfg.WeightAssumptions()),
		Logbook:         logbook,
		Expirations:     services.NewExpirationService(repos.Expirations, cfg.ExpirationThresholds()),
		CrewReports:     crewReports,
		Exports:         services.NewReportExportService(crewReports),
	}
	if cfg.JWTSecret != "" {
		svcs.Tokens = common.NewTokenSigner([]byte(cfg.JWTSecret))
	}

	return &Dependencies{
		Repo:     repos,
		Services: svcs,
		Metrics:  metricsReg,
		SQL:      sqlDB,
	}, nil
}
