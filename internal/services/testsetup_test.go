package services

import (
	"context"
	"testing"
	"time"

	"aeroportal/flightops/internal/common"
	"aeroportal/flightops/internal/db"
	"aeroportal/flightops/internal/db/repositories"
	"aeroportal/flightops/internal/flightops"
	"aeroportal/flightops/internal/logging"
	"aeroportal/flightops/internal/metrics"
	gormModels "aeroportal/flightops/internal/models/gorm"

	"github.com/prometheus/client_golang/prometheus"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Setup test database
func setupTestDB(t *testing.T) *gorm.DB {
	gdb, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	if err != nil {
		t.Fatalf("Failed to open test database: %v", err)
	}
	sqlDB, err := gdb.DB()
	if err != nil {
		t.Fatalf("Failed to get sql.DB: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	if err := db.AutoMigrate(gdb); err != nil {
		t.Fatalf("Failed to migrate: %v", err)
	}
	return gdb
}

type testEnv struct {
	db         *gorm.DB
	metrics    *metrics.MetricsRegistry
	aircraft   *repositories.AircraftRepository
	logbooks   *repositories.LogbookRepository
	directory  *AerodromeDirectoryService
	flightTime *FlightTimeService
	planning   *FlightPlanningService
	logbook    *LogbookService
	plane      *gormModels.Aircraft
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	logging.InitNop()

	gdb := setupTestDB(t)
	ctx := context.Background()

	aerodromeRepo := repositories.NewAerodromeRepository(gdb)
	for _, ad := range []gormModels.Aerodrome{
		{ICAO: "SBSP", Name: "Congonhas", Latitude: -23.626111, Longitude: -46.656389, ElevationFt: 2631, Timezone: "America/Sao_Paulo"},
		{ICAO: "SBRJ", Name: "Santos Dumont", Latitude: -22.910461, Longitude: -43.163133, ElevationFt: 11, Timezone: "America/Sao_Paulo"},
	} {
		ad := ad
		if err := aerodromeRepo.Create(ctx, &ad); err != nil {
			t.Fatalf("Failed to seed aerodrome: %v", err)
		}
	}

	aircraftRepo := repositories.NewAircraftRepository(gdb)
	plane := &gormModels.Aircraft{
		Registration:       "PR-ABC",
		Model:              "C172",
		TotalHours:         100,
		ConsumptionPerHour: 40,
		EmptyWeightKg:      1000,
		MaxTakeoffWeightKg: 2000,
	}
	if err := aircraftRepo.Create(ctx, plane); err != nil {
		t.Fatalf("Failed to seed aircraft: %v", err)
	}

	metricsReg := metrics.NewMetricsRegistry(prometheus.NewRegistry())
	cache := common.NewCacheService(time.Minute, time.Minute)
	directory := NewAerodromeDirectoryService(aerodromeRepo, cache, metricsReg)
	flightTime := NewFlightTimeService(directory, nil, metricsReg)
	logbookRepo := repositories.NewLogbookRepository(gdb)

	return &testEnv{
		db:         gdb,
		metrics:    metricsReg,
		aircraft:   aircraftRepo,
		logbooks:   logbookRepo,
		directory:  directory,
		flightTime: flightTime,
		planning:   NewFlightPlanningService(directory, aircraftRepo, nil, flightops.DefaultWeightAssumptions()),
		logbook:    NewLogbookService(gdb, aircraftRepo, logbookRepo, flightTime, metricsReg, 3),
		plane:      plane,
	}
}

func (e *testEnv) hours(t *testing.T) float64 {
	t.Helper()
	ac, err := e.aircraft.FindByID(context.Background(), e.plane.ID)
	if err != nil || ac == nil {
		t.Fatalf("Failed to reload aircraft: %v", err)
	}
	return ac.TotalHours
}

func ptr[T any](v T) *T { return &v }
