package db

import (
	"fmt"

	"aeroportal/flightops/internal/logging"
	gormModels "aeroportal/flightops/internal/models/gorm"

	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var PgDB *gorm.DB

// SQLiteDriverName is the database/sql driver registered by the GORM sqlite driver.
const SQLiteDriverName = "sqlite3"

func InitPostgresORM(dsn string) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to postgres: %w", err)
	}

	PgDB = db
	logging.Info("Connected to Postgres via GORM")
	return db, nil
}

// InitSQLiteORM opens a sqlite database and creates the schema with AutoMigrate.
// SQLite allows a single writer, so the pool is pinned to one connection.
func InitSQLiteORM(path string) (*gorm.DB, error) {
	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open sqlite %s: %w", path, err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	sqlDB.SetMaxOpenConns(1)

	if err := AutoMigrate(db); err != nil {
		return nil, err
	}

	PgDB = db
	logging.Info("Opened sqlite database", "path", path)
	return db, nil
}

// AutoMigrate creates every engine table from the GORM models.
func AutoMigrate(db *gorm.DB) error {
	if err := db.AutoMigrate(
		&gormModels.Aerodrome{},
		&gormModels.Aircraft{},
		&gormModels.Logbook{},
		&gormModels.LogbookEntry{},
		&gormModels.AllowanceTransaction{},
		&gormModels.CrewExpiration{},
		&gormModels.AircraftInspection{},
	); err != nil {
		return fmt.Errorf("failed to migrate schema: %w", err)
	}
	return nil
}
