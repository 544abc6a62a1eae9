package db

import (
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	"gorm.io/gorm"
)

var DB *sqlx.DB

// InitPostgres opens the sqlx pool, retrying while the database comes up.
func InitPostgres(dsn string) error {
	var err error

	for i := 0; i < 10; i++ {
		DB, err = sqlx.Connect("postgres", dsn)
		if err == nil {
			return nil
		}
		time.Sleep(500 * time.Millisecond)
	}
	return fmt.Errorf("failed to connect to postgres after retries: %w", err)
}

// WrapSQLX exposes the connection pool behind a GORM handle through sqlx, so
// raw-SQL repositories and GORM share one pool (sqlite in particular).
func WrapSQLX(gdb *gorm.DB, driverName string) (*sqlx.DB, error) {
	sqlDB, err := gdb.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get sql.DB from gorm: %w", err)
	}
	return sqlx.NewDb(sqlDB, driverName), nil
}
