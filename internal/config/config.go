package config

import (
	"fmt"
	"strings"
	"time"

	"aeroportal/flightops/internal/flightops"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds everything the server reads at startup.
type Config struct {
	AppEnv   string `mapstructure:"APP_ENV"`
	HTTPPort string `mapstructure:"HTTP_PORT"`

	DBDriver   string `mapstructure:"DB_DRIVER"`
	SQLitePath string `mapstructure:"SQLITE_PATH"`
	PGHost     string `mapstructure:"PG_HOST"`
	PGPort     string `mapstructure:"PG_PORT"`
	PGUser     string `mapstructure:"PG_USER"`
	PGPassword string `mapstructure:"PG_PASSWORD"`
	PGDatabase string `mapstructure:"PG_DB"`

	CacheDriver   string `mapstructure:"CACHE_DRIVER"`
	RedisHost     string `mapstructure:"REDIS_HOST"`
	RedisPort     string `mapstructure:"REDIS_PORT"`
	RedisPassword string `mapstructure:"REDIS_PASSWORD"`

	JWTSecret string `mapstructure:"JWT_SECRET"`

	FuelDensity       float64 `mapstructure:"ENGINE_FUEL_DENSITY"`
	CrewWeightKg      float64 `mapstructure:"ENGINE_CREW_WEIGHT_KG"`
	WarnDays          int     `mapstructure:"ENGINE_WARN_DAYS"`
	WarnHours         float64 `mapstructure:"ENGINE_WARN_HOURS"`
	MaxUpdateAttempts int     `mapstructure:"ENGINE_MAX_UPDATE_ATTEMPTS"`

	AlertsInterval    time.Duration `mapstructure:"ALERTS_INTERVAL"`
	AlertsMinSeverity string        `mapstructure:"ALERTS_MIN_SEVERITY"`
	TelegramToken     string        `mapstructure:"TELEGRAM_TOKEN"`
	TelegramChatID    int64         `mapstructure:"TELEGRAM_CHAT_ID"`

	AerodromesSourceURL string  `mapstructure:"AERODROMES_SOURCE_URL"`
	RateLimitRPS        float64 `mapstructure:"RATE_LIMIT_RPS"`
	RateLimitBurst      int     `mapstructure:"RATE_LIMIT_BURST"`

	// Parsed from AlertsMinSeverity by Load.
	MinAlertSeverity flightops.Severity `mapstructure:"-"`
}

var defaults = map[string]any{
	"APP_ENV":                    "development",
	"HTTP_PORT":                  "8080",
	"DB_DRIVER":                  "postgres",
	"SQLITE_PATH":                "flightops.db",
	"PG_HOST":                    "localhost",
	"PG_PORT":                    "5432",
	"PG_USER":                    "flightops",
	"PG_PASSWORD":                "",
	"PG_DB":                      "flightops",
	"CACHE_DRIVER":               "memory",
	"REDIS_HOST":                 "localhost",
	"REDIS_PORT":                 "6379",
	"REDIS_PASSWORD":             "",
	"JWT_SECRET":                 "",
	"ENGINE_FUEL_DENSITY":        flightops.DefaultFuelDensityKgPerLiter,
	"ENGINE_CREW_WEIGHT_KG":      flightops.DefaultCrewMemberWeightKg,
	"ENGINE_WARN_DAYS":           30,
	"ENGINE_WARN_HOURS":          25.0,
	"ENGINE_MAX_UPDATE_ATTEMPTS": 3,
	"ALERTS_INTERVAL":            "24h",
	"ALERTS_MIN_SEVERITY":        string(flightops.SeverityWarning),
	"TELEGRAM_TOKEN":             "",
	"TELEGRAM_CHAT_ID":           0,
	"AERODROMES_SOURCE_URL":      "https://raw.githubusercontent.com/mwgg/Airports/refs/heads/master/airports.json",
	"RATE_LIMIT_RPS":             5.0,
	"RATE_LIMIT_BURST":           20,
}

// Load reads .env (if present), an optional YAML file named by CONFIG_FILE, and
// the process environment, in increasing order of precedence.
func Load() (*Config, error) {
	_ = godotenv.Load()

	v := viper.New()
	for key, value := range defaults {
		v.SetDefault(key, value)
	}
	v.AutomaticEnv()

	if path := v.GetString("CONFIG_FILE"); path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to decode config: %w", err)
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) validate() error {
	sev, err := flightops.ParseSeverity(c.AlertsMinSeverity)
	if err != nil {
		return fmt.Errorf("ALERTS_MIN_SEVERITY: %w", err)
	}
	c.MinAlertSeverity = sev

	c.DBDriver = strings.ToLower(c.DBDriver)
	if c.DBDriver != "postgres" && c.DBDriver != "sqlite" {
		return fmt.Errorf("DB_DRIVER must be postgres or sqlite, got %q", c.DBDriver)
	}
	c.CacheDriver = strings.ToLower(c.CacheDriver)
	if c.CacheDriver != "memory" && c.CacheDriver != "redis" {
		return fmt.Errorf("CACHE_DRIVER must be memory or redis, got %q", c.CacheDriver)
	}

	if c.FuelDensity <= 0 || c.CrewWeightKg < 0 {
		return fmt.Errorf("engine weight assumptions must be positive")
	}
	if c.WarnDays < 0 || c.WarnHours < 0 {
		return fmt.Errorf("expiration thresholds must not be negative")
	}
	if c.MaxUpdateAttempts < 1 {
		c.MaxUpdateAttempts = 1
	}
	if c.AlertsInterval <= 0 {
		return fmt.Errorf("ALERTS_INTERVAL must be positive")
	}
	return nil
}

// PostgresDSN builds the connection string used by both sqlx and GORM.
func (c *Config) PostgresDSN() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=disable",
		c.PGUser, c.PGPassword, c.PGHost, c.PGPort, c.PGDatabase)
}

func (c *Config) WeightAssumptions() flightops.WeightAssumptions {
	return flightops.WeightAssumptions{
		FuelDensityKgPerLiter: c.FuelDensity,
		CrewMemberWeightKg:    c.CrewWeightKg,
	}
}

func (c *Config) ExpirationThresholds() flightops.ExpirationThresholds {
	return flightops.ExpirationThresholds{WarnDays: c.WarnDays, WarnHours: c.WarnHours}
}
