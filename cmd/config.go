package cmd

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const (
	DriverMemory   = "memory"
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
)

type Config struct {
	HTTPPort string

	DBDriver   string
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSslMode  string
	SQLitePath string

	JWTSecret   string
	TokenTTL    time.Duration
	BcryptCost  int
	AcceptRoles string
	StatsCron   string

	LogLevel string
	LogFile  string
}

// LoadConfig reads the process environment after loading envFile, if it
// exists. Variables already set in the environment win over the file.
func LoadConfig(envFile string) (Config, error) {
	if err := godotenv.Load(envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return Config{}, fmt.Errorf("load %s: %w", envFile, err)
	}

	ttl, err := time.ParseDuration(getEnv("TOKEN_TTL", "24h"))
	if err != nil {
		return Config{}, fmt.Errorf("TOKEN_TTL: %w", err)
	}

	cost, err := strconv.Atoi(getEnv("BCRYPT_COST", "0"))
	if err != nil {
		return Config{}, fmt.Errorf("BCRYPT_COST: %w", err)
	}

	cfg := Config{
		HTTPPort:    getEnv("HTTP_PORT", "8080"),
		DBDriver:    strings.ToLower(getEnv("DB_DRIVER", DriverMemory)),
		DBHost:      getEnv("DB_HOST", "localhost"),
		DBPort:      getEnv("DB_PORT", "5432"),
		DBUser:      getEnv("DB_USER", "postgres"),
		DBPassword:  getEnv("DB_PASSWORD", ""),
		DBName:      getEnv("DB_NAME", "carrierlink"),
		DBSslMode:   getEnv("DB_SSLMODE", "disable"),
		SQLitePath:  getEnv("SQLITE_PATH", "carrierlink.db"),
		JWTSecret:   getEnv("JWT_SECRET", ""),
		TokenTTL:    ttl,
		BcryptCost:  cost,
		AcceptRoles: getEnv("ACCEPT_ROLES", "carrier,both"),
		StatsCron:   getEnv("STATS_CRON", "0 * * * * *"),
		LogLevel:    getEnv("LOG_LEVEL", "info"),
		LogFile:     getEnv("LOG_FILE", ""),
	}

	if err = cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) Validate() error {
	var errs []error
	switch c.DBDriver {
	case DriverMemory, DriverPostgres, DriverSQLite:
	default:
		errs = append(errs, fmt.Errorf("DB_DRIVER must be one of memory, postgres, sqlite, got %q", c.DBDriver))
	}
	if c.JWTSecret == "" {
		errs = append(errs, errors.New("JWT_SECRET is required"))
	}
	if c.TokenTTL <= 0 {
		errs = append(errs, fmt.Errorf("TOKEN_TTL must be positive, got %s", c.TokenTTL))
	}
	return errors.Join(errs...)
}

func getEnv(key, fallback string) string {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		return v
	}
	return fallback
}
