package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Store backends selectable via STORE_BACKEND.
const (
	BackendPostgres = "postgres"
	BackendSQLite   = "sqlite"
	BackendCSV      = "csv"
)

type Config struct {
	Server    ServerConfig
	Store     StoreConfig
	Redis     RedisConfig
	Workbooks WorkbookConfig
	App       AppConfig
}

type ServerConfig struct {
	Port string
}

type StoreConfig struct {
	Backend       string
	DSN           string
	SQLitePath    string
	CSVPath       string
	RetryAttempts int
	RetryInterval time.Duration
}

type RedisConfig struct {
	Addr       string
	Password   string
	DB         int
	SessionTTL time.Duration
}

// WorkbookConfig points at the reference-data spreadsheets the
// providers read on every request.
type WorkbookConfig struct {
	Roster      string
	CostCenters string
	PayRates    string
}

type AppConfig struct {
	Environment      string
	Version          string
	AdminAlias       string
	RevalidateOnEdit bool
}

func Load() (*Config, error) {
	// Load .env file if it exists (ignore error in production)
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	cfg := &Config{
		Server: ServerConfig{
			Port: getEnv("PORT", "8080"),
		},
		Store: StoreConfig{
			Backend:       getEnv("STORE_BACKEND", BackendPostgres),
			DSN:           getEnv("DB_DSN", ""),
			SQLitePath:    getEnv("SQLITE_PATH", "registro_horas.db"),
			CSVPath:       getEnv("CSV_PATH", "registro_horas.csv"),
			RetryAttempts: getEnvAsInt("STORE_RETRY_ATTEMPTS", 3),
			RetryInterval: getEnvAsDuration("STORE_RETRY_INTERVAL", 200*time.Millisecond),
		},
		Redis: RedisConfig{
			Addr:       getEnv("REDIS_ADDR", "localhost:6379"),
			Password:   getEnv("REDIS_PASSWORD", ""),
			DB:         getEnvAsInt("REDIS_DB", 0),
			SessionTTL: getEnvAsDuration("SESSION_TTL", 12*time.Hour),
		},
		Workbooks: WorkbookConfig{
			Roster:      getEnv("ROSTER_XLSX", "colaboradores_pines.xlsx"),
			CostCenters: getEnv("COST_CENTERS_XLSX", "proyectos_vigentes.xlsx"),
			PayRates:    getEnv("PAY_RATES_XLSX", ""),
		},
		App: AppConfig{
			Environment:      getEnv("APP_ENV", "development"),
			Version:          getEnv("APP_VERSION", "1.0.0"),
			AdminAlias:       getEnv("ADMIN_ALIAS", "admin"),
			RevalidateOnEdit: getEnvAsBool("REVALIDATE_ON_EDIT", false),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func (c *Config) Validate() error {
	if c.Server.Port == "" {
		return fmt.Errorf("PORT is required")
	}

	switch c.Store.Backend {
	case BackendPostgres:
		if c.Store.DSN == "" {
			return fmt.Errorf("DB_DSN is required for the postgres backend")
		}
	case BackendSQLite:
		if c.Store.SQLitePath == "" {
			return fmt.Errorf("SQLITE_PATH is required for the sqlite backend")
		}
	case BackendCSV:
		if c.Store.CSVPath == "" {
			return fmt.Errorf("CSV_PATH is required for the csv backend")
		}
	default:
		return fmt.Errorf("unknown STORE_BACKEND %q", c.Store.Backend)
	}

	if c.Workbooks.Roster == "" {
		return fmt.Errorf("ROSTER_XLSX is required")
	}

	return nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}

	value, err := strconv.Atoi(valueStr)
	if err != nil {
		log.Printf("Warning: Invalid integer for %s, using default: %d", key, defaultValue)
		return defaultValue
	}

	return value
}

func getEnvAsBool(key string, defaultValue bool) bool {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}

	value, err := strconv.ParseBool(valueStr)
	if err != nil {
		log.Printf("Warning: Invalid boolean for %s, using default: %t", key, defaultValue)
		return defaultValue
	}

	return value
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}

	value, err := time.ParseDuration(valueStr)
	if err != nil {
		log.Printf("Warning: Invalid duration for %s, using default: %s", key, defaultValue)
		return defaultValue
	}

	return value
}
