package config

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
)

const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
)

// LoadEnv loads a local .env when present. Real environment variables
// always win over file values.
func LoadEnv() {
	_ = godotenv.Load()
}

// Config is read from environment variables.
type Config struct {
	Driver string

	// postgres
	Host     string
	User     string
	Password string
	Name     string
	Port     string

	// sqlite
	SQLitePath string
}

func FromEnv() Config {
	get := func(k, def string) string {
		v := os.Getenv(k)
		if v == "" {
			return def
		}
		return v
	}
	return Config{
		Driver:     get("DB_DRIVER", DriverSQLite),
		Host:       get("DB_HOST", "127.0.0.1"),
		User:       get("DB_USER", "postgres"),
		Password:   os.Getenv("DB_PASSWORD"),
		Name:       get("DB_NAME", "loanledger"),
		Port:       get("DB_PORT", "5432"),
		SQLitePath: get("SQLITE_PATH", "data/loanledger.db"),
	}
}

func (c Config) PostgresDSN() string {
	return fmt.Sprintf(
		"host=%s user=%s password=%s dbname=%s port=%s sslmode=disable",
		c.Host, c.User, c.Password, c.Name, c.Port,
	)
}
