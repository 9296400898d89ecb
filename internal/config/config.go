package config // package config loads application configuration from environment variables

import (
	"log"
	"os"
	"strconv"
)

// Config holds all runtime configuration values.  Each field corresponds
// to an environment variable.  Database settings depend on the chosen
// driver: MySQL uses the discrete DB_* fields, SQLite uses DB_PATH and
// Postgres uses DATABASE_URL.
type Config struct {
	Env      string // application environment (e.g. "dev", "prod")
	Port     string // HTTP port to listen on
	DBDriver string // "mysql" (default), "sqlite" or "postgres"
	DBUser   string // database username (mysql)
	DBPass   string // database password (mysql, optional)
	DBHost   string // database host address (mysql)
	DBPort   string // database port number (mysql)
	DBName   string // database name (mysql)
	DBPath   string // database file path (sqlite)
	DBURL    string // connection URL (postgres)

	JWTSecret    string // secret used to sign admin access tokens
	AccessTTLMin int    // access token time-to-live in minutes

	AdminEmail    string // email the administrator logs in with
	AdminPassHash string // bcrypt hash of the administrator password
}

// Load reads configuration values from environment variables and returns
// a Config.  Required variables are enforced by must(); missing values
// cause the program to exit with a fatal log message.  Which database
// variables are required follows from DB_DRIVER.
func Load() Config {
	cfg := Config{
		Env:           must("APP_ENV"),
		Port:          must("APP_PORT"),
		DBDriver:      getenvDefault("DB_DRIVER", "mysql"),
		JWTSecret:     must("JWT_SECRET"),
		AccessTTLMin:  mustInt("ACCESS_TOKEN_TTL_MIN"),
		AdminEmail:    must("ADMIN_EMAIL"),
		AdminPassHash: must("ADMIN_PASSWORD_HASH"),
	}
	switch cfg.DBDriver {
	case "sqlite", "sqlite3":
		cfg.DBPath = must("DB_PATH")
	case "postgres", "postgresql":
		cfg.DBURL = must("DATABASE_URL")
	default:
		cfg.DBUser = must("DB_USER")
		cfg.DBPass = os.Getenv("DB_PASS") // empty allowed
		cfg.DBHost = must("DB_HOST")
		cfg.DBPort = must("DB_PORT")
		cfg.DBName = must("DB_NAME")
	}
	return cfg
}

// must retrieves the value of a required environment variable.  If the
// variable is unset or empty, the application logs a fatal error and
// exits.
func must(key string) string {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		log.Fatalf("missing required env var: %s", key)
	}
	return v
}

// mustInt is like must() but converts the retrieved string into an
// integer.  If conversion fails, the application logs a fatal error and
// exits.
func mustInt(key string) int {
	s := must(key)
	n, err := strconv.Atoi(s)
	if err != nil {
		log.Fatalf("invalid int for %s: %q", key, s)
	}
	return n
}

// getenvDefault reads an optional variable with a fallback.
func getenvDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
