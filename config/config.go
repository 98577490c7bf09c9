package config

import (
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// DevOrigins are always accepted in addition to ALLOWED_ORIGINS.
var DevOrigins = []string{
	"http://localhost:3000",
	"http://localhost:3002",
	"http://localhost:3001",
}

type Config struct {
	Port           string
	AllowedOrigins []string
	HistoryPath    string
	ReadyCacheTTL  time.Duration
	Debug          bool
	Database       DatabaseConfig
}

type DatabaseConfig struct {
	URL          string
	MaxOpenConns int
	MaxIdleConns int
}

// Load reads an optional .env file into the process environment and returns
// the resulting configuration. A missing .env is not an error.
func Load(envFile string) Config {
	if envFile != "" {
		_ = godotenv.Load(envFile)
	}
	return GetConfig()
}

func GetConfig() Config {
	v := viper.New()
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	v.SetDefault("PORT", "8000")
	v.SetDefault("DATABASE_URL", "")
	v.SetDefault("ALLOWED_ORIGINS", "")
	v.SetDefault("HISTORY_PATH", "./data/history")
	v.SetDefault("READY_CACHE_TTL", "10s")
	v.SetDefault("DEBUG", false)
	v.SetDefault("DB_MAX_OPEN_CONNS", 10)
	v.SetDefault("DB_MAX_IDLE_CONNS", 2)

	return Config{
		Port:           v.GetString("PORT"),
		AllowedOrigins: ParseOrigins(v.GetString("ALLOWED_ORIGINS")),
		HistoryPath:    v.GetString("HISTORY_PATH"),
		ReadyCacheTTL:  v.GetDuration("READY_CACHE_TTL"),
		Debug:          v.GetBool("DEBUG"),
		Database: DatabaseConfig{
			URL:          v.GetString("DATABASE_URL"),
			MaxOpenConns: v.GetInt("DB_MAX_OPEN_CONNS"),
			MaxIdleConns: v.GetInt("DB_MAX_IDLE_CONNS"),
		},
	}
}

// ParseOrigins splits a comma-separated origin list, drops blanks and appends
// the development origins that are not already present.
func ParseOrigins(raw string) []string {
	origins := []string{}
	seen := map[string]bool{}
	for _, o := range strings.Split(raw, ",") {
		o = strings.TrimSpace(o)
		if o == "" || seen[o] {
			continue
		}
		seen[o] = true
		origins = append(origins, o)
	}
	for _, o := range DevOrigins {
		if !seen[o] {
			seen[o] = true
			origins = append(origins, o)
		}
	}
	return origins
}
