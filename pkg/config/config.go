package config

import (
	"errors"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const (
	EnvDevelopment = "development"
	EnvProduction  = "production"
)

type Config struct {
	Env       string
	Port      int
	APIPrefix string

	Database   DatabaseConfig
	Redis      RedisConfig
	CORS       CORSConfig
	Log        LogConfig
	Cache      CacheConfig
	Simulation SimulationConfig
	Imports    ImportsConfig
	Exports    ExportsConfig
}

type DatabaseConfig struct {
	Host         string
	Port         int
	User         string
	Password     string
	Name         string
	SSLMode      string
	MaxOpenConns int
	MaxIdleConns int
}

type RedisConfig struct {
	Host     string
	Port     int
	Password string
	DB       int
}

type CORSConfig struct {
	AllowedOrigins []string
}

type LogConfig struct {
	Level  string
	Format string
}

// CacheConfig governs Redis-backed caching of run summaries and backlog
// lookups.
type CacheConfig struct {
	Enabled bool
	TTL     time.Duration
}

// SimulationConfig carries the default engine parameters. Individual run
// requests may override most of them.
type SimulationConfig struct {
	RunwayCount           int
	ServiceOffsetMinutes  int
	BaseROTSeconds        int
	DelayThresholdMinutes int
	BacklogThreshold      int
	UsePeakModulator      bool
	// TieBreakSeed, when set, seeds random runway tie-breaking so runs remain
	// reproducible. Unset keeps the deterministic lowest-index rule.
	TieBreakSeed *int64
	// WorkerConcurrency bounds how many independent simulated days run in
	// parallel on the jobs queue.
	WorkerConcurrency int
	WorkerRetries     int
}

// ImportsConfig controls schedule spreadsheet ingestion.
type ImportsConfig struct {
	MaxFileSizeBytes int64
	SheetName        string
}

// ExportsConfig controls rendered result downloads.
type ExportsConfig struct {
	MaxRows int
}

func Load() (*Config, error) {
	_ = godotenv.Load()

	v := viper.New()
	v.SetConfigFile(".env")
	v.SetConfigType("env")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, err
		}
	}

	cfg := &Config{}

	cfg.Env = v.GetString("ENV")
	cfg.Port = v.GetInt("PORT")
	cfg.APIPrefix = v.GetString("API_PREFIX")

	cfg.Database = DatabaseConfig{
		Host:         v.GetString("DB_HOST"),
		Port:         v.GetInt("DB_PORT"),
		User:         v.GetString("DB_USER"),
		Password:     v.GetString("DB_PASSWORD"),
		Name:         v.GetString("DB_NAME"),
		SSLMode:      v.GetString("DB_SSL_MODE"),
		MaxOpenConns: v.GetInt("DB_MAX_OPEN_CONNS"),
		MaxIdleConns: v.GetInt("DB_MAX_IDLE_CONNS"),
	}

	cfg.Redis = RedisConfig{
		Host:     v.GetString("REDIS_HOST"),
		Port:     v.GetInt("REDIS_PORT"),
		Password: v.GetString("REDIS_PASSWORD"),
		DB:       v.GetInt("REDIS_DB"),
	}

	cfg.CORS = CORSConfig{AllowedOrigins: splitAndTrim(v.GetString("ALLOWED_ORIGINS"))}

	cfg.Log = LogConfig{
		Level:  v.GetString("LOG_LEVEL"),
		Format: v.GetString("LOG_FORMAT"),
	}

	cfg.Cache = CacheConfig{
		Enabled: v.GetBool("ENABLE_CACHE"),
		TTL:     parseDuration(v.GetString("CACHE_TTL"), 10*time.Minute),
	}

	cfg.Simulation = SimulationConfig{
		RunwayCount:           v.GetInt("SIM_RUNWAY_COUNT"),
		ServiceOffsetMinutes:  v.GetInt("SIM_SERVICE_OFFSET_MINUTES"),
		BaseROTSeconds:        v.GetInt("SIM_BASE_ROT_SECONDS"),
		DelayThresholdMinutes: v.GetInt("SIM_DELAY_THRESHOLD_MINUTES"),
		BacklogThreshold:      v.GetInt("SIM_BACKLOG_THRESHOLD"),
		UsePeakModulator:      v.GetBool("SIM_USE_PEAK_MODULATOR"),
		TieBreakSeed:          parseOptionalInt64(v.GetString("SIM_TIE_BREAK_SEED")),
		WorkerConcurrency:     v.GetInt("SIM_WORKER_CONCURRENCY"),
		WorkerRetries:         v.GetInt("SIM_WORKER_RETRIES"),
	}

	maxImportSize := v.GetInt64("IMPORTS_MAX_FILE_SIZE")
	if maxImportSize <= 0 {
		maxImportSize = 20 * 1024 * 1024
	}
	cfg.Imports = ImportsConfig{
		MaxFileSizeBytes: maxImportSize,
		SheetName:        v.GetString("IMPORTS_SHEET_NAME"),
	}

	cfg.Exports = ExportsConfig{
		MaxRows: v.GetInt("EXPORTS_MAX_ROWS"),
	}

	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("ENV", EnvDevelopment)
	v.SetDefault("PORT", 8080)
	v.SetDefault("API_PREFIX", "/api/v1")

	v.SetDefault("DB_HOST", "localhost")
	v.SetDefault("DB_PORT", 5432)
	v.SetDefault("DB_USER", "postgres")
	v.SetDefault("DB_PASSWORD", "postgres")
	v.SetDefault("DB_NAME", "runwaysim")
	v.SetDefault("DB_SSL_MODE", "disable")
	v.SetDefault("DB_MAX_OPEN_CONNS", 10)
	v.SetDefault("DB_MAX_IDLE_CONNS", 5)

	v.SetDefault("REDIS_HOST", "localhost")
	v.SetDefault("REDIS_PORT", 6379)
	v.SetDefault("REDIS_PASSWORD", "")
	v.SetDefault("REDIS_DB", 0)

	v.SetDefault("ALLOWED_ORIGINS", "")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("LOG_FORMAT", "json")

	v.SetDefault("ENABLE_CACHE", false)
	v.SetDefault("CACHE_TTL", "10m")

	v.SetDefault("SIM_RUNWAY_COUNT", 2)
	v.SetDefault("SIM_SERVICE_OFFSET_MINUTES", 15)
	v.SetDefault("SIM_BASE_ROT_SECONDS", 90)
	v.SetDefault("SIM_DELAY_THRESHOLD_MINUTES", 15)
	v.SetDefault("SIM_BACKLOG_THRESHOLD", 10)
	v.SetDefault("SIM_USE_PEAK_MODULATOR", false)
	v.SetDefault("SIM_TIE_BREAK_SEED", "")
	v.SetDefault("SIM_WORKER_CONCURRENCY", 4)
	v.SetDefault("SIM_WORKER_RETRIES", 1)

	v.SetDefault("IMPORTS_MAX_FILE_SIZE", 20*1024*1024)
	v.SetDefault("IMPORTS_SHEET_NAME", "")

	v.SetDefault("EXPORTS_MAX_ROWS", 50000)
}

func parseDuration(raw string, fallback time.Duration) time.Duration {
	if raw == "" {
		return fallback
	}

	d, err := time.ParseDuration(raw)
	if err != nil {
		return fallback
	}

	return d
}

func parseOptionalInt64(raw string) *int64 {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil
	}
	n, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return nil
	}
	return &n
}

func splitAndTrim(raw string) []string {
	if raw == "" {
		return nil
	}

	parts := strings.Split(raw, ",")
	result := make([]string, 0, len(parts))
	for _, part := range parts {
		trimmed := strings.TrimSpace(part)
		if trimmed != "" {
			result = append(result, trimmed)
		}
	}

	return result
}
