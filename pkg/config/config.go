package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const (
	EnvDevelopment = "development"
	EnvProduction  = "production"
)

// Record formats understood by the FS client.
const (
	RecordFormatStructured  = "structured"
	RecordFormatEncodedPath = "encoded-path"
)

// Failure policies applied when every relevant year fails upstream.
const (
	FailurePolicySoft   = "soft"
	FailurePolicyStrict = "strict"
)

// Course cache backends.
const (
	CacheBackendMemory = "memory"
	CacheBackendRedis  = "redis"
)

// Institution credential sources.
const (
	InstitutionSourceConfig   = "config"
	InstitutionSourcePostgres = "postgres"
)

type Config struct {
	Env       string
	Port      int
	APIPrefix string

	Database DatabaseConfig
	Redis    RedisConfig
	JWT      JWTConfig
	CORS     CORSConfig
	Log      LogConfig
	FS       FSConfig
	Courses  CoursesConfig
	Metrics  MetricsConfig
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

type JWTConfig struct {
	Secret string
	Issuer string
}

type CORSConfig struct {
	AllowedOrigins []string
}

type LogConfig struct {
	Level  string
	Format string
}

// FSConfig describes how to reach the FS API.
type FSConfig struct {
	BaseURI           string              `json:"baseUri" validate:"required,url"`
	Institutions      []InstitutionConfig `json:"institutions" validate:"dive"`
	RecordFormat      string              `json:"-"`
	Timeout           time.Duration       `json:"-"`
	InstitutionSource string              `json:"-"`
}

// InstitutionConfig holds FS credentials for a single institution.
type InstitutionConfig struct {
	Code     int    `json:"code" validate:"required,gt=0"`
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// CoursesConfig tunes the course listing endpoint.
type CoursesConfig struct {
	FailurePolicy string
	Timezone      *time.Location
	CacheEnabled  bool
	CacheBackend  string
	CacheTTL      time.Duration
}

// MetricsConfig toggles the Prometheus endpoint.
type MetricsConfig struct {
	Enabled bool
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
		if !errors.As(err, &notFound) && !errors.Is(err, os.ErrNotExist) {
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

	cfg.JWT = JWTConfig{
		Secret: v.GetString("JWT_SECRET"),
		Issuer: v.GetString("JWT_ISSUER"),
	}

	cfg.CORS = CORSConfig{AllowedOrigins: splitAndTrim(v.GetString("ALLOWED_ORIGINS"))}

	cfg.Log = LogConfig{
		Level:  v.GetString("LOG_LEVEL"),
		Format: v.GetString("LOG_FORMAT"),
	}

	rawFS, err := readFSConfig(v)
	if err != nil {
		return nil, err
	}
	fsCfg, err := ParseFSConfig(rawFS)
	if err != nil {
		return nil, err
	}
	fsCfg.RecordFormat = v.GetString("FS_RECORD_FORMAT")
	fsCfg.Timeout = parseDuration(v.GetString("FS_HTTP_TIMEOUT"), 10*time.Second)
	fsCfg.InstitutionSource = v.GetString("INSTITUTION_SOURCE")
	if err := validateChoice("FS_RECORD_FORMAT", fsCfg.RecordFormat, RecordFormatStructured, RecordFormatEncodedPath); err != nil {
		return nil, err
	}
	if err := validateChoice("INSTITUTION_SOURCE", fsCfg.InstitutionSource, InstitutionSourceConfig, InstitutionSourcePostgres); err != nil {
		return nil, err
	}
	cfg.FS = *fsCfg

	loc, err := time.LoadLocation(v.GetString("FS_TIMEZONE"))
	if err != nil {
		return nil, fmt.Errorf("load FS_TIMEZONE: %w", err)
	}
	cfg.Courses = CoursesConfig{
		FailurePolicy: v.GetString("FS_FAILURE_POLICY"),
		Timezone:      loc,
		CacheEnabled:  v.GetBool("ENABLE_COURSE_CACHE"),
		CacheBackend:  v.GetString("COURSE_CACHE_BACKEND"),
		CacheTTL:      parseDuration(v.GetString("COURSE_CACHE_TTL"), 15*time.Minute),
	}
	if err := validateChoice("FS_FAILURE_POLICY", cfg.Courses.FailurePolicy, FailurePolicySoft, FailurePolicyStrict); err != nil {
		return nil, err
	}
	if err := validateChoice("COURSE_CACHE_BACKEND", cfg.Courses.CacheBackend, CacheBackendMemory, CacheBackendRedis); err != nil {
		return nil, err
	}

	cfg.Metrics = MetricsConfig{Enabled: v.GetBool("ENABLE_METRICS")}

	return cfg, nil
}

// ParseFSConfig decodes and validates the FS configuration document.
func ParseFSConfig(raw []byte) (*FSConfig, error) {
	var fsCfg FSConfig
	if err := json.Unmarshal(raw, &fsCfg); err != nil {
		return nil, fmt.Errorf("FS configuration does not contain properly formatted JSON: %w", err)
	}
	if err := validator.New().Struct(fsCfg); err != nil {
		return nil, fmt.Errorf("invalid FS configuration: %w", err)
	}
	fsCfg.BaseURI = strings.TrimRight(fsCfg.BaseURI, "/")
	return &fsCfg, nil
}

// Institution returns the credentials configured for code.
func (c FSConfig) Institution(code int) (InstitutionConfig, bool) {
	for _, inst := range c.Institutions {
		if inst.Code == code {
			return inst, true
		}
	}
	return InstitutionConfig{}, false
}

func readFSConfig(v *viper.Viper) ([]byte, error) {
	if inline := strings.TrimSpace(v.GetString("FS_CONFIG")); inline != "" {
		return []byte(inline), nil
	}
	path := v.GetString("FS_CONFIG_FILE")
	if path == "" {
		return nil, errors.New("either FS_CONFIG or FS_CONFIG_FILE must be set")
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read FS_CONFIG_FILE: %w", err)
	}
	return raw, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("ENV", EnvDevelopment)
	v.SetDefault("PORT", 8080)
	v.SetDefault("API_PREFIX", "/api/v1")

	v.SetDefault("DB_HOST", "localhost")
	v.SetDefault("DB_PORT", 5432)
	v.SetDefault("DB_USER", "postgres")
	v.SetDefault("DB_PASSWORD", "postgres")
	v.SetDefault("DB_NAME", "fs_courses")
	v.SetDefault("DB_SSL_MODE", "disable")
	v.SetDefault("DB_MAX_OPEN_CONNS", 10)
	v.SetDefault("DB_MAX_IDLE_CONNS", 5)

	v.SetDefault("REDIS_HOST", "localhost")
	v.SetDefault("REDIS_PORT", 6379)
	v.SetDefault("REDIS_PASSWORD", "")
	v.SetDefault("REDIS_DB", 0)

	v.SetDefault("JWT_SECRET", "dev_secret")
	v.SetDefault("JWT_ISSUER", "")

	v.SetDefault("ALLOWED_ORIGINS", "")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("LOG_FORMAT", "json")

	v.SetDefault("FS_CONFIG", "")
	v.SetDefault("FS_CONFIG_FILE", "")
	v.SetDefault("FS_RECORD_FORMAT", RecordFormatStructured)
	v.SetDefault("FS_HTTP_TIMEOUT", "10s")
	v.SetDefault("FS_FAILURE_POLICY", FailurePolicySoft)
	v.SetDefault("FS_TIMEZONE", "Europe/Oslo")
	v.SetDefault("INSTITUTION_SOURCE", InstitutionSourceConfig)

	v.SetDefault("ENABLE_COURSE_CACHE", false)
	v.SetDefault("COURSE_CACHE_BACKEND", CacheBackendMemory)
	v.SetDefault("COURSE_CACHE_TTL", "15m")
	v.SetDefault("ENABLE_METRICS", true)
}

func validateChoice(key, value string, allowed ...string) error {
	for _, candidate := range allowed {
		if value == candidate {
			return nil
		}
	}
	return fmt.Errorf("%s must be one of %s, got %q", key, strings.Join(allowed, ", "), value)
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
