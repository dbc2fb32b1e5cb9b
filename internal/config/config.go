package config

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/viper"

	"smartexam_backend/internal/compiler"
)

type Config struct {
	Server    ServerConfig
	Database  DatabaseConfig
	Redis     RedisConfig
	JWT       JWTConfig
	Storage   StorageConfig
	Tracing   TracingConfig   `mapstructure:"tracing"`
	CORS      CORSConfig      `mapstructure:"cors"`
	RateLimit RateLimitConfig `mapstructure:"rate_limit"`
	Analysis  AnalysisConfig  `mapstructure:"analysis"`

	// Runtime flags set from the command line, not the config file.
	ForceMigrate bool `mapstructure:"-"`
	MigrateOnly  bool `mapstructure:"-"`
}

type ServerConfig struct {
	Port string
	Mode string
}

type DatabaseConfig struct {
	Host      string
	Port      int
	User      string
	Password  string
	DBName    string
	Charset   string
	ParseTime bool
}

type RedisConfig struct {
	Host     string
	Port     int
	Password string
	DB       int
	// ReportTTL is how long analysis reports stay cached, in minutes.
	ReportTTL int `mapstructure:"report_ttl_minutes"`
}

type JWTConfig struct {
	Secret     string        `mapstructure:"secret"`
	ExpireTime time.Duration `mapstructure:"expire_hours"`
}

type StorageConfig struct {
	Type          string `mapstructure:"type"`
	LocalPath     string `mapstructure:"local_path"`
	MinioEndpoint string `mapstructure:"minio_endpoint"`
	MinioAccessID string `mapstructure:"minio_access_key"`
	MinioSecret   string `mapstructure:"minio_secret_key"`
	MinioBucket   string `mapstructure:"minio_bucket"`
}

type TracingConfig struct {
	Enabled           bool   `mapstructure:"enabled"`
	CollectorEndpoint string `mapstructure:"collector_endpoint"`
}

type CORSConfig struct {
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

type RateLimitConfig struct {
	MaxRequests   int `mapstructure:"max_requests"`
	WindowMinutes int `mapstructure:"window_minutes"`
}

// AnalysisConfig tunes the semantic checks. Unset fields fall back to the
// compiler defaults.
type AnalysisConfig struct {
	TimeTolerance    int     `mapstructure:"time_tolerance"`
	TimeBuffer       float64 `mapstructure:"time_buffer"`
	EasyMin          float64 `mapstructure:"easy_min"`
	EasyMax          float64 `mapstructure:"easy_max"`
	MediumMin        float64 `mapstructure:"medium_min"`
	MediumMax        float64 `mapstructure:"medium_max"`
	HardMin          float64 `mapstructure:"hard_min"`
	HardMax          float64 `mapstructure:"hard_max"`
	CoverageMin      float64 `mapstructure:"coverage_min"`
	MaxTopics        int     `mapstructure:"max_topics"`
	CrispMin         float64 `mapstructure:"crisp_min"`
	VerboseWordLimit int     `mapstructure:"verbose_word_limit"`
}

// Thresholds maps the analysis section onto compiler thresholds, keeping
// the compiler defaults for anything left unset.
func (a AnalysisConfig) Thresholds() compiler.Thresholds {
	th := compiler.DefaultThresholds()
	if a.TimeTolerance > 0 {
		th.TimeTolerance = a.TimeTolerance
	}
	if a.TimeBuffer > 0 {
		th.TimeBuffer = a.TimeBuffer
	}
	if a.EasyMin > 0 {
		th.EasyMin = a.EasyMin
	}
	if a.EasyMax > 0 {
		th.EasyMax = a.EasyMax
	}
	if a.MediumMin > 0 {
		th.MediumMin = a.MediumMin
	}
	if a.MediumMax > 0 {
		th.MediumMax = a.MediumMax
	}
	if a.HardMin > 0 {
		th.HardMin = a.HardMin
	}
	if a.HardMax > 0 {
		th.HardMax = a.HardMax
	}
	if a.CoverageMin > 0 {
		th.CoverageMin = a.CoverageMin
	}
	if a.MaxTopics > 0 {
		th.MaxTopics = a.MaxTopics
	}
	if a.CrispMin > 0 {
		th.CrispMin = a.CrispMin
	}
	if a.VerboseWordLimit > 0 {
		th.VerboseWordLimit = a.VerboseWordLimit
	}
	return th
}

func LoadConfig(path string) (*Config, error) {
	viper.AddConfigPath(path)
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")

	viper.SetEnvPrefix("SMARTEXAM")
	viper.AutomaticEnv()

	// Database
	viper.BindEnv("database.host", "DATABASE_HOST")
	viper.BindEnv("database.port", "DATABASE_PORT")
	viper.BindEnv("database.user", "DATABASE_USER")
	viper.BindEnv("database.password", "DATABASE_PASSWORD")
	viper.BindEnv("database.dbname", "DATABASE_NAME")

	// Redis
	viper.BindEnv("redis.host", "REDIS_HOST")
	viper.BindEnv("redis.port", "REDIS_PORT")
	viper.BindEnv("redis.password", "REDIS_PASSWORD")

	// JWT
	viper.BindEnv("jwt.secret", "JWT_SECRET")

	// Server
	viper.BindEnv("server.mode", "SERVER_MODE")

	// Storage
	viper.BindEnv("storage.type", "STORAGE_TYPE")
	viper.BindEnv("storage.minio_endpoint", "MINIO_ENDPOINT")
	viper.BindEnv("storage.minio_access_key", "MINIO_ACCESS_KEY")
	viper.BindEnv("storage.minio_secret_key", "MINIO_SECRET_KEY")
	viper.BindEnv("storage.minio_bucket", "MINIO_BUCKET")

	// Tracing
	viper.BindEnv("tracing.enabled", "TRACING_ENABLED")
	viper.BindEnv("tracing.collector_endpoint", "TRACING_COLLECTOR_ENDPOINT")

	if err := viper.ReadInConfig(); err != nil {
		return nil, err
	}

	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, err
	}

	cfg.JWT.ExpireTime = cfg.JWT.ExpireTime * time.Hour

	if cfg.Server.Mode == "release" && len(cfg.JWT.Secret) < 32 {
		return nil, fmt.Errorf("JWT secret is too short (%d chars), must be at least 32 characters in release mode", len(cfg.JWT.Secret))
	}

	if cfg.Storage.Type == "local" {
		if _, err := os.Stat(cfg.Storage.LocalPath); os.IsNotExist(err) {
			os.MkdirAll(cfg.Storage.LocalPath, 0755)
		}
	}

	return &cfg, nil
}
