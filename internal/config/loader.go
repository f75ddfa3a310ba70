package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const defaultJWTSecret = "change-me-in-production"

// Load loads configuration from a .env file, environment variables and config files
func Load() (*Config, error) {
	// A missing .env is normal outside local development
	_ = godotenv.Load()

	v := viper.New()

	setDefaults(v)

	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")
	v.AddConfigPath("/etc/clientintake")

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	return fromViper(v)
}

func fromViper(v *viper.Viper) (*Config, error) {
	var cfg Config

	// Server
	cfg.Server.Host = v.GetString("server_host")
	cfg.Server.Port = v.GetInt("server_port")
	cfg.Server.Env = v.GetString("server_env")
	cfg.Server.ShutdownTimeout = v.GetDuration("server_shutdown_timeout")

	// PostgreSQL
	cfg.Postgres.Host = v.GetString("postgres_host")
	cfg.Postgres.Port = v.GetInt("postgres_port")
	cfg.Postgres.User = v.GetString("postgres_user")
	cfg.Postgres.Password = v.GetString("postgres_password")
	cfg.Postgres.Database = v.GetString("postgres_db")
	cfg.Postgres.SSLMode = v.GetString("postgres_ssl_mode")
	cfg.Postgres.MaxConns = int32(v.GetInt("postgres_max_conns"))
	cfg.Postgres.MinConns = int32(v.GetInt("postgres_min_conns"))
	cfg.Postgres.AcquireTimeout = v.GetDuration("postgres_acquire_timeout")
	cfg.Postgres.MaxConnIdleTime = v.GetDuration("postgres_max_conn_idle_time")
	cfg.Postgres.MaxConnLifetime = v.GetDuration("postgres_max_conn_lifetime")
	cfg.Postgres.HealthCheckPeriod = v.GetDuration("postgres_health_check_period")

	// Redis
	cfg.Redis.Host = v.GetString("redis_host")
	cfg.Redis.Port = v.GetInt("redis_port")
	cfg.Redis.Password = v.GetString("redis_password")
	cfg.Redis.DB = v.GetInt("redis_db")

	// Storage
	cfg.Storage.Backend = strings.ToLower(v.GetString("storage_backend"))
	cfg.Storage.Dir = v.GetString("storage_dir")
	cfg.Storage.MinIO.Endpoint = v.GetString("minio_endpoint")
	cfg.Storage.MinIO.AccessKey = v.GetString("minio_access_key")
	cfg.Storage.MinIO.SecretKey = v.GetString("minio_secret_key")
	cfg.Storage.MinIO.UseSSL = v.GetBool("minio_use_ssl")
	cfg.Storage.MinIO.Bucket = v.GetString("minio_bucket")
	cfg.Storage.GCS.Bucket = v.GetString("gcs_bucket")
	cfg.Storage.GCS.CredentialsFile = v.GetString("gcs_credentials_file")

	// JWT
	cfg.JWT.Secret = v.GetString("jwt_secret")
	cfg.JWT.Expiry = v.GetDuration("jwt_expiry")
	cfg.JWT.Issuer = v.GetString("jwt_issuer")

	// CORS
	cfg.CORS.AllowOrigins = splitList(v.GetStringSlice("cors_allow_origins"))

	// Uploads
	cfg.Upload.MaxBodyBytes = v.GetInt("upload_max_body_bytes")
	cfg.Upload.MaxFiles = v.GetInt("upload_max_files")

	// Logging
	cfg.Log.Level = v.GetString("log_level")
	cfg.Log.Format = v.GetString("log_format")

	// Sentry
	cfg.Sentry.Enabled = v.GetBool("sentry_enabled")
	cfg.Sentry.DSN = v.GetString("sentry_dsn")
	cfg.Sentry.Environment = v.GetString("sentry_environment")
	cfg.Sentry.Release = v.GetString("sentry_release")
	cfg.Sentry.Debug = v.GetBool("sentry_debug")
	cfg.Sentry.SampleRate = v.GetFloat64("sentry_sample_rate")
	cfg.Sentry.TracesSampleRate = v.GetFloat64("sentry_traces_sample_rate")

	if err := validate(&cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	// Server defaults
	v.SetDefault("server_host", "0.0.0.0")
	v.SetDefault("server_port", 3000)
	v.SetDefault("server_env", "development")
	v.SetDefault("server_shutdown_timeout", 30*time.Second)

	// PostgreSQL defaults
	v.SetDefault("postgres_host", "localhost")
	v.SetDefault("postgres_port", 5432)
	v.SetDefault("postgres_user", "clientuser")
	v.SetDefault("postgres_password", "password")
	v.SetDefault("postgres_db", "clientdb")
	v.SetDefault("postgres_ssl_mode", "disable")
	v.SetDefault("postgres_max_conns", 20)
	v.SetDefault("postgres_min_conns", 2)
	v.SetDefault("postgres_acquire_timeout", 2*time.Second)
	v.SetDefault("postgres_max_conn_idle_time", 30*time.Second)
	v.SetDefault("postgres_max_conn_lifetime", time.Hour)
	v.SetDefault("postgres_health_check_period", time.Minute)

	// Redis defaults (disabled unless redis_host is set)
	v.SetDefault("redis_host", "")
	v.SetDefault("redis_port", 6379)
	v.SetDefault("redis_password", "")
	v.SetDefault("redis_db", 0)

	// Storage defaults
	v.SetDefault("storage_backend", StorageBackendFS)
	v.SetDefault("storage_dir", "uploads")
	v.SetDefault("minio_endpoint", "localhost:9000")
	v.SetDefault("minio_use_ssl", false)
	v.SetDefault("minio_bucket", "client-documents")

	// JWT defaults
	v.SetDefault("jwt_secret", defaultJWTSecret)
	v.SetDefault("jwt_expiry", time.Hour)
	v.SetDefault("jwt_issuer", "clientintake")

	v.SetDefault("cors_allow_origins", []string{"*"})

	v.SetDefault("upload_max_body_bytes", 50<<20)
	v.SetDefault("upload_max_files", 20)

	// Logging defaults
	v.SetDefault("log_level", "info")
	v.SetDefault("log_format", "json")

	// Sentry defaults
	v.SetDefault("sentry_enabled", false)
	v.SetDefault("sentry_sample_rate", 1.0)
	v.SetDefault("sentry_traces_sample_rate", 0.1)
}

func validate(cfg *Config) error {
	if cfg.JWT.Secret == defaultJWTSecret && cfg.IsProduction() {
		return fmt.Errorf("JWT secret must be changed in production")
	}
	if cfg.JWT.Expiry <= 0 {
		return fmt.Errorf("jwt_expiry must be positive")
	}
	if cfg.Postgres.MaxConns < 1 || cfg.Postgres.MinConns > cfg.Postgres.MaxConns {
		return fmt.Errorf("invalid postgres pool size: min=%d max=%d", cfg.Postgres.MinConns, cfg.Postgres.MaxConns)
	}
	if cfg.Postgres.HealthCheckPeriod <= 0 {
		return fmt.Errorf("postgres_health_check_period must be positive")
	}

	switch cfg.Storage.Backend {
	case StorageBackendFS:
		if cfg.Storage.Dir == "" {
			return fmt.Errorf("storage_dir is required for the fs backend")
		}
	case StorageBackendMinIO:
		if cfg.Storage.MinIO.Endpoint == "" || cfg.Storage.MinIO.Bucket == "" {
			return fmt.Errorf("minio_endpoint and minio_bucket are required for the minio backend")
		}
	case StorageBackendGCS:
		if cfg.Storage.GCS.Bucket == "" {
			return fmt.Errorf("gcs_bucket is required for the gcs backend")
		}
	default:
		return fmt.Errorf("unknown storage backend %q", cfg.Storage.Backend)
	}

	return nil
}

// splitList accepts both YAML lists and comma-separated environment values.
func splitList(values []string) []string {
	var out []string
	for _, v := range values {
		for _, part := range strings.Split(v, ",") {
			if part = strings.TrimSpace(part); part != "" {
				out = append(out, part)
			}
		}
	}
	return out
}
