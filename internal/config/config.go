package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all application configuration.
type Config struct {
	Server ServerConfig
	DB     DBConfig
	S3     S3Config
	Log    LogConfig
	CORS   CORSConfig
	Email  EmailConfig
	Share  ShareConfig
	Review ReviewConfig
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Port         string        `mapstructure:"port"`
	ReadTimeout  time.Duration `mapstructure:"read_timeout"`
	WriteTimeout time.Duration `mapstructure:"write_timeout"`
	Environment  string        `mapstructure:"environment"`
}

// DBConfig holds PostgreSQL connection settings.
type DBConfig struct {
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	User     string `mapstructure:"user"`
	Password string `mapstructure:"password"`
	Name     string `mapstructure:"name"`
	SSLMode  string `mapstructure:"sslmode"`
	MaxOpen  int    `mapstructure:"max_open"`
	MaxIdle  int    `mapstructure:"max_idle"`
}

// DSN returns the PostgreSQL connection string.
func (d *DBConfig) DSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=%s",
		d.User, d.Password, d.Host, d.Port, d.Name, d.SSLMode,
	)
}

// S3Config holds AWS S3 settings.
type S3Config struct {
	Region        string `mapstructure:"region"`
	Bucket        string `mapstructure:"bucket"`
	Endpoint      string `mapstructure:"endpoint"`
	AccessKey     string `mapstructure:"access_key"`
	SecretKey     string `mapstructure:"secret_key"`
	MaxFileSizeMB int64  `mapstructure:"max_file_size_mb"`
	PresignExpiry int64  `mapstructure:"presign_expiry"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// CORSConfig holds CORS settings.
type CORSConfig struct {
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

// EmailConfig holds review notification delivery settings.
type EmailConfig struct {
	Provider    string `mapstructure:"provider"`
	Region      string `mapstructure:"region"`
	FromAddress string `mapstructure:"from_address"`
	FromName    string `mapstructure:"from_name"`
	FrontendURL string `mapstructure:"frontend_url"`
	ReviewerTo  string `mapstructure:"reviewer_to"`
}

// ShareConfig holds signed share-link settings.
type ShareConfig struct {
	Secret string        `mapstructure:"secret"`
	Issuer string        `mapstructure:"issuer"`
	Expiry time.Duration `mapstructure:"expiry"`
}

// ReviewConfig holds review queue settings.
type ReviewConfig struct {
	PageSize int `mapstructure:"page_size"`
}

// Load reads configuration from environment variables with the DOCBOARD_ prefix.
func Load() (*Config, error) {
	v := viper.New()
	v.SetEnvPrefix("DOCBOARD")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Server defaults
	v.SetDefault("server.port", ":8080")
	v.SetDefault("server.read_timeout", "15s")
	v.SetDefault("server.write_timeout", "15s")
	v.SetDefault("server.environment", "development")

	// DB defaults
	v.SetDefault("db.host", "localhost")
	v.SetDefault("db.port", 5432)
	v.SetDefault("db.user", "docboard")
	v.SetDefault("db.password", "docboard_secret")
	v.SetDefault("db.name", "docboard_db")
	v.SetDefault("db.sslmode", "disable")
	v.SetDefault("db.max_open", 25)
	v.SetDefault("db.max_idle", 10)

	// S3 defaults
	v.SetDefault("s3.region", "us-east-1")
	v.SetDefault("s3.bucket", "docboard-uploads")
	v.SetDefault("s3.endpoint", "")
	v.SetDefault("s3.max_file_size_mb", 50)
	v.SetDefault("s3.presign_expiry", 3600)

	// Log defaults
	v.SetDefault("log.level", "debug")
	v.SetDefault("log.format", "console")

	// CORS defaults (localhost origins for development)
	v.SetDefault("cors.allowed_origins", "http://localhost:3000,http://127.0.0.1:3000,http://localhost:3001,http://127.0.0.1:3001")

	// Email defaults
	v.SetDefault("email.provider", "noop")
	v.SetDefault("email.region", "us-east-1")
	v.SetDefault("email.from_address", "noreply@docboard.io")
	v.SetDefault("email.from_name", "Docboard")
	v.SetDefault("email.frontend_url", "http://localhost:3000")
	v.SetDefault("email.reviewer_to", "")

	// Share link defaults
	v.SetDefault("share.secret", "change-me-in-production")
	v.SetDefault("share.issuer", "docboard")
	v.SetDefault("share.expiry", "168h")

	// Review defaults
	v.SetDefault("review.page_size", 50)

	// Bind environment variables explicitly for nested keys
	envBindings := map[string]string{
		"server.port":          "DOCBOARD_SERVER_PORT",
		"server.read_timeout":  "DOCBOARD_SERVER_READ_TIMEOUT",
		"server.write_timeout": "DOCBOARD_SERVER_WRITE_TIMEOUT",
		"server.environment":   "DOCBOARD_SERVER_ENVIRONMENT",
		"db.host":              "DOCBOARD_DB_HOST",
		"db.port":              "DOCBOARD_DB_PORT",
		"db.user":              "DOCBOARD_DB_USER",
		"db.password":          "DOCBOARD_DB_PASSWORD",
		"db.name":              "DOCBOARD_DB_NAME",
		"db.sslmode":           "DOCBOARD_DB_SSLMODE",
		"db.max_open":          "DOCBOARD_DB_MAX_OPEN",
		"db.max_idle":          "DOCBOARD_DB_MAX_IDLE",
		"s3.region":            "DOCBOARD_S3_REGION",
		"s3.bucket":            "DOCBOARD_S3_BUCKET",
		"s3.endpoint":          "DOCBOARD_S3_ENDPOINT",
		"s3.access_key":        "DOCBOARD_S3_ACCESS_KEY",
		"s3.secret_key":        "DOCBOARD_S3_SECRET_KEY",
		"s3.max_file_size_mb":  "DOCBOARD_S3_MAX_FILE_SIZE_MB",
		"s3.presign_expiry":    "DOCBOARD_S3_PRESIGN_EXPIRY",
		"log.level":            "DOCBOARD_LOG_LEVEL",
		"log.format":           "DOCBOARD_LOG_FORMAT",
		"cors.allowed_origins": "DOCBOARD_CORS_ALLOWED_ORIGINS",
		"email.provider":       "DOCBOARD_EMAIL_PROVIDER",
		"email.region":         "DOCBOARD_EMAIL_REGION",
		"email.from_address":   "DOCBOARD_EMAIL_FROM_ADDRESS",
		"email.from_name":      "DOCBOARD_EMAIL_FROM_NAME",
		"email.frontend_url":   "DOCBOARD_EMAIL_FRONTEND_URL",
		"email.reviewer_to":    "DOCBOARD_EMAIL_REVIEWER_TO",
		"share.secret":         "DOCBOARD_SHARE_SECRET",
		"share.issuer":         "DOCBOARD_SHARE_ISSUER",
		"share.expiry":         "DOCBOARD_SHARE_EXPIRY",
		"review.page_size":     "DOCBOARD_REVIEW_PAGE_SIZE",
	}
	for key, env := range envBindings {
		_ = v.BindEnv(key, env)
	}

	cfg := &Config{}

	// Railway/Heroku/Render set a PORT env var. Use it if DOCBOARD_SERVER_PORT is not explicitly set.
	serverPort := v.GetString("server.port")
	if port := os.Getenv("PORT"); port != "" && os.Getenv("DOCBOARD_SERVER_PORT") == "" {
		serverPort = ":" + port
	}

	cfg.Server = ServerConfig{
		Port:         serverPort,
		ReadTimeout:  v.GetDuration("server.read_timeout"),
		WriteTimeout: v.GetDuration("server.write_timeout"),
		Environment:  v.GetString("server.environment"),
	}
	cfg.DB = DBConfig{
		Host:     v.GetString("db.host"),
		Port:     v.GetInt("db.port"),
		User:     v.GetString("db.user"),
		Password: v.GetString("db.password"),
		Name:     v.GetString("db.name"),
		SSLMode:  v.GetString("db.sslmode"),
		MaxOpen:  v.GetInt("db.max_open"),
		MaxIdle:  v.GetInt("db.max_idle"),
	}
	cfg.S3 = S3Config{
		Region:        v.GetString("s3.region"),
		Bucket:        v.GetString("s3.bucket"),
		Endpoint:      v.GetString("s3.endpoint"),
		AccessKey:     v.GetString("s3.access_key"),
		SecretKey:     v.GetString("s3.secret_key"),
		MaxFileSizeMB: v.GetInt64("s3.max_file_size_mb"),
		PresignExpiry: v.GetInt64("s3.presign_expiry"),
	}
	cfg.Log = LogConfig{
		Level:  v.GetString("log.level"),
		Format: v.GetString("log.format"),
	}
	// Parse CORS allowed origins from comma-separated string
	var corsOrigins []string
	for _, o := range strings.Split(v.GetString("cors.allowed_origins"), ",") {
		o = strings.TrimSpace(o)
		if o != "" {
			corsOrigins = append(corsOrigins, o)
		}
	}
	cfg.CORS = CORSConfig{
		AllowedOrigins: corsOrigins,
	}

	cfg.Email = EmailConfig{
		Provider:    v.GetString("email.provider"),
		Region:      v.GetString("email.region"),
		FromAddress: v.GetString("email.from_address"),
		FromName:    v.GetString("email.from_name"),
		FrontendURL: v.GetString("email.frontend_url"),
		ReviewerTo:  v.GetString("email.reviewer_to"),
	}

	cfg.Share = ShareConfig{
		Secret: v.GetString("share.secret"),
		Issuer: v.GetString("share.issuer"),
		Expiry: v.GetDuration("share.expiry"),
	}

	cfg.Review = ReviewConfig{
		PageSize: v.GetInt("review.page_size"),
	}

	return cfg, nil
}
