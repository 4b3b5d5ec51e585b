package config

import (
	"errors"
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
	Env         string
	Port        int
	APIPrefix   string
	FrontendURL string

	Database  DatabaseConfig
	Redis     RedisConfig
	JWT       JWTConfig
	Reset     ResetConfig
	Mail      MailConfig
	CORS      CORSConfig
	Log       LogConfig
	Dashboard DashboardConfig
	Quiz      QuizConfig
	Content   ContentConfig
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
	Secret     string
	Expiration time.Duration
}

// ResetConfig governs the password-reset token lifecycle.
type ResetConfig struct {
	TokenTTL time.Duration
}

// MailConfig configures the reset-email dispatch chain. Resend is tried
// first when an API key is present, SMTP second when host and user are set.
type MailConfig struct {
	FromName     string
	FromAddress  string
	ResendAPIKey string
	SMTPHost     string
	SMTPPort     int
	SMTPUser     string
	SMTPPassword string
	QueueWorkers int
}

type CORSConfig struct {
	AllowedOrigins []string
}

type LogConfig struct {
	Level  string
	Format string
}

// DashboardConfig tunes caching for the student dashboard.
type DashboardConfig struct {
	CacheTTL time.Duration
}

// QuizConfig tunes adaptive difficulty selection.
type QuizConfig struct {
	MasteryWindow int
}

// ContentConfig controls uploaded learning material storage.
type ContentConfig struct {
	StorageDir       string
	SignedURLSecret  string
	SignedURLTTL     time.Duration
	MaxFileSizeBytes int64
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
	cfg.FrontendURL = strings.TrimRight(v.GetString("FRONTEND_URL"), "/")

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
		Secret:     v.GetString("JWT_SECRET"),
		Expiration: parseDuration(v.GetString("JWT_EXPIRATION"), 24*time.Hour),
	}

	cfg.Reset = ResetConfig{
		TokenTTL: parseDuration(v.GetString("RESET_TOKEN_TTL"), 30*time.Minute),
	}

	cfg.Mail = MailConfig{
		FromName:     v.GetString("EMAIL_FROM_NAME"),
		FromAddress:  v.GetString("EMAIL_FROM_ADDRESS"),
		ResendAPIKey: v.GetString("RESEND_API_KEY"),
		SMTPHost:     v.GetString("EMAIL_HOST"),
		SMTPPort:     v.GetInt("EMAIL_PORT"),
		SMTPUser:     v.GetString("EMAIL_USER"),
		SMTPPassword: v.GetString("EMAIL_PASS"),
		QueueWorkers: v.GetInt("EMAIL_QUEUE_WORKERS"),
	}

	cfg.CORS = CORSConfig{AllowedOrigins: splitAndTrim(v.GetString("ALLOWED_ORIGINS"))}

	cfg.Log = LogConfig{
		Level:  v.GetString("LOG_LEVEL"),
		Format: v.GetString("LOG_FORMAT"),
	}

	cfg.Dashboard = DashboardConfig{
		CacheTTL: parseDuration(v.GetString("DASHBOARD_CACHE_TTL"), 5*time.Minute),
	}

	cfg.Quiz = QuizConfig{
		MasteryWindow: v.GetInt("QUIZ_MASTERY_WINDOW"),
	}

	maxUploadSize := v.GetInt64("CONTENT_MAX_FILE_SIZE")
	if maxUploadSize <= 0 {
		maxUploadSize = 10 * 1024 * 1024
	}
	cfg.Content = ContentConfig{
		StorageDir:       v.GetString("CONTENT_STORAGE_DIR"),
		SignedURLSecret:  v.GetString("CONTENT_SIGNED_URL_SECRET"),
		SignedURLTTL:     parseDuration(v.GetString("CONTENT_SIGNED_URL_TTL"), 30*time.Minute),
		MaxFileSizeBytes: maxUploadSize,
	}

	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("ENV", EnvDevelopment)
	v.SetDefault("PORT", 5000)
	v.SetDefault("API_PREFIX", "/api")
	v.SetDefault("FRONTEND_URL", "http://localhost:3000")

	v.SetDefault("DB_HOST", "localhost")
	v.SetDefault("DB_PORT", 5432)
	v.SetDefault("DB_USER", "postgres")
	v.SetDefault("DB_PASSWORD", "postgres")
	v.SetDefault("DB_NAME", "neurolearn")
	v.SetDefault("DB_SSL_MODE", "disable")
	v.SetDefault("DB_MAX_OPEN_CONNS", 10)
	v.SetDefault("DB_MAX_IDLE_CONNS", 5)

	v.SetDefault("REDIS_HOST", "localhost")
	v.SetDefault("REDIS_PORT", 6379)
	v.SetDefault("REDIS_PASSWORD", "")
	v.SetDefault("REDIS_DB", 0)

	v.SetDefault("JWT_SECRET", "dev_secret")
	v.SetDefault("JWT_EXPIRATION", "24h")
	v.SetDefault("RESET_TOKEN_TTL", "30m")

	v.SetDefault("EMAIL_FROM_NAME", "NeuroLearn")
	v.SetDefault("EMAIL_FROM_ADDRESS", "")
	v.SetDefault("RESEND_API_KEY", "")
	v.SetDefault("EMAIL_HOST", "")
	v.SetDefault("EMAIL_PORT", 587)
	v.SetDefault("EMAIL_USER", "")
	v.SetDefault("EMAIL_PASS", "")
	v.SetDefault("EMAIL_QUEUE_WORKERS", 2)

	v.SetDefault("ALLOWED_ORIGINS", "")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("LOG_FORMAT", "json")

	v.SetDefault("DASHBOARD_CACHE_TTL", "5m")
	v.SetDefault("QUIZ_MASTERY_WINDOW", 20)

	v.SetDefault("CONTENT_STORAGE_DIR", "./uploads")
	v.SetDefault("CONTENT_SIGNED_URL_SECRET", "dev_content_secret")
	v.SetDefault("CONTENT_SIGNED_URL_TTL", "30m")
	v.SetDefault("CONTENT_MAX_FILE_SIZE", 10*1024*1024)
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
