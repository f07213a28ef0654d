package config

import (
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
	"github.com/spf13/viper"
)

type Config struct {
	App       AppConfig
	Database  DatabaseConfig
	JWT       JWTConfig
	CORS      CORSConfig
	RateLimit RateLimitConfig
	Email     EmailConfig
	SMS       SMSConfig
	AWS       AWSConfig
	Notify    NotifyConfig
	Storage   StorageConfig
	Log       LogConfig
	Districts DistrictsConfig
	Admin     AdminConfig
}

type AppConfig struct {
	Name    string
	Env     string
	Port    string
	Debug   bool
	BaseURL string
}

type DatabaseConfig struct {
	Host     string
	Port     string
	Name     string
	User     string
	Password string
	SSLMode  string
	Timezone string
	MaxIdle  int
	MaxOpen  int
}

type JWTConfig struct {
	Secret             string
	ExpiryHours        time.Duration
	RefreshExpiryHours time.Duration
}

type CORSConfig struct {
	AllowedOrigins []string
	AllowedMethods []string
	AllowedHeaders []string
}

type RateLimitConfig struct {
	Requests int
	Duration int
}

// EmailConfig selects the email backend: smtp, ses or log.
type EmailConfig struct {
	Provider        string
	SMTPHost        string
	SMTPPort        int
	SMTPUsername    string
	SMTPPassword    string
	FromName        string
	FromEmail       string
	AdminRecipients []string
}

// SMSConfig selects the SMS backend: cloudsms, bulksms, sns or log.
type SMSConfig struct {
	Provider        string
	CloudSMSAPIKey  string
	CloudSMSURL     string
	BulkSMSAPIKey   string
	BulkSMSURL      string
	BulkSMSSenderID string
}

type AWSConfig struct {
	Region string
}

// NotifyConfig selects the notification queue: memory or redis.
type NotifyConfig struct {
	Queue    string
	Workers  int
	Buffer   int
	RedisURL string
	RedisKey string
}

// StorageConfig selects the upload backend: transfer or s3.
type StorageConfig struct {
	Provider          string
	TransferURL       string
	TransferAPIKey    string
	TransferPath      string
	S3Bucket          string
	S3Prefix          string
	MaxUploadSize     int64
	CompressThreshold int64
}

type LogConfig struct {
	Level  string
	Format string
}

type DistrictsConfig struct {
	File string
}

// AdminConfig seeds the first administrator on migrate.
type AdminConfig struct {
	Username string
	Email    string
	Password string
}

func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Warn().Err(err).Msg(".env file not found, using environment variables")
	}
	viper.AutomaticEnv()

	setDefaults()

	return &Config{
		App: AppConfig{
			Name:    viper.GetString("APP_NAME"),
			Env:     viper.GetString("APP_ENV"),
			Port:    viper.GetString("APP_PORT"),
			Debug:   viper.GetBool("APP_DEBUG"),
			BaseURL: viper.GetString("APP_BASE_URL"),
		},
		Database: DatabaseConfig{
			Host:     viper.GetString("DB_HOST"),
			Port:     viper.GetString("DB_PORT"),
			Name:     viper.GetString("DB_NAME"),
			User:     viper.GetString("DB_USER"),
			Password: viper.GetString("DB_PASSWORD"),
			SSLMode:  viper.GetString("DB_SSL_MODE"),
			Timezone: viper.GetString("DB_TIMEZONE"),
			MaxIdle:  viper.GetInt("DB_MAX_IDLE_CONNS"),
			MaxOpen:  viper.GetInt("DB_MAX_OPEN_CONNS"),
		},
		JWT: JWTConfig{
			Secret:             viper.GetString("JWT_SECRET"),
			ExpiryHours:        time.Duration(viper.GetInt("JWT_EXPIRY_HOURS")) * time.Hour,
			RefreshExpiryHours: time.Duration(viper.GetInt("JWT_REFRESH_EXPIRY_HOURS")) * time.Hour,
		},
		CORS: CORSConfig{
			AllowedOrigins: stringSlice("CORS_ALLOWED_ORIGINS"),
			AllowedMethods: stringSlice("CORS_ALLOWED_METHODS"),
			AllowedHeaders: stringSlice("CORS_ALLOWED_HEADERS"),
		},
		RateLimit: RateLimitConfig{
			Requests: viper.GetInt("RATE_LIMIT_REQUESTS"),
			Duration: viper.GetInt("RATE_LIMIT_DURATION"),
		},
		Email: EmailConfig{
			Provider:        strings.ToLower(viper.GetString("EMAIL_PROVIDER")),
			SMTPHost:        viper.GetString("SMTP_HOST"),
			SMTPPort:        viper.GetInt("SMTP_PORT"),
			SMTPUsername:    viper.GetString("SMTP_USERNAME"),
			SMTPPassword:    viper.GetString("SMTP_PASSWORD"),
			FromName:        viper.GetString("EMAIL_FROM_NAME"),
			FromEmail:       viper.GetString("EMAIL_FROM_ADDRESS"),
			AdminRecipients: stringSlice("EMAIL_ADMIN_RECIPIENTS"),
		},
		SMS: SMSConfig{
			Provider:        strings.ToLower(viper.GetString("SMS_PROVIDER")),
			CloudSMSAPIKey:  viper.GetString("CLOUDSMS_API_KEY"),
			CloudSMSURL:     viper.GetString("CLOUDSMS_URL"),
			BulkSMSAPIKey:   viper.GetString("BULKSMS_API_KEY"),
			BulkSMSURL:      viper.GetString("BULKSMS_URL"),
			BulkSMSSenderID: viper.GetString("BULKSMS_SENDER_ID"),
		},
		AWS: AWSConfig{
			Region: viper.GetString("AWS_REGION"),
		},
		Notify: NotifyConfig{
			Queue:    strings.ToLower(viper.GetString("NOTIFY_QUEUE")),
			Workers:  viper.GetInt("NOTIFY_WORKERS"),
			Buffer:   viper.GetInt("NOTIFY_BUFFER"),
			RedisURL: viper.GetString("NOTIFY_REDIS_URL"),
			RedisKey: viper.GetString("NOTIFY_REDIS_KEY"),
		},
		Storage: StorageConfig{
			Provider:          strings.ToLower(viper.GetString("STORAGE_PROVIDER")),
			TransferURL:       viper.GetString("TRANSFER_URL"),
			TransferAPIKey:    viper.GetString("TRANSFER_API_KEY"),
			TransferPath:      viper.GetString("TRANSFER_PATH"),
			S3Bucket:          viper.GetString("S3_BUCKET"),
			S3Prefix:          viper.GetString("S3_PREFIX"),
			MaxUploadSize:     viper.GetInt64("UPLOAD_MAX_SIZE"),
			CompressThreshold: viper.GetInt64("UPLOAD_COMPRESS_THRESHOLD"),
		},
		Log: LogConfig{
			Level:  viper.GetString("LOG_LEVEL"),
			Format: viper.GetString("LOG_FORMAT"),
		},
		Districts: DistrictsConfig{
			File: viper.GetString("DISTRICTS_FILE"),
		},
		Admin: AdminConfig{
			Username: viper.GetString("ADMIN_USERNAME"),
			Email:    viper.GetString("ADMIN_EMAIL"),
			Password: viper.GetString("ADMIN_PASSWORD"),
		},
	}
}

func setDefaults() {
	viper.SetDefault("APP_NAME", "xylem-api")
	viper.SetDefault("APP_ENV", "development")
	viper.SetDefault("APP_PORT", "8080")
	viper.SetDefault("APP_DEBUG", true)
	viper.SetDefault("DB_HOST", "localhost")
	viper.SetDefault("DB_PORT", "5432")
	viper.SetDefault("DB_NAME", "xylem")
	viper.SetDefault("DB_USER", "postgres")
	viper.SetDefault("DB_PASSWORD", "postgres")
	viper.SetDefault("DB_SSL_MODE", "disable")
	viper.SetDefault("DB_TIMEZONE", "Asia/Dhaka")
	viper.SetDefault("DB_MAX_IDLE_CONNS", 10)
	viper.SetDefault("DB_MAX_OPEN_CONNS", 100)
	viper.SetDefault("JWT_SECRET", "change-this-secret-in-production")
	viper.SetDefault("JWT_EXPIRY_HOURS", 24)
	viper.SetDefault("JWT_REFRESH_EXPIRY_HOURS", 168)
	viper.SetDefault("CORS_ALLOWED_ORIGINS", "http://localhost:3000")
	viper.SetDefault("RATE_LIMIT_REQUESTS", 100)
	viper.SetDefault("RATE_LIMIT_DURATION", 60)
	viper.SetDefault("EMAIL_PROVIDER", "log")
	viper.SetDefault("SMTP_PORT", 587)
	viper.SetDefault("EMAIL_FROM_NAME", "Xylem")
	viper.SetDefault("EMAIL_FROM_ADDRESS", "noreply@xylem.local")
	viper.SetDefault("SMS_PROVIDER", "log")
	viper.SetDefault("BULKSMS_SENDER_ID", "8809617613088")
	viper.SetDefault("AWS_REGION", "ap-south-1")
	viper.SetDefault("NOTIFY_QUEUE", "memory")
	viper.SetDefault("NOTIFY_WORKERS", 4)
	viper.SetDefault("NOTIFY_BUFFER", 1024)
	viper.SetDefault("NOTIFY_REDIS_KEY", "xylem:notifications")
	viper.SetDefault("STORAGE_PROVIDER", "transfer")
	viper.SetDefault("TRANSFER_URL", "https://transfer.ongshak.com/upload/")
	viper.SetDefault("TRANSFER_PATH", "xylem")
	viper.SetDefault("S3_PREFIX", "uploads")
	viper.SetDefault("UPLOAD_MAX_SIZE", 20<<20)
	viper.SetDefault("UPLOAD_COMPRESS_THRESHOLD", 2<<20)
	viper.SetDefault("LOG_LEVEL", "info")
	viper.SetDefault("LOG_FORMAT", "json")
}

// stringSlice reads a comma separated env value. viper only splits on
// whitespace for plain strings.
func stringSlice(key string) []string {
	raw := viper.GetString(key)
	if raw == "" {
		return nil
	}
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

func (c *DatabaseConfig) DSN() string {
	return "host=" + c.Host +
		" user=" + c.User +
		" password=" + c.Password +
		" dbname=" + c.Name +
		" port=" + c.Port +
		" sslmode=" + c.SSLMode +
		" TimeZone=" + c.Timezone
}

func (c *AppConfig) IsProduction() bool {
	return c.Env == "production"
}
