package config

import (
	"time"
)

// Config is the root application configuration.
type Config struct {
	Server    ServerConfig    `yaml:"server"`
	Database  DatabaseConfig  `yaml:"database"`
	Auth      AuthConfig      `yaml:"auth"`
	Campaign  CampaignConfig  `yaml:"campaign"`
	Scheduler SchedulerConfig `yaml:"scheduler"`
	Notify    NotifyConfig    `yaml:"notify"`
	Log       LogConfig       `yaml:"log"`
	CORS      CORSConfig      `yaml:"cors"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Host            string        `yaml:"host"             env:"SERVER_HOST"             env-default:"0.0.0.0"`
	Port            int           `yaml:"port"             env:"SERVER_PORT"             env-default:"8080"`
	ReadTimeout     time.Duration `yaml:"read_timeout"     env:"SERVER_READ_TIMEOUT"     env-default:"10s"`
	WriteTimeout    time.Duration `yaml:"write_timeout"    env:"SERVER_WRITE_TIMEOUT"    env-default:"30s"`
	IdleTimeout     time.Duration `yaml:"idle_timeout"     env:"SERVER_IDLE_TIMEOUT"     env-default:"60s"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout" env:"SERVER_SHUTDOWN_TIMEOUT" env-default:"10s"`
	RateLimitPerMin int           `yaml:"rate_limit_per_min" env:"SERVER_RATE_LIMIT_PER_MIN" env-default:"300"`
}

// DatabaseConfig holds PostgreSQL connection settings.
type DatabaseConfig struct {
	DSN             string        `yaml:"dsn"                env:"DATABASE_DSN"                env-required:"true"`
	MaxConns        int32         `yaml:"max_conns"          env:"DATABASE_MAX_CONNS"          env-default:"25"`
	MinConns        int32         `yaml:"min_conns"          env:"DATABASE_MIN_CONNS"          env-default:"5"`
	MaxConnLifetime time.Duration `yaml:"max_conn_lifetime"  env:"DATABASE_MAX_CONN_LIFETIME"  env-default:"1h"`
	MaxConnIdleTime time.Duration `yaml:"max_conn_idle_time" env:"DATABASE_MAX_CONN_IDLE_TIME" env-default:"30m"`
}

// AuthConfig holds JWT authentication settings.
type AuthConfig struct {
	JWTSecret      string        `yaml:"jwt_secret"       env:"AUTH_JWT_SECRET"       env-required:"true"`
	JWTIssuer      string        `yaml:"jwt_issuer"       env:"AUTH_JWT_ISSUER"       env-default:"fundmate"`
	AccessTokenTTL time.Duration `yaml:"access_token_ttl" env:"AUTH_ACCESS_TOKEN_TTL" env-default:"15m"`
}

// CampaignConfig holds campaign validation limits.
type CampaignConfig struct {
	MaxTitleLength       int    `yaml:"max_title_length"        env:"CAMPAIGN_MAX_TITLE_LENGTH"       env-default:"200"`
	MaxDescriptionLength int    `yaml:"max_description_length"  env:"CAMPAIGN_MAX_DESCRIPTION_LENGTH" env-default:"10000"`
	MaxMessageLength     int    `yaml:"max_message_length"      env:"CAMPAIGN_MAX_MESSAGE_LENGTH"     env-default:"500"`
	MinGoalAmount        string `yaml:"min_goal_amount"         env:"CAMPAIGN_MIN_GOAL_AMOUNT"        env-default:"1"`
	MaxEndDateHorizonDays int   `yaml:"max_end_date_horizon_days" env:"CAMPAIGN_MAX_END_DATE_HORIZON_DAYS" env-default:"365"`
}

// SchedulerConfig holds the two sweep cadences and the reference timezone
// used for calendar-day arithmetic.
type SchedulerConfig struct {
	Enabled          bool          `yaml:"enabled"           env:"SCHEDULER_ENABLED"           env-default:"true"`
	ReminderInterval time.Duration `yaml:"reminder_interval" env:"SCHEDULER_REMINDER_INTERVAL" env-default:"24h"`
	ExpireInterval   time.Duration `yaml:"expire_interval"   env:"SCHEDULER_EXPIRE_INTERVAL"   env-default:"1h"`
	Timezone         string        `yaml:"timezone"          env:"SCHEDULER_TIMEZONE"          env-default:"UTC"`
	SweepBatchSize   int           `yaml:"sweep_batch_size"  env:"SCHEDULER_SWEEP_BATCH_SIZE"  env-default:"500"`
}

// Notification sink names accepted by NotifyConfig.Sink.
const (
	NotifySinkInApp = "inapp"
	NotifySinkLog   = "log"
)

// NotifyConfig selects where emitted events go: the in-app notification
// store or, for environments without one, the structured log.
type NotifyConfig struct {
	Sink string `yaml:"sink" env:"NOTIFY_SINK" env-default:"inapp"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level  string `yaml:"level"  env:"LOG_LEVEL"  env-default:"info"`
	Format string `yaml:"format" env:"LOG_FORMAT" env-default:"json"`
}

// CORSConfig holds CORS settings.
type CORSConfig struct {
	AllowedOrigins   string `yaml:"allowed_origins"   env:"CORS_ALLOWED_ORIGINS"   env-default:"*"`
	AllowedMethods   string `yaml:"allowed_methods"   env:"CORS_ALLOWED_METHODS"   env-default:"GET,POST,PATCH,DELETE,OPTIONS"`
	AllowedHeaders   string `yaml:"allowed_headers"   env:"CORS_ALLOWED_HEADERS"   env-default:"Authorization,Content-Type"`
	AllowCredentials bool   `yaml:"allow_credentials" env:"CORS_ALLOW_CREDENTIALS" env-default:"true"`
	MaxAge           int    `yaml:"max_age"           env:"CORS_MAX_AGE"           env-default:"86400"`
}
