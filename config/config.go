package config

import (
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/caarlos0/env/v6"
	"github.com/joho/godotenv"
)

var Cfg Config

type Config struct {
	// 服务配置
	ServerPort  string `env:"SERVER_PORT" envDefault:"8888"`
	ServerHost  string `env:"SERVER_HOST" envDefault:"0.0.0.0"`
	Environment string `env:"ENVIRONMENT" envDefault:"development"` // development, staging, production
	ServiceName string `env:"SERVICE_NAME" envDefault:"skibuddy"`

	// PostgreSQL 配置
	PostgreSQLHost     string `env:"POSTGRESQL_HOST" envDefault:"localhost"`
	PostgreSQLPort     string `env:"POSTGRESQL_PORT" envDefault:"5432"`
	PostgreSQLUser     string `env:"POSTGRESQL_USER" envDefault:"postgres"`
	PostgreSQLPassword string `env:"POSTGRESQL_PASSWORD" envDefault:"postgres"`
	PostgreSQLDatabase string `env:"POSTGRESQL_DATABASE" envDefault:"skibuddy"`
	PostgreSQLSchema   string `env:"POSTGRESQL_SCHEMA" envDefault:"public"`
	PostgreSQLSSLMode  string `env:"POSTGRESQL_SSLMODE" envDefault:"disable"`
	PostgreSQLMaxIdle  int    `env:"POSTGRESQL_MAX_IDLE" envDefault:"30"`
	PostgreSQLMaxOpen  int    `env:"POSTGRESQL_MAX_OPEN" envDefault:"200"`
	// 只读副本 DSN，逗号分隔，为空时不启用读写分离
	PostgreSQLReplicaDSNs []string `env:"POSTGRESQL_REPLICA_DSNS" envSeparator:","`

	// Redis 配置
	RedisAddr     string `env:"REDIS_ADDR" envDefault:"localhost:6379"`
	RedisPassword string `env:"REDIS_PASSWORD" envDefault:""`
	RedisDB       int    `env:"REDIS_DB" envDefault:"0"`
	RedisPrefix   string `env:"REDIS_PREFIX" envDefault:"skib"`

	// RabbitMQ 配置
	RabbitMQAddr     string `env:"RABBITMQ_ADDR" envDefault:"localhost"`
	RabbitMQPort     string `env:"RABBITMQ_PORT" envDefault:"5672"`
	RabbitMQUsername string `env:"RABBITMQ_USERNAME" envDefault:"guest"`
	RabbitMQPassword string `env:"RABBITMQ_PASSWORD" envDefault:"guest"`
	RabbitMQVhost    string `env:"RABBITMQ_VHOST" envDefault:"/"`

	// JWT 配置
	JWTSecret        string `env:"JWT_SECRET"` // 必填，用于签名 JWT
	JWTExpireMinutes int    `env:"JWT_EXPIRE_MINUTES" envDefault:"30"`
	JWTRefreshDays   int    `env:"JWT_REFRESH_DAYS" envDefault:"7"`

	// 对象存储（MinIO / S3 兼容）
	ObjectStorageEndpoint      string `env:"OBJECT_STORAGE_ENDPOINT" envDefault:"localhost:9000"`
	ObjectStorageAccessKey     string `env:"OBJECT_STORAGE_ACCESS_KEY"`
	ObjectStorageSecretKey     string `env:"OBJECT_STORAGE_SECRET_KEY"`
	ObjectStorageBucket        string `env:"OBJECT_STORAGE_BUCKET" envDefault:"profile-photos"` // S3 桶名不允许下划线
	ObjectStorageUseSSL        bool   `env:"OBJECT_STORAGE_USE_SSL" envDefault:"false"`
	ObjectStorageRegion        string `env:"OBJECT_STORAGE_REGION" envDefault:"us-east-1"`
	ObjectStoragePublicBaseURL string `env:"OBJECT_STORAGE_PUBLIC_BASE_URL" envDefault:"http://localhost:9000"`

	// Snowflake ID 生成器配置
	SnowflakeMachineID  int64 `env:"SNOWFLAKE_MACHINE_ID" envDefault:"1"`
	SnowflakeDataCenter int64 `env:"SNOWFLAKE_DATACENTER_ID" envDefault:"1"`

	// 日志配置
	LoggerLevel      string `env:"LOGGER_LEVEL" envDefault:"INFO"`
	LoggerFormat     string `env:"LOGGER_FORMAT" envDefault:"text"` // json, text
	LoggerOutputPath string `env:"LOGGER_OUTPUT_PATH" envDefault:"stdout"`

	// 链路追踪 / 指标
	OTelEnabled     bool    `env:"OTEL_ENABLED" envDefault:"false"`
	OTelEndpoint    string  `env:"OTEL_EXPORTER_OTLP_ENDPOINT" envDefault:"localhost:4317"`
	OTelSampleRatio float64 `env:"OTEL_SAMPLE_RATIO" envDefault:"1.0"`

	// 速率限制配置, 配置在中间件内
	RateLimitEnabled bool `env:"RATE_LIMIT_ENABLED" envDefault:"true"`
	RateLimitRPS     int  `env:"RATE_LIMIT_RPS" envDefault:"100"` // 每秒请求数

	// 引导流程
	OnboardingDraftTTL      time.Duration `env:"ONBOARDING_DRAFT_TTL" envDefault:"24h"`
	OnboardingSubmitLockTTL time.Duration `env:"ONBOARDING_SUBMIT_LOCK_TTL" envDefault:"2m"`
	PhotoMaxBytes           int64         `env:"PHOTO_MAX_BYTES" envDefault:"10485760"` // 10 MiB
}

func init() {
	if err := godotenv.Load(); err != nil {
		log.Printf("WARN: Cannot load .env file: %v, using environment variables", err)
	}

	Cfg = Config{}
	if err := env.Parse(&Cfg); err != nil {
		log.Fatalf("Failed to parse environment variables: %v", err)
	}
}

// Validate 检查启动必需的配置，由 cmd 下的入口调用
func Validate() error {
	var errs []error
	if Cfg.JWTSecret == "" {
		errs = append(errs, errors.New("JWT_SECRET is required"))
	}
	if Cfg.ObjectStorageBucket == "" {
		errs = append(errs, errors.New("OBJECT_STORAGE_BUCKET is required"))
	}
	if Cfg.PhotoMaxBytes <= 0 {
		errs = append(errs, fmt.Errorf("PHOTO_MAX_BYTES must be positive, got %d", Cfg.PhotoMaxBytes))
	}
	if Cfg.OnboardingDraftTTL <= 0 {
		errs = append(errs, fmt.Errorf("ONBOARDING_DRAFT_TTL must be positive, got %s", Cfg.OnboardingDraftTTL))
	}

	if Cfg.ObjectStorageAccessKey == "" {
		log.Printf("WARN: OBJECT_STORAGE_ACCESS_KEY is not set, photo upload will not work")
	}
	return errors.Join(errs...)
}

func (c *Config) GetDSN() string {
	return "host=" + c.PostgreSQLHost +
		" port=" + c.PostgreSQLPort +
		" user=" + c.PostgreSQLUser +
		" password=" + c.PostgreSQLPassword +
		" dbname=" + c.PostgreSQLDatabase +
		" sslmode=" + c.PostgreSQLSSLMode +
		" search_path=" + c.PostgreSQLSchema
}

func (c *Config) GetRabbitMQURL() string {
	return "amqp://" + c.RabbitMQUsername + ":" + c.RabbitMQPassword + "@" + c.RabbitMQAddr + ":" + c.RabbitMQPort + c.RabbitMQVhost
}

func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}

func (c *Config) IsDevelopment() bool {
	return c.Environment == "development"
}
