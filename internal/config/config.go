package config

import (
	"fmt"
	"os"
	"time"

	"github.com/caarlos0/env/v6"
	"github.com/joho/godotenv"
)

// Config хранит все конфигурационные параметры приложения.
type Config struct {
	DatabaseURL    string        `env:"DATABASE_URL,required"`
	ServerPort     string        `env:"SERVER_PORT"`
	RequestTimeout time.Duration `env:"REQUEST_TIMEOUT" envDefault:"30s"`

	LogLevel  string `env:"LOG_LEVEL" envDefault:"info"`
	LogFormat string `env:"LOG_FORMAT" envDefault:"json"`

	// Без ключа поиск недоступен, лента работает только из кэша
	PexelsAPIKey  string `env:"PEXELS_API_KEY"`
	PexelsBaseURL string `env:"PEXELS_BASE_URL" envDefault:"https://api.pexels.com/v1"`

	Auth struct {
		JWTSecret   string `env:"JWT_SECRET"`
		JWTIssuer   string `env:"JWT_ISSUER" envDefault:"paapimg"`
		JWTAudience string `env:"JWT_AUDIENCE" envDefault:"paapimg-web"`
	}

	SessionIdleTTL time.Duration `env:"SESSION_IDLE_TTL" envDefault:"30m"`

	// Настройки для MinIO. Пустой endpoint отключает архив манифестов
	MinioEndpoint        string `env:"MINIO_ENDPOINT"`
	MinioAccessKeyID     string `env:"MINIO_ACCESS_KEY_ID"`
	MinioSecretAccessKey string `env:"MINIO_SECRET_ACCESS_KEY"`
	MinioUseSSL          bool   `env:"MINIO_USE_SSL"`
	MinioBucketName      string `env:"MINIO_BUCKET_NAME" envDefault:"image-cache"`
	MinioRegion          string `env:"MINIO_REGION" envDefault:"us-east-1"`

	RabbitMQ struct {
		RabbitMQURL       string `env:"RABBITMQ_URL"`
		RabbitMQQueueName string `env:"RABBITMQ_QUEUE_NAME" envDefault:"image_cache_refill"`
	}

	Refill struct {
		Quota    int           `env:"REFILL_QUOTA" envDefault:"1000"`
		PageSize int           `env:"REFILL_PAGE_SIZE" envDefault:"80"`
		Interval time.Duration `env:"REFILL_INTERVAL" envDefault:"24h"`
	}
}

// LoadConfig загружает конфигурацию из переменных окружения.
// В режиме разработки пытается загрузить .env файл.
func LoadConfig() (*Config, error) {
	if _, err := os.Stat(".env"); !os.IsNotExist(err) {
		if err := godotenv.Load(); err != nil {
			return nil, fmt.Errorf("ошибка загрузки .env файла: %w", err)
		}
	}

	cfg := Config{}
	if err := env.Parse(&cfg); err != nil {
		return nil, fmt.Errorf("ошибка парсинга конфигурации из окружения: %w", err)
	}

	if cfg.ServerPort == "" {
		cfg.ServerPort = "8080"
	}
	if cfg.Refill.Quota <= 0 {
		return nil, fmt.Errorf("REFILL_QUOTA must be positive, got %d", cfg.Refill.Quota)
	}
	if cfg.Refill.PageSize <= 0 || cfg.Refill.PageSize > 80 {
		// Pexels отдаёт не больше 80 фото на страницу
		cfg.Refill.PageSize = 80
	}

	return &cfg, nil
}

// ArchiveEnabled сообщает, настроено ли S3-хранилище для манифестов
func (c *Config) ArchiveEnabled() bool {
	return c.MinioEndpoint != "" && c.MinioAccessKeyID != "" && c.MinioSecretAccessKey != ""
}
