package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"
	"time"

	"github.com/folio/internal/db"
	"github.com/folio/internal/storage"
	"github.com/ilyakaznacheev/cleanenv"
	"github.com/joho/godotenv"
)

const (
	StorageLocal = "local"
	StorageS3    = "s3"

	// DevSessionSecret 只用于本地调试，release 模式下拒绝启动。
	DevSessionSecret = "folio-dev-secret"
	releaseMode      = "release"
)

// AppConfig 汇总运行服务所需的基础配置。
type AppConfig struct {
	ListenAddr string `env:"LISTEN_ADDR"`
	Port       string `env:"PORT" env-default:"8080"`
	GinMode    string `env:"GIN_MODE" env-default:"release"`

	DatabaseDriver string `env:"DATABASE_DRIVER" env-default:"sqlite"`
	DatabasePath   string `env:"DATABASE_PATH" env-default:"folio.db"`
	DatabaseURL    string `env:"DATABASE_URL"`

	SessionSecret string        `env:"SESSION_SECRET" env-default:"folio-dev-secret"`
	TokenSecret   string        `env:"TOKEN_SECRET"`
	TokenTTL      time.Duration `env:"TOKEN_TTL" env-default:"24h"`

	StorageBackend string `env:"STORAGE_BACKEND" env-default:"local"`
	UploadDir      string `env:"UPLOAD_DIR" env-default:"data/uploads"`
	UploadURLPath  string `env:"UPLOAD_URL_PATH" env-default:"/uploads"`
	S3             S3Config

	Redis RedisConfig

	SiteName    string `env:"SITE_NAME" env-default:"Folio"`
	SiteBaseURL string `env:"SITE_BASE_URL" env-default:"http://localhost:8080"`

	AdminUsername string `env:"ADMIN_USERNAME"`
	AdminPassword string `env:"ADMIN_PASSWORD"`

	LogLevel  string `env:"LOG_LEVEL" env-default:"info"`
	LogFormat string `env:"LOG_FORMAT" env-default:"text"`
}

// S3Config 对应 S3 / MinIO 对象存储。
type S3Config struct {
	Bucket          string `env:"S3_BUCKET" env-default:"folio"`
	Region          string `env:"S3_REGION" env-default:"us-east-1"`
	Endpoint        string `env:"S3_ENDPOINT"`
	AccessKeyID     string `env:"S3_ACCESS_KEY_ID"`
	SecretAccessKey string `env:"S3_SECRET_ACCESS_KEY"`
	UsePathStyle    bool   `env:"S3_USE_PATH_STYLE" env-default:"false"`
	PublicBaseURL   string `env:"S3_PUBLIC_BASE_URL"`
	CreateBucket    bool   `env:"S3_CREATE_BUCKET" env-default:"false"`
}

// RedisConfig 为空地址时登录限流关闭。
type RedisConfig struct {
	Addr            string        `env:"REDIS_ADDR"`
	Password        string        `env:"REDIS_PASSWORD"`
	LoginRateLimit  int           `env:"LOGIN_RATE_LIMIT" env-default:"10"`
	LoginRateWindow time.Duration `env:"LOGIN_RATE_WINDOW" env-default:"1m"`
}

// Load 先加载当前目录下的 .env（若存在），再从环境变量读取配置并补齐默认值。
func Load() (AppConfig, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return AppConfig{}, fmt.Errorf("load .env: %w", err)
	}
	return FromEnv()
}

// FromEnv 只读取进程环境变量，不触碰 .env 文件。
func FromEnv() (AppConfig, error) {
	var cfg AppConfig
	if err := cleanenv.ReadEnv(&cfg); err != nil {
		return AppConfig{}, fmt.Errorf("read environment: %w", err)
	}
	cfg.normalize()
	if err := cfg.Validate(); err != nil {
		return AppConfig{}, err
	}
	return cfg, nil
}

func (c *AppConfig) normalize() {
	c.Port = strings.TrimSpace(c.Port)
	if strings.TrimSpace(c.ListenAddr) == "" {
		c.ListenAddr = ":" + c.Port
	}
	c.DatabaseDriver = strings.ToLower(strings.TrimSpace(c.DatabaseDriver))
	c.StorageBackend = strings.ToLower(strings.TrimSpace(c.StorageBackend))
	if c.TokenSecret == "" {
		c.TokenSecret = c.SessionSecret
	}
	if !strings.HasPrefix(c.UploadURLPath, "/") {
		c.UploadURLPath = "/" + c.UploadURLPath
	}
	c.UploadURLPath = strings.TrimRight(c.UploadURLPath, "/")
	c.SiteBaseURL = strings.TrimRight(c.SiteBaseURL, "/")
}

// Validate 检查互相依赖的配置项。
func (c AppConfig) Validate() error {
	switch c.DatabaseDriver {
	case "sqlite":
	case "postgres":
		if c.DatabaseURL == "" {
			return errors.New("DATABASE_URL is required when DATABASE_DRIVER=postgres")
		}
	default:
		return fmt.Errorf("unsupported DATABASE_DRIVER %q", c.DatabaseDriver)
	}

	switch c.StorageBackend {
	case StorageLocal:
	case StorageS3:
		if c.S3.Bucket == "" {
			return errors.New("S3_BUCKET is required when STORAGE_BACKEND=s3")
		}
	default:
		return fmt.Errorf("unsupported STORAGE_BACKEND %q", c.StorageBackend)
	}

	if c.UploadURLPath == "" {
		return errors.New("UPLOAD_URL_PATH must not be the site root")
	}

	if strings.EqualFold(strings.TrimSpace(c.GinMode), releaseMode) {
		if weakSecret(c.SessionSecret) {
			return errors.New("SESSION_SECRET must be set to a private value when GIN_MODE=release")
		}
		if weakSecret(c.TokenSecret) {
			return errors.New("TOKEN_SECRET must be set to a private value when GIN_MODE=release")
		}
	}
	return nil
}

func weakSecret(secret string) bool {
	secret = strings.TrimSpace(secret)
	return secret == "" || secret == DevSessionSecret
}

// RateLimitEnabled 表示是否配置了 Redis 登录限流。
func (c AppConfig) RateLimitEnabled() bool {
	return strings.TrimSpace(c.Redis.Addr) != "" && c.Redis.LoginRateLimit > 0
}

// DBOptions 把数据库相关配置转换为 db.Open 的参数。
func (c AppConfig) DBOptions() db.Options {
	return db.Options{
		Driver: c.DatabaseDriver,
		Path:   c.DatabasePath,
		DSN:    c.DatabaseURL,
	}
}

// S3Options 把 S3 配置转换为存储层参数。
func (c AppConfig) S3Options() storage.S3Config {
	return storage.S3Config{
		Bucket:          c.S3.Bucket,
		Region:          c.S3.Region,
		Endpoint:        c.S3.Endpoint,
		AccessKeyID:     c.S3.AccessKeyID,
		SecretAccessKey: c.S3.SecretAccessKey,
		UsePathStyle:    c.S3.UsePathStyle,
		PublicBaseURL:   c.S3.PublicBaseURL,
		CreateBucket:    c.S3.CreateBucket,
	}
}
