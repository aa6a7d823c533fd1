package config

import (
	"context"
	"fmt"

	"github.com/sethvargo/go-envconfig"
)

type Config struct {
	Port      string `env:"PORT,      default=8080"`
	Env       string `env:"ENV,       default=development"`
	JWTSecret string `env:"JWT_SECRET"`
	LogLevel  string `env:"LOG_LEVEL, default=info"`

	Admin  AdminConfig
	Mongo  MongoConfig
	Redis  RedisConfig
	Upload UploadConfig
}

type AdminConfig struct {
	Email    string `env:"ADMIN_EMAIL"`
	Password string `env:"ADMIN_PASSWORD"`
}

type MongoConfig struct {
	URI      string `env:"MONGO_URI, default=mongodb://localhost:27017"`
	Database string `env:"MONGO_DB,  default=marketplace"`
}

type RedisConfig struct {
	Addr string `env:"REDIS_ADDR, default=localhost:6379"`
	DB   int    `env:"REDIS_DB,   default=0"`
}

type UploadConfig struct {
	// TempDir is where multipart attachments are staged before encoding.
	// Empty means the OS temp directory.
	TempDir string `env:"UPLOAD_TEMP_DIR"`
	// MaxAttachmentBytes caps a single attachment's size. 0 leaves size
	// unbounded (large encodes are logged, never truncated).
	MaxAttachmentBytes int64 `env:"UPLOAD_MAX_ATTACHMENT_BYTES, default=0"`
}

// Load reads configuration from environment variables using go-envconfig.
func Load() *Config {
	var cfg Config
	if err := envconfig.Process(context.Background(), &cfg); err != nil {
		panic(fmt.Sprintf("config: failed to load configuration: %v", err))
	}
	return &cfg
}
