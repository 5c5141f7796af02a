package config

import (
	"fmt"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

// Config holds every runtime setting the server needs. It is built once in
// main and passed down; handlers never read the environment themselves.
type Config struct {
	Port string `envconfig:"PORT" default:"8080"`

	// DatabaseURL wins over the individual DB_* fields when set.
	DatabaseURL string `envconfig:"DATABASE_URL" default:""`
	DBHost      string `envconfig:"DB_HOST" default:"localhost"`
	DBPort      string `envconfig:"DB_PORT" default:"5432"`
	DBUser      string `envconfig:"DB_USER" default:"postgres"`
	DBPassword  string `envconfig:"DB_PASSWORD" default:""`
	DBName      string `envconfig:"DB_NAME" default:"shop"`

	JWTSecret       string `envconfig:"JWT_SECRET" required:"true"`
	TokenTTLMinutes int    `envconfig:"ACCESS_TOKEN_EXPIRE_MINUTES" default:"60"`

	UploadDir string `envconfig:"UPLOAD_DIR" default:"static/images"`
	LogLevel  string `envconfig:"LOG_LEVEL" default:"info"`
}

func Load() (*Config, error) {
	_ = godotenv.Load()

	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// DSN returns the postgres connection string.
func (c *Config) DSN() string {
	if c.DatabaseURL != "" {
		return c.DatabaseURL
	}
	return fmt.Sprintf(
		"host=%s user=%s password=%s dbname=%s port=%s sslmode=disable",
		c.DBHost, c.DBUser, c.DBPassword, c.DBName, c.DBPort,
	)
}
