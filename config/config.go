package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/pkg/errors"
	"github.com/spyne-social/api-go/utils/log"
)

const (
	DevEnv  = "dev"
	ProdEnv = "prod"
)

type Config struct {
	Env      string
	Port     string
	Database DatabaseConfig
	Auth     AuthConfig
	Likes    LikePolicy
	Storage  StorageConfig

	CORSAllowedOrigins []string
	ShutdownTimeout    time.Duration
}

type DatabaseConfig struct {
	URL      string
	Host     string
	User     string
	Password string
	Name     string
	Port     string
	Debug    bool
}

type AuthConfig struct {
	JWTSecret       string
	AccessTokenTTL  time.Duration
	RefreshTokenTTL time.Duration
}

// LikePolicy decides which like kinds reject a second like by the same user.
// Discussion likes are always unique; comment likes are unique only when
// CommentLikeUnique is set.
type LikePolicy struct {
	CommentLikeUnique bool
}

// Load reads configuration from the environment, after merging any .env file
// found in the working directory.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		log.Log.Info("no .env file found, reading configuration from the environment")
	}

	cfg := &Config{
		Env:  getEnv("APP_ENV", DevEnv),
		Port: getEnv("PORT", "8080"),
		Database: DatabaseConfig{
			URL:      os.Getenv("DATABASE_URL"),
			Host:     getEnv("DB_HOST", "localhost"),
			User:     getEnv("DB_USER", "postgres"),
			Password: os.Getenv("DB_PASSWORD"),
			Name:     getEnv("DB_NAME", "spyne"),
			Port:     getEnv("DB_PORT", "5432"),
		},
		Auth: AuthConfig{
			JWTSecret: os.Getenv("JWT_SECRET"),
		},
		Storage:            loadStorageConfig(),
		CORSAllowedOrigins: splitList(getEnv("CORS_ALLOWED_ORIGINS", "*")),
	}

	var err error
	if cfg.Database.Debug, err = getBool("DB_DEBUG", false); err != nil {
		return nil, err
	}
	if cfg.Likes.CommentLikeUnique, err = getBool("COMMENT_LIKE_UNIQUE", false); err != nil {
		return nil, err
	}
	if cfg.Auth.AccessTokenTTL, err = getDuration("ACCESS_TOKEN_TTL", 5*time.Minute); err != nil {
		return nil, err
	}
	if cfg.Auth.RefreshTokenTTL, err = getDuration("REFRESH_TOKEN_TTL", 24*time.Hour); err != nil {
		return nil, err
	}
	if cfg.ShutdownTimeout, err = getDuration("SHUTDOWN_TIMEOUT", 10*time.Second); err != nil {
		return nil, err
	}
	if cfg.Storage.MaxImageSize, err = getInt64("MAX_IMAGE_SIZE", 10*1024*1024); err != nil {
		return nil, err
	}

	if cfg.Auth.JWTSecret == "" {
		if cfg.Env != DevEnv {
			return nil, errors.New("JWT_SECRET must be set outside the dev environment")
		}
		cfg.Auth.JWTSecret = "dev_secret_change_me"
		log.Log.Warn("JWT_SECRET not set, using the development secret")
	}
	return cfg, nil
}

func getEnv(key, fallback string) string {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		return v
	}
	return fallback
}

func getBool(key string, fallback bool) (bool, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return false, errors.Wrapf(err, "parse %s", key)
	}
	return b, nil
}

func getDuration(key string, fallback time.Duration) (time.Duration, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return 0, errors.Wrapf(err, "parse %s", key)
	}
	return d, nil
}

func getInt64(key string, fallback int64) (int64, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	n, err := strconv.ParseInt(v, 10, 64)
	if err != nil {
		return 0, errors.Wrapf(err, "parse %s", key)
	}
	return n, nil
}

func splitList(v string) []string {
	var out []string
	for _, item := range strings.Split(v, ",") {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	return out
}
