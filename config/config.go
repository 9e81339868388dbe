package config

import (
	"errors"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	App   AppConfig
	DB    DBConfig
	Redis RedisConfig
	JWT   JWTConfig
	Rate  RateConfig
}

type AppConfig struct {
	Port       string
	Env        string
	CORSOrigin string
}

type DBConfig struct {
	Driver   string
	Host     string
	Port     string
	User     string
	Password string
	Name     string
	Path     string
}

type RedisConfig struct {
	Host     string
	Port     string
	Password string
	DB       int
	TTL      time.Duration
}

type JWTConfig struct {
	Secret       string
	AccessExpiry time.Duration
	Required     bool
}

type RateConfig struct {
	RPS   float64
	Burst int
}

// ClientConfig drives directoryctl. The two base URLs select the generic
// API gateway and the resource server respectively.
type ClientConfig struct {
	APIBaseURL       string
	ResourcesBaseURL string
	TokenFile        string
	Timeout          time.Duration
	Headless         bool
	JWT              JWTConfig
}

func LoadConfig() (*Config, error) {
	viper.SetConfigFile(".env")
	viper.AutomaticEnv()

	viper.SetDefault("APP_PORT", "3001")
	viper.SetDefault("APP_ENV", "development")
	viper.SetDefault("DB_DRIVER", "postgres")
	viper.SetDefault("DB_PATH", "data/directory.db")
	viper.SetDefault("REDIS_PORT", "6379")
	viper.SetDefault("RATE_LIMIT_RPS", 50)
	viper.SetDefault("RATE_LIMIT_BURST", 100)

	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) && !os.IsNotExist(err) {
			return nil, err
		}
	}

	accessExpiry, err := time.ParseDuration(viper.GetString("JWT_ACCESS_EXPIRY"))
	if err != nil {
		accessExpiry = 24 * time.Hour
	}

	cacheTTL, err := time.ParseDuration(viper.GetString("CATALOG_CACHE_TTL"))
	if err != nil {
		cacheTTL = 5 * time.Minute
	}

	config := &Config{
		App: AppConfig{
			Port:       viper.GetString("APP_PORT"),
			Env:        viper.GetString("APP_ENV"),
			CORSOrigin: viper.GetString("CORS_ALLOW_ORIGIN"),
		},
		DB: DBConfig{
			Driver:   viper.GetString("DB_DRIVER"),
			Host:     viper.GetString("DB_HOST"),
			Port:     viper.GetString("DB_PORT"),
			User:     viper.GetString("DB_USER"),
			Password: viper.GetString("DB_PASSWORD"),
			Name:     viper.GetString("DB_NAME"),
			Path:     viper.GetString("DB_PATH"),
		},
		Redis: RedisConfig{
			Host:     viper.GetString("REDIS_HOST"),
			Port:     viper.GetString("REDIS_PORT"),
			Password: viper.GetString("REDIS_PASSWORD"),
			DB:       viper.GetInt("REDIS_DB"),
			TTL:      cacheTTL,
		},
		JWT: JWTConfig{
			Secret:       viper.GetString("JWT_SECRET"),
			AccessExpiry: accessExpiry,
			Required:     viper.GetBool("AUTH_REQUIRED"),
		},
		Rate: RateConfig{
			RPS:   viper.GetFloat64("RATE_LIMIT_RPS"),
			Burst: viper.GetInt("RATE_LIMIT_BURST"),
		},
	}

	return config, nil
}

// LoadClientConfig reads the client settings. A missing .env file is not
// an error.
func LoadClientConfig() (*ClientConfig, error) {
	v := viper.New()
	v.SetConfigFile(".env")
	v.AutomaticEnv()

	v.SetDefault("API_BASE_URL", "http://localhost:8080/api/v1/")
	v.SetDefault("RESOURCES_BASE_URL", "http://localhost:3001/")
	v.SetDefault("HTTP_TIMEOUT", "15s")
	v.SetDefault("TOKEN_FILE", defaultTokenFile())

	_ = v.ReadInConfig()

	timeout, err := time.ParseDuration(v.GetString("HTTP_TIMEOUT"))
	if err != nil {
		timeout = 15 * time.Second
	}

	accessExpiry, err := time.ParseDuration(v.GetString("JWT_ACCESS_EXPIRY"))
	if err != nil {
		accessExpiry = 24 * time.Hour
	}

	return &ClientConfig{
		APIBaseURL:       v.GetString("API_BASE_URL"),
		ResourcesBaseURL: v.GetString("RESOURCES_BASE_URL"),
		TokenFile:        v.GetString("TOKEN_FILE"),
		Timeout:          timeout,
		Headless:         v.GetBool("HEADLESS"),
		JWT: JWTConfig{
			Secret:       v.GetString("JWT_SECRET"),
			AccessExpiry: accessExpiry,
		},
	}, nil
}

func defaultTokenFile() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".directoryctl-token"
	}
	return filepath.Join(home, ".directoryctl", "token")
}
