package utils

import (
	"errors"
	"io/fs"
	"net/http"
	"strings"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	App      AppConfig
	Database DatabaseConfig
	Redis    RedisConfig
	JWT      JWTConfig
	Cookie   CookieConfig
	Booking  BookingConfig
}

type AppConfig struct {
	Name           string
	Port           string
	Debug          bool
	LogPath        string
	AllowedOrigins []string
}

type DatabaseConfig struct {
	Host     string
	Port     string
	Name     string
	User     string
	Password string
	SSLMode  string
	MaxConns int32
}

type RedisConfig struct {
	Address  string
	Password string
	DB       int
	PoolSize int
}

type JWTConfig struct {
	AccessSecret  string
	RefreshSecret string
	AccessTTL     time.Duration
	RefreshTTL    time.Duration
}

// CookieConfig mirrors the attributes set on both auth cookies.
type CookieConfig struct {
	AccessName  string
	RefreshName string
	Path        string
	Domain      string
	Secure      bool
	HTTPOnly    bool
	SameSite    http.SameSite
}

type BookingConfig struct {
	FetchLimit int
}

func LoadConfig() (*Config, error) {
	viper.SetConfigFile(".env")
	viper.SetConfigType("env")

	// Set defaults
	viper.SetDefault("APP_NAME", "stay-booking")
	viper.SetDefault("PORT", "8080")
	viper.SetDefault("DEBUG", false)
	viper.SetDefault("LOG_PATH", "logs/")
	viper.SetDefault("CORS_ALLOWED_ORIGINS", "http://localhost:3000")
	viper.SetDefault("DB_HOST", "localhost")
	viper.SetDefault("DB_PORT", "5432")
	viper.SetDefault("DB_SSLMODE", "disable")
	viper.SetDefault("DB_MAX_CONNS", 10)
	viper.SetDefault("REDIS_ADDR", "localhost:6379")
	viper.SetDefault("REDIS_DB", 0)
	viper.SetDefault("REDIS_POOL_SIZE", 10)
	viper.SetDefault("ACCESS_TOKEN_TTL_MINUTES", 15)
	viper.SetDefault("REFRESH_TOKEN_TTL_HOURS", 24*7)
	viper.SetDefault("ACCESS_COOKIE_NAME", "access")
	viper.SetDefault("REFRESH_COOKIE_NAME", "refresh")
	viper.SetDefault("COOKIE_PATH", "/")
	viper.SetDefault("COOKIE_SECURE", true)
	viper.SetDefault("COOKIE_HTTP_ONLY", true)
	viper.SetDefault("COOKIE_SAMESITE", "Lax")
	viper.SetDefault("BOOKING_FETCH_LIMIT", 100)

	if err := viper.ReadInConfig(); err != nil {
		// .env is optional when everything comes from the environment
		var pathErr *fs.PathError
		if !errors.As(err, &pathErr) {
			return nil, err
		}
	}

	viper.AutomaticEnv()

	config := &Config{
		App: AppConfig{
			Name:           viper.GetString("APP_NAME"),
			Port:           viper.GetString("PORT"),
			Debug:          viper.GetBool("DEBUG"),
			LogPath:        viper.GetString("LOG_PATH"),
			AllowedOrigins: splitList(viper.GetString("CORS_ALLOWED_ORIGINS")),
		},
		Database: DatabaseConfig{
			Host:     viper.GetString("DB_HOST"),
			Port:     viper.GetString("DB_PORT"),
			Name:     viper.GetString("DB_NAME"),
			User:     viper.GetString("DB_USER"),
			Password: viper.GetString("DB_PASS"),
			SSLMode:  viper.GetString("DB_SSLMODE"),
			MaxConns: viper.GetInt32("DB_MAX_CONNS"),
		},
		Redis: RedisConfig{
			Address:  viper.GetString("REDIS_ADDR"),
			Password: viper.GetString("REDIS_PASSWORD"),
			DB:       viper.GetInt("REDIS_DB"),
			PoolSize: viper.GetInt("REDIS_POOL_SIZE"),
		},
		JWT: JWTConfig{
			AccessSecret:  viper.GetString("JWT_ACCESS_SECRET"),
			RefreshSecret: viper.GetString("JWT_REFRESH_SECRET"),
			AccessTTL:     time.Duration(viper.GetInt("ACCESS_TOKEN_TTL_MINUTES")) * time.Minute,
			RefreshTTL:    time.Duration(viper.GetInt("REFRESH_TOKEN_TTL_HOURS")) * time.Hour,
		},
		Cookie: CookieConfig{
			AccessName:  viper.GetString("ACCESS_COOKIE_NAME"),
			RefreshName: viper.GetString("REFRESH_COOKIE_NAME"),
			Path:        viper.GetString("COOKIE_PATH"),
			Domain:      viper.GetString("COOKIE_DOMAIN"),
			Secure:      viper.GetBool("COOKIE_SECURE"),
			HTTPOnly:    viper.GetBool("COOKIE_HTTP_ONLY"),
			SameSite:    ParseSameSite(viper.GetString("COOKIE_SAMESITE")),
		},
		Booking: BookingConfig{
			FetchLimit: viper.GetInt("BOOKING_FETCH_LIMIT"),
		},
	}

	if config.JWT.AccessSecret == "" || config.JWT.RefreshSecret == "" {
		return nil, errors.New("JWT_ACCESS_SECRET and JWT_REFRESH_SECRET must be set")
	}

	return config, nil
}

// ParseSameSite maps the textual cookie policy to net/http's enum, defaulting to Lax.
func ParseSameSite(value string) http.SameSite {
	switch strings.ToLower(value) {
	case "strict":
		return http.SameSiteStrictMode
	case "none":
		return http.SameSiteNoneMode
	default:
		return http.SameSiteLaxMode
	}
}

// splitList parses a comma-separated env value, dropping blanks.
func splitList(value string) []string {
	var items []string
	for _, item := range strings.Split(value, ",") {
		if item = strings.TrimSpace(item); item != "" {
			items = append(items, item)
		}
	}
	return items
}
