package config

import (
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"
	_ "time/tzdata"
)

type Config struct {
	Port             string
	SupabaseURL      string
	SupabaseAnonKey  string
	MongoDBURI       string
	MongoDBPassword  string
	MongoDBName      string
	CloudinaryName   string
	CloudinaryKey    string
	CloudinarySecret string
	Environment      string
	LogLevel         string
	AllowedOrigins   []string
	HotelTimezone    string
}

func LoadConfig() (*Config, error) {
	cfg := &Config{
		Port:             getEnvWithDefault("PORT", "8080"),
		SupabaseURL:      os.Getenv("SUPABASE_URL"),
		SupabaseAnonKey:  os.Getenv("SUPABASE_URL_ANON_KEY"),
		MongoDBURI:       os.Getenv("MONGODB_URI"),
		MongoDBPassword:  os.Getenv("MONGODB_PASSWORD"),
		MongoDBName:      getEnvWithDefault("MONGODB_DATABASE", "staydesk"),
		CloudinaryName:   os.Getenv("CLOUDINARY_CLOUD_NAME"),
		CloudinaryKey:    os.Getenv("CLOUDINARY_API_KEY"),
		CloudinarySecret: os.Getenv("CLOUDINARY_API_SECRET"),
		Environment:      getEnvWithDefault("ENVIRONMENT", "development"),
		LogLevel:         getEnvWithDefault("LOG_LEVEL", "info"),
		AllowedOrigins:   splitList(getEnvWithDefault("ALLOWED_ORIGINS", "http://localhost:3000")),
		HotelTimezone:    getEnvWithDefault("HOTEL_TIMEZONE", "Asia/Kolkata"),
	}

	// Validate required fields
	if cfg.SupabaseURL == "" {
		return nil, fmt.Errorf("SUPABASE_URL is required")
	}
	if cfg.SupabaseAnonKey == "" {
		return nil, fmt.Errorf("SUPABASE_URL_ANON_KEY is required")
	}
	if cfg.MongoDBURI == "" {
		return nil, fmt.Errorf("MONGODB_URI is required")
	}
	if cfg.MongoDBPassword == "" {
		return nil, fmt.Errorf("MONGODB_PASSWORD is required")
	}
	if cfg.CloudinaryName == "" || cfg.CloudinaryKey == "" || cfg.CloudinarySecret == "" {
		return nil, fmt.Errorf("CLOUDINARY_CLOUD_NAME, CLOUDINARY_API_KEY and CLOUDINARY_API_SECRET are required")
	}
	if _, err := time.LoadLocation(cfg.HotelTimezone); err != nil {
		return nil, fmt.Errorf("HOTEL_TIMEZONE %q: %w", cfg.HotelTimezone, err)
	}

	return cfg, nil
}

func getEnvWithDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}

func (c *Config) IsDevelopment() bool {
	return c.Environment == "development"
}

// Location is the hotel's time zone; LoadConfig has already checked it.
func (c *Config) Location() *time.Location {
	loc, err := time.LoadLocation(c.HotelTimezone)
	if err != nil {
		return time.UTC
	}
	return loc
}

func (c *Config) SlogLevel() slog.Level {
	switch strings.ToLower(c.LogLevel) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
