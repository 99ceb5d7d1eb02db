package config

import (
	"fmt"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"
)

// Config holds all application configuration
type Config struct {
	App       AppConfig       `yaml:"app"`
	Server    ServerConfig    `yaml:"server"`
	Database  DatabaseConfig  `yaml:"database"`
	Redis     RedisConfig     `yaml:"redis"`
	JWT       JWTConfig       `yaml:"jwt"`
	Admin     AdminConfig     `yaml:"admin"`
	Site      SiteConfig      `yaml:"site"`
	Redirects []RedirectRule  `yaml:"redirects"`
}

// AppConfig general application settings
type AppConfig struct {
	Env  string `yaml:"env"`
	Name string `yaml:"name"`
}

// ServerConfig HTTP server settings
type ServerConfig struct {
	Host string `yaml:"host"`
	Port int    `yaml:"port"`
}

// DatabaseConfig MySQL settings
type DatabaseConfig struct {
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	User     string `yaml:"user"`
	Password string `yaml:"password"`
	Name     string `yaml:"name"`
}

// DSN builds the MySQL connection string
func (d DatabaseConfig) DSN() string {
	return fmt.Sprintf("%s:%s@tcp(%s:%d)/%s?charset=utf8mb4&parseTime=True&loc=Local",
		d.User, d.Password, d.Host, d.Port, d.Name)
}

// RedisConfig Redis settings
type RedisConfig struct {
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	Password string `yaml:"password"`
	DB       int    `yaml:"db"`
	PoolSize int    `yaml:"pool_size"`
}

// JWTConfig admin token settings
type JWTConfig struct {
	Secret      string `yaml:"secret"`
	ExpiryHours int    `yaml:"expiry_hours"`
}

// AdminConfig credentials for the single admin account
type AdminConfig struct {
	Username string `yaml:"username"`
	Password string `yaml:"password"`
}

// SiteConfig public-facing site settings used for canonical URLs and feeds
type SiteConfig struct {
	BaseURL     string `yaml:"base_url"`
	Title       string `yaml:"title"`
	Description string `yaml:"description"`
}

// RedirectRule maps a legacy path to its current location
type RedirectRule struct {
	From string `yaml:"from"`
	To   string `yaml:"to"`
}

// Load reads the YAML config file and applies environment overrides
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	cfg := defaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	applyEnvOverrides(cfg)
	return cfg, nil
}

func defaultConfig() *Config {
	return &Config{
		App:    AppConfig{Env: "local", Name: "examwatch-backend"},
		Server: ServerConfig{Host: "0.0.0.0", Port: 8080},
		Database: DatabaseConfig{
			Host: "127.0.0.1",
			Port: 3306,
			User: "examwatch",
			Name: "examwatch",
		},
		Redis: RedisConfig{
			Host:     "127.0.0.1",
			Port:     6379,
			PoolSize: 10,
		},
		JWT: JWTConfig{ExpiryHours: 24},
		Site: SiteConfig{
			BaseURL: "http://localhost:8080",
			Title:   "ExamWatch",
		},
	}
}

// applyEnvOverrides lets environment variables win over file values.
// Only secrets and connection endpoints are overridable.
func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv("DB_HOST"); v != "" {
		cfg.Database.Host = v
	}
	if v := os.Getenv("DB_PORT"); v != "" {
		if p, err := strconv.Atoi(v); err == nil {
			cfg.Database.Port = p
		}
	}
	if v := os.Getenv("DB_USER"); v != "" {
		cfg.Database.User = v
	}
	if v := os.Getenv("DB_PASSWORD"); v != "" {
		cfg.Database.Password = v
	}
	if v := os.Getenv("DB_NAME"); v != "" {
		cfg.Database.Name = v
	}
	if v := os.Getenv("REDIS_HOST"); v != "" {
		cfg.Redis.Host = v
	}
	if v := os.Getenv("REDIS_PORT"); v != "" {
		if p, err := strconv.Atoi(v); err == nil {
			cfg.Redis.Port = p
		}
	}
	if v := os.Getenv("REDIS_PASSWORD"); v != "" {
		cfg.Redis.Password = v
	}
	if v := os.Getenv("JWT_SECRET"); v != "" {
		cfg.JWT.Secret = v
	}
	if v := os.Getenv("ADMIN_USERNAME"); v != "" {
		cfg.Admin.Username = v
	}
	if v := os.Getenv("ADMIN_PASSWORD"); v != "" {
		cfg.Admin.Password = v
	}
	if v := os.Getenv("SITE_BASE_URL"); v != "" {
		cfg.Site.BaseURL = v
	}
	if v := os.Getenv("PORT"); v != "" {
		if p, err := strconv.Atoi(v); err == nil {
			cfg.Server.Port = p
		}
	}
}
