package config

import (
	"fmt"
	"net"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/viper"
)

const EnvProduction = "production"

type HTTPConfig struct {
	Host string
	Port int
}

type APIConfig struct {
	BaseURL string
	Timeout time.Duration
}

type DBConfig struct {
	DSN             string
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime string
}

type SessionConfig struct {
	CookieName string
	TTL        time.Duration
}

type CacheConfig struct {
	ReferenceStale time.Duration
	ListStale      time.Duration
	IdleTTL        time.Duration
}

type TableConfig struct {
	PageSize  int
	PageSizes []int
}

type DashboardConfig struct {
	ExpiringDays int
}

type AuthzConfig struct {
	EditorRoles []string
	Grants      []string
}

type CORSConfig struct {
	AllowedOrigins []string
}

type Config struct {
	Environment string
	LogLevel    string
	HTTP        HTTPConfig
	API         APIConfig
	DB          DBConfig
	Session     SessionConfig
	Cache       CacheConfig
	Table       TableConfig
	Dashboard   DashboardConfig
	Authz       AuthzConfig
	CORS        CORSConfig
}

func (c *Config) IsProduction() bool {
	return c.Environment == EnvProduction
}

func Load() (*Config, error) {
	v := viper.New()
	v.SetConfigName("app")
	v.SetConfigType("env")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")
	v.AddConfigPath("./deploy")
	v.AddConfigPath("./internal/config")
	v.AutomaticEnv()

	_ = v.ReadInConfig()

	cfg := &Config{
		Environment: v.GetString("APP_ENV"),
		LogLevel:    v.GetString("LOG_LEVEL"),
		HTTP: HTTPConfig{
			Host: v.GetString("HTTP_HOST"),
			Port: v.GetInt("HTTP_PORT"),
		},
		API: APIConfig{
			BaseURL: strings.TrimSpace(v.GetString("API_BASE_URL")),
			Timeout: v.GetDuration("API_TIMEOUT"),
		},
		DB: DBConfig{
			DSN:             v.GetString("SESSION_DB_DSN"),
			MaxOpenConns:    v.GetInt("DB_MAX_OPEN_CONNS"),
			MaxIdleConns:    v.GetInt("DB_MAX_IDLE_CONNS"),
			ConnMaxLifetime: v.GetString("DB_CONN_MAX_LIFETIME"),
		},
		Session: SessionConfig{
			CookieName: v.GetString("SESSION_COOKIE_NAME"),
			TTL:        v.GetDuration("SESSION_TTL"),
		},
		Cache: CacheConfig{
			ReferenceStale: v.GetDuration("CACHE_REFERENCE_STALE"),
			ListStale:      v.GetDuration("CACHE_LIST_STALE"),
			IdleTTL:        v.GetDuration("CACHE_IDLE_TTL"),
		},
		Table: TableConfig{
			PageSize: v.GetInt("TABLE_PAGE_SIZE"),
		},
		Dashboard: DashboardConfig{
			ExpiringDays: v.GetInt("DASHBOARD_EXPIRING_DAYS"),
		},
		Authz: AuthzConfig{
			EditorRoles: parseList(v.GetString("AUTHZ_EDITOR_ROLES")),
			Grants:      parseList(v.GetString("AUTHZ_GRANTS")),
		},
		CORS: CORSConfig{
			AllowedOrigins: parseList(v.GetString("CORS_ALLOWED_ORIGINS")),
		},
	}

	sizes, err := parseIntList(v.GetString("TABLE_PAGE_SIZES"))
	if err != nil {
		return nil, fmt.Errorf("TABLE_PAGE_SIZES: %w", err)
	}
	cfg.Table.PageSizes = sizes

	applyDefaults(cfg)

	if err := validate(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func applyDefaults(cfg *Config) {
	if cfg.Environment == "" {
		cfg.Environment = "development"
	}
	if cfg.LogLevel == "" {
		cfg.LogLevel = "info"
	}
	if cfg.HTTP.Host == "" {
		cfg.HTTP.Host = "0.0.0.0"
	}
	if cfg.HTTP.Port == 0 {
		cfg.HTTP.Port = 3000
	}
	if cfg.API.Timeout == 0 {
		cfg.API.Timeout = 10 * time.Second
	}
	if cfg.DB.MaxOpenConns == 0 {
		cfg.DB.MaxOpenConns = 10
	}
	if cfg.DB.MaxIdleConns == 0 {
		cfg.DB.MaxIdleConns = 5
	}
	if cfg.DB.ConnMaxLifetime == "" {
		cfg.DB.ConnMaxLifetime = "30m"
	}
	if cfg.Session.CookieName == "" {
		cfg.Session.CookieName = "auth_token"
	}
	if cfg.Session.TTL == 0 {
		cfg.Session.TTL = 7 * 24 * time.Hour
	}
	if cfg.Cache.ReferenceStale == 0 {
		cfg.Cache.ReferenceStale = 5 * time.Minute
	}
	if cfg.Cache.ListStale == 0 {
		cfg.Cache.ListStale = 2 * time.Minute
	}
	if cfg.Cache.IdleTTL == 0 {
		cfg.Cache.IdleTTL = 30 * time.Minute
	}
	if cfg.Table.PageSize == 0 {
		cfg.Table.PageSize = 10
	}
	if len(cfg.Table.PageSizes) == 0 {
		cfg.Table.PageSizes = []int{10, 20, 50}
	}
	if cfg.Dashboard.ExpiringDays == 0 {
		cfg.Dashboard.ExpiringDays = 30
	}
	if len(cfg.Authz.EditorRoles) == 0 {
		cfg.Authz.EditorRoles = []string{"ADMIN"}
	}
}

func validate(cfg *Config) error {
	if cfg.API.BaseURL == "" {
		return fmt.Errorf("API_BASE_URL is required")
	}
	if err := validateBaseURL(cfg.API.BaseURL, cfg.IsProduction()); err != nil {
		return err
	}
	durations := []struct {
		name  string
		value time.Duration
	}{
		{"API_TIMEOUT", cfg.API.Timeout},
		{"SESSION_TTL", cfg.Session.TTL},
		{"CACHE_REFERENCE_STALE", cfg.Cache.ReferenceStale},
		{"CACHE_LIST_STALE", cfg.Cache.ListStale},
		{"CACHE_IDLE_TTL", cfg.Cache.IdleTTL},
	}
	for _, d := range durations {
		if d.value <= 0 {
			return fmt.Errorf("%s must be positive, got %s", d.name, d.value)
		}
	}
	// the idle sweep ticks at half the idle ttl
	if cfg.Cache.IdleTTL < time.Second {
		return fmt.Errorf("CACHE_IDLE_TTL must be at least 1s, got %s", cfg.Cache.IdleTTL)
	}
	if cfg.Table.PageSize < 1 {
		return fmt.Errorf("TABLE_PAGE_SIZE must be positive")
	}
	return nil
}

func validateBaseURL(raw string, production bool) error {
	u, err := url.Parse(raw)
	if err != nil {
		return fmt.Errorf("API_BASE_URL is invalid: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("API_BASE_URL must use http or https, got %q", u.Scheme)
	}
	if u.Host == "" {
		return fmt.Errorf("API_BASE_URL must include a host")
	}
	if production && u.Scheme == "http" && !isLocalHost(u.Hostname()) {
		return fmt.Errorf("API_BASE_URL must use https in production (host %s)", u.Hostname())
	}
	return nil
}

func isLocalHost(host string) bool {
	if strings.EqualFold(host, "localhost") {
		return true
	}
	ip := net.ParseIP(host)
	return ip != nil && ip.IsLoopback()
}

func parseList(raw string) []string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil
	}
	items := strings.Split(raw, ",")
	result := make([]string, 0, len(items))
	for _, item := range items {
		item = strings.TrimSpace(item)
		if item != "" {
			result = append(result, item)
		}
	}
	return result
}

func parseIntList(raw string) ([]int, error) {
	items := parseList(raw)
	result := make([]int, 0, len(items))
	for _, item := range items {
		n, err := strconv.Atoi(item)
		if err != nil || n < 1 {
			return nil, fmt.Errorf("invalid page size %q", item)
		}
		result = append(result, n)
	}
	return result, nil
}
