package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all application configuration
type Config struct {
	App         AppConfig
	Log         LogConfig
	HTTP        HTTPConfig
	Stripe      StripeConfig
	PayPal      PayPalConfig
	Catalog     CatalogConfig
	Assets      AssetsConfig
	Fulfillment FulfillmentConfig
	VisitLog    VisitLogConfig
	GeoIP       GeoIPConfig
	Admin       AdminConfig
	Session     SessionConfig
	Redis       RedisConfig
}

// AppConfig holds application-specific settings
type AppConfig struct {
	Name string
	Env  string
	Port string
	// PublicBaseURL is the externally visible origin used to build
	// checkout success/cancel redirect URLs.
	PublicBaseURL string
}

// LogConfig holds logging configuration
type LogConfig struct {
	Level  string // debug, info, warn, error
	Format string // json, console
	Output string // stdout, stderr, or file path
}

// HTTPConfig holds HTTP server configuration
type HTTPConfig struct {
	ReadTimeout       time.Duration
	WriteTimeout      time.Duration
	IdleTimeout       time.Duration
	MaxHeaderBytes    int
	MaxBodySize       int64
	RateLimitEnabled  bool
	RateLimitRequests int
	RateLimitWindow   time.Duration
	CORSAllowOrigins  []string
	CORSAllowMethods  []string
	CORSAllowHeaders  []string
	TrustedProxies    []string
}

// StripeConfig holds Stripe API settings
type StripeConfig struct {
	SecretKey   string
	Currency    string
	SuccessPath string
	CancelPath  string
}

// PayPalConfig holds PayPal REST API settings
type PayPalConfig struct {
	ClientID    string
	Secret      string
	Environment string // sandbox, live
	Timeout     time.Duration
}

// CatalogConfig holds product catalog settings
type CatalogConfig struct {
	Path string // path to the products JSON file
}

// AssetsConfig holds download asset storage settings
type AssetsConfig struct {
	Backend string // local, s3
	// Local backend
	Dir string
	// S3 backend
	S3Bucket    string
	S3Region    string
	S3Endpoint  string
	S3AccessKey string
	S3SecretKey string
	S3PathStyle bool
}

// FulfillmentConfig holds download delivery settings
type FulfillmentConfig struct {
	// RequireToken gates /download behind a signed purchase token.
	// Off by default to preserve the historical open endpoint.
	RequireToken bool
	TokenTTL     time.Duration
}

// VisitLogConfig holds visitor log settings
type VisitLogConfig struct {
	Backend    string // memory, redis
	MaxEntries int
}

// GeoIPConfig holds IP geolocation lookup settings
type GeoIPConfig struct {
	Enabled bool
	BaseURL string
	Timeout time.Duration
}

// AdminConfig holds admin surface settings
type AdminConfig struct {
	Mode         string // basic, session
	Username     string
	PasswordHash string // bcrypt hash
}

// SessionConfig holds signed session cookie settings
type SessionConfig struct {
	Secret       string
	TTL          time.Duration
	CookieName   string
	CookieSecure bool
}

// RedisConfig holds Redis connection settings
type RedisConfig struct {
	Host     string
	Port     int
	Password string
	DB       int
}

// Load loads configuration from TOML file and environment variables
// Priority (highest to lowest):
// 1. Environment variables with SHOP_ prefix (e.g., SHOP_STRIPE_SECRET_KEY)
// 2. config.toml
// 3. Built-in defaults
func Load() (*Config, error) {
	v := viper.New()

	v.SetConfigName("config")
	v.SetConfigType("toml")
	v.AddConfigPath(".")
	v.AddConfigPath("./backend")
	v.AddConfigPath("/app")

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
		// Config file not found is OK, we'll use defaults and env vars
	}

	v.SetEnvPrefix("SHOP")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	cfg := &Config{
		App: AppConfig{
			Name:          v.GetString("app.name"),
			Env:           v.GetString("app.env"),
			Port:          v.GetString("app.port"),
			PublicBaseURL: v.GetString("app.public_base_url"),
		},
		Log: LogConfig{
			Level:  v.GetString("log.level"),
			Format: v.GetString("log.format"),
			Output: v.GetString("log.output"),
		},
		HTTP: HTTPConfig{
			ReadTimeout:       v.GetDuration("http.read_timeout"),
			WriteTimeout:      v.GetDuration("http.write_timeout"),
			IdleTimeout:       v.GetDuration("http.idle_timeout"),
			MaxHeaderBytes:    v.GetInt("http.max_header_bytes"),
			MaxBodySize:       v.GetInt64("http.max_body_size"),
			RateLimitEnabled:  v.GetBool("http.rate_limit_enabled"),
			RateLimitRequests: v.GetInt("http.rate_limit_requests"),
			RateLimitWindow:   v.GetDuration("http.rate_limit_window"),
			CORSAllowOrigins:  v.GetStringSlice("http.cors_allow_origins"),
			CORSAllowMethods:  v.GetStringSlice("http.cors_allow_methods"),
			CORSAllowHeaders:  v.GetStringSlice("http.cors_allow_headers"),
			TrustedProxies:    v.GetStringSlice("http.trusted_proxies"),
		},
		Stripe: StripeConfig{
			SecretKey:   v.GetString("stripe.secret_key"),
			Currency:    v.GetString("stripe.currency"),
			SuccessPath: v.GetString("stripe.success_path"),
			CancelPath:  v.GetString("stripe.cancel_path"),
		},
		PayPal: PayPalConfig{
			ClientID:    v.GetString("paypal.client_id"),
			Secret:      v.GetString("paypal.secret"),
			Environment: v.GetString("paypal.environment"),
			Timeout:     v.GetDuration("paypal.timeout"),
		},
		Catalog: CatalogConfig{
			Path: v.GetString("catalog.path"),
		},
		Assets: AssetsConfig{
			Backend:     v.GetString("assets.backend"),
			Dir:         v.GetString("assets.dir"),
			S3Bucket:    v.GetString("assets.s3_bucket"),
			S3Region:    v.GetString("assets.s3_region"),
			S3Endpoint:  v.GetString("assets.s3_endpoint"),
			S3AccessKey: v.GetString("assets.s3_access_key"),
			S3SecretKey: v.GetString("assets.s3_secret_key"),
			S3PathStyle: v.GetBool("assets.s3_path_style"),
		},
		Fulfillment: FulfillmentConfig{
			RequireToken: v.GetBool("fulfillment.require_token"),
			TokenTTL:     v.GetDuration("fulfillment.token_ttl"),
		},
		VisitLog: VisitLogConfig{
			Backend:    v.GetString("visitlog.backend"),
			MaxEntries: v.GetInt("visitlog.max_entries"),
		},
		GeoIP: GeoIPConfig{
			Enabled: v.GetBool("geoip.enabled"),
			BaseURL: v.GetString("geoip.base_url"),
			Timeout: v.GetDuration("geoip.timeout"),
		},
		Admin: AdminConfig{
			Mode:         v.GetString("admin.mode"),
			Username:     v.GetString("admin.username"),
			PasswordHash: v.GetString("admin.password_hash"),
		},
		Session: SessionConfig{
			Secret:       v.GetString("session.secret"),
			TTL:          v.GetDuration("session.ttl"),
			CookieName:   v.GetString("session.cookie_name"),
			CookieSecure: v.GetBool("session.cookie_secure"),
		},
		Redis: RedisConfig{
			Host:     v.GetString("redis.host"),
			Port:     v.GetInt("redis.port"),
			Password: v.GetString("redis.password"),
			DB:       v.GetInt("redis.db"),
		},
	}

	applyDefaults(cfg)

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// applyDefaults sets default values for any empty config fields
func applyDefaults(cfg *Config) {
	if cfg.App.Name == "" {
		cfg.App.Name = "shopfront-backend"
	}
	if cfg.App.Env == "" {
		cfg.App.Env = "development"
	}
	if cfg.App.Port == "" {
		cfg.App.Port = "3000"
	}
	if cfg.App.PublicBaseURL == "" {
		cfg.App.PublicBaseURL = "http://localhost:" + cfg.App.Port
	}
	if cfg.Log.Level == "" {
		cfg.Log.Level = "info"
	}
	if cfg.Log.Format == "" {
		cfg.Log.Format = "console"
	}
	if cfg.Log.Output == "" {
		cfg.Log.Output = "stdout"
	}
	if cfg.HTTP.ReadTimeout == 0 {
		cfg.HTTP.ReadTimeout = 15 * time.Second
	}
	if cfg.HTTP.WriteTimeout == 0 {
		cfg.HTTP.WriteTimeout = 15 * time.Second
	}
	if cfg.HTTP.IdleTimeout == 0 {
		cfg.HTTP.IdleTimeout = 60 * time.Second
	}
	if cfg.HTTP.MaxHeaderBytes == 0 {
		cfg.HTTP.MaxHeaderBytes = 1 << 20 // 1MB
	}
	if cfg.HTTP.MaxBodySize == 0 {
		cfg.HTTP.MaxBodySize = 1 << 20 // 1MB, cart payloads are small
	}
	if cfg.HTTP.RateLimitRequests == 0 {
		cfg.HTTP.RateLimitRequests = 100
	}
	if cfg.HTTP.RateLimitWindow == 0 {
		cfg.HTTP.RateLimitWindow = time.Minute
	}
	// NOTE: CORS origins are intentionally not given a default fallback to "*".
	// An empty list means no cross-origin requests are allowed until explicitly
	// configured. In development, set specific origins in config.toml.
	if len(cfg.HTTP.CORSAllowMethods) == 0 {
		cfg.HTTP.CORSAllowMethods = []string{"GET", "POST", "OPTIONS"}
	}
	if len(cfg.HTTP.CORSAllowHeaders) == 0 {
		cfg.HTTP.CORSAllowHeaders = []string{"Content-Type", "Authorization", "X-Request-ID"}
	}
	if cfg.Stripe.Currency == "" {
		cfg.Stripe.Currency = "usd"
	}
	if cfg.Stripe.SuccessPath == "" {
		cfg.Stripe.SuccessPath = "/success.html"
	}
	if cfg.Stripe.CancelPath == "" {
		cfg.Stripe.CancelPath = "/cancel.html"
	}
	if cfg.PayPal.Environment == "" {
		cfg.PayPal.Environment = "sandbox"
	}
	if cfg.PayPal.Timeout == 0 {
		cfg.PayPal.Timeout = 10 * time.Second
	}
	if cfg.Catalog.Path == "" {
		cfg.Catalog.Path = "products.json"
	}
	if cfg.Assets.Backend == "" {
		cfg.Assets.Backend = "local"
	}
	if cfg.Assets.Dir == "" {
		cfg.Assets.Dir = "digital"
	}
	if cfg.Fulfillment.TokenTTL == 0 {
		cfg.Fulfillment.TokenTTL = 24 * time.Hour
	}
	if cfg.VisitLog.Backend == "" {
		cfg.VisitLog.Backend = "memory"
	}
	if cfg.VisitLog.MaxEntries == 0 {
		cfg.VisitLog.MaxEntries = 200
	}
	if cfg.GeoIP.BaseURL == "" {
		cfg.GeoIP.BaseURL = "http://ip-api.com/json"
	}
	if cfg.GeoIP.Timeout == 0 {
		cfg.GeoIP.Timeout = 2 * time.Second
	}
	if cfg.Admin.Mode == "" {
		cfg.Admin.Mode = "basic"
	}
	if cfg.Session.TTL == 0 {
		cfg.Session.TTL = 12 * time.Hour
	}
	if cfg.Session.CookieName == "" {
		cfg.Session.CookieName = "shop_session"
	}
	if cfg.Redis.Host == "" {
		cfg.Redis.Host = "localhost"
	}
	if cfg.Redis.Port == 0 {
		cfg.Redis.Port = 6379
	}
}

// validate performs validation on the configuration
func (c *Config) validate() error {
	switch c.PayPal.Environment {
	case "sandbox", "live":
	default:
		return fmt.Errorf("paypal.environment must be 'sandbox' or 'live', got %q", c.PayPal.Environment)
	}

	switch c.Assets.Backend {
	case "local", "s3":
	default:
		return fmt.Errorf("assets.backend must be 'local' or 's3', got %q", c.Assets.Backend)
	}
	if c.Assets.Backend == "s3" && c.Assets.S3Bucket == "" {
		return fmt.Errorf("assets.s3_bucket is required when assets.backend is 's3'")
	}

	switch c.VisitLog.Backend {
	case "memory", "redis":
	default:
		return fmt.Errorf("visitlog.backend must be 'memory' or 'redis', got %q", c.VisitLog.Backend)
	}
	if c.VisitLog.MaxEntries < 1 {
		return fmt.Errorf("visitlog.max_entries must be positive")
	}

	switch c.Admin.Mode {
	case "basic", "session":
	default:
		return fmt.Errorf("admin.mode must be 'basic' or 'session', got %q", c.Admin.Mode)
	}

	needsSessionSecret := c.Admin.Mode == "session" || c.Fulfillment.RequireToken
	if needsSessionSecret && c.Session.Secret != "" && len(c.Session.Secret) < 32 {
		return fmt.Errorf("session.secret must be at least 32 characters")
	}

	// Production-specific validations. Credentials have no insecure
	// defaults: missing values fail startup instead of limping along.
	if c.App.Env == "production" {
		if c.Stripe.SecretKey == "" {
			return fmt.Errorf("stripe.secret_key is required in production")
		}
		if c.PayPal.ClientID == "" || c.PayPal.Secret == "" {
			return fmt.Errorf("paypal.client_id and paypal.secret are required in production")
		}
		if c.Admin.Username == "" || c.Admin.PasswordHash == "" {
			return fmt.Errorf("admin.username and admin.password_hash are required in production")
		}
		if needsSessionSecret && c.Session.Secret == "" {
			return fmt.Errorf("session.secret is required in production when admin.mode is 'session' or fulfillment.require_token is enabled")
		}
		if c.Admin.Mode == "session" && !c.Session.CookieSecure {
			return fmt.Errorf("session.cookie_secure must be true in production")
		}
		for _, origin := range c.HTTP.CORSAllowOrigins {
			if origin == "*" {
				return fmt.Errorf("cors_allow_origins cannot be '*' in production (use specific origins)")
			}
		}
	}

	return nil
}

// Addr returns the listen address for the HTTP server.
func (a *AppConfig) Addr() string {
	return ":" + a.Port
}

// RedisAddr returns the host:port address for the Redis client.
func (r *RedisConfig) RedisAddr() string {
	return fmt.Sprintf("%s:%d", r.Host, r.Port)
}
