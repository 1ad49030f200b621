package config

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad(t *testing.T) {
	// Save original env vars and restore after tests
	originalEnv := map[string]string{
		"SHOP_APP_NAME":                  os.Getenv("SHOP_APP_NAME"),
		"SHOP_APP_ENV":                   os.Getenv("SHOP_APP_ENV"),
		"SHOP_APP_PORT":                  os.Getenv("SHOP_APP_PORT"),
		"SHOP_STRIPE_SECRET_KEY":         os.Getenv("SHOP_STRIPE_SECRET_KEY"),
		"SHOP_PAYPAL_CLIENT_ID":          os.Getenv("SHOP_PAYPAL_CLIENT_ID"),
		"SHOP_PAYPAL_SECRET":             os.Getenv("SHOP_PAYPAL_SECRET"),
		"SHOP_PAYPAL_ENVIRONMENT":        os.Getenv("SHOP_PAYPAL_ENVIRONMENT"),
		"SHOP_ADMIN_MODE":                os.Getenv("SHOP_ADMIN_MODE"),
		"SHOP_ADMIN_USERNAME":            os.Getenv("SHOP_ADMIN_USERNAME"),
		"SHOP_ADMIN_PASSWORD_HASH":       os.Getenv("SHOP_ADMIN_PASSWORD_HASH"),
		"SHOP_SESSION_SECRET":            os.Getenv("SHOP_SESSION_SECRET"),
		"SHOP_SESSION_COOKIE_SECURE":     os.Getenv("SHOP_SESSION_COOKIE_SECURE"),
		"SHOP_VISITLOG_BACKEND":          os.Getenv("SHOP_VISITLOG_BACKEND"),
		"SHOP_VISITLOG_MAX_ENTRIES":      os.Getenv("SHOP_VISITLOG_MAX_ENTRIES"),
		"SHOP_ASSETS_BACKEND":            os.Getenv("SHOP_ASSETS_BACKEND"),
		"SHOP_ASSETS_S3_BUCKET":          os.Getenv("SHOP_ASSETS_S3_BUCKET"),
		"SHOP_FULFILLMENT_REQUIRE_TOKEN": os.Getenv("SHOP_FULFILLMENT_REQUIRE_TOKEN"),
	}

	defer func() {
		for k, v := range originalEnv {
			if v == "" {
				os.Unsetenv(k)
			} else {
				os.Setenv(k, v)
			}
		}
	}()

	clearEnv := func() {
		for k := range originalEnv {
			os.Unsetenv(k)
		}
	}

	t.Run("loads default values when env vars not set", func(t *testing.T) {
		clearEnv()

		cfg, err := Load()
		require.NoError(t, err)

		assert.Equal(t, "shopfront-backend", cfg.App.Name)
		assert.Equal(t, "development", cfg.App.Env)
		assert.Equal(t, "3000", cfg.App.Port)
		assert.Equal(t, "http://localhost:3000", cfg.App.PublicBaseURL)
		assert.Equal(t, "sandbox", cfg.PayPal.Environment)
		assert.Equal(t, "products.json", cfg.Catalog.Path)
		assert.Equal(t, "local", cfg.Assets.Backend)
		assert.Equal(t, "digital", cfg.Assets.Dir)
		assert.Equal(t, "memory", cfg.VisitLog.Backend)
		assert.Equal(t, 200, cfg.VisitLog.MaxEntries)
		assert.Equal(t, "basic", cfg.Admin.Mode)
		assert.False(t, cfg.Fulfillment.RequireToken)
	})

	t.Run("loads values from environment variables with SHOP prefix", func(t *testing.T) {
		clearEnv()
		os.Setenv("SHOP_APP_NAME", "test-shop")
		os.Setenv("SHOP_APP_PORT", "9000")
		os.Setenv("SHOP_STRIPE_SECRET_KEY", "sk_test_abc")
		os.Setenv("SHOP_PAYPAL_ENVIRONMENT", "live")
		os.Setenv("SHOP_VISITLOG_MAX_ENTRIES", "50")

		cfg, err := Load()
		require.NoError(t, err)

		assert.Equal(t, "test-shop", cfg.App.Name)
		assert.Equal(t, "9000", cfg.App.Port)
		assert.Equal(t, "sk_test_abc", cfg.Stripe.SecretKey)
		assert.Equal(t, "live", cfg.PayPal.Environment)
		assert.Equal(t, 50, cfg.VisitLog.MaxEntries)
	})

	t.Run("rejects unknown paypal environment", func(t *testing.T) {
		clearEnv()
		os.Setenv("SHOP_PAYPAL_ENVIRONMENT", "staging")

		_, err := Load()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "paypal.environment")
	})

	t.Run("rejects unknown admin mode", func(t *testing.T) {
		clearEnv()
		os.Setenv("SHOP_ADMIN_MODE", "oauth")

		_, err := Load()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "admin.mode")
	})

	t.Run("requires s3 bucket when assets backend is s3", func(t *testing.T) {
		clearEnv()
		os.Setenv("SHOP_ASSETS_BACKEND", "s3")

		_, err := Load()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "assets.s3_bucket")
	})

	t.Run("rejects short session secret in session mode", func(t *testing.T) {
		clearEnv()
		os.Setenv("SHOP_ADMIN_MODE", "session")
		os.Setenv("SHOP_SESSION_SECRET", "too-short")

		_, err := Load()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "session.secret")
	})

	t.Run("production requires payment credentials", func(t *testing.T) {
		clearEnv()
		os.Setenv("SHOP_APP_ENV", "production")

		_, err := Load()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "stripe.secret_key")
	})

	t.Run("production requires admin credentials", func(t *testing.T) {
		clearEnv()
		os.Setenv("SHOP_APP_ENV", "production")
		os.Setenv("SHOP_STRIPE_SECRET_KEY", "sk_live_abc")
		os.Setenv("SHOP_PAYPAL_CLIENT_ID", "client")
		os.Setenv("SHOP_PAYPAL_SECRET", "secret")

		_, err := Load()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "admin.username")
	})

	t.Run("production rejects wildcard CORS origin", func(t *testing.T) {
		clearEnv()
		os.Setenv("SHOP_APP_ENV", "production")
		os.Setenv("SHOP_STRIPE_SECRET_KEY", "sk_live_abc")
		os.Setenv("SHOP_PAYPAL_CLIENT_ID", "client")
		os.Setenv("SHOP_PAYPAL_SECRET", "secret")
		os.Setenv("SHOP_ADMIN_USERNAME", "admin")
		os.Setenv("SHOP_ADMIN_PASSWORD_HASH", "$2a$12$abcdefghijklmnopqrstuv")
		os.Setenv("SHOP_HTTP_CORS_ALLOW_ORIGINS", "*")
		defer os.Unsetenv("SHOP_HTTP_CORS_ALLOW_ORIGINS")

		_, err := Load()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "cors_allow_origins")
	})

	t.Run("production passes with full credentials", func(t *testing.T) {
		clearEnv()
		os.Setenv("SHOP_APP_ENV", "production")
		os.Setenv("SHOP_STRIPE_SECRET_KEY", "sk_live_abc")
		os.Setenv("SHOP_PAYPAL_CLIENT_ID", "client")
		os.Setenv("SHOP_PAYPAL_SECRET", "secret")
		os.Setenv("SHOP_ADMIN_USERNAME", "admin")
		os.Setenv("SHOP_ADMIN_PASSWORD_HASH", "$2a$12$abcdefghijklmnopqrstuv")

		cfg, err := Load()
		require.NoError(t, err)
		assert.Equal(t, "production", cfg.App.Env)
	})
}

func TestRedisAddr(t *testing.T) {
	r := RedisConfig{Host: "cache.local", Port: 6380}
	assert.Equal(t, "cache.local:6380", r.RedisAddr())
}

func TestAppAddr(t *testing.T) {
	a := AppConfig{Port: "3000"}
	assert.Equal(t, ":3000", a.Addr())
}
