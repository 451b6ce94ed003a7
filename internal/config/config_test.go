package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("ENVIRONMENT", "development")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Server.Port)
	assert.Equal(t, "auth-token", cfg.JWT.CookieName)
	assert.Equal(t, 168, cfg.JWT.TokenTTL)
	assert.Equal(t, 0.7, cfg.Search.NameWeight)
	assert.Equal(t, 0.3, cfg.Search.DescriptionWeight)
	assert.Equal(t, 0.4, cfg.Search.Threshold)
	assert.Equal(t, 100, cfg.Search.Distance)
	assert.Equal(t, "sql", cfg.Cart.Store)
}

func TestLoadFromEnvironment(t *testing.T) {
	t.Setenv("DB_DRIVER", "sqlite")
	t.Setenv("DB_SQLITE_PATH", "/tmp/shop.db")
	t.Setenv("CART_STORE", "mongo")
	t.Setenv("CORS_ALLOWED_ORIGINS", "https://a.example, https://b.example")
	t.Setenv("REDIS_ENABLED", "TRUE")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "/tmp/shop.db", cfg.Database.DSN())
	assert.Equal(t, "mongo", cfg.Cart.Store)
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.Frontend.AllowedOrigins)
	assert.True(t, cfg.Redis.Enabled)
}

func TestValidate(t *testing.T) {
	base := func() *Config {
		return &Config{
			Environment: "development",
			Database:    DatabaseConfig{Driver: "postgres"},
			JWT:         JWTConfig{SecretKey: "s3cret", TokenTTL: 1},
			Cart:        CartConfig{Store: "sql"},
			Search:      SearchConfig{NameWeight: 0.7, DescriptionWeight: 0.3},
		}
	}

	tests := []struct {
		name    string
		mutate  func(c *Config)
		wantErr bool
	}{
		{"valid", func(c *Config) {}, false},
		{"default secret in production", func(c *Config) {
			c.Environment = "production"
			c.JWT.SecretKey = defaultJWTSecret
			c.Database.Password = "pw"
		}, true},
		{"missing db password in production", func(c *Config) { c.Environment = "production" }, true},
		{"unknown driver", func(c *Config) { c.Database.Driver = "mysql" }, true},
		{"unknown cart store", func(c *Config) { c.Cart.Store = "memcached" }, true},
		{"zero weights", func(c *Config) { c.Search = SearchConfig{} }, true},
		{"zero ttl", func(c *Config) { c.JWT.TokenTTL = 0 }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := base()
			tt.mutate(cfg)
			err := cfg.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestPostgresDSN(t *testing.T) {
	d := DatabaseConfig{Driver: "postgres", Host: "db", Port: "5432", User: "u", Password: "p", Database: "shop", SSLMode: "disable"}
	assert.Equal(t, "host=db port=5432 user=u password=p dbname=shop sslmode=disable", d.DSN())
}
