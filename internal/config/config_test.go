package config

import (
	"net/url"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateRejectsDevSecretInProduction(t *testing.T) {
	cfg := &Config{
		Server: ServerConfig{Env: "production"},
		JWT:    JWTConfig{Secret: DevJWTSecret, ExpiryHours: 1},
	}
	assert.ErrorIs(t, cfg.Validate(), ErrInsecureSecret)

	cfg.JWT.Secret = ""
	assert.ErrorIs(t, cfg.Validate(), ErrInsecureSecret)

	cfg.JWT.Secret = "a-real-secret"
	assert.NoError(t, cfg.Validate())
}

func TestValidateAllowsDevSecretInDevelopment(t *testing.T) {
	cfg := &Config{
		Server: ServerConfig{Env: "development"},
		JWT:    JWTConfig{Secret: DevJWTSecret, ExpiryHours: 1},
	}
	assert.NoError(t, cfg.Validate())
}

func TestValidateRejectsNonPositiveExpiry(t *testing.T) {
	cfg := &Config{JWT: JWTConfig{Secret: "s", ExpiryHours: 0}}
	assert.Error(t, cfg.Validate())
}

func TestDSN(t *testing.T) {
	d := DatabaseConfig{
		Host:     "db",
		Port:     "5432",
		User:     "shop",
		Password: "p@ss word",
		Database: "glamify",
		Schema:   "public",
	}

	parsed, err := url.Parse(d.DSN())
	require.NoError(t, err)

	assert.Equal(t, "postgres", parsed.Scheme)
	assert.Equal(t, "db:5432", parsed.Host)
	assert.Equal(t, "/glamify", parsed.Path)
	pwd, _ := parsed.User.Password()
	assert.Equal(t, "p@ss word", pwd)
	assert.Equal(t, "disable", parsed.Query().Get("sslmode"))
	assert.Equal(t, "public", parsed.Query().Get("search_path"))
}

func TestDurations(t *testing.T) {
	assert.Equal(t, 2*time.Hour, JWTConfig{ExpiryHours: 2}.Expiry())
	assert.Equal(t, 30*time.Second, RateLimitConfig{WindowSeconds: 30}.Window())
	assert.Equal(t, 5*time.Minute, CatalogConfig{CacheTTLSeconds: 300}.CacheTTL())
	assert.Equal(t, 30*24*time.Hour, CartConfig{TTLDays: 30}.TTL())
	assert.Equal(t, "cache:6380", RedisConfig{Host: "cache", Port: "6380"}.Addr())
}

func TestSplitList(t *testing.T) {
	assert.Nil(t, splitList(""))
	assert.Equal(t, []string{"https://a.test", "https://b.test"}, splitList(" https://a.test, ,https://b.test "))
}

func TestLoadDefaults(t *testing.T) {
	t.Setenv("SERVER_PORT", "9090")

	cfg := Load()

	assert.Equal(t, "9090", cfg.Server.Port)
	assert.Equal(t, "admin_session", cfg.JWT.CookieName)
	assert.Equal(t, 720, cfg.JWT.ExpiryHours)
	assert.Equal(t, int32(10), cfg.Database.MaxConns)
	assert.Equal(t, "data/carts", cfg.Cart.Dir)
	assert.Equal(t, 30, cfg.Cart.TTLDays)
}
