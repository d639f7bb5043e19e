package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLoadDefaults(t *testing.T) {
	cfg := Load()

	assert.Equal(t, ":8080", cfg.ListenAddr)
	assert.Equal(t, "http://localhost:8080", cfg.PublicBaseURL)
	assert.Equal(t, "/data/campista.db", cfg.DBPath)
	assert.Empty(t, cfg.SessionSecret)
	assert.False(t, cfg.SecureCookies)
	assert.Equal(t, "local", cfg.PhotoBackend)
	assert.Equal(t, "/data/photos", cfg.PhotoPath)
	assert.Equal(t, "campsite-photos", cfg.PhotoBucket)
	assert.Equal(t, "nominatim", cfg.GeocodeBackend)
	assert.Equal(t, 1024, cfg.ViewCacheSize)
	assert.Equal(t, "info", cfg.LogLevel)
}

func TestLoadCustomValues(t *testing.T) {
	t.Setenv("LISTEN_ADDR", ":9090")
	t.Setenv("SESSION_SECRET", "hunter2hunter2")
	t.Setenv("SECURE_COOKIES", "true")
	t.Setenv("PHOTO_BACKEND", "s3")
	t.Setenv("S3_REGION", "us-west-2")
	t.Setenv("S3_BUCKET", "my-photos")
	t.Setenv("GEOCODE_BACKEND", "mapbox")
	t.Setenv("MAPBOX_TOKEN", "pk.test")
	t.Setenv("VIEW_CACHE_SIZE", "64")
	t.Setenv("LOG_LEVEL", "debug")

	cfg := Load()

	assert.Equal(t, ":9090", cfg.ListenAddr)
	assert.Equal(t, "hunter2hunter2", cfg.SessionSecret)
	assert.True(t, cfg.SecureCookies)
	assert.Equal(t, "s3", cfg.PhotoBackend)
	assert.Equal(t, "us-west-2", cfg.S3Region)
	assert.Equal(t, "my-photos", cfg.S3Bucket)
	assert.Equal(t, "mapbox", cfg.GeocodeBackend)
	assert.Equal(t, "pk.test", cfg.MapboxToken)
	assert.Equal(t, 64, cfg.ViewCacheSize)
	assert.Equal(t, "debug", cfg.LogLevel)
}

func TestLoadIgnoresMalformedInt(t *testing.T) {
	t.Setenv("VIEW_CACHE_SIZE", "lots")

	assert.Equal(t, 1024, Load().ViewCacheSize)
}
